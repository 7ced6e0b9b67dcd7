// Package userrole provides handlers for managing user-role assignments.
// Assignments are addressed by their (user_id, role_id) composite key
// embedded in the path.
package userrole

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	userrolectl "github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/userrole"
	"github.com/go-rbac-admin/go-rbac-admin/internal/service"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// Path is the base path for assignment management.
const Path = "/user-roles"

// Service provides CRUD operations for user-role assignments.
type Service struct {
	cfg       *config.Config
	svc       *service.UserRoleService
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.svc = service.NewUserRoleService(db)
	s.validator = validator.New()

	// Routes
	app.Post(Path, s.Create)
	app.Get(Path, s.List)
	app.Put(Path+"/:user_id/:role_id", s.Update)
	app.Delete(Path+"/:user_id/:role_id", s.Delete)
}

// Create creates a new assignment. Duplicate pairs are rejected with 409.
func (s *Service) Create(c *fiber.Ctx) error {
	var in struct {
		UserID uint `json:"user_id" validate:"required,gt=0"`
		RoleID uint `json:"role_id" validate:"required,gt=0"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Create(userrolectl.CreateInput{
		UserID: in.UserID,
		RoleID: in.RoleID,
	})
	if err != nil {
		if errors.Is(err, userrolectl.ErrAssignmentAlreadyExists) {
			return handler.Error(c, fiber.StatusConflict, "user-role assignment already exists")
		}

		log.Error().Err(err).Msg("create assignment failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to create assignment")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List shows assignments with optional exact user_id and role_id filters.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.svc.List(handler.QueryID(c, "user_id"), handler.QueryID(c, "role_id"))
	if err != nil {
		log.Error().Err(err).Msg("list assignments failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to list assignments")
	}

	return c.JSON(records)
}

// Update re-keys an assignment. The original assigned_at timestamp is preserved.
func (s *Service) Update(c *fiber.Ctx) error {
	key, err := s.key(c)
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid assignment key")
	}

	var in struct {
		UserID *uint `json:"user_id" validate:"omitempty,gt=0"`
		RoleID *uint `json:"role_id" validate:"omitempty,gt=0"`
	}

	if err = c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err = s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Update(key, userrolectl.UpdateInput{
		UserID: in.UserID,
		RoleID: in.RoleID,
	})
	if err != nil {
		if errors.Is(err, userrolectl.ErrAssignmentNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "user-role assignment not found")
		}

		log.Error().Err(err).
			Uint("user_id", key.UserID).
			Uint("role_id", key.RoleID).
			Msg("update assignment failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to update assignment")
	}

	return c.JSON(record)
}

// Delete removes an assignment.
func (s *Service) Delete(c *fiber.Ctx) error {
	key, err := s.key(c)
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid assignment key")
	}

	if err = s.svc.Delete(key); err != nil {
		if errors.Is(err, userrolectl.ErrAssignmentNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "user-role assignment not found")
		}

		log.Error().Err(err).
			Uint("user_id", key.UserID).
			Uint("role_id", key.RoleID).
			Msg("delete assignment failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to delete assignment")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Service) key(c *fiber.Ctx) (userrolectl.Key, error) {
	userID, err := handler.ParamID(c, "user_id")
	if err != nil {
		return userrolectl.Key{}, err
	}

	roleID, err := handler.ParamID(c, "role_id")
	if err != nil {
		return userrolectl.Key{}, err
	}

	return userrolectl.Key{UserID: userID, RoleID: roleID}, nil
}
