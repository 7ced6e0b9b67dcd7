// Package rolepermission provides handlers for managing role-permission
// grants. Grants are addressed by their (role_id, permission_id) composite
// key embedded in the path.
package rolepermission

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	rolepermissionctl "github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/rolepermission"
	"github.com/go-rbac-admin/go-rbac-admin/internal/service"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// Path is the base path for grant management.
const Path = "/role-permissions"

// Service provides CRUD operations for role-permission grants.
type Service struct {
	cfg       *config.Config
	svc       *service.RolePermissionService
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
	s.svc = service.NewRolePermissionService(db)
	s.validator = validator.New()

	// Routes
	app.Post(Path, s.Create)
	app.Get(Path, s.List)
	app.Put(Path+"/:role_id/:permission_id", s.Update)
	app.Delete(Path+"/:role_id/:permission_id", s.Delete)
}

// Create creates a new grant. Duplicate pairs are rejected with 409.
func (s *Service) Create(c *fiber.Ctx) error {
	var in struct {
		RoleID       uint `json:"role_id"       validate:"required,gt=0"`
		PermissionID uint `json:"permission_id" validate:"required,gt=0"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Create(rolepermissionctl.CreateInput{
		RoleID:       in.RoleID,
		PermissionID: in.PermissionID,
	})
	if err != nil {
		if errors.Is(err, rolepermissionctl.ErrGrantAlreadyExists) {
			return handler.Error(c, fiber.StatusConflict, "role-permission grant already exists")
		}

		log.Error().Err(err).Msg("create grant failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to create grant")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List shows grants with optional exact role_id and permission_id filters.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.svc.List(handler.QueryID(c, "role_id"), handler.QueryID(c, "permission_id"))
	if err != nil {
		log.Error().Err(err).Msg("list grants failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to list grants")
	}

	return c.JSON(records)
}

// Update re-keys a grant. The original granted_at timestamp is preserved.
func (s *Service) Update(c *fiber.Ctx) error {
	key, err := s.key(c)
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid grant key")
	}

	var in struct {
		RoleID       *uint `json:"role_id"       validate:"omitempty,gt=0"`
		PermissionID *uint `json:"permission_id" validate:"omitempty,gt=0"`
	}

	if err = c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err = s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Update(key, rolepermissionctl.UpdateInput{
		RoleID:       in.RoleID,
		PermissionID: in.PermissionID,
	})
	if err != nil {
		if errors.Is(err, rolepermissionctl.ErrGrantNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "role-permission grant not found")
		}

		log.Error().Err(err).
			Uint("role_id", key.RoleID).
			Uint("permission_id", key.PermissionID).
			Msg("update grant failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to update grant")
	}

	return c.JSON(record)
}

// Delete removes a grant.
func (s *Service) Delete(c *fiber.Ctx) error {
	key, err := s.key(c)
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid grant key")
	}

	if err = s.svc.Delete(key); err != nil {
		if errors.Is(err, rolepermissionctl.ErrGrantNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "role-permission grant not found")
		}

		log.Error().Err(err).
			Uint("role_id", key.RoleID).
			Uint("permission_id", key.PermissionID).
			Msg("delete grant failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to delete grant")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Service) key(c *fiber.Ctx) (rolepermissionctl.Key, error) {
	roleID, err := handler.ParamID(c, "role_id")
	if err != nil {
		return rolepermissionctl.Key{}, err
	}

	permissionID, err := handler.ParamID(c, "permission_id")
	if err != nil {
		return rolepermissionctl.Key{}, err
	}

	return rolepermissionctl.Key{RoleID: roleID, PermissionID: permissionID}, nil
}
