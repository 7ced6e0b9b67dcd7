// Package role provides handlers for managing roles (CRUD).
package role

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	rolectl "github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/role"
	"github.com/go-rbac-admin/go-rbac-admin/internal/service"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// Path is the base path for role management.
const Path = "/roles"

// Service provides CRUD operations for roles.
type Service struct {
	cfg       *config.Config
	svc       *service.RoleService
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
	s.svc = service.NewRoleService(db)
	s.validator = validator.New()

	// Routes
	app.Post(Path, s.Create)
	app.Get(Path, s.List)
	app.Put(Path+"/:id", s.Update)
	app.Delete(Path+"/:id", s.Delete)
	app.Get(Path+"/:id/permissions", s.Permissions)
	app.Post(Path+"/:id/permissions/:permission_id", s.Grant)
}

// Create creates a new role.
func (s *Service) Create(c *fiber.Ctx) error {
	var in struct {
		Name        string `json:"name"        validate:"required,max=100"`
		Description string `json:"description"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Create(rolectl.CreateInput{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		log.Error().Err(err).Msg("create role failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to create role")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List shows roles with an optional name filter.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.svc.List(c.Query("name"))
	if err != nil {
		log.Error().Err(err).Msg("list roles failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to list roles")
	}

	return c.JSON(records)
}

// Update applies a partial update to a role.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid role id")
	}

	var in struct {
		Name        *string `json:"name"        validate:"omitempty,max=100"`
		Description *string `json:"description"`
	}

	if err = c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err = s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Update(id, rolectl.UpdateInput{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		if errors.Is(err, rolectl.ErrRoleNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "role not found")
		}

		log.Error().Err(err).Uint("id", id).Msg("update role failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to update role")
	}

	return c.JSON(record)
}

// Delete removes a role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid role id")
	}

	if err = s.svc.Delete(id); err != nil {
		if errors.Is(err, rolectl.ErrRoleNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "role not found")
		}

		log.Error().Err(err).Uint("id", id).Msg("delete role failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to delete role")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Permissions lists the permissions granted to a role.
func (s *Service) Permissions(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid role id")
	}

	records, err := s.svc.Permissions(id)
	if err != nil {
		log.Error().Err(err).Uint("id", id).Msg("list role permissions failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to list role permissions")
	}

	return c.JSON(records)
}

// Grant grants a permission to a role.
func (s *Service) Grant(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid role id")
	}

	permissionID, err := handler.ParamID(c, "permission_id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid permission id")
	}

	record, err := s.svc.GrantPermission(id, permissionID)
	if err != nil {
		if errors.Is(err, rolectl.ErrGrantAlreadyExists) {
			return handler.Error(c, fiber.StatusConflict, "permission already granted to role")
		}

		log.Error().Err(err).Uint("id", id).Msg("grant permission failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to grant permission")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}
