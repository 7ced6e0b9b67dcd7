// Package permission provides handlers for managing permissions (CRUD).
package permission

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	permissionctl "github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/permission"
	"github.com/go-rbac-admin/go-rbac-admin/internal/service"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// Path is the base path for permission management.
const Path = "/permissions"

// Service provides CRUD operations for permissions.
type Service struct {
	cfg       *config.Config
	svc       *service.PermissionService
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
	s.svc = service.NewPermissionService(db)
	s.validator = validator.New()

	// Routes
	app.Post(Path, s.Create)
	app.Get(Path, s.List)
	app.Put(Path+"/:id", s.Update)
	app.Delete(Path+"/:id", s.Delete)
}

// Create creates a new permission.
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

	record, err := s.svc.Create(permissionctl.CreateInput{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		log.Error().Err(err).Msg("create permission failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to create permission")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List shows permissions with an optional name filter.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.svc.List(c.Query("name"))
	if err != nil {
		log.Error().Err(err).Msg("list permissions failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to list permissions")
	}

	return c.JSON(records)
}

// Update applies a partial update to a permission.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid permission id")
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

	record, err := s.svc.Update(id, permissionctl.UpdateInput{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		if errors.Is(err, permissionctl.ErrPermissionNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "permission not found")
		}

		log.Error().Err(err).Uint("id", id).Msg("update permission failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to update permission")
	}

	return c.JSON(record)
}

// Delete removes a permission.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid permission id")
	}

	if err = s.svc.Delete(id); err != nil {
		if errors.Is(err, permissionctl.ErrPermissionNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "permission not found")
		}

		log.Error().Err(err).Uint("id", id).Msg("delete permission failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to delete permission")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
