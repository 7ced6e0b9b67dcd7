// Package user provides handlers for managing users (CRUD).
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	userctl "github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/user"
	"github.com/go-rbac-admin/go-rbac-admin/internal/service"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler"
)

// Path is the base path for user management.
const Path = "/users"

// Service provides CRUD operations for users.
type Service struct {
	cfg       *config.Config
	svc       *service.UserService
	roles     *service.UserRoleService
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
	s.svc = service.NewUserService(db)
	s.roles = service.NewUserRoleService(db)
	s.validator = validator.New()

	// Routes
	app.Post(Path, s.Create)
	app.Get(Path, s.List)
	app.Put(Path+"/:id", s.Update)
	app.Delete(Path+"/:id", s.Delete)
	app.Get(Path+"/:id/roles", s.Roles)
}

// Create creates a new user. The password hash is stored as supplied.
func (s *Service) Create(c *fiber.Ctx) error {
	var in struct {
		Username     string `json:"username"      validate:"required,max=50"`
		Email        string `json:"email"         validate:"required,email"`
		PasswordHash string `json:"password_hash" validate:"required,min=8"`
		IsActive     *bool  `json:"is_active"`
	}

	if err := c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Create(userctl.CreateInput{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		IsActive:     in.IsActive,
	})
	if err != nil {
		log.Error().Err(err).Msg("create user failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List shows users with optional username and email filters.
func (s *Service) List(c *fiber.Ctx) error {
	records, err := s.svc.List(userctl.Filter{
		Username: c.Query("username"),
		Email:    c.Query("email"),
	})
	if err != nil {
		log.Error().Err(err).Msg("list users failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return c.JSON(records)
}

// Update applies a partial update to a user.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var in struct {
		Username     *string `json:"username"      validate:"omitempty,max=50"`
		Email        *string `json:"email"         validate:"omitempty,email"`
		PasswordHash *string `json:"password_hash" validate:"omitempty,min=8"`
		IsActive     *bool   `json:"is_active"`
	}

	if err = c.BodyParser(&in); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err = s.validator.Struct(in); err != nil {
		return handler.ValidationError(c, err)
	}

	record, err := s.svc.Update(id, userctl.UpdateInput{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		IsActive:     in.IsActive,
	})
	if err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "user not found")
		}

		log.Error().Err(err).Uint("id", id).Msg("update user failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to update user")
	}

	return c.JSON(record)
}

// Delete removes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err = s.svc.Delete(id); err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.Error(c, fiber.StatusNotFound, "user not found")
		}

		log.Error().Err(err).Uint("id", id).Msg("delete user failed")

		return handler.Error(c, fiber.StatusInternalServerError, "failed to delete user")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Roles lists the roles assigned to a user.
func (s *Service) Roles(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	records, err := s.roles.Roles(id)
	if err != nil {
		log.Error().Err(err).Uint("id", id).Msg("list user roles failed")
		return handler.Error(c, fiber.StatusInternalServerError, "failed to list user roles")
	}

	return c.JSON(records)
}
