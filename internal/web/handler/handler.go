// Package handler provides shared helpers for the HTTP route groups.
package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrNilACDFatalLogMsg is the fatal log message used when a route group is
// initialized with a nil app, config or db.
const ErrNilACDFatalLogMsg = "app, config and db can not be nil"

// Error writes a JSON error body with the given status.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// ValidationError writes a 422 response carrying one entry per failed field.
func ValidationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Error(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	details := make([]fiber.Map, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fiber.Map{
			"field": fe.Field(),
			"rule":  fe.Tag(),
		})
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":   "validation failed",
		"details": details,
	})
}

// ParamID parses a numeric path parameter into an ID.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

// QueryID parses an optional numeric query parameter. Absent, non-numeric
// or out-of-range values all yield zero, meaning "no filter": list endpoints
// treat a malformed ID filter as if it was not given and return the
// unfiltered set rather than an error.
func QueryID(c *fiber.Ctx, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}

	return uint(id)
}
