// Package health provides the liveness check endpoint.
package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Path is the liveness check path.
const Path = "/health"

// Service provides the liveness check.
type Service struct{}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App) {
	if app == nil {
		log.Fatal().Msg("app can not be nil")
		return
	}

	app.Get(Path, s.Check)
}

// Check always reports ok while the process is serving.
func (s *Service) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
