// Package web builds and runs the HTTP service.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	fiberlogger "github.com/go-rbac-admin/go-rbac-admin/internal/logger/adapter/fiber"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/health"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/permission"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/role"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/rolepermission"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/user"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web/handler/userrole"
)

// Service represents the web service.
type Service struct {
	App *fiber.App
	cfg *config.Config
	db  *gorm.DB
}

// Start starts the web service on the configured port.
func (s *Service) Start() error {
	var doneFiber = make(chan bool)

	addr := fmt.Sprintf(":%d", s.cfg.Webserver.Port)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Give reverse proxies time to take this instance out of rotation.
	log.Info().Msgf("graceful shutdown: waiting %d seconds before stopping", s.cfg.Webserver.ShutDownTime)
	time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			AppName:       cfg.Title,
			CaseSensitive: true,
			Prefork:       false,
			Immutable:     true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: health.Path,
	}))

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	// init handlers (they register their own routes)
	health.Handler.Init(app)
	role.Handler.Init(app, cfg, db)
	permission.Handler.Init(app, cfg, db)
	user.Handler.Init(app, cfg, db)
	rolepermission.Handler.Init(app, cfg, db)
	userrole.Handler.Init(app, cfg, db)

	// prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return service
}
