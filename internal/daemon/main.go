// Package daemon wires configuration, database and web service together.
package daemon

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/dsn"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
	"github.com/go-rbac-admin/go-rbac-admin/internal/web"
)

// ErrUnknownGormEngine is returned for an unsupported db.gormengine value.
var ErrUnknownGormEngine = errors.New("unknown gorm engine")

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start()
}

// WaitShutdown blocks until the web service has shut down gracefully.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, errors.New("config is nil")
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	// ensure all five tables exist (create-if-absent, no migration framework)
	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.UserRole{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	seed(cfg, db)

	return &Daemon{
		webService: *web.New(cfg, db),
	}, nil
}

// openDB opens the store with the configured gorm engine.
// In dev mode every SQL statement is echoed to the log.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case "mysql":
		dialector = gormmysql.Open(dsn.Create(cfg))
	case "postgres":
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case "sqlite":
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, errors.Wrap(ErrUnknownGormEngine, cfg.DB.GormEngine)
	}

	gormCfg := &gorm.Config{}
	if cfg.DevMode {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	return gorm.Open(dialector, gormCfg) //nolint:wrapcheck
}
