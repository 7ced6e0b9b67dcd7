package config

import (
	"github.com/go-rbac-admin/go-rbac-admin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode: gorm echoes every SQL statement
	DB        DB
	Log       logger.Log
	Title     string // application display name
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool // disable recover middleware
	Port           int  // listening port for the webserver
	ShutDownTime   int  // wait time for shutdown
}
