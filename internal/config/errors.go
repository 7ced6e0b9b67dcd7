package config

import (
	"errors"
)

var (
	// ErrEmptyGormEngine error if config db.gormengine is empty.
	ErrEmptyGormEngine = errors.New("toml config db.gormengine can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")
)
