package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrInvalidPort error if the PORT env var is not a number.
	ErrInvalidPort = errors.New("env PORT must be a number")

	// ErrUnsupportedGormEngine error if db.gormEngine names an unknown driver.
	ErrUnsupportedGormEngine = errors.New("toml config db.gormEngine is not supported")
)
