package config

import (
	"github.com/emailcapture/emailcapture/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover   bool   // disable recover middleware
	Host             string // bind address, empty listens on all interfaces
	Port             int    // listening port for the webserver
	ShutDownTime     int    // seconds to answer 503 on /checkalive before stopping
	CORSAllowOrigins string // comma separated list, "*" if empty
}
