// Package daemon builds and runs the service from a config.
package daemon

import (
	"context"
	"errors"
	"net"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/emailcapture/emailcapture/internal/config"
	"github.com/emailcapture/emailcapture/internal/db"
	"github.com/emailcapture/emailcapture/internal/web"
)

// ErrConfigNil is returned when New is called without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Addr is the listen address of the web service.
func (d *Daemon) Addr() string {
	return net.JoinHostPort(d.cfg.Webserver.Host, strconv.Itoa(d.cfg.Webserver.Port))
}

// Start serves until the listener fails or a shutdown signal arrives.
func (d *Daemon) Start() error {
	defer func() {
		if err := db.Close(d.db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	listenErr := make(chan error, 1)

	go func() {
		log.Info().Str("addr", d.Addr()).Msg("starting web service")
		listenErr <- d.webService.Start(d.Addr())
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownErr := make(chan error, 1)

	go func() {
		shutdownErr <- d.webService.WaitShutdown(ctx)
	}()

	select {
	case err := <-listenErr:
		return err
	case err := <-shutdownErr:
		return err
	}
}

// New opens the database, seeds it and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	seed(conn)

	webService, err := web.New(cfg, conn)
	if err != nil {
		_ = db.Close(conn)
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         conn,
		webService: webService,
	}, nil
}
