// Package db opens the gorm connection shared by the settings store and the
// email registry.
package db

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/emailcapture/emailcapture/internal/config"
	"github.com/emailcapture/emailcapture/internal/db/dsn"
	"github.com/emailcapture/emailcapture/internal/db/models"
)

// ErrConfigNil is returned when Open is called without a config.
var ErrConfigNil = errors.New("config is nil")

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	source := dsn.Create(cfg)

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(source), nil
	case config.EnginePostgres:
		return postgres.Open(source), nil
	case config.EngineSQLite, "":
		if err := ensureSQLiteDir(source); err != nil {
			return nil, err
		}

		return sqlite.Open(source), nil
	default:
		return nil, errors.Wrap(config.ErrUnsupportedGormEngine, cfg.DB.GormEngine)
	}
}

// Open connects to the configured database and migrates the models.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logMode := gormlogger.Silent
	if cfg.DevMode {
		logMode = gormlogger.Info
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = Migrate(conn); err != nil {
		return nil, err
	}

	return conn, nil
}

// Migrate creates or updates the tables of all models.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Settings{}, &models.Email{}); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "unable to get database handle")
	}

	return sqlDB.Close() //nolint:wrapcheck
}

func ensureSQLiteDir(source string) error {
	if source == "" || strings.HasPrefix(source, "file:") || strings.HasPrefix(source, ":memory:") {
		return nil
	}

	dir := filepath.Dir(strings.SplitN(source, "?", 2)[0]) //nolint:mnd // path part only
	if dir == "." {
		return nil
	}

	return errors.Wrap(os.MkdirAll(dir, 0o750), "can't create database directory") //nolint:mnd
}
