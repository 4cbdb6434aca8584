// Package settings provides the JSON handlers of the settings document.
package settings

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/emailcapture/emailcapture/internal/config"
	"github.com/emailcapture/emailcapture/internal/db/controller/setting"
	"github.com/emailcapture/emailcapture/internal/web/handler"
)

const (
	// Path is the path of the settings endpoints.
	Path = handler.APIPath + "/settings"

	// MsgPermissionDenied is returned when a non admin tries to update.
	MsgPermissionDenied = "Permission denied. Only " + setting.AdminEmail + " can update settings."

	// MsgNotFound is returned when no settings row matches the user email.
	MsgNotFound = "Settings not found for the provided userEmail."
)

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Put(handler.RouterRootPath, s.Put)
	})

	return nil
}

// Get lists every settings record.
func (s *Service) Get(c *fiber.Ctx) error {
	settings, err := setting.GetAll(s.conn(c))
	if err != nil {
		return handler.InternalServerError(c, err, "failed to list settings")
	}

	return c.JSON(settings)
}

// Put merges the request into the admin's settings record.
func (s *Service) Put(c *fiber.Ctx) error {
	req := setting.UpdateRequest{}
	if err := handler.ParseBody(c, &req); err != nil {
		log.Debug().Err(err).Msg("failed to parse settings update")
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	updated, err := setting.Update(s.conn(c), req)

	switch {
	case errors.Is(err, setting.ErrPermissionDenied):
		log.Warn().Str("userEmail", req.UserEmail).Msg("settings update denied")
		return handler.JSONError(c, fiber.StatusForbidden, MsgPermissionDenied)
	case errors.Is(err, setting.ErrSettingNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, MsgNotFound)
	case err != nil:
		return handler.InternalServerError(c, err, "failed to update settings")
	}

	log.Info().
		Uint64("id", updated.ID).
		Str("logoUrl", updated.LogoURL).
		Str("buttonText", updated.ButtonText).
		Msg("settings updated")

	return c.JSON(updated)
}

// conn scopes the shared handle to the request context.
func (s *Service) conn(c *fiber.Ctx) *gorm.DB {
	if s.db == nil {
		return nil
	}

	return s.db.WithContext(c.UserContext())
}
