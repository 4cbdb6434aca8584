// Package emails provides the JSON handlers of the email registry.
package emails

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/emailcapture/emailcapture/internal/config"
	"github.com/emailcapture/emailcapture/internal/db/controller/email"
	"github.com/emailcapture/emailcapture/internal/web/handler"
)

const (
	// Path is the path of the email endpoints.
	Path = handler.APIPath + "/emails"

	// MsgAlreadyExists is returned for a duplicate registration.
	MsgAlreadyExists = "Email already exists."

	// MsgRequired is returned when the body has no email.
	MsgRequired = "Email is required."
)

// Service is the email registry handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Init initializes the email registry handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get lists every registered email.
func (s *Service) Get(c *fiber.Ctx) error {
	emails, err := email.GetAll(s.conn(c))
	if err != nil {
		return handler.InternalServerError(c, err, "failed to list emails")
	}

	return c.JSON(emails)
}

// Post registers a new email.
func (s *Service) Post(c *fiber.Ctx) error {
	req := email.CreateRequest{}
	if err := handler.ParseBody(c, &req); err != nil {
		log.Debug().Err(err).Msg("failed to parse email registration")
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, MsgRequired)
	}

	record, err := email.Create(s.conn(c), req.Email)

	switch {
	case errors.Is(err, email.ErrEmailAlreadyExists):
		return handler.JSONError(c, fiber.StatusBadRequest, MsgAlreadyExists)
	case err != nil:
		return handler.InternalServerError(c, err, "failed to create email")
	}

	log.Info().Uint64("id", record.ID).Msg("email registered")

	return c.JSON(record)
}

func (s *Service) conn(c *fiber.Ctx) *gorm.DB {
	if s.db == nil {
		return nil
	}

	return s.db.WithContext(c.UserContext())
}
