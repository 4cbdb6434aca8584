package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON body of a handled client error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSONError answers with status and {"error": message}.
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// InternalServerError logs err and answers with a plain text 500.
func InternalServerError(c *fiber.Ctx, err error, msg string) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg(msg)

	return c.Status(fiber.StatusInternalServerError).SendString(MsgInternalServerError)
}
