package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ParseBody decodes the request body into out.
// An empty body or a content type the parser does not handle leaves out
// untouched, so such requests reach the same checks as an empty JSON object.
func ParseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}

	if err := c.BodyParser(out); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return err //nolint:wrapcheck
	}

	return nil
}
