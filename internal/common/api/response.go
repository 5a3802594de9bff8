package api

import (
	apperrors "agency-forms/internal/common/errors"

	"github.com/gofiber/fiber/v2"
)

// Error writes err as {"error": message} with the status of its error code.
// Validation failures also carry the per-field messages under "fields".
func Error(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	body := fiber.Map{"error": err.Error()}
	if appErr, ok := apperrors.As(err); ok {
		body["code"] = appErr.Code
		if appErr.Fields != nil {
			body["fields"] = appErr.Fields
		}
	}
	return c.Status(status).JSON(body)
}
