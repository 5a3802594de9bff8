package middleware

import (
	"context"

	common_models "agency-forms/internal/common/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware propagates the X-Request-ID header, generating one when absent,
// and adds it to the request context for log correlation.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)

		ctx := context.WithValue(c.UserContext(), common_models.RequestIDKey, requestID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequestID returns the id stored by RequestIDMiddleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(common_models.RequestIDKey).(string)
	return id
}
