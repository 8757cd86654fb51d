package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID across service boundaries.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the ID lives in Fiber's context locals;
	// the logger and the error envelope both read it from there.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an ID: an incoming X-Request-ID is
// honored so callers can correlate across services, otherwise a fresh UUID
// is minted. The ID is stored in locals and echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
