package middleware

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
)

// RequestInfo puts the client address and user agent on the request context
// for audit entries and sessions.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		meta := domain.RequestMeta{
			IPAddress: c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		}
		c.SetUserContext(domain.WithRequestMeta(c.UserContext(), meta))
		return c.Next()
	}
}
