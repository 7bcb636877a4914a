package middleware

import (
	"github.com/gofiber/fiber/v2"

	"flowx-relief/internal/domain"
)

func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(roles...) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func RequireStaff() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleGovernmentOfficer, domain.RoleGramaSevaka)
}
