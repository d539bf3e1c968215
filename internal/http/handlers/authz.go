package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
)

// RequireUser resolves the sid cookie to a user and stores it in
// Locals("user"). An unknown or unbound session answers 401; a storage
// failure answers 500.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return unauthorized(c, "")
		}
		u, err := auth.CurrentUser(c.UserContext(), sid)
		if err != nil && !repos.IsNoRows(err) {
			return fail(c, "auth.session", domain.Persistence(err))
		}
		if u == nil {
			return unauthorized(c, sid)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, sid string) error {
	applog.Security(c, "access.denied", map[string]any{"has_sid": sid != ""})
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": domain.MsgLoginRequired})
}
