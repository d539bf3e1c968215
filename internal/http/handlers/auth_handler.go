package handlers

import (
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   h.CookieSecure,
		})
	}
	return sid
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return badRequest(c, "name")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return badRequest(c, "email")
	}
	if !validate.Password(in.Password) {
		return badRequest(c, "password")
	}

	u, err := h.Auth.Register(c.UserContext(), name, email, in.Password)
	if err != nil {
		return fail(c, "auth.register", err)
	}
	log.Audit(c, "auth.register", map[string]any{"email": u.Email})
	return reply(c, "Account created successfully", "user", u)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "body")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": "bad_format"})
		return h.badCreds(c)
	}
	if !validate.Password(in.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return h.badCreds(c)
	}

	sid := h.ensureSID(c)
	u, err := h.Auth.Login(c.UserContext(), sid, email, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return h.badCreds(c)
	}
	if err != nil {
		return fail(c, "auth.login", err)
	}

	c.Locals("user", u)
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return reply(c, "Logged in successfully", "user", u)
}

func (h *AuthHandler) badCreds(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": domain.MsgInvalidCredentials})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			return fail(c, "auth.logout", err)
		}
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", nil)
	return reply(c, "Logged out successfully", "", nil)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return reply(c, "User fetched successfully", "user", currentUser(c))
}
