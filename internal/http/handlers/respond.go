package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
)

// reply writes {success, message, <key>: payload}. An empty key omits the payload.
func reply(c *fiber.Ctx, message, key string, payload any) error {
	body := fiber.Map{"success": true, "message": message}
	if key != "" {
		body[key] = payload
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail maps a service error to its status and a caller-safe message.
// Server side failures are logged with the full error; nothing internal
// reaches the body.
func fail(c *fiber.Ctx, action string, err error) error {
	status := statusFor(err)
	msg := domain.PublicMessage(err)
	if status >= fiber.StatusInternalServerError {
		applog.Error(c, action+".fail", err, nil)
	} else {
		applog.Info(c, action+".rejected", map[string]any{"status": status, "reason": msg})
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

func badRequest(c *fiber.Ctx, field string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing or invalid fields"})
}

// ErrorHandler is the app-wide fallback for errors no handler mapped,
// including fiber's own 404/405 and recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "message": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": domain.PublicMessage(nil),
	})
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
