package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, "catalog.categories", err)
	}
	return reply(c, "Categories fetched successfully", "categories", cats)
}
