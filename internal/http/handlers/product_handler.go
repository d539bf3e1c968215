package handlers

import (
	"strings"

	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// List pages through one category: GET /products?category=&page=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	category, ok := validate.ID(c.Query("category"))
	if !ok {
		return badRequest(c, "category")
	}
	products, err := h.Catalog.ListProductsByCategory(c.UserContext(), category, validate.Page(c.Query("page")), 0)
	if err != nil {
		return fail(c, "catalog.list", err)
	}
	return reply(c, "Products fetched successfully", "products", products)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return fail(c, "catalog.product", err)
	}
	return reply(c, "Product fetched successfully", "product", p)
}

type SearchHandler struct {
	Catalog *services.CatalogService
}

// Search matches title or description: GET /products/search?q=&category=&page=
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	q := ""
	if strings.TrimSpace(rawQ) != "" {
		var ok bool
		if q, ok = validate.Q(rawQ); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return badRequest(c, "q")
		}
	}
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.ID(category); !ok {
			return badRequest(c, "category")
		}
	}

	products, err := h.Catalog.Search(c.UserContext(), q, category, validate.Page(c.Query("page")), 20)
	if err != nil {
		return fail(c, "catalog.search", err)
	}
	return reply(c, "Products fetched successfully", "products", products)
}
