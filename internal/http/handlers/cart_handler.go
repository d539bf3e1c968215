package handlers

import (
	"storefront/internal/domain"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type itemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// parseItem returns the name of the offending field, or "" when the
// request is usable.
func parseItem(c *fiber.Ctx) (itemRequest, string) {
	var in itemRequest
	if err := c.BodyParser(&in); err != nil {
		return in, "body"
	}
	id, ok := validate.ID(in.ProductID)
	if !ok {
		return in, "productId"
	}
	in.ProductID = id
	return in, ""
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.Cart.GetOrCreate(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "cart.get", err)
	}
	return reply(c, "Cart fetched successfully", "cart", cart)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	in, field := parseItem(c)
	if field != "" {
		return badRequest(c, field)
	}
	qty, ok := validate.Qty(in.Quantity)
	if !ok {
		msg := domain.MsgQuantityPositive
		if in.Quantity > validate.MaxQty {
			msg = domain.MsgQuantityTooLarge
		}
		return fail(c, "cart.add", domain.Validation(msg))
	}
	cart, err := h.Cart.AddItem(c.UserContext(), currentUser(c).ID, in.ProductID, qty)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	return reply(c, "Product added to cart", "cart", cart)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id")
	}
	cart, err := h.Cart.RemoveItem(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return fail(c, "cart.remove", err)
	}
	return reply(c, "Product removed from cart", "cart", cart)
}

func (h *CartHandler) Decrease(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id")
	}
	cart, err := h.Cart.DecreaseQuantity(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return fail(c, "cart.decrease", err)
	}
	return reply(c, "Product quantity decreased", "cart", cart)
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cart, err := h.Cart.Clear(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "cart.clear", err)
	}
	return reply(c, "Cart cleared successfully", "cart", cart)
}

func (h *CartHandler) SaveForLater(c *fiber.Ctx) error {
	in, field := parseItem(c)
	if field != "" {
		return badRequest(c, field)
	}
	cart, err := h.Cart.SaveForLater(c.UserContext(), currentUser(c).ID, in.ProductID)
	if err != nil {
		return fail(c, "cart.save_for_later", err)
	}
	return reply(c, "Item saved for later", "cart", cart)
}

func (h *CartHandler) MoveToCart(c *fiber.Ctx) error {
	in, field := parseItem(c)
	if field != "" {
		return badRequest(c, field)
	}
	cart, err := h.Cart.MoveToCart(c.UserContext(), currentUser(c).ID, in.ProductID)
	if err != nil {
		return fail(c, "cart.move_to_cart", err)
	}
	return reply(c, "Item moved to cart", "cart", cart)
}

func (h *CartHandler) RemoveSaved(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id")
	}
	cart, err := h.Cart.RemoveSavedItem(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return fail(c, "cart.remove_saved", err)
	}
	return reply(c, "Item removed from saved for later", "cart", cart)
}

func (h *CartHandler) EmptySaved(c *fiber.Ctx) error {
	cart, err := h.Cart.EmptySavedItems(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "cart.empty_saved", err)
	}
	return reply(c, "All items removed from saved for later", "cart", cart)
}
