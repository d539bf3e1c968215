package handlers

import (
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	w, err := h.Wish.GetOrCreate(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "wishlist.get", err)
	}
	return reply(c, "Wishlist fetched successfully", "wishlist", w)
}

func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	in, field := parseItem(c)
	if field != "" {
		return badRequest(c, field)
	}
	w, err := h.Wish.AddItem(c.UserContext(), currentUser(c).ID, in.ProductID)
	if err != nil {
		return fail(c, "wishlist.add", err)
	}
	return reply(c, "Product added to wishlist successfully", "wishlist", w)
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id")
	}
	w, err := h.Wish.RemoveItem(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return fail(c, "wishlist.remove", err)
	}
	return reply(c, "Product removed from wishlist successfully", "wishlist", w)
}

func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	w, err := h.Wish.Clear(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return fail(c, "wishlist.clear", err)
	}
	return reply(c, "Wishlist cleared successfully", "wishlist", w)
}

// MoveToCart answers with both documents since both changed.
func (h *WishlistHandler) MoveToCart(c *fiber.Ctx) error {
	in, field := parseItem(c)
	if field != "" {
		return badRequest(c, field)
	}
	w, cart, err := h.Wish.MoveToCart(c.UserContext(), currentUser(c).ID, in.ProductID)
	if err != nil {
		return fail(c, "wishlist.move_to_cart", err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Item moved to cart",
		"wishlist": w,
		"cart":     cart,
	})
}
