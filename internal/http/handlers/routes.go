package handlers

import (
	"time"

	applog "storefront/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Routes mounts the API. Static segments such as /clear are registered
// before the /:id routes that would otherwise swallow them.
func Routes(app *fiber.App, d *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")

	// Users (login throttled)
	users := api.Group("/users")
	users.Post("/register", d.AuthHandler.Register)
	users.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"success": false, "message": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	users.Post("/logout", d.AuthHandler.Logout)
	users.Get("/me", RequireUser(d.AuthSvc), d.AuthHandler.Me)

	// Catalog
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), d.SearchHandler.Search)
	api.Get("/products/:id", d.ProductHandler.Detail)

	// Cart
	cart := api.Group("/cart", RequireUser(d.AuthSvc))
	cart.Get("/", d.CartHandler.Get)
	cart.Post("/", d.CartHandler.Add)
	cart.Delete("/clear", d.CartHandler.Clear)
	cart.Delete("/saved-items/clear", d.CartHandler.EmptySaved)
	cart.Delete("/saved-items/:id", d.CartHandler.RemoveSaved)
	cart.Put("/decrease-quantity/:id", d.CartHandler.Decrease)
	cart.Post("/save-for-later", d.CartHandler.SaveForLater)
	cart.Post("/move-to-cart", d.CartHandler.MoveToCart)
	cart.Delete("/:id", d.CartHandler.Remove)

	// Wishlist
	wish := api.Group("/wishlist", RequireUser(d.AuthSvc))
	wish.Get("/", d.WishlistHandler.Get)
	wish.Post("/", d.WishlistHandler.Add)
	wish.Delete("/clear", d.WishlistHandler.Clear)
	wish.Post("/move-to-cart", d.WishlistHandler.MoveToCart)
	wish.Delete("/:id", d.WishlistHandler.Remove)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Route not found"})
	})
}
