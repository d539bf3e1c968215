package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/repos"
)

// CartService applies ledger operations to a user's cart. Every mutation
// loads the cart, changes it in memory, saves it under the version check
// and then publishes an event.
type CartService struct {
	Carts    *repos.CartRepo
	Products ProductFinder
	Events   events.Publisher
}

func NewCartService(carts *repos.CartRepo, products ProductFinder, pub events.Publisher) *CartService {
	return &CartService{Carts: carts, Products: products, Events: pub}
}

func (s *CartService) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	return s.Carts.GetOrCreate(ctx, userID)
}

func (s *CartService) mutate(ctx context.Context, userID string, fn func(c *domain.Cart) error) (domain.Cart, error) {
	c, err := s.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := fn(&c); err != nil {
		return domain.Cart{}, err
	}
	if err := s.Carts.Save(ctx, &c); err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}

// AddItem adds qty of a product, merging into an existing line.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (domain.Cart, error) {
	if err := requireProductID(productID); err != nil {
		return domain.Cart{}, err
	}
	if qty < 1 {
		return domain.Cart{}, domain.Validation(domain.MsgQuantityPositive)
	}
	p, err := s.Products.Get(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	c, err := s.mutate(ctx, userID, func(c *domain.Cart) error { return c.AddItem(p, qty) })
	if err != nil {
		return c, err
	}
	e := events.New(events.CartItemAdded, userID, productID).ForCart(c)
	e.Quantity = qty
	publish(ctx, s.Events, e)
	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (domain.Cart, error) {
	return s.apply(ctx, userID, productID, events.CartItemRemoved, func(c *domain.Cart) error {
		return c.RemoveItem(productID)
	})
}

func (s *CartService) DecreaseQuantity(ctx context.Context, userID, productID string) (domain.Cart, error) {
	return s.apply(ctx, userID, productID, events.CartQuantityDecreased, func(c *domain.Cart) error {
		return c.DecreaseQuantity(productID)
	})
}

func (s *CartService) SaveForLater(ctx context.Context, userID, productID string) (domain.Cart, error) {
	return s.apply(ctx, userID, productID, events.CartSavedForLater, func(c *domain.Cart) error {
		return c.SaveForLater(productID)
	})
}

// MoveToCart brings a saved product back as a new quantity 1 line. It
// does not merge with a line already holding the same product.
func (s *CartService) MoveToCart(ctx context.Context, userID, productID string) (domain.Cart, error) {
	return s.apply(ctx, userID, productID, events.CartMovedToCart, func(c *domain.Cart) error {
		return c.MoveToCart(productID)
	})
}

func (s *CartService) RemoveSavedItem(ctx context.Context, userID, productID string) (domain.Cart, error) {
	return s.apply(ctx, userID, productID, events.CartSavedItemRemoved, func(c *domain.Cart) error {
		return c.RemoveSavedItem(productID)
	})
}

func (s *CartService) EmptySavedItems(ctx context.Context, userID string) (domain.Cart, error) {
	c, err := s.mutate(ctx, userID, func(c *domain.Cart) error {
		c.EmptySavedItems()
		return nil
	})
	if err != nil {
		return c, err
	}
	publish(ctx, s.Events, events.New(events.CartSavedItemsEmptied, userID, "").ForCart(c))
	return c, nil
}

// Clear empties the products and zeroes totals; saved items stay.
func (s *CartService) Clear(ctx context.Context, userID string) (domain.Cart, error) {
	c, err := s.mutate(ctx, userID, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
	if err != nil {
		return c, err
	}
	publish(ctx, s.Events, events.New(events.CartCleared, userID, "").ForCart(c))
	return c, nil
}

func (s *CartService) apply(ctx context.Context, userID, productID, typ string, fn func(c *domain.Cart) error) (domain.Cart, error) {
	if err := requireProductID(productID); err != nil {
		return domain.Cart{}, err
	}
	c, err := s.mutate(ctx, userID, fn)
	if err != nil {
		return c, err
	}
	publish(ctx, s.Events, events.New(typ, userID, productID).ForCart(c))
	return c, nil
}
