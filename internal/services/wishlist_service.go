package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/repos"
)

type WishlistService struct {
	Wishes   *repos.WishlistRepo
	Carts    *repos.CartRepo
	Products ProductFinder
	Events   events.Publisher
}

func NewWishlistService(wishes *repos.WishlistRepo, carts *repos.CartRepo, products ProductFinder, pub events.Publisher) *WishlistService {
	return &WishlistService{Wishes: wishes, Carts: carts, Products: products, Events: pub}
}

func (s *WishlistService) GetOrCreate(ctx context.Context, userID string) (domain.Wishlist, error) {
	return s.Wishes.GetOrCreate(ctx, userID)
}

func (s *WishlistService) mutate(ctx context.Context, userID string, fn func(w *domain.Wishlist) error) (domain.Wishlist, error) {
	w, err := s.Wishes.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Wishlist{}, err
	}
	if err := fn(&w); err != nil {
		return domain.Wishlist{}, err
	}
	if err := s.Wishes.Save(ctx, &w); err != nil {
		return domain.Wishlist{}, err
	}
	return w, nil
}

// AddItem puts a product at the front of the wishlist. Adding a product
// twice is a Conflict.
func (s *WishlistService) AddItem(ctx context.Context, userID, productID string) (domain.Wishlist, error) {
	if err := requireProductID(productID); err != nil {
		return domain.Wishlist{}, err
	}
	p, err := s.Products.Get(ctx, productID)
	if err != nil {
		return domain.Wishlist{}, err
	}
	w, err := s.mutate(ctx, userID, func(w *domain.Wishlist) error { return w.AddItem(p) })
	if err != nil {
		return w, err
	}
	s.publish(ctx, events.WishlistItemAdded, w, productID)
	return w, nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID string) (domain.Wishlist, error) {
	if err := requireProductID(productID); err != nil {
		return domain.Wishlist{}, err
	}
	w, err := s.mutate(ctx, userID, func(w *domain.Wishlist) error { return w.RemoveItem(productID) })
	if err != nil {
		return w, err
	}
	s.publish(ctx, events.WishlistItemRemoved, w, productID)
	return w, nil
}

func (s *WishlistService) Clear(ctx context.Context, userID string) (domain.Wishlist, error) {
	w, err := s.mutate(ctx, userID, func(w *domain.Wishlist) error {
		w.Clear()
		return nil
	})
	if err != nil {
		return w, err
	}
	s.publish(ctx, events.WishlistCleared, w, "")
	return w, nil
}

// MoveToCart removes a product from the wishlist and prepends it to the
// cart as a new quantity 1 line. Both documents are committed together
// or not at all.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, productID string) (domain.Wishlist, domain.Cart, error) {
	if err := requireProductID(productID); err != nil {
		return domain.Wishlist{}, domain.Cart{}, err
	}
	w, err := s.Wishes.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Wishlist{}, domain.Cart{}, err
	}
	c, err := s.Carts.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Wishlist{}, domain.Cart{}, err
	}
	if err := domain.MoveToCart(&w, &c, productID); err != nil {
		return domain.Wishlist{}, domain.Cart{}, err
	}
	if err := s.Wishes.SaveWithCart(ctx, &w, &c); err != nil {
		return domain.Wishlist{}, domain.Cart{}, err
	}

	e := events.New(events.WishlistMovedToCart, userID, productID).ForCart(c)
	e.Quantity = 1
	publish(ctx, s.Events, e)
	return w, c, nil
}

func (s *WishlistService) publish(ctx context.Context, typ string, w domain.Wishlist, productID string) {
	e := events.New(typ, w.UserID, productID)
	e.Version = w.Version
	publish(ctx, s.Events, e)
}
