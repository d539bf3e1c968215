package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
)

// Ledger event types.
const (
	CartItemAdded         = "cart.item_added"
	CartItemRemoved       = "cart.item_removed"
	CartQuantityDecreased = "cart.quantity_decreased"
	CartSavedForLater     = "cart.saved_for_later"
	CartMovedToCart       = "cart.moved_to_cart"
	CartSavedItemRemoved  = "cart.saved_item_removed"
	CartSavedItemsEmptied = "cart.saved_items_emptied"
	CartCleared           = "cart.cleared"
	WishlistItemAdded     = "wishlist.item_added"
	WishlistItemRemoved   = "wishlist.item_removed"
	WishlistCleared       = "wishlist.cleared"
	WishlistMovedToCart   = "wishlist.moved_to_cart"
)

// Event describes one committed ledger change.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	UserID    string         `json:"userId"`
	ProductID string         `json:"productId,omitempty"`
	Quantity  int            `json:"quantity,omitempty"`
	Totals    *domain.Totals `json:"totals,omitempty"`
	Version   int            `json:"version"`
	At        time.Time      `json:"at"`
}

// New stamps an event with a fresh id and the current time.
func New(typ, userID, productID string) Event {
	return Event{ID: uuid.NewString(), Type: typ, UserID: userID, ProductID: productID, At: time.Now().UTC()}
}

// ForCart fills the totals snapshot and version from a saved cart.
func (e Event) ForCart(c domain.Cart) Event {
	t := c.Totals
	e.Totals = &t
	e.Version = c.Version
	return e
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Multi fans an event out to every publisher concurrently. One failing
// publisher does not cancel the others; the first error is returned.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var g errgroup.Group
	for _, p := range m {
		g.Go(func() error { return p.Publish(ctx, e) })
	}
	return g.Wait()
}

func (m Multi) Close() error {
	var g errgroup.Group
	for _, p := range m {
		g.Go(p.Close)
	}
	return g.Wait()
}
