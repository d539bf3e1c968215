package domain

import (
	"errors"
	"testing"
)

func productIDs(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestWishlistAddRejectsDuplicate(t *testing.T) {
	w := NewWishlist("u1")
	if err := w.AddItem(p1); err != nil {
		t.Fatal(err)
	}
	if err := w.AddItem(p1); !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	if err := w.RemoveItem("p1"); err != nil {
		t.Fatal(err)
	}
	if err := w.AddItem(p1); err != nil {
		t.Fatalf("re-add after remove: %v", err)
	}
}

func TestWishlistOrder(t *testing.T) {
	w := NewWishlist("u1")
	_ = w.AddItem(p1)
	_ = w.AddItem(p2)
	_ = w.AddItem(p3)
	if !sameIDs(productIDs(w.Products), []string{"p3", "p2", "p1"}) {
		t.Fatalf("newest first expected, got %v", productIDs(w.Products))
	}
	if err := w.RemoveItem("p2"); err != nil {
		t.Fatal(err)
	}
	if !sameIDs(productIDs(w.Products), []string{"p3", "p1"}) {
		t.Fatalf("remove must keep order, got %v", productIDs(w.Products))
	}
	if err := w.RemoveItem("p2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	w.Clear()
	if len(w.Products) != 0 {
		t.Fatal("clear left products")
	}
}

func TestMoveWishlistItemToCart(t *testing.T) {
	w := NewWishlist("u1")
	c := NewCart("u1")
	_ = c.AddItem(p1, 5)
	_ = w.AddItem(p1)
	if err := MoveToCart(&w, &c, "p1"); err != nil {
		t.Fatal(err)
	}
	if len(w.Products) != 0 {
		t.Fatal("wishlist should be empty")
	}
	if len(c.Products) != 2 || c.Products[0].Product.ID != "p1" || c.Products[0].Quantity != 1 {
		t.Fatalf("expected a new p1 line with quantity 1 in front, got %+v", c.Products)
	}
	if c.TotalItems != 2 || c.TotalAmount != 540 {
		t.Fatalf("totals: %+v", c.Totals)
	}
	if err := MoveToCart(&w, &c, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	err := Persistence(errors.New("disk full"))
	if !errors.Is(err, ErrPersistence) {
		t.Fatal("persistence kind lost")
	}
	if PublicMessage(err) != MsgStorageUnavailable {
		t.Fatalf("cause leaked into public message: %q", PublicMessage(err))
	}
	if Persistence(nil) != nil {
		t.Fatal("nil cause should stay nil")
	}
	if PublicMessage(errors.New("raw")) == "raw" {
		t.Fatal("plain errors must not be shown verbatim")
	}
}
