package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestCartAddDecreaseOverHTTP(t *testing.T) {
	app, _ := newApp(t, nil)
	cl := loggedIn(t, app, "alice@storefront.test")

	r := cl.do("POST", "/api/v1/cart", map[string]any{"productId": "basmati-rice", "quantity": 2})
	if r.Status != http.StatusOK || !r.Success {
		t.Fatalf("add: %d %s", r.Status, r.Raw)
	}
	if r.Message != "Product added to cart" {
		t.Fatalf("unexpected message %q", r.Message)
	}
	if r.Cart.TotalAmount != 180 || r.Cart.TotalOriginalPrice != 200 || r.Cart.TotalItems != 1 {
		t.Fatalf("totals after first add: %+v", r.Cart.Totals)
	}

	r = cl.do("POST", "/api/v1/cart", map[string]any{"productId": "basmati-rice", "quantity": 1})
	if r.Cart.Products[0].Quantity != 3 || r.Cart.TotalAmount != 270 || r.Cart.TotalOriginalPrice != 300 {
		t.Fatalf("merge: %+v", r.Cart)
	}

	for i := 0; i < 3; i++ {
		r = cl.do("PUT", "/api/v1/cart/decrease-quantity/basmati-rice", nil)
		if r.Status != http.StatusOK {
			t.Fatalf("decrease %d: %d %s", i, r.Status, r.Raw)
		}
	}
	if len(r.Cart.Products) != 0 || r.Cart.TotalAmount != 0 || r.Cart.TotalOriginalPrice != 0 || r.Cart.TotalItems != 0 {
		t.Fatalf("want empty cart, got %+v", r.Cart)
	}

	r = cl.do("GET", "/api/v1/cart", nil)
	if r.Status != http.StatusOK || r.Cart.UserID != "u-alice" || r.Cart.Version != 5 {
		t.Fatalf("get: %d %+v", r.Status, r.Cart)
	}
}

func TestCartErrorsMapToStatus(t *testing.T) {
	app, _ := newApp(t, nil)
	cl := loggedIn(t, app, "alice@storefront.test")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		msg    string
	}{
		{"zero quantity", "POST", "/api/v1/cart", map[string]any{"productId": "honey-jar", "quantity": 0}, http.StatusBadRequest, "Quantity must be at least 1"},
		{"missing quantity", "POST", "/api/v1/cart", map[string]any{"productId": "honey-jar"}, http.StatusBadRequest, "Quantity must be at least 1"},
		{"missing product id", "POST", "/api/v1/cart", map[string]any{"quantity": 1}, http.StatusBadRequest, "Missing or invalid fields"},
		{"unknown product", "POST", "/api/v1/cart", map[string]any{"productId": "ghost", "quantity": 1}, http.StatusNotFound, "Product not found"},
		{"remove absent", "DELETE", "/api/v1/cart/honey-jar", nil, http.StatusNotFound, "Product not found in cart"},
		{"decrease absent", "PUT", "/api/v1/cart/decrease-quantity/honey-jar", nil, http.StatusNotFound, "Product not found in cart"},
		{"save absent", "POST", "/api/v1/cart/save-for-later", map[string]any{"productId": "honey-jar"}, http.StatusNotFound, "Product not found in cart"},
		{"move absent", "POST", "/api/v1/cart/move-to-cart", map[string]any{"productId": "honey-jar"}, http.StatusNotFound, "Product not found in saved items"},
		{"remove saved absent", "DELETE", "/api/v1/cart/saved-items/honey-jar", nil, http.StatusNotFound, "Product not found in saved items"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := cl.do(tc.method, tc.path, tc.body)
			if r.Status != tc.status || r.Success || r.Message != tc.msg {
				t.Fatalf("want %d %q, got %d %s", tc.status, tc.msg, r.Status, r.Raw)
			}
		})
	}
}

func TestCartSavedItemsOverHTTP(t *testing.T) {
	app, _ := newApp(t, nil)
	cl := loggedIn(t, app, "bob@storefront.test")

	cl.do("POST", "/api/v1/cart", map[string]any{"productId": "iphone-9", "quantity": 2})
	cl.do("POST", "/api/v1/cart", map[string]any{"productId": "honey-jar", "quantity": 1})

	r := cl.do("POST", "/api/v1/cart/save-for-later", map[string]any{"productId": "iphone-9"})
	if r.Status != http.StatusOK || len(r.Cart.SavedForLater) != 1 || r.Cart.TotalAmount != 20 {
		t.Fatalf("save for later: %d %s", r.Status, r.Raw)
	}

	r = cl.do("POST", "/api/v1/cart/move-to-cart", map[string]any{"productId": "iphone-9"})
	if r.Status != http.StatusOK || r.Cart.Products[0].Product.ID != "iphone-9" || r.Cart.Products[0].Quantity != 1 {
		t.Fatalf("move to cart: %d %s", r.Status, r.Raw)
	}

	cl.do("POST", "/api/v1/cart/save-for-later", map[string]any{"productId": "honey-jar"})
	r = cl.do("DELETE", "/api/v1/cart/saved-items/honey-jar", nil)
	if r.Status != http.StatusOK || len(r.Cart.SavedForLater) != 0 || r.Cart.TotalAmount != 549 {
		t.Fatalf("remove saved: %d %s", r.Status, r.Raw)
	}
}

// /clear must not be captured by the /:id routes.
func TestClearRoutesAreReachable(t *testing.T) {
	app, _ := newApp(t, nil)
	cl := loggedIn(t, app, "alice@storefront.test")

	cl.do("POST", "/api/v1/cart", map[string]any{"productId": "iphone-9", "quantity": 1})
	cl.do("POST", "/api/v1/cart", map[string]any{"productId": "macbook-pro", "quantity": 1})
	cl.do("POST", "/api/v1/cart/save-for-later", map[string]any{"productId": "macbook-pro"})
	cl.do("POST", "/api/v1/wishlist", map[string]any{"productId": "honey-jar"})

	r := cl.do("DELETE", "/api/v1/cart/clear", nil)
	if r.Status != http.StatusOK || r.Message != "Cart cleared successfully" {
		t.Fatalf("cart clear: %d %s", r.Status, r.Raw)
	}
	if len(r.Cart.Products) != 0 || r.Cart.TotalAmount != 0 || len(r.Cart.SavedForLater) != 1 {
		t.Fatalf("clear must keep saved items only: %+v", r.Cart)
	}

	r = cl.do("DELETE", "/api/v1/cart/saved-items/clear", nil)
	if r.Status != http.StatusOK || len(r.Cart.SavedForLater) != 0 {
		t.Fatalf("saved clear: %d %s", r.Status, r.Raw)
	}

	r = cl.do("DELETE", "/api/v1/wishlist/clear", nil)
	if r.Status != http.StatusOK || len(r.Wishlist.Products) != 0 {
		t.Fatalf("wishlist clear: %d %s", r.Status, r.Raw)
	}
}

func TestLedgersAreScopedToTheUser(t *testing.T) {
	app, _ := newApp(t, nil)
	alice := loggedIn(t, app, "alice@storefront.test")
	bob := loggedIn(t, app, "bob@storefront.test")

	alice.do("POST", "/api/v1/cart", map[string]any{"productId": "iphone-9", "quantity": 1})

	r := bob.do("GET", "/api/v1/cart", nil)
	if r.Status != http.StatusOK || len(r.Cart.Products) != 0 || r.Cart.UserID != "u-bob" {
		t.Fatalf("bob sees a foreign cart: %+v", r.Cart)
	}
}

func TestCartRejectsQuantityAboveCap(t *testing.T) {
	app, _ := newApp(t, nil)
	cl := loggedIn(t, app, "alice@storefront.test")

	r := cl.do("POST", "/api/v1/cart", map[string]any{"productId": "honey-jar", "quantity": 51})
	if r.Status != http.StatusBadRequest || r.Success || r.Message != "Quantity must be at most 50" {
		t.Fatalf("want 400 for quantity 51, got %d %s", r.Status, r.Raw)
	}

	r = cl.do("GET", "/api/v1/cart", nil)
	if len(r.Cart.Products) != 0 || r.Cart.TotalItems != 0 || r.Cart.Version != 0 {
		t.Fatalf("cart changed after rejected add: %+v", r.Cart)
	}

	r = cl.do("POST", "/api/v1/cart", map[string]any{"productId": "honey-jar", "quantity": 50})
	if r.Status != http.StatusOK || r.Cart.Products[0].Quantity != 50 {
		t.Fatalf("quantity 50 should be accepted: %d %s", r.Status, r.Raw)
	}
}

func TestMalformedBodyIsLoggedAsBody(t *testing.T) {
	app, _ := newApp(t, nil)
	cl := loggedIn(t, app, "alice@storefront.test")

	bodies := map[string]string{
		"string quantity":     `{"productId":"honey-jar","quantity":"2"}`,
		"fractional quantity": `{"productId":"honey-jar","quantity":1.5}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var r apiResponse
			logs := captureLogs(t, func() {
				r = cl.do("POST", "/api/v1/cart", json.RawMessage(body))
			})
			if r.Status != http.StatusBadRequest || r.Message != "Missing or invalid fields" {
				t.Fatalf("want 400, got %d %s", r.Status, r.Raw)
			}
			e, ok := findAction(logs, "validation.fail")
			if !ok {
				t.Fatalf("expected validation.fail log, got %+v", logs)
			}
			if e.Fields["field"] != "body" {
				t.Fatalf("want field body, got %+v", e.Fields)
			}
		})
	}

	var r apiResponse
	logs := captureLogs(t, func() {
		r = cl.do("POST", "/api/v1/wishlist", map[string]any{"productId": "bad id!"})
	})
	e, ok := findAction(logs, "validation.fail")
	if r.Status != http.StatusBadRequest || !ok || e.Fields["field"] != "productId" {
		t.Fatalf("want productId failure, got %d %+v", r.Status, logs)
	}
}
