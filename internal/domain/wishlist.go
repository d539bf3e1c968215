package domain

// Wishlist is an insertion ordered set of products, newest first.
type Wishlist struct {
	UserID    string    `json:"userId"`
	Products  []Product `json:"products"`
	Version   int       `json:"version"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

func NewWishlist(userID string) Wishlist {
	return Wishlist{UserID: userID, Products: []Product{}}
}

func (w *Wishlist) index(productID string) int {
	for i, p := range w.Products {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (w *Wishlist) Contains(productID string) bool { return w.index(productID) >= 0 }

func (w *Wishlist) AddItem(p Product) error {
	if w.Contains(p.ID) {
		return Conflict(MsgAlreadyInWishlist)
	}
	w.Products = append([]Product{p}, w.Products...)
	return nil
}

func (w *Wishlist) RemoveItem(productID string) error {
	_, err := w.Take(productID)
	return err
}

// Take removes productID and returns it.
func (w *Wishlist) Take(productID string) (Product, error) {
	i := w.index(productID)
	if i < 0 {
		return Product{}, NotFound(MsgNotInWishlist)
	}
	p := w.Products[i]
	w.Products = append(w.Products[:i], w.Products[i+1:]...)
	return p, nil
}

func (w *Wishlist) Clear() { w.Products = []Product{} }

// MoveToCart moves productID from w to the front of c as a new quantity 1
// line. Both documents are changed in memory only; persisting them
// together is the caller's job.
func MoveToCart(w *Wishlist, c *Cart, productID string) error {
	p, err := w.Take(productID)
	if err != nil {
		return err
	}
	c.PrependLine(p)
	return nil
}
