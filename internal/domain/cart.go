package domain

// LineItem is one {product, quantity} entry of a cart.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the per-user cart document. Version is bumped by every
// successful save and guards against lost updates.
type Cart struct {
	UserID        string     `json:"userId"`
	Products      []LineItem `json:"products"`
	SavedForLater []Product  `json:"savedForLater"`
	Totals
	Version   int    `json:"version"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func NewCart(userID string) Cart {
	return Cart{UserID: userID, Products: []LineItem{}, SavedForLater: []Product{}}
}

func (c *Cart) Recalculate() { c.Totals = CalculateTotals(c.Products) }

func (c *Cart) lineIndex(productID string) int {
	for i, li := range c.Products {
		if li.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) savedIndex(productID string) int {
	for i, p := range c.SavedForLater {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

// Quantity reports the quantity of the first line holding productID.
func (c *Cart) Quantity(productID string) int {
	if i := c.lineIndex(productID); i >= 0 {
		return c.Products[i].Quantity
	}
	return 0
}

// AddItem merges into an existing line in place or prepends a new one.
func (c *Cart) AddItem(p Product, qty int) error {
	if qty < 1 {
		return Validation(MsgQuantityPositive)
	}
	if i := c.lineIndex(p.ID); i >= 0 {
		c.Products[i].Product = p
		c.Products[i].Quantity += qty
	} else {
		c.Products = append([]LineItem{{Product: p, Quantity: qty}}, c.Products...)
	}
	c.Recalculate()
	return nil
}

// PrependLine adds a fresh quantity 1 line without merging into an
// existing line for the same product. Both move-to-cart paths use it.
func (c *Cart) PrependLine(p Product) {
	c.Products = append([]LineItem{{Product: p, Quantity: 1}}, c.Products...)
	c.Recalculate()
}

func (c *Cart) RemoveItem(productID string) error {
	i := c.lineIndex(productID)
	if i < 0 {
		return NotFound(MsgNotInCart)
	}
	c.Products = append(c.Products[:i], c.Products[i+1:]...)
	c.Recalculate()
	return nil
}

// DecreaseQuantity drops the line once its quantity would reach zero.
func (c *Cart) DecreaseQuantity(productID string) error {
	i := c.lineIndex(productID)
	if i < 0 {
		return NotFound(MsgNotInCart)
	}
	if c.Products[i].Quantity > 1 {
		c.Products[i].Quantity--
	} else {
		c.Products = append(c.Products[:i], c.Products[i+1:]...)
	}
	c.Recalculate()
	return nil
}

func (c *Cart) SaveForLater(productID string) error {
	i := c.lineIndex(productID)
	if i < 0 {
		return NotFound(MsgNotInCart)
	}
	p := c.Products[i].Product
	c.Products = append(c.Products[:i], c.Products[i+1:]...)
	c.SavedForLater = append([]Product{p}, c.SavedForLater...)
	c.Recalculate()
	return nil
}

// MoveToCart takes a saved product back into the cart with quantity 1.
func (c *Cart) MoveToCart(productID string) error {
	i := c.savedIndex(productID)
	if i < 0 {
		return NotFound(MsgNotInSaved)
	}
	p := c.SavedForLater[i]
	c.SavedForLater = append(c.SavedForLater[:i], c.SavedForLater[i+1:]...)
	c.PrependLine(p)
	return nil
}

// RemoveSavedItem and EmptySavedItems leave totals alone; saved
// products are not part of them.
func (c *Cart) RemoveSavedItem(productID string) error {
	i := c.savedIndex(productID)
	if i < 0 {
		return NotFound(MsgNotInSaved)
	}
	c.SavedForLater = append(c.SavedForLater[:i], c.SavedForLater[i+1:]...)
	return nil
}

func (c *Cart) EmptySavedItems() { c.SavedForLater = []Product{} }

func (c *Cart) Clear() {
	c.Products = []LineItem{}
	c.Totals = Totals{}
}
