package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"-"`
	UpdatedAt string `db:"updated_at" json:"-"`
}

// Product is the catalog entry a ledger line points at. Price is the
// already discounted price; DiscountPercentage stays in [0,100).
type Product struct {
	ID                 string  `db:"id" json:"id"`
	CategoryID         string  `db:"category_id" json:"category"`
	Title              string  `db:"title" json:"title"`
	Description        string  `db:"description" json:"description,omitempty"`
	Thumbnail          string  `db:"thumbnail" json:"thumbnail"`
	Price              float64 `db:"price" json:"price"`
	DiscountPercentage float64 `db:"discount_percentage" json:"discountPercentage"`
	Stock              int     `db:"stock" json:"stock"`
	Active             bool    `db:"active" json:"-"`
	CreatedAt          string  `db:"created_at" json:"-"`
	UpdatedAt          string  `db:"updated_at" json:"-"`
}
