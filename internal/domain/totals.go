package domain

import "github.com/shopspring/decimal"

// Totals are derived from Cart.Products and never set independently.
type Totals struct {
	TotalAmount        float64 `json:"totalAmount"`
	TotalItems         int     `json:"totalItems"`
	TotalOriginalPrice float64 `json:"totalOriginalPrice"`
}

var hundred = decimal.NewFromInt(100)

// OriginalPrice reverses the discount baked into price and rounds half up to
// a whole currency unit. Callers keep discountPercentage below 100; at or
// above it the line has no meaningful original price and 0 is returned.
func OriginalPrice(price, discountPercentage float64) decimal.Decimal {
	keep := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discountPercentage).Div(hundred))
	if !keep.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromFloat(price).Div(keep).Round(0)
}

// CalculateTotals counts line items, not units.
func CalculateTotals(lines []LineItem) Totals {
	amount, original := decimal.Zero, decimal.Zero
	for _, li := range lines {
		qty := decimal.NewFromInt(int64(li.Quantity))
		amount = amount.Add(decimal.NewFromFloat(li.Product.Price).Mul(qty))
		original = original.Add(OriginalPrice(li.Product.Price, li.Product.DiscountPercentage).Mul(qty))
	}
	return Totals{
		TotalAmount:        amount.InexactFloat64(),
		TotalItems:         len(lines),
		TotalOriginalPrice: original.InexactFloat64(),
	}
}
