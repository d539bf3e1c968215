package domain

import (
	"math/rand"
	"testing"
)

func line(id string, price, discount float64, qty int) LineItem {
	return LineItem{Product: Product{ID: id, Price: price, DiscountPercentage: discount}, Quantity: qty}
}

func TestOriginalPrice(t *testing.T) {
	cases := []struct {
		price, discount float64
		want            int64
	}{
		{90, 10, 100},
		{100, 0, 100},
		{99.99, 12.5, 114}, // 114.274...
		{87.5, 12.5, 100},
		{10, 60, 25},
		{1.5, 0, 2}, // half rounds up
		{50, 100, 0},
	}
	for _, tc := range cases {
		got := OriginalPrice(tc.price, tc.discount)
		if got.IntPart() != tc.want {
			t.Fatalf("OriginalPrice(%v,%v) = %s, want %d", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestCalculateTotals(t *testing.T) {
	got := CalculateTotals([]LineItem{line("p1", 90, 10, 2), line("p2", 15, 0, 3)})
	want := Totals{TotalAmount: 225, TotalItems: 2, TotalOriginalPrice: 245}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCalculateTotalsEmpty(t *testing.T) {
	if got := CalculateTotals(nil); got != (Totals{}) {
		t.Fatalf("empty lines should give zero totals, got %+v", got)
	}
}

func TestCalculateTotalsCountsLinesNotUnits(t *testing.T) {
	got := CalculateTotals([]LineItem{line("p1", 1, 0, 40)})
	if got.TotalItems != 1 {
		t.Fatalf("want 1 line item, got %d", got.TotalItems)
	}
}

func TestCalculateTotalsDecimalSums(t *testing.T) {
	got := CalculateTotals([]LineItem{line("a", 0.1, 0, 1), line("b", 0.2, 0, 1)})
	if got.TotalAmount != 0.3 {
		t.Fatalf("want exact 0.3, got %v", got.TotalAmount)
	}
}

func TestCalculateTotalsIsPure(t *testing.T) {
	lines := []LineItem{line("p1", 19.99, 5, 3), line("p2", 4.5, 50, 1)}
	first := CalculateTotals(lines)
	second := CalculateTotals(lines)
	if first != second {
		t.Fatalf("recalculation changed result: %+v vs %+v", first, second)
	}
	if lines[0].Quantity != 3 || lines[1].Product.Price != 4.5 {
		t.Fatal("input lines were mutated")
	}
}

func TestOriginalNeverBelowAmountForWholePrices(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 500; n++ {
		var lines []LineItem
		anyDiscount := false
		for i := 0; i < 1+r.Intn(5); i++ {
			d := float64(r.Intn(3) * r.Intn(50))
			if d > 0 {
				anyDiscount = true
			}
			lines = append(lines, line("p", float64(1+r.Intn(500)), d, 1+r.Intn(4)))
		}
		got := CalculateTotals(lines)
		if anyDiscount && got.TotalOriginalPrice < got.TotalAmount {
			t.Fatalf("original %v below amount %v for %+v", got.TotalOriginalPrice, got.TotalAmount, lines)
		}
		if !anyDiscount && got.TotalOriginalPrice != got.TotalAmount {
			t.Fatalf("no discount but original %v != amount %v", got.TotalOriginalPrice, got.TotalAmount)
		}
	}
}
