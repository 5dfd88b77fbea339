package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_WorkedExample(t *testing.T) {
	lines := []LineItem{
		{ItemID: 1, Name: "Soap", UnitPrice: 100, Quantity: 2, DiscountPercent: 10},
		{ItemID: 2, Name: "Brush", UnitPrice: 50, Quantity: 1, DiscountPercent: 0},
	}

	got := Compute(lines)

	assert.Equal(t, 250.0, Round2(got.Subtotal))
	assert.Equal(t, 20.0, Round2(got.Discount))
	assert.Equal(t, 230.0, Round2(got.Final))
}

func TestCompute_FinalIsSubtotalMinusDiscount(t *testing.T) {
	lines := []LineItem{
		{ItemID: 1, UnitPrice: 33.33, Quantity: 3, DiscountPercent: 7.5},
		{ItemID: 2, UnitPrice: 0.01, Quantity: 99, DiscountPercent: 50},
		{ItemID: 3, UnitPrice: 1234.56, Quantity: 1, DiscountPercent: 12.34},
	}

	got := Compute(lines)

	// Exact identity on the unrounded values, not just after rounding.
	assert.Equal(t, got.Subtotal-got.Discount, got.Final)
	assert.GreaterOrEqual(t, got.Subtotal, 0.0)
	assert.GreaterOrEqual(t, got.Discount, 0.0)
	assert.GreaterOrEqual(t, got.Final, 0.0)
}

func TestCompute_SkipsUnresolvedAndNonPositiveQuantity(t *testing.T) {
	lines := []LineItem{
		{ItemID: 0, Name: "still typing", UnitPrice: 500, Quantity: 1},
		{ItemID: 4, UnitPrice: 10, Quantity: 0},
		{ItemID: 5, UnitPrice: 10, Quantity: -2},
		{ItemID: 6, UnitPrice: 10, Quantity: 1},
	}

	got := Compute(lines)

	assert.Equal(t, 10.0, got.Subtotal)
	assert.Equal(t, 10.0, got.Final)
}

func TestCompute_CustomLineCounts(t *testing.T) {
	lines := []LineItem{
		{Custom: true, Name: "loose candles", UnitPrice: 15, Quantity: 4},
	}

	got := Compute(lines)

	assert.Equal(t, 60.0, got.Subtotal)
}

func TestCompute_NoPreRounding(t *testing.T) {
	// 100 lines of 0.005 discount each: rounding per line would give 0
	// or 1.00 depending on mode; accumulating unrounded gives 0.50.
	var lines []LineItem
	for i := 0; i < 100; i++ {
		lines = append(lines, LineItem{ItemID: int64(i + 1), UnitPrice: 0.01, Quantity: 1, DiscountPercent: 50})
	}

	got := Compute(lines)

	assert.InDelta(t, 0.50, got.Discount, 1e-9)
	assert.Equal(t, 0.5, Round2(got.Discount))
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil)
	assert.Equal(t, Totals{}, got)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.35, Round2(2.345))
	assert.Equal(t, 2.34, Round2(2.344))
	assert.Equal(t, 0.0, Round2(0))
	assert.False(t, math.Signbit(Round2(0)))
}

func TestLineTotal(t *testing.T) {
	l := LineItem{ItemID: 1, UnitPrice: 100, Quantity: 2, DiscountPercent: 10}
	assert.Equal(t, 180.0, l.LineTotal())
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹1,234.50", Money(1234.5))
	assert.Equal(t, "₹0.00", Money(0))
	assert.Equal(t, "₹230.00", Money(230))
}
