// Package billing computes optimistic bill totals on the client.
// The backend remains the pricing authority; these numbers are shown
// while a preview or confirm request is in flight and are never
// submitted as-is.
package billing

import "math"

// LineItem is one product row within a sale or purchase draft.
// ItemID is zero until a catalog match has been committed; Custom marks
// a free-text entry that intentionally has no catalog reference.
type LineItem struct {
	ItemID          int64   `json:"item_id"`
	Name            string  `json:"name"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	DiscountPercent float64 `json:"discount_percent"`
	Custom          bool    `json:"custom,omitempty"`
}

// Resolved reports whether the line counts toward totals and submission.
func (l LineItem) Resolved() bool {
	return l.ItemID != 0 || l.Custom
}

// LineTotal is the discounted amount for this line alone.
func (l LineItem) LineTotal() float64 {
	base := l.UnitPrice * float64(l.Quantity)
	return base - base*l.DiscountPercent/100
}

// Totals is the live bill summary shown beneath an entry grid.
type Totals struct {
	Subtotal float64
	Discount float64
	Final    float64
}

// Compute derives totals from the given lines. Lines without a resolved
// item reference or with a non-positive quantity are excluded. Values
// accumulate unrounded; callers round at presentation via Round2 so
// rounding error does not compound across lines.
func Compute(lines []LineItem) Totals {
	var t Totals
	for _, l := range lines {
		if !l.Resolved() || l.Quantity <= 0 {
			continue
		}
		base := l.UnitPrice * float64(l.Quantity)
		t.Subtotal += base
		t.Discount += base * l.DiscountPercent / 100
	}
	t.Final = t.Subtotal - t.Discount
	return t
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
