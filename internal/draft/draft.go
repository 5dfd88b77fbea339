// Package draft caches in-progress sale entry so a restart does not
// lose a half-typed bill. The cache is a convenience, not a source of
// truth: one entry under one fixed key, overwritten wholesale on every
// change, cleared on a confirmed sale.
package draft

import "shoptill/internal/billing"

// Draft is the not-yet-submitted sale form state.
type Draft struct {
	Lines           []billing.LineItem `json:"lines"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	PaymentMode     string             `json:"payment_mode"`
	AmountPaid      string             `json:"amount_paid"`
	ManualDate      string             `json:"manual_date,omitempty"`
}

// Empty reports whether there is nothing worth caching.
func (d *Draft) Empty() bool {
	if d == nil {
		return true
	}
	if d.CustomerName != "" || d.CustomerPhone != "" || d.CustomerAddress != "" || d.AmountPaid != "" {
		return false
	}
	for _, l := range d.Lines {
		if l.Resolved() || l.Name != "" {
			return false
		}
	}
	return true
}

// Store persists at most one draft.
type Store interface {
	// Load returns the cached draft, or nil when none exists.
	Load() (*Draft, error)
	// Save overwrites the cached draft.
	Save(*Draft) error
	// Clear removes the cached draft.
	Clear() error
}
