// Package roster filters and orders already-fetched lists for the
// customers and history pages. Everything here is pure and operates on
// small in-memory slices; the backend does not paginate these feeds.
package roster

import (
	"sort"
	"strings"

	"shoptill/internal/api"
)

// SortKey selects the ordering for the customers overview.
type SortKey int

const (
	SortRecent SortKey = iota // last purchase date, newest first
	SortNameAsc
	SortNameDesc
	SortCreditHigh
	SortCreditLow
)

// Label returns the short name shown in the sort selector.
func (k SortKey) Label() string {
	switch k {
	case SortNameAsc:
		return "Name A-Z"
	case SortNameDesc:
		return "Name Z-A"
	case SortCreditHigh:
		return "Credit High"
	case SortCreditLow:
		return "Credit Low"
	default:
		return "Most Recent"
	}
}

// NextSortKey cycles through the sort modes.
func NextSortKey(k SortKey) SortKey {
	return (k + 1) % 5
}

// FilterCustomers keeps rows whose name matches case-insensitively or
// whose raw phone contains the query as a substring. An empty query
// returns the input unchanged.
func FilterCustomers(rows []api.CustomerSummary, query string) []api.CustomerSummary {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)

	out := make([]api.CustomerSummary, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(r.Phone, query) {
			out = append(out, r)
		}
	}
	return out
}

// SortCustomers orders rows by the given key. The sort is stable, so
// repeated application never reorders equal-key groups.
func SortCustomers(rows []api.CustomerSummary, key SortKey) []api.CustomerSummary {
	out := make([]api.CustomerSummary, len(rows))
	copy(out, rows)

	switch key {
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	case SortCreditHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCredit > out[j].TotalCredit })
	case SortCreditLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].TotalCredit < out[j].TotalCredit })
	default:
		// Backend dates are ISO-8601, so lexical order is date order.
		sort.SliceStable(out, func(i, j int) bool { return out[i].LastPurchaseDate > out[j].LastPurchaseDate })
	}
	return out
}

// FilterSales keeps history rows whose customer name matches
// case-insensitively or whose raw phone contains the query.
func FilterSales(rows []api.SaleSummary, query string) []api.SaleSummary {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)

	out := make([]api.SaleSummary, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.CustomerName), q) || strings.Contains(r.CustomerPhone, query) {
			out = append(out, r)
		}
	}
	return out
}
