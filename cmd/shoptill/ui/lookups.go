package ui

import (
	"context"

	"shoptill/internal/api"
)

// ItemLookup adapts catalog search for a SearchBox.
func ItemLookup(c *api.Client) LookupFunc {
	return func(ctx context.Context, query string) ([]SearchResult, error) {
		items, err := c.SearchItems(ctx, query)
		if err != nil {
			return nil, err
		}
		out := make([]SearchResult, len(items))
		for i, it := range items {
			out[i] = SearchResult{ID: it.ID, Name: it.Name, Price: it.SellingPrice}
		}
		return out, nil
	}
}

// SupplierLookup adapts dealer phone search for a SearchBox.
func SupplierLookup(c *api.Client) LookupFunc {
	return func(ctx context.Context, query string) ([]SearchResult, error) {
		suppliers, err := c.SearchSuppliers(ctx, query)
		if err != nil {
			return nil, err
		}
		out := make([]SearchResult, len(suppliers))
		for i, s := range suppliers {
			out[i] = SearchResult{ID: s.ID, Name: s.Name, Detail: s.Phone, Extra: s.Address}
		}
		return out, nil
	}
}

// CustomerLookup adapts customer name/phone search for a SearchBox.
// Detail carries the phone, Extra the address, so a commit can fill
// the whole customer section at once.
func CustomerLookup(c *api.Client) LookupFunc {
	return func(ctx context.Context, query string) ([]SearchResult, error) {
		customers, err := c.SearchCustomers(ctx, query)
		if err != nil {
			return nil, err
		}
		out := make([]SearchResult, len(customers))
		for i, cu := range customers {
			out[i] = SearchResult{ID: cu.ID, Name: cu.Name, Detail: cu.Phone, Extra: cu.Address}
		}
		return out, nil
	}
}
