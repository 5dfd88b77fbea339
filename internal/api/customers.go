package api

import (
	"context"
	"fmt"
	"net/url"
)

// SearchCustomers matches customers by name or phone fragment.
func (c *Client) SearchCustomers(ctx context.Context, query string) ([]Customer, error) {
	var customers []Customer
	err := c.get(ctx, "/customers/search?q="+url.QueryEscape(query), &customers)
	return customers, err
}

// CustomerSummaries fetches the customers overview with purchase and
// credit aggregates.
func (c *Client) CustomerSummaries(ctx context.Context) ([]CustomerSummary, error) {
	var rows []CustomerSummary
	err := c.get(ctx, "/customers/summary", &rows)
	return rows, err
}

// CustomerDetails fetches one customer with aggregates and sale
// ledger in a single call.
func (c *Client) CustomerDetails(ctx context.Context, customerID int64) (*CustomerDetail, error) {
	var detail CustomerDetail
	if err := c.get(ctx, fmt.Sprintf("/customers/%d/details", customerID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CustomerSales fetches one customer's sale history. Kept alongside
// CustomerDetails because older backend deployments lack the combined
// endpoint; the customers page falls back to it.
func (c *Client) CustomerSales(ctx context.Context, customerID int64) ([]CustomerSale, error) {
	var sales []CustomerSale
	err := c.get(ctx, fmt.Sprintf("/customers/%d/sales", customerID), &sales)
	return sales, err
}
