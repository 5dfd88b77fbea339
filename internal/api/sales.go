package api

import (
	"context"
	"fmt"
	"sort"
)

// PreviewSale asks the backend for authoritative totals without
// persisting anything.
func (c *Client) PreviewSale(ctx context.Context, req SaleRequest) (*SalePreview, error) {
	var preview SalePreview
	if err := c.send(ctx, "POST", "/sales/preview", req, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

// CreateSale persists a sale and returns its durable bill id.
func (c *Client) CreateSale(ctx context.Context, req SaleRequest) (*SaleReceipt, error) {
	var receipt SaleReceipt
	if err := c.send(ctx, "POST", "/sales", req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetSale fetches a persisted sale for invoice display.
func (c *Client) GetSale(ctx context.Context, billID int64) (*SaleDetail, error) {
	var detail SaleDetail
	if err := c.get(ctx, fmt.Sprintf("/sales/%d", billID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SalesHistory merges the counter and quick-sale history feeds into one
// most-recent-first list, which is how the shop reads it anyway.
func (c *Client) SalesHistory(ctx context.Context) ([]SaleSummary, error) {
	var normal, random []SaleSummary
	if err := c.get(ctx, "/sales/history", &normal); err != nil {
		return nil, err
	}
	if err := c.get(ctx, "/sales/random-history", &random); err != nil {
		return nil, err
	}

	for i := range random {
		if random[i].SaleType == "" {
			random[i].SaleType = "random"
		}
	}
	merged := append(normal, random...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})
	return merged, nil
}
