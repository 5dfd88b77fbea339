package api

import (
	"context"
	"fmt"
	"net/url"
)

// CreatePurchase submits a supplier delivery. The backend restocks and
// reprices the affected items.
func (c *Client) CreatePurchase(ctx context.Context, batch PurchaseBatch) error {
	return c.send(ctx, "POST", "/purchases/", batch, nil)
}

// ListPurchases fetches the purchase batch history.
func (c *Client) ListPurchases(ctx context.Context) ([]PurchaseSummary, error) {
	var purchases []PurchaseSummary
	err := c.get(ctx, "/purchases/", &purchases)
	return purchases, err
}

// GetPurchase fetches one purchase batch with its lines.
func (c *Client) GetPurchase(ctx context.Context, id int64) (*PurchaseDetail, error) {
	var detail PurchaseDetail
	if err := c.get(ctx, fmt.Sprintf("/purchases/%d", id), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SearchSuppliers matches dealers by phone fragment.
func (c *Client) SearchSuppliers(ctx context.Context, phone string) ([]Supplier, error) {
	var suppliers []Supplier
	err := c.get(ctx, "/suppliers/search?q="+url.QueryEscape(phone), &suppliers)
	return suppliers, err
}
