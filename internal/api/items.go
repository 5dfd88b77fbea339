package api

import (
	"context"
	"fmt"
	"net/url"
)

// SearchItems looks up catalog items by name fragment. The server ranks
// results; the client displays them in the given order.
func (c *Client) SearchItems(ctx context.Context, query string) ([]Item, error) {
	var items []Item
	err := c.get(ctx, "/items/search?q="+url.QueryEscape(query), &items)
	return items, err
}

// ListItems fetches the full catalog.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	err := c.get(ctx, "/items", &items)
	return items, err
}

// LowStockItems fetches items at or below the restock threshold.
func (c *Client) LowStockItems(ctx context.Context) ([]Item, error) {
	var items []Item
	err := c.get(ctx, "/items/low-stock", &items)
	return items, err
}

// UpdateItem replaces an item's editable fields.
func (c *Client) UpdateItem(ctx context.Context, id int64, upd ItemUpdate) (*Item, error) {
	var item Item
	if err := c.send(ctx, "PUT", fmt.Sprintf("/items/%d", id), upd, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
