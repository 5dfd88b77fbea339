package api

import (
	"context"
	"fmt"
	"strconv"
)

// CreditList fetches all sales with an outstanding due amount.
func (c *Client) CreditList(ctx context.Context) ([]CreditEntry, error) {
	var entries []CreditEntry
	err := c.get(ctx, "/credit", &entries)
	return entries, err
}

// PayCredit records a payment against a credit sale. The caller should
// refetch the ledger afterwards; the backend recomputes the due amount.
func (c *Client) PayCredit(ctx context.Context, saleID int64, amount float64) error {
	path := fmt.Sprintf("/credit/pay/%d?amount=%s", saleID, strconv.FormatFloat(amount, 'f', -1, 64))
	return c.send(ctx, "POST", path, nil, nil)
}
