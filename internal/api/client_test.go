package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, nil), srv
}

func TestSearchItems(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/search", r.URL.Path)
		assert.Equal(t, "blue soap", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]Item{
			{ID: 7, Name: "Blue Soap", SellingPrice: 35, Quantity: 12},
		})
	}))

	items, err := c.SearchItems(context.Background(), "blue soap")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, 35.0, items[0].SellingPrice)
}

func TestGet_NonOKStatus(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Sale not found"}`, http.StatusNotFound)
	}))

	_, err := c.GetSale(context.Background(), 99)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Contains(t, se.Body, "Sale not found")
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]Item{})
	}))

	_, err := c.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad query", http.StatusBadRequest)
	}))

	_, err := c.ListItems(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCreateSale_PostsOnceEvenOnFailure(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "stock changed", http.StatusInternalServerError)
	}))

	_, err := c.CreateSale(context.Background(), SaleRequest{PaymentMode: "cash"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "writes must never be retried")
}

func TestCreateSale_PayloadAndReceipt(t *testing.T) {
	name := "Asha"
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sales", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SaleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.CustomerName)
		assert.Equal(t, "Asha", *req.CustomerName)
		require.Len(t, req.Items, 1)
		assert.Equal(t, int64(3), req.Items[0].ItemID)

		json.NewEncoder(w).Encode(SaleReceipt{Message: "Sale completed", BillID: 41, FinalAmount: 230})
	}))

	receipt, err := c.CreateSale(context.Background(), SaleRequest{
		CustomerName: &name,
		PaymentMode:  "cash",
		AmountPaid:   230,
		Items:        []SaleLine{{ItemID: 3, Quantity: 2, DiscountPercent: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), receipt.BillID)
}

func TestPayCredit_QueryString(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/credit/pay/12", r.URL.Path)
		assert.Equal(t, "150.5", r.URL.Query().Get("amount"))
		json.NewEncoder(w).Encode(map[string]string{"message": "Payment updated"})
	}))

	require.NoError(t, c.PayCredit(context.Background(), 12, 150.5))
}

func TestSalesHistory_MergesMostRecentFirst(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sales/history":
			json.NewEncoder(w).Encode([]SaleSummary{
				{ID: 1, Date: "2026-08-29T10:00:00", SaleType: "counter"},
				{ID: 2, Date: "2026-08-31T09:00:00", SaleType: "counter"},
			})
		case "/sales/random-history":
			json.NewEncoder(w).Encode([]SaleSummary{
				{ID: 3, Date: "2026-08-30T15:00:00"},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	sales, err := c.SalesHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{sales[0].ID, sales[1].ID, sales[2].ID})
	assert.Equal(t, "random", sales[1].SaleType)
}

func TestGetSale_Decodes(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/41", r.URL.Path)
		json.NewEncoder(w).Encode(SaleDetail{
			BillID:        41,
			TotalAmount:   250,
			TotalDiscount: 20,
			FinalAmount:   230,
			Items:         []SaleDetailItem{{ItemID: 3, Quantity: 2, Price: 100, DiscountPercent: 10, FinalPrice: 180}},
		})
	}))

	detail, err := c.GetSale(context.Background(), 41)
	require.NoError(t, err)
	assert.Equal(t, 230.0, detail.FinalAmount)
	require.Len(t, detail.Items, 1)
}
