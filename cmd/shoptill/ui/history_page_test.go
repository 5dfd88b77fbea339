package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptill/internal/api"
	"shoptill/internal/draft"
)

func loadedHistoryPage(t *testing.T) HistoryPage {
	t.Helper()
	p := NewHistoryPage(testDeps(draft.NewMemStore(nil)))
	p, _ = p.Update(HistoryMsg{
		Sales: []api.SaleSummary{
			{ID: 11, CustomerName: "Asha", FinalAmount: 230},
		},
		Purchases: []api.PurchaseSummary{
			{ID: 5, DealerName: "Sharma Traders", ItemCount: 3, TotalCost: 1800},
		},
	})
	return p
}

func TestHistoryEnterOnSaleOpensInvoice(t *testing.T) {
	p := loadedHistoryPage(t)

	var cmd tea.Cmd
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collectMsgs(cmd)

	require.Len(t, msgs, 1)
	nav, ok := msgs[0].(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, PageInvoice, nav.Page)
	assert.Equal(t, int64(11), nav.BillID)
}

func TestHistoryEnterOnPurchaseOpensDetail(t *testing.T) {
	p := loadedHistoryPage(t)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})

	var cmd tea.Cmd
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd, "enter on a purchase row must fetch the batch")
	assert.Equal(t, int64(5), p.detailID)
	assert.Nil(t, p.purchaseView, "detail shows loading until the fetch lands")
}

func TestHistoryPurchaseDetailMsgRenders(t *testing.T) {
	p := loadedHistoryPage(t)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	detail := &api.PurchaseDetail{
		ID:         5,
		DealerName: "Sharma Traders",
		Date:       "2026-08-28",
		Items: []api.PurchaseLine{
			{ItemID: 1, ItemName: "Sugar 1kg", Quantity: 10, CostPrice: 42, MarginPercent: 12},
		},
	}
	p, _ = p.Update(PurchaseDetailMsg{Detail: detail})

	require.NotNil(t, p.purchaseView)
	assert.Contains(t, p.View(), "Sharma Traders")
	assert.Contains(t, p.View(), "Sugar 1kg")
}

func TestHistoryPurchaseDetailEscReturns(t *testing.T) {
	p := loadedHistoryPage(t)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p, _ = p.Update(PurchaseDetailMsg{Detail: &api.PurchaseDetail{ID: 5}})

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Zero(t, p.detailID)
	assert.Nil(t, p.purchaseView)
}
