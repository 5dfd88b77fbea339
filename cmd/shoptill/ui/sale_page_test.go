package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shoptill/internal/api"
	"shoptill/internal/billing"
	"shoptill/internal/draft"
)

func testDeps(store draft.Store) *Deps {
	return &Deps{
		API:      api.New("http://127.0.0.1:0", time.Second, zap.NewNop()),
		Drafts:   store,
		Log:      zap.NewNop(),
		Styles:   DefaultStyles(),
		Debounce: 0,
	}
}

func TestSalePageNoSaveBeforeLoad(t *testing.T) {
	store := draft.NewMemStore(nil)
	p := NewSalePage(testDeps(store))
	p.grid.Focus()

	// A keystroke before the cache read lands must not write: an empty
	// boot state would clobber whatever draft is on disk.
	var cmd tea.Cmd
	p, cmd = p.Update(keyRunes("a"))
	collectMsgs(cmd)

	assert.Zero(t, store.Saves())
}

func TestSalePageSavesAfterLoad(t *testing.T) {
	store := draft.NewMemStore(nil)
	p := NewSalePage(testDeps(store))
	p.grid.Focus()

	p, _ = p.Update(DraftLoadedMsg{})
	require.True(t, p.loaded)

	var cmd tea.Cmd
	p, cmd = p.Update(keyRunes("a"))
	collectMsgs(cmd)

	assert.Equal(t, 1, store.Saves())
}

func TestSalePageRestoresDraft(t *testing.T) {
	seed := &draft.Draft{
		Lines: []billing.LineItem{
			{ItemID: 4, Name: "Sugar 1kg", UnitPrice: 48, Quantity: 2},
		},
		CustomerName:  "Meena",
		CustomerPhone: "9876501234",
		PaymentMode:   "credit",
	}
	store := draft.NewMemStore(seed)
	p := NewSalePage(testDeps(store))

	p, _ = p.Update(DraftLoadedMsg{Draft: seed})

	assert.Equal(t, "Meena", p.nameInput.Value())
	assert.Equal(t, "9876501234", p.customerPhone())
	assert.Equal(t, "credit", paymentModes[p.payMode])
	lines := p.grid.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(4), lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestSalePageConfirmGatedOnPreview(t *testing.T) {
	store := draft.NewMemStore(nil)
	p := NewSalePage(testDeps(store))
	p, _ = p.Update(DraftLoadedMsg{})
	commitRow(&p.grid, 0, SearchResult{ID: 1, Name: "Rice 5kg", Price: 410})

	var cmd tea.Cmd
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Nil(t, cmd, "no network call without a preview")
	assert.True(t, p.statusErr)
	assert.False(t, p.confirming)
}

func TestSalePagePreviewRequiresLines(t *testing.T) {
	p := NewSalePage(testDeps(draft.NewMemStore(nil)))
	p, _ = p.Update(DraftLoadedMsg{})

	var cmd tea.Cmd
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyCtrlP})

	assert.Nil(t, cmd)
	assert.True(t, p.statusErr)
}

func TestSalePageMutationInvalidatesPreview(t *testing.T) {
	p := NewSalePage(testDeps(draft.NewMemStore(nil)))
	p.grid.Focus()
	p, _ = p.Update(DraftLoadedMsg{})
	p.preview = &api.SalePreview{FinalAmount: 100}

	var cmd tea.Cmd
	p, cmd = p.Update(keyRunes("x"))
	collectMsgs(cmd)

	assert.Nil(t, p.preview, "any edit stales the preview")
}

func TestSalePageConfirmSuccessClearsDraftAndNavigates(t *testing.T) {
	seed := &draft.Draft{
		Lines:       []billing.LineItem{{ItemID: 1, Name: "Rice 5kg", UnitPrice: 410, Quantity: 1}},
		PaymentMode: "cash",
	}
	store := draft.NewMemStore(seed)
	p := NewSalePage(testDeps(store))
	p, _ = p.Update(DraftLoadedMsg{Draft: seed})

	var cmd tea.Cmd
	p, cmd = p.Update(ConfirmMsg{Receipt: &api.SaleReceipt{BillID: 42, FinalAmount: 410}})
	msgs := collectMsgs(cmd)

	var nav *NavigateMsg
	for _, m := range msgs {
		if n, ok := m.(NavigateMsg); ok {
			nav = &n
		}
	}
	require.NotNil(t, nav, "confirm success must open the invoice")
	assert.Equal(t, PageInvoice, nav.Page)
	assert.Equal(t, int64(42), nav.BillID)

	cached, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, cached, "draft cleared after a durable sale")

	lines := p.grid.Lines()
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Resolved(), "form reset for the next bill")
}

func TestSalePageConfirmFailureKeepsEverything(t *testing.T) {
	seed := &draft.Draft{
		Lines:       []billing.LineItem{{ItemID: 1, Name: "Rice 5kg", UnitPrice: 410, Quantity: 1}},
		PaymentMode: "cash",
	}
	store := draft.NewMemStore(seed)
	p := NewSalePage(testDeps(store))
	p, _ = p.Update(DraftLoadedMsg{Draft: seed})

	var cmd tea.Cmd
	p, cmd = p.Update(ConfirmMsg{Err: errors.New("backend down")})
	collectMsgs(cmd)

	assert.True(t, p.statusErr)
	cached, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, cached, "draft survives a failed confirm")
	assert.Len(t, cached.Lines, 1)

	lines := p.grid.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Resolved(), "typed bill survives a failed confirm")
}

func TestSalePageBuildRequest(t *testing.T) {
	p := NewSalePage(testDeps(draft.NewMemStore(nil)))
	p, _ = p.Update(DraftLoadedMsg{})
	p.nameInput.SetValue("Meena")
	p.phoneSearch.input.SetValue("9876501234")
	p.payMode = 2 // credit
	p.paidInput.SetValue("200")

	commitRow(&p.grid, 0, SearchResult{ID: 1, Name: "Rice 5kg", Price: 410})
	p.grid.AppendRow()
	commitRow(&p.grid, 1, SearchResult{Name: "loose jaggery", Price: 60, Custom: true})

	req := p.buildRequest(p.validLines())

	require.NotNil(t, req.CustomerName)
	assert.Equal(t, "Meena", *req.CustomerName)
	require.NotNil(t, req.CustomerPhone)
	assert.Equal(t, "9876501234", *req.CustomerPhone)
	assert.Equal(t, "credit", req.PaymentMode)
	assert.Equal(t, 200.0, req.AmountPaid)

	require.Len(t, req.Items, 2)
	assert.Equal(t, int64(1), req.Items[0].ItemID)
	assert.Zero(t, req.Items[0].Price, "catalog items are priced by the backend")
	assert.Equal(t, 60.0, req.Items[1].Price, "custom items carry their price")
}

func TestSalePageManualDateInRequest(t *testing.T) {
	p := NewSalePage(testDeps(draft.NewMemStore(nil)))
	p, _ = p.Update(DraftLoadedMsg{})
	p.manualMode = true
	p.dateInput.SetValue("2026-08-15 18:30")
	commitRow(&p.grid, 0, SearchResult{ID: 1, Name: "Rice 5kg", Price: 410})

	req := p.buildRequest(p.validLines())

	assert.Equal(t, "manual", req.SaleType)
	assert.Equal(t, "2026-08-15 18:30", req.ManualDate)
}
