package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptill/internal/draft"
)

func TestPurchasePageRequiresDealer(t *testing.T) {
	p := NewPurchasePage(testDeps(draft.NewMemStore(nil)))
	commitRow(&p.grid, 0, SearchResult{ID: 1, Name: "Sugar 1kg", Price: 42})

	var cmd tea.Cmd
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Nil(t, cmd)
	assert.True(t, p.statusErr)
	assert.False(t, p.saving)
}

func TestPurchasePageRequiresLines(t *testing.T) {
	p := NewPurchasePage(testDeps(draft.NewMemStore(nil)))
	p.dealerInput.SetValue("Sharma Traders")

	var cmd tea.Cmd
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Nil(t, cmd)
	assert.True(t, p.statusErr)
}

func TestPurchasePageCustomLineCarriesName(t *testing.T) {
	p := NewPurchasePage(testDeps(draft.NewMemStore(nil)))
	p.dealerInput.SetValue("Sharma Traders")
	commitRow(&p.grid, 0, SearchResult{Name: "new biscuit", Price: 10, Custom: true})
	p.grid.rows[0].Qty.SetValue("24")

	lines := p.validLines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Custom)
	assert.Equal(t, "new biscuit", lines[0].Name)
	assert.Equal(t, 24, lines[0].Quantity)
}

func TestPurchasePageSavedResetsForm(t *testing.T) {
	p := NewPurchasePage(testDeps(draft.NewMemStore(nil)))
	p.dealerInput.SetValue("Sharma Traders")
	commitRow(&p.grid, 0, SearchResult{ID: 1, Name: "Sugar 1kg", Price: 42})
	p.saving = true

	p, _ = p.Update(PurchaseSavedMsg{})

	assert.Empty(t, p.dealerInput.Value())
	assert.Equal(t, 1, p.grid.Len())
	assert.False(t, p.grid.Lines()[0].Resolved())
	assert.False(t, p.statusErr)
}
