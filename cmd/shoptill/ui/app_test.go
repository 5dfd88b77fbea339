package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptill/internal/draft"
)

// bootApp runs the program's real startup sequence: Init once, every
// produced message pumped back through Update, then a window size.
func bootApp(t *testing.T) tea.Model {
	t.Helper()
	var model tea.Model = NewApp(testDeps(draft.NewMemStore(nil)))
	for _, msg := range collectMsgs(model.Init()) {
		model, _ = model.Update(msg)
	}
	model, _ = model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model
}

func TestAppAcceptsTypingOnStartup(t *testing.T) {
	model := bootApp(t)

	model, _ = model.Update(keyRunes("r"))
	model, _ = model.Update(keyRunes("i"))

	a, ok := model.(App)
	require.True(t, ok)
	assert.Equal(t, PageSale, a.active)
	assert.Equal(t, "ri", a.sale.grid.rows[0].Search.input.Value(),
		"first keystrokes of the day must land in the item field")
}

func TestAppPurchasePhoneFocusedOnEntry(t *testing.T) {
	model := bootApp(t)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyF3})
	for _, msg := range collectMsgs(cmd) {
		model, _ = model.Update(msg)
	}
	model, _ = model.Update(keyRunes("9"))
	model, _ = model.Update(keyRunes("8"))

	a, ok := model.(App)
	require.True(t, ok)
	assert.Equal(t, PagePurchase, a.active)
	assert.Equal(t, "98", a.purchase.phoneSearch.input.Value())
}

func TestAppFunctionKeysSwitchPages(t *testing.T) {
	model := bootApp(t)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyF6})
	a := model.(App)
	assert.Equal(t, PageCredit, a.active)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyF2})
	a = model.(App)
	assert.Equal(t, PageSale, a.active)
}
