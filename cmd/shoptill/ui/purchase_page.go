package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shoptill/internal/api"
	"shoptill/internal/billing"
)

// purchaseZone is one focus region of the purchase page.
type purchaseZone int

const (
	pzonePhone purchaseZone = iota
	pzoneDealer
	pzoneGrid
	purchaseZoneCount
)

// PurchasePage records a supplier delivery: dealer section on top, an
// entry grid of item / quantity / cost / margin beneath. The backend
// restocks and reprices on submit; a line naming an unknown item adds
// it to the catalog.
type PurchasePage struct {
	deps   *Deps
	styles Styles

	phoneSearch SearchBox
	dealerInput textinput.Model
	grid        RowGrid

	zone   purchaseZone
	saving bool

	status    string
	statusErr bool

	width  int
	height int
}

// NewPurchasePage creates the purchase entry page.
func NewPurchasePage(deps *Deps) PurchasePage {
	styles := deps.Styles

	phone := NewSearchBox("supplier phone...", SupplierLookup(deps.API), styles, deps.Debounce)

	dealer := textinput.New()
	dealer.Placeholder = "dealer name"
	dealer.CharLimit = 60
	dealer.Width = 24

	grid := NewRowGrid(GridConfig{
		Lookup:        ItemLookup(deps.API),
		PriceLabel:    "Cost",
		DiscountLabel: "Margin%",
		AllowCustom:   true,
	}, styles, deps.Debounce)

	p := PurchasePage{
		deps:        deps,
		styles:      styles,
		phoneSearch: phone,
		dealerInput: dealer,
		grid:        grid,
		zone:        pzonePhone,
	}
	// Focused at construction; Init's value receiver cannot reach the
	// stored model.
	p.phoneSearch.Focus()
	return p
}

// Init starts the cursor blink; the page is already focused.
func (p PurchasePage) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the page dimensions.
func (p *PurchasePage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Update handles messages.
func (p PurchasePage) Update(msg tea.Msg) (PurchasePage, tea.Cmd) {
	switch msg := msg.(type) {
	case PurchaseSavedMsg:
		p.saving = false
		if msg.Err != nil {
			p.status = "failed to save purchase: " + msg.Err.Error()
			p.statusErr = true
			return p, nil
		}
		cmd := p.resetForm()
		p.status = "purchase saved, stock updated"
		p.statusErr = false
		return p, cmd

	case DebounceMsg, SearchResultsMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		p.phoneSearch, cmd, _ = p.phoneSearch.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		p.grid, cmd, _ = p.grid.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return p, tea.Batch(cmds...)

	case tea.KeyMsg:
		return p.updateKey(msg)
	}
	return p, nil
}

func (p PurchasePage) updateKey(msg tea.KeyMsg) (PurchasePage, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return p, p.focusZone(purchaseZone((int(p.zone) + 1) % int(purchaseZoneCount)))
	case "shift+tab":
		return p, p.focusZone(purchaseZone((int(p.zone) + int(purchaseZoneCount) - 1) % int(purchaseZoneCount)))
	case "ctrl+y":
		return p.startSave()
	case "ctrl+r":
		cmd := p.resetForm()
		p.status = "form cleared"
		p.statusErr = false
		return p, cmd
	}

	switch p.zone {
	case pzonePhone:
		var cmd tea.Cmd
		var committed *SearchResult
		p.phoneSearch, cmd, committed = p.phoneSearch.Update(msg)
		if committed != nil {
			p.dealerInput.SetValue(committed.Name)
			p.phoneSearch.input.SetValue(committed.Detail)
			return p, tea.Batch(cmd, p.focusZone(pzoneGrid))
		}
		return p, cmd

	case pzoneDealer:
		if msg.String() == "enter" {
			return p, p.focusZone(pzoneGrid)
		}
		var cmd tea.Cmd
		p.dealerInput, cmd = p.dealerInput.Update(msg)
		return p, cmd

	case pzoneGrid:
		var cmd tea.Cmd
		p.grid, cmd, _ = p.grid.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PurchasePage) focusZone(z purchaseZone) tea.Cmd {
	p.phoneSearch.Blur()
	p.dealerInput.Blur()
	p.grid.Blur()
	p.zone = z
	switch z {
	case pzonePhone:
		return p.phoneSearch.Focus()
	case pzoneDealer:
		return p.dealerInput.Focus()
	case pzoneGrid:
		return p.grid.Focus()
	}
	return nil
}

func (p *PurchasePage) resetForm() tea.Cmd {
	p.grid.Reset()
	p.phoneSearch.Clear()
	p.dealerInput.SetValue("")
	return p.focusZone(pzonePhone)
}

func (p *PurchasePage) validLines() []billing.LineItem {
	var out []billing.LineItem
	for _, l := range p.grid.Lines() {
		if l.Resolved() && l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

// startSave validates and submits the batch. The form is kept on
// failure so nothing typed is lost.
func (p PurchasePage) startSave() (PurchasePage, tea.Cmd) {
	dealer := strings.TrimSpace(p.dealerInput.Value())
	if dealer == "" {
		p.status = "dealer name is required"
		p.statusErr = true
		return p, nil
	}
	lines := p.validLines()
	if len(lines) == 0 {
		p.status = "add at least one item"
		p.statusErr = true
		return p, nil
	}
	if p.saving {
		return p, nil
	}
	p.saving = true
	p.status = "saving purchase..."
	p.statusErr = false

	batch := api.PurchaseBatch{
		DealerName: dealer,
		Items:      make([]api.PurchaseLine, 0, len(lines)),
	}
	if c := p.phoneSearch.Committed(); c != nil {
		batch.SupplierPhone = c.Detail
	} else if phone := strings.TrimSpace(p.phoneSearch.input.Value()); phone != "" {
		batch.SupplierPhone = phone
	}
	for _, l := range lines {
		line := api.PurchaseLine{
			ItemID:        l.ItemID,
			Quantity:      l.Quantity,
			CostPrice:     l.UnitPrice,
			MarginPercent: l.DiscountPercent,
		}
		if l.Custom {
			// Unknown item: send the name so the backend creates it.
			line.ItemName = l.Name
		}
		batch.Items = append(batch.Items, line)
	}

	client := p.deps.API
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return PurchaseSavedMsg{Err: client.CreatePurchase(ctx, batch)}
	}
}

// View renders the page.
func (p PurchasePage) View() string {
	var sb strings.Builder

	sb.WriteString(p.styles.Title.Render("New Purchase"))
	sb.WriteString("\n")

	sb.WriteString(p.styles.Subtitle.Render("Supplier"))
	sb.WriteString("\n")
	dealerView := p.styles.InputFrame.Render(p.dealerInput.View())
	if p.zone == pzoneDealer {
		dealerView = p.styles.FocusFrame.Render(p.dealerInput.View())
	}
	sb.WriteString(p.phoneSearch.View() + " " + dealerView)
	sb.WriteString("\n\n")

	sb.WriteString(p.grid.View())
	sb.WriteString("\n\n")

	var total float64
	var count int
	for _, l := range p.validLines() {
		total += l.UnitPrice * float64(l.Quantity)
		count++
	}
	sb.WriteString(p.styles.Muted.Render("Lines:") + " " + p.styles.Body.Render(fmt.Sprintf("%d", count)) +
		"   " + p.styles.Muted.Render("Total cost:") + " " + p.styles.Bold.Render(billing.Money(total)))
	sb.WriteString("\n")

	if p.status != "" {
		sb.WriteString("\n")
		if p.statusErr {
			sb.WriteString(p.styles.Error.Render(p.status))
		} else {
			sb.WriteString(p.styles.Success.Render(p.status))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("tab sections · enter next field · ctrl+d remove row · ctrl+y save · ctrl+r clear"))
	return sb.String()
}
