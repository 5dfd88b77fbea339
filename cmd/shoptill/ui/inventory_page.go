package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"shoptill/internal/api"
	"shoptill/internal/billing"
)

// InventoryPage lists the catalog with stock levels. Rows at or below
// the restock threshold carry a low-stock marker. Enter opens an edit
// strip for the selected item's selling price and quantity.
type InventoryPage struct {
	deps   *Deps
	styles Styles

	tbl      table.Model
	items    []api.Item
	lowStock map[int64]bool

	filter    textinput.Model
	filtering bool
	lowOnly   bool

	editing    bool
	editItem   *api.Item
	priceInput textinput.Model
	qtyInput   textinput.Model
	editField  int

	loading bool
	saving  bool
	err     error
	status  string

	width  int
	height int
}

// NewInventoryPage creates the inventory page.
func NewInventoryPage(deps *Deps) InventoryPage {
	styles := deps.Styles

	cols := []table.Column{
		{Title: "Item", Width: ItemColWidth},
		{Title: "Category", Width: 14},
		{Title: "Stock", Width: QtyColWidth},
		{Title: "Cost", Width: PriceColWidth},
		{Title: "Price", Width: PriceColWidth},
		{Title: "", Width: 4},
	}
	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true)
	ts.Selected = styles.Selected
	tbl.SetStyles(ts)

	filter := textinput.New()
	filter.Placeholder = "filter items"
	filter.CharLimit = 60
	filter.Width = 24

	price := textinput.New()
	price.CharLimit = 10
	price.Width = 10

	qty := textinput.New()
	qty.CharLimit = 6
	qty.Width = 6

	return InventoryPage{
		deps:       deps,
		styles:     styles,
		tbl:        tbl,
		filter:     filter,
		priceInput: price,
		qtyInput:   qty,
		loading:    true,
	}
}

// Init fetches the catalog and the low-stock set together.
func (p InventoryPage) Init() tea.Cmd {
	client := p.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var items, low []api.Item
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			items, err = client.ListItems(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			low, err = client.LowStockItems(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return ItemsMsg{Err: err}
		}
		lowSet := make(map[int64]bool, len(low))
		for _, it := range low {
			lowSet[it.ID] = true
		}
		return ItemsMsg{Items: items, LowStock: lowSet}
	}
}

// SetSize updates the page dimensions and the table height.
func (p *InventoryPage) SetSize(w, h int) {
	p.width = w
	p.height = h
	if h > 10 {
		p.tbl.SetHeight(h - 10)
	}
}

// Update handles messages.
func (p InventoryPage) Update(msg tea.Msg) (InventoryPage, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsMsg:
		p.loading = false
		p.err = msg.Err
		if msg.Err == nil {
			p.items = msg.Items
			p.lowStock = msg.LowStock
			p.refreshRows()
		}
		return p, nil

	case ItemUpdatedMsg:
		p.saving = false
		if msg.Err != nil {
			p.status = "update failed: " + msg.Err.Error()
			return p, nil
		}
		for i := range p.items {
			if p.items[i].ID == msg.Item.ID {
				p.items[i] = *msg.Item
			}
		}
		p.editing = false
		p.editItem = nil
		p.status = fmt.Sprintf("updated %s", msg.Item.Name)
		p.refreshRows()
		// Re-fetch so the low-stock set reflects the new quantity.
		return p, p.Init()

	case tea.KeyMsg:
		return p.updateKey(msg)
	}
	return p, nil
}

func (p InventoryPage) updateKey(msg tea.KeyMsg) (InventoryPage, tea.Cmd) {
	if p.editing {
		return p.updateEdit(msg)
	}

	if p.filtering {
		switch msg.String() {
		case "enter", "esc":
			p.filtering = false
			p.filter.Blur()
			return p, nil
		}
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		p.refreshRows()
		return p, cmd
	}

	switch msg.String() {
	case "/":
		p.filtering = true
		return p, p.filter.Focus()
	case "l":
		p.lowOnly = !p.lowOnly
		p.refreshRows()
		return p, nil
	case "r":
		p.loading = true
		p.status = ""
		return p, p.Init()
	case "enter":
		return p.startEdit()
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return p, cmd
}

func (p InventoryPage) startEdit() (InventoryPage, tea.Cmd) {
	visible := p.visibleItems()
	idx := p.tbl.Cursor()
	if idx < 0 || idx >= len(visible) {
		return p, nil
	}
	item := visible[idx]
	p.editing = true
	p.editItem = &item
	p.editField = 0
	p.priceInput.SetValue(trimFloat(item.SellingPrice))
	p.qtyInput.SetValue(fmt.Sprintf("%d", item.Quantity))
	p.status = ""
	return p, p.priceInput.Focus()
}

func (p InventoryPage) updateEdit(msg tea.KeyMsg) (InventoryPage, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.editing = false
		p.editItem = nil
		p.priceInput.Blur()
		p.qtyInput.Blur()
		return p, nil
	case "tab":
		p.editField = 1 - p.editField
		if p.editField == 0 {
			p.qtyInput.Blur()
			return p, p.priceInput.Focus()
		}
		p.priceInput.Blur()
		return p, p.qtyInput.Focus()
	case "enter":
		if p.editField == 0 {
			p.editField = 1
			p.priceInput.Blur()
			return p, p.qtyInput.Focus()
		}
		return p.saveEdit()
	}

	var cmd tea.Cmd
	if p.editField == 0 {
		p.priceInput, cmd = p.priceInput.Update(msg)
	} else {
		p.qtyInput, cmd = p.qtyInput.Update(msg)
	}
	return p, cmd
}

func (p InventoryPage) saveEdit() (InventoryPage, tea.Cmd) {
	if p.saving || p.editItem == nil {
		return p, nil
	}
	item := *p.editItem
	price := parseFloatDefault(p.priceInput.Value(), item.SellingPrice)
	qty := parseIntDefault(p.qtyInput.Value(), item.Quantity)
	if price < 0 || qty < 0 {
		p.status = "price and quantity must be non-negative"
		return p, nil
	}
	p.saving = true
	p.status = "saving..."

	upd := api.ItemUpdate{
		Name:          item.Name,
		CostPrice:     item.CostPrice,
		MarginPercent: item.MarginPercent,
		SellingPrice:  price,
		Quantity:      qty,
	}
	client := p.deps.API
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		updated, err := client.UpdateItem(ctx, item.ID, upd)
		return ItemUpdatedMsg{Item: updated, Err: err}
	}
}

func (p *InventoryPage) visibleItems() []api.Item {
	query := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	var out []api.Item
	for _, it := range p.items {
		if p.lowOnly && !p.lowStock[it.ID] {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (p *InventoryPage) refreshRows() {
	visible := p.visibleItems()
	rows := make([]table.Row, len(visible))
	for i, it := range visible {
		marker := ""
		if p.lowStock[it.ID] {
			marker = "LOW"
		}
		rows[i] = table.Row{
			it.Name,
			it.Category,
			fmt.Sprintf("%d", it.Quantity),
			billing.Money(it.CostPrice),
			billing.Money(it.SellingPrice),
			marker,
		}
	}
	p.tbl.SetRows(rows)
	if p.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		p.tbl.SetCursor(len(rows) - 1)
	}
}

// View renders the page.
func (p InventoryPage) View() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Inventory"))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(p.styles.Error.Render("failed to load inventory: " + p.err.Error()))
		sb.WriteString("\n" + p.styles.Muted.Render("press r to retry"))
		return sb.String()
	}

	filterView := p.styles.InputFrame.Render(p.filter.View())
	if p.filtering {
		filterView = p.styles.FocusFrame.Render(p.filter.View())
	}
	mode := ""
	if p.lowOnly {
		mode = "  " + p.styles.Warning.Render("low stock only")
	}
	sb.WriteString(filterView + mode)
	sb.WriteString("\n\n")

	sb.WriteString(p.tbl.View())
	sb.WriteString("\n")

	if p.editing && p.editItem != nil {
		priceView := p.styles.InputFrame.Render(p.priceInput.View())
		qtyView := p.styles.InputFrame.Render(p.qtyInput.View())
		if p.editField == 0 {
			priceView = p.styles.FocusFrame.Render(p.priceInput.View())
		} else {
			qtyView = p.styles.FocusFrame.Render(p.qtyInput.View())
		}
		sb.WriteString("\n" + p.styles.Subtitle.Render("Edit "+p.editItem.Name))
		sb.WriteString("\n" + p.styles.Muted.Render("price:") + " " + priceView +
			"  " + p.styles.Muted.Render("stock:") + " " + qtyView)
		sb.WriteString("\n" + p.styles.Muted.Render("enter save · tab switch · esc cancel"))
	}

	if p.status != "" {
		sb.WriteString("\n" + p.styles.Info.Render(p.status))
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("/ filter · l low stock · enter edit · r refresh"))
	return sb.String()
}
