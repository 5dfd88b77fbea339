package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"shoptill/internal/billing"
)

// RowField is one focusable cell within a grid row.
type RowField int

const (
	FieldItem RowField = iota
	FieldQty
	FieldPrice
	FieldDiscount
)

// Row is one line of the entry grid. Rows are keyed by a stable
// synthetic id so removing a row never disturbs the focus wiring of
// its neighbours.
type Row struct {
	ID       string
	Search   SearchBox
	Qty      textinput.Model
	Price    textinput.Model
	Discount textinput.Model
}

// GridConfig shapes the grid for sales (price + discount) or purchases
// (cost + margin).
type GridConfig struct {
	Lookup        LookupFunc
	PriceLabel    string
	DiscountLabel string
	AllowCustom   bool
}

// RowGrid is the table-first entry grid. Row lifecycle per row:
// empty → searching (first keystroke) → resolved (commit); a resolved
// row leaves the grid only through explicit removal. Enter walks
// item → qty → price → discount, and Enter on the last row's discount
// appends a fresh row and focuses its item field, so a whole bill can
// be keyed in without leaving the keyboard.
type RowGrid struct {
	cfg      GridConfig
	styles   Styles
	debounce time.Duration

	rows       []Row
	focusRow   int
	focusField RowField
	focused    bool
}

// NewRowGrid creates a grid with a single empty row.
func NewRowGrid(cfg GridConfig, styles Styles, debounce time.Duration) RowGrid {
	if cfg.PriceLabel == "" {
		cfg.PriceLabel = "Price"
	}
	if cfg.DiscountLabel == "" {
		cfg.DiscountLabel = "Disc %"
	}
	g := RowGrid{cfg: cfg, styles: styles, debounce: debounce}
	g.rows = []Row{g.newRow()}
	return g
}

func (g *RowGrid) newRow() Row {
	search := NewSearchBox("search item...", g.cfg.Lookup, g.styles, g.debounce)
	search.AllowCustom = g.cfg.AllowCustom
	search.ShowPrice = true

	qty := textinput.New()
	qty.CharLimit = 5
	qty.Width = QtyColWidth - 2
	qty.SetValue("1")

	price := textinput.New()
	price.CharLimit = 10
	price.Width = PriceColWidth - 2

	discount := textinput.New()
	discount.CharLimit = 6
	discount.Width = DiscountColWidth - 2
	discount.SetValue("0")

	return Row{
		ID:       uuid.NewString(),
		Search:   search,
		Qty:      qty,
		Price:    price,
		Discount: discount,
	}
}

// Len returns the number of rows.
func (g *RowGrid) Len() int { return len(g.rows) }

// RowIDs returns the stable ids in display order.
func (g *RowGrid) RowIDs() []string {
	ids := make([]string, len(g.rows))
	for i, r := range g.rows {
		ids[i] = r.ID
	}
	return ids
}

// FocusedCell reports which cell currently holds focus.
func (g *RowGrid) FocusedCell() (row int, field RowField) {
	return g.focusRow, g.focusField
}

// Focus restores focus to the current cell.
func (g *RowGrid) Focus() tea.Cmd {
	g.focused = true
	return g.focusCell(g.focusRow, g.focusField)
}

// Blur drops focus from every cell.
func (g *RowGrid) Blur() {
	g.focused = false
	for i := range g.rows {
		g.rows[i].Search.Blur()
		g.rows[i].Qty.Blur()
		g.rows[i].Price.Blur()
		g.rows[i].Discount.Blur()
	}
}

// Focused reports whether the grid owns keyboard focus.
func (g *RowGrid) Focused() bool { return g.focused }

// FocusItem moves focus to a row's item search field.
func (g *RowGrid) FocusItem(row int) tea.Cmd { return g.focusCell(row, FieldItem) }

// FocusQuantity moves focus to a row's quantity field.
func (g *RowGrid) FocusQuantity(row int) tea.Cmd { return g.focusCell(row, FieldQty) }

// FocusPrice moves focus to a row's price field.
func (g *RowGrid) FocusPrice(row int) tea.Cmd { return g.focusCell(row, FieldPrice) }

// FocusDiscount moves focus to a row's discount field.
func (g *RowGrid) FocusDiscount(row int) tea.Cmd { return g.focusCell(row, FieldDiscount) }

func (g *RowGrid) focusCell(row int, field RowField) tea.Cmd {
	if row < 0 || row >= len(g.rows) {
		return nil
	}
	g.Blur()
	g.focused = true
	g.focusRow = row
	g.focusField = field

	r := &g.rows[row]
	switch field {
	case FieldQty:
		return r.Qty.Focus()
	case FieldPrice:
		return r.Price.Focus()
	case FieldDiscount:
		return r.Discount.Focus()
	default:
		return r.Search.Focus()
	}
}

// AppendRow adds an empty row at the bottom and returns its index.
func (g *RowGrid) AppendRow() int {
	g.rows = append(g.rows, g.newRow())
	return len(g.rows) - 1
}

// RemoveRow deletes the row at index. The grid never drops below one
// row; removing the last remaining row resets it instead.
func (g *RowGrid) RemoveRow(index int) {
	if index < 0 || index >= len(g.rows) {
		return
	}
	if len(g.rows) == 1 {
		g.rows[0] = g.newRow()
		g.focusRow = 0
	} else {
		g.rows = append(g.rows[:index], g.rows[index+1:]...)
		if g.focusRow >= len(g.rows) {
			g.focusRow = len(g.rows) - 1
		}
	}
	g.focusField = FieldItem
}

// Reset returns the grid to a single empty row.
func (g *RowGrid) Reset() {
	g.rows = []Row{g.newRow()}
	g.focusRow = 0
	g.focusField = FieldItem
}

// Lines derives bill lines from the grid. Unresolved rows come through
// with a zero ItemID and are excluded from totals and submission by
// the callers.
func (g *RowGrid) Lines() []billing.LineItem {
	lines := make([]billing.LineItem, 0, len(g.rows))
	for i := range g.rows {
		r := &g.rows[i]
		line := billing.LineItem{
			Quantity:        parseIntDefault(r.Qty.Value(), 0),
			DiscountPercent: parseFloatDefault(r.Discount.Value(), 0),
		}
		if c := r.Search.Committed(); c != nil {
			line.ItemID = c.ID
			line.Name = c.Name
			line.UnitPrice = c.Price
			line.Custom = c.Custom
		}
		if v := strings.TrimSpace(r.Price.Value()); v != "" {
			line.UnitPrice = parseFloatDefault(v, line.UnitPrice)
		}
		lines = append(lines, line)
	}
	return lines
}

// SetLines rebuilds the grid from cached draft lines.
func (g *RowGrid) SetLines(lines []billing.LineItem) {
	if len(lines) == 0 {
		g.Reset()
		return
	}
	g.rows = make([]Row, 0, len(lines))
	for _, l := range lines {
		row := g.newRow()
		if l.Resolved() {
			r := SearchResult{ID: l.ItemID, Name: l.Name, Price: l.UnitPrice, Custom: l.Custom}
			row.Search.committed = &r
			row.Search.input.SetValue(l.Name)
		}
		row.Qty.SetValue(strconv.Itoa(l.Quantity))
		row.Price.SetValue(trimFloat(l.UnitPrice))
		row.Discount.SetValue(trimFloat(l.DiscountPercent))
		g.rows = append(g.rows, row)
	}
	g.focusRow = 0
	g.focusField = FieldItem
}

// Update handles messages. The boolean reports whether grid content
// changed, so the owning page can recompute totals, autosave the
// draft, and invalidate any preview.
func (g RowGrid) Update(msg tea.Msg) (RowGrid, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !g.focused {
			return g, nil, false
		}
		return g.updateKey(msg)

	case DebounceMsg, SearchResultsMsg:
		// Routed to every row; each box filters by owner id.
		var cmds []tea.Cmd
		for i := range g.rows {
			var cmd tea.Cmd
			g.rows[i].Search, cmd, _ = g.rows[i].Search.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return g, tea.Batch(cmds...), false
	}
	return g, nil, false
}

func (g RowGrid) updateKey(msg tea.KeyMsg) (RowGrid, tea.Cmd, bool) {
	if g.focusRow >= len(g.rows) {
		g.focusRow = len(g.rows) - 1
	}
	row := &g.rows[g.focusRow]

	// Row removal works from any cell of the row.
	if msg.String() == "ctrl+d" {
		g.RemoveRow(g.focusRow)
		return g, g.focusCell(g.focusRow, FieldItem), true
	}

	switch g.focusField {
	case FieldItem:
		var cmd tea.Cmd
		var committed *SearchResult
		before := row.Search.input.Value()
		row.Search, cmd, committed = row.Search.Update(msg)
		if committed != nil {
			// A commit always lands id, name, and price together.
			row.Price.SetValue(trimFloat(committed.Price))
			return g, tea.Batch(cmd, g.FocusQuantity(g.focusRow)), true
		}
		changed := row.Search.input.Value() != before
		return g, cmd, changed

	case FieldQty:
		if msg.String() == "enter" {
			return g, g.FocusPrice(g.focusRow), false
		}
		var cmd tea.Cmd
		before := row.Qty.Value()
		row.Qty, cmd = row.Qty.Update(msg)
		return g, cmd, row.Qty.Value() != before

	case FieldPrice:
		if msg.String() == "enter" {
			return g, g.FocusDiscount(g.focusRow), false
		}
		var cmd tea.Cmd
		before := row.Price.Value()
		row.Price, cmd = row.Price.Update(msg)
		return g, cmd, row.Price.Value() != before

	case FieldDiscount:
		if msg.String() == "enter" {
			// The core ergonomic loop: Enter on the last discount
			// grows the grid and starts the next line.
			if g.focusRow == len(g.rows)-1 {
				next := g.AppendRow()
				return g, g.FocusItem(next), true
			}
			return g, g.FocusItem(g.focusRow + 1), false
		}
		var cmd tea.Cmd
		before := row.Discount.Value()
		row.Discount, cmd = row.Discount.Update(msg)
		return g, cmd, row.Discount.Value() != before
	}
	return g, nil, false
}

// View renders the grid with a header, one line per row, and per-line
// totals.
func (g RowGrid) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("  %-*s %-*s %-*s %-*s %*s",
		ItemColWidth, "Item",
		QtyColWidth, "Qty",
		PriceColWidth, g.cfg.PriceLabel,
		DiscountColWidth, g.cfg.DiscountLabel,
		TotalColWidth, "Total")
	sb.WriteString(g.styles.Muted.Render(header))
	sb.WriteString("\n")

	lines := g.Lines()
	for i := range g.rows {
		r := &g.rows[i]

		marker := "  "
		if g.focused && i == g.focusRow {
			marker = g.styles.Selected.Render("▌ ")
		}

		total := ""
		if lines[i].Resolved() && lines[i].Quantity > 0 {
			total = billing.Money(lines[i].LineTotal())
		}

		cells := []string{
			r.Search.View(),
			g.cellView(r.Qty, i, FieldQty),
			g.cellView(r.Price, i, FieldPrice),
			g.cellView(r.Discount, i, FieldDiscount),
			g.styles.Bold.Render(total),
		}
		sb.WriteString(marker + strings.Join(cells, " "))
		if i < len(g.rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (g RowGrid) cellView(ti textinput.Model, row int, field RowField) string {
	frame := g.styles.InputFrame
	if g.focused && row == g.focusRow && field == g.focusField {
		frame = g.styles.FocusFrame
	}
	return frame.Render(ti.View())
}

func parseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func parseFloatDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
