package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"shoptill/internal/api"
	"shoptill/internal/billing"
	"shoptill/internal/draft"
)

// Payment modes in cycling order.
var paymentModes = []string{"cash", "online", "credit"}

// saleZone is one focus region of the sale page. Tab walks forward
// through zones; the grid owns its internal Enter chain.
type saleZone int

const (
	zonePhone saleZone = iota
	zoneName
	zoneAddress
	zoneDate
	zoneGrid
	zonePayMode
	zonePaid
	saleZoneCount
)

// SalePage is the billing form: customer section, entry grid, payment,
// and the preview→confirm two-phase submit. In-progress entry is
// cached to the draft store so a restart resumes where the till left
// off; the cache is only written after the initial load pass so an
// empty boot state can never clobber a saved draft.
type SalePage struct {
	deps   *Deps
	styles Styles

	phoneSearch SearchBox
	nameInput   textinput.Model
	addrInput   textinput.Model
	dateInput   textinput.Model
	paidInput   textinput.Model

	grid RowGrid

	zone       saleZone
	manualMode bool
	payMode    int

	// loaded is the one-shot guard: draft saves are suppressed until
	// the initial cache read has been applied.
	loaded bool

	preview    *api.SalePreview
	previewing bool
	confirming bool

	status    string
	statusErr bool

	width  int
	height int
}

// NewSalePage creates the billing page.
func NewSalePage(deps *Deps) SalePage {
	styles := deps.Styles

	phone := NewSearchBox("phone...", CustomerLookup(deps.API), styles, deps.Debounce)

	name := textinput.New()
	name.Placeholder = "customer name"
	name.CharLimit = 60
	name.Width = 24

	addr := textinput.New()
	addr.Placeholder = "address"
	addr.CharLimit = 120
	addr.Width = 40

	date := textinput.New()
	date.Placeholder = "2006-01-02 15:04"
	date.CharLimit = 16
	date.Width = 18

	paid := textinput.New()
	paid.Placeholder = "0"
	paid.CharLimit = 10
	paid.Width = 10

	grid := NewRowGrid(GridConfig{
		Lookup:      ItemLookup(deps.API),
		AllowCustom: true,
	}, styles, deps.Debounce)

	p := SalePage{
		deps:        deps,
		styles:      styles,
		phoneSearch: phone,
		nameInput:   name,
		addrInput:   addr,
		dateInput:   date,
		paidInput:   paid,
		grid:        grid,
		zone:        zoneGrid,
	}
	// Focus is established here, on the value bubbletea will store.
	// Init has a value receiver, so focusing there would only mutate a
	// discarded copy and the page would ignore typing until the first
	// Tab.
	p.grid.Focus()
	return p
}

// Init starts the draft cache read. Nothing is saved until it lands.
func (p SalePage) Init() tea.Cmd {
	store := p.deps.Drafts
	return tea.Batch(
		func() tea.Msg {
			d, err := store.Load()
			return DraftLoadedMsg{Draft: d, Err: err}
		},
		textinput.Blink,
	)
}

// SetSize updates the page dimensions.
func (p *SalePage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Update handles messages.
func (p SalePage) Update(msg tea.Msg) (SalePage, tea.Cmd) {
	switch msg := msg.(type) {
	case DraftLoadedMsg:
		if msg.Err != nil {
			p.deps.Logger().Warn("draft load failed", zap.Error(msg.Err))
		}
		if msg.Draft != nil && !msg.Draft.Empty() {
			p.applyDraft(msg.Draft)
			p.status = "draft restored"
			p.statusErr = false
		}
		p.loaded = true
		return p, nil

	case DraftSavedMsg:
		if msg.Err != nil {
			// Fire-and-forget: a failed cache write loses nothing but
			// the convenience.
			p.deps.Logger().Warn("draft save failed", zap.Error(msg.Err))
		}
		return p, nil

	case PreviewMsg:
		p.previewing = false
		if msg.Err != nil {
			p.preview = nil
			p.status = "preview failed: " + msg.Err.Error()
			p.statusErr = true
			return p, nil
		}
		p.preview = msg.Preview
		p.status = "preview ready, ctrl+y to confirm"
		p.statusErr = false
		return p, nil

	case ConfirmMsg:
		p.confirming = false
		if msg.Err != nil {
			// The form and draft survive so nothing typed is lost.
			p.status = "failed to create sale: " + msg.Err.Error()
			p.statusErr = true
			return p, nil
		}
		billID := msg.Receipt.BillID
		store := p.deps.Drafts
		reset := p.resetForm()
		return p, tea.Batch(
			func() tea.Msg {
				if err := store.Clear(); err != nil {
					return DraftSavedMsg{Err: err}
				}
				return DraftSavedMsg{}
			},
			reset,
			func() tea.Msg { return NavigateMsg{Page: PageInvoice, BillID: billID} },
		)

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

func (p SalePage) updateKey(msg tea.KeyMsg) (SalePage, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return p, p.focusZone(p.nextZone(1))
	case "shift+tab":
		return p, p.focusZone(p.nextZone(-1))
	case "ctrl+p":
		return p.startPreview()
	case "ctrl+y":
		return p.startConfirm()
	case "ctrl+t":
		p.manualMode = !p.manualMode
		if p.manualMode && strings.TrimSpace(p.dateInput.Value()) == "" {
			p.dateInput.SetValue(time.Now().Format("2006-01-02 15:04"))
		}
		return p.markDirty(nil)
	case "ctrl+r":
		store := p.deps.Drafts
		cmd := p.resetForm()
		p.status = "form cleared"
		p.statusErr = false
		return p, tea.Batch(cmd, func() tea.Msg {
			if err := store.Clear(); err != nil {
				return DraftSavedMsg{Err: err}
			}
			return DraftSavedMsg{}
		})
	}

	switch p.zone {
	case zonePhone:
		var cmd tea.Cmd
		var committed *SearchResult
		before := p.phoneSearch.input.Value()
		p.phoneSearch, cmd, committed = p.phoneSearch.Update(msg)
		if committed != nil {
			// A known customer fills the whole section.
			p.nameInput.SetValue(committed.Name)
			p.addrInput.SetValue(committed.Extra)
			p.phoneSearch.input.SetValue(committed.Detail)
			return p.markDirty(tea.Batch(cmd, p.focusZone(zoneGrid)))
		}
		if p.phoneSearch.input.Value() != before {
			return p.markDirty(cmd)
		}
		return p, cmd

	case zoneName:
		return p.updateInput(&p.nameInput, msg)
	case zoneAddress:
		return p.updateInput(&p.addrInput, msg)
	case zoneDate:
		return p.updateInput(&p.dateInput, msg)
	case zonePaid:
		return p.updateInput(&p.paidInput, msg)

	case zonePayMode:
		switch msg.String() {
		case "left", "up":
			p.payMode = (p.payMode + len(paymentModes) - 1) % len(paymentModes)
			return p.markDirty(nil)
		case "right", "down", " ", "enter":
			p.payMode = (p.payMode + 1) % len(paymentModes)
			return p.markDirty(nil)
		}
		return p, nil

	case zoneGrid:
		var cmd tea.Cmd
		var changed bool
		p.grid, cmd, changed = p.grid.Update(msg)
		if changed {
			return p.markDirty(cmd)
		}
		return p, cmd
	}
	return p, nil
}

func (p SalePage) updateInput(ti *textinput.Model, msg tea.KeyMsg) (SalePage, tea.Cmd) {
	if msg.String() == "enter" {
		return p, p.focusZone(p.nextZone(1))
	}
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	if ti.Value() != before {
		return p.markDirty(cmd)
	}
	return p, cmd
}

// nextZone steps over the date zone unless manual mode is on.
func (p *SalePage) nextZone(dir int) saleZone {
	z := p.zone
	for {
		z = saleZone((int(z) + dir + int(saleZoneCount)) % int(saleZoneCount))
		if z == zoneDate && !p.manualMode {
			continue
		}
		return z
	}
}

func (p *SalePage) focusZone(z saleZone) tea.Cmd {
	p.blurAll()
	p.zone = z
	switch z {
	case zonePhone:
		return p.phoneSearch.Focus()
	case zoneName:
		return p.nameInput.Focus()
	case zoneAddress:
		return p.addrInput.Focus()
	case zoneDate:
		return p.dateInput.Focus()
	case zonePaid:
		return p.paidInput.Focus()
	case zoneGrid:
		return p.grid.Focus()
	}
	return nil
}

func (p *SalePage) blurAll() {
	p.phoneSearch.Blur()
	p.nameInput.Blur()
	p.addrInput.Blur()
	p.dateInput.Blur()
	p.paidInput.Blur()
	p.grid.Blur()
}

// markDirty records a mutation: the optimistic preview is stale, and
// the draft is re-cached once the initial load pass has completed.
func (p SalePage) markDirty(cmd tea.Cmd) (SalePage, tea.Cmd) {
	p.preview = nil
	if !p.loaded {
		return p, cmd
	}
	d := p.currentDraft()
	store := p.deps.Drafts
	save := func() tea.Msg {
		return DraftSavedMsg{Err: store.Save(d)}
	}
	return p, tea.Batch(cmd, save)
}

func (p *SalePage) currentDraft() *draft.Draft {
	d := &draft.Draft{
		Lines:           p.grid.Lines(),
		CustomerName:    p.nameInput.Value(),
		CustomerPhone:   p.customerPhone(),
		CustomerAddress: p.addrInput.Value(),
		PaymentMode:     paymentModes[p.payMode],
		AmountPaid:      p.paidInput.Value(),
	}
	if p.manualMode {
		d.ManualDate = p.dateInput.Value()
	}
	return d
}

func (p *SalePage) customerPhone() string {
	if c := p.phoneSearch.Committed(); c != nil {
		return c.Detail
	}
	return p.phoneSearch.input.Value()
}

func (p *SalePage) applyDraft(d *draft.Draft) {
	p.grid.SetLines(d.Lines)
	p.nameInput.SetValue(d.CustomerName)
	p.phoneSearch.input.SetValue(d.CustomerPhone)
	p.addrInput.SetValue(d.CustomerAddress)
	p.paidInput.SetValue(d.AmountPaid)
	for i, m := range paymentModes {
		if m == d.PaymentMode {
			p.payMode = i
		}
	}
	if d.ManualDate != "" {
		p.manualMode = true
		p.dateInput.SetValue(d.ManualDate)
	}
}

func (p *SalePage) resetForm() tea.Cmd {
	p.grid.Reset()
	p.phoneSearch.Clear()
	p.nameInput.SetValue("")
	p.addrInput.SetValue("")
	p.dateInput.SetValue("")
	p.paidInput.SetValue("")
	p.payMode = 0
	p.manualMode = false
	p.preview = nil
	return p.focusZone(zoneGrid)
}

// validLines returns the submittable subset of grid lines.
func (p *SalePage) validLines() []billing.LineItem {
	var out []billing.LineItem
	for _, l := range p.grid.Lines() {
		if l.Resolved() && l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

func (p *SalePage) buildRequest(lines []billing.LineItem) api.SaleRequest {
	req := api.SaleRequest{
		PaymentMode: paymentModes[p.payMode],
		AmountPaid:  parseFloatDefault(p.paidInput.Value(), 0),
		Items:       make([]api.SaleLine, 0, len(lines)),
	}
	if name := strings.TrimSpace(p.nameInput.Value()); name != "" {
		req.CustomerName = &name
	}
	if phone := strings.TrimSpace(p.customerPhone()); phone != "" {
		req.CustomerPhone = &phone
	}
	if addr := strings.TrimSpace(p.addrInput.Value()); addr != "" {
		req.CustomerAddress = &addr
	}
	if p.manualMode {
		req.SaleType = "manual"
		req.ManualDate = strings.TrimSpace(p.dateInput.Value())
	}
	for _, l := range lines {
		line := api.SaleLine{
			ItemID:          l.ItemID,
			Quantity:        l.Quantity,
			DiscountPercent: l.DiscountPercent,
		}
		if l.Custom {
			line.Price = l.UnitPrice
		}
		req.Items = append(req.Items, line)
	}
	return req
}

// startPreview validates locally, then asks the backend for the
// authoritative totals. No network call happens on invalid input.
func (p SalePage) startPreview() (SalePage, tea.Cmd) {
	lines := p.validLines()
	if len(lines) == 0 {
		p.status = "add at least one item before previewing"
		p.statusErr = true
		return p, nil
	}
	if p.previewing {
		return p, nil
	}
	p.previewing = true
	p.status = "computing totals..."
	p.statusErr = false

	req := p.buildRequest(lines)
	client := p.deps.API
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		preview, err := client.PreviewSale(ctx, req)
		return PreviewMsg{Preview: preview, Err: err}
	}
}

// startConfirm persists the sale. Confirm stays disabled until a
// preview has resolved for the current form state.
func (p SalePage) startConfirm() (SalePage, tea.Cmd) {
	if p.preview == nil {
		p.status = "preview first (ctrl+p)"
		p.statusErr = true
		return p, nil
	}
	if p.confirming {
		return p, nil
	}
	lines := p.validLines()
	if len(lines) == 0 {
		p.status = "add at least one item"
		p.statusErr = true
		return p, nil
	}
	p.confirming = true
	p.status = "saving sale..."
	p.statusErr = false

	req := p.buildRequest(lines)
	client := p.deps.API
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		receipt, err := client.CreateSale(ctx, req)
		return ConfirmMsg{Receipt: receipt, Err: err}
	}
}

// View renders the page.
func (p SalePage) View() string {
	var sb strings.Builder

	title := "New Sale"
	if p.manualMode {
		title = "Manual Bill Entry"
	}
	sb.WriteString(p.styles.Title.Render(title))
	sb.WriteString("\n")

	// Customer section
	sb.WriteString(p.styles.Subtitle.Render("Customer"))
	sb.WriteString("\n")
	row := []string{
		p.phoneSearch.View(),
		p.frameInput(p.nameInput, zoneName),
		p.frameInput(p.addrInput, zoneAddress),
	}
	if p.manualMode {
		row = append(row, p.styles.Muted.Render("date:")+" "+p.frameInput(p.dateInput, zoneDate))
	}
	sb.WriteString(strings.Join(row, " "))
	sb.WriteString("\n\n")

	// Entry grid
	sb.WriteString(p.grid.View())
	sb.WriteString("\n\n")

	// Live totals: optimistic, recomputed on every mutation; the
	// backend's preview is the authority.
	totals := billing.Compute(p.grid.Lines())
	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
		p.styles.Muted.Render("Subtotal:"), billing.Money(totals.Subtotal),
		p.styles.Muted.Render("Discount:"), billing.Money(totals.Discount),
		p.styles.Bold.Render("Total:"), p.styles.Bold.Render(billing.Money(totals.Final))))
	sb.WriteString("\n\n")

	// Payment section
	var modes []string
	for i, m := range paymentModes {
		if i == p.payMode {
			modes = append(modes, p.styles.Selected.Render(" "+m+" "))
		} else {
			modes = append(modes, p.styles.Muted.Render(" "+m+" "))
		}
	}
	payLine := strings.Join(modes, "")
	if p.zone == zonePayMode {
		payLine = p.styles.FocusFrame.Render(payLine)
	} else {
		payLine = p.styles.InputFrame.Render(payLine)
	}
	sb.WriteString(payLine)
	if paymentModes[p.payMode] != "credit" {
		sb.WriteString("  " + p.styles.Muted.Render("paid:") + " " + p.frameInput(p.paidInput, zonePaid))
	}
	sb.WriteString("\n")

	// Server preview
	if p.preview != nil {
		sb.WriteString("\n")
		sb.WriteString(p.styles.Success.Render(fmt.Sprintf("Preview  subtotal %s  discount %s  final %s",
			billing.Money(p.preview.TotalAmount),
			billing.Money(p.preview.TotalDiscount),
			billing.Money(p.preview.FinalAmount))))
		sb.WriteString("\n")
	}

	if p.status != "" {
		sb.WriteString("\n")
		if p.statusErr {
			sb.WriteString(p.styles.Error.Render(p.status))
		} else {
			sb.WriteString(p.styles.Info.Render(p.status))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("tab sections · enter next field · ctrl+d remove row · ctrl+t manual date · ctrl+p preview · ctrl+y confirm · ctrl+r clear"))
	return sb.String()
}

func (p SalePage) frameInput(ti textinput.Model, z saleZone) string {
	if p.zone == z && ti.Focused() {
		return p.styles.FocusFrame.Render(ti.View())
	}
	return p.styles.InputFrame.Render(ti.View())
}
