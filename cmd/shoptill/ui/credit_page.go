package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shoptill/internal/api"
	"shoptill/internal/billing"
)

// CreditPage is the outstanding-credit ledger. Enter on a row opens a
// payment strip; the ledger is refetched after every payment so the
// due amounts shown are always the backend's, never locally derived.
type CreditPage struct {
	deps   *Deps
	styles Styles

	tbl     table.Model
	entries []api.CreditEntry

	paying    bool
	payEntry  *api.CreditEntry
	payInput  textinput.Model
	submitted bool

	loading bool
	err     error
	status  string

	width  int
	height int
}

// NewCreditPage creates the credit ledger page.
func NewCreditPage(deps *Deps) CreditPage {
	styles := deps.Styles

	cols := []table.Column{
		{Title: "Bill", Width: 8},
		{Title: "Customer", Width: 22},
		{Title: "Phone", Width: 14},
		{Title: "Total", Width: TotalColWidth},
		{Title: "Paid", Width: TotalColWidth},
		{Title: "Due", Width: TotalColWidth},
		{Title: "Date", Width: 12},
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

	pay := textinput.New()
	pay.Placeholder = "amount"
	pay.CharLimit = 10
	pay.Width = 10

	return CreditPage{
		deps:     deps,
		styles:   styles,
		tbl:      tbl,
		payInput: pay,
		loading:  true,
	}
}

// Init fetches the ledger.
func (p CreditPage) Init() tea.Cmd {
	client := p.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		entries, err := client.CreditList(ctx)
		return CreditMsg{Entries: entries, Err: err}
	}
}

// SetSize updates the page dimensions.
func (p *CreditPage) SetSize(w, h int) {
	p.width = w
	p.height = h
	if h > 10 {
		p.tbl.SetHeight(h - 10)
	}
}

// Update handles messages.
func (p CreditPage) Update(msg tea.Msg) (CreditPage, tea.Cmd) {
	switch msg := msg.(type) {
	case CreditMsg:
		p.loading = false
		p.err = msg.Err
		if msg.Err == nil {
			p.entries = msg.Entries
			p.refreshRows()
		}
		return p, nil

	case CreditPaidMsg:
		p.submitted = false
		if msg.Err != nil {
			p.status = "payment failed: " + msg.Err.Error()
			return p, nil
		}
		p.paying = false
		p.payEntry = nil
		p.payInput.SetValue("")
		p.status = "payment recorded"
		p.loading = true
		return p, p.Init()

	case tea.KeyMsg:
		return p.updateKey(msg)
	}
	return p, nil
}

func (p CreditPage) updateKey(msg tea.KeyMsg) (CreditPage, tea.Cmd) {
	if p.paying {
		switch msg.String() {
		case "esc":
			p.paying = false
			p.payEntry = nil
			p.payInput.Blur()
			return p, nil
		case "enter":
			return p.submitPayment()
		}
		var cmd tea.Cmd
		p.payInput, cmd = p.payInput.Update(msg)
		return p, cmd
	}

	switch msg.String() {
	case "enter":
		return p.startPayment()
	case "r":
		p.loading = true
		p.status = ""
		return p, p.Init()
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return p, cmd
}

func (p CreditPage) startPayment() (CreditPage, tea.Cmd) {
	idx := p.tbl.Cursor()
	if idx < 0 || idx >= len(p.entries) {
		return p, nil
	}
	entry := p.entries[idx]
	p.paying = true
	p.payEntry = &entry
	p.payInput.SetValue(trimFloat(entry.Due))
	p.status = ""
	return p, p.payInput.Focus()
}

// submitPayment validates locally before the POST: positive and never
// above the outstanding due.
func (p CreditPage) submitPayment() (CreditPage, tea.Cmd) {
	if p.submitted || p.payEntry == nil {
		return p, nil
	}
	amount := parseFloatDefault(p.payInput.Value(), 0)
	if amount <= 0 {
		p.status = "amount must be positive"
		return p, nil
	}
	if amount > p.payEntry.Due {
		p.status = fmt.Sprintf("amount exceeds due %s", billing.Money(p.payEntry.Due))
		return p, nil
	}
	p.submitted = true
	p.status = "recording payment..."

	saleID := p.payEntry.SaleID
	client := p.deps.API
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return CreditPaidMsg{Err: client.PayCredit(ctx, saleID, amount)}
	}
}

func (p *CreditPage) refreshRows() {
	rows := make([]table.Row, len(p.entries))
	for i, e := range p.entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.SaleID),
			e.CustomerName,
			e.CustomerPhone,
			billing.Money(e.Total),
			billing.Money(e.Paid),
			billing.Money(e.Due),
			shortDate(e.Date),
		}
	}
	p.tbl.SetRows(rows)
	if p.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		p.tbl.SetCursor(len(rows) - 1)
	}
}

// View renders the ledger.
func (p CreditPage) View() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Credit Ledger"))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(p.styles.Error.Render("failed to load credit ledger: " + p.err.Error()))
		sb.WriteString("\n" + p.styles.Muted.Render("press r to retry"))
		return sb.String()
	}

	var totalDue float64
	for _, e := range p.entries {
		totalDue += e.Due
	}
	sb.WriteString(p.styles.Muted.Render("Outstanding:") + " " + p.styles.Warning.Render(billing.Money(totalDue)))
	sb.WriteString("\n\n")

	if len(p.entries) == 0 {
		sb.WriteString(p.styles.Success.Render("no outstanding credit"))
	} else {
		sb.WriteString(p.tbl.View())
	}
	sb.WriteString("\n")

	if p.paying && p.payEntry != nil {
		sb.WriteString("\n" + p.styles.Subtitle.Render(fmt.Sprintf("Pay bill #%d · %s", p.payEntry.SaleID, p.payEntry.CustomerName)))
		sb.WriteString("\n" + p.styles.Muted.Render("amount:") + " " + p.styles.FocusFrame.Render(p.payInput.View()) +
			"  " + p.styles.Muted.Render("due "+billing.Money(p.payEntry.Due)))
		sb.WriteString("\n" + p.styles.Muted.Render("enter record · esc cancel"))
	}

	if p.status != "" {
		sb.WriteString("\n" + p.styles.Info.Render(p.status))
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("enter pay · r refresh"))
	return sb.String()
}
