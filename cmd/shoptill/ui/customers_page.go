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
	"shoptill/internal/roster"
)

// CustomersPage is the customers overview: one row per customer with
// purchase and credit aggregates, a live filter, a cycling sort mode,
// and an Enter drill-down into that customer's sale history.
type CustomersPage struct {
	deps   *Deps
	styles Styles

	tbl  table.Model
	rows []api.CustomerSummary
	sort roster.SortKey

	filter    textinput.Model
	filtering bool

	// drill-down state
	detailFor *api.CustomerSummary
	detail    *api.CustomerDetail

	loading bool
	err     error

	width  int
	height int
}

// NewCustomersPage creates the customers page.
func NewCustomersPage(deps *Deps) CustomersPage {
	styles := deps.Styles

	cols := []table.Column{
		{Title: "Customer", Width: 22},
		{Title: "Phone", Width: 14},
		{Title: "Last Visit", Width: 12},
		{Title: "Purchased", Width: TotalColWidth},
		{Title: "Paid", Width: TotalColWidth},
		{Title: "Credit", Width: TotalColWidth},
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
	filter.Placeholder = "name or phone"
	filter.CharLimit = 60
	filter.Width = 24

	return CustomersPage{
		deps:    deps,
		styles:  styles,
		tbl:     tbl,
		filter:  filter,
		loading: true,
	}
}

// Init fetches the overview.
func (p CustomersPage) Init() tea.Cmd {
	client := p.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		rows, err := client.CustomerSummaries(ctx)
		return CustomersMsg{Rows: rows, Err: err}
	}
}

// SetSize updates the page dimensions.
func (p *CustomersPage) SetSize(w, h int) {
	p.width = w
	p.height = h
	if h > 10 {
		p.tbl.SetHeight(h - 10)
	}
}

// Update handles messages.
func (p CustomersPage) Update(msg tea.Msg) (CustomersPage, tea.Cmd) {
	switch msg := msg.(type) {
	case CustomersMsg:
		p.loading = false
		p.err = msg.Err
		if msg.Err == nil {
			p.rows = msg.Rows
			p.refreshRows()
		}
		return p, nil

	case CustomerDetailMsg:
		if p.detailFor == nil || p.detailFor.CustomerID != msg.CustomerID {
			return p, nil
		}
		if msg.Err != nil {
			// Older backends lack the combined endpoint; stitch the
			// ledger from the summary row and the plain sales feed.
			return p, p.fetchSalesFallback(msg.CustomerID)
		}
		p.detail = msg.Detail
		return p, nil

	case CustomerSalesMsg:
		if p.detailFor == nil || p.detailFor.CustomerID != msg.CustomerID {
			return p, nil
		}
		if msg.Err != nil {
			p.err = msg.Err
			return p, nil
		}
		p.detail = detailFromSummary(*p.detailFor, msg.Sales)
		return p, nil

	case tea.KeyMsg:
		return p.updateKey(msg)
	}
	return p, nil
}

func (p CustomersPage) updateKey(msg tea.KeyMsg) (CustomersPage, tea.Cmd) {
	if p.detailFor != nil {
		if msg.String() == "esc" || msg.String() == "backspace" {
			p.detailFor = nil
			p.detail = nil
		}
		return p, nil
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
	case "tab":
		p.sort = roster.NextSortKey(p.sort)
		p.refreshRows()
		return p, nil
	case "r":
		p.loading = true
		return p, p.Init()
	case "enter":
		return p.openDetail()
	}

	var cmd tea.Cmd
	p.tbl, cmd = p.tbl.Update(msg)
	return p, cmd
}

func (p CustomersPage) openDetail() (CustomersPage, tea.Cmd) {
	visible := p.visibleRows()
	idx := p.tbl.Cursor()
	if idx < 0 || idx >= len(visible) {
		return p, nil
	}
	row := visible[idx]
	p.detailFor = &row
	p.detail = nil

	client := p.deps.API
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		detail, err := client.CustomerDetails(ctx, row.CustomerID)
		return CustomerDetailMsg{CustomerID: row.CustomerID, Detail: detail, Err: err}
	}
}

func (p *CustomersPage) fetchSalesFallback(customerID int64) tea.Cmd {
	client := p.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		sales, err := client.CustomerSales(ctx, customerID)
		return CustomerSalesMsg{CustomerID: customerID, Sales: sales, Err: err}
	}
}

// detailFromSummary rebuilds the combined payload from the overview
// row and the plain sales feed.
func detailFromSummary(row api.CustomerSummary, sales []api.CustomerSale) *api.CustomerDetail {
	d := &api.CustomerDetail{
		Customer: api.Customer{ID: row.CustomerID, Name: row.Name, Phone: row.Phone},
		Summary: api.CustomerAggregates{
			TotalPurchase: row.TotalPurchase,
			TotalPaid:     row.TotalPaid,
			TotalCredit:   row.TotalCredit,
		},
	}
	for _, s := range sales {
		d.Sales = append(d.Sales, api.CustomerLedgerSale{
			SaleID:      s.ID,
			Date:        s.Date,
			TotalAmount: s.FinalAmount,
			Paid:        s.AmountPaid,
			Credit:      s.DueAmount,
			PaymentMode: s.PaymentMode,
		})
	}
	return d
}

func (p *CustomersPage) visibleRows() []api.CustomerSummary {
	filtered := roster.FilterCustomers(p.rows, p.filter.Value())
	return roster.SortCustomers(filtered, p.sort)
}

func (p *CustomersPage) refreshRows() {
	visible := p.visibleRows()
	rows := make([]table.Row, len(visible))
	for i, r := range visible {
		rows[i] = table.Row{
			r.Name,
			r.Phone,
			shortDate(r.LastPurchaseDate),
			billing.Money(r.TotalPurchase),
			billing.Money(r.TotalPaid),
			billing.Money(r.TotalCredit),
		}
	}
	p.tbl.SetRows(rows)
	if p.tbl.Cursor() >= len(rows) && len(rows) > 0 {
		p.tbl.SetCursor(len(rows) - 1)
	}
}

// View renders the overview or the drill-down.
func (p CustomersPage) View() string {
	if p.detailFor != nil {
		return p.detailView()
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("Customers"))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(p.styles.Error.Render("failed to load customers: " + p.err.Error()))
		sb.WriteString("\n" + p.styles.Muted.Render("press r to retry"))
		return sb.String()
	}

	filterView := p.styles.InputFrame.Render(p.filter.View())
	if p.filtering {
		filterView = p.styles.FocusFrame.Render(p.filter.View())
	}
	sb.WriteString(filterView + "  " + p.styles.Badge.Render(p.sort.Label()))
	sb.WriteString("\n\n")

	sb.WriteString(p.tbl.View())
	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("/ filter · tab sort · enter history · r refresh"))
	return sb.String()
}

func (p CustomersPage) detailView() string {
	var sb strings.Builder

	if p.detail == nil {
		sb.WriteString(p.styles.Title.Render(p.detailFor.Name))
		sb.WriteString("\n")
		sb.WriteString(p.styles.Muted.Render("loading details..."))
		return sb.String()
	}

	c := p.detail.Customer
	sum := p.detail.Summary

	sb.WriteString(p.styles.Title.Render(c.Name))
	sb.WriteString("\n")
	sb.WriteString(p.styles.Muted.Render(strings.TrimSpace(c.Phone + "  " + c.Address)))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
		p.styles.Muted.Render("Purchased:"), billing.Money(sum.TotalPurchase),
		p.styles.Muted.Render("Paid:"), billing.Money(sum.TotalPaid),
		p.styles.Muted.Render("Credit:"), p.styles.Warning.Render(billing.Money(sum.TotalCredit))))
	sb.WriteString("\n\n")

	if len(p.detail.Sales) == 0 {
		sb.WriteString(p.styles.Muted.Render("no sales recorded"))
	} else {
		st := SimpleTable{
			Headers: []string{"Bill", "Date", "Total", "Paid", "Credit", "Mode"},
		}
		for _, s := range p.detail.Sales {
			st.Rows = append(st.Rows, []string{
				fmt.Sprintf("#%d", s.SaleID),
				shortDate(s.Date),
				billing.Money(s.TotalAmount),
				billing.Money(s.Paid),
				billing.Money(s.Credit),
				s.PaymentMode,
			})
		}
		sb.WriteString(st.View(p.styles))
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("esc back"))
	return sb.String()
}

// shortDate trims an ISO timestamp to its date part.
func shortDate(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}
