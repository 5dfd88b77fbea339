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
	"shoptill/internal/roster"
)

// historyTab selects which feed the history page shows.
type historyTab int

const (
	tabSales historyTab = iota
	tabPurchases
)

// HistoryPage shows the sale and purchase histories behind two tabs.
// Sales can be filtered by customer name or phone; Enter on a sale
// opens its invoice.
type HistoryPage struct {
	deps   *Deps
	styles Styles

	tab       historyTab
	salesTbl  table.Model
	purchTbl  table.Model
	sales     []api.SaleSummary
	purchases []api.PurchaseSummary

	filter    textinput.Model
	filtering bool

	// purchase drill-down
	detailID     int64
	purchaseView *api.PurchaseDetail

	loading bool
	err     error

	width  int
	height int
}

// NewHistoryPage creates the history page.
func NewHistoryPage(deps *Deps) HistoryPage {
	styles := deps.Styles

	salesCols := []table.Column{
		{Title: "Bill", Width: 8},
		{Title: "Date", Width: 12},
		{Title: "Customer", Width: 22},
		{Title: "Phone", Width: 14},
		{Title: "Amount", Width: TotalColWidth},
		{Title: "Mode", Width: 8},
		{Title: "Type", Width: 8},
	}
	salesTbl := table.New(
		table.WithColumns(salesCols),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	purchCols := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Dealer", Width: 24},
		{Title: "Items", Width: 7},
		{Title: "Cost", Width: TotalColWidth},
	}
	purchTbl := table.New(
		table.WithColumns(purchCols),
		table.WithHeight(14),
	)

	for _, tbl := range []*table.Model{&salesTbl, &purchTbl} {
		ts := table.DefaultStyles()
		ts.Header = ts.Header.Bold(true)
		ts.Selected = styles.Selected
		tbl.SetStyles(ts)
	}

	filter := textinput.New()
	filter.Placeholder = "name or phone"
	filter.CharLimit = 60
	filter.Width = 24

	return HistoryPage{
		deps:     deps,
		styles:   styles,
		salesTbl: salesTbl,
		purchTbl: purchTbl,
		filter:   filter,
		loading:  true,
	}
}

// Init fetches both feeds in parallel.
func (p HistoryPage) Init() tea.Cmd {
	client := p.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var sales []api.SaleSummary
		var purchases []api.PurchaseSummary
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			sales, err = client.SalesHistory(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			purchases, err = client.ListPurchases(gctx)
			return err
		})
		err := g.Wait()
		return HistoryMsg{Sales: sales, Purchases: purchases, Err: err}
	}
}

// SetSize updates the page dimensions.
func (p *HistoryPage) SetSize(w, h int) {
	p.width = w
	p.height = h
	if h > 10 {
		p.salesTbl.SetHeight(h - 10)
		p.purchTbl.SetHeight(h - 10)
	}
}

// Update handles messages.
func (p HistoryPage) Update(msg tea.Msg) (HistoryPage, tea.Cmd) {
	switch msg := msg.(type) {
	case HistoryMsg:
		p.loading = false
		p.err = msg.Err
		if msg.Err == nil {
			p.sales = msg.Sales
			p.purchases = msg.Purchases
			p.refreshRows()
		}
		return p, nil

	case PurchaseDetailMsg:
		if msg.Err != nil {
			p.detailID = 0
			p.err = msg.Err
			return p, nil
		}
		if p.detailID == msg.Detail.ID {
			p.purchaseView = msg.Detail
		}
		return p, nil

	case tea.KeyMsg:
		return p.updateKey(msg)
	}
	return p, nil
}

func (p HistoryPage) updateKey(msg tea.KeyMsg) (HistoryPage, tea.Cmd) {
	if p.detailID != 0 {
		if msg.String() == "esc" || msg.String() == "backspace" {
			p.detailID = 0
			p.purchaseView = nil
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
	case "tab":
		if p.tab == tabSales {
			p.tab = tabPurchases
			p.salesTbl.Blur()
			p.purchTbl.Focus()
		} else {
			p.tab = tabSales
			p.purchTbl.Blur()
			p.salesTbl.Focus()
		}
		return p, nil
	case "/":
		if p.tab == tabSales {
			p.filtering = true
			return p, p.filter.Focus()
		}
		return p, nil
	case "r":
		p.loading = true
		return p, p.Init()
	case "enter":
		if p.tab == tabSales {
			visible := p.visibleSales()
			idx := p.salesTbl.Cursor()
			if idx >= 0 && idx < len(visible) {
				billID := visible[idx].ID
				return p, func() tea.Msg {
					return NavigateMsg{Page: PageInvoice, BillID: billID}
				}
			}
			return p, nil
		}
		return p.openPurchase()
	}

	var cmd tea.Cmd
	if p.tab == tabSales {
		p.salesTbl, cmd = p.salesTbl.Update(msg)
	} else {
		p.purchTbl, cmd = p.purchTbl.Update(msg)
	}
	return p, cmd
}

func (p HistoryPage) openPurchase() (HistoryPage, tea.Cmd) {
	idx := p.purchTbl.Cursor()
	if idx < 0 || idx >= len(p.purchases) {
		return p, nil
	}
	id := p.purchases[idx].ID
	p.detailID = id
	p.purchaseView = nil

	client := p.deps.API
	return p, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		detail, err := client.GetPurchase(ctx, id)
		return PurchaseDetailMsg{Detail: detail, Err: err}
	}
}

func (p *HistoryPage) visibleSales() []api.SaleSummary {
	return roster.FilterSales(p.sales, p.filter.Value())
}

func (p *HistoryPage) refreshRows() {
	visible := p.visibleSales()
	salesRows := make([]table.Row, len(visible))
	for i, s := range visible {
		salesRows[i] = table.Row{
			fmt.Sprintf("#%d", s.ID),
			shortDate(s.Date),
			s.CustomerName,
			s.CustomerPhone,
			billing.Money(s.FinalAmount),
			s.PaymentMode,
			s.SaleType,
		}
	}
	p.salesTbl.SetRows(salesRows)
	if p.salesTbl.Cursor() >= len(salesRows) && len(salesRows) > 0 {
		p.salesTbl.SetCursor(len(salesRows) - 1)
	}

	purchRows := make([]table.Row, len(p.purchases))
	for i, b := range p.purchases {
		purchRows[i] = table.Row{
			fmt.Sprintf("%d", b.ID),
			shortDate(b.Date),
			b.DealerName,
			fmt.Sprintf("%d", b.ItemCount),
			billing.Money(b.TotalCost),
		}
	}
	p.purchTbl.SetRows(purchRows)
}

// View renders the page.
func (p HistoryPage) View() string {
	if p.detailID != 0 {
		return p.purchaseDetailView()
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render("History"))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(p.styles.Error.Render("failed to load history: " + p.err.Error()))
		sb.WriteString("\n" + p.styles.Muted.Render("press r to retry"))
		return sb.String()
	}

	salesLabel := " Sales "
	purchLabel := " Purchases "
	if p.tab == tabSales {
		salesLabel = p.styles.Selected.Render(salesLabel)
		purchLabel = p.styles.Muted.Render(purchLabel)
	} else {
		salesLabel = p.styles.Muted.Render(salesLabel)
		purchLabel = p.styles.Selected.Render(purchLabel)
	}
	sb.WriteString(salesLabel + purchLabel)

	if p.tab == tabSales {
		filterView := p.styles.InputFrame.Render(p.filter.View())
		if p.filtering {
			filterView = p.styles.FocusFrame.Render(p.filter.View())
		}
		sb.WriteString("  " + filterView)
	}
	sb.WriteString("\n\n")

	if p.tab == tabSales {
		sb.WriteString(p.salesTbl.View())
		sb.WriteString("\n\n")
		sb.WriteString(p.styles.Muted.Render("tab purchases · / filter · enter invoice · r refresh"))
	} else {
		sb.WriteString(p.purchTbl.View())
		sb.WriteString("\n\n")
		sb.WriteString(p.styles.Muted.Render("tab sales · enter details · r refresh"))
	}
	return sb.String()
}

func (p HistoryPage) purchaseDetailView() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render(fmt.Sprintf("Purchase #%d", p.detailID)))
	sb.WriteString("\n")

	if p.purchaseView == nil {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}

	d := p.purchaseView
	sb.WriteString(p.styles.Body.Render(d.DealerName))
	sb.WriteString("  " + p.styles.Muted.Render(shortDate(d.Date)))
	sb.WriteString("\n\n")

	st := SimpleTable{
		Headers: []string{"Item", "Qty", "Cost", "Margin%"},
	}
	var total float64
	for _, it := range d.Items {
		total += it.CostPrice * float64(it.Quantity)
		st.Rows = append(st.Rows, []string{
			it.ItemName,
			fmt.Sprintf("%d", it.Quantity),
			billing.Money(it.CostPrice),
			trimFloat(it.MarginPercent),
		})
	}
	sb.WriteString(st.View(p.styles))
	sb.WriteString("\n")
	sb.WriteString(p.styles.Muted.Render("Total cost:") + " " + p.styles.Bold.Render(billing.Money(total)))

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("esc back"))
	return sb.String()
}
