package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shoptill/internal/api"
	"shoptill/internal/billing"
)

// InvoicePage renders one persisted sale as a printable-looking bill.
// It always refetches by bill id, so the figures shown are what the
// backend stored, not what the sale form last computed.
type InvoicePage struct {
	deps   *Deps
	styles Styles

	billID  int64
	detail  *api.SaleDetail
	loading bool
	err     error

	width  int
	height int
}

// NewInvoicePage creates the invoice page.
func NewInvoicePage(deps *Deps) InvoicePage {
	return InvoicePage{deps: deps, styles: deps.Styles}
}

// Show loads the given bill.
func (p *InvoicePage) Show(billID int64) tea.Cmd {
	p.billID = billID
	p.detail = nil
	p.err = nil
	p.loading = true

	client := p.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		detail, err := client.GetSale(ctx, billID)
		return InvoiceMsg{Detail: detail, Err: err}
	}
}

// Init is a no-op; the shell drives loading through Show.
func (p InvoicePage) Init() tea.Cmd { return nil }

// SetSize updates the page dimensions.
func (p *InvoicePage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Update handles messages.
func (p InvoicePage) Update(msg tea.Msg) (InvoicePage, tea.Cmd) {
	switch msg := msg.(type) {
	case InvoiceMsg:
		p.loading = false
		p.err = msg.Err
		if msg.Err == nil {
			p.detail = msg.Detail
		}
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if p.billID != 0 {
				return p, p.Show(p.billID)
			}
		case "esc", "backspace":
			return p, func() tea.Msg { return NavigateMsg{Page: PageHistory} }
		}
	}
	return p, nil
}

// View renders the invoice.
func (p InvoicePage) View() string {
	var sb strings.Builder
	sb.WriteString(p.styles.Title.Render(fmt.Sprintf("Invoice #%d", p.billID)))
	sb.WriteString("\n")

	if p.loading {
		sb.WriteString(p.styles.Muted.Render("loading..."))
		return sb.String()
	}
	if p.err != nil {
		sb.WriteString(p.styles.Error.Render("failed to load invoice: " + p.err.Error()))
		sb.WriteString("\n" + p.styles.Muted.Render("r retry · esc back"))
		return sb.String()
	}
	if p.detail == nil {
		sb.WriteString(p.styles.Muted.Render("no invoice selected"))
		return sb.String()
	}

	d := p.detail
	sb.WriteString(p.styles.Muted.Render(shortDate(d.Date)))
	sb.WriteString("\n")
	if d.CustomerName != "" || d.CustomerPhone != "" {
		sb.WriteString(p.styles.Body.Render(strings.TrimSpace(d.CustomerName + "  " + d.CustomerPhone)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	st := SimpleTable{
		Headers: []string{"Item", "Qty", "Price", "Disc%", "Total"},
	}
	for _, it := range d.Items {
		st.Rows = append(st.Rows, []string{
			it.ItemName,
			fmt.Sprintf("%d", it.Quantity),
			billing.Money(it.Price),
			trimFloat(it.DiscountPercent),
			billing.Money(it.FinalPrice),
		})
	}
	sb.WriteString(st.View(p.styles))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s %s\n", p.styles.Muted.Render("Subtotal:"), billing.Money(d.TotalAmount)))
	sb.WriteString(fmt.Sprintf("%s %s\n", p.styles.Muted.Render("Discount:"), billing.Money(d.TotalDiscount)))
	sb.WriteString(p.styles.Bold.Render(fmt.Sprintf("Total:    %s", billing.Money(d.FinalAmount))))
	if d.DueAmount > 0 {
		sb.WriteString("\n" + fmt.Sprintf("%s %s   %s %s",
			p.styles.Muted.Render("Paid:"), billing.Money(d.AmountPaid),
			p.styles.Warning.Render("Due:"), p.styles.Warning.Render(billing.Money(d.DueAmount))))
	}

	sb.WriteString("\n\n")
	sb.WriteString(p.styles.Muted.Render("r refresh · esc back"))
	return sb.String()
}
