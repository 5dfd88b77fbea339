package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// sidebarPages is the navigation order; F1..F7 map onto it. The
// invoice page is reached from a sale or the history list, not from
// the sidebar.
var sidebarPages = []Page{
	PageDashboard,
	PageSale,
	PagePurchase,
	PageInventory,
	PageCustomers,
	PageCredit,
	PageHistory,
}

// App is the shell: sidebar navigation, header, and one active page.
// All network results arrive as typed messages and are routed to the
// page that understands them, regardless of which page is showing, so
// a slow response never lands on the wrong view.
type App struct {
	deps   *Deps
	styles Styles
	layout LayoutConfig

	active Page

	dashboard DashboardPage
	sale      SalePage
	purchase  PurchasePage
	inventory InventoryPage
	customers CustomersPage
	credit    CreditPage
	history   HistoryPage
	invoice   InvoicePage

	visited map[Page]bool
	ready   bool
}

// NewApp wires the shell and its pages.
func NewApp(deps *Deps) App {
	return App{
		deps:      deps,
		styles:    deps.Styles,
		active:    PageSale,
		dashboard: NewDashboardPage(deps),
		sale:      NewSalePage(deps),
		purchase:  NewPurchasePage(deps),
		inventory: NewInventoryPage(deps),
		customers: NewCustomersPage(deps),
		credit:    NewCreditPage(deps),
		history:   NewHistoryPage(deps),
		invoice:   NewInvoicePage(deps),
		visited:   map[Page]bool{PageSale: true},
	}
}

// Init boots straight into the sale page; the till's first act of the
// day is a bill.
func (a App) Init() tea.Cmd {
	return a.sale.Init()
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.layout = NewLayoutConfig(msg.Width, msg.Height)
		a.ready = true
		w, h := a.layout.ContentWidth(), a.layout.ContentHeight()
		a.dashboard.SetSize(w, h)
		a.sale.SetSize(w, h)
		a.purchase.SetSize(w, h)
		a.inventory.SetSize(w, h)
		a.customers.SetSize(w, h)
		a.credit.SetSize(w, h)
		a.history.SetSize(w, h)
		a.invoice.SetSize(w, h)
		return a, nil

	case NavigateMsg:
		return a.navigate(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "f1", "f2", "f3", "f4", "f5", "f6", "f7":
			idx := int(msg.String()[1] - '1')
			if idx >= 0 && idx < len(sidebarPages) {
				return a.navigate(NavigateMsg{Page: sidebarPages[idx]})
			}
		}
		// Keys go only to the active page.
		return a.routeToActive(msg)
	}

	// Data and timer messages are routed by type so late responses
	// reach their page even after the user navigated away.
	return a.route(msg)
}

func (a App) navigate(msg NavigateMsg) (tea.Model, tea.Cmd) {
	a.active = msg.Page

	if msg.Page == PageInvoice {
		return a, a.invoice.Show(msg.BillID)
	}

	// First visit loads the page; revisits keep whatever it had, with
	// r available everywhere to refetch.
	if !a.visited[msg.Page] {
		a.visited[msg.Page] = true
		switch msg.Page {
		case PageDashboard:
			return a, a.dashboard.Init()
		case PageSale:
			return a, a.sale.Init()
		case PagePurchase:
			return a, a.purchase.Init()
		case PageInventory:
			return a, a.inventory.Init()
		case PageCustomers:
			return a, a.customers.Init()
		case PageCredit:
			return a, a.credit.Init()
		case PageHistory:
			return a, a.history.Init()
		}
	}

	// Ledger-style pages refetch on every entry so they never show a
	// stale balance.
	switch msg.Page {
	case PageCredit:
		return a, a.credit.Init()
	case PageDashboard:
		return a, a.dashboard.Init()
	}
	return a, nil
}

func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case PageDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case PageSale:
		a.sale, cmd = a.sale.Update(msg)
	case PagePurchase:
		a.purchase, cmd = a.purchase.Update(msg)
	case PageInventory:
		a.inventory, cmd = a.inventory.Update(msg)
	case PageCustomers:
		a.customers, cmd = a.customers.Update(msg)
	case PageCredit:
		a.credit, cmd = a.credit.Update(msg)
	case PageHistory:
		a.history, cmd = a.history.Update(msg)
	case PageInvoice:
		a.invoice, cmd = a.invoice.Update(msg)
	}
	return a, cmd
}

func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case DashboardMsg:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case DraftLoadedMsg, DraftSavedMsg, PreviewMsg, ConfirmMsg:
		a.sale, cmd = a.sale.Update(msg)
	case PurchaseSavedMsg:
		a.purchase, cmd = a.purchase.Update(msg)
	case ItemsMsg, ItemUpdatedMsg:
		a.inventory, cmd = a.inventory.Update(msg)
	case CustomersMsg, CustomerDetailMsg, CustomerSalesMsg:
		a.customers, cmd = a.customers.Update(msg)
	case CreditMsg, CreditPaidMsg:
		a.credit, cmd = a.credit.Update(msg)
	case HistoryMsg, PurchaseDetailMsg:
		a.history, cmd = a.history.Update(msg)
	case InvoiceMsg:
		a.invoice, cmd = a.invoice.Update(msg)
	case DebounceMsg, SearchResultsMsg:
		// Both entry pages hold search boxes; each box filters by its
		// own owner id and version.
		var cmds []tea.Cmd
		a.sale, cmd = a.sale.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		a.purchase, cmd = a.purchase.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	default:
		a.deps.Logger().Debug("unrouted message", zap.Any("type", fmt.Sprintf("%T", msg)))
	}
	return a, cmd
}

// View renders the shell.
func (a App) View() string {
	if !a.ready {
		return "starting..."
	}
	if a.layout.TerminalWidth < MinimumTerminalWidth || a.layout.TerminalHeight < MinimumTerminalHeight {
		return a.styles.Warning.Render(fmt.Sprintf("terminal too small, need at least %dx%d",
			MinimumTerminalWidth, MinimumTerminalHeight))
	}

	header := a.styles.Header.Width(a.layout.TerminalWidth).Render("shoptill · " + a.active.Title())

	content := a.styles.Content.
		Width(a.layout.ContentWidth()).
		Height(a.layout.ContentHeight()).
		Render(a.pageView())

	var body string
	if a.layout.IsCompact {
		body = content
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar(), content)
	}

	footer := a.styles.Footer.Render("F1-F7 pages · ctrl+c quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) pageView() string {
	switch a.active {
	case PageDashboard:
		return a.dashboard.View()
	case PageSale:
		return a.sale.View()
	case PagePurchase:
		return a.purchase.View()
	case PageInventory:
		return a.inventory.View()
	case PageCustomers:
		return a.customers.View()
	case PageCredit:
		return a.credit.View()
	case PageHistory:
		return a.history.View()
	case PageInvoice:
		return a.invoice.View()
	}
	return ""
}

func (a App) sidebar() string {
	var lines []string
	for i, page := range sidebarPages {
		label := fmt.Sprintf("F%d %s", i+1, page.Title())
		if page == a.active {
			lines = append(lines, a.styles.Selected.Render(label))
		} else {
			lines = append(lines, a.styles.Muted.Render(label))
		}
	}
	if a.active == PageInvoice {
		lines = append(lines, a.styles.Selected.Render("   Invoice"))
	}
	return a.styles.Sidebar.
		Width(SidebarWidth).
		Height(a.layout.ContentHeight()).
		Render(strings.Join(lines, "\n"))
}
