package ui

import (
	"shoptill/internal/api"
	"shoptill/internal/draft"
)

// Page identifies one view in the shell.
type Page int

const (
	PageDashboard Page = iota
	PageSale
	PagePurchase
	PageInventory
	PageCustomers
	PageCredit
	PageHistory
	PageInvoice
)

// Title returns the page name shown in the sidebar and header.
func (p Page) Title() string {
	switch p {
	case PageSale:
		return "New Sale"
	case PagePurchase:
		return "New Purchase"
	case PageInventory:
		return "Inventory"
	case PageCustomers:
		return "Customers"
	case PageCredit:
		return "Credit"
	case PageHistory:
		return "History"
	case PageInvoice:
		return "Invoice"
	default:
		return "Dashboard"
	}
}

// NavigateMsg switches the shell to another page. BillID is set when
// navigating to the invoice page.
type NavigateMsg struct {
	Page   Page
	BillID int64
}

// SearchResultsMsg delivers catalog/supplier/customer lookups to the
// owning search box. Seq orders responses so stale ones are dropped.
type SearchResultsMsg struct {
	Owner   string
	Seq     uint64
	Results []SearchResult
	Err     error
}

// DraftLoadedMsg completes the initial draft cache read.
type DraftLoadedMsg struct {
	Draft *draft.Draft
	Err   error
}

// DraftSavedMsg completes a fire-and-forget draft write.
type DraftSavedMsg struct{ Err error }

// PreviewMsg delivers backend-computed totals for a candidate sale.
type PreviewMsg struct {
	Preview *api.SalePreview
	Err     error
}

// ConfirmMsg completes a sale submission.
type ConfirmMsg struct {
	Receipt *api.SaleReceipt
	Err     error
}

// PurchaseSavedMsg completes a purchase batch submission.
type PurchaseSavedMsg struct{ Err error }

// DashboardMsg delivers both dashboard feeds.
type DashboardMsg struct {
	Today *api.TodayReport
	Week  []api.DayTotal
	Err   error
}

// ItemsMsg delivers the catalog with low-stock ids marked.
type ItemsMsg struct {
	Items    []api.Item
	LowStock map[int64]bool
	Err      error
}

// ItemUpdatedMsg completes an inventory edit.
type ItemUpdatedMsg struct {
	Item *api.Item
	Err  error
}

// CustomersMsg delivers the customers overview.
type CustomersMsg struct {
	Rows []api.CustomerSummary
	Err  error
}

// CustomerDetailMsg delivers one customer's combined drill-down.
type CustomerDetailMsg struct {
	CustomerID int64
	Detail     *api.CustomerDetail
	Err        error
}

// CustomerSalesMsg delivers one customer's sale history, used when the
// backend lacks the combined details endpoint.
type CustomerSalesMsg struct {
	CustomerID int64
	Sales      []api.CustomerSale
	Err        error
}

// CreditMsg delivers the credit ledger.
type CreditMsg struct {
	Entries []api.CreditEntry
	Err     error
}

// CreditPaidMsg completes a credit payment.
type CreditPaidMsg struct{ Err error }

// PurchaseDetailMsg delivers one purchase batch for display.
type PurchaseDetailMsg struct {
	Detail *api.PurchaseDetail
	Err    error
}

// HistoryMsg delivers the merged sales and purchase history feeds.
type HistoryMsg struct {
	Sales     []api.SaleSummary
	Purchases []api.PurchaseSummary
	Err       error
}

// InvoiceMsg delivers a persisted sale for display.
type InvoiceMsg struct {
	Detail *api.SaleDetail
	Err    error
}
