package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptill/internal/api"
	"shoptill/internal/draft"
)

func customersFixture() []api.CustomerSummary {
	return []api.CustomerSummary{
		{CustomerID: 1, Name: "Asha", Phone: "9876500001", TotalPurchase: 1200, TotalPaid: 1000, TotalCredit: 200},
		{CustomerID: 2, Name: "Bharat", Phone: "9876500002"},
	}
}

func loadedCustomersPage(t *testing.T) CustomersPage {
	t.Helper()
	p := NewCustomersPage(testDeps(draft.NewMemStore(nil)))
	p, _ = p.Update(CustomersMsg{Rows: customersFixture()})
	return p
}

func TestCustomersEnterOpensCombinedDetails(t *testing.T) {
	p := loadedCustomersPage(t)

	var cmd tea.Cmd
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd, "enter must fetch the details payload")
	require.NotNil(t, p.detailFor)
	assert.Equal(t, int64(1), p.detailFor.CustomerID)
	assert.Nil(t, p.detail, "ledger shows loading until the fetch lands")
}

func TestCustomersDetailMsgPopulatesLedger(t *testing.T) {
	p := loadedCustomersPage(t)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	detail := &api.CustomerDetail{
		Customer: api.Customer{ID: 1, Name: "Asha", Phone: "9876500001", Address: "Station Rd"},
		Summary:  api.CustomerAggregates{TotalPurchase: 1200, TotalPaid: 1000, TotalCredit: 200},
		Sales: []api.CustomerLedgerSale{
			{SaleID: 7, Date: "2026-08-20", TotalAmount: 500, Paid: 300, Credit: 200, PaymentMode: "credit"},
		},
	}
	p, _ = p.Update(CustomerDetailMsg{CustomerID: 1, Detail: detail})

	require.NotNil(t, p.detail)
	assert.Equal(t, "Station Rd", p.detail.Customer.Address)
	require.Len(t, p.detail.Sales, 1)
	assert.Equal(t, int64(7), p.detail.Sales[0].SaleID)
}

func TestCustomersDetailFallsBackToSalesFeed(t *testing.T) {
	p := loadedCustomersPage(t)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var cmd tea.Cmd
	p, cmd = p.Update(CustomerDetailMsg{CustomerID: 1, Err: errors.New("404 not found")})
	require.NotNil(t, cmd, "a missing details endpoint falls back to the sales feed")
	assert.Nil(t, p.detail)

	sales := []api.CustomerSale{
		{ID: 9, Date: "2026-08-25", FinalAmount: 350, AmountPaid: 350, PaymentMode: "cash"},
	}
	p, _ = p.Update(CustomerSalesMsg{CustomerID: 1, Sales: sales})

	require.NotNil(t, p.detail)
	assert.Equal(t, "Asha", p.detail.Customer.Name)
	assert.Equal(t, 200.0, p.detail.Summary.TotalCredit, "aggregates come from the overview row")
	require.Len(t, p.detail.Sales, 1)
	assert.Equal(t, int64(9), p.detail.Sales[0].SaleID)
	assert.Equal(t, 350.0, p.detail.Sales[0].TotalAmount)
}

func TestCustomersDetailIgnoresOtherCustomers(t *testing.T) {
	p := loadedCustomersPage(t)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	p, _ = p.Update(CustomerDetailMsg{CustomerID: 99, Detail: &api.CustomerDetail{}})
	assert.Nil(t, p.detail, "a response for another customer is dropped")
}

func TestCustomersEscClosesDetails(t *testing.T) {
	p := loadedCustomersPage(t)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p, _ = p.Update(CustomerDetailMsg{CustomerID: 1, Detail: &api.CustomerDetail{}})

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, p.detailFor)
	assert.Nil(t, p.detail)
}
