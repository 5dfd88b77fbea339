package roster

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"shoptill/internal/api"
)

func sampleCustomers() []api.CustomerSummary {
	return []api.CustomerSummary{
		{CustomerID: 1, Name: "Asha", Phone: "9876500001", LastPurchaseDate: "2026-08-20", TotalCredit: 150},
		{CustomerID: 2, Name: "Bharat", Phone: "9876500002", LastPurchaseDate: "2026-08-30", TotalCredit: 0},
		{CustomerID: 3, Name: "Chitra", Phone: "8700000003", LastPurchaseDate: "2026-08-25", TotalCredit: 500},
	}
}

func names(rows []api.CustomerSummary) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestFilterCustomers_ByPhoneSubstring(t *testing.T) {
	got := FilterCustomers(sampleCustomers(), "8700")
	assert.Equal(t, []string{"Chitra"}, names(got))
}

func TestFilterCustomers_NoMatchIsEmptyNotNilPanic(t *testing.T) {
	got := FilterCustomers(sampleCustomers(), "5555555")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterCustomers_NameCaseInsensitive(t *testing.T) {
	got := FilterCustomers(sampleCustomers(), "ASH")
	assert.Equal(t, []string{"Asha"}, names(got))
}

func TestFilterCustomers_EmptyQueryKeepsOrder(t *testing.T) {
	in := sampleCustomers()
	got := FilterCustomers(in, "   ")
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("empty query changed rows (-want +got):\n%s", diff)
	}
}

func TestSortCustomers_NameAscDescAreReverses(t *testing.T) {
	in := sampleCustomers()

	asc := SortCustomers(in, SortNameAsc)
	desc := SortCustomers(in, SortNameDesc)

	assert.Equal(t, []string{"Asha", "Bharat", "Chitra"}, names(asc))
	assert.Equal(t, []string{"Chitra", "Bharat", "Asha"}, names(desc))
}

func TestSortCustomers_RecentFirst(t *testing.T) {
	got := SortCustomers(sampleCustomers(), SortRecent)
	assert.Equal(t, []string{"Bharat", "Chitra", "Asha"}, names(got))
}

func TestSortCustomers_CreditKeys(t *testing.T) {
	high := SortCustomers(sampleCustomers(), SortCreditHigh)
	low := SortCustomers(sampleCustomers(), SortCreditLow)

	assert.Equal(t, []string{"Chitra", "Asha", "Bharat"}, names(high))
	assert.Equal(t, []string{"Bharat", "Asha", "Chitra"}, names(low))
}

func TestSortCustomers_StableForEqualKeys(t *testing.T) {
	in := []api.CustomerSummary{
		{CustomerID: 1, Name: "Dev", TotalCredit: 100},
		{CustomerID: 2, Name: "Dev", TotalCredit: 100},
		{CustomerID: 3, Name: "Dev", TotalCredit: 100},
	}

	once := SortCustomers(in, SortCreditHigh)
	twice := SortCustomers(once, SortCreditHigh)

	ids := func(rows []api.CustomerSummary) []int64 {
		out := make([]int64, len(rows))
		for i, r := range rows {
			out[i] = r.CustomerID
		}
		return out
	}

	assert.Equal(t, []int64{1, 2, 3}, ids(once))
	assert.Equal(t, ids(once), ids(twice), "repeated sort must not reorder equal keys")
}

func TestSortCustomers_DoesNotMutateInput(t *testing.T) {
	in := sampleCustomers()
	_ = SortCustomers(in, SortNameDesc)
	assert.Equal(t, []string{"Asha", "Bharat", "Chitra"}, names(in))
}

func TestNextSortKey_Cycles(t *testing.T) {
	k := SortRecent
	for i := 0; i < 5; i++ {
		k = NextSortKey(k)
	}
	assert.Equal(t, SortRecent, k)
}

func TestFilterSales(t *testing.T) {
	rows := []api.SaleSummary{
		{ID: 1, CustomerName: "Asha", CustomerPhone: "9876500001"},
		{ID: 2, CustomerName: "Walk-in", CustomerPhone: ""},
	}

	byPhone := FilterSales(rows, "98765")
	assert.Len(t, byPhone, 1)
	assert.Equal(t, int64(1), byPhone[0].ID)

	byName := FilterSales(rows, "walk")
	assert.Len(t, byName, 1)
	assert.Equal(t, int64(2), byName[0].ID)
}
