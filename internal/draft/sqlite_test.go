package draft

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptill/internal/billing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	s := openTestStore(t)

	d, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := &Draft{
		Lines: []billing.LineItem{
			{ItemID: 3, Name: "Blue Soap", UnitPrice: 35, Quantity: 2, DiscountPercent: 10},
		},
		CustomerName:  "Asha",
		CustomerPhone: "9876500001",
		PaymentMode:   "credit",
		AmountPaid:    "50",
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, out)
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save(&Draft{CustomerName: "first"}))
	require.NoError(t, s.Save(&Draft{CustomerName: "second"}))

	out, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "second", out.CustomerName)
}

func TestSQLiteStore_Clear(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save(&Draft{CustomerName: "Asha"}))
	require.NoError(t, s.Clear())

	out, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, out, "draft key must not exist after Clear")

	// Clearing an already-empty store is not an error.
	require.NoError(t, s.Clear())
}

func TestDraft_Empty(t *testing.T) {
	assert.True(t, (*Draft)(nil).Empty())
	assert.True(t, (&Draft{}).Empty())
	assert.True(t, (&Draft{Lines: []billing.LineItem{{Quantity: 1}}}).Empty(), "one blank row is still empty")
	assert.False(t, (&Draft{CustomerPhone: "98765"}).Empty())
	assert.False(t, (&Draft{Lines: []billing.LineItem{{ItemID: 2, Quantity: 1}}}).Empty())
}
