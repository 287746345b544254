package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nivesh.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func compile(t *testing.T, raw string, ctx query.Context) *query.Query {
	t.Helper()
	q, err := query.Compile(raw, ctx)
	require.NoError(t, err)
	return q
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func seedSecurities(t *testing.T, s *Store) {
	t.Helper()
	for _, sec := range []model.Security{
		{Key: "120503", Name: "Axis Bluechip Fund", Type: model.SecurityTypeMutualFund, Category: model.CategoryEquity},
		{Key: "GOLDBEES", Name: "Nippon Gold ETF", Type: model.SecurityTypeETF, Category: model.CategoryCommodity},
		{Key: "SGB2028", Name: "Sovereign Gold Bond 2028", Type: model.SecurityTypeBond, Category: model.CategoryDebt},
	} {
		require.NoError(t, s.AddSecurity(sec))
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	a, err := s.AddAccount(model.Account{Name: "Retirement", Institution: "Zerodha"})
	require.NoError(t, err)
	assert.NotZero(t, a.ID)

	_, err = s.AddAccount(model.Account{Name: "Savings", Institution: "HDFC"})
	require.NoError(t, err)

	accounts, err := s.ListAccounts(compile(t, "", query.Accounts))
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Retirement", accounts[0].Name)

	accounts, err = s.ListAccounts(compile(t, "hdfc", query.Accounts))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Savings", accounts[0].Name)
}

func TestGetOrCreateAccountIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	a1, err := s.GetOrCreateAccount("Retirement", "Zerodha")
	require.NoError(t, err)
	a2, err := s.GetOrCreateAccount("Retirement", "Zerodha")
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID)

	accounts, err := s.ListAccounts(compile(t, "", query.Accounts))
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestSecuritiesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	seedSecurities(t, s)

	sec, found, err := s.GetSecurity("GOLDBEES")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.SecurityTypeETF, sec.Type)

	_, found, err = s.GetSecurity("MISSING")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.UpsertSecurity(model.Security{
		Key: "GOLDBEES", Name: "Nippon India Gold ETF",
		Type: model.SecurityTypeETF, Category: model.CategoryCommodity,
	}))
	sec, _, err = s.GetSecurity("GOLDBEES")
	require.NoError(t, err)
	assert.Equal(t, "Nippon India Gold ETF", sec.Name)
}

func TestListSecuritiesFilters(t *testing.T) {
	s := openTestStore(t)
	seedSecurities(t, s)

	// Bare terms search the security text.
	secs, err := s.ListSecurities(compile(t, "gold", query.Securities))
	require.NoError(t, err)
	assert.Len(t, secs, 2)

	// type: matches both the instrument type and the asset category.
	secs, err = s.ListSecurities(compile(t, "type:debt", query.Securities))
	require.NoError(t, err)
	require.Len(t, secs, 1)
	assert.Equal(t, "SGB2028", secs[0].Key)

	secs, err = s.ListSecurities(compile(t, "not:gold", query.Securities))
	require.NoError(t, err)
	require.Len(t, secs, 1)
	assert.Equal(t, "120503", secs[0].Key)
}

func seedTransactions(t *testing.T, s *Store) {
	t.Helper()
	seedSecurities(t, s)
	a, err := s.GetOrCreateAccount("Retirement", "Zerodha")
	require.NoError(t, err)

	require.NoError(t, s.AddTransactions([]model.Transaction{
		{
			Date: day(t, "2025-04-10"), Type: model.TransactionPurchase,
			Description: "SIP installment", Amount: decimal.RequireFromString("5000"),
			Units: decimal.RequireFromString("98.7654"), SecurityKey: "120503", AccountID: a.ID,
		},
		{
			Date: day(t, "2025-06-02"), Type: model.TransactionPurchase,
			Description: "Gold allocation", Amount: decimal.RequireFromString("12000.50"),
			Units: decimal.RequireFromString("220"), SecurityKey: "GOLDBEES", AccountID: a.ID,
		},
		{
			Date: day(t, "2025-07-15"), Type: model.TransactionSale,
			Description: "Partial redemption", Amount: decimal.RequireFromString("3000"),
			Units: decimal.RequireFromString("55"), SecurityKey: "GOLDBEES", AccountID: a.ID,
		},
	}))
}

func TestListTransactionsFilters(t *testing.T) {
	s := openTestStore(t)
	seedTransactions(t, s)

	all, err := s.ListTransactions(compile(t, "", query.Transactions))
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "Partial redemption", all[0].Tx.Description)

	sales, err := s.ListTransactions(compile(t, "type:sale", query.Transactions))
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, model.TransactionSale, sales[0].Tx.Type)

	// Amount clauses are evaluated in memory, not pushed to SQL.
	big, err := s.ListTransactions(compile(t, "amt:>=5000", query.Transactions))
	require.NoError(t, err)
	assert.Len(t, big, 2)

	exact, err := s.ListTransactions(compile(t, "amt:12000.5", query.Transactions))
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "Gold allocation", exact[0].Tx.Description)

	// Date ranges are pushed as ISO text comparisons.
	q2, err := s.ListTransactions(compile(t, "date:2025-06..2025-07", query.Transactions))
	require.NoError(t, err)
	assert.Len(t, q2, 2)

	// Mixed kinds AND together.
	mixed, err := s.ListTransactions(compile(t, "sec:gold type:purchase", query.Transactions))
	require.NoError(t, err)
	require.Len(t, mixed, 1)
	assert.Equal(t, "Gold allocation", mixed[0].Tx.Description)

	none, err := s.ListTransactions(compile(t, "acct:icici", query.Transactions))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPricesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	seedSecurities(t, s)

	p := model.Price{
		SecurityKey: "120503", Date: day(t, "2025-08-01"),
		Open:  decimal.RequireFromString("54.12"),
		High:  decimal.RequireFromString("54.90"),
		Low:   decimal.RequireFromString("53.80"),
		Close: decimal.RequireFromString("54.55"),
	}
	require.NoError(t, s.UpsertPrice(p))

	// Re-upserting the same day replaces the quote.
	p.Close = decimal.RequireFromString("54.60")
	require.NoError(t, s.UpsertPrice(p))

	require.NoError(t, s.UpsertPrice(model.Price{
		SecurityKey: "GOLDBEES", Date: day(t, "2025-08-02"),
		Open:  decimal.RequireFromString("61.00"),
		High:  decimal.RequireFromString("61.50"),
		Low:   decimal.RequireFromString("60.80"),
		Close: decimal.RequireFromString("61.20"),
	}))

	all, err := s.ListPrices(compile(t, "", query.Prices))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].Price.Close.Equal(decimal.RequireFromString("54.60")))

	gold, err := s.ListPrices(compile(t, "sec:goldbees date:2025-08", query.Prices))
	require.NoError(t, err)
	require.Len(t, gold, 1)
	assert.Equal(t, "Nippon Gold ETF", gold[0].Security.Name)

	none, err := s.ListPrices(compile(t, "date:..2025-07", query.Prices))
	require.NoError(t, err)
	assert.Empty(t, none)
}
