package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, text string, ctx Context) Clause {
	t.Helper()
	c, err := Classify(Token{Text: text}, ctx)
	require.NoError(t, err)
	return c
}

func TestClassify_Prefixes(t *testing.T) {
	tests := []struct {
		in    string
		field Field
		value string
	}{
		{"acct:hdfc", FieldAccount, "hdfc"},
		{"amt:100", FieldAmount, "100"},
		{"date:2025", FieldDate, "2025"},
		{"desc:dividend", FieldDescription, "dividend"},
		{"sec:nifty", FieldSecurity, "nifty"},
		{"type:purchase", FieldType, "purchase"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := classify(t, tt.in, Transactions)
			assert.Equal(t, tt.field, c.Field)
			assert.Equal(t, tt.value, c.Value)
			assert.False(t, c.Negated)
		})
	}
}

func TestClassify_DefaultResolution(t *testing.T) {
	assert.Equal(t, FieldSecurity, classify(t, "gold", Transactions).Field)
	assert.Equal(t, FieldSecurity, classify(t, "gold", Securities).Field)
	assert.Equal(t, FieldSecurity, classify(t, "gold", Prices).Field)
	assert.Equal(t, FieldAccount, classify(t, "hdfc", Accounts).Field)
}

func TestClassify_Negation(t *testing.T) {
	c := classify(t, "not:etf", Transactions)
	assert.True(t, c.Negated)
	assert.Equal(t, FieldSecurity, c.Field)
	assert.Equal(t, "etf", c.Value)

	c = classify(t, "not:amt:100", Transactions)
	assert.True(t, c.Negated)
	assert.Equal(t, FieldAmount, c.Field)
	assert.Equal(t, "100", c.Value)
}

func TestClassify_DoubleNotStaysLiteral(t *testing.T) {
	// Only the first not: is a modifier; the rest is plain text.
	c := classify(t, "not:not:etf", Transactions)
	assert.True(t, c.Negated)
	assert.Equal(t, FieldSecurity, c.Field)
	assert.Equal(t, "not:etf", c.Value)
}

func TestClassify_CaseSensitivePrefix(t *testing.T) {
	// DATE: is not a recognized prefix, so the token is a bare term.
	c := classify(t, "DATE:2025", Transactions)
	assert.Equal(t, FieldSecurity, c.Field)
	assert.Equal(t, "DATE:2025", c.Value)
}

func TestClassify_IllegalFieldForContext(t *testing.T) {
	tests := []struct {
		in  string
		ctx Context
	}{
		{"date:2025", Securities},
		{"date:2025", Accounts},
		{"amt:100", Securities},
		{"amt:100", Accounts},
		{"amt:100", Prices},
		{"desc:x", Securities},
		{"desc:x", Prices},
		{"acct:x", Securities},
		{"acct:x", Prices},
		{"sec:x", Accounts},
		{"type:x", Accounts},
		{"not:date:2025", Accounts},
	}
	for _, tt := range tests {
		t.Run(tt.in+" on "+tt.ctx.String(), func(t *testing.T) {
			_, err := Classify(Token{Text: tt.in}, tt.ctx)
			require.Error(t, err)
			var qerr *Error
			require.ErrorAs(t, err, &qerr)
			assert.Equal(t, CodeIllegalField, qerr.Code)
			assert.Equal(t, tt.in, qerr.Token)
		})
	}
}
