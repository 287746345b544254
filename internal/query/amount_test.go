package query

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func amount(t *testing.T, value string) *AmountExpr {
	t.Helper()
	expr, err := compileAmount(Clause{Field: FieldAmount, Value: value, token: Token{Text: "amt:" + value}})
	require.NoError(t, err)
	return expr
}

func TestCompileAmount_Exact(t *testing.T) {
	expr := amount(t, "100")
	assert.Equal(t, AmountExact, expr.Kind)
	assert.True(t, expr.Matches(dec("100")))
	assert.True(t, expr.Matches(dec("100.00")))
	assert.False(t, expr.Matches(dec("100.01")))
	assert.False(t, expr.Matches(dec("99.99")))
}

func TestCompileAmount_Negative(t *testing.T) {
	expr := amount(t, "-50")
	assert.Equal(t, AmountExact, expr.Kind)
	assert.True(t, expr.Matches(dec("-50")))
	assert.False(t, expr.Matches(dec("50")))

	expr = amount(t, "-0.50")
	assert.True(t, expr.Matches(dec("-0.5")))
}

func TestCompileAmount_Comparisons(t *testing.T) {
	tests := []struct {
		value   string
		op      CompareOp
		in, out string
	}{
		{">100", OpGreater, "100.01", "100"},
		{">=100", OpGreaterEq, "100", "99.99"},
		{"<100", OpLess, "99.99", "100"},
		{"<=100", OpLessEq, "100", "100.01"},
		{">=-10", OpGreaterEq, "-10", "-10.01"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			expr := amount(t, tt.value)
			assert.Equal(t, AmountCompare, expr.Kind)
			assert.Equal(t, tt.op, expr.Op)
			assert.True(t, expr.Matches(dec(tt.in)))
			assert.False(t, expr.Matches(dec(tt.out)))
		})
	}
}

func TestCompileAmount_RangeInclusive(t *testing.T) {
	expr := amount(t, "100..200")
	assert.Equal(t, AmountRange, expr.Kind)
	assert.True(t, expr.Matches(dec("100")))
	assert.True(t, expr.Matches(dec("200")))
	assert.True(t, expr.Matches(dec("150.75")))
	assert.False(t, expr.Matches(dec("99.99")))
	assert.False(t, expr.Matches(dec("200.01")))
}

func TestCompileAmount_NegativeRange(t *testing.T) {
	expr := amount(t, "-100..-50")
	assert.True(t, expr.Matches(dec("-75")))
	assert.False(t, expr.Matches(dec("-100.01")))
	assert.False(t, expr.Matches(dec("0")))
}

func TestCompileAmount_Errors(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "abc"},
		{"comparison without number", ">"},
		{"comparison with garbage", ">=abc"},
		{"range missing low bound", "..200"},
		{"range missing high bound", "100.."},
		{"range missing both bounds", ".."},
		{"inverted range", "200..100"},
		{"exponent not allowed", "1e3"},
		{"empty value", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileAmount(Clause{Field: FieldAmount, Value: tt.value, token: Token{Text: "amt:" + tt.value}})
			require.Error(t, err)
			var qerr *Error
			require.ErrorAs(t, err, &qerr)
			assert.Equal(t, CodeInvalidAmount, qerr.Code)
			assert.Equal(t, "amt:"+tt.value, qerr.Token)
		})
	}
}
