package query

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CompareOp is a one-sided numeric comparison.
type CompareOp int

const (
	OpLess CompareOp = iota
	OpLessEq
	OpGreater
	OpGreaterEq
)

func (op CompareOp) String() string {
	switch op {
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	}
	return "?"
}

// AmountKind selects which form an AmountExpr takes.
type AmountKind int

const (
	AmountExact AmountKind = iota
	AmountCompare
	AmountRange
)

// AmountExpr matches a decimal amount as an exact value, a one-sided
// comparison, or an inclusive range. Matching is exact decimal equality,
// never float tolerance.
type AmountExpr struct {
	Kind  AmountKind
	Op    CompareOp       // AmountCompare only
	Value decimal.Decimal // exact value or comparison bound
	Low   decimal.Decimal // AmountRange, inclusive
	High  decimal.Decimal // AmountRange, inclusive
}

// Matches reports whether v satisfies the expression.
func (e *AmountExpr) Matches(v decimal.Decimal) bool {
	switch e.Kind {
	case AmountExact:
		return v.Equal(e.Value)
	case AmountCompare:
		cmp := v.Cmp(e.Value)
		switch e.Op {
		case OpLess:
			return cmp < 0
		case OpLessEq:
			return cmp <= 0
		case OpGreater:
			return cmp > 0
		case OpGreaterEq:
			return cmp >= 0
		}
	case AmountRange:
		return v.Cmp(e.Low) >= 0 && v.Cmp(e.High) <= 0
	}
	return false
}

// decimalPattern accepts signed decimals only; anything looser (exponents,
// stray signs) is a syntax error rather than a decimal.NewFromString guess.
var decimalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

func parseDecimal(s string) (decimal.Decimal, bool) {
	if !decimalPattern.MatchString(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

var compareOps = []struct {
	text string
	op   CompareOp
}{
	{"<=", OpLessEq},
	{">=", OpGreaterEq},
	{"<", OpLess},
	{">", OpGreater},
}

// compileAmount parses an amt: clause value. Unlike date ranges, amount
// ranges require both bounds.
func compileAmount(c Clause) (*AmountExpr, error) {
	fail := func(reason string) error {
		return &Error{Code: CodeInvalidAmount, Token: c.token.Text, Pos: c.token.Pos, Reason: reason}
	}

	if lo, hi, found := strings.Cut(c.Value, ".."); found {
		if lo == "" || hi == "" {
			return nil, fail("amount range needs both bounds, like 100..200")
		}
		low, okLow := parseDecimal(lo)
		high, okHigh := parseDecimal(hi)
		if !okLow || !okHigh {
			return nil, fail("range bounds must be decimal numbers")
		}
		if low.GreaterThan(high) {
			return nil, fail("range start is greater than range end")
		}
		return &AmountExpr{Kind: AmountRange, Low: low, High: high}, nil
	}

	for _, p := range compareOps {
		if rest, ok := strings.CutPrefix(c.Value, p.text); ok {
			d, okNum := parseDecimal(rest)
			if !okNum {
				return nil, fail("comparison needs a decimal number")
			}
			return &AmountExpr{Kind: AmountCompare, Op: p.op, Value: d}, nil
		}
	}

	d, ok := parseDecimal(c.Value)
	if !ok {
		return nil, fail("want a number, a comparison like >=100, or a range like 100..200")
	}
	return &AmountExpr{Kind: AmountExact, Value: d}, nil
}
