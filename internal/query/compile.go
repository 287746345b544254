package query

import (
	"fmt"
	"regexp"
)

// CompiledClause is one clause lowered to a typed predicate. Exactly one of
// Pattern, Amount, or Dates is set, depending on Field. The clause is
// immutable after compilation and safe to share.
type CompiledClause struct {
	Field   Field
	Negated bool

	Pattern *regexp.Regexp // text kinds, compiled case-insensitive
	Amount  *AmountExpr    // FieldAmount
	Dates   *DateRange     // FieldDate
}

// Matches applies the clause, including its own negation, to r.
func (c *CompiledClause) Matches(r Record) bool {
	m := c.base(r)
	if c.Negated {
		return !m
	}
	return m
}

// base evaluates the predicate before negation.
func (c *CompiledClause) base(r Record) bool {
	switch c.Field {
	case FieldAmount:
		v, ok := r.Amount()
		if !ok {
			panic(missingField(c.Field))
		}
		return c.Amount.Matches(v)
	case FieldDate:
		d, ok := r.Date()
		if !ok {
			panic(missingField(c.Field))
		}
		return c.Dates.Contains(d)
	default:
		values, ok := r.Text(c.Field)
		if !ok {
			panic(missingField(c.Field))
		}
		for _, v := range values {
			if c.Pattern.MatchString(v) {
				return true
			}
		}
		return false
	}
}

func missingField(f Field) string {
	return fmt.Sprintf("query: record has no %s field; classification should have rejected the clause", f)
}

// Query is an immutable compiled filter: the AND, across field kinds in
// canonical order, of the OR of each kind's clauses. It holds no mutable
// state and may be evaluated concurrently from any number of goroutines.
type Query struct {
	groups [][]CompiledClause
}

// Compile tokenizes, classifies, and compiles raw for the given context.
// The first failure aborts the whole compilation; there are no partial
// results. An empty or all-whitespace query compiles to the always-true
// filter.
func Compile(raw string, ctx Context) (*Query, error) {
	tokens, err := Split(raw)
	if err != nil {
		return nil, err
	}

	buckets := make(map[Field][]CompiledClause)
	for _, tok := range tokens {
		clause, err := Classify(tok, ctx)
		if err != nil {
			return nil, err
		}
		compiled, err := compileClause(clause)
		if err != nil {
			return nil, err
		}
		buckets[compiled.Field] = append(buckets[compiled.Field], compiled)
	}

	q := &Query{}
	for _, f := range fieldOrder {
		if group := buckets[f]; len(group) > 0 {
			q.groups = append(q.groups, group)
		}
	}
	return q, nil
}

func compileClause(c Clause) (CompiledClause, error) {
	compiled := CompiledClause{Field: c.Field, Negated: c.Negated}
	switch c.Field {
	case FieldAmount:
		expr, err := compileAmount(c)
		if err != nil {
			return CompiledClause{}, err
		}
		compiled.Amount = expr
	case FieldDate:
		r, err := compileDate(c)
		if err != nil {
			return CompiledClause{}, err
		}
		compiled.Dates = r
	default:
		re, err := regexp.Compile("(?i)" + c.Value)
		if err != nil {
			return CompiledClause{}, &Error{
				Code:   CodeInvalidPattern,
				Token:  c.token.Text,
				Pos:    c.token.Pos,
				Reason: err.Error(),
			}
		}
		compiled.Pattern = re
	}
	return compiled, nil
}

// Match reports whether r satisfies the query. A record matches when, for
// every field kind present, at least one of that kind's clauses matches.
// An empty query matches every record.
func (q *Query) Match(r Record) bool {
	for _, group := range q.groups {
		matched := false
		for i := range group {
			if group[i].Matches(r) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Empty reports whether the query has no clauses.
func (q *Query) Empty() bool { return len(q.groups) == 0 }

// Groups returns the compiled clauses bucketed by field kind in canonical
// order. Translators that lower the query into a native store filter walk
// these; they must preserve Match semantics exactly.
func (q *Query) Groups() [][]CompiledClause {
	return q.groups
}
