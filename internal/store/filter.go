package store

import (
	"strings"

	"github.com/nivesh-dev/nivesh/internal/query"
)

// columnMap lists, per field kind, the SQL columns that kind searches for
// one record context.
type columnMap map[query.Field][]string

// buildWhere lowers a compiled query into a SQL WHERE fragment over cols:
// per-kind OR groups joined by AND, negated clauses as NOT inside their
// group, the same shape the evaluator computes. Amount clauses are not
// pushed down: SQLite numeric affinity cannot reproduce the engine's exact
// decimal semantics, so they stay with the in-memory re-check. Every listed
// row is re-checked with query.Match regardless, keeping the evaluator
// authoritative.
func buildWhere(q *query.Query, cols columnMap) (string, []any) {
	var groups []string
	var args []any

	for _, group := range q.Groups() {
		field := group[0].Field
		if field == query.FieldAmount {
			continue
		}
		columns := cols[field]
		if len(columns) == 0 {
			continue
		}
		var terms []string
		for i := range group {
			term, termArgs := clauseSQL(&group[i], columns)
			terms = append(terms, term)
			args = append(args, termArgs...)
		}
		groups = append(groups, "("+strings.Join(terms, " OR ")+")")
	}

	return strings.Join(groups, " AND "), args
}

func clauseSQL(c *query.CompiledClause, columns []string) (string, []any) {
	var text string
	var args []any

	if c.Field == query.FieldDate {
		col := columns[0]
		var conds []string
		if c.Dates.HasFrom {
			conds = append(conds, col+" >= ?")
			args = append(args, c.Dates.From.Format(dateFormat))
		}
		if c.Dates.HasTo {
			conds = append(conds, col+" <= ?")
			args = append(args, c.Dates.To.Format(dateFormat))
		}
		text = "(" + strings.Join(conds, " AND ") + ")"
	} else {
		var conds []string
		for _, col := range columns {
			conds = append(conds, "regexp_like("+col+", ?)")
			args = append(args, c.Pattern.String())
		}
		text = "(" + strings.Join(conds, " OR ") + ")"
	}

	if c.Negated {
		text = "NOT " + text
	}
	return text, args
}
