package query

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is the read surface the evaluator needs. Implementations return
// ok=false from a method when their record kind has no such field; the
// context validation in Classify guarantees a compiled query never asks
// for one, so a false return during evaluation is an invariant violation.
type Record interface {
	// Text returns the searchable text values for a regex-matched field
	// kind. A kind may span several values: an account matches on name and
	// institution, a security on key, name, type, and category.
	Text(f Field) ([]string, bool)

	// Amount returns the record's monetary amount.
	Amount() (decimal.Decimal, bool)

	// Date returns the record's calendar date.
	Date() (time.Time, bool)
}
