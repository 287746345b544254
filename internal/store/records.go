package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

func securityText(s model.Security) []string {
	return []string{s.Key, s.Name, string(s.Type), string(s.Category)}
}

// TransactionDetail is a transaction joined with its account and security:
// the shape transaction queries match against.
type TransactionDetail struct {
	Tx       model.Transaction
	Account  model.Account
	Security model.Security
}

// Text implements query.Record.
func (d TransactionDetail) Text(f query.Field) ([]string, bool) {
	switch f {
	case query.FieldType:
		return []string{string(d.Tx.Type)}, true
	case query.FieldDescription:
		return []string{d.Tx.Description}, true
	case query.FieldAccount:
		return []string{d.Account.Name, d.Account.Institution}, true
	case query.FieldSecurity:
		return securityText(d.Security), true
	}
	return nil, false
}

// Amount implements query.Record.
func (d TransactionDetail) Amount() (decimal.Decimal, bool) { return d.Tx.Amount, true }

// Date implements query.Record.
func (d TransactionDetail) Date() (time.Time, bool) { return d.Tx.Date, true }

// PriceDetail is a price row joined with its security.
type PriceDetail struct {
	Price    model.Price
	Security model.Security
}

// Text implements query.Record.
func (d PriceDetail) Text(f query.Field) ([]string, bool) {
	if f == query.FieldSecurity {
		return securityText(d.Security), true
	}
	return nil, false
}

// Amount implements query.Record.
func (d PriceDetail) Amount() (decimal.Decimal, bool) { return decimal.Decimal{}, false }

// Date implements query.Record.
func (d PriceDetail) Date() (time.Time, bool) { return d.Price.Date, true }

// accountRecord adapts an account row to the query evaluator.
type accountRecord struct{ a model.Account }

func (r accountRecord) Text(f query.Field) ([]string, bool) {
	if f == query.FieldAccount {
		return []string{r.a.Name, r.a.Institution}, true
	}
	return nil, false
}

func (r accountRecord) Amount() (decimal.Decimal, bool) { return decimal.Decimal{}, false }

func (r accountRecord) Date() (time.Time, bool) { return time.Time{}, false }

// securityRecord adapts a security row to the query evaluator. Type queries
// match both the instrument type and the asset category.
type securityRecord struct{ s model.Security }

func (r securityRecord) Text(f query.Field) ([]string, bool) {
	switch f {
	case query.FieldSecurity:
		return securityText(r.s), true
	case query.FieldType:
		return []string{string(r.s.Type), string(r.s.Category)}, true
	}
	return nil, false
}

func (r securityRecord) Amount() (decimal.Decimal, bool) { return decimal.Decimal{}, false }

func (r securityRecord) Date() (time.Time, bool) { return time.Time{}, false }
