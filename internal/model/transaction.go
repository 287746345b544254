package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionSale     TransactionType = "sale"
)

// Transaction is a single buy or sell of a security in an account.
type Transaction struct {
	ID          int64
	Date        time.Time
	Type        TransactionType
	Description string
	Amount      decimal.Decimal // negative = sale proceeds out, per statement convention
	Units       decimal.Decimal
	SecurityKey string
	AccountID   int64
}
