package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price is one OHLC price point for a security. Providers that publish a
// single daily value (NAV feeds) set all four fields to it.
type Price struct {
	SecurityKey string
	Date        time.Time
	Open        decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	Close       decimal.Decimal
}
