package store

import (
	"fmt"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

var priceColumns = columnMap{
	query.FieldDate:     {"p.price_date"},
	query.FieldSecurity: {"s.key", "s.name", "s.type", "s.category"},
}

// UpsertPrice inserts or replaces the price for (security, date).
func (s *Store) UpsertPrice(p model.Price) error {
	_, err := s.db.Exec(`
INSERT INTO prices (security_key, price_date, open, high, low, close) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (security_key, price_date) DO UPDATE SET
	open = excluded.open, high = excluded.high, low = excluded.low, close = excluded.close`,
		p.SecurityKey, p.Date.Format(dateFormat),
		p.Open.String(), p.High.String(), p.Low.String(), p.Close.String())
	if err != nil {
		return fmt.Errorf("upserting price %s@%s: %w", p.SecurityKey, p.Date.Format(dateFormat), err)
	}
	return nil
}

const selectPrices = `
SELECT p.security_key, p.price_date, p.open, p.high, p.low, p.close,
       s.name, s.type, s.category
FROM prices p
JOIN securities s ON s.key = p.security_key`

// ListPrices returns price rows matching q with their security joined,
// ordered by security then date.
func (s *Store) ListPrices(q *query.Query) ([]PriceDetail, error) {
	stmt := selectPrices
	where, args := buildWhere(q, priceColumns)
	if where != "" {
		stmt += " WHERE " + where
	}
	stmt += " ORDER BY p.security_key, p.price_date"

	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("listing prices: %w", err)
	}
	defer rows.Close()

	var details []PriceDetail
	for rows.Next() {
		var d PriceDetail
		var dateStr, openStr, highStr, lowStr, closeStr, secType, secCategory string
		if err := rows.Scan(
			&d.Price.SecurityKey, &dateStr, &openStr, &highStr, &lowStr, &closeStr,
			&d.Security.Name, &secType, &secCategory); err != nil {
			return nil, fmt.Errorf("scanning price: %w", err)
		}

		if d.Price.Date, err = parseStoredDate(dateStr); err != nil {
			return nil, err
		}
		if d.Price.Open, err = parseStoredDecimal(openStr); err != nil {
			return nil, err
		}
		if d.Price.High, err = parseStoredDecimal(highStr); err != nil {
			return nil, err
		}
		if d.Price.Low, err = parseStoredDecimal(lowStr); err != nil {
			return nil, err
		}
		if d.Price.Close, err = parseStoredDecimal(closeStr); err != nil {
			return nil, err
		}
		d.Security.Key = d.Price.SecurityKey
		d.Security.Type = model.SecurityType(secType)
		d.Security.Category = model.SecurityCategory(secCategory)

		if !q.Match(d) {
			continue
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
