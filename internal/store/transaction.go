package store

import (
	"fmt"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

var transactionColumns = columnMap{
	query.FieldDate:        {"t.transaction_date"},
	query.FieldType:        {"t.type"},
	query.FieldDescription: {"t.description"},
	query.FieldAccount:     {"a.name", "a.institution"},
	query.FieldSecurity:    {"s.key", "s.name", "s.type", "s.category"},
}

const insertTransaction = `
INSERT INTO transactions (transaction_date, type, description, amount, units, security_key, account_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`

// AddTransaction inserts one transaction and returns its ID.
func (s *Store) AddTransaction(t model.Transaction) (int64, error) {
	res, err := s.db.Exec(insertTransaction,
		t.Date.Format(dateFormat), string(t.Type), t.Description,
		t.Amount.String(), t.Units.String(), t.SecurityKey, t.AccountID)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading transaction id: %w", err)
	}
	return id, nil
}

// AddTransactions inserts a batch atomically.
func (s *Store) AddTransactions(txns []model.Transaction) error {
	dbtx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.Prepare(insertTransaction)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range txns {
		if _, err := stmt.Exec(
			t.Date.Format(dateFormat), string(t.Type), t.Description,
			t.Amount.String(), t.Units.String(), t.SecurityKey, t.AccountID); err != nil {
			return fmt.Errorf("inserting transaction %d: %w", i, err)
		}
	}
	return dbtx.Commit()
}

const selectTransactions = `
SELECT t.id, t.transaction_date, t.type, t.description, t.amount, t.units, t.security_key, t.account_id,
       a.name, a.institution,
       s.name, s.type, s.category
FROM transactions t
JOIN accounts a ON a.id = t.account_id
JOIN securities s ON s.key = t.security_key`

// ListTransactions returns transactions matching q with account and
// security joined, newest first.
func (s *Store) ListTransactions(q *query.Query) ([]TransactionDetail, error) {
	stmt := selectTransactions
	where, args := buildWhere(q, transactionColumns)
	if where != "" {
		stmt += " WHERE " + where
	}
	stmt += " ORDER BY t.transaction_date DESC, t.id DESC"

	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var details []TransactionDetail
	for rows.Next() {
		var d TransactionDetail
		var dateStr, txType, amountStr, unitsStr, secType, secCategory string
		if err := rows.Scan(
			&d.Tx.ID, &dateStr, &txType, &d.Tx.Description, &amountStr, &unitsStr,
			&d.Tx.SecurityKey, &d.Tx.AccountID,
			&d.Account.Name, &d.Account.Institution,
			&d.Security.Name, &secType, &secCategory); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		if d.Tx.Date, err = parseStoredDate(dateStr); err != nil {
			return nil, err
		}
		if d.Tx.Amount, err = parseStoredDecimal(amountStr); err != nil {
			return nil, err
		}
		if d.Tx.Units, err = parseStoredDecimal(unitsStr); err != nil {
			return nil, err
		}
		d.Tx.Type = model.TransactionType(txType)
		d.Account.ID = d.Tx.AccountID
		d.Security.Key = d.Tx.SecurityKey
		d.Security.Type = model.SecurityType(secType)
		d.Security.Category = model.SecurityCategory(secCategory)

		if !q.Match(d) {
			continue
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
