package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

var accountColumns = columnMap{
	query.FieldAccount: {"name", "institution"},
}

// AddAccount inserts an account and returns it with its assigned ID.
func (s *Store) AddAccount(a model.Account) (model.Account, error) {
	res, err := s.db.Exec("INSERT INTO accounts (name, institution) VALUES (?, ?)", a.Name, a.Institution)
	if err != nil {
		return model.Account{}, fmt.Errorf("inserting account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("reading account id: %w", err)
	}
	a.ID = id
	return a, nil
}

// GetOrCreateAccount returns the account with the given name and
// institution, creating it when absent. Importers use this to keep re-runs
// idempotent.
func (s *Store) GetOrCreateAccount(name, institution string) (model.Account, error) {
	var a model.Account
	err := s.db.QueryRow(
		"SELECT id, name, institution FROM accounts WHERE name = ? AND institution = ?",
		name, institution,
	).Scan(&a.ID, &a.Name, &a.Institution)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("looking up account: %w", err)
	}
	return s.AddAccount(model.Account{Name: name, Institution: institution})
}

// ListAccounts returns accounts matching q, ordered by ID.
func (s *Store) ListAccounts(q *query.Query) ([]model.Account, error) {
	stmt := "SELECT id, name, institution FROM accounts"
	where, args := buildWhere(q, accountColumns)
	if where != "" {
		stmt += " WHERE " + where
	}
	stmt += " ORDER BY id"

	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Institution); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		if !q.Match(accountRecord{a}) {
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
