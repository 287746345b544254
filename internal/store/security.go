package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nivesh-dev/nivesh/internal/model"
	"github.com/nivesh-dev/nivesh/internal/query"
)

var securityColumns = columnMap{
	query.FieldSecurity: {"key", "name", "type", "category"},
	query.FieldType:     {"type", "category"},
}

// AddSecurity inserts a security. The key must not already exist.
func (s *Store) AddSecurity(sec model.Security) error {
	_, err := s.db.Exec(
		"INSERT INTO securities (key, name, type, category) VALUES (?, ?, ?, ?)",
		sec.Key, sec.Name, string(sec.Type), string(sec.Category),
	)
	if err != nil {
		return fmt.Errorf("inserting security %s: %w", sec.Key, err)
	}
	return nil
}

// UpsertSecurity inserts or updates a security by key.
func (s *Store) UpsertSecurity(sec model.Security) error {
	_, err := s.db.Exec(`
INSERT INTO securities (key, name, type, category) VALUES (?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET name = excluded.name, type = excluded.type, category = excluded.category`,
		sec.Key, sec.Name, string(sec.Type), string(sec.Category),
	)
	if err != nil {
		return fmt.Errorf("upserting security %s: %w", sec.Key, err)
	}
	return nil
}

// GetSecurity returns the security with the given key.
func (s *Store) GetSecurity(key string) (model.Security, bool, error) {
	var sec model.Security
	var secType, category string
	err := s.db.QueryRow(
		"SELECT key, name, type, category FROM securities WHERE key = ?", key,
	).Scan(&sec.Key, &sec.Name, &secType, &category)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Security{}, false, nil
	}
	if err != nil {
		return model.Security{}, false, fmt.Errorf("looking up security %s: %w", key, err)
	}
	sec.Type = model.SecurityType(secType)
	sec.Category = model.SecurityCategory(category)
	return sec, true, nil
}

// ListSecurities returns securities matching q, ordered by key.
func (s *Store) ListSecurities(q *query.Query) ([]model.Security, error) {
	stmt := "SELECT key, name, type, category FROM securities"
	where, args := buildWhere(q, securityColumns)
	if where != "" {
		stmt += " WHERE " + where
	}
	stmt += " ORDER BY key"

	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("listing securities: %w", err)
	}
	defer rows.Close()

	var securities []model.Security
	for rows.Next() {
		var sec model.Security
		var secType, category string
		if err := rows.Scan(&sec.Key, &sec.Name, &secType, &category); err != nil {
			return nil, fmt.Errorf("scanning security: %w", err)
		}
		sec.Type = model.SecurityType(secType)
		sec.Category = model.SecurityCategory(category)
		if !q.Match(securityRecord{sec}) {
			continue
		}
		securities = append(securities, sec)
	}
	return securities, rows.Err()
}
