package store

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("regexp_like", 2, regexpLike)
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func compilePattern(pattern string) (*regexp.Regexp, error) {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache[pattern] = re
	return re, nil
}

// regexpLike backs the regexp_like(text, pattern) SQL function used by the
// query pushdown. Patterns arrive from the query engine, which compiled
// them once already. NULL text never matches.
func regexpLike(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	text, ok := args[0].(string)
	if !ok {
		return int64(0), nil
	}
	pattern, ok := args[1].(string)
	if !ok {
		return int64(0), fmt.Errorf("regexp_like: pattern must be text")
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	if re.MatchString(text) {
		return int64(1), nil
	}
	return int64(0), nil
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	institution TEXT NOT NULL,
	UNIQUE (name, institution)
);

CREATE TABLE IF NOT EXISTS securities (
	key TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	transaction_date TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL,
	units TEXT NOT NULL,
	security_key TEXT NOT NULL REFERENCES securities (key),
	account_id INTEGER NOT NULL REFERENCES accounts (id)
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (transaction_date);

CREATE TABLE IF NOT EXISTS prices (
	security_key TEXT NOT NULL REFERENCES securities (key),
	price_date TEXT NOT NULL,
	open TEXT NOT NULL,
	high TEXT NOT NULL,
	low TEXT NOT NULL,
	close TEXT NOT NULL,
	PRIMARY KEY (security_key, price_date)
);
`

// dateFormat is how dates are stored; ISO-8601 text compares correctly in
// SQL, which the date pushdown relies on.
const dateFormat = "2006-01-02"

// Store is the SQLite-backed repository set, one per database file.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating it and the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	slog.Debug("opened database", "path", path)
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

func parseStoredDate(s string) (time.Time, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored date %q: %w", s, err)
	}
	return t, nil
}

func parseStoredDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing stored decimal %q: %w", s, err)
	}
	return d, nil
}
