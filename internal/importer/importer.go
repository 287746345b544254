package importer

import (
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/nivesh-dev/nivesh/internal/model"
)

// Info identifies a statement format.
type Info struct {
	Key         string // registry key, e.g. "cams"
	Name        string
	Description string
}

// Statement is the parsed contents of one statement file. Transactions
// reference accounts by (Name, Institution) and securities by key, so the
// caller resolves IDs against the store.
type Statement struct {
	Accounts     []model.Account
	Securities   []model.Security
	Transactions []ParsedTransaction
}

// ParsedTransaction is a transaction as it appears in a statement, before
// its account has a database ID.
type ParsedTransaction struct {
	Tx          model.Transaction
	AccountName string
	Institution string
}

// DateRange reports the span of transaction dates in a statement.
func (s *Statement) DateRange() (from, to time.Time, ok bool) {
	for _, pt := range s.Transactions {
		d := pt.Tx.Date
		if !ok || d.Before(from) {
			from = d
		}
		if !ok || d.After(to) {
			to = d
		}
		ok = true
	}
	return from, to, ok
}

// Parser extracts a Statement from a statement file.
type Parser interface {
	Parse(r io.Reader) (*Statement, error)
}

// Factory describes and constructs one parser implementation.
type Factory interface {
	Info() Info
	// CanParse reports whether this format applies to the named file.
	CanParse(filename string) bool
	New() Parser
}

// Registry maps format keys to factories. Registration keeps the first
// factory for a key and warns on collisions.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory. A duplicate key keeps the existing factory and
// logs a warning.
func (r *Registry) Register(f Factory) {
	key := strings.ToLower(f.Info().Key)
	if _, ok := r.factories[key]; ok {
		slog.Warn("duplicate importer registration ignored", "key", key)
		return
	}
	r.factories[key] = f
}

// Get returns the factory for key, or nil.
func (r *Registry) Get(key string) Factory {
	return r.factories[strings.ToLower(key)]
}

// Lookup returns the first factory (by key order) that claims the file, or
// nil when no registered format applies.
func (r *Registry) Lookup(filename string) Factory {
	for _, key := range r.Keys() {
		if f := r.factories[key]; f.CanParse(filename) {
			return f
		}
	}
	return nil
}

// Keys returns the registered format keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CAMSFactory{})
	return r
}
