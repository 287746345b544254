package provider

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/nivesh-dev/nivesh/internal/model"
)

// Info identifies a price provider.
type Info struct {
	Key         string // registry key, e.g. "amfi"
	Name        string
	Description string
}

// Provider fetches quotes for securities it supports.
type Provider interface {
	// Priority reports how well this provider serves sec. Higher wins;
	// ok is false when the provider cannot serve it at all.
	Priority(sec model.Security) (priority int, ok bool)
	// Latest returns the most recent price for sec.
	Latest(ctx context.Context, sec model.Security) (model.Price, error)
	// Historical returns prices for sec between from and to inclusive.
	Historical(ctx context.Context, sec model.Security, from, to time.Time) ([]model.Price, error)
}

// Factory describes and constructs one provider implementation.
type Factory interface {
	Info() Info
	New() Provider
}

// Registry maps provider keys to factories. Registration keeps the first
// factory for a key and warns on collisions.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory. A duplicate key keeps the existing factory and
// logs a warning.
func (r *Registry) Register(f Factory) {
	key := strings.ToLower(f.Info().Key)
	if _, ok := r.factories[key]; ok {
		slog.Warn("duplicate provider registration ignored", "key", key)
		return
	}
	r.factories[key] = f
}

// Get returns the factory for key, or nil.
func (r *Registry) Get(key string) Factory {
	return r.factories[strings.ToLower(key)]
}

// Keys returns the registered provider keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Providers instantiates every registered provider, in key order.
func (r *Registry) Providers() []Provider {
	var ps []Provider
	for _, key := range r.Keys() {
		ps = append(ps, r.factories[key].New())
	}
	return ps
}

// Pick returns the highest-priority provider for sec among ps. Ties go to
// the earliest provider. ok is false when none can serve it.
func Pick(ps []Provider, sec model.Security) (Provider, bool) {
	var best Provider
	bestPriority := 0
	for _, p := range ps {
		prio, ok := p.Priority(sec)
		if !ok {
			continue
		}
		if best == nil || prio > bestPriority {
			best = p
			bestPriority = prio
		}
	}
	return best, best != nil
}

// DefaultRegistry returns a registry with all built-in providers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(AMFIFactory{})
	return r
}
