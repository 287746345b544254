package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/nivesh-dev/nivesh/internal/model"
)

// PriceSink receives fetched prices. *store.Store satisfies it.
type PriceSink interface {
	UpsertPrice(p model.Price) error
}

// Result summarizes one sync run.
type Result struct {
	Synced  int // securities with at least one price stored
	Skipped int // securities no provider serves
	Failed  int // securities whose fetch or store errored
}

// Syncer fetches prices for securities and stores them. Per-security
// failures are logged and counted; the run continues.
type Syncer struct {
	providers []Provider
	sink      PriceSink
}

// NewSyncer creates a Syncer over the registry's providers.
func NewSyncer(r *Registry, sink PriceSink) *Syncer {
	return &Syncer{providers: r.Providers(), sink: sink}
}

// Latest fetches and stores the most recent price for each security.
func (s *Syncer) Latest(ctx context.Context, secs []model.Security) Result {
	var res Result
	for _, sec := range secs {
		p, ok := Pick(s.providers, sec)
		if !ok {
			slog.Debug("no provider for security", "key", sec.Key)
			res.Skipped++
			continue
		}
		price, err := p.Latest(ctx, sec)
		if err != nil {
			slog.Warn("price fetch failed", "key", sec.Key, "error", err)
			res.Failed++
			continue
		}
		if err := s.sink.UpsertPrice(price); err != nil {
			slog.Warn("price store failed", "key", sec.Key, "error", err)
			res.Failed++
			continue
		}
		res.Synced++
	}
	return res
}

// Historical fetches and stores prices in [from, to] for each security.
func (s *Syncer) Historical(ctx context.Context, secs []model.Security, from, to time.Time) Result {
	var res Result
	for _, sec := range secs {
		p, ok := Pick(s.providers, sec)
		if !ok {
			slog.Debug("no provider for security", "key", sec.Key)
			res.Skipped++
			continue
		}
		prices, err := p.Historical(ctx, sec, from, to)
		if err != nil {
			slog.Warn("price fetch failed", "key", sec.Key, "error", err)
			res.Failed++
			continue
		}
		stored := 0
		for _, price := range prices {
			if err := s.sink.UpsertPrice(price); err != nil {
				slog.Warn("price store failed", "key", sec.Key, "error", err)
				break
			}
			stored++
		}
		if stored < len(prices) {
			res.Failed++
			continue
		}
		res.Synced++
	}
	return res
}
