package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivesh-dev/nivesh/internal/model"
)

type fakeProvider struct {
	key      string
	priority int
	serves   func(sec model.Security) bool
	latest   map[string]model.Price
	history  map[string][]model.Price
	err      error
}

func (f *fakeProvider) Priority(sec model.Security) (int, bool) {
	if f.serves != nil && !f.serves(sec) {
		return 0, false
	}
	return f.priority, true
}

func (f *fakeProvider) Latest(_ context.Context, sec model.Security) (model.Price, error) {
	if f.err != nil {
		return model.Price{}, f.err
	}
	p, ok := f.latest[sec.Key]
	if !ok {
		return model.Price{}, errors.New("no data")
	}
	return p, nil
}

func (f *fakeProvider) Historical(_ context.Context, sec model.Security, _, _ time.Time) ([]model.Price, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.history[sec.Key], nil
}

type fakeFactory struct {
	key string
	p   *fakeProvider
}

func (f fakeFactory) Info() Info    { return Info{Key: f.key, Name: f.key} }
func (f fakeFactory) New() Provider { return f.p }

type fakeSink struct {
	prices []model.Price
	err    error
}

func (s *fakeSink) UpsertPrice(p model.Price) error {
	if s.err != nil {
		return s.err
	}
	s.prices = append(s.prices, p)
	return nil
}

func nav(key, date, value string) model.Price {
	d, _ := time.Parse("2006-01-02", date)
	v := decimal.RequireFromString(value)
	return model.Price{SecurityKey: key, Date: d, Open: v, High: v, Low: v, Close: v}
}

func TestRegistryKeepsFirstOnCollision(t *testing.T) {
	r := NewRegistry()
	first := &fakeProvider{key: "first"}
	r.Register(fakeFactory{key: "dup", p: first})
	r.Register(fakeFactory{key: "DUP", p: &fakeProvider{key: "second"}})

	got := r.Get("dup").New().(*fakeProvider)
	assert.Equal(t, "first", got.key)
	assert.Equal(t, []string{"dup"}, r.Keys())
}

func TestPickHighestPriority(t *testing.T) {
	low := &fakeProvider{key: "low", priority: 5}
	high := &fakeProvider{key: "high", priority: 20}
	sec := model.Security{Key: "X"}

	p, ok := Pick([]Provider{low, high}, sec)
	require.True(t, ok)
	assert.Same(t, high, p)

	// Ties go to the earliest provider.
	other := &fakeProvider{key: "other", priority: 20}
	p, _ = Pick([]Provider{high, other}, sec)
	assert.Same(t, high, p)

	_, ok = Pick(nil, sec)
	assert.False(t, ok)
}

func TestSyncerLatestKeepsGoing(t *testing.T) {
	fund := model.Security{Key: "120503", Type: model.SecurityTypeMutualFund}
	broken := model.Security{Key: "118550", Type: model.SecurityTypeMutualFund}
	stock := model.Security{Key: "INFY", Type: model.SecurityTypeStock}

	r := NewRegistry()
	r.Register(fakeFactory{key: "funds", p: &fakeProvider{
		priority: 10,
		serves:   func(s model.Security) bool { return s.Type == model.SecurityTypeMutualFund },
		latest: map[string]model.Price{
			"120503": nav("120503", "2025-08-28", "54.55"),
		},
	}})

	sink := &fakeSink{}
	res := NewSyncer(r, sink).Latest(context.Background(), []model.Security{fund, broken, stock})

	assert.Equal(t, 1, res.Synced)
	assert.Equal(t, 1, res.Failed, "provider had no data for 118550")
	assert.Equal(t, 1, res.Skipped, "no provider serves stocks")
	require.Len(t, sink.prices, 1)
	assert.Equal(t, "120503", sink.prices[0].SecurityKey)
}

func TestSyncerLatestSinkError(t *testing.T) {
	fund := model.Security{Key: "120503", Type: model.SecurityTypeMutualFund}
	r := NewRegistry()
	r.Register(fakeFactory{key: "funds", p: &fakeProvider{
		priority: 10,
		latest:   map[string]model.Price{"120503": nav("120503", "2025-08-28", "54.55")},
	}})

	res := NewSyncer(r, &fakeSink{err: errors.New("disk full")}).
		Latest(context.Background(), []model.Security{fund})
	assert.Equal(t, Result{Failed: 1}, res)
}

func TestSyncerHistorical(t *testing.T) {
	fund := model.Security{Key: "120503", Type: model.SecurityTypeMutualFund}
	r := NewRegistry()
	r.Register(fakeFactory{key: "funds", p: &fakeProvider{
		priority: 10,
		history: map[string][]model.Price{
			"120503": {
				nav("120503", "2025-08-27", "54.10"),
				nav("120503", "2025-08-28", "54.55"),
			},
		},
	}})

	from, _ := time.Parse("2006-01-02", "2025-08-01")
	to, _ := time.Parse("2006-01-02", "2025-08-31")
	sink := &fakeSink{}
	res := NewSyncer(r, sink).Historical(context.Background(), []model.Security{fund}, from, to)

	assert.Equal(t, Result{Synced: 1}, res)
	assert.Len(t, sink.prices, 2)
}
