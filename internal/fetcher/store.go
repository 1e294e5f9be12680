package fetcher

import (
	"context"
	"time"

	"energy-cost-insights/internal/engine"
	"energy-cost-insights/internal/storage"
)

// StoreFetcher reads raw series back out of PostgreSQL.
type StoreFetcher struct {
	usage  storage.UsageStore
	prices storage.PriceStore
}

// NewStoreFetcher wraps the persistence layer as a data-access collaborator.
func NewStoreFetcher(usage storage.UsageStore, prices storage.PriceStore) *StoreFetcher {
	return &StoreFetcher{usage: usage, prices: prices}
}

// FetchUsage loads one meter's usage rows for a window.
func (f *StoreFetcher) FetchUsage(ctx context.Context, meterID string, from, to time.Time) ([]engine.UsageRecord, error) {
	return f.usage.ListUsageBetween(ctx, meterID, from, to)
}

// FetchPrices loads price rows for a window.
func (f *StoreFetcher) FetchPrices(ctx context.Context, from, to time.Time) ([]engine.PriceRecord, error) {
	return f.prices.ListPricesBetween(ctx, from, to)
}

var (
	_ UsageFetcher = (*StoreFetcher)(nil)
	_ PriceFetcher = (*StoreFetcher)(nil)
)
