package fetcher

import (
	"context"
	"time"

	"energy-cost-insights/internal/engine"
)

// StaticUsage serves a fixed usage series; used by alert simulation.
type StaticUsage struct {
	Records []engine.UsageRecord
}

func (s StaticUsage) FetchUsage(ctx context.Context, meterID string, from, to time.Time) ([]engine.UsageRecord, error) {
	return s.Records, nil
}

// StaticPrices serves a fixed price series; used by alert simulation.
type StaticPrices struct {
	Records []engine.PriceRecord
}

func (s StaticPrices) FetchPrices(ctx context.Context, from, to time.Time) ([]engine.PriceRecord, error) {
	return s.Records, nil
}

var (
	_ UsageFetcher = StaticUsage{}
	_ PriceFetcher = StaticPrices{}
)
