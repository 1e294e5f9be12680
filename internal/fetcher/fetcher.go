package fetcher

import (
	"context"
	"time"

	"energy-cost-insights/internal/engine"
)

// UsageFetcher supplies raw hourly usage records for one metering point.
// An empty slice is a legitimate answer meaning "no data for that window".
type UsageFetcher interface {
	FetchUsage(ctx context.Context, meterID string, from, to time.Time) ([]engine.UsageRecord, error)
}

// PriceFetcher supplies raw hourly spot prices for a window.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, from, to time.Time) ([]engine.PriceRecord, error)
}
