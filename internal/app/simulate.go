package app

import (
	"context"
	"errors"
	"time"

	"energy-cost-insights/internal/engine"
	"energy-cost-insights/internal/fetcher"
	"energy-cost-insights/internal/service"
	"energy-cost-insights/internal/storage"
)

type simulatedLister struct{}

func (simulatedLister) ListMeteringPoints(ctx context.Context) ([]storage.MeteringPoint, error) {
	return []storage.MeteringPoint{{ID: "simulated-meter", Name: "Simulated meter"}}, nil
}

// SimulateAlert feeds a synthetic day with the given current usage and
// price through the real-time pipeline to exercise the alert channel.
func (a *App) SimulateAlert(ctx context.Context, currentUsage, currentPrice float64) error {
	if !a.Config.Alerting.Enabled {
		return errors.New("alerting is not enabled")
	}
	notifier := a.newNotifier()
	if notifier == nil {
		return errors.New("no alert channel configured")
	}

	eng, hours, err := a.newEngine()
	if err != nil {
		return err
	}

	now := time.Now().In(hours.Location())
	bucket := now.Truncate(time.Hour)
	currentHour := hours.HourOf(bucket.Unix())

	// A flat baseline day with the simulated values in the current hour.
	var usage []engine.UsageRecord
	var prices []engine.PriceRecord
	for h := 0; h < 24; h++ {
		ts := time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, hours.Location()).Unix()
		kwh, price := 1.0, 0.08
		if h == currentHour {
			kwh, price = currentUsage, currentPrice
		}
		usage = append(usage, engine.UsageRecord{Timestamp: ts, KWH: kwh})
		prices = append(prices, engine.PriceRecord{Timestamp: ts, Price: price, Currency: a.Config.Prices.Currency})
	}

	svc := service.New(
		eng,
		hours,
		fetcher.StaticUsage{Records: usage},
		fetcher.StaticPrices{Records: prices},
		simulatedLister{},
		notifier,
		service.Options{MinUrgency: engine.UrgencyLow},
		a.Logger,
	)

	return svc.ProcessBucket(ctx, bucket)
}
