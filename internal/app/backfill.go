package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"energy-cost-insights/internal/engine"
)

type priceSink interface {
	UpsertPrices(ctx context.Context, records []engine.PriceRecord) error
}

// Backfill ingests published day-ahead prices for a date range into the
// store, one day at a time. Days that fail to fetch are logged and
// skipped so a single gap does not abort the whole range.
func (a *App) Backfill(ctx context.Context, opts BackfillOptions) error {
	hours, err := a.newNormalizer()
	if err != nil {
		return err
	}

	start, _, err := hours.DayBounds(opts.From)
	if err != nil {
		return fmt.Errorf("invalid --from value: %w", err)
	}
	end, _, err := hours.DayBounds(opts.To)
	if err != nil {
		return fmt.Errorf("invalid --to value: %w", err)
	}
	if end.Before(start) {
		return errors.New("--from must not be after --to")
	}

	days := int(end.Sub(start)/(24*time.Hour)) + 1
	if days > a.Config.Analysis.MaxRangeDays {
		return fmt.Errorf("range of %d days exceeds analysis.max_range_days (%d)", days, a.Config.Analysis.MaxRangeDays)
	}

	var store priceSink
	if opts.DryRun {
		a.Logger.Warn().Msg("backfill dry-run: nothing will be written")
	} else {
		s, closeStore, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		if s == nil {
			return errors.New("database not configured; cannot backfill")
		}
		if closeStore != nil {
			defer closeStore()
		}
		store = s
	}

	spot := a.newSpotAPI()

	processed := 0
	failed := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		date := day.Format("2006-01-02")
		records, err := spot.FetchDay(ctx, date)
		if err != nil {
			failed++
			a.Logger.Error().Err(err).Str("date", date).Msg("backfill fetch failed")
			continue
		}
		if len(records) == 0 {
			a.Logger.Warn().Str("date", date).Msg("no prices published for day")
			continue
		}

		if store != nil {
			if err := store.UpsertPrices(ctx, records); err != nil {
				failed++
				a.Logger.Error().Err(err).Str("date", date).Msg("backfill write failed")
				continue
			}
		}
		processed++
	}

	a.Logger.Info().Int("processed", processed).Int("failed", failed).Msg("backfill complete")
	if failed > 0 {
		return errors.New("some days failed to backfill; check the logs")
	}
	return nil
}
