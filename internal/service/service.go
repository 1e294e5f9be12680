package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"energy-cost-insights/internal/alerting"
	"energy-cost-insights/internal/engine"
	"energy-cost-insights/internal/fetcher"
	"energy-cost-insights/internal/storage"
	"energy-cost-insights/internal/timeutil"
)

// MeterLister enumerates the metering points in scope.
type MeterLister interface {
	ListMeteringPoints(ctx context.Context) ([]storage.MeteringPoint, error)
}

// Options tune service behaviour beyond the engine heuristics.
type Options struct {
	// MinUrgency gates which real-time recommendations are dispatched
	// as alerts.
	MinUrgency engine.Urgency
	// LockKey guards the monitor tick against concurrent instances.
	// Zero disables locking.
	LockKey int64
	Locker  storage.AdvisoryLocker
}

// Service orchestrates fetching, calculation, and alert dispatch.
type Service struct {
	engine   *engine.Engine
	hours    timeutil.Normalizer
	usage    fetcher.UsageFetcher
	prices   fetcher.PriceFetcher
	meters   MeterLister
	notifier alerting.Notifier
	opts     Options
	logger   zerolog.Logger
}

// New constructs the analysis service.
func New(eng *engine.Engine, hours timeutil.Normalizer, usage fetcher.UsageFetcher, prices fetcher.PriceFetcher, meters MeterLister, notifier alerting.Notifier, opts Options, logger zerolog.Logger) *Service {
	return &Service{
		engine:   eng,
		hours:    hours,
		usage:    usage,
		prices:   prices,
		meters:   meters,
		notifier: notifier,
		opts:     opts,
		logger:   logger.With().Str("component", "service").Logger(),
	}
}

// AnalyzeDay runs the full analysis for one metering point and local day.
// Empty input series surface as engine.ErrInsufficientData.
func (s *Service) AnalyzeDay(ctx context.Context, meterID, date string) (engine.CostAnalysis, error) {
	from, to, err := s.hours.DayBounds(date)
	if err != nil {
		return engine.CostAnalysis{}, err
	}

	usage, err := s.usage.FetchUsage(ctx, meterID, from, to)
	if err != nil {
		return engine.CostAnalysis{}, fmt.Errorf("fetch usage for %s: %w", meterID, err)
	}
	prices, err := s.prices.FetchPrices(ctx, from, to)
	if err != nil {
		return engine.CostAnalysis{}, fmt.Errorf("fetch prices: %w", err)
	}

	return s.engine.Analyze(usage, prices)
}

// Portfolio fans analysis out across all metering points for one day and
// folds the results into a dashboard summary. Meters whose data cannot be
// fetched or is insufficient are reported as skipped rather than failing
// the whole aggregation, and the fold itself is deterministic regardless
// of fetch completion order.
func (s *Service) Portfolio(ctx context.Context, date string) (engine.PortfolioSummary, error) {
	meters, err := s.meters.ListMeteringPoints(ctx)
	if err != nil {
		return engine.PortfolioSummary{}, fmt.Errorf("list metering points: %w", err)
	}

	var (
		mu      sync.Mutex
		results = make(map[string]engine.CostAnalysis, len(meters))
		failed  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, meter := range meters {
		meter := meter
		g.Go(func() error {
			analysis, err := s.AnalyzeDay(gctx, meter.ID, date)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if !errors.Is(err, engine.ErrInsufficientData) {
					s.logger.Warn().Err(err).Str("meter_id", meter.ID).Msg("meter skipped")
				}
				failed = append(failed, meter.ID)
				return nil
			}
			results[meter.ID] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return engine.PortfolioSummary{}, err
	}

	summary := s.engine.AggregatePortfolio(results)
	summary.SkippedMeters = lo.Uniq(append(summary.SkippedMeters, failed...))
	sort.Strings(summary.SkippedMeters)
	return summary, nil
}

// ProcessBucket evaluates the real-time decision table for every meter at
// the given hourly bucket and dispatches alerts above the urgency gate.
func (s *Service) ProcessBucket(ctx context.Context, bucket time.Time) error {
	unlock, proceed, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	if !proceed {
		s.logger.Debug().Time("bucket", bucket).Msg("skip bucket because advisory lock held elsewhere")
		return nil
	}
	if unlock != nil {
		defer unlock()
	}

	meters, err := s.meters.ListMeteringPoints(ctx)
	if err != nil {
		return fmt.Errorf("list metering points: %w", err)
	}

	date := bucket.In(s.hours.Location()).Format("2006-01-02")
	from, to, err := s.hours.DayBounds(date)
	if err != nil {
		return err
	}

	prices, err := s.prices.FetchPrices(ctx, from, to)
	if err != nil {
		return fmt.Errorf("fetch prices: %w", err)
	}

	currentHour := s.hours.HourOf(bucket.Unix())

	for _, meter := range meters {
		usage, err := s.usage.FetchUsage(ctx, meter.ID, from, to)
		if err != nil {
			s.logger.Error().Err(err).Str("meter_id", meter.ID).Msg("failed to fetch usage")
			continue
		}

		points := s.engine.Aggregate(usage, prices)
		current := points[currentHour]
		rec := s.engine.Recommend(current.Usage, current.Price, usage, prices, currentHour)

		s.logger.Info().
			Str("meter_id", meter.ID).
			Int("hour", currentHour).
			Str("type", string(rec.Type)).
			Str("urgency", rec.Urgency.String()).
			Msg("real-time recommendation")

		if s.notifier == nil || rec.Urgency < s.opts.MinUrgency {
			continue
		}

		note := alerting.Notification{
			MeterID:        meter.ID,
			Bucket:         bucket,
			Hour:           currentHour,
			CurrentUsage:   current.Usage,
			CurrentPrice:   current.Price,
			Currency:       currencyOf(prices),
			Recommendation: rec,
		}
		if err := s.notifier.Notify(ctx, note); err != nil {
			s.logger.Error().Err(err).Str("meter_id", meter.ID).Msg("failed to dispatch alert")
		}
	}

	return nil
}

func (s *Service) acquireLock(ctx context.Context) (func(), bool, error) {
	if s.opts.LockKey == 0 || s.opts.Locker == nil {
		return nil, true, nil
	}
	unlock, acquired, err := s.opts.Locker.TryAdvisoryLock(ctx, s.opts.LockKey)
	if err != nil {
		return nil, false, fmt.Errorf("acquire advisory lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}
	return unlock, true, nil
}

func currencyOf(prices []engine.PriceRecord) string {
	p, ok := lo.Find(prices, func(p engine.PriceRecord) bool { return p.Currency != "" })
	if !ok {
		return ""
	}
	return p.Currency
}
