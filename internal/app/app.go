package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"energy-cost-insights/internal/alerting"
	"energy-cost-insights/internal/config"
	"energy-cost-insights/internal/engine"
	"energy-cost-insights/internal/fetcher"
	"energy-cost-insights/internal/scheduler"
	"energy-cost-insights/internal/service"
	"energy-cost-insights/internal/storage"
	"energy-cost-insights/internal/timeutil"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newNormalizer() (timeutil.Normalizer, error) {
	return timeutil.LoadNormalizer(a.Config.Engine.Timezone)
}

func (a *App) engineOptions() engine.Options {
	ec := a.Config.Engine
	return engine.Options{
		HighPriceMultiplier:     ec.HighPriceMultiplier,
		LowPriceMultiplier:      ec.LowPriceMultiplier,
		HighUsageMultiplier:     ec.HighUsageMultiplier,
		SavingsFraction:         ec.SavingsFraction,
		RealtimeSavingsFraction: ec.RealtimeSavingsFraction,
		MaxSuggestions:          ec.MaxSuggestions,
		IncludeTimeHints:        ec.TimeHints,
		IncludeEarlyMorningTips: ec.EarlyMorningTips,
	}
}

func (a *App) newEngine() (*engine.Engine, timeutil.Normalizer, error) {
	hours, err := a.newNormalizer()
	if err != nil {
		return nil, timeutil.Normalizer{}, err
	}
	return engine.New(hours, a.engineOptions()), hours, nil
}

func (a *App) newSpotAPI() *fetcher.SpotAPI {
	return fetcher.NewSpotAPI(fetcher.SpotOptions{
		BaseURL:   a.Config.Prices.BaseURL,
		Currency:  a.Config.Prices.Currency,
		Timeout:   a.Config.Prices.RequestTimeout,
		UserAgent: a.Config.Prices.UserAgent,
	}, a.Logger)
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Enabled && a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

func (a *App) minUrgency() engine.Urgency {
	switch a.Config.Alerting.MinUrgency {
	case "low":
		return engine.UrgencyLow
	case "medium":
		return engine.UrgencyMedium
	default:
		return engine.UrgencyHigh
	}
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

func (a *App) newService(store *storage.Store, notifier alerting.Notifier) (*service.Service, error) {
	eng, hours, err := a.newEngine()
	if err != nil {
		return nil, err
	}

	data := fetcher.NewStoreFetcher(store, store)
	opts := service.Options{
		MinUrgency: a.minUrgency(),
		LockKey:    a.Config.Scheduler.AdvisoryLockKey,
		Locker:     store,
	}
	return service.New(eng, hours, data, data, store, notifier, opts, a.Logger), nil
}

// Run executes the long-running monitoring loop.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("database.dsn must be configured for the monitoring loop")
	}
	if closeStore != nil {
		defer closeStore()
	}

	svc, err := a.newService(store, a.newNotifier())
	if err != nil {
		return err
	}

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToBucket,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	a.Logger.Info().Msg("starting monitoring loop")
	err = sched.Run(ctx, svc.ProcessBucket)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("monitoring loop terminated with error")
		return err
	}

	a.Logger.Info().Msg("monitoring loop stopped")
	return nil
}

// AnalyzeOptions configure the analyze command.
type AnalyzeOptions struct {
	MeterID string
	Date    string
}

// PortfolioOptions configure the portfolio command.
type PortfolioOptions struct {
	Date string
}

// ExportOptions hold parameters for exporting an analysed day.
type ExportOptions struct {
	MeterID string
	Date    string
	CSVPath string
	PNGPath string
}

// BackfillOptions configure the price backfill job.
type BackfillOptions struct {
	From   string
	To     string
	DryRun bool
}

// MeterOptions configure meter registration.
type MeterOptions struct {
	ID       string
	Name     string
	Location string
}
