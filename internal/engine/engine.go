package engine

import (
	"errors"

	"energy-cost-insights/internal/timeutil"
)

// ErrInsufficientData signals that one of the input series is empty for
// the requested scope, so no analysis is possible. It is a caller-visible
// state, not a failure of the engine itself.
var ErrInsufficientData = errors.New("engine: insufficient data for analysis")

// Options tune the heuristics. Zero values fall back to defaults so that
// Engine{..} literals in tests behave sensibly.
type Options struct {
	// HighPriceMultiplier and LowPriceMultiplier define the threshold
	// band around the mean price.
	HighPriceMultiplier float64
	LowPriceMultiplier  float64
	// HighUsageMultiplier marks current usage as elevated when it
	// exceeds this multiple of the day's mean hourly usage.
	HighUsageMultiplier float64
	// SavingsFraction estimates portfolio-level achievable savings.
	SavingsFraction float64
	// RealtimeSavingsFraction estimates savings for an immediate alert.
	RealtimeSavingsFraction float64
	MaxSuggestions          int
	IncludeTimeHints        bool
	IncludeEarlyMorningTips bool
}

// DefaultOptions returns the heuristics used by the dashboard.
func DefaultOptions() Options {
	return Options{
		HighPriceMultiplier:     1.2,
		LowPriceMultiplier:      0.8,
		HighUsageMultiplier:     1.5,
		SavingsFraction:         0.1,
		RealtimeSavingsFraction: 0.15,
		MaxSuggestions:          5,
		IncludeTimeHints:        true,
		IncludeEarlyMorningTips: true,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.HighPriceMultiplier <= 0 {
		o.HighPriceMultiplier = def.HighPriceMultiplier
	}
	if o.LowPriceMultiplier <= 0 {
		o.LowPriceMultiplier = def.LowPriceMultiplier
	}
	if o.HighUsageMultiplier <= 0 {
		o.HighUsageMultiplier = def.HighUsageMultiplier
	}
	if o.SavingsFraction <= 0 {
		o.SavingsFraction = def.SavingsFraction
	}
	if o.RealtimeSavingsFraction <= 0 {
		o.RealtimeSavingsFraction = def.RealtimeSavingsFraction
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = def.MaxSuggestions
	}
	return o
}

// Engine derives cost metrics and recommendations from raw hourly series.
// All methods are pure and synchronous; the only state is configuration.
type Engine struct {
	hours timeutil.Normalizer
	opts  Options
}

// New constructs an engine bound to a local time zone.
func New(hours timeutil.Normalizer, opts Options) *Engine {
	return &Engine{hours: hours, opts: opts.withDefaults()}
}

// Analyze runs the full pipeline for one metering point day. Either
// series being empty yields ErrInsufficientData.
func (e *Engine) Analyze(usage []UsageRecord, prices []PriceRecord) (CostAnalysis, error) {
	if len(usage) == 0 || len(prices) == 0 {
		return CostAnalysis{}, ErrInsufficientData
	}

	points := e.Aggregate(usage, prices)
	metrics := e.ComputeMetrics(points, prices)

	return CostAnalysis{
		Points:          points,
		Metrics:         metrics,
		EfficiencyScore: Score(usage),
		Suggestions:     e.GenerateSuggestions(points, metrics.AveragePrice),
		Currency:        currencyOf(prices),
	}, nil
}

func currencyOf(prices []PriceRecord) string {
	for _, p := range prices {
		if p.Currency != "" {
			return p.Currency
		}
	}
	return ""
}
