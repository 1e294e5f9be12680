package engine

// UsageRecord is one raw hourly consumption reading for a metering point.
// Multiple records may map to the same local hour; their kWh values add up.
type UsageRecord struct {
	Timestamp int64
	KWH       float64
}

// PriceRecord is one raw hourly spot price observation. When several
// records map to the same local hour the last one iterated wins.
type PriceRecord struct {
	Timestamp int64
	Price     float64
	Currency  string
}

// HourlyDataPoint is one of the 24 canonical slots an analysis day is
// folded into. Cost is always Usage * Price for that slot.
type HourlyDataPoint struct {
	Hour  int
	Usage float64
	Price float64
	Cost  float64
}

// SuggestionType classifies what a recommendation asks the user to do.
type SuggestionType string

const (
	TypeCostOptimization SuggestionType = "cost_optimization"
	TypeTimingAdjustment SuggestionType = "timing_adjustment"
	TypeUsageReduction   SuggestionType = "usage_reduction"
	TypePriceAlert       SuggestionType = "price_alert"
)

// Urgency ranks how time-sensitive a recommendation is. Higher values
// sort first when suggestions are returned to callers.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
)

func (u Urgency) String() string {
	switch u {
	case UrgencyHigh:
		return "high"
	case UrgencyMedium:
		return "medium"
	default:
		return "low"
	}
}

// Suggestion is one batch-mode recommendation for a metering point day.
type Suggestion struct {
	Type             SuggestionType
	Priority         Urgency
	Message          string
	AffectedHours    []int
	PotentialSavings *float64
}

// Recommendation is the real-time decision for the current hour.
type Recommendation struct {
	Type             SuggestionType
	Urgency          Urgency
	Message          string
	PotentialSavings float64
}

// PriceThresholds is the low/high band around the day's mean price used
// to classify hours as cheap or expensive.
type PriceThresholds struct {
	Average float64
	High    float64
	Low     float64
}

// Metrics carries the aggregate and peak statistics for one analysed day.
type Metrics struct {
	TotalKWH      float64
	TotalCost     float64
	AveragePrice  float64
	PeakUsageHour int
	MaxUsage      float64
	PeakCostHour  int
	MaxCost       float64
	Thresholds    PriceThresholds
}

// CostAnalysis is the complete derived result for one (meter, day) pair.
// It is a pure function of its inputs and safe to cache by that key.
type CostAnalysis struct {
	Points          []HourlyDataPoint
	Metrics         Metrics
	EfficiencyScore float64
	Suggestions     []Suggestion
	Currency        string
}

// PortfolioSummary folds per-meter analyses into one dashboard view.
type PortfolioSummary struct {
	ActiveMeters          int
	SkippedMeters         []string
	TotalKWH              float64
	TotalCost             float64
	AveragePrice          float64
	HighestCostMeter      string
	HighestCost           float64
	OverallPeakHour       int
	TopInsights           []string
	PotentialSavingsToday float64
}
