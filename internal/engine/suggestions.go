package engine

import (
	"fmt"
	"sort"
	"strings"

	"energy-cost-insights/internal/timeutil"
)

const fallbackSuggestion = "Monitor usage patterns to identify optimization opportunities."

// GenerateSuggestions evaluates the batch rules against an aggregated day
// and merges their output, sorted by priority descending (ties keep
// generation order) and truncated to the configured maximum. When no rule
// fires, exactly one default suggestion is returned.
func (e *Engine) GenerateSuggestions(points []HourlyDataPoint, averagePrice float64) []Suggestion {
	var out []Suggestion
	th := e.thresholds(averagePrice)

	if s, ok := e.highPriceHours(points, th); ok {
		out = append(out, s)
	}
	if e.opts.IncludeTimeHints {
		if s, ok := e.lowPriceHours(points, th); ok {
			out = append(out, s)
		}
	}
	if s, ok := peakUsage(points); ok {
		out = append(out, s)
	}
	if e.opts.IncludeEarlyMorningTips {
		if s, ok := earlyMorningWindow(points, averagePrice); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return []Suggestion{{
			Type:     TypeCostOptimization,
			Priority: UrgencyLow,
			Message:  fallbackSuggestion,
		}}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	if len(out) > e.opts.MaxSuggestions {
		out = out[:e.opts.MaxSuggestions]
	}
	return out
}

func (e *Engine) highPriceHours(points []HourlyDataPoint, th PriceThresholds) (Suggestion, bool) {
	var hours []int
	savings := 0.0
	for _, p := range points {
		if th.High > 0 && p.Price > th.High && p.Usage > 0 {
			hours = append(hours, p.Hour)
			savings += p.Usage * (p.Price - th.Average)
		}
	}
	if len(hours) == 0 {
		return Suggestion{}, false
	}
	return Suggestion{
		Type:             TypeCostOptimization,
		Priority:         UrgencyHigh,
		Message:          fmt.Sprintf("Electricity is expensive at %s while usage is active. Shift flexible loads to cheaper hours.", joinHours(hours)),
		AffectedHours:    hours,
		PotentialSavings: &savings,
	}, true
}

func (e *Engine) lowPriceHours(points []HourlyDataPoint, th PriceThresholds) (Suggestion, bool) {
	var hours []int
	total := 0.0
	for _, p := range points {
		total += p.Usage
		if th.Low > 0 && p.Price > 0 && p.Price < th.Low {
			hours = append(hours, p.Hour)
		}
	}
	if len(hours) == 0 {
		return Suggestion{}, false
	}

	// Benefit of moving one average hour of load into each cheap slot.
	avgHourly := total / 24
	savings := 0.0
	for _, h := range hours {
		savings += (th.Average - points[h].Price) * avgHourly
	}

	return Suggestion{
		Type:             TypeTimingAdjustment,
		Priority:         UrgencyLow,
		Message:          fmt.Sprintf("Prices dip at %s. Schedule energy-intensive tasks in these windows.", joinHours(hours)),
		AffectedHours:    hours,
		PotentialSavings: &savings,
	}, true
}

func peakUsage(points []HourlyDataPoint) (Suggestion, bool) {
	max := 0.0
	for _, p := range points {
		if p.Usage > max {
			max = p.Usage
		}
	}
	if max == 0 {
		return Suggestion{}, false
	}

	var hours []int
	for _, p := range points {
		if p.Usage == max {
			hours = append(hours, p.Hour)
		}
	}
	return Suggestion{
		Type:          TypeUsageReduction,
		Priority:      UrgencyMedium,
		Message:       fmt.Sprintf("Usage peaks at %s. Check equipment efficiency around that time.", joinHours(hours)),
		AffectedHours: hours,
	}, true
}

func earlyMorningWindow(points []HourlyDataPoint, averagePrice float64) (Suggestion, bool) {
	const windowStart, windowEnd = 5, 8

	usage, priceSum := 0.0, 0.0
	var hours []int
	for h := windowStart; h <= windowEnd; h++ {
		usage += points[h].Usage
		priceSum += points[h].Price
		hours = append(hours, h)
	}
	windowAvg := priceSum / float64(len(hours))

	if usage == 0 || averagePrice == 0 || windowAvg >= averagePrice {
		return Suggestion{}, false
	}
	return Suggestion{
		Type:          TypeTimingAdjustment,
		Priority:      UrgencyLow,
		Message:       "Early morning (05:00-08:00) prices are below the daily average. A favorable window for preparation tasks.",
		AffectedHours: hours,
	}, true
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = timeutil.FormatHour(h)
	}
	return strings.Join(parts, ", ")
}
