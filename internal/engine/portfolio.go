package engine

import (
	"sort"

	"github.com/samber/lo"
)

// AggregatePortfolio folds per-meter analyses into one dashboard summary.
// Meters with zero total usage are treated as "no data" and skipped.
// Iteration runs in sorted meter-ID order so the summary is deterministic
// no matter how the per-meter results were produced.
//
// The overall peak hour is taken from the single meter with the largest
// total usage, not from a true per-hour sum across meters. That matches
// the dashboard's historical behavior and is a known approximation.
func (e *Engine) AggregatePortfolio(results map[string]CostAnalysis) PortfolioSummary {
	summary := PortfolioSummary{}

	priceSum := 0.0
	topUsage := 0.0

	meterIDs := lo.Keys(results)
	sort.Strings(meterIDs)

	for _, id := range meterIDs {
		analysis := results[id]
		if analysis.Metrics.TotalKWH == 0 {
			summary.SkippedMeters = append(summary.SkippedMeters, id)
			continue
		}

		summary.ActiveMeters++
		summary.TotalKWH += analysis.Metrics.TotalKWH
		summary.TotalCost += analysis.Metrics.TotalCost
		priceSum += analysis.Metrics.AveragePrice

		if analysis.Metrics.TotalCost > summary.HighestCost {
			summary.HighestCost = analysis.Metrics.TotalCost
			summary.HighestCostMeter = id
		}
		if analysis.Metrics.TotalKWH > topUsage {
			topUsage = analysis.Metrics.TotalKWH
			summary.OverallPeakHour = analysis.Metrics.PeakUsageHour
		}

		if len(summary.TopInsights) < 5 && len(analysis.Suggestions) > 0 {
			summary.TopInsights = append(summary.TopInsights, analysis.Suggestions[0].Message)
		}
	}

	if summary.ActiveMeters > 0 {
		summary.AveragePrice = priceSum / float64(summary.ActiveMeters)
	}
	summary.PotentialSavingsToday = summary.TotalKWH * summary.AveragePrice * e.opts.SavingsFraction
	return summary
}
