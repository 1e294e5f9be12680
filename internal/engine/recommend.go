package engine

import (
	"fmt"

	"energy-cost-insights/internal/timeutil"
)

// Recommend evaluates the real-time decision table for the current hour.
// The first matching condition wins:
//
//  1. usage high and price high  -> price_alert, high urgency
//  2. price high                 -> cost_optimization, medium urgency
//  3. usage high                 -> usage_reduction, medium urgency
//  4. price low                  -> timing_adjustment, low urgency
//  5. otherwise                  -> cost_optimization, low urgency
//
// Empty context series degrade gracefully: with no price history nothing
// counts as high or low, so the call never fails.
func (e *Engine) Recommend(currentUsage, currentPrice float64, usage []UsageRecord, prices []PriceRecord, currentHour int) Recommendation {
	th := e.thresholds(meanPrice(prices))
	mu := meanUsage(usage)

	priceHigh := th.High > 0 && currentPrice > th.High
	priceLow := th.Low > 0 && currentPrice < th.Low
	usageHigh := mu > 0 && currentUsage > mu*e.opts.HighUsageMultiplier

	hour := timeutil.FormatHour(currentHour)
	currentCost := currentUsage * currentPrice

	switch {
	case usageHigh && priceHigh:
		return Recommendation{
			Type:             TypePriceAlert,
			Urgency:          UrgencyHigh,
			Message:          fmt.Sprintf("Alert: both usage and price are high at %s. Reduce consumption now to avoid peak charges.", hour),
			PotentialSavings: e.opts.RealtimeSavingsFraction * currentCost,
		}
	case priceHigh:
		return Recommendation{
			Type:             TypeCostOptimization,
			Urgency:          UrgencyMedium,
			Message:          fmt.Sprintf("Prices are above the high threshold at %s. Defer non-essential loads until prices drop.", hour),
			PotentialSavings: positive(currentUsage * (currentPrice - th.Average)),
		}
	case usageHigh:
		return Recommendation{
			Type:             TypeUsageReduction,
			Urgency:          UrgencyMedium,
			Message:          fmt.Sprintf("Consumption at %s is well above the daily average. Check for unnecessary running equipment.", hour),
			PotentialSavings: positive((currentUsage - mu) * currentPrice),
		}
	case priceLow:
		return Recommendation{
			Type:    TypeTimingAdjustment,
			Urgency: UrgencyLow,
			Message: fmt.Sprintf("Prices are low at %s. A good window for energy-intensive work.", hour),
		}
	default:
		return Recommendation{
			Type:    TypeCostOptimization,
			Urgency: UrgencyLow,
			Message: "Normal operations. No immediate action needed.",
		}
	}
}

func positive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
