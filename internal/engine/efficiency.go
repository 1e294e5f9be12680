package engine

import "math"

// Score rates how evenly a usage profile is spread across hours, from 0
// (extremely spiky) to 100 (perfectly flat). The score is a monotonic
// transform of the coefficient of variation: 100 / (1 + cv). Empty input
// returns the neutral 50 since there is no evidence either way.
func Score(usage []UsageRecord) float64 {
	if len(usage) == 0 {
		return 50
	}

	mean := meanUsage(usage)
	if mean <= 0 {
		return 50
	}

	variance := 0.0
	for _, u := range usage {
		d := u.KWH - mean
		variance += d * d
	}
	variance /= float64(len(usage))

	cv := math.Sqrt(variance) / mean
	return clamp(100/(1+cv), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
