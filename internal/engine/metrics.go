package engine

// ComputeMetrics derives totals, peaks, and the price threshold band from
// an aggregated day. The raw price records are needed alongside the slots
// because the average price is taken over the records actually supplied;
// averaging the 24-slot table would dilute it toward zero on sparse days.
func (e *Engine) ComputeMetrics(points []HourlyDataPoint, prices []PriceRecord) Metrics {
	m := Metrics{AveragePrice: meanPrice(prices)}

	for _, p := range points {
		m.TotalKWH += p.Usage
		m.TotalCost += p.Cost
		if p.Usage > m.MaxUsage {
			m.MaxUsage = p.Usage
			m.PeakUsageHour = p.Hour
		}
		if p.Cost > m.MaxCost {
			m.MaxCost = p.Cost
			m.PeakCostHour = p.Hour
		}
	}

	m.Thresholds = e.thresholds(m.AveragePrice)
	return m
}

func (e *Engine) thresholds(average float64) PriceThresholds {
	if average == 0 {
		return PriceThresholds{}
	}
	return PriceThresholds{
		Average: average,
		High:    average * e.opts.HighPriceMultiplier,
		Low:     average * e.opts.LowPriceMultiplier,
	}
}

func meanPrice(prices []PriceRecord) float64 {
	if len(prices) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range prices {
		sum += p.Price
	}
	return sum / float64(len(prices))
}

func meanUsage(usage []UsageRecord) float64 {
	if len(usage) == 0 {
		return 0
	}
	sum := 0.0
	for _, u := range usage {
		sum += u.KWH
	}
	return sum / float64(len(usage))
}
