package engine

import (
	"math"
	"testing"
)

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

func TestComputeMetricsMockDay(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	m := e.ComputeMetrics(e.Aggregate(usage, prices), prices)

	if m.PeakUsageHour != 9 || m.MaxUsage != 22.6 {
		t.Fatalf("expected usage peak 22.6 at hour 9, got %v at %d", m.MaxUsage, m.PeakUsageHour)
	}
	if m.PeakCostHour != 9 {
		t.Fatalf("expected cost peak at hour 9, got %d", m.PeakCostHour)
	}
	if got := roundTo(m.MaxCost, 3); got != 2.913 {
		t.Fatalf("expected max cost 2.913, got %v", got)
	}
	if got := roundTo(m.TotalKWH, 2); got != 263.7 {
		t.Fatalf("expected total 263.7 kWh, got %v", got)
	}
	if got := roundTo(m.AveragePrice, 4); got != 0.0945 {
		t.Fatalf("expected average price 0.0945, got %v", got)
	}
	if got := roundTo(m.TotalCost, 2); got != 26.50 {
		t.Fatalf("expected total cost 26.50, got %v", got)
	}
}

func TestComputeMetricsThresholdBand(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	m := e.ComputeMetrics(e.Aggregate(usage, prices), prices)
	if got := roundTo(m.Thresholds.High, 4); got != roundTo(m.AveragePrice*1.2, 4) {
		t.Fatalf("high threshold should be avg*1.2, got %v", got)
	}
	if got := roundTo(m.Thresholds.Low, 4); got != roundTo(m.AveragePrice*0.8, 4) {
		t.Fatalf("low threshold should be avg*0.8, got %v", got)
	}
}

func TestComputeMetricsAllZeroUsage(t *testing.T) {
	e := testEngine()
	_, prices := mockDay()

	usage := make([]UsageRecord, 24)
	for h := range usage {
		usage[h] = UsageRecord{Timestamp: hourStamp(h)}
	}

	m := e.ComputeMetrics(e.Aggregate(usage, prices), prices)
	if m.TotalKWH != 0 || m.TotalCost != 0 {
		t.Fatalf("zero usage must produce zero totals: %+v", m)
	}
	if m.PeakUsageHour != 0 || m.MaxUsage != 0 {
		t.Fatalf("zero usage must report peak hour 0 with value 0: %+v", m)
	}
}

func TestAveragePriceUsesRawRecords(t *testing.T) {
	e := testEngine()

	// Only two price records; averaging over the 24-slot table would
	// dilute the mean toward zero.
	prices := []PriceRecord{
		{Timestamp: hourStamp(10), Price: 0.10},
		{Timestamp: hourStamp(11), Price: 0.20},
	}

	m := e.ComputeMetrics(e.Aggregate(nil, prices), prices)
	if got := roundTo(m.AveragePrice, 4); got != 0.15 {
		t.Fatalf("average must be over supplied records (0.15), got %v", got)
	}
}

func TestComputeMetricsEmptyPrices(t *testing.T) {
	e := testEngine()
	usage, _ := mockDay()

	m := e.ComputeMetrics(e.Aggregate(usage, nil), nil)
	if m.AveragePrice != 0 {
		t.Fatalf("empty prices must yield zero average, got %v", m.AveragePrice)
	}
	if m.Thresholds != (PriceThresholds{}) {
		t.Fatalf("empty prices must yield zero thresholds: %+v", m.Thresholds)
	}
}

func TestPeakTiesResolveToFirstHour(t *testing.T) {
	e := testEngine()
	usage := []UsageRecord{
		{Timestamp: hourStamp(6), KWH: 5},
		{Timestamp: hourStamp(14), KWH: 5},
	}
	prices := []PriceRecord{
		{Timestamp: hourStamp(6), Price: 0.1},
		{Timestamp: hourStamp(14), Price: 0.1},
	}

	m := e.ComputeMetrics(e.Aggregate(usage, prices), prices)
	if m.PeakUsageHour != 6 {
		t.Fatalf("tied usage peak must resolve to the earliest hour, got %d", m.PeakUsageHour)
	}
	if m.PeakCostHour != 6 {
		t.Fatalf("tied cost peak must resolve to the earliest hour, got %d", m.PeakCostHour)
	}
}
