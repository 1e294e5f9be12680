package engine

import (
	"reflect"
	"testing"
)

func analysisWith(totalKWH, totalCost, avgPrice float64, peakHour int, firstInsight string) CostAnalysis {
	a := CostAnalysis{
		Metrics: Metrics{
			TotalKWH:      totalKWH,
			TotalCost:     totalCost,
			AveragePrice:  avgPrice,
			PeakUsageHour: peakHour,
		},
	}
	if firstInsight != "" {
		a.Suggestions = []Suggestion{{Message: firstInsight, Priority: UrgencyHigh}}
	}
	return a
}

func TestAggregatePortfolio(t *testing.T) {
	e := testEngine()

	results := map[string]CostAnalysis{
		"meter-a": analysisWith(120, 14.4, 0.12, 9, "shift meter-a load"),
		"meter-b": analysisWith(200, 18.0, 0.09, 18, "shift meter-b load"),
		"meter-c": analysisWith(0, 0, 0, 0, ""), // no data, must be skipped
	}

	summary := e.AggregatePortfolio(results)

	if summary.ActiveMeters != 2 {
		t.Fatalf("expected 2 active meters, got %d", summary.ActiveMeters)
	}
	if !reflect.DeepEqual(summary.SkippedMeters, []string{"meter-c"}) {
		t.Fatalf("zero-usage meter must be reported as skipped: %v", summary.SkippedMeters)
	}
	if summary.TotalKWH != 320 {
		t.Fatalf("expected 320 kWh, got %v", summary.TotalKWH)
	}
	if roundTo(summary.TotalCost, 2) != 32.4 {
		t.Fatalf("expected 32.40 total cost, got %v", summary.TotalCost)
	}
	if summary.HighestCostMeter != "meter-b" || summary.HighestCost != 18.0 {
		t.Fatalf("wrong costliest meter: %s (%v)", summary.HighestCostMeter, summary.HighestCost)
	}
	// Overall peak hour comes from the meter with the largest total
	// usage, which is meter-b.
	if summary.OverallPeakHour != 18 {
		t.Fatalf("expected overall peak hour 18, got %d", summary.OverallPeakHour)
	}
	if roundTo(summary.AveragePrice, 4) != 0.105 {
		t.Fatalf("expected mean of active average prices, got %v", summary.AveragePrice)
	}
	if want := 320 * 0.105 * 0.1; roundTo(summary.PotentialSavingsToday, 4) != roundTo(want, 4) {
		t.Fatalf("expected savings %v, got %v", want, summary.PotentialSavingsToday)
	}
	if len(summary.TopInsights) != 2 {
		t.Fatalf("expected one insight per active meter, got %v", summary.TopInsights)
	}
}

func TestAggregatePortfolioInsightCap(t *testing.T) {
	e := testEngine()

	results := map[string]CostAnalysis{}
	for _, id := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"} {
		results[id] = analysisWith(10, 1, 0.1, 9, "insight for "+id)
	}

	summary := e.AggregatePortfolio(results)
	if len(summary.TopInsights) != 5 {
		t.Fatalf("insights must be capped at 5, got %d", len(summary.TopInsights))
	}
}

func TestAggregatePortfolioEmpty(t *testing.T) {
	e := testEngine()

	summary := e.AggregatePortfolio(nil)
	if summary.ActiveMeters != 0 || summary.TotalKWH != 0 || summary.AveragePrice != 0 {
		t.Fatalf("empty portfolio must stay zero: %+v", summary)
	}
}

func TestAggregatePortfolioDeterministic(t *testing.T) {
	e := testEngine()

	results := map[string]CostAnalysis{
		"b": analysisWith(50, 5, 0.1, 7, "b insight"),
		"a": analysisWith(50, 5, 0.1, 12, "a insight"),
	}

	first := e.AggregatePortfolio(results)
	second := e.AggregatePortfolio(results)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("portfolio aggregation must not depend on map iteration order")
	}
	// Equal costs: the first meter in sorted order keeps the title.
	if first.HighestCostMeter != "a" {
		t.Fatalf("tie must resolve to the first meter in sorted order, got %s", first.HighestCostMeter)
	}
}
