package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestAnalyzeFullPipeline(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	analysis, err := e.Analyze(usage, prices)
	if err != nil {
		t.Fatalf("full day should analyze cleanly: %v", err)
	}
	if len(analysis.Points) != 24 {
		t.Fatalf("expected 24 points, got %d", len(analysis.Points))
	}
	if analysis.Currency != "BGN" {
		t.Fatalf("currency should come from the price records, got %q", analysis.Currency)
	}
	if analysis.EfficiencyScore <= 0 || analysis.EfficiencyScore > 100 {
		t.Fatalf("score out of range: %v", analysis.EfficiencyScore)
	}
	if len(analysis.Suggestions) == 0 {
		t.Fatal("expected suggestions for the mock day")
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	for name, tc := range map[string]struct {
		usage  []UsageRecord
		prices []PriceRecord
	}{
		"no usage":  {nil, prices},
		"no prices": {usage, nil},
		"nothing":   {nil, nil},
	} {
		if _, err := e.Analyze(tc.usage, tc.prices); !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("%s: expected ErrInsufficientData, got %v", name, err)
		}
	}
}

func TestAnalyzeIsPure(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	first, err := e.Analyze(usage, prices)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Analyze(usage, prices)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated analysis of the same inputs must be bit-identical")
	}
}
