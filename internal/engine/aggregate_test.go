package engine

import (
	"reflect"
	"testing"
)

func TestAggregateAlwaysReturns24Slots(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	for name, tc := range map[string]struct {
		usage  []UsageRecord
		prices []PriceRecord
	}{
		"both empty":   {nil, nil},
		"only usage":   {usage, nil},
		"only prices":  {nil, prices},
		"full day":     {usage, prices},
		"single usage": {usage[:1], nil},
	} {
		points := e.Aggregate(tc.usage, tc.prices)
		if len(points) != 24 {
			t.Fatalf("%s: expected 24 slots, got %d", name, len(points))
		}
		for h, p := range points {
			if p.Hour != h {
				t.Fatalf("%s: slot %d has hour %d", name, h, p.Hour)
			}
		}
	}
}

func TestAggregateSumsDuplicateUsage(t *testing.T) {
	e := testEngine()
	usage := []UsageRecord{
		{Timestamp: hourStamp(7), KWH: 1.5},
		{Timestamp: hourStamp(7), KWH: 2.25},
	}

	points := e.Aggregate(usage, nil)
	if got := points[7].Usage; got != 3.75 {
		t.Fatalf("duplicate-hour usage should sum to 3.75, got %v", got)
	}
}

func TestAggregateLastPriceWins(t *testing.T) {
	e := testEngine()
	prices := []PriceRecord{
		{Timestamp: hourStamp(12), Price: 0.10},
		{Timestamp: hourStamp(12), Price: 0.14},
	}

	points := e.Aggregate(nil, prices)
	if got := points[12].Price; got != 0.14 {
		t.Fatalf("duplicate-hour price should keep the last record, got %v", got)
	}
}

func TestAggregateCostPerSlot(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	points := e.Aggregate(usage, prices)
	for _, p := range points {
		if p.Cost != p.Usage*p.Price {
			t.Fatalf("hour %d: cost %v != usage*price %v", p.Hour, p.Cost, p.Usage*p.Price)
		}
	}
}

func TestAggregateMixedSparsity(t *testing.T) {
	e := testEngine()
	usage := []UsageRecord{{Timestamp: hourStamp(3), KWH: 4.2}}
	prices := []PriceRecord{{Timestamp: hourStamp(10), Price: 0.09}}

	points := e.Aggregate(usage, prices)
	if points[3].Usage != 4.2 || points[3].Price != 0 {
		t.Fatalf("hour 3 should keep usage with zero price: %+v", points[3])
	}
	if points[10].Price != 0.09 || points[10].Usage != 0 {
		t.Fatalf("hour 10 should keep price with zero usage: %+v", points[10])
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	first := e.Aggregate(usage, prices)
	second := e.Aggregate(usage, prices)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated aggregation must be bit-identical")
	}
}

func TestAggregateConservesTotalUsage(t *testing.T) {
	e := testEngine()
	usage, prices := mockDay()

	total := 0.0
	for _, u := range usage {
		total += u.KWH
	}

	points := e.Aggregate(usage, prices)
	slotTotal := 0.0
	for _, p := range points {
		slotTotal += p.Usage
	}
	if slotTotal != total {
		t.Fatalf("slot usage sum %v must equal raw record sum %v", slotTotal, total)
	}
}
