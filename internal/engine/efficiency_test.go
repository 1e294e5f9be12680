package engine

import "testing"

func TestScoreEmptyInputIsNeutral(t *testing.T) {
	if got := Score(nil); got != 50 {
		t.Fatalf("empty input must score exactly 50, got %v", got)
	}
}

func TestScoreConstantUsage(t *testing.T) {
	usage := make([]UsageRecord, 24)
	for h := range usage {
		usage[h] = UsageRecord{Timestamp: hourStamp(h), KWH: 8.4}
	}
	if got := Score(usage); got <= 90 {
		t.Fatalf("constant usage must score above 90, got %v", got)
	}
}

func TestScoreSpikyUsage(t *testing.T) {
	// Alternating near-zero readings with values far above the mean.
	usage := make([]UsageRecord, 24)
	for h := range usage {
		kwh := 0.01
		if h%8 == 0 {
			kwh = 95
		}
		usage[h] = UsageRecord{Timestamp: hourStamp(h), KWH: kwh}
	}
	if got := Score(usage); got >= 50 {
		t.Fatalf("spiky usage must score below 50, got %v", got)
	}
}

func TestScoreStaysInRange(t *testing.T) {
	usage, _ := mockDay()
	got := Score(usage)
	if got < 0 || got > 100 {
		t.Fatalf("score must stay in [0,100], got %v", got)
	}
}

func TestScoreAllZeroUsage(t *testing.T) {
	usage := make([]UsageRecord, 24)
	for h := range usage {
		usage[h] = UsageRecord{Timestamp: hourStamp(h)}
	}
	if got := Score(usage); got != 50 {
		t.Fatalf("zero usage carries no evidence and must score 50, got %v", got)
	}
}
