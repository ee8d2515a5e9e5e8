package matching

import (
	"testing"
	"time"
)

func TestEstimateCeiling(t *testing.T) {
	t.Parallel()

	e := EstimateAcceptance(100, CompetitionLow, timingMax, 1.0)
	if e.Probability != DefaultProbabilityCeiling {
		t.Fatalf("probability = %v, want ceiling %v", e.Probability, DefaultProbabilityCeiling)
	}
}

func TestEstimateInputsClamped(t *testing.T) {
	t.Parallel()

	e := EstimateAcceptanceWith(150, CompetitionLow, 5.0, 2.0, 2.0)
	if e.Probability > DefaultProbabilityCeiling {
		t.Fatalf("probability %v exceeds ceiling", e.Probability)
	}

	e = EstimateAcceptance(-10, CompetitionHigh, 0.5, 0.1)
	if e.Probability != 0 {
		t.Fatalf("probability = %v, want 0 for a zero score", e.Probability)
	}
	if e.Low < 0 || e.High > 100 {
		t.Fatalf("band [%v, %v] out of range", e.Low, e.High)
	}
}

func TestEstimateZeroTimingIsNeutral(t *testing.T) {
	t.Parallel()

	withZero := EstimateAcceptance(60, CompetitionMedium, 0, 1.0)
	withOne := EstimateAcceptance(60, CompetitionMedium, 1.0, 1.0)
	if withZero.Probability != withOne.Probability {
		t.Fatalf("zero timing %v != neutral timing %v", withZero.Probability, withOne.Probability)
	}
}

func TestEstimateCompetitionOrdering(t *testing.T) {
	t.Parallel()

	high := EstimateAcceptance(60, CompetitionHigh, 1.0, 1.0)
	medium := EstimateAcceptance(60, CompetitionMedium, 1.0, 1.0)
	low := EstimateAcceptance(60, CompetitionLow, 1.0, 1.0)

	if !(high.Probability < medium.Probability && medium.Probability < low.Probability) {
		t.Fatalf("want high < medium < low, got %v, %v, %v",
			high.Probability, medium.Probability, low.Probability)
	}
}

func TestEstimateBandTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		completeness float64
		total        int
		min, max     float64
	}{
		{"complete profile high score", 1.0, 100, 5, 10},
		{"complete profile zero score", 1.0, 0, 5, 10},
		{"mid profile", 0.9, 50, 10, 15},
		{"sparse profile", 0.8, 50, 15, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := EstimateAcceptance(tc.total, CompetitionMedium, 1.0, tc.completeness)
			if e.HalfWidth < tc.min || e.HalfWidth > tc.max {
				t.Fatalf("half-width %v outside [%v, %v]", e.HalfWidth, tc.min, tc.max)
			}
		})
	}
}

func TestEstimateBandShrinksWithScore(t *testing.T) {
	t.Parallel()

	lowScore := EstimateAcceptance(20, CompetitionMedium, 1.0, 1.0)
	highScore := EstimateAcceptance(90, CompetitionMedium, 1.0, 1.0)
	if highScore.HalfWidth >= lowScore.HalfWidth {
		t.Fatalf("band should narrow with score: %v vs %v", highScore.HalfWidth, lowScore.HalfWidth)
	}
}

func TestTimingMultiplier(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		publishedAt string
		expected    float64
	}{
		{"fresh posting", now.Add(-2 * time.Hour).Format(time.RFC3339), timingMax},
		{"recent posting", now.Add(-3 * 24 * time.Hour).Format(time.RFC3339), 1.0},
		{"stale posting", now.Add(-10 * 24 * time.Hour).Format(time.RFC3339), timingMin},
		{"unknown", "", 1.0},
		{"unparseable", "yesterday", 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := TimingMultiplier(tc.publishedAt, now); got != tc.expected {
				t.Fatalf("multiplier = %v, want %v", got, tc.expected)
			}
		})
	}
}
