package matching

import "time"

// CompetitionTier classifies how contested a posting is. It is an external
// input to the estimator; Heuristic provides the default classifier.
type CompetitionTier string

const (
	CompetitionHigh   CompetitionTier = "high"
	CompetitionMedium CompetitionTier = "medium"
	CompetitionLow    CompetitionTier = "low"
)

// Multiplier returns the probability adjustment for the tier. Unknown tiers
// behave as medium.
func (t CompetitionTier) Multiplier() float64 {
	switch t {
	case CompetitionHigh:
		return 0.8
	case CompetitionLow:
		return 1.2
	default:
		return 1.0
	}
}

// DefaultProbabilityCeiling is the realism cap: no estimate ever exceeds it.
const DefaultProbabilityCeiling = 0.85

const (
	timingMin = 0.9
	timingMax = 1.15

	completenessMin = 0.8
	completenessMax = 1.0
)

// bandTiers are the confidence half-width ranges (in score points) keyed by
// profile completeness. Within a tier the half-width shrinks linearly with
// the compatibility total.
var bandTiers = []struct {
	minCompleteness float64
	min, max        float64
}{
	{0.95, 5, 10},
	{0.875, 10, 15},
	{0, 15, 25},
}

// Estimate is a bounded acceptance probability with its confidence band.
// Probability is a fraction in [0, ceiling]; the band bounds are expressed
// in score points on the 0-100 scale.
type Estimate struct {
	Probability float64
	HalfWidth   float64
	Low         float64
	High        float64
}

// EstimateAcceptance computes the probability with the default ceiling.
// Out-of-range inputs are clamped, never rejected.
func EstimateAcceptance(total int, tier CompetitionTier, timing, completeness float64) Estimate {
	return EstimateAcceptanceWith(total, tier, timing, completeness, DefaultProbabilityCeiling)
}

// EstimateAcceptanceWith computes the probability with an explicit ceiling.
func EstimateAcceptanceWith(total int, tier CompetitionTier, timing, completeness, ceiling float64) Estimate {
	total = clampScore(total)

	if timing == 0 {
		timing = 1.0
	}
	timing = clampFloat(timing, timingMin, timingMax)
	completeness = clampFloat(completeness, completenessMin, completenessMax)
	if ceiling <= 0 || ceiling > DefaultProbabilityCeiling {
		ceiling = DefaultProbabilityCeiling
	}

	probability := float64(total) / 100 * tier.Multiplier() * timing * completeness
	probability = clampFloat(probability, 0, ceiling)

	halfWidth := bandHalfWidth(total, completeness)

	return Estimate{
		Probability: probability,
		HalfWidth:   halfWidth,
		Low:         clampFloat(probability*100-halfWidth, 0, 100),
		High:        clampFloat(probability*100+halfWidth, 0, 100),
	}
}

func bandHalfWidth(total int, completeness float64) float64 {
	for _, tier := range bandTiers {
		if completeness >= tier.minCompleteness {
			return tier.max - (tier.max-tier.min)*float64(total)/100
		}
	}
	return bandTiers[len(bandTiers)-1].max
}

// TimingMultiplier derives the application-timing factor from the posting's
// publication time: within a day of publication counts as early, older than
// a week as late, unknown as neutral.
func TimingMultiplier(publishedAt string, now time.Time) float64 {
	if publishedAt == "" {
		return 1.0
	}

	published, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return 1.0
	}

	age := now.Sub(published)
	switch {
	case age <= 24*time.Hour:
		return timingMax
	case age > 7*24*time.Hour:
		return timingMin
	default:
		return 1.0
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
