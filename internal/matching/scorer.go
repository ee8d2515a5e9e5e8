package matching

import (
	"math"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
)

// Weights combine the three sub-scores into the total. Defaults follow the
// 40/35/25 split of the original engine.
type Weights struct {
	Technical  float64
	Experience float64
	Education  float64
}

var DefaultWeights = Weights{Technical: 0.40, Experience: 0.35, Education: 0.25}

// ScoreBreakdown carries the three sub-scores, the weights used to combine
// them, and the weighted total. All values sit in [0, 100].
type ScoreBreakdown struct {
	Technical  int
	Experience int
	Education  int
	Weights    Weights
	Total      int
}

const (
	// noSkillsListedScore is the benefit-of-the-doubt technical score for a
	// posting that lists no recognisable skills at all.
	noSkillsListedScore = 85

	preferredSkillBonus    = 5
	preferredSkillBonusCap = 15

	experienceStepPenalty = 35
	projectBonusPerItem   = 2
	projectBonusCap       = 10

	gpaBonus     = 5
	gpaThreshold = 3.5
)

// educationGapScores maps the ordinal distance by which the profile falls
// short of the required level to the sub-score.
var educationGapScores = map[int]int{1: 70, 2: 45}

const educationFloorScore = 30

// Score computes the breakdown with the default weights.
func Score(req Requirements, fs *profile.FeatureSet) ScoreBreakdown {
	return ScoreWith(req, fs, DefaultWeights)
}

// ScoreWith computes the breakdown with explicit weights. Pure and total:
// missing posting fields degrade to empty sets and unknown levels.
func ScoreWith(req Requirements, fs *profile.FeatureSet, w Weights) ScoreBreakdown {
	b := ScoreBreakdown{
		Technical:  technicalScore(req, fs),
		Experience: experienceScore(req, fs),
		Education:  educationScore(req, fs),
		Weights:    w,
	}

	total := w.Technical*float64(b.Technical) +
		w.Experience*float64(b.Experience) +
		w.Education*float64(b.Education)
	b.Total = clampScore(int(math.Round(total)))

	return b
}

// technicalScore is the matched-required ratio scaled to 0-100, plus a small
// bonus per matched preferred skill (bonus capped at 15, result at 100).
func technicalScore(req Requirements, fs *profile.FeatureSet) int {
	if len(req.Required) == 0 && len(req.Preferred) == 0 {
		return noSkillsListedScore
	}

	base := float64(noSkillsListedScore)
	if len(req.Required) > 0 {
		matched := 0
		for _, skill := range req.Required {
			if fs.HasSkill(skill) {
				matched++
			}
		}
		base = 100 * float64(matched) / float64(len(req.Required))
	}

	bonus := 0
	for _, skill := range req.Preferred {
		if fs.HasSkill(skill) {
			bonus += preferredSkillBonus
		}
	}
	if bonus > preferredSkillBonusCap {
		bonus = preferredSkillBonusCap
	}

	return clampScore(int(math.Round(base)) + bonus)
}

// experienceScore penalises each ordinal step of distance between the
// posting's level and the profile's level, then rewards applied project work.
func experienceScore(req Requirements, fs *profile.FeatureSet) int {
	steps := req.Experience.Ordinal() - fs.ExperienceLevel.Ordinal()
	if steps < 0 {
		steps = -steps
	}

	score := 100 - experienceStepPenalty*steps
	if score < 0 {
		score = 0
	}

	bonus := projectBonusPerItem * fs.Projects
	if bonus > projectBonusCap {
		bonus = projectBonusCap
	}

	return clampScore(score + bonus)
}

// educationScore is 100 when the profile meets or exceeds the required
// level; otherwise a graduated penalty by ordinal distance.
func educationScore(req Requirements, fs *profile.FeatureSet) int {
	gap := req.Education.Ordinal() - fs.EducationLevel.Ordinal()

	score := educationFloorScore
	if gap <= 0 {
		score = 100
	} else if s, ok := educationGapScores[gap]; ok {
		score = s
	}

	if fs.GPA >= gpaThreshold {
		score += gpaBonus
	}

	return clampScore(score)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
