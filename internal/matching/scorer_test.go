package matching

import (
	"testing"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
)

func featureSet(skills ...string) *profile.FeatureSet {
	fs := &profile.FeatureSet{
		Skills:          make(map[string]struct{}),
		ExperienceLevel: profile.ExperienceEntry,
		EducationLevel:  profile.EducationBachelor,
		Completeness:    1.0,
	}
	for _, s := range skills {
		fs.Skills[s] = struct{}{}
	}
	return fs
}

func TestScorePartialSkillMatch(t *testing.T) {
	t.Parallel()

	req := Requirements{
		Required:   []string{"python", "react", "kubernetes"},
		Education:  profile.EducationBachelor,
		Experience: profile.ExperienceEntry,
	}
	fs := featureSet("python", "react")

	b := Score(req, fs)

	if b.Technical != 67 {
		t.Fatalf("technical score = %d, want 67 for a 2/3 match", b.Technical)
	}
	if b.Education != 100 {
		t.Fatalf("education score = %d, want 100 when level is met", b.Education)
	}
	if b.Total < 0 || b.Total > 100 {
		t.Fatalf("total %d out of range", b.Total)
	}
}

func TestScoreNoSkillsListed(t *testing.T) {
	t.Parallel()

	req := Requirements{Education: profile.EducationNone, Experience: profile.ExperienceEntry}
	b := Score(req, featureSet())

	if b.Technical != 85 {
		t.Fatalf("technical score = %d, want the 85 benefit of the doubt", b.Technical)
	}
}

func TestScorePreferredBonusCapped(t *testing.T) {
	t.Parallel()

	req := Requirements{
		Required:   []string{"python"},
		Preferred:  []string{"react", "vue", "angular", "django"},
		Education:  profile.EducationNone,
		Experience: profile.ExperienceEntry,
	}
	fs := featureSet("python", "react", "vue", "angular", "django")

	b := Score(req, fs)

	if b.Technical != 100 {
		t.Fatalf("technical score = %d, want 100 (full match plus capped bonus)", b.Technical)
	}
}

func TestScoreTechnicalMonotonicInOverlap(t *testing.T) {
	t.Parallel()

	req := Requirements{
		Required:   []string{"python", "react", "kubernetes", "sql"},
		Preferred:  []string{"docker", "aws", "terraform", "redis"},
		Education:  profile.EducationBachelor,
		Experience: profile.ExperienceEntry,
	}

	// Matching one more skill, everything else fixed, never lowers the
	// technical sub-score. The tail crosses the preferred-bonus cap.
	skills := []string{
		"python", "react", "kubernetes", "sql",
		"docker", "aws", "terraform", "redis",
	}

	prev := -1
	for n := 0; n <= len(skills); n++ {
		got := Score(req, featureSet(skills[:n]...)).Technical
		if got < prev {
			t.Fatalf("technical score dropped from %d to %d at %d matched skills",
				prev, got, n)
		}
		prev = got
	}
	if prev != 100 {
		t.Fatalf("full overlap scored %d, want 100", prev)
	}
}

func TestScoreExperienceGapPenalty(t *testing.T) {
	t.Parallel()

	fs := featureSet("python")
	fs.ExperienceLevel = profile.ExperienceEntry

	entry := ScoreWith(Requirements{Experience: profile.ExperienceEntry}, fs, DefaultWeights)
	senior := ScoreWith(Requirements{Experience: profile.ExperienceSenior}, fs, DefaultWeights)

	if senior.Experience >= entry.Experience {
		t.Fatalf("senior requirement scored %d, entry %d; want a penalty for the gap",
			senior.Experience, entry.Experience)
	}
	if entry.Experience != 100 {
		t.Fatalf("matched level scored %d, want 100", entry.Experience)
	}
}

func TestScoreProjectBonusCapped(t *testing.T) {
	t.Parallel()

	fs := featureSet()
	fs.ExperienceLevel = profile.ExperienceEntry
	fs.Projects = 20

	b := Score(Requirements{Experience: profile.ExperienceEntry}, fs)

	if b.Experience != 100 {
		t.Fatalf("experience score = %d, want bonus clamped at 100", b.Experience)
	}
}

func TestScoreEducationGaps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		have     profile.EducationLevel
		need     profile.EducationLevel
		expected int
	}{
		{"meets requirement", profile.EducationMaster, profile.EducationMaster, 100},
		{"exceeds requirement", profile.EducationPhD, profile.EducationBachelor, 100},
		{"one level short", profile.EducationBachelor, profile.EducationMaster, 70},
		{"two levels short", profile.EducationBachelor, profile.EducationPhD, 45},
		{"far short", profile.EducationHighSchool, profile.EducationPhD, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fs := featureSet()
			fs.EducationLevel = tc.have

			b := Score(Requirements{Education: tc.need, Experience: profile.ExperienceEntry}, fs)
			if b.Education != tc.expected {
				t.Fatalf("education score = %d, want %d", b.Education, tc.expected)
			}
		})
	}
}

func TestScoreGPABonus(t *testing.T) {
	t.Parallel()

	fs := featureSet()
	fs.EducationLevel = profile.EducationBachelor
	fs.GPA = 3.8

	b := Score(Requirements{Education: profile.EducationMaster, Experience: profile.ExperienceEntry}, fs)
	if b.Education != 75 {
		t.Fatalf("education score = %d, want 70 + 5 GPA bonus", b.Education)
	}
}

func TestScoreDeterministic(t *testing.T) {
	t.Parallel()

	req := ExtractRequirements("Python Developer Intern",
		"Required: python and sql. Nice to have: docker. 2 years of experience. Bachelor degree.")
	fs := featureSet("python", "docker")
	fs.Projects = 3

	first := Score(req, fs)
	for i := 0; i < 10; i++ {
		if got := Score(req, fs); got != first {
			t.Fatalf("score differs across runs: %+v vs %+v", got, first)
		}
	}
}
