package profile

import (
	"errors"
	"testing"
)

func fullProfile() *Profile {
	return &Profile{
		Skills: []string{"Python", "  SQL ", "docker"},
		Education: []EducationRecord{
			{Degree: "Bachelor of Science in Computer Science", Institution: "TU"},
		},
		Experience: []ExperienceRecord{
			{Role: "Intern", Organization: "Acme", Duration: "2024/07 – 2025/08"},
		},
		Projects: []ProjectRecord{
			{Title: "Scraper", Technologies: []string{"python"}},
		},
		GPA: 3.6,
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	fs, err := Extract(fullProfile())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	for _, skill := range []string{"python", "sql", "docker"} {
		if !fs.HasSkill(skill) {
			t.Fatalf("skill %q missing from feature set", skill)
		}
	}
	if !fs.HasSkill("PYTHON") {
		t.Fatal("skill lookup should be case-insensitive")
	}

	if fs.EducationLevel != EducationBachelor {
		t.Fatalf("education = %q, want bachelor", fs.EducationLevel)
	}
	if fs.ExperienceLevel != ExperienceEntry {
		t.Fatalf("experience = %q, want entry for 13 months", fs.ExperienceLevel)
	}
	if fs.Projects != 1 || fs.GPA != 3.6 {
		t.Fatalf("projects=%d gpa=%v, want 1 and 3.6", fs.Projects, fs.GPA)
	}
	if fs.Completeness != 1.0 {
		t.Fatalf("completeness = %v, want 1.0 for all four groups", fs.Completeness)
	}
}

func TestExtractInsufficientProfile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		prof *Profile
	}{
		{"nil", nil},
		{"empty", &Profile{}},
		{"single group", &Profile{Skills: []string{"python"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Extract(tc.prof); !errors.Is(err, ErrInsufficientProfile) {
				t.Fatalf("err = %v, want ErrInsufficientProfile", err)
			}
		})
	}
}

func TestExtractCompleteness(t *testing.T) {
	t.Parallel()

	fs, err := Extract(&Profile{
		Skills:    []string{"python"},
		Education: []EducationRecord{{Degree: "BSc"}},
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if fs.Completeness != 0.9 {
		t.Fatalf("completeness = %v, want 0.9 for two groups", fs.Completeness)
	}
}

func TestExperienceLevelThresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		years    float64
		records  int
		expected ExperienceLevel
	}{
		{"fresh graduate", 0, 0, ExperienceEntry},
		{"one internship", 1, 1, ExperienceEntry},
		{"three years", 3, 2, ExperienceMid},
		{"many short stints", 1, 4, ExperienceMid},
		{"six years", 6, 3, ExperienceSenior},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := experienceLevelFor(tc.years, tc.records); got != tc.expected {
				t.Fatalf("level = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestDurationMonths(t *testing.T) {
	t.Parallel()

	cases := []struct {
		duration string
		expected int
	}{
		{"2024/07 – 2025/08", 13},
		{"2024/07 - 2024/09", 2},
		{"2024/07 - 2024/07", 1},
		{"Summer 2024", 3},
		{"", 3},
	}

	for _, tc := range cases {
		t.Run(tc.duration, func(t *testing.T) {
			t.Parallel()

			if got := durationMonths(tc.duration); got != tc.expected {
				t.Fatalf("months = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestHighestEducation(t *testing.T) {
	t.Parallel()

	records := []EducationRecord{
		{Degree: "Baccalaureate"},
		{Degree: "Engineering degree in CS", InProgress: true},
		{Degree: "Master of Science", InProgress: true},
	}

	if got := highestEducation(records); got != EducationMaster {
		t.Fatalf("level = %q, want master", got)
	}
}

func TestEducationLevelOfExplicitLevelWins(t *testing.T) {
	t.Parallel()

	rec := EducationRecord{Degree: "Something Unusual", Level: "phd"}
	if got := educationLevelOf(rec); got != EducationPhD {
		t.Fatalf("level = %q, want phd from the explicit field", got)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	fs, err := Extract(&Profile{
		Skills:    []string{"react", "postgresql"},
		Education: []EducationRecord{{Degree: "BSc"}},
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	categories := fs.Categories()
	if len(categories) != 2 {
		t.Fatalf("categories = %v, want web_frameworks and databases", categories)
	}
}
