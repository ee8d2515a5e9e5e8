package matching

import (
	"testing"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
)

func TestExtractRequirements(t *testing.T) {
	t.Parallel()

	desc := "We need 3+ years of experience. Required skills: python and sql are essential. " +
		"Our teams ship analytics features for clients in several industries, with quarterly " +
		"releases and a calm review culture. " +
		"Familiarity with docker is a plus. Bachelor degree in computer science."

	req := ExtractRequirements("Backend Developer", desc)

	if req.MinYears != 3 {
		t.Fatalf("min years = %d, want 3", req.MinYears)
	}
	if req.Experience != profile.ExperienceMid {
		t.Fatalf("experience = %q, want mid for 3 years", req.Experience)
	}
	if req.Education != profile.EducationBachelor {
		t.Fatalf("education = %q, want bachelor", req.Education)
	}
	if len(req.Required) == 0 {
		t.Fatal("expected required skills near the essential wording")
	}
	for _, s := range req.Required {
		if s == "docker" {
			t.Fatal("docker mentioned as a plus should not be required")
		}
	}
}

func TestExtractRequirementsEmpty(t *testing.T) {
	t.Parallel()

	req := ExtractRequirements("", "")

	if req.Education != profile.EducationNone {
		t.Fatalf("education = %q, want none", req.Education)
	}
	if req.Experience != profile.ExperienceEntry {
		t.Fatalf("experience = %q, want entry", req.Experience)
	}
	if len(req.Required) != 0 || len(req.Preferred) != 0 {
		t.Fatalf("want no skills, got %v / %v", req.Required, req.Preferred)
	}
}

func TestExtractRequirementsTitleLevels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title    string
		expected profile.ExperienceLevel
	}{
		{"Senior Software Engineer", profile.ExperienceSenior},
		{"Lead Data Scientist", profile.ExperienceSenior},
		{"Mid-level Developer", profile.ExperienceMid},
		{"Software Engineering Intern", profile.ExperienceEntry},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			t.Parallel()

			req := ExtractRequirements(tc.title, "some description")
			if req.Experience != tc.expected {
				t.Fatalf("experience = %q, want %q", req.Experience, tc.expected)
			}
		})
	}
}

func TestExtractRequirementsEducationLevels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		desc     string
		expected profile.EducationLevel
	}{
		{"phd", "PhD in machine learning required", profile.EducationPhD},
		{"master", "Master degree preferred", profile.EducationMaster},
		{"bachelor", "Bachelor of computer science", profile.EducationBachelor},
		{"generic degree", "A degree in a technical field", profile.EducationBachelor},
		{"none mentioned", "Just come and code", profile.EducationNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := ExtractRequirements("Intern", tc.desc)
			if req.Education != tc.expected {
				t.Fatalf("education = %q, want %q", req.Education, tc.expected)
			}
		})
	}
}

func TestClassifyCompetition(t *testing.T) {
	t.Parallel()

	var h Heuristic

	cases := []struct {
		name     string
		title    string
		company  string
		desc     string
		expected CompetitionTier
	}{
		{"big tech senior", "Senior ML Engineer", "Google", "machine learning at scale", CompetitionHigh},
		{"startup internship", "Software Intern", "Tiny Startup", "entry level, new grad welcome", CompetitionLow},
		{"neutral", "Software Engineer", "Acme Corp", "build things", CompetitionMedium},
		{"mixed leans low", "Junior Intern", "Amazon", "trainee program for new grads", CompetitionLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := h.Classify(tc.title, tc.company, tc.desc); got != tc.expected {
				t.Fatalf("tier = %q, want %q", got, tc.expected)
			}
		})
	}
}
