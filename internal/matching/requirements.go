// Package matching computes compatibility scores and acceptance-probability
// estimates for a posting against a profile FeatureSet. Everything here is
// pure: identical inputs always yield identical outputs.
package matching

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
)

// Requirements are the matching-relevant facts derived from a posting's
// title and description. They are persisted on the posting for
// explainability.
type Requirements struct {
	Required   []string
	Preferred  []string
	Education  profile.EducationLevel
	Experience profile.ExperienceLevel
	MinYears   int
}

var (
	yearsPattern     = regexp.MustCompile(`(\d+)\s*\+?\s*years?\s*(of\s*)?(experience|exp)`)
	educationPattern = regexp.MustCompile(`bachelor|master|phd|degree|computer science|engineering`)
	requiredPattern  = regexp.MustCompile(`required|must have|essential|mandatory`)
)

var (
	seniorTerms = []string{"senior", "lead", "principal", "architect", "5+ years", "expert"}
	midTerms    = []string{"mid", "intermediate", "experienced", "2-3 years", "3-5 years"}
)

// ExtractRequirements derives Requirements from free text. Missing or
// malformed fields degrade to empty sets and unknown levels; the function
// never fails.
func ExtractRequirements(title, description string) Requirements {
	req := Requirements{
		Education:  profile.EducationNone,
		Experience: profile.ExperienceEntry,
	}

	titleLower := strings.ToLower(title)
	descLower := strings.ToLower(description)
	if titleLower == "" && descLower == "" {
		return req
	}

	if m := yearsPattern.FindStringSubmatch(descLower); m != nil {
		if years, err := strconv.Atoi(m[1]); err == nil {
			req.MinYears = years
		}
	}

	req.Experience = experienceFromText(titleLower, req.MinYears)
	req.Education = educationFromText(descLower)
	req.Required, req.Preferred = skillsFromText(descLower)

	return req
}

func experienceFromText(title string, minYears int) profile.ExperienceLevel {
	for _, term := range seniorTerms {
		if strings.Contains(title, term) {
			return profile.ExperienceSenior
		}
	}
	for _, term := range midTerms {
		if strings.Contains(title, term) {
			return profile.ExperienceMid
		}
	}
	switch {
	case minYears >= 5:
		return profile.ExperienceSenior
	case minYears >= 2:
		return profile.ExperienceMid
	default:
		return profile.ExperienceEntry
	}
}

func educationFromText(desc string) profile.EducationLevel {
	if !educationPattern.MatchString(desc) {
		return profile.EducationNone
	}
	switch {
	case strings.Contains(desc, "phd") || strings.Contains(desc, "doctorate"):
		return profile.EducationPhD
	case strings.Contains(desc, "master"):
		return profile.EducationMaster
	default:
		return profile.EducationBachelor
	}
}

// skillsFromText finds catalog technologies in the description and splits
// them into required and preferred by the wording around each mention.
func skillsFromText(desc string) (required, preferred []string) {
	seen := make(map[string]struct{})
	for _, category := range profile.CatalogCategories {
		for _, tech := range profile.TechSkills[category] {
			if !containsToken(desc, tech) {
				continue
			}
			if _, ok := seen[tech]; ok {
				continue
			}
			seen[tech] = struct{}{}

			if requiredPattern.MatchString(skillContext(desc, tech)) {
				required = append(required, tech)
			} else {
				preferred = append(preferred, tech)
			}
		}
	}
	sort.Strings(required)
	sort.Strings(preferred)
	return required, preferred
}

// containsToken matches the skill on word boundaries. Short catalog entries
// like "r" or "go" would otherwise match inside arbitrary words.
func containsToken(text, token string) bool {
	for pos := 0; pos <= len(text)-len(token); {
		i := strings.Index(text[pos:], token)
		if i == -1 {
			return false
		}
		i += pos

		end := i + len(token)
		before := i == 0 || !isWordChar(text[i-1])
		after := end == len(text) || !isWordChar(text[end])
		if before && after {
			return true
		}
		pos = i + 1
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// skillContext returns a window of text around the first mention of the
// skill, used to decide required vs preferred.
func skillContext(text, skill string) string {
	const window = 100

	pos := strings.Index(text, skill)
	if pos == -1 {
		return ""
	}

	start := pos - window
	if start < 0 {
		start = 0
	}
	end := pos + len(skill) + window
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
