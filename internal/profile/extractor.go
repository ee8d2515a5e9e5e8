package profile

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/util"
)

// ErrInsufficientProfile is returned when the profile carries fewer than two
// non-empty attribute groups. Cycles must not be scheduled for such profiles.
var ErrInsufficientProfile = errors.New("profile has fewer than two non-empty attribute groups")

// FeatureSet is the normalized view of a profile consumed by scoring and
// query generation.
type FeatureSet struct {
	Skills          map[string]struct{}
	ExperienceLevel ExperienceLevel
	EducationLevel  EducationLevel
	YearsExperience float64
	Projects        int
	GPA             float64
	// Completeness is 0.8 + 0.2 * nonEmptyGroups/4, bounded to [0.8, 1.0].
	Completeness float64
}

// HasSkill reports whether the normalized token is present in the skill set.
func (fs *FeatureSet) HasSkill(token string) bool {
	_, ok := fs.Skills[util.NormalizeToken(token)]
	return ok
}

// SortedSkills returns the skill tokens in lexical order. Query generation
// depends on this for determinism.
func (fs *FeatureSet) SortedSkills() []string {
	skills := make([]string, 0, len(fs.Skills))
	for s := range fs.Skills {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}

// Categories returns the catalog categories covered by the skill set, in
// catalog order.
func (fs *FeatureSet) Categories() []string {
	var categories []string
	for _, category := range CatalogCategories {
		for _, tech := range TechSkills[category] {
			if _, ok := fs.Skills[tech]; ok {
				categories = append(categories, category)
				break
			}
		}
	}
	return categories
}

// Extract derives the FeatureSet from a profile. It fails with
// ErrInsufficientProfile when fewer than two of the four attribute groups
// (skills, education, experience, projects) are populated.
func Extract(p *Profile) (*FeatureSet, error) {
	if p == nil {
		return nil, ErrInsufficientProfile
	}

	groups := 0
	for _, nonEmpty := range []bool{
		len(p.Skills) > 0,
		len(p.Education) > 0,
		len(p.Experience) > 0,
		len(p.Projects) > 0,
	} {
		if nonEmpty {
			groups++
		}
	}
	if groups < 2 {
		return nil, ErrInsufficientProfile
	}

	fs := &FeatureSet{
		Skills:       make(map[string]struct{}, len(p.Skills)),
		GPA:          p.GPA,
		Projects:     len(p.Projects),
		Completeness: 0.8 + 0.2*float64(groups)/4,
	}

	for _, skill := range p.Skills {
		if token := util.NormalizeToken(skill); token != "" {
			fs.Skills[token] = struct{}{}
		}
	}

	fs.YearsExperience = totalYears(p.Experience)
	fs.ExperienceLevel = experienceLevelFor(fs.YearsExperience, len(p.Experience))
	fs.EducationLevel = highestEducation(p.Education)

	return fs, nil
}

// experienceLevelFor derives the seniority tag from total duration and record
// count. Thresholds extend the original three-year mid-level cutoff.
func experienceLevelFor(years float64, records int) ExperienceLevel {
	switch {
	case years >= 6:
		return ExperienceSenior
	case years >= 3 || records >= 4:
		return ExperienceMid
	default:
		return ExperienceEntry
	}
}

// totalYears sums experience durations. Durations look like
// "2024/07 – 2025/08"; a record that cannot be parsed counts as three months.
func totalYears(records []ExperienceRecord) float64 {
	totalMonths := 0
	for _, rec := range records {
		totalMonths += durationMonths(rec.Duration)
	}
	return float64(totalMonths) / 12
}

func durationMonths(duration string) int {
	const fallback = 3

	duration = strings.ReplaceAll(duration, "–", "-")
	parts := strings.SplitN(duration, "-", 2)
	if len(parts) != 2 {
		return fallback
	}

	startYear, startMonth, ok := parseYearMonth(parts[0])
	if !ok {
		return fallback
	}
	endYear, endMonth, ok := parseYearMonth(parts[1])
	if !ok {
		return fallback
	}

	months := (endYear-startYear)*12 + (endMonth - startMonth)
	if months < 1 {
		return 1
	}
	return months
}

func parseYearMonth(s string) (year, month int, ok bool) {
	fields := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(fields) != 2 {
		return 0, 0, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

// highestEducation picks the highest degree completed or in progress. Degree
// strings are keyword-matched; an explicit level field wins when parseable.
func highestEducation(records []EducationRecord) EducationLevel {
	highest := EducationNone
	for _, rec := range records {
		level := educationLevelOf(rec)
		if level.Ordinal() > highest.Ordinal() {
			highest = level
		}
	}
	return highest
}

func educationLevelOf(rec EducationRecord) EducationLevel {
	if level, err := ParseEducationLevel(strings.TrimSpace(rec.Level)); err == nil {
		return level
	}

	degree := strings.ToLower(rec.Degree)
	switch {
	case strings.Contains(degree, "phd") || strings.Contains(degree, "doctorate"):
		return EducationPhD
	case strings.Contains(degree, "master") || strings.Contains(degree, "msc"):
		return EducationMaster
	case strings.Contains(degree, "bachelor") || strings.Contains(degree, "license") ||
		strings.Contains(degree, "engineering") || strings.Contains(degree, "bsc"):
		return EducationBachelor
	case strings.Contains(degree, "preparatory") || strings.Contains(degree, "baccalaureate") ||
		strings.Contains(degree, "high school"):
		return EducationHighSchool
	default:
		if degree != "" {
			// Some unrecognised degree still counts as schooling.
			return EducationHighSchool
		}
		return EducationNone
	}
}
