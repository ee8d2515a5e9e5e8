package profile

import "fmt"

// ExperienceLevel is the ordinal seniority scale used by scoring:
// entry < mid < senior.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// Ordinal returns the position on the entry<mid<senior scale. Unknown values
// map to entry, the worst-case assumption for scoring.
func (l ExperienceLevel) Ordinal() int {
	switch l {
	case ExperienceMid:
		return 1
	case ExperienceSenior:
		return 2
	default:
		return 0
	}
}

// ParseExperienceLevel converts a raw string to an ExperienceLevel, returning
// an error for unknown values.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	l := ExperienceLevel(s)
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior:
		return l, nil
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// EducationLevel is the ordinal degree scale:
// none < high_school < bachelor < master < phd.
type EducationLevel string

const (
	EducationNone       EducationLevel = "none"
	EducationHighSchool EducationLevel = "high_school"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationPhD        EducationLevel = "phd"
)

func (l EducationLevel) Ordinal() int {
	switch l {
	case EducationHighSchool:
		return 1
	case EducationBachelor:
		return 2
	case EducationMaster:
		return 3
	case EducationPhD:
		return 4
	default:
		return 0
	}
}

// ParseEducationLevel converts a raw string to an EducationLevel, returning
// an error for unknown values.
func ParseEducationLevel(s string) (EducationLevel, error) {
	l := EducationLevel(s)
	switch l {
	case EducationNone, EducationHighSchool, EducationBachelor, EducationMaster, EducationPhD:
		return l, nil
	}
	return "", fmt.Errorf("unknown education level %q", s)
}
