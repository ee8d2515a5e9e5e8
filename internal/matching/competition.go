package matching

import "strings"

// CompetitionClassifier supplies the competition tier for a posting. The
// derivation rule is deliberately pluggable; Heuristic is the built-in
// default.
type CompetitionClassifier interface {
	Classify(title, company, description string) CompetitionTier
}

// Heuristic classifies competition by counting brand and seniority
// indicators against accessibility indicators in the posting text.
type Heuristic struct{}

var highCompetitionTerms = []string{
	"google", "apple", "microsoft", "amazon", "meta", "netflix", "tesla",
	"senior", "lead", "principal", "architect",
	"machine learning", "artificial intelligence",
}

var lowCompetitionTerms = []string{
	"intern", "entry", "junior", "new grad", "trainee",
	"startup", "small company",
}

func (Heuristic) Classify(title, company, description string) CompetitionTier {
	text := strings.ToLower(title + " " + company + " " + description)

	high := 0
	for _, term := range highCompetitionTerms {
		if strings.Contains(text, term) {
			high++
		}
	}

	low := 0
	for _, term := range lowCompetitionTerms {
		if strings.Contains(text, term) {
			low++
		}
	}

	switch {
	case high > low:
		return CompetitionHigh
	case low > high:
		return CompetitionLow
	default:
		return CompetitionMedium
	}
}
