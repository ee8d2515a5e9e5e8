package profile

// Query generation turns a FeatureSet into a bounded, deterministic sequence
// of search strings. Three strategies feed the list when the profile supports
// them: skill-based, category-based and level-based, with broad fallbacks
// when the profile yields too few specific queries.

const (
	defaultMaxQueries  = 5
	maxSkillQueries    = 3
	maxLevelQueries    = 2
	minSpecificQueries = 3
)

var levelQueries = map[ExperienceLevel][]string{
	ExperienceEntry:  {"software engineer intern", "junior developer intern"},
	ExperienceMid:    {"software engineer intern", "development intern"},
	ExperienceSenior: {"senior software intern", "engineering intern"},
}

var educationQueries = map[EducationLevel][]string{
	EducationBachelor: {"computer science intern"},
	EducationMaster:   {"graduate software intern"},
	EducationPhD:      {"research intern"},
}

var fallbackQueries = []string{
	"software intern",
	"technology intern",
	"computer science intern",
}

// GenerateQueries derives search queries from the FeatureSet. The output is
// deterministic for a given FeatureSet, every query is non-empty and the
// sequence length never exceeds maxQueries (default 5 when non-positive).
func GenerateQueries(fs *FeatureSet, maxQueries int) []string {
	if maxQueries <= 0 {
		maxQueries = defaultMaxQueries
	}

	var queries []string

	// Skill-based: top known programming languages, lexical order.
	languages := 0
	for _, skill := range fs.SortedSkills() {
		if languages == maxSkillQueries {
			break
		}
		if !isKnownLanguage(skill) || len(skill) <= 2 {
			continue
		}
		queries = append(queries, skill+" developer intern")
		languages++
	}

	// Category-based: map covered skill categories to a broad domain search.
	for _, category := range fs.Categories() {
		if domain, ok := CategoryDomain[category]; ok {
			queries = append(queries, domain)
		}
	}

	// Level-based: experience qualifiers first, then one education query.
	// Uncatalogued levels contribute nothing instead of panicking.
	if lq := levelQueries[fs.ExperienceLevel]; len(lq) > 0 {
		if len(lq) > maxLevelQueries {
			lq = lq[:maxLevelQueries]
		}
		queries = append(queries, lq...)
	}
	queries = append(queries, educationQueries[fs.EducationLevel]...)

	// Broad fallbacks when the profile yields too few specific searches.
	if len(queries) < minSpecificQueries {
		queries = append(queries, fallbackQueries...)
	}

	return dedupeQueries(queries, maxQueries)
}

func isKnownLanguage(skill string) bool {
	for _, lang := range TechSkills["programming_languages"] {
		if skill == lang {
			return true
		}
	}
	return false
}

func dedupeQueries(queries []string, limit int) []string {
	seen := make(map[string]struct{}, len(queries))
	unique := make([]string, 0, limit)
	for _, q := range queries {
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		unique = append(unique, q)
		if len(unique) == limit {
			break
		}
	}
	return unique
}
