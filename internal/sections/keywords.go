package sections

// Heading keyword sets per CV field. Matching is case-insensitive substring
// search over whole lines: the first line containing any field keyword opens
// that field, and the next line containing any global keyword closes it.
var (
	experienceKeywords   = []string{"experience", "work experience", "employment"}
	educationKeywords    = []string{"education", "academic", "university"}
	skillsKeywords       = []string{"skills", "technologies", "technical skills"}
	projectsKeywords     = []string{"projects", "personal projects"}
	achievementsKeywords = []string{"achievements", "awards", "accomplishments"}
	contactKeywords      = []string{"contact", "email", "phone"}
)

// globalKeywords is the union of every field set. Scan order is fixed, so
// overlapping keywords resolve by first match, not longest match.
var globalKeywords = concat(
	experienceKeywords,
	educationKeywords,
	skillsKeywords,
	projectsKeywords,
	achievementsKeywords,
	contactKeywords,
)

func concat(sets ...[]string) []string {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	return all
}
