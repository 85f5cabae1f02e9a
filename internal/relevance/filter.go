package relevance

import "strings"

// DefaultKeywords targets Jim Cramer coverage. The set is configuration, not
// a constant of the system: substituting keywords retargets the whole pipeline
// to a different figure or show.
var DefaultKeywords = []string{
	"cramer",
	"jim cramer",
	"mad money",
	"lightning round",
}

// Filter is a stateless keyword predicate over an article's title and
// description. Matching is case-insensitive substring.
type Filter struct {
	keywords []string
}

// New builds a Filter from the given keyword set. Empty and whitespace-only
// keywords are dropped; an empty set falls back to DefaultKeywords.
func New(keywords []string) *Filter {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		for _, k := range DefaultKeywords {
			cleaned = append(cleaned, strings.ToLower(k))
		}
	}
	return &Filter{keywords: cleaned}
}

// Match reports whether title or description contains any configured keyword.
func (f *Filter) Match(title, description string) bool {
	haystack := strings.ToLower(title) + " " + strings.ToLower(description)
	for _, k := range f.keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}
