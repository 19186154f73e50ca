package search

import "strings"

// Relevance weights.
const (
	TitleWeight      = 10
	ExactTitleWeight = 20
	ExcerptWeight    = 5
	ContentWeight    = 3
)

// Score returns the additive relevance of the query against f.
// An exact (case-insensitive) title match earns ExactTitleWeight on top of
// TitleWeight. Score is zero exactly when Matches is false.
func (m *Matcher) Score(f Fields) int {
	score := 0
	if m.contains(f.Title) {
		score += TitleWeight
		// EqualFold folds the way the (?i) pattern does.
		if strings.EqualFold(f.Title, m.query) {
			score += ExactTitleWeight
		}
	}
	if m.contains(f.Excerpt) {
		score += ExcerptWeight
	}
	if m.contains(f.Content) {
		score += ContentWeight
	}
	return score
}

// Score returns the additive relevance of query against f.
func Score(f Fields, query string) int {
	return Compile(query).Score(f)
}
