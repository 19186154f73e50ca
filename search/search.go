// Package search implements the substring matching, relevance scoring and
// highlighting used by the article search endpoint.
//
// Matching is plain case-insensitive substring containment over an
// article's title, excerpt and content. There is no tokenization or
// stemming.
package search

import "regexp"

// Fields holds the searchable text of a single article.
// An empty Excerpt means the article has none.
type Fields struct {
	Title   string
	Excerpt string
	Content string
}

// Tier buckets a match by the strongest field it occurred in.
type Tier int

const (
	TierTitle   Tier = 1
	TierExcerpt Tier = 2
	TierOther   Tier = 3
)

// Matcher is a compiled query. Matching, scoring and highlighting share one
// literal, case-insensitive pattern, so a field that counts as a hit is
// always one the highlighter marks.
type Matcher struct {
	query string
	re    *regexp.Regexp
}

// Compile prepares query for matching. The query is used as given,
// surrounding whitespace included. An empty query, or one that is not
// valid UTF-8, matches nothing.
func Compile(query string) *Matcher {
	m := &Matcher{query: query}
	if query == "" {
		return m
	}
	if re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query)); err == nil {
		m.re = re
	}
	return m
}

func (m *Matcher) contains(s string) bool {
	return m.re != nil && s != "" && m.re.MatchString(s)
}

// Matches reports whether the query occurs in the title, excerpt or content.
func (m *Matcher) Matches(f Fields) bool {
	return m.contains(f.Title) || m.contains(f.Excerpt) || m.contains(f.Content)
}

// Tier returns the ordering bucket for a candidate.
// Content-only matches land in TierOther.
func (m *Matcher) Tier(f Fields) Tier {
	switch {
	case m.contains(f.Title):
		return TierTitle
	case m.contains(f.Excerpt):
		return TierExcerpt
	default:
		return TierOther
	}
}

// Matches reports whether query occurs in the title, excerpt or content.
func Matches(f Fields, query string) bool {
	return Compile(query).Matches(f)
}

// TierOf returns the ordering bucket for a candidate.
func TierOf(f Fields, query string) Tier {
	return Compile(query).Tier(f)
}

// Excerpt returns the first n runes of s.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
