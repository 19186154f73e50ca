package blogtok

import (
	"context"
	"sort"
	"strings"

	"github.com/eringen/blogtok/search"
)

const (
	// DefaultSearchLimit caps results when the query gives no positive limit.
	DefaultSearchLimit = 50

	// excerptRunes is how much content stands in for a missing excerpt.
	excerptRunes = 200

	allCategories = "all"
)

// Search finds articles whose title, excerpt or content contains the query,
// ranks them by where the match occurs and annotates each result with a
// relevance score and highlighted fields.
func (a *App) Search(ctx context.Context, q SearchQuery) (SearchResponse, error) {
	// Whitespace only counts for the blank check; the query is matched
	// exactly as given.
	if strings.TrimSpace(q.Query) == "" {
		return SearchResponse{}, validationf("search query is required")
	}
	m := search.Compile(q.Query)
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	category := q.Category
	if category == "" {
		category = allCategories
	}

	articles, err := a.Cache.ArticlesWithCategory(ctx)
	if err != nil {
		return SearchResponse{}, err
	}

	type candidate struct {
		article Article
		fields  search.Fields
		tier    search.Tier
	}
	var matched []candidate
	for _, art := range articles {
		if category != allCategories && (art.CategoryName == nil || *art.CategoryName != category) {
			continue
		}
		f := fieldsOf(art)
		if !m.Matches(f) {
			continue
		}
		matched = append(matched, candidate{article: art, fields: f, tier: m.Tier(f)})
	}

	// articles arrive newest first (created_at DESC, id DESC), so a stable
	// sort on tier keeps recency as the tie-breaker.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].tier < matched[j].tier
	})

	resp := SearchResponse{
		Query:    q.Query,
		Category: category,
		Matched:  len(matched),
		Results:  []SearchResult{},
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	for _, c := range matched {
		excerpt := c.fields.Excerpt
		if excerpt == "" {
			excerpt = search.Excerpt(c.fields.Content, excerptRunes)
		}
		resp.Results = append(resp.Results, SearchResult{
			Article:            c.article,
			RelevanceScore:     m.Score(c.fields),
			HighlightedTitle:   m.Highlight(c.fields.Title),
			HighlightedExcerpt: m.Highlight(excerpt),
		})
	}
	resp.Total = len(resp.Results)
	return resp, nil
}

func fieldsOf(a Article) search.Fields {
	f := search.Fields{Title: a.Title, Content: a.Content}
	if a.Excerpt != nil {
		f.Excerpt = *a.Excerpt
	}
	return f
}
