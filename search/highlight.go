package search

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// Highlight wraps every occurrence of the query in text with
// <mark></mark>, keeping the original casing of the matched span. Matches
// are found left to right and do not overlap.
//
// Highlight is not idempotent: running it over its own output wraps the
// matches again.
func (m *Matcher) Highlight(text string) string {
	if text == "" || m.re == nil {
		return text
	}
	return m.re.ReplaceAllStringFunc(text, func(s string) string {
		return markOpen + s + markClose
	})
}

// Highlight wraps every case-insensitive occurrence of query in text with
// <mark></mark>. The query is matched literally.
func Highlight(text, query string) string {
	return Compile(query).Highlight(text)
}
