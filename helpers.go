package blogtok

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PageURL returns the URL of a front end page with an optional query.
func PageURL(base, page string, query url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, page)
	u.RawQuery = query.Encode()
	return u.String()
}

// ArticleURL returns the reader page URL for an article.
func ArticleURL(base string, id int64) string {
	return PageURL(base, "article-reader.html", url.Values{"id": {strconv.FormatInt(id, 10)}})
}

// parseTimestamp reads a stored created_at value. Rows written by older
// tools may use the plain SQLite CURRENT_TIMESTAMP form.
func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
