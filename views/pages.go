// Package views holds the templ components that render HTML responses:
// branded front end pages and the error pages.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Placeholder brand strings baked into the front end HTML files.
var (
	brandNames        = []string{"TechBlog Pro", "BlogTok"}
	brandDescriptions = []string{"Professional Technology Blog Platform", "A modern blogging platform"}
)

// Brand replaces the placeholder site name and description in html.
func Brand(html string, site Site) string {
	pairs := make([]string, 0, 2*(len(brandNames)+len(brandDescriptions)))
	for _, n := range brandNames {
		pairs = append(pairs, n, site.Name)
	}
	for _, d := range brandDescriptions {
		pairs = append(pairs, d, site.Description)
	}
	return strings.NewReplacer(pairs...).Replace(html)
}

// Page renders a static HTML file with the site branding applied.
func Page(html string, site Site) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Brand(html, site))
		return err
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return errorPage(site, "Page not found", "The page you are looking for does not exist.")
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return errorPage(site, "Something went wrong", "Please try again in a moment.")
}

func errorPage(site Site, heading, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		name := templ.EscapeString(site.Name)
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		b.WriteString("<title>" + templ.EscapeString(heading) + " | " + name + "</title>\n")
		b.WriteString("</head>\n<body>\n<main>\n")
		b.WriteString("<h1>" + templ.EscapeString(heading) + "</h1>\n")
		b.WriteString("<p>" + templ.EscapeString(message) + "</p>\n")
		b.WriteString("<p><a href=\"/\">Back to " + name + "</a></p>\n")
		b.WriteString("</main>\n</body>\n</html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
