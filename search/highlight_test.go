package search

import (
	"strings"
	"testing"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"single match", "Intro to Rust", "rust", "Intro to <mark>Rust</mark>"},
		{"keeps casing", "RUST rust Rust", "rust", "<mark>RUST</mark> <mark>rust</mark> <mark>Rust</mark>"},
		{"no match", "Go channels", "rust", "Go channels"},
		{"empty query", "Go channels", "", "Go channels"},
		{"empty text", "", "rust", ""},
		{"non-overlapping scan", "aaaa", "aa", "<mark>aa</mark><mark>aa</mark>"},
		{"odd overlap", "aaa", "aa", "<mark>aa</mark>a"},
		{"dot is literal", "v1.2 and v1x2", "1.2", "v<mark>1.2</mark> and v1x2"},
		{"star is literal", "a*b ab", "a*b", "<mark>a*b</mark> ab"},
		{"unbalanced paren", "call f( now", "f(", "call <mark>f(</mark> now"},
		{"brackets", "[draft] notes", "[draft]", "<mark>[draft]</mark> notes"},
		{"backslash", `C:\temp`, `\t`, `C:<mark>\t</mark>emp`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.text, tt.query); got != tt.want {
				t.Errorf("Highlight(%q, %q) = %q, want %q", tt.text, tt.query, got, tt.want)
			}
		})
	}
}

// Re-highlighting wraps the match again. Markup stays well-formed as long
// as the query does not occur in the marker text itself.
func TestHighlightTwiceDoubleWraps(t *testing.T) {
	once := Highlight("learn rust", "rust")
	twice := Highlight(once, "rust")
	want := "learn <mark><mark>rust</mark></mark>"
	if twice != want {
		t.Errorf("Highlight(Highlight(...)) = %q, want %q", twice, want)
	}
}

// A field lands in the title tier exactly when its title gets a mark.
func TestTierAgreesWithHighlight(t *testing.T) {
	titles := []string{"İstanbul guide", "istanbul guide", "Straße", "STRASSE", "Kelvin scale", "ǅemal"}
	queries := []string{"istanbul", "İstanbul", "straße", "strasse", "kelvin", "ǆ", "ǳemal"}
	for _, title := range titles {
		for _, q := range queries {
			m := Compile(q)
			f := Fields{Title: title, Content: "body"}
			inTitle := m.Tier(f) == TierTitle
			marked := strings.Contains(m.Highlight(title), markOpen)
			if inTitle != marked {
				t.Errorf("title %q query %q: title tier = %v, highlighted = %v", title, q, inTitle, marked)
			}
			if inTitle && m.Score(f) < TitleWeight {
				t.Errorf("title %q query %q: title tier but score %d", title, q, m.Score(f))
			}
		}
	}
}

func TestHighlightKeepsSurroundingSpaces(t *testing.T) {
	if got, want := Highlight("c lang and cat facts", "c "), "<mark>c </mark>lang and cat facts"; got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestDottedCapitalIDoesNotFoldToI(t *testing.T) {
	f := Fields{Title: "İstanbul guide"}
	if Matches(f, "istanbul") {
		t.Errorf("Matches(%q, %q) = true, want false", f.Title, "istanbul")
	}
	if got := Highlight(f.Title, "istanbul"); got != f.Title {
		t.Errorf("Highlight = %q, want unchanged", got)
	}
	if got := Highlight("Kelvin scale", "kelvin"); got != "<mark>Kelvin</mark> scale" {
		t.Errorf("Highlight = %q", got)
	}
}
