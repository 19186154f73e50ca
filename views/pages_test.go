package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestBrand(t *testing.T) {
	site := Site{Name: "Acme", Description: "News about anvils"}
	tests := []struct {
		in   string
		want string
	}{
		{"<title>BlogTok</title>", "<title>Acme</title>"},
		{"<h1>BlogTok Admin - Dashboard</h1>", "<h1>Acme Admin - Dashboard</h1>"},
		{"TechBlog Pro Administrator", "Acme Administrator"},
		{"<meta content=\"A modern blogging platform\">", "<meta content=\"News about anvils\">"},
		{"Professional Technology Blog Platform", "News about anvils"},
		{"nothing to replace", "nothing to replace"},
	}
	for _, tt := range tests {
		if got := Brand(tt.in, site); got != tt.want {
			t.Errorf("Brand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestErrorPageEscapesSiteName(t *testing.T) {
	var buf bytes.Buffer
	if err := NotFound(Site{Name: "<b>x</b>"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>x</b>") {
		t.Fatalf("site name not escaped: %s", out)
	}
	if !strings.Contains(out, "Page not found") {
		t.Fatalf("missing heading: %s", out)
	}
}
