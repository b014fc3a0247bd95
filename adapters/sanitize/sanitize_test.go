package sanitize_test

import (
	"strings"
	"testing"

	"github.com/artpar/postshop/adapters/sanitize"
)

func TestText(t *testing.T) {
	s := sanitize.New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello world", "Hello world"},
		{"tags stripped", "<b>Bold</b> move", "Bold move"},
		{"script dropped", "Hi<script>alert(1)</script>", "Hi"},
		{"ampersand kept", "Tom & Jerry", "Tom & Jerry"},
		{"trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarkup(t *testing.T) {
	s := sanitize.New()

	got := s.Markup(`<p>Hi <b>there</b></p><script>alert(1)</script><img src=x onerror=alert(1)>`)
	if got != "<p>Hi <b>there</b></p>" {
		t.Errorf("Markup() = %q", got)
	}

	link := s.Markup(`<a href="https://example.com" onclick="x()">site</a>`)
	if strings.Contains(link, "onclick") {
		t.Errorf("event handler kept: %q", link)
	}
	if !strings.Contains(link, `rel="nofollow`) {
		t.Errorf("nofollow missing: %q", link)
	}

	if got := s.Markup(`<a href="javascript:alert(1)">x</a>`); strings.Contains(got, "javascript") {
		t.Errorf("javascript URL kept: %q", got)
	}
}

func TestMarkup_TextRoundTrips(t *testing.T) {
	s := sanitize.New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ampersand and less-than", "Fish & chips are 2 < 3 great", "Fish & chips are 2 < 3 great"},
		{"quotes", `He said "it's fine"`, `He said "it's fine"`},
		{"tag-like text stays escaped", "&lt;script&gt;alert(1)", "&lt;script>alert(1)"},
		{"entity-like text stays escaped", "&amp;copy; is literal", "&amp;copy; is literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Markup(tt.in)
			if got != tt.want {
				t.Errorf("Markup(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := s.Markup(got); again != got {
				t.Errorf("Markup is not stable: %q then %q", got, again)
			}
		})
	}
}

func TestMarkup_AttributesKeepEscaping(t *testing.T) {
	s := sanitize.New()

	got := s.Markup(`<a href="https://example.com/?a=1&amp;b=2">x &amp; y</a>`)
	if !strings.Contains(got, `href="https://example.com/?a=1&amp;b=2"`) {
		t.Errorf("href escaping changed: %q", got)
	}
	if !strings.HasSuffix(got, ">x & y</a>") {
		t.Errorf("link text not decoded: %q", got)
	}
}
