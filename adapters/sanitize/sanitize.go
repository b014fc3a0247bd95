// Package sanitize strips unsafe markup from user input.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/artpar/postshop/ports"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce   sync.Once
	textPolicy   *bluemonday.Policy
	markupPolicy *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()

		p := bluemonday.StrictPolicy()
		p.AllowElements("p", "br", "b", "strong", "i", "em", "ul", "ol", "li", "blockquote", "code", "pre")
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		markupPolicy = p
	})
	return textPolicy, markupPolicy
}

// Policy implements ports.Sanitizer with bluemonday policies.
type Policy struct{}

// New returns the bluemonday-backed sanitizer.
func New() Policy {
	return Policy{}
}

// Text removes all markup and returns plain text.
// The strict policy escapes entities, which templates would escape again,
// so the result is unescaped back to plain text.
func (Policy) Text(s string) string {
	text, _ := policies()
	return strings.TrimSpace(html.UnescapeString(text.Sanitize(s)))
}

// Markup keeps basic formatting elements and safe links. Text between
// tags is left as the user typed it wherever that reads back as the same
// HTML, so stored content round-trips through an edit form unchanged.
func (Policy) Markup(s string) string {
	_, markup := policies()
	return strings.TrimSpace(decodeText(markup.Sanitize(s)))
}

// decodeText undoes the entity escaping bluemonday applies to text nodes.
// Tags are copied as written. "&lt;" stays escaped where it would open a
// tag and "&amp;" where it would start an entity.
func decodeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for len(s) > 0 {
		switch s[0] {
		case '<':
			end := strings.IndexByte(s, '>')
			if end < 0 {
				end = len(s) - 1
			}
			b.WriteString(s[:end+1])
			s = s[end+1:]

		case '&':
			ent, text := entityAt(s)
			rest := s[len(ent):]
			switch {
			case ent == "":
				b.WriteByte('&')
				s = s[1:]
				continue
			case text == "<" && opensTag(rest), text == "&" && opensEntity(rest):
				b.WriteString(ent)
			default:
				b.WriteString(text)
			}
			s = rest

		default:
			next := strings.IndexAny(s, "<&")
			if next < 0 {
				next = len(s)
			}
			b.WriteString(s[:next])
			s = s[next:]
		}
	}
	return b.String()
}

var textEntities = [][2]string{
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&#34;", `"`},
	{"&#39;", "'"},
	{"&quot;", `"`},
}

func entityAt(s string) (ent, text string) {
	for _, e := range textEntities {
		if strings.HasPrefix(s, e[0]) {
			return e[0], e[1]
		}
	}
	return "", ""
}

func opensTag(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '/' || c == '!' || c == '?' || isLetter(c)
}

func opensEntity(s string) bool {
	return s != "" && (s[0] == '#' || isLetter(s[0]))
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

var _ ports.Sanitizer = Policy{}
