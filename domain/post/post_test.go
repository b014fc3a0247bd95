package post

import (
	"strings"
	"testing"
	"time"
)

func validRaw() map[string]string {
	return map[string]string{
		"title":     "Hello world",
		"content":   "A first post with enough text.",
		"author":    "Ada",
		"published": "on",
	}
}

func TestParseInput_Valid(t *testing.T) {
	in, result := ParseInput(validRaw())
	if !result.Valid {
		t.Fatalf("Valid = false: %s", result.Error())
	}
	if in.Title != "Hello world" {
		t.Errorf("Title = %q, want %q", in.Title, "Hello world")
	}
	if !in.Published {
		t.Error("Published = false, want true")
	}
}

func TestParseInput_Rules(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"missing title", "title", "", "is required"},
		{"short title", "title", "Hi", "must be at least 3 characters"},
		{"long title", "title", strings.Repeat("x", 121), "must be at most 120 characters"},
		{"short content", "content", "too short", "must be at least 10 characters"},
		{"long author", "author", strings.Repeat("a", 81), "must be at most 80 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw[tt.field] = tt.value
			_, result := ParseInput(raw)
			if got := result.For(tt.field); got != tt.want {
				t.Errorf("error[%s] = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestParseInput_AuthorOptional(t *testing.T) {
	raw := validRaw()
	delete(raw, "author")
	delete(raw, "published")

	in, result := ParseInput(raw)
	if !result.Valid {
		t.Fatalf("Valid = false: %s", result.Error())
	}
	if in.Published {
		t.Error("absent checkbox parsed as published")
	}
}

func TestNewAndApply(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := New("p1", Input{Title: "One", Content: "0123456789"}, created)

	if !p.CreatedAt.Equal(created) || !p.UpdatedAt.Equal(created) {
		t.Errorf("timestamps = %v/%v, want %v", p.CreatedAt, p.UpdatedAt, created)
	}

	later := created.Add(time.Hour)
	updated := p.Apply(Input{Title: "Two", Content: "abcdefghij", Published: true}, later)

	if updated.Title != "Two" || !updated.Published {
		t.Errorf("Apply did not copy input: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed to %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, later)
	}
	if p.Title != "One" {
		t.Error("Apply mutated the receiver")
	}
}

func TestFormRoundTrip(t *testing.T) {
	p := Post{Title: "Round trip", Content: "Content long enough", Author: "Bo", Published: true}

	in, result := ParseInput(p.Form())
	if !result.Valid {
		t.Fatalf("Valid = false: %s", result.Error())
	}
	if in.Title != p.Title || in.Author != p.Author || in.Published != p.Published {
		t.Errorf("ParseInput(Form()) = %+v", in)
	}
}

func TestTags(t *testing.T) {
	if ListTag != "posts" {
		t.Errorf("ListTag = %q", ListTag)
	}
	if got := ItemTag("abc"); got != "post:abc" {
		t.Errorf("ItemTag = %q, want %q", got, "post:abc")
	}
}

func TestByline(t *testing.T) {
	if got := (Post{}).Byline(); got != "Anonymous" {
		t.Errorf("Byline() = %q, want Anonymous", got)
	}
	if got := (Post{Author: "Ada"}).Byline(); got != "Ada" {
		t.Errorf("Byline() = %q, want Ada", got)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"collapse   inner\n\nspace", 50, "collapse inner space"},
		{"the quick brown fox jumps", 12, "the quick..."},
		{"abcdefghijklmnop", 5, "abcde..."},
	}

	for _, tt := range tests {
		if got := Excerpt(tt.in, tt.n); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
