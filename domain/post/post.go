// Package post provides the post value type, its input schema and pure functions.
// This package has NO dependencies on I/O or external packages.
package post

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/artpar/postshop/domain/schema"
)

// Post is a blog post (immutable value type).
type Post struct {
	ID        string
	Title     string
	Content   string
	Author    string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Input is the user-editable part of a post.
type Input struct {
	Title     string
	Content   string
	Author    string
	Published bool
}

// Schema is the validation schema for post input.
var Schema = schema.Schema{
	Entity: "post",
	Fields: []schema.Field{
		{
			Name: "title", Label: "Title", Type: schema.FieldTypeString, Required: true,
			Constraints: []schema.Constraint{schema.MinLength(3), schema.MaxLength(120)},
		},
		{
			Name: "content", Label: "Content", Type: schema.FieldTypeText, Required: true,
			Help:        "Basic formatting tags (b, i, a, ul, li, p) are kept.",
			Constraints: []schema.Constraint{schema.MinLength(10), schema.MaxLength(10000)},
		},
		{
			Name: "author", Label: "Author", Type: schema.FieldTypeString,
			Constraints: []schema.Constraint{schema.MaxLength(80)},
		},
		{
			Name: "published", Label: "Published", Type: schema.FieldTypeBool,
		},
	},
}

// Cache tags. Every mutation invalidates ListTag and the item's tag.
const ListTag = "posts"

// ItemTag returns the cache tag of a single post.
func ItemTag(id string) string {
	return "post:" + id
}

// ParseInput validates raw input against Schema.
// This is a PURE function.
func ParseInput(raw map[string]string) (Input, schema.ValidationResult) {
	v, result := Schema.Parse(raw)
	return Input{
		Title:     v.String("title"),
		Content:   v.String("content"),
		Author:    v.String("author"),
		Published: v.Bool("published"),
	}, result
}

// New builds a post from validated input.
func New(id string, in Input, now time.Time) Post {
	now = now.UTC()
	return Post{
		ID:        id,
		Title:     in.Title,
		Content:   in.Content,
		Author:    in.Author,
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply returns a copy of p with the input applied.
func (p Post) Apply(in Input, now time.Time) Post {
	p.Title = in.Title
	p.Content = in.Content
	p.Author = in.Author
	p.Published = in.Published
	p.UpdatedAt = now.UTC()
	return p
}

// Form returns the post as raw form values, for prefilling the edit form.
func (p Post) Form() map[string]string {
	return map[string]string{
		"title":     p.Title,
		"content":   p.Content,
		"author":    p.Author,
		"published": strconv.FormatBool(p.Published),
	}
}

// Byline returns the author, or "Anonymous".
func (p Post) Byline() string {
	if p.Author == "" {
		return "Anonymous"
	}
	return p.Author
}

// Excerpt returns the first n runes of the content, cut at a word boundary.
func Excerpt(content string, n int) string {
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= n {
		return content
	}
	r := []rune(content)[:n]
	s := string(r)
	if i := strings.LastIndexByte(s, ' '); i > n/2 {
		s = s[:i]
	}
	return s + "..."
}
