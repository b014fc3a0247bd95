package jsonapi

import (
	"net/url"
	"strconv"
)

// MaxPageSize caps page[size].
const MaxPageSize = 100

// Page describes the slice of a collection being returned.
type Page struct {
	Number int    // 1-based
	Size   int    // items per page
	Total  int    // items in the whole collection
	Base   string // collection URL used to build links
}

// ParsePage reads page[number] and page[size], falling back to page and
// per_page. Missing or non-positive values take the defaults.
func ParsePage(query url.Values, defaultSize int) (number, size int) {
	number = positiveParam(query, 1, "page[number]", "page")
	size = positiveParam(query, defaultSize, "page[size]", "per_page")
	return number, min(size, MaxPageSize)
}

func positiveParam(query url.Values, def int, keys ...string) int {
	for _, k := range keys {
		if n, err := strconv.Atoi(query.Get(k)); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// Pages returns the page count; an empty collection has one page.
func (p Page) Pages() int {
	if p.Total == 0 || p.Size < 1 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

func (p Page) meta() map[string]any {
	return map[string]any{
		"total":    p.Total,
		"page":     p.Number,
		"per_page": p.Size,
		"pages":    p.Pages(),
	}
}

func (p Page) links() *Links {
	if p.Base == "" {
		return nil
	}
	last := p.Pages()
	links := &Links{
		Self:  p.url(p.Number),
		First: p.url(1),
		Last:  p.url(last),
	}
	if p.Number > 1 {
		links.Prev = p.url(min(p.Number-1, last))
	}
	if p.Number < last {
		links.Next = p.url(p.Number + 1)
	}
	return links
}

func (p Page) url(number int) string {
	q := url.Values{}
	q.Set("page[number]", strconv.Itoa(number))
	q.Set("page[size]", strconv.Itoa(p.Size))
	return p.Base + "?" + q.Encode()
}
