package jsonapi

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPage_Pages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{20, 10, 2},
		{25, 10, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		p := Page{Number: 1, Size: tt.size, Total: tt.total}
		if got := p.Pages(); got != tt.want {
			t.Errorf("Page{Total: %d, Size: %d}.Pages() = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestPage_Links(t *testing.T) {
	link := func(n int) string {
		return "/api/posts?page%5Bnumber%5D=" + string(rune('0'+n)) + "&page%5Bsize%5D=10"
	}

	tests := []struct {
		name   string
		number int
		want   *Links
	}{
		{"first", 1, &Links{Self: link(1), First: link(1), Last: link(3), Next: link(2)}},
		{"middle", 2, &Links{Self: link(2), First: link(1), Last: link(3), Prev: link(1), Next: link(3)}},
		{"last", 3, &Links{Self: link(3), First: link(1), Last: link(3), Prev: link(2)}},
		{"past the end", 5, &Links{Self: link(5), First: link(1), Last: link(3), Prev: link(3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Page{Number: tt.number, Size: 10, Total: 25, Base: "/api/posts"}
			if diff := cmp.Diff(tt.want, p.links()); diff != "" {
				t.Errorf("links mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPage_NoBaseNoLinks(t *testing.T) {
	if got := (Page{Number: 1, Size: 10}).links(); got != nil {
		t.Errorf("links() = %+v, want nil", got)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query      string
		wantNumber int
		wantSize   int
	}{
		{"", 1, 10},
		{"page[number]=3&page[size]=5", 3, 5},
		{"page=2&per_page=4", 2, 4},
		{"page[number]=-1&page[size]=abc", 1, 10},
		{"page[size]=500", 1, MaxPageSize},
	}

	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		number, size := ParsePage(q, 10)
		if number != tt.wantNumber || size != tt.wantSize {
			t.Errorf("ParsePage(%q) = %d, %d; want %d, %d",
				tt.query, number, size, tt.wantNumber, tt.wantSize)
		}
	}
}
