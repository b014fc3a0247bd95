// Package jsonapi reads and writes the JSON:API documents served under /api.
// See https://jsonapi.org/format/1.1/.
package jsonapi

// MediaType is the JSON:API content type.
const MediaType = "application/vnd.api+json"

const version = "1.1"

// Attributes are the fields of a resource object.
type Attributes map[string]any

// Resource is a resource object.
type Resource struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Attributes Attributes `json:"attributes,omitempty"`
	Links      *Links     `json:"links,omitempty"`
}

// NewResource returns a resource whose self link is base/id.
func NewResource(typ, id, base string, attrs Attributes) Resource {
	r := Resource{Type: typ, ID: id, Attributes: attrs}
	if base != "" {
		r.Links = &Links{Self: base + "/" + id}
	}
	return r
}

// Self returns the resource's self link, or "".
func (r Resource) Self() string {
	if r.Links == nil {
		return ""
	}
	return r.Links.Self
}

// Links holds a document's navigation links or a resource's self link.
type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
}

type versionObject struct {
	Version string `json:"version"`
}

// Document is a top-level document. Data and Errors never both appear.
type Document struct {
	JSONAPI versionObject  `json:"jsonapi"`
	Data    any            `json:"data,omitempty"`
	Errors  []Error        `json:"errors,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Links   *Links         `json:"links,omitempty"`
}

func resourceDocument(r Resource) Document {
	return Document{JSONAPI: versionObject{version}, Data: r}
}

// collectionDocument always carries an array, even when empty.
func collectionDocument(resources []Resource, p Page) Document {
	if resources == nil {
		resources = []Resource{}
	}
	return Document{
		JSONAPI: versionObject{version},
		Data:    resources,
		Meta:    p.meta(),
		Links:   p.links(),
	}
}

func errorDocument(errs []Error) Document {
	return Document{JSONAPI: versionObject{version}, Errors: errs}
}
