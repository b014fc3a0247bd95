package web

import (
	"net/http"

	"github.com/artpar/postshop/domain/schema"
)

// FormField is one schema field with its submitted value and error.
type FormField struct {
	schema.Field
	Value string
	Error string
}

// Checked reports whether a checkbox field is on.
func (f FormField) Checked() bool {
	return schema.ParseBool(f.Value)
}

// Form is a schema-driven form.
type Form struct {
	Action string
	Submit string
	Cancel string
	Fields []FormField
	Failed bool
}

// newForm builds a form from a schema, values and per-field errors.
func newForm(s schema.Schema, action, submit, cancel string, values, errs map[string]string) Form {
	form := Form{
		Action: action,
		Submit: submit,
		Cancel: cancel,
		Fields: make([]FormField, len(s.Fields)),
		Failed: len(errs) > 0,
	}
	for i, f := range s.Fields {
		form.Fields[i] = FormField{Field: f, Value: values[f.Name], Error: errs[f.Name]}
	}
	return form
}

// formValues reads the schema's fields from a submitted form.
// An unchecked checkbox is absent from the submission and reads as "".
func formValues(r *http.Request, s schema.Schema) map[string]string {
	values := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		values[f.Name] = r.PostFormValue(f.Name)
	}
	return values
}

// Pager renders previous/next links for a listing.
type Pager struct {
	Base       string
	Number     int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Pager) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Pager) HasNext() bool { return p.Number < p.TotalPages }

// Prev returns the previous page number.
func (p Pager) Prev() int { return p.Number - 1 }

// Next returns the following page number.
func (p Pager) Next() int { return p.Number + 1 }
