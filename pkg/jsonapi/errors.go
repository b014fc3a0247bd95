package jsonapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
)

// Error is an error object. It also satisfies the error interface so
// request decoding can hand it straight back to the handler.
type Error struct {
	Status string  `json:"status"`
	Code   string  `json:"code"`
	Title  string  `json:"title"`
	Detail string  `json:"detail,omitempty"`
	Source *Source `json:"source,omitempty"`
}

// Source points at the part of the request that caused an error.
type Source struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// NewError returns an error object titled with the status text.
func NewError(status int, code, detail string) Error {
	return Error{
		Status: strconv.Itoa(status),
		Code:   code,
		Title:  http.StatusText(status),
		Detail: detail,
	}
}

func (e Error) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return e.Title + ": " + e.Detail
}

// StatusCode returns the HTTP status, or 500 when unset.
func (e Error) StatusCode() int {
	code, err := strconv.Atoi(e.Status)
	if err != nil || code == 0 {
		return http.StatusInternalServerError
	}
	return code
}

// At returns a copy of e pointing at the given JSON pointer.
func (e Error) At(pointer string) Error {
	e.Source = &Source{Pointer: pointer}
	return e
}

// BadRequest is a 400.
func BadRequest(detail string) Error {
	return NewError(http.StatusBadRequest, "bad_request", detail)
}

// NotFound is a 404 for a resource id.
func NotFound(resourceType, id string) Error {
	return NewError(http.StatusNotFound, "not_found", fmt.Sprintf("no %s with id %q", resourceType, id))
}

// Conflict is a 409.
func Conflict(detail string) Error {
	return NewError(http.StatusConflict, "conflict", detail)
}

// UnsupportedMediaType is a 415 for a request body of the wrong type.
func UnsupportedMediaType(got string) Error {
	return NewError(http.StatusUnsupportedMediaType, "unsupported_media_type",
		fmt.Sprintf("Content-Type must be %s, got %q", MediaType, got))
}

// Invalid is a 422 for one attribute.
func Invalid(field, message string) Error {
	return NewError(http.StatusUnprocessableEntity, "validation_error", field+" "+message).
		At("/data/attributes/" + field)
}

// InvalidFields returns one 422 per field, ordered by field name.
func InvalidFields(fields map[string]string) []Error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]Error, len(names))
	for i, name := range names {
		errs[i] = Invalid(name, fields[name])
	}
	return errs
}

// Internal is a 500 that reveals nothing about the cause.
func Internal() Error {
	return NewError(http.StatusInternalServerError, "internal_error", "an internal error occurred")
}
