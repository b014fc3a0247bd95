package jsonapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteResource(t *testing.T) {
	w := httptest.NewRecorder()
	WriteResource(w, http.StatusOK, NewResource("posts", "1", "/api/posts", Attributes{"title": "Hi"}))

	if got := w.Header().Get("Content-Type"); got != MediaType {
		t.Errorf("Content-Type = %v, want %v", got, MediaType)
	}
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var doc struct {
		JSONAPI struct {
			Version string `json:"version"`
		} `json:"jsonapi"`
		Data Resource `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if doc.JSONAPI.Version != "1.1" {
		t.Errorf("jsonapi.version = %q, want 1.1", doc.JSONAPI.Version)
	}
	if doc.Data.Self() != "/api/posts/1" {
		t.Errorf("self link = %q, want /api/posts/1", doc.Data.Self())
	}
}

func TestWriteCollection_EmptyIsArray(t *testing.T) {
	w := httptest.NewRecorder()

	WriteCollection(w, nil, Page{Number: 1, Size: 10, Base: "/api/posts"})

	var result struct {
		Data []Resource     `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if result.Data == nil {
		t.Error("empty collection should be written as [] not omitted")
	}
	if result.Meta["total"] != float64(0) || result.Meta["pages"] != float64(1) {
		t.Errorf("meta = %v, want total 0 and pages 1", result.Meta)
	}
}

func TestWriteErrors_InvalidFields(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrors(w, InvalidFields(map[string]string{
		"title":   "is required",
		"content": "must be at least 10 characters",
	})...)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", w.Code)
	}

	var doc Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(doc.Errors) != 2 {
		t.Fatalf("len(errors) = %d, want 2", len(doc.Errors))
	}
	if doc.Errors[0].Source.Pointer != "/data/attributes/content" {
		t.Errorf("errors[0] pointer = %q, want /data/attributes/content", doc.Errors[0].Source.Pointer)
	}
	if doc.Errors[1].Detail != "title is required" {
		t.Errorf("errors[1] detail = %q", doc.Errors[1].Detail)
	}
	if doc.Errors[1].Title != "Unprocessable Entity" {
		t.Errorf("errors[1] title = %q", doc.Errors[1].Title)
	}
}

func TestWriteErrors_Empty(t *testing.T) {
	w := httptest.NewRecorder()
	WriteErrors(w)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", w.Code)
	}
}

func TestWriteCreated(t *testing.T) {
	w := httptest.NewRecorder()
	WriteCreated(w, NewResource("posts", "1", "/api/posts", Attributes{"title": "Hi"}))

	if w.Code != http.StatusCreated {
		t.Errorf("Status = %d, want 201", w.Code)
	}
	if w.Header().Get("Location") != "/api/posts/1" {
		t.Errorf("Location = %q", w.Header().Get("Location"))
	}
}

func TestError(t *testing.T) {
	err := NotFound("posts", "42")
	if err.StatusCode() != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want 404", err.StatusCode())
	}
	if got := err.Error(); got != `Not Found: no posts with id "42"` {
		t.Errorf("Error() = %q", got)
	}
	if (Error{}).StatusCode() != http.StatusInternalServerError {
		t.Error("unset status should read as 500")
	}
}
