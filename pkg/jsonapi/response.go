package jsonapi

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, doc Document) {
	w.Header().Set("Content-Type", MediaType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(doc)
}

// WriteResource writes one resource.
func WriteResource(w http.ResponseWriter, status int, r Resource) {
	write(w, status, resourceDocument(r))
}

// WriteCreated writes a 201 with Location set to the resource's self link.
func WriteCreated(w http.ResponseWriter, r Resource) {
	if self := r.Self(); self != "" {
		w.Header().Set("Location", self)
	}
	write(w, http.StatusCreated, resourceDocument(r))
}

// WriteCollection writes one page of resources with paging meta and links.
func WriteCollection(w http.ResponseWriter, resources []Resource, p Page) {
	write(w, http.StatusOK, collectionDocument(resources, p))
}

// WriteErrors writes the errors with the status of the first one.
// With no errors it writes a bare 500.
func WriteErrors(w http.ResponseWriter, errs ...Error) {
	if len(errs) == 0 {
		errs = []Error{Internal()}
	}
	write(w, errs[0].StatusCode(), errorDocument(errs))
}

// WriteNoContent writes a 204.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
