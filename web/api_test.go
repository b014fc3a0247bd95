package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/artpar/postshop/pkg/jsonapi"
	"github.com/google/go-cmp/cmp"
)

type apiResource struct {
	Type       string         `json:"type"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

type apiError struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Source *struct {
		Pointer string `json:"pointer"`
	} `json:"source"`
}

type apiDocument struct {
	Data   json.RawMessage `json:"data"`
	Meta   map[string]any  `json:"meta"`
	Errors []apiError      `json:"errors"`
}

func (e *testEnv) api(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", jsonapi.MediaType)
	}
	return e.do(req)
}

func decodeDoc(t *testing.T, rec *httptest.ResponseRecorder) apiDocument {
	t.Helper()
	var doc apiDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return doc
}

func decodeResource(t *testing.T, doc apiDocument) apiResource {
	t.Helper()
	var res apiResource
	if err := json.Unmarshal(doc.Data, &res); err != nil {
		t.Fatalf("decode resource: %v", err)
	}
	return res
}

const createPostBody = `{"data":{"type":"posts","attributes":{
	"title":"Over the wire","content":"Posted as a JSON:API document.","published":true}}}`

func TestAPI_CreateAndGetPost(t *testing.T) {
	env := newTestEnv(t)

	rec := env.api(http.MethodPost, "/api/posts", createPostBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/api/posts/id-1" {
		t.Errorf("Location = %q, want /api/posts/id-1", loc)
	}

	rec = env.api(http.MethodGet, "/api/posts/id-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}
	res := decodeResource(t, decodeDoc(t, rec))
	if res.Type != "posts" || res.ID != "id-1" {
		t.Errorf("resource = %s/%s, want posts/id-1", res.Type, res.ID)
	}
	if res.Attributes["title"] != "Over the wire" {
		t.Errorf("title = %v, want Over the wire", res.Attributes["title"])
	}
	if res.Attributes["published"] != true {
		t.Errorf("published = %v, want true", res.Attributes["published"])
	}
}

func TestAPI_CreatePost_Invalid(t *testing.T) {
	env := newTestEnv(t)

	rec := env.api(http.MethodPost, "/api/posts", `{"data":{"type":"posts","attributes":{"title":"x"}}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var pointers []string
	for _, e := range decodeDoc(t, rec).Errors {
		if e.Source != nil {
			pointers = append(pointers, e.Source.Pointer)
		}
	}
	want := []string{"/data/attributes/content", "/data/attributes/title"}
	if diff := cmp.Diff(want, pointers); diff != "" {
		t.Errorf("error pointers mismatch (-want +got):\n%s", diff)
	}
}

func TestAPI_RequestErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		ctype  string
		want   int
	}{
		{"wrong media type", http.MethodPost, "/api/posts", createPostBody, "text/plain", http.StatusUnsupportedMediaType},
		{"bad json", http.MethodPost, "/api/posts", "{", jsonapi.MediaType, http.StatusBadRequest},
		{"missing data", http.MethodPost, "/api/posts", "{}", jsonapi.MediaType, http.StatusBadRequest},
		{"wrong type", http.MethodPost, "/api/products", createPostBody, jsonapi.MediaType, http.StatusConflict},
		{"unknown post", http.MethodGet, "/api/posts/nope", "", "", http.StatusNotFound},
		{"unknown collection", http.MethodGet, "/api/widgets", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			} else {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", tt.ctype)
			}
			rec := env.do(req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAPI_ListPosts_Pagination(t *testing.T) {
	env := newTestEnv(t)
	for _, title := range []string{"First post", "Second post", "Third post"} {
		env.postForm("/posts", postForm(title))
	}

	rec := env.api(http.MethodGet, "/api/posts?page[number]=2&page[size]=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	doc := decodeDoc(t, rec)

	var items []apiResource
	if err := json.Unmarshal(doc.Data, &items); err != nil {
		t.Fatalf("decode collection: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(data) = %d, want 1", len(items))
	}
	if total, _ := doc.Meta["total"].(float64); total != 3 {
		t.Errorf("meta.total = %v, want 3", doc.Meta["total"])
	}
}

func TestAPI_UpdatePost_Partial(t *testing.T) {
	env := newTestEnv(t)
	env.api(http.MethodPost, "/api/posts", createPostBody)

	rec := env.api(http.MethodPatch, "/api/posts/id-1",
		`{"data":{"type":"posts","id":"id-1","attributes":{"title":"Renamed post"}}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	res := decodeResource(t, decodeDoc(t, rec))
	if res.Attributes["title"] != "Renamed post" {
		t.Errorf("title = %v, want Renamed post", res.Attributes["title"])
	}
	if res.Attributes["content"] != "Posted as a JSON:API document." {
		t.Errorf("content = %v, want it unchanged", res.Attributes["content"])
	}

	rec = env.api(http.MethodPatch, "/api/posts/id-1",
		`{"data":{"type":"posts","id":"other","attributes":{}}}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("mismatched id status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestAPI_DeletePost_InvalidatesCache(t *testing.T) {
	env := newTestEnv(t)
	env.api(http.MethodPost, "/api/posts", createPostBody)

	env.get("/posts")
	if env.cache.Len() != 1 {
		t.Fatalf("cache Len = %d, want 1", env.cache.Len())
	}

	rec := env.api(http.MethodDelete, "/api/posts/id-1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if env.cache.Len() != 0 {
		t.Errorf("cache Len = %d after delete, want 0", env.cache.Len())
	}

	rec = env.api(http.MethodDelete, "/api/posts/id-1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestAPI_Products(t *testing.T) {
	env := newTestEnv(t)

	body := `{"data":{"type":"products","attributes":{"name":"Teapot","sku":"TP-1","price":19.99,"stock":0}}}`
	rec := env.api(http.MethodPost, "/api/products", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	res := decodeResource(t, decodeDoc(t, rec))
	if res.Attributes["price"] != "19.99" {
		t.Errorf("price = %v, want 19.99", res.Attributes["price"])
	}
	if res.Attributes["price_cents"] != float64(1999) {
		t.Errorf("price_cents = %v, want 1999", res.Attributes["price_cents"])
	}
	if res.Attributes["in_stock"] != false {
		t.Errorf("in_stock = %v, want false", res.Attributes["in_stock"])
	}

	rec = env.api(http.MethodPost, "/api/products", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate SKU status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	errs := decodeDoc(t, rec).Errors
	if len(errs) != 1 || errs[0].Source == nil || errs[0].Source.Pointer != "/data/attributes/sku" {
		t.Errorf("errors = %+v, want one on /data/attributes/sku", errs)
	}
}
