package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func testView() View {
	return View{Name: "products", Columns: []string{"id", "name", "price", "in_stock"}}
}

func testRecords() []Record {
	return []Record{
		{"id": "p-1", "name": "Teapot", "price": "19.99", "in_stock": true, "stock": int64(3)},
		{"id": "p-2", "name": "Kettle", "price": "45.00", "in_stock": false, "stock": int64(0)},
	}
}

// ===========================================
// Registry Tests
// ===========================================

func TestRegistry(t *testing.T) {
	r := NewRegistry(Table{})
	if err := r.Add(Table{}); err == nil {
		t.Error("duplicate Add should fail")
	}
	if err := r.Add(JSON{}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if diff := cmp.Diff([]string{"json", "table"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	_, err := r.Lookup("csv")
	if err == nil {
		t.Fatal("Lookup(csv) should fail")
	}
	if !strings.Contains(err.Error(), "available: json, table") {
		t.Errorf("error = %v, want it to list the formats", err)
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range []string{"table", "json", "yaml"} {
		f, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if f.Description() == "" {
			t.Errorf("formatter %q has no description", name)
		}
	}
}

// ===========================================
// Table Tests
// ===========================================

func TestTable_List(t *testing.T) {
	var buf bytes.Buffer
	if err := (Table{}).List(&buf, testView(), testRecords(), Options{}); err != nil {
		t.Fatalf("List: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if diff := cmp.Diff([]string{"ID", "NAME", "PRICE", "IN_STOCK"}, strings.Fields(lines[0])); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p-1", "Teapot", "19.99", "yes"}, strings.Fields(lines[1])); diff != "" {
		t.Errorf("row 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_Options(t *testing.T) {
	var buf bytes.Buffer
	o := Options{Columns: []string{"name"}, NoHeader: true, MaxWidth: 5}
	if err := (Table{}).List(&buf, testView(), testRecords(), o); err != nil {
		t.Fatalf("List: %v", err)
	}

	want := "Te...\nKe...\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	(Table{}).List(&buf, testView(), nil, Options{})

	if got := buf.String(); got != "No products found.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestTable_One(t *testing.T) {
	var buf bytes.Buffer
	view := View{Name: "posts", Columns: []string{"title", "created_at"}}
	r := Record{"title": "Hello", "created_at": time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)}

	if err := (Table{}).One(&buf, view, r, Options{}); err != nil {
		t.Fatalf("One: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Title:") || !strings.Contains(out, "Created At:") {
		t.Errorf("labels missing:\n%s", out)
	}
	if !strings.Contains(out, "2026-05-01 09:30") {
		t.Errorf("time not formatted:\n%s", out)
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		val   any
		width int
		want  string
	}{
		{nil, 0, "-"},
		{"multi\nline", 0, "multi line"},
		{false, 0, "no"},
		{42, 0, "42"},
		{int64(42), 0, "42"},
		{3.0, 0, "3"},
		{2.5, 0, "2.50"},
		{[]string{"a"}, 0, `["a"]`},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 3, "abc"},
	}
	for _, tt := range tests {
		if got := cell(tt.val, tt.width); got != tt.want {
			t.Errorf("cell(%v, %d) = %q, want %q", tt.val, tt.width, got, tt.want)
		}
	}
}

// ===========================================
// JSON / YAML Tests
// ===========================================

func TestJSON_List(t *testing.T) {
	var buf bytes.Buffer
	o := Options{Columns: []string{"id", "price"}, Compact: true}
	if err := (JSON{}).List(&buf, testView(), testRecords(), o); err != nil {
		t.Fatalf("List: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("compact output spans several lines:\n%s", buf.String())
	}

	var got struct {
		Type  string           `json:"type"`
		Count int              `json:"count"`
		Data  []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "products" || got.Count != 2 {
		t.Errorf("type/count = %s/%d, want products/2", got.Type, got.Count)
	}
	want := map[string]any{"id": "p-1", "price": "19.99"}
	if diff := cmp.Diff(want, got.Data[0]); diff != "" {
		t.Errorf("data[0] mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_EmptyListHasCount(t *testing.T) {
	var buf bytes.Buffer
	(JSON{}).List(&buf, testView(), nil, Options{})

	if !strings.Contains(buf.String(), `"count": 0`) || !strings.Contains(buf.String(), `"data": []`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestYAML_One(t *testing.T) {
	var buf bytes.Buffer
	if err := (YAML{}).One(&buf, testView(), testRecords()[0], Options{}); err != nil {
		t.Fatalf("One: %v", err)
	}

	var got struct {
		Type  string         `yaml:"type"`
		Count *int           `yaml:"count"`
		Data  map[string]any `yaml:"data"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != "products" {
		t.Errorf("type = %s, want products", got.Type)
	}
	if got.Count != nil {
		t.Errorf("count = %d, want it omitted for a single record", *got.Count)
	}
	if got.Data["name"] != "Teapot" || got.Data["stock"] != 3 {
		t.Errorf("data = %v", got.Data)
	}
}
