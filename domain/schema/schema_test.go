package schema

import (
	"strings"
	"testing"
)

var testSchema = Schema{
	Entity: "widget",
	Fields: []Field{
		{Name: "name", Type: FieldTypeString, Required: true, Constraints: []Constraint{MinLength(3), MaxLength(10)}},
		{Name: "notes", Type: FieldTypeText, Constraints: []Constraint{MaxLength(20)}},
		{Name: "qty", Type: FieldTypeInt, Required: true, Constraints: []Constraint{Min(0), Max(100)}},
		{Name: "price", Type: FieldTypeFloat, Constraints: []Constraint{Min(0.01)}},
		{Name: "code", Type: FieldTypeString, Constraints: []Constraint{Pattern(`^[A-Z]+$`).WithMessage("uppercase letters only")}},
		{Name: "active", Type: FieldTypeBool},
	},
}

func TestSchema_Parse_Valid(t *testing.T) {
	values, result := testSchema.Parse(map[string]string{
		"name":   "  gear  ",
		"qty":    "7",
		"price":  "2.50",
		"code":   "ABC",
		"active": "on",
	})

	if !result.Valid {
		t.Fatalf("Valid = false, errors: %s", result.Error())
	}
	if got := values.String("name"); got != "gear" {
		t.Errorf("name = %q, want %q", got, "gear")
	}
	if got := values.Int("qty"); got != 7 {
		t.Errorf("qty = %d, want 7", got)
	}
	if got := values.Float("price"); got != 2.5 {
		t.Errorf("price = %v, want 2.5", got)
	}
	if !values.Bool("active") {
		t.Error("active = false, want true")
	}
	if got := values.String("notes"); got != "" {
		t.Errorf("notes = %q, want empty", got)
	}
}

func TestSchema_Parse_CollectsAllErrors(t *testing.T) {
	_, result := testSchema.Parse(map[string]string{
		"name":  "ab",
		"qty":   "many",
		"price": "0",
		"code":  "abc",
	})

	if result.Valid {
		t.Fatal("Valid = true, want false")
	}

	want := map[string]string{
		"name":  "must be at least 3 characters",
		"qty":   "must be a whole number",
		"price": "must be at least 0.01",
		"code":  "uppercase letters only",
	}
	got := result.Fields()
	if len(got) != len(want) {
		t.Fatalf("got %d field errors, want %d: %v", len(got), len(want), got)
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("error[%s] = %q, want %q", field, got[field], msg)
		}
	}
}

func TestSchema_Parse_Required(t *testing.T) {
	_, result := testSchema.Parse(map[string]string{"name": "   "})

	if result.For("name") != "is required" {
		t.Errorf("name error = %q, want %q", result.For("name"), "is required")
	}
	if result.For("qty") != "is required" {
		t.Errorf("qty error = %q, want %q", result.For("qty"), "is required")
	}
	if result.For("price") != "" {
		t.Errorf("optional price reported %q", result.For("price"))
	}
}

func TestSchema_Parse_RuneLength(t *testing.T) {
	// 10 runes, 20 bytes
	_, result := testSchema.Parse(map[string]string{"name": strings.Repeat("é", 10), "qty": "1"})
	if !result.Valid {
		t.Errorf("10-rune name rejected: %s", result.Error())
	}
}

func TestSchema_Parse_RejectsNonFinite(t *testing.T) {
	for _, in := range []string{"NaN", "Inf", "-Inf"} {
		_, result := testSchema.Parse(map[string]string{"name": "gear", "qty": "1", "price": in})
		if result.For("price") != "must be a number" {
			t.Errorf("price %q error = %q, want %q", in, result.For("price"), "must be a number")
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"on", true},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"", false},
		{"off", false},
		{"0", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseBool(tt.in); got != tt.want {
				t.Errorf("ParseBool(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestField_Control(t *testing.T) {
	tests := []struct {
		typ       FieldType
		control   string
		inputType string
	}{
		{FieldTypeString, "input", "text"},
		{FieldTypeText, "textarea", "text"},
		{FieldTypeInt, "input", "number"},
		{FieldTypeFloat, "input", "number"},
		{FieldTypeBool, "checkbox", "text"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			f := Field{Type: tt.typ}
			if got := f.Control(); got != tt.control {
				t.Errorf("Control() = %q, want %q", got, tt.control)
			}
			if got := f.InputType(); got != tt.inputType {
				t.Errorf("InputType() = %q, want %q", got, tt.inputType)
			}
		})
	}
}

func TestField_MaxLength(t *testing.T) {
	if got := testSchema.Fields[0].MaxLength(); got != 10 {
		t.Errorf("MaxLength() = %d, want 10", got)
	}
	if got := testSchema.Fields[2].MaxLength(); got != 0 {
		t.Errorf("MaxLength() = %d, want 0", got)
	}
}
