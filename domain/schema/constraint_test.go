package schema

import (
	"strings"
	"testing"
)

func TestConstraintError(t *testing.T) {
	err := ConstraintError{Field: "sku", Constraint: "pattern", Value: "x y", Message: "is invalid"}

	if got := err.Error(); got != "sku: is invalid" {
		t.Errorf("Error() = %q, want %q", got, "sku: is invalid")
	}
}

func TestValidationResult_Error(t *testing.T) {
	t.Run("valid result", func(t *testing.T) {
		result := ValidationResult{Valid: true}
		if got := result.Error(); got != "" {
			t.Errorf("Error() = %q, want empty string", got)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		result := ValidationResult{Valid: true}
		result.AddError("name", "required", nil, "is required")
		result.AddError("price", "min", 0, "must be at least 0.01")

		got := result.Error()
		if !strings.Contains(got, "name: is required") || !strings.Contains(got, "price: must be at least 0.01") {
			t.Errorf("Error() = %q, missing messages", got)
		}
		if result.Valid {
			t.Error("Valid = true after AddError")
		}
	})
}

func TestValidationResult_FieldsKeepsFirst(t *testing.T) {
	result := ValidationResult{}
	result.AddError("name", "min_length", 1, "first")
	result.AddError("name", "pattern", "x", "second")

	if got := result.Fields()["name"]; got != "first" {
		t.Errorf("Fields()[name] = %q, want %q", got, "first")
	}
}

func TestValidateConstraint(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		c       Constraint
		wantErr bool
	}{
		{"min ok", int64(5), Min(5), false},
		{"min fail", int64(4), Min(5), true},
		{"min float", 0.001, Min(0.01), true},
		{"max ok", 100.0, Max(100), false},
		{"max fail", int64(101), Max(100), true},
		{"min_length ok", "abc", MinLength(3), false},
		{"min_length fail", "ab", MinLength(3), true},
		{"max_length fail", "abcd", MaxLength(3), true},
		{"pattern ok", "AB-1", Pattern(`^[A-Z0-9-]+$`), false},
		{"pattern fail", "ab", Pattern(`^[A-Z0-9-]+$`), true},
		{"pattern string expr", "12", Constraint{Type: ConstraintPattern, Value: `^\d+$`}, false},
		{"non-numeric skipped", "abc", Min(1), false},
		{"unknown type", "abc", Constraint{Type: "bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConstraint("f", tt.value, tt.c)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConstraint() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
