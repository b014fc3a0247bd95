package schema

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Constraint defines a validation rule for a field.
type Constraint struct {
	Type ConstraintType

	// Value is the constraint parameter: a number for min/max, a length
	// for min_length/max_length, a string or *regexp.Regexp for pattern.
	Value any

	// Message overrides the generated error message.
	Message string
}

// ConstraintType identifies the type of constraint.
type ConstraintType string

const (
	ConstraintMin       ConstraintType = "min"        // Minimum numeric value
	ConstraintMax       ConstraintType = "max"        // Maximum numeric value
	ConstraintMinLength ConstraintType = "min_length" // Minimum length in runes
	ConstraintMaxLength ConstraintType = "max_length" // Maximum length in runes
	ConstraintPattern   ConstraintType = "pattern"    // Regex pattern match
)

// Min, Max, MinLength, MaxLength and Pattern build constraints for schema literals.
func Min(v float64) Constraint       { return Constraint{Type: ConstraintMin, Value: v} }
func Max(v float64) Constraint       { return Constraint{Type: ConstraintMax, Value: v} }
func MinLength(n int) Constraint     { return Constraint{Type: ConstraintMinLength, Value: n} }
func MaxLength(n int) Constraint     { return Constraint{Type: ConstraintMaxLength, Value: n} }
func Pattern(expr string) Constraint { return Constraint{Type: ConstraintPattern, Value: regexp.MustCompile(expr)} }

// WithMessage returns a copy of the constraint with a custom message.
func (c Constraint) WithMessage(msg string) Constraint {
	c.Message = msg
	return c
}

// ConstraintError represents a validation failure.
type ConstraintError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Value      any    `json:"value,omitempty"`
	Message    string `json:"message"`
}

func (e ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds all validation errors for one submission.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ConstraintError `json:"errors,omitempty"`
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(field, constraint string, value any, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ConstraintError{
		Field:      field,
		Constraint: constraint,
		Value:      value,
		Message:    message,
	})
}

// For returns the first message recorded for field, or "".
func (r ValidationResult) For(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Fields returns a field -> first message map, the shape forms render.
func (r ValidationResult) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Error returns a combined error message.
func (r ValidationResult) Error() string {
	if r.Valid {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidateConstraint validates an already-typed value against a single constraint.
// This is a PURE function.
func ValidateConstraint(fieldName string, value any, c Constraint) *ConstraintError {
	switch c.Type {
	case ConstraintMin:
		return validateMin(fieldName, value, c)
	case ConstraintMax:
		return validateMax(fieldName, value, c)
	case ConstraintMinLength:
		return validateMinLength(fieldName, value, c)
	case ConstraintMaxLength:
		return validateMaxLength(fieldName, value, c)
	case ConstraintPattern:
		return validatePattern(fieldName, value, c)
	default:
		return nil
	}
}

func validateMin(field string, value any, c Constraint) *ConstraintError {
	min, ok := toFloat64(c.Value)
	if !ok {
		return nil
	}
	val, ok := toFloat64(value)
	if !ok {
		return nil
	}

	if val < min {
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("must be at least %v", min)
		}
		return &ConstraintError{Field: field, Constraint: string(ConstraintMin), Value: value, Message: msg}
	}
	return nil
}

func validateMax(field string, value any, c Constraint) *ConstraintError {
	max, ok := toFloat64(c.Value)
	if !ok {
		return nil
	}
	val, ok := toFloat64(value)
	if !ok {
		return nil
	}

	if val > max {
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("must be at most %v", max)
		}
		return &ConstraintError{Field: field, Constraint: string(ConstraintMax), Value: value, Message: msg}
	}
	return nil
}

func validateMinLength(field string, value any, c Constraint) *ConstraintError {
	minLen, ok := c.Value.(int)
	if !ok {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}

	if n := utf8.RuneCountInString(str); n < minLen {
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("must be at least %d characters", minLen)
		}
		return &ConstraintError{Field: field, Constraint: string(ConstraintMinLength), Value: n, Message: msg}
	}
	return nil
}

func validateMaxLength(field string, value any, c Constraint) *ConstraintError {
	maxLen, ok := c.Value.(int)
	if !ok {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return nil
	}

	if n := utf8.RuneCountInString(str); n > maxLen {
		msg := c.Message
		if msg == "" {
			msg = fmt.Sprintf("must be at most %d characters", maxLen)
		}
		return &ConstraintError{Field: field, Constraint: string(ConstraintMaxLength), Value: n, Message: msg}
	}
	return nil
}

func validatePattern(field string, value any, c Constraint) *ConstraintError {
	var re *regexp.Regexp
	switch p := c.Value.(type) {
	case *regexp.Regexp:
		re = p
	case string:
		compiled, err := regexp.Compile(p)
		if err != nil {
			return nil
		}
		re = compiled
	default:
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return nil
	}

	if !re.MatchString(str) {
		msg := c.Message
		if msg == "" {
			msg = "does not match required pattern"
		}
		return &ConstraintError{Field: field, Constraint: string(ConstraintPattern), Value: value, Message: msg}
	}
	return nil
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
