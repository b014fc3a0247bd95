// Package schema provides declarative validation schemas for entity input.
// A Schema turns raw form or JSON strings into typed values and reports
// every field that fails its type or constraint rules.
// This package has NO dependencies on I/O.
package schema

import (
	"math"
	"strconv"
	"strings"
)

// Schema describes the accepted input of one entity.
type Schema struct {
	Entity string
	Fields []Field
}

// Parse converts raw string input into typed Values and validates it.
// All field errors are collected; Values holds the zero value for any
// field that failed to parse.
// This is a PURE function.
func (s Schema) Parse(raw map[string]string) (Values, ValidationResult) {
	result := ValidationResult{Valid: true}
	values := make(Values, len(s.Fields))

	for _, f := range s.Fields {
		str := strings.TrimSpace(raw[f.Name])

		if f.Type == FieldTypeBool {
			values[f.Name] = ParseBool(str)
			continue
		}

		if str == "" {
			values[f.Name] = zeroValue(f.Type)
			if f.Required {
				result.AddError(f.Name, "required", nil, "is required")
			}
			continue
		}

		v, msg := convert(f.Type, str)
		if msg != "" {
			values[f.Name] = zeroValue(f.Type)
			result.AddError(f.Name, "type", str, msg)
			continue
		}
		values[f.Name] = v

		for _, c := range f.Constraints {
			if cerr := ValidateConstraint(f.Name, v, c); cerr != nil {
				result.Errors = append(result.Errors, *cerr)
				result.Valid = false
			}
		}
	}

	return values, result
}

// ParseBool accepts the usual checkbox and flag spellings for true.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func convert(t FieldType, s string) (any, string) {
	switch t {
	case FieldTypeInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, "must be a whole number"
		}
		return n, ""
	case FieldTypeFloat:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, "must be a number"
		}
		return n, ""
	default:
		return s, ""
	}
}

func zeroValue(t FieldType) any {
	switch t {
	case FieldTypeInt:
		return int64(0)
	case FieldTypeFloat:
		return float64(0)
	case FieldTypeBool:
		return false
	default:
		return ""
	}
}

// Values holds typed input produced by Schema.Parse.
type Values map[string]any

// String returns a string field, or "" when absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns an int field, or 0 when absent.
func (v Values) Int(name string) int64 {
	n, _ := v[name].(int64)
	return n
}

// Float returns a float field, or 0 when absent.
func (v Values) Float(name string) float64 {
	n, _ := v[name].(float64)
	return n
}

// Bool returns a bool field, or false when absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}
