package schema

// Field defines one input field of an entity.
type Field struct {
	// Name is the form/JSON key and the key in parsed Values.
	Name string

	// Label is shown next to the form control.
	Label string

	// Type is the field type. See FieldType constants.
	Type FieldType

	// Required rejects missing or blank input. Ignored for bool fields.
	Required bool

	// Help is optional hint text rendered under the control.
	Help string

	// Constraints defines validation rules for this field.
	Constraints []Constraint
}

// FieldType represents the type of a schema field.
type FieldType string

const (
	FieldTypeString FieldType = "string" // single line
	FieldTypeText   FieldType = "text"   // multi line
	FieldTypeInt    FieldType = "int"
	FieldTypeFloat  FieldType = "float"
	FieldTypeBool   FieldType = "bool"
)

// IsNumeric reports whether the field holds a number.
func (f Field) IsNumeric() bool {
	return f.Type == FieldTypeInt || f.Type == FieldTypeFloat
}

// Control returns the form control used to render the field:
// "input", "textarea" or "checkbox".
func (f Field) Control() string {
	switch f.Type {
	case FieldTypeText:
		return "textarea"
	case FieldTypeBool:
		return "checkbox"
	default:
		return "input"
	}
}

// InputType returns the HTML input type attribute for "input" controls.
func (f Field) InputType() string {
	if f.IsNumeric() {
		return "number"
	}
	return "text"
}

// Step returns the HTML step attribute for numeric inputs.
func (f Field) Step() string {
	switch f.Type {
	case FieldTypeFloat:
		return "0.01"
	case FieldTypeInt:
		return "1"
	}
	return ""
}

// MaxLength returns the max_length constraint value, or 0 when unbounded.
// Forms use it for the maxlength attribute.
func (f Field) MaxLength() int {
	for _, c := range f.Constraints {
		if c.Type == ConstraintMaxLength {
			if n, ok := c.Value.(int); ok {
				return n
			}
		}
	}
	return 0
}
