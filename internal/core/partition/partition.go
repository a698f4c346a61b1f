package partition

import (
	"fmt"
	"regexp"
	"strings"
)

// Parameter names the host resolves (with inheritance applied) before allocation.
const (
	CategoryParam    = "SA_CCC"
	SubcategoryParam = "SA_SS"
)

var (
	categoryPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	subcategoryPattern = regexp.MustCompile(`^[0-9]{2}$`)
)

// Key identifies one sequence space. The zero value is not a valid key;
// obtain keys through Validate.
type Key struct {
	Category    string
	Subcategory string
}

func (k Key) String() string {
	return k.Category + "/" + k.Subcategory
}

// Reason explains why a key component was rejected.
type Reason string

const (
	ReasonMissing   Reason = "missing"
	ReasonMalformed Reason = "malformed"
)

// FieldError describes one rejected key component.
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Reason  Reason `json:"reason"`
	Pattern string `json:"pattern"`
}

func (e FieldError) String() string {
	if e.Reason == ReasonMissing {
		return fmt.Sprintf("%s is missing", e.Field)
	}
	return fmt.Sprintf("%s=%q does not match %s", e.Field, e.Value, e.Pattern)
}

// ValidationError is returned by Validate when either component is missing or
// malformed. It signals "skip allocation", not a fault.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid partition key"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "invalid partition key: " + strings.Join(msgs, "; ")
}

// Details returns the rejected fields for API error responses.
func (e *ValidationError) Details() map[string]interface{} {
	return map[string]interface{}{"fields": e.Fields}
}

// Validate trims surrounding whitespace from both components and checks them
// against the category and subcategory patterns. Every failing field is
// reported, not only the first.
func Validate(category, subcategory string) (Key, error) {
	category = strings.TrimSpace(category)
	subcategory = strings.TrimSpace(subcategory)

	var fields []FieldError
	if fe, ok := check(CategoryParam, category, categoryPattern); !ok {
		fields = append(fields, fe)
	}
	if fe, ok := check(SubcategoryParam, subcategory, subcategoryPattern); !ok {
		fields = append(fields, fe)
	}
	if len(fields) > 0 {
		return Key{}, &ValidationError{Fields: fields}
	}

	return Key{Category: category, Subcategory: subcategory}, nil
}

func check(field, value string, pattern *regexp.Regexp) (FieldError, bool) {
	if value == "" {
		return FieldError{Field: field, Reason: ReasonMissing, Pattern: pattern.String()}, false
	}
	if !pattern.MatchString(value) {
		return FieldError{Field: field, Value: value, Reason: ReasonMalformed, Pattern: pattern.String()}, false
	}
	return FieldError{}, true
}
