// Package validation checks parsed model output and request bodies for required fields.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParseError means the candidate text is not a well-formed JSON object.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid JSON response from AI: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError lists required fields that are absent or null, in declared order.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Missing, ", "))
}

// RequiredSchema builds a top-level presence schema: every field must exist and must not be null.
// Nested shape is not checked.
func RequiredSchema(required []string) map[string]interface{} {
	properties := make(map[string]interface{}, len(required))
	for _, field := range required {
		properties[field] = map[string]interface{}{
			"not": map[string]interface{}{"type": "null"},
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		fields := make([]interface{}, len(required))
		for i, f := range required {
			fields[i] = f
		}
		schema["required"] = fields
	}
	return schema
}

// ValidateRequired parses candidate as a JSON object and checks the required fields.
func ValidateRequired(candidate string, required []string) (map[string]interface{}, error) {
	var parsed interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &ParseError{Err: err}
	}

	doc, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, &ParseError{Err: fmt.Errorf("expected a JSON object, got %s", jsonKind(parsed))}
	}

	if err := ValidateDocument(doc, required); err != nil {
		return nil, err
	}
	return doc, nil
}

// ValidateDocument checks an already parsed object.
func ValidateDocument(doc map[string]interface{}, required []string) error {
	schemaLoader := gojsonschema.NewGoLoader(RequiredSchema(required))
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	// gojsonschema reports errors in map order; rebuild the list in declared order.
	var missing []string
	for _, field := range required {
		if v, exists := doc[field]; !exists || v == nil {
			missing = append(missing, field)
		}
	}
	return &SchemaError{Missing: missing}
}

// IsTruthy reports whether a decoded JSON value counts as provided in a request body.
// Absent, null, false, 0 and "" do not.
func IsTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// MissingFields returns the fields of body that are not truthy, in the given order.
func MissingFields(body map[string]interface{}, fields ...string) []string {
	var missing []string
	for _, field := range fields {
		if !IsTruthy(body[field]) {
			missing = append(missing, field)
		}
	}
	return missing
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
