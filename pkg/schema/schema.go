package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema wraps an OpenAPI schema used to validate widget props and widget
// output values.
type Schema struct {
	raw *openapi3.Schema
}

// New wraps raw. A nil raw yields a schema that accepts everything.
func New(raw *openapi3.Schema) *Schema {
	return &Schema{raw: raw}
}

// Raw exposes the underlying OpenAPI schema.
func (s *Schema) Raw() *openapi3.Schema {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate checks value against the schema. The value is normalized to its
// JSON shape first, so Go-side values (typed slices, file descriptors) can be
// passed directly. A nil schema accepts every value.
func (s *Schema) Validate(value any) error {
	if s == nil || s.raw == nil {
		return nil
	}
	if err := s.raw.VisitJSON(Normalize(value), openapi3.MultiErrors()); err != nil {
		return newValidationError(err)
	}
	return nil
}

// Example returns a representative value for the schema: its default when
// set, otherwise the first enum entry, otherwise a zero value for its type.
func (s *Schema) Example() any {
	if s == nil || s.raw == nil {
		return nil
	}
	if s.raw.Default != nil {
		return s.raw.Default
	}
	if len(s.raw.Enum) > 0 {
		return s.raw.Enum[0]
	}
	types := s.raw.Type
	switch {
	case types.Is("string"):
		return ""
	case types.Is("number"), types.Is("integer"):
		return float64(0)
	case types.Is("boolean"):
		return false
	case types.Is("array"):
		return []any{}
	case types.Is("object"):
		example := map[string]any{}
		for name, prop := range s.raw.Properties {
			if prop == nil || prop.Value == nil {
				continue
			}
			example[name] = New(prop.Value).Example()
		}
		return example
	}
	return nil
}

// Issue describes a single schema violation. Path is a dotted field path
// relative to the validated value; empty for the root.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found in one Validate call.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "schema: value rejected"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
			continue
		}
		parts = append(parts, issue.Message)
	}
	return "schema: " + strings.Join(parts, "; ")
}

func newValidationError(err error) *ValidationError {
	ve := &ValidationError{}
	ve.collect(err)
	if len(ve.Issues) == 0 {
		ve.Issues = append(ve.Issues, Issue{Message: strings.TrimSpace(err.Error())})
	}
	return ve
}

func (e *ValidationError) collect(err error) {
	switch t := err.(type) {
	case openapi3.MultiError:
		for _, sub := range t {
			e.collect(sub)
		}
	case *openapi3.SchemaError:
		e.Issues = append(e.Issues, issueFromSchemaError(t))
	default:
		var se *openapi3.SchemaError
		if errors.As(err, &se) {
			e.Issues = append(e.Issues, issueFromSchemaError(se))
			return
		}
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			e.Issues = append(e.Issues, Issue{Message: msg})
		}
	}
}

func issueFromSchemaError(se *openapi3.SchemaError) Issue {
	path := strings.Join(se.JSONPointer(), ".")
	msg := strings.TrimSpace(se.Reason)
	if msg == "" {
		msg = strings.TrimSpace(se.Error())
	}
	return Issue{Path: path, Message: msg}
}
