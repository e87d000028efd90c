package joystick

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	z "github.com/Oudwins/zog"
	"joystick.io/fleet-control/pkg/common"
)

const (
	ParamTypeString  = "string"
	ParamTypeNumber  = "number"
	ParamTypeInteger = "integer"
	ParamTypeBoolean = "boolean"
)

// ParamSchema is the JSON-Schema subset actions use to declare parameters.
type ParamSchema struct {
	Type       string                   `json:"type,omitempty"`
	Properties map[string]ParamProperty `json:"properties"`
	Required   []string                 `json:"required,omitempty"`
}

type ParamProperty struct {
	Type        string `json:"type,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

type ParamIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseParamSchema decodes a stored schema. Empty input and JSON null yield
// a nil schema, meaning the action takes no parameters.
func ParseParamSchema(raw []byte) (*ParamSchema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var schema ParamSchema
	if err := json.Unmarshal(trimmed, &schema); err != nil {
		return nil, fmt.Errorf("invalid parameter schema: %w", err)
	}
	return &schema, nil
}

type coerceFunc func(value any) (any, error)

type paramField struct {
	name       string
	kind       string
	required   bool
	hasDefault bool
	def        any
	coerce     coerceFunc
}

// ParamValidator checks and coerces a parameter map against a ParamSchema.
type ParamValidator struct {
	fields []paramField
}

// BuildParamValidator turns a schema into a validator. Each property becomes
// one field: numbers and integers are coerced from numeric strings, strings
// (with an optional enum) and booleans must already have that type, any other
// type is accepted as given. A field is optional iff it is not listed in
// required; a missing boolean defaults to false.
func BuildParamValidator(schema *ParamSchema) *ParamValidator {
	v := &ParamValidator{}
	if schema == nil {
		return v
	}

	for _, name := range common.SortedKeys(schema.Properties) {
		prop := schema.Properties[name]
		v.fields = append(v.fields, paramField{
			name:       name,
			kind:       prop.Type,
			required:   slices.Contains(schema.Required, name),
			hasDefault: prop.Default != nil,
			def:        prop.Default,
			coerce:     coercerFor(prop),
		})
	}
	return v
}

func (v *ParamValidator) Fields() []string {
	return common.Mapper(v.fields, func(f paramField) string { return f.name })
}

func (v *ParamValidator) IsOptional(name string) bool {
	for _, f := range v.fields {
		if f.name == name {
			return !f.required
		}
	}
	return true
}

// Validate returns the coerced values of the declared fields and one issue
// per rejected field. Undeclared input keys are not copied.
func (v *ParamValidator) Validate(input map[string]any) (map[string]any, []ParamIssue) {
	out := map[string]any{}
	var issues []ParamIssue

	for _, f := range v.fields {
		value, present := input[f.name]
		if present && value == nil {
			present = false
		}

		if !present {
			switch {
			case f.hasDefault:
				value = f.def
			case f.kind == ParamTypeBoolean:
				out[f.name] = false
				continue
			case f.required:
				issues = append(issues, ParamIssue{Field: f.name, Message: "is required"})
				continue
			default:
				continue
			}
		}

		coerced, err := f.coerce(value)
		if err != nil {
			issues = append(issues, ParamIssue{Field: f.name, Message: err.Error()})
			continue
		}
		out[f.name] = coerced
	}
	return out, issues
}

func coercerFor(prop ParamProperty) coerceFunc {
	switch prop.Type {
	case ParamTypeString:
		return stringCoercer(prop.Enum)
	case ParamTypeNumber:
		return numberCoercer(false)
	case ParamTypeInteger:
		return numberCoercer(true)
	case ParamTypeBoolean:
		return booleanCoercer()
	default:
		return func(value any) (any, error) { return value, nil }
	}
}

func stringCoercer(enum []any) coerceFunc {
	schema := z.String()
	allowed := common.Mapper(enum, FormatValue)

	return func(value any) (any, error) {
		// only numbers are coerced; a string field takes strings alone
		if _, ok := value.(string); !ok {
			return nil, errors.New("expected string")
		}
		var out string
		if issues := schema.Parse(value, &out); len(issues) > 0 {
			return nil, errors.New("expected string")
		}
		if len(allowed) > 0 && !slices.Contains(allowed, out) {
			return nil, fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
		}
		return out, nil
	}
}

func numberCoercer(integer bool) coerceFunc {
	schema := z.Float64()

	return func(value any) (any, error) {
		var out float64
		if issues := schema.Parse(value, &out); len(issues) > 0 {
			return nil, errors.New("expected number")
		}
		if math.IsNaN(out) || math.IsInf(out, 0) {
			return nil, errors.New("expected number")
		}
		if !integer {
			return out, nil
		}
		if out != math.Trunc(out) {
			return nil, errors.New("expected integer")
		}
		return int64(out), nil
	}
}

func booleanCoercer() coerceFunc {
	schema := z.Bool()

	return func(value any) (any, error) {
		if _, ok := value.(bool); !ok {
			return nil, errors.New("expected boolean")
		}
		var out bool
		if issues := schema.Parse(value, &out); len(issues) > 0 {
			return nil, errors.New("expected boolean")
		}
		return out, nil
	}
}
