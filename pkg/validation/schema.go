package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Issue codes, matching the vocabulary clients already consume.
const (
	CodeInvalidType   = "invalid_type"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeInvalidString = "invalid_string"
	CodeInvalidEnum   = "invalid_enum_value"
	CodeCustom        = "custom"
)

// Issue is a single field-level violation. Path is empty for
// whole-object issues.
type Issue struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

// Rule is one constraint on a string field. Tag is a validator.v10
// constraint expression; every rule of a field is evaluated so a single
// field can report several violations at once.
type Rule struct {
	Tag     string
	Code    string
	Message string
}

// Field declares one property of an object schema.
type Field struct {
	Name     string
	Required bool
	Rules    []Rule
	Default  any // applied when the field is absent and not required
}

// RefineFunc adds cross-field issues. It receives the normalized object,
// so field presence is checked against what survived field validation.
type RefineFunc func(obj map[string]any, add func(Issue))

// ObjectSchema is a declarative rule set for a flat JSON object.
// Fields are validated in declaration order, refinements after that,
// and unknown keys are stripped from the output.
type ObjectSchema struct {
	Fields []Field
	Refine []RefineFunc
}

var ruleEngine = validator.New()

// Parse validates value against the schema. It returns the normalized
// object (defaults applied) and every issue found; it never stops at the
// first violation.
func (s *ObjectSchema) Parse(value any) (map[string]any, []Issue) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, []Issue{{
			Code:    CodeInvalidType,
			Message: "Expected object, received " + typeName(value),
			Path:    []string{},
		}}
	}

	out := make(map[string]any, len(s.Fields))
	var issues []Issue

	for _, f := range s.Fields {
		raw, present := obj[f.Name]
		if !present {
			if f.Required {
				issues = append(issues, Issue{Code: CodeInvalidType, Message: "Required", Path: []string{f.Name}})
			} else if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		str, ok := raw.(string)
		if !ok {
			issues = append(issues, Issue{
				Code:    CodeInvalidType,
				Message: "Expected string, received " + typeName(raw),
				Path:    []string{f.Name},
			})
			continue
		}

		for _, r := range f.Rules {
			if err := ruleEngine.Var(str, r.Tag); err != nil {
				issues = append(issues, Issue{Code: r.Code, Message: r.Message, Path: []string{f.Name}})
			}
		}
		out[f.Name] = str
	}

	for _, refine := range s.Refine {
		refine(out, func(is Issue) { issues = append(issues, is) })
	}

	return out, issues
}

// typeName reports the JSON type of a decoded value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return reflect.TypeOf(v).Kind().String()
	}
}
