package validation

import (
	"errors"
	"strings"
)

// ErrNoData is returned by Transform when the request carried no body at
// all; its text is the client-facing message.
var ErrNoData = errors.New("No data provided")

// Detail is the flattened form of an Issue exposed in error responses.
// Joint issues carry their field names joined by ", ".
type Detail struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error carries every violation found by a schema. Details excludes
// whole-object issues (empty path); Issues keeps them for the boundary
// translator.
type Error struct {
	Issues  []Issue
	Details []Detail
}

func (e *Error) Error() string {
	return "validation failed"
}

// Transform runs value through the schema: nil input fails with ErrNoData
// before any schema evaluation, invalid input fails with *Error, and valid
// input yields the normalized object with defaults applied.
func Transform(schema *ObjectSchema, value any) (map[string]any, error) {
	if noData(value) {
		return nil, ErrNoData
	}

	out, issues := schema.Parse(value)
	if len(issues) == 0 {
		return out, nil
	}

	details := make([]Detail, 0, len(issues))
	for _, is := range issues {
		path := strings.Join(is.Path, ", ")
		if path == "" {
			continue
		}
		details = append(details, Detail{Path: path, Message: is.Message, Code: is.Code})
	}
	return nil, &Error{Issues: issues, Details: details}
}

// noData reports whether value carries no payload at all. A nil map
// wrapped in the any interface is still no data; comparing the interface
// against nil alone would miss it.
func noData(value any) bool {
	if value == nil {
		return true
	}
	m, ok := value.(map[string]any)
	return ok && m == nil
}
