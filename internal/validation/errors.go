package validation

import (
	"sort"
	"strings"
)

// Error is returned when one or more fields fail their rules
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// FieldError builds an Error for a single field
func FieldError(field, msg string) *Error {
	return &Error{Fields: map[string][]string{field: {msg}}}
}
