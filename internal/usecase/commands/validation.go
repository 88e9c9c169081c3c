package commands

import (
	"sort"
	"strings"
)

// ValidationError collects every failed field of a request. Validation never
// stops at the first problem, so a caller fixing a form sees all issues at
// once.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed:")
	for _, f := range fields {
		b.WriteString(" ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e.Fields[f])
		b.WriteString(";")
	}
	return strings.TrimSuffix(b.String(), ";")
}
