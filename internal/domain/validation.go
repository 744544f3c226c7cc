package domain

import "strings"

// FieldError is a single schema violation on a persisted entity.
type FieldError struct {
	Path    string
	Message string
}

// ValidationError is returned by the stores when an entity fails its schema
// rules on save. The HTTP layer recognizes it and rewrites it to a 400.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

// Error renders "<Entity> validation failed: path: msg, path: msg".
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Message)
	}
	return e.Entity + " validation failed: " + strings.Join(parts, ", ")
}
