// Package jserr defines the two error categories the validator can raise.
// Unlike the vocabulary-based validator this module is descended from,
// reporting is fail-fast: a single error aborts validation immediately,
// so there is no multi-error aggregation type here.
package jserr

import "fmt"

// ValidationError reports that an instance does not conform to its schema.
// Path is a dotted, index-qualified location such as "root.users[3].age".
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// NewValidationError constructs a ValidationError with a formatted message.
func NewValidationError(path, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// SchemaError reports a structural problem with the schema itself: a
// malformed reference, a duplicate URI, or a keyword the validator refuses
// to evaluate (allOf, anyOf, oneOf, not, format, pattern).
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string {
	return e.Message
}

// NewSchemaError constructs a SchemaError with a formatted message.
func NewSchemaError(format string, args ...any) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf(format, args...)}
}

// Unsupported reports that schema uses a keyword the validator is required
// to detect and refuse to evaluate, rather than silently ignore.
func Unsupported(keyword string) *SchemaError {
	return NewSchemaError("keyword %q is not implemented", keyword)
}
