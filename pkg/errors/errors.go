package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures theme definition validation issues.
// Field names the first offending field; Fields lists all of them.
type ValidationError struct {
	Field   string
	Message string
	Fields  []string
	Err     error
}

// NewValidationError constructs a ValidationError for a single field.
func NewValidationError(field, message string, err error) error {
	var fields []string
	if field != "" {
		fields = []string{field}
	}
	return &ValidationError{Field: field, Message: message, Fields: fields, Err: err}
}

// NewMultiValidationError constructs a ValidationError listing several invalid fields.
func NewMultiValidationError(fields []string, message string, err error) error {
	first := ""
	if len(fields) > 0 {
		first = fields[0]
	}
	return &ValidationError{Field: first, Message: message, Fields: append([]string(nil), fields...), Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Fields) > 1 {
		return fmt.Sprintf("validation error: %s: %s", strings.Join(e.Fields, ", "), e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError reports a lookup of an unknown named resource.
type NotFoundError struct {
	Kind string
	Name string
}

// NewNotFoundError constructs a NotFoundError.
func NewNotFoundError(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind != "" {
		return fmt.Sprintf("%s not found: %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("not found: %q", e.Name)
}

// ConfigurationError reports dynamic rules that are individually valid but
// ambiguous together, such as overlapping time-of-day intervals.
type ConfigurationError struct {
	Field   string
	Message string
}

// NewConfigurationError constructs a ConfigurationError.
func NewConfigurationError(field, message string) error {
	return &ConfigurationError{Field: field, Message: message}
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}
