package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrValidation     = errors.New("validation error")
	ErrMalformedInput = errors.New("malformed input")
	ErrToneParse      = errors.New("tone parse error")
)

// MalformedInputError reports a source file that violates its expected shape.
// Line is 1-based; zero means the problem is not tied to a line.
type MalformedInputError struct {
	Source string
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input: %s:%d: %s", e.Source, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed input: %s: %s", e.Source, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// NewMalformedInputError creates a MalformedInputError.
func NewMalformedInputError(source string, line int, format string, args ...any) *MalformedInputError {
	return &MalformedInputError{Source: source, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// ToneParseError reports a pronunciation that does not fit the
// single-syllable, at-most-one-tone pattern.
type ToneParseError struct {
	Input      string
	Translated string // after NFD and tone-mark translation
}

func (e *ToneParseError) Error() string {
	return fmt.Sprintf("tone parse: %q (analyzed as %q) is not a single toned syllable", e.Input, e.Translated)
}

func (e *ToneParseError) Unwrap() error { return ErrToneParse }

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
