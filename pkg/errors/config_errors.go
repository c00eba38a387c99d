// pkg/errors/config_errors.go
package errors

import (
	"fmt"
)

// ParseError represents a failure to read or parse a configuration file.
// It is returned when the on-disk content cannot be interpreted as a
// forest of sibling configuration blocks.
type ParseError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (pe *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", pe.Path, pe.Message)
}

// Unwrap returns the underlying cause
func (pe *ParseError) Unwrap() error {
	return pe.Cause
}

// ReferentialIntegrityError reports an active-response entry that names a
// command with no matching <command> definition.
type ReferentialIntegrityError struct {
	Command string `json:"command"`
}

// Error implements the error interface
func (re *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("active-response references undefined command %q", re.Command)
}

// ValidationError describes a field value rejected by a validator. Editing
// operations report rejections through their boolean result and log the
// reason; ValidationError carries the same information for callers that
// aggregate outcomes, such as plan application.
type ValidationError struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", ve.Field, ve.Value, ve.Reason)
}

// Helper functions for creating common error types

func NewParseError(path string, message string, cause error) *ParseError {
	return &ParseError{
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

func NewReferentialIntegrityError(command string) *ReferentialIntegrityError {
	return &ReferentialIntegrityError{
		Command: command,
	}
}

func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}
