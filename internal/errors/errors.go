// Package errors provides structured error handling for the generator.
// It defines error codes, categories, and formatting for both human-readable
// terminal output and machine-parseable JSON.
package errors

import (
	stderrors "errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrorCode represents a unique error code
type ErrorCode string

// ErrorCategory represents the category of generator error
type ErrorCategory string

const (
	// CategoryDeveloper represents malformed builder input
	CategoryDeveloper ErrorCategory = "developer"
	// CategoryUnsupportedValue represents values the renderer cannot express
	CategoryUnsupportedValue ErrorCategory = "unsupported_value"
	// CategoryConfig represents configuration and descriptor errors (CFG500-599)
	CategoryConfig ErrorCategory = "config"
	// CategoryWorkspace represents output write errors (WRK700-799)
	CategoryWorkspace ErrorCategory = "workspace"
)

// ErrorSeverity indicates the severity level of an error
type ErrorSeverity string

const (
	// SeverityError indicates an error that aborts generation
	SeverityError ErrorSeverity = "error"
	// SeverityWarning indicates a problem that does not block generation
	SeverityWarning ErrorSeverity = "warning"
	// SeverityInfo indicates informational messages
	SeverityInfo ErrorSeverity = "info"
)

// GeneratorError is a structured error raised while generating code
type GeneratorError struct {
	// Code is the unique error code (e.g., "GEN601")
	Code ErrorCode `json:"code"`
	// Type is a machine-readable error type identifier
	Type string `json:"type"`
	// Category is the error category
	Category ErrorCategory `json:"category"`
	// Severity is the error severity level
	Severity ErrorSeverity `json:"severity"`
	// Message is the primary error message
	Message string `json:"message"`
	// Resource names the resource being generated (optional)
	Resource string `json:"resource,omitempty"`
	// File is the output or input file involved (optional)
	File string `json:"file,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`
	// Examples lists example fixes (optional)
	Examples []string `json:"examples,omitempty"`
	// Documentation is a URL to detailed error documentation
	Documentation string `json:"documentation,omitempty"`

	cause error
}

// Error implements the error interface
func (e *GeneratorError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any
func (e *GeneratorError) Unwrap() error {
	return e.cause
}

// Format returns a human-readable error message for terminal output
func (e *GeneratorError) Format() string {
	return FormatError(e)
}

// ToJSON returns the error as an indented JSON string
func (e *GeneratorError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithResource sets the resource name for the error
func (e *GeneratorError) WithResource(resource string) *GeneratorError {
	e.Resource = resource
	return e
}

// WithFile sets the file for the error
func (e *GeneratorError) WithFile(file string) *GeneratorError {
	e.File = file
	return e
}

// WithSuggestion sets a suggestion for fixing the error
func (e *GeneratorError) WithSuggestion(suggestion string) *GeneratorError {
	e.Suggestion = suggestion
	return e
}

// WithExamples sets example fixes for the error
func (e *GeneratorError) WithExamples(examples ...string) *GeneratorError {
	e.Examples = examples
	return e
}

// WithCause records the underlying error
func (e *GeneratorError) WithCause(cause error) *GeneratorError {
	e.cause = cause
	return e
}

// As extracts a *GeneratorError from err's chain
func As(err error) (*GeneratorError, bool) {
	var target *GeneratorError
	if stderrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// Is reports whether err, or any error of a list in its chain, carries the
// given code
func Is(err error, code ErrorCode) bool {
	if list, ok := AsList(err); ok {
		for _, e := range list {
			if e.Code == code {
				return true
			}
		}
	}
	target, ok := As(err)
	return ok && target.Code == code
}

// AsList extracts an ErrorList from err's chain
func AsList(err error) (ErrorList, bool) {
	var list ErrorList
	if stderrors.As(err, &list) {
		return list, true
	}
	return nil, false
}

// ErrorList is a collection of generator errors
type ErrorList []*GeneratorError

// Error implements the error interface
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	return FormatErrorList(el)
}

// Unwrap exposes the listed errors to errors.Is and errors.As
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, err := range el {
		errs[i] = err
	}
	return errs
}

// HasErrors returns true if the list contains any errors (excludes warnings/info)
func (el ErrorList) HasErrors() bool {
	for _, err := range el {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if the list contains any warnings
func (el ErrorList) HasWarnings() bool {
	for _, err := range el {
		if err.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of errors by severity
func (el ErrorList) ErrorCount() (errors, warnings, info int) {
	for _, err := range el {
		switch err.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			info++
		}
	}
	return
}

// documentationURL returns the documentation URL for an error code
func documentationURL(code ErrorCode) string {
	return fmt.Sprintf("https://github.com/wpkernel/phpgen/blob/main/docs/errors.md#%s", code)
}

// newError creates a new GeneratorError with the given parameters
func newError(
	code ErrorCode,
	typ string,
	category ErrorCategory,
	severity ErrorSeverity,
	message string,
) *GeneratorError {
	return &GeneratorError{
		Code:          code,
		Type:          typ,
		Category:      category,
		Severity:      severity,
		Message:       message,
		Documentation: documentationURL(code),
	}
}
