// Package errors provides a lightweight structured error type (ModDocError)
// for category-based classification across ingestion, pipeline, and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a moddoc error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Symbol and comment ingestion errors
	CategoryIngest   ErrorCategory = "ingest"
	CategorySymbol   ErrorCategory = "symbol"
	CategoryComments ErrorCategory = "comments"

	// Pipeline errors
	CategoryTransform ErrorCategory = "transform"
	CategoryRender    ErrorCategory = "render"
	CategoryMerge     ErrorCategory = "merge"

	// Runtime and infrastructure errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryGit        ErrorCategory = "git"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution for the unit of work
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ModDocError is a structured error with category, retryability, and context
type ModDocError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ModDocError
type ContextFields map[string]any

// Error implements the error interface
func (e *ModDocError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ModDocError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ModDocError) WithContext(key string, value any) *ModDocError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ModDocError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ModDocError {
	return &ModDocError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ModDocError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ModDocError {
	return &ModDocError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapRetryable creates a new retryable ModDocError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *ModDocError {
	return &ModDocError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if me, ok := err.(*ModDocError); ok {
		return me.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if me, ok := err.(*ModDocError); ok {
		return me.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a ModDocError
func GetCategory(err error) ErrorCategory {
	if me, ok := err.(*ModDocError); ok {
		return me.Category
	}
	return CategoryInternal
}
