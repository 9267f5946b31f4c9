// Package errors provides structured error handling for the relkit CLI.
// It includes categorized errors with actionable remediation guidance.
package errors

import "fmt"

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Configuration errors are caused by invalid or missing configuration.
	// They are fatal before any package processing starts.
	Configuration ErrorCategory = iota
	// Resolution errors occur while computing a package's next version,
	// e.g. an existing tag that fails to parse as a semantic version.
	Resolution
	// Collaborator errors come from git, the hosting API, or version-file
	// mutation. They are fatal for the affected package and never retried.
	Collaborator
	// Runtime errors cover everything else that goes wrong during a run.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Configuration:
		return "Configuration Error"
	case Resolution:
		return "Resolution Error"
	case Collaborator:
		return "Collaborator Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Configuration, Resolution, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Package names the package whose processing failed, when known.
	Package string
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("package %s: %s", e.Package, e.Message)
	}
	return e.Message
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Configuration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewResolutionError creates a new resolution error.
func NewResolutionError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Resolution,
		Message:     message,
		Remediation: remediation,
	}
}

// NewCollaboratorError creates a new collaborator error.
func NewCollaboratorError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Collaborator,
		Message:     message,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
	}
}

// WrapWithMessage wraps an error with a custom message and category.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
	}
}

// ForPackage attaches a package name to the error and returns it.
func (e *CLIError) ForPackage(name string) *CLIError {
	e.Package = name
	return e
}

// IsCLIError checks if an error is a CLIError.
func IsCLIError(err error) bool {
	_, ok := err.(*CLIError)
	return ok
}

// AsCLIError attempts to convert an error to a CLIError.
// Returns nil if the error is not a CLIError.
func AsCLIError(err error) *CLIError {
	cliErr, ok := err.(*CLIError)
	if ok {
		return cliErr
	}
	return nil
}
