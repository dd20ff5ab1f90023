// Package errors provides structured error types and exit codes for Suitegen.
package errors

import (
	"fmt"
	"strings"
)

// Exit codes reported by the CLI.
const (
	ExitSuccess         = 0 // Success
	ExitRuntimeError    = 1 // Runtime error (I/O failure outside emission, etc.)
	ExitValidationError = 2 // Invalid input (collection or environment document)
	ExitEmissionError   = 3 // A generated file could not be written
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindStructural
	KindEnvironment
	KindEmission
	KindNotFound
)

// SuitegenError is the base error type for Suitegen.
type SuitegenError struct {
	Kind     ErrorKind
	Message  string
	Node     string   // Offending node path if applicable
	Problems []string // Batched validation problems if applicable
	Cause    error    // Underlying error
}

func (e *SuitegenError) Error() string {
	msg := e.Message
	if e.Node != "" {
		msg = fmt.Sprintf("[%s] %s", e.Node, e.Message)
	}
	if len(e.Problems) > 0 {
		return msg + ":\n  - " + strings.Join(e.Problems, "\n  - ")
	}
	return msg
}

func (e *SuitegenError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *SuitegenError) ExitCode() int {
	switch e.Kind {
	case KindStructural, KindEnvironment:
		return ExitValidationError
	case KindEmission:
		return ExitEmissionError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *SuitegenError {
	return &SuitegenError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *SuitegenError {
	return New(fmt.Sprintf(format, args...))
}

// Structural creates an error for a collection document that failed validation.
// The problems slice carries every collected finding so callers can report the
// whole batch, not just the first.
func Structural(message string, problems []string) *SuitegenError {
	return &SuitegenError{
		Kind:     KindStructural,
		Message:  message,
		Problems: problems,
	}
}

// Environment creates an error for a malformed environment document.
func Environment(message string, problems []string) *SuitegenError {
	return &SuitegenError{
		Kind:     KindEnvironment,
		Message:  message,
		Problems: problems,
	}
}

// Emission creates an error for a node whose output file could not be written.
func Emission(node, message string) *SuitegenError {
	return &SuitegenError{
		Kind:    KindEmission,
		Node:    node,
		Message: message,
	}
}

// Emissionf creates an emission error with formatting.
func Emissionf(node, format string, args ...interface{}) *SuitegenError {
	return Emission(node, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *SuitegenError {
	return &SuitegenError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// WrapEmission wraps a write failure, keeping the failed node's identity.
func WrapEmission(err error, node, message string) *SuitegenError {
	return &SuitegenError{
		Kind:    KindEmission,
		Node:    node,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *SuitegenError {
	return &SuitegenError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if se, ok := err.(*SuitegenError); ok {
		return se.ExitCode()
	}
	return ExitRuntimeError
}
