// Package errors provides typed errors for failedjobs.
//
// Each error kind maps to one failure class of a run: bad command-line
// options, configuration that cannot be resolved, malformed accounting
// records and scan I/O. All error types implement the standard error
// interface and support errors.Is() and errors.As() from the standard
// library and cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// OptionError represents a command-line option that could not be parsed.
type OptionError struct {
	Option  string // Flag as typed, e.g. "-s" or "--since"
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("option %s: %s", e.Option, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *OptionError) Unwrap() error {
	return e.Cause
}

// NewOptionError creates a new OptionError.
func NewOptionError(option, message string) *OptionError {
	return &OptionError{Option: option, Message: message}
}

// NewOptionErrorWithCause wraps a flag parsing failure.
func NewOptionErrorWithCause(cause error) *OptionError {
	return &OptionError{Message: cause.Error(), Cause: cause}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// RecordErrorKind classifies a malformed accounting record.
type RecordErrorKind string

// TooFewFields is reported when a data line splits into fewer fields than
// the accounting format requires.
const TooFewFields RecordErrorKind = "TooFewFields"

// RecordError represents an accounting line that cannot be decoded.
type RecordError struct {
	Kind   RecordErrorKind
	Line   int // 1-based line number in the input, 0 if unknown
	Fields int // Number of fields found
	Want   int // Minimum number of fields
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("record on line %d: %s (got %d fields, want at least %d)", e.Line, e.Kind, e.Fields, e.Want)
	}
	return fmt.Sprintf("record: %s (got %d fields, want at least %d)", e.Kind, e.Fields, e.Want)
}

// NewTooFewFieldsError creates a RecordError of kind TooFewFields.
func NewTooFewFieldsError(fields, want int) *RecordError {
	return &RecordError{Kind: TooFewFields, Fields: fields, Want: want}
}

// Scan operations reported in ScanError.Operation.
const (
	OpOpenInput   = "open input"
	OpReadInput   = "read input"
	OpOpenOutput  = "open output"
	OpWriteOutput = "write output"
)

// ScanError represents an I/O failure while reading the accounting file or
// writing the report.
type ScanError struct {
	Operation string // One of the Op* constants
	Path      string
	Cause     error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	msg := "scan " + e.Operation + " failed"
	if e.Path != "" {
		msg = fmt.Sprintf("scan %s %s failed", e.Operation, e.Path)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new ScanError.
func NewScanError(operation, path string, cause error) *ScanError {
	return &ScanError{Operation: operation, Path: path, Cause: cause}
}

// IsOptionError checks if an error or any error in its chain is an OptionError.
func IsOptionError(err error) bool {
	var optErr *OptionError
	return errors.As(err, &optErr)
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsRecordError checks if an error or any error in its chain is a RecordError.
func IsRecordError(err error) bool {
	var recErr *RecordError
	return errors.As(err, &recErr)
}

// IsScanError checks if an error or any error in its chain is a ScanError.
func IsScanError(err error) bool {
	var scanErr *ScanError
	return errors.As(err, &scanErr)
}

// Re-exports from cockroachdb/errors so callers need a single import.
var (
	// New creates a new error with a stack trace.
	New = errors.New

	// Newf creates a new formatted error with a stack trace.
	Newf = errors.Newf

	// Wrap wraps an error with a message.
	Wrap = errors.Wrap

	// Wrapf wraps an error with a formatted message.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As
)
