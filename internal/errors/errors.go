package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// NotFound indicates no node or declaration exists at the requested location
	NotFound ErrorCode = "NOT_FOUND"
	// UnsupportedKind indicates the identifier is recognized but not renameable
	UnsupportedKind ErrorCode = "UNSUPPORTED_KIND"
	// RangeError indicates an invalid byte range against a file's text
	RangeError ErrorCode = "RANGE_ERROR"
	// IoError indicates a missing file at load or a write failure at save
	IoError ErrorCode = "IO_ERROR"
	// AmbiguousType indicates scope resolution failed for a reference
	AmbiguousType ErrorCode = "AMBIGUOUS_TYPE"
	// InvalidArgument indicates bad command input
	InvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// PlanConflict indicates overlapping edits in one file
	PlanConflict ErrorCode = "PLAN_CONFLICT"
	// PartialApply indicates some files were saved before a save failure
	PartialApply ErrorCode = "PARTIAL_APPLY"
	// ConfigInvalid indicates a malformed or inconsistent config file
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// NotAProject indicates the working directory is not a Java project
	NotAProject ErrorCode = "NOT_A_PROJECT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// JrefError represents a jref error with code, message, and suggestions
type JrefError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new JrefError without a cause
func New(code ErrorCode, message string) *JrefError {
	return &JrefError{Code: code, Message: message}
}

// Wrap creates a new JrefError wrapping an underlying error
func Wrap(code ErrorCode, message string, cause error) *JrefError {
	return &JrefError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *JrefError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *JrefError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *JrefError) WithDetails(details interface{}) *JrefError {
	e.Details = details
	return e
}

// WithFixes attaches suggested fixes to the error
func (e *JrefError) WithFixes(fixes ...FixAction) *JrefError {
	e.SuggestedFixes = append(e.SuggestedFixes, fixes...)
	return e
}

// CodeOf extracts the error code from err, or InternalError for foreign errors
func CodeOf(err error) ErrorCode {
	var je *JrefError
	if errors.As(err, &je) {
		return je.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	PartialApply: {
		{
			Type:        RunCommand,
			Command:     "jref restore --list",
			Safe:        true,
			Description: "List backup snapshots taken before the rename",
		},
	},
	NotAProject: {
		{
			Type:        RunCommand,
			Command:     "jref main-class --cwd <project-root>",
			Safe:        true,
			Description: "Point --cwd at a directory containing build.gradle, pom.xml or src/main/java",
		},
	},
	ConfigInvalid: {
		{
			Type:        OpenDocs,
			URL:         "https://github.com/jref/jref#configuration",
			Description: "Review the .jref/config.json reference",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
