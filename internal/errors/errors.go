// Package errors provides centralized error definitions for the bridge core.
//
// # Error Taxonomy
//
// The core distinguishes three kinds of failure:
//
//   - Invalid transition requests (a boot phase regression, an unknown panel
//     phase). These are programming defects: in strict mode they are logged
//     and returned as [*TransitionError], in production they are swallowed.
//   - Instrument data-load failures. These are not Go errors at all; they are
//     reported to the power registry and surface as a malfunction flag.
//   - Arbitration refusals, such as a speech message rejected because a message
//     of equal or higher priority is already current ([ErrSpeechRejected]).
//
// Configuration problems are reported as [*ValidationError].
//
// # Usage
//
//	err := errors.NewTransitionError("boot", "darkness", "start")
//	if errors.Is(err, errors.ErrInvalidTransition) { ... }
//
//	var te *errors.TransitionError
//	if errors.As(err, &te) {
//	    log.Debug("rejected", "from", te.From, "to", te.To)
//	}
//
// None of these errors is fatal; the worst outcome is a stuck or skipped visual
// transition.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions so callers only import this package.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for defects that only matter while developing.
	SeverityDebug Severity = iota
	// SeverityInfo is for refusals that are part of normal operation.
	SeverityInfo
	// SeverityWarning is for conditions that may need attention.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Transition sentinel errors
var (
	// ErrInvalidTransition indicates a state change that the owning state
	// machine does not allow.
	ErrInvalidTransition = New("invalid transition")
	// ErrUnknownPhase indicates a phase value outside the enumerated set.
	ErrUnknownPhase = New("unknown phase")
)

// Arbitration sentinel errors
var (
	// ErrSpeechRejected indicates a message lost priority arbitration.
	ErrSpeechRejected = New("speech message rejected")
	// ErrEmptySubject indicates a message without a subject.
	ErrEmptySubject = New("speech message has no subject")
)

// General sentinel errors
var (
	// ErrNotFound indicates a lookup for an unknown identifier.
	ErrNotFound = New("not found")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// BridgeError is implemented by every error type in this package.
type BridgeError interface {
	error
	Unwrap() error
	Severity() Severity
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error        { return e.cause }
func (e *baseError) Severity() Severity   { return e.severity }
func (e *baseError) IsUserFacing() bool   { return e.userFacing }
func (e *baseError) is(target error) bool { return e.cause != nil && errors.Is(e.cause, target) }

// -----------------------------------------------------------------------------
// TransitionError
// -----------------------------------------------------------------------------

// TransitionError describes a rejected state change.
//
// Example:
//
//	err := errors.NewTransitionError("boot", "complete", "darkness")
//	fmt.Println(err) // "transition error [component=boot, from=complete, to=darkness]: invalid transition"
type TransitionError struct {
	baseError
	Component string
	From      string
	To        string
}

// NewTransitionError creates a TransitionError wrapping ErrInvalidTransition.
func NewTransitionError(component, from, to string) *TransitionError {
	return &TransitionError{
		baseError: baseError{
			message:  "invalid transition",
			cause:    ErrInvalidTransition,
			severity: SeverityDebug,
		},
		Component: component,
		From:      from,
		To:        to,
	}
}

// WithCause replaces the wrapped cause, e.g. with ErrUnknownPhase.
func (e *TransitionError) WithCause(cause error) *TransitionError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TransitionError) Error() string {
	var parts []string
	if e.Component != "" {
		parts = append(parts, fmt.Sprintf("component=%s", e.Component))
	}
	if e.From != "" {
		parts = append(parts, fmt.Sprintf("from=%s", e.From))
	}
	if e.To != "" {
		parts = append(parts, fmt.Sprintf("to=%s", e.To))
	}

	prefix := "transition error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("transition error [%s]", strings.Join(parts, ", "))
	}
	if e.cause != nil && e.cause != ErrInvalidTransition {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is reports whether target is a TransitionError, ErrInvalidTransition or the
// wrapped cause.
func (e *TransitionError) Is(target error) bool {
	if _, ok := target.(*TransitionError); ok {
		return true
	}
	if target == ErrInvalidTransition {
		return true
	}
	return e.is(target)
}

// -----------------------------------------------------------------------------
// NotFoundError
// -----------------------------------------------------------------------------

// NotFoundError represents a lookup of an unknown identifier.
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s not found", resourceType),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s not found: %s", e.ResourceType, e.ResourceID)
	}
	return fmt.Sprintf("%s not found", e.ResourceType)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return target == ErrNotFound || e.is(target)
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or configuration.
//
// Example:
//
//	err := errors.NewValidationError("must be positive").WithField("cadence.idle_fps").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput || e.is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display.
// Transition errors are internal defects and never user-facing.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var be BridgeError
	if As(err, &be) {
		return be.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement BridgeError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var be BridgeError
	if As(err, &be) {
		return be.Severity()
	}
	if Is(err, ErrSpeechRejected) {
		return SeverityInfo
	}
	return SeverityError
}

// IsTransition reports whether err is a rejected state change.
func IsTransition(err error) bool {
	return Is(err, ErrInvalidTransition)
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
