package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Each concrete error type
// below unwraps to exactly one of these.
var (
	// ErrValueIsRequired indicates a required value was missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value was present but malformed.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange indicates a value fell outside its allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrObjectNotFound indicates a lookup by identifier found nothing.
	ErrObjectNotFound = errors.New("object not found")

	// ErrStatusIsInvalid indicates a status target that is not part of the
	// order lifecycle enum.
	ErrStatusIsInvalid = errors.New("status is invalid")

	// ErrTransitionForbidden indicates a status transition that the lifecycle
	// rules reject: a terminal order, or an automated origin requesting
	// anything but delivery confirmation.
	ErrTransitionForbidden = errors.New("transition is forbidden")

	// ErrTransportUnavailable indicates a publish was attempted while the
	// broker connection was down. Nothing is queued; the caller decides how
	// to surface the miss.
	ErrTransportUnavailable = errors.New("transport is unavailable")
)

// sanitize strips line breaks from interpolated values so a single error
// always renders as a single log line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required
// value, wrapping the underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for a malformed value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for a malformed value,
// wrapping the underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates an error for a value outside [min, max].
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates an error for a value outside
// [min, max], wrapping the underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a failed lookup by identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a failed lookup.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a failed lookup,
// wrapping the underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// StatusIsInvalidError reports a status value that is not part of the order
// lifecycle enum.
type StatusIsInvalidError struct {
	Value string
	Cause error
}

// NewStatusIsInvalidError creates an error for an unknown status value.
func NewStatusIsInvalidError(value string) *StatusIsInvalidError {
	return &StatusIsInvalidError{Value: value}
}

// NewStatusIsInvalidErrorWithCause creates an error for an unknown status
// value, wrapping the underlying cause.
func NewStatusIsInvalidErrorWithCause(value string, cause error) *StatusIsInvalidError {
	return &StatusIsInvalidError{Value: value, Cause: cause}
}

func (e *StatusIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrStatusIsInvalid, e.Value, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrStatusIsInvalid, e.Value))
}

func (e *StatusIsInvalidError) Unwrap() error {
	return ErrStatusIsInvalid
}

// TransitionForbiddenError reports a status transition rejected by the
// lifecycle rules.
type TransitionForbiddenError struct {
	From  string
	To    string
	Cause error
}

// NewTransitionForbiddenError creates an error for a rejected transition.
func NewTransitionForbiddenError(from, to string) *TransitionForbiddenError {
	return &TransitionForbiddenError{From: from, To: to}
}

// NewTransitionForbiddenErrorWithCause creates an error for a rejected
// transition, wrapping the underlying cause.
func NewTransitionForbiddenErrorWithCause(from, to string, cause error) *TransitionForbiddenError {
	return &TransitionForbiddenError{From: from, To: to, Cause: cause}
}

func (e *TransitionForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s -> %s (cause: %s)", ErrTransitionForbidden, e.From, e.To, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrTransitionForbidden, e.From, e.To))
}

func (e *TransitionForbiddenError) Unwrap() error {
	return ErrTransitionForbidden
}

// TransportUnavailableError reports a publish attempted while disconnected
// from the broker.
type TransportUnavailableError struct {
	Topic string
	Cause error
}

// NewTransportUnavailableError creates an error for a publish attempted while
// the broker connection was down.
func NewTransportUnavailableError(topic string) *TransportUnavailableError {
	return &TransportUnavailableError{Topic: topic}
}

// NewTransportUnavailableErrorWithCause creates an error for a failed publish,
// wrapping the underlying cause.
func NewTransportUnavailableErrorWithCause(topic string, cause error) *TransportUnavailableError {
	return &TransportUnavailableError{Topic: topic, Cause: cause}
}

func (e *TransportUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrTransportUnavailable, e.Topic, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrTransportUnavailable, e.Topic))
}

func (e *TransportUnavailableError) Unwrap() error {
	return ErrTransportUnavailable
}
