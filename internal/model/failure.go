package model

import (
	"errors"
	"fmt"
)

// FailureCode is a stable identifier for a user-reachable failure.
type FailureCode string

const (
	// DocumentNotResolved means the root path has no active configuration session.
	DocumentNotResolved FailureCode = "DOCUMENT_NOT_RESOLVED"
	// ProjectNameNotSet means no session recorded a project name for the root path.
	ProjectNameNotSet FailureCode = "PROJECT_NAME_NOT_SET"
	// CannotCreateUnnamedItem means a create command targeted a default item.
	CannotCreateUnnamedItem FailureCode = "CANNOT_CREATE_UNNAMED_ITEM"
	// CannotConfigureUnnamedItem means a member change targeted a default item.
	CannotConfigureUnnamedItem FailureCode = "CANNOT_CONFIGURE_UNNAMED_ITEM"
	// NameAlreadyExists means another item under the root already uses the name.
	NameAlreadyExists FailureCode = "NAME_ALREADY_EXISTS"
	// AlreadyExists means the exact id was created before.
	AlreadyExists FailureCode = "ALREADY_EXISTS"
	// MemberNotFound means the member is not part of the live schema.
	MemberNotFound FailureCode = "MEMBER_NOT_FOUND"
	// InvalidConfiguration means two configuration items could not be merged.
	InvalidConfiguration FailureCode = "INVALID_CONFIGURATION"
	// TypeDescriptionNotFound means type metadata could not be resolved.
	TypeDescriptionNotFound FailureCode = "TYPE_DESCRIPTION_NOT_FOUND"
)

// Sentinels for errors.Is matching on failure codes.
var (
	ErrDocumentNotResolved        = &Failure{Code: DocumentNotResolved}
	ErrProjectNameNotSet          = &Failure{Code: ProjectNameNotSet}
	ErrCannotCreateUnnamedItem    = &Failure{Code: CannotCreateUnnamedItem}
	ErrCannotConfigureUnnamedItem = &Failure{Code: CannotConfigureUnnamedItem}
	ErrNameAlreadyExists          = &Failure{Code: NameAlreadyExists}
	ErrAlreadyExists              = &Failure{Code: AlreadyExists}
	ErrMemberNotFound             = &Failure{Code: MemberNotFound}
	ErrInvalidConfiguration       = &Failure{Code: InvalidConfiguration}
	ErrTypeDescriptionNotFound    = &Failure{Code: TypeDescriptionNotFound}
)

// Failure is a typed, user-reachable failure. Commands turn it into a *Failed event.
type Failure struct {
	Code    FailureCode
	Message string
	// Item is the offending configuration for InvalidConfiguration failures.
	Item  *ConfigurationItem
	Cause error
}

// NewFailure builds a failure with a formatted message.
func NewFailure(code FailureCode, format string, args ...any) *Failure {
	return &Failure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidConfiguration builds an InvalidConfiguration failure carrying item.
func NewInvalidConfiguration(item ConfigurationItem, format string, args ...any) *Failure {
	f := NewFailure(InvalidConfiguration, format, args...)
	f.Item = &item

	return f
}

func (f *Failure) Error() string {
	msg := string(f.Code)
	if f.Message != "" {
		msg += ": " + f.Message
	}

	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}

	return msg
}

// Reason is the human-readable text stored on failure events.
func (f *Failure) Reason() string {
	if f.Cause != nil {
		return f.Message + ": " + f.Cause.Error()
	}

	return f.Message
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Is matches any failure with the same code.
func (f *Failure) Is(target error) bool {
	other, ok := target.(*Failure)

	return ok && other.Code == f.Code
}

// WithCause returns a copy of f wrapping cause.
func (f *Failure) WithCause(cause error) *Failure {
	next := *f
	next.Cause = cause

	return &next
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}

// InvariantCode identifies an internal fault.
type InvariantCode string

const (
	// UnhandledEventKind means replay met an event variant it does not know.
	UnhandledEventKind InvariantCode = "UNHANDLED_EVENT_KIND"
	// CacheOrdering means the projection saw an impossible event order.
	CacheOrdering InvariantCode = "CACHE_ORDERING"
	// ReplayFailed means the stored history could not be replayed.
	ReplayFailed InvariantCode = "REPLAY_FAILED"
	// InvalidTypeDescription means type metadata is structurally broken.
	InvalidTypeDescription InvariantCode = "INVALID_TYPE_DESCRIPTION"
)

// ErrInvariantViolation matches every *InvariantViolation with errors.Is.
var ErrInvariantViolation = errors.New("invariant violation")

// InvariantViolation is an internal fault: the durable log and the in-memory model
// disagree. It is never turned into an event and aborts the current operation.
type InvariantViolation struct {
	Code    InvariantCode
	Message string
	Cause   error
}

// NewInvariantViolation builds an internal fault.
func NewInvariantViolation(code InvariantCode, cause error, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (v *InvariantViolation) Error() string {
	msg := fmt.Sprintf("invariant violation %s: %s", v.Code, v.Message)
	if v.Cause != nil {
		msg += ": " + v.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (v *InvariantViolation) Unwrap() error {
	return v.Cause
}

// Is matches ErrInvariantViolation and violations with the same code.
func (v *InvariantViolation) Is(target error) bool {
	if target == ErrInvariantViolation {
		return true
	}

	other, ok := target.(*InvariantViolation)

	return ok && other.Code == v.Code
}
