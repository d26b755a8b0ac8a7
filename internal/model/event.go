package model

import (
	"fmt"

	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

// EventKind names a domain event variant. It is also the persisted discriminator.
type EventKind string

const (
	// EventCreated records that a named fixture item exists.
	EventCreated EventKind = "created"
	// EventMemberChanged records one member configuration write.
	EventMemberChanged EventKind = "member-changed"
	// EventConfigurationStarted binds a root path to its source location.
	EventConfigurationStarted EventKind = "configuration-started"
	// EventConfigurationEnded closes the session of a root path.
	EventConfigurationEnded EventKind = "configuration-ended"
	// EventCreatedFailed records a rejected create command.
	EventCreatedFailed EventKind = "created-failed"
	// EventMemberChangedFailed records a rejected member change command.
	EventMemberChangedFailed EventKind = "member-changed-failed"
)

// EventKinds lists every known event kind.
var EventKinds = []EventKind{
	EventCreated,
	EventMemberChanged,
	EventConfigurationStarted,
	EventConfigurationEnded,
	EventCreatedFailed,
	EventMemberChangedFailed,
}

// Event is the closed set of domain events.
type Event interface {
	Kind() EventKind
	RootItemPath() fxpkg.Maybe[string]

	event()
}

// FixtureItemEvent is an event that concerns a single fixture item.
type FixtureItemEvent interface {
	Event
	FixtureItemID() FixtureItemID
}

// InvocationSpan locates the configuration call inside its document.
type InvocationSpan struct {
	Start  int
	Length int
}

func (s InvocationSpan) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.Length)
}

// ParseInvocationSpan parses "start:length".
func ParseInvocationSpan(value string) (InvocationSpan, error) {
	var span InvocationSpan

	if _, err := fmt.Sscanf(value, "%d:%d", &span.Start, &span.Length); err != nil {
		return InvocationSpan{}, fmt.Errorf("invalid invocation span %q: %w", value, err)
	}

	if span.Start < 0 || span.Length < 0 {
		return InvocationSpan{}, fmt.Errorf("invalid invocation span %q: negative bounds", value)
	}

	return span, nil
}

// CreatedEvent records that ID is a distinct, named configuration target.
type CreatedEvent struct {
	ID FixtureItemID
}

// MemberChangedEvent records that one member of ID was (re)written.
type MemberChangedEvent struct {
	ID     FixtureItemID
	Member MemberConfiguration
}

// ConfigurationStartedEvent binds RootPath to the document that configures it.
type ConfigurationStartedEvent struct {
	RootPath         string
	ProjectName      string
	DocumentFilePath string
	InvocationSpan   InvocationSpan
}

// ConfigurationEndedEvent closes the session of RootPath.
type ConfigurationEndedEvent struct {
	RootPath string
}

// CreatedFailedEvent records a create command that was rejected.
type CreatedFailedEvent struct {
	ID     FixtureItemID
	Reason string
}

// MemberChangedFailedEvent records a member change command that was rejected.
type MemberChangedFailedEvent struct {
	ID     FixtureItemID
	Member MemberConfiguration
	Reason string
}

func (CreatedEvent) Kind() EventKind { return EventCreated }
func (MemberChangedEvent) Kind() EventKind { return EventMemberChanged }
func (ConfigurationStartedEvent) Kind() EventKind { return EventConfigurationStarted }
func (ConfigurationEndedEvent) Kind() EventKind { return EventConfigurationEnded }
func (CreatedFailedEvent) Kind() EventKind { return EventCreatedFailed }
func (MemberChangedFailedEvent) Kind() EventKind { return EventMemberChangedFailed }
func (CreatedEvent) event() {}
func (MemberChangedEvent) event() {}
func (ConfigurationStartedEvent) event() {}
func (ConfigurationEndedEvent) event() {}
func (CreatedFailedEvent) event() {}
func (MemberChangedFailedEvent) event() {}
func (e CreatedEvent) FixtureItemID() FixtureItemID { return e.ID }
func (e MemberChangedEvent) FixtureItemID() FixtureItemID { return e.ID }
func (e CreatedFailedEvent) FixtureItemID() FixtureItemID { return e.ID }
func (e MemberChangedFailedEvent) FixtureItemID() FixtureItemID { return e.ID }

// RootItemPath implements Event.
func (e CreatedEvent) RootItemPath() fxpkg.Maybe[string] { return e.ID.RootItemPath }

// RootItemPath implements Event.
func (e MemberChangedEvent) RootItemPath() fxpkg.Maybe[string] { return e.ID.RootItemPath }

// RootItemPath implements Event.
func (e ConfigurationStartedEvent) RootItemPath() fxpkg.Maybe[string] {
	return fxpkg.Some(e.RootPath)
}

// RootItemPath implements Event.
func (e ConfigurationEndedEvent) RootItemPath() fxpkg.Maybe[string] {
	return fxpkg.Some(e.RootPath)
}

// RootItemPath implements Event.
func (e CreatedFailedEvent) RootItemPath() fxpkg.Maybe[string] { return e.ID.RootItemPath }

// RootItemPath implements Event.
func (e MemberChangedFailedEvent) RootItemPath() fxpkg.Maybe[string] { return e.ID.RootItemPath }

// IsFailureEvent reports whether event records a rejected command.
func IsFailureEvent(event Event) bool {
	switch event.(type) {
	case CreatedFailedEvent, MemberChangedFailedEvent:
		return true
	default:
		return false
	}
}

// FailureReason returns the reason carried by a failure event.
func FailureReason(event Event) (string, bool) {
	switch e := event.(type) {
	case CreatedFailedEvent:
		return e.Reason, true
	case MemberChangedFailedEvent:
		return e.Reason, true
	default:
		return "", false
	}
}
