// Package adapter provides the infrastructure ports of fixtura and their implementations:
// event stores, the in-process event bus and the type catalog.
package adapter

import (
	"context"
	"errors"
	"fmt"

	m "fixtura.dev/pkg/fixtura/internal/model"
	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

// ErrStoreClosed is returned by stores used after Close.
var ErrStoreClosed = errors.New("event store is closed")

// EventStore is the append-only log of domain events and the single source of truth.
// All reads return events in append order.
type EventStore interface {
	// Append durably records events in the given order.
	Append(ctx context.Context, events ...m.Event) error
	// FindAll returns every event concerning id.
	FindAll(ctx context.Context, id m.FixtureItemID) ([]m.Event, error)
	// FindAllForRoot returns the events under root, optionally restricted to kinds.
	FindAllForRoot(ctx context.Context, root string, kinds ...m.EventKind) ([]m.Event, error)
	// FindLast returns the most recent event concerning id, optionally restricted to kinds.
	FindLast(ctx context.Context, id m.FixtureItemID, kinds ...m.EventKind) (fxpkg.Maybe[m.Event], error)
	// FindLastForRoot returns the most recent event under root, optionally restricted to kinds.
	FindLastForRoot(ctx context.Context, root string, kinds ...m.EventKind) (fxpkg.Maybe[m.Event], error)
	// Records returns the raw records under root, for history views.
	Records(ctx context.Context, root string) ([]EventRecord, error)
	Close() error
}

// FindAllOf returns the events of type T under root.
func FindAllOf[T m.Event](ctx context.Context, store EventStore, root string) ([]T, error) {
	var zero T

	events, err := store.FindAllForRoot(ctx, root, zero.Kind())
	if err != nil {
		return nil, err
	}

	typed := make([]T, 0, len(events))

	for _, event := range events {
		if e, ok := event.(T); ok {
			typed = append(typed, e)
		}
	}

	return typed, nil
}

// FindLastOf returns the most recent event of type T concerning id.
func FindLastOf[T m.Event](ctx context.Context, store EventStore, id m.FixtureItemID) (fxpkg.Maybe[T], error) {
	var zero T

	found, err := store.FindLast(ctx, id, zero.Kind())
	if err != nil {
		return fxpkg.None[T](), err
	}

	return castEvent[T](found)
}

func castEvent[T m.Event](found fxpkg.Maybe[m.Event]) (fxpkg.Maybe[T], error) {
	event, ok := found.Get()
	if !ok {
		return fxpkg.None[T](), nil
	}

	typed, ok := event.(T)
	if !ok {
		var zero T
		return fxpkg.None[T](), fmt.Errorf("stored %s event has type %T, want %T", event.Kind(), event, zero)
	}

	return fxpkg.Some(typed), nil
}

// decodeRecords turns records into events, keeping their order.
func decodeRecords(records []EventRecord) ([]m.Event, error) {
	events := make([]m.Event, 0, len(records))

	for _, record := range records {
		event, err := record.Event()
		if err != nil {
			return nil, err
		}

		events = append(events, event)
	}

	return events, nil
}

func lastEvent(records []EventRecord) (fxpkg.Maybe[m.Event], error) {
	if len(records) == 0 {
		return fxpkg.None[m.Event](), nil
	}

	event, err := records[len(records)-1].Event()
	if err != nil {
		return fxpkg.None[m.Event](), err
	}

	return fxpkg.Some(event), nil
}
