package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	m "fixtura.dev/pkg/fixtura/internal/model"
)

// DefinitionRepository rehydrates definition nodes from the event store.
type DefinitionRepository interface {
	// CreateFixtureItem creates a new named item. An id with a stored Created event
	// fails with ALREADY_EXISTS, wrapping the NAME_ALREADY_EXISTS cause.
	CreateFixtureItem(ctx context.Context, id m.FixtureItemID) (DefinitionNode, error)
	// RestoreDefinitionNode replays the stored history of id onto a fresh node. A
	// history that cannot be replayed is a REPLAY_FAILED invariant violation.
	RestoreDefinitionNode(ctx context.Context, id m.FixtureItemID) (DefinitionNode, error)
	FixtureItemExistsInEventStore(ctx context.Context, id m.FixtureItemID) (bool, error)
}

type definitionRepository struct {
	DefinitionQuery
	store adapter.EventStore
	bus   adapter.EventBus
}

// NewDefinitionRepository creates a DefinitionRepository.
func NewDefinitionRepository(query DefinitionQuery, store adapter.EventStore, bus adapter.EventBus) DefinitionRepository {
	return &definitionRepository{
		DefinitionQuery: query,
		store:           store,
		bus:             bus,
	}
}

func (r *definitionRepository) CreateFixtureItem(ctx context.Context, id m.FixtureItemID) (DefinitionNode, error) {
	existing, err := adapter.FindLastOf[m.CreatedEvent](ctx, r.store, id)
	if err != nil {
		return DefinitionNode{}, fmt.Errorf("look up %s: %w", id, err)
	}

	if event, ok := existing.Get(); ok {
		name, _ := id.Name.Get()
		failure := m.NewFailure(m.AlreadyExists, "%s already exists", id).WithCause(nameTaken(name, event.ID))

		if err := r.bus.Publish(ctx, m.CreatedFailedEvent{ID: id, Reason: failure.Reason()}); err != nil {
			return DefinitionNode{}, fmt.Errorf("publish %s: %w", m.EventCreatedFailed, err)
		}

		return DefinitionNode{}, failure
	}

	node, err := r.RestoreDefinitionNode(ctx, id)
	if err != nil {
		return DefinitionNode{}, err
	}

	return node.CreateNamedFixtureItem(ctx)
}

func (r *definitionRepository) RestoreDefinitionNode(ctx context.Context, id m.FixtureItemID) (DefinitionNode, error) {
	node, err := r.GetDefinitionNode(ctx, id)
	if err != nil {
		return DefinitionNode{}, err
	}

	events, err := r.store.FindAll(ctx, id)
	if err != nil {
		return DefinitionNode{}, fmt.Errorf("load history of %s: %w", id, err)
	}

	restored, err := node.ReplayAll(events...)
	if err != nil {
		if errors.Is(err, m.ErrInvariantViolation) {
			return DefinitionNode{}, err
		}

		slog.Error("Stored history cannot be replayed", "id", id.String(), "events", len(events), "error", err)

		return DefinitionNode{}, m.NewInvariantViolation(m.ReplayFailed, err, "history of %s cannot be replayed", id)
	}

	return restored, nil
}

func (r *definitionRepository) FixtureItemExistsInEventStore(ctx context.Context, id m.FixtureItemID) (bool, error) {
	created, err := adapter.FindLastOf[m.CreatedEvent](ctx, r.store, id)
	if err != nil {
		return false, fmt.Errorf("look up %s: %w", id, err)
	}

	return created.IsSome(), nil
}
