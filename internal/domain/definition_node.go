package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	m "fixtura.dev/pkg/fixtura/internal/model"
)

// NodeDependencies are the collaborators shared by the definition nodes of one store.
type NodeDependencies struct {
	Store    adapter.EventStore
	Bus      adapter.EventBus
	Factory  ConfigurationItemFactory
	Sessions SessionQuery
	// Observer defaults to NopObserver.
	Observer Observer
}

func (d NodeDependencies) observer() Observer {
	if d.Observer == nil {
		return NopObserver{}
	}

	return d.Observer
}

// DefinitionNode is the aggregate root of a fixture item: its id, its type and its
// configuration. It is an immutable value; Replay and the commands return the next
// value and leave the receiver untouched.
type DefinitionNode struct {
	id            m.FixtureItemID
	typeDesc      m.TypeDescription
	configuration m.ConfigurationItem
	deps          *NodeDependencies
}

// NewDefinitionNode creates a node in the given state.
func NewDefinitionNode(deps NodeDependencies, id m.FixtureItemID, td m.TypeDescription, configuration m.ConfigurationItem) DefinitionNode {
	return DefinitionNode{
		id:            id,
		typeDesc:      td,
		configuration: configuration.WithID(id),
		deps:          &deps,
	}
}

// ID returns the fixture item id.
func (n DefinitionNode) ID() m.FixtureItemID {
	return n.id
}

// TypeDescription returns the type the node was built from.
func (n DefinitionNode) TypeDescription() m.TypeDescription {
	return n.typeDesc
}

// ConfigurationItem returns the current configuration.
func (n DefinitionNode) ConfigurationItem() m.ConfigurationItem {
	return n.configuration
}

// Replay applies one event. Events about other ids leave the node unchanged. A merge
// failure is returned as *model.Failure; an unknown event variant as an
// UNHANDLED_EVENT_KIND invariant violation.
func (n DefinitionNode) Replay(event m.Event) (DefinitionNode, error) {
	switch e := event.(type) {
	case m.MemberChangedEvent:
		if e.ID != n.id {
			return n, nil
		}

		override := n.deps.Factory.Create(n.id, nil, map[string]m.MemberConfiguration{
			e.Member.MemberName(): e.Member,
		}, nil)

		merged, err := n.deps.Factory.Merge(n.configuration, override)
		if err != nil {
			return n, err
		}

		n.configuration = merged

		return n, nil
	case m.CreatedEvent, m.ConfigurationStartedEvent, m.ConfigurationEndedEvent, m.CreatedFailedEvent, m.MemberChangedFailedEvent:
		// Created marks existence only; the configuration starts from the defaults.
		return n, nil
	default:
		return n, m.NewInvariantViolation(m.UnhandledEventKind, nil,
			"cannot replay event %T of kind %q", event, event.Kind())
	}
}

// ReplayAll folds events left to right and stops at the first failure.
func (n DefinitionNode) ReplayAll(events ...m.Event) (DefinitionNode, error) {
	current := n

	for i, event := range events {
		next, err := current.Replay(event)
		if err != nil {
			return current, fmt.Errorf("replay event %d (%s): %w", i, event.Kind(), err)
		}

		current = next
	}

	return current, nil
}

// CreateNamedFixtureItem publishes Created for the node, or CreatedFailed when the id
// is unnamed or its name is taken under the root. The failure is also returned.
func (n DefinitionNode) CreateNamedFixtureItem(ctx context.Context) (next DefinitionNode, err error) {
	finish := observe(ctx, n.deps.observer(), CommandCreate, n.id)
	defer func() { finish(err) }()

	if err := n.checkCreatable(ctx); err != nil {
		if failure, ok := m.AsFailure(err); ok {
			return n, n.publishFailure(ctx, m.CreatedFailedEvent{ID: n.id, Reason: failure.Reason()}, failure)
		}

		return n, err
	}

	created := m.CreatedEvent{ID: n.id}
	if err := n.deps.Bus.Publish(ctx, created); err != nil {
		return n, fmt.Errorf("publish created %s: %w", n.id, err)
	}

	return n.Replay(created)
}

// EnsureExists publishes Created for the node unless the store already has one.
// Unnamed ids are rejected with CreatedFailed like in CreateNamedFixtureItem.
func (n DefinitionNode) EnsureExists(ctx context.Context) (next DefinitionNode, err error) {
	finish := observe(ctx, n.deps.observer(), CommandEnsureExists, n.id)
	defer func() { finish(err) }()

	if !n.id.IsNamed() {
		failure := m.NewFailure(m.CannotCreateUnnamedItem, "%s has no name", n.id)
		return n, n.publishFailure(ctx, m.CreatedFailedEvent{ID: n.id, Reason: failure.Reason()}, failure)
	}

	staged, err := n.stageCreated(ctx)
	if err != nil {
		return n, err
	}

	if len(staged) == 0 {
		return n, nil
	}

	if err := n.deps.Bus.PublishAll(ctx, staged...); err != nil {
		return n, fmt.Errorf("publish created %s: %w", n.id, err)
	}

	return n.ReplayAll(staged...)
}

// ChangeMemberConfiguration records a user edit of one member. Link targets that do
// not exist yet are created in the same batch, before the MemberChanged event. Any
// failure publishes a single MemberChangedFailed and nothing else.
func (n DefinitionNode) ChangeMemberConfiguration(ctx context.Context, mc m.MemberConfiguration) (next DefinitionNode, err error) {
	finish := observe(ctx, n.deps.observer(), CommandChangeMember, n.id)
	defer func() { finish(err) }()

	staged, err := n.stageMemberChange(ctx, mc)
	if err != nil {
		if failure, ok := m.AsFailure(err); ok {
			return n, n.publishFailure(ctx, m.MemberChangedFailedEvent{ID: n.id, Member: mc, Reason: failure.Reason()}, failure)
		}

		return n, err
	}

	if err := n.deps.Bus.PublishAll(ctx, staged...); err != nil {
		return n, fmt.Errorf("publish member change of %s: %w", n.id, err)
	}

	return n.ReplayAll(staged...)
}

func (n DefinitionNode) stageMemberChange(ctx context.Context, mc m.MemberConfiguration) ([]m.Event, error) {
	document, err := n.deps.Sessions.DocumentFilePath(ctx, n.id.RootItemPath)
	if err != nil {
		return nil, err
	}

	if mc == nil || !n.configuration.HasMember(mc.MemberName()) {
		name := ""
		if mc != nil {
			name = mc.MemberName()
		}

		return nil, m.NewFailure(m.MemberNotFound, "%s has no member %q", n.typeDesc.TypeFullName, name)
	}

	if !n.id.IsNamed() {
		return nil, m.NewFailure(m.CannotConfigureUnnamedItem, "%s is a default item and cannot be configured", n.id)
	}

	member := mc.WithSource(m.UserSource(document))

	linked, err := n.discoverMissingLinks(ctx, member)
	if err != nil {
		return nil, err
	}

	own, err := n.stageCreated(ctx)
	if err != nil {
		return nil, err
	}

	override := n.deps.Factory.Create(n.id, nil, map[string]m.MemberConfiguration{member.MemberName(): member}, nil)
	if _, err := n.deps.Factory.Merge(n.configuration, override); err != nil {
		return nil, err
	}

	staged := make([]m.Event, 0, len(own)+len(linked)+1)
	staged = append(staged, own...)

	for _, target := range linked {
		staged = append(staged, m.CreatedEvent{ID: target})
	}

	return append(staged, m.MemberChangedEvent{ID: n.id, Member: member}), nil
}

// discoverMissingLinks returns the named link targets of mc that have no Created
// event yet, in traversal order. Lookups run concurrently.
func (n DefinitionNode) discoverMissingLinks(ctx context.Context, mc m.MemberConfiguration) ([]m.FixtureItemID, error) {
	var candidates []m.FixtureItemID

	for _, target := range m.LinkedFixtureItems(mc) {
		if target.IsNamed() && target != n.id {
			candidates = append(candidates, target)
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	missing := make([]bool, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, target := range candidates {
		group.Go(func() error {
			created, err := adapter.FindLastOf[m.CreatedEvent](groupCtx, n.deps.Store, target)
			if err != nil {
				return fmt.Errorf("look up link %s: %w", target, err)
			}

			missing[i] = created.IsNone()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var targets []m.FixtureItemID

	for i, target := range candidates {
		if missing[i] {
			targets = append(targets, target)
		}
	}

	slog.Debug("Discovered linked fixture items", "id", n.id.String(), "links", len(candidates), "missing", len(targets))

	return targets, nil
}

// stageCreated returns the Created event the node still needs, if any.
func (n DefinitionNode) stageCreated(ctx context.Context) ([]m.Event, error) {
	created, err := adapter.FindLastOf[m.CreatedEvent](ctx, n.deps.Store, n.id)
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", n.id, err)
	}

	if created.IsSome() {
		return nil, nil
	}

	return []m.Event{m.CreatedEvent{ID: n.id}}, nil
}

// checkCreatable returns the failure that prevents creating the node, if any.
func (n DefinitionNode) checkCreatable(ctx context.Context) error {
	if !n.id.IsNamed() {
		return m.NewFailure(m.CannotCreateUnnamedItem, "%s has no name", n.id)
	}

	name, _ := n.id.Name.Get()

	existing, err := adapter.FindLastOf[m.CreatedEvent](ctx, n.deps.Store, n.id)
	if err != nil {
		return fmt.Errorf("look up %s: %w", n.id, err)
	}

	if event, ok := existing.Get(); ok {
		return nameTaken(name, event.ID)
	}

	root, ok := n.id.RootItemPath.Get()
	if !ok {
		return nil
	}

	createdUnderRoot, err := adapter.FindAllOf[m.CreatedEvent](ctx, n.deps.Store, root)
	if err != nil {
		return fmt.Errorf("look up names under %q: %w", root, err)
	}

	for _, event := range createdUnderRoot {
		if other, named := event.ID.Name.Get(); named && other == name {
			return nameTaken(name, event.ID)
		}
	}

	return nil
}

func nameTaken(name string, existing m.FixtureItemID) *m.Failure {
	return m.NewFailure(m.NameAlreadyExists, "name %q already exists with type %s", name, existing.TypeFullName)
}

// publishFailure publishes the failure event and returns the failure, or the publish
// error when the event could not be recorded.
func (n DefinitionNode) publishFailure(ctx context.Context, event m.Event, failure error) error {
	if err := n.deps.Bus.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind(), err)
	}

	return failure
}
