package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	m "fixtura.dev/pkg/fixtura/internal/model"
	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

// ConfigurationCache is the read model of user overrides per fixture item. It is fed
// only by bus delivery of committed events and never writes to the store.
type ConfigurationCache struct {
	mu      sync.RWMutex
	items   map[m.FixtureItemID]m.ConfigurationItem
	store   adapter.EventStore
	factory ConfigurationItemFactory
}

// NewConfigurationCache creates an empty cache. The store is only read, to rebuild a
// root when its session starts.
func NewConfigurationCache(store adapter.EventStore, factory ConfigurationItemFactory) *ConfigurationCache {
	return &ConfigurationCache{
		items:   make(map[m.FixtureItemID]m.ConfigurationItem),
		store:   store,
		factory: factory,
	}
}

// Attach subscribes the cache to bus and returns the unsubscribe func.
func (c *ConfigurationCache) Attach(bus adapter.EventBus) func() {
	return bus.Subscribe(c.Handle,
		m.EventCreated,
		m.EventMemberChanged,
		m.EventConfigurationStarted,
		m.EventConfigurationEnded,
	)
}

// Handle applies one delivered event. Impossible orderings fail with a
// CACHE_ORDERING invariant violation.
func (c *ConfigurationCache) Handle(ctx context.Context, event m.Event) error {
	switch e := event.(type) {
	case m.ConfigurationStartedEvent:
		return c.rebuild(ctx, e.RootPath)
	case m.ConfigurationEndedEvent:
		c.mu.Lock()
		defer c.mu.Unlock()

		dropped := c.dropLocked(e.RootPath)
		slog.Debug("Dropped cached configurations", "root", e.RootPath, "count", dropped)

		return nil
	default:
		c.mu.Lock()
		defer c.mu.Unlock()

		return c.applyLocked(event)
	}
}

// GetCached returns the overrides recorded for id in the current session.
func (c *ConfigurationCache) GetCached(id m.FixtureItemID) fxpkg.Maybe[m.ConfigurationItem] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[id]
	if !ok {
		return fxpkg.None[m.ConfigurationItem]()
	}

	return fxpkg.Some(item)
}

// IDs returns the ids cached under root, sorted.
func (c *ConfigurationCache) IDs(root string) []m.FixtureItemID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var ids []m.FixtureItemID

	for id := range c.items {
		if r, ok := id.RootItemPath.Get(); ok && r == root {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}

// Load rebuilds root from the store for hosts that start with existing history. A
// root without an active session ends up empty.
func (c *ConfigurationCache) Load(ctx context.Context, root string) error {
	if err := c.rebuild(ctx, root); err != nil {
		return err
	}

	last, err := c.store.FindLastForRoot(ctx, root, m.EventConfigurationStarted, m.EventConfigurationEnded)
	if err != nil {
		return fmt.Errorf("find session of %q: %w", root, err)
	}

	if event, ok := last.Get(); !ok || event.Kind() == m.EventConfigurationEnded {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.dropLocked(root)
	}

	return nil
}

func (c *ConfigurationCache) rebuild(ctx context.Context, root string) error {
	events, err := c.store.FindAllForRoot(ctx, root, m.EventCreated, m.EventMemberChanged)
	if err != nil {
		return fmt.Errorf("load history of %q: %w", root, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.dropLocked(root)

	for _, event := range events {
		if err := c.applyLocked(event); err != nil {
			return err
		}
	}

	slog.Debug("Rebuilt cached configurations", "root", root, "events", len(events))

	return nil
}

func (c *ConfigurationCache) applyLocked(event m.Event) error {
	switch e := event.(type) {
	case m.CreatedEvent:
		if _, ok := c.items[e.ID]; ok {
			return m.NewInvariantViolation(m.CacheOrdering, nil, "%s was created twice", e.ID)
		}

		c.items[e.ID] = c.factory.Create(e.ID, nil, nil, nil)
	case m.MemberChangedEvent:
		item, ok := c.items[e.ID]
		if !ok {
			return m.NewInvariantViolation(m.CacheOrdering, nil,
				"member %q of %s changed before it was created", e.Member.MemberName(), e.ID)
		}

		c.items[e.ID] = item.WithMember(e.Member)
	}

	return nil
}

func (c *ConfigurationCache) dropLocked(root string) int {
	dropped := 0

	for id := range c.items {
		if r, ok := id.RootItemPath.Get(); ok && r == root {
			delete(c.items, id)
			dropped++
		}
	}

	return dropped
}
