package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// Listener handles one delivered event. A listener error aborts the publish.
type Listener func(ctx context.Context, event m.Event) error

// EventBus publishes domain events: it appends them to the store and then delivers
// them to subscribers.
type EventBus interface {
	Publish(ctx context.Context, event m.Event) error
	// PublishAll appends events as one batch and delivers them in order.
	PublishAll(ctx context.Context, events ...m.Event) error
	// Subscribe registers listener for the given kinds, or for every kind when none
	// are given. The returned func removes the subscription.
	Subscribe(listener Listener, kinds ...m.EventKind) func()
}

type subscription struct {
	id       uint64
	listener Listener
	kinds    map[m.EventKind]bool
}

func (s subscription) wants(kind m.EventKind) bool {
	return len(s.kinds) == 0 || s.kinds[kind]
}

// InProcessEventBus delivers events synchronously, one at a time, in append order.
// An event is delivered only after the store accepted it.
type InProcessEventBus struct {
	store EventStore

	// publishMu serializes append+delivery so subscribers never run concurrently.
	publishMu sync.Mutex

	subsMu sync.RWMutex
	subs   []subscription
	nextID uint64
}

// NewInProcessEventBus creates a bus that appends to store.
func NewInProcessEventBus(store EventStore) *InProcessEventBus {
	return &InProcessEventBus{store: store}
}

// Publish implements EventBus.
func (b *InProcessEventBus) Publish(ctx context.Context, event m.Event) error {
	return b.PublishAll(ctx, event)
}

// PublishAll implements EventBus.
func (b *InProcessEventBus) PublishAll(ctx context.Context, events ...m.Event) error {
	if len(events) == 0 {
		return nil
	}

	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	if err := b.store.Append(ctx, events...); err != nil {
		return fmt.Errorf("append events: %w", err)
	}

	for _, event := range events {
		if err := b.deliver(ctx, event); err != nil {
			return err
		}
	}

	return nil
}

// Subscribe implements EventBus.
func (b *InProcessEventBus) Subscribe(listener Listener, kinds ...m.EventKind) func() {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()

	b.nextID++
	sub := subscription{id: b.nextID, listener: listener}

	if len(kinds) > 0 {
		sub.kinds = make(map[m.EventKind]bool, len(kinds))
		for _, kind := range kinds {
			sub.kinds[kind] = true
		}
	}

	b.subs = append(b.subs, sub)

	return func() { b.unsubscribe(sub.id) }
}

func (b *InProcessEventBus) unsubscribe(id uint64) {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()

	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *InProcessEventBus) deliver(ctx context.Context, event m.Event) error {
	b.subsMu.RLock()
	subs := make([]subscription, 0, len(b.subs))

	for _, sub := range b.subs {
		if sub.wants(event.Kind()) {
			subs = append(subs, sub)
		}
	}
	b.subsMu.RUnlock()

	slog.Debug("Delivering event", "kind", event.Kind(), "subscribers", len(subs))

	for _, sub := range subs {
		if err := sub.listener(ctx, event); err != nil {
			slog.Error("Event listener failed", "kind", event.Kind(), "error", err)
			return fmt.Errorf("deliver %s event: %w", event.Kind(), err)
		}
	}

	return nil
}

// SubscribeTo registers a listener for events of type T only.
func SubscribeTo[T m.Event](bus EventBus, listener func(ctx context.Context, event T) error) func() {
	var zero T

	return bus.Subscribe(func(ctx context.Context, event m.Event) error {
		typed, ok := event.(T)
		if !ok {
			return nil
		}

		return listener(ctx, typed)
	}, zero.Kind())
}
