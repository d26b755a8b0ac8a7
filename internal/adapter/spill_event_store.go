package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	m "fixtura.dev/pkg/fixtura/internal/model"
	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

// SpillEventStore keeps the event log in a temporary spill file. The log lives as long
// as the store, which makes it suitable for single-process sessions and tests.
type SpillEventStore struct {
	mu    sync.Mutex
	spill fxpkg.FileSpill[EventRecord]
}

// NewSpillEventStore creates an empty store backed by a new spill file.
func NewSpillEventStore(opts ...fxpkg.SpillOption) (*SpillEventStore, error) {
	spill, err := fxpkg.NewFileSpill[EventRecord](opts...)
	if err != nil {
		return nil, fmt.Errorf("create event spill: %w", err)
	}

	return &SpillEventStore{spill: spill}, nil
}

// Append implements EventStore.
func (s *SpillEventStore) Append(ctx context.Context, events ...m.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([]EventRecord, 0, len(events))

	for _, event := range events {
		record, err := NewEventRecord(event)
		if err != nil {
			return err
		}

		records = append(records, record)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := int64(s.spill.Len()) + 1
	for i := range records {
		records[i].Sequence = next + int64(i)
	}

	if err := s.spill.AppendBatch(records); err != nil {
		if errors.Is(err, fxpkg.ErrSpillClosed) {
			return ErrStoreClosed
		}

		return fmt.Errorf("append events: %w", err)
	}

	slog.Debug("Appended events", "store", "spill", "count", len(records), "last", next+int64(len(records))-1)

	return nil
}

// FindAll implements EventStore.
func (s *SpillEventStore) FindAll(ctx context.Context, id m.FixtureItemID) ([]m.Event, error) {
	records, err := s.filter(ctx, func(r EventRecord) bool { return r.matchesID(id) })
	if err != nil {
		return nil, err
	}

	return decodeRecords(records)
}

// FindAllForRoot implements EventStore.
func (s *SpillEventStore) FindAllForRoot(ctx context.Context, root string, kinds ...m.EventKind) ([]m.Event, error) {
	records, err := s.filter(ctx, func(r EventRecord) bool {
		return r.matchesRoot(root) && r.matchesKinds(kinds)
	})
	if err != nil {
		return nil, err
	}

	return decodeRecords(records)
}

// FindLast implements EventStore.
func (s *SpillEventStore) FindLast(ctx context.Context, id m.FixtureItemID, kinds ...m.EventKind) (fxpkg.Maybe[m.Event], error) {
	records, err := s.filter(ctx, func(r EventRecord) bool {
		return r.matchesID(id) && r.matchesKinds(kinds)
	})
	if err != nil {
		return fxpkg.None[m.Event](), err
	}

	return lastEvent(records)
}

// FindLastForRoot implements EventStore.
func (s *SpillEventStore) FindLastForRoot(ctx context.Context, root string, kinds ...m.EventKind) (fxpkg.Maybe[m.Event], error) {
	records, err := s.filter(ctx, func(r EventRecord) bool {
		return r.matchesRoot(root) && r.matchesKinds(kinds)
	})
	if err != nil {
		return fxpkg.None[m.Event](), err
	}

	return lastEvent(records)
}

// Records implements EventStore.
func (s *SpillEventStore) Records(ctx context.Context, root string) ([]EventRecord, error) {
	return s.filter(ctx, func(r EventRecord) bool { return r.matchesRoot(root) })
}

// Close implements EventStore and removes the spill file.
func (s *SpillEventStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.spill.Close()
}

func (s *SpillEventStore) filter(ctx context.Context, keep func(EventRecord) bool) ([]EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []EventRecord

	err := s.spill.Range(func(_ uint64, record EventRecord) error {
		if keep(record) {
			records = append(records, record)
		}

		return ctx.Err()
	})
	if err != nil {
		if errors.Is(err, fxpkg.ErrSpillClosed) {
			return nil, ErrStoreClosed
		}

		return nil, fmt.Errorf("scan events: %w", err)
	}

	return records, nil
}
