package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	"fixtura.dev/pkg/fixtura/internal/controller"
	m "fixtura.dev/pkg/fixtura/internal/model"
)

// Command names reported to the UI.
const (
	CommandStart = "start"
	CommandEnd   = "end"
	CommandSet   = "set"
)

// StartSessionArgs contains the arguments for starting a configuration session.
type StartSessionArgs struct {
	RootPath         string
	ProjectName      string
	DocumentFilePath string
	Span             m.InvocationSpan
}

// ConfigureMemberArgs contains the arguments for changing one member of a fixture item.
type ConfigureMemberArgs struct {
	ID     m.FixtureItemID
	Member m.MemberConfiguration
}

// Workflow defines the commands and views of the fixture configuration engine.
type Workflow interface {
	StartSession(ctx context.Context, args StartSessionArgs) error
	EndSession(ctx context.Context, rootPath string) error
	CreateFixtureItem(ctx context.Context, id m.FixtureItemID) error
	EnsureFixtureItem(ctx context.Context, id m.FixtureItemID) error
	ConfigureMember(ctx context.Context, args ConfigureMemberArgs) error
	ShowConfiguration(ctx context.Context, id m.FixtureItemID) error
	ShowHistory(ctx context.Context, rootPath string) error
	ListFixtureItems(ctx context.Context, rootPath string) error
	// Shutdown stops the command queue and detaches the cache from the bus.
	Shutdown()
}

type workflow struct {
	controller.UI
	DefinitionRepository
	ConfigurationItemQuery

	deps    NodeDependencies
	catalog adapter.TypeCatalog
	cache   *ConfigurationCache
	queue   *CommandQueue
	detach  func()

	loadedMu sync.Mutex
	loaded   map[string]bool
}

// NewWorkflow wires the domain services around store and bus and returns the Workflow
// that serializes every command through one CommandQueue.
func NewWorkflow(
	ui controller.UI,
	store adapter.EventStore,
	bus adapter.EventBus,
	catalog adapter.TypeCatalog,
	observer Observer,
) Workflow {
	factory := NewConfigurationItemFactory()
	defaults := NewSystemDefaultService(factory)
	deps := NodeDependencies{
		Store:    store,
		Bus:      bus,
		Factory:  factory,
		Sessions: NewSessionQuery(store),
		Observer: observer,
	}
	cache := NewConfigurationCache(store, factory)

	return &workflow{
		UI:                     ui,
		DefinitionRepository:   NewDefinitionRepository(NewDefinitionQuery(deps, catalog, defaults), store, bus),
		ConfigurationItemQuery: NewConfigurationItemQuery(cache, defaults, factory),
		deps:                   deps,
		catalog:                catalog,
		cache:                  cache,
		queue:                  NewCommandQueue(),
		detach:                 cache.Attach(bus),
		loaded:                 make(map[string]bool),
	}
}

func (w *workflow) StartSession(ctx context.Context, args StartSessionArgs) error {
	if args.RootPath == "" {
		return errors.New("root path is required")
	}

	return w.command(ctx, CommandStart, args.RootPath, func(ctx context.Context) error {
		return w.deps.Bus.Publish(ctx, m.ConfigurationStartedEvent{
			RootPath:         args.RootPath,
			ProjectName:      args.ProjectName,
			DocumentFilePath: args.DocumentFilePath,
			InvocationSpan:   args.Span,
		})
	})
}

func (w *workflow) EndSession(ctx context.Context, rootPath string) error {
	return w.command(ctx, CommandEnd, rootPath, func(ctx context.Context) error {
		active, err := w.deps.Sessions.ActiveSession(ctx, rootPath)
		if err != nil {
			return err
		}

		if active.IsNone() {
			return m.NewFailure(m.DocumentNotResolved, "root %q has no active configuration session", rootPath)
		}

		return w.deps.Bus.Publish(ctx, m.ConfigurationEndedEvent{RootPath: rootPath})
	})
}

func (w *workflow) CreateFixtureItem(ctx context.Context, id m.FixtureItemID) error {
	return w.command(ctx, CommandCreate, id.Root(), func(ctx context.Context) error {
		_, err := w.DefinitionRepository.CreateFixtureItem(ctx, id)
		return err
	})
}

func (w *workflow) EnsureFixtureItem(ctx context.Context, id m.FixtureItemID) error {
	return w.command(ctx, CommandEnsureExists, id.Root(), func(ctx context.Context) error {
		node, err := w.RestoreDefinitionNode(ctx, id)
		if err != nil {
			return err
		}

		_, err = node.EnsureExists(ctx)

		return err
	})
}

func (w *workflow) ConfigureMember(ctx context.Context, args ConfigureMemberArgs) error {
	return w.command(ctx, CommandSet, args.ID.Root(), func(ctx context.Context) error {
		node, err := w.RestoreDefinitionNode(ctx, args.ID)
		if err != nil {
			return err
		}

		_, err = node.ChangeMemberConfiguration(ctx, args.Member)

		return err
	})
}

func (w *workflow) ShowConfiguration(ctx context.Context, id m.FixtureItemID) error {
	item, err := Submit(ctx, w.queue, func(ctx context.Context) (m.ConfigurationItem, error) {
		if err := w.ensureLoaded(ctx, id.Root()); err != nil {
			return m.ConfigurationItem{}, err
		}

		td, err := w.catalog.GetTypeDescription(ctx, id.TypeFullName, id.Root())
		if err != nil {
			return m.ConfigurationItem{}, err
		}

		return w.GetConfigurationItem(ctx, id, td)
	})
	if err != nil {
		return fmt.Errorf("show configuration of %s: %w", id, err)
	}

	return w.DisplayConfiguration(ctx, item)
}

func (w *workflow) ShowHistory(ctx context.Context, rootPath string) error {
	entries, err := Submit(ctx, w.queue, func(ctx context.Context) ([]controller.HistoryEntry, error) {
		records, err := w.deps.Store.Records(ctx, rootPath)
		if err != nil {
			return nil, err
		}

		entries := make([]controller.HistoryEntry, 0, len(records))

		for _, record := range records {
			event, err := record.Event()
			if err != nil {
				return nil, fmt.Errorf("decode event %d: %w", record.Sequence, err)
			}

			entries = append(entries, controller.HistoryEntry{
				Sequence:   record.Sequence,
				RecordedAt: record.RecordedAt,
				Event:      event,
			})
		}

		return entries, nil
	})
	if err != nil {
		return fmt.Errorf("show history of %q: %w", rootPath, err)
	}

	return w.DisplayHistory(ctx, rootPath, entries)
}

// ListFixtureItems shows every item created under rootPath with its replayed configuration.
func (w *workflow) ListFixtureItems(ctx context.Context, rootPath string) error {
	items, err := Submit(ctx, w.queue, func(ctx context.Context) ([]controller.FixtureItemSummary, error) {
		created, err := adapter.FindAllOf[m.CreatedEvent](ctx, w.deps.Store, rootPath)
		if err != nil {
			return nil, err
		}

		if err := w.ensureLoaded(ctx, rootPath); err != nil {
			return nil, err
		}

		inSession := make(map[m.FixtureItemID]bool)
		for _, id := range w.cache.IDs(rootPath) {
			inSession[id] = true
		}

		items := make([]controller.FixtureItemSummary, 0, len(created))

		for _, event := range created {
			node, err := w.RestoreDefinitionNode(ctx, event.ID)
			if err != nil {
				if _, ok := m.AsFailure(err); !ok {
					return nil, err
				}

				slog.Warn("Skipping fixture item", "id", event.ID.String(), "error", err)

				continue
			}

			configuration := node.ConfigurationItem()
			items = append(items, controller.FixtureItemSummary{
				ID:          node.ID(),
				Members:     configuration.Len(),
				UserMembers: userMembers(configuration),
				InSession:   inSession[node.ID()],
			})
		}

		sort.Slice(items, func(i, j int) bool {
			return items[i].ID.String() < items[j].ID.String()
		})

		return items, nil
	})
	if err != nil {
		return fmt.Errorf("list fixture items of %q: %w", rootPath, err)
	}

	return w.DisplayFixtureItems(ctx, rootPath, items)
}

func (w *workflow) Shutdown() {
	w.queue.Close()
	w.detach()
}

// command runs fn on the queue, collects the events it published and hands them to
// the UI together with the outcome.
func (w *workflow) command(ctx context.Context, name, rootPath string, fn func(ctx context.Context) error) error {
	var events []m.Event

	err := w.queue.Do(ctx, func(ctx context.Context) error {
		if err := w.ensureLoaded(ctx, rootPath); err != nil {
			return err
		}

		unsubscribe := w.deps.Bus.Subscribe(func(_ context.Context, event m.Event) error {
			events = append(events, event)
			return nil
		})
		defer unsubscribe()

		return fn(ctx)
	})

	switch {
	case err == nil:
	case errors.Is(err, m.ErrInvariantViolation):
		slog.Error("Invariant violated", "command", name, "root", rootPath, "error", err)
	default:
		slog.Warn("Command failed", "command", name, "root", rootPath, "error", err)
	}

	if uiErr := w.DisplayEvents(ctx, name, events, err); uiErr != nil {
		slog.Warn("Failed to display events", "command", name, "error", uiErr)
	}

	return err
}

// ensureLoaded rebuilds the cache of rootPath once per workflow, so events published by
// this process fold onto the history of earlier ones.
func (w *workflow) ensureLoaded(ctx context.Context, rootPath string) error {
	if rootPath == "" {
		return nil
	}

	w.loadedMu.Lock()
	defer w.loadedMu.Unlock()

	if w.loaded[rootPath] {
		return nil
	}

	if err := w.cache.Load(ctx, rootPath); err != nil {
		return err
	}

	w.loaded[rootPath] = true

	return nil
}
