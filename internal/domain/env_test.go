package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	m "fixtura.dev/pkg/fixtura/internal/model"
	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

const (
	testRoot     = "Shop.Tests.OrderTests"
	testDocument = "OrderTests.cs"
	testProject  = "Shop.Tests"
)

var (
	orderType = m.TypeDescription{
		TypeFullName: "Shop.Order",
		Constructor:  []m.ParameterDescription{{Name: "id", TypeFullName: "System.Guid"}},
		Members: []m.MemberDescription{
			{Name: "Total", Kind: m.MemberProperty, TypeFullName: "System.Decimal"},
			{Name: "Customer", Kind: m.MemberProperty, TypeFullName: "Shop.Customer"},
			{
				Name:         "Discount",
				Kind:         m.MemberMethodKind,
				TypeFullName: "System.Decimal",
				Parameters:   []m.ParameterDescription{{Name: "code", TypeFullName: "System.String"}},
			},
			{Name: "Cancel", Kind: m.MemberMethodKind, TypeFullName: m.VoidTypeName},
		},
	}
	customerType = m.TypeDescription{
		TypeFullName: "Shop.Customer",
		Members: []m.MemberDescription{
			{Name: "Name", Kind: m.MemberProperty, TypeFullName: "System.String"},
			{Name: "Address", Kind: m.MemberField, TypeFullName: "Shop.Address"},
		},
	}
	addressType = m.TypeDescription{
		TypeFullName: "Shop.Address",
		Members: []m.MemberDescription{
			{Name: "Street", Kind: m.MemberProperty, TypeFullName: "System.String"},
		},
	}
)

// testEnv wires the domain services over a spill store the way the workflow does.
type testEnv struct {
	store      adapter.EventStore
	bus        *adapter.InProcessEventBus
	catalog    *adapter.StaticTypeCatalog
	factory    ConfigurationItemFactory
	defaults   SystemDefaultService
	deps       NodeDependencies
	query      DefinitionQuery
	repository DefinitionRepository
	cache      *ConfigurationCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := adapter.NewSpillEventStore(fxpkg.WithSpillDir(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	bus := adapter.NewInProcessEventBus(store)
	catalog := adapter.NewStaticTypeCatalog(orderType, customerType, addressType)
	factory := NewConfigurationItemFactory()
	defaults := NewSystemDefaultService(factory)
	deps := NodeDependencies{
		Store:    store,
		Bus:      bus,
		Factory:  factory,
		Sessions: NewSessionQuery(store),
	}
	query := NewDefinitionQuery(deps, catalog, defaults)
	cache := NewConfigurationCache(store, factory)
	t.Cleanup(cache.Attach(bus))

	return &testEnv{
		store:      store,
		bus:        bus,
		catalog:    catalog,
		factory:    factory,
		defaults:   defaults,
		deps:       deps,
		query:      query,
		repository: NewDefinitionRepository(query, store, bus),
		cache:      cache,
	}
}

func (e *testEnv) startSession(t *testing.T, root string) {
	t.Helper()

	require.NoError(t, e.bus.Publish(context.Background(), m.ConfigurationStartedEvent{
		RootPath:         root,
		ProjectName:      testProject,
		DocumentFilePath: testDocument,
		InvocationSpan:   m.InvocationSpan{Start: 120, Length: 48},
	}))
}

func (e *testEnv) node(t *testing.T, id m.FixtureItemID) DefinitionNode {
	t.Helper()

	node, err := e.repository.RestoreDefinitionNode(context.Background(), id)
	require.NoError(t, err)

	return node
}

// record collects every event published from now on.
func (e *testEnv) record(t *testing.T) *[]m.Event {
	t.Helper()

	var events []m.Event

	t.Cleanup(e.bus.Subscribe(func(_ context.Context, event m.Event) error {
		events = append(events, event)
		return nil
	}))

	return &events
}

func kindsOf(events []m.Event) []m.EventKind {
	kinds := make([]m.EventKind, 0, len(events))
	for _, event := range events {
		kinds = append(kinds, event.Kind())
	}

	return kinds
}

func orderID(name string) m.FixtureItemID {
	return m.NewNamedFixtureItemID(testRoot, orderType.TypeFullName, name)
}

func customerID(name string) m.FixtureItemID {
	return m.NewNamedFixtureItemID(testRoot, customerType.TypeFullName, name)
}
