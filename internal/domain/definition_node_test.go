package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// strayEvent is an event variant the node does not know.
type strayEvent struct {
	m.CreatedEvent
}

func (strayEvent) Kind() m.EventKind { return "stray" }

func TestDefinitionNode_CreateNamedFixtureItem(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes created", func(t *testing.T) {
		env := newTestEnv(t)
		events := env.record(t)

		node, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		assert.Equal(t, []m.Event{m.CreatedEvent{ID: orderID("first")}}, *events)
		assert.Equal(t, orderID("first"), node.ID())
		assert.Equal(t, orderID("first"), node.ConfigurationItem().ID())
	})

	t.Run("unnamed item", func(t *testing.T) {
		env := newTestEnv(t)
		events := env.record(t)
		id := orderID("first").WithoutName()

		_, err := env.node(t, id).CreateNamedFixtureItem(ctx)
		require.ErrorIs(t, err, m.ErrCannotCreateUnnamedItem)

		require.Len(t, *events, 1)
		failed, ok := (*events)[0].(m.CreatedFailedEvent)
		require.True(t, ok)
		assert.Equal(t, id, failed.ID)
		assert.NotEmpty(t, failed.Reason)
	})

	t.Run("same id twice", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		events := env.record(t)

		_, err = env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.ErrorIs(t, err, m.ErrNameAlreadyExists)
		assert.Contains(t, err.Error(), "Shop.Order")
		assert.Equal(t, []m.EventKind{m.EventCreatedFailed}, kindsOf(*events))
	})

	t.Run("name taken by another type", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.node(t, customerID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		_, err = env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.ErrorIs(t, err, m.ErrNameAlreadyExists)
		assert.Contains(t, err.Error(), "Shop.Customer")
	})

	t.Run("same name under another root", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		other := m.NewNamedFixtureItemID("Shop.Tests.RefundTests", "Shop.Order", "first")
		_, err = env.node(t, other).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)
	})
}

func TestDefinitionNode_EnsureExists(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes Created once", func(t *testing.T) {
		env := newTestEnv(t)
		events := env.record(t)

		node := env.node(t, orderID("first"))

		_, err := node.EnsureExists(ctx)
		require.NoError(t, err)

		_, err = node.EnsureExists(ctx)
		require.NoError(t, err)

		assert.Equal(t, []m.EventKind{m.EventCreated}, kindsOf(*events))
	})

	t.Run("unnamed item is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)
		events := env.record(t)

		id := orderID("first").WithoutName()

		_, err := env.node(t, id).EnsureExists(ctx)
		require.ErrorIs(t, err, m.ErrCannotCreateUnnamedItem)

		require.Len(t, *events, 1)
		failed := (*events)[0].(m.CreatedFailedEvent)
		assert.Equal(t, id, failed.ID)

		exists, err := env.repository.FixtureItemExistsInEventStore(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.True(t, env.cache.GetCached(id).IsNone())
	})
}

func TestDefinitionNode_ChangeMemberConfiguration(t *testing.T) {
	ctx := context.Background()
	user := m.UserSource(testDocument)

	t.Run("unnamed item", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)
		events := env.record(t)

		id := orderID("first").WithoutName()
		mc := m.ValueMemberConfiguration{Name: "Total", Value: "10"}

		_, err := env.node(t, id).ChangeMemberConfiguration(ctx, mc)
		require.ErrorIs(t, err, m.ErrCannotConfigureUnnamedItem)

		require.Len(t, *events, 1)
		failed := (*events)[0].(m.MemberChangedFailedEvent)
		assert.Equal(t, id, failed.ID)
		assert.Equal(t, mc, failed.Member)
	})

	t.Run("no active session", func(t *testing.T) {
		env := newTestEnv(t)
		events := env.record(t)

		_, err := env.node(t, orderID("first")).ChangeMemberConfiguration(ctx, m.NullMemberConfiguration{Name: "Total"})
		require.ErrorIs(t, err, m.ErrDocumentNotResolved)
		assert.Equal(t, []m.EventKind{m.EventMemberChangedFailed}, kindsOf(*events))
	})

	t.Run("unknown member", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)
		events := env.record(t)

		_, err := env.node(t, orderID("first")).ChangeMemberConfiguration(ctx, m.NullMemberConfiguration{Name: "Weight"})
		require.ErrorIs(t, err, m.ErrMemberNotFound)
		assert.Equal(t, []m.EventKind{m.EventMemberChangedFailed}, kindsOf(*events))
	})

	t.Run("value member of an uncreated item", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)
		events := env.record(t)

		node, err := env.node(t, orderID("first")).ChangeMemberConfiguration(ctx,
			m.ValueMemberConfiguration{Name: "Total", Value: "10"})
		require.NoError(t, err)

		assert.Equal(t, []m.Event{
			m.CreatedEvent{ID: orderID("first")},
			m.MemberChangedEvent{ID: orderID("first"), Member: m.ValueMemberConfiguration{Name: "Total", Origin: user, Value: "10"}},
		}, *events)

		total, _ := node.ConfigurationItem().Member("Total")
		assert.Equal(t, user, total.Source())
	})

	t.Run("link to a new item creates it first", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)

		_, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		events := env.record(t)
		link := m.LinkMemberConfiguration{Name: "Customer", Target: customerID("alice")}

		_, err = env.node(t, orderID("first")).ChangeMemberConfiguration(ctx, link)
		require.NoError(t, err)

		assert.Equal(t, []m.Event{
			m.CreatedEvent{ID: customerID("alice")},
			m.MemberChangedEvent{ID: orderID("first"), Member: link.WithSource(user)},
		}, *events)
	})

	t.Run("link to an existing item", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)

		_, err := env.node(t, customerID("alice")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)
		_, err = env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		events := env.record(t)

		_, err = env.node(t, orderID("first")).ChangeMemberConfiguration(ctx,
			m.LinkMemberConfiguration{Name: "Customer", Target: customerID("alice")})
		require.NoError(t, err)

		assert.Equal(t, []m.EventKind{m.EventMemberChanged}, kindsOf(*events))
	})

	t.Run("unnamed and self links are not created", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)

		_, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		events := env.record(t)
		ctor := m.CtorMemberConfiguration{
			Name: m.CtorMemberName,
			Parameters: map[string]m.MemberConfiguration{
				"id":     m.UniqueMemberConfiguration{Name: "id"},
				"parent": m.LinkMemberConfiguration{Name: "parent", Target: orderID("first")},
				"other":  m.LinkMemberConfiguration{Name: "other", Target: customerID("x").WithoutName()},
			},
		}

		_, err = env.node(t, orderID("first")).ChangeMemberConfiguration(ctx, ctor)
		require.NoError(t, err)

		assert.Equal(t, []m.EventKind{m.EventMemberChanged}, kindsOf(*events))
	})

	t.Run("constructor links are created in traversal order", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)

		_, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		events := env.record(t)
		ctor := m.CtorMemberConfiguration{
			Name: m.CtorMemberName,
			Parameters: map[string]m.MemberConfiguration{
				"a": m.LinkMemberConfiguration{Name: "a", Target: customerID("anna")},
				"b": m.LinkMemberConfiguration{Name: "b", Target: customerID("bob")},
			},
		}

		_, err = env.node(t, orderID("first")).ChangeMemberConfiguration(ctx, ctor)
		require.NoError(t, err)

		assert.Equal(t, []m.Event{
			m.CreatedEvent{ID: customerID("anna")},
			m.CreatedEvent{ID: customerID("bob")},
			m.MemberChangedEvent{ID: orderID("first"), Member: ctor.WithSource(user)},
		}, *events)
	})

	t.Run("method return links are created before the change", func(t *testing.T) {
		env := newTestEnv(t)
		env.startSession(t, testRoot)

		_, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)

		events := env.record(t)
		method := m.MethodConfiguration{
			Name:           "Discount",
			ReturnValue:    m.LinkMemberConfiguration{Name: "Discount", Target: customerID("new")},
			ParameterTypes: []string{"System.String"},
		}

		_, err = env.node(t, orderID("first")).ChangeMemberConfiguration(ctx, method)
		require.NoError(t, err)

		assert.Equal(t, []m.Event{
			m.CreatedEvent{ID: customerID("new")},
			m.MemberChangedEvent{ID: orderID("first"), Member: method.WithSource(user)},
		}, *events)
	})
}

func TestDefinitionNode_Replay(t *testing.T) {
	env := newTestEnv(t)
	user := m.UserSource(testDocument)
	id := orderID("first")

	history := []m.Event{
		m.ConfigurationStartedEvent{RootPath: testRoot, DocumentFilePath: testDocument},
		m.CreatedEvent{ID: id},
		m.MemberChangedEvent{ID: id, Member: m.ValueMemberConfiguration{Name: "Total", Origin: user, Value: "1"}},
		m.MemberChangedEvent{ID: customerID("alice"), Member: m.NullMemberConfiguration{Name: "Name", Origin: user}},
		m.MemberChangedFailedEvent{ID: id, Member: m.NullMemberConfiguration{Name: "Weight"}, Reason: "no member"},
		m.MemberChangedEvent{ID: id, Member: m.ValueMemberConfiguration{Name: "Total", Origin: user, Value: "2"}},
		m.MemberChangedEvent{ID: id, Member: m.NullMemberConfiguration{Name: "Customer", Origin: user}},
		m.ConfigurationEndedEvent{RootPath: testRoot},
	}

	fresh, err := env.query.GetDefinitionNode(context.Background(), id)
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		first, err := fresh.ReplayAll(history...)
		require.NoError(t, err)

		second, err := fresh.ReplayAll(history...)
		require.NoError(t, err)

		assert.Equal(t, first.ConfigurationItem(), second.ConfigurationItem())

		total, _ := first.ConfigurationItem().Member("Total")
		assert.Equal(t, "2", total.(m.ValueMemberConfiguration).Value)

		customer, _ := first.ConfigurationItem().Member("Customer")
		assert.Equal(t, m.MemberNull, customer.Kind())
	})

	t.Run("chunked replay equals whole replay", func(t *testing.T) {
		whole, err := fresh.ReplayAll(history...)
		require.NoError(t, err)

		for split := range len(history) + 1 {
			head, err := fresh.ReplayAll(history[:split]...)
			require.NoError(t, err)

			tail, err := head.ReplayAll(history[split:]...)
			require.NoError(t, err)

			assert.Equal(t, whole.ConfigurationItem(), tail.ConfigurationItem(), "split at %d", split)
		}
	})

	t.Run("replay leaves the receiver untouched", func(t *testing.T) {
		before := fresh.ConfigurationItem()

		_, err := fresh.ReplayAll(history...)
		require.NoError(t, err)

		assert.Equal(t, before, fresh.ConfigurationItem())
	})

	t.Run("unknown event variant", func(t *testing.T) {
		_, err := fresh.Replay(strayEvent{m.CreatedEvent{ID: id}})
		require.ErrorIs(t, err, &m.InvariantViolation{Code: m.UnhandledEventKind})
	})

	t.Run("member outside the schema", func(t *testing.T) {
		_, err := fresh.ReplayAll(m.MemberChangedEvent{
			ID:     id,
			Member: m.ValueMemberConfiguration{Name: "Weight", Origin: user, Value: "1"},
		})
		require.ErrorIs(t, err, m.ErrInvalidConfiguration)
		assert.Contains(t, err.Error(), "replay event 0")
	})
}

func TestDefinitionNode_ObserverSeesOutcome(t *testing.T) {
	env := newTestEnv(t)
	observer := &recordingObserver{}
	deps := env.deps
	deps.Observer = observer

	query := NewDefinitionQuery(deps, env.catalog, env.defaults)
	node, err := query.GetDefinitionNode(context.Background(), orderID("first").WithoutName())
	require.NoError(t, err)

	_, err = node.CreateNamedFixtureItem(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"started create", "finished create CANNOT_CREATE_UNNAMED_ITEM"}, observer.calls)
}
