package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

func TestConfigurationCache_FollowsCommands(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.startSession(t, testRoot)

	_, err := env.node(t, orderID("first")).ChangeMemberConfiguration(ctx,
		m.ValueMemberConfiguration{Name: "Total", Value: "10"})
	require.NoError(t, err)

	cached, ok := env.cache.GetCached(orderID("first")).Get()
	require.True(t, ok)
	assert.Equal(t, []string{"Total"}, cached.MemberNames())
	assert.Equal(t, []m.FixtureItemID{orderID("first")}, env.cache.IDs(testRoot))
}

func TestConfigurationCache_IDsAreSortedPerRoot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.startSession(t, testRoot)
	env.startSession(t, "Shop.Tests.RefundTests")

	for _, id := range []m.FixtureItemID{
		orderID("second"),
		customerID("anna"),
		orderID("first"),
		m.NewNamedFixtureItemID("Shop.Tests.RefundTests", "Shop.Order", "refund"),
	} {
		_, err := env.node(t, id).CreateNamedFixtureItem(ctx)
		require.NoError(t, err)
	}

	assert.Equal(t, []m.FixtureItemID{customerID("anna"), orderID("first"), orderID("second")}, env.cache.IDs(testRoot))
}

func TestConfigurationCache_EndDropsRoot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.startSession(t, testRoot)
	env.startSession(t, "Shop.Tests.RefundTests")

	other := m.NewNamedFixtureItemID("Shop.Tests.RefundTests", "Shop.Order", "refund")

	_, err := env.node(t, orderID("first")).CreateNamedFixtureItem(ctx)
	require.NoError(t, err)
	_, err = env.node(t, other).CreateNamedFixtureItem(ctx)
	require.NoError(t, err)

	require.True(t, env.cache.GetCached(orderID("first")).IsSome())

	require.NoError(t, env.bus.Publish(ctx, m.ConfigurationEndedEvent{RootPath: testRoot}))

	assert.True(t, env.cache.GetCached(orderID("first")).IsNone())
	assert.True(t, env.cache.GetCached(other).IsSome())
}

func TestConfigurationCache_StartRebuildsFromStore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := m.UserSource(testDocument)

	require.NoError(t, env.store.Append(ctx,
		m.CreatedEvent{ID: orderID("first")},
		m.MemberChangedEvent{ID: orderID("first"), Member: m.NullMemberConfiguration{Name: "Total", Origin: user}},
	))
	require.Empty(t, env.cache.IDs(testRoot))

	env.startSession(t, testRoot)

	cached, ok := env.cache.GetCached(orderID("first")).Get()
	require.True(t, ok)

	total, _ := cached.Member("Total")
	assert.Equal(t, m.MemberNull, total.Kind())
}

func TestConfigurationCache_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("active session", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.Append(ctx,
			m.ConfigurationStartedEvent{RootPath: testRoot, DocumentFilePath: testDocument},
			m.CreatedEvent{ID: orderID("first")},
		))

		require.NoError(t, env.cache.Load(ctx, testRoot))
		assert.True(t, env.cache.GetCached(orderID("first")).IsSome())
	})

	t.Run("ended session", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.Append(ctx,
			m.ConfigurationStartedEvent{RootPath: testRoot, DocumentFilePath: testDocument},
			m.CreatedEvent{ID: orderID("first")},
			m.ConfigurationEndedEvent{RootPath: testRoot},
		))

		require.NoError(t, env.cache.Load(ctx, testRoot))
		assert.Empty(t, env.cache.IDs(testRoot))
	})
}

func TestConfigurationCache_OrderingViolations(t *testing.T) {
	ctx := context.Background()
	user := m.UserSource(testDocument)

	t.Run("created twice", func(t *testing.T) {
		cache := NewConfigurationCache(nil, NewConfigurationItemFactory())

		require.NoError(t, cache.Handle(ctx, m.CreatedEvent{ID: orderID("first")}))

		err := cache.Handle(ctx, m.CreatedEvent{ID: orderID("first")})
		require.ErrorIs(t, err, &m.InvariantViolation{Code: m.CacheOrdering})
	})

	t.Run("member changed before created", func(t *testing.T) {
		cache := NewConfigurationCache(nil, NewConfigurationItemFactory())

		err := cache.Handle(ctx, m.MemberChangedEvent{
			ID:     orderID("first"),
			Member: m.NullMemberConfiguration{Name: "Total", Origin: user},
		})
		require.ErrorIs(t, err, m.ErrInvariantViolation)
		assert.Empty(t, cache.IDs(testRoot))
	})

	t.Run("violation aborts the publish", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.bus.Publish(ctx, m.CreatedEvent{ID: orderID("first")}))

		err := env.bus.Publish(ctx, m.CreatedEvent{ID: orderID("first")})
		require.ErrorIs(t, err, &m.InvariantViolation{Code: m.CacheOrdering})
	})
}

func TestConfigurationCache_IgnoresFailureEvents(t *testing.T) {
	cache := NewConfigurationCache(nil, NewConfigurationItemFactory())

	require.NoError(t, cache.Handle(context.Background(), m.CreatedFailedEvent{ID: orderID("first"), Reason: "taken"}))
	assert.Empty(t, cache.IDs(testRoot))
}
