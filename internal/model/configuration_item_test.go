package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationItem_IsImmutable(t *testing.T) {
	id := NewNamedFixtureItemID("P", "Car", "car1")
	members := map[string]MemberConfiguration{
		"Wheels": UniqueMemberConfiguration{Name: "Wheels"},
	}

	item := NewConfigurationItem(id, nil, members, map[string]string{"verify": "true"})
	members["Color"] = NullMemberConfiguration{Name: "Color"}

	require.Equal(t, 1, item.Len())

	changed := item.WithMember(ValueMemberConfiguration{Name: "Wheels", Value: "4"})

	before, ok := item.Member("Wheels")
	require.True(t, ok)
	assert.Equal(t, MemberUnique, before.Kind())

	after, ok := changed.Member("Wheels")
	require.True(t, ok)
	assert.Equal(t, MemberValue, after.Kind())

	exported := item.MemberConfigurations()
	delete(exported, "Wheels")
	assert.True(t, item.HasMember("Wheels"))

	attrs := item.Attributes()
	attrs["verify"] = "false"
	assert.Equal(t, "true", item.Attributes()["verify"])
}

func TestConfigurationItem_Accessors(t *testing.T) {
	id := NewNamedFixtureItemID("P", "Car", "car1")
	item := EmptyConfigurationItem(id).
		WithMember(UniqueMemberConfiguration{Name: "b"}).
		WithMember(UniqueMemberConfiguration{Name: "a"}).
		WithFixtureConfiguration(FixtureConfiguration{Name: "strict", Value: "true"}).
		WithAttribute("k", "v")

	assert.Equal(t, id, item.ID())
	assert.Equal(t, []string{"a", "b"}, item.MemberNames())
	assert.Equal(t, "true", item.FixtureConfigurations()["strict"].Value)
	assert.Equal(t, "v", item.Attributes()["k"])

	other := id.WithName("car2")
	assert.Equal(t, other, item.WithID(other).ID())
	assert.Equal(t, id, item.ID())

	var zero ConfigurationItem
	assert.NotNil(t, zero.MemberConfigurations())
	assert.Empty(t, zero.MemberNames())
}
