package model

import (
	"maps"
	"slices"
	"sort"
)

// FixtureConfiguration is a per-item setting that is not tied to a member.
type FixtureConfiguration struct {
	Name   string
	Value  string
	Origin ConfigurationSource
}

// ConfigurationItem is an immutable snapshot of how a fixture item is built.
// Every With* method returns a new snapshot.
type ConfigurationItem struct {
	id         FixtureItemID
	fixture    map[string]FixtureConfiguration
	members    map[string]MemberConfiguration
	attributes map[string]string
}

// NewConfigurationItem copies the given maps into a new snapshot.
func NewConfigurationItem(
	id FixtureItemID,
	fixtureConfigurations map[string]FixtureConfiguration,
	memberConfigurations map[string]MemberConfiguration,
	attributes map[string]string,
) ConfigurationItem {
	item := ConfigurationItem{
		id:         id,
		fixture:    make(map[string]FixtureConfiguration, len(fixtureConfigurations)),
		members:    make(map[string]MemberConfiguration, len(memberConfigurations)),
		attributes: make(map[string]string, len(attributes)),
	}

	maps.Copy(item.fixture, fixtureConfigurations)
	maps.Copy(item.members, memberConfigurations)
	maps.Copy(item.attributes, attributes)

	return item
}

// EmptyConfigurationItem returns a snapshot without any entries.
func EmptyConfigurationItem(id FixtureItemID) ConfigurationItem {
	return NewConfigurationItem(id, nil, nil, nil)
}

// ID returns the fixture item the snapshot belongs to.
func (c ConfigurationItem) ID() FixtureItemID {
	return c.id
}

// WithID rebinds the snapshot to id.
func (c ConfigurationItem) WithID(id FixtureItemID) ConfigurationItem {
	next := c.clone()
	next.id = id

	return next
}

// FixtureConfigurations returns a copy of the fixture settings.
func (c ConfigurationItem) FixtureConfigurations() map[string]FixtureConfiguration {
	return maps.Clone(c.nonNilFixture())
}

// MemberConfigurations returns a copy of the member configurations keyed by member name.
func (c ConfigurationItem) MemberConfigurations() map[string]MemberConfiguration {
	return maps.Clone(c.nonNilMembers())
}

// Attributes returns a copy of the attribute bag.
func (c ConfigurationItem) Attributes() map[string]string {
	return maps.Clone(c.nonNilAttributes())
}

// Member looks up a member configuration by name.
func (c ConfigurationItem) Member(name string) (MemberConfiguration, bool) {
	mc, ok := c.members[name]
	return mc, ok
}

// HasMember reports whether the snapshot knows a member called name.
func (c ConfigurationItem) HasMember(name string) bool {
	_, ok := c.members[name]
	return ok
}

// MemberNames returns the member names in sorted order.
func (c ConfigurationItem) MemberNames() []string {
	names := slices.Collect(maps.Keys(c.members))
	sort.Strings(names)

	return names
}

// Len returns the number of member configurations.
func (c ConfigurationItem) Len() int {
	return len(c.members)
}

// WithMember returns a snapshot with mc set, replacing any member of the same name.
func (c ConfigurationItem) WithMember(mc MemberConfiguration) ConfigurationItem {
	next := c.clone()
	next.members[mc.MemberName()] = mc

	return next
}

// WithFixtureConfiguration returns a snapshot with fc set.
func (c ConfigurationItem) WithFixtureConfiguration(fc FixtureConfiguration) ConfigurationItem {
	next := c.clone()
	next.fixture[fc.Name] = fc

	return next
}

// WithAttribute returns a snapshot with the attribute set.
func (c ConfigurationItem) WithAttribute(key, value string) ConfigurationItem {
	next := c.clone()
	next.attributes[key] = value

	return next
}

func (c ConfigurationItem) clone() ConfigurationItem {
	return NewConfigurationItem(c.id, c.fixture, c.members, c.attributes)
}

func (c ConfigurationItem) nonNilFixture() map[string]FixtureConfiguration {
	if c.fixture == nil {
		return map[string]FixtureConfiguration{}
	}

	return c.fixture
}

func (c ConfigurationItem) nonNilMembers() map[string]MemberConfiguration {
	if c.members == nil {
		return map[string]MemberConfiguration{}
	}

	return c.members
}

func (c ConfigurationItem) nonNilAttributes() map[string]string {
	if c.attributes == nil {
		return map[string]string{}
	}

	return c.attributes
}
