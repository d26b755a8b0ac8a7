package domain

import (
	"maps"
	"sort"
	"strings"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// ConfigurationItemFactory builds and merges configuration items.
type ConfigurationItemFactory interface {
	Create(
		id m.FixtureItemID,
		fixtureConfigurations map[string]m.FixtureConfiguration,
		memberConfigurations map[string]m.MemberConfiguration,
		attributes map[string]string,
	) m.ConfigurationItem
	// Merge folds override into base. User-authored entries of override replace the
	// entries of base; member names unknown to base fail with INVALID_CONFIGURATION.
	Merge(base, override m.ConfigurationItem) (m.ConfigurationItem, error)
}

type configurationItemFactory struct{}

// NewConfigurationItemFactory creates the default factory.
func NewConfigurationItemFactory() ConfigurationItemFactory {
	return configurationItemFactory{}
}

func (configurationItemFactory) Create(
	id m.FixtureItemID,
	fixtureConfigurations map[string]m.FixtureConfiguration,
	memberConfigurations map[string]m.MemberConfiguration,
	attributes map[string]string,
) m.ConfigurationItem {
	return m.NewConfigurationItem(id, fixtureConfigurations, memberConfigurations, attributes)
}

func (f configurationItemFactory) Merge(base, override m.ConfigurationItem) (m.ConfigurationItem, error) {
	var unknown []string

	for _, name := range override.MemberNames() {
		if !base.HasMember(name) {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) > 0 {
		return base, m.NewInvalidConfiguration(override,
			"%s has no member(s) %s", base.ID().TypeFullName, strings.Join(unknown, ", "))
	}

	members := base.MemberConfigurations()

	for name, member := range override.MemberConfigurations() {
		if !member.Source().IsSystemDefault() {
			members[name] = member
		}
	}

	fixture := base.FixtureConfigurations()

	for name, fc := range override.FixtureConfigurations() {
		if _, ok := fixture[name]; !ok || !fc.Origin.IsSystemDefault() {
			fixture[name] = fc
		}
	}

	attributes := base.Attributes()
	maps.Copy(attributes, override.Attributes())

	return f.Create(base.ID(), fixture, members, attributes), nil
}

// userMembers returns the names of user-authored members in sorted order.
func userMembers(item m.ConfigurationItem) []string {
	var names []string

	for name, member := range item.MemberConfigurations() {
		if !member.Source().IsSystemDefault() {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
