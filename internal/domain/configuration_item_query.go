package domain

import (
	"context"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// ConfigurationItemQuery answers what a reader should see for a fixture item right now.
type ConfigurationItemQuery interface {
	// GetConfigurationItem merges the cached overrides of id onto the defaults of td.
	GetConfigurationItem(ctx context.Context, id m.FixtureItemID, td m.TypeDescription) (m.ConfigurationItem, error)
}

type configurationItemQuery struct {
	cache    *ConfigurationCache
	defaults SystemDefaultService
	factory  ConfigurationItemFactory
}

// NewConfigurationItemQuery creates a ConfigurationItemQuery.
func NewConfigurationItemQuery(cache *ConfigurationCache, defaults SystemDefaultService, factory ConfigurationItemFactory) ConfigurationItemQuery {
	return &configurationItemQuery{cache: cache, defaults: defaults, factory: factory}
}

func (q *configurationItemQuery) GetConfigurationItem(ctx context.Context, id m.FixtureItemID, td m.TypeDescription) (m.ConfigurationItem, error) {
	defaults, err := q.defaults.GetDefaultConfigurationItem(ctx, td, id.Root())
	if err != nil {
		return m.ConfigurationItem{}, err
	}

	defaults = defaults.WithID(id)

	cached, ok := q.cache.GetCached(id).Get()
	if !ok {
		return defaults, nil
	}

	return q.factory.Merge(defaults, cached)
}
