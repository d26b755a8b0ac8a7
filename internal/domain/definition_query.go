package domain

import (
	"context"

	"fixtura.dev/pkg/fixtura/internal/adapter"
	m "fixtura.dev/pkg/fixtura/internal/model"
)

// DefinitionQuery builds fresh definition nodes from the current type metadata.
type DefinitionQuery interface {
	// GetDefinitionNode returns a node for id carrying only system defaults.
	GetDefinitionNode(ctx context.Context, id m.FixtureItemID) (DefinitionNode, error)
}

type definitionQuery struct {
	NodeDependencies
	catalog  adapter.TypeCatalog
	defaults SystemDefaultService
}

// NewDefinitionQuery creates a DefinitionQuery.
func NewDefinitionQuery(deps NodeDependencies, catalog adapter.TypeCatalog, defaults SystemDefaultService) DefinitionQuery {
	return &definitionQuery{
		NodeDependencies: deps,
		catalog:          catalog,
		defaults:         defaults,
	}
}

func (q *definitionQuery) GetDefinitionNode(ctx context.Context, id m.FixtureItemID) (DefinitionNode, error) {
	td, err := q.catalog.GetTypeDescription(ctx, id.TypeFullName, id.Root())
	if err != nil {
		return DefinitionNode{}, err
	}

	configuration, err := q.defaults.GetDefaultConfigurationItem(ctx, td, id.Root())
	if err != nil {
		return DefinitionNode{}, err
	}

	return NewDefinitionNode(q.NodeDependencies, id, td, configuration), nil
}
