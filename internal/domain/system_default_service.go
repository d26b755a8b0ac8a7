package domain

import (
	"context"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// SystemDefaultService derives the configuration a type gets when nobody configured it.
type SystemDefaultService interface {
	// GetDefaultConfigurationItem fails with an INVALID_TYPE_DESCRIPTION invariant
	// violation when td is structurally broken.
	GetDefaultConfigurationItem(ctx context.Context, td m.TypeDescription, rootPath string) (m.ConfigurationItem, error)
}

type systemDefaultService struct {
	factory ConfigurationItemFactory
}

// NewSystemDefaultService creates a SystemDefaultService building items with factory.
func NewSystemDefaultService(factory ConfigurationItemFactory) SystemDefaultService {
	return &systemDefaultService{factory: factory}
}

func (s *systemDefaultService) GetDefaultConfigurationItem(ctx context.Context, td m.TypeDescription, rootPath string) (m.ConfigurationItem, error) {
	if err := ctx.Err(); err != nil {
		return m.ConfigurationItem{}, err
	}

	if err := td.Validate(); err != nil {
		return m.ConfigurationItem{}, m.NewInvariantViolation(m.InvalidTypeDescription, err,
			"type description %q is invalid", td.TypeFullName)
	}

	members := make(map[string]m.MemberConfiguration, len(td.Members)+1)

	if td.HasConstructor() {
		params := make(map[string]m.MemberConfiguration, len(td.Constructor))
		for _, p := range td.Constructor {
			params[p.Name] = defaultFor(p.Name, p.TypeFullName, p.IsBaseType(), rootPath)
		}

		members[m.CtorMemberName] = m.CtorMemberConfiguration{
			Name:       m.CtorMemberName,
			Origin:     m.SystemDefaultSource(),
			Parameters: params,
		}
	}

	for _, member := range td.Members {
		if member.Kind == m.MemberMethodKind {
			members[member.Name] = m.MethodConfiguration{
				Name:           member.Name,
				Origin:         m.SystemDefaultSource(),
				ReturnValue:    defaultFor(member.Name, member.TypeFullName, member.IsBaseType(), rootPath),
				ParameterTypes: member.ParameterTypes(),
			}

			continue
		}

		members[member.Name] = defaultFor(member.Name, member.TypeFullName, member.IsBaseType(), rootPath)
	}

	return s.factory.Create(anchor(m.NewFixtureItemID(td.TypeFullName), rootPath), nil, members, nil), nil
}

// defaultFor is the default of one slot: Undefined for void, Unique for base types
// and otherwise a link to the unnamed item of the slot type.
func defaultFor(name, typeFullName string, baseType bool, rootPath string) m.MemberConfiguration {
	source := m.SystemDefaultSource()

	switch {
	case typeFullName == m.VoidTypeName:
		return m.UndefinedMemberConfiguration{Name: name, Origin: source}
	case baseType:
		return m.UniqueMemberConfiguration{Name: name, Origin: source}
	default:
		return m.LinkMemberConfiguration{
			Name:   name,
			Origin: source,
			Target: anchor(m.NewFixtureItemID(typeFullName), rootPath),
		}
	}
}

func anchor(id m.FixtureItemID, rootPath string) m.FixtureItemID {
	if rootPath == "" {
		return id
	}

	return id.WithRootItemPath(rootPath)
}
