package cmd

import (
	"fmt"
	"strings"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

const memberSpecHelp = `Member specs:
  value=<literal>      literal value
  null                 null
  undefined            leave the member unset
  unique               generated unique value
  link=<Type[#name]>   another fixture item under the same root
  code=<source>        raw source fragment`

// parseMemberSpec turns one member spec into the configuration of member name.
func parseMemberSpec(rootPath, name, spec string) (m.MemberConfiguration, error) {
	kind, argument, hasArgument := strings.Cut(strings.TrimSpace(spec), "=")

	switch m.MemberKind(kind) {
	case m.MemberNull, m.MemberUndefined, m.MemberUnique:
		if hasArgument {
			return nil, fmt.Errorf("member spec %q takes no argument", spec)
		}

		return plainMember(m.MemberKind(kind), name), nil
	case m.MemberValue:
		if !hasArgument {
			return nil, fmt.Errorf("member spec %q needs a value", spec)
		}

		return m.ValueMemberConfiguration{Name: name, Value: argument}, nil
	case m.MemberCode:
		if !hasArgument || argument == "" {
			return nil, fmt.Errorf("member spec %q needs source code", spec)
		}

		return m.CodeMemberConfiguration{Name: name, SourceCode: argument}, nil
	case m.MemberLink:
		target, ok := m.ParseFixtureItemRef(rootPath, argument)
		if !hasArgument || !ok {
			return nil, fmt.Errorf("member spec %q needs a target Type[#name]", spec)
		}

		return m.LinkMemberConfiguration{Name: name, Target: target}, nil
	default:
		return nil, fmt.Errorf("unknown member spec %q", spec)
	}
}

func plainMember(kind m.MemberKind, name string) m.MemberConfiguration {
	switch kind {
	case m.MemberNull:
		return m.NullMemberConfiguration{Name: name}
	case m.MemberUndefined:
		return m.UndefinedMemberConfiguration{Name: name}
	default:
		return m.UniqueMemberConfiguration{Name: name}
	}
}

// parseCtorSpec builds a constructor configuration from name=<spec> parameters.
func parseCtorSpec(rootPath string, params []string) (m.MemberConfiguration, error) {
	parameters := make(map[string]m.MemberConfiguration, len(params))

	for _, param := range params {
		name, spec, ok := strings.Cut(param, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("constructor parameter %q is not name=<spec>", param)
		}

		if _, seen := parameters[name]; seen {
			return nil, fmt.Errorf("constructor parameter %q is given twice", name)
		}

		mc, err := parseMemberSpec(rootPath, name, spec)
		if err != nil {
			return nil, fmt.Errorf("constructor parameter %q: %w", name, err)
		}

		parameters[name] = mc
	}

	return m.CtorMemberConfiguration{Name: m.CtorMemberName, Parameters: parameters}, nil
}

// parseMethodSpec builds a method configuration returning the value of returns.
func parseMethodSpec(rootPath, name, returns, signature string) (m.MemberConfiguration, error) {
	returnValue, err := parseMemberSpec(rootPath, name, returns)
	if err != nil {
		return nil, fmt.Errorf("return value of %q: %w", name, err)
	}

	var parameterTypes []string

	for _, typeName := range strings.Split(signature, ",") {
		if typeName = strings.TrimSpace(typeName); typeName != "" {
			parameterTypes = append(parameterTypes, typeName)
		}
	}

	return m.MethodConfiguration{Name: name, ReturnValue: returnValue, ParameterTypes: parameterTypes}, nil
}
