package model

import (
	"errors"
	"fmt"
	"strings"
)

// MemberDescriptionKind tells how a member is accessed.
type MemberDescriptionKind string

const (
	// MemberField is a field.
	MemberField MemberDescriptionKind = "field"
	// MemberProperty is a property.
	MemberProperty MemberDescriptionKind = "property"
	// MemberMethodKind is a method.
	MemberMethodKind MemberDescriptionKind = "method"
)

// VoidTypeName is the return type of methods without a result.
const VoidTypeName = "System.Void"

var baseTypeNames = map[string]bool{
	"System.Boolean":        true,
	"System.Byte":           true,
	"System.SByte":          true,
	"System.Char":           true,
	"System.Int16":          true,
	"System.UInt16":         true,
	"System.Int32":          true,
	"System.UInt32":         true,
	"System.Int64":          true,
	"System.UInt64":         true,
	"System.Single":         true,
	"System.Double":         true,
	"System.Decimal":        true,
	"System.String":         true,
	"System.DateTime":       true,
	"System.DateTimeOffset": true,
	"System.TimeSpan":       true,
	"System.Guid":           true,
}

// IsBaseTypeName reports whether typeFullName is a built-in value-like type.
func IsBaseTypeName(typeFullName string) bool {
	return baseTypeNames[typeFullName]
}

// ParameterDescription describes one constructor or method parameter.
type ParameterDescription struct {
	Name         string `yaml:"name"`
	TypeFullName string `yaml:"type"`
	BaseType     bool   `yaml:"baseType,omitempty"`
}

// IsBaseType reports whether the parameter type is a base type.
func (p ParameterDescription) IsBaseType() bool {
	return p.BaseType || IsBaseTypeName(p.TypeFullName)
}

// MemberDescription describes one configurable member.
type MemberDescription struct {
	Name         string                 `yaml:"name"`
	Kind         MemberDescriptionKind  `yaml:"kind"`
	TypeFullName string                 `yaml:"type"`
	BaseType     bool                   `yaml:"baseType,omitempty"`
	Parameters   []ParameterDescription `yaml:"parameters,omitempty"`
}

// IsBaseType reports whether the member type is a base type.
func (m MemberDescription) IsBaseType() bool {
	return m.BaseType || IsBaseTypeName(m.TypeFullName)
}

// ParameterTypes returns the method signature.
func (m MemberDescription) ParameterTypes() []string {
	types := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		types = append(types, p.TypeFullName)
	}

	return types
}

// TypeDescription is the metadata of a type that fixture items can be built from.
type TypeDescription struct {
	TypeFullName string                 `yaml:"name"`
	IsInterface  bool                   `yaml:"interface,omitempty"`
	Constructor  []ParameterDescription `yaml:"constructor,omitempty"`
	Members      []MemberDescription    `yaml:"members,omitempty"`
}

// Member returns the description of the member called name.
func (t TypeDescription) Member(name string) (MemberDescription, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}

	return MemberDescription{}, false
}

// HasConstructor reports whether items of this type are built through a constructor
// with parameters.
func (t TypeDescription) HasConstructor() bool {
	return !t.IsInterface && len(t.Constructor) > 0
}

// Validate reports structural problems: missing names, unknown member kinds and
// duplicate member or parameter names.
func (t TypeDescription) Validate() error {
	var errs []error

	if strings.TrimSpace(t.TypeFullName) == "" {
		errs = append(errs, errors.New("type name is empty"))
	}

	seen := map[string]bool{CtorMemberName: t.HasConstructor()}

	for i, m := range t.Members {
		switch {
		case m.Name == "":
			errs = append(errs, fmt.Errorf("member %d has no name", i))
		case seen[m.Name]:
			errs = append(errs, fmt.Errorf("member %q is declared twice", m.Name))
		}

		seen[m.Name] = true

		if m.TypeFullName == "" {
			errs = append(errs, fmt.Errorf("member %q has no type", m.Name))
		}

		switch m.Kind {
		case MemberField, MemberProperty, MemberMethodKind:
		default:
			errs = append(errs, fmt.Errorf("member %q has unknown kind %q", m.Name, m.Kind))
		}
	}

	params := map[string]bool{}

	for i, p := range t.Constructor {
		switch {
		case p.Name == "":
			errs = append(errs, fmt.Errorf("constructor parameter %d has no name", i))
		case params[p.Name]:
			errs = append(errs, fmt.Errorf("constructor parameter %q is declared twice", p.Name))
		}

		params[p.Name] = true

		if p.TypeFullName == "" {
			errs = append(errs, fmt.Errorf("constructor parameter %q has no type", p.Name))
		}
	}

	return errors.Join(errs...)
}
