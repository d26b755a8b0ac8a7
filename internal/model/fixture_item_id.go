// Package model defines the value types of the fixture-configuration engine.
package model

import (
	"strings"

	fxpkg "fixtura.dev/pkg/fixtura/pkg"
)

// FixtureItemID identifies a configurable fixture item.
//
// Two ids are equal iff root path, type and name all match, so FixtureItemID can be
// compared with == and used as a map key. An id without a name denotes the unnamed
// default item of its type.
type FixtureItemID struct {
	RootItemPath fxpkg.Maybe[string]
	TypeFullName string
	Name         fxpkg.Maybe[string]
}

// NewFixtureItemID returns the unnamed id of typeFullName without a root path.
func NewFixtureItemID(typeFullName string) FixtureItemID {
	return FixtureItemID{TypeFullName: typeFullName}
}

// NewNamedFixtureItemID returns a named id under rootPath.
func NewNamedFixtureItemID(rootPath, typeFullName, name string) FixtureItemID {
	return NewFixtureItemID(typeFullName).WithRootItemPath(rootPath).WithName(name)
}

// WithName returns a copy carrying name.
func (id FixtureItemID) WithName(name string) FixtureItemID {
	id.Name = fxpkg.Some(name)
	return id
}

// WithoutName returns the unnamed id of the same type and root.
func (id FixtureItemID) WithoutName() FixtureItemID {
	id.Name = fxpkg.None[string]()
	return id
}

// WithRootItemPath returns a copy anchored under rootPath.
func (id FixtureItemID) WithRootItemPath(rootPath string) FixtureItemID {
	id.RootItemPath = fxpkg.Some(rootPath)
	return id
}

// IsNamed reports whether the id can be configured independently.
func (id FixtureItemID) IsNamed() bool {
	return id.Name.IsSome()
}

// Root returns the root item path or "" when the id is not anchored.
func (id FixtureItemID) Root() string {
	return id.RootItemPath.OrElse("")
}

// String renders the id as [root:]Type[#name].
func (id FixtureItemID) String() string {
	var b strings.Builder

	if root, ok := id.RootItemPath.Get(); ok {
		b.WriteString(root)
		b.WriteString(":")
	}

	b.WriteString(id.TypeFullName)

	if name, ok := id.Name.Get(); ok {
		b.WriteString("#")
		b.WriteString(name)
	}

	return b.String()
}

// ParseFixtureItemRef parses "Type" or "Type#name" under rootPath.
func ParseFixtureItemRef(rootPath, ref string) (FixtureItemID, bool) {
	typeName, name, named := strings.Cut(strings.TrimSpace(ref), "#")
	if typeName == "" || (named && name == "") {
		return FixtureItemID{}, false
	}

	id := NewFixtureItemID(typeName)
	if rootPath != "" {
		id = id.WithRootItemPath(rootPath)
	}

	if named {
		id = id.WithName(name)
	}

	return id, true
}
