package model

import (
	"maps"
	"slices"
	"sort"
)

// MemberKind names a MemberConfiguration variant.
type MemberKind string

const (
	// MemberValue configures a literal value.
	MemberValue MemberKind = "value"
	// MemberNull configures null.
	MemberNull MemberKind = "null"
	// MemberUndefined leaves the member unset.
	MemberUndefined MemberKind = "undefined"
	// MemberUnique configures a generated unique value.
	MemberUnique MemberKind = "unique"
	// MemberLink delegates to another fixture item.
	MemberLink MemberKind = "link"
	// MemberCtor configures constructor parameters.
	MemberCtor MemberKind = "ctor"
	// MemberMethod configures a method return value.
	MemberMethod MemberKind = "method"
	// MemberCode configures a raw source fragment.
	MemberCode MemberKind = "code"
)

// CtorMemberName is the member name under which constructor configurations are stored.
const CtorMemberName = ".ctor"

// MemberConfiguration is the closed set of per-member build instructions.
type MemberConfiguration interface {
	MemberName() string
	Source() ConfigurationSource
	Kind() MemberKind
	WithSource(source ConfigurationSource) MemberConfiguration

	memberConfiguration()
}

// ValueMemberConfiguration sets the member to a literal.
type ValueMemberConfiguration struct {
	Name   string
	Origin ConfigurationSource
	Value  string
}

// NullMemberConfiguration sets the member to null.
type NullMemberConfiguration struct {
	Name   string
	Origin ConfigurationSource
}

// UndefinedMemberConfiguration leaves the member untouched.
type UndefinedMemberConfiguration struct {
	Name   string
	Origin ConfigurationSource
}

// UniqueMemberConfiguration fills the member with a generated unique value.
type UniqueMemberConfiguration struct {
	Name   string
	Origin ConfigurationSource
}

// LinkMemberConfiguration backs the member with another fixture item.
type LinkMemberConfiguration struct {
	Name   string
	Origin ConfigurationSource
	Target FixtureItemID
}

// CtorMemberConfiguration configures the constructor parameters by name.
type CtorMemberConfiguration struct {
	Name       string
	Origin     ConfigurationSource
	Parameters map[string]MemberConfiguration
}

// MethodConfiguration configures what a method returns. ParameterTypes is the
// signature that distinguishes overloads.
type MethodConfiguration struct {
	Name           string
	Origin         ConfigurationSource
	ReturnValue    MemberConfiguration
	ParameterTypes []string
}

// CodeMemberConfiguration sets the member from a raw source fragment.
type CodeMemberConfiguration struct {
	Name       string
	Origin     ConfigurationSource
	SourceCode string
}

func (c ValueMemberConfiguration) MemberName() string { return c.Name }
func (c ValueMemberConfiguration) Source() ConfigurationSource { return c.Origin }
func (c ValueMemberConfiguration) Kind() MemberKind { return MemberValue }
func (ValueMemberConfiguration) memberConfiguration() {}
func (c NullMemberConfiguration) MemberName() string { return c.Name }
func (c NullMemberConfiguration) Source() ConfigurationSource { return c.Origin }
func (c NullMemberConfiguration) Kind() MemberKind { return MemberNull }
func (NullMemberConfiguration) memberConfiguration() {}
func (c UndefinedMemberConfiguration) MemberName() string { return c.Name }
func (c UndefinedMemberConfiguration) Source() ConfigurationSource { return c.Origin }
func (c UndefinedMemberConfiguration) Kind() MemberKind { return MemberUndefined }
func (UndefinedMemberConfiguration) memberConfiguration() {}
func (c UniqueMemberConfiguration) MemberName() string { return c.Name }
func (c UniqueMemberConfiguration) Source() ConfigurationSource { return c.Origin }
func (c UniqueMemberConfiguration) Kind() MemberKind { return MemberUnique }
func (UniqueMemberConfiguration) memberConfiguration() {}
func (c LinkMemberConfiguration) MemberName() string { return c.Name }
func (c LinkMemberConfiguration) Source() ConfigurationSource { return c.Origin }
func (c LinkMemberConfiguration) Kind() MemberKind { return MemberLink }
func (LinkMemberConfiguration) memberConfiguration() {}
func (c CtorMemberConfiguration) MemberName() string { return c.Name }
func (c CtorMemberConfiguration) Source() ConfigurationSource { return c.Origin }
func (c CtorMemberConfiguration) Kind() MemberKind { return MemberCtor }
func (CtorMemberConfiguration) memberConfiguration() {}
func (c MethodConfiguration) MemberName() string { return c.Name }
func (c MethodConfiguration) Source() ConfigurationSource { return c.Origin }
func (c MethodConfiguration) Kind() MemberKind { return MemberMethod }
func (MethodConfiguration) memberConfiguration() {}
func (c CodeMemberConfiguration) MemberName() string { return c.Name }
func (c CodeMemberConfiguration) Source() ConfigurationSource { return c.Origin }
func (c CodeMemberConfiguration) Kind() MemberKind { return MemberCode }
func (CodeMemberConfiguration) memberConfiguration() {}

// WithSource implements MemberConfiguration.
func (c ValueMemberConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	c.Origin = s
	return c
}

// WithSource implements MemberConfiguration.
func (c NullMemberConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	c.Origin = s
	return c
}

// WithSource implements MemberConfiguration.
func (c UndefinedMemberConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	c.Origin = s
	return c
}

// WithSource implements MemberConfiguration.
func (c UniqueMemberConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	c.Origin = s
	return c
}

// WithSource implements MemberConfiguration.
func (c LinkMemberConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	c.Origin = s
	return c
}

// WithSource implements MemberConfiguration. Parameters take the same source.
func (c CtorMemberConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	params := make(map[string]MemberConfiguration, len(c.Parameters))
	for name, param := range c.Parameters {
		params[name] = param.WithSource(s)
	}

	c.Origin = s
	c.Parameters = params

	return c
}

// WithSource implements MemberConfiguration. The return value takes the same source.
func (c MethodConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	c.Origin = s
	if c.ReturnValue != nil {
		c.ReturnValue = c.ReturnValue.WithSource(s)
	}

	c.ParameterTypes = slices.Clone(c.ParameterTypes)

	return c
}

// WithSource implements MemberConfiguration.
func (c CodeMemberConfiguration) WithSource(s ConfigurationSource) MemberConfiguration {
	c.Origin = s
	return c
}

// ParameterNames returns the constructor parameter names in sorted order.
func (c CtorMemberConfiguration) ParameterNames() []string {
	names := slices.Collect(maps.Keys(c.Parameters))
	sort.Strings(names)

	return names
}

// LinkedFixtureItems returns the link targets reachable from mc: direct links,
// constructor parameters (recursively) and a method's return value. Links are not
// followed into the configuration of their targets.
func LinkedFixtureItems(mc MemberConfiguration) []FixtureItemID {
	var links []FixtureItemID

	seen := make(map[FixtureItemID]bool)

	var walk func(MemberConfiguration)
	walk = func(current MemberConfiguration) {
		switch c := current.(type) {
		case LinkMemberConfiguration:
			if !seen[c.Target] {
				seen[c.Target] = true
				links = append(links, c.Target)
			}
		case CtorMemberConfiguration:
			for _, name := range c.ParameterNames() {
				walk(c.Parameters[name])
			}
		case MethodConfiguration:
			if c.ReturnValue != nil {
				walk(c.ReturnValue)
			}
		}
	}

	if mc != nil {
		walk(mc)
	}

	return links
}
