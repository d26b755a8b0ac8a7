package controller

import (
	"fmt"
	"strings"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

// DescribeMember renders mc the way the member specs are written on the command line.
func DescribeMember(mc m.MemberConfiguration) string {
	switch c := mc.(type) {
	case m.ValueMemberConfiguration:
		return "value=" + c.Value
	case m.NullMemberConfiguration:
		return string(m.MemberNull)
	case m.UndefinedMemberConfiguration:
		return string(m.MemberUndefined)
	case m.UniqueMemberConfiguration:
		return string(m.MemberUnique)
	case m.LinkMemberConfiguration:
		return "link=" + itemRef(c.Target)
	case m.CtorMemberConfiguration:
		params := make([]string, 0, len(c.Parameters))
		for _, name := range c.ParameterNames() {
			params = append(params, name+"="+DescribeMember(c.Parameters[name]))
		}

		return "ctor(" + strings.Join(params, ", ") + ")"
	case m.MethodConfiguration:
		returns := string(m.MemberUndefined)
		if c.ReturnValue != nil {
			returns = DescribeMember(c.ReturnValue)
		}

		return fmt.Sprintf("(%s) returns %s", strings.Join(c.ParameterTypes, ","), returns)
	case m.CodeMemberConfiguration:
		return "code=" + c.SourceCode
	case nil:
		return ""
	default:
		return string(mc.Kind())
	}
}

// DescribeSource renders the provenance of a configuration entry.
func DescribeSource(source m.ConfigurationSource) string {
	if source.IsSystemDefault() {
		return "default"
	}

	if source.DocumentFilePath == "" {
		return string(m.SourceUser)
	}

	return string(m.SourceUser) + " (" + source.DocumentFilePath + ")"
}

// DescribeEvent renders one event on a single line.
func DescribeEvent(event m.Event) string {
	switch e := event.(type) {
	case m.CreatedEvent:
		return fmt.Sprintf("created %s", itemRef(e.ID))
	case m.MemberChangedEvent:
		return fmt.Sprintf("%s.%s = %s", itemRef(e.ID), e.Member.MemberName(), DescribeMember(e.Member))
	case m.ConfigurationStartedEvent:
		return fmt.Sprintf("session started for %s (project %s, document %s, span %s)",
			e.RootPath, e.ProjectName, e.DocumentFilePath, e.InvocationSpan)
	case m.ConfigurationEndedEvent:
		return fmt.Sprintf("session ended for %s", e.RootPath)
	case m.CreatedFailedEvent:
		return fmt.Sprintf("create %s rejected: %s", itemRef(e.ID), e.Reason)
	case m.MemberChangedFailedEvent:
		member := ""
		if e.Member != nil {
			member = "." + e.Member.MemberName()
		}

		return fmt.Sprintf("change %s%s rejected: %s", itemRef(e.ID), member, e.Reason)
	default:
		return string(event.Kind())
	}
}

func itemRef(id m.FixtureItemID) string {
	if name, ok := id.Name.Get(); ok {
		return id.TypeFullName + "#" + name
	}

	return id.TypeFullName
}

func errorLabel(err error) string {
	if failure, ok := m.AsFailure(err); ok {
		return string(failure.Code)
	}

	return "error"
}
