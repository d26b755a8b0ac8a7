package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	m "fixtura.dev/pkg/fixtura/internal/model"
)

func TestDescribeMember(t *testing.T) {
	user := m.UserSource("OrderTests.cs")
	customer := m.NewNamedFixtureItemID("Tests.Root", "Shop.Customer", "alice")

	tests := []struct {
		name   string
		member m.MemberConfiguration
		want   string
	}{
		{"value", m.ValueMemberConfiguration{Name: "Total", Origin: user, Value: "42"}, "value=42"},
		{"null", m.NullMemberConfiguration{Name: "Note"}, "null"},
		{"undefined", m.UndefinedMemberConfiguration{Name: "Note"}, "undefined"},
		{"unique", m.UniqueMemberConfiguration{Name: "Id"}, "unique"},
		{"link", m.LinkMemberConfiguration{Name: "Customer", Target: customer}, "link=Shop.Customer#alice"},
		{"code", m.CodeMemberConfiguration{Name: "Total", SourceCode: "40 + 2"}, "code=40 + 2"},
		{
			name: "ctor sorts parameters",
			member: m.CtorMemberConfiguration{Name: m.CtorMemberName, Parameters: map[string]m.MemberConfiguration{
				"total": m.ValueMemberConfiguration{Name: "total", Value: "1"},
				"id":    m.UniqueMemberConfiguration{Name: "id"},
			}},
			want: "ctor(id=unique, total=value=1)",
		},
		{
			name: "method",
			member: m.MethodConfiguration{
				Name:           "Discount",
				ReturnValue:    m.ValueMemberConfiguration{Name: "Discount", Value: "0.1"},
				ParameterTypes: []string{"int", "string"},
			},
			want: "(int,string) returns value=0.1",
		},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeMember(tt.member))
		})
	}
}

func TestDescribeSource(t *testing.T) {
	assert.Equal(t, "default", DescribeSource(m.SystemDefaultSource()))
	assert.Equal(t, "user", DescribeSource(m.UserSource("")))
	assert.Equal(t, "user (a.cs)", DescribeSource(m.UserSource("a.cs")))
}

func TestDescribeEvent(t *testing.T) {
	id := m.NewNamedFixtureItemID("Tests.Root", "Shop.Order", "first")

	assert.Equal(t, "created Shop.Order#first", DescribeEvent(m.CreatedEvent{ID: id}))
	assert.Equal(t, "Shop.Order#first.Total = value=7",
		DescribeEvent(m.MemberChangedEvent{ID: id, Member: m.ValueMemberConfiguration{Name: "Total", Value: "7"}}))
	assert.Equal(t, "session ended for Tests.Root", DescribeEvent(m.ConfigurationEndedEvent{RootPath: "Tests.Root"}))
	assert.Equal(t, "change Shop.Order#first.Total rejected: no such member",
		DescribeEvent(m.MemberChangedFailedEvent{
			ID:     id,
			Member: m.ValueMemberConfiguration{Name: "Total"},
			Reason: "no such member",
		}))
}

func TestErrorLabel(t *testing.T) {
	assert.Equal(t, "MEMBER_NOT_FOUND", errorLabel(m.NewFailure(m.MemberNotFound, "x")))
	assert.Equal(t, "error", errorLabel(errors.New("boom")))
}
