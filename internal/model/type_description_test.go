package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDescription_Validate(t *testing.T) {
	valid := TypeDescription{
		TypeFullName: "Demo.Car",
		Constructor:  []ParameterDescription{{Name: "engine", TypeFullName: "Demo.IEngine"}},
		Members: []MemberDescription{
			{Name: "Wheels", Kind: MemberProperty, TypeFullName: "System.Int32"},
			{Name: "Drive", Kind: MemberMethodKind, TypeFullName: VoidTypeName},
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*TypeDescription)
		want   string
	}{
		{"empty type name", func(td *TypeDescription) { td.TypeFullName = " " }, "type name is empty"},
		{"duplicate member", func(td *TypeDescription) { td.Members = append(td.Members, td.Members[0]) }, "declared twice"},
		{"member named like ctor", func(td *TypeDescription) {
			td.Members = append(td.Members, MemberDescription{Name: CtorMemberName, Kind: MemberField, TypeFullName: "X"})
		}, "declared twice"},
		{"unknown kind", func(td *TypeDescription) { td.Members[0].Kind = "event" }, "unknown kind"},
		{"member without type", func(td *TypeDescription) { td.Members[0].TypeFullName = "" }, "has no type"},
		{"duplicate ctor parameter", func(td *TypeDescription) {
			td.Constructor = append(td.Constructor, td.Constructor[0])
		}, "constructor parameter \"engine\" is declared twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := valid
			td.Members = append([]MemberDescription(nil), valid.Members...)
			td.Constructor = append([]ParameterDescription(nil), valid.Constructor...)
			tt.mutate(&td)

			err := td.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTypeDescription_BaseTypes(t *testing.T) {
	assert.True(t, IsBaseTypeName("System.String"))
	assert.False(t, IsBaseTypeName("Demo.Car"))
	assert.True(t, MemberDescription{TypeFullName: "Demo.Money", BaseType: true}.IsBaseType())

	td := TypeDescription{TypeFullName: "Demo.IEngine", IsInterface: true, Constructor: []ParameterDescription{{Name: "x", TypeFullName: "System.Int32"}}}
	assert.False(t, td.HasConstructor())
}
