package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/model"
	"github.com/koxudaxi/go-datamodel-codegen/naming"
)

func TestResolveNumberedAssignsSuffixOnCollision(t *testing.T) {
	registry := model.NewRegistry()

	first := registry.Allocate("Pet", "/$defs/Pet")
	first.Kind = model.KindClass

	second := registry.Allocate("Pet", "/paths/~1pets/post/responses/200/Pet")
	second.Kind = model.KindClass

	naming.Resolve(registry, naming.Numbered)

	assert.Equal(t, "Pet", first.Name)
	assert.Equal(t, "Pet1", second.Name)
}

func TestSanitizeFieldNameCollisionWithSiblingType(t *testing.T) {
	registry := model.NewRegistry()

	nameClass := registry.Allocate("Name", "/$defs/Name")
	nameClass.Kind = model.KindClass

	owner := registry.Allocate("Owner", "/$defs/Owner")
	owner.Kind = model.KindClass
	owner.Fields = []model.Field{{WireName: "Name"}}

	renames := naming.SanitizeFields(registry, naming.RenameField)

	require.Empty(t, renames)
	assert.Equal(t, "name_", owner.Fields[0].Name)
	assert.Equal(t, "Name", owner.Fields[0].WireName)
	assert.Equal(t, "Name", nameClass.Name)
}

func TestSanitizeIdentifierRules(t *testing.T) {
	assert.Equal(t, "field_1abc", naming.SanitizeIdentifier("1abc"))
	assert.Equal(t, "a_b", naming.SanitizeIdentifier("a-b"))
	assert.Equal(t, "class_", naming.SanitizeIdentifier("class"))
}
