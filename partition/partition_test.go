package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/model"
	"github.com/koxudaxi/go-datamodel-codegen/partition"
)

func TestBuildModulesComputesCrossModuleImport(t *testing.T) {
	registry := model.NewRegistry()

	addr := registry.Allocate("Address", "/pet.yaml/components/schemas/Address")
	addr.Kind = model.KindClass
	addr.ModulePath = "address"

	pet := registry.Allocate("Pet", "/pet.yaml/components/schemas/Pet")
	pet.Kind = model.KindClass
	pet.ModulePath = "pet"
	pet.Fields = []model.Field{{Name: "home", Type: datatype.ModelRef{ID: addr.ID}}}

	modules, err := partition.BuildModules(registry.All(), "pydantic", partition.ExportsChildren, partition.ExportsError, nil)
	require.NoError(t, err)
	require.Len(t, modules, 2)

	var petModule partition.Module

	for _, m := range modules {
		if m.Path == "pet" {
			petModule = m
		}
	}

	require.NotEmpty(t, petModule.Path)
	require.Len(t, petModule.Imports, 2) // framework + intra
	assert.Equal(t, partition.GroupFramework, petModule.Imports[0].Group)
	assert.Equal(t, "address", petModule.Imports[1].Path)
	assert.Equal(t, []string{"Address"}, petModule.Imports[1].Names)
}

func TestAssignDefaultGroupsBySourceDocument(t *testing.T) {
	registry := model.NewRegistry()

	a := registry.Allocate("A", "/schemas/pet.yaml#/components/schemas/A")
	b := registry.Allocate("B", "/schemas/store.yaml#/components/schemas/B")

	docOf := func(sourcePath string) string {
		if len(sourcePath) > 12 && sourcePath[:12] == "/schemas/pet" {
			return "pet"
		}

		return "store"
	}

	partition.Assign(registry, partition.SplitDefault, docOf)

	assert.Equal(t, "pet", a.ModulePath)
	assert.Equal(t, "store", b.ModulePath)
}
