package model_test

import (
	"context"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/model"
	"github.com/koxudaxi/go-datamodel-codegen/resolve"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// TestCircularReference reproduces spec §8 scenario 1: {A: {b: $ref B}, B:
// {a: $ref A}} builds exactly two class models, each with a field whose
// type is a ModelRef to the other (C7's ForwardRef insertion is tested
// separately in package depgraph; the builder's job is only to make the
// cycle resolvable at all).
func TestCircularReference(t *testing.T) {
	a := &jsonschema.Schema{Type: "object"}
	b := &jsonschema.Schema{Type: "object"}

	a.Properties = map[string]*jsonschema.Schema{"b": {Ref: "#/$defs/B"}}
	a.PropertyOrder = []string{"b"}
	b.Properties = map[string]*jsonschema.Schema{"a": {Ref: "#/$defs/A"}}
	b.PropertyOrder = []string{"a"}

	root := &jsonschema.Schema{Defs: map[string]*jsonschema.Schema{"A": a, "B": b}}

	table := schema.NewTable(schema.MemFetcher{}, 0)
	table.Register("mem://root", root)

	resolver := resolve.NewResolver(table, datatype.MergeConstraints)
	registry := model.NewRegistry()
	builder := model.NewBuilder(table, resolver, registry, false)

	aID := table.Intern("mem://root", "/$defs/A", a)

	_, err := builder.BuildByID(context.Background(), "models", aID)
	require.NoError(t, err)

	require.Equal(t, 2, registry.Len())

	models := registry.All()
	for _, m := range models {
		require.Equal(t, model.KindClass, m.Kind)
		require.Len(t, m.Fields, 1)

		_, ok := datatype.ModelRefTarget(m.Fields[0].Type)
		assert.True(t, ok, "field type should resolve to a ModelRef")
	}
}

func TestCollapseRootModelsParentRenamesTarget(t *testing.T) {
	registry := model.NewRegistry()

	pet := registry.Allocate("Pet", "/$defs/Pet")
	pet.Kind = model.KindClass
	pet.State = model.StateBuilt

	pets := registry.Allocate("Pets", "/$defs/Pets")
	pets.Kind = model.KindRootWrapper
	pets.Alias = datatype.Array{Items: datatype.ModelRef{ID: pet.ID}}
	pets.State = model.StateBuilt

	rewrite := model.CollapseRootModels(registry, model.CollapseParent)

	require.Contains(t, rewrite, pets.ID)
	assert.Equal(t, pet.ID, rewrite[pets.ID])
	assert.Equal(t, "Pets", pet.Name)
	assert.Nil(t, registry.Get(pets.ID))
}

func TestSplitReadOnlyWriteOnlyRequestResponse(t *testing.T) {
	registry := model.NewRegistry()

	dm := registry.Allocate("Widget", "/$defs/Widget")
	dm.Kind = model.KindClass
	dm.Fields = []model.Field{
		{Name: "id", Constraints: datatype.Constraints{ReadOnly: true}},
		{Name: "name"},
		{Name: "secret", Constraints: datatype.Constraints{WriteOnly: true}},
	}

	variants := model.SplitReadOnlyWriteOnly(registry, model.ReadOnlyWriteOnlyRequestResponse)

	require.Contains(t, variants, dm.ID)
	require.Nil(t, registry.Get(dm.ID))

	reqID := variants[dm.ID][model.VariantRequest]
	respID := variants[dm.ID][model.VariantResponse]

	req := registry.Get(reqID)
	resp := registry.Get(respID)

	require.NotNil(t, req)
	require.NotNil(t, resp)
	assert.Len(t, req.Fields, 2) // name, secret (readOnly pruned)
	assert.Len(t, resp.Fields, 2) // id, name (writeOnly pruned)
}
