package resolve_test

import (
	"context"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/resolve"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

func newTable() *schema.Table {
	return schema.NewTable(schema.MemFetcher{}, 0)
}

func TestResolveNullableComposite(t *testing.T) {
	table := newTable()
	r := resolve.NewResolver(table, datatype.MergeConstraints)

	node := &jsonschema.Schema{Types: []string{"string", "null"}}

	n, err := r.Resolve(context.Background(), "", "#", node)
	require.NoError(t, err)
	assert.Equal(t, resolve.KindPrimitive, n.Kind)
	assert.True(t, n.Nullable)
	assert.Equal(t, datatype.OriginExplicitNull, n.NullableOrigin)
}

func TestResolveAllOfTightensConstraints(t *testing.T) {
	table := newTable()
	r := resolve.NewResolver(table, datatype.MergeConstraints)

	one := 1.0
	ten := 10.0
	five := 5.0

	base := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"count": {Type: "integer", Minimum: &one, Maximum: &ten},
		},
		PropertyOrder: []string{"count"},
	}

	child := &jsonschema.Schema{
		AllOf: []*jsonschema.Schema{base},
		Properties: map[string]*jsonschema.Schema{
			"count": {Type: "integer", Maximum: &five},
		},
		PropertyOrder: []string{"count"},
	}

	n, err := r.Resolve(context.Background(), "", "#", child)
	require.NoError(t, err)
	require.Equal(t, resolve.KindObject, n.Kind)

	count := n.Properties["count"]
	require.Equal(t, resolve.KindPrimitive, count.Kind)
	assert.Equal(t, &one, count.Constraints.Minimum)
	assert.Equal(t, &five, count.Constraints.Maximum)
}

func TestResolveAllOfPureRefKeptAsIntersectionBase(t *testing.T) {
	docBytes := []byte(`{
		"$defs": {"base": {"type": "object", "properties": {"id": {"type": "string"}}}},
		"allOf": [{"$ref": "#/$defs/base"}]
	}`)

	table := schema.NewTable(schema.MemFetcher{"doc.json": docBytes}, 0)
	r := resolve.NewResolver(table, datatype.MergeNone)

	doc, err := table.Fetch(context.Background(), "doc.json")
	require.NoError(t, err)

	n, err := r.Resolve(context.Background(), "doc.json", "#", doc.Root)
	require.NoError(t, err)
	require.Equal(t, resolve.KindObject, n.Kind)
	assert.Len(t, n.AllOfBases, 1)
	assert.Empty(t, n.Properties)
}

func TestResolveAnyOfWithNullHoistsOptional(t *testing.T) {
	table := newTable()
	r := resolve.NewResolver(table, datatype.MergeConstraints)

	node := &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "null"},
		},
	}

	n, err := r.Resolve(context.Background(), "", "#", node)
	require.NoError(t, err)
	assert.Equal(t, resolve.KindPrimitive, n.Kind)
	assert.True(t, n.Nullable)
	assert.Equal(t, datatype.OriginAnyOfWithNull, n.NullableOrigin)
}

func TestResolveForbidsAdditionalPropertiesByDefault(t *testing.T) {
	table := newTable()
	r := resolve.NewResolver(table, datatype.MergeConstraints)

	node := &jsonschema.Schema{
		Type:          "object",
		Properties:    map[string]*jsonschema.Schema{"name": {Type: "string"}},
		PropertyOrder: []string{"name"},
	}

	n, err := r.Resolve(context.Background(), "", "#", node)
	require.NoError(t, err)
	assert.Equal(t, datatype.AdditionalPropertiesForbid, n.AdditionalPolicy)
}

func TestResolveDiscriminatedUnion(t *testing.T) {
	docBytes := []byte(`{
		"$defs": {
			"cat": {"type": "object", "properties": {"petType": {"type": "string"}}},
			"dog": {"type": "object", "properties": {"petType": {"type": "string"}}}
		},
		"oneOf": [{"$ref": "#/$defs/cat"}, {"$ref": "#/$defs/dog"}],
		"discriminator": {
			"propertyName": "petType",
			"mapping": {"cat": "#/$defs/cat", "dog": "#/$defs/dog"}
		}
	}`)

	table := schema.NewTable(schema.MemFetcher{"doc.json": docBytes}, 0)
	r := resolve.NewResolver(table, datatype.MergeConstraints)

	doc, err := table.Fetch(context.Background(), "doc.json")
	require.NoError(t, err)

	n, err := r.Resolve(context.Background(), "doc.json", "#", doc.Root)
	require.NoError(t, err)
	require.Equal(t, resolve.KindUnion, n.Kind)
	require.NotNil(t, n.Discriminator)
	assert.Equal(t, "petType", n.Discriminator.Field)
	assert.Equal(t, "#/$defs/cat", n.Discriminator.Mapping["cat"])
}
