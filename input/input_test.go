package input_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/input"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

func TestDetectAuto(t *testing.T) {
	assert.Equal(t, input.KindOpenAPI, input.Detect("spec.yaml", []byte("openapi: 3.0.0\n")))
	assert.Equal(t, input.KindJSONSchema, input.Detect("pet.json", []byte(`{"$schema": "x", "type": "object"}`)))
	assert.Equal(t, input.KindJSON, input.Detect("pet.json", []byte(`{"name": "fido"}`)))
	assert.Equal(t, input.KindGraphQL, input.Detect("schema.graphql", nil))
	assert.Equal(t, input.KindYAML, input.Detect("values.yaml", []byte("name: fido\n")))
}

func TestRegistryParseJSONSchema(t *testing.T) {
	table := schema.NewTable(nil, 0)
	reg := input.NewRegistry()

	doc, err := reg.Parse(context.Background(), table, "pet.json", []byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`), input.KindJSONSchema)

	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	assert.Equal(t, "object", doc.Root.Type)
	assert.Contains(t, doc.Root.Properties, "name")
}

func TestRegistryParseYAMLExampleInfersSchema(t *testing.T) {
	table := schema.NewTable(nil, 0)
	reg := input.NewRegistry()

	doc, err := reg.Parse(context.Background(), table, "pet.yaml", []byte("name: fido\nage: 3\n"), input.KindYAML)

	require.NoError(t, err)
	assert.Equal(t, "object", doc.Root.Type)
	require.Contains(t, doc.Root.Properties, "age")
	assert.Equal(t, "integer", doc.Root.Properties["age"].Type)
}

func TestRegistryParseCSVInfersArrayOfObjects(t *testing.T) {
	table := schema.NewTable(nil, 0)
	reg := input.NewRegistry()

	doc, err := reg.Parse(context.Background(), table, "pets.csv", []byte("name,age\nfido,3\nrex,5\n"), input.KindCSV)

	require.NoError(t, err)
	assert.Equal(t, "array", doc.Root.Type)
	require.NotNil(t, doc.Root.Items)
	assert.Contains(t, doc.Root.Items.Properties, "name")
}

func TestRegistryParseGraphQL(t *testing.T) {
	table := schema.NewTable(nil, 0)
	reg := input.NewRegistry()

	src := `
type Pet {
  id: ID!
  name: String!
  tags: [String!]
}
`
	doc, err := reg.Parse(context.Background(), table, "pets.graphql", []byte(src), input.KindGraphQL)

	require.NoError(t, err)
	require.Contains(t, doc.Root.Defs, "Pet")

	pet := doc.Root.Defs["Pet"]
	assert.Equal(t, "object", pet.Type)
	assert.ElementsMatch(t, []string{"id", "name"}, pet.Required)
	require.Len(t, pet.Properties["tags"].AnyOf, 2)
	assert.Equal(t, "array", pet.Properties["tags"].AnyOf[0].Type)
}

func TestRegistryUnsupportedKind(t *testing.T) {
	table := schema.NewTable(nil, 0)
	reg := input.NewRegistry()

	_, err := reg.Parse(context.Background(), table, "x.weird", []byte("???"), input.Kind("weird"))
	require.Error(t, err)
}
