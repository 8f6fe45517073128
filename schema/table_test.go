package schema_test

import (
	"context"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

func TestInternIsIdempotent(t *testing.T) {
	tbl := schema.NewTable(nil, 0)
	node := &jsonschema.Schema{Type: "string"}

	id1 := tbl.Intern("doc.json", "/properties/foo", node)
	id2 := tbl.Intern("doc.json", "/properties/foo", node)

	assert.Equal(t, id1, id2)
}

func TestInternDistinctPointersDistinctIds(t *testing.T) {
	tbl := schema.NewTable(nil, 0)
	node := &jsonschema.Schema{Type: "string"}

	idA := tbl.Intern("doc.json", "/properties/a", node)
	idB := tbl.Intern("doc.json", "/properties/b", node)

	assert.NotEqual(t, idA, idB)
}

func TestDereferenceChainedRef(t *testing.T) {
	docBytes := []byte(`{
		"properties": {
			"a": {"$ref": "#/$defs/b"},
			"c": {"type": "integer"}
		},
		"$defs": {
			"b": {"$ref": "#/properties/c"}
		}
	}`)

	tbl := schema.NewTable(schema.MemFetcher{"doc.json": docBytes}, 0)

	doc, err := tbl.Fetch(context.Background(), "doc.json")
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	id, err := tbl.Dereference(context.Background(), "doc.json", "#/properties/a")
	require.NoError(t, err)

	frag, ok := tbl.Fragment(id)
	require.True(t, ok)
	assert.Equal(t, "integer", frag.Type)
}

func TestDereferenceCycleFails(t *testing.T) {
	docBytes := []byte(`{
		"$defs": {
			"a": {"$ref": "#/$defs/b"},
			"b": {"$ref": "#/$defs/a"}
		}
	}`)

	tbl := schema.NewTable(schema.MemFetcher{"doc.json": docBytes}, 4)

	_, err := tbl.Dereference(context.Background(), "doc.json", "#/$defs/a")
	require.Error(t, err)

	var cycleErr *schema.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}
