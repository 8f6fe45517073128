package modelgen_test

import (
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/model"
	"github.com/koxudaxi/go-datamodel-codegen/modelgen"
)

// newTestConfig registers flags on a throwaway [pflag.FlagSet] so every
// option carries its real CLI default, the same defaults a bare `modelgen`
// invocation would use.
func newTestConfig(t *testing.T) *modelgen.Config {
	t.Helper()

	cfg := modelgen.NewConfig()
	cfg.RegisterFlags(pflag.NewFlagSet("test", pflag.ContinueOnError))

	return cfg
}

func TestGenerateMutuallyReferencingSchemasConverge(t *testing.T) {
	cfg := newTestConfig(t)
	pipeline, err := cfg.NewPipeline()
	require.NoError(t, err)

	src := modelgen.Source{URI: "pets.json", Kind: "jsonschema", Content: []byte(`{
		"$defs": {
			"Owner": {
				"type": "object",
				"properties": {"name": {"type": "string"}, "pet": {"$ref": "#/$defs/Pet"}},
				"required": ["name"]
			},
			"Pet": {
				"type": "object",
				"properties": {"name": {"type": "string"}, "owner": {"$ref": "#/$defs/Owner"}},
				"required": ["name"]
			}
		}
	}`)}

	result, err := pipeline.Generate(context.Background(), []modelgen.Source{src})
	require.NoError(t, err)

	report := modelgen.BuildReport(result)

	var names []string

	for _, mod := range report.Modules {
		for _, m := range mod.Models {
			names = append(names, m.Name)
		}
	}

	assert.Contains(t, names, "Owner")
	assert.Contains(t, names, "Pet")
	assert.Len(t, names, 2, "a cyclic pair of $refs must converge on exactly one model each")
}

func TestGenerateOpenAPIComponentsProducesOneModulePerDocument(t *testing.T) {
	cfg := newTestConfig(t)
	pipeline, err := cfg.NewPipeline()
	require.NoError(t, err)

	src := modelgen.Source{URI: "api.yaml", Kind: "openapi", Content: []byte(`
openapi: 3.0.0
components:
  schemas:
    Pet:
      type: object
      properties:
        name: {type: string}
      required: [name]
    Address:
      type: object
      properties:
        city: {type: string}
`)}

	result, err := pipeline.Generate(context.Background(), []modelgen.Source{src})
	require.NoError(t, err)

	require.Len(t, result.Registry.Modules, 1)
	assert.Equal(t, "api", result.Registry.Modules[0].Path)

	var names []string
	for _, dm := range result.Registry.Modules[0].Models {
		names = append(names, dm.Name)
	}

	assert.ElementsMatch(t, []string{"Pet", "Address"}, names)
}

func TestGenerateFieldTypeCollisionRenameField(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.FieldCollisionStrategy = "rename-field"

	pipeline, err := cfg.NewPipeline()
	require.NoError(t, err)

	src := modelgen.Source{URI: "collide.json", Kind: "jsonschema", Content: []byte(`{
		"$defs": {
			"Name": {"type": "string", "enum": ["a", "b"]},
			"Widget": {
				"type": "object",
				"properties": {"Name": {"$ref": "#/$defs/Name"}},
				"required": ["Name"]
			}
		}
	}`)}

	result, err := pipeline.Generate(context.Background(), []modelgen.Source{src})
	require.NoError(t, err)

	var widget *model.DataModel

	for _, dm := range result.Registry.Modules[0].Models {
		if dm.Kind == model.KindClass {
			widget = dm
		}
	}

	require.NotNil(t, widget)
	require.Len(t, widget.Fields, 1)
	assert.NotEqual(t, "Name", widget.Fields[0].Name, "field must be renamed away from the colliding sibling type name")
	assert.Equal(t, "Name", widget.Fields[0].WireName)
}

func TestGenerateUnsupportedInputKindErrors(t *testing.T) {
	cfg := newTestConfig(t)

	pipeline, err := cfg.NewPipeline()
	require.NoError(t, err)

	_, err = pipeline.Generate(context.Background(), []modelgen.Source{
		{URI: "x.weird", Kind: "weird", Content: []byte("???")},
	})
	require.Error(t, err)
}
