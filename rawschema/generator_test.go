package rawschema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/rawschema"
)

func TestGeneratorInfersScalarTypes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  map[string]any
	}{
		"simple scalar types": {
			input: "name: test\ncount: 3\nratio: 1.5\nenabled: true\n",
			want: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":    map[string]any{"type": "string"},
					"count":   map[string]any{"type": "integer"},
					"ratio":   map[string]any{"type": "number"},
					"enabled": map[string]any{"type": "boolean"},
				},
			},
		},
		"null value has no type constraint": {
			input: "value: null\n",
			want: map[string]any{
				"type":       "object",
				"properties": map[string]any{"value": true},
			},
		},
		"nested objects": {
			input: "parent:\n  child: value\n",
			want: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"parent": map[string]any{
						"type":                 "object",
						"properties":           map[string]any{"child": map[string]any{"type": "string"}},
						"additionalProperties": true,
					},
				},
			},
		},
		"array of same-typed scalars": {
			input: "items:\n  - one\n  - two\n",
			want: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"items": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
			},
		},
		"array of mixed integer and number widens to number": {
			input: "nums:\n  - 1\n  - 2.5\n",
			want: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"nums": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "number"},
					},
				},
			},
		},
		"comment becomes description": {
			input: "# Number of replicas\nreplicas: 3\n",
			want: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"replicas": map[string]any{"type": "integer", "description": "Number of replicas"},
				},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			node, err := rawschema.NewGenerator().Generate([]byte(tc.input))
			require.NoError(t, err)

			out, err := json.Marshal(node)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(out, &got))

			assertSubset(t, tc.want, got)
		})
	}
}

func TestGeneratorArrayOfMappingsMergesAcrossElements(t *testing.T) {
	t.Parallel()

	input := "rows:\n  - name: a\n    age: 1\n  - name: b\n    nickname: bee\n"

	node, err := rawschema.NewGenerator().Generate([]byte(input))
	require.NoError(t, err)

	rows, ok := node.Properties["rows"]
	require.True(t, ok)
	require.NotNil(t, rows.Items)

	assert.Contains(t, rows.Items.Properties, "name")
	assert.Contains(t, rows.Items.Properties, "age")
	assert.Contains(t, rows.Items.Properties, "nickname")
}

func TestGeneratorMultipleInputsMergeWithUnionSemantics(t *testing.T) {
	t.Parallel()

	a := "name: test\nage: 1\n"
	b := "name: other\nnickname: bee\n"

	node, err := rawschema.NewGenerator().Generate([]byte(a), []byte(b))
	require.NoError(t, err)

	assert.Contains(t, node.Properties, "name")
	assert.Contains(t, node.Properties, "age")
	assert.Contains(t, node.Properties, "nickname")
	assert.Empty(t, node.Required, "a property missing from one input must never be required")
}

func TestGeneratorStrictSetsAdditionalPropertiesFalse(t *testing.T) {
	t.Parallel()

	node, err := rawschema.NewGenerator(rawschema.WithStrict(true)).Generate([]byte("name: test\n"))
	require.NoError(t, err)

	out, err := json.Marshal(node.AdditionalProperties)
	require.NoError(t, err)
	assert.JSONEq(t, "false", string(out))
}

func TestGeneratorEmptyInputValidatesEverything(t *testing.T) {
	t.Parallel()

	node, err := rawschema.NewGenerator().Generate()
	require.NoError(t, err)

	out, err := json.Marshal(node)
	require.NoError(t, err)
	assert.JSONEq(t, `{"$schema":"http://json-schema.org/draft-07/schema#"}`, string(out))
}

func TestGeneratorMetadataOptionsOverrideInferred(t *testing.T) {
	t.Parallel()

	node, err := rawschema.NewGenerator(
		rawschema.WithTitle("Config"),
		rawschema.WithDescription("A config file"),
		rawschema.WithID("https://example.com/config.json"),
	).Generate([]byte("name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "Config", node.Title)
	assert.Equal(t, "A config file", node.Description)
	assert.Equal(t, "https://example.com/config.json", node.ID)
}

// assertSubset asserts that every key in want is present in got with an
// equal value, recursing into nested objects. Extra keys in got are ignored.
func assertSubset(t *testing.T, want, got map[string]any) {
	t.Helper()

	for k, wv := range want {
		gv, ok := got[k]
		require.True(t, ok, "missing key %q", k)

		wantMap, wantIsMap := wv.(map[string]any)
		gotMap, gotIsMap := gv.(map[string]any)

		if wantIsMap && gotIsMap {
			assertSubset(t, wantMap, gotMap)

			continue
		}

		assert.Equal(t, wv, gv, "key %q", k)
	}
}
