package modelgen

import (
	"encoding/json"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/koxudaxi/go-datamodel-codegen/input"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// discovered is one top-level named schema found in a source document,
// carrying enough to both build a model and name its module (spec §4.8's
// "one module per source schema document" grouping).
type discovered struct {
	id     schema.SchemaId
	name   string // hint only; the naming stage (C5) may still rename it
	source string
}

// discoverTopLevel finds every entry point a [model.Builder] should build
// from doc, per kind and the scopes cfg enables (spec §6). Each entry is
// interned into table under a stable pointer, so a $ref anywhere else in
// the document that targets the same fragment converges on the same
// [schema.SchemaId] the builder later turns into one [datatype.ModelId]
// (spec §8 scenario 1).
func discoverTopLevel(table *schema.Table, uri string, doc *schema.Document, kind input.Kind, cfg *Config) ([]discovered, error) {
	switch kind {
	case input.KindOpenAPI:
		return discoverOpenAPI(table, uri, doc, cfg.OpenAPIScopes)
	case input.KindJSONSchema, input.KindGraphQL:
		return discoverDefs(table, uri, doc), nil
	default: // json, yaml, dict, csv: the whole document is the one schema
		id := table.Intern(uri, "", doc.Root)
		return []discovered{{id: id, name: refName(uri), source: uri}}, nil
	}
}

func discoverDefs(table *schema.Table, uri string, doc *schema.Document) []discovered {
	names := make([]string, 0, len(doc.Root.Defs))
	for name := range doc.Root.Defs {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]discovered, 0, len(names))

	for _, name := range names {
		pointer := "/$defs/" + name
		id := table.Intern(uri, pointer, doc.Root.Defs[name])
		out = append(out, discovered{id: id, name: name, source: uri + "#" + pointer})
	}

	return out
}

// componentSection maps an [OpenAPIScope] to the key it reads under
// `components` in an OpenAPI document (spec §6 `openapi_scopes`).
var componentSection = map[OpenAPIScope]string{
	OpenAPIScopeSchemas:       "schemas",
	OpenAPIScopeParameters:    "parameters",
	OpenAPIScopeRequestBodies: "requestBodies",
	OpenAPIScopeWebhooks:      "webhooks",
}

func discoverOpenAPI(table *schema.Table, uri string, doc *schema.Document, scopes []OpenAPIScope) ([]discovered, error) {
	components, _ := doc.Root.Extra["components"].(map[string]any)

	var out []discovered

	for _, scope := range scopes {
		section, ok := componentSection[scope]
		if !ok {
			// paths/tags drive path-operation grouping, not a components
			// map of named schemas; no top-level entries come from them
			// directly (operation request/response bodies that are
			// themselves named $refs are already reachable via schemas).
			continue
		}

		entries, _ := components[section].(map[string]any)

		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			node, err := toNode(entries[name])
			if err != nil {
				return nil, err
			}

			pointer := "/components/" + section + "/" + name
			id := table.Intern(uri, pointer, node)
			out = append(out, discovered{id: id, name: name, source: uri + "#" + pointer})
		}
	}

	return out, nil
}

// toNode converts a raw decoded `any` (as produced by the generic
// map[string]any components walk above) into a [schema.Node] by
// round-tripping it through JSON, the same trick [parseSchemaDocument]
// uses for a whole document.
func toNode(raw any) (schema.Node, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var node jsonschema.Schema
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	return &node, nil
}

func refName(uri string) string {
	for i := len(uri) - 1; i >= 0; i-- {
		switch uri[i] {
		case '/', '\\':
			return stripExt(uri[i+1:])
		}
	}

	return stripExt(uri)
}

func stripExt(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}

	return name
}
