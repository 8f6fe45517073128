package input

import (
	"context"
	"encoding/json"
	"fmt"

	goyaml "github.com/goccy/go-yaml"

	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// parseSchemaDocument parses an explicit OpenAPI or JSON Schema document
// (JSON or YAML encoded -- YAML is decoded generically first, matching
// kaptinlin/jsonschema's compiler.go media-type handler for
// application/yaml) structurally into a [schema.Node] tree and registers
// it as a single document.
func parseSchemaDocument(_ context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error) {
	var generic any

	if err := goyaml.Unmarshal(content, &generic); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	asJSON, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("re-encode: %w", err)
	}

	var node schema.Node

	if err := json.Unmarshal(asJSON, &node); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	return table.Register(uri, node), nil
}
