package rawschema

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// TrueNode returns a node that validates everything (marshals to JSON true).
func TrueNode() schema.Node {
	return &jsonschema.Schema{}
}

// FalseNode returns a node that validates nothing (marshals to JSON false).
func FalseNode() schema.Node {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

// ParseYAMLValue parses a YAML value string into a [json.RawMessage], for
// use as a node's default/const value.
func ParseYAMLValue(val string) json.RawMessage {
	var v any

	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return b
}
