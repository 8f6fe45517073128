package input

import (
	"context"
	"fmt"

	"github.com/koxudaxi/go-datamodel-codegen/rawschema"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// NewExampleParser returns a [Parser] for the `json`, `yaml`, and `dict`
// input kinds: none of those carry an explicit schema, so a RawSchema tree
// is inferred from the example document's structure via gen. A nil gen
// uses [rawschema.NewGenerator] with every option at its default.
func NewExampleParser(gen *rawschema.Generator) Parser {
	if gen == nil {
		gen = rawschema.NewGenerator()
	}

	return ParserFunc(func(_ context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error) {
		node, err := gen.Generate(content)
		if err != nil {
			return nil, fmt.Errorf("infer schema: %w", err)
		}

		return table.Register(uri, node), nil
	})
}

func parseExampleData(ctx context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error) {
	return NewExampleParser(nil).Parse(ctx, table, uri, content)
}
