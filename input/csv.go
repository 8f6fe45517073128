package input

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	goyaml "github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/koxudaxi/go-datamodel-codegen/rawschema"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

const typeArray = "array"

// NewCSVParser returns a [Parser] for the `csv` input kind: the header row
// names properties, each following row is one example row. Cells are
// re-parsed as YAML scalars so "42"/"true" infer as number/bool rather than
// string, then the whole row set is handed to gen as a sequence of
// mappings -- the same merge-across-array-elements path
// (inferItemsFromSequence's allMappings branch) a YAML list of
// similarly-shaped objects takes. A nil gen uses [rawschema.NewGenerator]
// with every option at its default.
func NewCSVParser(gen *rawschema.Generator) Parser {
	if gen == nil {
		gen = rawschema.NewGenerator()
	}

	return ParserFunc(func(_ context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error) {
		reader := csv.NewReader(bytes.NewReader(content))
		reader.FieldsPerRecord = -1

		header, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				return table.Register(uri, &jsonschema.Schema{Type: typeArray}), nil
			}

			return nil, fmt.Errorf("read header: %w", err)
		}

		var rows []map[string]any

		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}

			if err != nil {
				return nil, fmt.Errorf("read row: %w", err)
			}

			row := make(map[string]any, len(header))

			for i, col := range header {
				if i >= len(record) {
					continue
				}

				row[col] = sniffCell(record[i])
			}

			rows = append(rows, row)
		}

		asYAML, err := goyaml.Marshal(rows)
		if err != nil {
			return nil, fmt.Errorf("encode rows: %w", err)
		}

		node, err := gen.Generate(asYAML)
		if err != nil {
			return nil, fmt.Errorf("infer schema: %w", err)
		}

		return table.Register(uri, node), nil
	})
}

func parseCSV(ctx context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error) {
	return NewCSVParser(nil).Parse(ctx, table, uri, content)
}

// sniffCell re-parses a CSV cell as a YAML scalar so numeric/boolean
// columns infer their natural type instead of collapsing to string.
func sniffCell(cell string) any {
	var v any

	if err := goyaml.Unmarshal([]byte(cell), &v); err != nil || v == nil {
		return cell
	}

	return v
}
