package input

import (
	"context"
	"errors"
	"fmt"

	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// ErrInput reports a malformed document or an unsupported input kind
// (spec §7's InputError).
var ErrInput = errors.New("input")

// InputError names the offending URI and kind alongside the underlying
// cause.
type InputError struct {
	URI   string
	Kind  Kind
	Cause error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %q (%s): %v", e.URI, e.Kind, e.Cause)
}

func (e *InputError) Unwrap() error { return errors.Join(ErrInput, e.Cause) }

// Parser turns raw document bytes into a RawSchema tree and registers it
// with table under uri, returning the resulting document.
type Parser interface {
	Parse(ctx context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error)
}

// ParserFunc adapts a plain function to [Parser].
type ParserFunc func(ctx context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error)

func (f ParserFunc) Parse(ctx context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error) {
	return f(ctx, table, uri, content)
}

// Registry maps an input [Kind] to the [Parser] that handles it.
type Registry struct {
	parsers map[Kind]Parser
}

// NewRegistry returns a Registry with every built-in parser wired in.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[Kind]Parser, 8)}

	r.Register(KindOpenAPI, ParserFunc(parseSchemaDocument))
	r.Register(KindJSONSchema, ParserFunc(parseSchemaDocument))
	r.Register(KindJSON, ParserFunc(parseExampleData))
	r.Register(KindYAML, ParserFunc(parseExampleData))
	r.Register(KindDict, ParserFunc(parseExampleData))
	r.Register(KindCSV, ParserFunc(parseCSV))
	r.Register(KindGraphQL, ParserFunc(parseGraphQL))

	return r
}

// Register installs (or replaces) the parser for kind.
func (r *Registry) Register(kind Kind, p Parser) {
	r.parsers[kind] = p
}

// Parse resolves kind (detecting it from content when kind is
// [KindAuto] or empty) and runs the corresponding parser.
func (r *Registry) Parse(ctx context.Context, table *schema.Table, uri string, content []byte, kind Kind) (*schema.Document, error) {
	resolved := kind
	if resolved == "" || resolved == KindAuto {
		resolved = Detect(uri, content)
	}

	p, ok := r.parsers[resolved]
	if !ok {
		return nil, &InputError{URI: uri, Kind: resolved, Cause: fmt.Errorf("unsupported input kind %q", resolved)}
	}

	doc, err := p.Parse(ctx, table, uri, content)
	if err != nil {
		return nil, &InputError{URI: uri, Kind: resolved, Cause: err}
	}

	return doc, nil
}
