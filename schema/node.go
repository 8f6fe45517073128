package schema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Node is a RawSchema fragment. The core treats [jsonschema.Schema] as its
// universal untyped schema representation -- the same choice the teacher's
// magicschema generator makes for every fragment it walks -- rather than
// inventing a second parallel tree for OpenAPI/JSON-Schema input.
type Node = *jsonschema.Schema

// Document is a fully parsed schema document, addressable by its source
// URI. Root is the top-level node; fragments within it are reached via
// JSON pointers resolved against Root.
type Document struct {
	URI  string
	Root Node
}
