package resolve

import (
	"errors"
	"fmt"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// Kind classifies a [Normalized] node onto exactly one DataType shape, per
// spec §2's "normalized schema node whose type is exactly one of the
// DataType kinds."
type Kind string

const (
	KindPrimitive    Kind = "primitive"
	KindComposite    Kind = "composite" // type: ["string","integer"]
	KindArray        Kind = "array"
	KindObject       Kind = "object" // has properties, or object-shaped with additionalProperties forbidden/unset
	KindMap          Kind = "map"    // additionalProperties true or a schema, no properties
	KindEnum         Kind = "enum"
	KindUnion        Kind = "union" // anyOf/oneOf
	KindRef          Kind = "ref"   // bare $ref
	KindLiteral      Kind = "literal"
	KindEmpty        Kind = "empty" // no constraints at all (the "true" schema)
)

// ErrSchemaMerge reports incompatible constraints discovered while merging
// an allOf's members (spec §7 SchemaMergeError).
var ErrSchemaMerge = errors.New("incompatible schema constraints")

// MergeError names the conflicting field and the schema path it occurred
// at.
type MergeError struct {
	Path  string
	Field string
	A, B  any
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("%s: conflicting %s: %v vs %v", e.Path, e.Field, e.A, e.B)
}

func (e *MergeError) Unwrap() error { return ErrSchemaMerge }

// Normalized is the resolver's output for a single schema fragment. Only
// the fields relevant to Kind are populated; the model builder (C4)
// switches on Kind to decide which ones to read.
type Normalized struct {
	SourceID schema.SchemaId
	Node     schema.Node

	Kind Kind

	// KindPrimitive / KindComposite
	PrimitiveKinds []datatype.PrimitiveKind
	Constraints    datatype.Constraints

	// KindEnum
	Members []datatype.EnumMember

	// KindArray
	Items       *Normalized
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// KindObject / KindMap
	Properties    map[string]*Normalized
	PropertyOrder []string
	Required      []string
	AdditionalPolicy datatype.AdditionalPropertiesPolicy
	AdditionalValue  *Normalized
	AllOfBases       []schema.SchemaId // pure $ref allOf members, kept as bases
	MergeMode        datatype.IntersectionMergeMode

	// KindUnion
	Variants      []*Normalized
	Discriminator *DiscriminatorInfo
	UnionMode      datatype.UnionMode

	// KindRef
	RefID schema.SchemaId

	// KindLiteral
	LiteralValue any

	// Nullability, tracked independent of Kind (any kind may be wrapped).
	Nullable       bool
	NullableOrigin datatype.NullableOrigin

	// True when this node carries a `title`, whatever its Kind; the model
	// builder decides which titled kinds become root wrappers.
	HasTitle bool
	Title    string
}
