package datatype

// ModelId is an opaque, comparable handle onto a DataModel (owned by
// package model). It lives here, rather than in package model, because
// [ModelRef] and [Intersection] -- both DataType variants -- carry it;
// keeping it in the lower-level package avoids an import cycle between
// datatype and model.
type ModelId uint64

// DataType is the sealed interface every algebra variant implements. The
// unexported method prevents types outside this package from satisfying
// it, keeping the variant set closed.
type DataType interface {
	dataType()
}

// PrimitiveKind enumerates the scalar kinds spec §3 requires.
type PrimitiveKind string

const (
	KindString   PrimitiveKind = "str"
	KindInt      PrimitiveKind = "int"
	KindFloat    PrimitiveKind = "float"
	KindBool     PrimitiveKind = "bool"
	KindBytes    PrimitiveKind = "bytes"
	KindDate     PrimitiveKind = "date"
	KindDateTime PrimitiveKind = "datetime"
	KindTime     PrimitiveKind = "time"
	KindDuration PrimitiveKind = "duration"
	KindUUID     PrimitiveKind = "uuid"
	KindURL      PrimitiveKind = "url"
	KindEmail    PrimitiveKind = "email"
	KindDecimal  PrimitiveKind = "decimal"
	KindAny      PrimitiveKind = "any"
)

// Primitive is a scalar type carrying its constraint side-structure.
type Primitive struct {
	Kind        PrimitiveKind
	Constraints Constraints
}

func (Primitive) dataType() {}

// Literal pins a DataType to a single concrete value (e.g. a `const`
// keyword, or a single-member enum collapsed for emission).
type Literal struct {
	Value any
}

func (Literal) dataType() {}

// EnumMember is one member of an [Enum], preserving source order. Value
// may be a string, an int, a float, or nil.
type EnumMember struct {
	Name  string
	Value any
	Type  PrimitiveKind
}

// Enum is a closed set of named members, order-preserving.
type Enum struct {
	Members     []EnumMember
	Constraints Constraints
}

func (Enum) dataType() {}

// Array is a homogeneous sequence type.
type Array struct {
	Items       DataType
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
}

func (Array) dataType() {}

// AdditionalPropertiesPolicy controls how a [Mapping]'s additional (i.e.
// not explicitly named) properties behave.
type AdditionalPropertiesPolicy string

const (
	AdditionalPropertiesAllow    AdditionalPropertiesPolicy = "allow"
	AdditionalPropertiesForbid  AdditionalPropertiesPolicy = "forbid"
	AdditionalPropertiesTyped   AdditionalPropertiesPolicy = "typed"
)

// Mapping represents a string-keyed dictionary type (`additionalProperties`
// as a schema, or `true`).
type Mapping struct {
	Key    DataType
	Value  DataType
	Policy AdditionalPropertiesPolicy
}

func (Mapping) dataType() {}

// UnionMode selects how union members compose at the type level.
type UnionMode string

const (
	UnionModeSmart      UnionMode = "smart"
	UnionModeLeftToRight UnionMode = "left_to_right"
)

// Discriminator tags a [Union] with a discriminating property and its
// value-to-variant mapping, when the source schema provides one.
type Discriminator struct {
	Field   string
	Mapping map[string]ModelId
}

// Union is an ordered set of alternative types (`anyOf`/`oneOf`, or a
// composite `type` array).
type Union struct {
	Variants      []DataType
	Discriminator *Discriminator
	Mode          UnionMode
}

func (Union) dataType() {}

// IntersectionMergeMode mirrors the `all_of_merge_mode` configuration
// option: how an [Intersection]'s bases should ultimately be combined by
// the model builder.
type IntersectionMergeMode string

const (
	MergeConstraints IntersectionMergeMode = "constraints"
	MergeAll         IntersectionMergeMode = "all"
	MergeNone        IntersectionMergeMode = "none"
)

// Intersection represents `allOf` bases kept as distinct base models
// (never inlined by the algebra itself -- inlining is the model builder's
// job, per spec §4.3).
type Intersection struct {
	Bases     []ModelId
	MergeMode IntersectionMergeMode
}

func (Intersection) dataType() {}

// ModelRef points at a named DataModel elsewhere in the graph.
type ModelRef struct {
	ID ModelId
}

func (ModelRef) dataType() {}

// RootWrapper represents a named type whose payload is a single unnamed
// value (the `__root__`/RootModel convention).
type RootWrapper struct {
	Inner DataType
}

func (RootWrapper) dataType() {}

// NullableOrigin records which schema construct produced an [Optional],
// purely for downstream emission fidelity; it never changes Optional's
// semantics.
type NullableOrigin string

const (
	OriginExplicitNull  NullableOrigin = "explicit_null"
	OriginAnyOfWithNull NullableOrigin = "anyOf_with_null"
	OriginNotRequired   NullableOrigin = "not_required"
	OriginXNullable     NullableOrigin = "x_nullable"
)

// Optional wraps a DataType that may be absent or null.
type Optional struct {
	Inner  DataType
	Origin NullableOrigin
}

func (Optional) dataType() {}

// ForwardRef is a placeholder inserted only by C7 (dependency ordering) to
// break an emission cycle; the printer rewrites it to a late-bound
// reference.
type ForwardRef struct {
	Name string
}

func (ForwardRef) dataType() {}
