package model

import (
	"github.com/koxudaxi/go-datamodel-codegen/datatype"
)

// Kind classifies a DataModel onto one of the four emitted shapes spec §3
// enumerates.
type Kind string

const (
	KindClass       Kind = "class"
	KindEnum        Kind = "enum"
	KindAlias       Kind = "alias"
	KindRootWrapper Kind = "root_wrapper"
)

// State is a schema node's position in the
// Unvisited->Visiting->Built->Named->Deduped->Ordered->Emitted state
// machine (spec §4.4). Transitions are monotone; [StateVisiting] guards
// re-entry during cycle traversal.
type State int

const (
	StateUnvisited State = iota
	StateVisiting
	StateBuilt
	StateNamed
	StateDeduped
	StateOrdered
	StateEmitted
)

// RootConvention records which of the two root-wrapper conventions a
// [DataModel] originated from (spec §9's open question). It is never
// branched on inside the core; it exists purely so the (external) printer
// can pick the matching emission idiom.
type RootConvention string

const (
	RootConventionNone RootConvention = ""
	V1Root             RootConvention = "v1_root"
	V2Root             RootConvention = "v2_root"
)

// DataclassAttrs mirrors the original implementation's DataclassArguments
// TypedDict (supplemented feature #3 in SPEC_FULL.md): opaque to the core,
// round-tripped onto [Attributes] so dataclass-family output stays
// deterministic regardless of which options were set.
type DataclassAttrs struct {
	Init        bool
	Repr        bool
	Eq          bool
	Order       bool
	UnsafeHash  bool
	Frozen      bool
	MatchArgs   bool
	KWOnly      bool
	Slots       bool
	WeakrefSlot bool
}

// Attributes carries printer-facing hints that the core must preserve but
// never interprets itself.
type Attributes struct {
	ExtraForbid bool // additionalProperties: false on the carrying class
	RootConv    RootConvention
	Dataclass   *DataclassAttrs
	Variant     Variant // ReadOnly/WriteOnly split tag, spec §4.4 rule 5
}

// Variant tags one of the Base/Request/Response models produced by
// readOnly/writeOnly splitting.
type Variant string

const (
	VariantNone     Variant = ""
	VariantBase     Variant = "base"
	VariantRequest  Variant = "request"
	VariantResponse Variant = "response"
)

// Field is one member of a [KindClass] DataModel.
type Field struct {
	Name        string // always a legal target-language identifier
	WireName    string // exact schema source name; emits as an alias when != Name
	Type        datatype.DataType
	Required    bool
	Default     any
	HasDefault  bool
	Constraints datatype.Constraints
	Annotations map[string]string // extras pass-through, keyed by configured annotation name
}

// DataModel is an entity emitted as a named type in the output (spec §3).
//
// Invariant: Name is unique within ModulePath; (ModulePath, Name) is
// globally unique once C5 has run. Mutable only while State is below
// [StateDeduped] -- see the per-field notes on when each is finalized.
type DataModel struct {
	ID         datatype.ModelId
	Name       string // provisional until [StateNamed]; stable afterward
	Kind       Kind
	Fields     []Field      // KindClass only, source order preserved
	Bases      []datatype.ModelId
	Enum       *datatype.Enum // KindEnum only
	Alias      datatype.DataType // KindAlias/KindRootWrapper's payload type
	Docstring  string
	SourcePath string // schema path this model was built from, for diagnostics
	ModulePath string // assigned by C8; empty before then
	Attributes Attributes

	State State

	// MergeMode records the all_of_merge_mode a class built from an allOf
	// was resolved under (the builder copies it from the resolver for
	// every class model; it is empty for a class with no allOf).
	MergeMode datatype.IntersectionMergeMode
}
