package model

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/resolve"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// Builder converts resolver output (C2) into a graph of [DataModel]
// entities plus [datatype.DataType] values for every unnamed shape,
// expanding $ref targets on demand (spec §4.4). It is grounded on the
// teacher's generator.go walkNode/walkMapping depth-first,
// key-path-threading traversal shape.
type Builder struct {
	table    *schema.Table
	resolver *resolve.Resolver
	registry *Registry

	// bySchemaID remembers the ModelId already allocated for a named
	// schema fragment, keyed by its SchemaId once it is known (only
	// $ref-reached / object / enum nodes get one). This is the cycle
	// guard: re-entering a node whose id is already allocated returns a
	// ModelRef to it immediately instead of recursing, per the
	// Unvisited->Visiting state transition.
	bySchemaID map[schema.SchemaId]datatype.ModelId

	useTitleAsName bool
}

// NewBuilder creates a Builder writing into registry, backed by table for
// $ref expansion and resolver for normalizing freshly-reached fragments.
// useTitleAsName mirrors the `use_title_as_name` option (spec §4.4 rule 1).
func NewBuilder(table *schema.Table, resolver *resolve.Resolver, registry *Registry, useTitleAsName bool) *Builder {
	return &Builder{
		table:          table,
		resolver:       resolver,
		registry:       registry,
		bySchemaID:     make(map[schema.SchemaId]datatype.ModelId),
		useTitleAsName: useTitleAsName,
	}
}

// BuildByID is the canonical entry point for a top-level named schema
// (e.g. each `#/components/schemas/*` / `#/$defs/*` entry an input parser
// discovers): it interns refID's SchemaId into bySchemaID before
// recursing, so a later $ref anywhere else in the document that targets
// the same fragment resolves to this same ModelId rather than building a
// duplicate. This is what makes mutually-referencing top-level schemas
// (spec §8 scenario 1) converge on exactly one model per schema instead of
// re-expanding each other indefinitely.
func (b *Builder) BuildByID(ctx context.Context, modulePath string, refID schema.SchemaId) (datatype.ModelId, error) {
	return b.buildRefByID(ctx, modulePath, refID)
}

// Build materializes n (reached via path, relative to module modulePath)
// into a DataType. Named shapes (object, enum, a union/scalar/array that
// carries a title) are registered as DataModels and returned as
// [datatype.ModelRef]; everything else is returned inline.
func (b *Builder) Build(ctx context.Context, modulePath, path string, n *resolve.Normalized) (datatype.DataType, error) {
	if n == nil {
		return datatype.Primitive{Kind: datatype.KindAny}, nil
	}

	switch n.Kind {
	case resolve.KindRef:
		return b.buildRef(ctx, modulePath, n)

	case resolve.KindPrimitive, resolve.KindComposite, resolve.KindLiteral, resolve.KindEmpty:
		t := b.buildScalar(n)
		if n.HasTitle && n.Kind != resolve.KindEmpty {
			return b.wrapRoot(modulePath, path, n, t)
		}

		return b.withOptional(t, n), nil

	case resolve.KindArray:
		return b.buildArray(ctx, modulePath, path, n)

	case resolve.KindMap:
		return b.buildMap(ctx, modulePath, path, n)

	case resolve.KindEnum:
		return b.buildNamedEnum(ctx, modulePath, path, n)

	case resolve.KindUnion:
		return b.buildUnion(ctx, modulePath, path, n)

	case resolve.KindObject:
		return b.buildNamedObject(ctx, modulePath, path, n)

	default:
		return datatype.Primitive{Kind: datatype.KindAny}, nil
	}
}

func (b *Builder) buildScalar(n *resolve.Normalized) datatype.DataType {
	switch n.Kind {
	case resolve.KindLiteral:
		return datatype.Literal{Value: n.LiteralValue}
	case resolve.KindEmpty:
		return datatype.Primitive{Kind: datatype.KindAny}
	case resolve.KindComposite:
		kinds := append([]datatype.PrimitiveKind(nil), n.PrimitiveKinds...)
		widened := datatype.Widen(kinds...)

		return datatype.Constrain(widened, n.Constraints)
	default: // KindPrimitive
		kind := datatype.KindAny
		if len(n.PrimitiveKinds) > 0 {
			kind = n.PrimitiveKinds[0]
		}

		return datatype.Primitive{Kind: kind, Constraints: n.Constraints}
	}
}

func (b *Builder) withOptional(t datatype.DataType, n *resolve.Normalized) datatype.DataType {
	if n.Nullable {
		return datatype.Optionalize(t, n.NullableOrigin)
	}

	return t
}

func (b *Builder) buildArray(ctx context.Context, modulePath, p string, n *resolve.Normalized) (datatype.DataType, error) {
	items, err := b.Build(ctx, modulePath, p+"/items", n.Items)
	if err != nil {
		return nil, err
	}

	arr := datatype.Array{Items: items, MinItems: n.MinItems, MaxItems: n.MaxItems, UniqueItems: n.UniqueItems}

	if n.HasTitle {
		return b.wrapRoot(modulePath, p, n, arr)
	}

	return b.withOptional(arr, n), nil
}

func (b *Builder) buildMap(ctx context.Context, modulePath, p string, n *resolve.Normalized) (datatype.DataType, error) {
	valueType := datatype.DataType(datatype.Primitive{Kind: datatype.KindAny})

	if n.AdditionalValue != nil {
		var err error

		valueType, err = b.Build(ctx, modulePath, p+"/additionalProperties", n.AdditionalValue)
		if err != nil {
			return nil, err
		}
	}

	m := datatype.Mapping{Key: datatype.Primitive{Kind: datatype.KindString}, Value: valueType, Policy: n.AdditionalPolicy}

	return b.withOptional(m, n), nil
}

// buildNamedEnum always registers a DataModel: spec §3's Enum variant only
// ever appears wrapped in a named DataModel in this implementation (a bare
// inline enum has no legal target-language home without a name).
func (b *Builder) buildNamedEnum(ctx context.Context, modulePath, p string, n *resolve.Normalized) (datatype.DataType, error) {
	dm := b.registry.Allocate(b.provisionalName(p, n), p)
	dm.Kind = KindEnum
	dm.ModulePath = modulePath
	dm.Docstring = n.Constraints.Description
	dm.Enum = &datatype.Enum{Members: n.Members, Constraints: n.Constraints}
	dm.State = StateBuilt

	return b.refOptional(dm.ID, n), nil
}

func (b *Builder) buildUnion(ctx context.Context, modulePath, p string, n *resolve.Normalized) (datatype.DataType, error) {
	variants := make([]datatype.DataType, 0, len(n.Variants))

	for i, v := range n.Variants {
		dt, err := b.Build(ctx, modulePath, fmt.Sprintf("%s/%d", p, i), v)
		if err != nil {
			return nil, err
		}

		variants = append(variants, dt)
	}

	u := datatype.Union{Variants: variants, Mode: n.UnionMode}

	if disc := n.Discriminator; disc != nil {
		mapping, err := b.resolveDiscriminatorMapping(ctx, modulePath, disc)
		if err != nil {
			return nil, err
		}

		if mapping != nil {
			u.Discriminator = &datatype.Discriminator{Field: disc.Field, Mapping: mapping}
		}
	}

	if n.HasTitle {
		return b.wrapRoot(modulePath, p, n, u)
	}

	return b.withOptional(u, n), nil
}

// resolveDiscriminatorMapping turns the resolver's raw value->$ref strings
// into value->ModelId, by expanding each target through buildRef. A
// mapping entry whose $ref target cannot be dereferenced or built is
// dropped with no error and no diagnostic; the union keeps its
// discriminator over the remaining entries, and has none only when no
// entry remains.
func (b *Builder) resolveDiscriminatorMapping(ctx context.Context, modulePath string, disc *resolve.DiscriminatorInfo) (map[string]datatype.ModelId, error) {
	if len(disc.Mapping) == 0 {
		return nil, nil
	}

	out := make(map[string]datatype.ModelId, len(disc.Mapping))

	for _, key := range disc.Order {
		ref := disc.Mapping[key]

		id, err := b.table.Dereference(ctx, "", ref)
		if err != nil {
			continue // missing mapping entry: non-fatal per spec §9
		}

		modelID, err := b.buildRefByID(ctx, modulePath, id)
		if err != nil {
			continue
		}

		out[key] = modelID
	}

	if len(out) == 0 {
		return nil, nil
	}

	return out, nil
}

func (b *Builder) buildNamedObject(ctx context.Context, modulePath, p string, n *resolve.Normalized) (datatype.DataType, error) {
	dm := b.registry.Allocate(b.provisionalName(p, n), p)
	dm.Kind = KindClass
	dm.ModulePath = modulePath
	dm.Docstring = n.Constraints.Description
	dm.Attributes.ExtraForbid = n.AdditionalPolicy == datatype.AdditionalPropertiesForbid
	dm.MergeMode = n.MergeMode
	dm.State = StateVisiting

	for _, base := range n.AllOfBases {
		modelID, err := b.buildRefByID(ctx, modulePath, base)
		if err != nil {
			return nil, err
		}

		dm.Bases = append(dm.Bases, modelID)
	}

	required := make(map[string]bool, len(n.Required))
	for _, name := range n.Required {
		required[name] = true
	}

	for _, name := range n.PropertyOrder {
		prop := n.Properties[name]

		ft, err := b.Build(ctx, modulePath, fmt.Sprintf("%s/properties/%s", p, name), prop)
		if err != nil {
			return nil, err
		}

		f := Field{
			Name:       name,
			WireName:   name,
			Type:       ft,
			Required:   required[name],
			HasDefault: prop != nil && prop.Constraints.HasDefault,
			Default:    propDefault(prop),
		}

		if prop != nil {
			f.Constraints = prop.Constraints
		}

		if !f.Required {
			f.Type = datatype.Optionalize(f.Type, datatype.OriginNotRequired)
		}

		dm.Fields = append(dm.Fields, f)
	}

	dm.State = StateBuilt

	return b.refOptional(dm.ID, n), nil
}

func propDefault(n *resolve.Normalized) any {
	if n == nil {
		return nil
	}

	return n.Constraints.Default
}

// buildRef expands a $ref node on demand, returning a [datatype.ModelRef]
// to the (possibly still-[StateVisiting]) target model. This is the cycle
// breaker: a self-referencing $ref re-enters buildRefByID, finds the id
// already allocated in bySchemaID, and returns immediately without
// recursing into the object body a second time.
func (b *Builder) buildRef(ctx context.Context, modulePath string, n *resolve.Normalized) (datatype.DataType, error) {
	id, err := b.buildRefByID(ctx, modulePath, n.RefID)
	if err != nil {
		return nil, err
	}

	return b.refOptional(id, n), nil
}

func (b *Builder) buildRefByID(ctx context.Context, modulePath string, refID schema.SchemaId) (datatype.ModelId, error) {
	if modelID, ok := b.bySchemaID[refID]; ok {
		return modelID, nil
	}

	target, ok := b.table.Fragment(refID)
	if !ok {
		return 0, fmt.Errorf("model: dangling reference: schema id %d", refID)
	}

	uri, pointer, _ := b.table.Key(refID)

	normalized, err := b.resolver.Resolve(ctx, uri, pointer, target)
	if err != nil {
		return 0, err
	}

	dt, err := b.buildNamedFromRef(ctx, modulePath, pointer, refID, normalized)
	if err != nil {
		return 0, err
	}

	switch v := dt.(type) {
	case datatype.ModelRef:
		return v.ID, nil
	case datatype.Optional:
		if mr, ok := v.Inner.(datatype.ModelRef); ok {
			return mr.ID, nil
		}
	}

	// A $ref that ultimately targets a bare scalar/array with no title:
	// wrap it in a synthesized alias model so every $ref still resolves
	// to a ModelId (spec's DataModel.kind=Alias).
	dm := b.registry.Allocate(refName(pointer), pointer)
	dm.Kind = KindAlias
	dm.ModulePath = modulePath
	dm.Alias = dt
	dm.State = StateBuilt
	b.bySchemaID[refID] = dm.ID

	return dm.ID, nil
}

// buildNamedFromRef builds the $ref target, pre-registering its ModelId
// before recursing into object bodies so a cyclic $ref resolves to the
// same id instead of looping.
func (b *Builder) buildNamedFromRef(ctx context.Context, modulePath, pointer string, refID schema.SchemaId, n *resolve.Normalized) (datatype.DataType, error) {
	if existing, ok := b.bySchemaID[refID]; ok {
		return datatype.ModelRef{ID: existing}, nil
	}

	switch n.Kind {
	case resolve.KindObject:
		dm := b.registry.Allocate(refName(pointer), pointer)
		dm.Kind = KindClass
		dm.ModulePath = modulePath
		dm.Attributes.ExtraForbid = n.AdditionalPolicy == datatype.AdditionalPropertiesForbid
		dm.MergeMode = n.MergeMode
		dm.State = StateVisiting
		b.bySchemaID[refID] = dm.ID

		for _, base := range n.AllOfBases {
			baseID, err := b.buildRefByID(ctx, modulePath, base)
			if err != nil {
				return nil, err
			}

			dm.Bases = append(dm.Bases, baseID)
		}

		required := make(map[string]bool, len(n.Required))
		for _, name := range n.Required {
			required[name] = true
		}

		for _, name := range n.PropertyOrder {
			prop := n.Properties[name]

			ft, err := b.Build(ctx, modulePath, fmt.Sprintf("%s/properties/%s", pointer, name), prop)
			if err != nil {
				return nil, err
			}

			f := Field{Name: name, WireName: name, Type: ft, Required: required[name]}
			if prop != nil {
				f.Constraints = prop.Constraints
				f.HasDefault = prop.Constraints.HasDefault
				f.Default = prop.Constraints.Default
			}

			if !f.Required {
				f.Type = datatype.Optionalize(f.Type, datatype.OriginNotRequired)
			}

			dm.Fields = append(dm.Fields, f)
		}

		dm.State = StateBuilt

		return datatype.ModelRef{ID: dm.ID}, nil

	case resolve.KindEnum:
		dm := b.registry.Allocate(refName(pointer), pointer)
		dm.Kind = KindEnum
		dm.ModulePath = modulePath
		dm.Enum = &datatype.Enum{Members: n.Members, Constraints: n.Constraints}
		dm.State = StateBuilt
		b.bySchemaID[refID] = dm.ID

		return datatype.ModelRef{ID: dm.ID}, nil

	default:
		return b.Build(ctx, modulePath, pointer, n)
	}
}

func (b *Builder) refOptional(id datatype.ModelId, n *resolve.Normalized) datatype.DataType {
	ref := datatype.ModelRef{ID: id}

	if n.Nullable {
		return datatype.Optionalize(ref, n.NullableOrigin)
	}

	return ref
}

// wrapRoot produces a [datatype.RootWrapper] DataModel for a titled
// scalar/array/union node (spec §4.4 rule 2).
func (b *Builder) wrapRoot(modulePath, p string, n *resolve.Normalized, inner datatype.DataType) (datatype.DataType, error) {
	dm := b.registry.Allocate(b.provisionalName(p, n), p)
	dm.Kind = KindRootWrapper
	dm.ModulePath = modulePath
	dm.Docstring = n.Constraints.Description
	dm.Alias = inner
	dm.Attributes.RootConv = V2Root
	dm.State = StateBuilt

	return b.refOptional(dm.ID, n), nil
}

// provisionalName derives a first-draft name from title/parent-key/schema
// path (spec §4.4 rule 1). `use_title_as_name` lets a whitespace-free
// title override the path-derived name outright.
func (b *Builder) provisionalName(schemaPath string, n *resolve.Normalized) string {
	if b.useTitleAsName && n.HasTitle && !strings.ContainsAny(n.Title, " \t\n") {
		return n.Title
	}

	if n.HasTitle && n.Title != "" {
		return n.Title
	}

	return pathDerivedName(schemaPath)
}

func pathDerivedName(schemaPath string) string {
	base := path.Base(schemaPath)
	if base == "" || base == "." || base == "/" {
		return "Model"
	}

	return base
}

func refName(pointer string) string {
	return pathDerivedName(pointer)
}
