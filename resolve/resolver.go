package resolve

import (
	"context"
	"fmt"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// Resolver turns RawSchema fragments into [Normalized] nodes. It is not
// safe for concurrent use: Resolve memoizes into a map with no lock (the
// [schema.Table] it reads serializes its own access).
type Resolver struct {
	table       *schema.Table
	allOfMode   datatype.IntersectionMergeMode
	rootConvent bool // not set by any method of Resolver

	memo map[schemaNode]*Normalized
}

// NewResolver builds a Resolver backed by table. allOfMode selects how
// allOf bases that are pure $refs are treated: [datatype.MergeNone] keeps
// them as an Intersection, [datatype.MergeConstraints] and
// [datatype.MergeAll] both flatten them into the child (the distinction
// between the two is left to the model builder, which needs it to decide
// whether a target language's base-class support should still be used for
// multiple non-ref bases).
func NewResolver(table *schema.Table, allOfMode datatype.IntersectionMergeMode) *Resolver {
	return &Resolver{
		table:     table,
		allOfMode: allOfMode,
		memo:      make(map[schemaNode]*Normalized),
	}
}

// Resolve classifies node (reached via path, relative to baseURI) onto
// exactly one [Kind], applying every rule in spec §4.2. It never expands
// $ref targets -- those become [KindRef] nodes carrying the target's
// [schema.SchemaId], leaving expansion to the model builder.
func (r *Resolver) Resolve(ctx context.Context, baseURI, path string, node schemaNode) (*Normalized, error) {
	if node == nil {
		return &Normalized{Kind: KindEmpty}, nil
	}

	if cached, ok := r.memo[node]; ok {
		return cached, nil
	}

	result, err := r.resolveUncached(ctx, baseURI, path, node)
	if err != nil {
		return nil, err
	}

	r.memo[node] = result

	return result, nil
}

func (r *Resolver) resolveUncached(ctx context.Context, baseURI, path string, node schemaNode) (*Normalized, error) {
	if node.Ref != "" {
		id, err := r.table.Dereference(ctx, baseURI, node.Ref)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return &Normalized{Kind: KindRef, RefID: id, Node: node}, nil
	}

	if len(node.AllOf) > 0 {
		return r.resolveAllOf(ctx, baseURI, path, node)
	}

	if len(node.AnyOf) > 0 {
		n, err := r.resolveUnion(ctx, baseURI, path+"/anyOf", node.AnyOf, node)
		if err != nil {
			return nil, err
		}

		return withTitle(n, node), nil
	}

	if len(node.OneOf) > 0 {
		n, err := r.resolveUnion(ctx, baseURI, path+"/oneOf", node.OneOf, node)
		if err != nil {
			return nil, err
		}

		return withTitle(n, node), nil
	}

	if len(node.Enum) > 0 {
		n := &Normalized{
			Kind:        KindEnum,
			Node:        node,
			Members:     enumMembers(node.Enum),
			Constraints: extractConstraints(node),
		}

		return withNullable(withTitle(n, node), node), nil
	}

	if node.Const != nil {
		n := &Normalized{Kind: KindLiteral, Node: node, LiteralValue: node.Const}

		return withNullable(n, node), nil
	}

	types, hint := detectNullable(node.Types)
	if len(types) == 0 && node.Type != "" && node.Type != "null" {
		types = []string{node.Type}
	}

	n, err := r.resolveByType(ctx, baseURI, path, node, types)
	if err != nil {
		return nil, err
	}

	n = withTitle(n, node)
	n = withNullable(n, node)

	if hint.nullable {
		n.Nullable = true
		if n.NullableOrigin == "" {
			n.NullableOrigin = hint.origin
		}
	}

	return n, nil
}

// resolveByType dispatches on the (already nullable-stripped) `type`
// keyword, handling the composite (multi-type) case via
// [datatype.PrimitiveKind] widening and falling back to [KindEmpty] for an
// unconstrained schema (the `true`/`{}` schema).
func (r *Resolver) resolveByType(ctx context.Context, baseURI, path string, node schemaNode, types []string) (*Normalized, error) {
	switch {
	case len(types) == 0:
		if len(node.Properties) > 0 || node.AdditionalProperties != nil ||
			node.AdditionalPropertiesForbidden || len(node.Required) > 0 {
			return r.resolveObject(ctx, baseURI, path, node)
		}

		if node.Items != nil {
			return r.resolveArray(ctx, baseURI, path, node)
		}

		return &Normalized{Kind: KindEmpty, Node: node}, nil

	case len(types) == 1:
		return r.resolveSingleType(ctx, baseURI, path, node, types[0])

	default:
		kinds := make([]datatype.PrimitiveKind, 0, len(types))

		for _, t := range types {
			if t == "object" {
				obj, err := r.resolveObject(ctx, baseURI, path, node)
				if err != nil {
					return nil, err
				}

				return obj, nil // a composite type including "object" degrades to the object shape
			}

			if k, ok := jsonTypeToPrimitive(t); ok {
				kinds = append(kinds, k)
			}
		}

		return &Normalized{Kind: KindComposite, Node: node, PrimitiveKinds: kinds, Constraints: extractConstraints(node)}, nil
	}
}

func (r *Resolver) resolveSingleType(ctx context.Context, baseURI, path string, node schemaNode, t string) (*Normalized, error) {
	switch t {
	case "object":
		return r.resolveObject(ctx, baseURI, path, node)
	case "array":
		return r.resolveArray(ctx, baseURI, path, node)
	default:
		kind, ok := jsonTypeToPrimitive(t)
		if !ok {
			return &Normalized{Kind: KindEmpty, Node: node}, nil
		}

		kind = refinePrimitiveByFormat(kind, node.Format)

		return &Normalized{Kind: KindPrimitive, Node: node, PrimitiveKinds: []datatype.PrimitiveKind{kind}, Constraints: extractConstraints(node)}, nil
	}
}

func (r *Resolver) resolveArray(ctx context.Context, baseURI, path string, node schemaNode) (*Normalized, error) {
	items, err := r.Resolve(ctx, baseURI, path+"/items", node.Items)
	if err != nil {
		return nil, err
	}

	return &Normalized{
		Kind:        KindArray,
		Node:        node,
		Items:       items,
		MinItems:    node.MinItems,
		MaxItems:    node.MaxItems,
		UniqueItems: node.UniqueItems,
	}, nil
}

func (r *Resolver) resolveObject(ctx context.Context, baseURI, path string, node schemaNode) (*Normalized, error) {
	result := &Normalized{
		Kind:       KindObject,
		Node:       node,
		Properties: map[string]*Normalized{},
		Required:   append([]string(nil), node.Required...),
	}

	for _, name := range propertyOrder(node) {
		child, err := r.Resolve(ctx, baseURI, fmt.Sprintf("%s/properties/%s", path, name), node.Properties[name])
		if err != nil {
			return nil, err
		}

		result.Properties[name] = child
		result.PropertyOrder = append(result.PropertyOrder, name)
	}

	if err := r.resolveAdditionalProperties(ctx, baseURI, path, node, result); err != nil {
		return nil, err
	}

	return result, nil
}

// resolveAdditionalProperties applies spec §4.2 rule 6: `false` forbids
// extra keys on the carrying object, `true` (or an empty object schema)
// allows untyped extras, and a concrete schema types them. A node with no
// declared properties and a typed/allowed additionalProperties collapses
// to [KindMap] instead of [KindObject].
func (r *Resolver) resolveAdditionalProperties(ctx context.Context, baseURI, path string, node schemaNode, result *Normalized) error {
	switch {
	case node.AdditionalPropertiesForbidden:
		result.AdditionalPolicy = datatype.AdditionalPropertiesForbid

		return nil

	case node.AdditionalProperties == nil:
		result.AdditionalPolicy = datatype.AdditionalPropertiesForbid

		return nil
	}

	value, err := r.Resolve(ctx, baseURI, path+"/additionalProperties", node.AdditionalProperties)
	if err != nil {
		return err
	}

	policy := datatype.AdditionalPropertiesTyped
	if value.Kind == KindEmpty {
		policy = datatype.AdditionalPropertiesAllow
	}

	result.AdditionalPolicy = policy
	result.AdditionalValue = value

	if len(result.Properties) == 0 {
		result.Kind = KindMap
	}

	return nil
}

func (r *Resolver) resolveAllOf(ctx context.Context, baseURI, path string, node schemaNode) (*Normalized, error) {
	merged, err := r.mergeAllOf(ctx, baseURI, path, node.AllOf, r.allOfMode)
	if err != nil {
		return nil, err
	}

	own, err := r.resolveObject(ctx, baseURI, path, node)
	if err != nil {
		return nil, err
	}

	// Base (allOf) properties come first in declaration order, followed by
	// this schema's own; a name declared on both sides keeps its position
	// among the base's and takes the tighter, merged constraints.
	ownOrder := own.PropertyOrder
	ownProperties := own.Properties

	own.PropertyOrder = nil
	own.Properties = map[string]*Normalized{}

	for _, name := range merged.order {
		own.PropertyOrder = append(own.PropertyOrder, name)

		if existing, ok := ownProperties[name]; ok {
			own.Properties[name] = mergeNormalized(merged.properties[name], existing)
		} else {
			own.Properties[name] = merged.properties[name]
		}
	}

	for _, name := range ownOrder {
		if _, already := own.Properties[name]; already {
			continue
		}

		own.PropertyOrder = append(own.PropertyOrder, name)
		own.Properties[name] = ownProperties[name]
	}

	own.Required = append(merged.required, own.Required...)

	mergedConstraints, err := mergeConstraints(path, merged.constraints, extractConstraints(node))
	if err != nil {
		return nil, err
	}

	own.Constraints = mergedConstraints
	own.AllOfBases = merged.bases
	own.MergeMode = r.allOfMode

	return own, nil
}

func withTitle(n *Normalized, node schemaNode) *Normalized {
	if n == nil || node == nil || node.Title == "" {
		return n
	}

	n.HasTitle = true
	n.Title = node.Title

	return n
}

func withNullable(n *Normalized, node schemaNode) *Normalized {
	if n == nil || node == nil {
		return n
	}

	if nullable, origin := extraNullable(node.Extra); nullable {
		n.Nullable = true
		if n.NullableOrigin == "" {
			n.NullableOrigin = origin
		}
	}

	return n
}
