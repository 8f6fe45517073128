package resolve

import (
	"context"
	"fmt"
	"sort"

	"dario.cat/mergo"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// allOfResult is mergeAllOf's output: the pure-$ref bases to keep as an
// Intersection (possibly empty, when merge_mode flattens everything) plus
// the inlined property/constraint state to fold into the carrying node.
type allOfResult struct {
	bases       []schema.SchemaId
	properties  map[string]*Normalized
	order       []string
	required    []string
	constraints datatype.Constraints
}

// mergeAllOf applies spec §4.2 rule 4 / §4.3's allOf handling: a member
// that is a bare $ref with no sibling keywords is kept as a base class
// (recorded in bases) unless mode flattens bases too; every other member's
// properties/required/constraints are folded directly into the result,
// using tightening (conjunctive) merge -- the inverse of magicschema's
// fail-open mergeSchemas, which widens rather than tightens.
func (r *Resolver) mergeAllOf(ctx context.Context, baseURI, path string, members []schemaNode, mode datatype.IntersectionMergeMode) (allOfResult, error) {
	result := allOfResult{properties: map[string]*Normalized{}}

	for i, member := range members {
		memberPath := fmt.Sprintf("%s/allOf/%d", path, i)

		if member.Ref != "" && isPureRef(member) {
			id, err := r.table.Dereference(ctx, baseURI, member.Ref)
			if err != nil {
				return allOfResult{}, err
			}

			if mode == datatype.MergeNone {
				result.bases = append(result.bases, id)

				continue
			}

			target, ok := r.table.Fragment(id)
			if !ok {
				return allOfResult{}, fmt.Errorf("%s: dangling allOf base %s", memberPath, member.Ref)
			}

			if err := r.foldMember(ctx, baseURI, memberPath, target, &result); err != nil {
				return allOfResult{}, err
			}

			continue
		}

		if err := r.foldMember(ctx, baseURI, memberPath, member, &result); err != nil {
			return allOfResult{}, err
		}
	}

	return result, nil
}

// foldMember merges one non-base allOf member's properties/required/
// constraints into acc.
func (r *Resolver) foldMember(ctx context.Context, baseURI, path string, member schemaNode, acc *allOfResult) error {
	merged, err := mergeConstraints(path, acc.constraints, extractConstraints(member))
	if err != nil {
		return err
	}

	acc.constraints = merged
	acc.required = append(acc.required, member.Required...)

	for _, name := range propertyOrder(member) {
		child, err := r.Resolve(ctx, baseURI, fmt.Sprintf("%s/properties/%s", path, name), member.Properties[name])
		if err != nil {
			return err
		}

		if existing, ok := acc.properties[name]; ok {
			child = mergeNormalized(existing, child)
		} else {
			acc.order = append(acc.order, name)
		}

		acc.properties[name] = child
	}

	return nil
}

// isPureRef reports whether node is a bare `{"$ref": "..."}` with no sibling
// validation keywords -- the case spec §4.2 rule 4 keeps as a base class
// rather than flattening unconditionally.
func isPureRef(node schemaNode) bool {
	if node == nil || node.Ref == "" {
		return false
	}

	return len(node.Extra) == 0 &&
		node.Title == "" && node.Description == "" &&
		len(node.Properties) == 0 && len(node.Required) == 0
}

// propertyOrder returns property names in declaration order. Node.
// PropertyOrder is populated by the order-preserving decoders in package
// input; it falls back to a lexicographic sort (never raw map iteration,
// which Go randomizes) for nodes built without one, e.g. synthesized test
// fixtures.
func propertyOrder(node schemaNode) []string {
	if node == nil {
		return nil
	}

	if len(node.PropertyOrder) > 0 {
		return node.PropertyOrder
	}

	names := make([]string, 0, len(node.Properties))
	for name := range node.Properties {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// mergeNormalized combines two Normalized views of the same property name
// seen from different allOf members. Constraints are tightened explicitly
// (mergo has no notion of "tighter bound"); every other zero-value field on
// incoming (e.g. a title the base declared but this member didn't repeat)
// is filled in from existing via mergo, which is exactly its fill-the-gaps
// contract.
func mergeNormalized(existing, incoming *Normalized) *Normalized {
	tightened := existing.Constraints.Merge(incoming.Constraints)

	merged := *incoming
	_ = mergo.Merge(&merged, *existing)
	merged.Constraints = tightened

	return &merged
}
