package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
)

// DiscriminatorInfo is the resolver's raw view of an OpenAPI discriminator:
// a field name and a value -> $ref mapping. The model builder resolves
// each $ref to a [datatype.ModelId] once every model has one, producing
// the algebra's [datatype.Discriminator].
type DiscriminatorInfo struct {
	Field   string
	Mapping map[string]string // enum value -> $ref string
	Order   []string          // mapping keys in lexicographic order
}

// resolveUnion normalizes an anyOf/oneOf member list (spec §4.2 rule 3):
// a null member is stripped and hoisted to Nullable rather than kept as a
// variant, and an OpenAPI `discriminator` sibling is captured for the model
// builder.
func (r *Resolver) resolveUnion(ctx context.Context, baseURI, path string, members []schemaNode, node schemaNode) (*Normalized, error) {
	members, hadNull := splitNullVariant(members)

	variants := make([]*Normalized, 0, len(members))

	for i, m := range members {
		v, err := r.Resolve(ctx, baseURI, fmt.Sprintf("%s/%d", path, i), m)
		if err != nil {
			return nil, err
		}

		variants = append(variants, v)
	}

	result := &Normalized{
		Kind:          KindUnion,
		Variants:      variants,
		UnionMode:     datatype.UnionModeSmart,
		Discriminator: extractDiscriminator(node),
	}

	if hadNull {
		result.Nullable = true
		result.NullableOrigin = datatype.OriginAnyOfWithNull
	}

	if len(variants) == 1 {
		single := *variants[0]
		single.Nullable = single.Nullable || result.Nullable
		if result.Nullable && single.NullableOrigin == "" {
			single.NullableOrigin = result.NullableOrigin
		}

		return &single, nil
	}

	return result, nil
}

// extractDiscriminator reads the OpenAPI `discriminator` vendor keyword, if
// present, from node.Extra. A discriminator with no mapping still sets
// Field; the model builder attaches no discriminator to a union whose
// mapping is empty.
func extractDiscriminator(node schemaNode) *DiscriminatorInfo {
	if node == nil {
		return nil
	}

	raw, ok := node.Extra["discriminator"]
	if !ok {
		return nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	field, _ := obj["propertyName"].(string)
	if field == "" {
		return nil
	}

	info := &DiscriminatorInfo{Field: field, Mapping: map[string]string{}}

	if rawMapping, ok := obj["mapping"].(map[string]any); ok {
		keys := make([]string, 0, len(rawMapping))
		for k := range rawMapping {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			if ref, ok := rawMapping[k].(string); ok {
				info.Mapping[k] = ref
				info.Order = append(info.Order, k)
			}
		}
	}

	return info
}
