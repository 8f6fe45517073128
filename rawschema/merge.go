package rawschema

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// mergeNodes merges two nodes using union semantics: properties from both
// sides are included, and conflicting types widen rather than error.
func mergeNodes(a, b schema.Node) schema.Node {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	result := &jsonschema.Schema{}

	merged := widenType(nodeType(a), nodeType(b))
	if merged != "" {
		result.Type = merged
	}

	result.Title = firstNonEmpty(a.Title, b.Title)
	result.Description = firstNonEmpty(a.Description, b.Description)

	if a.Default != nil {
		result.Default = a.Default
	} else {
		result.Default = b.Default
	}

	if a.Properties != nil || b.Properties != nil {
		mergeProperties(result, a, b)
	}

	result.AdditionalProperties = mergeAdditionalProperties(a.AdditionalProperties, b.AdditionalProperties)
	result.Required = intersectStrings(a.Required, b.Required)

	switch {
	case a.Items != nil && b.Items != nil:
		result.Items = mergeNodes(a.Items, b.Items)
	case a.Items != nil:
		result.Items = a.Items
	default:
		result.Items = b.Items
	}

	return result
}

// nodeType returns the effective type string from a node.
func nodeType(n schema.Node) string {
	if n.Type != "" {
		return n.Type
	}

	if len(n.Types) == 1 {
		return n.Types[0]
	}

	return ""
}

// mergeAdditionalProperties merges two additionalProperties values with
// fail-open semantics: if either side allows additional properties, the
// result allows them too.
func mergeAdditionalProperties(a, b schema.Node) schema.Node {
	if a == nil && b == nil {
		return nil
	}

	if a == nil || b == nil || isTrueNode(a) || isTrueNode(b) {
		return TrueNode()
	}

	return a
}

// isTrueNode reports whether n is the unconstrained "true" node.
func isTrueNode(n schema.Node) bool {
	if n == nil {
		return false
	}

	return n.Not == nil &&
		n.Type == "" &&
		len(n.Types) == 0 &&
		n.Properties == nil &&
		n.Items == nil &&
		len(n.AllOf) == 0 &&
		len(n.AnyOf) == 0 &&
		len(n.OneOf) == 0
}

// intersectStrings returns the intersection of two string slices.
func intersectStrings(a, b []string) []string {
	if a == nil || b == nil {
		return nil
	}

	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}

	var result []string

	for _, s := range b {
		if set[s] {
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}

	return b
}

// propertyKeys returns property keys in PropertyOrder, then any remaining
// keys in an undefined order.
func propertyKeys(n schema.Node) []string {
	if n.Properties == nil {
		return nil
	}

	if len(n.PropertyOrder) > 0 {
		seen := make(map[string]bool, len(n.PropertyOrder))

		var keys []string

		for _, k := range n.PropertyOrder {
			if _, ok := n.Properties[k]; ok {
				keys = append(keys, k)
				seen[k] = true
			}
		}

		for k := range n.Properties {
			if !seen[k] {
				keys = append(keys, k)
			}
		}

		return keys
	}

	keys := make([]string, 0, len(n.Properties))

	for k := range n.Properties {
		keys = append(keys, k)
	}

	return keys
}

// mergeProperties merges properties from a and b into result using union
// semantics.
func mergeProperties(result, a, b schema.Node) {
	result.Properties = make(map[string]schema.Node)

	var order []string

	if a.Properties != nil {
		for _, k := range propertyKeys(a) {
			result.Properties[k] = a.Properties[k]
			order = append(order, k)
		}
	}

	if b.Properties != nil {
		for _, k := range propertyKeys(b) {
			if existing, ok := result.Properties[k]; ok {
				result.Properties[k] = mergeNodes(existing, b.Properties[k])
			} else {
				result.Properties[k] = b.Properties[k]
				order = append(order, k)
			}
		}
	}

	result.PropertyOrder = order
}
