package schema

import (
	"net/url"
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

// Walk resolves a JSON pointer against root, walking one segment at a
// time. The per-segment lookup rules (the previous segment's name decides
// how the current segment is interpreted: "properties" indexes a map,
// "items"/"prefixItems" index an array, "$defs"/"definitions" index the
// definitions map) are grounded on kaptinlin/jsonschema's
// resolveJSONPointer/findSchemaInSegment.
func Walk(root Node, pointer string) (Node, bool) {
	if pointer == "" || pointer == "/" {
		return root, true
	}

	segments := jsonpointer.Parse(pointer)

	current := root
	previous := ""

	for i, raw := range segments {
		segment, err := url.PathUnescape(raw)
		if err != nil {
			return nil, false
		}

		next, ok := stepSegment(current, segment, previous)
		if !ok {
			if i == len(segments)-1 {
				return nil, false
			}

			return nil, false
		}

		current = next
		previous = segment
	}

	return current, true
}

// stepSegment resolves one pointer segment against current, given the name
// of the segment immediately preceding it.
func stepSegment(current Node, segment, previous string) (Node, bool) {
	switch previous {
	case "properties":
		if current.Properties != nil {
			if s, ok := current.Properties[segment]; ok {
				return s, true
			}
		}
	case "patternProperties":
		if current.PatternProperties != nil {
			if s, ok := current.PatternProperties[segment]; ok {
				return s, true
			}
		}
	case "$defs", "definitions":
		if current.Defs != nil {
			if s, ok := current.Defs[segment]; ok {
				return s, true
			}
		}

		if current.Definitions != nil {
			if s, ok := current.Definitions[segment]; ok {
				return s, true
			}
		}
	case "items":
		if current.Items != nil {
			return current.Items, true
		}
	case "prefixItems":
		idx, err := strconv.Atoi(segment)
		if err == nil && idx >= 0 && idx < len(current.PrefixItems) {
			return current.PrefixItems[idx], true
		}
	case "allOf":
		idx, err := strconv.Atoi(segment)
		if err == nil && idx >= 0 && idx < len(current.AllOf) {
			return current.AllOf[idx], true
		}
	case "anyOf":
		idx, err := strconv.Atoi(segment)
		if err == nil && idx >= 0 && idx < len(current.AnyOf) {
			return current.AnyOf[idx], true
		}
	case "oneOf":
		idx, err := strconv.Atoi(segment)
		if err == nil && idx >= 0 && idx < len(current.OneOf) {
			return current.OneOf[idx], true
		}
	case "not":
		if current.Not != nil {
			return current.Not, true
		}
	case "additionalProperties":
		if current.AdditionalProperties != nil {
			return current.AdditionalProperties, true
		}
	}

	// Top-level access: the first segment of a pointer names a field on
	// current directly (e.g. "#/properties" is reached as segment
	// "properties" with no previous segment).
	switch segment {
	case "properties", "patternProperties", "$defs", "definitions", "items",
		"prefixItems", "allOf", "anyOf", "oneOf", "not", "additionalProperties":
		return current, true
	}

	return nil, false
}

// Format re-escapes pointer segments into a single "/"-joined pointer
// string, delegating to jsonpointer.Format so ~0/~1 escaping matches the
// library used for parsing.
func Format(segments ...string) string {
	return jsonpointer.Format(segments...)
}
