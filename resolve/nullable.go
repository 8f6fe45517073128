package resolve

import (
	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// schemaNode is a short local alias, used only to keep signatures in this
// package readable.
type schemaNode = schema.Node

// nullableHint reports whether node carries one of the three nullable
// spellings spec §4.2 rule 1 collapses, and which origin to record. It
// never mutates node; callers strip the null member themselves.
type nullableHint struct {
	nullable bool
	origin   datatype.NullableOrigin
}

// detectNullable inspects the composite `type` list for a "null" member.
// The OpenAPI `nullable`/`x-nullable` vendor keys are read by
// extraNullable, and anyOf-with-null is handled separately by
// resolveUnion, since it also changes the variant list.
func detectNullable(types []string) (remaining []string, hint nullableHint) {
	remaining = make([]string, 0, len(types))

	for _, t := range types {
		if t == "null" {
			hint = nullableHint{nullable: true, origin: datatype.OriginExplicitNull}

			continue
		}

		remaining = append(remaining, t)
	}

	return remaining, hint
}

func extraNullable(extra map[string]any) (bool, datatype.NullableOrigin) {
	for _, key := range []string{"nullable", "x-nullable"} {
		v, ok := extra[key]
		if !ok {
			continue
		}

		if b, ok := v.(bool); ok && b {
			return true, datatype.OriginXNullable
		}
	}

	return false, ""
}

// splitNullVariant removes a `{"type": "null"}` member from an anyOf/oneOf
// list, reporting whether one was present.
func splitNullVariant(variants []schemaNode) (remaining []schemaNode, hadNull bool) {
	remaining = make([]schemaNode, 0, len(variants))

	for _, v := range variants {
		if isNullSchema(v) {
			hadNull = true

			continue
		}

		remaining = append(remaining, v)
	}

	return remaining, hadNull
}

func isNullSchema(n schemaNode) bool {
	if n == nil {
		return false
	}

	if n.Type == "null" {
		return true
	}

	return len(n.Types) == 1 && n.Types[0] == "null"
}
