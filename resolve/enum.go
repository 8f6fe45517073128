package resolve

import "github.com/koxudaxi/go-datamodel-codegen/datatype"

// enumMembers converts a schema's `enum` list into algebra members,
// deriving each member's name from its value (the naming package is free to
// rename these later; C2 just needs a stable starting name) and its
// PrimitiveKind from its Go-decoded JSON type.
func enumMembers(values []any) []datatype.EnumMember {
	members := make([]datatype.EnumMember, 0, len(values))

	for _, v := range values {
		members = append(members, datatype.EnumMember{
			Name:  enumMemberName(v),
			Value: v,
			Type:  enumValueKind(v),
		})
	}

	return members
}

func enumValueKind(v any) datatype.PrimitiveKind {
	switch v.(type) {
	case string:
		return datatype.KindString
	case bool:
		return datatype.KindBool
	case float64, int, int64:
		return datatype.KindFloat
	case nil:
		return datatype.KindAny
	default:
		return datatype.KindAny
	}
}

// enumMemberName produces a first-draft member identifier; naming (C5)
// sanitizes and deduplicates it.
func enumMemberName(v any) string {
	switch t := v.(type) {
	case string:
		return t
	default:
		return ""
	}
}
