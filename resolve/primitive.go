package resolve

import "github.com/koxudaxi/go-datamodel-codegen/datatype"

// jsonTypeToPrimitive maps a bare JSON Schema `type` keyword value to the
// matching algebra primitive, ignoring `format`.
func jsonTypeToPrimitive(t string) (datatype.PrimitiveKind, bool) {
	switch t {
	case "string":
		return datatype.KindString, true
	case "integer":
		return datatype.KindInt, true
	case "number":
		return datatype.KindFloat, true
	case "boolean":
		return datatype.KindBool, true
	default:
		return "", false
	}
}

// refinePrimitiveByFormat narrows a string/number primitive using its
// `format` keyword (spec §3's Primitive.kind enumeration: date, datetime,
// time, duration, uuid, url, email, decimal, bytes).
func refinePrimitiveByFormat(kind datatype.PrimitiveKind, format string) datatype.PrimitiveKind {
	if kind != datatype.KindString && kind != datatype.KindFloat {
		return kind
	}

	switch format {
	case "date":
		return datatype.KindDate
	case "date-time":
		return datatype.KindDateTime
	case "time":
		return datatype.KindTime
	case "duration":
		return datatype.KindDuration
	case "uuid":
		return datatype.KindUUID
	case "uri", "url", "uri-reference":
		return datatype.KindURL
	case "email", "idn-email":
		return datatype.KindEmail
	case "decimal":
		return datatype.KindDecimal
	case "binary", "byte":
		return datatype.KindBytes
	default:
		return kind
	}
}
