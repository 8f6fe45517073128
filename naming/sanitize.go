package naming

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// reservedKeywords is a representative set of target-language reserved
// words across the output families spec §6 lists (Pydantic/dataclass/
// TypedDict/msgspec all run atop Python, so this is Python's keyword set).
var reservedKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// SanitizeIdentifier applies spec §4.5's sanitization rule: replace any
// character outside [A-Za-z0-9_] with `_`; append `_` on a reserved-word
// clash; prepend `field_` when the result starts with a digit.
// Deterministic and idempotent -- calling it twice is a no-op.
func SanitizeIdentifier(name string) string {
	return sanitizeIdentifier(name)
}

func sanitizeIdentifier(name string) string {
	if name == "" {
		return "field_"
	}

	var b strings.Builder

	for _, r := range name {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	out := b.String()

	if out[0] >= '0' && out[0] <= '9' {
		out = "field_" + out
	}

	if reservedKeywords[out] {
		out += "_"
	}

	return out
}

// FieldTypeCollisionStrategy resolves a field name that collides with a
// sibling class name (spec §4.5).
type FieldTypeCollisionStrategy string

const (
	RenameField FieldTypeCollisionStrategy = "rename-field"
	RenameType  FieldTypeCollisionStrategy = "rename-type"
)

// ResolveFieldName picks the emitted identifier for a field named
// wireName on a class whose sibling type names are siblingTypes, applying
// strategy (spec §8 scenario 5: a property `Name` colliding with a sibling
// class `Name` under rename-field emits field `name_`, keeping `wire_name
// = Name`). renameType reports whether a type rename is instead required
// (the caller performs the type rename elsewhere).
func ResolveFieldName(wireName string, siblingTypes map[string]bool, strategy FieldTypeCollisionStrategy) (fieldName string, renameType bool) {
	sanitized := sanitizeIdentifier(wireName)

	if !siblingTypes[sanitized] {
		return sanitized, false
	}

	switch strategy {
	case RenameType:
		return sanitized, true
	default: // RenameField
		return strcase.ToSnake(sanitized) + "_", false
	}
}
