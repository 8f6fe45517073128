package input

import (
	"bytes"
	"strings"
)

// Kind is a recognized input kind (spec §6).
type Kind string

const (
	KindAuto       Kind = "auto"
	KindOpenAPI    Kind = "openapi"
	KindJSONSchema Kind = "jsonschema"
	KindJSON       Kind = "json"
	KindYAML       Kind = "yaml"
	KindDict       Kind = "dict"
	KindCSV        Kind = "csv"
	KindGraphQL    Kind = "graphql"
)

// Detect implements spec §6's `auto` selection: "by MIME/extension then
// content sniffing (first non-whitespace character `{` / `[` -> JSON;
// presence of `openapi:` key -> OpenAPI; presence of top-level `type
// System` / `schema` blocks -> GraphQL)".
func Detect(filename string, content []byte) Kind {
	if k, ok := detectByExtension(filename); ok {
		return k
	}

	return detectByContent(content)
}

func detectByExtension(filename string) (Kind, bool) {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".csv"):
		return KindCSV, true
	case strings.HasSuffix(lower, ".graphql"), strings.HasSuffix(lower, ".gql"):
		return KindGraphQL, true
	case strings.HasSuffix(lower, ".json"), strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		// Extension alone can't distinguish an explicit schema document
		// from a data file; content sniffing still decides openapi vs
		// jsonschema vs plain json/yaml.
		return "", false
	default:
		return "", false
	}
}

func detectByContent(content []byte) Kind {
	trimmed := bytes.TrimLeft(content, " \t\r\n")

	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if looksLikeOpenAPI(trimmed) {
			return KindOpenAPI
		}

		if looksLikeJSONSchema(trimmed) {
			return KindJSONSchema
		}

		return KindJSON
	}

	if looksLikeOpenAPI(content) {
		return KindOpenAPI
	}

	if looksLikeJSONSchema(content) {
		return KindJSONSchema
	}

	if looksLikeGraphQL(content) {
		return KindGraphQL
	}

	return KindYAML
}

func looksLikeOpenAPI(content []byte) bool {
	return bytes.Contains(content, []byte("openapi:")) || bytes.Contains(content, []byte(`"openapi"`))
}

func looksLikeJSONSchema(content []byte) bool {
	return bytes.Contains(content, []byte("$schema")) || bytes.Contains(content, []byte(`"$ref"`)) ||
		bytes.Contains(content, []byte("$ref:"))
}

func looksLikeGraphQL(content []byte) bool {
	for _, kw := range []string{"type Query", "type Mutation", "schema {", "type System", "\ntype ", "scalar "} {
		if bytes.Contains(content, []byte(kw)) {
			return true
		}
	}

	return strings.HasPrefix(strings.TrimSpace(string(content)), "type ")
}
