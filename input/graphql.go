package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// parseGraphQL handles the `graphql` input kind (spec §6's `graphql_scopes
// = {schema}`): a minimal SDL subset -- `type`/`input`/`enum`/`scalar`
// blocks -- is scanned into one [schema.Node] per declared name,
// collected under the document root's $defs, the same "named fragment
// lives under $defs, reached by $ref" shape [schema.Walk] already
// expects for JSON-Schema $defs. No example repo in the corpus ships a
// GraphQL SDL parser; see DESIGN.md for why this one is a small
// hand-rolled scanner over the standard library rather than an
// ecosystem dependency.
func parseGraphQL(_ context.Context, table *schema.Table, uri string, content []byte) (*schema.Document, error) {
	decls, err := scanGraphQLDecls(string(content))
	if err != nil {
		return nil, err
	}

	defs := make(map[string]*jsonschema.Schema, len(decls))

	var queryName string

	for _, d := range decls {
		switch d.kind {
		case declScalar:
			defs[d.name] = scalarSchema(d.name)
		case declEnum:
			members := make([]any, len(d.fields))
			for i, f := range d.fields {
				members[i] = f.name
			}

			defs[d.name] = &jsonschema.Schema{Type: "string", Enum: members}
		case declType, declInput:
			defs[d.name] = objectSchema(d, defs)

			if strings.EqualFold(d.name, "Query") {
				queryName = d.name
			}
		}
	}

	root := &jsonschema.Schema{Defs: defs}

	if queryName != "" {
		root.Ref = "#/$defs/" + queryName
	}

	return table.Register(uri, root), nil
}

// objectSchema assembles the object schema for a type/input declaration.
// Field type references to another declared name become $ref strings
// resolved lazily against the shared Defs map (GraphQL SDL allows forward
// references, so the target schema may not exist yet; [schema.Table]
// resolves $ref lazily, so a forward string reference is safe).
func objectSchema(d graphqlDecl, _ map[string]*jsonschema.Schema) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(d.fields))

	var required []string

	var order []string

	for _, f := range d.fields {
		props[f.name] = graphqlFieldSchema(f.typeName, f.list, f.nonNull)
		order = append(order, f.name)

		if f.nonNull {
			required = append(required, f.name)
		}
	}

	return &jsonschema.Schema{
		Type:          "object",
		Properties:    props,
		PropertyOrder: order,
		Required:      required,
	}
}

func graphqlFieldSchema(typeName string, list, nonNull bool) *jsonschema.Schema {
	var s *jsonschema.Schema

	switch typeName {
	case "ID", "String":
		s = &jsonschema.Schema{Type: "string"}
	case "Int":
		s = &jsonschema.Schema{Type: "integer"}
	case "Float":
		s = &jsonschema.Schema{Type: "number"}
	case "Boolean":
		s = &jsonschema.Schema{Type: "boolean"}
	default:
		s = &jsonschema.Schema{Ref: "#/$defs/" + typeName}
	}

	if list {
		s = &jsonschema.Schema{Type: "array", Items: s}
	}

	if !nonNull {
		s = &jsonschema.Schema{AnyOf: []*jsonschema.Schema{s, {Type: "null"}}}
	}

	return s
}

func scalarSchema(name string) *jsonschema.Schema {
	switch name {
	case "DateTime":
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

type declKind int

const (
	declType declKind = iota
	declInput
	declEnum
	declScalar
)

type graphqlField struct {
	name     string
	typeName string
	list     bool
	nonNull  bool
}

type graphqlDecl struct {
	kind   declKind
	name   string
	fields []graphqlField
}

// scanGraphQLDecls is a deliberately small scanner: it recognizes
// `type`/`input`/`enum`/`scalar` keywords, a brace-delimited body, and
// `name: Type` / `name: [Type!]!` field lines. Comments (`#...`) are
// stripped before scanning and a directive (`@foo(...)`) is cut from a
// declaration name or field type; descriptions (`"""..."""`) are not
// stripped. Anything else (interfaces, unions, extend, fragments) is
// left for a future pass -- spec's `graphql_scopes = {schema}` only
// requires the type/field shape this covers.
func scanGraphQLDecls(src string) ([]graphqlDecl, error) {
	src = stripGraphQLComments(src)

	var decls []graphqlDecl

	lines := strings.Split(src, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		kind, ok := declKeyword(line)
		if !ok {
			continue
		}

		name := declName(line)
		if name == "" {
			continue
		}

		if kind == declScalar {
			decls = append(decls, graphqlDecl{kind: declScalar, name: name})
			continue
		}

		body, consumed, err := collectBraceBody(lines, i)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", line, name, err)
		}

		i = consumed

		var fields []graphqlField

		for _, fl := range body {
			if f, ok := parseGraphQLField(fl); ok {
				fields = append(fields, f)
			}
		}

		decls = append(decls, graphqlDecl{kind: kind, name: name, fields: fields})
	}

	return decls, nil
}

func declKeyword(line string) (declKind, bool) {
	switch {
	case strings.HasPrefix(line, "type "):
		return declType, true
	case strings.HasPrefix(line, "input "):
		return declInput, true
	case strings.HasPrefix(line, "enum "):
		return declEnum, true
	case strings.HasPrefix(line, "scalar "):
		return declScalar, true
	default:
		return 0, false
	}
}

func declName(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}

	name := fields[1]
	name = strings.TrimSuffix(name, "{")
	name = strings.TrimSpace(name)

	if idx := strings.Index(name, "@"); idx >= 0 {
		name = name[:idx]
	}

	return strings.TrimSpace(name)
}

// collectBraceBody returns the lines strictly between the `{` that opens
// the declaration starting at lines[start] and its matching `}`, plus
// the index of the line containing that `}`.
func collectBraceBody(lines []string, start int) ([]string, int, error) {
	depth := 0
	var body []string

	openedAt := -1

	for i := start; i < len(lines); i++ {
		line := lines[i]

		for _, r := range line {
			switch r {
			case '{':
				depth++

				if openedAt < 0 {
					openedAt = i
				}
			case '}':
				depth--

				if depth == 0 {
					return body, i, nil
				}
			}
		}

		if openedAt >= 0 && i > openedAt {
			body = append(body, line)
		} else if openedAt == i && strings.Contains(line, "{") {
			if rest := strings.SplitN(line, "{", 2); len(rest) == 2 && strings.TrimSpace(rest[1]) != "" {
				body = append(body, rest[1])
			}
		}
	}

	return nil, start, fmt.Errorf("unterminated block")
}

// parseGraphQLField parses one `name: Type` / `name: [Type!]!` field
// declaration line, ignoring argument lists (`name(arg: T): Type`).
func parseGraphQLField(line string) (graphqlField, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return graphqlField{}, false
	}

	colon := strings.Index(line, ":")
	if colon < 0 {
		return graphqlField{}, false
	}

	name := strings.TrimSpace(line[:colon])
	if paren := strings.Index(name, "("); paren >= 0 {
		name = strings.TrimSpace(name[:paren])
	}

	if name == "" {
		return graphqlField{}, false
	}

	typePart := strings.TrimSpace(line[colon+1:])
	if idx := strings.Index(typePart, "@"); idx >= 0 {
		typePart = strings.TrimSpace(typePart[:idx])
	}

	typePart = strings.TrimSuffix(typePart, ",")

	field := graphqlField{name: name}
	field.nonNull = strings.HasSuffix(typePart, "!")
	typePart = strings.TrimSuffix(typePart, "!")

	if list := strings.HasPrefix(typePart, "["); list {
		field.list = true
		typePart = strings.TrimSuffix(strings.TrimPrefix(typePart, "["), "]")
		typePart = strings.TrimSuffix(strings.TrimSpace(typePart), "!") // inner element non-null, not tracked separately
	}

	field.typeName = strings.TrimSpace(typePart)

	return field, true
}

func stripGraphQLComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "#"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}

	return strings.Join(lines, "\n")
}
