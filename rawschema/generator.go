package rawschema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/koxudaxi/go-datamodel-codegen/schema"
)

// ErrInvalidYAML wraps a malformed YAML document's parse error.
var ErrInvalidYAML = errors.New("invalid yaml")

// Generator infers a [schema.Node] from one or more example documents.
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the inferred root node's title.
func WithTitle(title string) Option {
	return func(g *Generator) { g.title = title }
}

// WithDescription sets the inferred root node's description.
func WithDescription(desc string) Option {
	return func(g *Generator) { g.description = desc }
}

// WithID sets the inferred root node's $id.
func WithID(id string) Option {
	return func(g *Generator) { g.id = id }
}

// WithStrict sets additionalProperties to false on every inferred object.
func WithStrict(strict bool) Option {
	return func(g *Generator) { g.strict = strict }
}

// Generate infers a [schema.Node] from one or more YAML (or JSON, a valid
// YAML subset) documents, merging multiple inputs with union semantics.
func (g *Generator) Generate(inputs ...[]byte) (schema.Node, error) {
	var result schema.Node

	if len(inputs) == 0 {
		result = g.emptyNode()
	} else {
		var nodes []schema.Node

		for i, input := range inputs {
			n, err := g.generateSingle(input)
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}

			nodes = append(nodes, n)
		}

		result = nodes[0]
		for i := 1; i < len(nodes); i++ {
			result = mergeNodes(result, nodes[i])
		}
	}

	result.Schema = "http://json-schema.org/draft-07/schema#"

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	if (result.Type == typeObject || result.Properties != nil) && result.AdditionalProperties == nil {
		if g.strict {
			result.AdditionalProperties = FalseNode()
		} else {
			result.AdditionalProperties = TrueNode()
		}
	}

	return result, nil
}

// generateSingle infers a node from a single YAML document.
func (g *Generator) generateSingle(input []byte) (schema.Node, error) {
	if len(input) == 0 || isBlank(input) {
		return g.emptyNode(), nil
	}

	file, err := parser.ParseBytes(input, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 {
		return g.emptyNode(), nil
	}

	doc := file.Docs[0]
	if doc.Body == nil {
		return g.emptyNode(), nil
	}

	anchors := buildAnchorMap(doc.Body)

	return g.walkNode(doc.Body, anchors), nil
}

// walkNode recursively infers a node from a YAML AST node.
func (g *Generator) walkNode(node ast.Node, anchors map[string]ast.Node) schema.Node {
	node = resolveAliases(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		return &jsonschema.Schema{}
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return g.walkMapping(n, anchors)
	case *ast.MappingValueNode:
		return g.walkMapping(nil, anchors, n)
	case *ast.SequenceNode:
		return g.walkSequence(n, anchors)
	default:
		return g.walkScalar(node)
	}
}

// walkMapping infers an object node from a mapping node.
func (g *Generator) walkMapping(mn *ast.MappingNode, anchors map[string]ast.Node, extraValues ...*ast.MappingValueNode) schema.Node {
	node := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]schema.Node),
	}

	if g.strict {
		node.AdditionalProperties = FalseNode()
	} else {
		node.AdditionalProperties = TrueNode()
	}

	var values []*ast.MappingValueNode
	if mn != nil {
		values = mn.Values
	}

	values = append(values, extraValues...)

	var (
		propertyOrder []string
		orderSeen     = make(map[string]bool)
	)

	addToOrder := func(key string) {
		if !orderSeen[key] {
			propertyOrder = append(propertyOrder, key)
			orderSeen[key] = true
		}
	}

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			g.handleMergeKey(mvn, anchors, node, addToOrder)

			continue
		}

		g.handleProperty(mvn, anchors, node, addToOrder)
	}

	node.PropertyOrder = propertyOrder

	if len(node.Properties) == 0 {
		node.Properties = nil
		node.PropertyOrder = nil
	}

	return node
}

// handleMergeKey processes a YAML merge key (<<) and adds its properties.
func (g *Generator) handleMergeKey(mvn *ast.MappingValueNode, anchors map[string]ast.Node, node schema.Node, addToOrder func(string)) {
	mergeValue := resolveAliases(mvn.Value, anchors)
	mergeValue = unwrapNode(mergeValue)

	switch mv := mergeValue.(type) {
	case *ast.MappingNode:
		merged := g.walkMapping(mv, anchors)
		for _, k := range propertyKeys(merged) {
			if _, exists := node.Properties[k]; !exists {
				node.Properties[k] = merged.Properties[k]
				addToOrder(k)
			}
		}

		if merged.Required != nil {
			node.Required = append(node.Required, merged.Required...)
		}

	case *ast.SequenceNode:
		for _, seqVal := range mv.Values {
			resolved := resolveAliases(seqVal, anchors)
			resolved = unwrapNode(resolved)

			mappingNode, ok := resolved.(*ast.MappingNode)
			if !ok {
				continue
			}

			merged := g.walkMapping(mappingNode, anchors)
			for _, k := range propertyKeys(merged) {
				if _, exists := node.Properties[k]; !exists {
					node.Properties[k] = merged.Properties[k]
					addToOrder(k)
				}
			}
		}
	}
}

// handleProperty infers a single key-value pair in a mapping.
func (g *Generator) handleProperty(mvn *ast.MappingValueNode, anchors map[string]ast.Node, node schema.Node, addToOrder func(string)) {
	keyName := mvn.Key.String()

	valueNode := resolveAliases(mvn.Value, anchors)
	valueNode = unwrapNode(valueNode)

	childNode := g.walkNode(valueNode, anchors)
	if childNode.Description == "" {
		childNode.Description = extractComment(mvn)
	}

	node.Properties[keyName] = childNode
	addToOrder(keyName)
}

// walkSequence infers an array node from a sequence node.
func (g *Generator) walkSequence(seq *ast.SequenceNode, anchors map[string]ast.Node) schema.Node {
	return &jsonschema.Schema{
		Type:  typeArray,
		Items: g.inferItemsFromSequence(seq, anchors),
	}
}

// inferItemsFromSequence infers the items node from a sequence's values.
// When every element is a mapping, their inferred objects are merged
// (union semantics) rather than picking only the first element's shape --
// this is what lets a CSV's rows, re-encoded as a YAML sequence of
// same-shaped mappings, infer every column across every row.
func (g *Generator) inferItemsFromSequence(seq *ast.SequenceNode, anchors map[string]ast.Node) schema.Node {
	if len(seq.Values) == 0 {
		return nil
	}

	allMappings := true

	for _, val := range seq.Values {
		resolved := resolveAliases(val, anchors)
		resolved = unwrapNode(resolved)

		if _, ok := resolved.(*ast.MappingNode); !ok {
			allMappings = false

			break
		}
	}

	if allMappings {
		var nodes []schema.Node

		for _, val := range seq.Values {
			resolved := resolveAliases(val, anchors)
			resolved = unwrapNode(resolved)

			nodes = append(nodes, g.walkNode(resolved, anchors))
		}

		result := nodes[0]
		for i := 1; i < len(nodes); i++ {
			result = mergeNodes(result, nodes[i])
		}

		return result
	}

	return inferItemsNode(seq)
}

// walkScalar infers a node for a scalar value.
func (g *Generator) walkScalar(node ast.Node) schema.Node {
	t := inferType(node)
	if t == "" {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{Type: t}
}

// emptyNode returns a node for empty input (validates everything).
func (g *Generator) emptyNode() schema.Node {
	return &jsonschema.Schema{}
}

// buildAnchorMap walks the AST and collects all anchor definitions.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)
	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

// resolveAliases resolves alias nodes using the anchor map.
func resolveAliases(node ast.Node, anchors map[string]ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}

// isBlank returns true if the byte slice contains only whitespace.
func isBlank(data []byte) bool {
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
