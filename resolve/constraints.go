package resolve

import "github.com/koxudaxi/go-datamodel-codegen/datatype"

// extractConstraints reads the validation keywords node carries directly
// into a [datatype.Constraints] value. It never looks at allOf/anyOf
// siblings; combining those is mergeAllOf's job.
func extractConstraints(node schemaNode) datatype.Constraints {
	if node == nil {
		return datatype.Constraints{}
	}

	c := datatype.Constraints{
		Pattern:          node.Pattern,
		MinLength:        node.MinLength,
		MaxLength:        node.MaxLength,
		MultipleOf:       node.MultipleOf,
		Minimum:          node.Minimum,
		Maximum:          node.Maximum,
		ExclusiveMinimum: node.ExclusiveMinimum,
		ExclusiveMaximum: node.ExclusiveMaximum,
		Format:           node.Format,
		Description:      node.Description,
		Examples:         node.Examples,
		ReadOnly:         node.ReadOnly,
		WriteOnly:        node.WriteOnly,
		Deprecated:       node.Deprecated,
	}

	if node.Default != nil {
		c.Default = node.Default
		c.HasDefault = true
	}

	return c
}

// mergeConstraints conjoins a and b, failing with a [MergeError] when both
// sides set an incompatible `format` -- the one keyword [datatype.
// Constraints.Merge] cannot arbitrate itself, since it has no schema path
// to attach to the error.
func mergeConstraints(path string, a, b datatype.Constraints) (datatype.Constraints, error) {
	if a.Format != "" && b.Format != "" && a.Format != b.Format {
		return datatype.Constraints{}, &MergeError{Path: path, Field: "format", A: a.Format, B: b.Format}
	}

	return a.Merge(b), nil
}
