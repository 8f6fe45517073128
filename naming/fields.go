package naming

import (
	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/model"
)

// SanitizeFields walks every class model in registry, sets each field's
// Name from its WireName via [SanitizeIdentifier], and resolves
// field-vs-sibling-type-name collisions per strategy. A field whose
// sanitized name collides with another class's name anywhere in the
// registry is renamed per strategy; under [RenameType] the field keeps its
// sanitized name and a [TypeRenameRequest] naming the colliding type is
// returned for the caller to rename that type. ModelRefs point at ids, not
// names, so renaming a type needs no rewrite of the references to it.
func SanitizeFields(registry *model.Registry, strategy FieldTypeCollisionStrategy) []TypeRenameRequest {
	typeNames := make(map[string]bool)

	for _, dm := range registry.All() {
		if dm.Kind == model.KindClass || dm.Kind == model.KindEnum || dm.Kind == model.KindRootWrapper {
			typeNames[dm.Name] = true
		}
	}

	var renames []TypeRenameRequest

	for _, dm := range registry.All() {
		if dm.Kind != model.KindClass {
			continue
		}

		siblings := make(map[string]bool, len(typeNames))

		for name := range typeNames {
			if name != dm.Name {
				siblings[name] = true
			}
		}

		for i := range dm.Fields {
			f := &dm.Fields[i]

			name, renameType := ResolveFieldName(f.WireName, siblings, strategy)
			if renameType {
				renames = append(renames, TypeRenameRequest{ModelID: dm.ID, FieldIndex: i, CollidingName: f.WireName})
				f.Name = sanitizeIdentifier(f.WireName)

				continue
			}

			f.Name = name
		}
	}

	return renames
}

// TypeRenameRequest records a field name that collided with a sibling
// type under [RenameType] strategy: the caller must rename the colliding
// type model instead of the field.
type TypeRenameRequest struct {
	ModelID       datatype.ModelId
	FieldIndex    int
	CollidingName string
}
