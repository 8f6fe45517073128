package model

import "github.com/koxudaxi/go-datamodel-codegen/datatype"

// ReadOnlyWriteOnlyMode selects how spec §4.4 rule 5's readOnly/writeOnly
// split behaves.
type ReadOnlyWriteOnlyMode string

const (
	ReadOnlyWriteOnlyNone          ReadOnlyWriteOnlyMode = ""
	ReadOnlyWriteOnlyRequestResponse ReadOnlyWriteOnlyMode = "request-response"
	ReadOnlyWriteOnlyAll           ReadOnlyWriteOnlyMode = "all"
)

// SplitReadOnlyWriteOnly walks every model in registry and, for each class
// model carrying at least one readOnly or writeOnly field, emits the
// Base/Request/Response (or just Request/Response) variants spec §4.4
// rule 5 describes, pruning fields per variant. The original model is
// replaced in place by the Base variant (or removed, under
// request-response mode); Request/Response are newly allocated models
// appended to the registry.
//
// Returns, for every split model's original id, the set of replacement ids
// keyed by [Variant] -- callers needing to rewrite a ModelRef to a specific
// variant (e.g. a path operation's request body vs. its response) consult
// this map; a field reference that doesn't care picks [VariantBase] (or,
// under request-response mode, [VariantResponse] as the superset-shaped
// default).
func SplitReadOnlyWriteOnly(registry *Registry, mode ReadOnlyWriteOnlyMode) map[datatype.ModelId]map[Variant]datatype.ModelId {
	result := make(map[datatype.ModelId]map[Variant]datatype.ModelId)

	if mode == ReadOnlyWriteOnlyNone {
		return result
	}

	for _, dm := range registry.All() {
		if dm.Kind != KindClass || !hasReadOrWriteOnly(dm) {
			continue
		}

		variants := splitModel(registry, dm, mode)
		result[dm.ID] = variants
	}

	return result
}

func hasReadOrWriteOnly(dm *DataModel) bool {
	for _, f := range dm.Fields {
		if f.Constraints.ReadOnly || f.Constraints.WriteOnly {
			return true
		}
	}

	return false
}

func splitModel(registry *Registry, dm *DataModel, mode ReadOnlyWriteOnlyMode) map[Variant]datatype.ModelId {
	out := make(map[Variant]datatype.ModelId)

	request := pruneFields(dm.Fields, func(f Field) bool { return !f.Constraints.ReadOnly })
	response := pruneFields(dm.Fields, func(f Field) bool { return !f.Constraints.WriteOnly })

	reqModel := registry.Allocate(dm.Name+"Request", dm.SourcePath)
	*reqModel = DataModel{
		ID: reqModel.ID, Name: dm.Name + "Request", Kind: KindClass, Fields: request,
		Bases: dm.Bases, Docstring: dm.Docstring, ModulePath: dm.ModulePath,
		Attributes: withVariant(dm.Attributes, VariantRequest), State: StateBuilt,
	}

	respModel := registry.Allocate(dm.Name+"Response", dm.SourcePath)
	*respModel = DataModel{
		ID: respModel.ID, Name: dm.Name + "Response", Kind: KindClass, Fields: response,
		Bases: dm.Bases, Docstring: dm.Docstring, ModulePath: dm.ModulePath,
		Attributes: withVariant(dm.Attributes, VariantResponse), State: StateBuilt,
	}

	out[VariantRequest] = reqModel.ID
	out[VariantResponse] = respModel.ID

	if mode == ReadOnlyWriteOnlyAll {
		dm.Attributes = withVariant(dm.Attributes, VariantBase)
		out[VariantBase] = dm.ID

		return out
	}

	// request-response mode: the original Base model is removed, since the
	// printer should only ever see the two split variants.
	registry.Delete(dm.ID)

	return out
}

func withVariant(a Attributes, v Variant) Attributes {
	a.Variant = v

	return a
}

func pruneFields(fields []Field, keep func(Field) bool) []Field {
	out := make([]Field, 0, len(fields))

	for _, f := range fields {
		if keep(f) {
			out = append(out, f)
		}
	}

	return out
}
