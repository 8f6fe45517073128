package model

import "github.com/koxudaxi/go-datamodel-codegen/datatype"

// CollapseRootModelsNameStrategy selects which side's name survives a
// root-wrapper collapse (spec §4.4 rule 6).
type CollapseRootModelsNameStrategy string

const (
	CollapseChild  CollapseRootModelsNameStrategy = "child"  // the wrapped target keeps its own name
	CollapseParent CollapseRootModelsNameStrategy = "parent" // the target takes the wrapper's name
)

// CollapseRootModels removes every [KindRootWrapper] model whose payload
// is (directly, or through a single [datatype.Array] layer) a
// [datatype.ModelRef], per spec §4.4 rule 6 and the scenario 6 fixture in
// spec §8. It returns the wrapper-id -> target-id rewrite map; callers
// must pass it to [datatype.RewriteModelRef] over every remaining model's
// Fields/Bases/Alias to retarget references to the collapsed wrapper.
func CollapseRootModels(registry *Registry, strategy CollapseRootModelsNameStrategy) map[datatype.ModelId]datatype.ModelId {
	rewrite := make(map[datatype.ModelId]datatype.ModelId)

	for _, dm := range registry.All() {
		if dm.Kind != KindRootWrapper {
			continue
		}

		targetID, ok := collapseTarget(dm.Alias)
		if !ok {
			continue
		}

		target := registry.Get(targetID)
		if target == nil {
			continue
		}

		if strategy == CollapseParent {
			target.Name = dm.Name
		}

		rewrite[dm.ID] = targetID

		registry.Delete(dm.ID)
	}

	if len(rewrite) == 0 {
		return rewrite
	}

	ApplyRewrite(registry, rewrite)

	return rewrite
}

// collapseTarget reports the ModelId a [RootWrapper]'s Alias collapses
// onto: either a direct [datatype.ModelRef], or an [datatype.Array] whose
// Items is one (the `Pets = RootModel[list[Pet]]` shape).
func collapseTarget(alias datatype.DataType) (datatype.ModelId, bool) {
	switch v := alias.(type) {
	case datatype.Array:
		return datatype.ModelRefTarget(v.Items)
	default:
		return datatype.ModelRefTarget(alias)
	}
}

// ApplyRewrite walks every remaining model's Fields/Bases/Alias and
// rewrites any [datatype.ModelRef] in rewrite to its mapped target. Used
// by both [CollapseRootModels] and package dedup's survivor rewiring.
func ApplyRewrite(registry *Registry, rewrite map[datatype.ModelId]datatype.ModelId) {
	for _, dm := range registry.All() {
		for i := range dm.Fields {
			dm.Fields[i].Type = datatype.RewriteModelRef(dm.Fields[i].Type, rewrite)
		}

		for i, base := range dm.Bases {
			if to, ok := rewrite[base]; ok {
				dm.Bases[i] = to
			}
		}

		if dm.Alias != nil {
			dm.Alias = datatype.RewriteModelRef(dm.Alias, rewrite)
		}
	}
}
