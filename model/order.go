package model

import (
	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/depgraph"
)

// Order runs C7 over registry: it builds a DAG of "uses as base" and
// "uses as field type (non-optional direct reference)" edges, performs a
// stable topological sort with lexicographic tie-break, and for every
// cycle edge the sort had to drop, rewrites the referring field's type to
// a [datatype.ForwardRef] (spec §4.7). The returned slice is the frozen
// emission order; every model's State becomes [StateOrdered].
func Order(registry *Registry) []*DataModel {
	models := registry.All()

	byID := make(map[datatype.ModelId]*DataModel, len(models))
	nodes := make([]datatype.ModelId, len(models))

	for i, dm := range models {
		nodes[i] = dm.ID
		byID[dm.ID] = dm
	}

	edges := make(map[datatype.ModelId][]datatype.ModelId, len(models))

	for _, dm := range models {
		edges[dm.ID] = append(edges[dm.ID], dm.Bases...)

		for _, f := range dm.Fields {
			if id, ok := directModelRef(f.Type); ok {
				edges[dm.ID] = append(edges[dm.ID], id)
			}
		}
	}

	key := func(id datatype.ModelId) string {
		dm := byID[id]

		return dm.ModulePath + "\x00" + dm.Name
	}

	order, cycleEdges := depgraph.StableTopoSort(nodes, edges, key)

	for _, e := range cycleEdges {
		breakCycleEdge(byID[e.From], byID[e.To])
	}

	result := make([]*DataModel, len(order))

	for i, id := range order {
		dm := byID[id]
		dm.State = StateOrdered
		result[i] = dm
	}

	return result
}

// directModelRef reports the ModelId dt points at when dt is exactly a
// bare [datatype.ModelRef] with no wrapping Optional/Array/Union layer --
// only a direct, required reference forces declaration-before-use.
func directModelRef(dt datatype.DataType) (datatype.ModelId, bool) {
	if ref, ok := dt.(datatype.ModelRef); ok {
		return ref.ID, true
	}

	return 0, false
}

func breakCycleEdge(from, to *DataModel) {
	if from == nil || to == nil {
		return
	}

	for i := range from.Fields {
		if id, ok := directModelRef(from.Fields[i].Type); ok && id == to.ID {
			from.Fields[i].Type = datatype.ForwardRef{Name: to.Name}

			return
		}
	}

	for i, base := range from.Bases {
		if base == to.ID {
			// Base-class cycles can't be broken by a field-level
			// ForwardRef; the base is left as-is and nothing is recorded
			// on either model about the cycle.
			from.Bases[i] = base

			return
		}
	}
}
