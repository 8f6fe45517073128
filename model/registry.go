package model

import (
	"sort"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
)

// Registry owns every DataModel produced by a pipeline run. All other
// references to a model are [datatype.ModelId] lookups (spec §9's "Cyclic
// references" design note): the registry is the only place a *DataModel
// pointer is dereferenced.
type Registry struct {
	models map[datatype.ModelId]*DataModel
	order  []datatype.ModelId // first-allocated order, for deterministic diagnostics
	next   datatype.ModelId
}

// NewRegistry creates an empty model registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[datatype.ModelId]*DataModel)}
}

// Allocate reserves a fresh [datatype.ModelId] and installs a placeholder
// DataModel in [StateUnvisited], before the builder has finished
// constructing it. This lets a schema node's own fields reference its own
// id (the cycle-breaking mechanism spec §4.4's state machine describes).
func (r *Registry) Allocate(name, sourcePath string) *DataModel {
	id := r.next
	r.next++

	m := &DataModel{ID: id, Name: name, SourcePath: sourcePath, State: StateUnvisited}
	r.models[id] = m
	r.order = append(r.order, id)

	return m
}

// Get returns the model for id, or nil if it was never allocated (a
// caller bug -- every ModelRef in a frozen graph must resolve).
func (r *Registry) Get(id datatype.ModelId) *DataModel {
	return r.models[id]
}

// Delete removes a model, used by dedup (C6) once its fields have been
// rewired to the survivor and root-wrapper collapse (C4) once a wrapper
// has been folded away.
func (r *Registry) Delete(id datatype.ModelId) {
	delete(r.models, id)
}

// All returns every currently-registered model, ordered by
// (ModulePath, Name) for determinism. Before C8 assigns ModulePath, this
// falls back to allocation order, since ModulePath is empty for every
// model and sorts equal.
func (r *Registry) All() []*DataModel {
	out := make([]*DataModel, 0, len(r.models))
	for _, id := range r.order {
		if m, ok := r.models[id]; ok {
			out = append(out, m)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ModulePath != out[j].ModulePath {
			return out[i].ModulePath < out[j].ModulePath
		}

		return out[i].Name < out[j].Name
	})

	return out
}

// InOrder returns every currently-registered model in first-allocated
// order, unsorted -- used by naming strategies ([Numbered],
// [PrimaryFirst]) that need discovery order rather than the
// (ModulePath, Name) order [Registry.All] provides.
func (r *Registry) InOrder() []*DataModel {
	out := make([]*DataModel, 0, len(r.models))

	for _, id := range r.order {
		if m, ok := r.models[id]; ok {
			out = append(out, m)
		}
	}

	return out
}

// Len reports the number of live models.
func (r *Registry) Len() int { return len(r.models) }
