package dedup

import (
	"reflect"
	"sort"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/model"
)

// ReuseScope selects the partition structural equality is allowed to merge
// within (spec §4.6 / glossary "Reuse scope").
type ReuseScope string

const (
	ScopeModule ReuseScope = "module"
	ScopeTree   ReuseScope = "tree"
)

// DefaultSharedModuleName is the module new tree-scope survivors move to
// when no override is configured (spec §4.6 / §6 `shared_module_name`).
const DefaultSharedModuleName = "shared"

// Run merges every set of structurally-equal models within scope to a
// fixed point (merging can make previously-distinct models equal, e.g.
// once a field's ModelRef has been rewired to a shared survivor), moving
// ScopeTree survivors to sharedModule. It returns the final merged-id ->
// survivor-id map for every model eliminated. Dedup never errors (spec
// §7); C6 is unconditionally safe to run.
func Run(registry *model.Registry, scope ReuseScope, sharedModule string) map[datatype.ModelId]datatype.ModelId {
	if sharedModule == "" {
		sharedModule = DefaultSharedModuleName
	}

	total := make(map[datatype.ModelId]datatype.ModelId)

	for {
		round := oneRound(registry, scope)
		if len(round) == 0 {
			break
		}

		model.ApplyRewrite(registry, round)

		for from, to := range round {
			total[from] = resolveChain(total, to)

			for from2, to2 := range total {
				if to2 == from {
					total[from2] = total[from]
				}
			}
		}
	}

	if scope == ScopeTree {
		moveSurvivorsToSharedModule(registry, total, sharedModule)
	}

	return total
}

func resolveChain(total map[datatype.ModelId]datatype.ModelId, id datatype.ModelId) datatype.ModelId {
	for {
		next, ok := total[id]
		if !ok || next == id {
			return id
		}

		id = next
	}
}

// oneRound performs a single equality pass: models are grouped first by
// reuse scope then by structural equality, and every non-survivor member
// of a group larger than one is merged into the survivor (lexicographic
// min of (ModulePath, Name)).
func oneRound(registry *model.Registry, scope ReuseScope) map[datatype.ModelId]datatype.ModelId {
	merges := make(map[datatype.ModelId]datatype.ModelId)

	buckets := make(map[string][]*model.DataModel)

	for _, dm := range registry.All() {
		key := scopeKey(dm, scope)
		buckets[key] = append(buckets[key], dm)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, key := range keys {
		group := buckets[key]

		used := make([]bool, len(group))

		for i := range group {
			if used[i] {
				continue
			}

			cluster := []*model.DataModel{group[i]}
			used[i] = true

			for j := i + 1; j < len(group); j++ {
				if used[j] {
					continue
				}

				if structurallyEqual(group[i], group[j]) {
					cluster = append(cluster, group[j])
					used[j] = true
				}
			}

			if len(cluster) < 2 {
				continue
			}

			survivor := pickSurvivor(cluster)

			for _, m := range cluster {
				if m.ID != survivor.ID {
					merges[m.ID] = survivor.ID
					registry.Delete(m.ID)
				}
			}
		}
	}

	return merges
}

func scopeKey(dm *model.DataModel, scope ReuseScope) string {
	if scope == ScopeTree {
		return string(dm.Kind)
	}

	return dm.ModulePath + "\x00" + string(dm.Kind)
}

func pickSurvivor(cluster []*model.DataModel) *model.DataModel {
	survivor := cluster[0]

	for _, m := range cluster[1:] {
		if m.ModulePath < survivor.ModulePath ||
			(m.ModulePath == survivor.ModulePath && m.Name < survivor.Name) {
			survivor = m
		}
	}

	return survivor
}

// structurallyEqual implements spec §4.6's equality: equal kind, equal
// field sequences (name, wire_name, type recursively, required, default,
// constraints), equal bases, and equal docstrings modulo whitespace
// normalization.
func structurallyEqual(a, b *model.DataModel) bool {
	if a.Kind != b.Kind {
		return false
	}

	if normalizeDoc(a.Docstring) != normalizeDoc(b.Docstring) {
		return false
	}

	if !reflect.DeepEqual(a.Bases, b.Bases) {
		return false
	}

	switch a.Kind {
	case model.KindEnum:
		return reflect.DeepEqual(a.Enum, b.Enum)
	case model.KindAlias, model.KindRootWrapper:
		return datatype.Equal(a.Alias, b.Alias)
	case model.KindClass:
		return fieldsEqual(a.Fields, b.Fields)
	default:
		return false
	}
}

func fieldsEqual(a, b []model.Field) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Name != b[i].Name || a[i].WireName != b[i].WireName ||
			a[i].Required != b[i].Required || a[i].HasDefault != b[i].HasDefault {
			return false
		}

		if a[i].HasDefault && !reflect.DeepEqual(a[i].Default, b[i].Default) {
			return false
		}

		if !reflect.DeepEqual(a[i].Constraints, b[i].Constraints) {
			return false
		}

		if !datatype.Equal(a[i].Type, b[i].Type) {
			return false
		}
	}

	return true
}

func normalizeDoc(s string) string {
	return collapseWhitespace(s)
}

func collapseWhitespace(s string) string {
	var b []byte

	lastSpace := true

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			if !lastSpace {
				b = append(b, ' ')
				lastSpace = true
			}

			continue
		}

		b = append(b, c)
		lastSpace = false
	}

	for len(b) > 0 && b[len(b)-1] == ' ' {
		b = b[:len(b)-1]
	}

	return string(b)
}

func moveSurvivorsToSharedModule(registry *model.Registry, merges map[datatype.ModelId]datatype.ModelId, sharedModule string) {
	survivors := make(map[datatype.ModelId]bool)

	for _, to := range merges {
		survivors[to] = true
	}

	for id := range survivors {
		if dm := registry.Get(id); dm != nil {
			dm.ModulePath = sharedModule
		}
	}
}
