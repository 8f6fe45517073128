package partition

import (
	"errors"
	"sort"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/diag"
	"github.com/koxudaxi/go-datamodel-codegen/model"
)

// ErrNameCollision reports a module export-name collision unresolvable
// under [ExportsError] (spec §7's NameCollisionError).
var ErrNameCollision = errors.New("name collision")

// SplitMode selects how models are grouped into modules (spec §4.8).
type SplitMode string

const (
	SplitDefault SplitMode = "default" // one module per source schema document
	SplitSingle  SplitMode = "single"  // one module per model
)

// AllExportsScope controls which models a module's export list covers
// (spec §6).
type AllExportsScope string

const (
	ExportsChildren  AllExportsScope = "children"
	ExportsRecursive AllExportsScope = "recursive"
)

// AllExportsCollisionStrategy resolves two models in the same module's
// export list that would sanitize to the same exported name.
type AllExportsCollisionStrategy string

const (
	ExportsError         AllExportsCollisionStrategy = "error"
	ExportsMinimalPrefix AllExportsCollisionStrategy = "minimal-prefix"
	ExportsFullPrefix    AllExportsCollisionStrategy = "full-prefix"
)

// Module is one output unit: a module path, its ordered models, its
// computed import set, and its export list.
type Module struct {
	Path    string
	Models  []*model.DataModel
	Imports []Import
	Exports []string
}

// Import is one line of a module's import block, grouped per spec §4.8's
// three-tier ordering: (1) target-language stdlib equivalents, (2)
// framework imports (the chosen model runtime), (3) intra-project
// imports -- each group alphabetical.
type Import struct {
	Group Group
	Path  string
	Names []string // specific names imported from Path; empty means "whole module"
}

// Group is one of the three import-ordering tiers (spec §4.8).
type Group int

const (
	GroupStdlib Group = iota
	GroupFramework
	GroupIntra
)

// DefaultModuleName is used when a model's SourcePath carries no
// document-derived grouping (e.g. a dict/inline schema with one
// top-level document).
const DefaultModuleName = "models"

// Assign sets every model's ModulePath per mode, using docOf to map a
// model's SourcePath to the document it came from (spec §4.8 "one module
// per source schema document"). Already-assigned paths (e.g. dedup's
// ScopeTree shared-module survivors) are left untouched.
func Assign(registry *model.Registry, mode SplitMode, docOf func(sourcePath string) string) {
	for _, dm := range registry.All() {
		if dm.ModulePath != "" {
			continue
		}

		switch mode {
		case SplitSingle:
			dm.ModulePath = sanitizeModulePath(dm.Name)
		default:
			doc := DefaultModuleName
			if docOf != nil {
				if d := docOf(dm.SourcePath); d != "" {
					doc = d
				}
			}

			dm.ModulePath = sanitizeModulePath(doc)
		}
	}
}

func sanitizeModulePath(s string) string {
	if s == "" {
		return DefaultModuleName
	}

	return s
}

// BuildModules groups ordered (C7-frozen) models by ModulePath, computes
// each module's cross-module import set, and its export list. diags may be
// nil; when set, a collision resolved under a non-error strategy is
// reported as [diag.CodeNameCollisionRecovered] rather than passing
// silently.
func BuildModules(ordered []*model.DataModel, framework string, exportScope AllExportsScope, collision AllExportsCollisionStrategy, diags *diag.Channel) ([]Module, error) {
	byModule := make(map[string][]*model.DataModel)
	byID := make(map[datatype.ModelId]*model.DataModel, len(ordered))

	var paths []string

	seen := make(map[string]bool)

	for _, dm := range ordered {
		byID[dm.ID] = dm

		if !seen[dm.ModulePath] {
			seen[dm.ModulePath] = true

			paths = append(paths, dm.ModulePath)
		}

		byModule[dm.ModulePath] = append(byModule[dm.ModulePath], dm)
	}

	sort.Strings(paths)

	modules := make([]Module, 0, len(paths))

	for _, p := range paths {
		models := byModule[p]

		mod := Module{Path: p, Models: models}
		mod.Imports = computeImports(p, models, byID, framework)

		exports, err := computeExports(models, byModule, exportScope, collision, diags)
		if err != nil {
			return nil, err
		}

		mod.Exports = exports

		modules = append(modules, mod)
	}

	return modules, nil
}

// computeImports finds every survivor model reachable from modulePath's
// field types that lives elsewhere, sorted (1) stdlib, (2) framework,
// (3) intra-project, each group alphabetical (spec §4.8). This
// implementation only has intra-project imports to compute (the
// core has no stdlib-equivalent dependency of its own); the framework
// group carries the single configured model runtime import, included
// whenever the module contains at least one Class/Enum/RootWrapper model.
func computeImports(modulePath string, models []*model.DataModel, byID map[datatype.ModelId]*model.DataModel, framework string) []Import {
	externalModules := make(map[string]map[string]bool) // module -> set of model names

	for _, dm := range models {
		for _, base := range dm.Bases {
			recordExternal(byID[base], modulePath, externalModules)
		}

		for _, f := range dm.Fields {
			walkRefs(f.Type, byID, modulePath, externalModules)
		}

		if dm.Alias != nil {
			walkRefs(dm.Alias, byID, modulePath, externalModules)
		}
	}

	var imports []Import

	if framework != "" && hasEmittedKind(models) {
		imports = append(imports, Import{Group: GroupFramework, Path: framework})
	}

	modPaths := make([]string, 0, len(externalModules))
	for m := range externalModules {
		modPaths = append(modPaths, m)
	}

	sort.Strings(modPaths)

	for _, m := range modPaths {
		names := make([]string, 0, len(externalModules[m]))
		for n := range externalModules[m] {
			names = append(names, n)
		}

		sort.Strings(names)

		imports = append(imports, Import{Group: GroupIntra, Path: m, Names: names})
	}

	return imports
}

func hasEmittedKind(models []*model.DataModel) bool {
	for _, dm := range models {
		if dm.Kind == model.KindClass || dm.Kind == model.KindEnum || dm.Kind == model.KindRootWrapper {
			return true
		}
	}

	return false
}

func recordExternal(target *model.DataModel, modulePath string, out map[string]map[string]bool) {
	if target == nil || target.ModulePath == modulePath {
		return
	}

	if out[target.ModulePath] == nil {
		out[target.ModulePath] = make(map[string]bool)
	}

	out[target.ModulePath][target.Name] = true
}

func walkRefs(dt datatype.DataType, byID map[datatype.ModelId]*model.DataModel, modulePath string, out map[string]map[string]bool) {
	switch v := dt.(type) {
	case datatype.ModelRef:
		recordExternal(byID[v.ID], modulePath, out)
	case datatype.Optional:
		walkRefs(v.Inner, byID, modulePath, out)
	case datatype.Array:
		walkRefs(v.Items, byID, modulePath, out)
	case datatype.Mapping:
		walkRefs(v.Key, byID, modulePath, out)
		walkRefs(v.Value, byID, modulePath, out)
	case datatype.Union:
		for _, variant := range v.Variants {
			walkRefs(variant, byID, modulePath, out)
		}
	case datatype.Intersection:
		for _, base := range v.Bases {
			recordExternal(byID[base], modulePath, out)
		}
	case datatype.RootWrapper:
		walkRefs(v.Inner, byID, modulePath, out)
	}
}

// computeExports builds a module's export list per exportScope:
// [ExportsChildren] lists only models directly assigned to this module;
// [ExportsRecursive] produces the same list, and names pulled in via
// import are not re-exported. Name collisions in the list are resolved
// per collision.
func computeExports(models []*model.DataModel, byModule map[string][]*model.DataModel, scope AllExportsScope, collision AllExportsCollisionStrategy, diags *diag.Channel) ([]string, error) {
	names := make([]string, 0, len(models))

	seen := make(map[string]bool)

	for _, dm := range models {
		if dm.Kind == model.KindClass || dm.Kind == model.KindEnum || dm.Kind == model.KindRootWrapper || dm.Kind == model.KindAlias {
			if seen[dm.Name] {
				if err := resolveExportCollision(collision, dm.Name); err != nil {
					return nil, err
				}

				if diags != nil {
					diags.Report(diag.Diagnostic{
						Severity: diag.SeverityWarning,
						Code:     diag.CodeNameCollisionRecovered,
						Message:  "export name collision recovered by dropping duplicate from module export list: " + dm.Name,
						Path:     dm.SourcePath,
					})
				}

				continue
			}

			seen[dm.Name] = true

			names = append(names, dm.Name)
		}
	}

	if scope == ExportsRecursive {
		// Recursive scope adds nothing beyond the module's own models;
		// byModule is not consulted.
		_ = byModule
	}

	sort.Strings(names)

	return names, nil
}

func resolveExportCollision(strategy AllExportsCollisionStrategy, name string) error {
	if strategy == ExportsError {
		return &CollisionError{Name: name}
	}

	return nil
}

// CollisionError reports an export-name collision spec §7's
// NameCollisionError covers when [ExportsError] is selected.
type CollisionError struct {
	Name string
}

func (e *CollisionError) Error() string {
	return "export name collision: " + e.Name
}

func (e *CollisionError) Unwrap() error { return ErrNameCollision }
