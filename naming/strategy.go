package naming

import (
	"strconv"
	"strings"

	"github.com/gobuffalo/flect"

	"github.com/koxudaxi/go-datamodel-codegen/model"
)

// Strategy selects how provisional model names (assigned by C4 from
// title/parent-key/schema-path) are finalized into unique identifiers
// (spec §4.5).
type Strategy string

const (
	Numbered       Strategy = "numbered"
	ParentPrefixed Strategy = "parent-prefixed"
	FullPath       Strategy = "full-path"
	PrimaryFirst   Strategy = "primary-first"
)

// Resolve applies strategy across every model in registry, renaming in
// place so that (Name) is unique across the whole registry; names are not
// re-scoped per ModulePath after C8 assigns module paths. Ties are broken by allocation
// order, which is deterministic given identical input.
func Resolve(registry *model.Registry, strategy Strategy) {
	models := registry.InOrder()

	base := make([]string, len(models))
	for i, dm := range models {
		base[i] = provisionalBase(dm, strategy)
	}

	if strategy == PrimaryFirst {
		resolvePrimaryFirst(models, base)

		return
	}

	seen := make(map[string]int, len(models))

	for i, dm := range models {
		name := sanitizeIdentifier(base[i])

		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			dm.Name = appendSuffix(name, n+1)
		} else {
			seen[name] = 0
			dm.Name = name
		}
	}
}

func provisionalBase(dm *model.DataModel, strategy Strategy) string {
	switch strategy {
	case ParentPrefixed:
		if parent := parentSegment(dm.SourcePath); parent != "" {
			return flect.Pascalize(parent) + flect.Pascalize(dm.Name)
		}

		return dm.Name

	case FullPath:
		segments := pathSegments(dm.SourcePath)
		if len(segments) == 0 {
			return dm.Name
		}

		var b strings.Builder
		for _, s := range segments {
			b.WriteString(flect.Pascalize(s))
		}

		return b.String()

	default: // Numbered, PrimaryFirst
		return dm.Name
	}
}

// resolvePrimaryFirst implements "the model with the shortest schema path
// wins the base name; the others take numeric suffixes" (spec §4.5).
func resolvePrimaryFirst(models []*model.DataModel, base []string) {
	groups := make(map[string][]int)

	for i, b := range base {
		key := sanitizeIdentifier(b)
		groups[key] = append(groups[key], i)
	}

	for key, idxs := range groups {
		if len(idxs) == 1 {
			models[idxs[0]].Name = key

			continue
		}

		// Shortest schema path (fewest pointer segments) wins the bare
		// name; ties keep allocation order, which idxs already reflects.
		primary := idxs[0]

		for _, i := range idxs[1:] {
			if len(pathSegments(models[i].SourcePath)) < len(pathSegments(models[primary].SourcePath)) {
				primary = i
			}
		}

		suffix := 1

		for _, i := range idxs {
			if i == primary {
				models[i].Name = key

				continue
			}

			models[i].Name = appendSuffix(key, suffix)
			suffix++
		}
	}
}

func appendSuffix(name string, n int) string {
	return name + strconv.Itoa(n)
}

func pathSegments(sourcePath string) []string {
	parts := strings.Split(sourcePath, "/")

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "properties" || p == "$defs" || p == "definitions" || p == "schemas" {
			continue
		}

		out = append(out, p)
	}

	return out
}

func parentSegment(sourcePath string) string {
	segments := pathSegments(sourcePath)
	if len(segments) < 2 {
		return ""
	}

	return segments[len(segments)-2]
}
