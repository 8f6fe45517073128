// Package naming implements the name/collision resolver (C5): it applies
// a configured naming strategy across a model graph, sanitizes identifiers
// for the target language, and resolves field-vs-type-name collisions --
// grounded on other_examples' slipscheme (title/ID/description fallback
// chain) and sivchari-controller-tools' deepcopy naming helpers.
package naming
