// Package input implements the loaders spec §6 lists as part of the
// core's contract: `auto`, `openapi`, `jsonschema`, `json`, `yaml`,
// `dict`, `csv`, `graphql`. Each parser turns raw document bytes into the
// C1 RawSchema tree ([schema.Node]) and registers it with a
// [schema.Table]; file/network I/O to obtain those bytes remains a
// caller's responsibility (spec §1, §5).
//
// `openapi` and `jsonschema` parse an explicit schema document
// structurally. `json`, `yaml`, `dict`, and `csv` carry example data
// instead of a schema, and the parser infers one from the data's shape --
// grounded on the teacher's own YAML-to-schema generator, adapted into
// [rawschema.Generator] to build [schema.Node] values directly. Used for
// yaml/dict/json (JSON is a YAML subset the same parser already accepts)
// and, via a YAML re-encoding step, for csv's row/column shape.
package input
