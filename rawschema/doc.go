// Package rawschema infers a [schema.Node] from example data (YAML, JSON, or
// a synthesized row sequence) on a best-effort basis, structurally rather
// than from any declared schema.
//
// This backs the `json`, `yaml`, `dict`, and `csv` input kinds: none of
// those documents carry an explicit schema, so one is inferred from shape
// alone. Four principles guide the inference:
//
//  1. Fail open: additionalProperties defaults to true and nothing is
//     marked required, since a single example can never prove a field is
//     always present.
//  2. Best effort: a null or otherwise untyped value degrades to the
//     permissive "true" schema; a document that does not parse as YAML
//     fails with [ErrInvalidYAML].
//  3. Union semantics: when multiple example documents (or multiple rows
//     of the same array) disagree on a property's type, the result widens
//     to the most general type rather than picking one arbitrarily.
//  4. Structure only: there is no annotation layer here. A declared schema
//     input (JSON Schema, OpenAPI, GraphQL SDL) always takes precedence
//     over structural inference; this package only runs when no such
//     schema exists.
package rawschema
