// Package resolve implements the schema resolver (C2): it transforms a
// RawSchema fragment into a [Normalized] node whose classification matches
// exactly one DataType kind, applying the normalization rules of spec §4.2
// -- nullable collapsing, allOf merging, anyOf/oneOf flattening,
// discriminator detection, composite-type widening, and
// additionalProperties normalization.
//
// The resolver never expands a $ref target; C2 replaces a $ref node with a
// reference to its [schema.SchemaId] without walking into it, so cyclic
// schemas resolve without recursing forever. Expansion is deferred to the
// model builder (C4), which tracks per-node visitation state and can
// therefore detect and break cycles explicitly.
package resolve
