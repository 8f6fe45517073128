// Package model implements the model builder (C4): it walks a tree of
// [resolve.Normalized] nodes and produces a graph of [DataModel] values
// plus [datatype.DataType] values for every inline (unnamed) shape,
// expanding $ref targets on demand and breaking reference cycles by
// returning a [datatype.ModelRef] for any schema already being built.
//
// Builder assigns every named shape (object, enum, titled union/scalar/
// array wrapped in a root-wrapper model, or an untitled $ref-reached
// scalar/array wrapped in an alias model) a fresh
// [datatype.ModelId] the first time it is reached; naming (C5),
// deduplication (C6), and ordering (C7) all operate on the resulting graph
// without needing to re-walk schema nodes.
package model
