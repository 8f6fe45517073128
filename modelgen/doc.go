// Package modelgen wires the core pipeline
// (schema -> resolve -> model -> naming -> dedup -> depgraph -> partition
// -> emit) into a single `Pipeline`, the Go-native analogue of the
// original implementation's top-level `generate()` entry point. The core
// stays a pure function of (schema, config) -> artifacts (spec §6); file
// and network I/O to obtain schema bytes, and turning the finalized
// module graph into target-language source bytes, are both left to an
// external [emit.Printer] and the caller's own loader, exactly as
// spec.md §1 scopes them out.
package modelgen
