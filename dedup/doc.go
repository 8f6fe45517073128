// Package dedup implements the deduplication engine (C6): it detects
// structurally identical models within a configured reuse scope and
// rewires every [datatype.ModelRef] pointing at a merged-away model onto
// its survivor, to a fixed point (spec §4.6).
package dedup
