package emit

import (
	"context"

	"github.com/koxudaxi/go-datamodel-codegen/model"
	"github.com/koxudaxi/go-datamodel-codegen/partition"
)

// Registry is the read-only view of the finalized model graph the core
// hands to a [Printer]: every model it names is already ordered (C7) and
// partitioned (C8); models within a module are in a single-forward-pass
// order except where a [datatype.ForwardRef] is used (spec §4.9).
type Registry struct {
	Modules []partition.Module
	// EntityRegistry resolves any ModelId a printer needs to look up
	// outside a module's own model list (e.g. a discriminator mapping
	// target that lives in another module).
	EntityRegistry *model.Registry
}

// Artifact is one emitted module: its path and the printer's byte
// output. Module paths use forward slashes and carry no
// target-language-specific extension (spec §6) until the printer/sink
// applies one.
type Artifact struct {
	ModulePath string
	Bytes      []byte
}

// Printer is the external target-language formatting/printing layer
// (spec §1, §6). The core never implements one; callers supply a
// Printer appropriate to their `output_model_type`.
type Printer interface {
	Print(ctx context.Context, reg Registry) ([]Artifact, error)
}

// Sink writes finalized artifacts somewhere (disk, an in-memory map for
// tests, a tarball writer, ...). Writing is explicitly out of the core's
// scope (spec §1); this interface exists so [Pipeline]-level callers in
// package modelgen have a uniform way to hand artifacts off without the
// core importing an I/O package itself.
type Sink interface {
	Write(ctx context.Context, artifacts []Artifact) error
}

// MemSink collects artifacts in memory, keyed by ModulePath -- useful for
// tests and for callers that want to post-process before touching disk.
type MemSink struct {
	Written map[string][]byte
}

// NewMemSink creates an empty MemSink.
func NewMemSink() *MemSink {
	return &MemSink{Written: make(map[string][]byte)}
}

func (s *MemSink) Write(_ context.Context, artifacts []Artifact) error {
	for _, a := range artifacts {
		s.Written[a.ModulePath] = a.Bytes
	}

	return nil
}
