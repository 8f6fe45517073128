// Package emit defines the narrow emission interface (C9) the core hands
// its finalized model graph to. The printer that turns [Module]s into
// target-language source bytes is an external collaborator (spec §1, §6);
// this package only defines the contract and a [Sink] for writing the
// result, mirroring the teacher's Generate()-then-caller-writes pattern
// (cmd/magicschema/main.go's run marshals then writes via
// os.WriteFile/stdout), generalized to multiple modules.
package emit
