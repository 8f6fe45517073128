// Package diag implements the diagnostics channel spec §7 requires
// alongside the artifact set: non-fatal warnings (a discriminator mapping
// gap, an unused $ref, a dropped collision) collected during a pipeline
// run without blocking it. Built directly on
// [github.com/koxudaxi/go-datamodel-codegen/log.Publisher], repurposed to
// fan out structured diagnostic records instead of raw log bytes.
package diag
