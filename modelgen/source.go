package modelgen

import "github.com/koxudaxi/go-datamodel-codegen/input"

// Source is one schema document fed to a [Pipeline] run: its origin URI
// (used both as the document's fetch key and, by default, as the module
// grouping key spec §4.8 assigns from "one module per source schema
// document"), raw bytes, and input kind. Kind == "" asks the pipeline to
// auto-detect it via [input.Detect] (spec §6).
type Source struct {
	URI     string
	Content []byte
	Kind    input.Kind
}
