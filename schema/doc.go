// Package schema implements the reference table (C1): a lazy, cycle-tolerant
// mapping from (document URI, JSON pointer) to raw schema fragment.
//
// A [Table] owns every fragment reached during a run. Fragments are
// fetched at most once per URI and interned at most once per (URI,
// pointer) pair; a [SchemaId] is a stable, comparable handle onto a
// fragment for the lifetime of the table. The table never removes or
// rewrites an entry once inserted (see spec §5's monotonic shared-resource
// policy), so identifiers handed out by [Table.Intern] stay valid for the
// life of the pipeline run that created the table.
package schema
