// Package depgraph implements the dependency graph & ordering stage (C7):
// a generic stable topological sort with lexicographic tie-breaking and a
// deterministic fallback when the graph isn't a DAG, grounded directly on
// original_source's parser/_graph.py stable_toposort.
package depgraph
