package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/depgraph"
)

func key(s string) string { return s }

func TestStableTopoSortOrdersByDependency(t *testing.T) {
	nodes := []string{"C", "A", "B"}
	edges := map[string][]string{"A": {"B"}, "B": {"C"}}

	order, cycles := depgraph.StableTopoSort(nodes, edges, key)

	require.Empty(t, cycles)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

func TestStableTopoSortBreaksTiesLexicographically(t *testing.T) {
	nodes := []string{"B", "A", "C"}

	order, cycles := depgraph.StableTopoSort(nodes, nil, key)

	require.Empty(t, cycles)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

func TestStableTopoSortFallsBackOnCycle(t *testing.T) {
	nodes := []string{"A", "B"}
	edges := map[string][]string{"A": {"B"}, "B": {"A"}}

	order, cycles := depgraph.StableTopoSort(nodes, edges, key)

	assert.Equal(t, []string{"A", "B"}, order)
	require.NotEmpty(t, cycles)
}
