package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/model"
)

// TestOrderBreaksCircularReference completes spec §8 scenario 1: A.b stays
// a direct ModelRef (A sorts first lexicographically), B.a becomes a
// ForwardRef{A}.
func TestOrderBreaksCircularReference(t *testing.T) {
	registry := model.NewRegistry()

	a := registry.Allocate("A", "/$defs/A")
	a.Kind = model.KindClass

	b := registry.Allocate("B", "/$defs/B")
	b.Kind = model.KindClass

	a.Fields = []model.Field{{Name: "b", WireName: "b", Type: datatype.ModelRef{ID: b.ID}, Required: true}}
	b.Fields = []model.Field{{Name: "a", WireName: "a", Type: datatype.ModelRef{ID: a.ID}, Required: true}}

	order := model.Order(registry)

	require.Len(t, order, 2)
	assert.Equal(t, "A", order[0].Name)
	assert.Equal(t, "B", order[1].Name)

	_, aIsRef := a.Fields[0].Type.(datatype.ModelRef)
	assert.True(t, aIsRef, "A.b should remain a direct ModelRef")

	fwd, bIsForward := b.Fields[0].Type.(datatype.ForwardRef)
	require.True(t, bIsForward, "B.a should become a ForwardRef")
	assert.Equal(t, "A", fwd.Name)
}
