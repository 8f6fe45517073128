package dedup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
	"github.com/koxudaxi/go-datamodel-codegen/dedup"
	"github.com/koxudaxi/go-datamodel-codegen/model"
)

func TestRunTreeScopeMovesSurvivorToSharedModule(t *testing.T) {
	registry := model.NewRegistry()

	addrA := registry.Allocate("Address", "/components/schemas/Address")
	addrA.Kind = model.KindClass
	addrA.ModulePath = "billing"
	addrA.Fields = []model.Field{{Name: "street", WireName: "street", Type: datatype.Primitive{Kind: datatype.KindString}, Required: true}}

	addrB := registry.Allocate("Address", "/components/schemas/ShippingAddress")
	addrB.Kind = model.KindClass
	addrB.ModulePath = "shipping"
	addrB.Fields = []model.Field{{Name: "street", WireName: "street", Type: datatype.Primitive{Kind: datatype.KindString}, Required: true}}

	userBilling := registry.Allocate("User", "/components/schemas/User")
	userBilling.Kind = model.KindClass
	userBilling.ModulePath = "billing"
	userBilling.Fields = []model.Field{{Name: "address", Type: datatype.ModelRef{ID: addrB.ID}}}

	merges := dedup.Run(registry, dedup.ScopeTree, "")

	require.Len(t, merges, 1)

	var mergedFrom, survivorID datatype.ModelId

	for from, to := range merges {
		mergedFrom = from
		survivorID = to
	}

	assert.Nil(t, registry.Get(mergedFrom))

	survivor := registry.Get(survivorID)
	require.NotNil(t, survivor)
	assert.Equal(t, dedup.DefaultSharedModuleName, survivor.ModulePath)

	id, ok := datatype.ModelRefTarget(userBilling.Fields[0].Type)
	require.True(t, ok)
	assert.Equal(t, survivorID, id)
}

func TestRunIsIdempotent(t *testing.T) {
	registry := model.NewRegistry()

	a := registry.Allocate("Pet", "/a")
	a.Kind = model.KindEnum
	a.Enum = &datatype.Enum{Members: []datatype.EnumMember{{Name: "DOG", Value: "dog", Type: datatype.KindString}}}

	b := registry.Allocate("Pet", "/b")
	b.Kind = model.KindEnum
	b.Enum = &datatype.Enum{Members: []datatype.EnumMember{{Name: "DOG", Value: "dog", Type: datatype.KindString}}}

	first := dedup.Run(registry, dedup.ScopeModule, "")
	second := dedup.Run(registry, dedup.ScopeModule, "")

	assert.Len(t, first, 1)
	assert.Empty(t, second)
}
