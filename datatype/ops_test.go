package datatype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
)

func TestOptionalizeIdempotent(t *testing.T) {
	str := datatype.Primitive{Kind: datatype.KindString}

	once := datatype.Optionalize(str, datatype.OriginExplicitNull)
	twice := datatype.Optionalize(once, datatype.OriginAnyOfWithNull)

	assert.Equal(t, once, twice)
}

func TestUnifySameTypeIsIdentity(t *testing.T) {
	str := datatype.Primitive{Kind: datatype.KindString}

	assert.True(t, datatype.Equal(str, datatype.Unify(str, str)))
}

func TestUnifyOptionalDistributes(t *testing.T) {
	str := datatype.Primitive{Kind: datatype.KindString}
	opt := datatype.Optional{Inner: str, Origin: datatype.OriginNotRequired}
	other := datatype.Primitive{Kind: datatype.KindInt}

	got := datatype.Unify(opt, other)

	wrapped, ok := got.(datatype.Optional)
	assert.True(t, ok)
	assert.Equal(t, datatype.OriginNotRequired, wrapped.Origin)

	union, ok := wrapped.Inner.(datatype.Union)
	assert.True(t, ok)
	assert.Len(t, union.Variants, 2)
}

func TestWidenCompositeType(t *testing.T) {
	got := datatype.Widen(datatype.KindString, datatype.KindInt)

	union, ok := got.(datatype.Union)
	assert.True(t, ok)
	assert.Equal(t, datatype.UnionModeSmart, union.Mode)
	assert.Len(t, union.Variants, 2)
}

func TestConstrainMergesTighterBounds(t *testing.T) {
	one := 1.0
	ten := 10.0

	a := datatype.Primitive{Kind: datatype.KindInt, Constraints: datatype.Constraints{Minimum: &one}}
	got := datatype.Constrain(a, datatype.Constraints{Maximum: &ten})

	p, ok := got.(datatype.Primitive)
	assert.True(t, ok)
	assert.Equal(t, &one, p.Constraints.Minimum)
	assert.Equal(t, &ten, p.Constraints.Maximum)
}

func TestIntersectNeverInlinesFields(t *testing.T) {
	a := datatype.ModelRef{ID: 1}
	b := datatype.ModelRef{ID: 2}

	got := datatype.Intersect(a, b, datatype.MergeConstraints)

	inter, ok := got.(datatype.Intersection)
	assert.True(t, ok)
	assert.Equal(t, []datatype.ModelId{1, 2}, inter.Bases)
}
