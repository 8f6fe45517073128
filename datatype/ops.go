package datatype

import "reflect"

// Unify combines two DataTypes that describe the same position in the
// schema (e.g. two allOf siblings' view of a field, or two union variants
// the normalizer decided were equivalent). Per spec §4.3:
//
//	unify(Optional(T), U) = Optional(unify(T, U))
//	unify(T, T)           = T
func Unify(a, b DataType) DataType {
	if opt, ok := a.(Optional); ok {
		return Optional{Inner: Unify(opt.Inner, b), Origin: opt.Origin}
	}

	if opt, ok := b.(Optional); ok {
		return Optional{Inner: Unify(a, opt.Inner), Origin: opt.Origin}
	}

	if Equal(a, b) {
		return a
	}

	switch av := a.(type) {
	case Primitive:
		if bv, ok := b.(Primitive); ok && av.Kind == bv.Kind {
			return Primitive{Kind: widenPrimitiveKind(av.Kind, bv.Kind), Constraints: av.Constraints.Merge(bv.Constraints)}
		}
	case Union:
		return Union{Variants: appendVariant(av.Variants, b), Discriminator: av.Discriminator, Mode: av.Mode}
	}

	if bv, ok := b.(Union); ok {
		return Union{Variants: appendVariant(bv.Variants, a), Discriminator: bv.Discriminator, Mode: bv.Mode}
	}

	return Union{Variants: []DataType{a, b}, Mode: UnionModeSmart}
}

func appendVariant(variants []DataType, v DataType) []DataType {
	for _, existing := range variants {
		if Equal(existing, v) {
			return variants
		}
	}

	out := make([]DataType, len(variants), len(variants)+1)
	copy(out, variants)

	return append(out, v)
}

// Intersect combines two class-shaped DataTypes (ModelRef, or an existing
// Intersection) into an [Intersection]. It never inlines fields -- that is
// the model builder's job (spec §4.3).
func Intersect(a, b DataType, mode IntersectionMergeMode) DataType {
	var bases []ModelId

	bases = append(bases, intersectionBases(a)...)
	bases = append(bases, intersectionBases(b)...)

	return Intersection{Bases: bases, MergeMode: mode}
}

func intersectionBases(d DataType) []ModelId {
	switch v := d.(type) {
	case ModelRef:
		return []ModelId{v.ID}
	case Intersection:
		return v.Bases
	default:
		return nil
	}
}

// Optionalize wraps a in [Optional], idempotently: Optional{Optional{T}} ==
// Optional{T} (spec §8's invariant). The outermost, already-set origin
// wins when a is already Optional.
func Optionalize(a DataType, origin NullableOrigin) DataType {
	if opt, ok := a.(Optional); ok {
		return opt
	}

	return Optional{Inner: a, Origin: origin}
}

// Constrain attaches (conjunctively merges) c onto the DataType that
// carries a constraint side-structure. Container variants without a
// carrying side-structure (Array, Mapping, Union, ...) are returned
// unchanged; callers needing e.g. array-level min/max items should set
// those fields directly on the [Array] value.
func Constrain(a DataType, c Constraints) DataType {
	switch v := a.(type) {
	case Primitive:
		v.Constraints = v.Constraints.Merge(c)

		return v
	case Enum:
		v.Constraints = v.Constraints.Merge(c)

		return v
	case Optional:
		return Optional{Inner: Constrain(v.Inner, c), Origin: v.Origin}
	default:
		return a
	}
}

// Widen composes two primitive kinds arising from a `type: [...]`
// composite keyword (spec §4.2 rule 5) into a smart union, widening
// integer+number-like pairs are left to the caller's discretion -- the
// algebra always produces a Union here since the spec calls for
// `type: ["string","integer"]` to become `Union[str,int]` rather than a
// single widened primitive.
func Widen(kinds ...PrimitiveKind) DataType {
	seen := make(map[PrimitiveKind]bool, len(kinds))

	var variants []DataType

	for _, k := range kinds {
		if seen[k] {
			continue
		}

		seen[k] = true

		variants = append(variants, Primitive{Kind: k})
	}

	if len(variants) == 1 {
		return variants[0]
	}

	return Union{Variants: variants, Mode: UnionModeSmart}
}

func widenPrimitiveKind(a, b PrimitiveKind) PrimitiveKind {
	if a == b {
		return a
	}

	return KindAny
}

// Equal reports structural equality: equal kind and equal children,
// recursively, with constraints compared by value. Union equality is
// order-sensitive unless Mode is [UnionModeSmart], in which case variant
// sets are compared unordered.
func Equal(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)

		return ok && av.Kind == bv.Kind && reflect.DeepEqual(av.Constraints, bv.Constraints)
	case Literal:
		bv, ok := b.(Literal)

		return ok && reflect.DeepEqual(av.Value, bv.Value)
	case Enum:
		bv, ok := b.(Enum)

		return ok && reflect.DeepEqual(av.Members, bv.Members) && reflect.DeepEqual(av.Constraints, bv.Constraints)
	case Array:
		bv, ok := b.(Array)

		return ok && Equal(av.Items, bv.Items) &&
			intPtrEqual(av.MinItems, bv.MinItems) &&
			intPtrEqual(av.MaxItems, bv.MaxItems) &&
			av.UniqueItems == bv.UniqueItems
	case Mapping:
		bv, ok := b.(Mapping)

		return ok && Equal(av.Key, bv.Key) && Equal(av.Value, bv.Value) && av.Policy == bv.Policy
	case Union:
		bv, ok := b.(Union)
		if !ok || len(av.Variants) != len(bv.Variants) {
			return false
		}

		if av.Mode == UnionModeSmart && bv.Mode == UnionModeSmart {
			return sameVariantSet(av.Variants, bv.Variants)
		}

		for i := range av.Variants {
			if !Equal(av.Variants[i], bv.Variants[i]) {
				return false
			}
		}

		return true
	case Intersection:
		bv, ok := b.(Intersection)

		return ok && reflect.DeepEqual(av.Bases, bv.Bases) && av.MergeMode == bv.MergeMode
	case ModelRef:
		bv, ok := b.(ModelRef)

		return ok && av.ID == bv.ID
	case RootWrapper:
		bv, ok := b.(RootWrapper)

		return ok && Equal(av.Inner, bv.Inner)
	case Optional:
		bv, ok := b.(Optional)

		return ok && Equal(av.Inner, bv.Inner)
	case ForwardRef:
		bv, ok := b.(ForwardRef)

		return ok && av.Name == bv.Name
	default:
		return false
	}
}

func sameVariantSet(a, b []DataType) bool {
	used := make([]bool, len(b))

	for _, av := range a {
		found := false

		for i, bv := range b {
			if used[i] {
				continue
			}

			if Equal(av, bv) {
				used[i] = true
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
