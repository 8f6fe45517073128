package datatype

// RewriteModelRef returns a with every [ModelRef] whose id appears in
// rewrite replaced by the mapped id, recursively through every composite
// variant. It is the shared mechanic behind dedup's survivor rewiring
// (spec §4.6: "every ModelRef to the other is rewritten to the survivor's
// id") and root-wrapper collapse's target rename (spec §4.4 rule 6);
// both packages call this rather than re-walking the algebra themselves.
func RewriteModelRef(a DataType, rewrite map[ModelId]ModelId) DataType {
	if a == nil || len(rewrite) == 0 {
		return a
	}

	switch v := a.(type) {
	case ModelRef:
		if to, ok := rewrite[v.ID]; ok {
			return ModelRef{ID: to}
		}

		return v

	case Array:
		v.Items = RewriteModelRef(v.Items, rewrite)

		return v

	case Mapping:
		v.Key = RewriteModelRef(v.Key, rewrite)
		v.Value = RewriteModelRef(v.Value, rewrite)

		return v

	case Union:
		variants := make([]DataType, len(v.Variants))
		for i, variant := range v.Variants {
			variants[i] = RewriteModelRef(variant, rewrite)
		}

		v.Variants = variants

		if v.Discriminator != nil {
			disc := *v.Discriminator
			mapping := make(map[string]ModelId, len(disc.Mapping))

			for k, id := range disc.Mapping {
				if to, ok := rewrite[id]; ok {
					mapping[k] = to
				} else {
					mapping[k] = id
				}
			}

			disc.Mapping = mapping
			v.Discriminator = &disc
		}

		return v

	case Intersection:
		bases := make([]ModelId, len(v.Bases))
		for i, id := range v.Bases {
			if to, ok := rewrite[id]; ok {
				bases[i] = to
			} else {
				bases[i] = id
			}
		}

		v.Bases = bases

		return v

	case RootWrapper:
		v.Inner = RewriteModelRef(v.Inner, rewrite)

		return v

	case Optional:
		v.Inner = RewriteModelRef(v.Inner, rewrite)

		return v

	default:
		return a
	}
}

// ModelRefTarget reports the ModelId a points at directly, unwrapping any
// number of [Optional] layers -- used by root-wrapper collapse to detect
// the "inner is a ModelRef" case (spec §4.4 rule 6).
func ModelRefTarget(a DataType) (ModelId, bool) {
	switch v := a.(type) {
	case ModelRef:
		return v.ID, true
	case Optional:
		return ModelRefTarget(v.Inner)
	default:
		return 0, false
	}
}
