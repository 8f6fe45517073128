package model

import (
	"errors"
	"fmt"

	"github.com/koxudaxi/go-datamodel-codegen/datatype"
)

// ErrUnsupportedFeature reports a schema construct that cannot be mapped
// under the selected output model family (spec §7's UnsupportedFeatureError,
// e.g. multiple inheritance under TypedDict).
var ErrUnsupportedFeature = errors.New("unsupported feature for output model family")

// UnsupportedFeatureError names the offending model and the reason its
// shape can't be emitted.
type UnsupportedFeatureError struct {
	ModelID datatype.ModelId
	Path    string
	Reason  string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *UnsupportedFeatureError) Unwrap() error { return ErrUnsupportedFeature }

// CheckMultipleInheritance walks registry for [KindClass] models carrying
// more than one base under [datatype.MergeNone] (deep inheritance kept as
// Intersection.bases rather than flattened, spec §4.6's "Deep inheritance
// / mixins" note) and returns an [UnsupportedFeatureError] for the first
// one found when allowMultipleInheritance is false -- the shape target
// families without multiple inheritance (TypedDict, some dataclass
// versions) cannot represent.
func CheckMultipleInheritance(registry *Registry, allowMultipleInheritance bool) error {
	if allowMultipleInheritance {
		return nil
	}

	for _, dm := range registry.All() {
		if dm.Kind == KindClass && len(dm.Bases) > 1 && dm.MergeMode != datatype.MergeAll {
			return &UnsupportedFeatureError{
				ModelID: dm.ID,
				Path:    dm.SourcePath,
				Reason:  "multiple inheritance requires all_of_merge_mode=all under this output model family",
			}
		}
	}

	return nil
}
