package modelgen

import "errors"

// ErrInvalidConfig reports a [Config] value outside its documented range
// (e.g. a target_language_version outside [MinTargetVersion,MaxTargetVersion]).
var ErrInvalidConfig = errors.New("invalid configuration")
