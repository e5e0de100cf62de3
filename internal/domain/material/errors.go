package material

import "errors"

var (
	// ErrMissingName indicates the required material name is missing.
	ErrMissingName = errors.New("material name required")
)
