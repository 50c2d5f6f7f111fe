package geom

import "errors"

var (
	// ErrDimensionMismatch signals operands of different dimensionality.
	ErrDimensionMismatch = errors.New("geom: dimension mismatch")
	// ErrInvalidBox signals a box with min > max, NaN coordinates or no dimensions.
	ErrInvalidBox = errors.New("geom: invalid box")
)
