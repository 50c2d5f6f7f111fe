package rtree

// TreeError is an error type for the rtree module.
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrInvalidConfig is flagged for configurations violating
// 2 <= MaxEntries and 1 <= MinEntries <= MaxEntries/2, or carrying unknown
// options.
const ErrInvalidConfig = TreeError("rtree: invalid configuration")

// ErrResourceExhausted is flagged whenever a mutation would need more nodes
// than Config.MaxNodes allows. The tree is unchanged after such an error.
const ErrResourceExhausted = TreeError("rtree: node budget exhausted")

// ErrDimensionMismatch is flagged whenever a value's bounding box does not
// have the dimensionality of the tree.
const ErrDimensionMismatch = TreeError("rtree: dimension mismatch")

// ErrInvalidValue is flagged whenever the Translator cannot produce a valid
// bounding box for a value.
const ErrInvalidValue = TreeError("rtree: invalid value")

// ErrCorrupted is returned by Check for trees violating a structural invariant.
const ErrCorrupted = TreeError("rtree: corrupted tree")
