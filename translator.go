package rtree

import (
	"fmt"

	"github.com/npillmayer/rtree/geom"
)

// Translator maps values to their bounding boxes and decides value identity.
//
// Bounds must be deterministic: a value has to report the same box for as long
// as it is stored in a tree. Equal is used by Remove to find the value to
// delete among the entries with a matching box.
type Translator[V any] interface {
	Bounds(v V) (geom.Box, error)
	Equal(a, b V) bool
}

// Distancer may additionally be implemented by a Translator to give nearest
// neighbor queries an exact value-to-point distance. Without it, the distance
// to the bounding box is used.
//
// Distance must never be smaller than the distance between p and the value's
// bounding box.
type Distancer[V any] interface {
	Distance(v V, p geom.Point) float64
}

// BoxTranslator indexes boxes by themselves.
type BoxTranslator struct{}

// Bounds returns b. Empty boxes are rejected.
func (BoxTranslator) Bounds(b geom.Box) (geom.Box, error) {
	if b.IsEmpty() {
		return geom.Box{}, fmt.Errorf("%w: empty box", ErrInvalidValue)
	}
	return b, nil
}

// Equal compares boxes by coordinates.
func (BoxTranslator) Equal(a, b geom.Box) bool {
	return a.Equal(b)
}

// PointTranslator indexes points.
type PointTranslator struct{}

// Bounds returns the degenerate box around p.
func (PointTranslator) Bounds(p geom.Point) (geom.Box, error) {
	b, err := geom.NewBox(p, p)
	if err != nil {
		return geom.Box{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return b, nil
}

// Equal compares points by coordinates.
func (PointTranslator) Equal(a, b geom.Point) bool {
	return a.Equal(b)
}

// Distance is the Euclidean distance between v and p.
func (PointTranslator) Distance(v geom.Point, p geom.Point) float64 {
	return v.Distance(p)
}

// Funcs adapts a pair of functions to a Translator. A nil EqualFunc treats
// no two values as equal, so Remove will find nothing.
type Funcs[V any] struct {
	BoundsFunc func(V) (geom.Box, error)
	EqualFunc  func(a, b V) bool
}

// Bounds calls BoundsFunc.
func (f Funcs[V]) Bounds(v V) (geom.Box, error) {
	if f.BoundsFunc == nil {
		return geom.Box{}, fmt.Errorf("%w: no bounds function", ErrInvalidValue)
	}
	return f.BoundsFunc(v)
}

// Equal calls EqualFunc.
func (f Funcs[V]) Equal(a, b V) bool {
	if f.EqualFunc == nil {
		return false
	}
	return f.EqualFunc(a, b)
}

var (
	_ Translator[geom.Box]   = BoxTranslator{}
	_ Translator[geom.Point] = PointTranslator{}
	_ Distancer[geom.Point]  = PointTranslator{}
)
