package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Box is an axis-aligned n-dimensional box, given by a [min, max] interval per
// dimension. Boxes are closed: two boxes sharing just a boundary intersect.
//
// The zero value is the empty box. It has no dimensions and acts as the neutral
// element of Union:
//
//	Box{}.Union(b) == b == b.Union(Box{})
type Box struct {
	lo, hi []float64
}

// NewBox creates a box from per-dimension minimum and maximum coordinates.
// Coordinates are copied.
func NewBox(min, max []float64) (Box, error) {
	if len(min) != len(max) {
		return Box{}, fmt.Errorf("%w: min has %d coordinates, max has %d",
			ErrDimensionMismatch, len(min), len(max))
	}
	b := Box{
		lo: append([]float64(nil), min...),
		hi: append([]float64(nil), max...),
	}
	if err := b.Validate(); err != nil {
		return Box{}, err
	}
	return b, nil
}

// Validate checks that b has at least one dimension, no NaN coordinates and
// min <= max in every dimension. Boxes from Rect or from composite literals
// in other packages are not validated on construction.
func (b Box) Validate() error {
	if len(b.lo) == 0 {
		return fmt.Errorf("%w: box needs at least one dimension", ErrInvalidBox)
	}
	if len(b.lo) != len(b.hi) {
		return fmt.Errorf("%w: min has %d coordinates, max has %d",
			ErrDimensionMismatch, len(b.lo), len(b.hi))
	}
	for i := range b.lo {
		if math.IsNaN(b.lo[i]) || math.IsNaN(b.hi[i]) {
			return fmt.Errorf("%w: NaN coordinate in dimension %d", ErrInvalidBox, i)
		}
		if b.lo[i] > b.hi[i] {
			return fmt.Errorf("%w: min %g > max %g in dimension %d",
				ErrInvalidBox, b.lo[i], b.hi[i], i)
		}
	}
	return nil
}

// Rect creates a 2-dimensional box from two corners, in any order.
func Rect(x0, y0, x1, y1 float64) Box {
	return Box{
		lo: []float64{math.Min(x0, x1), math.Min(y0, y1)},
		hi: []float64{math.Max(x0, x1), math.Max(y0, y1)},
	}
}

// Dim returns the number of dimensions, 0 for the empty box.
func (b Box) Dim() int {
	return len(b.lo)
}

// IsEmpty reports whether b is the empty box.
func (b Box) IsEmpty() bool {
	return len(b.lo) == 0
}

// Min returns the lower bound in dimension i.
func (b Box) Min(i int) float64 {
	return b.lo[i]
}

// Max returns the upper bound in dimension i.
func (b Box) Max(i int) float64 {
	return b.hi[i]
}

// Lo returns the lower corner as a point.
func (b Box) Lo() Point {
	return append(Point(nil), b.lo...)
}

// Hi returns the upper corner as a point.
func (b Box) Hi() Point {
	return append(Point(nil), b.hi...)
}

func mustMatch(a, b Box) {
	if len(a.lo) != len(b.lo) {
		panic(fmt.Sprintf("geom: dimension mismatch (%d != %d)", len(a.lo), len(b.lo)))
	}
}

// Union returns the smallest box enclosing both b and o.
//
// Union panics if both boxes are non-empty and differ in dimensionality.
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	mustMatch(b, o)
	u := Box{lo: make([]float64, len(b.lo)), hi: make([]float64, len(b.hi))}
	for i := range b.lo {
		u.lo[i] = math.Min(b.lo[i], o.lo[i])
		u.hi[i] = math.Max(b.hi[i], o.hi[i])
	}
	return u
}

// Intersects reports whether b and o share at least one point.
func (b Box) Intersects(o Box) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	mustMatch(b, o)
	for i := range b.lo {
		if b.lo[i] > o.hi[i] || o.lo[i] > b.hi[i] {
			return false
		}
	}
	return true
}

// Covers reports whether every point of o lies within b.
func (b Box) Covers(o Box) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	mustMatch(b, o)
	for i := range b.lo {
		if o.lo[i] < b.lo[i] || o.hi[i] > b.hi[i] {
			return false
		}
	}
	return true
}

// Equal reports whether b and o have identical bounds.
func (b Box) Equal(o Box) bool {
	if len(b.lo) != len(o.lo) {
		return false
	}
	for i := range b.lo {
		if b.lo[i] != o.lo[i] || b.hi[i] != o.hi[i] {
			return false
		}
	}
	return true
}

// Area returns the n-dimensional volume of b (length for 1-D, area for 2-D).
func (b Box) Area() float64 {
	if b.IsEmpty() {
		return 0
	}
	a := 1.0
	for i := range b.lo {
		e := b.hi[i] - b.lo[i]
		if e == 0 {
			return 0 // flat, even if other extents are infinite
		}
		a *= e
	}
	return a
}

// Margin returns the sum of the edge lengths of b, i.e. half the perimeter
// of a 2-D box.
func (b Box) Margin() float64 {
	var m float64
	for i := range b.lo {
		m += b.hi[i] - b.lo[i]
	}
	return m
}

// Overlap returns the volume of the intersection of b and o, 0 if they are
// disjoint.
func (b Box) Overlap(o Box) float64 {
	if !b.Intersects(o) {
		return 0
	}
	a := 1.0
	for i := range b.lo {
		e := math.Min(b.hi[i], o.hi[i]) - math.Max(b.lo[i], o.lo[i])
		if e == 0 {
			return 0
		}
		a *= e
	}
	return a
}

// Enlargement returns the increase in volume b needs to enclose o.
func (b Box) Enlargement(o Box) float64 {
	return b.Union(o).Area() - b.Area()
}

// Center returns the center point of b.
func (b Box) Center() Point {
	c := make(Point, len(b.lo))
	for i := range b.lo {
		c[i] = (b.lo[i] + b.hi[i]) / 2
	}
	return c
}

// Distance returns the minimum Euclidean distance between b and p. It is 0
// for points inside b. For every point q in b, Distance(p) <= |p - q|, which
// makes it a lower bound for everything stored under b.
func (b Box) Distance(p Point) float64 {
	if len(p) != len(b.lo) {
		panic(fmt.Sprintf("geom: dimension mismatch (%d != %d)", len(b.lo), len(p)))
	}
	var sq float64
	for i, x := range p {
		var d float64
		switch {
		case x < b.lo[i]:
			d = b.lo[i] - x
		case x > b.hi[i]:
			d = x - b.hi[i]
		}
		sq += d * d
	}
	return math.Sqrt(sq)
}

// String returns b in the form BOX(x0 y0,x1 y1).
func (b Box) String() string {
	if b.IsEmpty() {
		return "BOX EMPTY"
	}
	var sb strings.Builder
	sb.WriteString("BOX(")
	writeCoords(&sb, b.lo)
	sb.WriteByte(',')
	writeCoords(&sb, b.hi)
	sb.WriteByte(')')
	return sb.String()
}

func writeCoords(sb *strings.Builder, c []float64) {
	for i, x := range c {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
}
