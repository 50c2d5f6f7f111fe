package geom

import (
	"math"
	"strings"
)

// Point is an n-dimensional coordinate.
type Point []float64

// Pt creates a point from its coordinates.
func Pt(coords ...float64) Point {
	return append(Point(nil), coords...)
}

// Dim returns the number of dimensions of p.
func (p Point) Dim() int {
	return len(p)
}

// Box returns the degenerate box containing just p.
func (p Point) Box() Box {
	return Box{
		lo: append([]float64(nil), p...),
		hi: append([]float64(nil), p...),
	}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	if len(p) != len(q) {
		panic("geom: dimension mismatch")
	}
	var sq float64
	for i := range p {
		d := p[i] - q[i]
		sq += d * d
	}
	return math.Sqrt(sq)
}

// Equal reports whether p and q have identical coordinates.
func (p Point) Equal(q Point) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func (p Point) String() string {
	var sb strings.Builder
	sb.WriteString("POINT(")
	writeCoords(&sb, p)
	sb.WriteByte(')')
	return sb.String()
}
