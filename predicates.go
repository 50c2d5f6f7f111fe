package rtree

import "github.com/npillmayer/rtree/geom"

// Predicate selects values by their bounding boxes.
//
// AdmitsNode is asked for the box of a subtree and must return true whenever
// some box enclosed by it could match. Matches decides for a single value's
// box.
type Predicate interface {
	AdmitsNode(b geom.Box) bool
	Matches(b geom.Box) bool
}

// dimensioned is implemented by the predicates of this package. dims returns
// the dimension of the query window, 0 if the predicate fits any dimension
// and -1 if it combines windows of different dimensions.
type dimensioned interface {
	dims() int
}

// predicateDims returns the dimension p requires, 0 for any.
func predicateDims(p Predicate) int {
	if d, ok := p.(dimensioned); ok {
		return d.dims()
	}
	return 0
}

// commonDims merges the dimensions of the predicates in ps.
func commonDims(ps []Predicate) int {
	dims := 0
	for _, p := range ps {
		switch d := predicateDims(p); {
		case d < 0:
			return -1
		case d == 0:
		case dims == 0:
			dims = d
		case d != dims:
			return -1
		}
	}
	return dims
}

type everything struct{}

func (everything) AdmitsNode(geom.Box) bool { return true }
func (everything) Matches(geom.Box) bool    { return true }

type intersects struct{ w geom.Box }

// Intersects selects values whose box shares at least one point with w.
func Intersects(w geom.Box) Predicate { return intersects{w} }

func (p intersects) dims() int                  { return p.w.Dim() }
func (p intersects) AdmitsNode(b geom.Box) bool { return b.Intersects(p.w) }
func (p intersects) Matches(b geom.Box) bool    { return b.Intersects(p.w) }

type coveredBy struct{ w geom.Box }

// CoveredBy selects values whose box lies completely within w.
func CoveredBy(w geom.Box) Predicate { return coveredBy{w} }

func (p coveredBy) dims() int                  { return p.w.Dim() }
func (p coveredBy) AdmitsNode(b geom.Box) bool { return b.Intersects(p.w) }
func (p coveredBy) Matches(b geom.Box) bool    { return p.w.Covers(b) }

type covers struct{ w geom.Box }

// Covers selects values whose box contains w.
func Covers(w geom.Box) Predicate { return covers{w} }

func (p covers) dims() int                  { return p.w.Dim() }
func (p covers) AdmitsNode(b geom.Box) bool { return b.Covers(p.w) }
func (p covers) Matches(b geom.Box) bool    { return b.Covers(p.w) }

type disjoint struct{ w geom.Box }

// Disjoint selects values whose box has no point in common with w.
func Disjoint(w geom.Box) Predicate { return disjoint{w} }

func (p disjoint) dims() int { return p.w.Dim() }

// A subtree completely inside w cannot hold a disjoint box.
func (p disjoint) AdmitsNode(b geom.Box) bool { return !p.w.Covers(b) }
func (p disjoint) Matches(b geom.Box) bool    { return !b.Intersects(p.w) }

type overlaps struct{ w geom.Box }

// Overlaps selects values whose box intersects w while neither box contains
// the other.
func Overlaps(w geom.Box) Predicate { return overlaps{w} }

func (p overlaps) dims() int                  { return p.w.Dim() }
func (p overlaps) AdmitsNode(b geom.Box) bool { return b.Intersects(p.w) }

func (p overlaps) Matches(b geom.Box) bool {
	return b.Intersects(p.w) && !b.Covers(p.w) && !p.w.Covers(b)
}

type not struct{ p Predicate }

// Not negates p. It cannot prune subtrees.
func Not(p Predicate) Predicate { return not{p} }

func (n not) dims() int                { return predicateDims(n.p) }
func (n not) AdmitsNode(geom.Box) bool { return true }
func (n not) Matches(b geom.Box) bool  { return !n.p.Matches(b) }

type and []Predicate

// And selects values matching all of ps. And() selects everything.
func And(ps ...Predicate) Predicate { return and(ps) }

func (a and) dims() int { return commonDims(a) }

func (a and) AdmitsNode(b geom.Box) bool {
	for _, p := range a {
		if !p.AdmitsNode(b) {
			return false
		}
	}
	return true
}

func (a and) Matches(b geom.Box) bool {
	for _, p := range a {
		if !p.Matches(b) {
			return false
		}
	}
	return true
}

type or []Predicate

// Or selects values matching any of ps. Or() selects nothing.
func Or(ps ...Predicate) Predicate { return or(ps) }

func (o or) dims() int { return commonDims(o) }

func (o or) AdmitsNode(b geom.Box) bool {
	for _, p := range o {
		if p.AdmitsNode(b) {
			return true
		}
	}
	return false
}

func (o or) Matches(b geom.Box) bool {
	for _, p := range o {
		if p.Matches(b) {
			return true
		}
	}
	return false
}
