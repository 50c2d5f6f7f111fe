package rtree

import (
	"iter"

	"github.com/npillmayer/rtree/geom"
	"github.com/npillmayer/rtree/internal/queue"
)

// Query returns the values matching p.
//
// The sequence is evaluated lazily, depth-first, and may be ranged over
// repeatedly. The tree must not be modified while the sequence is consumed.
// Predicates of this package with a window of a different dimension than the
// tree's select nothing.
func (t *Tree[V]) Query(p Predicate) iter.Seq[V] {
	return func(yield func(V) bool) {
		if t.root == nil || p == nil {
			return
		}
		if d := predicateDims(p); d != 0 && d != t.dims {
			return
		}
		stack := make([]treeNode[V], 1, 2*max(t.height, 1))
		stack[0] = t.root
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch n := n.(type) {
			case *leafNode[V]:
				for _, e := range n.entries {
					if p.Matches(e.box) && !yield(e.value) {
						return
					}
				}
			case *innerNode[V]:
				// pushed in reverse to visit branches in order
				for i := len(n.branches) - 1; i >= 0; i-- {
					if p.AdmitsNode(n.branches[i].box) {
						stack = append(stack, n.branches[i].child)
					}
				}
			}
		}
	}
}

// Neighbor is a result of a nearest neighbor query.
type Neighbor[V any] struct {
	Value    V
	Distance float64
}

// Nearest returns the k values closest to pt, closest first. Values at equal
// distance keep the order in which the search found them.
//
// Distances are computed by the Translator if it implements Distancer, and
// are box-to-point distances otherwise. A point of the wrong dimension, or
// k <= 0, yields nothing.
func (t *Tree[V]) Nearest(pt geom.Point, k int) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, nb := range t.NearestNeighbors(pt, k) {
			if !yield(nb.Value) {
				return
			}
		}
	}
}

// NearestNeighbors returns the k values closest to pt together with their
// distances, in the order of Nearest.
func (t *Tree[V]) NearestNeighbors(pt geom.Point, k int) []Neighbor[V] {
	if k <= 0 || t.root == nil || len(pt) != t.dims {
		return nil
	}
	distance := func(e entry[V]) float64 {
		return e.box.Distance(pt)
	}
	if d, ok := t.tr.(Distancer[V]); ok {
		distance = func(e entry[V]) float64 {
			return d.Distance(e.value, pt)
		}
	}
	nodes := queue.NewMin[treeNode[V]](t.cfg.MaxEntries * max(t.height, 1))
	best := queue.NewMax[V](k + 1)
	// worst is the k-th best distance once k candidates are known
	worst := func() (float64, bool) {
		if best.Len() < k {
			return 0, false
		}
		top, _ := best.Top()
		return top.Distance, true
	}
	nodes.Push(t.root, 0)
	for nodes.Len() > 0 {
		item, _ := nodes.Pop()
		if w, full := worst(); full && item.Distance > w {
			break
		}
		switch n := item.Value.(type) {
		case *leafNode[V]:
			for _, e := range n.entries {
				d := distance(e)
				if w, full := worst(); !full {
					best.Push(e.value, d)
				} else if d < w {
					best.Pop()
					best.Push(e.value, d)
				}
			}
		case *innerNode[V]:
			for _, br := range n.branches {
				lb := br.box.Distance(pt)
				if w, full := worst(); full && lb > w {
					continue
				}
				nodes.Push(br.child, lb)
			}
		}
	}
	result := make([]Neighbor[V], best.Len())
	for i := len(result) - 1; i >= 0; i-- {
		item, _ := best.Pop()
		result[i] = Neighbor[V]{Value: item.Value, Distance: item.Distance}
	}
	return result
}
