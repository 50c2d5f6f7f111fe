package rtree

import (
	"github.com/npillmayer/rtree/geom"
)

// treeNode is either a *leafNode or an *innerNode.
type treeNode[V any] interface {
	isLeaf() bool
	size() int
	bounds() geom.Box
}

// entry is a value stored in a leaf, together with its cached bounding box.
type entry[V any] struct {
	box   geom.Box
	value V
}

// branch links an inner node to a child; box encloses the child's subtree
// tightly.
type branch[V any] struct {
	box   geom.Box
	child treeNode[V]
}

func (l *leafNode[V]) isLeaf() bool { return true }
func (l *leafNode[V]) size() int    { return len(l.entries) }

func (l *leafNode[V]) bounds() geom.Box {
	var b geom.Box
	for _, e := range l.entries {
		b = b.Union(e.box)
	}
	return b
}

func (n *innerNode[V]) isLeaf() bool { return false }
func (n *innerNode[V]) size() int    { return len(n.branches) }

func (n *innerNode[V]) bounds() geom.Box {
	var b geom.Box
	for _, br := range n.branches {
		b = b.Union(br.box)
	}
	return b
}

func (n *innerNode[V]) setBox(i int, b geom.Box) {
	n.branches[i].box = b
}

// nodeBoxes returns the boxes of the entries of n, in entry order.
func nodeBoxes[V any](n treeNode[V]) []geom.Box {
	switch n := n.(type) {
	case *leafNode[V]:
		boxes := make([]geom.Box, len(n.entries))
		for i, e := range n.entries {
			boxes[i] = e.box
		}
		return boxes
	case *innerNode[V]:
		boxes := make([]geom.Box, len(n.branches))
		for i, br := range n.branches {
			boxes[i] = br.box
		}
		return boxes
	}
	panic("unknown tree node type")
}

// pick returns a new slice holding items[i] for every i in idx.
func pick[T any](items []T, idx []int) []T {
	picked := make([]T, len(idx))
	for k, i := range idx {
		picked[k] = items[i]
	}
	return picked
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
