package rtree

import (
	"errors"

	"github.com/npillmayer/rtree/geom"
)

// Remove deletes one value equal to v, as decided by the Translator's Equal.
// It reports whether a value has been found. Removing a value which is not in
// the tree is not an error.
//
// Nodes falling below the minimum fill are dissolved, and the values they
// held are inserted anew.
func (t *Tree[V]) Remove(v V) (bool, error) {
	if t.root == nil {
		return false, nil
	}
	box, err := t.boundsOf(v)
	if errors.Is(err, ErrDimensionMismatch) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	path := t.findEntry(box, v)
	if path == nil {
		return false, nil
	}
	err = t.mutate(func() error {
		return t.removeAt(path)
	})
	return err == nil, err
}

// RemoveAll deletes every value equal to v and returns their number.
func (t *Tree[V]) RemoveAll(v V) (int, error) {
	count := 0
	for {
		found, err := t.Remove(v)
		if err != nil || !found {
			return count, err
		}
		count++
	}
}

// step is a position on the path from the root to a leaf entry: the node and
// the index of the branch (or entry, at the leaf) taken.
type step[V any] struct {
	node  treeNode[V]
	index int
}

// findEntry searches for v, descending only into branches covering box. It
// returns the path to the first match, or nil.
func (t *Tree[V]) findEntry(box geom.Box, v V) []step[V] {
	path := make([]step[V], 0, t.height)
	var find func(n treeNode[V]) bool
	find = func(n treeNode[V]) bool {
		switch n := n.(type) {
		case *leafNode[V]:
			for i, e := range n.entries {
				if t.tr.Equal(e.value, v) {
					path = append(path, step[V]{node: n, index: i})
					return true
				}
			}
		case *innerNode[V]:
			for i, br := range n.branches {
				if !br.box.Covers(box) {
					continue
				}
				path = append(path, step[V]{node: n, index: i})
				if find(br.child) {
					return true
				}
				path = path[:len(path)-1]
			}
		}
		return false
	}
	if !find(t.root) {
		return nil
	}
	return path
}

// removeAt deletes the leaf entry at the end of path and condenses the tree.
func (t *Tree[V]) removeAt(path []step[V]) error {
	last := path[len(path)-1]
	leaf := last.node.(*leafNode[V])
	t.touchLeaf(leaf)
	leaf.removeAt(last.index)
	t.size--

	var orphans []entry[V]
	for i := len(path) - 1; i > 0; i-- {
		n := path[i].node
		parent := path[i-1].node.(*innerNode[V])
		slot := path[i-1].index
		t.touchInner(parent)
		if n.size() >= t.cfg.MinEntries {
			parent.setBox(slot, n.bounds())
			continue
		}
		orphans = collectEntries[V](n, orphans)
		parent.removeAt(slot)
		t.discardSubtree(n)
		t.stats.CondensedNodes++
		tracer().Debugf("rtree: condensed under-full node on level %d", len(path)-1-i)
	}
	t.shrinkRoot()
	for _, e := range orphans {
		if err := t.insertEntry(e); err != nil {
			return err
		}
	}
	return nil
}

// shrinkRoot removes an empty leaf root and collapses inner roots with a
// single child.
func (t *Tree[V]) shrinkRoot() {
	for {
		switch root := t.root.(type) {
		case *leafNode[V]:
			if root.size() == 0 {
				t.discard(root)
				t.root, t.height = nil, 0
			}
			return
		case *innerNode[V]:
			assert(root.size() > 0, "shrinkRoot: inner root without children")
			if root.size() > 1 {
				return
			}
			t.root = root.branches[0].child
			t.height--
			t.discard(root)
			t.stats.RootShrinks++
			tracer().Debugf("rtree: root collapsed, height is now %d", t.height)
		default:
			return
		}
	}
}

// collectEntries appends all leaf entries below n to entries.
func collectEntries[V any](n treeNode[V], entries []entry[V]) []entry[V] {
	stack := []treeNode[V]{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := n.(type) {
		case *leafNode[V]:
			entries = append(entries, n.entries...)
		case *innerNode[V]:
			for _, br := range n.branches {
				stack = append(stack, br.child)
			}
		}
	}
	return entries
}
