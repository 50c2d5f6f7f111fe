package rtree

import "fmt"

// Check validates structural tree invariants: leaves at uniform depth, node
// fill within [MinEntries, MaxEntries] (the root excepted), branch boxes
// enclosing their subtrees tightly, and consistent counters.
//
// Check is meant for tests and debugging.
func (t *Tree[V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrCorrupted)
	}
	if t.root == nil {
		if t.height != 0 || t.size != 0 {
			return fmt.Errorf("%w: empty tree must have height=0 and size=0", ErrCorrupted)
		}
		if t.alloc.live != 0 {
			return fmt.Errorf("%w: empty tree holds %d nodes", ErrCorrupted, t.alloc.live)
		}
		return nil
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrCorrupted)
	}
	s, err := t.checkNode(t.root, true)
	if err != nil {
		return err
	}
	if s.height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrCorrupted, s.height, t.height)
	}
	if s.values != t.size {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrCorrupted, s.values, t.size)
	}
	if s.nodes != t.alloc.live {
		return fmt.Errorf("%w: %d nodes reachable, %d allocated", ErrCorrupted, s.nodes, t.alloc.live)
	}
	return nil
}

type subtreeShape struct {
	values, height, nodes int
}

func (t *Tree[V]) checkNode(n treeNode[V], isRoot bool) (subtreeShape, error) {
	if n == nil {
		return subtreeShape{}, fmt.Errorf("%w: nil node", ErrCorrupted)
	}
	if err := t.checkFill(n.size(), isRoot); err != nil {
		return subtreeShape{}, err
	}
	if leaf, ok := n.(*leafNode[V]); ok {
		if err := t.checkBackendLeafInvariants(leaf); err != nil {
			return subtreeShape{}, err
		}
		for i, e := range leaf.entries {
			if e.box.Dim() != t.dims {
				return subtreeShape{}, fmt.Errorf("%w: entry %d has %d dimensions, tree has %d",
					ErrCorrupted, i, e.box.Dim(), t.dims)
			}
		}
		return subtreeShape{values: len(leaf.entries), height: 1, nodes: 1}, nil
	}
	inner := n.(*innerNode[V])
	if err := t.checkBackendInnerInvariants(inner); err != nil {
		return subtreeShape{}, err
	}
	if isRoot && len(inner.branches) < 2 {
		return subtreeShape{}, fmt.Errorf("%w: inner root has %d children", ErrCorrupted, len(inner.branches))
	}
	shape := subtreeShape{nodes: 1}
	childHeight := 0
	for i, br := range inner.branches {
		if br.child == nil {
			return subtreeShape{}, fmt.Errorf("%w: nil child at index %d", ErrCorrupted, i)
		}
		s, err := t.checkNode(br.child, false)
		if err != nil {
			return subtreeShape{}, err
		}
		if i == 0 {
			childHeight = s.height
		} else if s.height != childHeight {
			return subtreeShape{}, fmt.Errorf("%w: non-uniform subtree heights", ErrCorrupted)
		}
		if cover := br.child.bounds(); !br.box.Equal(cover) {
			return subtreeShape{}, fmt.Errorf("%w: branch %d has box %v, subtree covers %v",
				ErrCorrupted, i, br.box, cover)
		}
		shape.values += s.values
		shape.nodes += s.nodes
	}
	shape.height = childHeight + 1
	return shape, nil
}

func (t *Tree[V]) checkFill(size int, isRoot bool) error {
	if size > t.cfg.MaxEntries {
		return fmt.Errorf("%w: node holds %d entries, maximum is %d", ErrCorrupted, size, t.cfg.MaxEntries)
	}
	if isRoot {
		if size == 0 {
			return fmt.Errorf("%w: empty root node", ErrCorrupted)
		}
		return nil
	}
	if size < t.cfg.MinEntries {
		return fmt.Errorf("%w: node holds %d entries, minimum is %d", ErrCorrupted, size, t.cfg.MinEntries)
	}
	return nil
}
