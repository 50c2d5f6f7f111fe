package rtree

import (
	"cmp"
	"slices"

	"github.com/npillmayer/rtree/geom"
	"github.com/npillmayer/rtree/split"
)

// Insert adds v to the tree. The tree is unchanged if an error is returned.
//
// Values are not deduplicated: inserting a value twice stores it twice.
func (t *Tree[V]) Insert(v V) error {
	box, err := t.boundsOf(v)
	if err != nil {
		return err
	}
	return t.mutate(func() error {
		if t.dims == 0 {
			t.dims = box.Dim()
		}
		if err := t.insertEntry(entry[V]{box: box, value: v}); err != nil {
			return err
		}
		t.size++
		return nil
	})
}

// insertion is the state of a single top-level insertion, including the
// entries waiting for forced reinsertion.
type insertion[V any] struct {
	reinserted map[int]bool // levels which already had a forced reinsertion
	pending    []pending[V]
}

// pending is an entry to insert at a level, counted from the leaves (0).
// Entries on level 0 are values, all others are branches.
type pending[V any] struct {
	level  int
	entry  entry[V]
	branch branch[V]
}

func (p pending[V]) box() geom.Box {
	if p.level == 0 {
		return p.entry.box
	}
	return p.branch.box
}

// insertEntry inserts a leaf entry and everything the insertion displaces.
// It does not change the element count.
func (t *Tree[V]) insertEntry(e entry[V]) error {
	ins := &insertion[V]{
		reinserted: make(map[int]bool),
		pending:    []pending[V]{{entry: e}},
	}
	for len(ins.pending) > 0 {
		p := ins.pending[0]
		ins.pending = ins.pending[1:]
		if err := t.insertAt(ins, p); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree[V]) insertAt(ins *insertion[V], p pending[V]) error {
	if t.root == nil {
		assert(p.level == 0, "insertAt: branch insertion into empty tree")
		leaf, err := t.newLeaf()
		if err != nil {
			return err
		}
		leaf.add(p.entry)
		t.root, t.height = leaf, 1
		return nil
	}
	assert(p.level < t.height, "insertAt: level above root")
	sibling, err := t.insertNode(ins, t.root, t.height-1, p)
	if err != nil || sibling == nil {
		return err
	}
	return t.growRoot(sibling)
}

// growRoot installs a new root above the old root and its split sibling.
func (t *Tree[V]) growRoot(sibling treeNode[V]) error {
	root, err := t.newInner()
	if err != nil {
		return err
	}
	root.add(branch[V]{box: t.root.bounds(), child: t.root})
	root.add(branch[V]{box: sibling.bounds(), child: sibling})
	t.root = root
	t.height++
	t.stats.RootGrowths++
	tracer().Debugf("rtree: root split, height is now %d", t.height)
	return nil
}

// insertNode inserts p into the subtree n at the given level and returns a
// new sibling of n if n had to be split.
func (t *Tree[V]) insertNode(ins *insertion[V], n treeNode[V], level int, p pending[V]) (treeNode[V], error) {
	if level == p.level {
		switch n := n.(type) {
		case *leafNode[V]:
			t.touchLeaf(n)
			n.add(p.entry)
		case *innerNode[V]:
			t.touchInner(n)
			n.add(p.branch)
		}
		return t.overflow(ins, n, level)
	}
	inner, ok := n.(*innerNode[V])
	assert(ok, "insertNode: reached a leaf above target level")
	i := t.chooseSubtree(inner, p.box(), level)
	child := inner.branches[i].child
	sibling, err := t.insertNode(ins, child, level-1, p)
	if err != nil {
		return nil, err
	}
	t.touchInner(inner)
	inner.setBox(i, child.bounds())
	if sibling != nil {
		inner.add(branch[V]{box: sibling.bounds(), child: sibling})
	}
	return t.overflow(ins, inner, level)
}

// overflow treats a node holding more than MaxEntries entries, either by
// forced reinsertion or by splitting it. It returns the split sibling, if any.
func (t *Tree[V]) overflow(ins *insertion[V], n treeNode[V], level int) (treeNode[V], error) {
	if n.size() <= t.cfg.MaxEntries {
		return nil, nil
	}
	if n != t.root && !ins.reinserted[level] {
		if count := t.cfg.reinsertCount(); count > 0 {
			ins.reinserted[level] = true
			t.reinsert(ins, n, level, count)
			return nil, nil
		}
	}
	return t.splitNode(n)
}

// --- Choose subtree --------------------------------------------------------

// cost describes the effect of adding a box to a branch. Costs are compared
// field by field; the first branch with minimal cost wins.
type cost struct {
	overlap     float64 // overlap enlargement, R* at the level above the leaves only
	enlargement float64
	margin      float64 // margin enlargement, decides for degenerate boxes
	area        float64 // area after enlargement
	entries     int
}

func (c cost) compare(o cost) int {
	if r := cmp.Compare(c.overlap, o.overlap); r != 0 {
		return r
	}
	if r := cmp.Compare(c.enlargement, o.enlargement); r != 0 {
		return r
	}
	if r := cmp.Compare(c.margin, o.margin); r != 0 {
		return r
	}
	if r := cmp.Compare(c.area, o.area); r != 0 {
		return r
	}
	return cmp.Compare(c.entries, o.entries)
}

// chooseSubtree selects the branch of n (living at level) to descend into
// when inserting box.
func (t *Tree[V]) chooseSubtree(n *innerNode[V], box geom.Box, level int) int {
	withOverlap := t.cfg.Split == split.Topological && level == 1
	best := -1
	var bestCost cost
	for i, br := range n.branches {
		enlarged := br.box.Union(box)
		c := cost{
			enlargement: enlarged.Area() - br.box.Area(),
			margin:      enlarged.Margin() - br.box.Margin(),
			area:        enlarged.Area(),
			entries:     br.child.size(),
		}
		if withOverlap {
			c.overlap = overlapEnlargement(n.branches, i, enlarged)
		}
		if best < 0 || c.compare(bestCost) < 0 {
			best, bestCost = i, c
		}
	}
	return best
}

// overlapEnlargement is the growth of the overlap between branch i and its
// siblings if branch i grew to enlarged.
func overlapEnlargement[V any](branches []branch[V], i int, enlarged geom.Box) float64 {
	var before, after float64
	for j, br := range branches {
		if j == i {
			continue
		}
		before += branches[i].box.Overlap(br.box)
		after += enlarged.Overlap(br.box)
	}
	return after - before
}

// --- Split -----------------------------------------------------------------

// splitNode distributes the entries of an overflowing node between the node
// and a new sibling, which is returned.
func (t *Tree[V]) splitNode(n treeNode[V]) (treeNode[V], error) {
	a, b := split.Partition(t.cfg.Split, nodeBoxes[V](n), t.cfg.MinEntries)
	var sibling treeNode[V]
	switch n := n.(type) {
	case *leafNode[V]:
		leaf, err := t.newLeaf()
		if err != nil {
			return nil, err
		}
		keep, move := pick(n.entries, a), pick(n.entries, b)
		t.touchLeaf(n)
		n.setEntries(keep)
		leaf.setEntries(move)
		sibling = leaf
	case *innerNode[V]:
		inner, err := t.newInner()
		if err != nil {
			return nil, err
		}
		keep, move := pick(n.branches, a), pick(n.branches, b)
		t.touchInner(n)
		n.setBranches(keep)
		inner.setBranches(move)
		sibling = inner
	}
	t.stats.Splits++
	tracer().Debugf("rtree: split %s node into %d + %d entries", t.cfg.Split, len(a), len(b))
	return sibling, nil
}

// --- Forced reinsertion ----------------------------------------------------

// reinsert removes count entries of n which lie farthest from the center of
// n, and queues them for insertion at the same level, closest first.
func (t *Tree[V]) reinsert(ins *insertion[V], n treeNode[V], level, count int) {
	boxes := nodeBoxes[V](n)
	var cover geom.Box
	for _, b := range boxes {
		cover = cover.Union(b)
	}
	center := cover.Center()
	dist := make([]float64, len(boxes))
	order := make([]int, len(boxes))
	for i, b := range boxes {
		dist[i] = b.Center().Distance(center)
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(dist[y], dist[x])
	})
	evict, keep := order[:count], order[count:]
	slices.Sort(keep)
	switch n := n.(type) {
	case *leafNode[V]:
		for k := count - 1; k >= 0; k-- {
			ins.pending = append(ins.pending, pending[V]{level: level, entry: n.entries[evict[k]]})
		}
		t.touchLeaf(n)
		n.setEntries(pick(n.entries, keep))
	case *innerNode[V]:
		for k := count - 1; k >= 0; k-- {
			ins.pending = append(ins.pending, pending[V]{level: level, branch: n.branches[evict[k]]})
		}
		t.touchInner(n)
		n.setBranches(pick(n.branches, keep))
	}
	t.stats.Reinsertions++
	t.stats.ReinsertedEntries += count
	tracer().Debugf("rtree: forced reinsertion of %d entries on level %d", count, level)
}
