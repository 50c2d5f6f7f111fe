package rtree

import (
	"fmt"
	"slices"

	"golang.org/x/sync/semaphore"
)

// allocator accounts for live nodes. With a node budget, every node holds one
// token of a weighted semaphore. Acquisition never blocks.
type allocator struct {
	budget *semaphore.Weighted // nil for an unlimited tree
	limit  int
	live   int
}

func newAllocator(maxNodes int) *allocator {
	a := &allocator{limit: maxNodes}
	if maxNodes > 0 {
		a.budget = semaphore.NewWeighted(int64(maxNodes))
	}
	return a
}

func (a *allocator) limited() bool {
	return a.budget != nil
}

func (a *allocator) acquire() error {
	if a.budget != nil && !a.budget.TryAcquire(1) {
		return fmt.Errorf("%w: %d nodes in use", ErrResourceExhausted, a.live)
	}
	a.live++
	return nil
}

func (a *allocator) release(n int) {
	if n == 0 {
		return
	}
	assert(n <= a.live, "allocator: releasing more nodes than allocated")
	if a.budget != nil {
		a.budget.Release(int64(n))
	}
	a.live -= n
}

// --- Node lifecycle --------------------------------------------------------

func (t *Tree[V]) newLeaf() (*leafNode[V], error) {
	if err := t.alloc.acquire(); err != nil {
		return nil, err
	}
	leaf := newLeafNode[V](t.cfg.MaxEntries + 1)
	if t.tx != nil {
		t.tx.fresh = append(t.tx.fresh, leaf)
	}
	return leaf, nil
}

func (t *Tree[V]) newInner() (*innerNode[V], error) {
	if err := t.alloc.acquire(); err != nil {
		return nil, err
	}
	inner := newInnerNode[V](t.cfg.MaxEntries + 1)
	if t.tx != nil {
		t.tx.fresh = append(t.tx.fresh, inner)
	}
	return inner, nil
}

// discard frees a single node which is no longer part of the tree. Its
// children, if any, are left alone.
func (t *Tree[V]) discard(n treeNode[V]) {
	if t.tx != nil {
		t.tx.dropped = append(t.tx.dropped, dropped[V]{node: n})
		return
	}
	resetNode[V](n)
	t.alloc.release(1)
}

// discardSubtree frees n and everything below it.
func (t *Tree[V]) discardSubtree(n treeNode[V]) {
	if t.tx != nil {
		t.tx.dropped = append(t.tx.dropped, dropped[V]{node: n, subtree: true})
		return
	}
	t.alloc.release(teardown[V](n))
}

// teardown clears a subtree iteratively and returns the number of nodes.
func teardown[V any](n treeNode[V]) int {
	count := 0
	stack := []treeNode[V]{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if inner, ok := n.(*innerNode[V]); ok {
			for _, br := range inner.branches {
				stack = append(stack, br.child)
			}
		}
		resetNode[V](n)
		count++
	}
	return count
}

func resetNode[V any](n treeNode[V]) {
	switch n := n.(type) {
	case *leafNode[V]:
		n.reset()
	case *innerNode[V]:
		n.reset()
	}
}

// --- Journal ---------------------------------------------------------------

// journal records a mutation in progress on a tree with a node budget, such
// that it can be undone when the budget runs out half-way.
type journal[V any] struct {
	root    treeNode[V]
	height  int
	size    int
	dims    int
	stats   Stats
	leaves  map[*leafNode[V]][]entry[V]
	inners  map[*innerNode[V]][]branch[V]
	fresh   []treeNode[V]
	dropped []dropped[V]
}

type dropped[V any] struct {
	node    treeNode[V]
	subtree bool
}

// mutate runs op as a single transaction. Trees without a node budget cannot
// fail half-way and run op directly.
func (t *Tree[V]) mutate(op func() error) error {
	if !t.alloc.limited() {
		return op()
	}
	t.tx = &journal[V]{
		root:   t.root,
		height: t.height,
		size:   t.size,
		dims:   t.dims,
		stats:  t.stats,
		leaves: make(map[*leafNode[V]][]entry[V]),
		inners: make(map[*innerNode[V]][]branch[V]),
	}
	err := op()
	if err != nil {
		t.rollback()
	} else {
		t.commit()
	}
	t.tx = nil
	return err
}

// touchLeaf has to be called before a leaf is modified.
func (t *Tree[V]) touchLeaf(l *leafNode[V]) {
	if t.tx == nil {
		return
	}
	if _, ok := t.tx.leaves[l]; !ok {
		t.tx.leaves[l] = slices.Clone(l.entries)
	}
}

// touchInner has to be called before an inner node is modified.
func (t *Tree[V]) touchInner(n *innerNode[V]) {
	if t.tx == nil {
		return
	}
	if _, ok := t.tx.inners[n]; !ok {
		t.tx.inners[n] = slices.Clone(n.branches)
	}
}

func (t *Tree[V]) commit() {
	released := 0
	for _, d := range t.tx.dropped {
		if d.subtree {
			released += teardown[V](d.node)
		} else {
			resetNode[V](d.node)
			released++
		}
	}
	t.alloc.release(released)
}

func (t *Tree[V]) rollback() {
	tx := t.tx
	for l, entries := range tx.leaves {
		l.setEntries(entries)
	}
	for n, branches := range tx.inners {
		n.setBranches(branches)
	}
	for _, n := range tx.fresh {
		resetNode[V](n)
	}
	t.alloc.release(len(tx.fresh))
	t.root, t.height, t.size, t.dims = tx.root, tx.height, tx.size, tx.dims
	t.stats = tx.stats
	tracer().Debugf("rtree: mutation rolled back, %d nodes in use", t.alloc.live)
}
