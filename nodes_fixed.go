//go:build rtree_fixed

package rtree

import (
	"fmt"
	"slices"
)

const (
	// FixedMaxEntries is the largest MaxEntries the fixed backend supports.
	FixedMaxEntries      = 32
	fixedOverflowStorage = FixedMaxEntries + 1 // transient overflow before split
)

type leafNode[V any] struct {
	// n is the logical entry count; valid entries are entryStore[:n].
	n uint8
	// entryStore is the fixed backing storage for leaf entries.
	entryStore [fixedOverflowStorage]entry[V]
	// entries is a dynamic-length view over entryStore and must satisfy:
	// len(entries) == int(n), cap(entries) == len(entryStore), entries backed by entryStore.
	entries []entry[V]
}

type innerNode[V any] struct {
	// n is the logical branch count; valid branches are branchStore[:n].
	n uint8
	// branchStore is the fixed backing storage for branches.
	branchStore [fixedOverflowStorage]branch[V]
	// branches is a dynamic-length view over branchStore, with the same
	// constraints as leafNode.entries.
	branches []branch[V]
}

func newLeafNode[V any](int) *leafNode[V] {
	leaf := &leafNode[V]{}
	leaf.entries = leaf.entryStore[:0]
	return leaf
}

func newInnerNode[V any](int) *innerNode[V] {
	inner := &innerNode[V]{}
	inner.branches = inner.branchStore[:0]
	return inner
}

func (l *leafNode[V]) add(e entry[V]) {
	assert(len(l.entries) < len(l.entryStore), "add exceeds fixed leaf capacity")
	l.entries = append(l.entries, e)
	l.n++
}

func (l *leafNode[V]) removeAt(i int) {
	l.entries = slices.Delete(l.entries, i, i+1)
	l.n--
}

func (l *leafNode[V]) setEntries(entries []entry[V]) {
	assert(len(entries) <= len(l.entryStore), "setEntries exceeds fixed leaf capacity")
	k := copy(l.entryStore[:], entries)
	clear(l.entryStore[k:])
	l.entries = l.entryStore[:k]
	l.n = uint8(k)
}

func (l *leafNode[V]) reset() {
	l.setEntries(nil)
}

func (n *innerNode[V]) add(br branch[V]) {
	assert(len(n.branches) < len(n.branchStore), "add exceeds fixed node capacity")
	n.branches = append(n.branches, br)
	n.n++
}

func (n *innerNode[V]) removeAt(i int) {
	n.branches = slices.Delete(n.branches, i, i+1)
	n.n--
}

func (n *innerNode[V]) setBranches(branches []branch[V]) {
	assert(len(branches) <= len(n.branchStore), "setBranches exceeds fixed node capacity")
	k := copy(n.branchStore[:], branches)
	clear(n.branchStore[k:])
	n.branches = n.branchStore[:k]
	n.n = uint8(k)
}

func (n *innerNode[V]) reset() {
	n.setBranches(nil)
}

func validateBackendConfig(cfg Config) error {
	if cfg.MaxEntries > FixedMaxEntries {
		return fmt.Errorf("%w: MaxEntries must be <= %d for fixed backend", ErrInvalidConfig, FixedMaxEntries)
	}
	return nil
}

func (t *Tree[V]) checkBackendLeafInvariants(leaf *leafNode[V]) error {
	if int(leaf.n) != len(leaf.entries) {
		return fmt.Errorf("%w: leaf occupancy mismatch (%d != %d)", ErrCorrupted, leaf.n, len(leaf.entries))
	}
	if cap(leaf.entries) != len(leaf.entryStore) {
		return fmt.Errorf("%w: leaf view cap mismatch (%d != %d)", ErrCorrupted, cap(leaf.entries), len(leaf.entryStore))
	}
	if len(leaf.entries) > 0 && &leaf.entries[0] != &leaf.entryStore[0] {
		return fmt.Errorf("%w: leaf view is not backed by fixed storage", ErrCorrupted)
	}
	return nil
}

func (t *Tree[V]) checkBackendInnerInvariants(inner *innerNode[V]) error {
	if int(inner.n) != len(inner.branches) {
		return fmt.Errorf("%w: branch occupancy mismatch (%d != %d)", ErrCorrupted, inner.n, len(inner.branches))
	}
	if cap(inner.branches) != len(inner.branchStore) {
		return fmt.Errorf("%w: branch view cap mismatch (%d != %d)", ErrCorrupted, cap(inner.branches), len(inner.branchStore))
	}
	if len(inner.branches) > 0 && &inner.branches[0] != &inner.branchStore[0] {
		return fmt.Errorf("%w: branch view is not backed by fixed storage", ErrCorrupted)
	}
	return nil
}
