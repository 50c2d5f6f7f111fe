//go:build !rtree_fixed

package rtree

import "slices"

type leafNode[V any] struct {
	entries []entry[V]
}

type innerNode[V any] struct {
	branches []branch[V]
}

func newLeafNode[V any](capacity int) *leafNode[V] {
	return &leafNode[V]{entries: make([]entry[V], 0, capacity)}
}

func newInnerNode[V any](capacity int) *innerNode[V] {
	return &innerNode[V]{branches: make([]branch[V], 0, capacity)}
}

func (l *leafNode[V]) add(e entry[V]) {
	l.entries = append(l.entries, e)
}

func (l *leafNode[V]) removeAt(i int) {
	l.entries = slices.Delete(l.entries, i, i+1)
}

// setEntries replaces the contents of l by a copy of entries.
func (l *leafNode[V]) setEntries(entries []entry[V]) {
	l.entries = append(make([]entry[V], 0, max(cap(l.entries), len(entries))), entries...)
}

func (l *leafNode[V]) reset() {
	l.entries = nil
}

func (n *innerNode[V]) add(br branch[V]) {
	n.branches = append(n.branches, br)
}

func (n *innerNode[V]) removeAt(i int) {
	n.branches = slices.Delete(n.branches, i, i+1)
}

// setBranches replaces the contents of n by a copy of branches.
func (n *innerNode[V]) setBranches(branches []branch[V]) {
	n.branches = append(make([]branch[V], 0, max(cap(n.branches), len(branches))), branches...)
}

func (n *innerNode[V]) reset() {
	n.branches = nil
}

func validateBackendConfig(cfg Config) error {
	return nil
}

func (t *Tree[V]) checkBackendLeafInvariants(leaf *leafNode[V]) error {
	return nil
}

func (t *Tree[V]) checkBackendInnerInvariants(inner *innerNode[V]) error {
	return nil
}
