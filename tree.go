package rtree

import (
	"errors"
	"fmt"
	"iter"

	"github.com/npillmayer/rtree/geom"
)

// Tree is an R-tree indexing values of type V by their bounding boxes.
//
// Bounding boxes are obtained from a Translator once, when a value is
// inserted, and cached in the tree.
type Tree[V any] struct {
	cfg    Config
	tr     Translator[V]
	alloc  *allocator
	root   treeNode[V] // nil for the empty tree
	height int         // 0 means empty tree, 1 means a leaf root
	size   int
	dims   int
	stats  Stats
	tx     *journal[V] // non-nil during a mutation under a node budget
}

// Stats are counters describing the history and shape of a tree.
type Stats struct {
	Nodes             int // live nodes
	Splits            int // node splits, including root splits
	RootGrowths       int
	RootShrinks       int
	Reinsertions      int // forced reinsertions performed (R* only)
	ReinsertedEntries int // entries moved by forced reinsertion
	CondensedNodes    int // under-full nodes dissolved by deletion
}

// New creates an empty tree with validated configuration.
func New[V any](cfg Config, tr Translator[V]) (*Tree[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, fmt.Errorf("%w: translator is required", ErrInvalidConfig)
	}
	cfg = cfg.normalized()
	return &Tree[V]{
		cfg:   cfg,
		tr:    tr,
		alloc: newAllocator(cfg.MaxNodes),
		dims:  cfg.Dims,
	}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[V]) Config() Config {
	return t.cfg
}

// Len returns the number of values in the tree.
func (t *Tree[V]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// IsEmpty reports whether the tree holds no values.
func (t *Tree[V]) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Height returns the tree height, where 0 means empty and 1 means a leaf root.
func (t *Tree[V]) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Dims returns the dimensionality of the tree, or 0 if it has not been
// determined yet.
func (t *Tree[V]) Dims() int {
	return t.dims
}

// Bounds returns the box enclosing all values of the tree. The boolean is
// false for an empty tree.
func (t *Tree[V]) Bounds() (geom.Box, bool) {
	if t.root == nil {
		return geom.Box{}, false
	}
	return t.root.bounds(), true
}

// Stats returns the tree's counters.
func (t *Tree[V]) Stats() Stats {
	s := t.stats
	s.Nodes = t.alloc.live
	return s
}

// Clear removes all values. Counters are kept, and a dimension adopted from
// the first value is forgotten.
func (t *Tree[V]) Clear() {
	if t.root != nil {
		t.alloc.release(teardown[V](t.root))
	}
	t.root, t.height, t.size = nil, 0, 0
	t.dims = t.cfg.Dims
}

// All returns every value in the tree, in no particular order.
func (t *Tree[V]) All() iter.Seq[V] {
	return t.Query(everything{})
}

// Count returns the number of values matching p.
func (t *Tree[V]) Count(p Predicate) int {
	count := 0
	for range t.Query(p) {
		count++
	}
	return count
}

// boundsOf asks the translator for the box of v and checks it against the
// dimension of the tree.
func (t *Tree[V]) boundsOf(v V) (geom.Box, error) {
	box, err := t.tr.Bounds(v)
	if err != nil {
		if errors.Is(err, ErrInvalidValue) {
			return geom.Box{}, err
		}
		return geom.Box{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if box.IsEmpty() {
		return geom.Box{}, fmt.Errorf("%w: empty bounding box", ErrInvalidValue)
	}
	if err := box.Validate(); err != nil {
		return geom.Box{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if t.dims != 0 && box.Dim() != t.dims {
		return geom.Box{}, fmt.Errorf("%w: box has %d dimensions, tree has %d",
			ErrDimensionMismatch, box.Dim(), t.dims)
	}
	return box, nil
}
