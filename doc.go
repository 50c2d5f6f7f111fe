/*
Package rtree implements an in-memory R-tree, a height-balanced tree indexing
values by their axis-aligned bounding boxes.

Values of any type V are stored together with a bounding box obtained from a
Translator. The tree supports insertion, deletion and two kinds of queries:
predicate range queries (“every value whose box intersects this window”) and
k-nearest-neighbor queries (“the k values closest to this point”).

R-Trees

An R-tree generalizes the B-tree to multi-dimensional keys. Every internal
node stores, for each child, the smallest box enclosing everything below that
child. All leaves are at the same depth, and every node apart from the root
holds between MinEntries and MaxEntries entries.

From Guttman, 1984:

An R-tree is a height-balanced tree similar to a B-tree with index records in
its leaf nodes containing pointers to data objects. Nodes correspond to disk
pages if the index is disk-resident, and the structure is designed so that a
spatial search requires visiting only a small number of nodes. The index is
completely dynamic; inserts and deletes can be intermixed with searches and no
periodic reorganization is required.

_________________________________________________________________________

Overflowing nodes are split by one of three heuristics (see package split):
Guttman's linear and quadratic splits, or the topological split of the
R*-tree by Beckmann et al. Trees configured for the R* split additionally
perform forced reinsertion: before a non-root node is split for the first time
on a level during an insertion, a fraction of its entries is removed and
inserted anew, which often makes the split unnecessary.

Deletion follows Guttman's condense procedure: nodes falling below the minimum
fill are dissolved and their values are re-inserted.

A Tree is not safe for concurrent mutation. Concurrent read-only queries are
fine as long as no goroutine mutates the tree at the same time.

Tracing goes to the schuko trace selector "rtree".

_________________________________________________________________________

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package rtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rtree'.
func tracer() tracing.Trace {
	return tracing.Select("rtree")
}
