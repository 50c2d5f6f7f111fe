// Package queue provides binary-heap priority queues keyed by distance, as used
// by best-first nearest-neighbor traversal.
package queue

// Item is an entry of a priority queue.
type Item[T any] struct {
	Value    T       // payload
	Distance float64 // priority of the item
	seq      uint64  // insertion sequence, breaks distance ties in FIFO order
}

// PriorityQueue is a min- or max-heap of items ordered by distance.
// Items with equal distance leave the queue in insertion order.
//
// The zero value is not usable; create queues with NewMin or NewMax.
type PriorityQueue[T any] struct {
	isMaxHeap bool
	items     []Item[T]
	seq       uint64
}

// NewMin creates a queue which pops the smallest distance first.
func NewMin[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{items: make([]Item[T], 0, capacity)}
}

// NewMax creates a queue which pops the largest distance first.
func NewMax[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{isMaxHeap: true, items: make([]Item[T], 0, capacity)}
}

// Len returns the number of items in the queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.items) }

// Push inserts a value with the given distance.
func (pq *PriorityQueue[T]) Push(value T, distance float64) {
	pq.items = append(pq.items, Item[T]{Value: value, Distance: distance, seq: pq.seq})
	pq.seq++
	pq.siftUp(len(pq.items) - 1)
}

// Top returns the top item without removing it.
func (pq *PriorityQueue[T]) Top() (Item[T], bool) {
	if len(pq.items) == 0 {
		return Item[T]{}, false
	}
	return pq.items[0], true
}

// Pop removes and returns the top item.
func (pq *PriorityQueue[T]) Pop() (Item[T], bool) {
	n := len(pq.items)
	if n == 0 {
		return Item[T]{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item[T]{} // release payload for GC
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// Reset clears the queue for reuse.
func (pq *PriorityQueue[T]) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
	pq.seq = 0
}

func (pq *PriorityQueue[T]) less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.Distance != b.Distance {
		if pq.isMaxHeap {
			return a.Distance > b.Distance
		}
		return a.Distance < b.Distance
	}
	if pq.isMaxHeap {
		return a.seq > b.seq
	}
	return a.seq < b.seq
}

func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
