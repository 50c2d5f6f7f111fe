package split

import (
	"math"
	"slices"

	"github.com/npillmayer/rtree/geom"
)

// topological implements the R*-tree split (Beckmann et al.).
//
// For every axis the boxes are sorted by lower and by upper bound. Each sort
// order yields the distributions "first k boxes / the rest" for
// minFill <= k <= len(boxes)-minFill. The split axis is the one with the
// smallest sum of group margins over all its distributions. On that axis the
// distribution with the least overlap between the groups wins, ties going to
// the smaller total area.
func topological(boxes []geom.Box, minFill int) (a, b []int) {
	dims := boxes[0].Dim()
	bestAxis, bestMargin := 0, math.Inf(1)
	orders := make([][2][]int, dims)
	for d := range dims {
		orders[d] = [2][]int{sortedBy(boxes, d, true), sortedBy(boxes, d, false)}
		var margin float64
		for _, order := range orders[d] {
			forEachDistribution(boxes, order, minFill, func(_ int, left, right geom.Box) {
				margin += left.Margin() + right.Margin()
			})
		}
		if margin < bestMargin {
			bestAxis, bestMargin = d, margin
		}
	}
	var bestOrder []int
	bestK := 0
	bestOverlap, bestArea := math.Inf(1), math.Inf(1)
	for _, order := range orders[bestAxis] {
		forEachDistribution(boxes, order, minFill, func(k int, left, right geom.Box) {
			overlap := left.Overlap(right)
			area := left.Area() + right.Area()
			if bestOrder == nil || overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
				bestOrder, bestK = order, k
				bestOverlap, bestArea = overlap, area
			}
		})
	}
	a = append([]int(nil), bestOrder[:bestK]...)
	b = append([]int(nil), bestOrder[bestK:]...)
	return a, b
}

// sortedBy returns the box indices sorted along dimension d, by lower bound
// first (byLower) or by upper bound first. Remaining ties keep input order.
func sortedBy(boxes []geom.Box, d int, byLower bool) []int {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	key := func(i int) (float64, float64) {
		if byLower {
			return boxes[i].Min(d), boxes[i].Max(d)
		}
		return boxes[i].Max(d), boxes[i].Min(d)
	}
	slices.SortStableFunc(order, func(i, j int) int {
		ki1, ki2 := key(i)
		kj1, kj2 := key(j)
		switch {
		case ki1 < kj1:
			return -1
		case ki1 > kj1:
			return 1
		case ki2 < kj2:
			return -1
		case ki2 > kj2:
			return 1
		}
		return 0
	})
	return order
}

// forEachDistribution calls fn for every valid split position k of order,
// with the covering boxes of order[:k] and order[k:].
func forEachDistribution(boxes []geom.Box, order []int, minFill int, fn func(k int, left, right geom.Box)) {
	n := len(order)
	prefix := make([]geom.Box, n+1)
	suffix := make([]geom.Box, n+1)
	for i := range n {
		prefix[i+1] = prefix[i].Union(boxes[order[i]])
	}
	for i := n - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1].Union(boxes[order[i]])
	}
	for k := minFill; k <= n-minFill; k++ {
		fn(k, prefix[k], suffix[k])
	}
}
