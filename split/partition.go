package split

import (
	"fmt"

	"github.com/npillmayer/rtree/geom"
)

// Partition splits boxes into two groups and returns the indices of each group.
//
// Every index of boxes ends up in exactly one group, and both groups hold at
// least minFill and at most len(boxes)-minFill indices. Callers must ensure
// 1 <= minFill and 2*minFill <= len(boxes); violations panic, as they indicate
// a broken tree configuration rather than bad input.
//
// The result is deterministic: equal inputs yield equal partitions.
func Partition(h Heuristic, boxes []geom.Box, minFill int) (a, b []int) {
	must(minFill >= 1, "split: minFill must be positive")
	must(len(boxes) >= 2*minFill, fmt.Sprintf("split: %d entries cannot hold two groups of %d",
		len(boxes), minFill))
	switch h {
	case Linear:
		return linear(boxes, minFill)
	case Quadratic:
		return quadratic(boxes, minFill)
	case Topological:
		return topological(boxes, minFill)
	}
	panic(fmt.Sprintf("split: %v", h))
}

func must(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// groups tracks a two-way distribution in progress, as used by both of
// Guttman's algorithms.
type groups struct {
	boxes   []geom.Box
	minFill int
	taken   []bool
	left    int // number of boxes not yet assigned
	member  [2][]int
	cover   [2]geom.Box
}

func newGroups(boxes []geom.Box, minFill int) *groups {
	return &groups{
		boxes:   boxes,
		minFill: minFill,
		taken:   make([]bool, len(boxes)),
		left:    len(boxes),
	}
}

func (g *groups) assign(i, group int) {
	must(!g.taken[i], "split: entry assigned twice")
	g.taken[i] = true
	g.left--
	g.member[group] = append(g.member[group], i)
	g.cover[group] = g.cover[group].Union(g.boxes[i])
}

// forced assigns all remaining entries to one group if that group cannot
// otherwise reach the minimum fill. It reports whether it did so.
func (g *groups) forced() bool {
	for group := range 2 {
		if len(g.member[group])+g.left == g.minFill {
			for i := range g.boxes {
				if !g.taken[i] {
					g.assign(i, group)
				}
			}
			return true
		}
	}
	return false
}

// preferred returns the group which needs less enlargement to include box i,
// and the difference in enlargement between the two groups.
// Ties go to the smaller group area, then to the group with fewer entries,
// then to group 0.
func (g *groups) preferred(i int) (group int, diff float64) {
	d0 := g.cover[0].Enlargement(g.boxes[i])
	d1 := g.cover[1].Enlargement(g.boxes[i])
	switch {
	case d0 < d1:
		return 0, d1 - d0
	case d1 < d0:
		return 1, d0 - d1
	}
	a0, a1 := g.cover[0].Area(), g.cover[1].Area()
	switch {
	case a0 < a1:
		return 0, 0
	case a1 < a0:
		return 1, 0
	}
	if len(g.member[1]) < len(g.member[0]) {
		return 1, 0
	}
	return 0, 0
}

func (g *groups) result() (a, b []int) {
	must(g.left == 0, "split: unassigned entries")
	return g.member[0], g.member[1]
}
