package split

import (
	"math"

	"github.com/npillmayer/rtree/geom"
)

// quadratic implements Guttman's quadratic split.
//
// As seeds it picks the two boxes that would waste the most area if covered
// by a single box. Of the remaining boxes, the one with the greatest
// difference in enlargement between the two groups is assigned next, to the
// group it prefers. If one group gets too full, the other gets the rest.
func quadratic(boxes []geom.Box, minFill int) (a, b []int) {
	g := newGroups(boxes, minFill)
	s0, s1 := quadraticSeeds(boxes)
	g.assign(s0, 0)
	g.assign(s1, 1)
	for g.left > 0 && !g.forced() {
		chosen, chosenGroup := -1, 0
		biggest := -1.0
		for i := range boxes {
			if g.taken[i] {
				continue
			}
			group, diff := g.preferred(i)
			if chosen < 0 || diff > biggest {
				chosen, chosenGroup, biggest = i, group, diff
			}
		}
		g.assign(chosen, chosenGroup)
	}
	return g.result()
}

func quadraticSeeds(boxes []geom.Box) (int, int) {
	worst := math.Inf(-1)
	seed0, seed1 := 0, 1
	for i := 0; i < len(boxes)-1; i++ {
		for j := i + 1; j < len(boxes); j++ {
			waste := boxes[i].Union(boxes[j]).Area() - boxes[i].Area() - boxes[j].Area()
			if waste > worst {
				worst = waste
				seed0, seed1 = i, j
			}
		}
	}
	return seed0, seed1
}
