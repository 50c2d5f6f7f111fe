package split

import "github.com/npillmayer/rtree/geom"

// linear implements Guttman's linear split: seeds are the pair with the
// greatest normalized separation along any dimension, the remaining entries
// follow in input order, each going to the group needing less enlargement.
func linear(boxes []geom.Box, minFill int) (a, b []int) {
	g := newGroups(boxes, minFill)
	s0, s1 := linearSeeds(boxes)
	g.assign(s0, 0)
	g.assign(s1, 1)
	for i := range boxes {
		if g.left == 0 || g.forced() {
			break
		}
		if g.taken[i] {
			continue
		}
		group, _ := g.preferred(i)
		g.assign(i, group)
	}
	return g.result()
}

// linearSeeds finds, per dimension, the box with the highest low side and
// the box with the lowest high side, normalizes their separation by the width
// of the whole set along that dimension, and picks the dimension with the
// greatest normalized separation.
func linearSeeds(boxes []geom.Box) (int, int) {
	best := -1.0
	seed0, seed1 := 0, 1
	for d := 0; d < boxes[0].Dim(); d++ {
		highLow, lowHigh := 0, 0
		minLo, maxHi := boxes[0].Min(d), boxes[0].Max(d)
		for i, b := range boxes {
			if b.Min(d) > boxes[highLow].Min(d) {
				highLow = i
			}
			if b.Max(d) < boxes[lowHigh].Max(d) {
				lowHigh = i
			}
			minLo = min(minLo, b.Min(d))
			maxHi = max(maxHi, b.Max(d))
		}
		if highLow == lowHigh {
			// one box is both; pair it with the box having the next highest low side
			alt := -1
			for i, b := range boxes {
				if i != lowHigh && (alt < 0 || b.Min(d) > boxes[alt].Min(d)) {
					alt = i
				}
			}
			highLow = alt
		}
		sep := boxes[highLow].Min(d) - boxes[lowHigh].Max(d)
		if width := maxHi - minLo; width > 0 {
			sep /= width
		}
		if sep > best {
			best = sep
			seed0, seed1 = lowHigh, highLow
		}
	}
	return seed0, seed1
}
