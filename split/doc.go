/*
Package split partitions the entries of an overflowing R-tree node into two
groups.

Three heuristics share one contract (see Partition): Guttman's linear and
quadratic algorithms, and the topological split of the R*-tree, which picks a
split axis by margin and a split position by overlap.

Partition works on bounding boxes only and returns index groups, so the same
code serves leaf entries and internal branches.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package split

import (
	"errors"
	"fmt"
	"strings"
)

// Heuristic selects a split algorithm.
type Heuristic uint8

const (
	// Quadratic is Guttman's quadratic-cost split.
	Quadratic Heuristic = iota
	// Linear is Guttman's linear-cost split.
	Linear
	// Topological is the R*-tree split. Trees using it also perform forced
	// reinsertion on overflow.
	Topological
)

// ErrUnknownHeuristic signals an unrecognized heuristic name or value.
var ErrUnknownHeuristic = errors.New("split: unknown heuristic")

func (h Heuristic) String() string {
	switch h {
	case Quadratic:
		return "quadratic"
	case Linear:
		return "linear"
	case Topological:
		return "rstar"
	}
	return fmt.Sprintf("Heuristic(%d)", uint8(h))
}

// Valid reports whether h is one of the known heuristics.
func (h Heuristic) Valid() bool {
	return h <= Topological
}

// ParseHeuristic maps a name ("linear", "quadratic", "rstar") to a heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quadratic":
		return Quadratic, nil
	case "linear":
		return Linear, nil
	case "rstar", "r*", "topological":
		return Topological, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}
