/*
Package geom provides the box arithmetic an R-tree index needs: n-dimensional
axis-aligned boxes, points, and the measures used by insertion cost functions,
split heuristics and nearest-neighbor ordering.

Boxes are immutable values. All operations return new boxes and never modify
their operands, so boxes may be shared freely between tree nodes and callers.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package geom
