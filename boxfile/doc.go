/*
Package boxfile reads and writes bounding boxes in a simple line-oriented
text format, for loading test data and fixtures into R-trees.

Every non-blank line not starting with '#' holds one record: the minimum
coordinates of a box, then its maximum coordinates, optionally followed by a
label extending to the end of the line.

	# x0 y0  x1 y1  label
	0 0      2 2    first box
	3 3      5 5

Readers may be observed by a progress broadcaster (see WithProgress).

_________________________________________________________________________

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package boxfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rtree'
func tracer() tracing.Trace {
	return tracing.Select("rtree")
}
