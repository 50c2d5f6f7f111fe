/*
Command rtreedump loads a box file into an R-tree and prints the shape of the
resulting tree, optionally followed by the results of a range or
nearest-neighbor query.

	rtreedump -file boxes.txt -split rstar -max 8
	rtreedump -file boxes.txt -intersects 0,0,10,10
	rtreedump -file boxes.txt -nearest 3,4 -k 5
	rtreedump -file boxes.txt -dot | dot -Tsvg > tree.svg

The box file format is described in package boxfile.

_________________________________________________________________________

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/rtree"
	"github.com/npillmayer/rtree/boxfile"
	"github.com/npillmayer/rtree/geom"
	"github.com/npillmayer/rtree/split"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/term"
)

type options struct {
	file       string
	dims       int
	min, max   int
	split      string
	reinsert   float64
	dot        bool
	intersects string
	nearest    string
	k          int
	verbose    bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.file, "file", "", "box file to load (required)")
	flag.IntVar(&opts.dims, "dims", 2, "number of dimensions per box")
	flag.IntVar(&opts.min, "min", 0, "minimum entries per node (0 = default)")
	flag.IntVar(&opts.max, "max", rtree.DefaultMaxEntries, "maximum entries per node")
	flag.StringVar(&opts.split, "split", "rstar", "split heuristic: linear, quadratic or rstar")
	flag.Float64Var(&opts.reinsert, "reinsert", 0, "fraction of entries to reinsert on overflow (R* only)")
	flag.BoolVar(&opts.dot, "dot", false, "print the tree in Graphviz DOT format")
	flag.StringVar(&opts.intersects, "intersects", "", "query window x0,y0,...,x1,y1,...")
	flag.StringVar(&opts.nearest, "nearest", "", "query point x,y,...")
	flag.IntVar(&opts.k, "k", 1, "number of neighbors for -nearest")
	flag.BoolVar(&opts.verbose, "v", false, "trace loading and tree operations")
	flag.Parse()
	if opts.file == "" {
		flag.Usage()
		os.Exit(2)
	}
	if opts.verbose {
		tracer().SetTraceLevel(tracing.LevelDebug)
	} else {
		tracer().SetTraceLevel(tracing.LevelError)
	}
	if err := run(opts, os.Stdout, paletteFor(os.Stdout)); err != nil {
		tracer().Errorf("rtreedump: %v", err)
		fmt.Fprintf(os.Stderr, "rtreedump: %v\n", err)
		os.Exit(1)
	}
}

// tracer writes to trace with key 'rtree'
func tracer() tracing.Trace {
	return tracing.Select("rtree")
}

func run(opts options, w io.Writer, pal *palette) error {
	heuristic, err := split.ParseHeuristic(opts.split)
	if err != nil {
		return err
	}
	records, err := boxfile.Load(opts.file, boxfile.WithDims(opts.dims))
	if err != nil {
		return err
	}
	cfg := rtree.Config{
		MaxEntries:       opts.max,
		MinEntries:       opts.min,
		Split:            heuristic,
		ReinsertFraction: opts.reinsert,
		Dims:             opts.dims,
	}
	tree, err := rtree.New[boxfile.Record](cfg, boxfile.Translator{})
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := tree.Insert(rec); err != nil {
			return fmt.Errorf("line %d: %w", rec.Line, err)
		}
	}
	if err := tree.Check(); err != nil {
		return err
	}
	if opts.dot {
		return tree.Dot(w)
	}
	printStats(w, tree, pal)
	printOutline(w, tree, pal)
	if opts.intersects != "" {
		coords, err := parseCoords(opts.intersects, 2*opts.dims)
		if err != nil {
			return fmt.Errorf("-intersects: %w", err)
		}
		window, err := geom.NewBox(coords[:opts.dims], coords[opts.dims:])
		if err != nil {
			return fmt.Errorf("-intersects: %w", err)
		}
		pal.header.Fprintf(w, "intersecting %s:\n", window)
		for rec := range tree.Query(rtree.Intersects(window)) {
			fmt.Fprintf(w, "  %4d  %s\n", rec.Line, rec)
		}
	}
	if opts.nearest != "" {
		coords, err := parseCoords(opts.nearest, opts.dims)
		if err != nil {
			return fmt.Errorf("-nearest: %w", err)
		}
		pt := geom.Pt(coords...)
		pal.header.Fprintf(w, "%d nearest to %s:\n", opts.k, pt)
		for _, nb := range tree.NearestNeighbors(pt, opts.k) {
			fmt.Fprintf(w, "  %4d  %s ", nb.Value.Line, nb.Value)
			pal.dist.Fprintf(w, "(%.4g)", nb.Distance)
			fmt.Fprintln(w)
		}
	}
	return nil
}

func parseCoords(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d coordinates, have %d", n, len(fields))
	}
	coords := make([]float64, n)
	for i, f := range fields {
		c, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.New("coordinate " + strconv.Quote(f) + " is not a number")
		}
		coords[i] = c
	}
	return coords, nil
}

// --- Output ----------------------------------------------------------------

type palette struct {
	header *color.Color
	inner  *color.Color
	leaf   *color.Color
	dist   *color.Color
	width  int // line width for the outline
}

// paletteFor colors output if f is a terminal, and takes the line width from
// it.
func paletteFor(f *os.File) *palette {
	pal := plainPalette()
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return pal
	}
	pal.header = color.New(color.Bold)
	pal.inner = color.New(color.FgBlue)
	pal.leaf = color.New(color.FgGreen)
	pal.dist = color.New(color.FgRed)
	for _, c := range []*color.Color{pal.header, pal.inner, pal.leaf, pal.dist} {
		c.EnableColor()
	}
	if w, _, err := term.GetSize(fd); err == nil {
		if w > 40 {
			pal.width = w - 2
		} else {
			pal.width = 40
		}
	}
	return pal
}

func plainPalette() *palette {
	pal := &palette{width: 80}
	for _, c := range []**color.Color{&pal.header, &pal.inner, &pal.leaf, &pal.dist} {
		*c = color.New()
		(*c).DisableColor()
	}
	return pal
}

func printStats(w io.Writer, tree *rtree.Tree[boxfile.Record], pal *palette) {
	st := tree.Stats()
	cfg := tree.Config()
	pal.header.Fprintf(w, "%d values, height %d, %d nodes\n", tree.Len(), tree.Height(), st.Nodes)
	fmt.Fprintf(w, "  config:  max=%d min=%d split=%s reinsert=%.2g\n",
		cfg.MaxEntries, cfg.MinEntries, cfg.Split, cfg.ReinsertFraction)
	fmt.Fprintf(w, "  splits:  %d (root growths %d)\n", st.Splits, st.RootGrowths)
	fmt.Fprintf(w, "  reinsert: %d times, %d entries\n", st.Reinsertions, st.ReinsertedEntries)
	if b, ok := tree.Bounds(); ok {
		fmt.Fprintf(w, "  bounds:  %s\n", b)
	}
}

// printOutline prints one line per node, indented by depth. Lines are cut at
// the palette's width.
func printOutline(w io.Writer, tree *rtree.Tree[boxfile.Record], pal *palette) {
	for n := range tree.Nodes() {
		indent := strings.Repeat("  ", n.Depth)
		kind, c := "node", pal.inner
		if n.Leaf {
			kind, c = "leaf", pal.leaf
		}
		line := fmt.Sprintf("%s%s[%d] %s", indent, kind, n.Entries, n.Box)
		if len(line) > pal.width {
			line = line[:max(pal.width-3, 0)] + "..."
		}
		c.Fprintln(w, line)
	}
}
