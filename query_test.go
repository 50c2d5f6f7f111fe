package rtree

import (
	"math"
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/npillmayer/rtree/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/sync/errgroup"
)

func bruteForce(items []item, p Predicate) []int {
	var ids []int
	for _, it := range items {
		if p.Matches(it.box) {
			ids = append(ids, it.id)
		}
	}
	slices.Sort(ids)
	return ids
}

func TestPredicatesAgreeWithLinearScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	r := rand.New(rand.NewSource(21))
	items := randomItems(r, 500)
	for _, cfg := range allConfigs {
		tree := makeItemTree(t, cfg)
		insertAll(t, tree, items)
		for round := 0; round < 25; round++ {
			x, y := r.Float64()*1000, r.Float64()*1000
			w := geom.Rect(x, y, x+r.Float64()*300, y+r.Float64()*300)
			inner := items[r.Intn(len(items))].box
			predicates := map[string]Predicate{
				"intersects": Intersects(w),
				"coveredBy":  CoveredBy(w),
				"covers":     Covers(inner),
				"disjoint":   Disjoint(w),
				"overlaps":   Overlaps(w),
				"not":        Not(Intersects(w)),
				"and":        And(Intersects(w), Not(CoveredBy(w))),
				"or":         Or(CoveredBy(w), Covers(inner)),
			}
			for name, p := range predicates {
				got := collectIDs(tree.Query(p))
				want := bruteForce(items, p)
				if !slices.Equal(got, want) {
					t.Fatalf("%v: %s(%v): got %d values, want %d", cfg.Split, name, w, len(got), len(want))
				}
				if n := tree.Count(p); n != len(want) {
					t.Fatalf("%v: Count(%s) = %d, want %d", cfg.Split, name, n, len(want))
				}
			}
		}
	}
}

func TestQueryIsLazyAndRestartable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: 4, MinEntries: 2})
	insertAll(t, tree, randomItems(rand.New(rand.NewSource(22)), 100))
	calls := 0
	counting := countingPredicate{Predicate: And(), calls: &calls}
	seq := tree.Query(counting)
	taken := 0
	for range seq {
		taken++
		if taken == 3 {
			break
		}
	}
	if taken != 3 || calls > 60 {
		t.Errorf("query visited too much: %d values, %d predicate calls", taken, calls)
	}
	if n := len(collectIDs(seq)); n != 100 {
		t.Errorf("restarted query returned %d values", n)
	}
	if len(collectIDs(tree.Query(nil))) != 0 {
		t.Errorf("nil predicate must select nothing")
	}
}

type countingPredicate struct {
	Predicate
	calls *int
}

func (p countingPredicate) AdmitsNode(b geom.Box) bool {
	*p.calls++
	return p.Predicate.AdmitsNode(b)
}

func (p countingPredicate) Matches(b geom.Box) bool {
	*p.calls++
	return p.Predicate.Matches(b)
}

func TestNearestAgreesWithLinearScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	r := rand.New(rand.NewSource(23))
	items := randomItems(r, 400)
	for _, cfg := range allConfigs {
		tree := makeItemTree(t, cfg)
		insertAll(t, tree, items)
		for round := 0; round < 20; round++ {
			pt := geom.Pt(r.Float64()*1200-100, r.Float64()*1200-100)
			k := 1 + r.Intn(30)
			got := tree.NearestNeighbors(pt, k)
			dists := make([]float64, len(items))
			for i, it := range items {
				dists[i] = it.box.Distance(pt)
			}
			sort.Float64s(dists)
			if len(got) != k {
				t.Fatalf("expected %d neighbors, have %d", k, len(got))
			}
			for i, nb := range got {
				if nb.Distance != dists[i] {
					t.Fatalf("%v: neighbor %d at distance %v, linear scan says %v", cfg.Split, i, nb.Distance, dists[i])
				}
				if d := nb.Value.box.Distance(pt); d != nb.Distance {
					t.Fatalf("reported distance %v differs from value distance %v", nb.Distance, d)
				}
			}
		}
	}
}

func TestNearestEdgeCases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: 4, MinEntries: 2})
	items := randomItems(rand.New(rand.NewSource(24)), 10)
	insertAll(t, tree, items)
	if nn := tree.NearestNeighbors(geom.Pt(0, 0), 0); nn != nil {
		t.Errorf("k=0 must yield nothing, have %v", nn)
	}
	if nn := tree.NearestNeighbors(geom.Pt(0, 0, 0), 3); nn != nil {
		t.Errorf("point of wrong dimension must yield nothing, have %v", nn)
	}
	if nn := tree.NearestNeighbors(geom.Pt(0, 0), 50); len(nn) != 10 {
		t.Errorf("expected all 10 values, have %d", len(nn))
	}
	var first []item
	for it := range tree.Nearest(geom.Pt(500, 500), 5) {
		first = append(first, it)
		if len(first) == 2 {
			break
		}
	}
	nn := tree.NearestNeighbors(geom.Pt(500, 500), 2)
	if len(first) != 2 || first[0].id != nn[0].Value.id || first[1].id != nn[1].Value.id {
		t.Errorf("Nearest and NearestNeighbors disagree")
	}
}

func TestNearestTiesKeepDiscoveryOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree, _ := New[geom.Point](Config{MaxEntries: 8, MinEntries: 2}, PointTranslator{})
	for _, pt := range []geom.Point{geom.Pt(1, 0), geom.Pt(0, 1), geom.Pt(-1, 0), geom.Pt(0, -1), geom.Pt(5, 5)} {
		if err := tree.Insert(pt); err != nil {
			t.Fatal(err)
		}
	}
	nn := tree.NearestNeighbors(geom.Pt(0, 0), 3)
	want := []geom.Point{geom.Pt(1, 0), geom.Pt(0, 1), geom.Pt(-1, 0)}
	for i, nb := range nn {
		if !nb.Value.Equal(want[i]) || nb.Distance != 1 {
			t.Errorf("neighbor %d: have %v at %v, want %v at 1", i, nb.Value, nb.Distance, want[i])
		}
	}
}

// segment is a diagonal line segment from lo to hi of its box.
type segment struct {
	id     int
	x0, y0 float64
	length float64
}

type segmentTranslator struct{}

func (segmentTranslator) Bounds(s segment) (geom.Box, error) {
	return geom.Rect(s.x0, s.y0, s.x0+s.length, s.y0+s.length), nil
}

func (segmentTranslator) Equal(a, b segment) bool { return a.id == b.id }

// Distance to the closest point of the segment.
func (segmentTranslator) Distance(s segment, p geom.Point) float64 {
	dx, dy := p[0]-s.x0, p[1]-s.y0
	u := (dx + dy) / 2
	u = min(max(u, 0), s.length)
	return math.Hypot(dx-u, dy-u)
}

func TestNearestUsesDistancer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree, err := New[segment](Config{MaxEntries: 4, MinEntries: 2}, segmentTranslator{})
	if err != nil {
		t.Fatal(err)
	}
	// the query point lies inside the box of segment 1, but far from the segment
	for _, s := range []segment{{id: 1, x0: 0, y0: 0, length: 10}, {id: 2, x0: 9, y0: 0, length: 0.5}} {
		if err := tree.Insert(s); err != nil {
			t.Fatal(err)
		}
	}
	nn := tree.NearestNeighbors(geom.Pt(9, 1), 1)
	if len(nn) != 1 || nn[0].Value.id != 2 {
		t.Fatalf("expected segment 2 to be nearest, have %v", nn)
	}
	if math.Abs(nn[0].Distance-math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("expected distance %v, have %v", math.Sqrt(0.5), nn[0].Distance)
	}
}

func TestConcurrentQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	items := randomItems(rand.New(rand.NewSource(25)), 1000)
	tree := makeItemTree(t, Config{})
	insertAll(t, tree, items)
	var g errgroup.Group
	for worker := range 8 {
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(worker)))
			for range 50 {
				x, y := r.Float64()*1000, r.Float64()*1000
				p := Intersects(geom.Rect(x, y, x+100, y+100))
				if got, want := tree.Count(p), len(bruteForce(items, p)); got != want {
					t.Errorf("worker %d: got %d values, want %d", worker, got, want)
				}
				if nn := tree.NearestNeighbors(geom.Pt(x, y), 5); len(nn) != 5 {
					t.Errorf("worker %d: expected 5 neighbors, have %d", worker, len(nn))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestQueryWindowOfOtherDimension(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: 4, MinEntries: 2})
	insertAll(t, tree, randomItems(rand.New(rand.NewSource(5)), 50))
	cube, err := geom.NewBox([]float64{-10, -10, -10}, []float64{2000, 2000, 2000})
	if err != nil {
		t.Fatal(err)
	}
	all := geom.Rect(-10, -10, 2000, 2000)
	predicates := map[string]Predicate{
		"intersects": Intersects(cube),
		"coveredBy":  CoveredBy(cube),
		"covers":     Covers(cube),
		"disjoint":   Disjoint(cube),
		"overlaps":   Overlaps(cube),
		"not":        Not(Intersects(cube)),
		"and":        And(Intersects(all), CoveredBy(cube)),
		"or":         Or(Intersects(all), Not(Covers(cube))),
	}
	for name, p := range predicates {
		if n := tree.Count(p); n != 0 {
			t.Errorf("%s: 3-D window over a 2-D tree selected %d values", name, n)
		}
	}
	if n := tree.Count(And(Intersects(all), Not(Covers(geom.Rect(0, 0, 1, 1))))); n == 0 {
		t.Errorf("2-D combinations must still select values")
	}
}
