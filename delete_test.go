package rtree

import (
	"math/rand"
	"testing"

	"github.com/npillmayer/rtree/geom"
	"github.com/npillmayer/rtree/split"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRemoveRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: 4, MinEntries: 2})
	items := randomItems(rand.New(rand.NewSource(1)), 60)
	insertAll(t, tree, items)
	victim := items[17]
	if ids := collectIDs(tree.Query(Intersects(victim.box))); !containsID(ids, victim.id) {
		t.Fatalf("inserted value not found by query")
	}
	found, err := tree.Remove(victim)
	if err != nil || !found {
		t.Fatalf("remove failed: found=%v, err=%v", found, err)
	}
	mustCheck(t, tree)
	if ids := collectIDs(tree.Query(Intersects(victim.box))); containsID(ids, victim.id) {
		t.Errorf("removed value still found by query")
	}
	if tree.Len() != len(items)-1 {
		t.Errorf("expected %d values, have %d", len(items)-1, tree.Len())
	}
	found, err = tree.Remove(victim)
	if found || err != nil {
		t.Errorf("second remove: found=%v, err=%v", found, err)
	}
}

func TestRemoveMissingValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: 4, MinEntries: 2})
	insertAll(t, tree, randomItems(rand.New(rand.NewSource(2)), 30))
	before := tree.Stats()
	// same box as an existing value, but a different identity
	found, err := tree.Remove(item{id: 999, box: randomItems(rand.New(rand.NewSource(2)), 1)[0].box})
	if found || err != nil {
		t.Errorf("expected not found, have found=%v, err=%v", found, err)
	}
	box3, _ := geom.NewBox([]float64{0, 0, 0}, []float64{1, 1, 1})
	found, err = tree.Remove(item{id: 1, box: box3})
	if found || err != nil {
		t.Errorf("value of other dimension: found=%v, err=%v", found, err)
	}
	if tree.Len() != 30 || tree.Stats() != before {
		t.Errorf("tree changed by removing missing values")
	}
}

func TestRemoveCondensesThreeLevelTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: 4, MinEntries: 2})
	items := randomItems(rand.New(rand.NewSource(3)), 40)
	insertAll(t, tree, items)
	if tree.Height() < 3 {
		t.Fatalf("expected at least 3 levels, have %d", tree.Height())
	}
	b, _ := tree.Bounds()
	total := tree.Count(Intersects(b))
	removed := 0
	for _, it := range items[:25] {
		found, err := tree.Remove(it)
		if err != nil || !found {
			t.Fatalf("remove of %d failed: found=%v, err=%v", it.id, found, err)
		}
		removed++
		mustCheck(t, tree)
		if n := tree.Count(Intersects(b)); n != total-removed {
			t.Fatalf("expected %d values after %d removals, have %d", total-removed, removed, n)
		}
	}
	if tree.Stats().CondensedNodes == 0 {
		t.Errorf("expected condensed nodes, have %+v", tree.Stats())
	}
	if ids := collectIDs(tree.All()); len(ids) != 15 || ids[0] != 25 {
		t.Errorf("unexpected remaining values %v", ids)
	}
}

func TestRemoveEverything(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	for _, cfg := range allConfigs {
		tree := makeItemTree(t, cfg)
		r := rand.New(rand.NewSource(4))
		items := randomItems(r, 120)
		insertAll(t, tree, items)
		r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
		for i, it := range items {
			found, err := tree.Remove(it)
			if err != nil || !found {
				t.Fatalf("%v: remove %d failed: found=%v, err=%v", cfg.Split, i, found, err)
			}
			if err := tree.Check(); err != nil {
				t.Fatalf("%v: invariants broken after remove %d: %v", cfg.Split, i, err)
			}
		}
		if !tree.IsEmpty() || tree.Height() != 0 || tree.Stats().Nodes != 0 {
			t.Errorf("%v: tree not empty after removing everything: %+v", cfg.Split, tree.Stats())
		}
	}
}

func TestRemoveAllDuplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree, _ := New[geom.Point](Config{MaxEntries: 4, MinEntries: 2, Split: split.Topological}, PointTranslator{})
	for i := range 30 {
		pt := geom.Pt(float64(i%3), 0)
		if err := tree.Insert(pt); err != nil {
			t.Fatal(err)
		}
	}
	n, err := tree.RemoveAll(geom.Pt(1, 0))
	if err != nil || n != 10 {
		t.Fatalf("expected 10 removals, have %d (%v)", n, err)
	}
	if tree.Len() != 20 {
		t.Errorf("expected 20 remaining values, have %d", tree.Len())
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
	if c := tree.Count(Intersects(geom.Pt(1, 0).Box())); c != 0 {
		t.Errorf("expected no values at (1,0), have %d", c)
	}
}

func TestMixedInsertRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	for _, cfg := range allConfigs {
		tree := makeItemTree(t, cfg)
		r := rand.New(rand.NewSource(8))
		pool := randomItems(r, 400)
		live := make(map[int]bool)
		for step := 0; step < 1500; step++ {
			it := pool[r.Intn(len(pool))]
			if live[it.id] {
				found, err := tree.Remove(it)
				if err != nil || !found {
					t.Fatalf("%v: step %d: remove failed: found=%v, err=%v", cfg.Split, step, found, err)
				}
				delete(live, it.id)
			} else {
				if err := tree.Insert(it); err != nil {
					t.Fatalf("%v: step %d: %v", cfg.Split, step, err)
				}
				live[it.id] = true
			}
			if tree.Len() != len(live) {
				t.Fatalf("%v: step %d: size %d, expected %d", cfg.Split, step, tree.Len(), len(live))
			}
		}
		mustCheck(t, tree)
		if ids := collectIDs(tree.All()); len(ids) != len(live) {
			t.Errorf("%v: All returned %d values, expected %d", cfg.Split, len(ids), len(live))
		}
	}
}

func containsID(ids []int, id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
