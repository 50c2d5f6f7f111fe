//go:build rtree_fixed

package rtree

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/rtree/geom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFixedBackendRejectsOversizedNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	_, err := New[item](Config{MaxEntries: FixedMaxEntries + 1}, itemTranslator)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected config validation error for oversized nodes, got %v", err)
	}
	if !strings.Contains(err.Error(), "fixed backend") {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New[item](Config{MaxEntries: FixedMaxEntries}, itemTranslator); err != nil {
		t.Fatalf("maximum fixed capacity rejected: %v", err)
	}
}

func TestFixedBackendDetectsOccupancyDrift(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: 4, MinEntries: 2})
	insertAll(t, tree, []item{{id: 1, box: geom.Rect(0, 0, 1, 1)}, {id: 2, box: geom.Rect(2, 2, 3, 3)}})
	leaf := tree.root.(*leafNode[item])
	leaf.n = 1 // corrupt logical length on purpose
	err := tree.Check()
	if err == nil || !strings.Contains(err.Error(), "leaf occupancy mismatch") {
		t.Fatalf("expected invariant error for leaf occupancy drift, got %v", err)
	}
}

func TestFixedBackendViewsStayInStorage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rtree")
	defer teardown()
	//
	tree := makeItemTree(t, Config{MaxEntries: FixedMaxEntries, MinEntries: 8})
	items := randomItems(rand.New(rand.NewSource(41)), 2000)
	insertAll(t, tree, items)
	mustCheck(t, tree)
	for _, it := range items[:1500] {
		if found, err := tree.Remove(it); !found || err != nil {
			t.Fatalf("remove failed: found=%v, err=%v", found, err)
		}
	}
	mustCheck(t, tree)
}
