package landmark

import (
	"testing"

	"github.com/azybler/corelandmarks/pkg/core"
	"github.com/azybler/corelandmarks/pkg/graph"
)

// buildSingleNodeCHGraph is a degenerate one-core-node graph: no edges to
// explore at all, exercising SelectLandmarks' "K landmarks, all the same
// node" case.
func buildSingleNodeCHGraph(t *testing.T) *graph.CHGraph {
	t.Helper()
	return &graph.CHGraph{
		NumNodes:      1,
		Rank:          []uint32{0},
		CoreNodeCount: 1,
		NodeLat:       []float64{0},
		NodeLon:       []float64{0},
		FwdFirstOut:   []uint32{0, 0},
		BwdFirstOut:   []uint32{0, 0},
	}
}

func TestSelectLandmarksSingleNodeRepeatsNode(t *testing.T) {
	chg := buildSingleNodeCHGraph(t)
	idMap := core.NewNodeIDMap(chg)
	g := core.NewGraph(chg, idMap)

	ids, ok, err := SelectLandmarks(g, idMap, chg.NodeLat, chg.NodeLon, 0, SelectorOptions{K: 3, MinimumNodes: 1})
	if err != nil {
		t.Fatalf("SelectLandmarks: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true for a single reachable node meeting MinimumNodes=1")
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 landmark ids, got %d", len(ids))
	}
	for i, id := range ids {
		if id != 0 {
			t.Errorf("ids[%d] = %d, want 0 (only node in the graph)", i, id)
		}
	}
}

func TestSelectLandmarksMinimumNodesBoundary(t *testing.T) {
	_, g, idMap := newTriangleFixture(t)
	chg := buildTriangleCHGraph(t)

	if _, ok, err := SelectLandmarks(g, idMap, chg.NodeLat, chg.NodeLon, 0, SelectorOptions{K: 1, MinimumNodes: 3}); err != nil || !ok {
		t.Fatalf("MinimumNodes == reachable count (3) should succeed: ok=%v err=%v", ok, err)
	}

	if _, ok, err := SelectLandmarks(g, idMap, chg.NodeLat, chg.NodeLon, 0, SelectorOptions{K: 1, MinimumNodes: 4}); err != nil {
		t.Fatalf("MinimumNodes above reachable count should not error, got %v", err)
	} else if ok {
		t.Fatal("MinimumNodes above reachable count (4 > 3) should report ok=false, not select landmarks")
	}
}

func TestSelectLandmarksSuggestionCovers(t *testing.T) {
	_, g, idMap := newTriangleFixture(t)
	chg := buildTriangleCHGraph(t)

	suggestion := core.LandmarkSuggestion{
		Name:    "test-suggestion",
		NodeIDs: []uint32{2, 1},
	}
	opts := SelectorOptions{K: 2, MinimumNodes: 1, Suggestions: []core.LandmarkSuggestion{suggestion}}

	ids, ok, err := SelectLandmarks(g, idMap, chg.NodeLat, chg.NodeLon, 0, opts)
	if err != nil {
		t.Fatalf("SelectLandmarks: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true when a covering suggestion supplies enough node ids")
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("expected the suggestion's node ids verbatim, got %v", ids)
	}
}

func TestSelectLandmarksInsufficientSuggestions(t *testing.T) {
	_, g, idMap := newTriangleFixture(t)
	chg := buildTriangleCHGraph(t)

	suggestion := core.LandmarkSuggestion{
		Name:    "too-few",
		NodeIDs: []uint32{2},
	}
	opts := SelectorOptions{K: 2, MinimumNodes: 1, Suggestions: []core.LandmarkSuggestion{suggestion}}

	_, ok, err := SelectLandmarks(g, idMap, chg.NodeLat, chg.NodeLon, 0, opts)
	if err != ErrInsufficientSuggestions {
		t.Fatalf("expected ErrInsufficientSuggestions, got ok=%v err=%v", ok, err)
	}
}

func TestSelectLandmarksCancelled(t *testing.T) {
	_, g, idMap := newTriangleFixture(t)
	chg := buildTriangleCHGraph(t)

	opts := SelectorOptions{K: 1, MinimumNodes: 1, Cancel: func() bool { return true }}

	_, ok, err := SelectLandmarks(g, idMap, chg.NodeLat, chg.NodeLon, 0, opts)
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got ok=%v err=%v", ok, err)
	}
}
