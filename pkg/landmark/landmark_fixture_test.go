package landmark

import (
	"path/filepath"
	"testing"

	"github.com/azybler/corelandmarks/pkg/core"
	"github.com/azybler/corelandmarks/pkg/graph"
)

// buildTriangleCHGraph builds the three-node fixture spec.md's worked
// example uses: A(0)-B(1) 10m, B(1)-C(2) 20m, C(2)-A(0) 25m, symmetric in
// both directions. Weights are stored in millimeters, matching
// graph.CHGraph's convention, so weighting.DistanceWeighting (mm/1000)
// reports the meter distances above.
func buildTriangleCHGraph(t *testing.T) *graph.CHGraph {
	t.Helper()
	return &graph.CHGraph{
		NumNodes:      3,
		Rank:          []uint32{0, 1, 2},
		CoreNodeCount: 3,
		NodeLat:       []float64{0, 0, 0},
		NodeLon:       []float64{0, 0, 0},
		FwdFirstOut:   []uint32{0, 2, 3, 3},
		FwdHead:       []uint32{1, 2, 2},
		FwdWeight:     []uint32{10000, 25000, 20000},
		FwdMiddle:     []int32{-1, -1, -1},
		BwdFirstOut:   []uint32{0, 2, 3, 3},
		BwdHead:       []uint32{1, 2, 2},
		BwdWeight:     []uint32{10000, 25000, 20000},
		BwdMiddle:     []int32{-1, -1, -1},
	}
}

// newTriangleFixture wires the CH graph into a core.Graph + id map, ready
// for the selector/filler/query tests to build on.
func newTriangleFixture(t *testing.T) (*graph.CHGraph, *core.Graph, *core.NodeIDMap) {
	t.Helper()
	chg := buildTriangleCHGraph(t)
	idMap := core.NewNodeIDMap(chg)
	g := core.NewGraph(chg, idMap)
	return chg, g, idMap
}

func tablePaths(t *testing.T) (weightPath, subnetPath string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "test.landmarks"), filepath.Join(dir, "test.subnetworks")
}
