package graph

// CHGraph holds the output of contraction hierarchies preprocessing.
type CHGraph struct {
	NumNodes uint32
	NodeLat  []float64
	NodeLon  []float64
	Rank     []uint32

	// CoreNodeCount is the number of nodes left uncontracted when
	// contraction stopped (see maxShortcutsPerNode in pkg/ch). These are
	// the highest-ranked nodes: Rank[node] >= NumNodes-CoreNodeCount.
	CoreNodeCount uint32

	// Forward upward graph (edges where rank[source] < rank[target]).
	FwdFirstOut []uint32
	FwdHead     []uint32
	FwdWeight   []uint32
	FwdMiddle   []int32

	// Backward upward graph (reversed edges where rank[source] < rank[target]).
	BwdFirstOut []uint32
	BwdHead     []uint32
	BwdWeight   []uint32
	BwdMiddle   []int32

	// Original graph edges, carried through from contraction (pkg/ch) and
	// persisted by binary.go. Landmark precomputation walks the Fwd/Bwd
	// overlay arrays exclusively (see pkg/core.NewGraph), not these.
	OrigFirstOut []uint32
	OrigHead     []uint32
	OrigWeight   []uint32

	// Original edge geometry (carried through from the base graph).
	GeoFirstOut []uint32
	GeoShapeLat []float64
	GeoShapeLon []float64
}

// CoreLevel is the rank threshold at or above which a node is part of the
// core: the set of nodes contraction left uncontracted. This is the CH
// analogue of the hierarchy-level sentinel described for core graphs.
func (chg *CHGraph) CoreLevel() uint32 {
	if chg.CoreNodeCount >= chg.NumNodes {
		return 0
	}
	return chg.NumNodes - chg.CoreNodeCount
}

// IsCoreNode reports whether node belongs to the core. Rank must be
// populated, which it is both right after Contract and after a ReadBinary
// load (the binary format retains Rank).
func (chg *CHGraph) IsCoreNode(node uint32) bool {
	if chg.Rank == nil {
		return false
	}
	return chg.Rank[node] >= chg.CoreLevel()
}

// Graph represents a directed graph in CSR (Compressed Sparse Row) format.
type Graph struct {
	NumNodes uint32
	NumEdges uint32
	FirstOut []uint32  // len: NumNodes + 1; FirstOut[i]..FirstOut[i+1] are edges from node i
	Head     []uint32  // len: NumEdges; target node for each edge
	Weight   []uint32  // len: NumEdges; distance in millimeters
	NodeLat  []float64 // len: NumNodes
	NodeLon  []float64 // len: NumNodes

	// Edge geometry: intermediate shape nodes for rendering.
	// GeoFirstOut[i]..GeoFirstOut[i+1] indexes into GeoShapeLat/Lon for edge i.
	GeoFirstOut []uint32  // len: NumEdges + 1
	GeoShapeLat []float64 // flattened intermediate lat coords
	GeoShapeLon []float64 // flattened intermediate lon coords
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}
