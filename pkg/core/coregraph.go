package core

import "github.com/azybler/corelandmarks/pkg/graph"

// Edge is a directed edge of the core subgraph, already resolved to its real
// travel direction (the CH overlay's Fwd array stores u->v for rank[u] <
// rank[v]; the Bwd array stores u->v meaning the real edge runs v->u — Graph
// undoes that reversal so callers only ever see real direction edges).
type Edge struct {
	ID       uint32 // stable within one Graph; encodes (csrIndex, array)
	From, To uint32 // core-compact indices
	Weight   uint32 // millimeters, same convention as graph.Graph.Weight
	Shortcut bool
	Middle   uint32 // contracted middle node's graph id, valid iff Shortcut

	csrIndex uint32
	fwdArray bool // true: sourced from chg.Fwd*; false: from chg.Bwd* (reversed)
}

// Graph is the core subgraph: adjacency restricted to edges between core
// nodes, addressed by compact core index. Edges to non-core nodes are
// structurally absent here (the CH overlay never sources an edge at the
// highest-ranked tier that lands outside it); EdgeFilter's
// InCore still implements the pass-through rule from spec.md so the contract
// matches even though this construction never exercises it.
type Graph struct {
	chg   *graph.CHGraph
	idMap *NodeIDMap

	// out[i] / in[i] are adjacency lists for core index i, already resolved
	// to real direction: out[i] are edges leaving i, in[i] are edges
	// arriving at i (each entry's From is the other endpoint).
	out [][]Edge
	in  [][]Edge
}

// NewGraph builds the core subgraph from a contracted graph and its node id
// map.
func NewGraph(chg *graph.CHGraph, idMap *NodeIDMap) *Graph {
	c := idMap.Len()
	g := &Graph{
		chg:   chg,
		idMap: idMap,
		out:   make([][]Edge, c),
		in:    make([][]Edge, c),
	}

	addReal := func(fromGraph, toGraph, weight, csrIndex uint32, fwdArray bool, middle int32) {
		fromCore, ok1 := idMap.CoreIndex(fromGraph)
		toCore, ok2 := idMap.CoreIndex(toGraph)
		if !ok1 || !ok2 {
			return
		}
		id := csrIndex << 1
		if !fwdArray {
			id |= 1
		}
		e := Edge{
			ID:       id,
			From:     fromCore,
			To:       toCore,
			Weight:   weight,
			Shortcut: middle >= 0,
			csrIndex: csrIndex,
			fwdArray: fwdArray,
		}
		if e.Shortcut {
			e.Middle = uint32(middle)
		}
		g.out[fromCore] = append(g.out[fromCore], e)
		g.in[toCore] = append(g.in[toCore], e)
	}

	// Fwd array: edge stored as a->b is the real edge a->b.
	for a := uint32(0); a < chg.NumNodes; a++ {
		start, end := chg.FwdFirstOut[a], chg.FwdFirstOut[a+1]
		for ei := start; ei < end; ei++ {
			addReal(a, chg.FwdHead[ei], chg.FwdWeight[ei], ei, true, chg.FwdMiddle[ei])
		}
	}

	// Bwd array: edge stored as a->b represents the real edge b->a.
	for a := uint32(0); a < chg.NumNodes; a++ {
		start, end := chg.BwdFirstOut[a], chg.BwdFirstOut[a+1]
		for ei := start; ei < end; ei++ {
			addReal(chg.BwdHead[ei], a, chg.BwdWeight[ei], ei, false, chg.BwdMiddle[ei])
		}
	}

	return g
}

// NodeIDMap returns the id map this core graph was built from.
func (g *Graph) NodeIDMap() *NodeIDMap { return g.idMap }

// CHGraph returns the contracted graph this core graph was built from, for
// collaborators (like HopWeighting) that need to resolve shortcuts.
func (g *Graph) CHGraph() *graph.CHGraph { return g.chg }

// NumCoreNodes returns C, the number of core nodes.
func (g *Graph) NumCoreNodes() uint32 { return g.idMap.Len() }

// Explore calls visit for every edge leaving (reverse=false) or arriving at
// (reverse=true) the core node at coreIdx that the filter accepts.
func (g *Graph) Explore(coreIdx uint32, reverse bool, filter EdgeFilter, visit func(Edge)) {
	var edges []Edge
	if reverse {
		edges = g.in[coreIdx]
	} else {
		edges = g.out[coreIdx]
	}
	for _, e := range edges {
		// AllowFwd/AllowBwd are always true: the teacher's OSM parser bakes
		// one-way restrictions into which directed edges exist at all
		// rather than a separate per-edge access bit (see pkg/osm's
		// directionFlags), so by the time an edge reaches the core overlay
		// its mere presence in out[]/in[] already proves that direction is
		// permitted.
		fe := FilterEdge{
			ID:       e.ID,
			From:     e.From,
			To:       e.To,
			IsCore:   true, // by construction, see doc comment above
			AllowFwd: true,
			AllowBwd: true,
		}
		if filter == nil || filter.Accept(fe) {
			visit(e)
		}
	}
}
