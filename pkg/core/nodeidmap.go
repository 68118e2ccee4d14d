// Package core adapts a contracted hierarchy graph (pkg/graph.CHGraph) into
// the "core" view the landmark subsystem walks: a dense index over the
// uncontracted top-level nodes, composable edge filters, and a weighting
// wrapper that unrolls shortcuts into hop counts.
package core

import "github.com/azybler/corelandmarks/pkg/graph"

// NodeIDMap is a dense, immutable mapping from graph node id to a compact
// core-node index. It is undefined (returns false) for non-core nodes.
type NodeIDMap struct {
	graphToCore []int32  // len NumNodes; -1 if not core
	coreToGraph []uint32 // len coreCount
}

// NewNodeIDMap builds a NodeIDMap from a contracted graph. chg.Rank must be
// populated (true immediately after ch.Contract, and after a ReadBinary load
// since the binary format now retains Rank).
func NewNodeIDMap(chg *graph.CHGraph) *NodeIDMap {
	n := chg.NumNodes
	level := chg.CoreLevel()

	graphToCore := make([]int32, n)
	coreToGraph := make([]uint32, 0, chg.CoreNodeCount)

	for node := uint32(0); node < n; node++ {
		if chg.Rank != nil && chg.Rank[node] >= level {
			graphToCore[node] = int32(len(coreToGraph))
			coreToGraph = append(coreToGraph, node)
		} else {
			graphToCore[node] = -1
		}
	}

	return &NodeIDMap{graphToCore: graphToCore, coreToGraph: coreToGraph}
}

// CoreIndex returns the compact core index for a graph node id, and whether
// that node is a core node at all.
func (m *NodeIDMap) CoreIndex(graphNodeID uint32) (uint32, bool) {
	if int(graphNodeID) >= len(m.graphToCore) {
		return 0, false
	}
	idx := m.graphToCore[graphNodeID]
	if idx < 0 {
		return 0, false
	}
	return uint32(idx), true
}

// GraphNodeID returns the graph node id for a compact core index. Panics on
// an out-of-range index — core indices are always produced by this map, so
// an invalid one is a programming error.
func (m *NodeIDMap) GraphNodeID(coreIndex uint32) uint32 {
	return m.coreToGraph[coreIndex]
}

// Len returns the number of core nodes, C in spec terms.
func (m *NodeIDMap) Len() uint32 {
	return uint32(len(m.coreToGraph))
}

// IsDense reports whether the map covers core indices 0..Len()-1 without
// gaps — always true by construction, but callers that index fixed-size
// tables with a remapped core index should assert this (see design notes on
// SubnetworkStorage capacity).
func (m *NodeIDMap) IsDense() bool {
	return len(m.coreToGraph) == len(m.graphToCore)-countNonCore(m.graphToCore)
}

func countNonCore(graphToCore []int32) int {
	n := 0
	for _, v := range graphToCore {
		if v < 0 {
			n++
		}
	}
	return n
}
