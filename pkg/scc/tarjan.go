// Package scc computes strongly connected components of a core.Graph under a
// caller-supplied edge filter, using Tarjan's algorithm with an explicit work
// stack so deep components don't risk blowing the Go call stack.
package scc

import "github.com/azybler/corelandmarks/pkg/core"

// Component is one strongly connected component: the core-node indices that
// belong to it, in the order Tarjan settled them.
type Component []uint32

// frame is one level of the simulated call stack for the iterative DFS.
type frame struct {
	node    uint32
	edgeIdx int    // next out-edge index to examine
	edges   []core.Edge
}

// Run computes the strongly connected components of g restricted to edges
// accepted by filter, exploring the graph in its forward (out-edge)
// direction. Components are returned in the order their root was popped from
// Tarjan's stack.
func Run(g *core.Graph, filter core.EdgeFilter) []Component {
	n := g.NumCoreNodes()
	if n == 0 {
		return nil
	}

	index := make([]int32, n)
	lowlink := make([]uint32, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var tstack []uint32 // Tarjan's node stack
	var components []Component
	nextIndex := uint32(0)

	for root := uint32(0); root < n; root++ {
		if index[root] >= 0 {
			continue
		}
		strongConnect(g, filter, root, index, lowlink, onStack, &tstack, &nextIndex, &components)
	}

	return components
}

// strongConnect runs Tarjan's DFS from start using an explicit stack of
// frames in place of recursion.
func strongConnect(
	g *core.Graph,
	filter core.EdgeFilter,
	start uint32,
	index []int32,
	lowlink []uint32,
	onStack []bool,
	tstack *[]uint32,
	nextIndex *uint32,
	components *[]Component,
) {
	var work []frame

	push := func(node uint32) {
		index[node] = int32(*nextIndex)
		lowlink[node] = *nextIndex
		*nextIndex++
		*tstack = append(*tstack, node)
		onStack[node] = true

		var edges []core.Edge
		g.Explore(node, false, filter, func(e core.Edge) { edges = append(edges, e) })
		work = append(work, frame{node: node, edges: edges})
	}

	push(start)

	for len(work) > 0 {
		top := &work[len(work)-1]

		if top.edgeIdx < len(top.edges) {
			e := top.edges[top.edgeIdx]
			top.edgeIdx++

			if index[e.To] < 0 {
				push(e.To)
				continue
			}
			if onStack[e.To] {
				if uint32(index[e.To]) < lowlink[top.node] {
					lowlink[top.node] = uint32(index[e.To])
				}
			}
			continue
		}

		// All of top.node's edges explored: pop this frame, propagate
		// lowlink to the parent, and emit the component if top is a root.
		node := top.node
		work = work[:len(work)-1]

		if len(work) > 0 {
			parent := &work[len(work)-1]
			if lowlink[node] < lowlink[parent.node] {
				lowlink[parent.node] = lowlink[node]
			}
		}

		if lowlink[node] == uint32(index[node]) {
			var comp Component
			for {
				n := len(*tstack) - 1
				w := (*tstack)[n]
				*tstack = (*tstack)[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == node {
					break
				}
			}
			*components = append(*components, comp)
		}
	}
}
