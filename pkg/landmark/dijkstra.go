package landmark

import (
	"math"

	"github.com/azybler/corelandmarks/pkg/core"
)

// edgeWeight is the cost function Dijkstra runs with; the landmark selector
// plugs in core.HopWeighting, the weight filler plugs in the real
// pkg/weighting.Weighting, without either depending on the other's type.
type edgeWeight func(e core.Edge) float64

type pqItem struct {
	node uint32
	dist float64
}

// distHeap is a concrete binary min-heap ordered by (dist, node), breaking
// ties on node id so settlement order
// is deterministic — spec.md's landmark selector picks the last-settled
// node, which must not depend on map/slice iteration order.
type distHeap struct {
	items []pqItem
}

func (h *distHeap) Len() int { return len(h.items) }

func less(a, b pqItem) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.node < b.node
}

func (h *distHeap) push(node uint32, dist float64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *distHeap) pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *distHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *distHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// dijkstraResult is a completed search's settled distances, plus the last
// node the search popped off the queue — the "farthest-found node" the
// landmark selector iterates on.
type dijkstraResult struct {
	dist        []float64
	lastSettled uint32
	settled     []bool
	settledN    int
}

// runDijkstra runs a (possibly multi-source) Dijkstra over g, exploring out
// edges when reverse is false or in edges when reverse is true, restricted
// to edges filter accepts and costed by weight. sources seed the queue at
// distance 0. cancel is polled once per queue pop; when it returns true
// the search stops early and ok is false.
func runDijkstra(g *core.Graph, reverse bool, filter core.EdgeFilter, weight edgeWeight, sources []uint32, cancel func() bool) (dijkstraResult, bool) {
	n := g.NumCoreNodes()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}

	var h distHeap
	for _, s := range sources {
		dist[s] = 0
		h.push(s, 0)
	}

	settled := make([]bool, n)
	lastSettled := uint32(0)
	count := 0

	for h.Len() > 0 {
		if cancel != nil && cancel() {
			return dijkstraResult{dist: dist, lastSettled: lastSettled, settled: settled, settledN: count}, false
		}

		item := h.pop()
		if settled[item.node] || item.dist > dist[item.node] {
			continue
		}
		settled[item.node] = true
		lastSettled = item.node
		count++

		g.Explore(item.node, reverse, filter, func(e core.Edge) {
			other := e.To
			if reverse {
				other = e.From
			}
			if settled[other] {
				return
			}
			w := weight(e)
			if math.IsInf(w, 1) {
				return
			}
			nd := item.dist + w
			if nd < dist[other] {
				dist[other] = nd
				h.push(other, nd)
			}
		})
	}

	return dijkstraResult{dist: dist, lastSettled: lastSettled, settled: settled, settledN: count}, true
}
