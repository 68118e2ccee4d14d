package core

import (
	"math"

	"github.com/azybler/corelandmarks/pkg/graph"
)

const maxHopUnrollDepth = 100

// HopWeighting is used only during landmark selection, never for weight
// filling: it returns 1 for a real edge and, for a shortcut, the number of
// real edges its recursive expansion resolves to. Selecting landmarks by
// hop count spreads them out geographically better than selecting by travel
// time, where a single slow edge (a ferry) would otherwise dominate.
type HopWeighting struct {
	chg *graph.CHGraph
}

// NewHopWeighting wraps chg for hop-count weighting.
func NewHopWeighting(chg *graph.CHGraph) *HopWeighting {
	return &HopWeighting{chg: chg}
}

// Weight returns the hop count of e. An edge carrying the sentinel
// "unreachable" weight returns +Inf without descending into it.
func (w *HopWeighting) Weight(e Edge) float64 {
	if e.Weight >= math.MaxUint32 {
		return math.Inf(1)
	}
	if !e.Shortcut {
		return 1
	}
	return float64(w.unroll(e.csrIndex, e.fwdArray, 0))
}

// unroll counts the real edges a shortcut recursively expands to, summing
// leaf counts over both halves of every shortcut it meets. The middle node
// of a shortcut ranks below both endpoints, so each half is stored at the
// middle node: an edge into mid in the backward array, an edge out of mid
// in the forward array. depth is threaded explicitly rather than kept in
// shared state, so concurrent selection goroutines can each unroll
// independently.
func (w *HopWeighting) unroll(edgeIdx uint32, fwdArray bool, depth int) int {
	if depth > maxHopUnrollDepth {
		return 0
	}

	var middle int32
	var head, from uint32
	if fwdArray {
		middle = w.chg.FwdMiddle[edgeIdx]
		head = w.chg.FwdHead[edgeIdx]
		from = findCSRSource(w.chg.FwdFirstOut, edgeIdx)
	} else {
		middle = w.chg.BwdMiddle[edgeIdx]
		head = w.chg.BwdHead[edgeIdx]
		from = findCSRSource(w.chg.BwdFirstOut, edgeIdx)
	}

	if middle < 0 {
		return 1
	}
	mid := uint32(middle)

	if fwdArray {
		// Forward edge from->head expands to from->mid (backward array at
		// mid) and mid->head (forward array at mid).
		fromMid := findEdge(w.chg.BwdFirstOut, w.chg.BwdHead, mid, from)
		midHead := findEdge(w.chg.FwdFirstOut, w.chg.FwdHead, mid, head)
		if fromMid == noEdge || midHead == noEdge {
			return 1
		}
		return w.unroll(fromMid, false, depth+1) + w.unroll(midHead, true, depth+1)
	}

	// Backward edge from->head (stored) represents head->from in reality;
	// the shortcut expands to head->mid (backward array at mid) and
	// mid->from (forward array at mid).
	headMid := findEdge(w.chg.BwdFirstOut, w.chg.BwdHead, mid, head)
	midFrom := findEdge(w.chg.FwdFirstOut, w.chg.FwdHead, mid, from)
	if headMid == noEdge || midFrom == noEdge {
		return 1
	}
	return w.unroll(headMid, false, depth+1) + w.unroll(midFrom, true, depth+1)
}

const noEdge = ^uint32(0)

// findEdge finds an edge from source to target in a CSR graph.
func findEdge(firstOut, head []uint32, source, target uint32) uint32 {
	start, end := firstOut[source], firstOut[source+1]
	for e := start; e < end; e++ {
		if head[e] == target {
			return e
		}
	}
	return noEdge
}

// findCSRSource binary-searches firstOut for the source node owning edgeIdx.
func findCSRSource(firstOut []uint32, edgeIdx uint32) uint32 {
	n := uint32(len(firstOut) - 1)
	lo, hi := uint32(0), n
	for lo < hi {
		mid := (lo + hi) / 2
		if firstOut[mid+1] <= edgeIdx {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
