package core

import (
	"math"
	"testing"
)

func TestHopWeightingRealEdge(t *testing.T) {
	chg := buildCHGraph3(t)
	w := NewHopWeighting(chg)

	e := Edge{Weight: 10, Shortcut: false}
	if got := w.Weight(e); got != 1 {
		t.Fatalf("real edge hop weight: got %f, want 1", got)
	}
}

func TestHopWeightingUnreachable(t *testing.T) {
	chg := buildCHGraph3(t)
	w := NewHopWeighting(chg)

	e := Edge{Weight: math.MaxUint32, Shortcut: false}
	if got := w.Weight(e); !math.IsInf(got, 1) {
		t.Fatalf("unreachable edge should weight +Inf, got %f", got)
	}
}

func TestHopWeightingShortcutUnrolls(t *testing.T) {
	chg := buildCHGraph3(t)
	// Lay out real edges 0->1, 1->2 and a shortcut 0->2 via 1 the way
	// contraction stores them: node 1 ranks lowest, so 0->1 sits in the Bwd
	// array at node 1, 1->2 in the Fwd array at node 1, and the shortcut in
	// the Fwd array at node 0.
	chg.Rank = []uint32{1, 0, 2}
	chg.FwdFirstOut = []uint32{0, 1, 2, 2}
	chg.FwdHead = []uint32{2, 2}
	chg.FwdWeight = []uint32{30, 20}
	chg.FwdMiddle = []int32{1, -1}
	chg.BwdFirstOut = []uint32{0, 0, 1, 1}
	chg.BwdHead = []uint32{0}
	chg.BwdWeight = []uint32{10}
	chg.BwdMiddle = []int32{-1}

	w := NewHopWeighting(chg)
	shortcut := Edge{Weight: 30, Shortcut: true, csrIndex: 0, fwdArray: true}
	if got := w.Weight(shortcut); got != 2 {
		t.Fatalf("shortcut 0->2 via 1 should unroll to 2 hops, got %f", got)
	}
}
