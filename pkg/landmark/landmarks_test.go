package landmark

import (
	"testing"

	"github.com/azybler/corelandmarks/pkg/weighting"
)

func TestLandmarksBuildAndQuery(t *testing.T) {
	chg := buildTriangleCHGraph(t)
	w := weighting.NewDistanceWeighting()
	dir := t.TempDir()

	l, err := Create(dir, chg, w, BuildOptions{K: 2, MinimumNodes: 1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer l.Close()

	if err := l.Build(BuildOptions{K: 2, MinimumNodes: 1}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	activeIdx := make([]uint32, 2)
	activeFroms := make([]uint16, 2)
	activeTos := make([]uint16, 2)
	for i := range activeIdx {
		activeIdx[i] = NoLandmark
	}

	if err := l.Query(0, 2, false, activeIdx, activeFroms, activeTos); err != nil {
		t.Fatalf("Query: %v", err)
	}
	for _, idx := range activeIdx {
		if idx == NoLandmark {
			t.Fatal("expected both landmark slots filled")
		}
	}
}

func TestLandmarksBuildTwiceFails(t *testing.T) {
	chg := buildTriangleCHGraph(t)
	w := weighting.NewDistanceWeighting()
	dir := t.TempDir()
	opts := BuildOptions{K: 2, MinimumNodes: 1}

	l, err := Create(dir, chg, w, opts)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer l.Close()

	if err := l.Build(opts); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if err := l.Build(opts); err != ErrAlreadyInitialized {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestLandmarksLoadRoundTrip(t *testing.T) {
	chg := buildTriangleCHGraph(t)
	w := weighting.NewDistanceWeighting()
	dir := t.TempDir()
	opts := BuildOptions{K: 2, MinimumNodes: 1}

	l, err := Create(dir, chg, w, opts)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := l.Build(opts); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reloaded, err := Load(dir, chg, w)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer reloaded.Close()

	activeIdx := make([]uint32, 2)
	activeFroms := make([]uint16, 2)
	activeTos := make([]uint16, 2)
	for i := range activeIdx {
		activeIdx[i] = NoLandmark
	}
	if err := reloaded.Query(0, 2, false, activeIdx, activeFroms, activeTos); err != nil {
		t.Fatalf("Query after reload: %v", err)
	}
}

func TestLandmarksLoadGraphMismatch(t *testing.T) {
	chg := buildTriangleCHGraph(t)
	w := weighting.NewDistanceWeighting()
	dir := t.TempDir()
	opts := BuildOptions{K: 2, MinimumNodes: 1}

	l, err := Create(dir, chg, w, opts)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := l.Build(opts); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := l.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	bigger := buildTriangleCHGraph(t)
	bigger.NumNodes = 4
	bigger.CoreNodeCount = 4
	bigger.Rank = append(bigger.Rank, 3)
	bigger.NodeLat = append(bigger.NodeLat, 0)
	bigger.NodeLon = append(bigger.NodeLon, 0)
	bigger.FwdFirstOut = append(bigger.FwdFirstOut, bigger.FwdFirstOut[len(bigger.FwdFirstOut)-1])
	bigger.BwdFirstOut = append(bigger.BwdFirstOut, bigger.BwdFirstOut[len(bigger.BwdFirstOut)-1])

	if _, err := Load(dir, bigger, w); err != ErrGraphMismatch {
		t.Fatalf("expected ErrGraphMismatch, got %v", err)
	}
}
