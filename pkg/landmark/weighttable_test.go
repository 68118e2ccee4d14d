package landmark

import (
	"path/filepath"
	"testing"
)

func TestCreateWeightTableInitialFill(t *testing.T) {
	dir := t.TempDir()
	wt, err := CreateWeightTable(filepath.Join(dir, "w.bin"), 4, 2, 0.1)
	if err != nil {
		t.Fatalf("CreateWeightTable: %v", err)
	}
	defer wt.Close()

	if wt.CoreNodeCount() != 4 || wt.K() != 2 {
		t.Fatalf("header mismatch: C=%d K=%d", wt.CoreNodeCount(), wt.K())
	}
	for c := uint32(0); c < 4; c++ {
		for l := uint32(0); l < 2; l++ {
			if v := wt.FromWeight(c, l); v != ShortInfinity {
				t.Errorf("FromWeight(%d,%d) = %x, want ShortInfinity", c, l, v)
			}
			if v := wt.ToWeight(c, l); v != ShortInfinity {
				t.Errorf("ToWeight(%d,%d) = %x, want ShortInfinity", c, l, v)
			}
		}
	}
}

func TestWeightTableSetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	wt, err := CreateWeightTable(filepath.Join(dir, "w.bin"), 3, 2, 0.1)
	if err != nil {
		t.Fatalf("CreateWeightTable: %v", err)
	}
	defer wt.Close()

	wt.SetFromWeight(1, 0, 42)
	wt.SetToWeight(1, 0, 99)
	if got := wt.FromWeight(1, 0); got != 42 {
		t.Errorf("FromWeight(1,0) = %d, want 42", got)
	}
	if got := wt.ToWeight(1, 0); got != 99 {
		t.Errorf("ToWeight(1,0) = %d, want 99", got)
	}
	// Untouched cells stay at the initial fill value.
	if got := wt.FromWeight(0, 0); got != ShortInfinity {
		t.Errorf("FromWeight(0,0) = %d, want ShortInfinity", got)
	}
}

func TestWeightTableAddSubnetworkAndPersist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "w.bin")

	wt, err := CreateWeightTable(path, 5, 2, 0.1)
	if err != nil {
		t.Fatalf("CreateWeightTable: %v", err)
	}
	id, err := wt.AddSubnetwork([]uint32{10, 20})
	if err != nil {
		t.Fatalf("AddSubnetwork: %v", err)
	}
	if id != 1 {
		t.Fatalf("first real subnetwork id should be 1, got %d", id)
	}
	wt.SetFromWeight(0, 0, 123)
	if err := wt.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := wt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	loaded, err := LoadWeightTable(path)
	if err != nil {
		t.Fatalf("LoadWeightTable: %v", err)
	}
	defer loaded.Close()

	if loaded.NumSubnetworks() != 2 {
		t.Fatalf("NumSubnetworks: got %d, want 2 (placeholder + 1)", loaded.NumSubnetworks())
	}
	if got := loaded.LandmarkIDs(1); got[0] != 10 || got[1] != 20 {
		t.Fatalf("LandmarkIDs(1) = %v, want [10 20]", got)
	}
	if got := loaded.FromWeight(0, 0); got != 123 {
		t.Fatalf("FromWeight(0,0) after reload = %d, want 123", got)
	}
}

func TestWeightTableReloadWithNoSubnetworksAdded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "w.bin")

	wt, err := CreateWeightTable(path, 3, 2, 0.1)
	if err != nil {
		t.Fatalf("CreateWeightTable: %v", err)
	}
	if err := wt.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := wt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	loaded, err := LoadWeightTable(path)
	if err != nil {
		t.Fatalf("LoadWeightTable: %v", err)
	}
	defer loaded.Close()

	if loaded.NumSubnetworks() != 1 {
		t.Fatalf("NumSubnetworks: got %d, want 1 (placeholder only)", loaded.NumSubnetworks())
	}
}

func TestCreateWeightTableRejectsBadFactor(t *testing.T) {
	dir := t.TempDir()
	if _, err := CreateWeightTable(filepath.Join(dir, "w.bin"), 2, 2, -1); err != ErrFactorOverflow {
		t.Fatalf("expected ErrFactorOverflow, got %v", err)
	}
}
