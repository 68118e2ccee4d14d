package landmark

import (
	"sort"

	"github.com/azybler/corelandmarks/pkg/core"
)

// NoLandmark marks an unset slot in a caller's activeIdx array.
const NoLandmark = ^uint32(0)

// readWeight reads a stored short, coercing the "unreached" sentinel to the
// saturation sentinel — spec.md §4.9's documented lossy read.
func readWeight(wt *WeightTable, coreIdx, landmarkIdx uint32, toOffset bool) uint16 {
	var v uint16
	if toOffset {
		v = wt.ToWeight(coreIdx, landmarkIdx)
	} else {
		v = wt.FromWeight(coreIdx, landmarkIdx)
	}
	if v == ShortInfinity {
		return ShortMax
	}
	return v
}

// InitActiveLandmarks resolves the subnetwork of fromGraphID/toGraphID,
// ranks that subnetwork's landmarks by triangle-inequality gap, and
// populates the caller-owned activeIdx/activeFroms/activeTos arrays (each of
// length A) with the top A, per spec.md §4.9. On a re-pick (activeIdx[0]
// already set from a previous call), at most two previously active
// landmarks are preserved among the new top picks.
//
// Returns ErrUnreachableSubnetwork if either endpoint's subnetwork is unset
// or unclear, ErrDisconnectedSubnetworks if the two differ.
func InitActiveLandmarks(
	wt *WeightTable,
	subnet *SubnetworkTable,
	idMap *core.NodeIDMap,
	fromGraphID, toGraphID uint32,
	reverse bool,
	activeIdx []uint32,
	activeFroms, activeTos []uint16,
) error {
	fromCore, ok1 := idMap.CoreIndex(fromGraphID)
	toCore, ok2 := idMap.CoreIndex(toGraphID)
	if !ok1 || !ok2 {
		return ErrUnreachableSubnetwork
	}

	subFrom := subnet.Get(fromCore)
	subTo := subnet.Get(toCore)
	if subFrom == SubnetworkUnset || subFrom == SubnetworkUnclear ||
		subTo == SubnetworkUnset || subTo == SubnetworkUnclear {
		return ErrUnreachableSubnetwork
	}
	if subFrom != subTo {
		return ErrDisconnectedSubnetworks
	}

	k := wt.K()
	type scored struct {
		landmark uint32
		score    float64
	}
	ranked := make([]scored, k)
	for l := uint32(0); l < k; l++ {
		fromScore := float64(readWeight(wt, toCore, l, false)) - float64(readWeight(wt, fromCore, l, false))
		toScore := float64(readWeight(wt, fromCore, l, true)) - float64(readWeight(wt, toCore, l, true))
		score := fromScore
		if toScore > score {
			score = toScore
		}
		if reverse {
			score = -score
		}
		ranked[l] = scored{landmark: l, score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	a := len(activeIdx)
	picked := make([]uint32, 0, a)

	if a > 0 && activeIdx[0] != NoLandmark {
		prevSet := make(map[uint32]bool, a)
		for _, idx := range activeIdx {
			if idx != NoLandmark {
				prevSet[idx] = true
			}
		}
		kept := 0
		for _, r := range ranked {
			if kept >= 2 {
				break
			}
			if prevSet[r.landmark] {
				picked = append(picked, r.landmark)
				kept++
			}
		}
	}

	for _, r := range ranked {
		if len(picked) >= a {
			break
		}
		if containsUint32(picked, r.landmark) {
			continue
		}
		picked = append(picked, r.landmark)
	}

	for i := 0; i < a; i++ {
		if i >= len(picked) {
			activeIdx[i] = NoLandmark
			continue
		}
		l := picked[i]
		activeIdx[i] = l
		activeFroms[i] = readWeight(wt, toCore, l, false)
		activeTos[i] = readWeight(wt, toCore, l, true)
	}
	return nil
}

func containsUint32(s []uint32, v uint32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
