package landmark

import (
	"log"

	"github.com/azybler/corelandmarks/pkg/core"
	"github.com/azybler/corelandmarks/pkg/weighting"
)

// saturationWarnThreshold is the fraction of a landmark's visited nodes that
// must saturate before a warning is logged recommending a larger factor.
const saturationWarnThreshold = 0.10

// FillerOptions carries the edge-filter collaborators shared with the
// selector's build, so forward/reverse passes see the same blocked-edge and
// user-filter restrictions the component was discovered under.
type FillerOptions struct {
	Blocked    core.EdgeFilter
	UserFilter core.EdgeFilter
	Cancel     func() bool
}

func (opts FillerOptions) sequence(base core.EdgeFilter) core.EdgeFilter {
	filters := []core.EdgeFilter{base}
	if opts.Blocked != nil {
		filters = append(filters, opts.Blocked)
	}
	if opts.UserFilter != nil {
		filters = append(filters, opts.UserFilter)
	}
	return core.Sequence(filters...)
}

// FillWeights runs the forward and reverse Dijkstra passes for every
// landmark in landmarkGraphIDs and writes the quantised weights into wt at
// subnetwork subnetID, per spec.md §4.8. It returns ok=false (not an error)
// when the first landmark's forward pass finds a settled node already
// tagged with a different, non-sentinel subnetwork id — the overlapping-
// component hazard spec.md calls out for one-way graphs — in which case the
// whole subnetwork must be abandoned by the caller.
func FillWeights(
	g *core.Graph,
	idMap *core.NodeIDMap,
	w weighting.Weighting,
	wt *WeightTable,
	subnet *SubnetworkTable,
	subnetID int8,
	landmarkGraphIDs []uint32,
	opts FillerOptions,
) (ok bool, err error) {
	weightFn := func(e core.Edge) float64 {
		return w.CalcWeight(e.ID, e.From, e.To, e.Weight, false, -1)
	}

	fwdFilter := opts.sequence(core.InCore(false, true))
	bwdFilter := opts.sequence(core.InCore(true, false))

	for i, graphID := range landmarkGraphIDs {
		landmarkIdx, found := idMap.CoreIndex(graphID)
		if !found {
			continue // shouldn't happen: landmarks are always core nodes
		}

		fwd, cont := runDijkstra(g, false, fwdFilter, weightFn, []uint32{landmarkIdx}, opts.Cancel)
		if !cont {
			return false, ErrCancelled
		}
		if i == 0 {
			if !tagSubnetwork(subnet, fwd.settled, subnetID) {
				return false, nil
			}
		}
		writeWeights(wt, w.Name(), fwd, uint32(i), false)

		bwd, cont := runDijkstra(g, true, bwdFilter, weightFn, []uint32{landmarkIdx}, opts.Cancel)
		if !cont {
			return false, ErrCancelled
		}
		writeWeights(wt, w.Name(), bwd, uint32(i), true)
	}

	return true, nil
}

// tagSubnetwork marks every settled core node with subnetID. Returns false
// if a settled node already carries a different, non-sentinel subnetwork id
// — overlapping components under this edge filter.
func tagSubnetwork(subnet *SubnetworkTable, settled []bool, subnetID int8) bool {
	for v, isSettled := range settled {
		if !isSettled {
			continue
		}
		existing := subnet.Get(uint32(v))
		if existing != SubnetworkUnset && existing != SubnetworkUnclear && existing != subnetID {
			return false
		}
		subnet.Set(uint32(v), subnetID)
	}
	return true
}

func writeWeights(wt *WeightTable, weightingName string, result dijkstraResult, landmarkIdx uint32, toOffset bool) {
	codec := wt.Codec()
	saturations := 0

	for v, isSettled := range result.settled {
		if !isSettled {
			continue
		}
		encoded, saturated, err := codec.Encode(result.dist[v])
		if err != nil {
			// A single unrepresentable distance doesn't abort the whole
			// landmark: leave it at ShortInfinity (never reached) rather
			// than writing a garbage value.
			continue
		}
		if saturated {
			saturations++
		}
		if toOffset {
			wt.SetToWeight(uint32(v), landmarkIdx, encoded)
		} else {
			wt.SetFromWeight(uint32(v), landmarkIdx, encoded)
		}
	}

	if result.settledN > 0 && float64(saturations)/float64(result.settledN) > saturationWarnThreshold {
		log.Printf("landmark: weighting %q landmark %d: %d/%d weights saturated, consider a larger factor",
			weightingName, landmarkIdx, saturations, result.settledN)
	}
}
