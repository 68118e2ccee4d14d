package landmark

import (
	"github.com/azybler/corelandmarks/pkg/core"
)

// SelectorOptions configures landmark selection for one subnetwork.
type SelectorOptions struct {
	K            uint32
	MinimumNodes uint32
	Blocked      core.EdgeFilter // e.g. core.BlockedEdges(borderEdges); may be nil
	UserFilter   core.EdgeFilter // additional caller-supplied predicate; may be nil
	Suggestions  []core.LandmarkSuggestion
	Cancel       func() bool
}

func (opts SelectorOptions) filter() core.EdgeFilter {
	filters := []core.EdgeFilter{core.InCore(true, true)}
	if opts.Blocked != nil {
		filters = append(filters, opts.Blocked)
	}
	if opts.UserFilter != nil {
		filters = append(filters, opts.UserFilter)
	}
	return core.Sequence(filters...)
}

// SelectLandmarks picks K geographically spread landmark graph-node ids for
// the subnetwork reachable from the core index startIdx, per spec.md §4.7.
//
// ok is false when the reachable component turned out smaller than
// MinimumNodes under the selection filter — the caller should tag it
// UNCLEAR, not treat it as an error. A non-nil err is fatal to the whole
// build (ErrInsufficientSuggestions, ErrCancelled).
func SelectLandmarks(g *core.Graph, idMap *core.NodeIDMap, nodeLat, nodeLon []float64, startIdx uint32, opts SelectorOptions) (landmarks []uint32, ok bool, err error) {
	startGraphID := idMap.GraphNodeID(startIdx)

	for i := range opts.Suggestions {
		s := &opts.Suggestions[i]
		if !s.Covers(nodeLat[startGraphID], nodeLon[startGraphID]) {
			continue
		}
		if uint32(len(s.NodeIDs)) < opts.K {
			return nil, false, ErrInsufficientSuggestions
		}
		return append([]uint32(nil), s.NodeIDs[:opts.K]...), true, nil
	}

	hop := core.NewHopWeighting(g.CHGraph())
	weight := func(e core.Edge) float64 { return hop.Weight(e) }
	filter := opts.filter()

	result, cont := runDijkstra(g, false, filter, weight, []uint32{startIdx}, opts.Cancel)
	if !cont {
		return nil, false, ErrCancelled
	}
	if uint32(result.settledN) < opts.MinimumNodes {
		return nil, false, nil
	}

	picked := make([]uint32, 0, opts.K)
	picked = append(picked, result.lastSettled)

	for i := uint32(1); i < opts.K; i++ {
		if opts.Cancel != nil && opts.Cancel() {
			return nil, false, ErrCancelled
		}
		result, cont = runDijkstra(g, false, filter, weight, picked, opts.Cancel)
		if !cont {
			return nil, false, ErrCancelled
		}
		picked = append(picked, result.lastSettled)
	}

	ids := make([]uint32, len(picked))
	for i, coreIdx := range picked {
		ids[i] = idMap.GraphNodeID(coreIdx)
	}
	return ids, true, nil
}
