package spatialrule

import (
	"github.com/azybler/corelandmarks/pkg/core"
	"github.com/azybler/corelandmarks/pkg/graph"
)

// BorderEdges scans every edge of g and emits the id of every edge whose
// endpoints fall in different rule regions under lookup. When lookup is nil
// it returns an empty set: spec.md treats the lookup as optional, and a
// caller with no rule engine configured simply blocks nothing on rule
// grounds.
func BorderEdges(chg *graph.CHGraph, g *core.Graph, idMap *core.NodeIDMap, lookup SpatialRuleLookup) map[uint32]struct{} {
	borders := make(map[uint32]struct{})
	if lookup == nil {
		return borders
	}

	n := g.NumCoreNodes()
	for coreIdx := uint32(0); coreIdx < n; coreIdx++ {
		fromNode := idMap.GraphNodeID(coreIdx)
		fromRule := lookup.LookupRule(chg.NodeLat[fromNode], chg.NodeLon[fromNode])

		g.Explore(coreIdx, false, nil, func(e core.Edge) {
			toNode := idMap.GraphNodeID(e.To)
			toRule := lookup.LookupRule(chg.NodeLat[toNode], chg.NodeLon[toNode])
			if fromRule != toRule {
				borders[e.ID] = struct{}{}
			}
		})
	}

	return borders
}
