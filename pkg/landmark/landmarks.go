package landmark

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/azybler/corelandmarks/pkg/core"
	"github.com/azybler/corelandmarks/pkg/graph"
	"github.com/azybler/corelandmarks/pkg/scc"
	"github.com/azybler/corelandmarks/pkg/spatialrule"
	"github.com/azybler/corelandmarks/pkg/weighting"
)

// BuildOptions configures a Landmarks build, per spec.md §4.6-§4.8.
type BuildOptions struct {
	K            uint32
	MinimumNodes uint32
	Lookup       spatialrule.SpatialRuleLookup // optional; nil disables border-edge blocking
	UserFilter   core.EdgeFilter               // optional caller-supplied predicate
	Suggestions  []core.LandmarkSuggestion
	Cancel       func() bool
}

// Landmarks ties the core graph, subnetwork table, and weight table together
// into the build/load/query lifecycle spec.md §4.6-§4.9 describes for one
// weighting.
type Landmarks struct {
	g     *core.Graph
	idMap *core.NodeIDMap
	chg   *graph.CHGraph
	w     weighting.Weighting

	wt     *WeightTable
	subnet *SubnetworkTable

	built bool
}

func tableNames(dir string, w weighting.Weighting) (weightPath, subnetPath string) {
	base := filepath.Join(dir, w.Name())
	return base + ".landmarks", base + ".subnetworks"
}

// Create builds a fresh Landmarks store for chg under dir, named after w.
// Existing backing files under the same names are truncated and overwritten.
func Create(dir string, chg *graph.CHGraph, w weighting.Weighting, opts BuildOptions) (*Landmarks, error) {
	idMap := core.NewNodeIDMap(chg)
	g := core.NewGraph(chg, idMap)

	weightPath, subnetPath := tableNames(dir, w)

	maxWeight := EstimateMaxWeight(w, bboxDiagonal(chg))
	factor := FactorFromMaxWeight(maxWeight)

	wt, err := CreateWeightTable(weightPath, idMap.Len(), opts.K, factor)
	if err != nil {
		return nil, err
	}
	subnet, err := CreateSubnetworkTable(subnetPath, idMap.Len())
	if err != nil {
		wt.Close()
		return nil, err
	}

	l := &Landmarks{g: g, idMap: idMap, chg: chg, w: w, wt: wt, subnet: subnet}
	return l, nil
}

// Load reopens a previously built Landmarks store. Returns ErrGraphMismatch
// if the stored core node count disagrees with chg.
func Load(dir string, chg *graph.CHGraph, w weighting.Weighting) (*Landmarks, error) {
	idMap := core.NewNodeIDMap(chg)
	g := core.NewGraph(chg, idMap)

	weightPath, subnetPath := tableNames(dir, w)

	wt, err := LoadWeightTable(weightPath)
	if err != nil {
		return nil, err
	}
	if wt.CoreNodeCount() != idMap.Len() {
		wt.Close()
		return nil, ErrGraphMismatch
	}
	subnet, err := LoadSubnetworkTable(subnetPath, idMap.Len())
	if err != nil {
		wt.Close()
		return nil, err
	}

	return &Landmarks{g: g, idMap: idMap, chg: chg, w: w, wt: wt, subnet: subnet, built: true}, nil
}

// bboxDiagonal returns the great-circle-ish diagonal estimate EstimateMaxWeight
// expects, computed from the graph's node coordinate extent.
func bboxDiagonal(chg *graph.CHGraph) float64 {
	if chg.NumNodes == 0 {
		return 0
	}
	minLat, maxLat := chg.NodeLat[0], chg.NodeLat[0]
	minLon, maxLon := chg.NodeLon[0], chg.NodeLon[0]
	for i := uint32(1); i < chg.NumNodes; i++ {
		if chg.NodeLat[i] < minLat {
			minLat = chg.NodeLat[i]
		}
		if chg.NodeLat[i] > maxLat {
			maxLat = chg.NodeLat[i]
		}
		if chg.NodeLon[i] < minLon {
			minLon = chg.NodeLon[i]
		}
		if chg.NodeLon[i] > maxLon {
			maxLon = chg.NodeLon[i]
		}
	}
	const metersPerDegree = 111_320.0
	dLat := (maxLat - minLat) * metersPerDegree
	dLon := (maxLon - minLon) * metersPerDegree
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Build computes strongly connected components of the core graph under the
// border-edge filter, selects and fills landmarks for every component large
// enough to matter, and tags the rest UNCLEAR, per spec.md §4.6-§4.8.
// Returns ErrAlreadyInitialized if called twice on the same store.
func (l *Landmarks) Build(opts BuildOptions) error {
	if l.built {
		return ErrAlreadyInitialized
	}

	borders := spatialrule.BorderEdges(l.chg, l.g, l.idMap, opts.Lookup)
	blockedSet := core.NewBlockedEdgeSet(borders)
	blocked := blockedSet.Filter()

	sccFilter := core.Sequence(blocked, opts.UserFilter)
	components := scc.Run(l.g, sccFilter)

	for _, comp := range components {
		if opts.Cancel != nil && opts.Cancel() {
			return ErrCancelled
		}
		if uint32(len(comp)) < opts.MinimumNodes {
			for _, v := range comp {
				l.subnet.Set(v, SubnetworkUnclear)
			}
			continue
		}

		selOpts := SelectorOptions{
			K:            opts.K,
			MinimumNodes: opts.MinimumNodes,
			Blocked:      blocked,
			UserFilter:   opts.UserFilter,
			Suggestions:  opts.Suggestions,
			Cancel:       opts.Cancel,
		}
		landmarks, ok, err := SelectLandmarks(l.g, l.idMap, l.chg.NodeLat, l.chg.NodeLon, comp[0], selOpts)
		if err != nil {
			return err
		}
		if !ok {
			for _, v := range comp {
				l.subnet.Set(v, SubnetworkUnclear)
			}
			continue
		}

		subnetID, err := l.wt.AddSubnetwork(landmarks)
		if err != nil {
			return err
		}

		fillOpts := FillerOptions{Blocked: blocked, UserFilter: opts.UserFilter, Cancel: opts.Cancel}
		filled, err := FillWeights(l.g, l.idMap, l.w, l.wt, l.subnet, int8(subnetID), landmarks, fillOpts)
		if err != nil {
			return err
		}
		if !filled {
			for _, v := range comp {
				l.subnet.Set(v, SubnetworkUnclear)
			}
			continue
		}
	}

	l.built = true
	return nil
}

// Query resolves the active landmarks for a (fromNode, toNode) pair, per
// spec.md §4.9.
func (l *Landmarks) Query(fromGraphID, toGraphID uint32, reverse bool, activeIdx []uint32, activeFroms, activeTos []uint16) error {
	return InitActiveLandmarks(l.wt, l.subnet, l.idMap, fromGraphID, toGraphID, reverse, activeIdx, activeFroms, activeTos)
}

// WeightTable exposes the underlying weight table, e.g. for a routing
// engine's A* heuristic to read FromWeight/ToWeight directly.
func (l *Landmarks) WeightTable() *WeightTable { return l.wt }

// SubnetworkTable exposes the underlying subnetwork table.
func (l *Landmarks) SubnetworkTable() *SubnetworkTable { return l.subnet }

// IDMap exposes the core node id map.
func (l *Landmarks) IDMap() *core.NodeIDMap { return l.idMap }

// Flush persists both backing tables to disk.
func (l *Landmarks) Flush() error {
	if err := l.wt.Flush(); err != nil {
		return fmt.Errorf("landmark: flush weight table: %w", err)
	}
	return l.subnet.Flush()
}

// Close releases both backing tables' resources.
func (l *Landmarks) Close() error {
	err1 := l.wt.Close()
	err2 := l.subnet.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
