package core

import "github.com/paulmach/orb"

// LandmarkSuggestion is an operator-supplied hint: within Region, prefer
// NodeIDs (graph node ids, in priority order) as landmarks over the generic
// farthest-node search — e.g. known border crossings or ferry terminals a
// farthest-node search alone might not surface.
type LandmarkSuggestion struct {
	Name string
	// Region, if non-zero, restricts the suggestion to start nodes whose
	// coordinates fall inside this bound. A zero Region matches any start
	// node (a global fallback suggestion).
	Region  orb.Bound
	NodeIDs []uint32
}

// hasRegion reports whether s carries a non-default Region restriction.
func (s LandmarkSuggestion) hasRegion() bool {
	return s.Region != orb.Bound{}
}

// Covers reports whether s applies to a start node at (lat, lon): either s
// has no region restriction, or (lat, lon) falls inside it.
func (s LandmarkSuggestion) Covers(lat, lon float64) bool {
	return !s.hasRegion() || BBoxContains(s.Region, lat, lon)
}

// BBoxContains reports whether (lat, lon) falls inside b. A zero Bound
// (never set) contains nothing, matching the "no restriction configured"
// case being handled by the caller rather than silently matching everywhere.
func BBoxContains(b orb.Bound, lat, lon float64) bool {
	if b == (orb.Bound{}) {
		return false
	}
	return b.Contains(orb.Point{lon, lat})
}
