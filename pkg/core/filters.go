package core

// FilterEdge is the narrow view of an edge that EdgeFilter implementations
// inspect. It deliberately carries only what a filter can decide on — no
// weight, no shortcut details — so filters stay composable predicates
// rather than reaching back into graph internals.
type FilterEdge struct {
	ID       uint32
	From, To uint32
	IsCore   bool // whether the To endpoint is a core node
	AllowFwd bool
	AllowBwd bool
}

// EdgeFilter decides whether an edge may be traversed.
type EdgeFilter interface {
	Accept(e FilterEdge) bool
}

// EdgeFilterFunc adapts a function to EdgeFilter.
type EdgeFilterFunc func(e FilterEdge) bool

// Accept implements EdgeFilter.
func (f EdgeFilterFunc) Accept(e FilterEdge) bool { return f(e) }

// inCoreFilter implements spec.md §4.4's InCore(fwd, bwd): true iff both
// endpoints have level >= coreLevel and the requested direction flags
// permit; edges to a non-core node pass through unconditionally (the
// "exit-ramp" case). Graph's own construction never produces an edge whose
// To endpoint is non-core (see coregraph.go), so the pass-through branch is
// preserved for contract fidelity but is dormant against this Graph; a
// caller building a FilterEdge view over the raw (uncontracted) graph would
// exercise it.
type inCoreFilter struct {
	fwd, bwd bool
}

// InCore returns an EdgeFilter requiring the given access directions on
// edges between two core nodes.
func InCore(fwd, bwd bool) EdgeFilter {
	return inCoreFilter{fwd: fwd, bwd: bwd}
}

// Accept implements EdgeFilter.
func (f inCoreFilter) Accept(e FilterEdge) bool {
	if !e.IsCore {
		return true // exit ramp: pass through unconditionally
	}
	if f.fwd && !e.AllowFwd {
		return false
	}
	if f.bwd && !e.AllowBwd {
		return false
	}
	return true
}

// blockedEdgesFilter rejects edges whose ID is in the blocked set.
type blockedEdgesFilter struct {
	blocked map[uint32]struct{}
}

// BlockedEdges returns an EdgeFilter that rejects edges in ids.
func BlockedEdges(ids []uint32) EdgeFilter {
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return blockedEdgesFilter{blocked: set}
}

// BlockedEdgeSet is an IntSet-like reusable blocked-edge collection, built
// once (e.g. from BorderEdges) and shared across many filter instances.
type BlockedEdgeSet struct {
	ids map[uint32]struct{}
}

// NewBlockedEdgeSet wraps an existing id set.
func NewBlockedEdgeSet(ids map[uint32]struct{}) *BlockedEdgeSet {
	if ids == nil {
		ids = map[uint32]struct{}{}
	}
	return &BlockedEdgeSet{ids: ids}
}

// Filter returns an EdgeFilter view over this set.
func (s *BlockedEdgeSet) Filter() EdgeFilter {
	return blockedEdgesFilter{blocked: s.ids}
}

// Accept implements EdgeFilter.
func (f blockedEdgesFilter) Accept(e FilterEdge) bool {
	_, blocked := f.blocked[e.ID]
	return !blocked
}

// bothDirectionsFilter accepts only edges that permit travel in both
// directions.
type bothDirectionsFilter struct{}

// BothDirections returns an EdgeFilter accepting only edges with both
// forward and reverse access set.
func BothDirections() EdgeFilter {
	return bothDirectionsFilter{}
}

// Accept implements EdgeFilter.
func (bothDirectionsFilter) Accept(e FilterEdge) bool {
	return e.AllowFwd && e.AllowBwd
}

// sequenceFilter AND-composes a list of filters.
type sequenceFilter struct {
	filters []EdgeFilter
}

// Sequence returns an EdgeFilter that accepts only edges every given filter
// accepts.
func Sequence(filters ...EdgeFilter) EdgeFilter {
	flat := make([]EdgeFilter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			flat = append(flat, f)
		}
	}
	return sequenceFilter{filters: flat}
}

// Accept implements EdgeFilter.
func (f sequenceFilter) Accept(e FilterEdge) bool {
	for _, sub := range f.filters {
		if !sub.Accept(e) {
			return false
		}
	}
	return true
}
