// Package spatialrule is the optional injectable collaborator that assigns a
// rule region id to a (lat, lon) pair. The landmark subsystem only consumes
// it through BorderEdges; a full polygon-based rule engine is out of scope
// here, so GridRuleLookup backs it with a simple cell grid, good enough to
// exercise the border-edge detector in tests and small deployments.
package spatialrule

import (
	"math"

	"github.com/paulmach/orb"
)

// RuleID identifies a spatial rule region. The zero value is a valid region
// id, not a sentinel — callers distinguish "no lookup configured" by passing
// a nil SpatialRuleLookup, not by a special RuleID.
type RuleID int32

// SpatialRuleLookup resolves the rule region covering a coordinate.
type SpatialRuleLookup interface {
	// LookupRule returns the rule region id covering (lat, lon).
	LookupRule(lat, lon float64) RuleID
	// Size returns the number of distinct rule regions.
	Size() int32
}

// GridRuleLookup assigns a rule id by snapping (lat, lon) to a fixed-size
// cell of an orb.Bound extent and numbering cells in row-major order. It
// exists to give BorderEdges something concrete to exercise; production
// rule engines (country/region polygons) are an out-of-scope collaborator.
// The extent and per-cell math are expressed in orb.Bound/orb.Point, the
// same geometry types pkg/core.LandmarkSuggestion uses for its region
// restriction, rather than a bespoke lat/lon pair.
type GridRuleLookup struct {
	extent      orb.Bound
	cellSizeDeg float64
	cols        int32
	rows        int32
}

// NewGridRuleLookup builds a grid covering extent with cells of cellSizeDeg
// degrees on a side.
func NewGridRuleLookup(extent orb.Bound, cellSizeDeg float64) *GridRuleLookup {
	if cellSizeDeg <= 0 {
		cellSizeDeg = 1.0
	}
	size := extent.Size()
	cols := int32(math.Ceil(size[0]/cellSizeDeg)) + 1
	rows := int32(math.Ceil(size[1]/cellSizeDeg)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &GridRuleLookup{
		extent:      extent,
		cellSizeDeg: cellSizeDeg,
		cols:        cols,
		rows:        rows,
	}
}

// LookupRule implements SpatialRuleLookup.
func (g *GridRuleLookup) LookupRule(lat, lon float64) RuleID {
	p := orb.Point{lon, lat}
	min := g.extent.Min
	col := int32((p[0] - min[0]) / g.cellSizeDeg)
	row := int32((p[1] - min[1]) / g.cellSizeDeg)
	col = clamp(col, 0, g.cols-1)
	row = clamp(row, 0, g.rows-1)
	return RuleID(row*g.cols + col)
}

// Size implements SpatialRuleLookup.
func (g *GridRuleLookup) Size() int32 {
	return g.rows * g.cols
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
