package landmark

import (
	"math"

	"github.com/azybler/corelandmarks/pkg/weighting"
)

// ShortInfinity is the reserved 16-bit sentinel for "not reached". Never
// written by Encode; callers upstream of the search coerce it to ShortMax.
const ShortInfinity uint16 = 0xFFFF

// ShortMax is the reserved 16-bit sentinel for "saturated" (the true weight
// exceeded what factor could represent).
const ShortMax uint16 = 0xFFFE

// bboxDiagonalCapMeters bounds the distance estimate used to derive factor
// when no maxWeight is supplied: 30,000 km, clamping a degenerate or
// unrealistically large bounding box.
const bboxDiagonalCapMeters = 30_000_000

// Codec converts real-valued weights to and from the 16-bit quantised
// representation stored in the weight table, using a single per-build
// factor.
type Codec struct {
	factor float64
}

// NewCodec validates factor and returns a Codec using it. factor must be
// positive and finite, and factor*1e6 must fit an int32 (the header stores
// round(factor*1e6)).
func NewCodec(factor float64) (*Codec, error) {
	if !(factor > 0) || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return nil, ErrFactorOverflow
	}
	if factor*1e6 > math.MaxInt32 {
		return nil, ErrFactorOverflow
	}
	return &Codec{factor: factor}, nil
}

// Factor returns the codec's scaling factor.
func (c *Codec) Factor() float64 { return c.factor }

// FactorMicros returns round(factor*1e6), the value stored in the weight
// table header.
func (c *Codec) FactorMicros() int32 {
	return int32(math.Round(c.factor * 1e6))
}

// FactorFromMaxWeight returns maxWeight / 2^16, the factor spec.md §4.1
// derives from an explicit maxWeight.
func FactorFromMaxWeight(maxWeight float64) float64 {
	return maxWeight / 65536.0
}

// EstimateMaxWeight estimates maxWeight when the caller doesn't supply one:
// minWeight() of 7x the bounding-box diagonal, clamped to 30,000km when the
// diagonal is invalid or too large.
func EstimateMaxWeight(w weighting.Weighting, bboxDiagonalMeters float64) float64 {
	d := bboxDiagonalMeters * 7
	if bboxDiagonalMeters <= 0 || math.IsNaN(d) || math.IsInf(d, 0) || d > bboxDiagonalCapMeters {
		d = bboxDiagonalCapMeters
	}
	return w.MinWeight(d)
}

// Encode quantises w to a 16-bit weight, returning whether the value
// saturated. Returns ErrValueOutOfRange if w/factor would overflow an int32
// before quantisation. FillWeights does not stop on this error: it leaves
// that node's cell at ShortInfinity and completes the landmark.
func (c *Codec) Encode(w float64) (value uint16, saturated bool, err error) {
	ratio := w / c.factor
	if ratio > math.MaxInt32 {
		return 0, false, ErrValueOutOfRange
	}
	if ratio >= float64(ShortMax) {
		return ShortMax, true, nil
	}
	return uint16(math.Round(ratio)), false, nil
}

// Decode converts a stored 16-bit weight back to a real value. ShortInfinity
// decodes to +Inf; callers forwarding this to the search engine are expected
// to substitute ShortMax instead (documented lossy behaviour, per spec.md
// §4.1).
func (c *Codec) Decode(v uint16) float64 {
	if v == ShortInfinity {
		return math.Inf(1)
	}
	return float64(v) * c.factor
}

// IsSaturated reports whether v is the saturation sentinel.
func IsSaturated(v uint16) bool { return v == ShortMax }

// IsUnset reports whether v is the "unreached" sentinel.
func IsUnset(v uint16) bool { return v == ShortInfinity }
