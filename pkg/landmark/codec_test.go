package landmark

import (
	"math"
	"testing"
)

func TestNewCodecRejectsBadFactor(t *testing.T) {
	cases := []float64{0, -1, math.NaN(), math.Inf(1), float64(math.MaxInt32) / 1e6 * 2}
	for _, f := range cases {
		if _, err := NewCodec(f); err != ErrFactorOverflow {
			t.Errorf("NewCodec(%v): got err %v, want ErrFactorOverflow", f, err)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c, err := NewCodec(0.01)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	v, sat, err := c.Encode(100)
	if err != nil || sat {
		t.Fatalf("Encode(100): v=%d sat=%v err=%v", v, sat, err)
	}
	got := c.Decode(v)
	if math.Abs(got-100) > 2*c.Factor() {
		t.Errorf("round trip: got %f, want ~100", got)
	}
}

func TestEncodeSaturates(t *testing.T) {
	c, _ := NewCodec(0.01)
	v, sat, err := c.Encode(1e6)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !sat || v != ShortMax {
		t.Fatalf("expected saturation to ShortMax, got v=%d sat=%v", v, sat)
	}
}

func TestEncodeValueOutOfRange(t *testing.T) {
	c, _ := NewCodec(1e-20)
	_, _, err := c.Encode(1e20)
	if err != ErrValueOutOfRange {
		t.Fatalf("expected ErrValueOutOfRange, got %v", err)
	}
}

func TestDecodeInfinitySentinel(t *testing.T) {
	c, _ := NewCodec(1)
	if got := c.Decode(ShortInfinity); !math.IsInf(got, 1) {
		t.Fatalf("Decode(ShortInfinity) = %f, want +Inf", got)
	}
}

func TestIsSaturatedAndIsUnset(t *testing.T) {
	if !IsSaturated(ShortMax) || IsSaturated(ShortInfinity) || IsSaturated(5) {
		t.Error("IsSaturated should be true only for ShortMax")
	}
	if !IsUnset(ShortInfinity) || IsUnset(ShortMax) || IsUnset(5) {
		t.Error("IsUnset should be true only for ShortInfinity")
	}
}

func TestFactorFromMaxWeight(t *testing.T) {
	got := FactorFromMaxWeight(65536)
	if got != 1 {
		t.Errorf("FactorFromMaxWeight(65536) = %f, want 1", got)
	}
}
