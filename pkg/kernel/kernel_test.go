package kernel

import (
	"math"
	"testing"

	"github.com/oisee/reprodot/pkg/ieee754"
)

func bits(f float64) uint64 { return math.Float64bits(f) }

func TestExactSmallCase(t *testing.T) {
	x := []float64{1.0, 2.0, 3.0}
	y := []float64{4.0, 5.0, 6.0}
	got := Dot(x, y)
	if got != 32.0 {
		t.Fatalf("got %v, want 32.0", got)
	}
}

func TestOrderIndependence(t *testing.T) {
	x1 := []float64{1e308, 1e-308, 3.0, 5.0, 1e-308}
	y1 := []float64{1e-308, 1e308, -3.0, 2.0, -1e-308}
	r1 := Dot(x1, y1)

	x2 := []float64{3.0, 1e-308, 5.0, 1e308, 1e-308}
	y2 := []float64{-3.0, -1e-308, 2.0, 1e-308, 1e308}
	r2 := Dot(x2, y2)

	if bits(r1) != bits(r2) {
		t.Fatalf("reordering changed bit pattern: %016x vs %016x", bits(r1), bits(r2))
	}
}

func TestNaNPrecedence(t *testing.T) {
	x := []float64{math.NaN(), 1.0}
	y := []float64{2.0, 3.0}
	got := Dot(x, y)
	if bits(got) != ieee754.CanonicalNaNBits {
		t.Fatalf("got %016x, want canonical NaN %016x", bits(got), ieee754.CanonicalNaNBits)
	}
}

func TestZeroTimesInf(t *testing.T) {
	got := Dot([]float64{0.0}, []float64{math.Inf(1)})
	if bits(got) != ieee754.CanonicalNaNBits {
		t.Fatalf("0*Inf: got %016x, want canonical NaN", bits(got))
	}
}

func TestMixedInfinities(t *testing.T) {
	x := []float64{math.Inf(1), math.Inf(-1)}
	y := []float64{2.0, 2.0}
	got := Dot(x, y)
	if bits(got) != ieee754.CanonicalNaNBits {
		t.Fatalf("+Inf and -Inf: got %016x, want canonical NaN", bits(got))
	}
}

func TestSingleSignedInfinity(t *testing.T) {
	pos := Dot([]float64{math.Inf(1)}, []float64{1.0})
	if !math.IsInf(pos, 1) {
		t.Fatalf("expected +Inf, got %v", pos)
	}
	neg := Dot([]float64{math.Inf(-1)}, []float64{1.0})
	if !math.IsInf(neg, -1) {
		t.Fatalf("expected -Inf, got %v", neg)
	}
}

func TestSubnormalAccumulation(t *testing.T) {
	a := math.Ldexp(1.0, -1074)
	x := []float64{a, a, a, a}
	y := []float64{1.0, 1.0, 1.0, 1.0}
	got := Dot(x, y)
	if got == 0.0 {
		t.Fatal("expected non-zero subnormal result")
	}
	want := 4 * math.Ldexp(1.0, -1074)
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSmallestSubnormalProductIsKept(t *testing.T) {
	// 2^-1074 * 2^-1074 has Eprod = -2148 = AccEmin exactly: right at the
	// boundary, it is NOT dropped (Eprod < AccEmin is the drop condition).
	// Its value 2^-2148 is far below half the smallest subnormal, so the
	// finalized result rounds to +0.0.
	a := math.Ldexp(1.0, -1074)
	var s State
	s.Accumulate(a, a)
	if s.Pos.MSBIndex() != 0 {
		t.Fatal("product at the boundary exponent must not be dropped")
	}
	if got := Dot([]float64{a}, []float64{a}); bits(got) != bits(0.0) {
		t.Fatalf("got %016x, want +0.0", bits(got))
	}

	// A product whose Eprod would fall below AccEmin only arises from
	// operands outside binary64's representable range, so there is no
	// constructible finite binary64 test case below the boundary; this
	// documents the drop threshold instead of asserting it.
}

func TestSignSymmetry(t *testing.T) {
	x := []float64{1.5, -2.25, 1e300, 1e-300}
	y := []float64{3.0, 4.0, 1e-300, 1e300}

	base := Dot(x, y)

	negX := make([]float64, len(x))
	for i, v := range x {
		negX[i] = -v
	}
	negY := make([]float64, len(y))
	for i, v := range y {
		negY[i] = -v
	}

	r1 := Dot(negX, y)
	r2 := Dot(x, negY)

	want := -base
	if base == 0 {
		want = 0 // +0.0 maps to +0.0, never -0.0.
	}
	if bits(r1) != bits(want) {
		t.Fatalf("Dot(-x,y) = %v, want %v", r1, want)
	}
	if bits(r2) != bits(want) {
		t.Fatalf("Dot(x,-y) = %v, want %v", r2, want)
	}
}

func TestZeroLengthInputReturnsPositiveZero(t *testing.T) {
	got := DotN(nil, nil, 0)
	if bits(got) != bits(0.0) {
		t.Fatalf("got %016x, want +0.0", bits(got))
	}
}

func TestAliasingInputs(t *testing.T) {
	x := []float64{2.0, 3.0, 4.0}
	got := Dot(x, x)
	want := 4.0 + 9.0 + 16.0
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMergeMatchesSequential(t *testing.T) {
	x := []float64{1e308, 1e-308, 3.0, 5.0, 1e-308, -7.5, 2.0}
	y := []float64{1e-308, 1e308, -3.0, 2.0, -1e-308, 2.0, -7.5}

	var whole State
	for i := range x {
		whole.Accumulate(x[i], y[i])
	}

	var a, b State
	mid := len(x) / 2
	for i := 0; i < mid; i++ {
		a.Accumulate(x[i], y[i])
	}
	for i := mid; i < len(x); i++ {
		b.Accumulate(x[i], y[i])
	}
	a.Merge(b)

	if bits(whole.Finalize()) != bits(a.Finalize()) {
		t.Fatalf("sharded result %016x != sequential result %016x",
			bits(a.Finalize()), bits(whole.Finalize()))
	}
}
