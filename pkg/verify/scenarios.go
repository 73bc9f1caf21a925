// Package verify re-runs the reproducible dot-product kernel against a
// fixed set of canonical scenarios, plus permutation and resharding fuzz
// checks that the result's bit pattern never moves regardless of evaluation
// order or shard count.
package verify

import (
	"math"

	"github.com/oisee/reprodot/pkg/ieee754"
	"github.com/oisee/reprodot/pkg/kernel"
)

// Scenario is one fixed-input case with a known expected bit pattern.
type Scenario struct {
	Name     string
	X, Y     []float64
	WantBits uint64
}

// CanonicalScenarios are seven fixed input pairs with known expected bit
// patterns. The reordering pair below is checked separately, for order
// invariance rather than against a fixed expected value — only the
// reordering must not change the bit pattern, not the value itself.
var CanonicalScenarios = []Scenario{
	{
		Name:     "exact-small-case",
		X:        []float64{1.0, 2.0, 3.0},
		Y:        []float64{4.0, 5.0, 6.0},
		WantBits: math.Float64bits(32.0),
	},
	{
		Name:     "nan-precedence",
		X:        []float64{math.NaN(), 1.0},
		Y:        []float64{2.0, 3.0},
		WantBits: ieee754.CanonicalNaNBits,
	},
	{
		Name:     "zero-times-infinity",
		X:        []float64{0.0},
		Y:        []float64{math.Inf(1)},
		WantBits: ieee754.CanonicalNaNBits,
	},
	{
		Name:     "mixed-infinities",
		X:        []float64{math.Inf(1), math.Inf(-1)},
		Y:        []float64{2.0, 2.0},
		WantBits: ieee754.CanonicalNaNBits,
	},
	{
		Name:     "positive-infinity",
		X:        []float64{math.Inf(1)},
		Y:        []float64{1.0},
		WantBits: math.Float64bits(math.Inf(1)),
	},
	{
		Name:     "negative-infinity",
		X:        []float64{math.Inf(-1)},
		Y:        []float64{1.0},
		WantBits: math.Float64bits(math.Inf(-1)),
	},
	{
		Name:     "subnormal-accumulation",
		X:        []float64{math.Ldexp(1.0, -1074), math.Ldexp(1.0, -1074), math.Ldexp(1.0, -1074), math.Ldexp(1.0, -1074)},
		Y:        []float64{1.0, 1.0, 1.0, 1.0},
		WantBits: math.Float64bits(4 * math.Ldexp(1.0, -1074)),
	},
}

// ReorderingPair holds two index-wise-equal vector pairs in different
// orders that must still produce a bit-identical result.
var ReorderingPair = struct {
	X1, Y1 []float64
	X2, Y2 []float64
}{
	X1: []float64{1e308, 1e-308, 3.0, 5.0, 1e-308},
	Y1: []float64{1e-308, 1e308, -3.0, 2.0, -1e-308},
	X2: []float64{3.0, 1e-308, 5.0, 1e308, 1e-308},
	Y2: []float64{-3.0, -1e-308, 2.0, 1e-308, 1e308},
}

// Result is the outcome of checking one scenario.
type Result struct {
	Name string
	Pass bool
	Got  uint64
	Want uint64
}

// RunCanonicalScenarios evaluates every fixed scenario plus the reordering
// pair, returning one Result per check.
func RunCanonicalScenarios() []Result {
	results := make([]Result, 0, len(CanonicalScenarios)+1)
	for _, sc := range CanonicalScenarios {
		got := math.Float64bits(kernel.Dot(sc.X, sc.Y))
		results = append(results, Result{
			Name: sc.Name,
			Pass: got == sc.WantBits,
			Got:  got,
			Want: sc.WantBits,
		})
	}

	r1 := math.Float64bits(kernel.Dot(ReorderingPair.X1, ReorderingPair.Y1))
	r2 := math.Float64bits(kernel.Dot(ReorderingPair.X2, ReorderingPair.Y2))
	results = append(results, Result{
		Name: "reordering-bit-identical",
		Pass: r1 == r2,
		Got:  r2,
		Want: r1,
	})
	return results
}
