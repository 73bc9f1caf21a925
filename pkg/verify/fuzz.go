package verify

import (
	"math"
	"math/rand"

	"github.com/oisee/reprodot/pkg/kernel"
	"github.com/oisee/reprodot/pkg/shard"
)

// Fingerprint is the bit pattern of a dot product, compact and directly
// comparable across runs, orderings, and shard counts.
type Fingerprint = uint64

// fingerprint computes the bit pattern of kernel.Dot(x, y).
func fingerprint(x, y []float64) Fingerprint {
	return math.Float64bits(kernel.Dot(x, y))
}

// CheckOrderInvariance runs trials random permutations of (x, y) (permuting
// both the same way, so each index-wise pair is preserved) and reports
// whether every permutation produces the same bit pattern as the
// unpermuted input.
func CheckOrderInvariance(x, y []float64, trials int, rng *rand.Rand) (pass bool, mismatchAt int) {
	want := fingerprint(x, y)
	n := len(x)
	px := make([]float64, n)
	py := make([]float64, n)
	perm := make([]int, n)

	for t := 0; t < trials; t++ {
		for i := range perm {
			perm[i] = i
		}
		rng.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		for i, p := range perm {
			px[i] = x[p]
			py[i] = y[p]
		}
		if fingerprint(px, py) != want {
			return false, t
		}
	}
	return true, -1
}

// CheckShardInvariance computes the dot product with each of workerCounts
// via pkg/shard and reports whether every sharding produces the same bit
// pattern as the unsharded kernel.Dot.
func CheckShardInvariance(x, y []float64, workerCounts []int) (pass bool, badWorkerCount int) {
	want := fingerprint(x, y)
	for _, w := range workerCounts {
		p := shard.NewPool(w)
		got := math.Float64bits(p.Dot(x, y))
		if got != want {
			return false, w
		}
	}
	return true, 0
}

// RandomVectorPair generates n pseudo-random finite binary64 pairs for
// fuzzing, spanning a wide exponent range so products exercise most of the
// accumulator's width.
func RandomVectorPair(n int, rng *rand.Rand) (x, y []float64) {
	x = make([]float64, n)
	y = make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = randFinite(rng)
		y[i] = randFinite(rng)
	}
	return x, y
}

func randFinite(rng *rand.Rand) float64 {
	mantissa := rng.Uint64() & ((uint64(1) << 52) - 1)
	expField := uint64(rng.Intn(2046) + 1) // [1, 2046]: excludes 0 (subnormal) and 0x7FF (inf/nan)
	sign := uint64(rng.Intn(2)) << 63
	u := sign | (expField << 52) | mantissa
	return math.Float64frombits(u)
}
