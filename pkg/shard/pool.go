// Package shard parallelizes a reproducible dot product across goroutines,
// one partial kernel.State per index range, merged via limb-wise
// accumulator addition and a logical-or of flags before finalizing once.
// The result is invariant under whatever partition is chosen.
package shard

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/oisee/reprodot/pkg/kernel"
)

// Pool runs sharded dot-product computations across a fixed number of
// worker goroutines, with an atomic counter tracking elements processed.
type Pool struct {
	Workers   int
	processed atomic.Int64
}

// NewPool creates a pool with the given worker count; a count <= 0 defaults
// to runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{Workers: workers}
}

// Processed returns the number of input pairs folded into partial states so
// far (useful for progress reporting).
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// DotN computes the reproducible dot product of the first n elements of x
// and y, partitioning [0, n) into p.Workers contiguous ranges. The returned
// bit pattern is identical to kernel.DotN's for the same (x, y, n).
func (p *Pool) DotN(x, y []float64, n int) float64 {
	s := p.runShards(x, y, n)
	return s.Finalize()
}

// Dot computes the reproducible dot product of two equal-length sequences
// using the pool's worker count.
func (p *Pool) Dot(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("shard: Dot called with mismatched slice lengths")
	}
	return p.DotN(x, y, len(x))
}

// runShards partitions [0, n) into contiguous ranges, computes a partial
// kernel.State per range concurrently, and merges them into one.
func (p *Pool) runShards(x, y []float64, n int) kernel.State {
	workers := p.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		if n == 0 {
			workers = 1
		} else {
			workers = n
		}
	}

	chunk := (n + workers - 1) / workers
	partials := make([]kernel.State, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			var s kernel.State
			for i := lo; i < hi; i++ {
				s.Accumulate(x[i], y[i])
			}
			partials[w] = s
			p.processed.Add(int64(hi - lo))
		}(w, lo, hi)
	}
	wg.Wait()

	var merged kernel.State
	for i := range partials {
		if i == 0 {
			merged = partials[0]
			continue
		}
		merged.Merge(partials[i])
	}
	return merged
}
