package kernel

// DotN computes the reproducible dot product of the first n elements of x
// and y. x and y may alias; each index is read exactly once. The
// iteration order does not affect the returned bit pattern.
func DotN(x, y []float64, n int) float64 {
	var s State
	for i := 0; i < n; i++ {
		s.Accumulate(x[i], y[i])
	}
	return s.Finalize()
}

// Dot computes the reproducible dot product of two equal-length sequences.
// It panics if len(x) != len(y); every caller controls its own slices, so a
// length mismatch is a programming error, not a recoverable runtime
// condition.
func Dot(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("kernel: Dot called with mismatched slice lengths")
	}
	return DotN(x, y, len(x))
}
