package kernel

import "github.com/oisee/reprodot/pkg/ieee754"

// bottomSubnormal is -1074 - AccEmin: the bit position of the lowest
// fraction bit of a subnormal result within the accumulator.
const bottomSubnormal = -1074 - AccEmin

// Finalize produces the final binary64 from the accumulated state,
// applying the exceptional precedence table before falling back to the
// bit-exact finalizer.
func (s *State) Finalize() float64 {
	f := s.Flags

	switch {
	case f.SawNaN || f.SawInvalidZeroInf:
		return ieee754.CanonicalNaN()
	case f.SawPosInf && f.SawNegInf:
		return ieee754.CanonicalNaN()
	case f.SawPosInf:
		return ieee754.PackInf(+1)
	case f.SawNegInf:
		return ieee754.PackInf(-1)
	case f.Overflow:
		switch cmp := compareAcc(&s.Pos, &s.Neg); {
		case cmp == 0:
			return ieee754.PackZero()
		case cmp > 0:
			return ieee754.PackInf(+1)
		default:
			return ieee754.PackInf(-1)
		}
	}

	return finalizeExact(&s.Pos, &s.Neg)
}
