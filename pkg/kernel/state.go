// Package kernel implements the exact-accumulation engine at the heart of
// the reproducible dot product: the exceptional-state tracker, the exact
// product former, and the finalizer, built on top of pkg/wideint's
// fixed-width accumulators.
package kernel

import (
	"github.com/oisee/reprodot/pkg/ieee754"
	"github.com/oisee/reprodot/pkg/wideint"
)

// AccEmin is the base exponent of the wide accumulator: bit 0 of Pos/Neg
// represents weight 2^AccEmin.
const AccEmin = -2148

// Flags are the per-call sticky exceptional flags.
type Flags struct {
	SawNaN            bool
	SawInvalidZeroInf bool
	SawPosInf         bool
	SawNegInf         bool
	Overflow          bool
}

// Merge logically ORs another flag set into f, for combining sharded
// partial results.
func (f *Flags) Merge(o Flags) {
	f.SawNaN = f.SawNaN || o.SawNaN
	f.SawInvalidZeroInf = f.SawInvalidZeroInf || o.SawInvalidZeroInf
	f.SawPosInf = f.SawPosInf || o.SawPosInf
	f.SawNegInf = f.SawNegInf || o.SawNegInf
	f.Overflow = f.Overflow || o.Overflow
}

// State is the complete per-call accumulation state: two non-negative wide
// accumulators plus sticky exceptional flags. It is the unit of work
// pkg/shard partitions and merges.
type State struct {
	Pos, Neg wideint.Acc
	Flags    Flags
}

// Accumulate processes one input pair (x, y) through the classifier/tracker
// policy table, feeding the accumulator only for finite, non-zero,
// non-exceptional pairs.
func (s *State) Accumulate(x, y float64) {
	vx := ieee754.ClassifyFloat(x)
	vy := ieee754.ClassifyFloat(y)

	if vx.Kind == ieee754.KindNaN || vy.Kind == ieee754.KindNaN {
		s.Flags.SawNaN = true
		return
	}

	xInf := vx.Kind == ieee754.KindInf
	yInf := vy.Kind == ieee754.KindInf
	xZero := vx.Kind == ieee754.KindFinite && vx.IsZero()
	yZero := vy.Kind == ieee754.KindFinite && vy.IsZero()

	if (xInf && yZero) || (yInf && xZero) {
		s.Flags.SawInvalidZeroInf = true
		return
	}

	if xInf || yInf {
		sign := vx.Sign * vy.Sign
		if sign > 0 {
			s.Flags.SawPosInf = true
		} else {
			s.Flags.SawNegInf = true
		}
		return
	}

	// Both finite, neither an Inf/NaN case above.
	if vx.Sig == 0 || vy.Sig == 0 {
		return
	}

	sign, prod, eprod := formProduct(vx, vy)
	if eprod < AccEmin {
		// Magnitude < 2^(AccEmin)*2^106 = 2^-2042, far below 2^-1074: it
		// cannot influence any rounded binary64 result and is safely
		// dropped.
		return
	}

	shift := int(eprod - AccEmin)
	var overflow bool
	if sign > 0 {
		overflow = s.Pos.AddShifted(prod, shift)
	} else {
		overflow = s.Neg.AddShifted(prod, shift)
	}
	if overflow {
		s.Flags.Overflow = true
	}
}

// formProduct computes the exact 128-bit product of two finite, non-zero
// decoded operands.
func formProduct(vx, vy ieee754.Value) (sign int, prod wideint.Uint128, eprod int) {
	sign = vx.Sign * vy.Sign
	prod = wideint.MulU64(vx.Sig, vy.Sig)
	eprod = vx.Exp + vy.Exp
	return
}

// Merge folds another partial state into s: limb-wise addition of the
// accumulators and logical-or of the flags. Overflow latched while merging
// is recorded the same way as overflow latched while accumulating.
func (s *State) Merge(o State) {
	if s.Pos.Add(&o.Pos) {
		s.Flags.Overflow = true
	}
	if s.Neg.Add(&o.Neg) {
		s.Flags.Overflow = true
	}
	s.Flags.Merge(o.Flags)
}
