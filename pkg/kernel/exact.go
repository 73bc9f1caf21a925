package kernel

import (
	"github.com/oisee/reprodot/pkg/ieee754"
	"github.com/oisee/reprodot/pkg/wideint"
)

func compareAcc(a, b *wideint.Acc) int {
	return wideint.Compare(a, b)
}

// finalizeExact computes the signed magnitude |Pos - Neg|, locates its most
// significant bit, extracts the rounded 53-bit significand, and packs it as
// a binary64 — assuming no exceptional flag or overflow is latched.
func finalizeExact(pos, neg *wideint.Acc) float64 {
	cmp := wideint.Compare(pos, neg)
	if cmp == 0 {
		return ieee754.PackZero()
	}

	var mag wideint.Acc
	sgn := +1
	if cmp > 0 {
		mag = wideint.Sub(pos, neg)
	} else {
		mag = wideint.Sub(neg, pos)
		sgn = -1
	}

	msb := mag.MSBIndex()
	if msb < 0 {
		return ieee754.PackZero()
	}

	eStar := AccEmin + msb

	if eStar > 1023 {
		return ieee754.PackInf(sgn)
	}

	if eStar < -1022 {
		return finalizeSubnormal(&mag, sgn)
	}

	cut := msb - 52
	sig53 := mag.ExtractBits(cut, 53)
	guard, sticky := guardSticky(&mag, cut-1)

	if guard && (sticky || sig53&1 != 0) {
		sig53++
		if sig53 == (uint64(1) << 53) {
			eRounded := eStar + 1
			if eRounded > 1023 {
				return ieee754.PackInf(sgn)
			}
			return ieee754.PackNormal(sgn, eRounded, 0)
		}
	}

	return ieee754.PackNormal(sgn, eStar, sig53&(ieee754.FracMask))
}

func finalizeSubnormal(mag *wideint.Acc, sgn int) float64 {
	mant52 := mag.ExtractBits(bottomSubnormal, 52)
	guard, sticky := guardSticky(mag, bottomSubnormal-1)

	if guard && (sticky || mant52&1 != 0) {
		mant52++
		if mant52 == (uint64(1) << 52) {
			return ieee754.PackNormal(sgn, -1022, 0)
		}
	}
	if mant52 == 0 {
		return ieee754.PackZero()
	}
	return ieee754.PackSubnormal(sgn, mant52)
}

// guardSticky reads the round/sticky pair below a retained-significand cut
// point. A negative index (cut == 0) means there is no bit below the
// window: guard is false and sticky is vacuously false.
func guardSticky(mag *wideint.Acc, idx int) (guard, sticky bool) {
	if idx < 0 {
		return false, false
	}
	guard = mag.ExtractBits(idx, 1)&1 != 0
	sticky = mag.AnyBitBelow(idx)
	return guard, sticky
}
