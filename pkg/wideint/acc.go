// Package wideint implements the fixed-width, non-negative wide integer
// accumulator the reproducible dot-product kernel sums exact products into.
//
// The width is fixed at compile time rather than backed by a variable-length
// bignum: the exponent range of binary64 pins the required span exactly, so
// a whole number of 64-bit limbs is allocated up front and the hot path
// never allocates.
package wideint

import "math/bits"

// WordBits is the width of one limb.
const WordBits = 64

// Limbs is the number of 64-bit limbs backing an Acc: enough to cover the
// required 4197-bit span rounded up to a whole number of limbs, 66*64 =
// 4224 bits.
const Limbs = 66

// Bits is the total representable width in bits.
const Bits = Limbs * WordBits

// Acc is a non-negative fixed-point integer, little-endian limbs: limb i
// holds bits [i*64, i*64+63].
type Acc struct {
	limb [Limbs]uint64
}

// Uint128 is an exact unsigned 128-bit integer, used to carry the product
// of two 53-bit significands into the accumulator.
type Uint128 struct {
	Hi, Lo uint64
}

// MulU64 computes x*y as an exact 128-bit unsigned product.
func MulU64(x, y uint64) Uint128 {
	hi, lo := bits.Mul64(x, y)
	return Uint128{Hi: hi, Lo: lo}
}

// IsZero reports whether the accumulator holds zero.
func (a *Acc) IsZero() bool {
	for _, w := range a.limb {
		if w != 0 {
			return false
		}
	}
	return true
}

// AddShifted computes a <- a + val*2^shift exactly, returning true if the
// result would exceed the representable width. On overflow the caller must
// treat the accumulator's numerical state as unspecified and latch its own
// sticky overflow flag; this engine does not mutate the accumulator beyond
// the overflowing limb.
func (a *Acc) AddShifted(val Uint128, shift int) bool {
	if val.Hi == 0 && val.Lo == 0 {
		return false
	}

	wordOff := shift / WordBits
	r := uint(shift % WordBits)

	var v0, v1, v2 uint64
	if r == 0 {
		v0, v1, v2 = val.Lo, val.Hi, 0
	} else {
		v0 = val.Lo << r
		v1 = (val.Hi << r) | (val.Lo >> (WordBits - r))
		v2 = val.Hi >> (WordBits - r)
	}

	var carry uint64
	for k, w := range [3]uint64{v0, v1, v2} {
		idx := wordOff + k
		if w == 0 && carry == 0 {
			continue
		}
		if idx >= Limbs {
			return true
		}
		sum, c := bits.Add64(a.limb[idx], w, carry)
		a.limb[idx] = sum
		carry = c
	}

	for idx := wordOff + 3; carry != 0; idx++ {
		if idx >= Limbs {
			return true
		}
		sum, c := bits.Add64(a.limb[idx], 0, carry)
		a.limb[idx] = sum
		carry = c
	}
	return false
}

// Add computes a <- a + b exactly (shift 0 over the full width), returning
// true on overflow. Used to merge partial per-shard accumulators.
func (a *Acc) Add(b *Acc) bool {
	var carry uint64
	for i := 0; i < Limbs; i++ {
		sum, c := bits.Add64(a.limb[i], b.limb[i], carry)
		a.limb[i] = sum
		carry = c
	}
	return carry != 0
}

// Compare returns -1, 0, or +1 as a is less than, equal to, or greater than
// b, comparing most-significant limb first.
func Compare(a, b *Acc) int {
	for i := Limbs - 1; i >= 0; i-- {
		if a.limb[i] != b.limb[i] {
			if a.limb[i] < b.limb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Sub computes a-b assuming a >= b, returning a non-negative result.
func Sub(a, b *Acc) Acc {
	var c Acc
	var borrow uint64
	for i := 0; i < Limbs; i++ {
		d, bw := bits.Sub64(a.limb[i], b.limb[i], borrow)
		c.limb[i] = d
		borrow = bw
	}
	return c
}

// MSBIndex returns the bit position of the highest set bit, or -1 if a is
// zero.
func (a *Acc) MSBIndex() int {
	for i := Limbs - 1; i >= 0; i-- {
		if w := a.limb[i]; w != 0 {
			return i*WordBits + (WordBits - 1 - bits.LeadingZeros64(w))
		}
	}
	return -1
}

// ExtractBits returns the count-bit window starting at bit start
// (count <= 64), zero-padded above the top of the accumulator.
func (a *Acc) ExtractBits(start, count int) uint64 {
	if count <= 0 {
		return 0
	}
	if start >= Bits {
		return 0
	}

	widx0 := start / WordBits
	off0 := uint(start % WordBits)

	var w0, w1 uint64
	if widx0 >= 0 && widx0 < Limbs {
		w0 = a.limb[widx0]
	}
	if widx0+1 >= 0 && widx0+1 < Limbs {
		w1 = a.limb[widx0+1]
	}

	var lo uint64
	if off0 == 0 {
		lo = w0
	} else {
		lo = (w0 >> off0) | (w1 << (WordBits - off0))
	}

	var mask uint64
	if count >= WordBits {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << uint(count)) - 1
	}
	return lo & mask
}

// AnyBitBelow reports whether any bit at position < idx is set.
func (a *Acc) AnyBitBelow(idx int) bool {
	if idx <= 0 {
		return false
	}
	fullLimbs := idx / WordBits
	if fullLimbs > Limbs {
		fullLimbs = Limbs
	}
	for i := 0; i < fullLimbs; i++ {
		if a.limb[i] != 0 {
			return true
		}
	}
	if rem := idx % WordBits; rem > 0 && fullLimbs < Limbs {
		mask := (uint64(1) << uint(rem)) - 1
		if a.limb[fullLimbs]&mask != 0 {
			return true
		}
	}
	return false
}
