package nat

import "math/bits"

// Mul sets z to x * y. z must be sized by the caller to hold the full
// product (its announced size is at least large enough for the sum of the
// operands' bit widths). The schoolbook loop structure depends only on the
// announced sizes, never on limb values; size-adaptive algorithms such as
// Karatsuba or FFT are deliberately not used here, because selecting between
// them would tie the execution profile to anything other than the declared
// operand widths.
func (z *Nat) Mul(x, y *Nat) *Nat {
	xn, yn := len(x.limbs), len(y.limbs)
	// One limb of slack so per-row carries never index out of range.
	scratch := make([]uint, xn+yn+1)

	for i := 0; i < xn; i++ {
		xi := x.limbs[i]
		var carry uint
		for j := 0; j < yn; j++ {
			hi, lo := bits.Mul(xi, y.limbs[j])
			zLo, c := bits.Add(scratch[i+j], lo, 0)
			zHi, _ := bits.Add(hi, 0, c)
			zLo, c = bits.Add(zLo, carry, 0)
			zHi, _ = bits.Add(zHi, 0, c)
			scratch[i+j] = zLo & _MASK
			carry = (zLo >> _W) | (zHi << 1)
		}
		// Fold the row's final carry, which may exceed a single limb.
		t, c := bits.Add(scratch[i+yn], carry, 0)
		scratch[i+yn] = t & _MASK
		scratch[i+yn+1] += (t >> _W) | (c << 1)
	}

	for i := range z.limbs {
		if i < len(scratch) {
			z.limbs[i] = scratch[i]
		} else {
			z.limbs[i] = 0
		}
	}
	return z
}
