package nat

// DivRem computes q = x / y and r = x % y by binary restoring division,
// consuming exactly xBits bits of the dividend. The loop runs a fixed
// xBits iterations of fixed-size limb work, so the timing depends only on
// the announced widths of x and y. What this cannot hide is documented at
// the public API layer: the caller learns the quotient and remainder sizes
// from the results themselves.
//
// q and r are reset by this call; q must be sized for xBits and r for the
// announced size of y. If y is zero the results are undefined (the checked
// build rejects a zero divisor before reaching this point).
func DivRem(q, r, x, y *Nat, xBits uint) {
	yn := len(y.limbs)

	// The working remainder needs one limb of headroom: before each
	// conditional subtraction it holds a value below 2y.
	rext := NewLimbs(yn + 1)
	yext := y.Clone().Expand(yn + 1)

	q.Reset(len(q.limbs))
	for i := int(xBits) - 1; i >= 0; i-- {
		rext.ShiftLeft1(x.Bit(uint(i)))
		ge := rext.CmpGeq(yext)
		rext.Sub(ge, yext)
		q.OrBit(uint(i), ge)
	}

	// The final remainder is below y, so the headroom limb is zero.
	for i := range r.limbs {
		if i < yn {
			r.limbs[i] = rext.limbs[i]
		} else {
			r.limbs[i] = 0
		}
	}
}

// Rem computes r = x % y, discarding the quotient. Same contract as DivRem.
func Rem(r, x, y *Nat, xBits uint) {
	q := NewLimbs(LimbsFor(xBits))
	DivRem(q, r, x, y, xBits)
}
