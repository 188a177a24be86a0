package nat

// Inv sets out to the multiplicative inverse of a modulo m and returns 1 if
// the inverse exists, 0 otherwise. a must be reduced modulo m and share its
// announced size; the modulus must be odd and greater than 1.
//
// The algorithm is a binary extended GCD run for exactly 2 * m.Bits()
// iterations of branch-free limb work, the fixed-iteration structure used by
// hardened bignum backends for secret inversion. Whether the inverse exists
// is decided by a constant-time comparison after the full run, never by an
// early exit, so non-invertible inputs cost exactly as much as invertible
// ones.
//
// Loop invariants, with all congruences modulo m:
//
//	u = b * a    v = c * a    gcd(u, v) = gcd(a, m)
//
// v starts at the odd modulus and is only ever replaced by an odd u, so the
// halving of u (and the matching modular halving of b) always makes
// progress: the combined bit length of u and v drops by at least one per
// iteration until u reaches zero, after which the remaining iterations are
// harmless no-ops on zero. 2 * m.Bits() iterations therefore always suffice.
// At the end v holds gcd(a, m); when it is 1, c holds the inverse.
func (m *Modulus) Inv(out, a *Nat) Choice {
	n := len(m.nat.limbs)

	u := a.Clone().Expand(n)
	v := m.nat.Clone()
	b := NewLimbs(n)
	b.limbs[0] = 1
	c := NewLimbs(n)

	iters := 2 * int(m.bits)
	for i := 0; i < iters; i++ {
		odd := Choice(u.limbs[0] & 1)

		// When u is odd and smaller than v, exchange the pairs so the
		// subtraction below cannot underflow.
		swap := odd & Not(u.CmpGeq(v))
		u.CondSwap(swap, v)
		b.CondSwap(swap, c)

		// u -= v when u is odd; v is always odd, so u becomes even.
		// Add and Sub report their carries whether or not the operation
		// was applied, so each correction masks the carry with the same
		// condition that gated the operation it corrects.
		u.Sub(odd, v)
		borrow := b.Sub(odd, c)
		b.Add(odd&Choice(borrow), m.nat)

		// Halve u, and halve b modulo the odd m to match.
		u.ShiftRight1(0)
		bOdd := Choice(b.limbs[0] & 1)
		carry := b.Add(bOdd, m.nat)
		b.ShiftRight1(bOdd & Choice(carry))
	}

	one := NewLimbs(n)
	one.limbs[0] = 1
	ok := v.CmpEq(one)

	copy(out.limbs, c.limbs)
	return ok
}
