package nat

import "math/bits"

// Modulus wraps a Nat used for modular arithmetic, precomputing the constant
// Montgomery multiplication needs. The announced bit width is kept alongside
// so that fixed iteration counts can be derived from it.
//
// The modulus must be odd for the Montgomery machinery and the fixed-length
// inversion; only its announced width and its low bit are ever leaked.
type Modulus struct {
	nat   *Nat
	bits  uint
	m0inv uint // -nat.limbs[0]^-1 mod 2^_W
}

// minusInverseModW computes -x^-1 mod 2^_W with x odd.
//
// Every iteration of the loop doubles the number of correct low bits of the
// inverse in y. The first three bits are already correct (1^-1 = 1, 3^-1 = 3,
// 5^-1 = 5, and 7^-1 = 7 mod 8), so five doublings cover 61 bits.
func minusInverseModW(x uint) uint {
	y := x
	for i := 0; i < 5; i++ {
		y = y * (2 - x*y)
	}
	return (1 << _W) - (y & _MASK)
}

// NewModulus builds a Modulus from an odd m with the given announced width.
// Unlike variable-size bignum stacks, leading zero limbs are not stripped:
// the announced width, not the value, decides every operation's cost.
func NewModulus(m *Nat, bitLen uint) *Modulus {
	return &Modulus{
		nat:   m.Clone().Expand(LimbsFor(bitLen)),
		bits:  bitLen,
		m0inv: minusInverseModW(m.limbs[0]),
	}
}

// Nat returns the modulus value. The caller must not modify it.
func (m *Modulus) Nat() *Nat { return m.nat }

// Bits returns the announced width of the modulus.
func (m *Modulus) Bits() uint { return m.bits }

// shiftLeft1Mod sets x = 2x mod m. x must be reduced.
func (m *Modulus) shiftLeft1Mod(x *Nat) {
	carry := x.ShiftLeft1(0)
	// 2x < 2m, so a single conditional subtraction reduces. If the shift
	// carried out of the announced limbs, 2x certainly exceeds m.
	ge := carry | x.CmpGeq(m.nat)
	x.Sub(ge, m.nat)
}

// montgomeryRepresentation sets x = x * R mod m, with R = 2^(_W * n) and
// n the limb count of m. x must be reduced modulo m.
//
// The conversion is a fixed run of doublings: one per limb bit. This is
// slower than shifting limbs in against a precomputed R^2 but needs no
// extra machinery, and its cost is still a pure function of the announced
// width.
func (m *Modulus) montgomeryRepresentation(x *Nat) {
	n := len(m.nat.limbs)
	for i := 0; i < n*_W; i++ {
		m.shiftLeft1Mod(x)
	}
}

// montgomeryMul calculates out = x * y / R mod m, with R = 2^(_W * n) and
// n the limb count of m. All three Nats must have the modulus's announced
// size and out must not alias x or y.
func (m *Modulus) montgomeryMul(out, x, y *Nat) {
	for i := range out.limbs {
		out.limbs[i] = 0
	}

	overflow := uint(0)
	for i := 0; i < len(x.limbs); i++ {
		f := ((out.limbs[0] + x.limbs[i]*y.limbs[0]) * m.m0inv) & _MASK
		var carry uint
		for j := 0; j < len(y.limbs) && j < len(m.nat.limbs) && j < len(out.limbs); j++ {
			hi, lo := bits.Mul(x.limbs[i], y.limbs[j])
			zLo, c := bits.Add(out.limbs[j], lo, 0)
			zHi, _ := bits.Add(0, hi, c)
			hi, lo = bits.Mul(f, m.nat.limbs[j])
			zLo, c = bits.Add(zLo, lo, 0)
			zHi, _ = bits.Add(zHi, hi, c)
			zLo, c = bits.Add(zLo, carry, 0)
			zHi, _ = bits.Add(zHi, 0, c)
			if j > 0 {
				out.limbs[j-1] = zLo & _MASK
			}
			carry = (zLo >> _W) | (zHi << 1)
		}
		z := overflow + carry
		out.limbs[len(out.limbs)-1] = z & _MASK
		overflow = z >> _W
	}

	// The result is below 2m; subtract m exactly when needed, without
	// branching. See the three-case analysis in modAdd-style reductions:
	// subtraction is required when the value overflowed the limbs or when
	// it still fits but exceeds m.
	underflow := Not(out.CmpGeq(m.nat))
	needSubtraction := CtEq(overflow, uint(underflow))
	out.Sub(needSubtraction, m.nat)
}

// Exp sets out to base^e mod m, where e is consumed as exactly eBits bits.
//
// The ladder performs one squaring and one multiplication for every bit of
// the announced exponent width and commits the result with a constant-time
// select, so the sequence of operations is identical for every exponent of
// the same declared width.
//
// base must be reduced modulo m and share its announced size; out is reset.
func (m *Modulus) Exp(out, base, e *Nat, eBits uint) *Nat {
	n := len(m.nat.limbs)

	baseM := base.Clone()
	m.montgomeryRepresentation(baseM)

	out.Reset(n)
	out.limbs[0] = 1
	m.montgomeryRepresentation(out)

	sq := NewLimbs(n)
	mul := NewLimbs(n)
	for i := int(eBits) - 1; i >= 0; i-- {
		m.montgomeryMul(sq, out, out)
		m.montgomeryMul(mul, sq, baseM)
		copy(out.limbs, sq.limbs)
		out.Assign(e.Bit(uint(i)), mul)
	}

	// Multiplying by 1 leaves the Montgomery domain.
	one := NewLimbs(n)
	one.limbs[0] = 1
	m.montgomeryMul(sq, out, one)
	copy(out.limbs, sq.limbs)
	return out
}
