// This file contains the modular arithmetic operations: reduction, modular
// exponentiation, and modular inversion, plus a Modulus type that caches
// the per-modulus precomputation for callers that reuse one modulus across
// many operations (the common shape in cryptographic protocols).
package bigint

import (
	"github.com/agbru/ctbig/internal/debugcheck"
	"github.com/agbru/ctbig/internal/nat"
)

// Mod returns x mod m with declared width BitLen(m). The modulus must be
// nonzero; checked builds validate this.
func (x *Uint) Mod(m *Uint) *Uint {
	if debugcheck.Enabled {
		debugcheck.Require(m.IsZero() == 0, NewDivisionByZeroError("mod"))
	}
	w := ResultWidth(OpMod, x.bits, m.bits, 0)
	observe(OpMod, w)
	z := newUint(w)
	activeBackend().Mod(z, x, m)
	return z
}

// ExpMod returns x^e mod m with declared width BitLen(m).
//
// The modulus must be odd and greater than 1; its low bit is treated as a
// public parameter, and checked builds enforce it. The exponentiation
// consumes exactly BitLen(e) exponent bits whatever the value of e, so the
// exponent's declared width is the only thing its handling reveals.
func (x *Uint) ExpMod(e, m *Uint) *Uint {
	if debugcheck.Enabled {
		debugcheck.Require(m.mag.Bit(0) == 1,
			NewSizeMismatchError("exp_mod", "modulus must be odd"))
	}
	w := ResultWidth(OpExpMod, x.bits, m.bits, 0)
	observe(OpExpMod, w)
	z := newUint(w)
	activeBackend().ExpMod(z, x, e, m)
	return z
}

// InvMod returns the multiplicative inverse of x modulo m, with declared
// width BitLen(m).
//
// The modulus must be greater than 1; its low bit is treated as a public
// parameter (even moduli take a different fixed-cost path than odd ones,
// but within either parity the running time depends only on declared
// widths). When x and m are not coprime there is no inverse: InvMod then
// returns a NotInvertibleError, reached only after the full fixed
// iteration count.
func (x *Uint) InvMod(m *Uint) (*Uint, error) {
	w := ResultWidth(OpInvMod, x.bits, m.bits, 0)
	observe(OpInvMod, w)
	z := newUint(w)
	ok := activeBackend().InvMod(z, x, m)
	if ok == 0 {
		return nil, NotInvertibleError{}
	}
	return z, nil
}

// Modulus is a modulus with its reduction constants precomputed once.
// Constructing a Modulus performs the Montgomery setup that ExpMod would
// otherwise repeat per call, so protocols that exponentiate many times
// against one modulus should hold a Modulus rather than a raw Uint.
//
// A Modulus always runs on the constant-time limb engine, independent of
// the backend installed with SetBackend.
type Modulus struct {
	raw *Uint
	pre *nat.Modulus
}

// NewModulus precomputes reduction constants for an odd m > 1. The parity
// and the declared width of the modulus are public.
func NewModulus(m *Uint) (*Modulus, error) {
	if m.mag.Bit(0) != 1 {
		return nil, NewSizeMismatchError("modulus", "modulus must be odd")
	}
	return &Modulus{
		raw: m.Clone(),
		pre: nat.NewModulus(m.mag.Clone(), m.bits),
	}, nil
}

// BitLen returns the declared bit-length of the modulus.
func (m *Modulus) BitLen() uint { return m.raw.bits }

// Uint returns a copy of the modulus value.
func (m *Modulus) Uint() *Uint { return m.raw.Clone() }

// Reduce returns x mod m with declared width BitLen(m).
func (m *Modulus) Reduce(x *Uint) *Uint {
	w := ResultWidth(OpMod, x.bits, m.raw.bits, 0)
	observe(OpMod, w)
	z := newUint(w)
	nat.Rem(z.mag, x.mag, m.pre.Nat(), x.bits)
	return z
}

// ExpMod returns base^e mod m using the cached precomputation. The
// exponentiation consumes exactly BitLen(e) exponent bits.
func (m *Modulus) ExpMod(base, e *Uint) *Uint {
	w := ResultWidth(OpExpMod, base.bits, m.raw.bits, 0)
	observe(OpExpMod, w)
	z := newUint(w)
	red := nat.New(m.raw.bits)
	nat.Rem(red, base.mag, m.pre.Nat(), base.bits)
	m.pre.Exp(z.mag, red, e.mag, e.bits)
	return z
}

// InvMod returns the inverse of a modulo m, or a NotInvertibleError when a
// and m are not coprime. Failure is detected only after the full fixed
// iteration count of the inversion.
func (m *Modulus) InvMod(a *Uint) (*Uint, error) {
	w := ResultWidth(OpInvMod, a.bits, m.raw.bits, 0)
	observe(OpInvMod, w)
	z := newUint(w)
	red := nat.New(m.raw.bits)
	nat.Rem(red, a.mag, m.pre.Nat(), a.bits)
	ok := m.pre.Inv(z.mag, red)
	if ok == 0 {
		return nil, NotInvertibleError{}
	}
	return z, nil
}
