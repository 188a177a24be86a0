// This file contains the constant-time arithmetic operations on Uint.
// Every operation sizes its result per ResultWidth before touching any
// magnitude, dispatches to the active backend for the heavy lifting, and
// reports itself to the observers with public data only.
package bigint

import (
	"github.com/agbru/ctbig/internal/debugcheck"
	"github.com/agbru/ctbig/internal/nat"
)

// Add returns x + y with declared width max(BitLen(x), BitLen(y)) + 1.
// The extra bit guarantees the sum can never overflow its declaration.
func (x *Uint) Add(y *Uint) *Uint {
	w := ResultWidth(OpAdd, x.bits, y.bits, 0)
	observe(OpAdd, w)
	z := newUint(w)
	activeBackend().Add(z, x, y)
	return z
}

// AddUint64 returns x + v with declared width max(BitLen(x), 64) + 1. The
// native operand is treated as a 64-bit Uint.
func (x *Uint) AddUint64(v uint64) *Uint {
	w := ResultWidth(OpAddUint64, x.bits, 0, 0)
	observe(OpAddUint64, w)
	y := newUint(64)
	y.mag.SetUint64(v)
	z := newUint(w)
	activeBackend().Add(z, x, y)
	return z
}

// Sub returns x - y wrapped modulo 2^w, where w = max(BitLen(x),
// BitLen(y)), together with a borrow Choice that is 1 when y > x. Callers
// that know x >= y can ignore the borrow; callers that do not must fold it
// into their own constant-time logic rather than branch on it.
func (x *Uint) Sub(y *Uint) (*Uint, Choice) {
	w := ResultWidth(OpSub, x.bits, y.bits, 0)
	observe(OpSub, w)
	z := newUint(w)
	borrow := activeBackend().Sub(z, x, y)
	return z, borrow
}

// Mul returns x * y with declared width BitLen(x) + BitLen(y). The full
// product always fits, so multiplication never truncates.
func (x *Uint) Mul(y *Uint) *Uint {
	w := ResultWidth(OpMul, x.bits, y.bits, 0)
	observe(OpMul, w)
	z := newUint(w)
	activeBackend().Mul(z, x, y)
	return z
}

// Div returns the quotient x / y with declared width BitLen(x).
//
// The divisor must be nonzero. Release builds trust the caller; checked
// builds panic with a DivisionByZeroError. Note the zero check itself
// inspects the divisor's value, which is why it exists only behind the
// ctcheck tag: divisors are public in the protocols this engine targets.
func (x *Uint) Div(y *Uint) *Uint {
	q, _ := x.DivRem(y)
	return q
}

// Rem returns the remainder x % y with declared width BitLen(y). The same
// nonzero-divisor contract as Div applies.
func (x *Uint) Rem(y *Uint) *Uint {
	w := ResultWidth(OpRem, x.bits, y.bits, 0)
	if debugcheck.Enabled {
		debugcheck.Require(y.IsZero() == 0, NewDivisionByZeroError("rem"))
	}
	observe(OpRem, w)
	r := newUint(w)
	activeBackend().Mod(r, x, y)
	return r
}

// DivRem returns the quotient x / y and remainder x % y in one pass. The
// quotient has declared width BitLen(x), the remainder BitLen(y).
func (x *Uint) DivRem(y *Uint) (*Uint, *Uint) {
	if debugcheck.Enabled {
		debugcheck.Require(y.IsZero() == 0, NewDivisionByZeroError("div"))
	}
	observe(OpDiv, ResultWidth(OpDiv, x.bits, y.bits, 0))
	q := newUint(ResultWidth(OpDiv, x.bits, y.bits, 0))
	r := newUint(ResultWidth(OpRem, x.bits, y.bits, 0))
	activeBackend().DivRem(q, r, x, y)
	return q, r
}

// ShiftLeft returns x << s with declared width BitLen(x) + s. The shift
// amount is a public parameter; no bits are ever discarded.
func (x *Uint) ShiftLeft(s uint) *Uint {
	w := ResultWidth(OpShiftLeft, x.bits, 0, s)
	observe(OpShiftLeft, w)
	z := newUint(w)
	z.mag.ShiftLeft(x.mag, s)
	return z
}

// ShiftRight returns x >> s with declared width BitLen(x) - s. The shift
// amount is a public parameter and must not exceed the declared width;
// checked builds validate this.
func (x *Uint) ShiftRight(s uint) *Uint {
	if debugcheck.Enabled {
		debugcheck.Require(s <= x.bits,
			NewSizeMismatchError("shift_right", "shift %d exceeds declared width %d", s, x.bits))
	}
	w := ResultWidth(OpShiftRight, x.bits, 0, s)
	observe(OpShiftRight, w)
	z := newUint(w)
	z.mag.ShiftRight(x.mag, s)
	z.mag.Trunc(w)
	return z
}

// And returns the bitwise conjunction of x and y with declared width
// min(BitLen(x), BitLen(y)): bits above the shorter declaration are zero
// by construction.
func (x *Uint) And(y *Uint) *Uint {
	w := ResultWidth(OpAnd, x.bits, y.bits, 0)
	observe(OpAnd, w)
	z := newUint(w)
	z.mag.And(x.mag, y.mag)
	z.mag.Trunc(w)
	return z
}

// Or returns the bitwise disjunction of x and y with declared width
// max(BitLen(x), BitLen(y)).
func (x *Uint) Or(y *Uint) *Uint {
	w := ResultWidth(OpOr, x.bits, y.bits, 0)
	observe(OpOr, w)
	z := newUint(w)
	z.mag.Or(x.mag, y.mag)
	return z
}

// Xor returns the bitwise exclusive-or of x and y with declared width
// max(BitLen(x), BitLen(y)).
func (x *Uint) Xor(y *Uint) *Uint {
	w := ResultWidth(OpXor, x.bits, y.bits, 0)
	observe(OpXor, w)
	z := newUint(w)
	z.mag.Xor(x.mag, y.mag)
	return z
}

// Not returns the bitwise complement of x within its declared width: every
// one of the BitLen(x) declared bits is flipped, including leading zeros.
func (x *Uint) Not() *Uint {
	w := ResultWidth(OpNot, x.bits, 0, 0)
	observe(OpNot, w)
	z := newUint(w)
	z.mag.NotBits(x.mag, x.bits)
	return z
}

// CtSelectUint is the limb-level constant-time select, exported for callers
// composing their own branch-free logic on native integers.
func CtSelectUint(on Choice, x, y uint) uint {
	return nat.CtSelect(nat.Choice(on), x, y)
}
