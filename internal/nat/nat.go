// Package nat implements constant-time arithmetic on natural numbers with
// announced sizes.
//
// A Nat carries an announced number of limbs, fixed by its constructor. Every
// operation in this package is allowed to leak the announced sizes of its
// operands (they are public parameters) but leaks nothing about the values
// stored in the limbs: control flow, loop bounds, and memory access patterns
// depend only on limb counts. The exported helpers on Choice are the only
// sanctioned way to make a data-dependent decision.
package nat

import "math/bits"

const (
	// _W is the number of bits used per limb. We leave the top bit of each
	// machine word unset so that Montgomery multiplication can accumulate
	// carries without overflowing a double-word intermediate.
	_W = bits.UintSize - 1
	// _MASK selects the _W data bits from a full machine word.
	_MASK = (1 << _W) - 1
)

// LimbsFor returns the number of limbs needed to store bitLen bits.
func LimbsFor(bitLen uint) int {
	return int((bitLen + _W - 1) / _W)
}

// Choice represents a constant-time boolean. Its value is always 0 or 1.
// Using an integer instead of bool lets decisions be turned into masks
// instead of branches.
type Choice uint

// Not returns the negation of c.
func Not(c Choice) Choice { return 1 ^ c }

// CtSelect returns x if on == 1 and y if on == 0, without branching on `on`.
// If on is any value besides 0 or 1 the result is undefined.
func CtSelect(on Choice, x, y uint) uint {
	// When on == 1 the mask is all ones and y cancels with itself.
	mask := -uint(on)
	return y ^ (mask & (y ^ x))
}

// CtEq returns 1 if x == y and 0 otherwise, in time independent of both.
func CtEq(x, y uint) Choice {
	// If x != y, one of the two subtractions generates a carry.
	_, c1 := bits.Sub(x, y, 0)
	_, c2 := bits.Sub(y, x, 0)
	return Not(Choice(c1 | c2))
}

// CtGeq returns 1 if x >= y and 0 otherwise, in time independent of both.
func CtGeq(x, y uint) Choice {
	_, carry := bits.Sub(x, y, 0)
	return Not(Choice(carry))
}

// Nat represents a natural number with an announced limb count.
//
// The limbs are little-endian in base 2^_W, each with the top machine bit
// unset between operations.
type Nat struct {
	limbs []uint
}

// New returns a zero Nat sized to hold bitLen bits.
func New(bitLen uint) *Nat {
	return &Nat{limbs: make([]uint, LimbsFor(bitLen))}
}

// NewLimbs returns a zero Nat with exactly n limbs.
func NewLimbs(n int) *Nat {
	return &Nat{limbs: make([]uint, n)}
}

// Size returns the announced limb count of x.
func (x *Nat) Size() int { return len(x.limbs) }

// Limbs exposes the little-endian limb slice. Callers may copy limbs in and
// out but must keep every limb below 2^_W.
func (x *Nat) Limbs() []uint { return x.limbs }

// Clone returns a new Nat with the same value and announced size as x. The
// two share no storage.
func (x *Nat) Clone() *Nat {
	out := &Nat{limbs: make([]uint, len(x.limbs))}
	copy(out.limbs, x.limbs)
	return out
}

// Expand grows x to n limbs, leaving its value unchanged. Shrinking is an
// internal error: an announced size never decreases.
func (x *Nat) Expand(n int) *Nat {
	if n < len(x.limbs) {
		panic("nat: internal error: shrinking announced size")
	}
	if cap(x.limbs) < n {
		limbs := make([]uint, n)
		copy(limbs, x.limbs)
		x.limbs = limbs
		return x
	}
	extra := x.limbs[len(x.limbs):n]
	for i := range extra {
		extra[i] = 0
	}
	x.limbs = x.limbs[:n]
	return x
}

// Reset returns x zeroed with exactly n limbs, reusing storage when it can.
func (x *Nat) Reset(n int) *Nat {
	if cap(x.limbs) < n {
		x.limbs = make([]uint, n)
		return x
	}
	x.limbs = x.limbs[:n]
	for i := range x.limbs {
		x.limbs[i] = 0
	}
	return x
}

// SetUint64 sets x to v, which may span two limbs.
func (x *Nat) SetUint64(v uint64) *Nat {
	for i := range x.limbs {
		x.limbs[i] = 0
	}
	x.limbs[0] = uint(v) & _MASK
	if len(x.limbs) > 1 {
		x.limbs[1] = uint(v >> _W)
	}
	return x
}

// Trunc clears every bit of x at position bitLen or above. The announced
// limb count is unchanged.
func (x *Nat) Trunc(bitLen uint) *Nat {
	full := int(bitLen / _W)
	rem := bitLen % _W
	for i := full; i < len(x.limbs); i++ {
		if uint(i) == bitLen/_W && rem != 0 {
			x.limbs[i] &= (1 << rem) - 1
		} else {
			x.limbs[i] = 0
		}
	}
	return x
}

// BitsAbove folds together every bit of x at position bitLen or above. The
// result is zero exactly when x fits in bitLen bits; it is safe to feed to
// CtEq. The fold touches the same limbs regardless of their values.
func (x *Nat) BitsAbove(bitLen uint) uint {
	var fold uint
	full := int(bitLen / _W)
	rem := bitLen % _W
	for i := full; i < len(x.limbs); i++ {
		if uint(i) == bitLen/_W && rem != 0 {
			fold |= x.limbs[i] >> rem
		} else {
			fold |= x.limbs[i]
		}
	}
	// fold is an OR of _W-bit values, so it fits the CtEq precondition.
	return fold
}

// IsZero returns 1 if x == 0 and 0 otherwise.
func (x *Nat) IsZero() Choice {
	var fold uint
	for i := range x.limbs {
		fold |= x.limbs[i]
	}
	return CtEq(fold, 0)
}

// Bit returns the bit of x at position i as a Choice. The position is a
// public parameter; only the bit's value is kept opaque.
func (x *Nat) Bit(i uint) Choice {
	limb := int(i / _W)
	if limb >= len(x.limbs) {
		return 0
	}
	return Choice((x.limbs[limb] >> (i % _W)) & 1)
}

// OrBit sets the bit of x at public position i to b, assuming it was zero.
func (x *Nat) OrBit(i uint, b Choice) {
	x.limbs[i/_W] |= uint(b) << (i % _W)
}

// ClearBit clears the bit of x at public position i.
func (x *Nat) ClearBit(i uint) {
	x.limbs[i/_W] &^= 1 << (i % _W)
}

// CmpEq returns 1 if x == y and 0 otherwise. Both operands must have the
// same announced size.
func (x *Nat) CmpEq(y *Nat) Choice {
	equal := Choice(1)
	for i := 0; i < len(x.limbs) && i < len(y.limbs); i++ {
		equal &= CtEq(x.limbs[i], y.limbs[i])
	}
	return equal
}

// CmpGeq returns 1 if x >= y and 0 otherwise. Both operands must have the
// same announced size.
func (x *Nat) CmpGeq(y *Nat) Choice {
	var c uint
	for i := 0; i < len(x.limbs) && i < len(y.limbs); i++ {
		c = (x.limbs[i] - y.limbs[i] - c) >> _W
	}
	// A final borrow means subtracting y underflowed, so x < y.
	return Not(Choice(c))
}

// Assign sets x <- y if on == 1 and does nothing otherwise. Both operands
// must have the same announced size.
func (x *Nat) Assign(on Choice, y *Nat) *Nat {
	for i := 0; i < len(x.limbs) && i < len(y.limbs); i++ {
		x.limbs[i] = CtSelect(on, y.limbs[i], x.limbs[i])
	}
	return x
}

// CondSwap exchanges the values of x and y if on == 1 and does nothing
// otherwise. Both operands must have the same announced size.
func (x *Nat) CondSwap(on Choice, y *Nat) {
	mask := -uint(on)
	for i := 0; i < len(x.limbs) && i < len(y.limbs); i++ {
		t := mask & (x.limbs[i] ^ y.limbs[i])
		x.limbs[i] ^= t
		y.limbs[i] ^= t
	}
}

// Add computes x += y if on == 1 and does nothing otherwise. It returns the
// carry out of the top limb regardless of on. Both operands must have the
// same announced size.
func (x *Nat) Add(on Choice, y *Nat) (c uint) {
	for i := 0; i < len(x.limbs) && i < len(y.limbs); i++ {
		res := x.limbs[i] + y.limbs[i] + c
		x.limbs[i] = CtSelect(on, res&_MASK, x.limbs[i])
		c = res >> _W
	}
	return
}

// Sub computes x -= y if on == 1 and does nothing otherwise. It returns the
// borrow out of the top limb regardless of on. Both operands must have the
// same announced size.
func (x *Nat) Sub(on Choice, y *Nat) (c uint) {
	for i := 0; i < len(x.limbs) && i < len(y.limbs); i++ {
		res := x.limbs[i] - y.limbs[i] - c
		x.limbs[i] = CtSelect(on, res&_MASK, x.limbs[i])
		c = res >> _W
	}
	return
}

// ShiftLeft1 shifts x left by one bit, inserting bottom as the new least
// significant bit. It returns the bit shifted out of the announced size.
func (x *Nat) ShiftLeft1(bottom Choice) Choice {
	carry := uint(bottom)
	for i := range x.limbs {
		t := x.limbs[i]
		x.limbs[i] = ((t << 1) | carry) & _MASK
		carry = t >> (_W - 1)
	}
	return Choice(carry)
}

// ShiftRight1 shifts x right by one bit, inserting top as the new most
// significant bit of the announced size.
func (x *Nat) ShiftRight1(top Choice) {
	n := len(x.limbs)
	for i := 0; i < n-1; i++ {
		x.limbs[i] = (x.limbs[i] >> 1) | ((x.limbs[i+1] & 1) << (_W - 1))
	}
	x.limbs[n-1] = (x.limbs[n-1] >> 1) | (uint(top) << (_W - 1))
}

// ShiftLeft sets z to x << s. The shift amount is a public parameter fixed
// at the call site; z must be sized by the caller to hold the result.
func (z *Nat) ShiftLeft(x *Nat, s uint) *Nat {
	ls, bs := int(s/_W), s%_W
	for i := len(z.limbs) - 1; i >= 0; i-- {
		var lo, hi uint
		if j := i - ls; j >= 0 && j < len(x.limbs) {
			lo = x.limbs[j] << bs & _MASK
		}
		if bs != 0 {
			if j := i - ls - 1; j >= 0 && j < len(x.limbs) {
				hi = x.limbs[j] >> (_W - bs)
			}
		}
		z.limbs[i] = lo | hi
	}
	return z
}

// ShiftRight sets z to x >> s. The shift amount is a public parameter fixed
// at the call site; z must be sized by the caller to hold the result.
func (z *Nat) ShiftRight(x *Nat, s uint) *Nat {
	ls, bs := int(s/_W), s%_W
	for i := range z.limbs {
		var lo, hi uint
		if j := i + ls; j < len(x.limbs) {
			lo = x.limbs[j] >> bs
		}
		if bs != 0 {
			if j := i + ls + 1; j < len(x.limbs) {
				hi = x.limbs[j] << (_W - bs) & _MASK
			}
		}
		z.limbs[i] = lo | hi
	}
	return z
}

// And sets z to x & y limb by limb. z must not be longer than both operands.
func (z *Nat) And(x, y *Nat) *Nat {
	for i := range z.limbs {
		z.limbs[i] = x.limbs[i] & y.limbs[i]
	}
	return z
}

// Or sets z to x | y, treating the shorter operand as zero-extended.
func (z *Nat) Or(x, y *Nat) *Nat {
	for i := range z.limbs {
		var xi, yi uint
		if i < len(x.limbs) {
			xi = x.limbs[i]
		}
		if i < len(y.limbs) {
			yi = y.limbs[i]
		}
		z.limbs[i] = xi | yi
	}
	return z
}

// Xor sets z to x ^ y, treating the shorter operand as zero-extended.
func (z *Nat) Xor(x, y *Nat) *Nat {
	for i := range z.limbs {
		var xi, yi uint
		if i < len(x.limbs) {
			xi = x.limbs[i]
		}
		if i < len(y.limbs) {
			yi = y.limbs[i]
		}
		z.limbs[i] = xi ^ yi
	}
	return z
}

// NotBits sets z to the complement of x within bitLen bits.
func (z *Nat) NotBits(x *Nat, bitLen uint) *Nat {
	for i := range z.limbs {
		var xi uint
		if i < len(x.limbs) {
			xi = x.limbs[i]
		}
		z.limbs[i] = ^xi & _MASK
	}
	return z.Trunc(bitLen)
}

// SetBytes parses a big-endian byte slice into x. The announced size of x is
// unchanged; input bits beyond the allocated limbs are folded into the
// returned value, which is zero exactly when the input fit the limbs. A limb
// holds up to _W bits, so enforcement at the announced bit size is SetBytes
// followed by BitsAbove. Unlike big.Int, leading zero bytes are not
// stripped, so the timing depends only on len(b).
func (x *Nat) SetBytes(b []byte) (excess uint) {
	for i := range x.limbs {
		x.limbs[i] = 0
	}
	outI := 0
	shift := uint(0)
	for i := len(b) - 1; i >= 0; i-- {
		bi := uint(b[i])
		if outI >= len(x.limbs) {
			excess |= bi
			continue
		}
		x.limbs[outI] |= bi << shift
		shift += 8
		if shift >= _W {
			shift -= _W
			spill := bi >> (8 - shift)
			x.limbs[outI] &= _MASK
			outI++
			if outI < len(x.limbs) {
				x.limbs[outI] = spill
			} else {
				excess |= spill
			}
		}
	}
	return excess
}

// FillBytes writes x to b as a zero-extended big-endian byte slice. The
// write pattern depends only on the announced sizes of x and b; b must be
// large enough to hold the value.
func (x *Nat) FillBytes(b []byte) []byte {
	for i := range b {
		b[i] = 0
	}
	shift := uint(0)
	outI := len(b) - 1
	for _, limb := range x.limbs {
		remaining := uint(_W)
		for remaining >= 8 {
			if outI < 0 {
				return b
			}
			b[outI] |= byte(limb << shift)
			consumed := 8 - shift
			limb >>= consumed
			remaining -= consumed
			shift = 0
			outI--
		}
		if outI < 0 {
			return b
		}
		b[outI] = byte(limb)
		shift = remaining
	}
	return b
}

// Uint64 returns the low 64 bits of x.
func (x *Nat) Uint64() uint64 {
	v := uint64(x.limbs[0])
	if len(x.limbs) > 1 {
		v |= uint64(x.limbs[1]) << _W
	}
	return v
}
