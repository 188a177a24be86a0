// This file contains the leaky tier: operations whose running time depends
// on operand values, not just declared widths. Every function here carries
// the Leaky prefix and documents what it leaks. None of them is called from
// a constant-time path; crossing the boundary is always an explicit choice
// in the caller's source.
package bigint

import (
	"fmt"
	"math/big"

	"github.com/agbru/ctbig/internal/debugcheck"
)

// LeakyCmp compares x and y as integers, returning -1, 0, or +1. It leaks
// the position of the highest differing limb through early exit.
func (x *Uint) LeakyCmp(y *Uint) int {
	return toBig(x).Cmp(toBig(y))
}

// LeakyBitLen returns the magnitude's actual bit-length: the index of the
// highest set bit plus one, or 0 for a zero value. It leaks the magnitude's
// true size, which the declared width (BitLen) exists to hide.
func (x *Uint) LeakyBitLen() uint {
	return uint(toBig(x).BitLen())
}

// LeakyGCD returns gcd(x, y) with declared width min(BitLen(x), BitLen(y)).
// For nonzero operands the gcd never exceeds either one, so the shorter
// declaration always holds it; zero operands are rejected in checked
// builds. The running time depends on the operand values.
func (x *Uint) LeakyGCD(y *Uint) *Uint {
	if debugcheck.Enabled {
		debugcheck.Require(x.IsZero() == 0 && y.IsZero() == 0,
			NewDivisionByZeroError("gcd"))
	}
	z := newUint(min(x.bits, y.bits))
	activeBackend().LeakyGCD(z, x, y)
	return z
}

// LeakyModUint64 returns x mod v for a native divisor. The divisor must be
// nonzero. Used by trial-division sieves, where the divisor and the result
// are public by construction.
func (x *Uint) LeakyModUint64(v uint64) uint64 {
	if debugcheck.Enabled {
		debugcheck.Require(v != 0, NewDivisionByZeroError("leaky_mod_uint64"))
	}
	return activeBackend().LeakyModUint64(x, v)
}

// LeakyProbablyPrime reports whether x is probably prime, applying rounds
// iterations of the underlying probabilistic test. It leaks the candidate
// value through the test's data-dependent arithmetic, so it must only be
// used on public candidates (as prime generation does: candidates are
// discarded or published, never kept secret while composite).
func (x *Uint) LeakyProbablyPrime(rounds int) bool {
	return activeBackend().LeakyProbablyPrime(x, rounds)
}

// LeakySetBit sets bit i of x in place. The index is leaked through memory
// access; the bit must lie within the declared width.
func (x *Uint) LeakySetBit(i uint) {
	if debugcheck.Enabled {
		debugcheck.Require(i < x.bits,
			NewSizeMismatchError("set_bit", "bit %d outside declared width %d", i, x.bits))
	}
	x.mag.OrBit(i, 1)
}

// LeakyClearBit clears bit i of x in place. The index is leaked through
// memory access; the bit must lie within the declared width.
func (x *Uint) LeakyClearBit(i uint) {
	if debugcheck.Enabled {
		debugcheck.Require(i < x.bits,
			NewSizeMismatchError("clear_bit", "bit %d outside declared width %d", i, x.bits))
	}
	x.mag.ClearBit(i)
}

// LeakyBit returns bit i of x. Both the index and the returned bit are
// leaked; constant-time callers use the internal bit extraction instead.
func (x *Uint) LeakyBit(i uint) uint {
	if i >= x.bits {
		return 0
	}
	return uint(x.mag.Bit(i))
}

// LeakyFromString parses s in the given base (2 to 36, or 0 for prefix
// detection as in strconv) into a Uint with the given declared bit-length.
// It fails with a ParseError on malformed input and a SizeExceededError
// when the parsed value does not fit the declaration. Parsing time depends
// on the input string.
func LeakyFromString(s string, base int, bits uint) (*Uint, error) {
	v, ok := new(big.Int).SetString(s, base)
	if !ok || v.Sign() < 0 {
		return nil, ParseError{Input: s, Base: base}
	}
	if uint(v.BitLen()) > bits {
		return nil, NewSizeExceededError(bits, "parsed value needs %d bits", v.BitLen())
	}
	z := newUint(bits)
	fromBig(z, v)
	return z, nil
}

// LeakyString formats x in base 10. The output length and the formatting
// time depend on the magnitude.
func (x *Uint) LeakyString() string {
	return toBig(x).String()
}

// LeakyFormat formats x in the given base (2 to 36). The output leaks the
// magnitude by construction.
func (x *Uint) LeakyFormat(base int) string {
	return toBig(x).Text(base)
}

// String implements fmt.Stringer with size information only, keeping
// accidental fmt verbs from leaking magnitudes into logs. Use LeakyString
// for the decimal value.
func (x *Uint) String() string {
	return fmt.Sprintf("Uint(%d bits)", x.bits)
}
