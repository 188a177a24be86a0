// Package bigint implements constant-time arbitrary-precision unsigned
// integer arithmetic for cryptographic protocols.
//
// A Uint couples a magnitude with a declared bit-length fixed at
// construction. The declared bit-length (never the magnitude) determines
// storage size and the execution time of every constant-time operation: two
// Uints with equal declared bit-lengths are indistinguishable by timing in
// any constant-time call, whatever their values. Operations whose timing
// does depend on values carry the Leaky prefix, document exactly what they
// leak, and are never reached from a constant-time path.
//
// Result bit-lengths follow the precision policy (see ResultWidth): a pure
// function of the operands' declared widths. Preconditions are validated
// only in checked builds (compiled with the ctcheck tag); release builds
// trust the caller so that no value-dependent branching is added to the hot
// paths.
package bigint

import (
	"github.com/agbru/ctbig/internal/debugcheck"
	"github.com/agbru/ctbig/internal/nat"
)

// Choice represents a constant-time boolean: always 0 or 1. It is the only
// sanctioned carrier for data-dependent decisions on secret values.
type Choice uint

// Uint is an unsigned integer with a declared bit-length.
//
// Uints have value semantics: operations return new values and share no
// storage with their operands. The zero Uint is not usable; construct
// values with FromBytes, FromUint64, or LeakyFromString. Immutable use is
// safe from concurrent goroutines; the in-place leaky bit operations
// require exclusive access.
type Uint struct {
	mag  *nat.Nat
	bits uint
}

// newUint returns a zero Uint of the given declared width.
func newUint(bits uint) *Uint {
	return &Uint{mag: nat.New(bits), bits: bits}
}

// FromBytes constructs a Uint with the given declared bit-length from a
// big-endian byte slice. It fails with a SizeExceededError when the input
// carries a set bit at or above the declared length. The scan touches every
// input byte regardless of its value.
func FromBytes(b []byte, bits uint) (*Uint, error) {
	if bits == 0 {
		return nil, NewSizeExceededError(0, "declared bit-length must be positive")
	}
	x := newUint(bits)
	excess := x.mag.SetBytes(b)
	excess |= x.mag.BitsAbove(bits)
	if excess != 0 {
		return nil, NewSizeExceededError(bits, "%d-byte input", len(b))
	}
	return x, nil
}

// FromUint64 constructs a Uint with the given declared bit-length from a
// native integer. It fails with a SizeExceededError when v does not fit.
func FromUint64(v uint64, bits uint) (*Uint, error) {
	if bits == 0 {
		return nil, NewSizeExceededError(0, "declared bit-length must be positive")
	}
	if bits < 64 && v>>bits != 0 {
		return nil, NewSizeExceededError(bits, "value %d", v)
	}
	x := newUint(bits)
	x.mag.SetUint64(v)
	return x, nil
}

// BitLen returns the declared bit-length of x. This is a public parameter,
// independent of the magnitude.
func (x *Uint) BitLen() uint { return x.bits }

// Bytes exports x as a big-endian byte slice of exactly ceil(BitLen/8)
// bytes, zero-padded. The write pattern depends only on the declared
// bit-length.
func (x *Uint) Bytes() []byte {
	return x.mag.FillBytes(make([]byte, (x.bits+7)/8))
}

// Clone returns a copy of x with its own storage.
func (x *Uint) Clone() *Uint {
	return &Uint{mag: x.mag.Clone(), bits: x.bits}
}

// Equal returns 1 if x == y and 0 otherwise, in time depending only on the
// declared widths. This is the timing-safe comparison; generic ordering
// shortcuts live on the leaky tier as LeakyCmp.
func (x *Uint) Equal(y *Uint) Choice {
	observe(OpEqual, max(x.bits, y.bits))
	n := max(x.mag.Size(), y.mag.Size())
	xe := x.mag.Clone().Expand(n)
	ye := y.mag.Clone().Expand(n)
	return Choice(xe.CmpEq(ye))
}

// GreaterEq returns 1 if x >= y and 0 otherwise, in time depending only on
// the declared widths.
func (x *Uint) GreaterEq(y *Uint) Choice {
	observe(OpGreaterEq, max(x.bits, y.bits))
	n := max(x.mag.Size(), y.mag.Size())
	xe := x.mag.Clone().Expand(n)
	ye := y.mag.Clone().Expand(n)
	return Choice(xe.CmpGeq(ye))
}

// IsZero returns 1 if x == 0 and 0 otherwise, in time depending only on the
// declared width.
func (x *Uint) IsZero() Choice {
	return Choice(x.mag.IsZero())
}

// Select returns x if on == 1 and y if on == 0 without branching on the
// condition. Both operands must share the same declared bit-length.
func Select(on Choice, x, y *Uint) *Uint {
	if debugcheck.Enabled {
		debugcheck.Require(x.bits == y.bits,
			NewSizeMismatchError("select", "operand widths %d and %d differ", x.bits, y.bits))
	}
	observe(OpSelect, x.bits)
	z := y.Clone()
	z.mag.Assign(nat.Choice(on), x.mag)
	return z
}
