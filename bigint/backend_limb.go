package bigint

import (
	"math/big"

	"github.com/agbru/ctbig/internal/nat"
)

func init() {
	RegisterBackend("limb", func() Backend { return limbBackend{} })
}

// limbBackend is the default pure-Go backend. All arithmetic runs on the
// unsaturated-limb engine in internal/nat, whose loop bounds derive only
// from declared widths.
type limbBackend struct{}

func (limbBackend) Name() string       { return "limb" }
func (limbBackend) ConstantTime() bool { return true }

func (limbBackend) Add(z, x, y *Uint) {
	n := z.mag.Size()
	z.mag.Reset(n)
	copy(z.mag.Limbs(), x.mag.Clone().Expand(n).Limbs())
	z.mag.Add(1, y.mag.Clone().Expand(n))
}

func (limbBackend) Sub(z, x, y *Uint) Choice {
	n := z.mag.Size()
	z.mag.Reset(n)
	copy(z.mag.Limbs(), x.mag.Clone().Expand(n).Limbs())
	borrow := z.mag.Sub(1, y.mag.Clone().Expand(n))
	z.mag.Trunc(z.bits)
	return Choice(borrow)
}

func (limbBackend) Mul(z, x, y *Uint) {
	z.mag.Mul(x.mag, y.mag)
}

func (limbBackend) DivRem(q, r, x, y *Uint) {
	nat.DivRem(q.mag, r.mag, x.mag, y.mag, x.bits)
}

func (limbBackend) Mod(z, x, m *Uint) {
	nat.Rem(z.mag, x.mag, m.mag, x.bits)
}

func (limbBackend) ExpMod(z, base, e, m *Uint) {
	mod := nat.NewModulus(m.mag, m.bits)
	red := nat.New(m.bits)
	nat.Rem(red, base.mag, m.mag, base.bits)
	mod.Exp(z.mag, red, e.mag, e.bits)
}

func (limbBackend) InvMod(z, a, m *Uint) Choice {
	// The modulus parity is public: the fixed-iteration binary inversion
	// requires an odd modulus, and even moduli go through a composed path
	// built from the same primitives.
	if m.mag.Bit(0) == 1 {
		mod := nat.NewModulus(m.mag, m.bits)
		red := nat.New(m.bits)
		nat.Rem(red, a.mag, m.mag, a.bits)
		return Choice(mod.Inv(z.mag, red))
	}
	return invModEven(z, a, m)
}

// invModEven inverts a modulo an even m. With m even, an invertible a is
// necessarily odd, so the roles can be swapped: compute y = m^-1 mod a,
// then lift the Bezout identity y*m - 1 = s*a back to a^-1 = m - (s mod m).
// Every step is a fixed-cost primitive; a is forced odd with a|1 so the
// odd-modulus inversion stays well defined, and non-invertible inputs are
// masked out through the returned Choice.
func invModEven(z, a, m *Uint) Choice {
	aOdd := Choice(a.mag.Bit(0))

	aF := a.mag.Clone()
	aF.OrBit(0, 1)
	modA := nat.NewModulus(aF, a.bits)

	// y = m^-1 mod aF.
	mr := nat.New(a.bits)
	nat.Rem(mr, m.mag, aF, m.bits)
	y := nat.New(a.bits)
	gcdOK := modA.Inv(y, mr)

	// t = y*m - 1; exact because y*m = 1 mod aF and y >= 1 when invertible.
	t := nat.New(a.bits + m.bits)
	t.Mul(y, m.mag)
	one := nat.New(a.bits + m.bits)
	one.SetUint64(1)
	t.Sub(1, one)

	// s = t / aF, then reduce into the modulus range.
	s := nat.New(a.bits + m.bits)
	junk := nat.New(a.bits)
	nat.DivRem(s, junk, t, aF, a.bits+m.bits)
	sm := nat.New(m.bits)
	nat.Rem(sm, s, m.mag, a.bits+m.bits)

	// z = m - sm. For invertible a the reduction sm is never zero, so the
	// result lands in [1, m-1]; the sm == 0 case only arises on masked-out
	// inputs and is pinned to zero to keep z in range. The degenerate
	// aF == 1 lift (where the Bezout identity collapses) is fixed up last.
	res := m.mag.Clone()
	res.Sub(1, sm.Clone().Expand(res.Size()))
	res.Assign(sm.IsZero(), nat.NewLimbs(res.Size()))
	oneA := nat.New(a.bits)
	oneA.SetUint64(1)
	oneM := nat.New(m.bits)
	oneM.SetUint64(1)
	res.Assign(aF.CmpEq(oneA), oneM.Expand(res.Size()))

	z.mag.Reset(z.mag.Size())
	copy(z.mag.Limbs(), res.Limbs()[:z.mag.Size()])
	return aOdd & Choice(gcdOK)
}

func (limbBackend) LeakyGCD(z, x, y *Uint) {
	g := new(big.Int).GCD(nil, nil, toBig(x), toBig(y))
	fromBig(z, g)
}

func (limbBackend) LeakyModUint64(x *Uint, v uint64) uint64 {
	return new(big.Int).Mod(toBig(x), new(big.Int).SetUint64(v)).Uint64()
}

func (limbBackend) LeakyProbablyPrime(x *Uint, rounds int) bool {
	return toBig(x).ProbablyPrime(rounds)
}

// toBig copies a Uint magnitude into a math/big integer. Leaky helpers
// only; the conversion itself inspects values.
func toBig(x *Uint) *big.Int {
	return new(big.Int).SetBytes(x.Bytes())
}

// fromBig writes a big.Int magnitude into z. The value must fit z's
// declared width; leaky callers guarantee this structurally (a gcd never
// exceeds its operands).
func fromBig(z *Uint, v *big.Int) {
	buf := make([]byte, (int(z.bits)+7)/8)
	v.FillBytes(buf)
	z.mag.SetBytes(buf)
}
