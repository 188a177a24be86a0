//go:build gmp

// This file provides a GMP-backed arithmetic backend, conditionally compiled
// with the "gmp" build tag. The build tag architecture ensures that:
//   - Projects can build without GMP (the default, using the pure-Go limbs)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: Requires MinGW or WSL with libgmp
//
// The GMP backend is NOT constant-time: github.com/ncw/gmp binds the mpz_*
// layer, whose running time depends on operand values, not on declared
// widths. ConstantTime reports false accordingly, and callers who need the
// timing contract must stay on the limb backend. The GMP backend exists for
// throughput-sensitive work on public data (e.g. the leaky tier and prime
// sieving) where raw multiplication speed dominates.
package bigint

import (
	"github.com/ncw/gmp"
)

func init() {
	RegisterBackend("gmp", func() Backend { return gmpBackend{} })
}

// gmpBackend routes arithmetic through libgmp via cgo. Variable-time;
// see the file comment.
type gmpBackend struct{}

func (gmpBackend) Name() string       { return "gmp" }
func (gmpBackend) ConstantTime() bool { return false }

func (gmpBackend) Add(z, x, y *Uint) {
	t := new(gmp.Int).Add(gmpOf(x), gmpOf(y))
	gmpInto(z, t)
}

func (gmpBackend) Sub(z, x, y *Uint) Choice {
	t := new(gmp.Int).Sub(gmpOf(x), gmpOf(y))
	if t.Sign() < 0 {
		// Wrap into [0, 2^bits) the way the fixed-width engine does.
		t.Add(t, new(gmp.Int).Lsh(gmp.NewInt(1), uint(z.bits)))
		gmpInto(z, t)
		return 1
	}
	gmpInto(z, t)
	return 0
}

func (gmpBackend) Mul(z, x, y *Uint) {
	gmpInto(z, new(gmp.Int).Mul(gmpOf(x), gmpOf(y)))
}

func (gmpBackend) DivRem(q, r, x, y *Uint) {
	qt, rt := new(gmp.Int), new(gmp.Int)
	qt.DivMod(gmpOf(x), gmpOf(y), rt)
	gmpInto(q, qt)
	gmpInto(r, rt)
}

func (gmpBackend) Mod(z, x, m *Uint) {
	gmpInto(z, new(gmp.Int).Mod(gmpOf(x), gmpOf(m)))
}

func (gmpBackend) ExpMod(z, base, e, m *Uint) {
	gmpInto(z, new(gmp.Int).Exp(gmpOf(base), gmpOf(e), gmpOf(m)))
}

func (gmpBackend) InvMod(z, a, m *Uint) Choice {
	av, mv := gmpOf(a), gmpOf(m)
	if av.Sign() == 0 || new(gmp.Int).GCD(nil, nil, av, mv).Cmp(gmp.NewInt(1)) != 0 {
		gmpInto(z, new(gmp.Int))
		return 0
	}
	gmpInto(z, new(gmp.Int).ModInverse(av, mv))
	return 1
}

func (gmpBackend) LeakyGCD(z, x, y *Uint) {
	gmpInto(z, new(gmp.Int).GCD(nil, nil, gmpOf(x), gmpOf(y)))
}

func (gmpBackend) LeakyModUint64(x *Uint, v uint64) uint64 {
	return new(gmp.Int).Mod(gmpOf(x), new(gmp.Int).SetUint64(v)).Uint64()
}

func (gmpBackend) LeakyProbablyPrime(x *Uint, rounds int) bool {
	return gmpOf(x).ProbablyPrime(rounds)
}

func gmpOf(x *Uint) *gmp.Int {
	return new(gmp.Int).SetBytes(x.Bytes())
}

func gmpInto(z *Uint, v *gmp.Int) {
	b := v.Bytes()
	buf := make([]byte, (int(z.bits)+7)/8)
	copy(buf[len(buf)-len(b):], b)
	z.mag.SetBytes(buf)
}
