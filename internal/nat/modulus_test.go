package nat

import (
	"math/big"
	mrand "math/rand"
	"testing"
)

func TestMulAgainstBigInt(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(10))

	for _, bits := range []uint{16, 63, 64, 65, 256, 1000} {
		for i := 0; i < 20; i++ {
			a := randomBig(rng, bits)
			b := randomBig(rng, bits)
			x := natFromBig(t, a, bits)
			y := natFromBig(t, b, bits)

			z := New(2 * bits).Mul(x, y)
			want := new(big.Int).Mul(a, b)
			if got := natToBig(z, 2*bits); got.Cmp(want) != 0 {
				t.Fatalf("%v * %v = %v, want %v (width %d)", a, b, got, want, bits)
			}
		}
	}
}

func TestMulKnownValues(t *testing.T) {
	t.Parallel()

	// 2^63 * 2^63 = 2^126 straddles the 63-bit limb boundary both ways.
	x := New(64)
	x.OrBit(63, 1)
	z := New(128).Mul(x, x)

	want := new(big.Int).Lsh(big.NewInt(1), 126)
	if got := natToBig(z, 128); got.Cmp(want) != 0 {
		t.Fatalf("2^63 squared = %v, want %v", got, want)
	}
}

func TestDivRemAgainstBigInt(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(11))

	for _, tc := range []struct{ xBits, yBits uint }{
		{16, 8}, {64, 64}, {128, 17}, {256, 130}, {333, 64},
	} {
		for i := 0; i < 20; i++ {
			a := randomBig(rng, tc.xBits)
			b := randomBig(rng, tc.yBits)
			if b.Sign() == 0 {
				b.SetInt64(1)
			}
			x := natFromBig(t, a, tc.xBits)
			y := natFromBig(t, b, tc.yBits)

			q := New(tc.xBits)
			r := New(tc.yBits)
			DivRem(q, r, x, y, tc.xBits)

			wantQ, wantR := new(big.Int).QuoRem(a, b, new(big.Int))
			if got := natToBig(q, tc.xBits); got.Cmp(wantQ) != 0 {
				t.Fatalf("%v / %v = %v, want %v", a, b, got, wantQ)
			}
			if got := natToBig(r, tc.yBits); got.Cmp(wantR) != 0 {
				t.Fatalf("%v %% %v = %v, want %v", a, b, got, wantR)
			}
		}
	}
}

func TestRemDiscardsQuotient(t *testing.T) {
	t.Parallel()

	x := natFromBig(t, big.NewInt(1000), 16)
	y := natFromBig(t, big.NewInt(13), 16)
	r := New(16)
	Rem(r, x, y, 16)
	if got := natToBig(r, 16); got.Int64() != 12 {
		t.Fatalf("1000 %% 13 = %v, want 12", got)
	}
}

func TestMinusInverseModW(t *testing.T) {
	t.Parallel()

	for _, x := range []uint{1, 3, 5, 0x123457, _MASK} {
		inv := minusInverseModW(x)
		// x * (-x^-1) = -1 mod 2^_W.
		if (x*inv)&_MASK != _MASK {
			t.Errorf("minusInverseModW(%#x) = %#x is not a negated inverse", x, inv)
		}
	}
}

func TestModulusExpAgainstBigInt(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(12))

	for _, bits := range []uint{16, 64, 128, 256} {
		for i := 0; i < 8; i++ {
			mv := randomBig(rng, bits)
			mv.SetBit(mv, 0, 1) // the Montgomery machinery needs an odd modulus
			if mv.Cmp(big.NewInt(1)) == 0 {
				mv.SetInt64(3)
			}
			base := new(big.Int).Mod(randomBig(rng, bits), mv)
			exp := randomBig(rng, bits)

			m := NewModulus(natFromBig(t, mv, bits), bits)
			out := New(bits)
			m.Exp(out, natFromBig(t, base, bits), natFromBig(t, exp, bits), bits)

			want := new(big.Int).Exp(base, exp, mv)
			if got := natToBig(out, bits); got.Cmp(want) != 0 {
				t.Fatalf("%v^%v mod %v = %v, want %v", base, exp, mv, got, want)
			}
		}
	}
}

func TestModulusExpKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		base, exp, mod, want int64
	}{
		{7, 5, 13, 11},
		{2, 10, 999, 25},
		{0, 0, 7, 1}, // 0^0 = 1 by convention
		{5, 1, 7, 5},
		{6, 2, 7, 1},
	}
	for _, tt := range tests {
		m := NewModulus(natFromBig(t, big.NewInt(tt.mod), 16), 16)
		out := New(16)
		m.Exp(out, natFromBig(t, big.NewInt(tt.base), 16), natFromBig(t, big.NewInt(tt.exp), 16), 16)
		if got := natToBig(out, 16); got.Int64() != tt.want {
			t.Errorf("%d^%d mod %d = %v, want %d", tt.base, tt.exp, tt.mod, got, tt.want)
		}
	}
}

func TestModulusInvAgainstBigInt(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(13))

	for _, bits := range []uint{16, 64, 128, 256} {
		for i := 0; i < 10; i++ {
			mv := randomBig(rng, bits)
			mv.SetBit(mv, 0, 1)
			if mv.Cmp(big.NewInt(3)) < 0 {
				mv.SetInt64(3)
			}
			av := new(big.Int).Mod(randomBig(rng, bits), mv)

			m := NewModulus(natFromBig(t, mv, bits), bits)
			a := natFromBig(t, av, bits).Expand(LimbsFor(bits))
			out := NewLimbs(LimbsFor(bits))
			ok := m.Inv(out, a)

			want := new(big.Int).ModInverse(av, mv)
			if want == nil {
				if ok != 0 {
					t.Fatalf("Inv(%v, %v) reported an inverse where none exists", av, mv)
				}
				continue
			}
			if ok != 1 {
				t.Fatalf("Inv(%v, %v) found no inverse, want %v", av, mv, want)
			}
			if got := natToBig(out, bits); got.Cmp(want) != 0 {
				t.Fatalf("Inv(%v, %v) = %v, want %v", av, mv, got, want)
			}
		}
	}
}

func TestModulusInvKnownValues(t *testing.T) {
	t.Parallel()

	// Inputs chosen so the gcd loop takes many even-u iterations, where the
	// conditional corrections must stay inert: a phantom borrow or carry
	// applied on a skipped step drives the coefficients out of [0, m).
	tests := []struct {
		a, m, want string
		bits       uint
	}{
		{"11111", "12563", "199", 16},
		{"2534447605633172844", "4401600086789832505", "1970495709493149324", 62},
		{"2", "9", "5", 16},
		{"1", "3", "1", 16},
	}
	for _, tt := range tests {
		av, _ := new(big.Int).SetString(tt.a, 10)
		mv, _ := new(big.Int).SetString(tt.m, 10)
		want, _ := new(big.Int).SetString(tt.want, 10)

		m := NewModulus(natFromBig(t, mv, tt.bits), tt.bits)
		a := natFromBig(t, av, tt.bits).Expand(LimbsFor(tt.bits))
		out := NewLimbs(LimbsFor(tt.bits))
		if ok := m.Inv(out, a); ok != 1 {
			t.Fatalf("Inv(%v, %v) found no inverse, want %v", av, mv, want)
		}
		got := natToBig(out, tt.bits)
		if got.Cmp(mv) >= 0 {
			t.Fatalf("Inv(%v, %v) = %v, out of range [0, m)", av, mv, got)
		}
		if got.Cmp(want) != 0 {
			t.Fatalf("Inv(%v, %v) = %v, want %v", av, mv, got, want)
		}
	}
}

func TestModulusInvNonInvertible(t *testing.T) {
	t.Parallel()

	// gcd(6, 9) = 3: no inverse, and the output must not claim one.
	m := NewModulus(natFromBig(t, big.NewInt(9), 16), 16)
	out := NewLimbs(LimbsFor(16))
	if ok := m.Inv(out, natFromBig(t, big.NewInt(6), 16)); ok != 0 {
		t.Error("6 has no inverse modulo 9")
	}

	// Zero is never invertible.
	if ok := m.Inv(out, New(16)); ok != 0 {
		t.Error("0 has no inverse modulo 9")
	}
}
