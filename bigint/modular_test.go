package bigint

import (
	"encoding/json"
	"errors"
	"math/big"
	mrand "math/rand"
	"os"
	"path/filepath"
	"testing"
)

// goldenCase mirrors the fixture entries written by cmd/generate-golden.
type goldenCase struct {
	Op      string `json:"op"`
	X       string `json:"x"`
	Y       string `json:"y,omitempty"`
	Modulus string `json:"modulus,omitempty"`
	Bits    uint   `json:"bits"`
	Result  string `json:"result"`
	OK      bool   `json:"ok"`
}

func loadGoldenCases(t *testing.T) []goldenCase {
	t.Helper()
	file, err := os.Open(filepath.Join("testdata", "modular_golden.json"))
	if err != nil {
		t.Fatalf("failed to open golden file: %v. Did you run 'go run cmd/generate-golden/main.go'?", err)
	}
	defer file.Close()

	var cases []goldenCase
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("failed to decode golden file: %v", err)
	}
	return cases
}

func goldenUint(t *testing.T, s string, bits uint) *Uint {
	t.Helper()
	x, err := LeakyFromString(s, 10, bits)
	if err != nil {
		t.Fatalf("bad golden operand %q at %d bits: %v", s, bits, err)
	}
	return x
}

func TestGoldenFile(t *testing.T) {
	t.Parallel()

	for i, tc := range loadGoldenCases(t) {
		t.Run(tc.Op, func(t *testing.T) {
			var got *Uint
			switch tc.Op {
			case "add":
				got = goldenUint(t, tc.X, tc.Bits).Add(goldenUint(t, tc.Y, tc.Bits))
			case "mul":
				got = goldenUint(t, tc.X, tc.Bits).Mul(goldenUint(t, tc.Y, tc.Bits))
			case "mod":
				got = goldenUint(t, tc.X, tc.Bits).Mod(goldenUint(t, tc.Modulus, tc.Bits))
			case "expmod":
				got = goldenUint(t, tc.X, tc.Bits).ExpMod(goldenUint(t, tc.Y, tc.Bits), goldenUint(t, tc.Modulus, tc.Bits))
			case "invmod":
				inv, err := goldenUint(t, tc.X, tc.Bits).InvMod(goldenUint(t, tc.Modulus, tc.Bits))
				if !tc.OK {
					if !errors.Is(err, NotInvertibleError{}) {
						t.Fatalf("case %d: want NotInvertibleError, got %v", i, err)
					}
					return
				}
				if err != nil {
					t.Fatalf("case %d: unexpected error: %v", i, err)
				}
				got = inv
			default:
				t.Fatalf("case %d: unknown op %q", i, tc.Op)
			}

			if got.LeakyString() != tc.Result {
				t.Errorf("case %d: %s(%s, %s, %s) = %s, want %s",
					i, tc.Op, tc.X, tc.Y, tc.Modulus, got.LeakyString(), tc.Result)
			}
		})
	}
}

func TestModAgainstBigInt(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(30))

	for _, tc := range []struct{ xBits, mBits uint }{
		{64, 16}, {256, 64}, {128, 128}, {16, 256},
	} {
		for i := 0; i < 10; i++ {
			a := randBig(rng, tc.xBits)
			mv := randBig(rng, tc.mBits)
			if mv.Sign() == 0 {
				mv.SetInt64(7)
			}
			z := mustUint(t, a, tc.xBits).Mod(mustUint(t, mv, tc.mBits))
			if z.BitLen() != tc.mBits {
				t.Fatalf("width = %d, want %d", z.BitLen(), tc.mBits)
			}
			if want := new(big.Int).Mod(a, mv); bigOf(z).Cmp(want) != 0 {
				t.Fatalf("%v mod %v = %v, want %v", a, mv, bigOf(z), want)
			}
		}
	}
}

func TestExpModAgainstBigInt(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(31))

	const bits = 128
	for i := 0; i < 10; i++ {
		mv := randBig(rng, bits)
		mv.SetBit(mv, 0, 1)
		if mv.Cmp(big.NewInt(1)) == 0 {
			mv.SetInt64(3)
		}
		base := randBig(rng, bits)
		exp := randBig(rng, 64)

		z := mustUint(t, base, bits).ExpMod(mustUint(t, exp, 64), mustUint(t, mv, bits))
		if z.BitLen() != bits {
			t.Fatalf("width = %d, want %d", z.BitLen(), bits)
		}
		if want := new(big.Int).Exp(base, exp, mv); bigOf(z).Cmp(want) != 0 {
			t.Fatalf("%v^%v mod %v = %v, want %v", base, exp, mv, bigOf(z), want)
		}
	}
}

func TestInvModAgainstBigInt(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(32))

	// Odd and even moduli take different code paths; cover both.
	for _, forceEven := range []bool{false, true} {
		for i := 0; i < 20; i++ {
			mv := randBig(rng, 96)
			if forceEven {
				mv.SetBit(mv, 0, 0)
			} else {
				mv.SetBit(mv, 0, 1)
			}
			if mv.Cmp(big.NewInt(2)) <= 0 {
				continue
			}
			av := randBig(rng, 96)

			z, err := mustUint(t, av, 96).InvMod(mustUint(t, mv, 96))
			want := new(big.Int).ModInverse(av, mv)
			if want == nil {
				if !errors.Is(err, NotInvertibleError{}) {
					t.Fatalf("inv(%v, %v): want NotInvertibleError, got %v", av, mv, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("inv(%v, %v): unexpected error %v", av, mv, err)
			}
			if bigOf(z).Cmp(want) != 0 {
				t.Fatalf("inv(%v, %v) = %v, want %v", av, mv, bigOf(z), want)
			}
		}
	}
}

func TestInvModRoundTrips(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(33))

	// a * a^-1 mod m = 1 for coprime pairs, whatever the modulus parity.
	for i := 0; i < 20; i++ {
		mv := randBig(rng, 80)
		if mv.Cmp(big.NewInt(2)) <= 0 {
			mv.SetInt64(101)
		}
		av := randBig(rng, 80)
		if new(big.Int).GCD(nil, nil, av, mv).Cmp(big.NewInt(1)) != 0 {
			continue
		}

		a := mustUint(t, av, 80)
		m := mustUint(t, mv, 80)
		inv, err := a.InvMod(m)
		if err != nil {
			t.Fatalf("inv(%v, %v): %v", av, mv, err)
		}
		prod := a.Mul(inv).Mod(m)
		if bigOf(prod).Cmp(big.NewInt(1)) != 0 {
			t.Fatalf("a * inv(a) mod %v = %v, want 1 (a = %v)", mv, bigOf(prod), av)
		}
	}
}

func TestNewModulusRejectsEven(t *testing.T) {
	t.Parallel()

	even, _ := FromUint64(8, 16)
	if _, err := NewModulus(even); err == nil {
		t.Fatal("an even modulus must be rejected")
	}

	odd, _ := FromUint64(13, 16)
	m, err := NewModulus(odd)
	if err != nil {
		t.Fatalf("NewModulus(13): %v", err)
	}
	if m.BitLen() != 16 {
		t.Errorf("BitLen = %d, want 16", m.BitLen())
	}
	if got := bigOf(m.Uint()).Uint64(); got != 13 {
		t.Errorf("Uint() = %d, want 13", got)
	}
}

func TestModulusOperations(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(34))

	mv := randBig(rng, 128)
	mv.SetBit(mv, 0, 1)
	m, err := NewModulus(mustUint(t, mv, 128))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		base := randBig(rng, 256)
		exp := randBig(rng, 64)

		red := m.Reduce(mustUint(t, base, 256))
		if want := new(big.Int).Mod(base, mv); bigOf(red).Cmp(want) != 0 {
			t.Fatalf("Reduce(%v) = %v, want %v", base, bigOf(red), want)
		}

		pow := m.ExpMod(mustUint(t, base, 256), mustUint(t, exp, 64))
		if want := new(big.Int).Exp(base, exp, mv); bigOf(pow).Cmp(want) != 0 {
			t.Fatalf("ExpMod(%v, %v) = %v, want %v", base, exp, bigOf(pow), want)
		}

		av := new(big.Int).Mod(randBig(rng, 128), mv)
		inv, err := m.InvMod(mustUint(t, av, 128))
		want := new(big.Int).ModInverse(av, mv)
		if want == nil {
			if !errors.Is(err, NotInvertibleError{}) {
				t.Fatalf("InvMod(%v): want NotInvertibleError, got %v", av, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("InvMod(%v): %v", av, err)
		}
		if bigOf(inv).Cmp(want) != 0 {
			t.Fatalf("InvMod(%v) = %v, want %v", av, bigOf(inv), want)
		}
	}
}
