package bigint

import (
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand"
	"testing"
)

func TestLeakyCmp(t *testing.T) {
	t.Parallel()

	a, _ := FromUint64(5, 8)
	b, _ := FromUint64(5, 1024)
	c, _ := FromUint64(6, 8)

	if a.LeakyCmp(b) != 0 {
		t.Error("equal values should compare as 0 regardless of width")
	}
	if a.LeakyCmp(c) != -1 {
		t.Error("5 < 6")
	}
	if c.LeakyCmp(a) != 1 {
		t.Error("6 > 5")
	}
}

func TestLeakyBitLen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v    uint64
		bits uint
		want uint
	}{
		{0, 64, 0},
		{1, 64, 1},
		{0xff, 64, 8},
		{1 << 40, 2048, 41},
	}
	for _, tt := range tests {
		x, _ := FromUint64(tt.v, tt.bits)
		if got := x.LeakyBitLen(); got != tt.want {
			t.Errorf("LeakyBitLen(%#x) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestLeakyGCD(t *testing.T) {
	t.Parallel()
	rng := mrand.New(mrand.NewSource(40))

	for i := 0; i < 20; i++ {
		a := randBig(rng, 100)
		b := randBig(rng, 60)
		if a.Sign() == 0 {
			a.SetInt64(12)
		}
		if b.Sign() == 0 {
			b.SetInt64(18)
		}
		x := mustUint(t, a, 100)
		y := mustUint(t, b, 60)

		g := x.LeakyGCD(y)
		if g.BitLen() != 60 {
			t.Fatalf("gcd width = %d, want 60", g.BitLen())
		}
		if want := new(big.Int).GCD(nil, nil, a, b); bigOf(g).Cmp(want) != 0 {
			t.Fatalf("gcd(%v, %v) = %v, want %v", a, b, bigOf(g), want)
		}
	}
}

func TestLeakyModUint64(t *testing.T) {
	t.Parallel()

	x, _ := LeakyFromString("340282366920938463463374607431768211456", 10, 129) // 2^128
	if got := x.LeakyModUint64(65537); got != 1 {
		t.Errorf("2^128 mod 65537 = %d, want 1", got)
	}
	if got := x.LeakyModUint64(3); got != 1 {
		t.Errorf("2^128 mod 3 = %d, want 1", got)
	}
}

func TestLeakyProbablyPrime(t *testing.T) {
	t.Parallel()

	for _, p := range []uint64{2, 3, 5, 7, 11, 65537} {
		x, _ := FromUint64(p, 64)
		if !x.LeakyProbablyPrime(25) {
			t.Errorf("%d should test prime", p)
		}
	}
	for _, c := range []uint64{0, 1, 4, 6, 8, 9, 65536} {
		x, _ := FromUint64(c, 64)
		if x.LeakyProbablyPrime(25) {
			t.Errorf("%d should test composite", c)
		}
	}

	// 2^127 - 1 is a Mersenne prime.
	m127, _ := LeakyFromString("170141183460469231731687303715884105727", 10, 127)
	if !m127.LeakyProbablyPrime(25) {
		t.Error("2^127 - 1 should test prime")
	}
}

func TestLeakyBitOperations(t *testing.T) {
	t.Parallel()

	x, _ := FromUint64(0, 130)
	x.LeakySetBit(0)
	x.LeakySetBit(129)

	if x.LeakyBit(0) != 1 || x.LeakyBit(129) != 1 {
		t.Error("set bits should read back as 1")
	}
	if x.LeakyBit(64) != 0 {
		t.Error("unset bit should read back as 0")
	}
	if x.LeakyBit(4096) != 0 {
		t.Error("out-of-range bit reads as 0")
	}

	x.LeakyClearBit(129)
	if x.LeakyBit(129) != 0 {
		t.Error("cleared bit should read back as 0")
	}
	if got := x.LeakyBitLen(); got != 1 {
		t.Errorf("after clearing the top bit, LeakyBitLen = %d, want 1", got)
	}
}

func TestLeakyFromString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		base    int
		bits    uint
		want    string
		wantErr error
	}{
		{name: "decimal", input: "12345", base: 10, bits: 16, want: "12345"},
		{name: "hex", input: "deadbeef", base: 16, bits: 32, want: "3735928559"},
		{name: "base zero with prefix", input: "0x10", base: 0, bits: 8, want: "16"},
		{name: "zero", input: "0", base: 10, bits: 1, want: "0"},
		{name: "malformed", input: "12x45", base: 10, bits: 64, wantErr: ParseError{Input: "12x45", Base: 10}},
		{name: "negative", input: "-5", base: 10, bits: 64, wantErr: ParseError{Input: "-5", Base: 10}},
		{name: "too wide", input: "256", base: 10, bits: 8, wantErr: SizeExceededError{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x, err := LeakyFromString(tt.input, tt.base, tt.bits)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected an error")
				}
				switch tt.wantErr.(type) {
				case ParseError:
					var pe ParseError
					if !errors.As(err, &pe) {
						t.Errorf("error %v should be a ParseError", err)
					}
				case SizeExceededError:
					var se SizeExceededError
					if !errors.As(err, &se) {
						t.Errorf("error %v should be a SizeExceededError", err)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := x.LeakyString(); got != tt.want {
				t.Errorf("parsed %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLeakyFormat(t *testing.T) {
	t.Parallel()

	x, _ := FromUint64(255, 16)
	if got := x.LeakyFormat(16); got != "ff" {
		t.Errorf("hex = %q, want \"ff\"", got)
	}
	if got := x.LeakyFormat(2); got != "11111111" {
		t.Errorf("binary = %q, want eight ones", got)
	}
	if got := x.LeakyString(); got != "255" {
		t.Errorf("decimal = %q, want \"255\"", got)
	}
}

func TestFmtVerbsDoNotLeak(t *testing.T) {
	t.Parallel()

	x, _ := FromUint64(98765, 64)
	if got := fmt.Sprintf("%v", x); got != "Uint(64 bits)" {
		t.Errorf("%%v printed %q", got)
	}
	if got := fmt.Sprintf("%s", x); got != "Uint(64 bits)" {
		t.Errorf("%%s printed %q", got)
	}
}
