package numbertheory

import (
	"math/big"
	"testing"
)

func TestSievePrimes(t *testing.T) {
	t.Parallel()

	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}
	for i, p := range want {
		if smallPrimes[i] != p {
			t.Fatalf("smallPrimes[%d] = %d, want %d", i, smallPrimes[i], p)
		}
	}
	if len(smallPrimes) != smallPrimeCount {
		t.Fatalf("table holds %d primes, want %d", len(smallPrimes), smallPrimeCount)
	}

	// The 2048th prime is 17863.
	if last := smallPrimes[smallPrimeCount-1]; last != 17863 {
		t.Errorf("last table prime = %d, want 17863", last)
	}

	for _, p := range smallPrimes {
		if !new(big.Int).SetUint64(p).ProbablyPrime(0) {
			t.Fatalf("table entry %d is not prime", p)
		}
	}
}

func TestSievePrefix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		bits uint
		want int
	}{
		{1, 2},
		{6, 2},
		{16, 5},
		{512, 170},
		{2048, 682},
		{100000, smallPrimeCount},
	}
	for _, tt := range tests {
		if got := sievePrefix(tt.bits); got != tt.want {
			t.Errorf("sievePrefix(%d) = %d, want %d", tt.bits, got, tt.want)
		}
	}
}
