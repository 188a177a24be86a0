// This file provides the small-prime table used to sieve candidates before
// the expensive probabilistic primality test. The table mirrors the one
// OpenSSL uses for the same purpose: the first 2048 odd-sieve primes,
// enough that a bit_length/3 prefix is available for any practical width.
package numbertheory

// smallPrimeCount is the size of the trial-division table. With candidate
// widths up to 6144 bits, bits/3 never exceeds it.
const smallPrimeCount = 2048

// smallPrimes holds the first smallPrimeCount primes: 2, 3, 5, 7, ...
var smallPrimes = sievePrimes(smallPrimeCount)

// sievePrimes returns the first n primes by a plain Eratosthenes sieve.
// Runs once at package init; the bound comes from the prime counting
// estimate n(ln n + ln ln n), generous for n >= 6.
func sievePrimes(n int) []uint64 {
	limit := 2 * n * 10
	composite := make([]bool, limit)
	primes := make([]uint64, 0, n)
	for p := 2; p < limit && len(primes) < n; p++ {
		if composite[p] {
			continue
		}
		primes = append(primes, uint64(p))
		for q := p * p; q < limit; q += p {
			composite[q] = true
		}
	}
	if len(primes) < n {
		panic("numbertheory: sieve bound too small")
	}
	return primes
}

// sievePrefix returns how many table primes to trial-divide by for a
// candidate of the given bit width. The bits/3 heuristic follows OpenSSL's
// bn_prime choice: past that point the cost of another trial division
// outweighs the composites it catches.
func sievePrefix(bits uint) int {
	n := int(bits) / 3
	if n < 2 {
		n = 2
	}
	if n > smallPrimeCount {
		n = smallPrimeCount
	}
	return n
}
