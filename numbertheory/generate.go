// Package numbertheory provides number-theoretic functions suited for
// cryptography, built on the fixed-width integers in package bigint. The
// centerpiece is fast generation of primes and safe primes: candidates are
// screened against a small-prime sieve before the probabilistic primality
// test ever runs, following the OpenSSL bn_prime heuristic.
//
// Generated candidates are public by the time anything value-dependent
// happens to them: a candidate is either discarded or becomes the published
// prime, so the leaky primality test never runs on a value that must stay
// secret while composite.
package numbertheory

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/ctbig/bigint"
)

// DefaultRounds is the number of Miller-Rabin rounds applied to candidates
// that survive the sieve.
const DefaultRounds = 25

// minPrimeBits is the smallest supported candidate width. Below this the
// sieve prefix degenerates and callers should use a lookup table instead.
const minPrimeBits = 16

// Generator produces random primes. The zero value is ready to use: it
// draws from crypto/rand, applies DefaultRounds Miller-Rabin rounds, runs
// one search goroutine per CPU for safe primes, and does not log.
type Generator struct {
	// Rand is the entropy source. nil means crypto/rand.Reader. A non-nil
	// reader disables parallel search, since Generator cannot know whether
	// it tolerates concurrent reads.
	Rand io.Reader

	// Rounds is the Miller-Rabin round count; 0 means DefaultRounds.
	Rounds int

	// Workers bounds the parallel safe-prime search; 0 means one worker
	// per CPU.
	Workers int

	// Logger receives progress events. The zero Logger discards them.
	Logger zerolog.Logger
}

func (g *Generator) randSource() io.Reader {
	if g.Rand != nil {
		return g.Rand
	}
	return rand.Reader
}

func (g *Generator) rounds() int {
	if g.Rounds > 0 {
		return g.Rounds
	}
	return DefaultRounds
}

func (g *Generator) workerCount() int {
	if g.Rand != nil {
		return 1
	}
	if g.Workers > 0 {
		return g.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Prime generates a uniformly random prime of exactly the given bit width:
// the top and bottom bits are always 1.
func (g *Generator) Prime(ctx context.Context, bits uint) (*bigint.Uint, error) {
	if bits < minPrimeBits {
		return nil, fmt.Errorf("numbertheory: prime width %d below minimum %d", bits, minPrimeBits)
	}
	return g.searchLoop(ctx, bits, false)
}

// SafePrime generates a uniformly random safe prime p = 2q + 1 of exactly
// the given bit width, with q prime. Safe primes are scarce, so the search
// fans out across workers when the entropy source allows it; the first
// worker to find one wins and the rest are cancelled.
func (g *Generator) SafePrime(ctx context.Context, bits uint) (*bigint.Uint, error) {
	if bits < minPrimeBits {
		return nil, fmt.Errorf("numbertheory: prime width %d below minimum %d", bits, minPrimeBits)
	}
	workers := g.workerCount()
	if workers == 1 {
		return g.searchLoop(ctx, bits, true)
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	found := make(chan *bigint.Uint, workers)

	eg, searchCtx := errgroup.WithContext(searchCtx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			p, err := g.searchLoop(searchCtx, bits, true)
			if err != nil {
				// Losing workers exit on cancellation; that is not a
				// failure of the search itself.
				if searchCtx.Err() != nil && ctx.Err() == nil {
					return nil
				}
				return err
			}
			found <- p
			cancel()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	select {
	case p := <-found:
		return p, nil
	default:
		return nil, ctx.Err()
	}
}

// searchLoop draws candidates until one passes the sieve and the
// Miller-Rabin test, or the context is cancelled.
func (g *Generator) searchLoop(ctx context.Context, bits uint, safe bool) (*bigint.Uint, error) {
	r := g.randSource()
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		attempts++

		candidate, err := randomCandidate(r, bits, safe)
		if err != nil {
			return nil, fmt.Errorf("numbertheory: drawing candidate: %w", err)
		}

		delta, ok := sieveDelta(candidate, bits, safe)
		if !ok {
			continue
		}
		p, ok := addDelta(candidate, delta, bits)
		if !ok {
			continue
		}

		if !p.LeakyProbablyPrime(g.rounds()) {
			continue
		}
		if safe {
			if q := p.ShiftRight(1); !q.LeakyProbablyPrime(g.rounds()) {
				continue
			}
		}

		g.Logger.Debug().
			Uint("bits", bits).
			Bool("safe", safe).
			Int("attempts", attempts).
			Msg("prime found")
		return p, nil
	}
}

// randomCandidate draws a uniformly random width-bit odd integer with the
// top bit set. Safe-prime candidates are additionally forced to 3 mod 4,
// since p = 2q + 1 with q odd implies p = 3 (mod 4).
func randomCandidate(r io.Reader, bits uint, safe bool) (*bigint.Uint, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	buf[0] &= 0xff >> (uint(len(buf))*8 - bits)

	c, err := bigint.FromBytes(buf, bits)
	if err != nil {
		return nil, err
	}
	c.LeakySetBit(bits - 1)
	c.LeakySetBit(0)
	if safe {
		c.LeakySetBit(1)
	}
	return c, nil
}

// sieveDelta walks odd offsets from the candidate until candidate+delta
// clears trial division by the sieve primes, computing one modular
// reduction per prime up front and only native arithmetic per step. For
// safe primes the step is 4 (preserving 3 mod 4) and a residue of 1 is
// rejected too: candidate = 1 (mod p) would make (candidate-1)/2 divisible
// by p.
//
// The second return is false when delta runs out of native range and the
// caller should redraw.
func sieveDelta(candidate *bigint.Uint, bits uint, safe bool) (uint64, bool) {
	prefix := sievePrefix(bits)
	mods := make([]uint64, prefix)
	for i, p := range smallPrimes[:prefix] {
		mods[i] = candidate.LeakyModUint64(p)
	}

	step := uint64(2)
	if safe {
		step = 4
	}
	maxDelta := math.MaxUint64 - smallPrimes[prefix-1]

	var delta uint64
search:
	for {
		// Index 0 is the prime 2; candidates are odd by construction.
		for i := 1; i < prefix; i++ {
			rem := (mods[i] + delta) % smallPrimes[i]
			if rem == 0 || (safe && rem == 1) {
				delta += step
				if delta > maxDelta {
					return 0, false
				}
				continue search
			}
		}
		return delta, true
	}
}

// addDelta returns candidate+delta narrowed back to the declared width,
// reporting false when the addition carried past it.
func addDelta(candidate *bigint.Uint, delta uint64, bits uint) (*bigint.Uint, bool) {
	wide := candidate.AddUint64(delta)
	if wide.LeakyBitLen() != bits {
		return nil, false
	}
	b := wide.Bytes()
	need := int(bits+7) / 8
	p, err := bigint.FromBytes(b[len(b)-need:], bits)
	if err != nil {
		return nil, false
	}
	return p, true
}

// RSAModulus is a modulus n = p*q built from two safe primes, together
// with lambda = lcm(p-1, q-1), the value key generation schemes derive
// private material from.
type RSAModulus struct {
	N      *bigint.Uint
	Lambda *bigint.Uint
	P      *bigint.Uint
	Q      *bigint.Uint
}

// RSAModulus generates a modulus of exactly the given (even) bit width as
// the product of two safe primes of half the width. The two searches run
// concurrently when the entropy source allows it.
func (g *Generator) RSAModulus(ctx context.Context, bits uint) (*RSAModulus, error) {
	if bits%2 != 0 {
		return nil, fmt.Errorf("numbertheory: modulus width %d must be even", bits)
	}
	half := bits / 2

	var p, q *bigint.Uint
	if g.Rand != nil {
		// A caller-supplied reader is not assumed concurrency-safe.
		var err error
		if p, err = g.SafePrime(ctx, half); err != nil {
			return nil, err
		}
		if q, err = g.SafePrime(ctx, half); err != nil {
			return nil, err
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() (err error) {
			p, err = g.SafePrime(egCtx, half)
			return err
		})
		eg.Go(func() (err error) {
			q, err = g.SafePrime(egCtx, half)
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	n := p.Mul(q)

	one, _ := bigint.FromUint64(1, 1)
	pm1, _ := p.Sub(one)
	qm1, _ := q.Sub(one)
	product := pm1.Mul(qm1)
	lambda := product.Div(pm1.LeakyGCD(qm1))

	g.Logger.Info().
		Uint("bits", bits).
		Msg("rsa modulus generated")
	return &RSAModulus{N: n, Lambda: lambda, P: p, Q: q}, nil
}

// GenPrime generates a prime of exactly the given bit width using the
// default Generator.
func GenPrime(ctx context.Context, bits uint) (*bigint.Uint, error) {
	return (&Generator{}).Prime(ctx, bits)
}

// GenSafePrime generates a safe prime of exactly the given bit width using
// the default Generator.
func GenSafePrime(ctx context.Context, bits uint) (*bigint.Uint, error) {
	return (&Generator{}).SafePrime(ctx, bits)
}

// GenRSAModulus generates an RSA modulus of exactly the given bit width
// using the default Generator.
func GenRSAModulus(ctx context.Context, bits uint) (*RSAModulus, error) {
	return (&Generator{}).RSAModulus(ctx, bits)
}
