// This file defines the arithmetic backend abstraction. The engine depends
// on the Backend interface, not on a concrete implementation: the default
// pure-Go limb backend can be swapped for the GMP-based one (built with the
// gmp tag) or for an instrumented test double that records call patterns.
package bigint

import (
	"fmt"
	"sort"
	"sync"
)

// Backend is the trusted arbitrary-precision arithmetic capability the
// engine is built on. Every method writes its result into a destination
// Uint pre-sized by the caller under the precision policy; implementations
// must not resize destinations or retain references to operands.
//
// A Backend documents its timing behavior through ConstantTime. The engine
// adds no value-dependent control flow around backend calls, so the timing
// contract of the constant-time tier is inherited directly from the
// backend's per-primitive guarantees.
type Backend interface {
	// Name returns the registry name of the backend.
	Name() string

	// ConstantTime reports whether the arithmetic primitives run in time
	// depending only on declared widths. The engine never selects a
	// non-constant-time backend implicitly.
	ConstantTime() bool

	// Add sets z = x + y. z is sized to hold the full sum.
	Add(z, x, y *Uint)

	// Sub sets z = x - y modulo 2^z.BitLen() and returns the borrow.
	Sub(z, x, y *Uint) Choice

	// Mul sets z = x * y. z is sized to hold the full product.
	Mul(z, x, y *Uint)

	// DivRem sets q = x / y and r = x % y. The divisor must be nonzero;
	// checked builds validate this before the call.
	DivRem(q, r, x, y *Uint)

	// Mod sets z = x mod m.
	Mod(z, x, m *Uint)

	// ExpMod sets z = base^e mod m for an odd m > 1, consuming exactly
	// e.BitLen() exponent bits.
	ExpMod(z, base, e, m *Uint)

	// InvMod sets z to the inverse of a modulo m > 1 and returns 1 when it
	// exists. The low bit of the modulus is treated as public.
	InvMod(z, a, m *Uint) Choice

	// LeakyGCD sets z = gcd(x, y). Timing depends on the operand values.
	LeakyGCD(z, x, y *Uint)

	// LeakyModUint64 returns x mod v. Timing depends on the operand values.
	LeakyModUint64(x *Uint, v uint64) uint64

	// LeakyProbablyPrime applies a probabilistic primality test with the
	// given number of rounds. Timing depends on the candidate and on the
	// witnesses drawn.
	LeakyProbablyPrime(x *Uint, rounds int) bool
}

// backendFactory constructs a fresh backend instance.
type backendFactory func() Backend

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]backendFactory)

	activeMu sync.RWMutex
	active   Backend
)

// RegisterBackend makes a backend constructor available under the given
// name. It is intended to be called from init functions; registering the
// same name twice panics.
func RegisterBackend(name string, factory func() Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if _, dup := backends[name]; dup {
		panic(fmt.Sprintf("bigint: backend %q registered twice", name))
	}
	backends[name] = factory
}

// NewBackend constructs the backend registered under name.
func NewBackend(name string) (Backend, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("bigint: unknown backend %q (available: %v)", name, BackendNames())
	}
	return factory(), nil
}

// BackendNames returns the sorted names of all registered backends.
func BackendNames() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetBackend installs b as the backend used by all Uint operations. It
// returns the previously active backend, letting tests restore it.
func SetBackend(b Backend) Backend {
	activeMu.Lock()
	defer activeMu.Unlock()
	prev := active
	active = b
	return prev
}

// activeBackend returns the backend in use, defaulting to the limb backend.
func activeBackend() Backend {
	activeMu.RLock()
	b := active
	activeMu.RUnlock()
	if b == nil {
		return limbBackend{}
	}
	return b
}
