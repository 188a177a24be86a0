package bigint

import (
	"bytes"
	"sort"
	"testing"
	"time"
)

// Timing tests compare operation durations across operand populations that
// share a declared width but sit at opposite magnitude extremes. They catch
// gross value-dependent behavior (an early exit, a skipped loop) rather than
// microarchitectural leakage, and use a wide tolerance so scheduler noise
// does not produce false failures.

const (
	timingWidth    = 512
	timingBatches  = 21
	timingBatchOps = 200
	// A value-dependent shortcut in a 512-bit operation shows up as an
	// order-of-magnitude gap; scheduler jitter stays well under 3x on
	// median-of-batches measurements.
	timingTolerance = 3.0
)

func allOnes(t *testing.T, bits uint) *Uint {
	t.Helper()
	buf := bytes.Repeat([]byte{0xff}, int((bits+7)/8))
	v, err := FromBytes(buf, bits)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func one(t *testing.T, bits uint) *Uint {
	t.Helper()
	v, err := FromUint64(1, bits)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

// medianBatchTime runs op in fixed-size batches and returns the median batch
// duration, which is far more stable than per-op timing.
func medianBatchTime(op func()) time.Duration {
	// Warmup batch absorbs cache and allocator cold starts.
	for i := 0; i < timingBatchOps; i++ {
		op()
	}

	samples := make([]time.Duration, timingBatches)
	for b := range samples {
		start := time.Now()
		for i := 0; i < timingBatchOps; i++ {
			op()
		}
		samples[b] = time.Since(start)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return samples[len(samples)/2]
}

func assertComparableTiming(t *testing.T, name string, lo, hi time.Duration) {
	t.Helper()
	ratio := float64(hi) / float64(lo)
	if ratio > timingTolerance {
		t.Errorf("%s: batch medians %v vs %v (ratio %.2f) differ beyond tolerance %.1f",
			name, lo, hi, ratio, timingTolerance)
	}
}

func TestMulTimingIsWidthDriven(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical timing test skipped in short mode")
	}

	dense := allOnes(t, timingWidth)
	sparse := one(t, timingWidth)

	tDense := medianBatchTime(func() { dense.Mul(dense) })
	tSparse := medianBatchTime(func() { sparse.Mul(sparse) })

	lo, hi := tDense, tSparse
	if lo > hi {
		lo, hi = hi, lo
	}
	assertComparableTiming(t, "Mul", lo, hi)
}

func TestExpModTimingIsWidthDriven(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical timing test skipped in short mode")
	}

	modBytes := bytes.Repeat([]byte{0xff}, timingWidth/8)
	m, err := FromBytes(modBytes, timingWidth)
	if err != nil {
		t.Fatal(err)
	}

	denseExp := allOnes(t, 64)
	sparseExp := one(t, 64)
	base, err := FromUint64(0xdeadbeef, timingWidth)
	if err != nil {
		t.Fatal(err)
	}

	run := func(e *Uint) time.Duration {
		samples := make([]time.Duration, timingBatches)
		for b := range samples {
			start := time.Now()
			for i := 0; i < 4; i++ {
				base.ExpMod(e, m)
			}
			samples[b] = time.Since(start)
		}
		sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
		return samples[len(samples)/2]
	}

	tDense := run(denseExp)
	tSparse := run(sparseExp)

	lo, hi := tDense, tSparse
	if lo > hi {
		lo, hi = hi, lo
	}
	assertComparableTiming(t, "ExpMod", lo, hi)
}
