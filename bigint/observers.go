// This file contains the operation-observer layer and its concrete
// implementations. Observers see only public data: the operation kind and
// the declared operand widths, never magnitudes. That keeps instrumentation
// compatible with the constant-time contract.
package bigint

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// OpObserver receives a notification for each arithmetic operation executed
// by the engine. Implementations must be safe for concurrent use and must
// not block: Observe runs on the caller's goroutine.
type OpObserver interface {
	// Observe reports one executed operation together with the declared
	// bit-length of its result.
	Observe(op Op, resultBits uint)
}

// observerSet is the installed observer list. Reads vastly outnumber
// writes, so the slice is published through an atomic.Value and replaced
// wholesale on registration.
var observerSet atomic.Value // of []OpObserver

var observerMu sync.Mutex

// AddObserver registers an observer for all subsequent operations.
func AddObserver(o OpObserver) {
	observerMu.Lock()
	defer observerMu.Unlock()
	prev, _ := observerSet.Load().([]OpObserver)
	next := make([]OpObserver, 0, len(prev)+1)
	next = append(next, prev...)
	next = append(next, o)
	observerSet.Store(next)
}

// ClearObservers removes all registered observers. Intended for tests.
func ClearObservers() {
	observerMu.Lock()
	defer observerMu.Unlock()
	observerSet.Store([]OpObserver{})
}

// observe fans an executed operation out to the installed observers. The
// fast path with no observers is a single atomic load.
func observe(op Op, resultBits uint) {
	obs, _ := observerSet.Load().([]OpObserver)
	for _, o := range obs {
		o.Observe(op, resultBits)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs executed operations using zerolog. It throttles by
// count to avoid log spam from tight arithmetic loops.
type LoggingObserver struct {
	logger zerolog.Logger
	every  uint64
	seen   atomic.Uint64
}

// NewLoggingObserver creates an observer that logs every n-th operation.
//
// Parameters:
//   - logger: The zerolog logger to use.
//   - every: Log one operation out of this many (e.g., 1000). Values below
//     1 default to 1, logging every operation.
//
// Returns:
//   - *LoggingObserver: A new observer that logs to zerolog.
func NewLoggingObserver(logger zerolog.Logger, every uint64) *LoggingObserver {
	if every < 1 {
		every = 1
	}
	return &LoggingObserver{logger: logger, every: every}
}

// Observe implements OpObserver by logging a sampled stream of operations.
func (o *LoggingObserver) Observe(op Op, resultBits uint) {
	n := o.seen.Add(1)
	if n%o.every != 0 {
		return
	}
	o.logger.Debug().
		Str("op", op.String()).
		Uint("result_bits", resultBits).
		Uint64("ops_total", n).
		Msg("arithmetic operation")
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// opCounter counts executed operations by kind. Registered once
	// globally to avoid duplicate registration errors.
	opCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ctbig_operations_total",
			Help: "Total arithmetic operations executed, by operation kind",
		},
		[]string{"op"},
	)

	// opWidth tracks the declared result widths seen per operation kind.
	opWidth = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ctbig_result_bits",
			Help:    "Declared result bit-lengths of executed operations",
			Buckets: prometheus.ExponentialBuckets(64, 2, 10),
		},
		[]string{"op"},
	)
)

// MetricsObserver exports operation counts and widths to Prometheus.
type MetricsObserver struct {
	counter *prometheus.CounterVec
	width   *prometheus.HistogramVec
}

// NewMetricsObserver creates an observer that updates Prometheus metrics.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{counter: opCounter, width: opWidth}
}

// Observe implements OpObserver by updating the Prometheus collectors.
func (o *MetricsObserver) Observe(op Op, resultBits uint) {
	name := op.String()
	o.counter.WithLabelValues(name).Inc()
	o.width.WithLabelValues(name).Observe(float64(resultBits))
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer (Null Object Pattern)
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all operation notifications. Useful for tests that
// need a registered observer without side effects.
type NoOpObserver struct{}

// Observe implements OpObserver by doing nothing.
func (NoOpObserver) Observe(op Op, resultBits uint) {}
