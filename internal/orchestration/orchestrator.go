// Package orchestration coordinates batches of prime searches: it fans the
// requested count out across goroutines, collects per-search outcomes, and
// renders the batch summary.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/ctbig/bigint"
	"github.com/agbru/ctbig/internal/cli"
	apperrors "github.com/agbru/ctbig/internal/errors"
	"github.com/agbru/ctbig/internal/ui"
	"github.com/agbru/ctbig/numbertheory"
)

// SearchResult encapsulates the outcome of a single prime search.
// It serves as a standardized container for results within a batch,
// facilitating comparison and reporting.
type SearchResult struct {
	// Index is the position of the search within the batch.
	Index int
	// Kind describes the searched value ("prime" or "safe-prime").
	Kind string
	// Value is the generated prime. It is nil if an error occurred.
	Value *bigint.Uint
	// Duration is the time taken to complete the search.
	Duration time.Duration
	// Err contains any error that occurred during the search.
	Err error
}

// ExecuteSearches runs count prime searches of the given width, returning
// one result per search in batch order.
//
// Searches run concurrently when the generator draws from crypto/rand; a
// caller-supplied entropy source serializes the batch, since the generator
// cannot assume it tolerates concurrent reads. The context cancels the
// whole batch; individual failures are recorded per result rather than
// aborting the others.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - gen: The generator to search with.
//   - bits: The candidate width.
//   - count: How many primes to generate.
//   - safe: Whether to search for safe primes.
//
// Returns:
//   - []SearchResult: A slice containing the results of each search.
func ExecuteSearches(ctx context.Context, gen *numbertheory.Generator, bits uint, count int, safe bool) []SearchResult {
	kind := "prime"
	search := gen.Prime
	if safe {
		kind = "safe-prime"
		search = gen.SafePrime
	}

	results := make([]SearchResult, count)
	g, ctx := errgroup.WithContext(ctx)
	if gen.Rand != nil {
		g.SetLimit(1)
	}

	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			startTime := time.Now()
			p, err := search(ctx, bits)
			results[i] = SearchResult{
				Index: i, Kind: kind, Value: p, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	return results
}

// AnalyzeBatchResults processes the results of a search batch and writes a
// summary report.
//
// It sorts the results by search time, displays a comparative table, and
// determines the global exit code from the individual outcomes.
//
// Parameters:
//   - results: The slice of search results to analyze.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeBatchResults(results []SearchResult, out io.Writer) int {
	ordered := make([]SearchResult, len(results))
	copy(ordered, results)
	sort.Slice(ordered, func(i, j int) bool {
		if (ordered[i].Err == nil) != (ordered[j].Err == nil) {
			return ordered[i].Err == nil
		}
		return ordered[i].Duration < ordered[j].Duration
	})

	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Batch Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sSearch%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for _, res := range ordered {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s #%d%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Kind, res.Index+1, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No search completed.\n")
		return apperrors.HandleGenerationError(firstError, 0, out, nil)
	}
	if successCount < len(results) {
		fmt.Fprintf(out, "\nGlobal Status: Partial. %d of %d searches completed.\n", successCount, len(results))
		return apperrors.ExitErrorGeneric
	}

	fmt.Fprintf(out, "\nGlobal Status: Success.\n")
	return apperrors.ExitSuccess
}
