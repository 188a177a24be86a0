// The cli package provides functions for building the command-line
// interface of the prime generation tool. It handles the asynchronous
// display of search progress and formats the results for a clear and
// readable presentation.
package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ctbig/internal/ui"
)

const (
	// TruncationLimit is the digit threshold from which a result is
	// truncated in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the
	// beginning and end of a truncated number.
	DisplayEdges = 25
	// SpinnerRefreshRate defines the refresh frequency of the search
	// spinner and its elapsed-time suffix.
	SpinnerRefreshRate = 200 * time.Millisecond
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise. This approach provides a more human-readable output for short
// durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}

// Spinner is an interface that abstracts the behavior of a terminal
// spinner. This allows the progress display to be decoupled from a specific
// spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner constructs the spinner used by progress displays. Declared as
// a variable so tests can substitute a recording fake.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s: s}
}

// noopSpinner discards all spinner operations, used in quiet mode.
type noopSpinner struct{}

func (noopSpinner) Start()                     {}
func (noopSpinner) Stop()                      {}
func (noopSpinner) UpdateSuffix(suffix string) {}

// ProgressDisplay animates a spinner with an elapsed-time suffix while a
// prime search runs. It is safe to Stop from a different goroutine than
// the one updating it.
type ProgressDisplay struct {
	label string
	sp    Spinner
	start time.Time
	done  chan struct{}
}

// StartProgress begins a spinner for a search with the given label (e.g.,
// "2048-bit safe prime"). In quiet mode the display is inert.
//
// Parameters:
//   - label: Description of the value being searched for.
//   - quiet: Suppresses all spinner output when true.
//
// Returns:
//   - *ProgressDisplay: A running display; the caller must call Stop.
func StartProgress(label string, quiet bool) *ProgressDisplay {
	var sp Spinner
	if quiet {
		sp = noopSpinner{}
	} else {
		sp = newSpinner()
	}
	p := &ProgressDisplay{
		label: label,
		sp:    sp,
		start: time.Now(),
		done:  make(chan struct{}),
	}
	p.sp.UpdateSuffix(fmt.Sprintf(" Searching for %s...", label))
	p.sp.Start()
	go p.tick()
	return p
}

// tick refreshes the elapsed-time suffix until Stop is called.
func (p *ProgressDisplay) tick() {
	ticker := time.NewTicker(SpinnerRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			elapsed := FormatExecutionDuration(time.Since(p.start))
			p.sp.UpdateSuffix(fmt.Sprintf(" Searching for %s... %s%s%s",
				p.label, ui.ColorCyan(), elapsed, ui.ColorReset()))
		}
	}
}

// Stop halts the display and returns the elapsed search time.
func (p *ProgressDisplay) Stop() time.Duration {
	close(p.done)
	p.sp.Stop()
	return time.Since(p.start)
}
