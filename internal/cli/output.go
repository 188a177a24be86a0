// Package cli provides output utilities for exporting generation results.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/ctbig/bigint"
	"github.com/agbru/ctbig/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// HexOutput displays results in hexadecimal format.
	HexOutput bool
	// JSONOutput emits results as a JSON document.
	JSONOutput bool
	// Quiet mode suppresses decorative output.
	Quiet bool
}

// Result is one generated value together with its generation metadata.
type Result struct {
	// Kind describes the value: "prime", "safe-prime", or "rsa-modulus".
	Kind string `json:"kind"`
	// Bits is the declared bit width.
	Bits uint `json:"bits"`
	// Value is the generated integer, formatted per the output config.
	Value string `json:"value"`
	// Lambda is lcm(p-1, q-1) for RSA moduli, empty otherwise.
	Lambda string `json:"lambda,omitempty"`
	// Duration is how long the search took.
	Duration string `json:"duration"`
}

// NewResult builds a Result from a generated value.
func NewResult(kind string, v *bigint.Uint, d time.Duration, cfg OutputConfig) Result {
	return Result{
		Kind:     kind,
		Bits:     v.BitLen(),
		Value:    formatValue(v, cfg.HexOutput),
		Duration: FormatExecutionDuration(d),
	}
}

func formatValue(v *bigint.Uint, hex bool) string {
	if hex {
		return "0x" + v.LeakyFormat(16)
	}
	return v.LeakyString()
}

// truncateDigits shortens a digit string for terminal display, keeping
// DisplayEdges characters at each end. Full values go to files and JSON
// untouched; truncation applies to the human-oriented terminal view only.
func truncateDigits(s string) string {
	if len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)",
		s[:DisplayEdges], s[len(s)-DisplayEdges:], len(s))
}

// PrintResults writes the generated values to the terminal writer, as JSON
// when configured and as a colored human-readable listing otherwise.
//
// Parameters:
//   - w: Destination writer (typically os.Stdout).
//   - results: The generated values in order.
//   - cfg: Output configuration.
//
// Returns:
//   - error: An error if JSON encoding fails.
func PrintResults(w io.Writer, results []Result, cfg OutputConfig) error {
	if cfg.JSONOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for i, r := range results {
		value := r.Value
		if !cfg.Quiet {
			value = truncateDigits(value)
		}
		if cfg.Quiet {
			fmt.Fprintln(w, value)
			continue
		}
		fmt.Fprintf(w, "%s[%d]%s %s (%d bits, found in %s)\n  %s\n",
			ui.ColorGreen(), i+1, ui.ColorReset(), r.Kind, r.Bits, r.Duration, value)
		if r.Lambda != "" {
			fmt.Fprintf(w, "  lambda: %s\n", truncateDigits(r.Lambda))
		}
	}
	return nil
}

// WriteResultsToFile writes the full, untruncated results to a file.
//
// Parameters:
//   - results: The generated values in order.
//   - cfg: Output configuration; a empty OutputFile is a no-op.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(results []Result, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if cfg.JSONOutput {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Fprintf(file, "# Prime Generation Results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	for _, r := range results {
		fmt.Fprintf(file, "# %s, %d bits, found in %s\n", r.Kind, r.Bits, r.Duration)
		fmt.Fprintln(file, r.Value)
		if r.Lambda != "" {
			fmt.Fprintf(file, "# lambda\n%s\n", r.Lambda)
		}
	}
	return nil
}
