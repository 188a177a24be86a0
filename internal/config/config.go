// Package config provides the configuration management for the ctbig
// command-line tools. It defines the data structure for the configuration,
// handles the parsing of command-line arguments, and performs validation on
// the configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/ctbig/bigint"
	apperrors "github.com/agbru/ctbig/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by the
	// ctbig tools. Environment variables provide an alternative to CLI
	// flags for configuration, following the 12-Factor App methodology.
	EnvPrefix = "CTBIG_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultBits is the default bit width of generated primes.
	DefaultBits uint64 = 2048
	// DefaultCount is the default number of primes to generate.
	DefaultCount = 1
	// DefaultTimeout is the default generation timeout.
	DefaultTimeout = 10 * time.Minute
	// DefaultBackend is the default arithmetic backend selection.
	DefaultBackend = "limb"
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultRounds is the default Miller-Rabin round count (0 lets the
	// generator pick).
	DefaultRounds = 0
	// DefaultWorkers is the default safe-prime search parallelism (0 means
	// one worker per CPU).
	DefaultWorkers = 0
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control a
// generation run, from the candidate width to output formatting.
type AppConfig struct {
	// Bits is the bit width of the primes to generate.
	Bits uint64
	// Count is how many primes to generate.
	Count int
	// Safe, if true, generates safe primes p = 2q+1 with q prime.
	Safe bool
	// RSA, if true, generates an RSA modulus (product of two safe primes)
	// of Bits total width instead of individual primes.
	RSA bool
	// Backend selects the arithmetic backend by registry name.
	Backend string
	// Rounds is the Miller-Rabin round count; 0 uses the generator default.
	Rounds int
	// Workers bounds the parallel safe-prime search; 0 means one per CPU.
	Workers int
	// Timeout sets the maximum duration for the whole run.
	Timeout time.Duration
	// JSONOutput, if true, outputs results in JSON format.
	JSONOutput bool
	// HexOutput, if true, displays results in hexadecimal format.
	HexOutput bool
	// Quiet mode - minimal output for scripting purposes.
	// Suppresses the spinner and informational messages.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// OutputFile, if specified, saves the results to this file path.
	OutputFile string
	// Verbose, if true, enables debug-level logging.
	Verbose bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen backend is registered.
//
// Returns:
//   - error: A descriptive error if the configuration is invalid, nil
//     otherwise.
func (c AppConfig) Validate() error {
	if c.Bits < 16 {
		return apperrors.NewValidationError("bits",
			fmt.Sprintf("bit width must be at least 16, got %d", c.Bits), c.Bits)
	}
	if c.RSA && c.Bits%2 != 0 {
		return apperrors.NewValidationError("bits",
			fmt.Sprintf("RSA modulus width must be even, got %d", c.Bits), c.Bits)
	}
	if c.Count < 1 {
		return apperrors.NewValidationError("count",
			fmt.Sprintf("count must be at least 1, got %d", c.Count), c.Count)
	}
	if c.Timeout <= 0 {
		return apperrors.NewValidationError("timeout",
			"timeout value must be strictly positive", c.Timeout)
	}
	if c.Rounds < 0 {
		return apperrors.NewValidationError("rounds",
			fmt.Sprintf("Miller-Rabin rounds cannot be negative: %d", c.Rounds), c.Rounds)
	}
	if c.Workers < 0 {
		return apperrors.NewValidationError("workers",
			fmt.Sprintf("worker count cannot be negative: %d", c.Workers), c.Workers)
	}
	available := bigint.BackendNames()
	for _, name := range available {
		if name == c.Backend {
			return nil
		}
	}
	return apperrors.NewValidationError("backend",
		fmt.Sprintf("unrecognized backend: '%s'. Valid backends are: [%s]",
			c.Backend, strings.Join(available, ", ")), c.Backend)
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it performs validation on
// the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	backendHelp := fmt.Sprintf("Arithmetic backend: one of [%s].", strings.Join(bigint.BackendNames(), ", "))

	config := AppConfig{}
	fs.Uint64Var(&config.Bits, "bits", DefaultBits, "Bit width of the primes to generate.")
	fs.IntVar(&config.Count, "count", DefaultCount, "Number of primes to generate.")
	fs.IntVar(&config.Count, "n", DefaultCount, "Number of primes (shorthand).")
	fs.BoolVar(&config.Safe, "safe", false, "Generate safe primes (p = 2q+1 with q prime).")
	fs.BoolVar(&config.RSA, "rsa", false, "Generate an RSA modulus from two safe primes.")
	fs.StringVar(&config.Backend, "backend", DefaultBackend, backendHelp)
	fs.IntVar(&config.Rounds, "rounds", DefaultRounds, "Miller-Rabin rounds (0 for the default).")
	fs.IntVar(&config.Workers, "workers", DefaultWorkers, "Parallel safe-prime search workers (0 for one per CPU).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the run.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.HexOutput, "hex", false, "Display results in hexadecimal format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the results.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug-level logging.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Backend = strings.ToLower(config.Backend)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
