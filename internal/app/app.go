package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/ctbig/bigint"
	"github.com/agbru/ctbig/internal/cli"
	"github.com/agbru/ctbig/internal/config"
	apperrors "github.com/agbru/ctbig/internal/errors"
	"github.com/agbru/ctbig/internal/orchestration"
	"github.com/agbru/ctbig/internal/server"
	"github.com/agbru/ctbig/internal/ui"
	"github.com/agbru/ctbig/numbertheory"
)

// Application represents the prime generator application instance.
// It encapsulates the configuration and wires together the arithmetic
// backend, the generator, and the output layer.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or
// validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "ctbig-primegen"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the generation run described by the configuration.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	logger := a.newLogger()

	backend, err := bigint.NewBackend(a.Config.Backend)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Backend error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	prev := bigint.SetBackend(backend)
	defer bigint.SetBackend(prev)
	if !backend.ConstantTime() {
		logger.Warn().
			Str("backend", backend.Name()).
			Msg("selected backend is not constant-time")
	}

	defer a.installObservers(logger)()

	if a.Config.ServerMode {
		srv := server.NewServer(a.Config, server.WithLogger(logger))
		if err := srv.Start(); err != nil {
			fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	gen := &numbertheory.Generator{
		Rounds:  a.Config.Rounds,
		Workers: a.Config.Workers,
		Logger:  logger,
	}

	results, err := a.generate(ctx, gen)
	if err != nil {
		colors := uiColors{}
		return apperrors.HandleGenerationError(err, 0, a.ErrWriter, colors)
	}

	outCfg := a.outputConfig()
	if err := cli.PrintResults(out, results, outCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Output error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if err := cli.WriteResultsToFile(results, outCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Output error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// generate runs the configured searches and collects their results.
func (a *Application) generate(ctx context.Context, gen *numbertheory.Generator) ([]cli.Result, error) {
	outCfg := a.outputConfig()

	if a.Config.RSA {
		progress := cli.StartProgress(a.describe(), a.Config.Quiet)
		mod, err := gen.RSAModulus(ctx, uint(a.Config.Bits))
		elapsed := progress.Stop()
		if err != nil {
			return nil, err
		}
		r := cli.NewResult("rsa-modulus", mod.N, elapsed, outCfg)
		if outCfg.HexOutput {
			r.Lambda = "0x" + mod.Lambda.LeakyFormat(16)
		} else {
			r.Lambda = mod.Lambda.LeakyString()
		}
		return []cli.Result{r}, nil
	}

	progress := cli.StartProgress(a.describe(), a.Config.Quiet)
	batch := orchestration.ExecuteSearches(ctx, gen, uint(a.Config.Bits), a.Config.Count, a.Config.Safe)
	progress.Stop()

	if a.Config.Count > 1 && !a.Config.Quiet && !a.Config.JSONOutput {
		orchestration.AnalyzeBatchResults(batch, a.ErrWriter)
	}

	results := make([]cli.Result, 0, len(batch))
	var firstErr error
	for _, res := range batch {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		results = append(results, cli.NewResult(res.Kind, res.Value, res.Duration, outCfg))
	}
	if len(results) == 0 {
		return nil, firstErr
	}
	return results, nil
}

// opLogSample is the logging observer's sampling interval: one log line per
// this many arithmetic operations.
const opLogSample = 1000

// installObservers registers the arithmetic observers the configuration asks
// for and returns a function that removes them. Verbose runs get a sampled
// operation log; server mode exports operation counts and result widths
// through the Prometheus registry served at /metrics.
func (a *Application) installObservers(logger zerolog.Logger) func() {
	installed := false
	if a.Config.Verbose {
		bigint.AddObserver(bigint.NewLoggingObserver(logger, opLogSample))
		installed = true
	}
	if a.Config.ServerMode {
		bigint.AddObserver(bigint.NewMetricsObserver())
		installed = true
	}
	if !installed {
		return func() {}
	}
	return bigint.ClearObservers
}

// describe returns the human-readable label of the configured search.
func (a *Application) describe() string {
	switch {
	case a.Config.RSA:
		return fmt.Sprintf("%d-bit RSA modulus", a.Config.Bits)
	case a.Config.Safe:
		return fmt.Sprintf("%d-bit safe prime", a.Config.Bits)
	default:
		return fmt.Sprintf("%d-bit prime", a.Config.Bits)
	}
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		HexOutput:  a.Config.HexOutput,
		JSONOutput: a.Config.JSONOutput,
		Quiet:      a.Config.Quiet,
	}
}

// newLogger builds the run logger: human-readable console output on stderr,
// debug level when verbose, warnings only when quiet.
func (a *Application) newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	if a.Config.Quiet {
		level = zerolog.WarnLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen, NoColor: a.Config.NoColor}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// uiColors adapts the active theme to the apperrors.ColorProvider interface.
type uiColors struct{}

func (uiColors) Yellow() string { return ui.ColorYellow() }
func (uiColors) Reset() string  { return ui.ColorReset() }
