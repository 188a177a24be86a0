// Package config provides the configuration management for the ctbig tools.
// This file contains environment variable utilities for configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as uint64, or the default value if not set
// or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as int, or the default value if not set
// or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as bool, or the default value if not set.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the given key
// (prefixed with EnvPrefix) parsed as time.Duration, or the default value if not
// set or invalid. Accepts formats like "5m", "30s", "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - CTBIG_BITS: Bit width of the primes to generate (uint64)
//   - CTBIG_COUNT: Number of primes to generate (int)
//   - CTBIG_BACKEND: Arithmetic backend name (string: limb, gmp)
//   - CTBIG_ROUNDS: Miller-Rabin round count (int)
//   - CTBIG_WORKERS: Parallel safe-prime search workers (int)
//   - CTBIG_TIMEOUT: Run timeout (duration: "10m", "30s")
//   - CTBIG_SAFE: Generate safe primes (bool: true/false, 1/0, yes/no)
//   - CTBIG_RSA: Generate an RSA modulus (bool)
//   - CTBIG_JSON: Enable JSON output (bool)
//   - CTBIG_HEX: Enable hexadecimal output (bool)
//   - CTBIG_QUIET: Enable quiet mode (bool)
//   - CTBIG_NO_COLOR: Disable colored output (bool)
//   - CTBIG_OUTPUT: Output file path (string)
//   - CTBIG_VERBOSE: Enable debug-level logging (bool)
//   - CTBIG_SERVER: Enable HTTP server mode (bool)
//   - CTBIG_PORT: Port for server mode (string)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "bits") {
		config.Bits = getEnvUint64("BITS", config.Bits)
	}
	if !isFlagSet(fs, "count") && !isFlagSet(fs, "n") {
		config.Count = getEnvInt("COUNT", config.Count)
	}
	if !isFlagSet(fs, "rounds") {
		config.Rounds = getEnvInt("ROUNDS", config.Rounds)
	}
	if !isFlagSet(fs, "workers") {
		config.Workers = getEnvInt("WORKERS", config.Workers)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "backend") {
		config.Backend = getEnvString("BACKEND", config.Backend)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "output") && !isFlagSet(fs, "o") {
		config.OutputFile = getEnvString("OUTPUT", config.OutputFile)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "safe") {
		config.Safe = getEnvBool("SAFE", config.Safe)
	}
	if !isFlagSet(fs, "rsa") {
		config.RSA = getEnvBool("RSA", config.RSA)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "hex") {
		config.HexOutput = getEnvBool("HEX", config.HexOutput)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	if !isFlagSet(fs, "v") {
		config.Verbose = getEnvBool("VERBOSE", config.Verbose)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
}
