package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/ctbig/bigint"
	"github.com/agbru/ctbig/internal/testutil"
)

func TestNewResult(t *testing.T) {
	t.Parallel()

	v, err := bigint.FromUint64(65537, 32)
	if err != nil {
		t.Fatal(err)
	}

	r := NewResult("prime", v, 3*time.Millisecond, OutputConfig{})
	if r.Kind != "prime" || r.Bits != 32 {
		t.Errorf("Result = %+v, want kind=prime bits=32", r)
	}
	if r.Value != "65537" {
		t.Errorf("Value = %q, want decimal 65537", r.Value)
	}
	if r.Duration != "3ms" {
		t.Errorf("Duration = %q, want 3ms", r.Duration)
	}

	hexed := NewResult("prime", v, time.Millisecond, OutputConfig{HexOutput: true})
	if hexed.Value != "0x10001" {
		t.Errorf("hex Value = %q, want 0x10001", hexed.Value)
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()

	short := strings.Repeat("7", TruncationLimit)
	if got := truncateDigits(short); got != short {
		t.Errorf("values at the limit must pass through unchanged")
	}

	long := strings.Repeat("9", 300)
	got := truncateDigits(long)
	if !strings.HasPrefix(got, strings.Repeat("9", DisplayEdges)+"...") {
		t.Errorf("truncated value %q lacks the leading edge", got)
	}
	if !strings.Contains(got, "(300 digits)") {
		t.Errorf("truncated value %q should report the digit count", got)
	}
}

func TestPrintResultsJSON(t *testing.T) {
	t.Parallel()

	results := []Result{
		{Kind: "prime", Bits: 64, Value: "18446744073709551557", Duration: "12ms"},
		{Kind: "safe-prime", Bits: 64, Value: "18446744073709550147", Duration: "89ms"},
	}

	var buf bytes.Buffer
	if err := PrintResults(&buf, results, OutputConfig{JSONOutput: true}); err != nil {
		t.Fatalf("PrintResults: %v", err)
	}

	var decoded []Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Kind != "safe-prime" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestPrintResultsHuman(t *testing.T) {
	t.Parallel()

	results := []Result{
		{Kind: "prime", Bits: 16, Value: "65521", Duration: "1ms"},
		{Kind: "rsa-modulus", Bits: 32, Value: "3215031751", Lambda: "1607515860", Duration: "4ms"},
	}

	var buf bytes.Buffer
	if err := PrintResults(&buf, results, OutputConfig{}); err != nil {
		t.Fatal(err)
	}

	out := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(out, "[1] prime (16 bits, found in 1ms)") {
		t.Errorf("missing first result header in:\n%s", out)
	}
	if !strings.Contains(out, "65521") || !strings.Contains(out, "3215031751") {
		t.Errorf("missing values in:\n%s", out)
	}
	if !strings.Contains(out, "lambda: 1607515860") {
		t.Errorf("missing lambda line in:\n%s", out)
	}
}

func TestPrintResultsQuiet(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("3", 250)
	results := []Result{
		{Kind: "prime", Bits: 830, Value: long, Duration: "5ms"},
	}

	var buf bytes.Buffer
	if err := PrintResults(&buf, results, OutputConfig{Quiet: true}); err != nil {
		t.Fatal(err)
	}

	// Quiet output is one full value per line, never truncated.
	if got := strings.TrimSpace(buf.String()); got != long {
		t.Errorf("quiet output = %q, want the untruncated value", got)
	}
}

func TestWriteResultsToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	results := []Result{
		{Kind: "prime", Bits: 16, Value: "65521", Duration: "1ms"},
	}

	path := filepath.Join(dir, "out", "primes.txt")
	cfg := OutputConfig{OutputFile: path}
	if err := WriteResultsToFile(results, cfg); err != nil {
		t.Fatalf("WriteResultsToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "65521") {
		t.Errorf("file is missing the value:\n%s", data)
	}
	if !strings.Contains(string(data), "# prime, 16 bits") {
		t.Errorf("file is missing the metadata comment:\n%s", data)
	}
}

func TestWriteResultsToFileJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "primes.json")
	results := []Result{{Kind: "prime", Bits: 16, Value: "65521", Duration: "1ms"}}
	cfg := OutputConfig{OutputFile: path, JSONOutput: true}
	if err := WriteResultsToFile(results, cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Value != "65521" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteResultsToFileNoPathIsNoOp(t *testing.T) {
	t.Parallel()

	if err := WriteResultsToFile(nil, OutputConfig{}); err != nil {
		t.Errorf("empty OutputFile should be a no-op, got %v", err)
	}
}
