// Package testutil provides shared testing utilities for the ctbig tools.
package testutil

import "regexp"

// ansiRegex matches the Control Sequence Introducer (CSI) sequences emitted
// by the ui themes: ESC [ followed by parameters and a terminating letter.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string, so tests can
// assert on result listings and batch summaries regardless of the active
// color theme.
//
// Parameters:
//   - s: The string potentially containing ANSI escape codes.
//
// Returns:
//   - string: The input string with all ANSI escape codes removed.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
