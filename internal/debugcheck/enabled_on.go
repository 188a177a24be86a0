//go:build ctcheck

package debugcheck

// Enabled reports that this is a checked build: preconditions are validated
// and violations fail fast. Enabled builds are meant for development and CI,
// not for shipped binaries.
const Enabled = true
