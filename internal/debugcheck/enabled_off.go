//go:build !ctcheck

package debugcheck

// Enabled reports that this is an unchecked build: preconditions are the
// caller's responsibility and violations are undefined behavior. This is the
// default, so release binaries carry no validation branches.
const Enabled = false
