// Package debugcheck implements the single policy switch between the
// "checked" and "unchecked" builds of the arithmetic engine.
//
// In a checked build (compiled with the "ctcheck" build tag), every primitive
// validates its preconditions up front and fails fast with a descriptive
// panic carrying a structured error value. In an unchecked build (the
// default), the constant Enabled is false and the compiler removes the
// validation code entirely, so shipped binaries contain no conditional
// branches on checked values in the hot arithmetic paths.
//
// Callers are expected to guard every check with the constant:
//
//	if debugcheck.Enabled {
//		debugcheck.Require(cond, err)
//	}
package debugcheck

// Require panics with err when cond is false. It must only be called behind
// an `if debugcheck.Enabled` guard so that unchecked builds carry no branch.
//
// The panic value is the error itself, so tests can recover it and inspect
// it with errors.As.
func Require(cond bool, err error) {
	if !cond {
		panic(err)
	}
}
