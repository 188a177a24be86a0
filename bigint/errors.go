// This file defines the structured error types surfaced by the engine,
// allowing for a clear distinction between error classes (capacity,
// precondition, arithmetic) while supporting errors.Is and errors.As.
//
// The constant-time tier deliberately does not branch on error conditions
// inside hot arithmetic paths: preconditions are validated up front in
// checked builds (see internal/debugcheck) and are the caller's
// responsibility otherwise. Errors that are part of the domain contract in
// every build (construction capacity, invertibility) are returned as values.
package bigint

import "fmt"

// SizeExceededError reports that an input requires more bits than the
// declared capacity of the value under construction.
type SizeExceededError struct {
	// Declared is the declared bit-length of the destination.
	Declared uint
	// Detail describes the offending input.
	Detail string
}

// Error returns the error message for a SizeExceededError.
func (e SizeExceededError) Error() string {
	return fmt.Sprintf("bigint: size exceeded: %s does not fit in %d declared bits", e.Detail, e.Declared)
}

// NewSizeExceededError creates a SizeExceededError with a formatted detail.
func NewSizeExceededError(declared uint, format string, a ...any) error {
	return SizeExceededError{Declared: declared, Detail: fmt.Sprintf(format, a...)}
}

// SizeMismatchError reports that operand bit-lengths violate an operation's
// precondition, such as a shift amount exceeding the declared width or a
// select over unequal widths. It is raised only by checked builds; in
// release builds the precondition is the caller's responsibility.
type SizeMismatchError struct {
	// Op is the operation whose precondition was violated.
	Op string
	// Detail explains the specific mismatch.
	Detail string
}

// Error returns the error message for a SizeMismatchError.
func (e SizeMismatchError) Error() string {
	return fmt.Sprintf("bigint: size mismatch in %s: %s", e.Op, e.Detail)
}

// NewSizeMismatchError creates a SizeMismatchError with a formatted detail.
func NewSizeMismatchError(op, format string, a ...any) error {
	return SizeMismatchError{Op: op, Detail: fmt.Sprintf(format, a...)}
}

// NotInvertibleError reports that a modular inverse does not exist because
// the operand and the modulus share a common factor. Whether this error
// occurs necessarily depends on the values involved, but its detection time
// is bounded by the fixed iteration count of the inversion, never by an
// early exit.
type NotInvertibleError struct{}

// Error returns the error message for a NotInvertibleError.
func (NotInvertibleError) Error() string {
	return "bigint: not invertible: operand and modulus are not coprime"
}

// DivisionByZeroError reports a zero divisor or zero modulus. It is raised
// only by checked builds; release builds leave the result undefined.
type DivisionByZeroError struct {
	// Op is the operation that received the zero divisor.
	Op string
}

// Error returns the error message for a DivisionByZeroError.
func (e DivisionByZeroError) Error() string {
	return fmt.Sprintf("bigint: division by zero in %s", e.Op)
}

// NewDivisionByZeroError creates a DivisionByZeroError for the given
// operation name.
func NewDivisionByZeroError(op string) error {
	return DivisionByZeroError{Op: op}
}

// ParseError reports that a string could not be parsed as an integer in the
// requested base.
type ParseError struct {
	// Input is the rejected string.
	Input string
	// Base is the requested base.
	Base int
}

// Error returns the error message for a ParseError.
func (e ParseError) Error() string {
	return fmt.Sprintf("bigint: cannot parse %q in base %d", e.Input, e.Base)
}
