// This file defines the precision policy: the rules deriving a result's
// declared bit-length from its operands' declared bit-lengths. The policy is
// an explicit per-operation table, applied identically regardless of the
// actual values involved, so that result sizing can never become a side
// channel.
package bigint

// Op identifies an engine operation, both for the precision policy and for
// the operation observers.
type Op int

// The operation catalogue.
const (
	OpAdd Op = iota
	OpAddUint64
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShiftLeft
	OpShiftRight
	OpAnd
	OpOr
	OpXor
	OpNot
	OpSelect
	OpEqual
	OpGreaterEq
	OpMod
	OpExpMod
	OpInvMod
)

var opNames = [...]string{
	OpAdd:        "add",
	OpAddUint64:  "add_uint64",
	OpSub:        "sub",
	OpMul:        "mul",
	OpDiv:        "div",
	OpRem:        "rem",
	OpShiftLeft:  "shift_left",
	OpShiftRight: "shift_right",
	OpAnd:        "and",
	OpOr:         "or",
	OpXor:        "xor",
	OpNot:        "not",
	OpSelect:     "select",
	OpEqual:      "equal",
	OpGreaterEq:  "greater_eq",
	OpMod:        "mod",
	OpExpMod:     "exp_mod",
	OpInvMod:     "inv_mod",
}

// String returns the stable lower-case name of the operation.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "unknown"
	}
	return opNames[op]
}

// ResultWidth returns the declared bit-length of an operation's result,
// given the declared bit-lengths n and m of its operands and, for shifts,
// the fixed shift amount s. It is a pure function of declared widths.
//
// The table, in full:
//
//	add         max(n, m) + 1
//	add_uint64  max(n, 64) + 1
//	sub         max(n, m)          wraps; the borrow is reported separately
//	mul         n + m
//	div         n                  quotient of an n-bit dividend
//	rem, mod    m                  bounded by the divisor/modulus width
//	shift_left  n + s
//	shift_right n - s              requires s <= n
//	and         min(n, m)
//	or, xor     max(n, m)
//	not, select n                  select requires n == m
//	exp_mod     m                  modulus width (operand m is the modulus)
//	inv_mod     m                  modulus width
func ResultWidth(op Op, n, m, s uint) uint {
	switch op {
	case OpAdd:
		return max(n, m) + 1
	case OpAddUint64:
		return max(n, 64) + 1
	case OpSub:
		return max(n, m)
	case OpMul:
		return n + m
	case OpDiv:
		return n
	case OpRem, OpMod, OpExpMod, OpInvMod:
		return m
	case OpShiftLeft:
		return n + s
	case OpShiftRight:
		return n - s
	case OpAnd:
		return min(n, m)
	case OpOr, OpXor:
		return max(n, m)
	case OpNot, OpSelect:
		return n
	}
	return 0
}
