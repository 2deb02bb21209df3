package radix

import (
	"fmt"
	"strings"
)

// Condition is a bitmask of the exceptional conditions an operation may
// raise. Conditions are accumulated into [Context.Flags] as operations run
// and are never cleared by the engine. A condition that is also present in
// [Context.Traps] aborts the operation: the operation returns the condition
// as its error instead of returning a value.
type Condition uint32

const (
	// Clamped occurs when the exponent of a result has been altered to fit
	// the exponent range, padding or trimming the mantissa as needed.
	Clamped Condition = 1 << iota
	// ConversionSyntax occurs when a string being converted to a value does
	// not have a valid syntax.
	ConversionSyntax
	// DivisionByZero occurs when a finite, non-zero value is divided by zero.
	DivisionByZero
	// Inexact occurs when a result differs from the mathematically exact
	// value.
	Inexact
	// InvalidOperation occurs when an operation is undefined for its
	// operands: a signaling NaN operand, adding infinities of opposite
	// signs, multiplying zero by an infinity, dividing zero by zero, taking
	// the square root or logarithm of a negative value, and so on.
	InvalidOperation
	// Overflow occurs when the adjusted exponent of a result, after
	// rounding, would be greater than [Context.EMax]. Inexact and Rounded
	// are raised as well.
	Overflow
	// Rounded occurs when a result has been rounded, whether or not the
	// rounding changed its value.
	Rounded
	// Subnormal occurs when the adjusted exponent of a result is below
	// [Context.EMin] before any rounding.
	Subnormal
	// Underflow occurs when a result is both subnormal and inexact.
	// Inexact and Rounded are raised as well.
	Underflow
)

// Error implements the error interface, so a trapped condition can be
// returned from an operation directly.
func (c Condition) Error() string { return c.String() }

// String returns a comma-separated list of the conditions set in c.
func (c Condition) String() string {
	if c == 0 {
		return ""
	}
	var b strings.Builder
	for i := Condition(1); c != 0; i <<= 1 {
		if c&i == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		switch c ^= i; i {
		case Clamped:
			b.WriteString("clamped")
		case ConversionSyntax:
			b.WriteString("conversion syntax")
		case DivisionByZero:
			b.WriteString("division by zero")
		case Inexact:
			b.WriteString("inexact")
		case InvalidOperation:
			b.WriteString("invalid operation")
		case Overflow:
			b.WriteString("overflow")
		case Rounded:
			b.WriteString("rounded")
		case Subnormal:
			b.WriteString("subnormal")
		case Underflow:
			b.WriteString("underflow")
		default:
			fmt.Fprintf(&b, "unknown(%d)", i)
		}
	}
	return b.String()
}

var _ error = Condition(0)
