/*
Package radix implements arbitrary-precision floating-point arithmetic
over an arbitrary radix.

# Representation

The engine does not impose a value type. Any representation of the form

	(-1)^sign * coefficient * radix^exponent

together with the special values (infinities, quiet and signaling NaNs)
can be plugged in by implementing the [Helper] interface, which describes
how to take a value apart and how to build one. [Math] wraps a Helper and
exposes the arithmetic. The package ships [Dec], a ready-made decimal
representation, with its shared engine available from [DecMath]:

	m := radix.DecMath()
	sum, err := m.Add(radix.MustParseDec("1.23"), radix.MustParseDec("4.56"), nil)

# Contexts

Every operation takes a *[Context] describing the working precision, the
rounding mode, the exponent range, and the condition handling. A nil
context means unlimited precision: results are exact, and operations whose
result has no finite representation, such as 1/3 in radix 10, return
[ErrNonTerminating].

Exceptional conditions (inexact results, overflow, division by zero and so
on) are reported as [Condition] bits. Conditions are recorded into
[Context.Flags] when an accumulator is supplied, and any condition listed
in [Context.Traps] aborts the operation with the condition as the error.

# Engines

Internally each call is routed to one of two engines. The full engine
implements the complete semantics. The simplified engine, selected with
[Context.Simplified], answers operations whose operands and exact results
fit machine words without raising conditions, and hands everything else to
the full engine. The routing is an optimization only: both engines return
identical results for identical inputs.

# Operations

The operation set covers arithmetic (addition through fused multiply-add
and several division flavors), rescaling (quantize and the
round-to-exponent family), comparison (numeric and total ordering,
minimums and maximums by value and by magnitude), neighbor navigation, and
the elementary functions (square root, exponential, logarithms, power and
pi).

Unless stated otherwise operations follow the general rules for
arbitrary-precision arithmetic: signaling NaN operands raise
InvalidOperation and produce a quiet NaN, quiet NaNs propagate, and
results are rounded to the context precision with the context mode.
*/
package radix
