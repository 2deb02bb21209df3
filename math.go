package radix

import (
	"errors"
	"math/big"
)

// Sentinel errors returned by operations. Exceptional conditions raised
// during an operation are reported as [Condition] errors instead when they
// are trapped by the context.
var (
	// ErrNilContext is returned by operations that cannot run without an
	// explicit context, such as [Math.Pi].
	ErrNilContext = errors.New("operation requires a context")

	// ErrNonTerminating is returned when an exact result is requested,
	// by a context with unlimited precision, but the result has no finite
	// representation in the working radix.
	ErrNonTerminating = errors.New("result has a non-terminating expansion")

	// ErrExponentRange is returned when an operand or result exponent is
	// too large to process.
	ErrExponentRange = errors.New("exponent out of range")

	// ErrInvalidContext is returned by the neighbor operations, which
	// require a context with a finite precision and a bounded exponent
	// range.
	ErrInvalidContext = errors.New("operation requires a context with precision and exponent range")
)

// engine is the operation set shared by the full and simplified
// implementations.
type engine[T any] interface {
	Add(x, y T, ctx *Context) (T, error)
	AddEx(x, y T, ctx *Context, roundToOperandPrecision bool) (T, error)
	Sub(x, y T, ctx *Context) (T, error)
	Neg(x T, ctx *Context) (T, error)
	Abs(x T, ctx *Context) (T, error)
	Plus(x T, ctx *Context) (T, error)
	Mul(x, y T, ctx *Context) (T, error)
	FMA(x, y, z T, ctx *Context) (T, error)
	Quo(x, y T, ctx *Context) (T, error)
	QuoToExponent(x, y T, desired *big.Int, ctx *Context) (T, error)
	QuoIntZeroScale(x, y T, ctx *Context) (T, error)
	QuoIntNaturalScale(x, y T, ctx *Context) (T, error)
	Rem(x, y T, ctx *Context) (T, error)
	RemNear(x, y T, ctx *Context) (T, error)
	Quantize(x, y T, ctx *Context) (T, error)
	RoundToExponentExact(x T, exp *big.Int, ctx *Context) (T, error)
	RoundToExponentSimple(x T, exp *big.Int, ctx *Context) (T, error)
	RoundToExponentNoRoundedFlag(x T, exp *big.Int, ctx *Context) (T, error)
	RoundToPrecision(x T, ctx *Context) (T, error)
	RoundAfterConversion(x T, ctx *Context) (T, error)
	RoundToBinaryPrecision(x T, ctx *Context) (T, error)
	Reduce(x T, ctx *Context) (T, error)
	CmpWithContext(x, y T, treatQuietAsSignaling bool, ctx *Context) (T, error)
	Min(x, y T, ctx *Context) (T, error)
	Max(x, y T, ctx *Context) (T, error)
	MinMagnitude(x, y T, ctx *Context) (T, error)
	MaxMagnitude(x, y T, ctx *Context) (T, error)
	NextPlus(x T, ctx *Context) (T, error)
	NextMinus(x T, ctx *Context) (T, error)
	NextToward(x, y T, ctx *Context) (T, error)
	Sqrt(x T, ctx *Context) (T, error)
	Exp(x T, ctx *Context) (T, error)
	Ln(x T, ctx *Context) (T, error)
	Log10(x T, ctx *Context) (T, error)
	Power(x, y T, ctx *Context) (T, error)
	Pi(ctx *Context) (T, error)
}

// Math performs arbitrary-precision arithmetic on values of an arbitrary
// radix representation T. Each call is routed to one of two engines: the
// full engine implements the complete arithmetic semantics, and the
// simplified engine, selected by [Context.Simplified], answers bounded
// exact cases from machine arithmetic and delegates the rest, so both
// engines always produce identical results.
//
// A Math value is immutable after construction and safe for concurrent use.
type Math[T any] struct {
	h    Helper[T]
	full *fullMath[T]
	simp *simpleMath[T]
}

// New builds a Math engine over the representation capability h.
func New[T any](h Helper[T]) *Math[T] {
	full := newFullMath(h)
	return &Math[T]{h: h, full: full, simp: newSimpleMath(full)}
}

// Helper returns the representation capability the engine was built with.
func (m *Math[T]) Helper() Helper[T] { return m.h }

func (m *Math[T]) engine(ctx *Context) engine[T] {
	if ctx.simplified() {
		return m.simp
	}
	return m.full
}

// Add computes x + y.
func (m *Math[T]) Add(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Add(x, y, ctx)
}

// AddEx computes x + y. When roundToOperandPrecision is true and the
// context has unlimited precision, the result is rounded to the wider of
// the two operand precisions.
func (m *Math[T]) AddEx(x, y T, ctx *Context, roundToOperandPrecision bool) (T, error) {
	return m.engine(ctx).AddEx(x, y, ctx, roundToOperandPrecision)
}

// Sub computes x - y.
func (m *Math[T]) Sub(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Sub(x, y, ctx)
}

// Neg computes -x, following the sign conventions of a subtraction from
// zero: a zero result is positive unless rounding toward negative infinity.
func (m *Math[T]) Neg(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Neg(x, ctx)
}

// Abs computes |x|.
func (m *Math[T]) Abs(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Abs(x, ctx)
}

// Plus applies the context to x as a unary plus would: the value is kept,
// rounded to the context precision, and a negative zero turns positive
// unless rounding toward negative infinity.
func (m *Math[T]) Plus(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Plus(x, ctx)
}

// CopySign returns x with the sign of y. The operation is quiet: no
// context, no rounding, no conditions, and NaNs pass through.
func (m *Math[T]) CopySign(x, y T) T {
	return m.full.CopySign(x, y)
}

// Mul computes x * y.
func (m *Math[T]) Mul(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Mul(x, y, ctx)
}

// FMA computes x*y + z with a single final rounding.
func (m *Math[T]) FMA(x, y, z T, ctx *Context) (T, error) {
	return m.engine(ctx).FMA(x, y, z, ctx)
}

// Quo computes x / y. Under unlimited precision a non-terminating quotient
// returns [ErrNonTerminating].
func (m *Math[T]) Quo(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Quo(x, y, ctx)
}

// QuoToExponent computes x / y rounded to the given exponent.
func (m *Math[T]) QuoToExponent(x, y T, desired *big.Int, ctx *Context) (T, error) {
	return m.engine(ctx).QuoToExponent(x, y, desired, ctx)
}

// QuoIntZeroScale computes the integer part of x / y with exponent zero.
func (m *Math[T]) QuoIntZeroScale(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).QuoIntZeroScale(x, y, ctx)
}

// QuoIntNaturalScale computes the integer part of x / y with the preferred
// exponent of a division, x's exponent minus y's.
func (m *Math[T]) QuoIntNaturalScale(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).QuoIntNaturalScale(x, y, ctx)
}

// Rem computes the remainder of the truncating integer division x / y. The
// result carries the sign of x.
func (m *Math[T]) Rem(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Rem(x, y, ctx)
}

// RemNear computes the IEEE remainder: x minus y times the integer nearest
// to x/y, ties to even.
func (m *Math[T]) RemNear(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).RemNear(x, y, ctx)
}

// Quantize rescales x to the exponent of y, rounding per the context. The
// operation never raises Overflow or Underflow; a result that will not fit
// raises InvalidOperation instead.
func (m *Math[T]) Quantize(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Quantize(x, y, ctx)
}

// RoundToExponentExact rescales x to the given exponent, recording Rounded
// and Inexact as appropriate.
func (m *Math[T]) RoundToExponentExact(x T, exp *big.Int, ctx *Context) (T, error) {
	return m.engine(ctx).RoundToExponentExact(x, exp, ctx)
}

// RoundToExponentSimple rescales x to the given exponent, passing values
// whose exponent already meets the target through unchanged.
func (m *Math[T]) RoundToExponentSimple(x T, exp *big.Int, ctx *Context) (T, error) {
	return m.engine(ctx).RoundToExponentSimple(x, exp, ctx)
}

// RoundToExponentNoRoundedFlag rescales x to the given exponent without
// recording Rounded or Inexact.
func (m *Math[T]) RoundToExponentNoRoundedFlag(x T, exp *big.Int, ctx *Context) (T, error) {
	return m.engine(ctx).RoundToExponentNoRoundedFlag(x, exp, ctx)
}

// RoundToPrecision rounds x to the context precision and exponent range.
func (m *Math[T]) RoundToPrecision(x T, ctx *Context) (T, error) {
	return m.engine(ctx).RoundToPrecision(x, ctx)
}

// RoundAfterConversion rounds a value freshly converted from a foreign
// representation. It behaves exactly like [Math.RoundToPrecision].
func (m *Math[T]) RoundAfterConversion(x T, ctx *Context) (T, error) {
	return m.engine(ctx).RoundAfterConversion(x, ctx)
}

// RoundToBinaryPrecision rounds x so its mantissa fits the context
// precision counted in bits.
func (m *Math[T]) RoundToBinaryPrecision(x T, ctx *Context) (T, error) {
	return m.engine(ctx).RoundToBinaryPrecision(x, ctx)
}

// Reduce rounds x to the context precision and strips trailing zeros.
func (m *Math[T]) Reduce(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Reduce(x, ctx)
}

// Cmp numerically compares x and y, returning -1, 0 or 1 as a value of the
// representation type, or a NaN when an operand is a NaN. The comparison
// always runs on the full engine and raises no conditions for quiet NaNs.
func (m *Math[T]) Cmp(x, y T) (T, error) {
	return m.full.CmpWithContext(x, y, false, nil)
}

// CmpWithContext numerically compares x and y under a context. When
// treatQuietAsSignaling is true, quiet NaN operands raise InvalidOperation.
func (m *Math[T]) CmpWithContext(x, y T, treatQuietAsSignaling bool, ctx *Context) (T, error) {
	return m.engine(ctx).CmpWithContext(x, y, treatQuietAsSignaling, ctx)
}

// CmpTotal compares x and y under the total ordering, which distinguishes
// representations of equal values and orders NaNs beyond the infinities.
// It is independent of any context and never raises conditions.
func (m *Math[T]) CmpTotal(x, y T) int {
	return m.full.CmpTotal(x, y)
}

// Min returns the smaller of x and y, rounded to the context. A single
// quiet NaN operand loses to a number.
func (m *Math[T]) Min(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Min(x, y, ctx)
}

// Max returns the larger of x and y, rounded to the context. A single
// quiet NaN operand loses to a number.
func (m *Math[T]) Max(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Max(x, y, ctx)
}

// MinMagnitude returns the operand with the smaller absolute value.
func (m *Math[T]) MinMagnitude(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).MinMagnitude(x, y, ctx)
}

// MaxMagnitude returns the operand with the larger absolute value.
func (m *Math[T]) MaxMagnitude(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).MaxMagnitude(x, y, ctx)
}

// NextPlus returns the smallest representable value larger than x. The
// context must carry a finite precision and a bounded exponent range;
// otherwise [ErrInvalidContext] is returned. No conditions are raised.
func (m *Math[T]) NextPlus(x T, ctx *Context) (T, error) {
	return m.engine(ctx).NextPlus(x, ctx)
}

// NextMinus returns the largest representable value smaller than x.
func (m *Math[T]) NextMinus(x T, ctx *Context) (T, error) {
	return m.engine(ctx).NextMinus(x, ctx)
}

// NextToward returns the neighbor of x in the direction of y, or x with
// y's sign when the two are numerically equal.
func (m *Math[T]) NextToward(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).NextToward(x, y, ctx)
}

// Sqrt computes the square root of x, rounding halfway cases to even
// regardless of the context rounding mode.
func (m *Math[T]) Sqrt(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Sqrt(x, ctx)
}

// Exp computes e raised to x.
func (m *Math[T]) Exp(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Exp(x, ctx)
}

// Ln computes the natural logarithm of x.
func (m *Math[T]) Ln(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Ln(x, ctx)
}

// Log10 computes the base-10 logarithm of x. Exact powers of ten yield
// exact integer results in any radix.
func (m *Math[T]) Log10(x T, ctx *Context) (T, error) {
	return m.engine(ctx).Log10(x, ctx)
}

// Power computes x raised to y.
func (m *Math[T]) Power(x, y T, ctx *Context) (T, error) {
	return m.engine(ctx).Power(x, y, ctx)
}

// Pi computes pi rounded to the context precision. Unlike the other
// operations, Pi requires an explicit context: there is no meaningful
// default width for an irrational constant, so a nil context returns
// [ErrNilContext].
func (m *Math[T]) Pi(ctx *Context) (T, error) {
	if ctx == nil {
		var zero T
		return zero, ErrNilContext
	}
	return m.engine(ctx).Pi(ctx)
}
