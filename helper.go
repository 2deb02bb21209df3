package radix

import "math/big"

// Kind classifies a value.
type Kind uint8

const (
	// Finite values have a well-defined (sign, mantissa, exponent) triple.
	Finite Kind = iota
	// Infinite values carry only a sign.
	Infinite
	// QuietNaN propagates silently through operations.
	QuietNaN
	// SignalingNaN raises InvalidOperation wherever it appears as an
	// operand and propagates as a quiet NaN.
	SignalingNaN
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case Finite:
		return "finite"
	case Infinite:
		return "infinite"
	case QuietNaN:
		return "quiet NaN"
	case SignalingNaN:
		return "signaling NaN"
	}
	return "unknown"
}

// Helper is the value-representation capability the engine is generic over.
// It decomposes values of type T into sign, mantissa, exponent, and kind,
// constructs new values from such parts, and reports the radix the values
// are expressed in.
//
// The engine treats values of type T as immutable. The *big.Int results of
// Mantissa, Exponent, and Payload must not be modified by the engine or by
// callers; the engine copies them before computing. Conversely, the engine
// hands freshly allocated integers to Finite and NaN, which the
// implementation may retain without copying.
//
// A finite value represents sign · mantissa · radix^exponent. The mantissa
// is non-negative; the sign carries the negative flag, so signed zeros are
// representable. Infinities ignore mantissa and exponent. NaNs carry an
// optional diagnostic payload that survives propagation.
type Helper[T any] interface {
	// Radix reports the base of the positional system: 10 for decimal,
	// 2 for binary.
	Radix() int

	// Kind classifies x.
	Kind(x T) Kind

	// Signbit reports whether x is negative (including -0 and negative
	// infinity or NaN).
	Signbit(x T) bool

	// Mantissa returns the non-negative magnitude of a finite x.
	Mantissa(x T) *big.Int

	// Exponent returns the exponent of a finite x.
	Exponent(x T) *big.Int

	// Payload returns the diagnostic payload of a NaN x, or nil when it
	// has none.
	Payload(x T) *big.Int

	// Finite constructs the finite value sign · mant · radix^exp.
	Finite(neg bool, mant, exp *big.Int) T

	// Infinity constructs a signed infinity.
	Infinity(neg bool) T

	// NaN constructs a NaN with the given signaling bit, sign, and
	// optional payload (nil for none).
	NaN(signaling, neg bool, payload *big.Int) T
}
