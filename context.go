package radix

// RoundingMode determines how a result is rounded when it does not fit the
// requested precision or exponent.
type RoundingMode uint8

const (
	// ToNearestEven rounds to the nearest representable value; ties go to
	// the value whose last digit is even. This is the default mode.
	ToNearestEven RoundingMode = iota
	// ToNearestAway rounds to the nearest representable value; ties go away
	// from zero.
	ToNearestAway
	// ToNearestTowardZero rounds to the nearest representable value; ties
	// go toward zero.
	ToNearestTowardZero
	// ToZero rounds toward zero (truncation).
	ToZero
	// AwayFromZero rounds away from zero.
	AwayFromZero
	// ToNegativeInf rounds toward negative infinity (floor).
	ToNegativeInf
	// ToPositiveInf rounds toward positive infinity (ceiling).
	ToPositiveInf
)

// String returns the name of the rounding mode as accepted by
// [ParseRoundingMode].
func (m RoundingMode) String() string {
	switch m {
	case ToNearestEven:
		return "half-even"
	case ToNearestAway:
		return "half-up"
	case ToNearestTowardZero:
		return "half-down"
	case ToZero:
		return "down"
	case AwayFromZero:
		return "up"
	case ToNegativeInf:
		return "floor"
	case ToPositiveInf:
		return "ceiling"
	}
	return "unknown"
}

// ParseRoundingMode converts a mode name to a RoundingMode.
// Recognized names are half-even, half-up, half-down, down, up, floor,
// and ceiling.
func ParseRoundingMode(name string) (RoundingMode, bool) {
	switch name {
	case "half-even":
		return ToNearestEven, true
	case "half-up":
		return ToNearestAway, true
	case "half-down":
		return ToNearestTowardZero, true
	case "down":
		return ToZero, true
	case "up":
		return AwayFromZero, true
	case "floor":
		return ToNegativeInf, true
	case "ceiling":
		return ToPositiveInf, true
	}
	return 0, false
}

// needsInc reports whether a truncated result must be incremented by one
// unit in the last place. odd is the parity of the last kept digit, half is
// the comparison of twice the discarded remainder against the divisor
// (-1 below the halfway point, 0 exactly halfway, +1 above), and pos is the
// sign of the result. needsInc must only be called when the discarded
// remainder is non-zero.
func (m RoundingMode) needsInc(odd bool, half int, pos bool) bool {
	switch m {
	case AwayFromZero:
		return true
	case ToZero:
		return false
	case ToPositiveInf:
		return pos
	case ToNegativeInf:
		return !pos
	case ToNearestEven:
		if half != 0 {
			return half > 0
		}
		return odd
	case ToNearestAway:
		return half >= 0
	case ToNearestTowardZero:
		return half > 0
	}
	return false
}

// Context governs the behavior of a single operation: how many significant
// digits a result may carry, how it is rounded, what exponent range it must
// fit, and which exceptional conditions abort the operation.
//
// The configuration fields are read-only during an operation. Raised
// conditions are accumulated through the Flags pointer, which keeps the
// read-only configuration separable from the per-call output state: a single
// Context value can be shared between concurrent calls as long as each call
// that wants flag reporting supplies its own accumulator.
//
// A nil *Context is the universal default: full engine, unlimited precision,
// half-even rounding, unbounded exponents, no flags recorded, no traps.
// Every operation accepts a nil Context except [Math.Pi], which requires an
// explicit one.
type Context struct {
	// Precision is the maximum number of significant digits a result may
	// carry. Zero means unlimited.
	Precision int32

	// Rounding determines how results are rounded. The zero value is
	// ToNearestEven.
	Rounding RoundingMode

	// EMin and EMax bound the adjusted exponent of results. When both are
	// zero the exponent range is unbounded.
	EMin, EMax int32

	// Traps is the set of conditions that abort an operation instead of
	// being recorded.
	Traps Condition

	// Flags, when non-nil, accumulates the conditions raised by operations
	// run under this context. The engine only ever ORs bits in; it never
	// clears them.
	Flags *Condition

	// Simplified selects the simplified engine, a faster path that is only
	// exact for values within a bounded domain and falls back to the full
	// engine outside it.
	Simplified bool
}

// Preset contexts with IEEE 754 decimal interchange parameters.
// Each returns a fresh Context so the caller can attach a flag accumulator.
func Decimal32() *Context {
	return &Context{Precision: 7, EMin: -95, EMax: 96}
}

func Decimal64() *Context {
	return &Context{Precision: 16, EMin: -383, EMax: 384}
}

func Decimal128() *Context {
	return &Context{Precision: 34, EMin: -6143, EMax: 6144}
}

func (c *Context) simplified() bool { return c != nil && c.Simplified }

func (c *Context) prec() int {
	if c == nil {
		return 0
	}
	return int(c.Precision)
}

func (c *Context) mode() RoundingMode {
	if c == nil {
		return ToNearestEven
	}
	return c.Rounding
}

// bounded reports whether the context constrains the exponent range.
func (c *Context) bounded() bool {
	return c != nil && (c.EMin != 0 || c.EMax != 0)
}

func (c *Context) emin() int64 { return int64(c.EMin) }

func (c *Context) emax() int64 { return int64(c.EMax) }

// etiny is the exponent of the smallest positive subnormal value.
func (c *Context) etiny() int64 {
	p := int64(c.Precision)
	if p == 0 {
		p = 1
	}
	return int64(c.EMin) - p + 1
}

// raise records cond into the context's flag accumulator and returns cond
// as an error if any of its bits are trapped. A nil context records nothing
// and traps nothing.
func (c *Context) raise(cond Condition) error {
	if c == nil || cond == 0 {
		return nil
	}
	if c.Flags != nil {
		*c.Flags |= cond
	}
	if t := cond & c.Traps; t != 0 {
		return t
	}
	return nil
}
