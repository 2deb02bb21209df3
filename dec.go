package radix

import (
	"fmt"
	"math/big"
	"strings"
)

// Dec is an arbitrary-precision decimal value: the reference representation
// for [Math] at radix 10. The zero value of Dec is a positive zero with
// exponent zero, ready to use.
//
// Dec values are immutable and safe to copy and share.
type Dec struct {
	kind Kind
	neg  bool
	coef *big.Int // absolute coefficient, nil meaning zero
	exp  *big.Int // nil meaning zero
	pay  *big.Int // NaN payload, nil meaning none
}

// DecHelper exposes the Dec representation to the generic engine.
type DecHelper struct{}

var _ Helper[Dec] = DecHelper{}

func (DecHelper) Radix() int { return 10 }

func (DecHelper) Kind(d Dec) Kind { return d.kind }

func (DecHelper) Signbit(d Dec) bool { return d.neg }

func (DecHelper) Mantissa(d Dec) *big.Int {
	if d.coef == nil {
		return bigZero
	}
	return d.coef
}

func (DecHelper) Exponent(d Dec) *big.Int {
	if d.exp == nil {
		return bigZero
	}
	return d.exp
}

func (DecHelper) Payload(d Dec) *big.Int {
	if d.pay == nil {
		return bigZero
	}
	return d.pay
}

func (DecHelper) Finite(neg bool, mant, exp *big.Int) Dec {
	return Dec{kind: Finite, neg: neg, coef: mant, exp: exp}
}

func (DecHelper) Infinity(neg bool) Dec {
	return Dec{kind: Infinite, neg: neg}
}

func (DecHelper) NaN(signaling, neg bool, payload *big.Int) Dec {
	k := QuietNaN
	if signaling {
		k = SignalingNaN
	}
	if payload != nil && payload.Sign() == 0 {
		payload = nil
	}
	return Dec{kind: k, neg: neg, pay: payload}
}

var decMath = New[Dec](DecHelper{})

// DecMath returns the shared arithmetic engine for Dec values.
func DecMath() *Math[Dec] { return decMath }

// NewDec constructs a finite decimal coef * 10^exp.
func NewDec(coef int64, exp int) Dec {
	neg := coef < 0
	c := new(big.Int).SetInt64(coef)
	c.Abs(c)
	return Dec{kind: Finite, neg: neg, coef: c, exp: big.NewInt(int64(exp))}
}

// ParseDec converts a string to a decimal value.
//
// The syntax follows the conventional numeric string form: an optional
// sign, digits with an optional fractional part, and an optional exponent,
// for example "-12.345E+6". The strings "Infinity", "Inf", "NaN" and
// "sNaN", in any case, optionally signed and, for NaNs, followed by
// payload digits, denote the special values.
func ParseDec(s string) (Dec, error) {
	d, ok := parseDec(s)
	if !ok {
		return Dec{}, fmt.Errorf("parsing %q: %w", s, ConversionSyntax)
	}
	return d, nil
}

// MustParseDec is like [ParseDec] but panics on a malformed string.
// Use only for package variable initialization and test code!
func MustParseDec(s string) Dec {
	d, err := ParseDec(s)
	if err != nil {
		panic(err)
	}
	return d
}

func parseDec(s string) (Dec, bool) {
	if s == "" {
		return Dec{}, false
	}
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" {
		return Dec{}, false
	}
	low := strings.ToLower(s)
	switch {
	case low == "inf" || low == "infinity":
		return Dec{kind: Infinite, neg: neg}, true
	case strings.HasPrefix(low, "snan"):
		return parseNaN(s[4:], neg, true)
	case strings.HasPrefix(low, "nan"):
		return parseNaN(s[3:], neg, false)
	}
	// [digits][.digits][(e|E)[sign]digits]
	mant := s
	expPart := ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, expPart = s[:i], s[i+1:]
		if expPart == "" {
			return Dec{}, false
		}
	}
	intPart := mant
	fracPart := ""
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		intPart, fracPart = mant[:i], mant[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return Dec{}, false
		}
	}
	if intPart == "" && fracPart == "" {
		return Dec{}, false
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Dec{}, false
	}
	coef, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return Dec{}, false
	}
	exp := big.NewInt(-int64(len(fracPart)))
	if expPart != "" {
		e, ok := new(big.Int).SetString(expPart, 10)
		if !ok {
			return Dec{}, false
		}
		exp.Add(exp, e)
	}
	return Dec{kind: Finite, neg: neg, coef: coef, exp: exp}, true
}

func parseNaN(payload string, neg, signaling bool) (Dec, bool) {
	var pay *big.Int
	if payload != "" {
		if !allDigits(payload) {
			return Dec{}, false
		}
		p, ok := new(big.Int).SetString(payload, 10)
		if !ok {
			return Dec{}, false
		}
		if p.Sign() != 0 {
			pay = p
		}
	}
	return DecHelper{}.NaN(signaling, neg, pay), true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the value using scientific notation when the exponent
// calls for it: plain digits while the exponent is at most zero and the
// adjusted exponent at least -6, an exponent suffix otherwise.
func (d Dec) String() string {
	var sb strings.Builder
	if d.neg {
		sb.WriteByte('-')
	}
	switch d.kind {
	case Infinite:
		sb.WriteString("Infinity")
		return sb.String()
	case QuietNaN, SignalingNaN:
		if d.kind == SignalingNaN {
			sb.WriteByte('s')
		}
		sb.WriteString("NaN")
		if d.pay != nil {
			sb.WriteString(d.pay.String())
		}
		return sb.String()
	}
	digits := "0"
	if d.coef != nil && d.coef.Sign() != 0 {
		digits = d.coef.String()
	}
	exp := bigZero
	if d.exp != nil {
		exp = d.exp
	}
	adjusted := new(big.Int).Add(exp, big.NewInt(int64(len(digits)-1)))
	if exp.Sign() <= 0 && adjusted.Cmp(big.NewInt(-6)) >= 0 {
		// Plain notation.
		if exp.Sign() == 0 {
			sb.WriteString(digits)
			return sb.String()
		}
		frac := int(-exp.Int64())
		switch {
		case frac < len(digits):
			sb.WriteString(digits[:len(digits)-frac])
			sb.WriteByte('.')
			sb.WriteString(digits[len(digits)-frac:])
		default:
			sb.WriteString("0.")
			sb.WriteString(strings.Repeat("0", frac-len(digits)))
			sb.WriteString(digits)
		}
		return sb.String()
	}
	sb.WriteString(digits[:1])
	if len(digits) > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('E')
	if adjusted.Sign() >= 0 {
		sb.WriteByte('+')
	}
	sb.WriteString(adjusted.String())
	return sb.String()
}

// Format implements fmt.Formatter for the %v, %s and %q verbs.
func (d Dec) Format(state fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprintf(state, "%q", d.String())
	default:
		fmt.Fprint(state, d.String())
	}
}

// IsZero reports whether the value is a finite zero of either sign.
func (d Dec) IsZero() bool {
	return d.kind == Finite && (d.coef == nil || d.coef.Sign() == 0)
}

// IsFinite reports whether the value is neither an infinity nor a NaN.
func (d Dec) IsFinite() bool { return d.kind == Finite }

// IsNaN reports whether the value is a quiet or signaling NaN.
func (d Dec) IsNaN() bool {
	return d.kind == QuietNaN || d.kind == SignalingNaN
}

// Signbit reports whether the sign bit is set, including for -0 and NaNs.
func (d Dec) Signbit() bool { return d.neg }

// MarshalText implements encoding.TextMarshaler.
func (d Dec) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dec) UnmarshalText(text []byte) error {
	v, err := ParseDec(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
