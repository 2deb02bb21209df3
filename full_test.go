package radix

import (
	"errors"
	"math/big"
	"testing"
)

// binOpCase exercises one two-operand call under a context, checking the
// rendered result and the raised conditions.
type binOpCase struct {
	x, y  string
	want  string
	flags Condition
}

func testBinOp(t *testing.T, name string, ctx *Context, op func(m *Math[Dec], x, y Dec, c *Context) (Dec, error), tests []binOpCase) {
	t.Helper()
	for _, tt := range tests {
		got, flags := run(t, ctx, func(m *Math[Dec], c *Context) (Dec, error) {
			return op(m, MustParseDec(tt.x), MustParseDec(tt.y), c)
		})
		if got != tt.want || flags != tt.flags {
			t.Errorf("%s(%q, %q) = %q [%v], want %q [%v]", name, tt.x, tt.y, got, flags, tt.want, tt.flags)
		}
	}
}

func TestFull_Add(t *testing.T) {
	p5 := &Context{Precision: 5}
	testBinOp(t, "Add", p5, (*Math[Dec]).Add, []binOpCase{
		{"1.23", "4.56", "5.79", 0},
		{"1", "-1", "0", 0},
		{"-1", "-1", "-2", 0},
		{"0", "-0", "0", 0},
		{"-0", "-0", "-0", 0},
		{"1.3", "-2.07", "-0.77", 0},
		{"12345", "0.1", "12345", Inexact | Rounded},
		{"1E+20", "1", "1.0000E+20", Inexact | Rounded},
		{"1E+20", "-1", "1.0000E+20", Inexact | Rounded},
		{"1E+20", "-6E+14", "9.9999E+19", Inexact | Rounded},
		{"Infinity", "1", "Infinity", 0},
		{"1", "-Infinity", "-Infinity", 0},
		{"Infinity", "Infinity", "Infinity", 0},
		{"Infinity", "-Infinity", "NaN", InvalidOperation},
	})

	// Cancellation to zero picks the sign the rounding direction asks for.
	floor := &Context{Precision: 5, Rounding: ToNegativeInf}
	testBinOp(t, "Add/floor", floor, (*Math[Dec]).Add, []binOpCase{
		{"1", "-1", "-0", 0},
		{"0", "-0", "-0", 0},
	})

	// Unlimited precision refuses absurd alignments instead of allocating
	// millions of digits.
	testBinOp(t, "Add/unlimited", nil, (*Math[Dec]).Add, []binOpCase{
		{"1E+3000000", "1", "NaN", 0},
		{"12345678901234567890", "1E-20", "12345678901234567890.00000000000000000001", 0},
	})
}

func TestFull_AddEx(t *testing.T) {
	// Under unlimited precision the result is rounded to the wider of the
	// two operand precisions when requested.
	tests := []struct {
		x, y string
		want string
	}{
		{"2", "3", "5"},
		{"123456", "0.5", "123456"},
		{"123456", "0.51", "123457"},
	}
	m := DecMath()
	for _, tt := range tests {
		got, err := m.AddEx(MustParseDec(tt.x), MustParseDec(tt.y), nil, true)
		if err != nil || got.String() != tt.want {
			t.Errorf("AddEx(%q, %q, true) = %q, %v, want %q", tt.x, tt.y, got, err, tt.want)
		}
	}
}

func TestFull_Sub(t *testing.T) {
	p5 := &Context{Precision: 5}
	testBinOp(t, "Sub", p5, (*Math[Dec]).Sub, []binOpCase{
		{"1.3", "2.07", "-0.77", 0},
		{"1", "1", "0", 0},
		{"3", "-3", "6", 0},
		{"Infinity", "Infinity", "NaN", InvalidOperation},
		{"1", "Infinity", "-Infinity", 0},
	})
}

func TestFull_UnarySigns(t *testing.T) {
	tests := []struct {
		op   string
		x    string
		want string
	}{
		{"Neg", "1.23", "-1.23"},
		{"Neg", "-1.23", "1.23"},
		{"Neg", "0", "0"}, // 0 - 0 is +0
		{"Neg", "-0", "0"},
		{"Neg", "-Infinity", "Infinity"},
		{"Abs", "-1.23", "1.23"},
		{"Abs", "-0", "0"},
		{"Abs", "-Infinity", "Infinity"},
		{"Plus", "-0", "0"},
		{"Plus", "1.23", "1.23"},
	}
	m := DecMath()
	for _, tt := range tests {
		var got Dec
		var err error
		switch tt.op {
		case "Neg":
			got, err = m.Neg(MustParseDec(tt.x), nil)
		case "Abs":
			got, err = m.Abs(MustParseDec(tt.x), nil)
		case "Plus":
			got, err = m.Plus(MustParseDec(tt.x), nil)
		}
		if err != nil || got.String() != tt.want {
			t.Errorf("%s(%q) = %q, %v, want %q", tt.op, tt.x, got, err, tt.want)
		}
	}

	// Plus applies the context, so it can round.
	got, flags := run(t, &Context{Precision: 5}, func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.Plus(MustParseDec("123456"), ctx)
	})
	if got != "1.2346E+5" || flags != Inexact|Rounded {
		t.Errorf("Plus(123456) = %q [%v], want 1.2346E+5 [inexact, rounded]", got, flags)
	}
}

func TestFull_Mul(t *testing.T) {
	p5 := &Context{Precision: 5}
	testBinOp(t, "Mul", p5, (*Math[Dec]).Mul, []binOpCase{
		{"1.20", "2", "2.40", 0},
		{"0.9", "0.9", "0.81", 0},
		{"-3", "2", "-6", 0},
		{"999", "999", "99800", Inexact | Rounded},
		{"0", "-5", "-0", 0},
		{"Infinity", "2", "Infinity", 0},
		{"-Infinity", "2", "-Infinity", 0},
		{"Infinity", "-2", "-Infinity", 0},
		{"Infinity", "0", "NaN", InvalidOperation},
		{"0", "-Infinity", "NaN", InvalidOperation},
	})
}

func TestFull_FMA(t *testing.T) {
	p5 := &Context{Precision: 5}
	tests := []struct {
		x, y, z string
		want    string
		flags   Condition
	}{
		{"2", "3", "4", "10", 0},
		{"1E+10", "1", "-1E+10", "0E+10", 0},
		{"7", "1.4", "-9.8", "0.0", 0},
		{"9", "9", "1", "82", 0},
		{"Infinity", "1", "1", "Infinity", 0},
		{"Infinity", "0", "1", "NaN", InvalidOperation},
		{"Infinity", "1", "-Infinity", "NaN", InvalidOperation},
		{"1", "1", "Infinity", "Infinity", 0},
	}
	for _, tt := range tests {
		got, flags := run(t, p5, func(m *Math[Dec], ctx *Context) (Dec, error) {
			return m.FMA(MustParseDec(tt.x), MustParseDec(tt.y), MustParseDec(tt.z), ctx)
		})
		if got != tt.want || flags != tt.flags {
			t.Errorf("FMA(%q, %q, %q) = %q [%v], want %q [%v]",
				tt.x, tt.y, tt.z, got, flags, tt.want, tt.flags)
		}
	}

	// A signaling NaN wins over an earlier quiet one.
	got, flags := run(t, p5, func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.FMA(MustParseDec("NaN2"), MustParseDec("sNaN3"), MustParseDec("7"), ctx)
	})
	if got != "NaN3" || flags != InvalidOperation {
		t.Errorf("FMA(NaN2, sNaN3, 7) = %q [%v], want NaN3 [invalid operation]", got, flags)
	}
}

func TestFull_Quo(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		testBinOp(t, "Quo", nil, (*Math[Dec]).Quo, []binOpCase{
			{"1", "4", "0.25", 0},
			{"22", "11", "2", 0},
			{"2.000", "2", "1.000", 0},
			{"1", "5", "0.2", 0},
			{"0", "3", "0", 0},
			{"0.00", "3", "0.00", 0},
			{"-0", "3", "-0", 0},
		})
	})

	t.Run("rounded", func(t *testing.T) {
		p5 := &Context{Precision: 5}
		testBinOp(t, "Quo", p5, (*Math[Dec]).Quo, []binOpCase{
			{"2", "3", "0.66667", Inexact | Rounded},
			{"-1", "3", "-0.33333", Inexact | Rounded},
			{"1", "7", "0.14286", Inexact | Rounded},
			{"12", "3", "4", 0},
		})
	})

	t.Run("special", func(t *testing.T) {
		testBinOp(t, "Quo", &Context{}, (*Math[Dec]).Quo, []binOpCase{
			{"1", "0", "Infinity", DivisionByZero},
			{"-1", "0", "-Infinity", DivisionByZero},
			{"1", "-0", "-Infinity", DivisionByZero},
			{"0", "0", "NaN", InvalidOperation},
			{"Infinity", "Infinity", "NaN", InvalidOperation},
			{"Infinity", "2", "Infinity", 0},
			{"2", "Infinity", "0", 0},
		})
	})

	t.Run("non-terminating", func(t *testing.T) {
		m := DecMath()
		_, err := m.Quo(MustParseDec("1"), MustParseDec("3"), nil)
		if !errors.Is(err, ErrNonTerminating) {
			t.Errorf("Quo(1, 3, nil) error = %v, want ErrNonTerminating", err)
		}
	})
}

func TestFull_QuoToExponent(t *testing.T) {
	m := DecMath()
	tests := []struct {
		x, y    string
		desired int64
		prec    int32
		want    string
		flags   Condition
	}{
		{"10", "3", 0, 0, "3", Inexact | Rounded},
		{"10", "3", -2, 0, "3.33", Inexact | Rounded},
		{"10", "4", -1, 0, "2.5", 0},
		{"100", "1", -2, 3, "NaN", InvalidOperation},
	}
	for _, tt := range tests {
		got, flags := run(t, &Context{Precision: tt.prec}, func(m *Math[Dec], ctx *Context) (Dec, error) {
			return m.QuoToExponent(MustParseDec(tt.x), MustParseDec(tt.y), big.NewInt(tt.desired), ctx)
		})
		if got != tt.want || flags != tt.flags {
			t.Errorf("QuoToExponent(%q, %q, %d) = %q [%v], want %q [%v]",
				tt.x, tt.y, tt.desired, got, flags, tt.want, tt.flags)
		}
	}

	// A desired exponent beyond int64 is rejected, not truncated.
	huge := new(big.Int).Lsh(bigOne, 70)
	var flags Condition
	got, err := m.QuoToExponent(MustParseDec("1"), MustParseDec("2"), huge, &Context{Flags: &flags})
	if err != nil || !got.IsNaN() || flags != InvalidOperation {
		t.Errorf("QuoToExponent(1, 2, 2^70) = %q, %v [%v], want NaN [invalid operation]", got, err, flags)
	}
}

func TestFull_QuoInt(t *testing.T) {
	testBinOp(t, "QuoIntZeroScale", nil, (*Math[Dec]).QuoIntZeroScale, []binOpCase{
		{"10", "3", "3", 0},
		{"-10", "3", "-3", 0},
		{"10.4", "2", "5", 0},
		{"2", "Infinity", "0", 0},
		{"1", "0", "Infinity", DivisionByZero},
		{"Infinity", "3", "NaN", InvalidOperation},
	})
	testBinOp(t, "QuoIntNaturalScale", nil, (*Math[Dec]).QuoIntNaturalScale, []binOpCase{
		{"10.4", "2", "5.0", 0},
		{"10", "2", "5", 0},
		{"1E+2", "5", "2E+1", 0},
		{"7", "2", "3", 0},
	})
}

func TestFull_Rem(t *testing.T) {
	testBinOp(t, "Rem", nil, (*Math[Dec]).Rem, []binOpCase{
		{"10", "3", "1", 0},
		{"-10", "3", "-1", 0},
		{"10.2", "1", "0.2", 0},
		{"3.6", "1.3", "1.0", 0},
		{"7", "0", "NaN", InvalidOperation},
		{"Infinity", "3", "NaN", InvalidOperation},
		{"3", "Infinity", "3", 0},
	})
	testBinOp(t, "RemNear", nil, (*Math[Dec]).RemNear, []binOpCase{
		{"10", "3", "1", 0},
		{"10", "6", "-2", 0},
		{"7.7", "3", "-1.3", 0},
		{"3", "3", "0", 0},
		{"7", "0", "NaN", InvalidOperation},
	})
}

func TestFull_Quantize(t *testing.T) {
	p := &Context{Precision: 9}
	testBinOp(t, "Quantize", p, (*Math[Dec]).Quantize, []binOpCase{
		{"2.17", "0.001", "2.170", 0},
		{"2.17", "0.01", "2.17", 0},
		{"2.17", "0.1", "2.2", Inexact | Rounded},
		{"2.17", "1E+0", "2", Inexact | Rounded},
		{"2.17", "1E+1", "0E+1", Inexact | Rounded},
		{"-0.1", "1", "-0", Inexact | Rounded},
		{"0", "1E+5", "0E+5", 0},
		{"217", "1E-1", "217.0", 0},
		{"217", "1E+1", "2.2E+2", Inexact | Rounded},
		{"217", "1E+2", "2E+2", Inexact | Rounded},
		{"Infinity", "-Infinity", "Infinity", 0},
		{"2", "Infinity", "NaN", InvalidOperation},
	})

	// Widening past the precision is an invalid operation, never overflow.
	testBinOp(t, "Quantize", &Context{Precision: 5}, (*Math[Dec]).Quantize, []binOpCase{
		{"123.456", "0.001", "NaN", InvalidOperation},
		{"1E+5", "1E-2", "NaN", InvalidOperation},
	})
}

func TestFull_RoundToExponent(t *testing.T) {
	target := big.NewInt(0)
	tests := []struct {
		op    string
		x     string
		want  string
		flags Condition
	}{
		{"exact", "2.17", "2", Inexact | Rounded},
		{"exact", "2", "2", 0},
		{"simple", "2.17", "2", Inexact | Rounded},
		{"simple", "2E+3", "2E+3", 0}, // already coarse enough, passed through
		{"noflag", "2.17", "2", 0},
		{"noflag", "2", "2", 0},
	}
	for _, tt := range tests {
		got, flags := run(t, &Context{Precision: 9}, func(m *Math[Dec], ctx *Context) (Dec, error) {
			switch tt.op {
			case "exact":
				return m.RoundToExponentExact(MustParseDec(tt.x), target, ctx)
			case "simple":
				return m.RoundToExponentSimple(MustParseDec(tt.x), target, ctx)
			default:
				return m.RoundToExponentNoRoundedFlag(MustParseDec(tt.x), target, ctx)
			}
		})
		if got != tt.want || flags != tt.flags {
			t.Errorf("RoundToExponent[%s](%q, 0) = %q [%v], want %q [%v]",
				tt.op, tt.x, got, flags, tt.want, tt.flags)
		}
	}

	// The exact variant widens a too-coarse value instead of passing it.
	got, flags := run(t, &Context{Precision: 9}, func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.RoundToExponentExact(MustParseDec("2E+3"), target, ctx)
	})
	if got != "2000" || flags != 0 {
		t.Errorf("RoundToExponentExact(2E+3, 0) = %q [%v], want 2000 []", got, flags)
	}
}

func TestFull_Reduce(t *testing.T) {
	tests := []struct {
		x, want string
	}{
		{"1.200", "1.2"},
		{"120.00", "1.2E+2"},
		{"0.00", "0"},
		{"-0", "-0"},
		{"5", "5"},
		{"Infinity", "Infinity"},
	}
	m := DecMath()
	for _, tt := range tests {
		got, err := m.Reduce(MustParseDec(tt.x), nil)
		if err != nil || got.String() != tt.want {
			t.Errorf("Reduce(%q) = %q, %v, want %q", tt.x, got, err, tt.want)
		}
	}

	// Under a bounded context trailing zeros are only stripped while the
	// exponent stays in range.
	got, flags := run(t, Decimal32(), func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.Reduce(MustParseDec("1.00E+2"), ctx)
	})
	if got != "1E+2" || flags != 0 {
		t.Errorf("Reduce(1.00E+2) = %q [%v], want 1E+2 []", got, flags)
	}
}

func TestFull_RoundToPrecision(t *testing.T) {
	tests := []struct {
		x     string
		prec  int32
		mode  RoundingMode
		want  string
		flags Condition
	}{
		{"123456", 5, ToNearestEven, "1.2346E+5", Inexact | Rounded},
		{"1.25", 2, ToNearestEven, "1.2", Inexact | Rounded},
		{"1.35", 2, ToNearestEven, "1.4", Inexact | Rounded},
		{"1.25", 2, ToNearestAway, "1.3", Inexact | Rounded},
		{"1.25", 2, ToZero, "1.2", Inexact | Rounded},
		{"-1.25", 2, ToNegativeInf, "-1.3", Inexact | Rounded},
		{"1.25", 2, AwayFromZero, "1.3", Inexact | Rounded},
		{"1.23", 5, ToNearestEven, "1.23", 0},
	}
	for _, tt := range tests {
		got, flags := run(t, &Context{Precision: tt.prec, Rounding: tt.mode}, func(m *Math[Dec], ctx *Context) (Dec, error) {
			return m.RoundToPrecision(MustParseDec(tt.x), ctx)
		})
		if got != tt.want || flags != tt.flags {
			t.Errorf("RoundToPrecision(%q, p=%d, %v) = %q [%v], want %q [%v]",
				tt.x, tt.prec, tt.mode, got, flags, tt.want, tt.flags)
		}
	}
}

func TestFull_RoundToBinaryPrecision(t *testing.T) {
	tests := []struct {
		x     string
		bits  int32
		want  string
		flags Condition
	}{
		{"255", 8, "255", 0},
		{"257", 8, "2.6E+2", Inexact | Rounded},
		{"100", 6, "1.0E+2", Rounded},
		{"7", 10, "7", 0},
	}
	for _, tt := range tests {
		got, flags := run(t, &Context{Precision: tt.bits}, func(m *Math[Dec], ctx *Context) (Dec, error) {
			return m.RoundToBinaryPrecision(MustParseDec(tt.x), ctx)
		})
		if got != tt.want || flags != tt.flags {
			t.Errorf("RoundToBinaryPrecision(%q, %d bits) = %q [%v], want %q [%v]",
				tt.x, tt.bits, got, flags, tt.want, tt.flags)
		}
	}
}

func TestFull_MinMax(t *testing.T) {
	p := &Context{Precision: 9}
	testBinOp(t, "Min", p, (*Math[Dec]).Min, []binOpCase{
		{"3", "2", "2", 0},
		{"-10", "3", "-10", 0},
		{"1.0", "1", "1.0", 0},
		{"NaN", "3", "3", 0},
		{"3", "NaN", "3", 0},
		{"NaN", "NaN2", "NaN", 0},
		{"sNaN", "3", "NaN", InvalidOperation},
		{"-Infinity", "3", "-Infinity", 0},
	})
	testBinOp(t, "Max", p, (*Math[Dec]).Max, []binOpCase{
		{"3", "2", "3", 0},
		{"1.0", "1", "1", 0},
		{"NaN", "3", "3", 0},
		{"Infinity", "3", "Infinity", 0},
	})
	testBinOp(t, "MinMagnitude", p, (*Math[Dec]).MinMagnitude, []binOpCase{
		{"-5", "3", "3", 0},
		{"-2", "3", "-2", 0},
	})
	testBinOp(t, "MaxMagnitude", p, (*Math[Dec]).MaxMagnitude, []binOpCase{
		{"-5", "3", "-5", 0},
		{"-2", "3", "3", 0},
	})
}

func TestFull_Next(t *testing.T) {
	ctx := Decimal32()
	tests := []struct {
		op   string
		x    string
		want string
	}{
		{"plus", "1", "1.000001"},
		{"plus", "-1", "-0.9999999"},
		{"plus", "0", "1E-101"},
		{"plus", "9.999999E+96", "Infinity"},
		{"plus", "Infinity", "Infinity"},
		{"plus", "-Infinity", "-9.999999E+96"},
		{"minus", "1", "0.9999999"},
		{"minus", "0", "-1E-101"},
		{"minus", "-9.999999E+96", "-Infinity"},
		{"minus", "Infinity", "9.999999E+96"},
	}
	m := DecMath()
	for _, tt := range tests {
		var got Dec
		var err error
		if tt.op == "plus" {
			got, err = m.NextPlus(MustParseDec(tt.x), ctx)
		} else {
			got, err = m.NextMinus(MustParseDec(tt.x), ctx)
		}
		if err != nil || got.String() != tt.want {
			t.Errorf("Next%s(%q) = %q, %v, want %q", tt.op, tt.x, got, err, tt.want)
		}
	}

	toward := []struct {
		x, y, want string
	}{
		{"1", "2", "1.000001"},
		{"1", "-2", "0.9999999"},
		{"1", "1", "1"},
		{"-0", "0", "0"},
	}
	for _, tt := range toward {
		got, err := m.NextToward(MustParseDec(tt.x), MustParseDec(tt.y), ctx)
		if err != nil || got.String() != tt.want {
			t.Errorf("NextToward(%q, %q) = %q, %v, want %q", tt.x, tt.y, got, err, tt.want)
		}
	}

	// The neighbor operations need a complete context.
	for _, bad := range []*Context{nil, {Precision: 5}, {EMin: -10, EMax: 10}} {
		if _, err := m.NextPlus(MustParseDec("1"), bad); !errors.Is(err, ErrInvalidContext) {
			t.Errorf("NextPlus with context %+v error = %v, want ErrInvalidContext", bad, err)
		}
	}
}

func TestFull_Overflow(t *testing.T) {
	tests := []struct {
		mode RoundingMode
		x    string
		want string
	}{
		{ToNearestEven, "9.999999E+96", "Infinity"},
		{ToNearestAway, "9.999999E+96", "Infinity"},
		{AwayFromZero, "9.999999E+96", "Infinity"},
		{ToZero, "9.999999E+96", "9.999999E+96"},
		{ToNegativeInf, "9.999999E+96", "9.999999E+96"},
		{ToPositiveInf, "9.999999E+96", "Infinity"},
		{ToPositiveInf, "-9.999999E+96", "-9.999999E+96"},
		{ToNegativeInf, "-9.999999E+96", "-Infinity"},
	}
	for _, tt := range tests {
		ctx := &Context{Precision: 7, Rounding: tt.mode, EMin: -95, EMax: 96}
		got, flags := run(t, ctx, func(m *Math[Dec], c *Context) (Dec, error) {
			return m.Mul(MustParseDec(tt.x), MustParseDec("10"), c)
		})
		if got != tt.want || flags != Overflow|Inexact|Rounded {
			t.Errorf("Mul(%q, 10) under %v = %q [%v], want %q [overflow, inexact, rounded]",
				tt.x, tt.mode, got, flags, tt.want)
		}
	}
}

func TestFull_Subnormal(t *testing.T) {
	// An exact subnormal result raises Subnormal alone.
	got, flags := run(t, Decimal32(), func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.Mul(MustParseDec("1E-95"), MustParseDec("1E-3"), ctx)
	})
	if got != "1E-98" || flags != Subnormal {
		t.Errorf("Mul(1E-95, 1E-3) = %q [%v], want 1E-98 [subnormal]", got, flags)
	}

	// An inexact subnormal result underflows.
	got, flags = run(t, Decimal32(), func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.Quo(MustParseDec("1E-101"), MustParseDec("3"), ctx)
	})
	if got != "0E-101" || flags != Underflow|Subnormal|Inexact|Rounded {
		t.Errorf("Quo(1E-101, 3) = %q [%v], want 0E-101 [underflow, subnormal, inexact, rounded]", got, flags)
	}
}

func TestFull_ClampedZero(t *testing.T) {
	tests := []struct {
		x, want string
	}{
		{"0E-200", "0E-101"},
		{"0E+200", "0E+96"},
	}
	for _, tt := range tests {
		got, flags := run(t, Decimal32(), func(m *Math[Dec], ctx *Context) (Dec, error) {
			return m.RoundToPrecision(MustParseDec(tt.x), ctx)
		})
		if got != tt.want || flags != Clamped {
			t.Errorf("RoundToPrecision(%q) = %q [%v], want %q [clamped]", tt.x, got, flags, tt.want)
		}
	}
}

func TestFull_NaNPropagation(t *testing.T) {
	p5 := &Context{Precision: 5}
	testBinOp(t, "Add", p5, (*Math[Dec]).Add, []binOpCase{
		{"sNaN1", "NaN2", "NaN1", InvalidOperation},
		{"NaN1", "sNaN2", "NaN2", InvalidOperation},
		{"NaN1", "NaN2", "NaN1", 0},
		{"1", "NaN2", "NaN2", 0},
		{"sNaN99", "1", "NaN99", InvalidOperation},
		{"-sNaN7", "1", "-NaN7", InvalidOperation},
	})
}

func TestFull_Traps(t *testing.T) {
	m := DecMath()
	var flags Condition
	ctx := &Context{Flags: &flags, Traps: DivisionByZero}
	_, err := m.Quo(MustParseDec("1"), MustParseDec("0"), ctx)
	cond := Condition(0)
	if !errors.As(err, &cond) || cond != DivisionByZero {
		t.Fatalf("trapped Quo(1, 0) error = %v, want DivisionByZero", err)
	}
	if flags != DivisionByZero {
		t.Errorf("flags after trap = %v, want division by zero", flags)
	}

	ctx = &Context{Traps: InvalidOperation}
	if _, err := m.Add(MustParseDec("sNaN"), MustParseDec("1"), ctx); err == nil {
		t.Error("trapped Add(sNaN, 1) returned no error")
	}
}

func TestFull_ExponentRange(t *testing.T) {
	h := DecHelper{}
	huge := new(big.Int).Lsh(bigOne, 70)
	x := h.Finite(false, big.NewInt(1), huge)
	m := DecMath()
	if _, err := m.Add(x, MustParseDec("1"), &Context{Precision: 5}); !errors.Is(err, ErrExponentRange) {
		t.Errorf("Add with 2^70 exponent error = %v, want ErrExponentRange", err)
	}
}
