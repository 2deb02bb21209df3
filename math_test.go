package radix

import (
	"errors"
	"testing"
)

// run evaluates op under a copy of ctx with a fresh flag accumulator and
// returns the rendered result and the raised conditions.
func run(t *testing.T, ctx *Context, op func(m *Math[Dec], ctx *Context) (Dec, error)) (string, Condition) {
	t.Helper()
	var flags Condition
	if ctx != nil {
		c := *ctx
		c.Flags = &flags
		ctx = &c
	}
	res, err := op(DecMath(), ctx)
	if err != nil {
		t.Fatalf("operation failed: %v", err)
	}
	return res.String(), flags
}

func TestMath_BasicScenarios(t *testing.T) {
	m := DecMath()

	// Exact addition under the default context.
	sum, err := m.Add(MustParseDec("1"), MustParseDec("2"), nil)
	if err != nil || sum.String() != "3" {
		t.Errorf("Add(1, 2, nil) = %q, %v, want 3", sum, err)
	}

	// Inexact division under a precision-5 context.
	got, flags := run(t, &Context{Precision: 5}, func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.Quo(MustParseDec("1"), MustParseDec("3"), ctx)
	})
	if got != "0.33333" || flags != Inexact|Rounded {
		t.Errorf("Quo(1, 3) = %q [%v], want 0.33333 [inexact, rounded]", got, flags)
	}

	// Division by zero.
	got, flags = run(t, &Context{}, func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.Quo(MustParseDec("1"), MustParseDec("0"), ctx)
	})
	if got != "Infinity" || flags != DivisionByZero {
		t.Errorf("Quo(1, 0) = %q [%v], want Infinity [division by zero]", got, flags)
	}

	// A quiet NaN operand propagates without raising invalid.
	got, flags = run(t, &Context{Precision: 5}, func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.CmpWithContext(MustParseDec("NaN"), MustParseDec("1"), false, ctx)
	})
	if got != "NaN" || flags != 0 {
		t.Errorf("CmpWithContext(NaN, 1, false) = %q [%v], want NaN []", got, flags)
	}

	// Quantize to a pattern exponent.
	got, flags = run(t, &Context{Precision: 10}, func(m *Math[Dec], ctx *Context) (Dec, error) {
		return m.Quantize(MustParseDec("1.23"), MustParseDec("1.000"), ctx)
	})
	if got != "1.230" || flags != 0 {
		t.Errorf("Quantize(1.23, 1.000) = %q [%v], want 1.230 []", got, flags)
	}

	// Pi demands an explicit context.
	if _, err := m.Pi(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("Pi(nil) error = %v, want ErrNilContext", err)
	}
}

func TestMath_CmpIgnoresContext(t *testing.T) {
	m := DecMath()
	// Cmp runs on the full engine and takes no context at all, so the
	// simplified flag cannot influence ordering.
	r, err := m.Cmp(MustParseDec("1.0"), MustParseDec("1.00"))
	if err != nil || r.String() != "0" {
		t.Errorf("Cmp(1.0, 1.00) = %q, %v, want 0", r, err)
	}
	r, err = m.Cmp(MustParseDec("-2"), MustParseDec("3"))
	if err != nil || r.String() != "-1" {
		t.Errorf("Cmp(-2, 3) = %q, %v, want -1", r, err)
	}
}

func TestMath_CmpTotalOrder(t *testing.T) {
	// Total ordering, smallest first.
	ordered := []string{
		"-NaN2", "-NaN", "-sNaN", "-Infinity", "-1E+3", "-1", "-1.0",
		"-0.1", "-0", "0.00", "0", "1.0", "1", "1E+3",
		"Infinity", "sNaN", "NaN", "NaN2",
	}
	m := DecMath()
	for i, si := range ordered {
		for j, sj := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			got := m.CmpTotal(MustParseDec(si), MustParseDec(sj))
			if got != want {
				t.Errorf("CmpTotal(%q, %q) = %d, want %d", si, sj, got, want)
			}
		}
	}
}

func TestMath_PlusIdempotent(t *testing.T) {
	ctx := &Context{Precision: 5}
	m := DecMath()
	for _, s := range []string{"0", "-0", "1.23456789", "-987654321", "1E+10", "7.5"} {
		once, err := m.Plus(MustParseDec(s), ctx)
		if err != nil {
			t.Fatalf("Plus(%q) failed: %v", s, err)
		}
		twice, err := m.Plus(once, ctx)
		if err != nil {
			t.Fatalf("Plus(Plus(%q)) failed: %v", s, err)
		}
		if m.CmpTotal(once, twice) != 0 {
			t.Errorf("Plus(Plus(%q)) = %q, want %q", s, twice, once)
		}
	}
}

func TestMath_QuantizeReduceRoundTrip(t *testing.T) {
	ctx := &Context{Precision: 10}
	m := DecMath()
	x := MustParseDec("1.2345")
	pattern := MustParseDec("1.00")
	q, err := m.Quantize(x, pattern, ctx)
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}
	r, err := m.Reduce(q, ctx)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	cmp, err := m.Cmp(r, MustParseDec("1.23"))
	if err != nil || !cmp.IsZero() {
		t.Errorf("Reduce(Quantize(1.2345, 1.00)) = %q, want 1.23", r)
	}
}

func TestMath_CopySign(t *testing.T) {
	tests := []struct {
		x, y, want string
	}{
		{"1.23", "-5", "-1.23"},
		{"-1.23", "5", "1.23"},
		{"0", "-1", "-0"},
		{"Infinity", "-0", "-Infinity"},
		{"NaN7", "-1", "-NaN7"},
		{"-sNaN7", "1", "sNaN7"},
	}
	m := DecMath()
	for _, tt := range tests {
		got := m.CopySign(MustParseDec(tt.x), MustParseDec(tt.y))
		if got.String() != tt.want {
			t.Errorf("CopySign(%q, %q) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMath_MustOps(t *testing.T) {
	m := DecMath()
	if got := m.MustAdd(MustParseDec("1"), MustParseDec("2"), nil); got.String() != "3" {
		t.Errorf("MustAdd(1, 2) = %q, want 3", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustQuo(1, 3, nil) did not panic")
		}
	}()
	m.MustQuo(MustParseDec("1"), MustParseDec("3"), nil)
}
