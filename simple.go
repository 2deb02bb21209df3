package radix

import "math/big"

// fnum is the unpacked fast form of a finite operand.
type fnum struct {
	neg  bool
	coef fint
	exp  int64
}

// simpleMath is the bounded fast path. It handles finite operands whose
// coefficients fit a machine word and whose results are exact under the
// context, and delegates everything else to the full engine, so the two
// engines agree wherever both apply.
type simpleMath[T any] struct {
	full *fullMath[T]
	pw   *fpow
}

func newSimpleMath[T any](full *fullMath[T]) *simpleMath[T] {
	return &simpleMath[T]{full: full, pw: newFpow(full.radix)}
}

// unpack extracts a finite operand onto the fast path. Specials and values
// outside the machine-word domain fail and are answered by delegation.
func (s *simpleMath[T]) unpack(x T) (fnum, bool) {
	if s.full.h.Kind(x) != Finite {
		return fnum{}, false
	}
	m := s.full.h.Mantissa(x)
	if !m.IsUint64() {
		return fnum{}, false
	}
	c := m.Uint64()
	if c > maxFint {
		return fnum{}, false
	}
	ex := s.full.h.Exponent(x)
	if !ex.IsInt64() {
		return fnum{}, false
	}
	return fnum{neg: s.full.h.Signbit(x), coef: fint(c), exp: ex.Int64()}, true
}

func (s *simpleMath[T]) pack(z fnum) T {
	return s.full.h.Finite(z.neg, new(big.Int).SetUint64(uint64(z.coef)), big.NewInt(z.exp))
}

// fits reports whether a result is exactly representable under the context
// with no conditions raised: digits within precision, adjusted exponent
// within the normal range.
func (s *simpleMath[T]) fits(z fnum, ctx *Context) bool {
	if p := ctx.prec(); p > 0 && s.pw.hasPrec(z.coef, p+1) {
		return false
	}
	if ctx.bounded() {
		if z.coef == 0 {
			return z.exp >= ctx.etiny() && z.exp <= ctx.emax()
		}
		adj := z.exp + int64(s.pw.prec(z.coef)) - 1
		if adj < ctx.emin() || adj > ctx.emax() {
			return false
		}
	}
	return true
}

// addF computes an exact signed sum on the fast path.
func (s *simpleMath[T]) addF(a, b fnum, ctx *Context) (fnum, bool) {
	if a.exp < b.exp {
		a, b = b, a
	}
	d := a.exp - b.exp
	if d > int64(len(s.pw.pows)) {
		return fnum{}, false
	}
	hi, ok := s.pw.lsh(a.coef, int(d))
	if !ok {
		return fnum{}, false
	}
	z := fnum{exp: b.exp}
	if a.neg == b.neg {
		c, ok := s.pw.add(hi, b.coef)
		if !ok {
			return fnum{}, false
		}
		z.neg, z.coef = a.neg, c
		return z, true
	}
	switch {
	case hi == b.coef:
		z.neg = ctx.mode() == ToNegativeInf
	case hi > b.coef:
		z.neg, z.coef = a.neg, hi-b.coef
	default:
		z.neg, z.coef = b.neg, b.coef-hi
	}
	return z, true
}

func (s *simpleMath[T]) addFast(x, y T, ctx *Context, negateY bool) (T, bool) {
	var zero T
	a, ok := s.unpack(x)
	if !ok {
		return zero, false
	}
	b, ok := s.unpack(y)
	if !ok {
		return zero, false
	}
	if negateY {
		b.neg = !b.neg
	}
	z, ok := s.addF(a, b, ctx)
	if !ok || !s.fits(z, ctx) {
		return zero, false
	}
	return s.pack(z), true
}

func (s *simpleMath[T]) Add(x, y T, ctx *Context) (T, error) {
	if z, ok := s.addFast(x, y, ctx, false); ok {
		return z, nil
	}
	return s.full.Add(x, y, ctx)
}

func (s *simpleMath[T]) Sub(x, y T, ctx *Context) (T, error) {
	if z, ok := s.addFast(x, y, ctx, true); ok {
		return z, nil
	}
	return s.full.Sub(x, y, ctx)
}

func (s *simpleMath[T]) AddEx(x, y T, ctx *Context, roundToOperandPrecision bool) (T, error) {
	if !roundToOperandPrecision || ctx.prec() > 0 {
		if z, ok := s.addFast(x, y, ctx, false); ok {
			return z, nil
		}
	}
	return s.full.AddEx(x, y, ctx, roundToOperandPrecision)
}

func (s *simpleMath[T]) Mul(x, y T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok {
		if b, ok := s.unpack(y); ok {
			if c, ok := s.pw.mul(a.coef, b.coef); ok {
				if exp, err := addExp(a.exp, b.exp); err == nil {
					z := fnum{neg: a.neg != b.neg, coef: c, exp: exp}
					if s.fits(z, ctx) {
						return s.pack(z), nil
					}
				}
			}
		}
	}
	return s.full.Mul(x, y, ctx)
}

func (s *simpleMath[T]) FMA(x, y, z T, ctx *Context) (T, error) {
	a, ok1 := s.unpack(x)
	b, ok2 := s.unpack(y)
	c, ok3 := s.unpack(z)
	if ok1 && ok2 && ok3 {
		if pc, ok := s.pw.mul(a.coef, b.coef); ok {
			if exp, err := addExp(a.exp, b.exp); err == nil {
				prod := fnum{neg: a.neg != b.neg, coef: pc, exp: exp}
				if r, ok := s.addF(prod, c, ctx); ok && s.fits(r, ctx) {
					return s.pack(r), nil
				}
			}
		}
	}
	return s.full.FMA(x, y, z, ctx)
}

func (s *simpleMath[T]) Quo(x, y T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok && a.coef != 0 {
		if b, ok := s.unpack(y); ok && b.coef != 0 {
			if q, ok := s.pw.quo(a.coef, b.coef); ok {
				z := fnum{neg: a.neg != b.neg, coef: q, exp: a.exp - b.exp}
				if s.fits(z, ctx) {
					return s.pack(z), nil
				}
			}
		}
	}
	return s.full.Quo(x, y, ctx)
}

// cmpF compares two fast operands, failing when alignment overflows and the
// adjusted exponents tie.
func (s *simpleMath[T]) cmpF(a, b fnum) (int, bool) {
	sa, sb := 0, 0
	if a.coef != 0 {
		sa = 1
		if a.neg {
			sa = -1
		}
	}
	if b.coef != 0 {
		sb = 1
		if b.neg {
			sb = -1
		}
	}
	switch {
	case sa < sb:
		return -1, true
	case sa > sb:
		return 1, true
	case sa == 0:
		return 0, true
	}
	adjA := a.exp + int64(s.pw.prec(a.coef)) - 1
	adjB := b.exp + int64(s.pw.prec(b.coef)) - 1
	r := 0
	switch {
	case adjA < adjB:
		r = -1
	case adjA > adjB:
		r = 1
	default:
		x, y := a, b
		if x.exp < y.exp {
			x, y = y, x
		}
		d := x.exp - y.exp
		if d > int64(len(s.pw.pows)) {
			return 0, false
		}
		hi, ok := s.pw.lsh(x.coef, int(d))
		if !ok {
			return 0, false
		}
		switch {
		case hi < y.coef:
			r = -1
		case hi > y.coef:
			r = 1
		}
		if x.coef != a.coef {
			r = -r
		}
	}
	if sa < 0 {
		return -r, true
	}
	return r, true
}

func (s *simpleMath[T]) CmpWithContext(x, y T, treatQuietAsSignaling bool, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok {
		if b, ok := s.unpack(y); ok {
			if r, ok := s.cmpF(a, b); ok {
				return s.full.h.Finite(r < 0, big.NewInt(int64(abs(r))), bigZero), nil
			}
		}
	}
	return s.full.CmpWithContext(x, y, treatQuietAsSignaling, ctx)
}

func (s *simpleMath[T]) minmaxFast(x, y T, ctx *Context, pickMax, byMagnitude bool) (T, bool) {
	var zero T
	a, ok := s.unpack(x)
	if !ok {
		return zero, false
	}
	b, ok := s.unpack(y)
	if !ok {
		return zero, false
	}
	ca, cb := a, b
	if byMagnitude {
		ca.neg, cb.neg = false, false
	}
	r, ok := s.cmpF(ca, cb)
	if !ok {
		return zero, false
	}
	if r == 0 {
		r = s.full.CmpTotal(x, y)
	}
	pick, pn := a, x
	if (r < 0) == pickMax {
		pick, pn = b, y
	}
	if !s.fits(pick, ctx) {
		return zero, false
	}
	return pn, true
}

func (s *simpleMath[T]) Min(x, y T, ctx *Context) (T, error) {
	if z, ok := s.minmaxFast(x, y, ctx, false, false); ok {
		return z, nil
	}
	return s.full.Min(x, y, ctx)
}

func (s *simpleMath[T]) Max(x, y T, ctx *Context) (T, error) {
	if z, ok := s.minmaxFast(x, y, ctx, true, false); ok {
		return z, nil
	}
	return s.full.Max(x, y, ctx)
}

func (s *simpleMath[T]) MinMagnitude(x, y T, ctx *Context) (T, error) {
	if z, ok := s.minmaxFast(x, y, ctx, false, true); ok {
		return z, nil
	}
	return s.full.MinMagnitude(x, y, ctx)
}

func (s *simpleMath[T]) MaxMagnitude(x, y T, ctx *Context) (T, error) {
	if z, ok := s.minmaxFast(x, y, ctx, true, true); ok {
		return z, nil
	}
	return s.full.MaxMagnitude(x, y, ctx)
}

// zeroSign applies the sign rule for zero results of sign operations:
// a negative zero turns positive except under floor rounding.
func zeroSign(neg bool, ctx *Context) bool {
	return neg && ctx.mode() == ToNegativeInf
}

func (s *simpleMath[T]) Neg(x T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok {
		a.neg = !a.neg
		if a.coef == 0 {
			a.neg = zeroSign(a.neg, ctx)
		}
		if s.fits(a, ctx) {
			return s.pack(a), nil
		}
	}
	return s.full.Neg(x, ctx)
}

func (s *simpleMath[T]) Abs(x T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok {
		a.neg = false
		if s.fits(a, ctx) {
			return s.pack(a), nil
		}
	}
	return s.full.Abs(x, ctx)
}

func (s *simpleMath[T]) Plus(x T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok {
		if a.coef == 0 {
			a.neg = zeroSign(a.neg, ctx)
		}
		if s.fits(a, ctx) {
			return s.pack(a), nil
		}
	}
	return s.full.Plus(x, ctx)
}

func (s *simpleMath[T]) Quantize(x, y T, ctx *Context) (T, error) {
	a, ok1 := s.unpack(x)
	b, ok2 := s.unpack(y)
	if ok1 && ok2 {
		if z, cond, ok := s.quantizeFast(a, b.exp, ctx); ok {
			if err := ctx.raise(cond); err != nil {
				var zero T
				return zero, err
			}
			return s.pack(z), nil
		}
	}
	return s.full.Quantize(x, y, ctx)
}

// quantizeFast rescales exactly to the target exponent. Anything that would
// change the value or lose digits is left to the full engine. An exact
// right shift still discards digits, so it reports Rounded.
func (s *simpleMath[T]) quantizeFast(a fnum, t int64, ctx *Context) (fnum, Condition, bool) {
	if ctx.bounded() && (t > ctx.emax() || t < ctx.etiny()) {
		return fnum{}, 0, false
	}
	var cond Condition
	z := fnum{neg: a.neg, exp: t}
	diff := t - a.exp
	switch {
	case a.coef == 0:
	case diff == 0:
		z.coef = a.coef
	case diff < 0:
		if -diff > int64(len(s.pw.pows)) {
			return fnum{}, 0, false
		}
		c, ok := s.pw.lsh(a.coef, int(-diff))
		if !ok {
			return fnum{}, 0, false
		}
		z.coef = c
	default:
		if diff > int64(len(s.pw.pows)) {
			return fnum{}, 0, false
		}
		c, ok := s.pw.rshExact(a.coef, int(diff))
		if !ok {
			return fnum{}, 0, false
		}
		z.coef = c
		cond = Rounded
	}
	if p := ctx.prec(); p > 0 && s.pw.hasPrec(z.coef, p+1) {
		return fnum{}, 0, false
	}
	if ctx.bounded() && z.coef != 0 {
		if adj := z.exp + int64(s.pw.prec(z.coef)) - 1; adj > ctx.emax() {
			return fnum{}, 0, false
		}
	}
	return z, cond, true
}

func (s *simpleMath[T]) Reduce(x T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok {
		if p := ctx.prec(); p == 0 || !s.pw.hasPrec(a.coef, p+1) {
			if a.coef == 0 {
				a.exp = 0
			} else {
				shift := s.pw.ntz(a.coef)
				if ctx.bounded() {
					if room := ctx.emax() - a.exp; room < int64(shift) {
						shift = int(room)
					}
				}
				if shift > 0 {
					a.coef /= s.pw.pows[shift]
					a.exp += int64(shift)
				}
			}
			if s.fits(a, ctx) {
				return s.pack(a), nil
			}
		}
	}
	return s.full.Reduce(x, ctx)
}

func (s *simpleMath[T]) RoundToPrecision(x T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok && s.fits(a, ctx) {
		return s.pack(a), nil
	}
	return s.full.RoundToPrecision(x, ctx)
}

func (s *simpleMath[T]) RoundAfterConversion(x T, ctx *Context) (T, error) {
	if a, ok := s.unpack(x); ok && s.fits(a, ctx) {
		return s.pack(a), nil
	}
	return s.full.RoundAfterConversion(x, ctx)
}

// The remaining operations have no meaningful fast path and delegate
// outright.

func (s *simpleMath[T]) QuoToExponent(x, y T, desired *big.Int, ctx *Context) (T, error) {
	return s.full.QuoToExponent(x, y, desired, ctx)
}

func (s *simpleMath[T]) QuoIntZeroScale(x, y T, ctx *Context) (T, error) {
	return s.full.QuoIntZeroScale(x, y, ctx)
}

func (s *simpleMath[T]) QuoIntNaturalScale(x, y T, ctx *Context) (T, error) {
	return s.full.QuoIntNaturalScale(x, y, ctx)
}

func (s *simpleMath[T]) Rem(x, y T, ctx *Context) (T, error) {
	return s.full.Rem(x, y, ctx)
}

func (s *simpleMath[T]) RemNear(x, y T, ctx *Context) (T, error) {
	return s.full.RemNear(x, y, ctx)
}

func (s *simpleMath[T]) RoundToExponentExact(x T, exp *big.Int, ctx *Context) (T, error) {
	return s.full.RoundToExponentExact(x, exp, ctx)
}

func (s *simpleMath[T]) RoundToExponentSimple(x T, exp *big.Int, ctx *Context) (T, error) {
	return s.full.RoundToExponentSimple(x, exp, ctx)
}

func (s *simpleMath[T]) RoundToExponentNoRoundedFlag(x T, exp *big.Int, ctx *Context) (T, error) {
	return s.full.RoundToExponentNoRoundedFlag(x, exp, ctx)
}

func (s *simpleMath[T]) RoundToBinaryPrecision(x T, ctx *Context) (T, error) {
	return s.full.RoundToBinaryPrecision(x, ctx)
}

func (s *simpleMath[T]) NextPlus(x T, ctx *Context) (T, error) {
	return s.full.NextPlus(x, ctx)
}

func (s *simpleMath[T]) NextMinus(x T, ctx *Context) (T, error) {
	return s.full.NextMinus(x, ctx)
}

func (s *simpleMath[T]) NextToward(x, y T, ctx *Context) (T, error) {
	return s.full.NextToward(x, y, ctx)
}

func (s *simpleMath[T]) Sqrt(x T, ctx *Context) (T, error) {
	return s.full.Sqrt(x, ctx)
}

func (s *simpleMath[T]) Exp(x T, ctx *Context) (T, error) {
	return s.full.Exp(x, ctx)
}

func (s *simpleMath[T]) Ln(x T, ctx *Context) (T, error) {
	return s.full.Ln(x, ctx)
}

func (s *simpleMath[T]) Log10(x T, ctx *Context) (T, error) {
	return s.full.Log10(x, ctx)
}

func (s *simpleMath[T]) Power(x, y T, ctx *Context) (T, error) {
	return s.full.Power(x, y, ctx)
}

func (s *simpleMath[T]) Pi(ctx *Context) (T, error) {
	return s.full.Pi(ctx)
}
