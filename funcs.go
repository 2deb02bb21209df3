package radix

import (
	"math/big"
)

// maxPowerInt bounds the exponent handled by the integer power ladder.
// Larger integer exponents go through the exp/ln path.
const maxPowerInt = 1 << 20

// maxFuncMagnitude bounds operand magnitudes accepted by Exp under an
// unbounded exponent range, where the result size grows with the operand.
const maxFuncMagnitude = 1 << 22

func digitsInt64(n int64, radix int) int {
	if n < 0 {
		n = -n
	}
	for d := 1; ; d++ {
		n /= int64(radix)
		if n == 0 {
			return d
		}
	}
}

// exceedsAbs reports whether |a| > bound. bound must be positive.
func (e *fullMath[T]) exceedsAbs(a num, bound int64) bool {
	if a.coef.Sign() == 0 {
		return false
	}
	d := digits(a.coef, e.radix)
	adj := a.exp + int64(d) - 1
	if adj >= 64 {
		return true
	}
	if adj < 0 {
		return false
	}
	// |a| < radix^(adj+1) <= 2^(6(adj+1)); skip the exact compare when
	// that ceiling already fits under the bound.
	if b := (adj + 1) * 6; b < 63 && int64(1)<<uint(b) <= bound {
		return false
	}
	v := new(big.Int)
	if a.exp >= 0 {
		v.Mul(a.coef, bpow(e.radix, int(a.exp)))
	} else {
		v.Quo(a.coef, bpow(e.radix, int(-a.exp)))
	}
	return v.Cmp(big.NewInt(bound)) > 0
}

// machinAtan computes atan(1/k) scaled by s.
func machinAtan(k int64, s *big.Int) *big.Int {
	term := new(big.Int).Quo(s, big.NewInt(k))
	sum := new(big.Int).Set(term)
	k2 := big.NewInt(k * k)
	t := new(big.Int)
	for n := int64(3); ; n += 2 {
		term.Quo(term, k2)
		if term.Sign() == 0 {
			break
		}
		t.Quo(term, big.NewInt(n))
		if t.Sign() == 0 {
			break
		}
		if (n/2)%2 == 1 {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
	}
	return sum
}

// piFixed returns pi scaled by radix^w, serving shorter requests from the
// cached longest computation.
func (e *fullMath[T]) piFixed(w int) *big.Int {
	e.mu.Lock()
	if e.piVal != nil && e.piScale >= w {
		v := new(big.Int).Quo(e.piVal, bpow(e.radix, e.piScale-w))
		e.mu.Unlock()
		return v
	}
	e.mu.Unlock()
	// Machin's formula: pi = 16 atan(1/5) - 4 atan(1/239).
	g := 5
	s := bpow(e.radix, w+g)
	pi := new(big.Int).Mul(machinAtan(5, s), big.NewInt(16))
	pi.Sub(pi, new(big.Int).Mul(machinAtan(239, s), big.NewInt(4)))
	pi.Quo(pi, bpow(e.radix, g))
	e.mu.Lock()
	if e.piVal == nil || e.piScale < w {
		e.piVal = new(big.Int).Set(pi)
		e.piScale = w
	}
	e.mu.Unlock()
	return pi
}

// Pi computes pi rounded to the context precision. The context must be
// non-nil with a finite precision; there is no meaningful default width for
// an irrational constant.
func (e *fullMath[T]) Pi(ctx *Context) (T, error) {
	var zero T
	if ctx == nil {
		return zero, ErrNilContext
	}
	p := ctx.prec()
	if p == 0 {
		return zero, ErrNonTerminating
	}
	w := p + 2
	z := num{coef: e.piFixed(w), exp: -int64(w)}
	return e.finish(z, ctx, Inexact|Rounded)
}

// lnFixed computes ln(v) scaled by radix^w for v = V/radix^w, 0 < v <= 1.
func (e *fullMath[T]) lnFixed(v *big.Int, w int) *big.Int {
	s := bpow(e.radix, w)
	x := new(big.Int).Set(v)
	// Square-root reductions pull v toward 1, halving ln(v) each step.
	k := 0
	lim := new(big.Int).Quo(s, big.NewInt(32))
	diff := new(big.Int)
	for {
		diff.Sub(s, x)
		if diff.CmpAbs(lim) <= 0 {
			break
		}
		x.Mul(x, s)
		x.Sqrt(x)
		k++
	}
	// atanh series: ln(v) = 2^(k+1) (u + u^3/3 + u^5/5 + ...) with
	// u = (x-s)/(x+s).
	den := new(big.Int).Add(x, s)
	u := new(big.Int).Sub(x, s)
	u.Mul(u, s)
	u.Quo(u, den)
	sum := new(big.Int).Set(u)
	u2 := new(big.Int).Mul(u, u)
	u2.Quo(u2, s)
	term := new(big.Int).Set(u)
	t := new(big.Int)
	for n := int64(3); ; n += 2 {
		term.Mul(term, u2)
		term.Quo(term, s)
		if term.Sign() == 0 {
			break
		}
		t.Quo(term, big.NewInt(n))
		if t.Sign() == 0 {
			break
		}
		sum.Add(sum, t)
	}
	return sum.Mul(sum, new(big.Int).Lsh(bigOne, uint(k+1)))
}

// lnRadixFixed returns ln(radix) scaled by radix^w, cached.
func (e *fullMath[T]) lnRadixFixed(w int) *big.Int {
	e.mu.Lock()
	if e.lnrVal != nil && e.lnrScale >= w {
		v := new(big.Int).Quo(e.lnrVal, bpow(e.radix, e.lnrScale-w))
		e.mu.Unlock()
		return v
	}
	e.mu.Unlock()
	// ln(radix) = -ln(1/radix).
	v := e.lnFixed(bpow(e.radix, w-1), w)
	v.Neg(v)
	e.mu.Lock()
	if e.lnrVal == nil || e.lnrScale < w {
		e.lnrVal = new(big.Int).Set(v)
		e.lnrScale = w
	}
	e.mu.Unlock()
	return v
}

// lnTen returns ln(10) scaled by radix^w.
func (e *fullMath[T]) lnTen(w int) *big.Int {
	if e.radix == 10 {
		return e.lnRadixFixed(w)
	}
	// ln(10) = ln(10/radix^m) + m ln(radix) with radix^m >= 10.
	m := 1
	for bpow(e.radix, m).Cmp(big.NewInt(10)) < 0 {
		m++
	}
	v := new(big.Int).Mul(big.NewInt(10), bpow(e.radix, w))
	v.Quo(v, bpow(e.radix, m))
	ln := e.lnFixed(v, w)
	lnr := new(big.Int).Mul(big.NewInt(int64(m)), e.lnRadixFixed(w))
	return ln.Add(ln, lnr)
}

// isOne reports whether a finite operand is exactly one.
func (e *fullMath[T]) isOne(a num) bool {
	b := num{coef: new(big.Int).Set(a.coef), exp: a.exp}
	e.stripToward(&b, int64(maxAlignDigits))
	return b.exp == 0 && b.coef.Cmp(bigOne) == 0
}

// lnTotal computes ln(a) for a positive finite operand as a scaled integer,
// retrying with a wider scale when cancellation near 1 starves the result
// of significant digits.
func (e *fullMath[T]) lnTotal(a num, p int) (total *big.Int, w int) {
	d := digits(a.coef, e.radix)
	e0 := a.exp + int64(d)
	w = p + 15 + digitsInt64(e0, e.radix)
	for {
		v := new(big.Int)
		if sh := w - d; sh >= 0 {
			v.Mul(a.coef, bpow(e.radix, sh))
		} else {
			v.Quo(a.coef, bpow(e.radix, -sh))
		}
		total = e.lnFixed(v, w)
		if e0 != 0 {
			lnr := new(big.Int).Mul(big.NewInt(e0), e.lnRadixFixed(w))
			total.Add(total, lnr)
		}
		if total.Sign() != 0 && digits(total, e.radix) >= p+7 {
			return total, w
		}
		deficit := p + 10
		if total.Sign() != 0 {
			deficit = p + 10 - digits(total, e.radix)
		}
		w += deficit
	}
}

func (e *fullMath[T]) Ln(x T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		if e.h.Signbit(x) {
			return e.invalidNaN(ctx)
		}
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	if a.coef.Sign() == 0 {
		return e.h.Infinity(true), nil
	}
	if a.neg {
		return e.invalidNaN(ctx)
	}
	if e.isOne(a) {
		return e.finish(zeroNum(0), ctx, 0)
	}
	p := ctx.prec()
	if p == 0 {
		return zero, ErrNonTerminating
	}
	total, w := e.lnTotal(a, p)
	z := num{neg: total.Sign() < 0, coef: new(big.Int).Abs(total), exp: -int64(w)}
	return e.finish(z, ctx, Inexact|Rounded)
}

// pow10Of reports n when a positive finite operand equals exactly 10^n.
func (e *fullMath[T]) pow10Of(a num) (int64, bool) {
	b := num{coef: new(big.Int).Set(a.coef), exp: a.exp}
	e.stripToward(&b, int64(maxAlignDigits))
	ten := big.NewInt(10)
	rem := new(big.Int)
	if b.exp >= 0 {
		if int64(digits(b.coef, e.radix))+b.exp > 1<<12 {
			return 0, false
		}
		v := new(big.Int).Mul(b.coef, bpow(e.radix, int(b.exp)))
		n := int64(0)
		for v.Cmp(bigOne) != 0 {
			v.QuoRem(v, ten, rem)
			if rem.Sign() != 0 {
				return 0, false
			}
			n++
		}
		return n, true
	}
	// a = coef/radix^k is 10^-n when radix^k/coef is a power of ten.
	k := -b.exp
	if k > 1<<12 {
		return 0, false
	}
	q, r := new(big.Int).QuoRem(bpow(e.radix, int(k)), b.coef, new(big.Int))
	if r.Sign() != 0 {
		return 0, false
	}
	n := int64(0)
	for q.Cmp(bigOne) != 0 {
		q.QuoRem(q, ten, rem)
		if rem.Sign() != 0 {
			return 0, false
		}
		n++
	}
	return -n, true
}

func (e *fullMath[T]) Log10(x T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		if e.h.Signbit(x) {
			return e.invalidNaN(ctx)
		}
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	if a.coef.Sign() == 0 {
		return e.h.Infinity(true), nil
	}
	if a.neg {
		return e.invalidNaN(ctx)
	}
	if n, ok := e.pow10Of(a); ok {
		z := num{neg: n < 0, coef: big.NewInt(n), exp: 0}
		z.coef.Abs(z.coef)
		return e.finish(z, ctx, 0)
	}
	p := ctx.prec()
	if p == 0 {
		return zero, ErrNonTerminating
	}
	total, w := e.lnTotal(a, p)
	r := new(big.Int).Mul(total, bpow(e.radix, w))
	r.Quo(r, e.lnTen(w))
	z := num{neg: r.Sign() < 0, coef: r.Abs(r), exp: -int64(w)}
	return e.finish(z, ctx, Inexact|Rounded)
}

func (e *fullMath[T]) Exp(x T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		if e.h.Signbit(x) {
			return e.finishRounded(zeroNum(0), ctx, 0)
		}
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	if a.coef.Sign() == 0 {
		one := num{coef: big.NewInt(1)}
		return e.finish(one, ctx, 0)
	}
	p := ctx.prec()
	if p == 0 {
		return zero, ErrNonTerminating
	}
	if ctx.bounded() {
		// Far outside the representable range the result is a plain
		// overflow or underflow; skip the series.
		if !a.neg && e.exceedsAbs(a, 4*(ctx.emax()+2)) {
			return e.finishRounded(num{coef: big.NewInt(1), exp: ctx.emax() + 1}, ctx, 0)
		}
		et := ctx.etiny()
		if et < 0 {
			et = -et
		}
		if a.neg && e.exceedsAbs(a, 4*(et+2)+8) {
			return e.finishRounded(num{coef: big.NewInt(1), exp: ctx.etiny() - 2}, ctx, 0)
		}
	} else if e.exceedsAbs(a, maxFuncMagnitude) {
		return zero, ErrExponentRange
	}
	z := e.expNum(a, p)
	return e.finish(z, ctx, Inexact|Rounded)
}

// expNum computes exp(a) for a non-zero finite operand whose magnitude has
// been bounded by the caller.
func (e *fullMath[T]) expNum(a num, p int) num {
	adj := a.exp + int64(digits(a.coef, e.radix)) - 1
	// Halve the argument k times until it is below 1/8, then square the
	// series result k times back. radix <= 36 < 2^6 bounds the estimate.
	k := 3
	if adj >= 0 {
		k += 6 * (int(adj) + 1)
	}
	w := p + k + 15
	s := bpow(e.radix, w)
	u := new(big.Int)
	if sh := a.exp + int64(w); sh >= 0 {
		u.Mul(a.coef, bpow(e.radix, int(sh)))
	} else {
		u.Quo(a.coef, bpow(e.radix, int(-sh)))
	}
	u.Rsh(u, uint(k))
	if u.Sign() == 0 {
		// Keep a sticky digit so directed rounding sees a value
		// strictly above (or below, for negative arguments) one.
		u.SetInt64(1)
	}
	// Taylor series of exp(u/s).
	sum := new(big.Int).Add(s, u)
	term := new(big.Int).Set(u)
	for i := int64(2); ; i++ {
		term.Mul(term, u)
		term.Quo(term, s)
		term.Quo(term, big.NewInt(i))
		if term.Sign() == 0 {
			break
		}
		sum.Add(sum, term)
	}
	// Square back, renormalizing to keep the mantissa near w digits.
	var shifted int64
	for i := 0; i < k; i++ {
		sum.Mul(sum, sum)
		sum.Quo(sum, s)
		if d := digits(sum, e.radix); d > w+2 {
			sum.Quo(sum, bpow(e.radix, d-w-2))
			shifted += int64(d - w - 2)
		}
	}
	if !a.neg {
		return num{coef: sum, exp: -int64(w) + shifted}
	}
	// exp(-v) = 1/exp(v).
	r := new(big.Int).Quo(bpow(e.radix, 2*w+5), sum)
	return num{coef: r, exp: -int64(w) - 5 - shifted}
}

// floorDiv2 halves an exponent, rounding toward negative infinity.
func floorDiv2(x int64) int64 {
	if x < 0 && x&1 != 0 {
		return x/2 - 1
	}
	return x / 2
}

// Sqrt computes the square root of x. Following the usual convention for
// this operation, halfway cases round to even regardless of the context
// rounding mode.
func (e *fullMath[T]) Sqrt(x T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		if e.h.Signbit(x) {
			return e.invalidNaN(ctx)
		}
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	ideal := floorDiv2(a.exp)
	if a.coef.Sign() == 0 {
		z := zeroNum(ideal)
		z.neg = a.neg
		return e.finishRounded(z, ctx, 0)
	}
	if a.neg {
		return e.invalidNaN(ctx)
	}
	p := ctx.prec()
	c := num{coef: new(big.Int).Set(a.coef), exp: a.exp}
	if p == 0 {
		// Exact results only. An exponent parity fix keeps the value
		// while making the exponent halvable.
		if c.exp&1 != 0 {
			c.coef.Mul(c.coef, bpow(e.radix, 1))
			c.exp--
		}
		s := new(big.Int).Sqrt(c.coef)
		if v := new(big.Int).Mul(s, s); v.Cmp(c.coef) != 0 {
			return zero, ErrNonTerminating
		}
		z := num{coef: s, exp: c.exp / 2}
		return e.finish(z, ctx, 0)
	}
	// Widen the mantissa to at least 2p+2 digits with an even exponent so
	// the integer root carries p+1 digits plus a remainder.
	d := digits(c.coef, e.radix)
	shift := 2*p + 2 - d
	if shift < 0 {
		shift = 0
	}
	if (c.exp-int64(shift))&1 != 0 {
		shift++
	}
	if shift > 0 {
		c.coef.Mul(c.coef, bpow(e.radix, shift))
		c.exp -= int64(shift)
	}
	s := new(big.Int).Sqrt(c.coef)
	rem := new(big.Int).Mul(s, s)
	rem.Sub(c.coef, rem)
	z := num{coef: s, exp: c.exp / 2}
	exact := rem.Sign() == 0
	var cond Condition
	if ds := digits(s, e.radix); ds > p {
		sticky := 0
		if !exact {
			sticky = 1
		}
		// Discarding only the widening zeros of an exact root is not a
		// rounding, so the flags follow the inexactness of the true root.
		if e.shiftRound(&z, ds-p, ToNearestEven, sticky) {
			cond = Rounded | Inexact
		}
		if digits(z.coef, e.radix) > p {
			z.coef.Quo(z.coef, bpow(e.radix, 1))
			z.exp++
		}
	} else if !exact {
		cond = Rounded | Inexact
	}
	if cond&Inexact == 0 {
		e.stripToward(&z, ideal)
	}
	return e.finishRounded(z, ctx, cond)
}

// mulRoundNum multiplies two finite operands, rounding the product back to
// w digits when w is positive. Reports whether digits were lost.
func (e *fullMath[T]) mulRoundNum(a, b num, w int) (num, bool) {
	z := num{neg: a.neg != b.neg, coef: new(big.Int).Mul(a.coef, b.coef), exp: a.exp + b.exp}
	if w <= 0 {
		return z, false
	}
	if d := digits(z.coef, e.radix); d > w {
		return z, e.shiftRound(&z, d-w, ToNearestEven, 0)
	}
	return z, false
}

// intPow raises a to a positive integer power by squaring, working at w
// digits when w is positive and exactly otherwise.
func (e *fullMath[T]) intPow(a num, n int64, w int) (num, bool, error) {
	if ae := a.exp; ae != 0 {
		if ae < 0 {
			ae = -ae
		}
		if ae > (int64(1)<<62)/(n+1) {
			return num{}, false, ErrExponentRange
		}
	}
	if w <= 0 {
		if int64(digits(a.coef, e.radix))*n > maxAlignDigits {
			return num{}, false, ErrExponentRange
		}
	}
	z := num{coef: big.NewInt(1)}
	base := num{neg: a.neg, coef: new(big.Int).Set(a.coef), exp: a.exp}
	inexact := false
	for n > 0 {
		if n&1 == 1 {
			var ix bool
			z, ix = e.mulRoundNum(z, base, w)
			inexact = inexact || ix
		}
		n >>= 1
		if n > 0 {
			var ix bool
			base, ix = e.mulRoundNum(base, base, w)
			inexact = inexact || ix
		}
	}
	return z, inexact, nil
}

// recipNum computes 1/a to w digits.
func (e *fullMath[T]) recipNum(a num, w int) (num, bool) {
	d := digits(a.coef, e.radix)
	q, rem := new(big.Int).QuoRem(bpow(e.radix, w+d), a.coef, new(big.Int))
	z := num{neg: a.neg, coef: q, exp: -a.exp - int64(w+d)}
	return z, rem.Sign() != 0
}

// intInfo classifies a finite operand as an integer: whether it is one,
// whether it fits the power ladder, its int64 value when it does, and its
// parity.
func (e *fullMath[T]) intInfo(b num) (n int64, isInt, fits, odd bool) {
	z := num{coef: new(big.Int).Set(b.coef), exp: b.exp}
	if z.coef.Sign() == 0 {
		return 0, true, true, false
	}
	if z.exp < 0 {
		e.stripToward(&z, 0)
		if z.exp < 0 {
			return 0, false, false, false
		}
	}
	isInt = true
	if z.exp == 0 {
		odd = z.coef.Bit(0) == 1
	} else {
		// coef * radix^exp with exp >= 1 is even for an even radix.
		odd = e.radix%2 == 1 && z.coef.Bit(0) == 1
	}
	if int64(digits(z.coef, e.radix))+z.exp > 21 {
		return 0, true, false, odd
	}
	v := new(big.Int).Mul(z.coef, bpow(e.radix, int(z.exp)))
	if !v.IsInt64() || v.Int64() > maxPowerInt {
		return 0, true, false, odd
	}
	return v.Int64(), true, true, odd
}

func satInt32(v int64) int32 {
	const m = int64(^uint32(0) >> 1)
	if v > m {
		return int32(m)
	}
	if v < -m-1 {
		return int32(-m - 1)
	}
	return int32(v)
}

// Power computes x raised to y.
func (e *fullMath[T]) Power(x, y T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	negX := e.h.Signbit(x)
	if ky == Finite && e.h.Mantissa(y).Sign() == 0 {
		if kx == Finite && e.h.Mantissa(x).Sign() == 0 {
			return e.invalidNaN(ctx)
		}
		return e.finish(num{coef: big.NewInt(1)}, ctx, 0)
	}
	if ky == Infinite {
		negY := e.h.Signbit(y)
		if kx == Finite && e.h.Mantissa(x).Sign() == 0 {
			if negY {
				if err := ctx.raise(DivisionByZero); err != nil {
					return zero, err
				}
				return e.h.Infinity(false), nil
			}
			return e.finishRounded(zeroNum(0), ctx, 0)
		}
		if negX {
			return e.invalidNaN(ctx)
		}
		var cmpOne int
		if kx == Infinite {
			cmpOne = 1
		} else {
			a, err := e.operand(x)
			if err != nil {
				return zero, err
			}
			cmpOne = e.cmpNum(a, num{coef: bigOne})
		}
		switch {
		case cmpOne == 0:
			return e.invalidNaN(ctx)
		case (cmpOne > 0) != negY:
			return e.h.Infinity(false), nil
		default:
			return e.finishRounded(zeroNum(0), ctx, 0)
		}
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	n, isInt, fits, odd := e.intInfo(b)
	negY := b.neg
	if kx == Infinite {
		if !isInt && negX {
			return e.invalidNaN(ctx)
		}
		resNeg := negX && isInt && odd
		if negY {
			z := zeroNum(0)
			z.neg = resNeg
			return e.finishRounded(z, ctx, 0)
		}
		return e.h.Infinity(resNeg), nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	if a.coef.Sign() == 0 {
		resNeg := a.neg && isInt && odd
		if negY {
			if err := ctx.raise(DivisionByZero); err != nil {
				return zero, err
			}
			return e.h.Infinity(resNeg), nil
		}
		z := zeroNum(0)
		z.neg = resNeg
		return e.finishRounded(z, ctx, 0)
	}
	if a.neg && !isInt {
		return e.invalidNaN(ctx)
	}
	p := ctx.prec()
	if isInt && fits {
		if n < 0 {
			n = -n
		}
		if p == 0 {
			z, _, err := e.intPow(a, n, 0)
			if err != nil {
				return zero, err
			}
			if negY {
				q, exp, err := e.exactQuo(bigOne, z.coef, -z.exp)
				if err != nil {
					return zero, err
				}
				z = num{neg: z.neg, coef: q, exp: exp}
			}
			return e.finish(z, ctx, 0)
		}
		w := p + digitsInt64(n, e.radix) + 5
		z, inexact, err := e.intPow(a, n, w)
		if err != nil {
			return zero, err
		}
		if negY {
			var ix bool
			z, ix = e.recipNum(z, w)
			inexact = inexact || ix
		}
		if !inexact {
			// Exact results shed the widening zeros of the working scale.
			e.stripToward(&z, 0)
		}
		var cond Condition
		if inexact {
			cond = Inexact | Rounded
		}
		return e.finish(z, ctx, cond)
	}
	// Non-integer or outsized exponent: x^y = exp(y ln x).
	if p == 0 {
		return zero, ErrNonTerminating
	}
	resNeg := a.neg && odd
	ax := x
	if a.neg {
		ax = e.h.Finite(false, e.h.Mantissa(x), e.h.Exponent(x))
	}
	w := p + 12
	lnCtx := &Context{Precision: int32(w)}
	lnx, err := e.Ln(ax, lnCtx)
	if err != nil {
		return zero, err
	}
	prod, err := e.Mul(y, lnx, lnCtx)
	if err != nil {
		return zero, err
	}
	expCtx := &Context{Precision: int32(w)}
	if ctx.bounded() {
		expCtx.EMax = satInt32(ctx.emax() + 4*int64(w))
		expCtx.EMin = satInt32(ctx.emin() - 4*int64(w))
	}
	res, err := e.Exp(prod, expCtx)
	if err != nil {
		return zero, err
	}
	if e.h.Kind(res) == Infinite {
		if err := ctx.raise(Overflow | Inexact | Rounded); err != nil {
			return zero, err
		}
		return e.h.Infinity(resNeg), nil
	}
	r, err := e.operand(res)
	if err != nil {
		return zero, err
	}
	if r.coef.Sign() == 0 {
		// Underflowed even the widened scratch range.
		return e.finishRounded(num{neg: resNeg, coef: big.NewInt(1), exp: ctx.etiny() - 2}, ctx, 0)
	}
	r.neg = resNeg
	return e.finish(r, ctx, Inexact|Rounded)
}
