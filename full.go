package radix

import (
	"math/big"
	"sync"
)

// maxAlignDigits caps the number of padding digits produced while aligning
// operand exponents. Alignments beyond the cap raise InvalidOperation
// rather than attempting to materialize millions of digits.
const maxAlignDigits = 1 << 21

// num is the unpacked form of a finite operand. The coefficient is owned by
// the engine and safe to mutate.
type num struct {
	neg  bool
	coef *big.Int
	exp  int64
}

func zeroNum(exp int64) num {
	return num{coef: new(big.Int), exp: exp}
}

// fullMath implements every operation with complete general-arithmetic
// semantics: correct rounding to the context precision, exponent clamping,
// and exact flag and special-value behavior. It holds only the value
// representation capability and is safe for concurrent use.
type fullMath[T any] struct {
	h     Helper[T]
	radix int

	// Cached transcendental constants, scaled by radix^scale.
	mu       sync.Mutex
	piVal    *big.Int
	piScale  int
	lnrVal   *big.Int
	lnrScale int
}

func newFullMath[T any](h Helper[T]) *fullMath[T] {
	return &fullMath[T]{h: h, radix: h.Radix()}
}

// operand unpacks a finite value into a mutable num.
func (e *fullMath[T]) operand(x T) (num, error) {
	exp := e.h.Exponent(x)
	if !exp.IsInt64() {
		return num{}, ErrExponentRange
	}
	return num{
		neg:  e.h.Signbit(x),
		coef: new(big.Int).Set(e.h.Mantissa(x)),
		exp:  exp.Int64(),
	}, nil
}

func (e *fullMath[T]) make(z num) T {
	return e.h.Finite(z.neg, z.coef, big.NewInt(z.exp))
}

// quieted returns the quiet form of a NaN operand, raising InvalidOperation
// when it is signaling.
func (e *fullMath[T]) quieted(x T, ctx *Context) (T, error) {
	if e.h.Kind(x) == SignalingNaN {
		z := e.h.NaN(false, e.h.Signbit(x), e.h.Payload(x))
		if err := ctx.raise(InvalidOperation); err != nil {
			var zero T
			return zero, err
		}
		return z, nil
	}
	return x, nil
}

// invalidNaN raises InvalidOperation and returns a fresh quiet NaN.
func (e *fullMath[T]) invalidNaN(ctx *Context) (T, error) {
	if err := ctx.raise(InvalidOperation); err != nil {
		var zero T
		return zero, err
	}
	return e.h.NaN(false, false, nil), nil
}

// special1 handles NaN propagation for unary operations.
func (e *fullMath[T]) special1(x T, ctx *Context) (T, bool, error) {
	switch e.h.Kind(x) {
	case QuietNaN, SignalingNaN:
		z, err := e.quieted(x, ctx)
		return z, true, err
	}
	var zero T
	return zero, false, nil
}

// special2 handles NaN propagation for binary operations: a signaling NaN
// takes priority over a quiet one, and the left operand over the right.
func (e *fullMath[T]) special2(x, y T, ctx *Context) (T, bool, error) {
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	var zero T
	switch {
	case kx == SignalingNaN:
		z, err := e.quieted(x, ctx)
		return z, true, err
	case ky == SignalingNaN:
		z, err := e.quieted(y, ctx)
		return z, true, err
	case kx == QuietNaN:
		return x, true, nil
	case ky == QuietNaN:
		return y, true, nil
	}
	return zero, false, nil
}

// shiftRound divides z.coef by radix^shift, rounding per mode, and adds
// shift to the exponent. sticky, when non-zero, marks extra discarded
// magnitude strictly below the remainder's resolution; it promotes an exact
// halfway case to above half. Reports whether the discarded part was
// non-zero.
func (e *fullMath[T]) shiftRound(z *num, shift int, mode RoundingMode, sticky int) bool {
	if shift <= 0 {
		return sticky != 0
	}
	div := bpow(e.radix, shift)
	rem := getBig()
	z.coef.QuoRem(z.coef, div, rem)
	z.exp += int64(shift)
	if rem.Sign() == 0 && sticky == 0 {
		putBig(rem)
		return false
	}
	rem.Lsh(rem, 1)
	half := rem.Cmp(div)
	putBig(rem)
	if half == 0 && sticky != 0 {
		half = 1
	}
	if mode.needsInc(z.coef.Bit(0) == 1, half, !z.neg) {
		z.coef.Add(z.coef, bigOne)
	}
	return true
}

// roundPrec rounds z to at most p significant digits with a single
// rounding, returning the raised conditions.
func (e *fullMath[T]) roundPrec(z *num, p int, mode RoundingMode) Condition {
	if p <= 0 || z.coef.Sign() == 0 {
		return 0
	}
	d := digits(z.coef, e.radix)
	if d <= p {
		return 0
	}
	cond := Rounded
	if e.shiftRound(z, d-p, mode, 0) {
		cond |= Inexact
	}
	if digits(z.coef, e.radix) > p {
		z.coef.Quo(z.coef, bpow(e.radix, 1))
		z.exp++
	}
	return cond
}

// finish rounds z to the context precision, clamps its exponent into range,
// raises the accumulated conditions, and builds the result value.
func (e *fullMath[T]) finish(z num, ctx *Context, cond Condition) (T, error) {
	return e.finishP(z, ctx, cond, ctx.prec())
}

// finishRounded is finish for results that are already rounded to the
// working precision: only the exponent range is enforced.
func (e *fullMath[T]) finishRounded(z num, ctx *Context, cond Condition) (T, error) {
	return e.finishP(z, ctx, cond, 0)
}

func (e *fullMath[T]) finishP(z num, ctx *Context, cond Condition, p int) (T, error) {
	var zero T
	mode := ctx.mode()
	if !ctx.bounded() {
		cond |= e.roundPrec(&z, p, mode)
		if err := ctx.raise(cond); err != nil {
			return zero, err
		}
		return e.make(z), nil
	}
	emin, emax, etiny := ctx.emin(), ctx.emax(), ctx.etiny()
	if z.coef.Sign() == 0 {
		if z.exp > emax {
			z.exp = emax
			cond |= Clamped
		} else if z.exp < etiny {
			z.exp = etiny
			cond |= Clamped
		}
		if err := ctx.raise(cond); err != nil {
			return zero, err
		}
		return e.make(z), nil
	}
	d := digits(z.coef, e.radix)
	adj := z.exp + int64(d) - 1
	subnormal := adj < emin
	shift := 0
	if p > 0 && d > p {
		shift = d - p
	}
	capped := false
	if subnormal {
		if t := etiny - z.exp; t > int64(shift) {
			if t > int64(d)+1 {
				shift = d + 1
				capped = true
			} else {
				shift = int(t)
			}
		}
	}
	if shift > 0 {
		cond |= Rounded
		if e.shiftRound(&z, shift, mode, 0) {
			cond |= Inexact
			if subnormal {
				cond |= Underflow
			}
		}
		if capped {
			z.exp = etiny
		}
		if p > 0 && z.coef.Sign() != 0 && digits(z.coef, e.radix) > p {
			z.coef.Quo(z.coef, bpow(e.radix, 1))
			z.exp++
		}
		d = digits(z.coef, e.radix)
		adj = z.exp + int64(d) - 1
	}
	if subnormal {
		cond |= Subnormal
	}
	if z.coef.Sign() != 0 && adj > emax {
		cond |= Overflow | Inexact | Rounded
		if err := ctx.raise(cond); err != nil {
			return zero, err
		}
		pp := ctx.prec()
		finite := mode == ToZero ||
			(mode == ToNegativeInf && !z.neg) || (mode == ToPositiveInf && z.neg)
		if finite && pp > 0 {
			coef := new(big.Int).Sub(bpow(e.radix, pp), bigOne)
			return e.make(num{neg: z.neg, coef: coef, exp: emax - int64(pp) + 1}), nil
		}
		return e.h.Infinity(z.neg), nil
	}
	if err := ctx.raise(cond); err != nil {
		return zero, err
	}
	return e.make(z), nil
}

// addNum computes the exact sum of two finite operands, honoring operand
// signs, with the preferred exponent min(a.exp, b.exp). When p > 0 a distant
// small operand is folded into a sticky guard digit instead of being
// aligned in full.
func (e *fullMath[T]) addNum(a, b num, p int, mode RoundingMode) num {
	if a.exp < b.exp {
		a, b = b, a
	}
	minExp := b.exp
	if a.coef.Sign() == 0 && b.coef.Sign() == 0 {
		neg := a.neg
		if a.neg != b.neg {
			neg = mode == ToNegativeInf
		}
		z := zeroNum(minExp)
		z.neg = neg
		return z
	}
	if a.coef.Sign() == 0 || b.coef.Sign() == 0 {
		z := a
		if a.coef.Sign() == 0 {
			z = b
		}
		target := minExp
		if p > 0 {
			dz := digits(z.coef, e.radix)
			if dz >= p+2 {
				target = z.exp
			} else if t := z.exp - int64(p+2-dz); t > target {
				target = t
			}
		}
		if target < z.exp {
			z.coef = new(big.Int).Mul(z.coef, bpow(e.radix, int(z.exp-target)))
			z.exp = target
		}
		return z
	}
	d := a.exp - b.exp
	if p > 0 && d > int64(digits(b.coef, e.radix)+p+2) {
		// b only contributes a sticky digit past the guard position.
		g := p + 2
		coef := new(big.Int).Mul(a.coef, bpow(e.radix, g))
		if a.neg == b.neg {
			coef.Add(coef, bigOne)
		} else {
			coef.Sub(coef, bigOne)
		}
		return num{neg: a.neg, coef: coef, exp: a.exp - int64(g)}
	}
	ac := new(big.Int).Mul(a.coef, bpow(e.radix, int(d)))
	if a.neg == b.neg {
		return num{neg: a.neg, coef: ac.Add(ac, b.coef), exp: minExp}
	}
	switch ac.Cmp(b.coef) {
	case 0:
		z := zeroNum(minExp)
		z.neg = mode == ToNegativeInf
		return z
	case 1:
		return num{neg: a.neg, coef: ac.Sub(ac, b.coef), exp: minExp}
	default:
		return num{neg: b.neg, coef: ac.Sub(b.coef, ac), exp: minExp}
	}
}

// flip returns x with its sign inverted. x must not be a NaN.
func (e *fullMath[T]) flip(x T) T {
	if e.h.Kind(x) == Infinite {
		return e.h.Infinity(!e.h.Signbit(x))
	}
	return e.h.Finite(!e.h.Signbit(x), e.h.Mantissa(x), e.h.Exponent(x))
}

func (e *fullMath[T]) Add(x, y T, ctx *Context) (T, error) {
	return e.addEx(x, y, ctx, false)
}

func (e *fullMath[T]) AddEx(x, y T, ctx *Context, roundToOperandPrecision bool) (T, error) {
	return e.addEx(x, y, ctx, roundToOperandPrecision)
}

func (e *fullMath[T]) Sub(x, y T, ctx *Context) (T, error) {
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	return e.addEx(x, e.flip(y), ctx, false)
}

func (e *fullMath[T]) addEx(x, y T, ctx *Context, operandPrec bool) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	switch {
	case kx == Infinite && ky == Infinite:
		if e.h.Signbit(x) != e.h.Signbit(y) {
			return e.invalidNaN(ctx)
		}
		return x, nil
	case kx == Infinite:
		return x, nil
	case ky == Infinite:
		return y, nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	p := ctx.prec()
	if p == 0 {
		if d := a.exp - b.exp; d > maxAlignDigits || d < -maxAlignDigits {
			return e.invalidNaN(ctx)
		}
	}
	if operandPrec && p == 0 {
		p = digits(a.coef, e.radix)
		if d := digits(b.coef, e.radix); d > p {
			p = d
		}
	}
	z := e.addNum(a, b, p, ctx.mode())
	return e.finishP(z, ctx, 0, p)
}

func (e *fullMath[T]) Neg(x T, ctx *Context) (T, error) {
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		return e.h.Infinity(!e.h.Signbit(x)), nil
	}
	a, err := e.operand(x)
	if err != nil {
		var zero T
		return zero, err
	}
	a.neg = !a.neg
	z := e.addNum(a, zeroNum(a.exp), ctx.prec(), ctx.mode())
	return e.finish(z, ctx, 0)
}

func (e *fullMath[T]) Abs(x T, ctx *Context) (T, error) {
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		return e.h.Infinity(false), nil
	}
	a, err := e.operand(x)
	if err != nil {
		var zero T
		return zero, err
	}
	a.neg = false
	z := e.addNum(a, zeroNum(a.exp), ctx.prec(), ctx.mode())
	return e.finish(z, ctx, 0)
}

// CopySign returns x with the sign of y. The operation is quiet: it raises
// no conditions, performs no rounding, and propagates NaNs unchanged apart
// from the sign.
func (e *fullMath[T]) CopySign(x, y T) T {
	neg := e.h.Signbit(y)
	switch e.h.Kind(x) {
	case Infinite:
		return e.h.Infinity(neg)
	case QuietNaN:
		return e.h.NaN(false, neg, e.h.Payload(x))
	case SignalingNaN:
		return e.h.NaN(true, neg, e.h.Payload(x))
	}
	return e.h.Finite(neg, e.h.Mantissa(x), e.h.Exponent(x))
}

func (e *fullMath[T]) Plus(x T, ctx *Context) (T, error) {
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		var zero T
		return zero, err
	}
	z := e.addNum(a, zeroNum(a.exp), ctx.prec(), ctx.mode())
	return e.finish(z, ctx, 0)
}

func (e *fullMath[T]) Mul(x, y T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	neg := e.h.Signbit(x) != e.h.Signbit(y)
	if kx == Infinite || ky == Infinite {
		if (kx == Finite && e.h.Mantissa(x).Sign() == 0) ||
			(ky == Finite && e.h.Mantissa(y).Sign() == 0) {
			return e.invalidNaN(ctx)
		}
		return e.h.Infinity(neg), nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	exp, err := addExp(a.exp, b.exp)
	if err != nil {
		return zero, err
	}
	z := num{neg: neg, coef: new(big.Int).Mul(a.coef, b.coef), exp: exp}
	return e.finish(z, ctx, 0)
}

// FMA computes x*y+z with a single final rounding.
func (e *fullMath[T]) FMA(x, y, z T, ctx *Context) (T, error) {
	var zero T
	kx, ky, kz := e.h.Kind(x), e.h.Kind(y), e.h.Kind(z)
	if kx == SignalingNaN || ky == SignalingNaN || kz == SignalingNaN ||
		kx == QuietNaN || ky == QuietNaN || kz == QuietNaN {
		switch {
		case kx == SignalingNaN:
			return e.quieted(x, ctx)
		case ky == SignalingNaN:
			return e.quieted(y, ctx)
		case kz == SignalingNaN:
			return e.quieted(z, ctx)
		case kx == QuietNaN:
			return x, nil
		case ky == QuietNaN:
			return y, nil
		default:
			return z, nil
		}
	}
	negProd := e.h.Signbit(x) != e.h.Signbit(y)
	if kx == Infinite || ky == Infinite {
		if (kx == Finite && e.h.Mantissa(x).Sign() == 0) ||
			(ky == Finite && e.h.Mantissa(y).Sign() == 0) {
			return e.invalidNaN(ctx)
		}
		if kz == Infinite && e.h.Signbit(z) != negProd {
			return e.invalidNaN(ctx)
		}
		return e.h.Infinity(negProd), nil
	}
	if kz == Infinite {
		return z, nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	c, err := e.operand(z)
	if err != nil {
		return zero, err
	}
	exp, err := addExp(a.exp, b.exp)
	if err != nil {
		return zero, err
	}
	prod := num{neg: negProd, coef: new(big.Int).Mul(a.coef, b.coef), exp: exp}
	p := ctx.prec()
	if p == 0 {
		if d := prod.exp - c.exp; d > maxAlignDigits || d < -maxAlignDigits {
			return e.invalidNaN(ctx)
		}
	}
	sum := e.addNum(prod, c, p, ctx.mode())
	return e.finish(sum, ctx, 0)
}

func (e *fullMath[T]) Quo(x, y T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	neg := e.h.Signbit(x) != e.h.Signbit(y)
	switch {
	case kx == Infinite && ky == Infinite:
		return e.invalidNaN(ctx)
	case kx == Infinite:
		return e.h.Infinity(neg), nil
	case ky == Infinite:
		exp := int64(0)
		if ctx.bounded() {
			exp = ctx.etiny()
		}
		z := zeroNum(exp)
		z.neg = neg
		return e.finishRounded(z, ctx, 0)
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	if b.coef.Sign() == 0 {
		if a.coef.Sign() == 0 {
			return e.invalidNaN(ctx)
		}
		if err := ctx.raise(DivisionByZero); err != nil {
			return zero, err
		}
		return e.h.Infinity(neg), nil
	}
	ideal := a.exp - b.exp
	if a.coef.Sign() == 0 {
		z := zeroNum(ideal)
		z.neg = neg
		return e.finishRounded(z, ctx, 0)
	}
	p := ctx.prec()
	if p == 0 {
		q, exp, err := e.exactQuo(a.coef, b.coef, ideal)
		if err != nil {
			return zero, err
		}
		return e.finishRounded(num{neg: neg, coef: q, exp: exp}, ctx, 0)
	}
	da, db := digits(a.coef, e.radix), digits(b.coef, e.radix)
	scale := p + db - da
	n, d := a.coef, b.coef
	if scale > 0 {
		n = new(big.Int).Mul(n, bpow(e.radix, scale))
	} else if scale < 0 {
		d = new(big.Int).Mul(d, bpow(e.radix, -scale))
	}
	q, rem := new(big.Int).QuoRem(n, d, new(big.Int))
	exp := ideal - int64(scale)
	z := num{neg: neg, coef: q, exp: exp}
	if rem.Sign() == 0 {
		// Exact quotient: strip trailing zeros toward the ideal exponent,
		// then apply the normal precision pass.
		e.stripToward(&z, ideal)
		return e.finish(z, ctx, 0)
	}
	cond := Inexact | Rounded
	if digits(q, e.radix) > p {
		e.shiftRound(&z, 1, ctx.mode(), 1)
	} else {
		rem.Lsh(rem, 1)
		half := rem.Cmp(d)
		if ctx.mode().needsInc(q.Bit(0) == 1, half, !neg) {
			q.Add(q, bigOne)
		}
	}
	if digits(z.coef, e.radix) > p {
		z.coef.Quo(z.coef, bpow(e.radix, 1))
		z.exp++
	}
	return e.finishRounded(z, ctx, cond)
}

// exactQuo computes the exact quotient coef = n/d with preferred exponent
// ideal, or reports a non-terminating expansion.
func (e *fullMath[T]) exactQuo(n, d *big.Int, ideal int64) (*big.Int, int64, error) {
	g := new(big.Int).GCD(nil, nil, n, d)
	nn := new(big.Int).Quo(n, g)
	dd := new(big.Int).Quo(d, g)
	// The quotient terminates iff the reduced divisor divides a power of
	// the radix.
	rb := big.NewInt(int64(e.radix))
	probe := new(big.Int).Set(dd)
	for {
		g.GCD(nil, nil, probe, rb)
		if g.Cmp(bigOne) == 0 {
			break
		}
		probe.Quo(probe, g)
	}
	if probe.Cmp(bigOne) != 0 {
		return nil, 0, ErrNonTerminating
	}
	q, rem := new(big.Int), new(big.Int)
	exp := ideal
	for {
		q.QuoRem(nn, dd, rem)
		if rem.Sign() == 0 {
			break
		}
		nn.Mul(nn, rb)
		exp--
	}
	z := num{coef: new(big.Int).Set(q), exp: exp}
	e.stripToward(&z, ideal)
	return z.coef, z.exp, nil
}

// stripToward removes trailing zero digits from z, raising its exponent,
// but never past the target exponent.
func (e *fullMath[T]) stripToward(z *num, target int64) {
	if z.coef.Sign() == 0 {
		if z.exp < target {
			z.exp = target
		}
		return
	}
	rb := bpow(e.radix, 1)
	q, rem := getBig(), getBig()
	for z.exp < target {
		q.QuoRem(z.coef, rb, rem)
		if rem.Sign() != 0 {
			break
		}
		z.coef.Set(q)
		z.exp++
	}
	putBig(q)
	putBig(rem)
}

func (e *fullMath[T]) QuoToExponent(x, y T, desired *big.Int, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	if !desired.IsInt64() {
		return e.invalidNaN(ctx)
	}
	t := desired.Int64()
	if ctx.bounded() && (t > ctx.emax() || t < ctx.etiny()) {
		return e.invalidNaN(ctx)
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	neg := e.h.Signbit(x) != e.h.Signbit(y)
	switch {
	case kx == Infinite && ky == Infinite:
		return e.invalidNaN(ctx)
	case kx == Infinite:
		return e.h.Infinity(neg), nil
	case ky == Infinite:
		z := zeroNum(t)
		z.neg = neg
		return e.finishRounded(z, ctx, 0)
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	if b.coef.Sign() == 0 {
		if a.coef.Sign() == 0 {
			return e.invalidNaN(ctx)
		}
		if err := ctx.raise(DivisionByZero); err != nil {
			return zero, err
		}
		return e.h.Infinity(neg), nil
	}
	k := a.exp - b.exp - t
	if k > maxAlignDigits || k < -maxAlignDigits {
		return e.invalidNaN(ctx)
	}
	n, d := a.coef, b.coef
	if k > 0 {
		n = new(big.Int).Mul(n, bpow(e.radix, int(k)))
	} else if k < 0 {
		d = new(big.Int).Mul(d, bpow(e.radix, int(-k)))
	}
	q, rem := new(big.Int).QuoRem(n, d, new(big.Int))
	var cond Condition
	if rem.Sign() != 0 {
		cond = Inexact | Rounded
		rem.Lsh(rem, 1)
		half := rem.Cmp(d)
		if ctx.mode().needsInc(q.Bit(0) == 1, half, !neg) {
			q.Add(q, bigOne)
		}
	}
	if p := ctx.prec(); p > 0 && digits(q, e.radix) > p {
		return e.invalidNaN(ctx)
	}
	return e.finishRounded(num{neg: neg, coef: q, exp: t}, ctx, cond)
}

// intQuot computes the aligned integer quotient and remainder of the
// magnitudes of two finite operands. The remainder is expressed at the
// exponent min(a.exp, b.exp).
func (e *fullMath[T]) intQuot(a, b num) (q, rem *big.Int, minExp int64, ok bool) {
	d := a.exp - b.exp
	if d > maxAlignDigits || d < -maxAlignDigits {
		return nil, nil, 0, false
	}
	n, dv := a.coef, b.coef
	minExp = b.exp
	if d > 0 {
		n = new(big.Int).Mul(n, bpow(e.radix, int(d)))
	} else if d < 0 {
		dv = new(big.Int).Mul(dv, bpow(e.radix, int(-d)))
		minExp = a.exp
	}
	q, rem = new(big.Int).QuoRem(n, dv, new(big.Int))
	return q, rem, minExp, true
}

func (e *fullMath[T]) QuoIntZeroScale(x, y T, ctx *Context) (T, error) {
	return e.quoInt(x, y, ctx, false)
}

func (e *fullMath[T]) QuoIntNaturalScale(x, y T, ctx *Context) (T, error) {
	return e.quoInt(x, y, ctx, true)
}

func (e *fullMath[T]) quoInt(x, y T, ctx *Context, natural bool) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	neg := e.h.Signbit(x) != e.h.Signbit(y)
	switch {
	case kx == Infinite:
		return e.invalidNaN(ctx)
	case ky == Infinite:
		z := zeroNum(0)
		z.neg = neg
		return e.finishRounded(z, ctx, 0)
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	if b.coef.Sign() == 0 {
		if a.coef.Sign() == 0 {
			return e.invalidNaN(ctx)
		}
		if err := ctx.raise(DivisionByZero); err != nil {
			return zero, err
		}
		return e.h.Infinity(neg), nil
	}
	q, _, _, ok := e.intQuot(a, b)
	if !ok {
		return e.invalidNaN(ctx)
	}
	z := num{neg: neg, coef: q, exp: 0}
	if natural {
		ideal := a.exp - b.exp
		if ideal < 0 {
			if -ideal > maxAlignDigits {
				return e.invalidNaN(ctx)
			}
			z.coef = new(big.Int).Mul(z.coef, bpow(e.radix, int(-ideal)))
			z.exp = ideal
		} else if ideal > 0 {
			e.stripToward(&z, ideal)
		}
	}
	if p := ctx.prec(); p > 0 && digits(z.coef, e.radix) > p {
		return e.invalidNaN(ctx)
	}
	return e.finishRounded(z, ctx, 0)
}

func (e *fullMath[T]) Rem(x, y T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	switch {
	case kx == Infinite:
		return e.invalidNaN(ctx)
	case ky == Infinite:
		a, err := e.operand(x)
		if err != nil {
			return zero, err
		}
		return e.finish(a, ctx, 0)
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	if b.coef.Sign() == 0 {
		return e.invalidNaN(ctx)
	}
	q, rem, minExp, ok := e.intQuot(a, b)
	if !ok {
		return e.invalidNaN(ctx)
	}
	if p := ctx.prec(); p > 0 && digits(q, e.radix) > p {
		return e.invalidNaN(ctx)
	}
	return e.finish(num{neg: a.neg, coef: rem, exp: minExp}, ctx, 0)
}

// RemNear computes the IEEE remainder: x - n*y where n is x/y rounded to
// the nearest integer, ties to even.
func (e *fullMath[T]) RemNear(x, y T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	switch {
	case kx == Infinite:
		return e.invalidNaN(ctx)
	case ky == Infinite:
		a, err := e.operand(x)
		if err != nil {
			return zero, err
		}
		return e.finish(a, ctx, 0)
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	if b.coef.Sign() == 0 {
		return e.invalidNaN(ctx)
	}
	q, rem, minExp, ok := e.intQuot(a, b)
	if !ok {
		return e.invalidNaN(ctx)
	}
	d := b.coef
	if a.exp < b.exp {
		d = new(big.Int).Mul(b.coef, bpow(e.radix, int(b.exp-a.exp)))
	}
	twice := new(big.Int).Lsh(rem, 1)
	bump := false
	switch twice.Cmp(d) {
	case 1:
		bump = true
	case 0:
		bump = q.Bit(0) == 1
	}
	negRem := false
	if bump {
		q.Add(q, bigOne)
		rem.Sub(rem, d)
		if rem.Sign() < 0 {
			rem.Neg(rem)
			negRem = true
		}
	}
	if p := ctx.prec(); p > 0 && digits(q, e.radix) > p {
		return e.invalidNaN(ctx)
	}
	neg := a.neg
	if rem.Sign() != 0 && negRem {
		neg = !a.neg
	}
	return e.finish(num{neg: neg, coef: rem, exp: minExp}, ctx, 0)
}

// cmpNum numerically compares two finite operands.
func (e *fullMath[T]) cmpNum(a, b num) int {
	sa, sb := a.coef.Sign(), b.coef.Sign()
	if a.neg {
		sa = -sa
	}
	if b.neg {
		sb = -sb
	}
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	case sa == 0:
		return 0
	}
	// Same non-zero sign: compare adjusted exponents, then mantissas.
	adjA := a.exp + int64(digits(a.coef, e.radix)) - 1
	adjB := b.exp + int64(digits(b.coef, e.radix)) - 1
	r := 0
	switch {
	case adjA < adjB:
		r = -1
	case adjA > adjB:
		r = 1
	default:
		ac, bc := a.coef, b.coef
		if d := a.exp - b.exp; d > 0 {
			ac = new(big.Int).Mul(ac, bpow(e.radix, int(d)))
		} else if d < 0 {
			bc = new(big.Int).Mul(bc, bpow(e.radix, int(-d)))
		}
		r = ac.Cmp(bc)
	}
	if sa < 0 {
		return -r
	}
	return r
}

// cmpValues compares two non-NaN values, treating infinities as beyond
// every finite value.
func (e *fullMath[T]) cmpValues(x, y T) (int, error) {
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	nx, ny := e.h.Signbit(x), e.h.Signbit(y)
	switch {
	case kx == Infinite && ky == Infinite:
		switch {
		case nx == ny:
			return 0, nil
		case nx:
			return -1, nil
		default:
			return 1, nil
		}
	case kx == Infinite:
		if nx {
			return -1, nil
		}
		return 1, nil
	case ky == Infinite:
		if ny {
			return 1, nil
		}
		return -1, nil
	}
	a, err := e.operand(x)
	if err != nil {
		return 0, err
	}
	b, err := e.operand(y)
	if err != nil {
		return 0, err
	}
	return e.cmpNum(a, b), nil
}

// CmpWithContext compares two values, returning -1, 0, or 1 as a value of
// the representation type, or a NaN when an operand is a NaN. When
// treatQuietAsSignaling is true a quiet NaN operand raises InvalidOperation
// as a signaling one would.
func (e *fullMath[T]) CmpWithContext(x, y T, treatQuietAsSignaling bool, ctx *Context) (T, error) {
	var zero T
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	if kx == SignalingNaN || ky == SignalingNaN ||
		(treatQuietAsSignaling && (kx == QuietNaN || ky == QuietNaN)) {
		if kx == SignalingNaN || kx == QuietNaN {
			x = e.h.NaN(false, e.h.Signbit(x), e.h.Payload(x))
		} else {
			x = e.h.NaN(false, e.h.Signbit(y), e.h.Payload(y))
		}
		if err := ctx.raise(InvalidOperation); err != nil {
			return zero, err
		}
		return x, nil
	}
	if kx == QuietNaN {
		return x, nil
	}
	if ky == QuietNaN {
		return y, nil
	}
	r, err := e.cmpValues(x, y)
	if err != nil {
		return zero, err
	}
	return e.h.Finite(r < 0, big.NewInt(int64(abs(r))), bigZero), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// kindRank orders value classes for the total ordering: negative NaNs sort
// below negative infinity, positive NaNs above positive infinity, and
// signaling below quiet on the positive side.
func kindRank(k Kind, neg bool) int {
	switch k {
	case QuietNaN:
		if neg {
			return 0
		}
		return 6
	case SignalingNaN:
		if neg {
			return 1
		}
		return 5
	case Infinite:
		if neg {
			return 2
		}
		return 4
	}
	return 3
}

// CmpTotal compares x and y under a total ordering that is independent of
// any context: distinct representations of the same value are ordered by
// exponent, -0 sorts below +0, and NaNs sort beyond the infinities.
func (e *fullMath[T]) CmpTotal(x, y T) int {
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	nx, ny := e.h.Signbit(x), e.h.Signbit(y)
	rx, ry := kindRank(kx, nx), kindRank(ky, ny)
	switch {
	case rx < ry:
		return -1
	case rx > ry:
		return 1
	}
	switch kx {
	case Infinite:
		return 0
	case QuietNaN, SignalingNaN:
		px, py := e.h.Payload(x), e.h.Payload(y)
		if px == nil {
			px = bigZero
		}
		if py == nil {
			py = bigZero
		}
		r := px.CmpAbs(py)
		if nx {
			return -r
		}
		return r
	}
	a, err := e.operand(x)
	if err != nil {
		return 0
	}
	b, err := e.operand(y)
	if err != nil {
		return 0
	}
	if nx != ny {
		if nx {
			return -1
		}
		return 1
	}
	if r := e.cmpNum(a, b); r != 0 {
		return r
	}
	// Equal values: the representation with the smaller exponent sorts
	// first for positive values, last for negative ones.
	r := 0
	switch {
	case a.exp < b.exp:
		r = -1
	case a.exp > b.exp:
		r = 1
	}
	if nx {
		return -r
	}
	return r
}

func (e *fullMath[T]) Min(x, y T, ctx *Context) (T, error) {
	return e.minmax(x, y, ctx, false, false)
}

func (e *fullMath[T]) Max(x, y T, ctx *Context) (T, error) {
	return e.minmax(x, y, ctx, true, false)
}

func (e *fullMath[T]) MinMagnitude(x, y T, ctx *Context) (T, error) {
	return e.minmax(x, y, ctx, false, true)
}

func (e *fullMath[T]) MaxMagnitude(x, y T, ctx *Context) (T, error) {
	return e.minmax(x, y, ctx, true, true)
}

func (e *fullMath[T]) minmax(x, y T, ctx *Context, pickMax, byMagnitude bool) (T, error) {
	var zero T
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	if kx == SignalingNaN || ky == SignalingNaN {
		if z, ok, err := e.special2(x, y, ctx); ok {
			return z, err
		}
	}
	// Unlike most operations, a single quiet NaN loses to a number.
	switch {
	case kx == QuietNaN && ky == QuietNaN:
		return x, nil
	case kx == QuietNaN:
		return e.roundValue(y, ctx)
	case ky == QuietNaN:
		return e.roundValue(x, ctx)
	}
	cx, cy := x, y
	if byMagnitude {
		switch kx {
		case Infinite:
			cx = e.h.Infinity(false)
		default:
			cx = e.h.Finite(false, e.h.Mantissa(x), e.h.Exponent(x))
		}
		switch ky {
		case Infinite:
			cy = e.h.Infinity(false)
		default:
			cy = e.h.Finite(false, e.h.Mantissa(y), e.h.Exponent(y))
		}
	}
	r, err := e.cmpValues(cx, cy)
	if err != nil {
		return zero, err
	}
	if r == 0 {
		r = e.CmpTotal(x, y)
	}
	pick := x
	if (r < 0) == pickMax {
		pick = y
	}
	return e.roundValue(pick, ctx)
}

// roundValue applies the context's precision and range to a non-NaN value.
func (e *fullMath[T]) roundValue(x T, ctx *Context) (T, error) {
	if e.h.Kind(x) == Infinite {
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.finish(a, ctx, 0)
}

func (e *fullMath[T]) RoundToPrecision(x T, ctx *Context) (T, error) {
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	return e.roundValue(x, ctx)
}

// RoundAfterConversion applies the same rounding pass as RoundToPrecision.
// It exists as a separate entry point for callers that convert a value from
// a foreign representation and must round it exactly once afterwards.
func (e *fullMath[T]) RoundAfterConversion(x T, ctx *Context) (T, error) {
	return e.RoundToPrecision(x, ctx)
}

// RoundToBinaryPrecision rounds x so its mantissa fits the context
// precision counted in bits rather than digits. The mantissa is reduced in
// whole radix digits, so for a non-binary radix the result is the widest
// value under 2^precision reachable by digit shifts.
func (e *fullMath[T]) RoundToBinaryPrecision(x T, ctx *Context) (T, error) {
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		var zero T
		return zero, err
	}
	p := ctx.prec()
	if p == 0 || a.coef.BitLen() <= p {
		return e.finishRounded(a, ctx, 0)
	}
	var cond Condition
	mode := ctx.mode()
	for a.coef.BitLen() > p {
		shift := 1
		for a.coef.BitLen()-bpow(e.radix, shift).BitLen() >= p {
			shift++
		}
		cond |= Rounded
		if e.shiftRound(&a, shift, mode, 0) {
			cond |= Inexact
		}
	}
	return e.finishRounded(a, ctx, cond)
}

// quantizeNum rescales a to the exponent t, rounding per the context mode.
// suppress masks conditions that must not be recorded.
func (e *fullMath[T]) quantizeNum(a num, t int64, ctx *Context, suppress Condition) (T, error) {
	var zero T
	p := ctx.prec()
	if ctx.bounded() && (t > ctx.emax() || t < ctx.etiny()) {
		return e.invalidNaN(ctx)
	}
	diff := t - a.exp
	var cond Condition
	switch {
	case a.coef.Sign() == 0:
		a.exp = t
	case diff < 0:
		shift := -diff
		if shift > maxAlignDigits {
			return e.invalidNaN(ctx)
		}
		if p > 0 && int64(digits(a.coef, e.radix))+shift > int64(p) {
			return e.invalidNaN(ctx)
		}
		a.coef = new(big.Int).Mul(a.coef, bpow(e.radix, int(shift)))
		a.exp = t
	case diff > 0:
		if diff > int64(digits(a.coef, e.radix))+1 {
			// Everything is discarded; round from zero with a sticky.
			a.coef.SetInt64(0)
			if ctx.mode().needsInc(false, -1, !a.neg) {
				a.coef.SetInt64(1)
			}
			a.exp = t
			cond |= Rounded | Inexact
		} else {
			cond |= Rounded
			if e.shiftRound(&a, int(diff), ctx.mode(), 0) {
				cond |= Inexact
			}
		}
	}
	if p > 0 && digits(a.coef, e.radix) > p {
		return e.invalidNaN(ctx)
	}
	if ctx.bounded() && a.coef.Sign() != 0 {
		if adj := a.exp + int64(digits(a.coef, e.radix)) - 1; adj > ctx.emax() {
			return e.invalidNaN(ctx)
		}
	}
	if err := ctx.raise(cond &^ suppress); err != nil {
		return zero, err
	}
	return e.make(a), nil
}

// Quantize rescales x to the exponent of y.
func (e *fullMath[T]) Quantize(x, y T, ctx *Context) (T, error) {
	var zero T
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	kx, ky := e.h.Kind(x), e.h.Kind(y)
	switch {
	case kx == Infinite && ky == Infinite:
		return x, nil
	case kx == Infinite || ky == Infinite:
		return e.invalidNaN(ctx)
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	b, err := e.operand(y)
	if err != nil {
		return zero, err
	}
	return e.quantizeNum(a, b.exp, ctx, 0)
}

func (e *fullMath[T]) RoundToExponentExact(x T, exp *big.Int, ctx *Context) (T, error) {
	return e.roundToExponent(x, exp, ctx, false, 0)
}

// RoundToExponentSimple is RoundToExponentExact except that a value whose
// exponent already meets the target is passed through the plain rounding
// pass untouched.
func (e *fullMath[T]) RoundToExponentSimple(x T, exp *big.Int, ctx *Context) (T, error) {
	return e.roundToExponent(x, exp, ctx, true, 0)
}

// RoundToExponentNoRoundedFlag is RoundToExponentExact with the Rounded and
// Inexact conditions suppressed.
func (e *fullMath[T]) RoundToExponentNoRoundedFlag(x T, exp *big.Int, ctx *Context) (T, error) {
	return e.roundToExponent(x, exp, ctx, false, Rounded|Inexact)
}

func (e *fullMath[T]) roundToExponent(x T, exp *big.Int, ctx *Context, passEqual bool, suppress Condition) (T, error) {
	var zero T
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		return x, nil
	}
	if !exp.IsInt64() {
		return e.invalidNaN(ctx)
	}
	t := exp.Int64()
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	if passEqual && a.exp >= t {
		return e.finish(a, ctx, 0)
	}
	return e.quantizeNum(a, t, ctx, suppress)
}

// Reduce rounds x to the context precision and strips trailing zeros,
// producing the canonical minimal representation of the value.
func (e *fullMath[T]) Reduce(x T, ctx *Context) (T, error) {
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		return x, nil
	}
	a, err := e.operand(x)
	if err != nil {
		var zero T
		return zero, err
	}
	cond := e.roundPrec(&a, ctx.prec(), ctx.mode())
	if a.coef.Sign() == 0 {
		a.exp = 0
	} else {
		limit := int64(maxAlignDigits)
		if ctx.bounded() {
			limit = ctx.emax()
		}
		e.stripToward(&a, limit)
	}
	return e.finishRounded(a, ctx, cond)
}

// nextCtx validates the context required by the next-value operations.
func (c *Context) nextCtx() error {
	if c == nil || c.Precision <= 0 || !c.bounded() {
		return ErrInvalidContext
	}
	return nil
}

func (e *fullMath[T]) NextPlus(x T, ctx *Context) (T, error) {
	var zero T
	if err := ctx.nextCtx(); err != nil {
		return zero, err
	}
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		if !e.h.Signbit(x) {
			return x, nil
		}
		return e.make(e.largestFinite(true, ctx)), nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	return e.nudge(a, ctx, false)
}

func (e *fullMath[T]) NextMinus(x T, ctx *Context) (T, error) {
	var zero T
	if err := ctx.nextCtx(); err != nil {
		return zero, err
	}
	if z, ok, err := e.special1(x, ctx); ok {
		return z, err
	}
	if e.h.Kind(x) == Infinite {
		if e.h.Signbit(x) {
			return x, nil
		}
		return e.make(e.largestFinite(false, ctx)), nil
	}
	a, err := e.operand(x)
	if err != nil {
		return zero, err
	}
	return e.nudge(a, ctx, true)
}

// NextToward returns the adjacent representable value of x in the direction
// of y. When the two are numerically equal the result is x with the sign
// of y.
func (e *fullMath[T]) NextToward(x, y T, ctx *Context) (T, error) {
	var zero T
	if err := ctx.nextCtx(); err != nil {
		return zero, err
	}
	if z, ok, err := e.special2(x, y, ctx); ok {
		return z, err
	}
	r, err := e.cmpValues(x, y)
	if err != nil {
		return zero, err
	}
	switch {
	case r == 0:
		return e.CopySign(x, y), nil
	case r < 0:
		return e.NextPlus(x, ctx)
	default:
		return e.NextMinus(x, ctx)
	}
}

func (e *fullMath[T]) largestFinite(neg bool, ctx *Context) num {
	p := int(ctx.Precision)
	coef := new(big.Int).Sub(bpow(e.radix, p), bigOne)
	return num{neg: neg, coef: coef, exp: ctx.emax() - int64(p) + 1}
}

// nudge moves a finite value to its neighbor one step toward the chosen
// infinity. The computation runs under a scratch context so no conditions
// leak to the caller.
func (e *fullMath[T]) nudge(a num, ctx *Context, down bool) (T, error) {
	mode := ToPositiveInf
	if down {
		mode = ToNegativeInf
	}
	scratch := &Context{
		Precision: ctx.Precision,
		Rounding:  mode,
		EMin:      ctx.EMin,
		EMax:      ctx.EMax,
	}
	tiny := num{neg: down, coef: big.NewInt(1), exp: ctx.etiny() - 2}
	z := e.addNum(a, tiny, scratch.prec(), mode)
	return e.finish(z, scratch, 0)
}

// addExp adds two exponents, guarding against overflow.
func addExp(a, b int64) (int64, error) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, ErrExponentRange
	}
	return s, nil
}
