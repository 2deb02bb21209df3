package radix

// fint (fast integer) is a coefficient small enough for machine arithmetic.
type fint uint64

// maxFint bounds fast coefficients uniformly across radixes, leaving
// headroom for overflow checks.
const maxFint = 1<<62 - 1

// fpow holds the powers of one radix that fit a fint, with overflow-checked
// helpers mirroring the big.Int coefficient path.
type fpow struct {
	radix fint
	pows  []fint
}

func newFpow(radix int) *fpow {
	t := &fpow{radix: fint(radix)}
	p := fint(1)
	t.pows = append(t.pows, p)
	for p <= maxFint/t.radix {
		p *= t.radix
		t.pows = append(t.pows, p)
	}
	return t
}

// add calculates x + y and checks overflow.
func (t *fpow) add(x, y fint) (z fint, ok bool) {
	if maxFint-x < y {
		return 0, false
	}
	return x + y, true
}

// mul calculates x * y and checks overflow.
func (t *fpow) mul(x, y fint) (z fint, ok bool) {
	if y == 0 {
		return 0, true
	}
	z = x * y
	if z/y != x || z > maxFint {
		return 0, false
	}
	return z, true
}

// quo calculates x / y and checks that the division is exact.
func (t *fpow) quo(x, y fint) (z fint, ok bool) {
	if y == 0 {
		return 0, false
	}
	z = x / y
	if z*y != x {
		return 0, false
	}
	return z, true
}

// quoRem calculates q = ⌊x / y⌋ and r = x - y * q.
func (t *fpow) quoRem(x, y fint) (q, r fint, ok bool) {
	if y == 0 {
		return 0, 0, false
	}
	q = x / y
	return q, x - q*y, true
}

// lsh calculates x * radix^shift and checks overflow.
func (t *fpow) lsh(x fint, shift int) (z fint, ok bool) {
	switch {
	case shift <= 0:
		return x, true
	case shift >= len(t.pows):
		return 0, false
	}
	return t.mul(x, t.pows[shift])
}

// rshExact calculates x / radix^shift and checks that no digits are lost.
func (t *fpow) rshExact(x fint, shift int) (z fint, ok bool) {
	switch {
	case shift <= 0:
		return x, true
	case shift >= len(t.pows):
		return 0, x == 0
	}
	return t.quo(x, t.pows[shift])
}

// prec returns the length of x in radix digits.
// prec assumes that 0 has no digits.
func (t *fpow) prec(x fint) int {
	left, right := 0, len(t.pows)
	for left < right {
		mid := (left + right) / 2
		if x < t.pows[mid] {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

// hasPrec reports whether x has the given number of digits or more.
// hasPrec assumes that 0 has no digits.
func (t *fpow) hasPrec(x fint, prec int) bool {
	switch {
	case prec < 1:
		return true
	case prec > len(t.pows):
		return false
	}
	return x >= t.pows[prec-1]
}

// ntz returns the number of trailing zero digits in x.
// ntz assumes that 0 has no trailing zeros.
func (t *fpow) ntz(x fint) int {
	left, right := 1, t.prec(x)
	for left < right {
		mid := (left + right) / 2
		if x%t.pows[mid] == 0 {
			left = mid + 1
		} else {
			right = mid
		}
	}
	return left - 1
}
