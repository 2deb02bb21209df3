package radix

import "fmt"

// MustAdd is like [Math.Add] but panics if computing error.
func (m *Math[T]) MustAdd(x, y T, ctx *Context) T {
	z, err := m.Add(x, y, ctx)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustSub is like [Math.Sub] but panics if computing error.
func (m *Math[T]) MustSub(x, y T, ctx *Context) T {
	z, err := m.Sub(x, y, ctx)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustMul is like [Math.Mul] but panics if computing error.
func (m *Math[T]) MustMul(x, y T, ctx *Context) T {
	z, err := m.Mul(x, y, ctx)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v, %v) failed: %v", x, y, err))
	}
	return z
}

// MustQuo is like [Math.Quo] but panics if computing error.
func (m *Math[T]) MustQuo(x, y T, ctx *Context) T {
	z, err := m.Quo(x, y, ctx)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v, %v) failed: %v", x, y, err))
	}
	return z
}
