package radix

import (
	"math/big"
	"sync"
)

// bigZero, bigOne are shared read-only constants.
var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
// The values must not be modified.
var bpow10 = func() []*big.Int {
	b := make([]*big.Int, 100)
	b[0] = big.NewInt(1)
	ten := big.NewInt(10)
	for i := 1; i < len(b); i++ {
		b[i] = new(big.Int).Mul(b[i-1], ten)
	}
	return b
}()

// bpow returns radix^power. The result must not be modified; callers that
// need a mutable value must copy it.
func bpow(radix, power int) *big.Int {
	if power < 0 {
		panic("negative power")
	}
	if radix == 10 && power < len(bpow10) {
		return bpow10[power]
	}
	return new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(power)), nil)
}

// digits returns the length of x in digits of the given radix.
// digits assumes that 0 has no digits.
func digits(x *big.Int, radix int) int {
	if x.Sign() == 0 {
		return 0
	}
	if radix == 2 {
		return x.BitLen()
	}
	// Approximate from the bit length, then correct by comparison.
	// For radix 10, 10^3 ≈ 2^10, so bits*3/10 is a safe lower bound.
	if radix == 10 {
		d := (x.BitLen()-1)*3/10 + 1
		for d < len(bpow10) && x.CmpAbs(bpow10[d]) >= 0 {
			d++
		}
		if d < len(bpow10) {
			return d
		}
	}
	return len(new(big.Int).Abs(x).Text(radix))
}

// bigPool is a cache of reusable big integers used as scratch space in
// rounding and division.
var bigPool = sync.Pool{
	New: func() any { return new(big.Int) },
}

func getBig() *big.Int {
	return bigPool.Get().(*big.Int)
}

func putBig(b *big.Int) {
	bigPool.Put(b)
}
