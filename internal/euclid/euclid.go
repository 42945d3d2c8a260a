// Package euclid implements the extended Euclidean algorithm over machine
// integers and arbitrary precision integers.
package euclid

import "math/big"

// Integer is the set of machine integer types supported by Int.
type Integer interface {
	~int | ~int32 | ~int64
}

// Int returns (x, y, gcd) such that a*x + b*y = gcd.
// The sign of gcd follows the last non-zero remainder of the truncated
// division sequence, so gcd may be negative when a or b is negative.
func Int[T Integer](a, b T) (x, y, gcd T) {
	var lastx, lasty T = 1, 0
	x, y = 0, 1
	for b != 0 {
		q := a / b
		a, b = b, a%b
		x, lastx = lastx-q*x, x
		y, lasty = lasty-q*y, y
	}
	return lastx, lasty, a
}

// Big is the arbitrary precision analogue of Int. The inputs are not modified.
func Big(a, b *big.Int) (x, y, gcd *big.Int) {
	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)
	x, lastx := new(big.Int), big.NewInt(1)
	y, lasty := big.NewInt(1), new(big.Int)
	q, r, t := new(big.Int), new(big.Int), new(big.Int)
	for b.Sign() != 0 {
		q.QuoRem(a, b, r)
		a, b, r = b, r, a

		t.Mul(q, x)
		t.Sub(lastx, t)
		lastx, x, t = x, t, lastx

		t.Mul(q, y)
		t.Sub(lasty, t)
		lasty, y, t = y, t, lasty
	}
	return lastx, lasty, a
}

// InvertMod returns the inverse of n modulo mod, with n first reduced into
// [0, mod). The result is meaningful only when gcd(n, mod) = 1; for n ≡ 0 it
// is 0.
func InvertMod(n, mod int64) int64 {
	n %= mod
	if n < 0 {
		n += mod
	}
	x, _, _ := Int(n, mod)
	if x < 0 {
		x += mod
	}
	return x
}

// PowMod returns a^b mod mod in [0, mod) for b >= 0.
func PowMod(a, b, mod int64) int64 {
	a %= mod
	if a < 0 {
		a += mod
	}
	p := int64(1) % mod
	for b > 0 {
		if b&1 == 1 {
			p = p * a % mod
		}
		a = a * a % mod
		b >>= 1
	}
	return p
}
