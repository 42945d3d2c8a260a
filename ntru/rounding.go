package ntru

import "math/big"

// divRound sets z = round(a/d) with ties rounded away from zero, for a
// divisor of either sign, and returns z.
func divRound(a, d, z *big.Int) *big.Int {
	var r, twice big.Int
	z.QuoRem(a, d, &r)
	twice.Abs(&r)
	twice.Lsh(&twice, 1)
	if twice.CmpAbs(d) >= 0 {
		if a.Sign() == d.Sign() {
			z.Add(z, big.NewInt(1))
		} else {
			z.Sub(z, big.NewInt(1))
		}
	}
	return z
}

// divRoundHalfEven sets z = round(a/d) with ties rounded to the even
// neighbour, and returns z.
func divRoundHalfEven(a, d, z *big.Int) *big.Int {
	num := new(big.Int).Set(a)
	den := new(big.Int).Set(d)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	var m, twice big.Int
	// Euclidean division: m >= 0, so z is the floor for a positive divisor
	z.DivMod(num, den, &m)
	twice.Lsh(&m, 1)
	switch c := twice.Cmp(den); {
	case c > 0, c == 0 && z.Bit(0) == 1:
		z.Add(z, big.NewInt(1))
	}
	return z
}

// pow10 returns 10^n.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
