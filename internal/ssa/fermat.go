package ssa

import (
	"fmt"
	"math/big"
)

// fermat describes the ring Z/(2^L+1) in which the transform is evaluated.
// Residues are kept in [0, 2^L].
type fermat struct {
	L    uint
	mod  *big.Int
	mask *big.Int
}

func newFermat(L uint) (*fermat, error) {
	if L == 0 {
		return nil, fmt.Errorf("ssa: ring exponent must be positive")
	}
	one := big.NewInt(1)
	mask := new(big.Int).Lsh(one, L)
	mod := new(big.Int).Add(mask, one)
	mask.Sub(mask, one)
	return &fermat{L: L, mod: mod, mask: mask}, nil
}

// reduce sets x to x mod 2^L+1 for x >= 0, using 2^L ≡ -1: the L-bit chunks
// of x are summed with alternating signs.
func (f *fermat) reduce(x *big.Int) *big.Int {
	if x.Cmp(f.mod) < 0 {
		return x
	}
	var s, chunk big.Int
	rest := new(big.Int).Set(x)
	neg := false
	for rest.Sign() != 0 {
		chunk.And(rest, f.mask)
		if neg {
			s.Sub(&s, &chunk)
		} else {
			s.Add(&s, &chunk)
		}
		rest.Rsh(rest, f.L)
		neg = !neg
	}
	for s.Sign() < 0 {
		s.Add(&s, f.mod)
	}
	for s.Cmp(f.mod) >= 0 {
		s.Sub(&s, f.mod)
	}
	return x.Set(&s)
}

// shift returns x*2^s mod 2^L+1 for 0 <= s < 2L.
func (f *fermat) shift(x *big.Int, s uint) *big.Int {
	r := new(big.Int).Lsh(x, s)
	return f.reduce(r)
}

// add returns a+b mod 2^L+1.
func (f *fermat) add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return f.reduce(r)
}

// sub returns a-b mod 2^L+1.
func (f *fermat) sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, f.mod)
	r.Sub(r, b)
	return f.reduce(r)
}

// mul returns a*b mod 2^L+1; the product itself is computed with Mul so
// that large rings recurse.
func (f *fermat) mul(a, b *big.Int) *big.Int {
	return f.reduce(Mul(a, b))
}
