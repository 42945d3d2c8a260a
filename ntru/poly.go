package ntru

import (
	"fmt"
	"math/big"
)

// BigPoly represents polynomials of Z[x]/(x^N-1) with arbitrary precision
// coefficients. All operations return new polynomials.
type BigPoly struct {
	Coeffs []*big.Int
}

// NewBigPoly allocates a BigPoly of size N.
func NewBigPoly(N int) *BigPoly {
	coeffs := make([]*big.Int, N)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
	}
	return &BigPoly{Coeffs: coeffs}
}

// BigPolyFromInt64 builds a BigPoly from machine integers.
func BigPolyFromInt64(coeffs []int64) *BigPoly {
	return IntPolyFrom(coeffs).ToBig()
}

// Len returns the ring dimension N.
func (p *BigPoly) Len() int { return len(p.Coeffs) }

// Clone returns a deep copy of p.
func (p *BigPoly) Clone() *BigPoly {
	r := NewBigPoly(len(p.Coeffs))
	for i, c := range p.Coeffs {
		r.Coeffs[i].Set(c)
	}
	return r
}

// Equal reports whether p and q have identical coefficients.
func (p *BigPoly) Equal(q *BigPoly) bool {
	if len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if p.Coeffs[i].Cmp(q.Coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

func (p *BigPoly) checkLen(q *BigPoly) {
	if len(p.Coeffs) != len(q.Coeffs) {
		panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(p.Coeffs), len(q.Coeffs)))
	}
}

// Add adds two BigPolys.
func (p *BigPoly) Add(q *BigPoly) *BigPoly {
	p.checkLen(q)
	r := NewBigPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Add(p.Coeffs[i], q.Coeffs[i])
	}
	return r
}

// Sub subtracts q from p.
func (p *BigPoly) Sub(q *BigPoly) *BigPoly {
	p.checkLen(q)
	r := NewBigPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Sub(p.Coeffs[i], q.Coeffs[i])
	}
	return r
}

// Neg negates polynomial.
func (p *BigPoly) Neg() *BigPoly {
	r := NewBigPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Neg(p.Coeffs[i])
	}
	return r
}

// ScalarMul multiplies by scalar s.
func (p *BigPoly) ScalarMul(s *big.Int) *BigPoly {
	r := NewBigPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Mul(p.Coeffs[i], s)
	}
	return r
}

// Mod reduces every coefficient into [0, m).
func (p *BigPoly) Mod(m *big.Int) *BigPoly {
	r := NewBigPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.Coeffs[i].Mod(p.Coeffs[i], m)
	}
	return r
}

// Center maps every coefficient of p, assumed in (-m, m), into
// [-m/2, m/2] by adding or subtracting m once.
func (p *BigPoly) Center(m *big.Int) *BigPoly {
	r := p.Clone()
	for _, c := range r.Coeffs {
		centerBig(c, m)
	}
	return r
}

// centerBig shifts c by ±m into [-m/2, m/2] in place.
func centerBig(c, m *big.Int) {
	half := new(big.Int).Rsh(m, 1)
	if c.Cmp(half) > 0 {
		c.Sub(c, m)
	} else if c.Cmp(new(big.Int).Neg(half)) < 0 {
		c.Add(c, m)
	}
}

// DivRound divides every coefficient by d rounding to the nearest integer,
// ties away from zero.
func (p *BigPoly) DivRound(d *big.Int) *BigPoly {
	r := NewBigPoly(len(p.Coeffs))
	for i, c := range p.Coeffs {
		divRound(c, d, r.Coeffs[i])
	}
	return r
}

// MaxBitLen returns the largest coefficient bit length.
func (p *BigPoly) MaxBitLen() int {
	return bitlenMaxAbsBig(p.Coeffs)
}

// MaxDecimalLen returns the number of decimal digits of the largest
// coefficient.
func (p *BigPoly) MaxDecimalLen() int {
	return decimalLenMaxAbs(p.Coeffs)
}

// ToIntPoly converts p to machine integers. It reports false when a
// coefficient does not fit an int64.
func (p *BigPoly) ToIntPoly() (*IntPoly, bool) {
	r := NewIntPoly(len(p.Coeffs))
	for i, c := range p.Coeffs {
		if !c.IsInt64() {
			return nil, false
		}
		r.Coeffs[i] = c.Int64()
	}
	return r, true
}

// IsConstant reports whether every coefficient but the first is zero.
func (p *BigPoly) IsConstant() bool {
	if len(p.Coeffs) == 0 {
		return true
	}
	for _, c := range p.Coeffs[1:] {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}
