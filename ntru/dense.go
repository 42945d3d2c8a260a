package ntru

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"slices"
)

var (
	// ErrLengthMismatch is raised (as a panic value) when two polynomials of
	// different ring dimension are combined.
	ErrLengthMismatch = errors.New("ntru: number of coefficients must be the same")
	// ErrNotTernary reports a coefficient outside {-1, 0, 1} where a ternary
	// polynomial is required.
	ErrNotTernary = errors.New("ntru: coefficient outside {-1,0,1}")
	// ErrInvalidModulus reports a modulus the operation does not support.
	ErrInvalidModulus = errors.New("ntru: invalid modulus")
)

// IntPoly is a dense polynomial of Z[x]/(x^N-1) with int64 coefficients.
//
// Methods documented as "in place" mutate the receiver and return it for
// chaining; all other methods leave their operands untouched.
type IntPoly struct {
	Coeffs []int64
}

// NewIntPoly allocates the zero polynomial with N coefficients.
func NewIntPoly(N int) *IntPoly {
	return &IntPoly{Coeffs: make([]int64, N)}
}

// IntPolyFrom copies coeffs into a new polynomial.
func IntPolyFrom(coeffs []int64) *IntPoly {
	return &IntPoly{Coeffs: slices.Clone(coeffs)}
}

// Len returns the ring dimension N.
func (p *IntPoly) Len() int { return len(p.Coeffs) }

// Dense returns p itself.
func (p *IntPoly) Dense() *IntPoly { return p }

// Clone returns a deep copy of p.
func (p *IntPoly) Clone() *IntPoly {
	return IntPolyFrom(p.Coeffs)
}

// Equal reports whether p and q have identical coefficients.
func (p *IntPoly) Equal(q *IntPoly) bool {
	return slices.Equal(p.Coeffs, q.Coeffs)
}

// Degree returns the index of the highest non-zero coefficient, or 0 for
// the zero polynomial.
func (p *IntPoly) Degree() int {
	d := len(p.Coeffs) - 1
	for d > 0 && p.Coeffs[d] == 0 {
		d--
	}
	return d
}

// IsZero reports whether all coefficients are zero.
func (p *IntPoly) IsZero() bool {
	for _, c := range p.Coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// IsOne reports whether p is the constant 1.
func (p *IntPoly) IsOne() bool {
	return p.isConst(func(c int64) bool { return c == 1 })
}

// IsAbsOne reports whether p is a constant of absolute value 1 modulo 3,
// i.e. one of 1, -1 or 2 with every other coefficient zero.
func (p *IntPoly) IsAbsOne() bool {
	return p.isConst(func(c int64) bool { return c == 1 || c == -1 || c == 2 })
}

func (p *IntPoly) isConst(ok func(int64) bool) bool {
	if len(p.Coeffs) == 0 || !ok(p.Coeffs[0]) {
		return false
	}
	for _, c := range p.Coeffs[1:] {
		if c != 0 {
			return false
		}
	}
	return true
}

// SumCoeffs returns the sum of the coefficients, i.e. p(1).
func (p *IntPoly) SumCoeffs() int64 {
	var s int64
	for _, c := range p.Coeffs {
		s += c
	}
	return s
}

// SquareSum returns the sum of squared coefficients as a big integer.
func (p *IntPoly) SquareSum() *big.Int {
	s := new(big.Int)
	var t big.Int
	for _, c := range p.Coeffs {
		t.SetInt64(c)
		t.Mul(&t, &t)
		s.Add(s, &t)
	}
	return s
}

// MaxBitLen returns the largest bit length among |p_i|.
func (p *IntPoly) MaxBitLen() int {
	return bitlenMaxAbsInt64(p.Coeffs)
}

// ToBig converts p to a BigPoly.
func (p *IntPoly) ToBig() *BigPoly {
	r := NewBigPoly(len(p.Coeffs))
	for i, c := range p.Coeffs {
		r.Coeffs[i].SetInt64(c)
	}
	return r
}

// Reversed returns r with r_0 = p_0 and r_i = p_{N-i}, the image of p under
// x -> x^-1.
func (p *IntPoly) Reversed() *IntPoly {
	N := len(p.Coeffs)
	r := NewIntPoly(N)
	if N == 0 {
		return r
	}
	r.Coeffs[0] = p.Coeffs[0]
	for i := 1; i < N; i++ {
		r.Coeffs[i] = p.Coeffs[N-i]
	}
	return r
}

func (p *IntPoly) checkLen(q *IntPoly) {
	if len(p.Coeffs) != len(q.Coeffs) {
		panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(p.Coeffs), len(q.Coeffs)))
	}
}

// Add sets p = p + q in place.
func (p *IntPoly) Add(q *IntPoly) *IntPoly {
	p.checkLen(q)
	for i, c := range q.Coeffs {
		p.Coeffs[i] += c
	}
	return p
}

// Sub sets p = p - q in place.
func (p *IntPoly) Sub(q *IntPoly) *IntPoly {
	p.checkLen(q)
	for i, c := range q.Coeffs {
		p.Coeffs[i] -= c
	}
	return p
}

// SubMod sets p = (p - q) mod m in place.
func (p *IntPoly) SubMod(q *IntPoly, m int64) *IntPoly {
	return p.Sub(q).Mod(m)
}

// SubConst subtracts b from every coefficient in place.
func (p *IntPoly) SubConst(b int64) *IntPoly {
	for i := range p.Coeffs {
		p.Coeffs[i] -= b
	}
	return p
}

// Scale multiplies every coefficient by s in place.
func (p *IntPoly) Scale(s int64) *IntPoly {
	for i := range p.Coeffs {
		p.Coeffs[i] *= s
	}
	return p
}

// Scale2Mod sets every coefficient to 2c mod m (truncated) in place.
func (p *IntPoly) Scale2Mod(m int64) *IntPoly {
	return p.Scale(2).Mod(m)
}

// Mod reduces every coefficient with the truncated remainder c % m in place;
// results keep the sign of c.
func (p *IntPoly) Mod(m int64) *IntPoly {
	for i := range p.Coeffs {
		p.Coeffs[i] %= m
	}
	return p
}

// ModPositive reduces every coefficient into [0, m) in place.
func (p *IntPoly) ModPositive(m int64) *IntPoly {
	for i, c := range p.Coeffs {
		c %= m
		if c < 0 {
			c += m
		}
		p.Coeffs[i] = c
	}
	return p
}

// Mod3 reduces every coefficient into {-1, 0, 1} in place.
func (p *IntPoly) Mod3() *IntPoly {
	for i, c := range p.Coeffs {
		c %= 3
		if c > 1 {
			c -= 3
		}
		if c < -1 {
			c += 3
		}
		p.Coeffs[i] = c
	}
	return p
}

// Center0 shifts every coefficient into [-q/2, q/2] in place.
func (p *IntPoly) Center0(q int64) *IntPoly {
	for i, c := range p.Coeffs {
		c %= q
		if c < -q/2 {
			c += q
		}
		if c > q/2 {
			c -= q
		}
		p.Coeffs[i] = c
	}
	return p
}

// Rotate1 multiplies p by x in place.
func (p *IntPoly) Rotate1() *IntPoly {
	N := len(p.Coeffs)
	if N == 0 {
		return p
	}
	last := p.Coeffs[N-1]
	copy(p.Coeffs[1:], p.Coeffs[:N-1])
	p.Coeffs[0] = last
	return p
}

// fitsInt64Product reports whether every coefficient of a cyclic product of
// operands with bit lengths la, lb over N terms stays inside int64.
func fitsInt64Product(la, lb, N int) bool {
	return la+lb+bits.Len(uint(N)) < 62
}
