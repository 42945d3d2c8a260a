package ntru

import (
	"fmt"
	"math/big"
)

// DecPoly is a polynomial with fixed-point decimal coefficients: the value
// of coefficient i is Coeffs[i] / 10^Scale.
type DecPoly struct {
	Coeffs []*big.Int
	Scale  int
}

// DivDecimal returns p/d rounded half even to scale decimal places.
func (p *BigPoly) DivDecimal(d *big.Int, scale int) *DecPoly {
	if d.Sign() == 0 {
		panic("ntru: decimal division by zero")
	}
	s := pow10(scale)
	r := &DecPoly{Coeffs: newBigSlice(len(p.Coeffs)), Scale: scale}
	var t big.Int
	for i, c := range p.Coeffs {
		divRoundHalfEven(t.Mul(c, s), d, r.Coeffs[i])
	}
	return r
}

// Len returns the ring dimension N.
func (p *DecPoly) Len() int { return len(p.Coeffs) }

// Mul returns p·b mod (x^N-1) at the scale of p.
func (p *DecPoly) Mul(b *BigPoly) *DecPoly {
	c := MulBig(&BigPoly{Coeffs: p.Coeffs}, b)
	return &DecPoly{Coeffs: c.Coeffs, Scale: p.Scale}
}

// Rescale returns p with scale s >= p.Scale, without rounding.
func (p *DecPoly) Rescale(s int) *DecPoly {
	if s < p.Scale {
		panic(fmt.Sprintf("ntru: cannot rescale from %d to %d places", p.Scale, s))
	}
	f := pow10(s - p.Scale)
	r := &DecPoly{Coeffs: newBigSlice(len(p.Coeffs)), Scale: s}
	for i, c := range p.Coeffs {
		r.Coeffs[i].Mul(c, f)
	}
	return r
}

// Add returns p + q at the larger of the two scales.
func (p *DecPoly) Add(q *DecPoly) *DecPoly {
	if len(p.Coeffs) != len(q.Coeffs) {
		panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(p.Coeffs), len(q.Coeffs)))
	}
	s := max(p.Scale, q.Scale)
	a, b := p.Rescale(s), q.Rescale(s)
	for i := range a.Coeffs {
		a.Coeffs[i].Add(a.Coeffs[i], b.Coeffs[i])
	}
	return a
}

// Halve returns p/2 exactly, one decimal place finer.
func (p *DecPoly) Halve() *DecPoly {
	r := &DecPoly{Coeffs: newBigSlice(len(p.Coeffs)), Scale: p.Scale + 1}
	five := big.NewInt(5)
	for i, c := range p.Coeffs {
		r.Coeffs[i].Mul(c, five)
	}
	return r
}

// Round rounds every coefficient half even to an integer.
func (p *DecPoly) Round() *BigPoly {
	s := pow10(p.Scale)
	r := NewBigPoly(len(p.Coeffs))
	for i, c := range p.Coeffs {
		divRoundHalfEven(c, s, r.Coeffs[i])
	}
	return r
}
