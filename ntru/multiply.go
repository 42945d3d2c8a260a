package ntru

import (
	"fmt"
	"math/big"
)

// Strategy selects a convolution algorithm.
type Strategy int

const (
	Schoolbook Strategy = iota
	Karatsuba
	Sparse
	Packed
	Kronecker
	NTT
)

func (s Strategy) String() string {
	switch s {
	case Schoolbook:
		return "schoolbook"
	case Karatsuba:
		return "karatsuba"
	case Sparse:
		return "sparse"
	case Packed:
		return "packed"
	case Kronecker:
		return "kronecker"
	case NTT:
		return "ntt"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

const (
	// karatsubaCutover is the operand length at or below which Karatsuba
	// recursion bottoms out in schoolbook.
	karatsubaCutover = 32
	// nttMinN is the smallest dense dimension routed to the NTT path.
	nttMinN = 256
	// kroneckerMinBits is the coefficient size from which big dense
	// products use Kronecker substitution.
	kroneckerMinBits = 32
)

// Multiply returns a·b mod (x^N-1).
func Multiply(a, b Polynomial) *IntPoly {
	return multiply(a, b, 0)
}

// MultiplyMod returns a·b mod (x^N-1) with coefficients reduced modulo
// modulus. Results lie in (-modulus, modulus); the packed path used for
// power-of-two moduli returns canonical residues in [0, modulus).
func MultiplyMod(a, b Polynomial, modulus int64) *IntPoly {
	if modulus <= 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidModulus, modulus))
	}
	return multiply(a, b, modulus)
}

func multiply(a, b Polynomial, modulus int64) *IntPoly {
	if a.Len() != b.Len() {
		panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a.Len(), b.Len()))
	}
	if isTernaryRep(a) {
		return multiplyTernary(a, b.Dense(), modulus)
	}
	if isTernaryRep(b) {
		return multiplyTernary(b, a.Dense(), modulus)
	}
	c := multiplyDense(a.Dense(), b.Dense())
	if modulus != 0 {
		c.Mod(modulus)
	}
	return c
}

func isTernaryRep(p Polynomial) bool {
	switch p.(type) {
	case *SparseTernary, *ProductForm:
		return true
	}
	return false
}

// multiplyTernary multiplies a sparse or product-form t by dense b.
func multiplyTernary(t Polynomial, b *IntPoly, modulus int64) *IntPoly {
	switch t := t.(type) {
	case *SparseTernary:
		if m, ok := packedLaneBits(modulus); ok {
			return multiplyPacked(t, b, m)
		}
		c := multiplySparse(t, b)
		if modulus != 0 {
			c.Mod(modulus)
		}
		return c
	case *ProductForm:
		c := multiplyTernary(t.F1, b, modulus)
		c = multiplyTernary(t.F2, c, modulus)
		c.Add(multiplyTernary(t.F3, b, modulus))
		if modulus != 0 {
			c.Mod(modulus)
		}
		return c
	}
	panic(fmt.Sprintf("ntru: unsupported ternary representation %T", t))
}

// multiplyDense picks the dense strategy for a·b without modulus.
func multiplyDense(a, b *IntPoly) *IntPoly {
	a.checkLen(b)
	N := len(a.Coeffs)
	la, lb := a.MaxBitLen(), b.MaxBitLen()
	switch {
	case !fitsInt64Product(la, lb, N):
		return mustIntPoly(kroneckerMul(a.ToBig(), b.ToBig()))
	case N <= karatsubaCutover:
		return fold(schoolbook(a.Coeffs, b.Coeffs), N)
	case N >= nttMinN && nttLimbs(la, lb, N) > 0:
		c, err := nttMul(a.ToBig(), b.ToBig())
		if err == nil {
			return mustIntPoly(c)
		}
		dbg("ntt path unavailable for N=%d: %v", N, err)
	}
	return fold(karatsuba(a.Coeffs, b.Coeffs), N)
}

// MultiplyWith multiplies a and b mod (x^N-1) with the given strategy.
// Sparse shift-adds the nonzero coefficients of a; Packed additionally
// needs the exact result to fit 31-bit lanes and otherwise does the same.
func MultiplyWith(s Strategy, a, b *IntPoly) *IntPoly {
	a.checkLen(b)
	N := len(a.Coeffs)
	switch s {
	case Schoolbook:
		return fold(schoolbook(a.Coeffs, b.Coeffs), N)
	case Karatsuba:
		return fold(karatsuba(a.Coeffs, b.Coeffs), N)
	case Sparse:
		return multiplyShiftAdd(a, b)
	case Packed:
		if c, ok := multiplyPackedExact(a, b); ok {
			return c
		}
		dbg("packed lanes too narrow, using shift-add")
		return multiplyShiftAdd(a, b)
	case Kronecker:
		return mustIntPoly(kroneckerMul(a.ToBig(), b.ToBig()))
	case NTT:
		c, err := nttMul(a.ToBig(), b.ToBig())
		if err != nil {
			panic(err)
		}
		return mustIntPoly(c)
	}
	panic(fmt.Sprintf("ntru: unknown strategy %v", s))
}

func mustIntPoly(p *BigPoly) *IntPoly {
	r, ok := p.ToIntPoly()
	if !ok {
		panic("ntru: product coefficients overflow int64")
	}
	return r
}

// MultiplyBig returns a·b mod (x^N-1) over big integers.
func MultiplyBig(a Polynomial, b *BigPoly) *BigPoly {
	if a.Len() != b.Len() {
		panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a.Len(), b.Len()))
	}
	switch t := a.(type) {
	case *SparseTernary:
		return multiplySparseBig(t, b)
	case *ProductForm:
		c := multiplySparseBig(t.F2, multiplySparseBig(t.F1, b))
		return c.Add(multiplySparseBig(t.F3, b))
	}
	return MulBig(a.Dense().ToBig(), b)
}

// MulBig returns a·b mod (x^N-1) for big coefficient polynomials.
func MulBig(a, b *BigPoly) *BigPoly {
	a.checkLen(b)
	N := len(a.Coeffs)
	if N > karatsubaCutover && max(a.MaxBitLen(), b.MaxBitLen()) >= kroneckerMinBits {
		return kroneckerMul(a, b)
	}
	return foldBig(karatsubaBig(a.Coeffs, b.Coeffs), N)
}

// MulBigWith is MulBig with an explicit strategy. Packed has no big integer
// form and panics.
func MulBigWith(s Strategy, a, b *BigPoly) *BigPoly {
	a.checkLen(b)
	N := len(a.Coeffs)
	switch s {
	case Schoolbook:
		return foldBig(schoolbookBig(a.Coeffs, b.Coeffs), N)
	case Karatsuba:
		return foldBig(karatsubaBig(a.Coeffs, b.Coeffs), N)
	case Sparse:
		return multiplyShiftAddBig(a, b)
	case Kronecker:
		return kroneckerMul(a, b)
	case NTT:
		c, err := nttMul(a, b)
		if err != nil {
			panic(err)
		}
		return c
	}
	panic(fmt.Sprintf("ntru: strategy %v has no big integer form", s))
}

// fold reduces a linear product of length 2N-1 modulo x^N-1.
func fold(c []int64, N int) *IntPoly {
	r := NewIntPoly(N)
	copy(r.Coeffs, c[:min(N, len(c))])
	for i := N; i < len(c); i++ {
		r.Coeffs[i-N] += c[i]
	}
	return r
}

func foldBig(c []*big.Int, N int) *BigPoly {
	r := NewBigPoly(N)
	for i, v := range c {
		if i < N {
			r.Coeffs[i].Set(v)
		} else {
			r.Coeffs[i-N].Add(r.Coeffs[i-N], v)
		}
	}
	return r
}

// schoolbook returns the linear product of a and b.
func schoolbook(a, b []int64) []int64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	c := make([]int64, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			c[i+j] += ai * bj
		}
	}
	return c
}

// karatsuba returns the linear product of equal length a and b.
func karatsuba(a, b []int64) []int64 {
	n := len(a)
	if n <= karatsubaCutover {
		return schoolbook(a, b)
	}
	h := (n + 1) / 2
	a0, a1 := a[:h], a[h:]
	b0, b1 := b[:h], b[h:]

	z0 := karatsuba(a0, b0)
	z2 := karatsuba(a1, b1)
	sa := make([]int64, h)
	sb := make([]int64, h)
	copy(sa, a0)
	copy(sb, b0)
	for i := range a1 {
		sa[i] += a1[i]
		sb[i] += b1[i]
	}
	z1 := karatsuba(sa, sb)
	for i, v := range z0 {
		z1[i] -= v
	}
	for i, v := range z2 {
		z1[i] -= v
	}

	c := make([]int64, 2*n-1)
	copy(c, z0)
	for i, v := range z1 {
		c[i+h] += v
	}
	for i, v := range z2 {
		c[i+2*h] += v
	}
	return c
}

func newBigSlice(n int) []*big.Int {
	s := make([]*big.Int, n)
	for i := range s {
		s[i] = new(big.Int)
	}
	return s
}

func schoolbookBig(a, b []*big.Int) []*big.Int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	c := newBigSlice(len(a) + len(b) - 1)
	var t big.Int
	for i, ai := range a {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b {
			c[i+j].Add(c[i+j], t.Mul(ai, bj))
		}
	}
	return c
}

func karatsubaBig(a, b []*big.Int) []*big.Int {
	n := len(a)
	if n <= karatsubaCutover {
		return schoolbookBig(a, b)
	}
	h := (n + 1) / 2
	a0, a1 := a[:h], a[h:]
	b0, b1 := b[:h], b[h:]

	z0 := karatsubaBig(a0, b0)
	z2 := karatsubaBig(a1, b1)
	sa := newBigSlice(h)
	sb := newBigSlice(h)
	for i := 0; i < h; i++ {
		sa[i].Set(a0[i])
		sb[i].Set(b0[i])
	}
	for i := range a1 {
		sa[i].Add(sa[i], a1[i])
		sb[i].Add(sb[i], b1[i])
	}
	z1 := karatsubaBig(sa, sb)
	for i, v := range z0 {
		z1[i].Sub(z1[i], v)
	}
	for i, v := range z2 {
		z1[i].Sub(z1[i], v)
	}

	c := newBigSlice(2*n - 1)
	for i, v := range z0 {
		c[i].Set(v)
	}
	for i, v := range z1 {
		c[i+h].Add(c[i+h], v)
	}
	for i, v := range z2 {
		c[i+2*h].Add(c[i+2*h], v)
	}
	return c
}
