package ntru

import (
	"fmt"
	"slices"
)

// Polynomial is implemented by every ring element representation that the
// Multiplier accepts: *IntPoly, *SparseTernary and *ProductForm.
type Polynomial interface {
	// Len returns the ring dimension N.
	Len() int
	// Dense materialises the polynomial as coefficients.
	Dense() *IntPoly
}

// SparseTernary is a ternary polynomial stored as the ascending positions of
// its +1 and -1 coefficients.
type SparseTernary struct {
	n       int
	Ones    []int
	NegOnes []int
}

// NewSparseTernary validates and copies the index lists. Indices must lie
// in [0, n) and the two lists must be disjoint; they need not be sorted.
func NewSparseTernary(n int, ones, negOnes []int) (*SparseTernary, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sparse ternary: invalid dimension %d", n)
	}
	if len(ones)+len(negOnes) > n {
		return nil, fmt.Errorf("sparse ternary: %d nonzero coefficients exceed N=%d", len(ones)+len(negOnes), n)
	}
	s := &SparseTernary{n: n, Ones: slices.Clone(ones), NegOnes: slices.Clone(negOnes)}
	slices.Sort(s.Ones)
	slices.Sort(s.NegOnes)
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SparseTernary) validate() error {
	seen := make([]bool, s.n)
	for _, list := range [][]int{s.Ones, s.NegOnes} {
		for _, i := range list {
			if i < 0 || i >= s.n {
				return fmt.Errorf("sparse ternary: index %d out of range [0,%d)", i, s.n)
			}
			if seen[i] {
				return fmt.Errorf("sparse ternary: index %d appears twice", i)
			}
			seen[i] = true
		}
	}
	return nil
}

// SparseFromDense converts a ternary dense polynomial.
func SparseFromDense(p *IntPoly) (*SparseTernary, error) {
	s := &SparseTernary{n: len(p.Coeffs)}
	for i, c := range p.Coeffs {
		switch c {
		case 0:
		case 1:
			s.Ones = append(s.Ones, i)
		case -1:
			s.NegOnes = append(s.NegOnes, i)
		default:
			return nil, fmt.Errorf("%w: coefficient %d at index %d", ErrNotTernary, c, i)
		}
	}
	return s, nil
}

// Len returns the ring dimension N.
func (s *SparseTernary) Len() int { return s.n }

// Weight returns the number of nonzero coefficients.
func (s *SparseTernary) Weight() int { return len(s.Ones) + len(s.NegOnes) }

// Dense returns the coefficient form of s.
func (s *SparseTernary) Dense() *IntPoly {
	p := NewIntPoly(s.n)
	for _, i := range s.Ones {
		p.Coeffs[i] = 1
	}
	for _, i := range s.NegOnes {
		p.Coeffs[i] = -1
	}
	return p
}

// ProductForm represents F1·F2 + F3 for sparse ternary factors.
type ProductForm struct {
	F1, F2, F3 *SparseTernary
}

// NewProductForm checks that all three factors live in the same ring.
func NewProductForm(f1, f2, f3 *SparseTernary) (*ProductForm, error) {
	if f1.n != f2.n || f1.n != f3.n {
		return nil, fmt.Errorf("product form: %w", ErrLengthMismatch)
	}
	return &ProductForm{F1: f1, F2: f2, F3: f3}, nil
}

// Len returns the ring dimension N.
func (p *ProductForm) Len() int { return p.F1.n }

// Dense expands the product.
func (p *ProductForm) Dense() *IntPoly {
	c := multiplySparse(p.F2, p.F1.Dense())
	return c.Add(p.F3.Dense())
}
