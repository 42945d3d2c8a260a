package ntru

import (
	"errors"
	"fmt"
)

// BasisType selects how a basis exposes its private polynomial.
type BasisType int

const (
	// BasisStandard publishes h = g·f^-1 and keeps f' = F.
	BasisStandard BasisType = iota
	// BasisTranspose publishes h = F·f^-1 and keeps f' = g.
	BasisTranspose
)

func (t BasisType) String() string {
	if t == BasisTranspose {
		return "transpose"
	}
	return "standard"
}

// KeyGenAlg selects how SolveFG derives the cofactor C.
type KeyGenAlg int

const (
	// KeyGenResultant divides by an exact resultant.
	KeyGenResultant KeyGenAlg = iota
	// KeyGenFloat approximates rho/res with fixed-point decimals.
	KeyGenFloat
)

func (a KeyGenAlg) String() string {
	if a == KeyGenFloat {
		return "float"
	}
	return "resultant"
}

// PolyType selects the representation of private polynomials.
type PolyType int

const (
	PolySimple PolyType = iota
	PolyProduct
)

func (t PolyType) String() string {
	if t == PolyProduct {
		return "product"
	}
	return "simple"
}

// SignParams configures lattice basis generation.
type SignParams struct {
	Name string
	N    int
	Q    int64
	// D is the number of -1 coefficients of simple f and g (they carry D+1 ones).
	D int
	// D1, D2, D3 shape product form polynomials.
	D1, D2, D3 int
	// B is the number of perturbation bases; keys hold B+1 bases.
	B              int
	BasisType      BasisType
	Beta           float64
	NormBound      float64
	KeyNormBound   float64
	PrimeCheck     bool
	Sparse         bool
	KeyGenAlg      KeyGenAlg
	PolyType       PolyType
	HashAlg        string
	BetaSq         float64
	NormBoundSq    float64
	KeyNormBoundSq float64
}

// NewSignParams validates p and fills the derived squares.
func NewSignParams(p SignParams) (SignParams, error) {
	if p.N < 2 {
		return SignParams{}, fmt.Errorf("N=%d: must be at least 2", p.N)
	}
	if p.Q < 2 || p.Q&(p.Q-1) != 0 {
		return SignParams{}, fmt.Errorf("q=%d: %w", p.Q, errPow2)
	}
	switch p.PolyType {
	case PolySimple:
		if p.D < 0 || 2*p.D+1 > p.N {
			return SignParams{}, fmt.Errorf("d=%d does not fit N=%d", p.D, p.N)
		}
	case PolyProduct:
		if p.D1 < 0 || p.D2 < 0 || p.D3 < 0 || 2*p.D1 > p.N || 2*p.D2 > p.N || 2*p.D3+1 > p.N {
			return SignParams{}, fmt.Errorf("d1=%d d2=%d d3=%d do not fit N=%d", p.D1, p.D2, p.D3, p.N)
		}
	default:
		return SignParams{}, fmt.Errorf("unknown polynomial type %d", p.PolyType)
	}
	if p.B < 0 {
		return SignParams{}, errors.New("B must be non-negative")
	}
	if p.NormBound <= 0 || p.KeyNormBound <= 0 {
		return SignParams{}, errors.New("norm bounds must be positive")
	}
	p.BetaSq = p.Beta * p.Beta
	p.NormBoundSq = p.NormBound * p.NormBound
	p.KeyNormBoundSq = p.KeyNormBound * p.KeyNormBound
	return p, nil
}

var errPow2 = errors.New("modulus must be a power of two")

// EncryptParams configures NTRU encryption key generation.
type EncryptParams struct {
	Name string
	N    int
	Q    int64
	// Df is the weight of simple f; Df1..Df3 shape product form f.
	Df            int
	Df1, Df2, Df3 int
	Dg            int
	PolyType      PolyType
	FastFp        bool
	Sparse        bool
}

// NewEncryptParams validates p. A zero Dg defaults to N/3.
func NewEncryptParams(p EncryptParams) (EncryptParams, error) {
	if p.N < 2 {
		return EncryptParams{}, fmt.Errorf("N=%d: must be at least 2", p.N)
	}
	if p.Q < 2 || p.Q&(p.Q-1) != 0 {
		return EncryptParams{}, fmt.Errorf("q=%d: %w", p.Q, errPow2)
	}
	if p.Dg == 0 {
		p.Dg = p.N / 3
	}
	if p.Dg < 1 || 2*p.Dg-1 > p.N {
		return EncryptParams{}, fmt.Errorf("dg=%d does not fit N=%d", p.Dg, p.N)
	}
	switch p.PolyType {
	case PolySimple:
		if p.Df < 1 || 2*p.Df > p.N {
			return EncryptParams{}, fmt.Errorf("df=%d does not fit N=%d", p.Df, p.N)
		}
	case PolyProduct:
		if p.Df1 < 1 || p.Df2 < 1 || p.Df3 < 1 || 2*p.Df1 > p.N || 2*p.Df2 > p.N || 2*p.Df3 > p.N {
			return EncryptParams{}, fmt.Errorf("df1=%d df2=%d df3=%d do not fit N=%d", p.Df1, p.Df2, p.Df3, p.N)
		}
		if !p.FastFp {
			return EncryptParams{}, errors.New("product form keys require FastFp")
		}
	default:
		return EncryptParams{}, fmt.Errorf("unknown polynomial type %d", p.PolyType)
	}
	return p, nil
}
