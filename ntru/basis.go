package ntru

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"ntru-lattice/internal/euclid"
)

// Basis is one lattice basis (f, f', h) of a signing key. BigF and BigG are
// the auxiliary solution of f·G - g·F = q.
type Basis struct {
	F      Polynomial
	FPrime Polynomial
	H      *IntPoly
	BigF   *IntPoly
	BigG   *IntPoly
	Params SignParams

	g Polynomial
}

// GenerateBoundedBasis generates bases until one passes IsNormOk.
func GenerateBoundedBasis(par SignParams, rng Source) *Basis {
	b, _ := generateBoundedBasis(context.Background(), par, rng)
	return b
}

// generateBoundedBasis checks ctx between whole basis restarts only.
func generateBoundedBasis(ctx context.Context, par SignParams, rng Source) (*Basis, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := GenerateBasis(par, rng)
		if b.IsNormOk() {
			dbg("basis N=%d accepted after %d attempt(s)", par.N, attempt)
			return b, nil
		}
		dbg("basis N=%d norm check failed, restarting", par.N)
	}
}

// GenerateBasis runs one pass of basis generation. The result satisfies
// f·G - g·F = q but may fail IsNormOk.
func GenerateBasis(par SignParams, rng Source) *Basis {
	gen := basisGen{par: par, rng: rng}
	for {
		b, err := gen.run()
		if err == nil {
			return b
		}
		warn("basis N=%d: %v, resampling", par.N, err)
	}
}

type basisGen struct {
	par SignParams
	rng Source
}

// sample draws a private polynomial in its configured representation.
func (gen *basisGen) sample() (Polynomial, *IntPoly) {
	p := gen.par
	var s Polynomial
	switch {
	case p.PolyType == PolyProduct:
		s = RandomProductForm(p.N, p.D1, p.D2, p.D3+1, p.D3, gen.rng)
	case p.Sparse:
		s = RandomSparseTernary(p.N, p.D+1, p.D, gen.rng)
	default:
		s = RandomTernary(p.N, p.D+1, p.D, gen.rng)
	}
	return s, s.Dense()
}

// sampleInvertible draws until the candidate passes the optional prime
// check and is invertible modulo q.
func (gen *basisGen) sampleInvertible() (Polynomial, *IntPoly, *IntPoly) {
	p := gen.par
	tries := 0
	for {
		tries++
		s, d := gen.sample()
		if p.PrimeCheck && d.ResultantMod(int64(2*p.N+1)).Res.Sign() == 0 {
			continue
		}
		inv, ok := InvertModPow2(d, p.Q)
		if !ok {
			continue
		}
		if tries > 1 {
			dbg("sampled invertible polynomial after %d tries", tries)
		}
		return s, d, inv
	}
}

func (gen *basisGen) run() (*Basis, error) {
	p := gen.par

	f, fd, fq := gen.sampleInvertible()
	rf := fd.Resultant()

	var (
		g     Polynomial
		gd    *IntPoly
		rg    Resultant
		x, y  *big.Int
		gcd   *big.Int
		retry int
	)
	for {
		g, gd, _ = gen.sampleInvertible()
		rg = gd.Resultant()
		x, y, gcd = euclid.Big(rf.Res, rg.Res)
		if gcd.Cmp(big.NewInt(1)) == 0 {
			break
		}
		retry++
		dbg("gcd(res_f, res_g) = %s, resampling g (%d)", gcd, retry)
	}

	F, G, err := solveFG(f, g, fd, gd, rf, rg, x, y, p.Q, p.KeyGenAlg)
	if err != nil {
		return nil, err
	}

	b := &Basis{F: f, BigF: F, BigG: G, Params: p, g: g}
	switch p.BasisType {
	case BasisStandard:
		b.FPrime = F
		b.H = MultiplyMod(g, fq, p.Q)
	default:
		b.FPrime = g
		b.H = MultiplyMod(F, fq, p.Q)
	}
	b.H.ModPositive(p.Q)
	return b, nil
}

// SolveFG returns the minimized solution (F, G) of f·G - g·F = q. It
// fails when the resultants of f and g are not coprime, and with
// ErrIntOverflow when F or G leaves int64.
func SolveFG(f, g Polynomial, q int64, alg KeyGenAlg) (F, G *IntPoly, err error) {
	fd, gd := f.Dense(), g.Dense()
	fd.checkLen(gd)
	rf, rg := fd.Resultant(), gd.Resultant()
	x, y, gcd := euclid.Big(rf.Res, rg.Res)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return nil, nil, fmt.Errorf("gcd of resultants is %s", gcd)
	}
	return solveFG(f, g, fd, gd, rf, rg, x, y, q, alg)
}

// ErrIntOverflow reports a solution (F, G) with coefficients outside int64.
var ErrIntOverflow = errors.New("ntru: F or G does not fit int64")

func overflowError(rf, rg Resultant) error {
	return fmt.Errorf("%w (res_f=%s, res_g=%s)", ErrIntOverflow, rf.Res, rg.Res)
}

func solveFG(f, g Polynomial, fd, gd *IntPoly, rf, rg Resultant, x, y *big.Int, q int64, alg KeyGenAlg) (*IntPoly, *IntPoly, error) {
	qq := big.NewInt(q)
	A := rf.Rho.ScalarMul(new(big.Int).Mul(x, qq))
	B := rg.Rho.ScalarMul(new(big.Int).Neg(new(big.Int).Mul(y, qq)))

	var C *BigPoly
	if alg == KeyGenFloat {
		C = solveFloat(rf, rg, A, B)
	} else {
		C = solveExact(f, g, fd, gd, A, B)
	}

	F, okF := B.Sub(MultiplyBig(f, C)).ToIntPoly()
	G, okG := A.Sub(MultiplyBig(g, C)).ToIntPoly()
	if !okF || !okG {
		return nil, nil, overflowError(rf, rg)
	}
	minimize(fd, gd, F, G)
	return F, G, nil
}

// solveExact computes C = round((fRev·B + gRev·A)·rho_t / res_t) for
// t = f·fRev + g·gRev.
func solveExact(f, g Polynomial, fd, gd *IntPoly, A, B *BigPoly) *BigPoly {
	fRev := fd.Reversed()
	gRev := gd.Reversed()
	t := Multiply(f, fRev).Add(Multiply(g, gRev))
	rt := t.Resultant()
	C := MultiplyBig(fRev, B).Add(MultiplyBig(gRev, A))
	return MulBig(C, rt.Rho).DivRound(rt.Res)
}

// solveFloat computes C = round((rho_f/res_f·B + rho_g/res_g·A)/2) with
// decimal precision covering the digits of B and A.
func solveFloat(rf, rg Resultant, A, B *BigPoly) *BigPoly {
	N := A.Len()
	sf := B.MaxDecimalLen() + 1 + ceilLog10(N)
	sg := A.MaxDecimalLen() + 1 + ceilLog10(N)
	fInv := rf.Rho.DivDecimal(rf.Res, sf)
	gInv := rg.Rho.DivDecimal(rg.Res, sg)
	return fInv.Mul(B).Add(gInv.Mul(A)).Halve().Round()
}

// minimize shortens (F, G) by subtracting or adding rotations of (f, g)
// while the inner product test reports an improvement, in place. It gives
// up after N rotations without a move or N accepted moves.
func minimize(f, g, F, G *IntPoly) {
	N := len(f.Coeffs)
	n := int64(N)
	var E int64
	for j := 0; j < N; j++ {
		E += 2 * n * (f.Coeffs[j]*f.Coeffs[j] + g.Coeffs[j]*g.Coeffs[j])
	}
	E -= 4

	u, v := f.Clone(), g.Clone()
	maxAdjustment := N
	j, k := 0, 0
	for k < maxAdjustment && j < N {
		var D int64
		for i := 0; i < N; i++ {
			D += 4 * n * (F.Coeffs[i]*f.Coeffs[i] + G.Coeffs[i]*g.Coeffs[i])
		}
		D -= 4 * (F.SumCoeffs() + G.SumCoeffs())

		if D > E {
			F.Sub(u)
			G.Sub(v)
			k++
			j = 0
		} else if D < -E {
			F.Add(u)
			G.Add(v)
			k++
			j = 0
		}
		j++
		u.Rotate1()
		v.Rotate1()
	}
}

// IsNormOk reports whether the centered norms of F and G are below the
// key norm bound.
func (b *Basis) IsNormOk() bool {
	q := b.Params.Q
	bound := b.Params.KeyNormBoundSq
	return float64(b.BigF.CenteredNormSq(q)) < bound && float64(b.BigG.CenteredNormSq(q)) < bound
}

// Verify checks f·G - g·F = q exactly, that h matches the basis
// orientation modulo q, and the norm bound.
func (b *Basis) Verify() bool {
	fG := MultiplyBig(b.F, b.BigG.ToBig())
	gF := MultiplyBig(b.g, b.BigF.ToBig())
	d := fG.Sub(gF)
	if !d.IsConstant() || !d.Coeffs[0].IsInt64() || d.Coeffs[0].Int64() != b.Params.Q {
		return false
	}
	// h·f = g (standard) or F (transpose) mod q
	hf := MultiplyMod(b.F, b.H, b.Params.Q).ModPositive(b.Params.Q)
	var want2 *IntPoly
	if b.Params.BasisType == BasisStandard {
		want2 = b.g.Dense().Clone().ModPositive(b.Params.Q)
	} else {
		want2 = b.BigF.Clone().ModPositive(b.Params.Q)
	}
	return hf.Equal(want2) && b.IsNormOk()
}

// G returns the private polynomial g.
func (b *Basis) G() Polynomial { return b.g }
