package ntru

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// EncryptionKeyPair is an NTRU encryption key. T is the private polynomial:
// f = 1+3T when the parameters use FastFp, f = T otherwise. Fp is the
// inverse of f modulo 3 (the constant 1 under FastFp).
type EncryptionKeyPair struct {
	T      Polynomial
	Fp     *IntPoly
	H      *IntPoly
	Params EncryptParams
}

// F returns the dense private polynomial f.
func (k *EncryptionKeyPair) F() *IntPoly {
	t := k.T.Dense().Clone()
	if k.Params.FastFp {
		t.Scale(3).Coeffs[0]++
	}
	return t
}

// Verify checks that Fp inverts f modulo 3, that h lies in [0, q) and that
// h·f is 3g mod q for a ternary g.
func (k *EncryptionKeyPair) Verify() bool {
	q := k.Params.Q
	f := k.F()
	if !Multiply(f, k.Fp).Mod3().IsOne() {
		return false
	}
	for _, c := range k.H.Coeffs {
		if c < 0 || c >= q {
			return false
		}
	}
	for _, c := range MultiplyMod(f, k.H, q).Center0(q).Coeffs {
		if c != -3 && c != 0 && c != 3 {
			return false
		}
	}
	return true
}

// GenerateEncryptionKeyPair samples f and g concurrently, each from its own
// RNG derived from seed, and returns h = 3·g·f^-1 mod q. A nil seed is drawn
// from crypto/rand.
func GenerateEncryptionKeyPair(ctx context.Context, par EncryptParams, seed []byte) (*EncryptionKeyPair, error) {
	if seed == nil {
		var err error
		if seed, err = freshSeed(); err != nil {
			return nil, err
		}
	}
	rngF, err := NewSeededRNG(DeriveSeed(seed, 0))
	if err != nil {
		return nil, err
	}
	rngG, err := NewSeededRNG(DeriveSeed(seed, 1))
	if err != nil {
		return nil, err
	}

	var (
		t      Polynomial
		fp, fq *IntPoly
		g      *IntPoly
	)
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		t, fp, fq, err = sampleEncryptF(ectx, par, rngF)
		return err
	})
	eg.Go(func() error {
		var err error
		g, err = sampleEncryptG(ectx, par, rngG)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	h := MultiplyMod(g, fq, par.Q).Scale(3).ModPositive(par.Q)
	return &EncryptionKeyPair{T: t, Fp: fp, H: h, Params: par}, nil
}

func sampleEncryptF(ctx context.Context, par EncryptParams, rng Source) (Polynomial, *IntPoly, *IntPoly, error) {
	for tries := 1; ; tries++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		var t Polynomial
		switch {
		case par.PolyType == PolyProduct:
			t = RandomProductForm(par.N, par.Df1, par.Df2, par.Df3, par.Df3, rng)
		case par.FastFp && par.Sparse:
			t = RandomSparseTernary(par.N, par.Df, par.Df, rng)
		case par.FastFp:
			t = RandomTernary(par.N, par.Df, par.Df, rng)
		case par.Sparse:
			t = RandomSparseTernary(par.N, par.Df, par.Df-1, rng)
		default:
			t = RandomTernary(par.N, par.Df, par.Df-1, rng)
		}

		var f, fp *IntPoly
		if par.FastFp {
			f = t.Dense().Clone().Scale(3)
			f.Coeffs[0]++
			fp = NewIntPoly(par.N)
			fp.Coeffs[0] = 1
		} else {
			f = t.Dense()
			var ok bool
			if fp, ok = InvertMod3(f); !ok {
				continue
			}
		}
		fq, ok := InvertModPow2(f, par.Q)
		if !ok {
			continue
		}
		if tries > 1 {
			dbg("encryption f accepted after %d tries", tries)
		}
		return t, fp, fq, nil
	}
}

func sampleEncryptG(ctx context.Context, par EncryptParams, rng Source) (*IntPoly, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sample g: %w", err)
		}
		g := RandomTernary(par.N, par.Dg, par.Dg-1, rng)
		if IsInvertibleModPow2(g, par.Q) {
			return g, nil
		}
	}
}
