package ntru

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func smallSignParams(t testing.TB, mod func(*SignParams)) SignParams {
	t.Helper()
	p := SignParams{
		Name: "small", N: 11, Q: 32, D: 3, B: 2, BasisType: BasisTranspose,
		Beta: 0.3, NormBound: 100, KeyNormBound: 50, KeyGenAlg: KeyGenResultant,
	}
	if mod != nil {
		mod(&p)
	}
	p, err := NewSignParams(p)
	require.NoError(t, err)
	return p
}

// requireQIdentity checks f·G - g·F = q.
func requireQIdentity(t *testing.T, f, g Polynomial, F, G *IntPoly, q int64) {
	t.Helper()
	got := Multiply(f, G).Sub(Multiply(g, F))
	require.Equal(t, constPoly(f.Len(), q).Coeffs, got.Coeffs)
}

func TestSolveFGVectors(t *testing.T) {
	f, g := IntPolyFrom(fixedF), IntPolyFrom(fixedG)
	tests := []struct {
		alg  KeyGenAlg
		F, G []int64
	}{
		{KeyGenResultant, exactF, exactG},
		{KeyGenFloat, floatF, floatG},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			F, G, err := SolveFG(f, g, fixedQ, tt.alg)
			require.NoError(t, err)
			require.Equal(t, tt.F, F.Coeffs)
			require.Equal(t, tt.G, G.Coeffs)
			requireQIdentity(t, f, g, F, G, fixedQ)
		})
	}
}

func TestSolveFGRepresentations(t *testing.T) {
	f, g := IntPolyFrom(fixedF), IntPolyFrom(fixedG)
	sf, err := SparseFromDense(f)
	require.NoError(t, err)
	sg, err := SparseFromDense(g)
	require.NoError(t, err)
	F, G, err := SolveFG(sf, sg, fixedQ, KeyGenResultant)
	require.NoError(t, err)
	require.Equal(t, exactF, F.Coeffs)
	require.Equal(t, exactG, G.Coeffs)
}

func TestSolveFGErrors(t *testing.T) {
	// Res(1+x, x^11-1) = 2 for both
	f := IntPolyFrom([]int64{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	_, _, err := SolveFG(f, f.Clone(), fixedQ, KeyGenResultant)
	require.Error(t, err)

	require.PanicsWithError(t, "ntru: number of coefficients must be the same: 11 != 3", func() {
		SolveFG(f, IntPolyFrom([]int64{1, 0, 0}), fixedQ, KeyGenResultant)
	})
}

func TestOverflowErrorNamesResultants(t *testing.T) {
	rf := IntPolyFrom(fixedF).Resultant()
	rg := IntPolyFrom(fixedG).Resultant()
	err := overflowError(rf, rg)
	require.ErrorIs(t, err, ErrIntOverflow)
	require.ErrorContains(t, err, "res_f=67")
	require.ErrorContains(t, err, "res_g=2047")
}

func TestMinimize(t *testing.T) {
	f, g := IntPolyFrom(fixedF), IntPolyFrom(fixedG)

	F, G := IntPolyFrom(exactF), IntPolyFrom(exactG)
	minimize(f, g, F, G)
	require.Equal(t, exactF, F.Coeffs, "already minimal")
	require.Equal(t, exactG, G.Coeffs)

	F = IntPolyFrom(exactF).Add(f.Clone().Scale(3))
	G = IntPolyFrom(exactG).Add(g.Clone().Scale(3))
	minimize(f, g, F, G)
	require.Equal(t, []int64{0, -4, -7, 7, -2, 0, 1, -1, -5, -7, -6}, F.Coeffs)
	require.Equal(t, []int64{3, 5, 2, -1, -5, 1, 0, 4, 0, -2, 1}, G.Coeffs)
	requireQIdentity(t, f, g, F, G, fixedQ)
}

func TestGenerateBasisOrientations(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*SignParams)
	}{
		{"transpose", nil},
		{"standard", func(p *SignParams) { p.BasisType = BasisStandard }},
		{"float", func(p *SignParams) { p.KeyGenAlg = KeyGenFloat }},
		{"sparse", func(p *SignParams) { p.Sparse = true }},
		{"prime check", func(p *SignParams) { p.PrimeCheck = true }},
		{"product", func(p *SignParams) { p.PolyType, p.D1, p.D2, p.D3 = PolyProduct, 1, 1, 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			par := smallSignParams(t, tt.mod)
			b := GenerateBoundedBasis(par, seededRNG(t, "basis-"+tt.name))
			require.True(t, b.Verify())
			requireQIdentity(t, b.F, b.G(), b.BigF, b.BigG, par.Q)
			for _, c := range b.H.Coeffs {
				require.True(t, c >= 0 && c < par.Q)
			}
			if par.BasisType == BasisStandard {
				require.True(t, b.FPrime.Dense().Equal(b.BigF))
			} else {
				require.True(t, b.FPrime.Dense().Equal(b.G().Dense()))
			}
		})
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	par := smallSignParams(t, nil)
	b := GenerateBoundedBasis(par, seededRNG(t, "tamper"))
	require.True(t, b.Verify())
	h := b.H.Clone()
	b.H.Coeffs[3] = (b.H.Coeffs[3] + 1) % par.Q
	require.False(t, b.Verify())

	b.H = h
	require.True(t, b.Verify())
	b.BigG.Coeffs[0]++
	require.False(t, b.Verify(), "f·G - g·F is no longer the constant q")
}

func TestIsNormOk(t *testing.T) {
	par := smallSignParams(t, func(p *SignParams) { p.KeyNormBound = 10 })
	b := &Basis{BigF: IntPolyFrom(exactF), BigG: IntPolyFrom(exactG), Params: par}
	// centered norms are 113 and 33
	require.False(t, b.IsNormOk())
	b.Params.KeyNormBoundSq = 114
	require.True(t, b.IsNormOk())
}

func TestGenerateBoundedBasisTEST157(t *testing.T) {
	if testing.Short() {
		t.Skip("N=157 basis generation")
	}
	b := GenerateBoundedBasis(TEST157, seededRNG(t, "test157"))
	require.True(t, b.Verify())
}

func TestGenerateKeyPairDeterministic(t *testing.T) {
	par := smallSignParams(t, nil)
	seed := []byte("key pair seed")
	k1, err := GenerateKeyPair(context.Background(), par, seed)
	require.NoError(t, err)
	k2, err := GenerateKeyPair(context.Background(), par, seed)
	require.NoError(t, err)

	require.Len(t, k1.Private.Bases, par.B+1)
	for i := range k1.Private.Bases {
		b1, b2 := k1.Private.Bases[i], k2.Private.Bases[i]
		require.True(t, b1.Verify(), "basis %d", i)
		require.Equal(t, b1.H.Coeffs, b2.H.Coeffs, "basis %d", i)
		require.Equal(t, b1.BigF.Coeffs, b2.BigF.Coeffs, "basis %d", i)
	}
	require.Equal(t, k1.Private.Bases[par.B].H.Coeffs, k1.Public.H.Coeffs)
	require.Equal(t, par.Q, k1.Public.Q)

	k3, err := GenerateKeyPair(context.Background(), par, []byte("another seed"))
	require.NoError(t, err)
	require.NotEqual(t, k1.Private.Bases[0].F.Dense().Coeffs, k3.Private.Bases[0].F.Dense().Coeffs)
}

func TestGenerateKeyPairRandomSeed(t *testing.T) {
	par := smallSignParams(t, func(p *SignParams) { p.B = 0 })
	k, err := GenerateKeyPair(context.Background(), par, nil)
	require.NoError(t, err)
	require.Len(t, k.Private.Bases, 1)
	require.True(t, k.Private.Bases[0].Verify())
}

func TestGenerateKeyPairCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenerateKeyPair(ctx, smallSignParams(t, nil), []byte("seed"))
	require.ErrorIs(t, err, context.Canceled)
}
