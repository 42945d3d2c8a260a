package ntru

import (
	"fmt"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var allStrategies = []Strategy{Schoolbook, Karatsuba, Sparse, Packed, Kronecker, NTT}
var bigStrategies = []Strategy{Schoolbook, Karatsuba, Sparse, Kronecker, NTT}

func TestMultiplyRegressionVector(t *testing.T) {
	a, b := IntPolyFrom(vecA), IntPolyFrom(vecB)
	for _, s := range allStrategies {
		require.Equal(t, vecAB, MultiplyWith(s, a, b).Coeffs, s.String())
	}
	for _, s := range bigStrategies {
		requireBig(t, vecAB, MulBigWith(s, a.ToBig(), b.ToBig()))
	}
	require.Equal(t, vecAB, Multiply(a, b).Coeffs)
	requireBig(t, vecAB, MulBig(a.ToBig(), b.ToBig()))
	requireBig(t, vecAB, MultiplyBig(a, b.ToBig()))
	require.Equal(t, vecA, a.Coeffs, "operands must not change")
}

func TestMultiplyStrategiesAgree(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for N := 1; N <= 40; N++ {
		for _, bound := range []int64{1, 3, 1 << 20} {
			a, b := randPoly(r, N, bound), randPoly(r, N, bound)
			want := reference(a, b)
			for _, s := range allStrategies {
				require.Equal(t, want.Coeffs, MultiplyWith(s, a, b).Coeffs, "N=%d bound=%d %v", N, bound, s)
			}
			require.Equal(t, want.Coeffs, Multiply(a, b).Coeffs)
		}
	}
}

func TestMultiplyLargeN(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, N := range []int{33, 97, 256, 439} {
		a, b := randPoly(r, N, 2047), randPoly(r, N, 1)
		want := MultiplyWith(Schoolbook, a, b)
		for _, s := range allStrategies[1:] {
			require.True(t, want.Equal(MultiplyWith(s, a, b)), "N=%d %v", N, s)
		}
		require.True(t, want.Equal(Multiply(a, b)), "N=%d dispatch", N)
	}
}

func TestMultiplyOverflowUsesBigPath(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	N := 16
	a, b := randPoly(r, N, 1<<35), randPoly(r, N, 1<<22)
	want := foldBig(schoolbookBig(a.ToBig().Coeffs, b.ToBig().Coeffs), N)
	require.True(t, want.Equal(Multiply(a, b).ToBig()))
}

func randBigPoly(r *rand.Rand, N, bits int) *BigPoly {
	p := NewBigPoly(N)
	for i := range p.Coeffs {
		p.Coeffs[i].Rand(r, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
		if r.Intn(2) == 0 {
			p.Coeffs[i].Neg(p.Coeffs[i])
		}
	}
	return p
}

func TestMulBigStrategies(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for _, tc := range []struct{ N, bits int }{{5, 10}, {40, 40}, {64, 100}, {128, 200}, {33, 1}} {
		a, b := randBigPoly(r, tc.N, tc.bits), randBigPoly(r, tc.N, tc.bits)
		want := MulBigWith(Schoolbook, a, b)
		for _, s := range bigStrategies[1:] {
			if s == NTT && nttLimbs(a.MaxBitLen(), b.MaxBitLen(), tc.N) == 0 {
				continue
			}
			require.True(t, want.Equal(MulBigWith(s, a, b)), "N=%d bits=%d %v", tc.N, tc.bits, s)
		}
		require.True(t, want.Equal(MulBig(a, b)))
	}
	require.Panics(t, func() { MulBigWith(Packed, NewBigPoly(3), NewBigPoly(3)) })
}

func TestMultiplyTernaryRepresentations(t *testing.T) {
	rng := seededRNG(t, "ternary-mult")
	r := rand.New(rand.NewSource(5))
	for _, N := range []int{7, 31, 107, 439} {
		s := RandomSparseTernary(N, N/4, N/5, rng)
		pf := RandomProductForm(N, 3, 2, 4, 3, rng)
		b := randPoly(r, N, 5000)

		require.Equal(t, reference(s.Dense(), b).Coeffs, Multiply(s, b).Coeffs)
		require.Equal(t, reference(s.Dense(), b).Coeffs, Multiply(b, s).Coeffs)
		require.Equal(t, reference(pf.Dense(), b).Coeffs, Multiply(pf, b).Coeffs)

		for _, q := range []int64{2, 64, 2048, 1 << 31} {
			want := reference(s.Dense(), b).ModPositive(q)
			require.Equal(t, want.Coeffs, MultiplyMod(s, b, q).ModPositive(q).Coeffs, "N=%d q=%d", N, q)
			want = reference(pf.Dense(), b).ModPositive(q)
			require.Equal(t, want.Coeffs, MultiplyMod(pf, b, q).ModPositive(q).Coeffs, "product N=%d q=%d", N, q)
		}
		// non power of two modulus: truncated remainder
		require.Equal(t, reference(s.Dense(), b).Mod(3).Coeffs, MultiplyMod(s, b, 3).Coeffs)

		requireBig(t, reference(s.Dense(), b).Coeffs, MultiplyBig(s, b.ToBig()))
		requireBig(t, reference(pf.Dense(), b).Coeffs, MultiplyBig(pf, b.ToBig()))
	}
}

func TestPackedCanonicalResidues(t *testing.T) {
	s, err := NewSparseTernary(5, []int{0, 3}, []int{1})
	require.NoError(t, err)
	b := IntPolyFrom([]int64{-1, 2, -3, 4, -2047})
	got := MultiplyMod(s, b, 2048)
	for _, c := range got.Coeffs {
		require.GreaterOrEqual(t, c, int64(0))
		require.Less(t, c, int64(2048))
	}
	require.Equal(t, reference(s.Dense(), b).ModPositive(2048).Coeffs, got.Coeffs)
}

func TestMultiplyModRejectsModulus(t *testing.T) {
	require.Panics(t, func() { MultiplyMod(NewIntPoly(3), NewIntPoly(3), 0) })
}

func BenchmarkMultiply(b *testing.B) {
	r := rand.New(rand.NewSource(6))
	N := 439
	x, y := randPoly(r, N, 1024), randPoly(r, N, 1)
	for _, s := range allStrategies {
		b.Run(s.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				MultiplyWith(s, x, y)
			}
		})
	}
	sp, _ := SparseFromDense(y)
	for _, q := range []int64{0, 2048} {
		b.Run(fmt.Sprintf("sparse-mod-%d", q), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if q == 0 {
					Multiply(sp, x)
				} else {
					MultiplyMod(sp, x, q)
				}
			}
		})
	}
}
