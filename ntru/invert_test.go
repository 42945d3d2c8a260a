package ntru

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvertMod3Vectors(t *testing.T) {
	tests := []struct {
		name string
		f    []int64
		want []int64
	}{
		{"f", fixedF, []int64{1, 2, 2, 2, 0, 0, 1, 2, 1, 1, 1}},
		{"g", fixedG, []int64{1, 0, 2, 0, 2, 1, 0, 0, 2, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := InvertMod3(IntPolyFrom(tt.f))
			require.True(t, ok)
			require.Equal(t, tt.want, inv.Coeffs)
		})
	}
}

func TestInvertModPow2Vectors(t *testing.T) {
	f := IntPolyFrom(fixedF)
	fq, ok := InvertModPow2(f, fixedQ)
	require.True(t, ok)
	require.Equal(t, fixedFq, fq.Coeffs)

	fq, ok = InvertModPow2(f, 2048)
	require.True(t, ok)
	require.Equal(t, []int64{1712, 795, 1100, 1681, 122, 642, 1834, 1437, 887, 1070, 1009}, fq.Coeffs)
	require.Equal(t, fixedF, f.Coeffs, "input must not change")
}

func TestInvertRoundTrip(t *testing.T) {
	rng := seededRNG(t, "invert")
	for _, N := range []int{11, 107, 439} {
		found3, foundQ := 0, 0
		for i := 0; i < 20; i++ {
			f := RandomTernary(N, N/3+1, N/3, rng)
			if inv, ok := InvertMod3(f); ok {
				found3++
				require.True(t, Multiply(f, inv).ModPositive(3).IsOne(), "N=%d mod 3", N)
			}
			for _, q := range []int64{2, 2048} {
				inv, ok := InvertModPow2(f, q)
				if !ok {
					require.False(t, IsInvertibleModPow2(f, q))
					continue
				}
				foundQ++
				for _, c := range inv.Coeffs {
					require.True(t, c >= 0 && c < q)
				}
				require.True(t, Multiply(f, inv).ModPositive(q).IsOne(), "N=%d q=%d", N, q)
			}
		}
		if found3 == 0 || foundQ == 0 {
			t.Fatalf("N=%d: no invertible samples (mod 3: %d, mod 2^k: %d)", N, found3, foundQ)
		}
	}
}

func TestInvertNonTernaryInput(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		f := randPoly(r, 23, 100)
		if inv, ok := InvertModPow2(f, 64); ok {
			require.True(t, Multiply(f, inv).ModPositive(64).IsOne())
		}
	}
}

func TestInvertNotInvertible(t *testing.T) {
	N := 11
	ones := NewIntPoly(N)
	for i := range ones.Coeffs {
		ones.Coeffs[i] = 1
	}
	tests := []struct {
		name string
		f    *IntPoly
	}{
		{"zero", NewIntPoly(N)},
		// 1+x+...+x^10 divides x^11-1
		{"all ones", ones},
		{"1-x", IntPolyFrom([]int64{1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0})},
		{"multiple of 3", IntPolyFrom([]int64{3, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := InvertMod3(tt.f)
			require.False(t, ok)
		})
	}
	_, ok := InvertModPow2(NewIntPoly(N), 2048)
	require.False(t, ok)
	_, ok = InvertModPow2(IntPolyFrom([]int64{1, 1, 0}), 32)
	require.False(t, ok, "1+x vanishes at x=1 mod 2")
	_, ok = InvertMod2(IntPolyFrom([]int64{2, 4, 6}))
	require.False(t, ok)
}

func TestInvertModPow2RejectsModulus(t *testing.T) {
	f := IntPolyFrom(fixedF)
	for _, q := range []int64{0, 1, 3, 48, -64} {
		require.PanicsWithError(t, fmt.Sprintf("ntru: invalid modulus: %d is not a power of two", q), func() {
			InvertModPow2(f, q)
		})
	}
}

func BenchmarkInvertModPow2(b *testing.B) {
	rng := seededRNG(b, "invert-bench")
	var f *IntPoly
	for {
		f = RandomTernary(439, 147, 146, rng)
		if IsInvertibleModPow2(f, 2048) {
			break
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		InvertModPow2(f, 2048)
	}
}
