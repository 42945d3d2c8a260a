package ntru

import (
	"math/rand"
	"testing"
)

func randPoly(r *rand.Rand, N int, bound int64) *IntPoly {
	p := NewIntPoly(N)
	for i := range p.Coeffs {
		p.Coeffs[i] = r.Int63n(2*bound+1) - bound
	}
	return p
}

func constPoly(N int, c int64) *IntPoly {
	p := NewIntPoly(N)
	p.Coeffs[0] = c
	return p
}

func seededRNG(t testing.TB, label string) *RNG {
	t.Helper()
	rng, err := NewSeededRNG([]byte(label))
	if err != nil {
		t.Fatalf("seeded rng: %v", err)
	}
	return rng
}

// reference is the cyclic convolution computed directly from the definition.
func reference(a, b *IntPoly) *IntPoly {
	N := a.Len()
	c := NewIntPoly(N)
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			c.Coeffs[(i+j)%N] += a.Coeffs[i] * b.Coeffs[j]
		}
	}
	return c
}

var (
	vecA    = []int64{4, -1, 9, 2, 1, -5, 12, -7, 0, -9, 5}
	vecB    = []int64{-6, 0, 0, 13, 3, -2, -4, 10, 11, 2, -1}
	vecAB   = []int64{2, -189, 77, 124, -29, 0, -75, 124, -49, 267, 34}
	fixedF  = []int64{1, 0, -1, 1, 0, 0, 1, -1, 0, 0, 0}
	fixedG  = []int64{0, 1, 1, 0, -1, 0, 0, 1, -1, 0, 0}
	fixedQ  = int64(32)
	exactF  = []int64{-2, -3, -3, 5, -1, 1, -1, 3, -4, -6, -5}
	exactG  = []int64{4, 3, 0, 0, -1, 2, 1, 2, 4, -1, 2}
	floatF  = []int64{0, -4, -2, 4, -3, 0, -1, 0, 0, -5, -4}
	floatG  = []int64{4, 4, -8, -3, -5, 2, 0, 6, 8, 3, 6}
	fixedFq = []int64{16, 27, 12, 17, 26, 2, 10, 29, 23, 14, 17}
)

// requireBig compares coefficients by value; reflect based equality would
// trip over big.Int internals.
func requireBig(t testing.TB, want []int64, got *BigPoly) {
	t.Helper()
	w := BigPolyFromInt64(want)
	if !w.Equal(got) {
		t.Fatalf("got %v, want %v", got.Coeffs, want)
	}
}
