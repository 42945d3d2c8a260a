package ntru

import "fmt"

// InvertMod3 returns the inverse of f in Z_3[x]/(x^N-1) with coefficients
// in {0,1,2}, or false when f is not invertible.
func InvertMod3(f *IntPoly) (*IntPoly, bool) {
	return almostInverse(f, 3)
}

// InvertMod2 returns the inverse of f in Z_2[x]/(x^N-1).
func InvertMod2(f *IntPoly) (*IntPoly, bool) {
	return almostInverse(f, 2)
}

// almostInverse runs the almost inverse algorithm over Z_p for p = 2 or 3.
// The working polynomials have N+1 coefficients so that g can hold x^N-1.
func almostInverse(f *IntPoly, p int64) (*IntPoly, bool) {
	N := len(f.Coeffs)
	if N == 0 {
		return nil, false
	}
	k := 0
	b := make([]int64, N+1)
	c := make([]int64, N+1)
	ff := make([]int64, N+1)
	g := make([]int64, N+1)
	b[0] = 1
	for i, v := range f.Coeffs {
		ff[i] = modPos(v, p)
	}
	g[0] = p - 1
	g[N] = 1

	for {
		for ff[0] == 0 {
			// ff /= x, c *= x
			for i := 1; i <= N; i++ {
				ff[i-1] = ff[i]
				c[N+1-i] = c[N-i]
			}
			ff[N] = 0
			c[0] = 0
			k++
			if allZero(ff) {
				return nil, false
			}
		}
		if (&IntPoly{Coeffs: ff}).IsAbsOne() {
			break
		}
		if degreeOf(ff) < degreeOf(g) {
			ff, g = g, ff
			b, c = c, b
		}
		if p == 3 && ff[0] == g[0] {
			for i := range ff {
				ff[i] = modPos(ff[i]-g[i], p)
				b[i] = modPos(b[i]-c[i], p)
			}
		} else {
			for i := range ff {
				ff[i] = (ff[i] + g[i]) % p
				b[i] = (b[i] + c[i]) % p
			}
		}
	}
	if b[N] != 0 {
		return nil, false
	}

	// inverse = ff0 · x^(N-k) · b
	inv := NewIntPoly(N)
	k %= N
	for i := N - 1; i >= 0; i-- {
		j := i - k
		if j < 0 {
			j += N
		}
		inv.Coeffs[j] = ff[0] * b[i] % p
	}
	return inv, true
}

// InvertModPow2 returns the inverse of f modulo (x^N-1, q) with canonical
// coefficients in [0, q). q must be a power of two of at least 2.
func InvertModPow2(f *IntPoly, q int64) (*IntPoly, bool) {
	if q < 2 || q&(q-1) != 0 {
		panic(fmt.Errorf("%w: %d is not a power of two", ErrInvalidModulus, q))
	}
	Fq, ok := InvertMod2(f)
	if !ok {
		return nil, false
	}
	var fm Polynomial = f
	if s, err := SparseFromDense(f); err == nil {
		fm = s
	}
	// Newton iteration: Fq <- Fq·(2 - f·Fq), doubling the precision each step
	for v := int64(2); v < q; {
		v *= 2
		temp := Fq.Clone().Scale2Mod(v)
		t := MultiplyMod(fm, Fq, v)
		Fq = MultiplyMod(t, Fq, v)
		Fq = temp.SubMod(Fq, v)
	}
	return Fq.ModPositive(q), true
}

// IsInvertibleModPow2 reports whether f has an inverse modulo (x^N-1, q).
func IsInvertibleModPow2(f *IntPoly, q int64) bool {
	_, ok := InvertModPow2(f, q)
	return ok
}

func modPos(v, m int64) int64 {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

func allZero(s []int64) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// degreeOf returns the index of the highest nonzero entry, 0 if none.
func degreeOf(s []int64) int {
	d := len(s) - 1
	for d > 0 && s[d] == 0 {
		d--
	}
	return d
}
