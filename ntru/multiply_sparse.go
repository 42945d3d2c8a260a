package ntru

import (
	"math/big"
	"math/bits"
)

// multiplySparse computes s·b by adding and subtracting rotated copies of b.
func multiplySparse(s *SparseTernary, b *IntPoly) *IntPoly {
	N := len(b.Coeffs)
	if s.n != N {
		panic(ErrLengthMismatch)
	}
	c := NewIntPoly(N)
	for _, i := range s.Ones {
		k := i
		for _, v := range b.Coeffs {
			c.Coeffs[k] += v
			if k++; k == N {
				k = 0
			}
		}
	}
	for _, i := range s.NegOnes {
		k := i
		for _, v := range b.Coeffs {
			c.Coeffs[k] -= v
			if k++; k == N {
				k = 0
			}
		}
	}
	return c
}

func multiplySparseBig(s *SparseTernary, b *BigPoly) *BigPoly {
	N := len(b.Coeffs)
	if s.n != N {
		panic(ErrLengthMismatch)
	}
	c := NewBigPoly(N)
	for _, i := range s.Ones {
		for j, v := range b.Coeffs {
			k := (i + j) % N
			c.Coeffs[k].Add(c.Coeffs[k], v)
		}
	}
	for _, i := range s.NegOnes {
		for j, v := range b.Coeffs {
			k := (i + j) % N
			c.Coeffs[k].Sub(c.Coeffs[k], v)
		}
	}
	return c
}

// multiplyShiftAdd is the sparse method for arbitrary a: every nonzero a_i
// contributes a_i times b rotated by i.
func multiplyShiftAdd(a, b *IntPoly) *IntPoly {
	N := len(a.Coeffs)
	c := NewIntPoly(N)
	for i, ai := range a.Coeffs {
		if ai == 0 {
			continue
		}
		k := i
		for _, v := range b.Coeffs {
			c.Coeffs[k] += ai * v
			if k++; k == N {
				k = 0
			}
		}
	}
	return c
}

func multiplyShiftAddBig(a, b *BigPoly) *BigPoly {
	N := len(a.Coeffs)
	c := NewBigPoly(N)
	var t big.Int
	for i, ai := range a.Coeffs {
		if ai.Sign() == 0 {
			continue
		}
		for j, v := range b.Coeffs {
			k := (i + j) % N
			c.Coeffs[k].Add(c.Coeffs[k], t.Mul(ai, v))
		}
	}
	return c
}

// packedLaneBits reports m when modulus = 2^m fits the packed layout.
func packedLaneBits(modulus int64) (uint, bool) {
	if modulus < 2 || modulus > 1<<31 || modulus&(modulus-1) != 0 {
		return 0, false
	}
	return uint(bits.TrailingZeros64(uint64(modulus))), true
}

// multiplyPacked computes s·b mod 2^m with canonical residues.
func multiplyPacked(s *SparseTernary, b *IntPoly, m uint) *IntPoly {
	if s.n != len(b.Coeffs) {
		panic(ErrLengthMismatch)
	}
	return &IntPoly{Coeffs: packedConvolve(s.Ones, s.NegOnes, b.Coeffs, m)}
}

// multiplyPackedExact runs the packed kernel with lanes wide enough to hold
// the exact product and decodes two's complement lanes. It reports false
// when the product does not fit 31-bit lanes.
func multiplyPackedExact(a, b *IntPoly) (*IntPoly, bool) {
	N := len(a.Coeffs)
	var plus, minus []int
	var weight uint64
	for i, c := range a.Coeffs {
		n := c
		if n < 0 {
			n = -n
		}
		weight += uint64(n)
		if weight > uint64(64*N) {
			return nil, false
		}
		for ; n > 0; n-- {
			if c > 0 {
				plus = append(plus, i)
			} else {
				minus = append(minus, i)
			}
		}
	}
	var maxB uint64
	for _, v := range b.Coeffs {
		if v < 0 {
			v = -v
		}
		maxB = max(maxB, uint64(v))
	}
	hi, bound := bits.Mul64(weight, maxB)
	m := uint(bits.Len64(bound)) + 1
	if hi != 0 || m > 31 {
		return nil, false
	}
	c := packedConvolve(plus, minus, b.Coeffs, m)
	half := int64(1) << (m - 1)
	for i, v := range c {
		if v >= half {
			c[i] = v - 2*half
		}
	}
	return &IntPoly{Coeffs: c}, true
}

// packedConvolve computes sum_{i in plus} x^i·b - sum_{i in minus} x^i·b
// mod (x^N-1, 2^m). Coefficients are packed into lanes of m+1 bits; the top
// bit of each lane absorbs the carry of an addition and is set as a guard
// before a subtraction so that no borrow crosses lanes.
func packedConvolve(plus, minus []int, b []int64, m uint) []int64 {
	N := len(b)
	lw := m + 1
	lanes := int(64 / lw)
	mask := uint64(1)<<m - 1
	var laneMask, guard uint64
	for l := 0; l < lanes; l++ {
		laneMask |= mask << (uint(l) * lw)
		guard |= 1 << (uint(l)*lw + m)
	}
	nw := (N + lanes - 1) / lanes

	// rot[r] packs the doubled operand starting at offset r, so that the
	// shift s reads words rot[s%lanes][s/lanes:].
	pw := (N-1)/lanes + nw
	rot := make([][]uint64, lanes)
	for r := range rot {
		words := make([]uint64, pw)
		for w := range words {
			for l := 0; l < lanes; l++ {
				idx := r + w*lanes + l
				if idx >= 2*N {
					break
				}
				words[w] |= (uint64(b[idx%N]) & mask) << (uint(l) * lw)
			}
		}
		rot[r] = words
	}

	acc := make([]uint64, nw)
	for _, i := range plus {
		s := (N - i) % N
		src := rot[s%lanes][s/lanes:]
		for t := range acc {
			acc[t] = (acc[t] + src[t]) & laneMask
		}
	}
	for _, i := range minus {
		s := (N - i) % N
		src := rot[s%lanes][s/lanes:]
		for t := range acc {
			acc[t] = ((acc[t] | guard) - src[t]) & laneMask
		}
	}

	out := make([]int64, N)
	for k := range out {
		out[k] = int64(acc[k/lanes] >> (uint(k%lanes) * lw) & mask)
	}
	return out
}
