// Package ssa multiplies large integers with the Schönhage–Strassen
// algorithm: the operands are split into 2^k pieces, convolved with a
// number theoretic transform over the Fermat ring Z/(2^L+1) whose roots of
// unity are powers of two, and the coefficients are recombined with carries.
//
// Below Threshold bits the product is delegated to big.Int.Mul, whose own
// Karatsuba implementation is faster for small sizes.
package ssa

import "math/big"

// Threshold is the operand bit length from which Mul switches to the
// Fermat ring transform.
const Threshold = 1 << 14

// Mul returns a*b.
func Mul(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	if a.BitLen() < Threshold || b.BitLen() < Threshold {
		return new(big.Int).Mul(a, b)
	}
	return MulSSA(a, b)
}

// MulSSA returns a*b computed with the transform regardless of operand size.
func MulSSA(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	neg := a.Sign() != b.Sign()
	r := mulAbs(new(big.Int).Abs(a), new(big.Int).Abs(b))
	if neg {
		r.Neg(r)
	}
	return r
}

// plan holds the split and ring sizes of one multiplication.
type plan struct {
	k     uint // log2 of the transform length
	K     int  // transform length
	piece uint // bits per piece
	omega uint // the K-th root of unity is 2^omega
	ring  *fermat
}

func newPlan(la, lb int) *plan {
	total := la + lb
	k := uint(1)
	for 1<<(2*k) < total {
		k++
	}
	K := 1 << k
	half := K / 2
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	piece := uint((maxLen + half - 1) / half)
	// the acyclic coefficients are below half*2^(2*piece) and must stay
	// below 2^(L-1); L is a multiple of K/2 so that 2^(2L/K) has order K
	L := 2*piece + k + 1
	L = (L + uint(half) - 1) / uint(half) * uint(half)
	ring, err := newFermat(L)
	if err != nil {
		panic(err)
	}
	return &plan{k: k, K: K, piece: piece, omega: 2 * L / uint(K), ring: ring}
}

func mulAbs(a, b *big.Int) *big.Int {
	p := newPlan(a.BitLen(), b.BitLen())
	A := p.split(a)
	B := p.split(b)
	p.transform(A, false)
	p.transform(B, false)
	for i := range A {
		A[i] = p.ring.mul(A[i], B[i])
	}
	p.transform(A, true)
	// scale by K^-1 = 2^(2L-k)
	scale := 2*p.ring.L - p.k
	r := new(big.Int)
	for i := p.K - 1; i >= 0; i-- {
		c := p.ring.shift(A[i], scale)
		r.Lsh(r, p.piece)
		r.Add(r, c)
	}
	return r
}

// split cuts x into K/2 pieces of p.piece bits, zero padded to length K.
func (p *plan) split(x *big.Int) []*big.Int {
	out := make([]*big.Int, p.K)
	mask := new(big.Int).Lsh(big.NewInt(1), p.piece)
	mask.Sub(mask, big.NewInt(1))
	rest := new(big.Int).Set(x)
	for i := range out {
		out[i] = new(big.Int)
		if i < p.K/2 && rest.Sign() != 0 {
			out[i].And(rest, mask)
			rest.Rsh(rest, p.piece)
		}
	}
	return out
}

// transform runs an in-place iterative radix-2 NTT over the Fermat ring.
// Twiddle multiplications are shifts; the inverse uses 2^(2L - e).
func (p *plan) transform(v []*big.Int, inverse bool) {
	n := len(v)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
	twoL := 2 * p.ring.L
	for length := 2; length <= n; length <<= 1 {
		step := uint(p.K/length) * p.omega
		h := length / 2
		for start := 0; start < n; start += length {
			for t := 0; t < h; t++ {
				e := step * uint(t) % twoL
				if inverse && e != 0 {
					e = twoL - e
				}
				u := v[start+t]
				x := p.ring.shift(v[start+t+h], e)
				v[start+t] = p.ring.add(u, x)
				v[start+t+h] = p.ring.sub(u, x)
			}
		}
	}
}
