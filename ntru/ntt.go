package ntru

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// nttPrimes are 55-bit primes congruent to 1 mod 2^17, so each supports a
// negacyclic NTT of any degree up to 2^16.
var nttPrimes = []uint64{
	36028797014376449,
	36028797013327873,
	36028797010444289,
	36028797005856769,
	36028797001138177,
	36028796997599233,
	36028796996681729,
	36028796992749569,
}

const (
	nttMaxDegree = 1 << 16
	// nttPrimeBits is a lower bound on log2 of every prime above.
	nttPrimeBits = 54
)

// nttLimbs returns how many primes cover the signed coefficients of a
// product of operands with bit lengths la, lb over N terms, or 0 when
// the table is too short.
func nttLimbs(la, lb, N int) int {
	need := la + lb + bits.Len(uint(N)) + 1
	k := (need + nttPrimeBits - 1) / nttPrimeBits
	if k > len(nttPrimes) {
		return 0
	}
	return max(k, 1)
}

// nttDegree returns the power of two ring degree that holds a linear
// product of two length N operands without wrapping.
func nttDegree(N int) int {
	M := 16
	for M < 2*N {
		M <<= 1
	}
	return M
}

// nttMul computes a·b mod (x^N-1) in RNS form: every prime gets a lattigo
// ring, the linear product is evaluated by NTT in Montgomery form, and the
// coefficients are recombined with Garner.
func nttMul(a, b *BigPoly) (*BigPoly, error) {
	a.checkLen(b)
	N := len(a.Coeffs)
	if N == 0 {
		return NewBigPoly(0), nil
	}
	M := nttDegree(N)
	if M > nttMaxDegree {
		return nil, fmt.Errorf("ntt: N=%d exceeds supported degree", N)
	}
	limbs := nttLimbs(a.MaxBitLen(), b.MaxBitLen(), N)
	if limbs == 0 {
		return nil, fmt.Errorf("ntt: coefficients too large for %d primes", len(nttPrimes))
	}
	dbg("ntt N=%d degree=%d limbs=%d", N, M, limbs)

	moduli := make([]*big.Int, limbs)
	res := make([]*ring.Poly, limbs)
	for i, q := range nttPrimes[:limbs] {
		r, err := nttRing(M, q)
		if err != nil {
			return nil, err
		}
		moduli[i] = new(big.Int).SetUint64(q)
		pa := toLimb(r, a.Coeffs, moduli[i])
		pb := toLimb(r, b.Coeffs, moduli[i])
		r.MForm(pa, pa)
		r.MForm(pb, pb)
		r.NTT(pa, pa)
		r.NTT(pb, pb)
		out := r.NewPoly()
		r.MulCoeffsMontgomery(pa, pb, out)
		r.InvNTT(out, out)
		r.InvMForm(out, out)
		res[i] = out
	}

	P := big.NewInt(1)
	for _, m := range moduli {
		P.Mul(P, m)
	}
	linear := make([]*big.Int, 2*N-1)
	residues := make([]*big.Int, limbs)
	for j := range linear {
		for i, p := range res {
			residues[i] = new(big.Int).SetUint64(p.Coeffs[0][j])
		}
		c := Recompose(residues, moduli)
		centerBig(c, P)
		linear[j] = c
	}
	return foldBig(linear, N), nil
}

// toLimb embeds coefficients into a ring polynomial modulo q.
func toLimb(r *ring.Ring, coeffs []*big.Int, q *big.Int) *ring.Poly {
	p := r.NewPoly()
	var t big.Int
	for j, c := range coeffs {
		p.Coeffs[0][j] = t.Mod(c, q).Uint64()
	}
	return p
}
