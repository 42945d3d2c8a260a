package ntru

import (
	"math/big"
	"math/bits"

	"ntru-lattice/internal/ssa"
)

// kroneckerMul multiplies a and b mod (x^N-1) by evaluating both at 2^K,
// multiplying the two integers and reading the coefficients back.
func kroneckerMul(a, b *BigPoly) *BigPoly {
	a.checkLen(b)
	N := len(a.Coeffs)
	la, lb := a.MaxBitLen(), b.MaxBitLen()
	if N == 0 || la == 0 || lb == 0 {
		return NewBigPoly(N)
	}
	k := bits.Len(uint(N-1)) + la + lb + 2
	kw := (k + bits.UintSize - 1) / bits.UintSize

	A := kronEncode(a.Coeffs, kw)
	B := kronEncode(b.Coeffs, kw)
	C := ssa.Mul(A, B)
	return foldBig(kronDecode(C, kw, 2*N-1), N)
}

// kronEncode packs |c_i| at word offset i·kw into a positive and a negative
// integer and returns their difference.
func kronEncode(c []*big.Int, kw int) *big.Int {
	pos := make([]big.Word, len(c)*kw)
	neg := make([]big.Word, len(c)*kw)
	for i, v := range c {
		dst := pos
		if v.Sign() < 0 {
			dst = neg
		}
		copy(dst[i*kw:(i+1)*kw], v.Bits())
	}
	P := new(big.Int).SetBits(pos)
	return P.Sub(P, new(big.Int).SetBits(neg))
}

// kronDecode slices C into n windows of kw words and balances every window
// into [-2^(K-1), 2^(K-1)) carrying into the next one.
func kronDecode(C *big.Int, kw, n int) []*big.Int {
	neg := C.Sign() < 0
	words := C.Bits()
	K := uint(kw * bits.UintSize)
	full := new(big.Int).Lsh(big.NewInt(1), K)
	half := new(big.Int).Rsh(full, 1)

	out := make([]*big.Int, n)
	carry := false
	for i := range out {
		lo, hi := min(i*kw, len(words)), min((i+1)*kw, len(words))
		v := new(big.Int).SetBits(append([]big.Word(nil), words[lo:hi]...))
		if carry {
			v.Add(v, big.NewInt(1))
		}
		carry = v.Cmp(half) >= 0
		if carry {
			v.Sub(v, full)
		}
		if neg {
			v.Neg(v)
		}
		out[i] = v
	}
	return out
}
