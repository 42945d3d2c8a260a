package ntru

import (
	"math/big"
	"math/bits"
)

// bitlenMaxAbsBig returns the maximum bit length among |s_i|.
func bitlenMaxAbsBig(s []*big.Int) int {
	m := 0
	for _, v := range s {
		if v == nil {
			continue
		}
		// BitLen ignores the sign
		if b := v.BitLen(); b > m {
			m = b
		}
	}
	return m
}

// bitlenMaxAbsInt64 returns the maximum bit length among |s_i|.
func bitlenMaxAbsInt64(s []int64) int {
	m := 0
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if b := bits.Len64(uint64(v)); b > m {
			m = b
		}
	}
	return m
}

// decimalLenMaxAbs returns the number of decimal digits of the largest |s_i|.
func decimalLenMaxAbs(s []*big.Int) int {
	m := 0
	var a big.Int
	for _, v := range s {
		a.Abs(v)
		if n := len(a.Text(10)); n > m {
			m = n
		}
	}
	return m
}

// ceilLog10 returns ceil(log10(n)) for n >= 1.
func ceilLog10(n int) int {
	l := 0
	for i := 1; i < n; i *= 10 {
		l++
	}
	return l
}
