package ntru

import "math/big"

// Recompose performs Garner recomposition of residues given pairwise
// coprime moduli. The result lies in [0, prod moduli).
func Recompose(residues []*big.Int, moduli []*big.Int) *big.Int {
	x := new(big.Int).Set(residues[0])
	M := new(big.Int).Set(moduli[0])
	tmp := new(big.Int)
	for i := 1; i < len(residues); i++ {
		t := new(big.Int).Sub(residues[i], x)
		t.Mod(t, moduli[i])
		inv := new(big.Int).ModInverse(M, moduli[i])
		t.Mul(t, inv)
		t.Mod(t, moduli[i])
		tmp.Mul(M, t)
		x.Add(x, tmp)
		M.Mul(M, moduli[i])
	}
	return x
}

// crtPair holds the Bezout data for combining residues modulo m1 and m2.
type crtPair struct {
	m1, m2, prod *big.Int
	// e1 = x·m2 and e2 = y·m1 with x·m2 + y·m1 = 1
	e1, e2 *big.Int
}

func newCRTPair(m1, m2 *big.Int, x, y *big.Int) *crtPair {
	return &crtPair{
		m1:   m1,
		m2:   m2,
		prod: new(big.Int).Mul(m1, m2),
		e1:   new(big.Int).Mul(x, m2),
		e2:   new(big.Int).Mul(y, m1),
	}
}

// combine returns v1·e1 + v2·e2 mod m1·m2 in [0, m1·m2).
func (c *crtPair) combine(v1, v2 *big.Int) *big.Int {
	r := new(big.Int).Mul(v1, c.e1)
	r.Add(r, new(big.Int).Mul(v2, c.e2))
	return r.Mod(r, c.prod)
}
