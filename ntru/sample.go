package ntru

import "fmt"

// RandomTernary returns a dense polynomial with exactly ones coefficients
// equal to 1 and negOnes equal to -1, uniformly placed.
func RandomTernary(n, ones, negOnes int, rng Source) *IntPoly {
	if ones < 0 || negOnes < 0 || ones+negOnes > n {
		panic(fmt.Sprintf("ntru: cannot place %d+%d nonzero coefficients in N=%d", ones, negOnes, n))
	}
	p := NewIntPoly(n)
	for i := 0; i < ones; i++ {
		p.Coeffs[i] = 1
	}
	for i := ones; i < ones+negOnes; i++ {
		p.Coeffs[i] = -1
	}
	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p.Coeffs[i], p.Coeffs[j] = p.Coeffs[j], p.Coeffs[i]
	}
	return p
}

// RandomSparseTernary is RandomTernary in index-list form.
func RandomSparseTernary(n, ones, negOnes int, rng Source) *SparseTernary {
	s, err := SparseFromDense(RandomTernary(n, ones, negOnes, rng))
	if err != nil {
		panic(err)
	}
	return s
}

// RandomProductForm samples F1 and F2 with d1 resp. d2 coefficients of each
// sign, and F3 with d3Ones ones and d3NegOnes minus ones.
func RandomProductForm(n, d1, d2, d3Ones, d3NegOnes int, rng Source) *ProductForm {
	return &ProductForm{
		F1: RandomSparseTernary(n, d1, d1, rng),
		F2: RandomSparseTernary(n, d2, d2, rng),
		F3: RandomSparseTernary(n, d3Ones, d3NegOnes, rng),
	}
}
