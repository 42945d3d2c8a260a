// Package ntru implements the polynomial ring engine behind the NTRU
// encryption and signature primitives over Z[x]/(x^N-1).
//
// It provides dense, sparse ternary and product-form polynomials, a
// multiplier that dispatches between schoolbook, Karatsuba, sparse,
// packed, NTT and Kronecker/Schönhage–Strassen strategies, inversion
// modulo 3 and modulo powers of two, exact resultants through multi-prime
// CRT reconstruction, and the lattice basis generator producing signing
// bases (f, g, F, G) with f*G - g*F = q.
//
// Message padding, index generation, mask generation and key encodings are
// left to callers; this package only exchanges plain coefficient slices.
package ntru
