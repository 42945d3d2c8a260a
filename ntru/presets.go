package ntru

import "fmt"

func mustSign(p SignParams) SignParams {
	p, err := NewSignParams(p)
	if err != nil {
		panic(err)
	}
	return p
}

func mustEncrypt(p EncryptParams) EncryptParams {
	p, err := NewEncryptParams(p)
	if err != nil {
		panic(err)
	}
	return p
}

var (
	// APR2011_439 gives 128 bits of security with simple ternary keys.
	APR2011_439 = mustSign(SignParams{
		Name: "APR2011_439", N: 439, Q: 2048, D: 146, B: 1, BasisType: BasisTranspose,
		Beta: 0.165, NormBound: 400, KeyNormBound: 280, Sparse: true,
		KeyGenAlg: KeyGenResultant, HashAlg: "SHA-256",
	})
	// APR2011_439_PROD is APR2011_439 with product form keys.
	APR2011_439_PROD = mustSign(SignParams{
		Name: "APR2011_439_PROD", N: 439, Q: 2048, D1: 9, D2: 8, D3: 5, B: 1, BasisType: BasisTranspose,
		Beta: 0.165, NormBound: 400, KeyNormBound: 280, Sparse: true,
		KeyGenAlg: KeyGenResultant, PolyType: PolyProduct, HashAlg: "SHA-256",
	})
	// APR2011_743 gives 256 bits of security with simple ternary keys.
	APR2011_743 = mustSign(SignParams{
		Name: "APR2011_743", N: 743, Q: 2048, D: 248, B: 1, BasisType: BasisTranspose,
		Beta: 0.127, NormBound: 405, KeyNormBound: 360, PrimeCheck: true,
		KeyGenAlg: KeyGenResultant, HashAlg: "SHA-512",
	})
	// APR2011_743_PROD is APR2011_743 with product form keys.
	APR2011_743_PROD = mustSign(SignParams{
		Name: "APR2011_743_PROD", N: 743, Q: 2048, D1: 11, D2: 11, D3: 15, B: 1, BasisType: BasisTranspose,
		Beta: 0.127, NormBound: 405, KeyNormBound: 360, PrimeCheck: true,
		KeyGenAlg: KeyGenResultant, PolyType: PolyProduct, HashAlg: "SHA-512",
	})
	// TEST157 is a fast insecure set for tests.
	TEST157 = mustSign(SignParams{
		Name: "TEST157", N: 157, Q: 256, D: 29, B: 1, BasisType: BasisTranspose,
		Beta: 0.38, NormBound: 200, KeyNormBound: 80,
		KeyGenAlg: KeyGenResultant, HashAlg: "SHA-256",
	})
	// TEST157_PROD is TEST157 with product form keys.
	TEST157_PROD = mustSign(SignParams{
		Name: "TEST157_PROD", N: 157, Q: 256, D1: 5, D2: 5, D3: 8, B: 1, BasisType: BasisTranspose,
		Beta: 0.38, NormBound: 200, KeyNormBound: 80,
		KeyGenAlg: KeyGenResultant, PolyType: PolyProduct, HashAlg: "SHA-256",
	})
)

var (
	// APR2011_439_FAST uses product form f = 1+3·(f1·f2+f3).
	APR2011_439_FAST = mustEncrypt(EncryptParams{
		Name: "APR2011_439_FAST", N: 439, Q: 2048, Df1: 9, Df2: 8, Df3: 5,
		PolyType: PolyProduct, FastFp: true, Sparse: true,
	})
	// APR2011_743_FAST uses product form f.
	APR2011_743_FAST = mustEncrypt(EncryptParams{
		Name: "APR2011_743_FAST", N: 743, Q: 2048, Df1: 11, Df2: 11, Df3: 15,
		PolyType: PolyProduct, FastFp: true, Sparse: true,
	})
	// EES1087EP2 uses simple ternary f.
	EES1087EP2 = mustEncrypt(EncryptParams{
		Name: "EES1087EP2", N: 1087, Q: 2048, Df: 120, FastFp: true, Sparse: true,
	})
	// TestEncrypt is a small set that inverts f modulo 3 explicitly.
	TestEncrypt = mustEncrypt(EncryptParams{
		Name: "TestEncrypt", N: 107, Q: 64, Df: 15,
	})
)

var signPresets = map[string]SignParams{}
var encryptPresets = map[string]EncryptParams{}

func init() {
	for _, p := range []SignParams{APR2011_439, APR2011_439_PROD, APR2011_743, APR2011_743_PROD, TEST157, TEST157_PROD} {
		signPresets[p.Name] = p
	}
	for _, p := range []EncryptParams{APR2011_439_FAST, APR2011_743_FAST, EES1087EP2, TestEncrypt} {
		encryptPresets[p.Name] = p
	}
}

// SignPreset looks up a signature parameter set by name.
func SignPreset(name string) (SignParams, error) {
	p, ok := signPresets[name]
	if !ok {
		return SignParams{}, fmt.Errorf("unknown signature preset %q", name)
	}
	return p, nil
}

// EncryptPreset looks up an encryption parameter set by name.
func EncryptPreset(name string) (EncryptParams, error) {
	p, ok := encryptPresets[name]
	if !ok {
		return EncryptParams{}, fmt.Errorf("unknown encryption preset %q", name)
	}
	return p, nil
}
