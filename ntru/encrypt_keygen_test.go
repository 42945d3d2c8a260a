package ntru

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireEncryptionKey checks h·f ≡ 3g (mod q) for a ternary g and that Fp
// inverts f modulo 3.
func requireEncryptionKey(t *testing.T, k *EncryptionKeyPair) {
	t.Helper()
	q := k.Params.Q
	f := k.F()
	require.True(t, Multiply(f, k.Fp).ModPositive(3).IsOne(), "f·Fp ≡ 1 mod 3")

	fq, ok := InvertModPow2(f, q)
	require.True(t, ok)
	require.True(t, Multiply(f, fq).ModPositive(q).IsOne())

	g := MultiplyMod(f, k.H, q).Center0(q)
	for i, c := range g.Coeffs {
		if c != -3 && c != 0 && c != 3 {
			t.Fatalf("h·f coefficient %d = %d, want a multiple of 3 in [-3,3]", i, c)
		}
	}
	for _, c := range k.H.Coeffs {
		require.True(t, c >= 0 && c < q)
	}
}

func TestGenerateEncryptionKeyPair(t *testing.T) {
	tests := []EncryptParams{TestEncrypt, APR2011_439_FAST}
	fast := TestEncrypt
	fast.Name, fast.FastFp = "fast", true
	sparse := TestEncrypt
	sparse.Name, sparse.Sparse = "sparse", true
	tests = append(tests, fast, sparse)

	for _, par := range tests {
		t.Run(par.Name, func(t *testing.T) {
			k, err := GenerateEncryptionKeyPair(context.Background(), par, []byte("enc-"+par.Name))
			require.NoError(t, err)
			requireEncryptionKey(t, k)
			require.True(t, k.Verify())
			if par.FastFp {
				require.True(t, k.Fp.IsOne())
			}
		})
	}
}

func TestEncryptionKeyVerifyDetectsTampering(t *testing.T) {
	k, err := GenerateEncryptionKeyPair(context.Background(), TestEncrypt, []byte("tamper"))
	require.NoError(t, err)
	require.True(t, k.Verify())

	h := k.H
	k.H = h.Clone()
	k.H.Coeffs[0] = (k.H.Coeffs[0] + 1) % k.Params.Q
	require.False(t, k.Verify())

	k.H = h.Clone()
	k.H.Coeffs[1] = -1
	require.False(t, k.Verify())

	k.H = h
	require.True(t, k.Verify())
	k.Fp = NewIntPoly(k.Params.N)
	require.False(t, k.Verify())
}

func TestGenerateEncryptionKeyPairWeights(t *testing.T) {
	par := TestEncrypt
	k, err := GenerateEncryptionKeyPair(context.Background(), par, []byte("weights"))
	require.NoError(t, err)
	var ones, negOnes int
	for _, c := range k.T.Dense().Coeffs {
		switch c {
		case 1:
			ones++
		case -1:
			negOnes++
		}
	}
	require.Equal(t, par.Df, ones)
	require.Equal(t, par.Df-1, negOnes)

	pk, err := GenerateEncryptionKeyPair(context.Background(), APR2011_439_FAST, []byte("product"))
	require.NoError(t, err)
	pf, ok := pk.T.(*ProductForm)
	require.True(t, ok)
	require.Equal(t, 2*APR2011_439_FAST.Df1, pf.F1.Weight())
	require.Equal(t, 2*APR2011_439_FAST.Df3, pf.F3.Weight())
}

func TestGenerateEncryptionKeyPairDeterministic(t *testing.T) {
	seed := []byte("same seed")
	k1, err := GenerateEncryptionKeyPair(context.Background(), TestEncrypt, seed)
	require.NoError(t, err)
	k2, err := GenerateEncryptionKeyPair(context.Background(), TestEncrypt, seed)
	require.NoError(t, err)
	require.Equal(t, k1.H.Coeffs, k2.H.Coeffs)
	require.Equal(t, k1.F().Coeffs, k2.F().Coeffs)

	k3, err := GenerateEncryptionKeyPair(context.Background(), TestEncrypt, nil)
	require.NoError(t, err)
	requireEncryptionKey(t, k3)
}

func TestGenerateEncryptionKeyPairCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GenerateEncryptionKeyPair(ctx, TestEncrypt, []byte("seed"))
	require.ErrorIs(t, err, context.Canceled)
}
