package ntru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	for name, p := range signPresets {
		require.Equal(t, name, p.Name)
		require.Equal(t, p.KeyNormBound*p.KeyNormBound, p.KeyNormBoundSq)
		got, err := SignPreset(name)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	require.Len(t, signPresets, 6)
	require.Len(t, encryptPresets, 4)
	_, err := SignPreset("missing")
	require.Error(t, err)
	_, err = EncryptPreset("missing")
	require.Error(t, err)

	p, err := EncryptPreset("EES1087EP2")
	require.NoError(t, err)
	require.Equal(t, 1087/3, p.Dg)
}

func TestNewSignParamsErrors(t *testing.T) {
	base := TEST157
	tests := map[string]func(*SignParams){
		"N":          func(p *SignParams) { p.N = 1 },
		"q":          func(p *SignParams) { p.Q = 250 },
		"d":          func(p *SignParams) { p.D = 79 },
		"product":    func(p *SignParams) { p.PolyType, p.D1 = PolyProduct, 100 },
		"poly type":  func(p *SignParams) { p.PolyType = 7 },
		"B":          func(p *SignParams) { p.B = -1 },
		"norm bound": func(p *SignParams) { p.KeyNormBound = 0 },
	}
	for name, mod := range tests {
		t.Run(name, func(t *testing.T) {
			p := base
			mod(&p)
			_, err := NewSignParams(p)
			require.Error(t, err)
		})
	}
	_, err := NewSignParams(SignParams{N: 11, Q: 24, NormBound: 1, KeyNormBound: 1})
	require.ErrorIs(t, err, errPow2)
}

func TestNewEncryptParamsErrors(t *testing.T) {
	tests := map[string]EncryptParams{
		"N":       {N: 1, Q: 64, Df: 1},
		"q":       {N: 107, Q: 63, Df: 15},
		"df":      {N: 107, Q: 64, Df: 54},
		"dg":      {N: 107, Q: 64, Df: 15, Dg: 60},
		"product": {N: 107, Q: 64, Df1: 3, Df2: 3, Df3: 3, PolyType: PolyProduct},
	}
	for name, p := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewEncryptParams(p)
			require.Error(t, err)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "transpose", BasisTranspose.String())
	require.Equal(t, "standard", BasisStandard.String())
	require.Equal(t, "float", KeyGenFloat.String())
	require.Equal(t, "resultant", KeyGenResultant.String())
	require.Equal(t, "product", PolyProduct.String())
	require.Equal(t, "simple", PolySimple.String())
	require.Equal(t, "ntt", NTT.String())
}
