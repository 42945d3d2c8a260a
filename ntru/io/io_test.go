package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ntru-lattice/ntru"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSignParamsPresetOverride(t *testing.T) {
	path := writeFile(t, "sign.toml", `
preset = "TEST157"
keygen_alg = "float"
key_norm_bound = 90.0
`)
	p, err := LoadSignParams(path)
	require.NoError(t, err)
	require.Equal(t, 157, p.N)
	require.Equal(t, int64(256), p.Q)
	require.Equal(t, ntru.KeyGenFloat, p.KeyGenAlg)
	require.Equal(t, 90.0, p.KeyNormBound)
	require.Equal(t, 8100.0, p.KeyNormBoundSq)
	require.Equal(t, ntru.BasisTranspose, p.BasisType)
}

func TestLoadSignParamsJSON(t *testing.T) {
	path := writeFile(t, "sign.json", `{
		"name": "custom", "N": 11, "q": 32, "d": 3, "B": 0,
		"basis_type": "standard", "beta": 0.3, "norm_bound": 100, "key_norm_bound": 40,
		"poly_type": "simple"
	}`)
	p, err := LoadSignParams(path)
	require.NoError(t, err)
	require.Equal(t, "custom", p.Name)
	require.Equal(t, 3, p.D)
	require.Equal(t, ntru.BasisStandard, p.BasisType)
	require.Equal(t, 1600.0, p.KeyNormBoundSq)
}

func TestLoadSignParamsErrors(t *testing.T) {
	cases := map[string]string{
		"unknown.toml": "preset = \"TEST157\"\nbogus = 1\n",
		"preset.toml":  "preset = \"NOPE\"\n",
		"modulus.toml": "preset = \"TEST157\"\nq = 100\n",
		"enum.toml":    "preset = \"TEST157\"\nbasis_type = \"diagonal\"\n",
		"ext.yaml":     "preset: TEST157\n",
		"unknown.json": `{"preset": "TEST157", "extra": true}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSignParams(writeFile(t, name, body))
			require.Error(t, err)
		})
	}
}

func TestLoadEncryptParams(t *testing.T) {
	p, err := LoadEncryptParams(writeFile(t, "enc.toml", `
preset = "APR2011_439_FAST"
`))
	require.NoError(t, err)
	require.Equal(t, ntru.PolyProduct, p.PolyType)
	require.Equal(t, 439/3, p.Dg)

	p, err = LoadEncryptParams(writeFile(t, "enc.json", `{"N": 107, "q": 64, "df": 15, "dg": 20}`))
	require.NoError(t, err)
	require.Equal(t, 20, p.Dg)
	require.False(t, p.FastFp)

	_, err = LoadEncryptParams(writeFile(t, "bad.toml", "N = 107\nq = 64\ndf = 15\npoly_type = \"product\"\n"))
	require.Error(t, err)
}
