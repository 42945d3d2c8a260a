// Package io loads parameter sets from TOML or JSON files.
//
// A file may name a preset and override individual fields:
//
//	preset = "TEST157"
//	keygen_alg = "float"
//	key_norm_bound = 90.0
//
// Without a preset every required field must be given.
package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ntru-lattice/ntru"
)

type signFile struct {
	Preset       string   `toml:"preset" json:"preset"`
	Name         *string  `toml:"name" json:"name"`
	N            *int     `toml:"N" json:"N"`
	Q            *int64   `toml:"q" json:"q"`
	D            *int     `toml:"d" json:"d"`
	D1           *int     `toml:"d1" json:"d1"`
	D2           *int     `toml:"d2" json:"d2"`
	D3           *int     `toml:"d3" json:"d3"`
	B            *int     `toml:"B" json:"B"`
	BasisType    *string  `toml:"basis_type" json:"basis_type"`
	Beta         *float64 `toml:"beta" json:"beta"`
	NormBound    *float64 `toml:"norm_bound" json:"norm_bound"`
	KeyNormBound *float64 `toml:"key_norm_bound" json:"key_norm_bound"`
	PrimeCheck   *bool    `toml:"prime_check" json:"prime_check"`
	Sparse       *bool    `toml:"sparse" json:"sparse"`
	KeyGenAlg    *string  `toml:"keygen_alg" json:"keygen_alg"`
	PolyType     *string  `toml:"poly_type" json:"poly_type"`
	HashAlg      *string  `toml:"hash_alg" json:"hash_alg"`
}

type encryptFile struct {
	Preset   string  `toml:"preset" json:"preset"`
	Name     *string `toml:"name" json:"name"`
	N        *int    `toml:"N" json:"N"`
	Q        *int64  `toml:"q" json:"q"`
	Df       *int    `toml:"df" json:"df"`
	Df1      *int    `toml:"df1" json:"df1"`
	Df2      *int    `toml:"df2" json:"df2"`
	Df3      *int    `toml:"df3" json:"df3"`
	Dg       *int    `toml:"dg" json:"dg"`
	PolyType *string `toml:"poly_type" json:"poly_type"`
	FastFp   *bool   `toml:"fast_fp" json:"fast_fp"`
	Sparse   *bool   `toml:"sparse" json:"sparse"`
}

// decodeFile reads path as TOML (.toml) or JSON (.json), rejecting unknown
// keys.
func decodeFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(raw), v)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) != 0 {
			return fmt.Errorf("%s: unknown keys %v", path, undecoded)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: unsupported extension", path)
	}
	return nil
}

// LoadSignParams reads a signature parameter set.
func LoadSignParams(path string) (ntru.SignParams, error) {
	var f signFile
	if err := decodeFile(path, &f); err != nil {
		return ntru.SignParams{}, err
	}
	var p ntru.SignParams
	if f.Preset != "" {
		var err error
		if p, err = ntru.SignPreset(f.Preset); err != nil {
			return ntru.SignParams{}, err
		}
	}
	set(&p.Name, f.Name)
	set(&p.N, f.N)
	set(&p.Q, f.Q)
	set(&p.D, f.D)
	set(&p.D1, f.D1)
	set(&p.D2, f.D2)
	set(&p.D3, f.D3)
	set(&p.B, f.B)
	set(&p.Beta, f.Beta)
	set(&p.NormBound, f.NormBound)
	set(&p.KeyNormBound, f.KeyNormBound)
	set(&p.PrimeCheck, f.PrimeCheck)
	set(&p.Sparse, f.Sparse)
	set(&p.HashAlg, f.HashAlg)
	if f.BasisType != nil {
		t, err := parseBasisType(*f.BasisType)
		if err != nil {
			return ntru.SignParams{}, err
		}
		p.BasisType = t
	}
	if f.KeyGenAlg != nil {
		a, err := parseKeyGenAlg(*f.KeyGenAlg)
		if err != nil {
			return ntru.SignParams{}, err
		}
		p.KeyGenAlg = a
	}
	if f.PolyType != nil {
		t, err := parsePolyType(*f.PolyType)
		if err != nil {
			return ntru.SignParams{}, err
		}
		p.PolyType = t
	}
	p, err := ntru.NewSignParams(p)
	if err != nil {
		return ntru.SignParams{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadEncryptParams reads an encryption parameter set.
func LoadEncryptParams(path string) (ntru.EncryptParams, error) {
	var f encryptFile
	if err := decodeFile(path, &f); err != nil {
		return ntru.EncryptParams{}, err
	}
	var p ntru.EncryptParams
	if f.Preset != "" {
		var err error
		if p, err = ntru.EncryptPreset(f.Preset); err != nil {
			return ntru.EncryptParams{}, err
		}
	}
	set(&p.Name, f.Name)
	set(&p.N, f.N)
	set(&p.Q, f.Q)
	set(&p.Df, f.Df)
	set(&p.Df1, f.Df1)
	set(&p.Df2, f.Df2)
	set(&p.Df3, f.Df3)
	set(&p.Dg, f.Dg)
	set(&p.FastFp, f.FastFp)
	set(&p.Sparse, f.Sparse)
	if f.PolyType != nil {
		t, err := parsePolyType(*f.PolyType)
		if err != nil {
			return ntru.EncryptParams{}, err
		}
		p.PolyType = t
	}
	p, err := ntru.NewEncryptParams(p)
	if err != nil {
		return ntru.EncryptParams{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func parseBasisType(s string) (ntru.BasisType, error) {
	switch strings.ToLower(s) {
	case "standard":
		return ntru.BasisStandard, nil
	case "transpose":
		return ntru.BasisTranspose, nil
	}
	return 0, fmt.Errorf("invalid basis_type %q", s)
}

func parseKeyGenAlg(s string) (ntru.KeyGenAlg, error) {
	switch strings.ToLower(s) {
	case "resultant":
		return ntru.KeyGenResultant, nil
	case "float":
		return ntru.KeyGenFloat, nil
	}
	return 0, fmt.Errorf("invalid keygen_alg %q", s)
}

func parsePolyType(s string) (ntru.PolyType, error) {
	switch strings.ToLower(s) {
	case "simple":
		return ntru.PolySimple, nil
	case "product":
		return ntru.PolyProduct, nil
	}
	return 0, fmt.Errorf("invalid poly_type %q", s)
}
