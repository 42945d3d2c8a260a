// Package report summarises the coefficient distributions of generated keys
// and renders them as HTML histograms.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"ntru-lattice/ntru"
	"ntru-lattice/prof"
)

// Summary holds descriptive statistics of one series.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	IQR    float64 `json:"iqr"`
}

// Summarize computes the statistics of x. It needs at least two values.
func Summarize(x []float64) (Summary, error) {
	if len(x) < 2 {
		return Summary{}, fmt.Errorf("summarize: %d values, need at least 2", len(x))
	}
	data := stats.Float64Data(x)
	s := Summary{Count: len(x)}
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.Std, err = stats.StandardDeviationSample(data); err != nil {
		return Summary{}, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, err
	}
	q, err := stats.Quartile(data)
	if err != nil {
		return Summary{}, err
	}
	s.Q1, s.Q3 = q.Q1, q.Q3
	s.IQR = q.Q3 - q.Q1
	return s, nil
}

// Series is a named list of observations.
type Series struct {
	Name   string
	Values []float64
}

// Report is the outcome of a key generation sweep.
type Report struct {
	Params  string
	Runs    int
	Series  []Series
	Stats   map[string]Summary
	Timings []prof.Total
}

func (r *Report) add(name string, vals []float64) {
	for i := range r.Series {
		if r.Series[i].Name == name {
			r.Series[i].Values = append(r.Series[i].Values, vals...)
			return
		}
	}
	r.Series = append(r.Series, Series{Name: name, Values: vals})
}

func (r *Report) summarize(rec *prof.Recorder) error {
	r.Stats = make(map[string]Summary, len(r.Series))
	for _, s := range r.Series {
		st, err := Summarize(s.Values)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Name, err)
		}
		r.Stats[s.Name] = st
	}
	r.Timings = rec.Totals()
	return nil
}

func floats(xs []int64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}
	return out
}

// ErrInvalidKey is returned when a generated basis fails verification.
var ErrInvalidKey = errors.New("report: generated basis failed verification")

// SweepSign generates runs signing keys, the i-th from DeriveSeed(seed, i),
// verifies every basis and collects the coefficients of f, g, F, G and h
// together with the centered norms of F and G.
func SweepSign(ctx context.Context, par ntru.SignParams, runs int, seed []byte) (*Report, error) {
	var rec prof.Recorder
	r := &Report{Params: par.Name, Runs: runs}
	for i := 0; i < runs; i++ {
		start := time.Now()
		kp, err := ntru.GenerateKeyPair(ctx, par, ntru.DeriveSeed(seed, i))
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		rec.Track(start, "keygen")

		for j, b := range kp.Private.Bases {
			start = time.Now()
			ok := b.Verify()
			rec.Track(start, "verify")
			if !ok {
				return nil, fmt.Errorf("run %d basis %d: %w", i, j, ErrInvalidKey)
			}
			r.add("f", floats(b.F.Dense().Coeffs))
			r.add("g", floats(b.G().Dense().Coeffs))
			r.add("F", floats(b.BigF.Coeffs))
			r.add("G", floats(b.BigG.Coeffs))
			r.add("h", floats(b.H.Coeffs))
			r.add("|F|", []float64{math.Sqrt(float64(b.BigF.CenteredNormSq(par.Q)))})
			r.add("|G|", []float64{math.Sqrt(float64(b.BigG.CenteredNormSq(par.Q)))})
		}
	}
	if err := r.summarize(&rec); err != nil {
		return nil, err
	}
	return r, nil
}

// SweepEncrypt generates runs encryption keys and collects the coefficients
// of f and h.
func SweepEncrypt(ctx context.Context, par ntru.EncryptParams, runs int, seed []byte) (*Report, error) {
	var rec prof.Recorder
	r := &Report{Params: par.Name, Runs: runs}
	for i := 0; i < runs; i++ {
		start := time.Now()
		kp, err := ntru.GenerateEncryptionKeyPair(ctx, par, ntru.DeriveSeed(seed, i))
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
		rec.Track(start, "keygen")
		r.add("f", floats(kp.F().Coeffs))
		r.add("h", floats(kp.H.Coeffs))
	}
	if err := r.summarize(&rec); err != nil {
		return nil, err
	}
	return r, nil
}

type jsonReport struct {
	Params  string             `json:"params"`
	Runs    int                `json:"runs"`
	Stats   map[string]Summary `json:"stats"`
	Timings []jsonTiming       `json:"timings"`
}

type jsonTiming struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	MeanMs float64 `json:"mean_ms"`
}

func meanMs(t prof.Total) float64 {
	if t.Count == 0 {
		return 0
	}
	return float64(t.Sum.Microseconds()) / 1000 / float64(t.Count)
}

// WriteJSON writes the statistics and timings as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	out := jsonReport{Params: r.Params, Runs: r.Runs, Stats: r.Stats}
	for _, t := range r.Timings {
		out.Timings = append(out.Timings, jsonTiming{Label: t.Label, Count: t.Count, MeanMs: meanMs(t)})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
