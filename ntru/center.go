package ntru

import "slices"

// ShiftGap centers p modulo q and then translates all coefficients so that
// the largest gap between consecutive sorted values straddles ±q/2, in
// place.
func (p *IntPoly) ShiftGap(q int64) *IntPoly {
	if len(p.Coeffs) == 0 {
		return p
	}
	p.Center0(q)
	sorted := slices.Clone(p.Coeffs)
	slices.Sort(sorted)
	var maxRange, maxRangeStart int64
	for i := 0; i < len(sorted)-1; i++ {
		r := sorted[i+1] - sorted[i]
		if r > maxRange {
			maxRange = r
			maxRangeStart = sorted[i]
		}
	}
	pmin := sorted[0]
	pmax := sorted[len(sorted)-1]
	j := q - pmax + pmin
	var shift int64
	if j > maxRange {
		shift = (pmax + pmin) / 2
	} else {
		shift = maxRangeStart + maxRange/2 + q/2
	}
	return p.SubConst(shift)
}

// CenteredNormSq returns the centered squared norm of p modulo q:
// after ShiftGap, sum(c^2) - sum(c)^2/N. p is not modified.
func (p *IntPoly) CenteredNormSq(q int64) int64 {
	N := int64(len(p.Coeffs))
	if N == 0 {
		return 0
	}
	c := p.Clone().ShiftGap(q)
	var sum, sumSq int64
	for _, v := range c.Coeffs {
		sum += v
		sumSq += v * v
	}
	return sumSq - sum*sum/N
}
