package ntru

import (
	"context"
	"math/big"

	"golang.org/x/sync/errgroup"

	"ntru-lattice/internal/euclid"
)

// Resultant holds res = Res(f, x^N-1) together with rho such that
// rho·f ≡ res mod (x^N-1).
type Resultant struct {
	Rho *BigPoly
	Res *big.Int
}

// ModularResultant is a Resultant known modulo Modulus.
type ModularResultant struct {
	Resultant
	Modulus *big.Int
}

// ResultantMod computes the resultant of f and x^N-1 modulo the prime p by
// pseudo-division, tracking the cofactor of f.
func (f *IntPoly) ResultantMod(p int64) ModularResultant {
	N := len(f.Coeffs) + 1
	a := make([]int64, N)
	a[0] = -1
	a[N-1] = 1
	b := make([]int64, N)
	copy(b, f.Coeffs)
	v1 := make([]int64, N)
	v2 := make([]int64, N)
	v2[0] = 1

	da := N - 1
	db := degreeOf(b)
	ta := da
	r := int64(1)
	for db > 0 {
		c := euclid.InvertMod(b[db], p)
		c = c * a[da] % p
		multShiftSub(a, b, c, da-db, p)
		multShiftSub(v1, v2, c, da-db, p)

		da = degreeOf(a)
		if da < db {
			r = r * euclid.PowMod(b[db], int64(ta-da), p) % p
			if ta%2 == 1 && db%2 == 1 {
				r = -r % p
			}
			a, b = b, a
			v1, v2 = v2, v1
			ta = db
			da, db = db, da
		}
	}
	r = r * euclid.PowMod(b[0], int64(da), p) % p
	c := euclid.InvertMod(b[0], p)
	for i := range v2 {
		v2[i] = v2[i] * c % p * r % p
	}

	return ModularResultant{
		Resultant: Resultant{Rho: BigPolyFromInt64(v2[:N-1]), Res: big.NewInt(r)},
		Modulus:   big.NewInt(p),
	}
}

// multShiftSub sets a -= x^k·b·c mod p over the first len(a) coefficients.
func multShiftSub(a, b []int64, c int64, k int, p int64) {
	for i := k; i < len(a); i++ {
		a[i] = (a[i] - b[i-k]*c) % p
	}
}

// resultantBound returns twice a Hadamard type bound on |Res(f, x^N-1)|.
func resultantBound(f *IntPoly) *big.Int {
	N := len(f.Coeffs)
	bound := new(big.Int).Exp(f.SquareSum(), big.NewInt(int64((N+1)/2)), nil)
	bound.Lsh(bound, uint((f.Degree()+1)/2))
	return bound.Lsh(bound, 1)
}

// resultantCollector gathers modular resultants until their moduli pin
// down Res(f, x^N-1). A prime dividing the resultant yields a zero residue
// and a zero cofactor, so it is kept out of the CRT set. Those primes still
// bound the resultant: once their product reaches the bound, res is zero.
type resultantCollector struct {
	N        int
	bound    *big.Int
	kept     []ModularResultant
	prod     *big.Int
	zeroProd *big.Int
	skipped  int
}

func newResultantCollector(f *IntPoly) *resultantCollector {
	return &resultantCollector{
		N:        len(f.Coeffs),
		bound:    resultantBound(f),
		prod:     big.NewInt(1),
		zeroProd: big.NewInt(1),
	}
}

func (c *resultantCollector) add(m ModularResultant) {
	if m.Res.Sign() == 0 {
		c.skipped++
		c.zeroProd.Mul(c.zeroProd, m.Modulus)
		return
	}
	c.kept = append(c.kept, m)
	c.prod.Mul(c.prod, m.Modulus)
}

func (c *resultantCollector) isZero() bool {
	return c.skipped > 0 && c.zeroProd.Cmp(c.bound) >= 0
}

func (c *resultantCollector) done() bool {
	return c.isZero() || (len(c.kept) > 0 && c.prod.Cmp(c.bound) >= 0)
}

// missing estimates how many more primes are needed. Every prime exceeds
// 2^12.
func (c *resultantCollector) missing() int {
	have := max(c.prod.BitLen(), c.zeroProd.BitLen())
	return max(c.bound.BitLen()-have, 0)/12 + 1
}

func (c *resultantCollector) zeroResultant() Resultant {
	return Resultant{Rho: NewBigPoly(c.N), Res: new(big.Int)}
}

// Resultant computes Res(f, x^N-1) exactly from enough modular resultants.
func (f *IntPoly) Resultant() Resultant {
	c := newResultantCollector(f)
	var src primeSource
	for !c.done() {
		c.add(f.ResultantMod(src.Next()))
	}
	dbg("resultant N=%d primes=%d skipped=%d", c.N, len(c.kept), c.skipped)
	if c.isZero() {
		return c.zeroResultant()
	}
	work := c.kept
	for len(work) > 1 {
		combined := CombineRes(work[0], work[1])
		work = append(work[2:], combined)
	}
	return work[0].centered()
}

// ResultantParallel is Resultant with the modular resultants computed on at
// most workers goroutines (no limit when workers <= 0) and combined by a
// concurrent reduction tree. The result equals Resultant.
func (f *IntPoly) ResultantParallel(ctx context.Context, workers int) (Resultant, error) {
	c := newResultantCollector(f)
	var src primeSource
	for !c.done() {
		primes := make([]int64, c.missing())
		for i := range primes {
			primes[i] = src.Next()
		}
		mods := make([]ModularResultant, len(primes))

		g, gctx := errgroup.WithContext(ctx)
		if workers > 0 {
			g.SetLimit(workers)
		}
		for i, p := range primes {
			i, p := i, p
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				mods[i] = f.ResultantMod(p)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Resultant{}, err
		}
		// primes past the stopping point are dropped so the CRT set is
		// the one Resultant uses
		for _, m := range mods {
			if c.done() {
				break
			}
			c.add(m)
		}
	}
	if c.isZero() {
		return c.zeroResultant(), nil
	}

	mods := c.kept
	for len(mods) > 1 {
		if err := ctx.Err(); err != nil {
			return Resultant{}, err
		}
		next := make([]ModularResultant, (len(mods)+1)/2)
		var eg errgroup.Group
		if workers > 0 {
			eg.SetLimit(workers)
		}
		for i := 0; i+1 < len(mods); i += 2 {
			i := i
			eg.Go(func() error {
				next[i/2] = CombineRes(mods[i], mods[i+1])
				return nil
			})
		}
		if len(mods)%2 == 1 {
			next[len(next)-1] = mods[len(mods)-1]
		}
		_ = eg.Wait()
		mods = next
	}
	return mods[0].centered(), nil
}

// CombineRes merges two modular resultants with coprime moduli into one
// valid modulo their product.
func CombineRes(a, b ModularResultant) ModularResultant {
	c := crtFor(a.Modulus, b.Modulus)
	m := combineRho(c, a, b)
	m.Res = c.combine(a.Res, b.Res)
	return m
}

// CombineRho is CombineRes for rho only; the returned Res is nil.
func CombineRho(a, b ModularResultant) ModularResultant {
	return combineRho(crtFor(a.Modulus, b.Modulus), a, b)
}

func combineRho(c *crtPair, a, b ModularResultant) ModularResultant {
	a.Rho.checkLen(b.Rho)
	rho := &BigPoly{Coeffs: make([]*big.Int, len(a.Rho.Coeffs))}
	for i := range rho.Coeffs {
		rho.Coeffs[i] = c.combine(a.Rho.Coeffs[i], b.Rho.Coeffs[i])
	}
	return ModularResultant{Resultant: Resultant{Rho: rho}, Modulus: c.prod}
}

func crtFor(m1, m2 *big.Int) *crtPair {
	x, y, _ := euclid.Big(m2, m1)
	return newCRTPair(m1, m2, x, y)
}

// centered maps res and rho into [-P/2, P/2] for P = m.Modulus.
func (m ModularResultant) centered() Resultant {
	res := new(big.Int).Set(m.Res)
	centerBig(res, m.Modulus)
	return Resultant{Rho: m.Rho.Center(m.Modulus), Res: res}
}
