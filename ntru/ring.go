package ntru

import (
	"fmt"
	"sync"

	"github.com/tuneinsight/lattigo/v4/ring"
)

type ringKey struct {
	degree int
	prime  uint64
}

// rings caches one lattigo ring per (degree, prime); building the NTT
// tables is far more costly than a single convolution.
var rings sync.Map

// nttRing returns the cached ring Z_prime[X]/(X^degree+1).
func nttRing(degree int, prime uint64) (*ring.Ring, error) {
	key := ringKey{degree, prime}
	if r, ok := rings.Load(key); ok {
		return r.(*ring.Ring), nil
	}
	if degree == 0 || degree&(degree-1) != 0 {
		return nil, fmt.Errorf("ring degree %d must be a power of two", degree)
	}
	r, err := ring.NewRing(degree, []uint64{prime})
	if err != nil {
		return nil, fmt.Errorf("ring N=%d q=%d: %w", degree, prime, err)
	}
	actual, _ := rings.LoadOrStore(key, r)
	return actual.(*ring.Ring), nil
}
