package ntru

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SigningPrivateKey holds the B+1 bases of a signing key in index order.
type SigningPrivateKey struct {
	Bases []*Basis
}

// SigningPublicKey is the h of the last basis.
type SigningPublicKey struct {
	H *IntPoly
	Q int64
}

// SigningKeyPair groups both halves of a signing key.
type SigningKeyPair struct {
	Private SigningPrivateKey
	Public  SigningPublicKey
}

// GenerateKeyPair generates the B+1 bases of a signing key on a worker pool.
// Each basis draws from its own RNG seeded with DeriveSeed(seed, index), so
// a fixed seed reproduces the key. A nil seed is drawn from crypto/rand.
func GenerateKeyPair(ctx context.Context, par SignParams, seed []byte) (*SigningKeyPair, error) {
	if seed == nil {
		var err error
		if seed, err = freshSeed(); err != nil {
			return nil, err
		}
	}
	bases := make([]*Basis, par.B+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range bases {
		i := i
		g.Go(func() error {
			rng, err := NewSeededRNG(DeriveSeed(seed, i))
			if err != nil {
				return err
			}
			b, err := generateBoundedBasis(gctx, par, rng)
			if err != nil {
				return fmt.Errorf("basis %d: %w", i, err)
			}
			bases[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	dbg("signing key %s: %d bases", par.Name, len(bases))
	return &SigningKeyPair{
		Private: SigningPrivateKey{Bases: bases},
		Public:  SigningPublicKey{H: bases[par.B].H, Q: par.Q},
	}, nil
}
