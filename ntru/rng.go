package ntru

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

// Source yields uniform indices for ternary sampling.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// RNG draws uniform integers from a byte stream without modulo bias. It is
// not safe for concurrent use; give each goroutine its own instance.
type RNG struct {
	r   io.Reader
	buf [8]byte
}

// NewRNG wraps r.
func NewRNG(r io.Reader) *RNG {
	return &RNG{r: r}
}

// NewSecureRNG reads from crypto/rand.
func NewSecureRNG() *RNG {
	return NewRNG(rand.Reader)
}

// NewSeededRNG returns a deterministic RNG keyed by seed.
func NewSeededRNG(seed []byte) (*RNG, error) {
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("keyed PRNG: %w", err)
	}
	return NewRNG(prng), nil
}

// Intn returns a uniform integer in [0, n). It panics if n <= 0 or if the
// underlying reader fails.
func (g *RNG) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("ntru: Intn bound %d", n))
	}
	rangeSize := uint64(n)
	threshold := (^uint64(0) / rangeSize) * rangeSize
	for {
		if _, err := io.ReadFull(g.r, g.buf[:]); err != nil {
			panic(fmt.Errorf("ntru: rng read: %w", err))
		}
		word := binary.LittleEndian.Uint64(g.buf[:])
		if word < threshold {
			return int(word % rangeSize)
		}
	}
}

// SeedSize is the length of seeds produced by DeriveSeed.
const SeedSize = 32

// DeriveSeed expands master and index into an independent task seed with
// SHAKE256.
func DeriveSeed(master []byte, index int) []byte {
	h := sha3.NewShake256()
	h.Write(master)
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], uint64(index))
	h.Write(idx[:])
	out := make([]byte, SeedSize)
	h.Read(out)
	return out
}

// freshSeed draws a master seed from crypto/rand.
func freshSeed() ([]byte, error) {
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return seed, nil
}
