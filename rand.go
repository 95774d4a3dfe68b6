// rand.go - the RNG capability threaded through Perfectionist and BMZ
//
// Adapted from utils.go, (c) Sudhi Herle 2018, github.com/opencoff/go-mph
//
// License GPLv2
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim is made to its
// suitability for any purpose.
//
// The original free-standing rand64() helper (crypto/rand, panic on
// failure) becomes an Rng interface here so randomness is an explicit
// capability rather than a hidden global, with a second, deterministic
// implementation for reproducible construction.

package mph

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/rand/v2"
)

// Rng is the sole source of non-determinism for Perfectionist and BMZ.
// Given the same seed, a DeterministicRng reproduces the same construction.
type Rng interface {
	// Uint64 returns the next 64-bit pseudo-random value.
	Uint64() uint64
}

// CryptoRng draws randomness from crypto/rand. It is the default used by
// UsingDefaults() and panics if the system CSPRNG is unavailable.
type CryptoRng struct{}

// Uint64 implements Rng.
func (CryptoRng) Uint64() uint64 {
	return rand64()
}

// DeterministicRng wraps math/rand/v2's PCG generator so tests (and callers
// who want reproducible MPHF construction) can seed it explicitly.
type DeterministicRng struct {
	src *rand.PCG
}

// NewDeterministicRng builds a DeterministicRng seeded by (seed1, seed2).
// The same pair always produces the same sequence of Uint64 values.
func NewDeterministicRng(seed1, seed2 uint64) *DeterministicRng {
	return &DeterministicRng{src: rand.NewPCG(seed1, seed2)}
}

// Uint64 implements Rng.
func (d *DeterministicRng) Uint64() uint64 {
	return d.src.Uint64()
}

func rand64() uint64 {
	var b [8]byte

	_, err := io.ReadFull(rand.Reader, b[:])
	if err != nil {
		panic("mph: can't read crypto/rand")
	}

	return binary.BigEndian.Uint64(b[:])
}
