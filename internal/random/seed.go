// Package random provides seed generation and the seeded stream every game
// session draws from.
//
// A session owns exactly one stream. Reusing a seed reproduces every symbol
// draw, critical roll, dodge roll, enemy name and loot drop in the same order.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// SeedSource records where a session seed came from.
type SeedSource string

const (
	// SeedSourceGenerated marks seeds produced by NewSeed.
	SeedSourceGenerated SeedSource = "generated"
	// SeedSourceReplay marks seeds supplied by the caller for replay.
	SeedSourceReplay SeedSource = "replay"
)

// Source is the random stream consumed by the game core.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a non-negative int in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a float in [0.0, 1.0).
	Float64() float64
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the requested seed when one is given, otherwise a fresh
// seed from generate.
func ResolveSeed(requested *int64, generate func() (int64, error)) (int64, SeedSource, error) {
	if requested != nil {
		return *requested, SeedSourceReplay, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	seed, err := generate()
	if err != nil {
		return 0, "", err
	}
	return seed, SeedSourceGenerated, nil
}

// NewStream returns the deterministic stream for seed.
func NewStream(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
