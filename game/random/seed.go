// Package random provides seed generation and seedable pseudo-random sources.
//
// Game boards never read from a process-wide generator. Callers create a
// source with New and hand it to the engine, so a game started from a known
// seed replays tile placement exactly.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}

// New returns a PCG-backed generator for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
