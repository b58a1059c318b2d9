// Package random provides the seedable random source shared by the
// simulation models.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the subset of *rand.Rand the models draw from.
type Source interface {
	Float64() float64
	NormFloat64() float64
	IntN(n int) int
}

// New returns a PCG-backed generator. Equal seeds yield equal sequences.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Uniform returns a float drawn uniformly from [lo, hi].
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// IntBetween returns an integer drawn uniformly from [lo, hi].
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Weighted picks an index from weights proportionally to its weight.
// Weights need not sum to one. It returns -1 for an empty or all-zero slice.
func Weighted(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	x := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if x < w {
			return i
		}
		x -= w
	}
	return last
}
