// Package randutil derives reproducible random sources for decks and AI seats.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// All call sites derive the two PCG seeds the same way so that a table seed
// replays identical shuffles and AI decisions.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// FromSeed returns a deterministic source when seed is non-nil and a
// time-seeded one otherwise.
func FromSeed(seed *int64) *rand.Rand {
	if seed != nil {
		return New(*seed)
	}
	return New(time.Now().UnixNano())
}

// Derive returns an independent child source for stream n of a parent seed.
// Tables use it to give the deck and every AI seat their own stream.
func Derive(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) ^ mix(uint64(n)+goldenRatio64))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
