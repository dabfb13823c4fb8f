// Package randutil builds reproducible random sources from derived seeds.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is a PCG source that can be reseeded from a single int64, which is
// the shape generation code hands around. It satisfies rand.Source and
// worldgen's Seeder. A Source is not safe for concurrent use.
type Source struct {
	pcg rand.PCG
}

// NewSource returns a Source seeded from seed.
func NewSource(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the source so it replays the sequence for seed.
func (s *Source) Seed(seed int64) {
	u := uint64(seed)
	s.pcg.Seed(mix(u), mix(u+goldenRatio64))
}

// Uint64 returns the next value in the sequence.
func (s *Source) Uint64() uint64 {
	return s.pcg.Uint64()
}

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	return rand.New(NewSource(seed))
}

// splitmix64 finaliser; spreads nearby seeds across both PCG words.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
