package statistics

import (
	"fmt"
	"math"
	"math/bits"
)

// SeedStats accumulates distribution checks over derived seeds. For a
// uniformly distributed 64-bit output every bit is set half the time, the
// popcount averages 32 with standard deviation 4, zeros practically never
// appear and distinct events practically never collide.
type SeedStats struct {
	Samples    int
	Zeros      int
	Collisions int

	SumPop  float64
	SumPop2 float64 // Sum of squares for variance calculation

	BitOnes [64]int

	seen map[int64]struct{}
}

// Add incorporates one derived seed. Callers add one seed per distinct
// generation event, so a repeated value counts as a collision.
func (s *SeedStats) Add(seed int64) {
	if s.seen == nil {
		s.seen = make(map[int64]struct{})
	}
	s.Samples++
	if seed == 0 {
		s.Zeros++
	}
	if _, dup := s.seen[seed]; dup {
		s.Collisions++
	}
	s.seen[seed] = struct{}{}

	u := uint64(seed)
	pop := float64(bits.OnesCount64(u))
	s.SumPop += pop
	s.SumPop2 += pop * pop
	for u != 0 {
		i := bits.TrailingZeros64(u)
		s.BitOnes[i]++
		u &= u - 1
	}
}

// Merge folds other into s, counting seeds present in both as collisions.
func (s *SeedStats) Merge(other *SeedStats) {
	if other == nil || other.Samples == 0 {
		return
	}
	if s.seen == nil {
		s.seen = make(map[int64]struct{}, len(other.seen))
	}
	for seed := range other.seen {
		if _, dup := s.seen[seed]; dup {
			s.Collisions++
		}
		s.seen[seed] = struct{}{}
	}
	s.Samples += other.Samples
	s.Zeros += other.Zeros
	s.Collisions += other.Collisions
	s.SumPop += other.SumPop
	s.SumPop2 += other.SumPop2
	for i := range s.BitOnes {
		s.BitOnes[i] += other.BitOnes[i]
	}
}

// MeanPopCount returns the average number of set bits per seed.
func (s *SeedStats) MeanPopCount() float64 {
	if s.Samples == 0 {
		return 0
	}
	return s.SumPop / float64(s.Samples)
}

// PopCountVariance returns the sample variance of the popcount.
func (s *SeedStats) PopCountVariance() float64 {
	if s.Samples < 2 {
		return 0
	}
	mean := s.MeanPopCount()
	return (s.SumPop2 - float64(s.Samples)*mean*mean) / float64(s.Samples-1)
}

// PopCountStdDev returns the sample standard deviation of the popcount.
func (s *SeedStats) PopCountStdDev() float64 {
	return math.Sqrt(s.PopCountVariance())
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// popcount.
func (s *SeedStats) ConfidenceInterval95() (float64, float64) {
	if s.Samples == 0 {
		return 0, 0
	}
	mean := s.MeanPopCount()
	margin := 1.96 * s.PopCountStdDev() / math.Sqrt(float64(s.Samples))
	return mean - margin, mean + margin
}

// BitFrequency returns how often bit i was set.
func (s *SeedStats) BitFrequency(i int) float64 {
	if s.Samples == 0 || i < 0 || i >= 64 {
		return 0
	}
	return float64(s.BitOnes[i]) / float64(s.Samples)
}

// BitBias returns the largest deviation of any bit frequency from 0.5, and
// the bit it was observed on.
func (s *SeedStats) BitBias() (float64, int) {
	worst, at := 0.0, 0
	for i := range s.BitOnes {
		if d := math.Abs(s.BitFrequency(i) - 0.5); d > worst {
			worst, at = d, i
		}
	}
	return worst, at
}

// Validate checks the sample for collisions, zeros and per-bit bias beyond
// maxBias.
func (s *SeedStats) Validate(maxBias float64) error {
	if s.Samples <= 0 {
		return fmt.Errorf("invalid sample count: %d", s.Samples)
	}
	if s.Collisions > 0 {
		return fmt.Errorf("%d collisions in %d samples", s.Collisions, s.Samples)
	}
	if s.Zeros > 0 {
		return fmt.Errorf("%d zero seeds in %d samples", s.Zeros, s.Samples)
	}
	if bias, bit := s.BitBias(); bias > maxBias {
		return fmt.Errorf("bit %d set with frequency %.4f (bias %.4f > %.4f)", bit, s.BitFrequency(bit), bias, maxBias)
	}
	return nil
}
