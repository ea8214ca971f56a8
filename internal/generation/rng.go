package generation

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness every stochastic stage consumes
type Source interface {
	Float64() float64
	Intn(n int) int
}

// RNG is a simple seeded random number generator (LCG)
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed}
}

// Uint64 returns a pseudo-random uint64
func (r *RNG) Uint64() uint64 {
	// LCG parameters from Numerical Recipes
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 returns a pseudo-random float64 in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a pseudo-random int in [0, n)
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits: the low bits of an LCG cycle with short periods.
	return int((r.Uint64() >> 33) % uint64(n))
}

var (
	defaultOnce sync.Once
	defaultRNG  *RNG
)

// DefaultSource returns the process-wide generator, seeded once from system
// entropy. It is not safe for concurrent runs; those need their own RNG.
func DefaultSource() *RNG {
	defaultOnce.Do(func() {
		defaultRNG = NewRNG(rand.Uint64())
	})
	return defaultRNG
}

// Uniform returns a float in [min, max)
func Uniform(src Source, min, max float64) float64 {
	return min + (max-min)*src.Float64()
}

// Chance returns true with probability p
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Shuffled returns a Fisher-Yates shuffled copy of items
func Shuffled[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SampleOne picks a uniformly random element; ok is false for empty input
func SampleOne[T any](src Source, items []T) (item T, ok bool) {
	if len(items) == 0 {
		return item, false
	}
	return items[src.Intn(len(items))], true
}

// WeightedIndex picks an index with probability proportional to its
// weight. Non-positive weights are never chosen; -1 means nothing was
// choosable.
func WeightedIndex(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := src.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if roll < w {
			return i
		}
		roll -= w
	}
	return last
}
