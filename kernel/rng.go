// SPDX-License-Identifier: MIT

// Package kernel - RNG utilities shared by initialization and sampling.
//
// Goals:
//   - Determinism: same seed ⇒ identical factors and samples.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
package kernel

import "math/rand"

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the provided seed verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = DefaultSeed
	}
	return rand.New(rand.NewSource(s))
}

// orDefault substitutes the default stream for a nil rng.
func orDefault(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return NewRand(0)
	}
	return rng
}

// Perm returns a uniform random permutation of 0..n-1 (Fisher–Yates).
// If rng==nil the default deterministic stream is used. n<=0 yields an
// empty slice.
//
// Complexity: O(n) time, O(n) space.
func Perm(n int, rng *rand.Rand) []int {
	if n <= 0 {
		return []int{}
	}
	r := orDefault(rng)
	p := make([]int, n)
	var i, j int
	for i = 0; i < n; i++ {
		p[i] = i
	}
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// fillUniform overwrites dst with draws from U[lo, hi).
func fillUniform(dst []float64, lo, hi float64, rng *rand.Rand) {
	span := hi - lo
	for i := range dst {
		dst[i] = lo + span*rng.Float64()
	}
}
