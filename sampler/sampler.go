// SPDX-License-Identifier: MIT

package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/timtadh/data-structures/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/dpp"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// Stats summarizes an Exact run.
type Stats struct {
	Requested int
	Emitted   int
	// ProbabilitySum is Σ det(L[b,b])/Z over every enumerated b, ∅ included.
	ProbabilitySum float64
	Normalizer     float64
}

// Drift returns Emitted − Requested.
func (s Stats) Drift() int { return s.Emitted - s.Requested }

// Random draws n subsets: for each, m = 1 + rng.Intn(rankV) and the first
// min(m, dim) items of a uniform permutation of 0..dim-1.
//
// Errors: ErrCount, ErrDim, ErrRank.
func Random(n, dim, rankV int, rng *rand.Rand) ([]dataset.Subset, error) {
	switch {
	case n < 0:
		return nil, ErrCount
	case dim <= 0:
		return nil, ErrDim
	case rankV < 1:
		return nil, fmt.Errorf("rankV %d: %w", rankV, ErrRank)
	}
	if rng == nil {
		rng = kernel.NewRand(0)
	}
	out := make([]dataset.Subset, n)
	for i := range out {
		m := min(1+rng.Intn(rankV), dim)
		perm := kernel.Perm(dim, rng)
		out[i] = dataset.Subset(perm[:m:m])
	}
	return out, nil
}

// Exact enumerates the DPP law of L up to subsets of size maxSize and
// emits each subset round(n·P) times. maxSize is clamped to dim.
//
// Errors:
//   - ErrCount, ErrMaxSize.
//   - dpp.ErrNilKernel, dpp.ErrNonSquare, dpp.ErrDegenerateNormalizer (Z <= 0).
//
// Complexity: O(Σ_{m<=maxSize} C(dim,m)·m³).
func Exact(L mat.Matrix, maxSize, n int) ([]dataset.Subset, Stats, error) {
	st := Stats{Requested: n}
	if n < 0 {
		return nil, st, ErrCount
	}
	if maxSize < 0 {
		return nil, st, ErrMaxSize
	}
	z, err := dpp.Normalizer(L)
	if err != nil {
		return nil, st, err
	}
	if z <= 0 || math.IsNaN(z) {
		return nil, st, fmt.Errorf("Z = %g: %w", z, dpp.ErrDegenerateNormalizer)
	}
	st.Normalizer = z
	dim, _ := L.Dims()
	maxSize = min(maxSize, dim)

	var out []dataset.Subset
	emit := func(b []int, p float64) {
		st.ProbabilitySum += p
		for k := copies(n, p); k > 0; k-- {
			out = append(out, append(dataset.Subset{}, b...))
		}
	}

	emit(nil, 1/z)
	b := make([]int, 0, maxSize)
	for m := 1; m <= maxSize; m++ {
		gen := combin.NewCombinationGenerator(dim, m)
		for gen.Next() {
			b = gen.Combination(b[:m])
			w, err := dpp.Weight(L, b)
			if err != nil {
				return nil, st, err
			}
			emit(b, w/z)
		}
	}
	st.Emitted = len(out)
	if st.Drift() != 0 {
		errors.Logf("INFO", "exact sampler: emitted %d of %d subsets (probability sum %.6f)",
			st.Emitted, st.Requested, st.ProbabilitySum)
	}
	return out, st, nil
}

// copies returns round-half-even(n·p), clamped at zero.
func copies(n int, p float64) int {
	c := math.RoundToEven(float64(n) * p)
	if c <= 0 || math.IsNaN(c) {
		return 0
	}
	return int(c)
}

// ExactFromParameters builds L from p and runs Exact with
// maxSize = max(rankV, rankB). Structural errors in p are reported before
// any determinant is computed.
func ExactFromParameters(p *kernel.Parameters, n int) ([]dataset.Subset, Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, Stats{Requested: n}, err
	}
	L, err := kernel.Build(p)
	if err != nil {
		return nil, Stats{Requested: n}, err
	}
	return Exact(L, max(p.RankV(), p.RankB()), n)
}

// ExactFromFactors draws V, B and C uniformly on [kernel.InitLow,
// kernel.InitHigh) without a reweighting stack and samples exactly.
func ExactFromFactors(dim, rankV, rankB, n int, rng *rand.Rand) ([]dataset.Subset, Stats, error) {
	p, err := kernel.NewParameters(dim, rankV, rankB, nil, rng)
	if err != nil {
		return nil, Stats{Requested: n}, err
	}
	return ExactFromParameters(p, n)
}
