// SPDX-License-Identifier: MIT

package likelihood

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/dpp"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// Loss returns the minibatch negative log-likelihood of p and its gradient.
//
// Implementation:
//   - Stage 1: L = kernel.Build(p).
//   - Stage 2: for each scored subset S, subtract log det(L[S,S]) and
//     scatter −(1/N)·L[S,S]⁻ᵀ into G = ∂loss/∂L.
//   - Stage 3: add log det(I+L) and (I+L)⁻ᵀ into G.
//   - Stage 4: kernel.Backward(p, G).
//
// Errors:
//   - kernel validation sentinels, kernel.ErrNonFinite.
//   - dpp.ErrOutOfRange for items outside the universe.
//   - dpp.ErrDegenerateWeight, dpp.ErrDegenerateNormalizer.
//
// Complexity: O(N·k³ + dim³ + dim²·(rankV+rankB)) for max subset size k.
func Loss(p *kernel.Parameters, batch []dataset.Subset, policy Policy) (float64, *kernel.Gradients, error) {
	L, err := kernel.Build(p)
	if err != nil {
		return 0, nil, err
	}
	G := mat.NewDense(p.Dim, p.Dim, nil)
	n := float64(max(len(batch), 1))

	var acc float64
	for i, S := range batch {
		if !policy.Scores(len(S)) {
			continue
		}
		lw, err := dpp.AccumulateLogWeight(L, S, -1/n, G)
		if err != nil {
			return 0, nil, fmt.Errorf("batch entry %d: %w", i, err)
		}
		acc -= lw
	}
	lz, err := dpp.AccumulateLogNormalizer(L, 1, G)
	if err != nil {
		return 0, nil, err
	}

	grads, err := kernel.Backward(p, G)
	if err != nil {
		return 0, nil, err
	}
	return acc/n + lz, grads, nil
}

// Value returns the minibatch loss for a prebuilt kernel, without gradients.
func Value(L mat.Matrix, batch []dataset.Subset, policy Policy) (float64, error) {
	acc, err := accumulate(L, batch, policy)
	if err != nil {
		return 0, err
	}
	lz, err := dpp.LogNormalizer(L)
	if err != nil {
		return 0, err
	}
	return acc/float64(max(len(batch), 1)) + lz, nil
}

// accumulate returns −Σ log det(L[S,S]) over the scored subsets of batch.
func accumulate(L mat.Matrix, batch []dataset.Subset, policy Policy) (float64, error) {
	var acc float64
	for i, S := range batch {
		if !policy.Scores(len(S)) {
			continue
		}
		lw, err := dpp.LogWeight(L, S)
		if err != nil {
			return 0, fmt.Errorf("batch entry %d: %w", i, err)
		}
		acc -= lw
	}
	return acc, nil
}

// Evaluate runs one full epoch of it against the current parameters and
// returns the aggregate loss: the per-entry average over every batch
// entry seen, plus log det(I+L). L is built once; p is not modified. The
// iterator is rewound before and after the pass.
//
// Errors: as Loss, plus ErrNilIterator.
func Evaluate(p *kernel.Parameters, it *dataset.SerialIterator, policy Policy) (float64, error) {
	if it == nil {
		return 0, ErrNilIterator
	}
	L, err := kernel.Build(p)
	if err != nil {
		return 0, err
	}
	it.Reset()
	defer it.Reset()

	var acc float64
	n := 0
	for {
		batch, ok := it.Next()
		if !ok {
			break
		}
		v, err := accumulate(L, batch, policy)
		if err != nil {
			return 0, err
		}
		acc += v
		n += len(batch)
		if it.IsNewEpoch() {
			break
		}
	}
	lz, err := dpp.LogNormalizer(L)
	if err != nil {
		return 0, err
	}
	return acc/float64(max(n, 1)) + lz, nil
}
