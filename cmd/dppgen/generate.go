// SPDX-License-Identifier: MIT

package main

import (
	"io"

	"github.com/timtadh/data-structures/errors"

	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/persist"
	"github.com/shizuo-kaji/DeterminantalPointProcess/sampler"
)

// generate samples according to a and writes the dataset text format.
func generate(a *genArgs, out io.Writer) error {
	rng := kernel.NewRand(a.Seed)

	var (
		subsets []dataset.Subset
		st      sampler.Stats
		err     error
	)
	switch {
	case a.Random:
		subsets, err = sampler.Random(a.N, a.Dim, a.RankV, rng)
	case a.Kernel != "":
		L, lerr := persist.LoadMatrix(a.Kernel)
		if lerr != nil {
			return lerr
		}
		maxSize := a.MaxSize
		if maxSize < 0 {
			maxSize = max(a.RankV, a.RankB)
		}
		subsets, st, err = sampler.Exact(L, maxSize, a.N)
	default:
		subsets, st, err = sampler.ExactFromFactors(a.Dim, a.RankV, a.RankB, a.N, rng)
	}
	if err != nil {
		return err
	}
	if !a.Random {
		errors.Logf("DEBUG", "Z = %g, probability sum %.6f, emitted %d of %d",
			st.Normalizer, st.ProbabilitySum, st.Emitted, st.Requested)
	}
	return dataset.Write(out, subsets)
}
