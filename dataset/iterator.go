// SPDX-License-Identifier: MIT

// Package dataset - serial minibatch iterator.
//
// Semantics:
//   - Repeating iterators never run dry. A batch that crosses the end of an
//     epoch is completed from the next epoch's order, and IsNewEpoch
//     reports true for that batch.
//   - Non-repeating iterators return a short final batch, then report
//     exhaustion until Reset.
//   - With shuffling enabled a fresh permutation is drawn at the start of
//     every epoch and on Reset.

package dataset

import (
	"math/rand"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// IteratorOption customizes a SerialIterator.
type IteratorOption func(*SerialIterator)

// WithRepeat toggles endless iteration (default true).
func WithRepeat(repeat bool) IteratorOption {
	return func(it *SerialIterator) { it.repeat = repeat }
}

// WithShuffle toggles per-epoch shuffling (default true).
func WithShuffle(shuffle bool) IteratorOption {
	return func(it *SerialIterator) { it.shuffle = shuffle }
}

// WithRand sets the shuffling source. Panics on nil.
func WithRand(rng *rand.Rand) IteratorOption {
	if rng == nil {
		panic("dataset: WithRand(nil)")
	}
	return func(it *SerialIterator) { it.rng = rng }
}

// SerialIterator yields minibatches of subsets in epoch order.
// Not safe for concurrent use.
type SerialIterator struct {
	data      []Subset
	batchSize int
	repeat    bool
	shuffle   bool
	rng       *rand.Rand

	order    []int
	pos      int
	epoch    int
	newEpoch bool
}

// NewSerialIterator returns an iterator over data. data is not copied.
//
// Errors: ErrBatchSize, ErrEmpty.
func NewSerialIterator(data []Subset, batchSize int, opts ...IteratorOption) (*SerialIterator, error) {
	if batchSize <= 0 {
		return nil, ErrBatchSize
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	it := &SerialIterator{data: data, batchSize: batchSize, repeat: true, shuffle: true}
	for _, opt := range opts {
		opt(it)
	}
	if it.rng == nil {
		it.rng = kernel.NewRand(0)
	}
	it.Reset()
	return it, nil
}

// Next returns the next minibatch. ok is false once a non-repeating
// iterator has completed its epoch.
func (it *SerialIterator) Next() (batch []Subset, ok bool) {
	if !it.repeat && it.epoch > 0 {
		return nil, false
	}
	n := len(it.data)
	batch = make([]Subset, 0, it.batchSize)
	it.newEpoch = false
	for len(batch) < it.batchSize {
		batch = append(batch, it.data[it.order[it.pos]])
		it.pos++
		if it.pos < n {
			continue
		}
		it.epoch++
		it.newEpoch = true
		it.pos = 0
		it.reorder()
		if !it.repeat {
			break
		}
	}
	return batch, true
}

// Reset rewinds to the start of epoch 0.
func (it *SerialIterator) Reset() {
	it.pos = 0
	it.epoch = 0
	it.newEpoch = false
	it.reorder()
}

func (it *SerialIterator) reorder() {
	if it.shuffle {
		it.order = kernel.Perm(len(it.data), it.rng)
		return
	}
	if it.order == nil {
		it.order = make([]int, len(it.data))
		for i := range it.order {
			it.order[i] = i
		}
	}
}

// Epoch returns the number of completed epochs.
func (it *SerialIterator) Epoch() int { return it.epoch }

// IsNewEpoch reports whether the last batch completed an epoch.
func (it *SerialIterator) IsNewEpoch() bool { return it.newEpoch }

// EpochDetail returns fractional progress, e.g. 1.5 halfway through epoch 2.
func (it *SerialIterator) EpochDetail() float64 {
	return float64(it.epoch) + float64(it.pos)/float64(len(it.data))
}

// BatchSize returns the configured minibatch size.
func (it *SerialIterator) BatchSize() int { return it.batchSize }

// Len returns the number of subsets per epoch.
func (it *SerialIterator) Len() int { return len(it.data) }
