// SPDX-License-Identifier: MIT

package fit

import (
	"github.com/timtadh/data-structures/errors"
)

// Observer is notified by Run after every iteration and every epoch.
type Observer interface {
	OnIteration(st Status)
	OnEpoch(st Status)
}

// Entry is one per-epoch row of a LogReport. Key names follow the
// log.json layout of the fitting command.
type Entry struct {
	Epoch     int      `json:"epoch"`
	Iteration int      `json:"iteration"`
	MainLoss  float64  `json:"main/loss"`
	ValLoss   *float64 `json:"validation/main/loss,omitempty"`
	Elapsed   float64  `json:"elapsed_time"`
	LR        float64  `json:"lr"`
}

// LogReport averages the minibatch loss over each epoch, logs one INFO
// line per epoch and keeps the entries for persistence.
type LogReport struct {
	// Quiet suppresses logging; entries are still collected.
	Quiet bool

	sum     float64
	count   int
	// last is the most recent mean; epochs closed without an iteration of
	// their own repeat it.
	last    float64
	entries []Entry
}

// NewLogReport returns an empty report.
func NewLogReport() *LogReport { return &LogReport{} }

// OnIteration accumulates the minibatch loss.
func (r *LogReport) OnIteration(st Status) {
	r.sum += st.Loss
	r.count++
}

// OnEpoch closes the current epoch's entry.
func (r *LogReport) OnEpoch(st Status) {
	e := Entry{
		Epoch:     st.Epoch,
		Iteration: st.Iteration,
		Elapsed:   st.Elapsed.Seconds(),
	}
	if r.count > 0 {
		r.last = r.sum / float64(r.count)
	}
	e.MainLoss = r.last
	if st.Validated {
		v := st.ValLoss
		e.ValLoss = &v
	}
	if st.Optimizer != nil {
		e.LR = st.Optimizer.LR()
	}
	r.entries = append(r.entries, e)
	r.sum, r.count = 0, 0

	if r.Quiet {
		return
	}
	if e.ValLoss != nil {
		errors.Logf("INFO", "epoch %d iter %d main/loss %.6f val/loss %.6f lr %.3g (%.1fs)",
			e.Epoch, e.Iteration, e.MainLoss, *e.ValLoss, e.LR, e.Elapsed)
	} else {
		errors.Logf("INFO", "epoch %d iter %d main/loss %.6f lr %.3g (%.1fs)",
			e.Epoch, e.Iteration, e.MainLoss, e.LR, e.Elapsed)
	}
}

// Entries returns the collected rows, oldest first.
func (r *LogReport) Entries() []Entry { return r.entries }

// ExponentialShift multiplies the optimizer's learning rate by Factor at
// the end of every Every-th epoch. Every <= 0 disables the shift.
type ExponentialShift struct {
	Factor float64
	Every  int
}

// OnIteration is a no-op.
func (ExponentialShift) OnIteration(Status) {}

// OnEpoch applies the shift.
func (s ExponentialShift) OnEpoch(st Status) {
	if s.Every <= 0 || st.Optimizer == nil || st.Epoch%s.Every != 0 {
		return
	}
	st.Optimizer.SetLR(st.Optimizer.LR() * s.Factor)
}
