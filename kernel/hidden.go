// SPDX-License-Identifier: MIT

package kernel

import "math"

// forwardHidden evaluates the hidden stack on DummyInput.
// acts[0] is the input; acts[l+1] is the output of layer l, tanh-activated
// for every layer except the last. The last entry is h.
func forwardHidden(layers []Layer) [][]float64 {
	acts := make([][]float64, len(layers)+1)
	acts[0] = []float64{DummyInput}
	for l, layer := range layers {
		r, c := layer.W.Dims()
		in := acts[l]
		out := make([]float64, r)
		for i := 0; i < r; i++ {
			sum := layer.Bias[i]
			for j := 0; j < c; j++ {
				sum += layer.W.At(i, j) * in[j]
			}
			if l < len(layers)-1 {
				sum = math.Tanh(sum)
			}
			out[i] = sum
		}
		acts[l+1] = out
	}
	return acts
}

// backwardHidden back-propagates dh (gradient w.r.t. the stack output)
// through the layers recorded in acts and returns per-layer gradients.
func backwardHidden(layers []Layer, acts [][]float64, dh []float64) []Layer {
	grads := make([]Layer, len(layers))
	delta := append([]float64(nil), dh...)
	for l := len(layers) - 1; l >= 0; l-- {
		layer := layers[l]
		r, c := layer.W.Dims()
		in := acts[l]

		gw := newDenseLike(layer.W)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				gw.Set(i, j, delta[i]*in[j])
			}
		}
		grads[l] = Layer{W: gw, Bias: append([]float64(nil), delta...)}

		if l == 0 {
			break
		}
		// in = tanh(z_{l-1}) ⇒ ∂in/∂z = 1 − in².
		prev := make([]float64, c)
		for j := 0; j < c; j++ {
			var sum float64
			for i := 0; i < r; i++ {
				sum += layer.W.At(i, j) * delta[i]
			}
			prev[j] = sum * (1 - in[j]*in[j])
		}
		delta = prev
	}
	return grads
}

// columnScales expands the stack output h into one positive multiplier per
// column of V: exp(h_k) when len(h)==rankV, exp(h_0) everywhere when len(h)==1.
func columnScales(h []float64, rankV int) []float64 {
	s := make([]float64, rankV)
	for k := range s {
		if len(h) == 1 {
			s[k] = math.Exp(h[0])
		} else {
			s[k] = math.Exp(h[k])
		}
	}
	return s
}
