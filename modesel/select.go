// SPDX-License-Identifier: MIT

package modesel

import (
	"container/heap"
	"errors"
	"fmt"
)

// None marks an unfilled selection slot.
const None = -1

// ErrSpectrumMismatch is returned when rr and ri have different lengths.
var ErrSpectrumMismatch = errors.New("modesel: rr/ri length mismatch")

// ErrBadRequest is returned when the requested mode count is < 1.
var ErrBadRequest = errors.New("modesel: requested mode count must be ≥ 1")

// SelectDualBranch returns the spectrum indices of the most unstable ion-like
// and electron-like modes, or None for an empty partition.
//
// Contract:
//   - eligibility: rr[k] > eps;
//   - partition:   ri[k] > 0 → ion-like, ri[k] ≤ 0 → electron-like;
//   - per partition, the single index with maximal rr wins; ties resolve to
//     the first occurrence in index order (strict > comparison).
//
// Complexity: O(R) time, O(1) space.
func SelectDualBranch(rr, ri []float64, eps float64) (ion, electron int, err error) {
	if len(rr) != len(ri) {
		return None, None, fmt.Errorf("SelectDualBranch: len(rr)=%d len(ri)=%d: %w", len(rr), len(ri), ErrSpectrumMismatch)
	}

	ion, electron = None, None
	var ionBest, elBest float64
	for k := range rr {
		if rr[k] <= eps {
			continue // stable or marginal: not a candidate
		}
		if ri[k] > 0 {
			if ion == None || rr[k] > ionBest {
				ion, ionBest = k, rr[k]
			}
		} else {
			if electron == None || rr[k] > elBest {
				electron, elBest = k, rr[k]
			}
		}
	}

	return ion, electron, nil
}

// SelectTopN returns the indices of the n largest growth rates among eligible
// entries (rr[k] > eps), in non-increasing rr order, padded with None when
// fewer candidates exist.
//
// Tie-break: equal growth rates resolve to the lower original index, which is
// deterministic and stable under permutation of equal values.
//
// Complexity: O(R log R) time (heap build + n pops), O(R) space.
func SelectTopN(rr []float64, eps float64, n int) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("SelectTopN: n=%d: %w", n, ErrBadRequest)
	}

	// Stage 1: collect eligible candidates.
	h := &rateHeap{rr: rr}
	h.idx = make([]int, 0, len(rr))
	for k := range rr {
		if rr[k] > eps {
			h.idx = append(h.idx, k)
		}
	}

	// Stage 2: heapify once, then pop at most n maxima.
	heap.Init(h)
	out := make([]int, n)
	for i := range out {
		if h.Len() == 0 {
			out[i] = None

			continue
		}
		out[i] = heap.Pop(h).(int)
	}

	return out, nil
}

// rateHeap is a max-heap over spectrum indices ordered by growth rate, with
// the lower-index-wins tie-break baked into Less.
type rateHeap struct {
	rr  []float64
	idx []int
}

func (h *rateHeap) Len() int { return len(h.idx) }

func (h *rateHeap) Less(i, j int) bool {
	a, b := h.idx[i], h.idx[j]
	if h.rr[a] != h.rr[b] {
		return h.rr[a] > h.rr[b]
	}

	return a < b
}

func (h *rateHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }

func (h *rateHeap) Push(x any) { h.idx = append(h.idx, x.(int)) }

func (h *rateHeap) Pop() any {
	last := len(h.idx) - 1
	v := h.idx[last]
	h.idx = h.idx[:last]

	return v
}
