// SPDX-License-Identifier: MIT

// Package core: generalized eigenproblem container.
// The dense eigen-decomposition itself is a caller-side black box; linstab
// receives the matrix pair plus the raw (α, β) eigenvalue pairs and works from
// the derived real/imaginary spectrum.

package core

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Eigenproblem holds one wavenumber's generalized eigenproblem (A, B) with its
// raw eigenvalue pairs and the derived spectrum. Immutable after construction;
// the solve stage only reads A and B.
//
// Spectrum convention: for entry k, rr = Re(α/β) is the growth rate γ and
// ri = Im(α/β) gives the frequency ω = −ri. Only entries with rr > Eps are
// eligible unstable candidates.
type Eigenproblem struct {
	A, B *mat.CDense

	Alpha []complex128
	Beta  []complex128

	// RR, RI are the derived real/imaginary spectrum parts. Entries with a
	// vanishing β are pinned to 0 (stable, never NaN).
	RR, RI []float64
}

// NewEigenproblem validates shapes and derives the spectrum. a and b must be
// square R×R with len(alpha) == len(beta) == R.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func NewEigenproblem(a, b *mat.CDense, alpha, beta []complex128) (*Eigenproblem, error) {
	// Stage 1: presence and shape.
	if a == nil || b == nil {
		return nil, fmt.Errorf("NewEigenproblem: %w", ErrNilMatrix)
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != ac || br != bc || ar != br {
		return nil, fmt.Errorf("NewEigenproblem: A is %dx%d, B is %dx%d: %w", ar, ac, br, bc, ErrDimensionMismatch)
	}
	if len(alpha) != ar || len(beta) != ar {
		return nil, fmt.Errorf("NewEigenproblem: %d eigenvalue pairs for rank %d: %w", len(alpha), ar, ErrDimensionMismatch)
	}

	// Stage 2: derive the spectrum. β=0 marks an infinite eigenvalue, which is
	// never a physical unstable candidate; pin it to the stable origin.
	ep := &Eigenproblem{
		A: a, B: b,
		Alpha: alpha, Beta: beta,
		RR: make([]float64, ar),
		RI: make([]float64, ar),
	}
	for k := range alpha {
		if cmplx.Abs(beta[k]) <= Eps {
			continue
		}
		z := alpha[k] / beta[k]
		ep.RR[k] = real(z)
		ep.RI[k] = imag(z)
	}

	return ep, nil
}

// Rank returns the eigenproblem rank R.
func (ep *Eigenproblem) Rank() int { return len(ep.Alpha) }

// Growth returns the growth rate γ_k = rr_k of spectrum entry k.
func (ep *Eigenproblem) Growth(k int) float64 { return ep.RR[k] }

// Freq returns the frequency ω_k = −ri_k of spectrum entry k.
func (ep *Eigenproblem) Freq(k int) float64 { return -ep.RI[k] }

// Eigenvalue returns z̄_k = i·α_k/β_k, the complex mode frequency used by the
// projection integrals: Re(z̄) is the frequency, Im(z̄) the growth rate.
func (ep *Eigenproblem) Eigenvalue(k int) complex128 {
	if cmplx.Abs(ep.Beta[k]) <= Eps {
		return 0
	}

	return 1i * ep.Alpha[k] / ep.Beta[k]
}
