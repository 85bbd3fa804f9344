// SPDX-License-Identifier: MIT

// Package qlweights: structured moment access.
// Eigenvectors pack (species, root, basis) into one flat vector; MomentView
// centralizes the offset arithmetic so the layout is testable in isolation
// and impossible to get wrong twice.

package qlweights

import (
	"errors"
	"fmt"
)

// MomentKind indexes the six physical moments of the hierarchy. The kind
// value IS the root offset of the moment inside a species block.
type MomentKind int

const (
	// MomentDensity — perturbed density n.
	MomentDensity MomentKind = iota
	// MomentUPar — parallel flow u∥.
	MomentUPar
	// MomentPPar — parallel pressure p∥.
	MomentPPar
	// MomentPTot — total pressure p.
	MomentPTot
	// MomentQPar — parallel heat flux q∥.
	MomentQPar
	// MomentQTot — total heat flux q.
	MomentQTot

	// NumMoments — number of projected moments; keep last.
	NumMoments = 6
)

// correctionOffset is the root offset of the trapped/gyro correction block in
// the full closure: moment m is corrected by root 6+m.
const correctionOffset = NumMoments

var (
	// ErrVectorRank is returned when the eigenvector length does not match
	// nSpecies·nRoot·nBasis.
	ErrVectorRank = errors.New("qlweights: eigenvector length does not match rank")

	// ErrRootLayout is returned for a root count that matches neither the
	// reduced hierarchy (6) nor a full closure carrying the correction block
	// (≥ 12).
	ErrRootLayout = errors.New("qlweights: unsupported root layout")
)

// MomentView is a read-only structured view over one eigenvector.
//
// Block layout: species-major, root-major, basis-minor —
// v[s·nRoot·nBasis + r·nBasis + i]. Roots 0..5 are the six moments; when
// nRoot > 6 roots 6..11 hold the trapped/gyro correction block, subtracted
// from the four fluid moments (n, u∥, p∥, p) and added to the two heat-flux
// moments (q∥, q). Roots beyond 11 belong to the closure itself and are not
// projected.
type MomentView struct {
	v                       []complex128
	nSpecies, nRoot, nBasis int
}

// NewMomentView validates the layout and wraps v. v is borrowed, not copied.
func NewMomentView(v []complex128, nSpecies, nRoot, nBasis int) (MomentView, error) {
	if nRoot != NumMoments && nRoot < 2*NumMoments {
		return MomentView{}, fmt.Errorf("NewMomentView: nRoot=%d: %w", nRoot, ErrRootLayout)
	}
	if len(v) != nSpecies*nRoot*nBasis {
		return MomentView{}, fmt.Errorf("NewMomentView: len(v)=%d, want %d: %w",
			len(v), nSpecies*nRoot*nBasis, ErrVectorRank)
	}

	return MomentView{v: v, nSpecies: nSpecies, nRoot: nRoot, nBasis: nBasis}, nil
}

// At returns moment m of species s at basis index i, correction block applied.
func (mv MomentView) At(s int, m MomentKind, i int) complex128 {
	base := s * mv.nRoot * mv.nBasis
	val := mv.v[base+int(m)*mv.nBasis+i]
	if mv.nRoot > NumMoments {
		corr := mv.v[base+(correctionOffset+int(m))*mv.nBasis+i]
		if m <= MomentPTot {
			val -= corr
		} else {
			val += corr
		}
	}

	return val
}

// Fill copies moment m of species s into dst (length nBasis).
func (mv MomentView) Fill(dst []complex128, s int, m MomentKind) {
	for i := range dst {
		dst[i] = mv.At(s, m, i)
	}
}

// BlockNorm returns Σ|v_j|² over the whole block of species s.
func (mv MomentView) BlockNorm(s int) float64 {
	base := s * mv.nRoot * mv.nBasis
	sum := 0.0
	for _, z := range mv.v[base : base+mv.nRoot*mv.nBasis] {
		re, im := real(z), imag(z)
		sum += re*re + im*im
	}

	return sum
}
