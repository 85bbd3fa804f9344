// SPDX-License-Identifier: MIT

// Package core: the Mode record.
// One Mode is created fresh per selected eigenmode per call, populated in
// stages by the pipeline (solve → project → saturate) and copied out by the
// caller. Nothing in a Mode persists across calls.

package core

// FluxKind enumerates the quasilinear flux weights computed per species.
type FluxKind int

const (
	// FluxParticle — particle flux weight.
	FluxParticle FluxKind = iota
	// FluxEnergy — energy flux weight.
	FluxEnergy
	// FluxStressPar — parallel stress weight (k∥-operator contraction).
	FluxStressPar
	// FluxStressTor — toroidal stress weight (kx-operator contraction).
	FluxStressTor
	// FluxExchange — energy exchange weight.
	FluxExchange

	// NumFluxKinds — table extent; keep last.
	NumFluxKinds = 5
)

// Channel enumerates the electromagnetic transport channels.
type Channel int

const (
	// ChannelPhi — electrostatic potential channel (always active).
	ChannelPhi Channel = iota
	// ChannelPsi — parallel vector potential channel (gated by Config.UsePsi).
	ChannelPsi
	// ChannelSig — compressional field channel (gated by Config.UseSigma).
	ChannelSig

	// NumChannels — table extent; keep last.
	NumChannels = 3
)

// FluxTable holds one species' flux weights, kinds × channels.
type FluxTable [NumFluxKinds][NumChannels]float64

// Mode is one selected eigenmode with everything the caller reads back.
// All slices are allocated zeroed by NewMode; stages fill them in place, and
// unfilled slots (fewer candidates than requested) stay at their zero state.
type Mode struct {
	// Gamma and Freq are the (possibly quenched or spectral-shifted) growth
	// rate and frequency. Branch tags the propagation direction.
	Gamma  float64
	Freq   float64
	Branch Branch

	// Eigenvector is the representative eigenvector v from the regularized
	// solve, length R.
	Eigenvector []complex128

	// Field-weight vectors per basis index, scaled by i/√φnorm.
	// Psi and Sig stay zero when their channels are disabled.
	Phi, Psi, Sig []complex128

	// Flux holds per-species flux weights per unit intensity; FluxBar the
	// intensity-rescaled versions.
	Flux    []FluxTable
	FluxBar []FluxTable

	// Scalar diagnostics ⟨φ|Op|φ⟩/φnorm.
	WdBar     float64
	B0Bar     float64
	ModBBar   float64
	KxBar     float64
	KparBar   float64
	SatGeoBar float64

	// Norms and amplitude bookkeeping. VQL is the raw vector-norm weight the
	// intensity rescale divides by; Intensity the closure output.
	VNorm     float64
	PhiNorm   float64
	VQL       float64
	Intensity float64

	// Amplitude-squared weights per species (Σ|moment|²/φnorm) and their
	// intensity-rescaled bar versions.
	NWeight, TWeight, UWeight, QWeight []float64
	NBar, TBar, UBar, QBar             []float64

	// Amplitude-squared field weights per basis index, intensity-rescaled.
	PhiBar, PsiBar, SigBar []float64

	// NTPhase is the density–temperature cross phase per species.
	NTPhase []float64
}

// NewMode allocates a zero-initialized Mode for rank R, nBasis basis indices
// and nSpecies species.
func NewMode(rank, nBasis, nSpecies int) *Mode {
	return &Mode{
		Eigenvector: make([]complex128, rank),
		Phi:         make([]complex128, nBasis),
		Psi:         make([]complex128, nBasis),
		Sig:         make([]complex128, nBasis),
		Flux:        make([]FluxTable, nSpecies),
		FluxBar:     make([]FluxTable, nSpecies),
		NWeight:     make([]float64, nSpecies),
		TWeight:     make([]float64, nSpecies),
		UWeight:     make([]float64, nSpecies),
		QWeight:     make([]float64, nSpecies),
		NBar:        make([]float64, nSpecies),
		TBar:        make([]float64, nSpecies),
		UBar:        make([]float64, nSpecies),
		QBar:        make([]float64, nSpecies),
		PhiBar:      make([]float64, nBasis),
		PsiBar:      make([]float64, nBasis),
		SigBar:      make([]float64, nBasis),
		NTPhase:     make([]float64, nSpecies),
	}
}
