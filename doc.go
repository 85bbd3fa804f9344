// Package linstab is a per-wavenumber linear-stability and quasilinear-weight
// kernel for gyrokinetic moment-hierarchy models.
//
// 🚀 What is linstab?
//
//	A deterministic, single-call library that takes one precomputed generalized
//	eigenproblem (one poloidal wavenumber) plus geometry/basis-averaging
//	operators, and returns:
//		• Growth rates & frequencies of the most unstable eigenmodes
//		• Field-amplitude weights for φ, ψ and σ per spectral basis index
//		• Per-species quasilinear flux weights (particle, energy, stresses, exchange)
//		• Empirical saturation intensities and amplitude-scaled ("bar") outputs
//		• Optional physical-space mode profiles for plotting
//
// ✨ Why choose linstab?
//
//   - Explicit per-call context – no global mutable state, no hidden buffers
//   - Rock-solid guarantees – strict sentinels, fail-fast validation, in-code docs
//   - Deterministic – documented tie-breaks, no randomness, no convergence loops
//   - Narrow scope – geometry, matrix assembly and eigen-decomposition stay with
//     the caller; this kernel only classifies, solves, projects and saturates
//
// Under the hood, everything is organized under seven subpackages:
//
//	core/      — domain types: species, geometry operators, eigenproblem, config, mode records
//	modesel/   — eigenvalue classification & selection (dual-branch, top-N)
//	closure/   — empirical closures: ExB shear quench & saturation intensity
//	linsolve/  — regularized complex linear solve recovering one eigenvector per mode
//	qlweights/ — moment projection: field potentials, diagnostics, flux weights
//	profile/   — spectral-basis evaluation & physical-grid mode reconstruction
//	stability/ — the per-wavenumber pipeline tying the above together
//
// Control flow for one wavenumber:
//
//	spectrum ──modesel──▶ indices ──linsolve──▶ v ──qlweights──▶ weights
//	                                                  │
//	                                closure (quench, intensity) rescales
//	                                                  │
//	                                profile (optional) reconstructs shapes
//
// Multi-wavenumber orchestration, geometry construction and persistence are
// intentionally out of scope; see the stability package for the entrypoint.
//
//	go get github.com/katalvlaran/linstab/stability
package linstab
