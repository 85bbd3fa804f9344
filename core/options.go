// SPDX-License-Identifier: MIT

// Package core: functional configuration for the per-wavenumber kernel.
// This file defines:
//   - Option / Config (functional options over an explicit record),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - NewConfig which gathers options and enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error);
//     caller-data problems surface as ErrBadConfig from NewConfig.

package core

import (
	"fmt"
	"math"
)

// ---------- Numeric policy (single source of truth) ----------

const (
	// Eps is the eligibility and degeneracy floor: only spectrum entries with
	// growth rate rr > Eps are unstable candidates, and every norm divided by
	// downstream (φnorm, v_QL, the saturation-geometry diagnostic) is floored
	// at Eps. Reference-tuned literal; do not re-derive.
	Eps = 1e-12

	// Delta is the regularizer of the eigenvector solve: the solve matrix is
	// shifted by Delta off the true eigenvalue and the right-hand side is
	// Delta·e₁. Reference-tuned literal; do not re-derive.
	Delta = 1e-13

	// AlphaExB is the base ExB shear-quench coefficient; scaled by
	// sqrt(elongation) for toroidal geometry.
	AlphaExB = 0.3
)

// BranchPolicy selects how the raw spectrum is classified and ordered.
type BranchPolicy int

const (
	// DualBranch returns at most one ion-like and one electron-like mode,
	// each the growth-rate maximum of its frequency-sign partition.
	DualBranch BranchPolicy = iota

	// TopN returns the NModesRequested largest growth rates regardless of
	// propagation direction.
	TopN
)

// SatRule selects the saturation/intensity closure.
type SatRule int

const (
	// SatLocal applies the empirical local intensity fit (closure.Intensity).
	SatLocal SatRule = iota

	// SatMultiscale defers amplitude to an external spectrum computation and
	// reports a neutral intensity of exactly 1.
	SatMultiscale
)

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultNBasis — spectral basis functions along the field line.
	DefaultNBasis = 4
	// DefaultNRoot — moment roots per species; 6 is the reduced hierarchy,
	// 15 the full gyrokinetic closure with the trapped correction block.
	DefaultNRoot = 6
	// DefaultMaxModes — output slots allocated per call.
	DefaultMaxModes = 2
	// DefaultNModesRequested — modes actually requested from selection.
	DefaultNModesRequested = 2
	// DefaultETGFactor — exponent of the short-wavelength cnorm correction.
	DefaultETGFactor = 1.25
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicCountInvalid = "core: WithCounts: nBasis, nRoot must be ≥ 1"
	panicModesInvalid = "core: WithModes: maxModes ≥ nRequested ≥ 1 required"
	panicKyInvalid    = "core: WithKy: ky must be finite and > 0"
)

// Config is the explicit per-call configuration record. Build it with
// NewConfig; the zero value is not valid.
type Config struct {
	// NBasis and NRoot fix the eigenproblem rank together with the species
	// count: R = nSpecies·NRoot·NBasis.
	NBasis int
	NRoot  int

	// MaxModes is the number of output slots; NModesRequested ≤ MaxModes is
	// how many modes selection actually fills (TopN) or capped at 2 (DualBranch).
	MaxModes        int
	NModesRequested int

	Policy  BranchPolicy
	SatRule SatRule

	// UsePsi / UseSigma enable the ψ (parallel vector potential) and σ
	// (compressional field) electromagnetic channels. Disabled channels
	// contribute exact zeros everywhere.
	UsePsi   bool
	UseSigma bool

	// QuenchCoeff is the shear-quench enable scalar q; 0 disables quenching.
	QuenchCoeff float64

	// SpectralShift enables the spectral-shift substitution: when quenching is
	// off and the ExB shear is nonzero, growth rate and frequency are replaced
	// by the externally supplied kx0=0 reference pair below.
	SpectralShift bool
	GammaRef      float64
	FreqRef       float64

	// VParShift enables the parallel-flow shift of the amplitude-weight
	// moments (shifted flow model).
	VParShift bool

	// Ky is the poloidal wavenumber of this call.
	Ky float64

	// ETGFactor is the exponent of the cnorm short-wavelength correction.
	ETGFactor float64
}

// Option mutates a Config under construction. Safe to apply repeatedly.
type Option func(*Config)

// WithCounts sets the basis and root counts. Panics if either is < 1.
func WithCounts(nBasis, nRoot int) Option {
	if nBasis < 1 || nRoot < 1 {
		panic(panicCountInvalid)
	}

	return func(c *Config) { c.NBasis, c.NRoot = nBasis, nRoot }
}

// WithModes sets the output-slot count and the requested mode count.
// Panics unless maxModes ≥ nRequested ≥ 1.
func WithModes(maxModes, nRequested int) Option {
	if nRequested < 1 || maxModes < nRequested {
		panic(panicModesInvalid)
	}

	return func(c *Config) { c.MaxModes, c.NModesRequested = maxModes, nRequested }
}

// WithPolicy selects the branch policy.
func WithPolicy(p BranchPolicy) Option {
	return func(c *Config) { c.Policy = p }
}

// WithSatRule selects the saturation rule.
func WithSatRule(r SatRule) Option {
	return func(c *Config) { c.SatRule = r }
}

// WithPsi enables the ψ electromagnetic channel.
func WithPsi() Option {
	return func(c *Config) { c.UsePsi = true }
}

// WithSigma enables the σ compressional channel.
func WithSigma() Option {
	return func(c *Config) { c.UseSigma = true }
}

// WithQuench sets the shear-quench enable scalar q.
func WithQuench(q float64) Option {
	return func(c *Config) { c.QuenchCoeff = q }
}

// WithSpectralShift enables the spectral-shift substitution with the supplied
// kx0=0 reference growth rate and frequency.
func WithSpectralShift(gammaRef, freqRef float64) Option {
	return func(c *Config) {
		c.SpectralShift = true
		c.GammaRef, c.FreqRef = gammaRef, freqRef
	}
}

// WithVParShift enables the parallel-flow shift of the amplitude weights.
func WithVParShift() Option {
	return func(c *Config) { c.VParShift = true }
}

// WithKy sets the poloidal wavenumber. Panics on non-finite or non-positive ky.
func WithKy(ky float64) Option {
	if !(ky > 0) || math.IsInf(ky, 0) {
		panic(panicKyInvalid)
	}

	return func(c *Config) { c.Ky = ky }
}

// WithETGFactor sets the short-wavelength correction exponent.
func WithETGFactor(f float64) Option {
	return func(c *Config) { c.ETGFactor = f }
}

// defaultConfig mirrors the documented default constants.
func defaultConfig() Config {
	return Config{
		NBasis:          DefaultNBasis,
		NRoot:           DefaultNRoot,
		MaxModes:        DefaultMaxModes,
		NModesRequested: DefaultNModesRequested,
		Policy:          DualBranch,
		SatRule:         SatLocal,
		Ky:              0, // must be set via WithKy
		ETGFactor:       DefaultETGFactor,
	}
}

// NewConfig gathers options over the documented defaults and validates the
// result. Ky is the single mandatory option.
//
// Errors: ErrBadConfig on a missing/invalid wavenumber or inconsistent counts.
func NewConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !(cfg.Ky > 0) {
		return Config{}, fmt.Errorf("NewConfig: ky not set: %w", ErrBadConfig)
	}
	if cfg.NBasis < 1 || cfg.NRoot < 1 || cfg.MaxModes < 1 ||
		cfg.NModesRequested < 1 || cfg.NModesRequested > cfg.MaxModes {
		return Config{}, fmt.Errorf("NewConfig: inconsistent counts: %w", ErrBadConfig)
	}
	if math.IsNaN(cfg.QuenchCoeff) || math.IsInf(cfg.QuenchCoeff, 0) {
		return Config{}, fmt.Errorf("NewConfig: quench coefficient: %w", ErrBadConfig)
	}

	return cfg, nil
}

// Rank returns the eigenproblem rank R = nSpecies·NRoot·NBasis.
func (c Config) Rank(nSpecies int) int { return nSpecies * c.NRoot * c.NBasis }
