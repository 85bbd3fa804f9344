// SPDX-License-Identifier: MIT

// Package closure: the saturation/intensity fit.
// The regime constants are reference-tuned literals; keep them in the table
// below and nowhere else.

package closure

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/linstab/core"
)

// ErrBadSpecies is returned when the reference species has a zero charge or a
// non-positive temperature/mass, which the gyroradius scale cannot absorb.
var ErrBadSpecies = errors.New("closure: invalid reference species")

// NeutralIntensity is the multiscale placeholder: amplitude is deferred to an
// external spectrum computation and every rescale becomes a no-op.
const NeutralIntensity = 1.0

// Suppression coefficients of the residual radial-wavenumber offset, applied
// only when shear quenching is disabled.
const (
	kx0SuppA = 0.56
	kx0SuppB = 1.15
)

// fitConsts is one row of the empirical intensity fit.
type fitConsts struct {
	cnorm float64 // overall normalization
	expo  float64 // gnet exponent
	c1    float64 // linear gnet admixture
}

// fitTable holds the empirical constants keyed by geometry family and
// requested mode count. Rows: [cylindrical|toroidal] × [≤2 modes|>2 modes].
// Reference-tuned literals; preserve unless re-validated against the fits.
var fitTable = [2][2]fitConsts{
	{ // cylindrical
		{cnorm: 20.0, expo: 1.50, c1: 0}, // ≤ 2 modes
		{cnorm: 20.0, expo: 1.15, c1: 0}, // > 2 modes
	},
	{ // toroidal / general
		{cnorm: 24.58, expo: 1.50, c1: 0},     // ≤ 2 modes
		{cnorm: 28.57, expo: 1.15, c1: 0.073}, // > 2 modes
	},
}

// Intensity maps the mode's poloidal wavenumber and (possibly quenched) growth
// rate to an absolute potential-fluctuation amplitude.
//
// Under core.SatMultiscale the result is exactly NeutralIntensity regardless
// of inputs. Under core.SatLocal:
//
//  1. k_s  = ky·√(τ₀·m₀)/|z₀|          (gyroradius × wavenumber, species 0)
//     pol  = (a₀·z₀²/τ₀)²              (polarization factor, species 0)
//  2. (cnorm, expo, c1) from the fit table; when k_s > 1 the normalization is
//     divided by k_s^ETGFactor (electron-temperature-gradient correction).
//  3. wd0  = k_s·√τ₀/R                  (normalized drift frequency)
//     gnet = γ/wd0, clamped at 0 for negative growth.
//  4. I    = cnorm·wd0²·(gnet^expo + c1·gnet)/(pol·ky⁴)
//  5. If quenching is disabled (q == 0) and kx0 ≠ 0, apply the suppression
//     factors (1+0.56·kx0²)⁻² and (1+(1.15·kx0)⁴)⁻².
//  6. Scale by the geometry saturation factor.
//
// The result is continuous and non-negative for γ ≥ 0.
//
// Errors: ErrBadSpecies when species-0 data cannot form the gyroradius scale.
func Intensity(cfg core.Config, geo core.Geometry, ref core.Species, gamma float64) (float64, error) {
	if cfg.SatRule == core.SatMultiscale {
		return NeutralIntensity, nil
	}

	// Stage 1: reference-species scales.
	if ref.Charge == 0 || ref.Temp <= 0 || ref.Mass <= 0 || ref.Dens <= 0 {
		return 0, fmt.Errorf("Intensity: z=%g τ=%g m=%g a=%g: %w",
			ref.Charge, ref.Temp, ref.Mass, ref.Dens, ErrBadSpecies)
	}
	ks := cfg.Ky * math.Sqrt(ref.Temp*ref.Mass) / math.Abs(ref.Charge)
	polBase := ref.Dens * ref.Charge * ref.Charge / ref.Temp
	pol := polBase * polBase

	// Stage 2: regime constants + short-wavelength correction.
	fit := fitFor(geo.Kind, cfg.NModesRequested)
	cnorm := fit.cnorm
	if ks > 1 {
		cnorm /= math.Pow(ks, cfg.ETGFactor)
	}

	// Stage 3: normalized drift frequency and net growth.
	wd0 := ks * math.Sqrt(ref.Temp) / geo.RMajor
	gnet := 0.0
	if gamma > 0 {
		gnet = gamma / wd0
	}

	// Stage 4: the fit itself.
	ky4 := cfg.Ky * cfg.Ky * cfg.Ky * cfg.Ky
	intensity := cnorm * wd0 * wd0 * (math.Pow(gnet, fit.expo) + fit.c1*gnet) / (pol * ky4)

	// Stage 5: residual radial-wavenumber suppression (quench disabled only).
	if cfg.QuenchCoeff == 0 && geo.KX0 != 0 {
		kx0 := geo.KX0
		a := 1 + kx0SuppA*kx0*kx0
		b := 1 + math.Pow(kx0SuppB*kx0, 4)
		intensity /= a * a * b * b
	}

	// Stage 6: geometry saturation scale.
	return intensity * geo.SatGeoFac, nil
}

// RescaleFactor converts an intensity and a raw vector-norm weight vQL into
// the multiplier applied to every amplitude-squared output. A numerically
// negligible vQL yields exactly 0 (degenerate mode, defined zero outputs).
func RescaleFactor(intensity, vQL float64) float64 {
	if vQL <= core.Eps {
		return 0
	}

	return intensity / vQL
}

// fitFor picks the fit-table row: cylindrical is its own family, toroidal and
// general equilibria share the toroidal fits.
func fitFor(kind core.GeometryKind, nRequested int) fitConsts {
	fam := 0
	if kind != core.Cylindrical {
		fam = 1
	}
	bucket := 0
	if nRequested > 2 {
		bucket = 1
	}

	return fitTable[fam][bucket]
}
