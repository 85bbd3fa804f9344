// SPDX-License-Identifier: MIT

// Package core: domain types shared by every linstab stage.
// This file intentionally contains ONLY domain-facing types (species, geometry,
// enums). Errors and options live in dedicated files (errors.go, options.go)
// per the module conventions.

package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Species carries the immutable per-species physics inputs for one call.
// All fields are dimensionless model units fixed by the caller; linstab never
// mutates a Species.
type Species struct {
	// Charge is the species charge number z_s (negative for electrons).
	Charge float64
	// Dens is the density fraction a_s relative to the reference species.
	Dens float64
	// Temp is the temperature ratio τ_s relative to the reference species.
	Temp float64
	// Mass is the species mass m_s in reference-mass units.
	Mass float64
	// VTherm is the thermal velocity v_s in reference units.
	VTherm float64
	// VParShear is the parallel-flow shearing rate entering the stress
	// correction factor.
	VParShear float64
	// VPar is the parallel-flow velocity entering the parallel-flow shift
	// applied to amplitude weights under the shifted flow model.
	VPar float64
}

// GeometryKind discriminates the magnetic-geometry family the operators were
// built from. It selects the shear-quench elongation scaling, the intensity
// fit-table row, and the profile-grid construction.
type GeometryKind int

const (
	// Cylindrical — unsheared cylinder / slab limit: uniform profile grid,
	// cylindrical intensity fits, no elongation scaling of the quench.
	Cylindrical GeometryKind = iota

	// Toroidal — axisymmetric toroidal equilibrium: toroidal intensity fits,
	// quench coefficient scaled by sqrt(elongation).
	Toroidal

	// General — numerically supplied equilibrium: toroidal fits, folded
	// field-line profile grid from Geometry.FieldLineCoord.
	General
)

// Branch classifies a mode by the sign of its frequency.
type Branch int

const (
	// BranchUnclassified — selection policy did not partition by frequency.
	BranchUnclassified Branch = iota
	// BranchIon — ion direction of propagation (positive ri).
	BranchIon
	// BranchElectron — electron direction of propagation (non-positive ri).
	BranchElectron
)

// String implements fmt.Stringer for diagnostics.
func (b Branch) String() string {
	switch b {
	case BranchIon:
		return "ion"
	case BranchElectron:
		return "electron"
	default:
		return "unclassified"
	}
}

// Geometry bundles the precomputed basis-averaging operators and scalar
// geometry data produced by the external equilibrium/eikonal collaborator.
// Operator matrices are NBasis×NBasis and read-only for the call duration.
//
// Field-solve operators (step 3 of the moment projection):
//
//	P0Inv — inverse polarization operator for the electrostatic potential φ
//	BPInv — inverse parallel-field operator for the vector potential ψ
//	B0Inv — inverse compressional operator for the perturbed field σ
//
// Diagnostic operators (step 6, ⟨φ|Op|φ⟩/φnorm):
//
//	Wd       — curvature/grad-B drift average
//	Compress — parallel-compression average
//	B0Mag    — |B| average
//	Kx       — radial-wavenumber average
//	KPar     — parallel-wavenumber average (also the parallel-stress contraction)
//	SatGeo   — saturation-geometry average (its diagnostic is inverted)
type Geometry struct {
	Kind        GeometryKind
	Elongation  float64 // κ, flux-surface elongation (≥ 1 for tori)
	RMajor      float64 // normalized major radius entering wd0
	SatGeoFac   float64 // geometry-dependent saturation scale factor
	ExBShear    float64 // precomputed ExB shearing rate S
	KX0         float64 // residual radial-wavenumber offset at this ky
	ParShearAvg float64 // basis average entering the w_p stress proxy

	// FieldLineCoord is the precomputed field-line coordinate for one poloidal
	// period, ascending. Required only for the General profile grid.
	FieldLineCoord []float64

	P0Inv, BPInv, B0Inv *mat.Dense
	Wd, Compress, B0Mag *mat.Dense
	Kx, KPar, SatGeo    *mat.Dense
}

// NewGeometry validates the operator set against the basis size nBasis and
// returns the geometry record. Validation order: nil operators first, then
// shapes, then scalar sanity.
//
// Errors: ErrNilOperator, ErrDimensionMismatch, ErrBadConfig (non-finite or
// non-positive scalars that must be positive).
func NewGeometry(g Geometry, nBasis int) (Geometry, error) {
	// Stage 1: every field-solve and diagnostic operator must be present.
	ops := []struct {
		name string
		m    *mat.Dense
	}{
		{"P0Inv", g.P0Inv}, {"BPInv", g.BPInv}, {"B0Inv", g.B0Inv},
		{"Wd", g.Wd}, {"Compress", g.Compress}, {"B0Mag", g.B0Mag},
		{"Kx", g.Kx}, {"KPar", g.KPar}, {"SatGeo", g.SatGeo},
	}
	for _, op := range ops {
		if op.m == nil {
			return Geometry{}, fmt.Errorf("NewGeometry: %s: %w", op.name, ErrNilOperator)
		}
		r, c := op.m.Dims()
		if r != nBasis || c != nBasis {
			return Geometry{}, fmt.Errorf("NewGeometry: %s is %dx%d, want %dx%d: %w",
				op.name, r, c, nBasis, nBasis, ErrDimensionMismatch)
		}
	}

	// Stage 2: scalar sanity. Elongation and RMajor are strictly positive;
	// shear and offsets may be any finite value.
	if !(g.Elongation > 0) || !(g.RMajor > 0) || !(g.SatGeoFac > 0) {
		return Geometry{}, fmt.Errorf("NewGeometry: elongation/RMajor/SatGeoFac must be > 0: %w", ErrBadConfig)
	}
	for _, v := range []float64{g.ExBShear, g.KX0, g.ParShearAvg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Geometry{}, fmt.Errorf("NewGeometry: non-finite scalar: %w", ErrBadConfig)
		}
	}

	return g, nil
}
