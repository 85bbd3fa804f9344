// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linstab/core"
)

// TestNewConfig_Defaults verifies the documented defaults survive option
// application and that ky is the only mandatory knob.
func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := core.NewConfig(core.WithKy(0.3))
	require.NoError(t, err)

	assert.Equal(t, core.DefaultNBasis, cfg.NBasis)
	assert.Equal(t, core.DefaultNRoot, cfg.NRoot)
	assert.Equal(t, core.DefaultMaxModes, cfg.MaxModes)
	assert.Equal(t, core.DefaultNModesRequested, cfg.NModesRequested)
	assert.Equal(t, core.DualBranch, cfg.Policy)
	assert.Equal(t, core.SatLocal, cfg.SatRule)
	assert.False(t, cfg.UsePsi)
	assert.False(t, cfg.UseSigma)
	assert.InDelta(t, core.DefaultETGFactor, cfg.ETGFactor, 0)
}

// TestNewConfig_MissingKy verifies the mandatory-wavenumber rule.
func TestNewConfig_MissingKy(t *testing.T) {
	_, err := core.NewConfig()
	assert.ErrorIs(t, err, core.ErrBadConfig)
}

// TestNewConfig_Options verifies each option lands on its Config field.
func TestNewConfig_Options(t *testing.T) {
	cfg, err := core.NewConfig(
		core.WithKy(1.2),
		core.WithCounts(2, 12),
		core.WithModes(4, 3),
		core.WithPolicy(core.TopN),
		core.WithSatRule(core.SatMultiscale),
		core.WithPsi(),
		core.WithSigma(),
		core.WithQuench(1),
		core.WithSpectralShift(0.9, -1.2),
		core.WithVParShift(),
		core.WithETGFactor(1.5),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.NBasis)
	assert.Equal(t, 12, cfg.NRoot)
	assert.Equal(t, 4, cfg.MaxModes)
	assert.Equal(t, 3, cfg.NModesRequested)
	assert.Equal(t, core.TopN, cfg.Policy)
	assert.Equal(t, core.SatMultiscale, cfg.SatRule)
	assert.True(t, cfg.UsePsi && cfg.UseSigma && cfg.VParShift)
	assert.InDelta(t, 1, cfg.QuenchCoeff, 0)
	assert.True(t, cfg.SpectralShift)
	assert.InDelta(t, 0.9, cfg.GammaRef, 0)
	assert.InDelta(t, -1.2, cfg.FreqRef, 0)
}

// TestOptions_PanicOnProgrammerError verifies constructor-level validation.
func TestOptions_PanicOnProgrammerError(t *testing.T) {
	assert.Panics(t, func() { core.WithCounts(0, 6) })
	assert.Panics(t, func() { core.WithCounts(4, 0) })
	assert.Panics(t, func() { core.WithModes(1, 2) })
	assert.Panics(t, func() { core.WithModes(2, 0) })
	assert.Panics(t, func() { core.WithKy(0) })
	assert.Panics(t, func() { core.WithKy(-0.3) })
}

// TestConfig_Rank verifies R = nSpecies·NRoot·NBasis.
func TestConfig_Rank(t *testing.T) {
	cfg, err := core.NewConfig(core.WithKy(0.3), core.WithCounts(4, 15))
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Rank(2))
}

// TestNewEigenproblem_Spectrum verifies rr/ri derivation and the β=0 pinning.
func TestNewEigenproblem_Spectrum(t *testing.T) {
	a := mat.NewCDense(2, 2, nil)
	b := mat.NewCDense(2, 2, nil)
	ep, err := core.NewEigenproblem(a, b,
		[]complex128{complex(1, -0.6), complex(5, 5)},
		[]complex128{2, 0},
	)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, ep.Growth(0), 1e-12)
	assert.InDelta(t, 0.3, ep.Freq(0), 1e-12)
	// z̄ = i·α/β = i·(0.5 - 0.3i) = 0.3 + 0.5i.
	assert.InDelta(t, 0.3, real(ep.Eigenvalue(0)), 1e-12)
	assert.InDelta(t, 0.5, imag(ep.Eigenvalue(0)), 1e-12)

	// Vanishing β pins the entry to the stable origin, never NaN.
	assert.Zero(t, ep.Growth(1))
	assert.Zero(t, ep.Freq(1))
	assert.Zero(t, ep.Eigenvalue(1))
}

// TestNewEigenproblem_Validation covers the presence and shape guards.
func TestNewEigenproblem_Validation(t *testing.T) {
	sq := mat.NewCDense(2, 2, nil)
	pairs := []complex128{1, 1}

	_, err := core.NewEigenproblem(nil, sq, pairs, pairs)
	assert.ErrorIs(t, err, core.ErrNilMatrix)

	_, err = core.NewEigenproblem(sq, mat.NewCDense(3, 3, nil), pairs, pairs)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	_, err = core.NewEigenproblem(sq, sq, pairs, []complex128{1})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

// TestNewGeometry_Validation covers the operator and scalar guards in order:
// nil operators, then shapes, then scalar sanity.
func TestNewGeometry_Validation(t *testing.T) {
	op := func(n int) *mat.Dense { return mat.NewDense(n, n, nil) }
	valid := core.Geometry{
		Kind:       core.Toroidal,
		Elongation: 1.6, RMajor: 3, SatGeoFac: 1,
		P0Inv: op(2), BPInv: op(2), B0Inv: op(2),
		Wd: op(2), Compress: op(2), B0Mag: op(2),
		Kx: op(2), KPar: op(2), SatGeo: op(2),
	}

	_, err := core.NewGeometry(valid, 2)
	require.NoError(t, err)

	missing := valid
	missing.KPar = nil
	_, err = core.NewGeometry(missing, 2)
	assert.ErrorIs(t, err, core.ErrNilOperator)

	wrongShape := valid
	wrongShape.Wd = op(3)
	_, err = core.NewGeometry(wrongShape, 2)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	badScalar := valid
	badScalar.RMajor = 0
	_, err = core.NewGeometry(badScalar, 2)
	assert.ErrorIs(t, err, core.ErrBadConfig)
}

// TestBranch_String verifies the diagnostic names.
func TestBranch_String(t *testing.T) {
	assert.Equal(t, "ion", core.BranchIon.String())
	assert.Equal(t, "electron", core.BranchElectron.String())
	assert.Equal(t, "unclassified", core.BranchUnclassified.String())
}
