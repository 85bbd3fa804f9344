package qlweights_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linstab/core"
	"github.com/katalvlaran/linstab/qlweights"
)

// scaledIdent returns c·I as nb×nb dense.
func scaledIdent(nb int, c float64) *mat.Dense {
	m := mat.NewDense(nb, nb, nil)
	for i := 0; i < nb; i++ {
		m.Set(i, i, c)
	}

	return m
}

// testGeometry builds identity field operators and distinguishable scaled
// identities for the diagnostic operators.
func testGeometry(t *testing.T, nb int) core.Geometry {
	t.Helper()
	g, err := core.NewGeometry(core.Geometry{
		Kind:       core.Toroidal,
		Elongation: 1.6,
		RMajor:     3,
		SatGeoFac:  1,
		P0Inv:      scaledIdent(nb, 1), BPInv: scaledIdent(nb, 1), B0Inv: scaledIdent(nb, 1),
		Wd: scaledIdent(nb, 0.7), Compress: scaledIdent(nb, 0.2), B0Mag: scaledIdent(nb, 1.1),
		Kx: scaledIdent(nb, 0.3), KPar: scaledIdent(nb, 0.5), SatGeo: scaledIdent(nb, 4),
	}, nb)
	require.NoError(t, err)

	return g
}

func projectorConfig(t *testing.T, opts ...core.Option) core.Config {
	t.Helper()
	base := []core.Option{core.WithKy(0.3), core.WithCounts(1, 6)}
	cfg, err := core.NewConfig(append(base, opts...)...)
	require.NoError(t, err)

	return cfg
}

// TestProject_SingleSpeciesHandComputed pins the whole pipeline on a rank-6
// problem small enough to check by hand: nBasis=1, one species with z=1, a=1,
// τ=2, m=1, v=1; eigenvector has n=1, p=i, everything else 0.
//
// Then φ = n = 1, the adiabatic response halves the density, and:
//
//	φnorm = 1,  n' = 0.5,  p' = −0.5+i,  T = −1+i
func TestProject_SingleSpeciesHandComputed(t *testing.T) {
	cfg := projectorConfig(t)
	geo := testGeometry(t, 1)
	sp := []core.Species{{Charge: 1, Dens: 1, Temp: 2, Mass: 1, VTherm: 1}}

	p, err := qlweights.NewProjector(cfg, geo, sp)
	require.NoError(t, err)

	v := []complex128{1, 0, 0, 1i, 0, 0} // n, u, p∥, p, q∥, q
	eig := complex(0.2, 0.3)
	m := core.NewMode(6, 1, 1)
	require.NoError(t, p.Project(m, v, eig))

	assert.InDelta(t, 2.0, m.VNorm, 1e-14, "Σ|v|² = |1|²+|i|²")
	assert.InDelta(t, 1.0, m.PhiNorm, 1e-14)
	assert.InDelta(t, 2.0, m.VQL, 1e-14)

	// Field weight: i/√φnorm · φ = i.
	assert.InDelta(t, 0.0, real(m.Phi[0]), 1e-14)
	assert.InDelta(t, 1.0, imag(m.Phi[0]), 1e-14)

	// Diagnostics reproduce the operator scales; SatGeo is inverted.
	assert.InDelta(t, 0.7, m.WdBar, 1e-14)
	assert.InDelta(t, 0.2, m.B0Bar, 1e-14)
	assert.InDelta(t, 1.1, m.ModBBar, 1e-14)
	assert.InDelta(t, 0.3, m.KxBar, 1e-14)
	assert.InDelta(t, 0.5, m.KparBar, 1e-14)
	assert.InDelta(t, 0.25, m.SatGeoBar, 1e-14)

	ft := m.Flux[0]
	// φ and n' are in phase → no particle transport.
	assert.InDelta(t, 0.0, ft[core.FluxParticle][core.ChannelPhi], 1e-14)
	// Energy: 1.5·a·τ·Re(i·conj(1)·(−0.5+i)) = 3·(−1) = −3.
	assert.InDelta(t, -3.0, ft[core.FluxEnergy][core.ChannelPhi], 1e-14)
	// Stresses vanish with u∥ = 0.
	assert.InDelta(t, 0.0, ft[core.FluxStressPar][core.ChannelPhi], 1e-14)
	assert.InDelta(t, 0.0, ft[core.FluxStressTor][core.ChannelPhi], 1e-14)
	// Exchange: Re(conj(1)·z̄·0.5) = 0.5·Re(z̄) = 0.1.
	assert.InDelta(t, 0.1, ft[core.FluxExchange][core.ChannelPhi], 1e-14)

	// Cross phase: conj(0.5)·(−1+i) → atan2(0.5, −0.5) = 3π/4.
	assert.InDelta(t, 3*math.Pi/4, m.NTPhase[0], 1e-14)

	// Amplitude weights.
	assert.InDelta(t, 0.25, m.NWeight[0], 1e-14)
	assert.InDelta(t, 2.0, m.TWeight[0], 1e-14)
	assert.InDelta(t, 0.0, m.UWeight[0], 1e-14)
	assert.InDelta(t, 0.0, m.QWeight[0], 1e-14)
}

// TestProject_FluxSignConvention pins the orientation of the projection
// integral Re(i·conj(f)·m) = Im(f)·Re(m) − Re(f)·Im(m): against a real
// positive potential, a moment leading by 90° (positive imaginary part)
// carries a negative weight, and flipping the moment phase flips the weight.
func TestProject_FluxSignConvention(t *testing.T) {
	cfg := projectorConfig(t)
	geo := testGeometry(t, 1)
	sp := []core.Species{{Charge: 1, Dens: 1, Temp: 2, Mass: 1, VTherm: 1}}

	p, err := qlweights.NewProjector(cfg, geo, sp)
	require.NoError(t, err)

	v := []complex128{1, 0, 0, 1i, 0, 0} // real density, imaginary pressure
	m := core.NewMode(6, 1, 1)
	require.NoError(t, p.Project(m, v, 0.2+0.3i))

	// φ = n = 1 is real; p' = −0.5+i leads it, so the energy weight is
	// negative. Flipping the pressure phase must flip the weight exactly.
	assert.Negative(t, m.Flux[0][core.FluxEnergy][core.ChannelPhi])
	down := m.Flux[0][core.FluxEnergy][core.ChannelPhi]

	v[3] = -1i
	m2 := core.NewMode(6, 1, 1)
	require.NoError(t, p.Project(m2, v, 0.2+0.3i))
	assert.InDelta(t, -down, m2.Flux[0][core.FluxEnergy][core.ChannelPhi], 1e-14)
}

// TestProject_DisabledChannelsAreZero verifies ψ/σ outputs are identically
// zero for every species when the channels are off, even with nonzero flow
// and pressure moments.
func TestProject_DisabledChannelsAreZero(t *testing.T) {
	cfg := projectorConfig(t, core.WithCounts(2, 6))
	geo := testGeometry(t, 2)
	sp := []core.Species{{Charge: -1, Dens: 1, Temp: 1, Mass: 1, VTherm: 2}}

	p, err := qlweights.NewProjector(cfg, geo, sp)
	require.NoError(t, err)

	v := make([]complex128, 12)
	for k := range v {
		v[k] = complex(float64(k%3), float64(k%2)) // arbitrary nonzero pattern
	}
	m := core.NewMode(12, 2, 1)
	require.NoError(t, p.Project(m, v, 0.1+0.4i))

	for i := 0; i < 2; i++ {
		assert.Equal(t, complex128(0), m.Psi[i])
		assert.Equal(t, complex128(0), m.Sig[i])
	}
	for kind := 0; kind < core.NumFluxKinds; kind++ {
		assert.Zero(t, m.Flux[0][kind][core.ChannelPsi])
		assert.Zero(t, m.Flux[0][kind][core.ChannelSig])
	}
}

// TestProject_EnabledPsiChannel verifies the flutter channel activates with
// the ψ switch and produces a nonzero ψ field from a flow moment.
func TestProject_EnabledPsiChannel(t *testing.T) {
	cfg := projectorConfig(t, core.WithPsi())
	geo := testGeometry(t, 1)
	sp := []core.Species{{Charge: 1, Dens: 1, Temp: 1, Mass: 1, VTherm: 2}}

	p, err := qlweights.NewProjector(cfg, geo, sp)
	require.NoError(t, err)

	v := []complex128{1, 1i, 0, 0, 0, 1} // density, flow, heat flux
	m := core.NewMode(6, 1, 1)
	require.NoError(t, p.Project(m, v, 0.1+0.2i))

	assert.NotZero(t, m.Psi[0], "ψ = BPInv·(z·a·v_s·u∥) must be nonzero")
	// ψ and u∥ are in phase by construction, so the particle flutter flux
	// vanishes; the energy pairing against q picks up the cross phase.
	assert.Zero(t, m.Flux[0][core.FluxParticle][core.ChannelPsi])
	assert.NotZero(t, m.Flux[0][core.FluxEnergy][core.ChannelPsi])
}

// TestProject_ZeroVectorIsDegenerate verifies the φnorm floor keeps every
// output finite and zero-valued for the all-zero eigenvector.
func TestProject_ZeroVectorIsDegenerate(t *testing.T) {
	cfg := projectorConfig(t)
	geo := testGeometry(t, 1)
	sp := []core.Species{{Charge: 1, Dens: 1, Temp: 1, Mass: 1, VTherm: 1}}

	p, err := qlweights.NewProjector(cfg, geo, sp)
	require.NoError(t, err)

	m := core.NewMode(6, 1, 1)
	require.NoError(t, p.Project(m, make([]complex128, 6), 0))

	assert.Equal(t, core.Eps, m.PhiNorm, "floored, never zero")
	assert.Zero(t, m.VQL)
	for kind := 0; kind < core.NumFluxKinds; kind++ {
		for ch := 0; ch < core.NumChannels; ch++ {
			val := m.Flux[0][kind][ch]
			assert.False(t, math.IsNaN(val) || math.IsInf(val, 0))
			assert.Zero(t, val)
		}
	}
}

// TestProject_MultiSpeciesChargeWeightedNorm verifies the >2 species vector
// norm weights each block by |a_s·z_s| relative to the reference species.
func TestProject_MultiSpeciesChargeWeightedNorm(t *testing.T) {
	cfg := projectorConfig(t)
	geo := testGeometry(t, 1)
	sp := []core.Species{
		{Charge: -1, Dens: 1, Temp: 1, Mass: 1, VTherm: 1},
		{Charge: 1, Dens: 0.8, Temp: 1, Mass: 2, VTherm: 1},
		{Charge: 6, Dens: 0.2, Temp: 1, Mass: 12, VTherm: 1},
	}

	p, err := qlweights.NewProjector(cfg, geo, sp)
	require.NoError(t, err)

	v := make([]complex128, 18)
	v[0] = 1  // species 0 density
	v[6] = 1  // species 1 density
	v[12] = 1 // species 2 density
	m := core.NewMode(18, 1, 3)
	require.NoError(t, p.Project(m, v, 0.1+0.1i))

	// Weights: 1, 0.8, 1.2 → vnorm = 3.0 (each block contributes |1|² = 1).
	assert.InDelta(t, 3.0, m.VNorm, 1e-14)
}

// TestNewProjector_BadReferenceSpecies verifies construction rejects a
// reference species whose charge or density would zero the norm divisor.
func TestNewProjector_BadReferenceSpecies(t *testing.T) {
	cfg := projectorConfig(t)
	geo := testGeometry(t, 1)

	_, err := qlweights.NewProjector(cfg, geo, []core.Species{
		{Charge: 0, Dens: 1, Temp: 1, Mass: 1, VTherm: 1},
	})
	assert.ErrorIs(t, err, qlweights.ErrBadReference)

	_, err = qlweights.NewProjector(cfg, geo, []core.Species{
		{Charge: -1, Dens: 0, Temp: 1, Mass: 1, VTherm: 1},
	})
	assert.ErrorIs(t, err, qlweights.ErrBadReference)
}

// TestProject_VParShiftChangesAmplitudes verifies the shifted flow model
// moves the density amplitude weight when ψ is active.
func TestProject_VParShiftChangesAmplitudes(t *testing.T) {
	geo := testGeometry(t, 1)
	sp := []core.Species{{Charge: 1, Dens: 1, Temp: 1, Mass: 1, VTherm: 1, VPar: 0.5}}
	v := []complex128{1, 1, 0, 0, 0, 0}

	run := func(opts ...core.Option) *core.Mode {
		cfg := projectorConfig(t, append([]core.Option{core.WithPsi()}, opts...)...)
		p, err := qlweights.NewProjector(cfg, geo, sp)
		require.NoError(t, err)
		m := core.NewMode(6, 1, 1)
		require.NoError(t, p.Project(m, v, 0.1+0.2i))

		return m
	}

	plain := run()
	shifted := run(core.WithVParShift())
	assert.NotEqual(t, plain.NWeight[0], shifted.NWeight[0])
	assert.Equal(t, plain.TWeight[0], shifted.TWeight[0], "T is shift-insensitive")
}
