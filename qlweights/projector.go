// SPDX-License-Identifier: MIT

package qlweights

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linstab/core"
)

// ErrBadReference is returned when the reference (first) species carries a
// zero charge or density fraction: the charge-weighted vector norm divides by
// |a₀·z₀| and would otherwise go non-finite.
var ErrBadReference = errors.New("qlweights: reference species has zero charge or density")

// perpPTot and perpPPar combine parallel and total pressure into the
// perpendicular-pressure proxy p⊥ = 1.5·p − 0.5·p∥ feeding the σ channel.
const (
	perpPTot = 1.5
	perpPPar = -0.5
)

// energyFactor is the 3/2 thermodynamic factor of the energy flux weights.
const energyFactor = 1.5

// Projector turns eigenvectors into quasilinear weights for one call. It
// borrows read-only views of the configuration, geometry and species and owns
// only scratch buffers, reused across the call's selected modes.
type Projector struct {
	cfg     core.Config
	geo     core.Geometry
	species []core.Species

	// Per-species moment buffers, [species][basis].
	n, u, ppar, ptot, qpar, qtot [][]complex128
	pperp                        [][]complex128
	uCorr, pparCorr              [][]complex128

	// Field-solve scratch.
	phi, psi, sig []complex128
	shifted       []complex128
	srcRe, srcIm  *mat.VecDense
	outRe, outIm  *mat.VecDense
}

// NewProjector validates the call inputs and allocates scratch storage.
//
// Errors: core.ErrNoSpecies, ErrBadReference; operator shapes are the
// caller's duty via core.NewGeometry.
func NewProjector(cfg core.Config, geo core.Geometry, species []core.Species) (*Projector, error) {
	if len(species) == 0 {
		return nil, fmt.Errorf("NewProjector: %w", core.ErrNoSpecies)
	}
	if species[0].Charge == 0 || species[0].Dens == 0 {
		return nil, fmt.Errorf("NewProjector: z=%g a=%g: %w",
			species[0].Charge, species[0].Dens, ErrBadReference)
	}

	ns, nb := len(species), cfg.NBasis
	alloc := func() [][]complex128 {
		b := make([][]complex128, ns)
		for s := range b {
			b[s] = make([]complex128, nb)
		}

		return b
	}

	return &Projector{
		cfg:     cfg,
		geo:     geo,
		species: species,
		n:       alloc(), u: alloc(), ppar: alloc(), ptot: alloc(),
		qpar: alloc(), qtot: alloc(), pperp: alloc(),
		uCorr: alloc(), pparCorr: alloc(),
		phi: make([]complex128, nb), psi: make([]complex128, nb), sig: make([]complex128, nb),
		shifted: make([]complex128, nb),
		srcRe:   mat.NewVecDense(nb, nil), srcIm: mat.NewVecDense(nb, nil),
		outRe: mat.NewVecDense(nb, nil), outIm: mat.NewVecDense(nb, nil),
	}, nil
}

// Project fills m from the eigenvector v and the complex mode frequency eig.
// m must come from core.NewMode with matching rank/basis/species sizes.
// The pass is deterministic and never fails on degenerate numerics: all
// near-zero norms are floored per the kernel contract.
func (p *Projector) Project(m *core.Mode, v []complex128, eig complex128) error {
	ns, nb := len(p.species), p.cfg.NBasis

	// Stage 1: structured moment extraction.
	view, err := NewMomentView(v, ns, p.cfg.NRoot, nb)
	if err != nil {
		return fmt.Errorf("Project: %w", err)
	}
	for s := 0; s < ns; s++ {
		view.Fill(p.n[s], s, MomentDensity)
		view.Fill(p.u[s], s, MomentUPar)
		view.Fill(p.ppar[s], s, MomentPPar)
		view.Fill(p.ptot[s], s, MomentPTot)
		view.Fill(p.qpar[s], s, MomentQPar)
		view.Fill(p.qtot[s], s, MomentQTot)
		for i := 0; i < nb; i++ {
			p.pperp[s][i] = complex(perpPTot, 0)*p.ptot[s][i] + complex(perpPPar, 0)*p.ppar[s][i]
		}
	}
	copy(m.Eigenvector, v)

	// Stage 2: vector norm. Up to two species the plain Σ|v|²; beyond that
	// each species block is weighted by its charge density relative to the
	// reference (first) species.
	vnorm := 0.0
	if ns <= 2 {
		vnorm = amp2(v)
	} else {
		ref := math.Abs(p.species[0].Dens * p.species[0].Charge)
		for s := 0; s < ns; s++ {
			w := math.Abs(p.species[s].Dens*p.species[s].Charge) / ref
			vnorm += w * view.BlockNorm(s)
		}
	}
	m.VNorm = vnorm

	// Stage 3: field potentials through the inverse field operators.
	p.solveField(p.phi, p.geo.P0Inv, func(s int, i int) complex128 {
		sp := p.species[s]

		return complex(sp.Charge*sp.Dens, 0) * p.n[s][i]
	})
	zero(p.psi)
	if p.cfg.UsePsi {
		p.solveField(p.psi, p.geo.BPInv, func(s int, i int) complex128 {
			sp := p.species[s]

			return complex(sp.Charge*sp.Dens*sp.VTherm, 0) * p.u[s][i]
		})
	}
	zero(p.sig)
	if p.cfg.UseSigma {
		p.solveField(p.sig, p.geo.B0Inv, func(s int, i int) complex128 {
			sp := p.species[s]

			return complex(sp.Dens*sp.Temp, 0) * p.pperp[s][i]
		})
	}

	// Stage 4: adiabatic response, subtracted from density and total pressure.
	for s := 0; s < ns; s++ {
		sp := p.species[s]
		ad := complex(sp.Charge/sp.Temp, 0)
		for i := 0; i < nb; i++ {
			p.n[s][i] -= ad * p.phi[i]
			p.ptot[s][i] -= ad * p.phi[i]
		}
	}

	// Stage 5: φ-norm floor and field weights, scaled by i/√φnorm.
	phinorm := amp2(p.phi)
	if phinorm < core.Eps {
		phinorm = core.Eps
	}
	m.PhiNorm = phinorm
	m.VQL = vnorm / phinorm
	scale := complex(0, 1/math.Sqrt(phinorm))
	for i := 0; i < nb; i++ {
		m.Phi[i] = scale * p.phi[i]
		m.Psi[i] = scale * p.psi[i]
		m.Sig[i] = scale * p.sig[i]
	}

	// Stage 6: scalar diagnostics ⟨φ|Op|φ⟩/φnorm.
	splitInto(p.phi, p.srcRe, p.srcIm)
	m.WdBar = quadForm(p.geo.Wd, p.srcRe, p.srcIm) / phinorm
	m.B0Bar = quadForm(p.geo.Compress, p.srcRe, p.srcIm) / phinorm
	m.ModBBar = quadForm(p.geo.B0Mag, p.srcRe, p.srcIm) / phinorm
	m.KxBar = quadForm(p.geo.Kx, p.srcRe, p.srcIm) / phinorm
	m.KparBar = quadForm(p.geo.KPar, p.srcRe, p.srcIm) / phinorm
	satGeo := quadForm(p.geo.SatGeo, p.srcRe, p.srcIm) / phinorm
	if satGeo < core.Eps {
		satGeo = core.Eps
	}
	m.SatGeoBar = 1 / satGeo

	// Stage 7: parallel-flow stress correction (default saturation rule only).
	for s := 0; s < ns; s++ {
		factor := 1.0
		if p.cfg.SatRule == core.SatLocal {
			wp := p.geo.ParShearAvg * math.Abs(p.species[s].VParShear)
			factor = stressCorrection(eig, wp)
		}
		cf := complex(factor, 0)
		for i := 0; i < nb; i++ {
			p.uCorr[s][i] = cf * p.u[s][i]
			p.pparCorr[s][i] = cf * p.ppar[s][i]
		}
	}

	// Stage 8: flux weights per species × enabled channel.
	for s := 0; s < ns; s++ {
		p.fluxTable(&m.Flux[s], s, eig, phinorm)
	}

	// Stage 9: density–temperature cross phase. T = p − n is insensitive to
	// the adiabatic subtraction, which cancels in the difference.
	for s := 0; s < ns; s++ {
		var accRe, accIm float64
		for i := 0; i < nb; i++ {
			tt := p.ptot[s][i] - p.n[s][i]
			nn := p.n[s][i]
			// Σ conj(n)·T, expanded.
			accRe += real(nn)*real(tt) + imag(nn)*imag(tt)
			accIm += real(nn)*imag(tt) - imag(nn)*real(tt)
		}
		m.NTPhase[s] = math.Atan2(accIm, accRe)
	}

	// Stage 10: amplitude-squared weights, parallel-flow shift applied to the
	// Doppler-affected moments (density, flow) under the shifted flow model.
	for s := 0; s < ns; s++ {
		sp := p.species[s]
		var shift complex128
		if p.cfg.VParShift {
			shift = complex(sp.VPar*sp.Charge/sp.Temp, 0)
		}

		for i := 0; i < nb; i++ {
			p.shifted[i] = p.n[s][i] - shift*p.psi[i]
		}
		m.NWeight[s] = amp2(p.shifted) / phinorm

		for i := 0; i < nb; i++ {
			p.shifted[i] = p.u[s][i] - shift*p.psi[i]
		}
		m.UWeight[s] = amp2(p.shifted) / phinorm

		tw := 0.0
		for i := 0; i < nb; i++ {
			tt := p.ptot[s][i] - p.n[s][i]
			tw += real(tt)*real(tt) + imag(tt)*imag(tt)
		}
		m.TWeight[s] = tw / phinorm
		m.QWeight[s] = amp2(p.qtot[s]) / phinorm
	}

	return nil
}

// solveField accumulates src_j = Σ_s source(s, j) and applies the inverse
// field operator via gonum on the re/im splits: dst = Op·src.
func (p *Projector) solveField(dst []complex128, op *mat.Dense, source func(s, i int) complex128) {
	nb := len(dst)
	for i := 0; i < nb; i++ {
		var acc complex128
		for s := range p.species {
			acc += source(s, i)
		}
		p.srcRe.SetVec(i, real(acc))
		p.srcIm.SetVec(i, imag(acc))
	}
	p.outRe.MulVec(op, p.srcRe)
	p.outIm.MulVec(op, p.srcIm)
	for i := 0; i < nb; i++ {
		dst[i] = complex(p.outRe.AtVec(i), p.outIm.AtVec(i))
	}
}

// fluxTable fills one species' flux weights. Channel conventions:
//
//	φ — pairs with n (particle), p (energy), corrected u∥ (stresses), and the
//	    z̄-weighted n (exchange);
//	ψ — magnetic flutter: −v_s scaling, pairs with u∥ (particle), q (energy),
//	    corrected p∥ (stresses), z̄-weighted u∥ (exchange);
//	σ — compressional: τ_s scaling, pairs with p⊥ (particle), p (energy),
//	    corrected u∥ (stresses), z̄-weighted p⊥ (exchange).
//
// Every entry carries the species charge/density/mass/thermal-velocity factors
// of its kind and the common 1/φnorm normalization.
func (p *Projector) fluxTable(ft *core.FluxTable, s int, eig complex128, phinorm float64) {
	sp := p.species[s]
	geo := p.geo

	// Electrostatic channel, always active.
	ft[core.FluxParticle][core.ChannelPhi] = sp.Dens * fluxIntegral(p.phi, p.n[s]) / phinorm
	ft[core.FluxEnergy][core.ChannelPhi] = energyFactor * sp.Dens * sp.Temp * fluxIntegral(p.phi, p.ptot[s]) / phinorm
	ft[core.FluxStressPar][core.ChannelPhi] = sp.Dens * sp.Mass * sp.VTherm * fluxIntegralOp(p.phi, geo.KPar, p.uCorr[s]) / phinorm
	ft[core.FluxStressTor][core.ChannelPhi] = sp.Dens * sp.Mass * sp.VTherm * fluxIntegralOp(p.phi, geo.Kx, p.uCorr[s]) / phinorm
	ft[core.FluxExchange][core.ChannelPhi] = sp.Charge * sp.Dens * exchangeIntegral(p.phi, p.n[s], eig) / phinorm

	if p.cfg.UsePsi {
		ft[core.FluxParticle][core.ChannelPsi] = -sp.Dens * sp.VTherm * fluxIntegral(p.psi, p.u[s]) / phinorm
		ft[core.FluxEnergy][core.ChannelPsi] = -energyFactor * sp.Dens * sp.Temp * sp.VTherm * fluxIntegral(p.psi, p.qtot[s]) / phinorm
		ft[core.FluxStressPar][core.ChannelPsi] = -sp.Dens * sp.Mass * sp.VTherm * sp.VTherm * fluxIntegralOp(p.psi, geo.KPar, p.pparCorr[s]) / phinorm
		ft[core.FluxStressTor][core.ChannelPsi] = -sp.Dens * sp.Mass * sp.VTherm * sp.VTherm * fluxIntegralOp(p.psi, geo.Kx, p.pparCorr[s]) / phinorm
		ft[core.FluxExchange][core.ChannelPsi] = -sp.Charge * sp.Dens * sp.VTherm * exchangeIntegral(p.psi, p.u[s], eig) / phinorm
	}

	if p.cfg.UseSigma {
		ft[core.FluxParticle][core.ChannelSig] = sp.Dens * sp.Temp * fluxIntegral(p.sig, p.pperp[s]) / phinorm
		ft[core.FluxEnergy][core.ChannelSig] = energyFactor * sp.Dens * sp.Temp * sp.Temp * fluxIntegral(p.sig, p.ptot[s]) / phinorm
		ft[core.FluxStressPar][core.ChannelSig] = sp.Dens * sp.Mass * sp.VTherm * sp.Temp * fluxIntegralOp(p.sig, geo.KPar, p.uCorr[s]) / phinorm
		ft[core.FluxStressTor][core.ChannelSig] = sp.Dens * sp.Mass * sp.VTherm * sp.Temp * fluxIntegralOp(p.sig, geo.Kx, p.uCorr[s]) / phinorm
		ft[core.FluxExchange][core.ChannelSig] = sp.Charge * sp.Dens * sp.Temp * exchangeIntegral(p.sig, p.pperp[s], eig) / phinorm
	}
}

// zero clears a complex buffer in place.
func zero(v []complex128) {
	for i := range v {
		v[i] = 0
	}
}
