// SPDX-License-Identifier: MIT

// Package stability: the Run pipeline.
// Run is deliberately a thin dispatcher in the shape select → (solve →
// project → saturate) per mode; every numerical decision lives in the
// subpackage that owns it.

package stability

import (
	"fmt"

	"github.com/katalvlaran/linstab/closure"
	"github.com/katalvlaran/linstab/core"
	"github.com/katalvlaran/linstab/linsolve"
	"github.com/katalvlaran/linstab/modesel"
	"github.com/katalvlaran/linstab/qlweights"
)

// runContext owns the working storage of one Run call: the O(R²) real
// embedding of the solver and the projection scratch. It is created on entry
// and released on every exit path, so a scan over many wavenumbers never
// holds more than one problem instance of workspace.
type runContext struct {
	solver    *linsolve.Solver
	projector *qlweights.Projector
}

func newRunContext(cfg core.Config, geo core.Geometry, species []core.Species) (*runContext, error) {
	proj, err := qlweights.NewProjector(cfg, geo, species)
	if err != nil {
		return nil, err
	}

	return &runContext{
		solver:    linsolve.NewSolver(cfg.Rank(len(species))),
		projector: proj,
	}, nil
}

// release drops the workspace references so the storage is collectable even
// while the caller retains the Result.
func (c *runContext) release() {
	c.solver, c.projector = nil, nil
}

// candidate pairs a spectrum index with its branch tag. index == modesel.None
// marks an empty slot whose Mode stays at the zero state.
type candidate struct {
	index  int
	branch core.Branch
}

// Run evaluates one poloidal wavenumber: it selects the relevant eigenmodes
// of ep, recovers their eigenvectors, projects quasilinear weights and applies
// the saturation closures. The returned Result is fully caller-owned.
//
// Contract:
//   - ep must have rank cfg.Rank(len(species)); species must be non-empty and
//     species[0] is the reference species of the intensity closure.
//   - A singular eigenvector solve is fatal: Run returns nil and an error
//     wrapping core.ErrSolveSingular, with no partial output.
//   - Degenerate modes (vanishing field norm) produce defined zero outputs,
//     never NaN.
//
// Complexity: O(MaxModes · R³) dominated by the LU factorizations.
func Run(cfg core.Config, geo core.Geometry, species []core.Species, ep *core.Eigenproblem) (*Result, error) {
	// Stage 1: input contract.
	if len(species) == 0 {
		return nil, fmt.Errorf("Run: %w", core.ErrNoSpecies)
	}
	if ep == nil {
		return nil, fmt.Errorf("Run: eigenproblem: %w", core.ErrNilMatrix)
	}
	if want := cfg.Rank(len(species)); ep.Rank() != want {
		return nil, fmt.Errorf("Run: eigenproblem rank %d, want %d: %w",
			ep.Rank(), want, core.ErrDimensionMismatch)
	}

	// Stage 2: per-call workspace, released on all exit paths.
	ctx, err := newRunContext(cfg, geo, species)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	defer ctx.release()

	// Stage 3: spectrum ordering per the branch policy.
	cands, err := selectModes(cfg, ep)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	// Stage 4: per-mode processing into preallocated slots.
	result := newResult(cfg, len(species))
	for slot, cand := range cands {
		if cand.index == modesel.None {
			continue // slot stays at the zero state
		}
		if err = processMode(cfg, geo, species, ep, ctx, result.Modes[slot], cand); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		result.NModes = slot + 1
	}

	return result, nil
}

// selectModes maps the branch policy onto the modesel primitives and returns
// one candidate per output slot (at most cfg.MaxModes entries).
func selectModes(cfg core.Config, ep *core.Eigenproblem) ([]candidate, error) {
	var cands []candidate

	switch cfg.Policy {
	case core.DualBranch:
		ion, electron, err := modesel.SelectDualBranch(ep.RR, ep.RI, core.Eps)
		if err != nil {
			return nil, err
		}
		// Fixed slot order: ion first, electron second.
		cands = []candidate{
			{index: ion, branch: core.BranchIon},
			{index: electron, branch: core.BranchElectron},
		}

	default: // core.TopN
		idx, err := modesel.SelectTopN(ep.RR, core.Eps, cfg.NModesRequested)
		if err != nil {
			return nil, err
		}
		cands = make([]candidate, len(idx))
		for i, k := range idx {
			cands[i] = candidate{index: k, branch: core.BranchUnclassified}
		}
	}

	if len(cands) > cfg.MaxModes {
		cands = cands[:cfg.MaxModes]
	}

	return cands, nil
}

// processMode runs solve → project → saturate for one selected mode and
// fills m in place.
func processMode(
	cfg core.Config,
	geo core.Geometry,
	species []core.Species,
	ep *core.Eigenproblem,
	ctx *runContext,
	m *core.Mode,
	cand candidate,
) error {
	k := cand.index

	// Stage 1: regularized eigenvector solve (fatal on singularity).
	v, eig, err := ctx.solver.Solve(ep, k, core.Delta)
	if err != nil {
		return err
	}

	// Stage 2: moment projection — fills fields, norms, per-unit-intensity
	// flux and amplitude weights, and the scalar diagnostics.
	if err = ctx.projector.Project(m, v, eig); err != nil {
		return err
	}

	// Stage 3: growth-rate closure. Quenching and the spectral-shift
	// substitution are mutually exclusive by construction: the shift applies
	// only when quenching is off and the geometry carries ExB shear.
	gamma, freq := ep.Growth(k), ep.Freq(k)
	switch {
	case cfg.QuenchCoeff != 0:
		gamma = closure.Quench(gamma, cfg.QuenchCoeff, geo.ExBShear, geo.Kind, geo.Elongation)
	case cfg.SpectralShift && geo.ExBShear != 0:
		gamma, freq = cfg.GammaRef, cfg.FreqRef
	}
	m.Gamma, m.Freq = gamma, freq
	m.Branch = cand.branch

	// Stage 4: saturated intensity and the amplitude rescale.
	intensity, err := closure.Intensity(cfg, geo, species[0], gamma)
	if err != nil {
		return err
	}
	m.Intensity = intensity
	applyIntensity(m, closure.RescaleFactor(intensity, m.VQL))

	return nil
}

// applyIntensity fills every bar (saturated) output from its per-unit-
// intensity counterpart. scale is I/v_QL, or 0 for a degenerate mode.
func applyIntensity(m *core.Mode, scale float64) {
	for s := range m.Flux {
		for kind := 0; kind < core.NumFluxKinds; kind++ {
			for ch := 0; ch < core.NumChannels; ch++ {
				m.FluxBar[s][kind][ch] = scale * m.Flux[s][kind][ch]
			}
		}
		m.NBar[s] = scale * m.NWeight[s]
		m.TBar[s] = scale * m.TWeight[s]
		m.UBar[s] = scale * m.UWeight[s]
		m.QBar[s] = scale * m.QWeight[s]
	}
	for i := range m.Phi {
		m.PhiBar[i] = scale * amp2(m.Phi[i])
		m.PsiBar[i] = scale * amp2(m.Psi[i])
		m.SigBar[i] = scale * amp2(m.Sig[i])
	}
}

func amp2(c complex128) float64 { return real(c)*real(c) + imag(c)*imag(c) }
