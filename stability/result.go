// SPDX-License-Identifier: MIT

package stability

import (
	"github.com/katalvlaran/linstab/core"
	"github.com/katalvlaran/linstab/profile"
)

// Result is the per-wavenumber output record of Run.
//
// Modes always has exactly cfg.MaxModes entries. Entries past NModes stay at
// the zero state produced by core.NewMode, so downstream accumulators may
// iterate the full slice without caring how many modes were actually
// selected.
type Result struct {
	// Modes holds the processed modes, most relevant first. Slot order is
	// fixed by the selection policy: under DualBranch slot 0 is the ion
	// branch and slot 1 the electron branch; under TopN slots follow
	// descending growth rate.
	Modes []*core.Mode

	// NModes is the number of leading entries of Modes that were filled.
	NModes int
}

// newResult allocates a zero-state Result shaped by the run configuration.
func newResult(cfg core.Config, nSpecies int) *Result {
	r := &Result{Modes: make([]*core.Mode, cfg.MaxModes)}
	for i := range r.Modes {
		r.Modes[i] = core.NewMode(cfg.Rank(nSpecies), cfg.NBasis, nSpecies)
	}
	return r
}

// GammaMax returns the largest (post-quench) growth rate across filled modes,
// or 0 when no mode was filled.
func (r *Result) GammaMax() float64 {
	max := 0.0
	for i := 0; i < r.NModes; i++ {
		if g := r.Modes[i].Gamma; g > max {
			max = g
		}
	}
	return max
}

// SumFlux returns the saturated flux weight of one species and transport
// kind, summed over all filled modes and all enabled field channels. It is
// the quantity a scan driver accumulates into a transport profile.
func (r *Result) SumFlux(s int, kind core.FluxKind) float64 {
	sum := 0.0
	for i := 0; i < r.NModes; i++ {
		m := r.Modes[i]
		if s < 0 || s >= len(m.FluxBar) {
			continue
		}
		for ch := 0; ch < core.NumChannels; ch++ {
			sum += m.FluxBar[s][kind][ch]
		}
	}
	return sum
}

// ReconstructProfiles evaluates the fluctuation profiles of the filled modes
// on the ballooning-space grid of geo. Unfilled slots are excluded.
func (r *Result) ReconstructProfiles(cfg core.Config, geo core.Geometry) (*profile.Profiles, error) {
	return profile.Reconstruct(cfg, geo, r.Modes[:r.NModes])
}
