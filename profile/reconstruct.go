// SPDX-License-Identifier: MIT

package profile

import (
	"fmt"

	"github.com/katalvlaran/linstab/core"
)

// Profiles holds reconstructed mode shapes: X is the angular grid, and each
// channel is indexed [mode][grid point]. Channels whose electromagnetic
// switch is off stay zero-filled.
type Profiles struct {
	X             []float64
	Phi, Psi, Sig [][]complex128
}

// Reconstruct projects the retained modes' field weights back onto the
// physical angular grid of the geometry.
//
// For every grid point x the nBasis basis functions are evaluated once via
// EvalBasis and contracted against each mode's coefficient vectors, so the
// cost is O(points · (nBasis² + modes·nBasis)) — the recursion dominates.
//
// Errors: grid-construction sentinels (ErrNoFieldLineCoord,
// ErrBadFieldLineCoord) and core.ErrDimensionMismatch for a mode whose field
// vectors disagree with cfg.NBasis.
func Reconstruct(cfg core.Config, geo core.Geometry, modes []*core.Mode) (*Profiles, error) {
	x, err := Grid(geo)
	if err != nil {
		return nil, err
	}

	for k, m := range modes {
		if len(m.Phi) != cfg.NBasis {
			return nil, fmt.Errorf("Reconstruct: mode %d has %d field weights, want %d: %w",
				k, len(m.Phi), cfg.NBasis, core.ErrDimensionMismatch)
		}
	}

	p := &Profiles{
		X:   x,
		Phi: allocProfiles(len(modes), len(x)),
		Psi: allocProfiles(len(modes), len(x)),
		Sig: allocProfiles(len(modes), len(x)),
	}

	h := make([]float64, cfg.NBasis)
	for g, xv := range x {
		EvalBasis(h, xv)
		for k, m := range modes {
			var phi, psi, sig complex128
			for i := 0; i < cfg.NBasis; i++ {
				hi := complex(h[i], 0)
				phi += m.Phi[i] * hi
				if cfg.UsePsi {
					psi += m.Psi[i] * hi
				}
				if cfg.UseSigma {
					sig += m.Sig[i] * hi
				}
			}
			p.Phi[k][g] = phi
			p.Psi[k][g] = psi
			p.Sig[k][g] = sig
		}
	}

	return p, nil
}

func allocProfiles(modes, points int) [][]complex128 {
	out := make([][]complex128, modes)
	for k := range out {
		out[k] = make([]complex128, points)
	}

	return out
}
