// SPDX-License-Identifier: MIT

package closure

import (
	"math"

	"github.com/katalvlaran/linstab/core"
)

// Quench applies the ExB shear-quench rule to the growth rate gamma:
//
//	quench(γ) = max(γ − |α_exb·q·S|, 0)
//
// where q is the quench-enable scalar (Config.QuenchCoeff), S the precomputed
// ExB shearing rate, and α_exb the base coefficient core.AlphaExB scaled by
// √elongation off the cylindrical limit.
//
// The caller applies Quench only when q ≠ 0; the alternative spectral-shift
// substitution is handled by the pipeline, not here.
//
// Properties: for γ ≥ 0, 0 ≤ Quench(γ) ≤ γ; monotone in γ.
func Quench(gamma, q, shear float64, kind core.GeometryKind, elongation float64) float64 {
	alpha := core.AlphaExB
	if kind != core.Cylindrical {
		alpha *= math.Sqrt(elongation)
	}

	quenched := gamma - math.Abs(alpha*q*shear)
	if quenched < 0 {
		return 0
	}

	return quenched
}
