// SPDX-License-Identifier: MIT

package profile

import "math"

// hermiteNorm is π^(−1/4), the L² normalization of the ground basis function.
var hermiteNorm = math.Pow(math.Pi, -0.25)

// EvalBasis fills dst[k] with the normalized Hermite function h_k(x) for
// k = 0..len(dst)−1 via the stable three-term recursion
//
//	h₀(x)   = π^(−1/4)·exp(−x²/2)
//	h₁(x)   = √2·x·h₀(x)
//	h_{k+1} = x·√(2/(k+1))·h_k − √(k/(k+1))·h_{k−1}
//
// The recursion on the functions themselves (Gaussian folded in) stays
// bounded for every x, unlike the bare-polynomial recursion.
func EvalBasis(dst []float64, x float64) {
	if len(dst) == 0 {
		return
	}

	dst[0] = hermiteNorm * math.Exp(-0.5*x*x)
	if len(dst) == 1 {
		return
	}
	dst[1] = math.Sqrt2 * x * dst[0]

	for k := 1; k+1 < len(dst); k++ {
		fk := float64(k)
		dst[k+1] = x*math.Sqrt(2/(fk+1))*dst[k] - math.Sqrt(fk/(fk+1))*dst[k-1]
	}
}
