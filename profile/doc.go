// Package profile reconstructs retained modes on a physical angular grid for
// diagnostic and plotting use.
//
// The kernel stores each mode's electromagnetic potentials as coefficient
// vectors over a fixed orthogonal Hermite-function basis. Reconstruction
// evaluates the basis with the stable three-term recursion and sums the
// weighted basis functions at every grid point:
//
//	field(x) = Σ_i w_i · h_i(x)
//
// Grid construction differs by geometry:
//
//   - Cylindrical — a uniform grid spanning [−3π, 3π].
//   - Toroidal / General — a folded grid following the precomputed field-line
//     coordinate of one half-period, mirrored and shifted into six symmetric
//     π-wide segments covering the same [−3π, 3π] ballooning extent.
//
// The ψ and σ channels are reconstructed only when their electromagnetic
// switches are enabled; disabled channels stay identically zero.
package profile
