// Package closure implements the two empirical closures of the linstab kernel:
//
//   - Quench — the ExB shear-quench rule, rescaling a linear growth rate for
//     background-flow shearing: quench(γ) = max(γ − |α_exb·q·S|, 0), with the
//     base coefficient α_exb = 0.3 scaled by √elongation off the cylindrical
//     limit. Pure scalar arithmetic; the bound 0 ≤ quench(γ) ≤ γ holds for
//     every non-negative γ.
//
//   - Intensity — the saturation/intensity closure mapping (ky, γ) to an
//     absolute potential-fluctuation amplitude under the local saturation
//     rule. The empirical fit constants live in a 2×2 lookup table keyed by
//     (geometry family × requested mode count) so the regimes stay auditable.
//     Under the multiscale rule the closure defers amplitude to an external
//     spectrum computation and returns exactly 1.
//
// Both closures are deterministic given their inputs and never allocate.
package closure
