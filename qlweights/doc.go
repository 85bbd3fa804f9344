// Package qlweights is the quasilinear weight engine: it turns one mode's
// eigenvector into physical moments, electromagnetic potentials, scalar
// diagnostics and per-species flux weights.
//
// The projection is a single deterministic pass of dense linear algebra:
//
//  1. Slice the eigenvector into per-species, per-basis moments through a
//     structured MomentView (density, parallel flow, parallel/total pressure,
//     parallel/total heat flux), including the trapped/gyro correction block
//     of the full closure (root count > 6).
//  2. Vector norm, charge-weighted when more than two species are active.
//  3. Field potentials φ, ψ, σ from the precomputed inverse field operators;
//     ψ and σ only when their electromagnetic channels are enabled.
//  4. Adiabatic response subtracted from density and total pressure.
//  5. φ-norm floored at core.Eps; field weights scaled by i/√φnorm.
//  6. Scalar diagnostics ⟨φ|Op|φ⟩/φnorm for the six averaging operators.
//  7. Parallel-flow stress correction (default saturation rule only).
//  8. Flux weights (particle, energy, parallel/toroidal stress, exchange)
//     per species and enabled channel, divided by φnorm.
//  9. Density–temperature cross phases.
//  10. Parallel-flow shift of the amplitude-squared weights when the shifted
//     flow model is active.
//
// No iteration, no convergence loop, no retained state: a Projector borrows
// read-only configuration/geometry/species views and writes into the caller's
// Mode record.
package qlweights
