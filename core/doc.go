// Package core defines the shared domain model for the linstab kernel:
// species parameters, geometry/basis-averaging operators, the generalized
// eigenproblem container, the per-call configuration record, and the Mode
// record that every pipeline stage populates.
//
// The core package provides:
//
//   - Species — immutable per-species physics inputs (charge, density fraction,
//     temperature ratio, mass, thermal velocity, parallel-flow data).
//   - Geometry — precomputed basis-averaging operator matrices and scalar
//     geometry data supplied by the external equilibrium/ballooning collaborator.
//   - Eigenproblem — the (A, B) matrix pair with its raw eigenvalue spectrum.
//   - Config — explicit per-call switches built from functional options.
//   - Mode — one selected eigenmode with its eigenvector, field weights, flux
//     weights, diagnostics and amplitude-scaled outputs.
//
// Everything here is plain data with strict constructors: validation is
// fail-fast and returns package sentinels; nothing in core mutates after
// construction. Other packages (modesel, linsolve, qlweights, closure,
// profile, stability) borrow read-only views of these records.
package core
