// Package stability is the per-wavenumber entrypoint of linstab: it wires
// mode selection, the regularized eigenvector solve, the quasilinear
// projection and the empirical closures into one synchronous pipeline.
//
// One Run call evaluates one poloidal wavenumber:
//
//	result, err := stability.Run(cfg, geo, species, eigenproblem)
//
// Control flow: the Eigen-Selector orders the raw spectrum; for each selected
// mode the Eigenvector Solver recovers a representative eigenvector, the
// Moment Projector turns it into normalized weights, the Shear-Quench and
// Intensity closures rescale growth rate and amplitudes, and the results are
// copied into the caller-visible Mode records. Profiles are reconstructed on
// demand via ReconstructProfiles.
//
// Resource model: the whole pipeline is single-threaded and runs to
// completion; concurrency across wavenumbers belongs to the calling scan
// driver. All working storage (the O(R²) solve matrix, projection scratch)
// lives in a per-call context released on every exit path — including the
// fatal path when the solve reports a singular system — so peak memory is one
// problem instance regardless of how many wavenumbers are scanned.
//
// Error model: core.ErrSolveSingular is fatal and yields no partial output
// for the wavenumber. Degenerate norms degrade to defined zero outputs, and
// disabled electromagnetic channels contribute exact zeros.
package stability
