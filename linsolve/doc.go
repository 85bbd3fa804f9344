// Package linsolve recovers a representative eigenvector for one selected
// eigenmode of the generalized eigenproblem (A, B).
//
// The true eigenvector of an eigenvalue pair (α, β) lies in the null space of
// β·A − α·B. Instead of a null-space computation, the kernel solves the
// deliberately near-singular system
//
//	M·v = b,   M = β·A − (δ + α)·B,   b = δ·e₁
//
// where δ (core.Delta) shifts the matrix just off exact singularity. The tiny
// right-hand side then excites almost exclusively the near-null direction, so
// v is the eigenvector up to normalization — which downstream projection
// removes anyway.
//
// The complex system is embedded into the real 2R×2R block form
//
//	⎡ Re M  −Im M ⎤ ⎡ Re v ⎤   ⎡ Re b ⎤
//	⎣ Im M   Re M ⎦ ⎣ Im v ⎦ = ⎣ Im b ⎦
//
// and factored by gonum's partially pivoted LU. A singular or hopelessly
// ill-conditioned factorization is the kernel's single fatal error
// (core.ErrSolveSingular): the regularizer is the only defense, there is no
// retry, and the whole wavenumber evaluation must stop.
package linsolve
