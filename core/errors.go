// SPDX-License-Identifier: MIT
// Package core: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the linstab
// module. All constructors and pipeline stages MUST return these sentinels and
// tests MUST check them via errors.Is. No routine panics on caller-triggered
// error conditions; panics are reserved for programmer errors in option
// constructors.

package core

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "core: ..." for consistency and to allow easy
// grepping across logs. DO NOT %w wrap these sentinels when returning directly;
// if context is essential (e.g. the failing pipeline stage), wrap with
// fmt.Errorf("stage: %w", ErrX) at the outer boundary — callers still match
// with errors.Is.

var (
	// ErrBadConfig is returned when a configuration record fails validation
	// (non-positive counts, NModesRequested > MaxModes, non-finite wavenumber).
	ErrBadConfig = errors.New("core: invalid configuration")

	// ErrDimensionMismatch indicates incompatible dimensions between supplied
	// arrays/matrices and the configured rank (e.g. an operator that is not
	// NBasis×NBasis, or an eigenvalue array shorter than rank R).
	ErrDimensionMismatch = errors.New("core: dimension mismatch")

	// ErrNilOperator indicates a required basis-averaging operator is nil.
	ErrNilOperator = errors.New("core: nil basis-averaging operator")

	// ErrNilMatrix indicates a nil eigenproblem matrix (A or B).
	ErrNilMatrix = errors.New("core: nil eigenproblem matrix")

	// ErrNoSpecies indicates an empty species list where at least one species
	// (the reference/electron species) is required.
	ErrNoSpecies = errors.New("core: species list is empty")

	// ErrSolveSingular is returned when the regularized eigenvector solve
	// reports a singular or hopelessly ill-conditioned factorization. This is
	// the single fatal error of the kernel: the whole wavenumber evaluation
	// must be abandoned, no partial output is produced.
	ErrSolveSingular = errors.New("core: singular eigenvector solve")
)
