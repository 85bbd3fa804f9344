// SPDX-License-Identifier: MIT

package linsolve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linstab/core"
)

// Solver owns the dense working storage of the regularized solve: the 2R×2R
// real embedding, the right-hand side and the solution vector. One Solver
// serves one per-wavenumber call; every selected mode reuses the same buffers,
// bounding peak memory to a single problem instance O(R²).
type Solver struct {
	rank int
	m    *mat.Dense    // real embedding of β·A − (δ+α)·B
	b    *mat.VecDense // δ·e₁ embedded (imaginary half all zero)
	x    *mat.VecDense // solution, re/im halves
	lu   mat.LU
}

// NewSolver allocates working storage for eigenproblems of the given rank.
func NewSolver(rank int) *Solver {
	n := 2 * rank

	return &Solver{
		rank: rank,
		m:    mat.NewDense(n, n, nil),
		b:    mat.NewVecDense(n, nil),
		x:    mat.NewVecDense(n, nil),
	}
}

// Solve recovers the representative eigenvector of spectrum entry k.
//
// Stages:
//  1. Assemble M = β_k·A − (δ+α_k)·B into the real block embedding.
//  2. Set b = δ·e₁.
//  3. Factorize (LU, partial pivoting) and solve.
//  4. Fold the real solution back into v ∈ ℂ^R.
//
// Returns the eigenvector v and the derived complex mode frequency
// z̄ = i·α_k/β_k used by the projection integrals.
//
// Errors: core.ErrSolveSingular (wrapped with the stage and mode index) when
// the factorization reports a singular or ill-conditioned matrix. Fatal per
// the kernel contract — callers must abandon the wavenumber.
func (s *Solver) Solve(ep *core.Eigenproblem, k int, delta float64) ([]complex128, complex128, error) {
	r := ep.Rank()
	if r != s.rank {
		return nil, 0, fmt.Errorf("Solve: eigenproblem rank %d, solver rank %d: %w", r, s.rank, core.ErrDimensionMismatch)
	}

	// Stage 1: assemble the embedding. shift = δ + α_k.
	var (
		beta  = ep.Beta[k]
		shift = complex(delta, 0) + ep.Alpha[k]
	)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			mij := beta*ep.A.At(i, j) - shift*ep.B.At(i, j)
			re, im := real(mij), imag(mij)
			s.m.Set(i, j, re)
			s.m.Set(i, j+r, -im)
			s.m.Set(i+r, j, im)
			s.m.Set(i+r, j+r, re)
		}
	}

	// Stage 2: right-hand side δ·e₁ (fresh every call; x from the previous
	// mode never leaks in).
	for i := 0; i < 2*r; i++ {
		s.b.SetVec(i, 0)
	}
	s.b.SetVec(0, delta)

	// Stage 3: pivoted LU factorization and solve. Any reported conditioning
	// failure is fatal; the δ regularizer was the only defense.
	s.lu.Factorize(s.m)
	if err := s.lu.SolveVecTo(s.x, false, s.b); err != nil {
		return nil, 0, fmt.Errorf("eigenvector-solve: mode %d: %v: %w", k, err, core.ErrSolveSingular)
	}

	// Stage 4: fold back into the complex eigenvector.
	v := make([]complex128, r)
	for i := 0; i < r; i++ {
		v[i] = complex(s.x.AtVec(i), s.x.AtVec(i+r))
	}

	return v, ep.Eigenvalue(k), nil
}
