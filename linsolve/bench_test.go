package linsolve_test

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linstab/core"
	"github.com/katalvlaran/linstab/linsolve"
)

// BenchmarkSolve measures one regularized eigenvector solve at production
// rank 48 (two species × six roots × four basis functions), dominated by the
// 96×96 LU factorization.
func BenchmarkSolve(b *testing.B) {
	const rank = 48
	ad := make([]complex128, rank*rank)
	bd := make([]complex128, rank*rank)
	alpha := make([]complex128, rank)
	beta := make([]complex128, rank)
	for j := 0; j < rank; j++ {
		alpha[j] = complex(0.5-0.02*float64(j), 0.3)
		beta[j] = 1
		ad[j*rank+j] = alpha[j]
		bd[j*rank+j] = 1
	}
	ep, err := core.NewEigenproblem(
		mat.NewCDense(rank, rank, ad), mat.NewCDense(rank, rank, bd), alpha, beta)
	if err != nil {
		b.Fatal(err)
	}

	s := linsolve.NewSolver(rank) // buffers allocated once, reused every solve
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := s.Solve(ep, 0, core.Delta); err != nil {
			b.Fatal(err)
		}
	}
}
