// SPDX-License-Identifier: MIT

// Package qlweights: projection-integral kernels.
// Real-valued bilinear forms route through gonum (mat.Inner, MulVec on the
// re/im splits); the complex channel itself stays on complex128 arithmetic —
// gonum's dense complex type is storage-only and offers no complex kernels.

package qlweights

import (
	"gonum.org/v1/gonum/mat"
)

// fluxIntegral computes Σ_i Re(i·conj(field_i)·moment_i) — the elementary
// quasilinear projection of a moment against a field potential.
func fluxIntegral(field, moment []complex128) float64 {
	sum := 0.0
	for i := range field {
		// Re(i·conj(f)·m) = Im(f)·Re(m) − Re(f)·Im(m), expanded to avoid four
		// complex multiplies per entry.
		sum += imag(field[i])*real(moment[i]) - real(field[i])*imag(moment[i])
	}

	return sum
}

// fluxIntegralOp computes Σ_ij Re(i·conj(field_i)·op_ij·moment_j) — the
// stress projection with its additional basis-operator contraction.
func fluxIntegralOp(field []complex128, op *mat.Dense, moment []complex128) float64 {
	sum := 0.0
	n := len(field)
	for i := 0; i < n; i++ {
		var accRe, accIm float64 // (op·moment)_i
		for j := 0; j < n; j++ {
			o := op.At(i, j)
			accRe += o * real(moment[j])
			accIm += o * imag(moment[j])
		}
		sum += imag(field[i])*accRe - real(field[i])*accIm
	}

	return sum
}

// exchangeIntegral computes Σ_i Re(conj(field_i)·z̄·moment_i) with z̄ the
// complex mode frequency — the energy-exchange projection.
func exchangeIntegral(field, moment []complex128, eig complex128) float64 {
	sum := 0.0
	for i := range field {
		w := eig * moment[i]
		sum += real(field[i])*real(w) + imag(field[i])*imag(w)
	}

	return sum
}

// quadForm computes Re⟨φ|Op|φ⟩ = xᵀ·Op·x + yᵀ·Op·y for φ = x + i·y, reusing
// the caller's split buffers. Op is real, so the cross terms are purely
// imaginary and drop out of the real part.
func quadForm(op *mat.Dense, re, im *mat.VecDense) float64 {
	return mat.Inner(re, op, re) + mat.Inner(im, op, im)
}

// amp2 computes Σ|z_i|².
func amp2(v []complex128) float64 {
	sum := 0.0
	for _, z := range v {
		re, im := real(z), imag(z)
		sum += re*re + im*im
	}

	return sum
}

// splitInto writes the re/im parts of src into the two vector buffers.
func splitInto(src []complex128, re, im *mat.VecDense) {
	for i, z := range src {
		re.SetVec(i, real(z))
		im.SetVec(i, imag(z))
	}
}

// stressCorrection is the parallel-flow factor (Im z̄ + 2w_p)/(Im z̄ + w_p)
// applied to the stress moments under the default saturation rule. A vanishing
// denominator (marginal mode, no shear) degrades to the neutral factor 1.
func stressCorrection(eig complex128, wp float64) float64 {
	den := imag(eig) + wp
	if den == 0 {
		return 1
	}

	return (imag(eig) + 2*wp) / den
}
