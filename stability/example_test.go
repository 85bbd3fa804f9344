// Package stability_test provides a runnable example of the per-wavenumber
// pipeline, from the raw spectrum to saturated mode records.
package stability_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linstab/core"
	"github.com/katalvlaran/linstab/stability"
)

// ExampleRun evaluates one wavenumber of a minimal one-species, one-basis
// problem under the dual-branch policy and prints the two selected modes.
// Complexity: O(MaxModes·R³) dominated by the eigenvector solves.
func ExampleRun() {
	// 1) Configure the call: ky=0.3, one basis function, six moment roots.
	cfg, err := core.NewConfig(core.WithKy(0.3), core.WithCounts(1, 6))
	if err != nil {
		fmt.Println("config:", err)
		return
	}

	// 2) Supply the precomputed geometry operators (1×1 scalars here).
	op := func(v float64) *mat.Dense { return mat.NewDense(1, 1, []float64{v}) }
	geo, err := core.NewGeometry(core.Geometry{
		Kind:       core.Cylindrical,
		Elongation: 1, RMajor: 3, SatGeoFac: 1,
		P0Inv: op(1), BPInv: op(1), B0Inv: op(1),
		Wd: op(0.7), Compress: op(0.2), B0Mag: op(1.1),
		Kx: op(0.3), KPar: op(0.5), SatGeo: op(4),
	}, cfg.NBasis)
	if err != nil {
		fmt.Println("geometry:", err)
		return
	}

	// 3) One reference ion species.
	species := []core.Species{{Charge: 1, Dens: 1, Temp: 1, Mass: 1, VTherm: 1}}

	// 4) A diagonal rank-6 eigenproblem: entry 0 is an unstable ion-branch
	//    mode (γ=0.5, ri=0.3), entry 1 an electron-branch mode (γ=0.4).
	spectrum := []complex128{
		complex(0.5, 0.3), complex(0.4, -0.2), complex(-0.1, 0.05),
		complex(-0.3, -0.4), complex(-0.2, 0.1), complex(-0.5, 0),
	}
	ad := make([]complex128, 36)
	bd := make([]complex128, 36)
	beta := make([]complex128, 6)
	for j := 0; j < 6; j++ {
		ad[j*6+j] = spectrum[j]
		bd[j*6+j] = 1
		beta[j] = 1
	}
	ep, err := core.NewEigenproblem(
		mat.NewCDense(6, 6, ad), mat.NewCDense(6, 6, bd), spectrum, beta)
	if err != nil {
		fmt.Println("eigenproblem:", err)
		return
	}

	// 5) Run the pipeline and print the selected modes.
	res, err := stability.Run(cfg, geo, species, ep)
	if err != nil {
		fmt.Println("run:", err)
		return
	}
	for i := 0; i < res.NModes; i++ {
		m := res.Modes[i]
		fmt.Printf("%s: gamma=%.2f freq=%.2f\n", m.Branch, m.Gamma, m.Freq)
	}
	// Output:
	// ion: gamma=0.50 freq=-0.30
	// electron: gamma=0.40 freq=0.20
}
