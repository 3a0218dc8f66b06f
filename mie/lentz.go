package mie

import (
	"fmt"
	"math/cmplx"
)

// lentzDn seeds the downward logarithmic-derivative recurrence by
// evaluating the Riccati-Bessel psi_n logarithmic derivative at order n via
// a Lentz continued fraction (spec.md §4.A).
func lentzDn(z complex128, n int) (complex128, error) {
	twoOverZ := complex(2, 0) / z
	nf := complex(float64(n), 0)

	a := -(nf + 1.5) * twoOverZ
	alpha := (nf + 0.5) * twoOverZ

	num := a + 1/alpha
	den := a

	ratio := num / den
	r := alpha * ratio

	for i := 0; i < maxLentzIterations; i++ {
		if cmplx.Abs(ratio-1) < 1e-12 {
			return -nf/z + r, nil
		}

		a = twoOverZ - a
		twoOverZ = -twoOverZ
		num = a + 1/num
		den = a + 1/den
		ratio = num / den
		r *= ratio
	}

	return 0, fmt.Errorf("mie: %w: Lentz_Dn failed to converge after %d iterations", ErrConvergenceFailure, maxLentzIterations)
}

// dnUp fills D[0..nstop-1] via the upward logarithmic-derivative
// recurrence of spec.md §4.A. Stable only when |Im(m)|*x lies below the
// threshold spec.md §4.B uses to select between dnUp and dnDown.
func dnUp(z complex128, nstop int) []complex128 {
	d := make([]complex128, nstop)
	d[0] = cmplx.Cos(z) / cmplx.Sin(z) // cot(z)
	for k := 1; k < nstop; k++ {
		kOverZ := complex(float64(k), 0) / z
		d[k] = 1/(kOverZ-d[k-1]) - kOverZ
	}
	return d
}

// dnDown fills D[0..nstop-1] via the downward logarithmic-derivative
// recurrence of spec.md §4.A, seeded by lentzDn. Mandatory for strongly
// absorbing media.
func dnDown(z complex128, nstop int) ([]complex128, error) {
	d := make([]complex128, nstop)
	seed, err := lentzDn(z, nstop)
	if err != nil {
		return nil, err
	}
	d[nstop-1] = seed
	for k := nstop - 1; k > 0; k-- {
		kOverZ := complex(float64(k), 0) / z
		d[k-1] = kOverZ - 1/(d[k]+kOverZ)
	}
	return d, nil
}
