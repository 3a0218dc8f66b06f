package mie

import (
	"fmt"
	"math"
)

// WhittleMattern computes the closed-form Whittle-Matern continuous-random
// -medium phase function (spec.md §4.C), an alternative to the discrete
// -particle Mie models above for media better described by a correlation
// length l_c and fractal dimension D.
//
// Entry k of the returned table is evaluated at theta_k = k*pi/len(mu),
// k = 0..len(mu)-1, not at acos(mu[k]); mu supplies the table length and
// the cosines paired with S11 in the trapezoidal g integral.
func WhittleMattern(lc, d, lambda float64, mu []float64) (MuellerTable, float64, error) {
	if lc <= 0 || lambda <= 0 {
		return MuellerTable{}, 0, fmt.Errorf("mie: %w: WhittleMattern requires lc, lambda > 0", ErrInvalidInput)
	}

	klc := 2 * math.Pi * lc / lambda
	n := len(mu)
	table := newMuellerTable(n)

	for k := 0; k < n; k++ {
		kf := float64(k)
		sinHalf := math.Sin(kf * math.Pi / (2 * float64(n)))
		cosFull := math.Cos(kf * math.Pi / float64(n))

		rho := math.Pow(1+4*klc*klc*sinHalf*sinHalf, -d/2)

		table.S11[k] = (1 + cosFull*cosFull) * rho
		table.S12[k] = (cosFull*cosFull - 1) * rho
		table.S33[k] = 2 * cosFull * rho
		table.S43[k] = 0
	}

	g := trapezoidalG(mu, table.S11)
	return table, g, nil
}
