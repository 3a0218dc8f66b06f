package mie

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// nradii is spec.md §4.C's NRS: the number of radii sampled across the
// Gaussian size distribution.
const nradii = 1001

// MiePoly averages the Mie engine over a discretized Gaussian size
// distribution of mean radius meanR and coefficient of variation cv
// (spec.md §4.C). m is the (possibly complex) refractive index of the
// sphere material relative to the surrounding medium of index nMed, at
// free-space wavelength lambda; both in the same length unit as meanR.
func MiePoly(meanR, cv, nMed, lambda float64, m complex128, mu []float64) (MuellerTable, float64, float64, error) {
	if meanR <= 0 || cv <= 0 || nMed <= 0 || lambda <= 0 {
		return MuellerTable{}, 0, 0, fmt.Errorf("mie: %w: MiePoly requires meanR, cv, nMed, lambda > 0", ErrInvalidInput)
	}

	sigma := meanR * cv
	step := 6 * sigma / nradii

	radii := make([]float64, nradii)
	weights := make([]float64, nradii)
	dist := distuv.Normal{Mu: meanR, Sigma: sigma}
	for i := 0; i < nradii; i++ {
		r := meanR - 3*sigma + float64(i)*step
		radii[i] = r
		weights[i] = dist.Prob(r)
	}
	totalWeight := floats.Sum(weights)

	table := newMuellerTable(len(mu))
	var qsca float64

	for i, r := range radii {
		w := weights[i] / totalWeight
		x := 2 * math.Pi * r * nMed / lambda

		t, qs, _, err := Mie(x, m, mu)
		if err != nil {
			return MuellerTable{}, 0, 0, fmt.Errorf("mie: %w: MiePoly radius %d (r=%v, x=%v): %v", ErrInvalidInput, i, r, x, err)
		}

		qsca += w * qs
		for k := range mu {
			table.S11[k] += w * t.S11[k]
			table.S12[k] += w * t.S12[k]
			table.S33[k] += w * t.S33[k]
			table.S43[k] += w * t.S43[k]
		}
	}

	g := trapezoidalG(mu, table.S11)
	return table, qsca, g, nil
}

// trapezoidalG integrates the anisotropy g = <mu> over the sampled phase
// function S11 by the trapezoidal rule of spec.md §4.C, substituting
// (mu[0] - 1) for the missing k=0 interval.
func trapezoidalG(mu, s11 []float64) float64 {
	var numerator, denominator float64
	for k := range mu {
		var interval, s11Avg float64
		if k == 0 {
			interval = math.Abs(mu[0] - 1)
			s11Avg = s11[0]
		} else {
			interval = math.Abs(mu[k] - mu[k-1])
			s11Avg = (s11[k] + s11[k-1]) / 2
		}
		numerator += mu[k] * s11Avg * interval
		denominator += s11Avg * interval
	}
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
