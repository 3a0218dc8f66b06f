// Package mie computes single-particle and polydisperse Mie scattering
// parameters (efficiency, anisotropy, Mueller matrix) for spherical
// scatterers, plus the Whittle-Matern continuous-random-medium phase
// function, per spec.md §4.A-§4.C.
package mie

import (
	"fmt"
	"math"
	"math/cmplx"
)

// MuellerTable holds the four independent Mueller-matrix entries of
// spec.md §3 "Mueller tables (phase function)", one value per sampled
// cosine angle.
type MuellerTable struct {
	S11, S12, S33, S43 []float64
}

// newMuellerTable allocates a MuellerTable of the given length, zeroed.
func newMuellerTable(n int) MuellerTable {
	return MuellerTable{
		S11: make([]float64, n),
		S12: make([]float64, n),
		S33: make([]float64, n),
		S43: make([]float64, n),
	}
}

// UniformCosines returns n angular cosines evenly spaced from 1
// (forward, theta=0) to -1 (backward, theta=pi), the angle grid Mie and
// MiePoly are sampled on by callers (the CLI's --angles flag) that have
// no specific angle set of their own. WhittleMattern takes only the
// length of this grid for its angles (see its doc comment).
func UniformCosines(n int) []float64 {
	mu := make([]float64, n)
	if n == 1 {
		mu[0] = 1
		return mu
	}
	for i := range mu {
		mu[i] = 1 - 2*float64(i)/float64(n-1)
	}
	return mu
}

// Mie computes the scattering efficiency, anisotropy, and Mueller matrix
// for a homogeneous sphere of size parameter x and complex relative
// refractive index m, sampled at angular cosines mu (spec.md §4.B).
//
// m's convention follows spec.md §4.B: real(m) >= 0, imag(m) <= 0.
func Mie(x float64, m complex128, mu []float64) (MuellerTable, float64, float64, error) {
	if x <= 0 {
		return MuellerTable{}, 0, 0, fmt.Errorf("mie: %w: size parameter x=%v must be > 0", ErrInvalidInput, x)
	}
	if x > maxSizeParameter {
		return MuellerTable{}, 0, 0, fmt.Errorf("mie: %w: size parameter x=%v exceeds validated range (%v)", ErrUnvalidated, x, maxSizeParameter)
	}

	mr, mi := real(m), imag(m)
	if (mr == 0 && x < 0.1) || (mr > 0 && cmplx.Abs(m)*x < 0.1) {
		return smallMie(x, m, mu)
	}

	nstop := int(math.Floor(x + 4.05*math.Cbrt(x) + 2))
	z := m * complex(x, 0)

	// D is indexed 0..nstop so the main loop (n=1..nstop) can read D[n];
	// dnUp/dnDown are asked to fill one more term than spec.md §4.A's
	// literal D[0..nstop-1] wording requires for exactly this reason.
	var d []complex128
	var err error
	if math.Abs(mi)*x < (13.78*mr-10.8)*mr+3.9 {
		d = dnUp(z, nstop+1)
	} else {
		d, err = dnDown(z, nstop+1)
		if err != nil {
			return MuellerTable{}, 0, 0, err
		}
	}

	psi0 := math.Sin(x)
	psi1 := psi0/x - math.Cos(x)
	xi0 := complex(psi0, math.Cos(x))
	xi1 := complex(psi1, math.Cos(x)/x+math.Sin(x))

	nangles := len(mu)
	table := newMuellerTable(nangles)
	s1 := make([]complex128, nangles)
	s2 := make([]complex128, nangles)
	pi0 := make([]float64, nangles) // pi_{n-1}, starts at pi_0 = 0
	pi1 := make([]float64, nangles) // pi_n, starts at pi_1 = 1
	for k := range pi1 {
		pi1[k] = 1
	}

	var qsca float64
	var gsum float64
	var aPrev, bPrev complex128

	for n := 1; n <= nstop; n++ {
		nf := float64(n)
		dn := d[n]

		a := ((dn/m + complex(nf/x, 0)) * complex(psi1, 0) - complex(psi0, 0)) /
			((dn/m + complex(nf/x, 0)) * xi1 - xi0)
		b := ((dn*m + complex(nf/x, 0)) * complex(psi1, 0) - complex(psi0, 0)) /
			((dn*m + complex(nf/x, 0)) * xi1 - xi0)

		qsca += (2*nf + 1) * (cmplx.Abs(a)*cmplx.Abs(a) + cmplx.Abs(b)*cmplx.Abs(b))

		gTerm := (2*nf + 1) / (nf * (nf + 1)) * real(a*cmplx.Conj(b))
		if n > 1 {
			gTerm += (nf*nf - 1) / nf * real(aPrev*cmplx.Conj(a)+bPrev*cmplx.Conj(b))
		}
		gsum += gTerm
		aPrev, bPrev = a, b

		coeff := (2*nf + 1) / (nf * (nf + 1))
		for k, muK := range mu {
			tauK := nf*muK*pi1[k] - (nf+1)*pi0[k]
			s1[k] += complex(coeff, 0) * (a*complex(pi1[k], 0) + b*complex(tauK, 0))
			s2[k] += complex(coeff, 0) * (a*complex(tauK, 0) + b*complex(pi1[k], 0))

			piNext := ((2*nf+1)*muK*pi1[k] - (nf+1)*pi0[k]) / nf
			pi0[k] = pi1[k]
			pi1[k] = piNext
		}

		xiNext := complex((2*nf+1)/x, 0)*xi1 - xi0
		psiNext := real(xiNext)
		psi0, psi1 = psi1, psiNext
		xi0, xi1 = xi1, xiNext
	}

	qsca *= 2 / (x * x)
	g := gsum * 4 / (qsca * x * x)

	for k := range mu {
		s1Abs, s2Abs := cmplx.Abs(s1[k]), cmplx.Abs(s2[k])
		table.S11[k] = (s2Abs*s2Abs + s1Abs*s1Abs) / 2
		table.S12[k] = (s2Abs*s2Abs - s1Abs*s1Abs) / 2
		cross := cmplx.Conj(s1[k]) * s2[k]
		table.S33[k] = real(cross)
		table.S43[k] = imag(cross)
	}

	return table, qsca, g, nil
}
