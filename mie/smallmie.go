package mie

import "math/cmplx"

// smallMie implements spec.md §4.B's small-particle branch: closed-form
// Rayleigh-plus-next-order-correction expressions for the first two
// multipole amplitudes, valid when x is small or |m|*x is small. Two
// sub-branches: a perfectly-reflecting sphere (m_r = 0, formulas in x
// alone) and a dielectric sphere (m_r > 0, formulas in m^2 and x).
func smallMie(x float64, m complex128, mu []float64) (MuellerTable, float64, float64, error) {
	var a1, b1, a2 complex128

	if real(m) == 0 {
		a1, b1, a2 = smallMieConducting(x)
	} else {
		a1, b1, a2 = smallMieDielectric(m, x)
	}

	t := real(a1)*real(a1) + imag(a1)*imag(a1) +
		real(b1)*real(b1) + imag(b1)*imag(b1) +
		5.0/3.0*(real(a2)*real(a2)+imag(a2)*imag(a2))

	qsca := 6 * x * x * x * x * t
	g := real(a1*cmplx.Conj(a2+b1)) / t

	table := newMuellerTable(len(mu))
	s1Scale := complex(1.5*x*x*x, 0)
	s2Scale := complex(2.5*x*x*x, 0)
	for k, muK := range mu {
		s1 := s1Scale * (a1 + (b1+a2)*complex(muK, 0))
		s2 := s2Scale * (b1 + (a1+a2)*complex(2*muK*muK-1, 0))

		s1Abs, s2Abs := cmplx.Abs(s1), cmplx.Abs(s2)
		table.S11[k] = (s2Abs*s2Abs + s1Abs*s1Abs) / 2
		table.S12[k] = (s2Abs*s2Abs - s1Abs*s1Abs) / 2
		cross := cmplx.Conj(s1) * s2
		table.S33[k] = real(cross)
		table.S43[k] = imag(cross)
	}

	return table, qsca, g, nil
}

// smallMieDielectric is the m_r > 0 branch, a Rayleigh expansion carried
// to the next order in x^2 (grounded on the small-particle Mie coefficient
// family used by reference small-particle Mie routines).
func smallMieDielectric(m complex128, x float64) (a1, b1, a2 complex128) {
	m2 := m * m
	x2 := x * x

	d := m2 + 2 + complex((1-0.7*real(m2))*x2, 0)
	d -= complex((8*real(m2*m2)-385*real(m2)+350)/1400.0*x2*x2, 0)
	d += complex(0, 2.0/3.0) * (m2 - 1) * complex(x2*x, 0) * complex(1-0.1*x2, 0) / d

	a1 = complex(0, 2.0/3.0) * (m2 - 1) * complex(1-0.1*x2+(4*real(m2)+5)*x2*x2/1400.0, 0) / d

	b1Num := complex(0, 1.0) * complex(x2, 0) * (m2 - 1) / 45 * complex(1+(2*real(m2)-5)/70*x2, 0)
	b1Den := complex(1-(2*real(m2)-5)/30*x2, 0)
	b1 = b1Num / b1Den

	a2Num := complex(0, 1.0) * complex(x2, 0) * (m2 - 1) / 15 * complex(1-x2/14, 0)
	a2Den := 2*m2 + 3 - complex((2*real(m2)-7)/14*x2, 0)
	a2 = a2Num / a2Den

	return a1, b1, a2
}

// smallMieConducting is the m_r = 0 (perfectly reflecting sphere) branch:
// the dielectric formulas' m -> infinity limit, in x alone.
func smallMieConducting(x float64) (a1, b1, a2 complex128) {
	x2 := x * x
	x3 := x2 * x

	a1Num := complex(0, 2.0/3.0) * complex(x*(1-0.2*x2), 0)
	a1Den := complex(1-0.5*x2, 0) + complex(0, 2.0/3.0)*complex(x3, 0)
	a1 = a1Num / a1Den

	b1Num := complex(0, -1.0/3.0) * complex(x*(1-0.1*x2), 0)
	b1Den := complex(1+0.5*x2, 0) - complex(0, 1.0/3.0)*complex(x3, 0)
	b1 = b1Num / b1Den

	a2 = complex(0, 2.0/45.0) * complex(x2, 0)

	return a1, b1, a2
}
