package transport

import "math"

// sampleHGCosine draws cos(theta) from the Henyey-Greenstein phase
// function with anisotropy g, per spec.md §4.G step 1. g == 0 is
// special-cased to uniform sampling of cos(theta) in [-1, 1] (spec.md §9
// "g = 0 branch"), since the closed form is singular there.
func sampleHGCosine(g, u float64) float64 {
	if g == 0 {
		return 2*u - 1
	}
	term := (1 - g*g) / (1 - g + 2*g*u)
	return (1 + g*g - term*term) / (2 * g)
}

// scatterDirection rotates d by polar angle theta (cosTheta = cos(theta))
// and azimuthal angle phi, per spec.md §4.G step 1's rotation formula.
func scatterDirection(d Vec3, cosTheta, phi float64) Vec3 {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	sinPhi, cosPhi := math.Sincos(phi)

	if math.Abs(d.Z) < 1 {
		denom := math.Sqrt(1 - d.Z*d.Z)
		return Vec3{
			X: sinTheta*(d.X*d.Z*cosPhi-d.Y*sinPhi)/denom + d.X*cosTheta,
			Y: sinTheta*(d.Y*d.Z*cosPhi+d.X*sinPhi)/denom + d.Y*cosTheta,
			Z: -sinTheta*denom*cosPhi + d.Z*cosTheta,
		}
	}

	sign := 1.0
	if d.Z < 0 {
		sign = -1.0
	}
	return Vec3{
		X: sinTheta * cosPhi,
		Y: sinTheta * sinPhi,
		Z: sign * cosTheta,
	}
}
