package transport

import "math"

// Vec3 is a position or direction in voxel-index units (spec.md §3).
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalized returns v scaled to unit length. Panics on the zero vector,
// which a direction vector must never be.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		panic("transport: cannot normalize the zero vector")
	}
	return v.Scale(1 / n)
}

func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
