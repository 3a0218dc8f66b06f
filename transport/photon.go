package transport

import "math/rand"

// sentinelFreeFlight marks "a new free flight must be sampled before the
// next voxel step" (spec.md §4.G step 1): a negative residual free-flight
// budget that can never arise from an ordinary subtraction, since r and
// minstep*mus are both non-negative during a voxel step.
const sentinelFreeFlight = -1

// Photon is the per-photon mutable state of spec.md §3 "Photon state".
// Created at launch, mutated only by the goroutine that owns it, never
// touched by any other goroutine (spec.md §5).
type Photon struct {
	ID int

	P Vec3 // position, voxel-index units
	D Vec3 // direction, unit vector

	Weight float64 // w in (0, 1]

	Residual   float64 // r, residual free-flight budget, mean-free-paths
	PathLength float64 // l, cumulative path length
	Scatters   int     // s, scatter count

	Relaunches int // times this photon has exited the grid and restarted

	rng *rand.Rand

	// launch origin, recalled on relaunch (spec.md §4.G "Boundary / termination")
	p0 Vec3
	d0 Vec3
}

// LaunchPhoton creates a photon at p0 with direction d0 (must already be a
// unit vector), owning the given RNG stream, per spec.md §4.G "Photon launch".
func LaunchPhoton(id int, p0, d0 Vec3, rng *rand.Rand) *Photon {
	return &Photon{
		ID:     id,
		P:      p0,
		D:      d0,
		Weight: 1,
		p0:     p0,
		d0:     d0,
		rng:    rng,
	}
}

// relaunch resets the photon to its launch state, incrementing the
// relaunch counter (spec.md §4.G "Boundary / termination").
func (ph *Photon) relaunch() {
	ph.P = ph.p0
	ph.D = ph.d0
	ph.Weight = 1
	ph.Residual = 0
	ph.PathLength = 0
	ph.Scatters = 0
	ph.Relaunches++
}

// Uniform01 draws u ~ U(0,1) from the photon's own RNG stream.
func (ph *Photon) Uniform01() float64 {
	return ph.rng.Float64()
}
