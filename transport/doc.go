// Package transport implements the data-parallel photon transport kernel:
// free-flight sampling, Henyey-Greenstein scattering, Beer-Lambert
// absorption, voxel-crossing stepping, and fluence accumulation into a
// shared 3-D grid.
//
// # Reading Guide
//
// Start with these files to understand the transport kernel:
//   - photon.go: per-photon state and launch
//   - medium.go: voxel grid and material table (read-only broadcast state)
//   - kernel.go: the worker pool and per-photon micro-step loop
//   - fluence.go: the shared accumulator photons write into
//
// # Architecture
//
// Medium grid and material table are read-only broadcast state shared by
// every worker goroutine. Photon state and RNG state are exclusive to the
// goroutine that owns a given photon. The fluence grid is the only shared
// mutable resource; writes to it are commutative (addition) and either
// atomic (AccumAtomic) or merged from per-worker shadow grids at the end of
// the run (AccumShadow).
package transport
