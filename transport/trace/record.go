// Package trace provides opt-in photon-path event recording for transport
// run diagnostics. It has no dependency on the transport package itself —
// it stores pure data types — so the kernel can depend on it without a
// cyclic import.
package trace

// RelaunchRecord captures one photon exiting the grid (or exceeding Lmax)
// and restarting from its launch state.
type RelaunchRecord struct {
	PhotonID int
	Step     int
	X, Y, Z  float64 // position at the moment of exit
	Reason   string  // "lmax" or "out_of_grid"
}

// ScatterRecord captures one Henyey-Greenstein scattering event.
type ScatterRecord struct {
	PhotonID int
	Step     int
	CosTheta float64
	G        float64 // anisotropy of the voxel the scatter occurred in
}
