package transport

import "fmt"

// Stats aggregates statistics about a transport run for final reporting,
// mirroring sim/metrics.go's role for the teacher's discrete-event engine.
type Stats struct {
	LaunchedPhotons   int     // number of photons originally launched
	TotalRelaunches   int     // sum of Photon.Relaunches events across all photons
	RelaunchedPhotons int     // count of distinct photons that needed >=1 relaunch
	SurvivingPhotons  int     // photons that never left the grid (Relaunches == 0)
	DepositedWeight   float64 // sum of (1 - final Weight) per photon; see depositedWeightEstimate
	TotalPathLength   float64 // sum of per-photon cumulative path length
	TotalScatters     int64   // sum of per-photon scatter counts
}

// Print displays aggregated run statistics, in the spirit of
// sim/metrics.go's Metrics.Print.
func (s *Stats) Print() {
	fmt.Println("=== Transport Run Statistics ===")
	fmt.Printf("Launched Photons   : %d\n", s.LaunchedPhotons)
	fmt.Printf("Total Relaunches   : %d\n", s.TotalRelaunches)
	fmt.Printf("Surviving Photons  : %d\n", s.SurvivingPhotons)
	fmt.Printf("Deposited Weight   : %.6f\n", s.DepositedWeight)
	if s.LaunchedPhotons > 0 {
		fmt.Printf("Avg Path Length    : %.4f\n", s.TotalPathLength/float64(s.LaunchedPhotons))
		fmt.Printf("Avg Scatter Count  : %.4f\n", float64(s.TotalScatters)/float64(s.LaunchedPhotons))
	}
}

// RelaunchConservationHolds checks spec.md §8 scenario 6: every launched
// photon is, at run end, in exactly one of two buckets — it never left
// the grid (SurvivingPhotons) or it needed at least one relaunch
// (RelaunchedPhotons) — so the two counts partition the launched
// population exactly, regardless of how many times any one photon
// relaunched (that detail lives in TotalRelaunches instead).
func (s *Stats) RelaunchConservationHolds() bool {
	return s.SurvivingPhotons+s.RelaunchedPhotons == s.LaunchedPhotons
}
