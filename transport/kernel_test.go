package transport

import (
	"math"
	"testing"

	"github.com/photonmc/photonmc/transport/trace"
)

func testMedium(t *testing.T) *MediumGrid {
	t.Helper()
	tbl := NewMaterialTable(Material{Mua: 0.05, Mus: 5, G: 0.8, N: 1.37})
	g, err := NewMediumGrid(8, 8, 8, tbl)
	if err != nil {
		t.Fatalf("building test medium: %v", err)
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			for k := 0; k < 8; k++ {
				g.SetMaterial(i, j, k, 1)
			}
		}
	}
	return g
}

func testKernelConfig() Config {
	return Config{
		NumPhotons: 64,
		TotalMove:  200,
		MinStep:    0.1,
		Lmax:       1e6, // effectively disables the Lmax-triggered relaunch path for this scenario
		Source:     Vec3{X: 4, Y: 4, Z: 0},
		SourceDir:  Vec3{X: 0, Y: 0, Z: 1},
		MaxWorkers: 4,
		AccumMode:  AccumAtomic,
		Seed:       7,
	}
}

func TestNewKernel_RejectsInvalidConfig(t *testing.T) {
	cfg := testKernelConfig()
	cfg.NumPhotons = 0
	if _, err := NewKernel(cfg, testMedium(t)); err == nil {
		t.Error("expected error constructing Kernel with invalid config")
	}
}

func TestNewKernel_RejectsNilMedium(t *testing.T) {
	if _, err := NewKernel(testKernelConfig(), nil); err == nil {
		t.Error("expected error constructing Kernel with nil medium")
	}
}

func TestKernel_Run_RelaunchConservationHolds(t *testing.T) {
	k, err := NewKernel(testKernelConfig(), testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	_, stats, err := k.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stats.LaunchedPhotons != 64 {
		t.Errorf("LaunchedPhotons = %d, want 64", stats.LaunchedPhotons)
	}
	if !stats.RelaunchConservationHolds() {
		t.Errorf("relaunch conservation failed: surviving=%d relaunched=%d launched=%d",
			stats.SurvivingPhotons, stats.RelaunchedPhotons, stats.LaunchedPhotons)
	}
}

func TestKernel_Run_FluenceIsNonNegative(t *testing.T) {
	k, err := NewKernel(testKernelConfig(), testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	accum, _, err := k.Run()
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range accum.Snapshot() {
		if v < 0 {
			t.Fatalf("voxel %d has negative fluence %v", i, v)
		}
	}
}

// TestKernel_Run_DeterministicGivenSameSeed checks spec.md §8 scenario 5:
// per-photon trajectories are pinned bit-for-bit by (SimulationKey, photon
// id), so per-photon-derived statistics reproduce exactly across runs.
// Fluence totals are checked only approximately: concurrent workers can
// add to a shared voxel in a different order each run, and floating-point
// addition is not associative, so the merged grid is reproducible only up
// to that reduction-order noise (spec.md §5).
func TestKernel_Run_DeterministicGivenSameSeed(t *testing.T) {
	cfg := testKernelConfig()

	k1, err := NewKernel(cfg, testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	accum1, stats1, err := k1.Run()
	if err != nil {
		t.Fatal(err)
	}

	k2, err := NewKernel(cfg, testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	accum2, stats2, err := k2.Run()
	if err != nil {
		t.Fatal(err)
	}

	if stats1.TotalRelaunches != stats2.TotalRelaunches ||
		stats1.TotalScatters != stats2.TotalScatters ||
		math.Abs(stats1.DepositedWeight-stats2.DepositedWeight) > 1e-9 {
		t.Errorf("per-photon stats differ across identical-seed runs: %+v vs %+v", stats1, stats2)
	}

	var total1, total2 float64
	for _, v := range accum1.Snapshot() {
		total1 += float64(v)
	}
	for _, v := range accum2.Snapshot() {
		total2 += float64(v)
	}
	if total1 == 0 {
		t.Fatal("expected nonzero total deposited fluence")
	}
	if diff := math.Abs(total1-total2) / total1; diff > 1e-4 {
		t.Errorf("total fluence differs by %.6f relative across identical-seed runs, want < 1e-4", diff)
	}
}

func TestKernel_Run_ShadowModeAgreesWithAtomicWithinTolerance(t *testing.T) {
	cfgAtomic := testKernelConfig()
	cfgAtomic.AccumMode = AccumAtomic
	kAtomic, err := NewKernel(cfgAtomic, testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	accumAtomic, _, err := kAtomic.Run()
	if err != nil {
		t.Fatal(err)
	}

	cfgShadow := testKernelConfig()
	cfgShadow.AccumMode = AccumShadow
	kShadow, err := NewKernel(cfgShadow, testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	accumShadow, _, err := kShadow.Run()
	if err != nil {
		t.Fatal(err)
	}

	var totalAtomic, totalShadow float64
	for _, v := range accumAtomic.Snapshot() {
		totalAtomic += float64(v)
	}
	for _, v := range accumShadow.Snapshot() {
		totalShadow += float64(v)
	}
	if totalAtomic == 0 {
		t.Fatal("expected nonzero total deposited weight")
	}
	if diff := math.Abs(totalAtomic-totalShadow) / totalAtomic; diff > 1e-4 {
		t.Errorf("atomic vs shadow total fluence differ by %.6f relative, want < 1e-4", diff)
	}
}

func TestKernel_Run_WorkerCountNeverExceedsPhotonCount(t *testing.T) {
	cfg := testKernelConfig()
	cfg.NumPhotons = 2
	cfg.MaxWorkers = 128
	k, err := NewKernel(cfg, testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	_, stats, err := k.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.LaunchedPhotons != 2 {
		t.Errorf("LaunchedPhotons = %d, want 2", stats.LaunchedPhotons)
	}
}

func TestKernel_Run_RecordsScattersWhenTraceEnabled(t *testing.T) {
	cfg := testKernelConfig()
	cfg.NumPhotons = 16
	k, err := NewKernel(cfg, testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	pt := trace.NewPhotonTrace(trace.Config{Level: trace.LevelEvents})
	k.WithTrace(pt)

	if _, _, err := k.Run(); err != nil {
		t.Fatal(err)
	}
	if len(pt.Scatters) == 0 {
		t.Error("expected at least one recorded scatter event with tracing enabled and mus=5 over 200 steps")
	}
}

func TestKernel_Run_NoTraceRecordingByDefault(t *testing.T) {
	cfg := testKernelConfig()
	cfg.NumPhotons = 16
	k, err := NewKernel(cfg, testMedium(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := k.Run(); err != nil {
		t.Fatal(err)
	}
	if len(k.Trace.Scatters) != 0 {
		t.Errorf("expected no scatter records without an attached trace collector, got %d", len(k.Trace.Scatters))
	}
}

func TestVoxelIndex_Floors(t *testing.T) {
	i, j, k := voxelIndex(Vec3{X: 3.9, Y: -0.1, Z: 0})
	if i != 3 || j != -1 || k != 0 {
		t.Errorf("voxelIndex = (%d,%d,%d), want (3,-1,0)", i, j, k)
	}
}

func TestOutOfGrid(t *testing.T) {
	if outOfGrid(Vec3{X: 1, Y: 1, Z: 1}, 4, 4, 4) {
		t.Error("interior point reported out of grid")
	}
	if !outOfGrid(Vec3{X: -1, Y: 1, Z: 1}, 4, 4, 4) {
		t.Error("negative coordinate should be out of grid")
	}
	if !outOfGrid(Vec3{X: 5, Y: 1, Z: 1}, 4, 4, 4) {
		t.Error("coordinate beyond nx should be out of grid")
	}
}
