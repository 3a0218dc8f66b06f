package transport

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/photonmc/photonmc/transport/trace"
)

// MediumLookup is the read-only broadcast state every worker goroutine
// queries: voxel material lookup and grid extent (spec.md §4.D, §5).
type MediumLookup interface {
	LookupMaterial(i, j, k int) (Material, uint8)
	Dims() (nx, ny, nz int)
}

// Kernel is the data-parallel photon transport engine of spec.md §4.G.
// N photons are partitioned across a worker pool (spec.md §5); each worker
// owns one photon's mutable state at a time and never touches another
// photon's state or another worker's fluence shadow grid.
type Kernel struct {
	Config Config
	Medium MediumLookup
	RNG    *PartitionedRNG
	Trace  *trace.PhotonTrace
}

// NewKernel builds a Kernel ready to Run. Returns an error if cfg or
// medium fail validation.
func NewKernel(cfg Config, medium MediumLookup) (*Kernel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if medium == nil {
		return nil, fmt.Errorf("transport: %w: medium must not be nil", ErrInvalidInput)
	}
	return &Kernel{
		Config: cfg,
		Medium: medium,
		RNG:    NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		Trace:  trace.NewPhotonTrace(trace.Config{Level: trace.LevelNone}),
	}, nil
}

// WithTrace attaches a photon-path trace collector, replacing the
// no-op default. Returns k for chaining.
func (k *Kernel) WithTrace(t *trace.PhotonTrace) *Kernel {
	if t != nil {
		k.Trace = t
	}
	return k
}

// Run launches Config.NumPhotons photons and advances each for up to
// Config.TotalMove micro-steps, across a pool of Config.MaxWorkers
// goroutines (spec.md §5). Returns the merged fluence accumulator and
// aggregate run statistics.
func (k *Kernel) Run() (Accumulator, *Stats, error) {
	nx, ny, nz := k.Medium.Dims()
	numWorkers := k.Config.workers()
	if numWorkers > k.Config.NumPhotons {
		numWorkers = k.Config.NumPhotons
	}

	var accum Accumulator
	var writerFor func(workerIdx int) VoxelWriter
	switch k.Config.AccumMode {
	case AccumShadow:
		shadow, err := NewShadowFluenceGrid(nx, ny, nz, numWorkers)
		if err != nil {
			return nil, nil, err
		}
		accum = shadow
		writerFor = func(workerIdx int) VoxelWriter { return shadow.Writer(workerIdx) }
	default:
		atomicGrid, err := NewAtomicFluenceGrid(nx, ny, nz)
		if err != nil {
			return nil, nil, err
		}
		accum = atomicGrid
		writerFor = func(workerIdx int) VoxelWriter { return atomicGrid }
	}

	logrus.Infof("transport: launching %d photons across %d workers (accum=%v)", k.Config.NumPhotons, numWorkers, k.Config.AccumMode)

	jobs := make(chan int, numWorkers)
	workerStats := make([]Stats, numWorkers)
	invariantErrs := make([]error, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerIdx int) {
			defer wg.Done()
			writer := writerFor(workerIdx)
			stats := &workerStats[workerIdx]
			for photonID := range jobs {
				ph := LaunchPhoton(photonID, k.Config.Source, k.Config.SourceDir, k.RNG.ForPhoton(photonID))
				k.advancePhoton(ph, writer)
				stats.LaunchedPhotons++
				stats.TotalRelaunches += ph.Relaunches
				stats.TotalPathLength += ph.PathLength
				stats.TotalScatters += int64(ph.Scatters)
				stats.DepositedWeight += depositedWeightEstimate(ph)
				if ph.Relaunches == 0 {
					stats.SurvivingPhotons++
				} else {
					stats.RelaunchedPhotons++
				}
				if err := validateTerminalState(ph); err != nil && invariantErrs[workerIdx] == nil {
					invariantErrs[workerIdx] = err
				}
			}
		}(w)
	}

	for id := 0; id < k.Config.NumPhotons; id++ {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	total := &Stats{}
	for _, s := range workerStats {
		total.LaunchedPhotons += s.LaunchedPhotons
		total.TotalRelaunches += s.TotalRelaunches
		total.RelaunchedPhotons += s.RelaunchedPhotons
		total.SurvivingPhotons += s.SurvivingPhotons
		total.DepositedWeight += s.DepositedWeight
		total.TotalPathLength += s.TotalPathLength
		total.TotalScatters += s.TotalScatters
	}

	for _, err := range invariantErrs {
		if err != nil {
			return accum, total, err
		}
	}

	logrus.Infof("transport: run complete, %d relaunches, %d surviving photons", total.TotalRelaunches, total.SurvivingPhotons)
	return accum, total, nil
}

// advancePhoton runs Config.TotalMove micro-steps of spec.md §4.G on ph,
// depositing into writer. ph.Relaunches records how many times it left
// the grid and restarted from its launch state along the way.
func (k *Kernel) advancePhoton(ph *Photon, writer VoxelWriter) {
	nx, ny, nz := k.Medium.Dims()

	for step := 0; step < k.Config.TotalMove; step++ {
		i, j, k2 := voxelIndex(ph.P)
		mat, _ := k.Medium.LookupMaterial(i, j, k2)

		if ph.Residual <= 0 {
			u := ph.Uniform01()
			ph.Residual = -math.Log(u)

			if ph.Weight < 1 {
				phi := 2 * math.Pi * ph.Uniform01()
				uPrime := ph.Uniform01()
				cosTheta := sampleHGCosine(mat.G, uPrime)
				ph.D = scatterDirection(ph.D, cosTheta, phi)
				ph.Scatters++
				k.Trace.RecordScatter(trace.ScatterRecord{
					PhotonID: ph.ID,
					Step:     step,
					CosTheta: cosTheta,
					G:        mat.G,
				})
			}
		}

		delta := k.Config.MinStep * mat.Mus
		if delta > ph.Residual {
			distance := 0.0
			if mat.Mus > 0 {
				distance = ph.Residual / mat.Mus
			}
			ph.P = ph.P.Add(ph.D.Scale(distance))
			ph.Weight *= math.Exp(-mat.Mua * distance)
			ph.PathLength += distance
			ph.Residual = sentinelFreeFlight
		} else {
			ph.P = ph.P.Add(ph.D)
			ph.Weight *= math.Exp(-mat.Mua * k.Config.MinStep)
			ph.Residual -= delta
			ph.PathLength += k.Config.MinStep
		}

		if ph.Residual > k.Config.Lmax || outOfGrid(ph.P, nx, ny, nz) {
			reason := "lmax"
			if outOfGrid(ph.P, nx, ny, nz) {
				reason = "out_of_grid"
			}
			k.Trace.RecordRelaunch(trace.RelaunchRecord{
				PhotonID: ph.ID,
				Step:     step,
				X:        ph.P.X,
				Y:        ph.P.Y,
				Z:        ph.P.Z,
				Reason:   reason,
			})
			ph.relaunch()
			continue
		}

		if ph.Residual > 0 {
			di, dj, dk := voxelIndex(ph.P)
			writer.Add(di, dj, dk, ph.Weight)
		}
	}
}

func voxelIndex(p Vec3) (int, int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y)), int(math.Floor(p.Z))
}

func outOfGrid(p Vec3, nx, ny, nz int) bool {
	return p.X < 0 || p.X > float64(nx) || p.Y < 0 || p.Y > float64(ny) || p.Z < 0 || p.Z > float64(nz)
}

// depositedWeightEstimate contributes a photon's share of spec.md §8
// scenario 1's total-deposited-weight check: sum of (1 - exp(-mua*l))
// is only meaningful for a homogeneous medium, so callers needing the
// exact scenario-1 check recompute it themselves from mua and
// ph.PathLength; here we track the simpler (1 - Weight) proxy, which
// coincides with it in a purely absorbing, non-relaunching path.
func depositedWeightEstimate(ph *Photon) float64 {
	return 1 - ph.Weight
}

// validateTerminalState flags persistent invariant violations (spec.md
// §7): NaN/non-unit direction, non-positive weight on a photon that is
// still notionally in flight. Grounded on
// sim/cluster/simulator.go's end-of-run causality checks, but returns an
// error instead of panicking so a calling CLI can report and exit
// nonzero rather than crash.
func validateTerminalState(ph *Photon) error {
	if !ph.D.IsFinite() {
		return fmt.Errorf("transport: %w: photon %d has non-finite direction %+v", ErrInvariantViolation, ph.ID, ph.D)
	}
	if math.Abs(ph.D.Norm()-1) > 1e-3 {
		return fmt.Errorf("transport: %w: photon %d direction not unit length: norm=%v", ErrInvariantViolation, ph.ID, ph.D.Norm())
	}
	if ph.Weight <= 0 || math.IsNaN(ph.Weight) {
		return fmt.Errorf("transport: %w: photon %d has non-positive weight %v", ErrInvariantViolation, ph.ID, ph.Weight)
	}
	return nil
}
