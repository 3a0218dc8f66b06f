package transport

import (
	"fmt"
	"math"
)

// Config groups the run-time parameters of a transport run (spec.md §4.G,
// §5, §6 CLI collaborator). Mirrors the teacher's pattern of grouping
// related flags into small config structs (e.g. KVCacheConfig, BatchConfig).
type Config struct {
	NumPhotons int     // number of photons to launch
	TotalMove  int     // max micro-steps per photon before the run gives up on it
	MinStep    float64 // voxel traversal step size
	Lmax       float64 // residual free-flight cap that triggers relaunch

	Source    Vec3 // p0, launch position
	SourceDir Vec3 // c0, launch direction (must be unit length)

	MaxWorkers int       // worker pool size; spec.md §5 MAX_THREAD default 128
	AccumMode  AccumMode // fluence accumulation strategy

	Seed int64 // master RNG seed
}

// DefaultMaxWorkers mirrors spec.md §5's reference MAX_THREAD.
const DefaultMaxWorkers = 128

// Validate checks Config against spec.md's documented ranges, aggregating
// every problem into one error (grounded on sim/latency/config.go's
// ValidateRooflineConfig pattern of collecting problems before returning).
func (c Config) Validate() error {
	var problems []string

	if c.NumPhotons <= 0 {
		problems = append(problems, fmt.Sprintf("NumPhotons must be > 0, got %d", c.NumPhotons))
	}
	if c.TotalMove <= 0 {
		problems = append(problems, fmt.Sprintf("TotalMove must be > 0, got %d", c.TotalMove))
	}
	if c.MinStep <= 0 {
		problems = append(problems, fmt.Sprintf("MinStep must be > 0, got %v", c.MinStep))
	}
	if c.Lmax <= 0 {
		problems = append(problems, fmt.Sprintf("Lmax must be > 0, got %v", c.Lmax))
	}
	if !c.SourceDir.IsFinite() || math.Abs(c.SourceDir.Norm()-1) > 1e-5 {
		problems = append(problems, fmt.Sprintf("SourceDir must be a unit vector, got %+v (norm %v)", c.SourceDir, c.SourceDir.Norm()))
	}
	if c.MaxWorkers < 0 {
		problems = append(problems, fmt.Sprintf("MaxWorkers must be >= 0, got %d", c.MaxWorkers))
	}

	if len(problems) > 0 {
		return fmt.Errorf("transport: %w: invalid config: %v", ErrInvalidInput, problems)
	}
	return nil
}

// workers returns the effective worker pool size, applying the
// spec.md §5 default when unset.
func (c Config) workers() int {
	if c.MaxWorkers <= 0 {
		return DefaultMaxWorkers
	}
	return c.MaxWorkers
}

