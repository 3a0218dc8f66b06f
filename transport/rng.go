package transport

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible transport run.
// Two runs with the same SimulationKey, the same medium, and the same
// photon count MUST produce bit-for-bit identical per-photon RNG streams
// (spec.md §4.E: seedable, deterministic, period >= 2^32).
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem constants ===

const (
	// SubsystemMedium seeds any RNG consumption needed while building the
	// medium grid (e.g. stochastic Whittle-Matern realizations upstream of
	// this package). Uses the master seed directly for backward
	// compatibility with single-subsystem runs.
	SubsystemMedium = "medium"
)

// SubsystemPhoton returns the RNG subsystem name for photon id.
func SubsystemPhoton(id int) string {
	return fmt.Sprintf("photon_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG hands out a deterministic, isolated *rand.Rand per photon.
//
// Derivation formula:
//   - SubsystemMedium: uses masterSeed directly (backward compatibility).
//   - Everything else (photon_<id>, ...): masterSeed XOR fnv1a64(name).
//
// Safe for concurrent use: ForPhoton is called from many worker goroutines,
// one per in-flight photon, each requesting a distinct subsystem name, so
// the only shared state is the subsystems map, guarded by mu.
type PartitionedRNG struct {
	key SimulationKey

	mu         sync.Mutex
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemMedium {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// ForPhoton returns the RNG stream dedicated to photon id. Convenience
// wrapper around ForSubsystem(SubsystemPhoton(id)).
func (p *PartitionedRNG) ForPhoton(id int) *rand.Rand {
	return p.ForSubsystem(SubsystemPhoton(id))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
