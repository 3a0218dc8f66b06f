package trace

import "sync"

// Level controls the verbosity of photon-path tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelEvents captures every relaunch and scatter event.
	LevelEvents Level = "events"
)

var validLevels = map[Level]bool{
	LevelNone:   true,
	LevelEvents: true,
	"":          true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is recognized.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// Config controls trace collection behavior for a transport run.
type Config struct {
	Level Level
}

// Enabled reports whether this Config calls for recording.
func (c Config) Enabled() bool {
	return c.Level == LevelEvents
}

// PhotonTrace collects relaunch and scatter records during a transport
// run. A run spans many worker goroutines, each processing a stream of
// photon IDs, so every method is safe to call concurrently and is guarded
// by mu; tracing is an opt-in diagnostic path, not the hot loop, so a
// single mutex is simpler than per-worker shards and cheap enough.
type PhotonTrace struct {
	Config Config

	mu         sync.Mutex
	Relaunches []RelaunchRecord
	Scatters   []ScatterRecord
}

// NewPhotonTrace creates a PhotonTrace ready for recording.
func NewPhotonTrace(config Config) *PhotonTrace {
	return &PhotonTrace{
		Config:     config,
		Relaunches: make([]RelaunchRecord, 0),
		Scatters:   make([]ScatterRecord, 0),
	}
}

// RecordRelaunch appends a relaunch record, a no-op if tracing is disabled.
func (pt *PhotonTrace) RecordRelaunch(record RelaunchRecord) {
	if pt == nil || !pt.Config.Enabled() {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.Relaunches = append(pt.Relaunches, record)
}

// RecordScatter appends a scatter record, a no-op if tracing is disabled.
func (pt *PhotonTrace) RecordScatter(record ScatterRecord) {
	if pt == nil || !pt.Config.Enabled() {
		return
	}
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.Scatters = append(pt.Scatters, record)
}
