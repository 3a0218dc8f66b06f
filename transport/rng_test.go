package transport

import (
	"math"
	"math/rand"
	"sync"
	"testing"
)

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		got := rng1.ForPhoton(7).Float64()
		want := rng2.ForPhoton(7).Float64()
		if got != want {
			t.Errorf("draw %d: got %v, want %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_PhotonIsolation(t *testing.T) {
	// Drawing from photon A's stream must not perturb photon B's stream.
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForPhoton(0).Float64()
	}
	for i := 0; i < 5; i++ {
		rngB.ForPhoton(1).Float64()
	}

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	wantFirst := fresh.ForPhoton(1).Float64()

	gotFirst := rngB.ForPhoton(1).Float64()
	if gotFirst == wantFirst {
		// rngB already drew 5 values from photon 1's stream, so its 6th draw
		// must not equal the stream's 1st value.
		t.Error("photon 1 stream on rngB did not advance across calls")
	}

	// rngA drew only from photon 0, so its photon 1 stream is untouched.
	if got := rngA.ForPhoton(1).Float64(); got != wantFirst {
		t.Errorf("photon 1 first draw on rngA = %v after 10 photon 0 draws, want %v", got, wantFirst)
	}
}

func TestPartitionedRNG_MediumBackwardCompat(t *testing.T) {
	seed := int64(42)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	mediumRNG := rng.ForSubsystem(SubsystemMedium)
	direct := rand.New(rand.NewSource(seed))

	for i := 0; i < 10; i++ {
		if got, want := mediumRNG.Float64(), direct.Float64(); got != want {
			t.Errorf("draw %d: medium RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	r1 := rng.ForPhoton(3)
	r2 := rng.ForPhoton(3)

	if r1 != r2 {
		t.Error("ForPhoton returned different instances for the same photon id")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_ConcurrentForPhoton(t *testing.T) {
	// Many goroutines requesting distinct photon streams concurrently must
	// not race on the shared subsystems map (spec.md §5: RNG state is
	// per-worker exclusive, but the map that hands out streams is shared).
	rng := NewPartitionedRNG(NewSimulationKey(7))

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rng.ForPhoton(id).Float64()
		}(i)
	}
	wg.Wait()
}

func TestPartitionedRNG_ZeroAndNegativeSeed(t *testing.T) {
	for _, seed := range []int64{0, math.MinInt64} {
		rng := NewPartitionedRNG(NewSimulationKey(seed))
		r := rng.ForPhoton(0)
		val := r.Float64()
		if val < 0 || val >= 1 {
			t.Errorf("seed %d: Float64() = %v, want [0, 1)", seed, val)
		}
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("new PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForPhoton(0)

	if len(rng.subsystems) != 1 {
		t.Errorf("after one ForPhoton call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "photon_42"
	if fnv1a64(input) != fnv1a64(input) {
		t.Errorf("fnv1a64(%q) not deterministic", input)
	}
}

func TestFnv1a64_NoCollisionSpotCheck(t *testing.T) {
	names := []string{SubsystemMedium, SubsystemPhoton(0), SubsystemPhoton(1), SubsystemPhoton(100), ""}

	seen := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := seen[h]; ok {
			t.Errorf("hash collision: %q and %q both hash to %d", name, existing, h)
		}
		seen[h] = name
	}
}

func TestSubsystemPhoton(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{0, "photon_0"},
		{1, "photon_1"},
		{100, "photon_100"},
	}

	for _, tt := range tests {
		if got := SubsystemPhoton(tt.id); got != tt.want {
			t.Errorf("SubsystemPhoton(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func BenchmarkPartitionedRNG_ForPhoton_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForPhoton(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForPhoton(0)
	}
}
