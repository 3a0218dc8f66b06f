package format

import (
	"bytes"
	"testing"

	"github.com/photonmc/photonmc/transport"
)

func TestWriteReadFluenceDump_RoundTrips(t *testing.T) {
	grid, err := transport.NewAtomicFluenceGrid(2, 3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	grid.Add(1, 2, 3, 5.0)
	grid.Add(0, 0, 0, 1.5)

	var buf bytes.Buffer
	if err := WriteFluenceDump(&buf, grid); err != nil {
		t.Fatalf("WriteFluenceDump: %v", err)
	}

	got, err := ReadFluenceDump(&buf, 2, 3, 4)
	if err != nil {
		t.Fatalf("ReadFluenceDump: %v", err)
	}
	want := grid.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadFluenceDump_RejectsNonPositiveDims(t *testing.T) {
	if _, err := ReadFluenceDump(&bytes.Buffer{}, 0, 1, 1); err == nil {
		t.Fatal("expected error for nx <= 0")
	}
}
