package format

import (
	"bytes"
	"testing"

	"github.com/photonmc/photonmc/mie"
)

func TestWriteReadMieLUT_RoundTrips(t *testing.T) {
	mu := make([]float64, 5)
	for i := range mu {
		mu[i] = 1 - 2*float64(i)/4
	}
	table, _, _, err := mie.Mie(5.0, complex(1.33, 0), mu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tables := []mie.MuellerTable{table}

	var buf bytes.Buffer
	if err := WriteMieLUT(&buf, tables); err != nil {
		t.Fatalf("WriteMieLUT: %v", err)
	}

	got, err := ReadMieLUT(&buf, 1, len(mu))
	if err != nil {
		t.Fatalf("ReadMieLUT: %v", err)
	}
	for k := range mu {
		if float32(table.S11[k]) != float32(got[0].S11[k]) {
			t.Errorf("S11[%d]: got %v, want %v", k, got[0].S11[k], table.S11[k])
		}
	}
}

func TestWriteMieLUT_RejectsMismatchedLengths(t *testing.T) {
	bad := mie.MuellerTable{
		S11: []float64{1, 2},
		S12: []float64{1},
		S33: []float64{1, 2},
		S43: []float64{1, 2},
	}
	if err := WriteMieLUT(&bytes.Buffer{}, []mie.MuellerTable{bad}); err == nil {
		t.Fatal("expected error for mismatched Mueller entry lengths")
	}
}
