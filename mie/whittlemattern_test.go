package mie

import (
	"math"
	"testing"
)

// TestWhittleMattern_TurbidTissueLikeMedium exercises spec.md §8 scenario 4:
// a continuous-random medium with correlation length l_c=1um and fractal
// dimension D=2.5 at lambda=0.633um. S43 is identically zero for this
// closed-form model, S11 is monotone decreasing from forward to backward,
// and g falls in the moderately forward-peaked band the scenario expects.
func TestWhittleMattern_TurbidTissueLikeMedium(t *testing.T) {
	mu := uniformCosines(181)
	table, g, err := WhittleMattern(1.0, 2.5, 0.633, mu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for k, v := range table.S43 {
		if v != 0 {
			t.Fatalf("S43[%d] = %v, want exactly 0 for the Whittle-Matern model", k, v)
		}
	}

	for k := 1; k < len(table.S11); k++ {
		if table.S11[k] > table.S11[k-1]+1e-9 {
			t.Fatalf("S11 not monotone decreasing at k=%d: S11[%d]=%v > S11[%d]=%v", k, k, table.S11[k], k-1, table.S11[k-1])
		}
	}

	if g <= 0.6 || g >= 0.95 {
		t.Errorf("g = %v, want in (0.6, 0.95) for a correlation length comparable to lambda", g)
	}
}

func TestWhittleMattern_RejectsInvalidInputs(t *testing.T) {
	mu := uniformCosines(5)
	if _, _, err := WhittleMattern(0, 2.5, 0.633, mu); err == nil {
		t.Fatal("expected error for lc <= 0")
	}
	if _, _, err := WhittleMattern(1.0, 2.5, 0, mu); err == nil {
		t.Fatal("expected error for lambda <= 0")
	}
}

func TestWhittleMattern_ShorterCorrelationLengthIsLessForwardPeaked(t *testing.T) {
	mu := uniformCosines(91)
	_, gLong, err := WhittleMattern(5.0, 2.5, 0.633, mu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, gShort, err := WhittleMattern(0.1, 2.5, 0.633, mu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(gLong) <= math.Abs(gShort) {
		t.Errorf("expected a longer correlation length to be more forward-peaked: g(long)=%v, g(short)=%v", gLong, gShort)
	}
}
