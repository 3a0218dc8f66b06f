package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/photonmc/photonmc/mie"
)

// WriteMieLUT writes tables as spec.md §6's Mie LUT output: for each
// (size-parameter, index) pair, NANGLES records of (S11, S12, S33, S43)
// as 32-bit floats, tables in the order supplied.
func WriteMieLUT(w io.Writer, tables []mie.MuellerTable) error {
	for ti, table := range tables {
		n := len(table.S11)
		if len(table.S12) != n || len(table.S33) != n || len(table.S43) != n {
			return fmt.Errorf("format: %w: table %d has mismatched Mueller entry lengths", ErrInvalidInput, ti)
		}
		for k := 0; k < n; k++ {
			rec := [4]float32{
				float32(table.S11[k]),
				float32(table.S12[k]),
				float32(table.S33[k]),
				float32(table.S43[k]),
			}
			if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
				return fmt.Errorf("format: writing Mie LUT table %d angle %d: %w", ti, k, err)
			}
		}
	}
	return nil
}

// ReadMieLUT reads nTables tables of nAngles (S11, S12, S33, S43) records
// each, as written by WriteMieLUT.
func ReadMieLUT(r io.Reader, nTables, nAngles int) ([]mie.MuellerTable, error) {
	if nTables <= 0 || nAngles <= 0 {
		return nil, fmt.Errorf("format: %w: nTables=%d, nAngles=%d must both be > 0", ErrInvalidInput, nTables, nAngles)
	}
	out := make([]mie.MuellerTable, nTables)
	for ti := range out {
		table := mie.MuellerTable{
			S11: make([]float64, nAngles),
			S12: make([]float64, nAngles),
			S33: make([]float64, nAngles),
			S43: make([]float64, nAngles),
		}
		for k := 0; k < nAngles; k++ {
			var rec [4]float32
			if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
				return nil, fmt.Errorf("format: reading Mie LUT table %d angle %d: %w", ti, k, err)
			}
			table.S11[k] = float64(rec[0])
			table.S12[k] = float64(rec[1])
			table.S33[k] = float64(rec[2])
			table.S43[k] = float64(rec[3])
		}
		out[ti] = table
	}
	return out, nil
}
