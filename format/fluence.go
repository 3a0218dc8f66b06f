package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/photonmc/photonmc/transport"
)

// WriteFluenceDump writes accum's snapshot as spec.md §6's fluence dump
// format: raw little-endian IEEE-754 32-bit floats, Nx*Ny*Nz elements,
// x-major then y then z.
func WriteFluenceDump(w io.Writer, accum transport.Accumulator) error {
	snapshot := accum.Snapshot()
	if err := binary.Write(w, binary.LittleEndian, snapshot); err != nil {
		return fmt.Errorf("format: writing fluence dump: %w", err)
	}
	return nil
}

// ReadFluenceDump reads an Nx*Ny*Nz fluence dump written by
// WriteFluenceDump back into a flat x-major/y/z slice.
func ReadFluenceDump(r io.Reader, nx, ny, nz int) ([]float32, error) {
	n := nx * ny * nz
	if nx <= 0 || ny <= 0 || nz <= 0 || n <= 0 {
		return nil, fmt.Errorf("format: %w: dimensions (%d,%d,%d) must be positive", ErrInvalidInput, nx, ny, nz)
	}
	out := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("format: reading fluence dump: %w", err)
	}
	return out, nil
}
