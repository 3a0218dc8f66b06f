package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/photonmc/photonmc/transport"
)

// WritePackedMedium writes grid's packed byte representation verbatim:
// spec.md §6's 2-bit-per-voxel format, four voxels per byte, voxel
// (i,j,k) at byte n/4, bit offset (n mod 4)*2, where n is the x-major
// flat index.
func WritePackedMedium(w io.Writer, grid *transport.PackedMediumGrid) error {
	_, err := w.Write(grid.Bytes())
	if err != nil {
		return fmt.Errorf("format: writing packed medium: %w", err)
	}
	return nil
}

// ReadPackedMedium reads a packed medium file of the given dimensions and
// material table back into a *transport.PackedMediumGrid.
func ReadPackedMedium(r io.Reader, nx, ny, nz int, materials transport.MaterialTable) (*transport.PackedMediumGrid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("format: %w: dimensions (%d,%d,%d) must be positive", ErrInvalidInput, nx, ny, nz)
	}
	n := nx * ny * nz
	buf := make([]byte, (n+3)/4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("format: reading packed medium: %w", err)
	}
	return transport.NewPackedMediumGridFromBytes(nx, ny, nz, buf, materials)
}

// MaterialTableRecord is one (mua, mus, g, n) record of spec.md §6's
// material table wire format. Entry 0 is reserved for vacuum.
type MaterialTableRecord struct {
	Mua float32
	Mus float32
	G   float32
	N   float32
}

// WriteMaterialTable writes table as a sequence of (mua, mus, g, n)
// 32-bit-float records, entry 0 first.
func WriteMaterialTable(w io.Writer, table transport.MaterialTable) error {
	for i, m := range table {
		rec := [4]float32{float32(m.Mua), float32(m.Mus), float32(m.G), float32(m.N)}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return fmt.Errorf("format: writing material table record %d: %w", i, err)
		}
	}
	return nil
}

// ReadMaterialTable reads count (mua, mus, g, n) records written by
// WriteMaterialTable back into a transport.MaterialTable.
func ReadMaterialTable(r io.Reader, count int) (transport.MaterialTable, error) {
	if count <= 0 {
		return nil, fmt.Errorf("format: %w: count must be > 0, got %d", ErrInvalidInput, count)
	}
	table := make(transport.MaterialTable, count)
	for i := range table {
		var rec [4]float32
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("format: reading material table record %d: %w", i, err)
		}
		table[i] = transport.Material{Mua: float64(rec[0]), Mus: float64(rec[1]), G: float64(rec[2]), N: float64(rec[3])}
	}
	return table, nil
}
