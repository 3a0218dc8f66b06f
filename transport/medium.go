package transport

import "fmt"

// Material holds the optical properties of one tissue type (spec.md §3
// "Material table"). Material 0 is reserved for vacuum/exterior and must
// have Mua = Mus = 0.
type Material struct {
	Mua float64 // absorption coefficient, >= 0
	Mus float64 // scattering coefficient, >= 0
	G   float64 // anisotropy, in (-1, 1)
	N   float64 // refractive index, > 0
}

// MaterialTable is the immutable, ordered sequence of materials a medium
// grid's voxel IDs index into. Entry 0 is reserved for vacuum.
type MaterialTable []Material

// NewMaterialTable builds a MaterialTable with the mandatory vacuum entry
// at index 0, followed by materials.
func NewMaterialTable(materials ...Material) MaterialTable {
	t := make(MaterialTable, 0, len(materials)+1)
	t = append(t, Material{})
	t = append(t, materials...)
	return t
}

// Validate checks the invariants of spec.md §3 "Material table": entry 0
// is vacuum, and every entry's coefficients lie in their documented ranges.
func (t MaterialTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("transport: material table must contain at least the vacuum entry")
	}
	if t[0] != (Material{}) {
		return fmt.Errorf("transport: material table entry 0 must be vacuum (mua=mus=0), got %+v", t[0])
	}

	var problems []string
	for i, m := range t {
		if m.Mua < 0 {
			problems = append(problems, fmt.Sprintf("material %d: mua=%v must be >= 0", i, m.Mua))
		}
		if m.Mus < 0 {
			problems = append(problems, fmt.Sprintf("material %d: mus=%v must be >= 0", i, m.Mus))
		}
		if i > 0 && (m.G <= -1 || m.G >= 1) {
			problems = append(problems, fmt.Sprintf("material %d: g=%v must be in (-1, 1)", i, m.G))
		}
		if i > 0 && m.N <= 0 {
			problems = append(problems, fmt.Sprintf("material %d: n=%v must be > 0", i, m.N))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("transport: invalid material table: %v", problems)
	}
	return nil
}

// MediumGrid is the dense, one-byte-per-voxel medium representation of
// spec.md §3 "Medium grid". It is read-only for the duration of a run.
type MediumGrid struct {
	Nx, Ny, Nz int
	ids        []uint8
	Materials  MaterialTable
}

// NewMediumGrid allocates an Nx x Ny x Nz grid, initialized to vacuum (id 0).
// Returns ErrResourceExhausted if the requested dimensions would overflow an
// int-sized allocation.
func NewMediumGrid(nx, ny, nz int, materials MaterialTable) (*MediumGrid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("transport: %w: grid dimensions must be positive, got (%d,%d,%d)", ErrInvalidInput, nx, ny, nz)
	}
	n := nx * ny * nz
	if n <= 0 || n/nx/ny != nz {
		return nil, fmt.Errorf("transport: %w: grid (%d,%d,%d) overflows voxel count", ErrResourceExhausted, nx, ny, nz)
	}
	if err := materials.Validate(); err != nil {
		return nil, err
	}
	return &MediumGrid{Nx: nx, Ny: ny, Nz: nz, ids: make([]uint8, n), Materials: materials}, nil
}

// Dims returns the grid dimensions.
func (g *MediumGrid) Dims() (int, int, int) { return g.Nx, g.Ny, g.Nz }

// index computes the x-major-then-y-then-z flat index of spec.md §6.
func (g *MediumGrid) index(i, j, k int) int {
	return i*g.Ny*g.Nz + j*g.Nz + k
}

// inBounds reports whether (i,j,k) addresses a voxel of the grid.
func (g *MediumGrid) inBounds(i, j, k int) bool {
	return i >= 0 && i < g.Nx && j >= 0 && j < g.Ny && k >= 0 && k < g.Nz
}

// SetMaterial assigns the material ID at voxel (i,j,k). Out-of-bounds
// writes are silently ignored: the grid has no voxel to hold them and
// lookups there already return vacuum.
func (g *MediumGrid) SetMaterial(i, j, k int, id uint8) {
	if !g.inBounds(i, j, k) {
		return
	}
	g.ids[g.index(i, j, k)] = id
}

// LookupMaterial returns the material at voxel (i,j,k), and its ID.
// Out-of-bounds coordinates are treated as vacuum (spec.md §4.D).
func (g *MediumGrid) LookupMaterial(i, j, k int) (Material, uint8) {
	if !g.inBounds(i, j, k) {
		return g.Materials[0], 0
	}
	id := g.ids[g.index(i, j, k)]
	if int(id) >= len(g.Materials) {
		return g.Materials[0], 0
	}
	return g.Materials[id], id
}

// PackedMediumGrid is the 2-bit, four-voxels-per-byte wire format of
// spec.md §6 "Medium packed format". It is an optional storage
// optimization over MediumGrid; LookupMaterial performs the same
// shift/mask decoding documented there.
type PackedMediumGrid struct {
	Nx, Ny, Nz int
	bytes      []byte
	Materials  MaterialTable
}

// PackMediumGrid converts an unpacked MediumGrid into the 2-bit packed
// format. Fails if any voxel holds a material ID that does not fit in 2
// bits (id > 3).
func PackMediumGrid(g *MediumGrid) (*PackedMediumGrid, error) {
	n := g.Nx * g.Ny * g.Nz
	packed := &PackedMediumGrid{
		Nx: g.Nx, Ny: g.Ny, Nz: g.Nz,
		bytes:     make([]byte, (n+3)/4),
		Materials: g.Materials,
	}
	for n, id := range g.ids {
		if id > 3 {
			return nil, fmt.Errorf("transport: %w: material id %d at voxel %d does not fit in 2 bits", ErrInvalidInput, id, n)
		}
		byteIdx := n / 4
		shift := uint(n%4) * 2
		packed.bytes[byteIdx] |= id << shift
	}
	return packed, nil
}

// Dims returns the grid dimensions.
func (g *PackedMediumGrid) Dims() (int, int, int) { return g.Nx, g.Ny, g.Nz }

// Bytes returns the raw packed wire representation of spec.md §6, four
// voxels per byte.
func (g *PackedMediumGrid) Bytes() []byte { return g.bytes }

// NewPackedMediumGridFromBytes wraps an already-packed buffer (spec.md
// §6's wire format) as a PackedMediumGrid, for a reader that loaded the
// bytes from a file rather than packing a live MediumGrid.
func NewPackedMediumGridFromBytes(nx, ny, nz int, packed []byte, materials MaterialTable) (*PackedMediumGrid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("transport: %w: grid dimensions must be positive, got (%d,%d,%d)", ErrInvalidInput, nx, ny, nz)
	}
	n := nx * ny * nz
	want := (n + 3) / 4
	if len(packed) != want {
		return nil, fmt.Errorf("transport: %w: packed buffer has %d bytes, want %d for (%d,%d,%d)", ErrInvalidInput, len(packed), want, nx, ny, nz)
	}
	if err := materials.Validate(); err != nil {
		return nil, err
	}
	return &PackedMediumGrid{Nx: nx, Ny: ny, Nz: nz, bytes: packed, Materials: materials}, nil
}

// LookupMaterial decodes the material at voxel (i,j,k) from the packed
// representation, per spec.md §6's byte/bit-offset formula.
func (g *PackedMediumGrid) LookupMaterial(i, j, k int) (Material, uint8) {
	if i < 0 || i >= g.Nx || j < 0 || j >= g.Ny || k < 0 || k >= g.Nz {
		return g.Materials[0], 0
	}
	n := i*g.Ny*g.Nz + j*g.Nz + k
	byteIdx := n / 4
	shift := uint(n%4) * 2
	id := (g.bytes[byteIdx] >> shift) & 0x3
	return g.Materials[id], id
}
