package format

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/photonmc/photonmc/transport"
)

// Deck is the YAML input-deck structure the CLI's `transport run` command
// loads: grid dimensions, material table, source geometry, and photon
// count, grounded on the teacher's defaults.yaml Config / Workload
// sections. All top-level fields must be listed to satisfy
// yaml.Decoder.KnownFields(true) strict parsing.
type Deck struct {
	Grid       GridSpec       `yaml:"grid"`
	Materials  []MaterialSpec `yaml:"materials"`
	Source     SourceSpec     `yaml:"source"`
	NumPhotons int            `yaml:"num_photons"`
}

// GridSpec is the deck's voxel grid dimensions.
type GridSpec struct {
	Nx int `yaml:"nx"`
	Ny int `yaml:"ny"`
	Nz int `yaml:"nz"`
}

// MaterialSpec is one non-vacuum material table entry; entry 0 (vacuum)
// is implicit and never listed in the deck.
type MaterialSpec struct {
	Mua float64 `yaml:"mua"`
	Mus float64 `yaml:"mus"`
	G   float64 `yaml:"g"`
	N   float64 `yaml:"n"`
}

// SourceSpec is the pencil-beam launch position and direction.
type SourceSpec struct {
	P0 [3]float64 `yaml:"p0"`
	C0 [3]float64 `yaml:"c0"`
}

// LoadDeck parses a deck from r with strict field checking (a typo in a
// deck field must fail to load, not silently zero-value it).
func LoadDeck(r io.Reader) (Deck, error) {
	var deck Deck
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&deck); err != nil {
		return Deck{}, fmt.Errorf("format: parsing deck: %w", err)
	}
	return deck, nil
}

// MaterialTable converts the deck's material specs into a
// transport.MaterialTable, prepending the mandatory vacuum entry.
func (d Deck) MaterialTable() transport.MaterialTable {
	materials := make([]transport.Material, len(d.Materials))
	for i, m := range d.Materials {
		materials[i] = transport.Material{Mua: m.Mua, Mus: m.Mus, G: m.G, N: m.N}
	}
	return transport.NewMaterialTable(materials...)
}

// Vec3s converts the deck's source fields into transport.Vec3 values.
func (s SourceSpec) Vec3s() (p0, c0 transport.Vec3) {
	p0 = transport.Vec3{X: s.P0[0], Y: s.P0[1], Z: s.P0[2]}
	c0 = transport.Vec3{X: s.C0[0], Y: s.C0[1], Z: s.C0[2]}
	return p0, c0
}
