package romset

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// ManifestName is the name of the manifest file inside a rom set.
const ManifestName = "board.toml"

// Region identifies the board region a chip belongs to.
type Region string

const (
	RegionMain Region = "main" // fixed program rom
	RegionExt  Region = "ext"  // extension program rom
	RegionBank Region = "bank" // bank-switched program rom
	RegionGfx  Region = "gfx"  // graphics roms, not on the processor bus
)

func (r Region) valid() bool {
	switch r {
	case RegionMain, RegionExt, RegionBank, RegionGfx:
		return true
	}
	return false
}

// Manifest describes a rom set: the board it belongs to and the chips it
// must contain.
type Manifest struct {
	Board Board  `toml:"board"`
	Chips []Chip `toml:"chips"`
}

type Board struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Chip is one rom chip of the set. CRC is the IEEE CRC-32 of the chip
// contents, as TOML integer (hex literals read naturally: crc = 0xdeadbeef).
type Chip struct {
	Name   string `toml:"name"`
	File   string `toml:"file"`
	Size   int64  `toml:"size"`
	CRC    uint32 `toml:"crc"`
	Region Region `toml:"region"`
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	if m.Board.Name == "" {
		return Manifest{}, errors.New("manifest: missing board name")
	}
	if len(m.Chips) == 0 {
		return Manifest{}, errors.New("manifest: no chips")
	}

	seen := make(map[string]bool, len(m.Chips))
	for i, c := range m.Chips {
		switch {
		case c.Name == "":
			return Manifest{}, fmt.Errorf("manifest: chip %d: missing name", i)
		case seen[c.Name]:
			return Manifest{}, fmt.Errorf("manifest: duplicate chip %q", c.Name)
		case c.File == "" || !fs.ValidPath(c.File):
			return Manifest{}, fmt.Errorf("manifest: chip %q: invalid file %q", c.Name, c.File)
		case c.Size <= 0:
			return Manifest{}, fmt.Errorf("manifest: chip %q: missing size", c.Name)
		case c.CRC == 0:
			return Manifest{}, fmt.Errorf("manifest: chip %q: missing crc", c.Name)
		case !c.Region.valid():
			return Manifest{}, fmt.Errorf("manifest: chip %q: unknown region %q", c.Name, c.Region)
		}
		seen[c.Name] = true
	}
	return m, nil
}
