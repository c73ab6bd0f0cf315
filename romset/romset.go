// Package romset loads the rom images of a board from a set directory or
// zip archive, checked against the board.toml manifest shipped with them.
package romset

import (
	"archive/zip"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"

	"valkyr/emu/log"
)

var modSet = log.NewModule("romset")

// Set holds the verified rom images of a board.
type Set struct {
	Manifest Manifest

	chips map[string][]byte
}

// Open loads and verifies the rom set at path, which is either a directory
// or a zip archive, both with a board.toml manifest at the top level.
func Open(path string) (*Set, error) {
	fsys, closer, err := openFS(path)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	set, err := Load(fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Load loads and verifies a rom set from the given filesystem.
func Load(fsys fs.FS) (*Set, error) {
	buf, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("no manifest: %w", err)
	}
	m, err := ParseManifest(buf)
	if err != nil {
		return nil, err
	}

	set := &Set{
		Manifest: m,
		chips:    make(map[string][]byte, len(m.Chips)),
	}
	for _, chip := range m.Chips {
		data, err := fs.ReadFile(fsys, chip.File)
		if err != nil {
			return nil, fmt.Errorf("chip %q: %w", chip.Name, err)
		}
		if err := chip.verify(data); err != nil {
			return nil, err
		}
		modSet.DebugZ("chip verified").
			String("chip", chip.Name).
			Int64("size", chip.Size).
			Hex32("crc", chip.CRC).
			End()
		set.chips[chip.Name] = data
	}
	return set, nil
}

func (c *Chip) verify(data []byte) error {
	if int64(len(data)) != c.Size {
		return fmt.Errorf("chip %q: size is %#x, want %#x", c.Name, len(data), c.Size)
	}
	if sum := crc32.ChecksumIEEE(data); sum != c.CRC {
		return fmt.Errorf("chip %q: bad checksum %08x, want %08x", c.Name, sum, c.CRC)
	}
	return nil
}

// Chip returns the contents of the named chip, or nil if absent.
func (s *Set) Chip(name string) []byte {
	return s.chips[name]
}

// Region returns the concatenated contents of all chips of the given
// region, in manifest order.
func (s *Set) Region(r Region) []byte {
	var data []byte
	for _, c := range s.Manifest.Chips {
		if c.Region == r {
			data = append(data, s.chips[c.Name]...)
		}
	}
	return data
}

// ChipInfo is the status of one chip of a probed set.
type ChipInfo struct {
	Chip
	ActualSize int64
	ActualCRC  uint32
	Err        error // nil if the chip matches its manifest entry
}

// Report is the outcome of probing a rom set.
type Report struct {
	Board Board
	Chips []ChipInfo
}

// Ok reports whether every chip of the set matched the manifest.
func (r *Report) Ok() bool {
	for i := range r.Chips {
		if r.Chips[i].Err != nil {
			return false
		}
	}
	return true
}

// Probe opens the set at path and checks every chip against the manifest,
// reporting mismatches instead of failing on them.
func Probe(path string) (*Report, error) {
	fsys, closer, err := openFS(path)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}

	buf, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("%s: no manifest: %w", path, err)
	}
	m, err := ParseManifest(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rep := &Report{Board: m.Board}
	for _, chip := range m.Chips {
		ci := ChipInfo{Chip: chip}
		data, err := fs.ReadFile(fsys, chip.File)
		if err != nil {
			ci.Err = err
		} else {
			ci.ActualSize = int64(len(data))
			ci.ActualCRC = crc32.ChecksumIEEE(data)
			ci.Err = chip.verify(data)
		}
		rep.Chips = append(rep.Chips, ci)
	}
	return rep, nil
}

// openFS opens path as a filesystem: the directory itself, or the contents
// of a zip archive.
func openFS(path string) (fs.FS, io.Closer, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if fi.IsDir() {
		return os.DirFS(path), nil, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: neither a directory nor a zip archive: %w", path, err)
	}
	return &zr.Reader, zr, nil
}
