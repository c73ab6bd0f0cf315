package hw

import (
	"fmt"
	"hash/crc32"

	"github.com/go-faster/jx"
)

// Snapshot captures the externally observable state of the fabric at one
// point in time. RAM contents are folded into CRC32 sums: the snapshot is
// a digest for comparing runs, not a restorable image.
type Snapshot struct {
	Cycles int64
	Bank   uint8
	FgX    uint16
	FgY    uint8
	BgX    uint16
	BgY    uint8
	INT    bool

	WRAM      uint32
	CharRAM   uint32
	FgRAM     uint32
	BgRAM     uint32
	SpriteRAM uint32
	PalRAM    uint32
}

// TakeSnapshot captures the current fabric state.
func (f *Fabric) TakeSnapshot() Snapshot {
	s := Snapshot{
		Cycles: f.Cycles,
		Bank:   f.Bank.Bank(),
		INT:    f.intLine,

		WRAM:      crc32.ChecksumIEEE(f.RAM.WRAM.Data),
		CharRAM:   crc32.ChecksumIEEE(f.RAM.CHARRAM.Data),
		FgRAM:     crc32.ChecksumIEEE(f.RAM.FGRAM.Data),
		BgRAM:     crc32.ChecksumIEEE(f.RAM.BGRAM.Data),
		SpriteRAM: crc32.ChecksumIEEE(f.RAM.SPRITERAM.Data),
		PalRAM:    crc32.ChecksumIEEE(f.RAM.PALRAM.Data),
	}
	s.FgX, s.FgY = f.Scroll.FgScroll()
	s.BgX, s.BgY = f.Scroll.BgScroll()
	return s
}

// Encode serializes the snapshot as a JSON object.
func (s *Snapshot) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("cycles")
	e.Int64(s.Cycles)
	e.FieldStart("bank")
	e.UInt8(s.Bank)
	e.FieldStart("fgx")
	e.UInt16(s.FgX)
	e.FieldStart("fgy")
	e.UInt8(s.FgY)
	e.FieldStart("bgx")
	e.UInt16(s.BgX)
	e.FieldStart("bgy")
	e.UInt8(s.BgY)
	e.FieldStart("int")
	e.Bool(s.INT)
	e.FieldStart("wram")
	e.UInt32(s.WRAM)
	e.FieldStart("charram")
	e.UInt32(s.CharRAM)
	e.FieldStart("fgram")
	e.UInt32(s.FgRAM)
	e.FieldStart("bgram")
	e.UInt32(s.BgRAM)
	e.FieldStart("spriteram")
	e.UInt32(s.SpriteRAM)
	e.FieldStart("palram")
	e.UInt32(s.PalRAM)
	e.ObjEnd()
}

// DecodeSnapshot parses a snapshot previously serialized with Encode.
func DecodeSnapshot(d *jx.Decoder) (Snapshot, error) {
	var s Snapshot
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "cycles":
			s.Cycles, err = d.Int64()
		case "bank":
			s.Bank, err = d.UInt8()
		case "fgx":
			s.FgX, err = d.UInt16()
		case "fgy":
			s.FgY, err = d.UInt8()
		case "bgx":
			s.BgX, err = d.UInt16()
		case "bgy":
			s.BgY, err = d.UInt8()
		case "int":
			s.INT, err = d.Bool()
		case "wram":
			s.WRAM, err = d.UInt32()
		case "charram":
			s.CharRAM, err = d.UInt32()
		case "fgram":
			s.FgRAM, err = d.UInt32()
		case "bgram":
			s.BgRAM, err = d.UInt32()
		case "spriteram":
			s.SpriteRAM, err = d.UInt32()
		case "palram":
			s.PalRAM, err = d.UInt32()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

func (s *Snapshot) String() string {
	var e jx.Encoder
	s.Encode(&e)
	return e.String()
}
