package hw

import (
	"valkyr/emu/log"
	"valkyr/hw/hwio"
)

// BankRegs holds the program bank latch at 0xF808. The latch is write-only
// from the bus: the stored page index feeds the banked ROM address lines
// directly and never travels back over the data bus. The page is encoded
// in bits 3-6 of the written byte, not in the low nibble.
type BankRegs struct {
	// 7  bit  0
	// ---- ----
	// xxxP PPPx
	//    | |||
	//    +-+++-- program page for the 0xF000-0xF7FF window
	BANK hwio.Reg8 `hwio:"offset=0x0,rwmask=0x78,writeonly,wcb"`
}

func (b *BankRegs) WriteBANK(old, val uint8) {
	if old != val {
		log.ModROM.DebugZ("bank select").Uint8("page", val>>3).End()
	}
}

// Bank returns the current 4-bit page index.
func (b *BankRegs) Bank() uint8 {
	return b.BANK.Value >> 3
}

// ScrollRegs is the scroll register file: two independent 2-D offsets for
// the foreground and background layers, stored as byte-wide latches that
// update one bit-field at a time. The bus sees a single write-only window
// whose low three address bits select the target latch.
//
// The decode exposes six bus addresses, but the internal selector has
// eight codes: code 6 (background vertical) sits above the decoded window
// and is unreachable from the bus on this board, and codes 5 and 7 select
// nothing. The layers read the latches continuously through FgScroll and
// BgScroll; there is no data-bus read path.
type ScrollRegs struct {
	SCROLL hwio.Device `hwio:"offset=0x0,size=0x6,wcb,pcb,writeonly"`

	fgXLo uint8
	fgXHi uint8 // bit 8 only
	fgY   uint8
	bgXLo uint8
	bgXHi uint8 // bit 8 only
	bgY   uint8
}

func (s *ScrollRegs) WriteSCROLL(addr uint16, val uint8) {
	s.writeIndex(uint8(addr), val)
}

func (s *ScrollRegs) PeekSCROLL(addr uint16) uint8 {
	switch addr & 0x7 {
	case 0:
		return s.fgXLo
	case 1:
		return s.fgXHi
	case 2:
		return s.fgY
	case 3:
		return s.bgXLo
	case 4:
		return s.bgXHi
	case 6:
		return s.bgY
	}
	return 0
}

// writeIndex updates the latch selected by the low three address bits.
// Unaddressed bit-fields keep their value, including the other fields of
// the same logical register.
func (s *ScrollRegs) writeIndex(idx, val uint8) {
	switch idx & 0x7 {
	case 0:
		s.fgXLo = val
	case 1:
		s.fgXHi = hwio.GetBiti8(val, 0)
	case 2:
		s.fgY = val
	case 3:
		s.bgXLo = val
	case 4:
		s.bgXHi = hwio.GetBiti8(val, 0)
	case 6:
		s.bgY = val
	}
	log.ModVideo.DebugZ("scroll write").
		Uint8("idx", idx&0x7).
		Hex8("val", val).
		End()
}

func (s *ScrollRegs) reset() {
	s.fgXLo, s.fgXHi, s.fgY = 0, 0, 0
	s.bgXLo, s.bgXHi, s.bgY = 0, 0, 0
}

// FgScroll returns the foreground layer offset: 9-bit horizontal, 8-bit
// vertical.
func (s *ScrollRegs) FgScroll() (x uint16, y uint8) {
	return uint16(s.fgXHi)<<8 | uint16(s.fgXLo), s.fgY
}

// BgScroll returns the background layer offset: 9-bit horizontal, 8-bit
// vertical.
func (s *ScrollRegs) BgScroll() (x uint16, y uint8) {
	return uint16(s.bgXHi)<<8 | uint16(s.bgXLo), s.bgY
}
