package emu

import (
	"math/bits"

	"valkyr/emu/log"
	"valkyr/hw"
)

// Exerciser is a deterministic bus master standing in for the processor.
// It drives the kind of traffic game code would: opcode fetches from both
// program roms with the refresh cycles a real Z80 interleaves, work ram
// and video ram traffic, bank switching, scroll programming. It samples
// the interrupt line every cycle and acknowledges it, so each vblank is
// serviced exactly once.
type Exerciser struct {
	n   int64  // bus cycles driven by the script
	r   uint8  // dram refresh row counter
	sum uint32 // rolling digest of every byte read

	Ints int // interrupts acknowledged
}

func NewExerciser() *Exerciser {
	return &Exerciser{}
}

// Tick drives one processor-domain bus cycle.
func (x *Exerciser) Tick(f *hw.Fabric) {
	if f.INT() {
		// Accept the interrupt before resuming the script.
		f.Step(hw.Cycle{M1: true, IORQ: true})
		x.Ints++
		log.ModEmu.DebugZ("interrupt acknowledged").Int("n", x.Ints).End()
		return
	}

	n := x.n
	x.n++

	switch n % 16 {
	case 0, 1, 2: // opcode fetches
		x.read(f, uint16(n*7)&0x7FFF)
	case 3, 7, 11, 15: // refresh between fetch groups
		f.Refresh(uint16(x.r) & 0x7F)
		x.r++
	case 4, 5: // table reads from the extension rom
		x.read(f, 0x8000|uint16(n*13)&0x3FFF)
	case 6: // banked data
		x.read(f, 0xF000|uint16(n)&0x07FF)
	case 8: // work ram store
		f.Write8(0xC000|uint16(n)&0x0FFF, uint8(n))
	case 9: // work ram load
		x.read(f, 0xC000|uint16(n)&0x0FFF)
	case 10: // sprite table entry
		f.Write8(0xE000|uint16(n)&0x07FF, uint8(n>>3))
	case 12: // page flip every few rounds
		f.Write8(0xF808, uint8(n>>6)<<3)
	case 13: // scroll registers, round robin
		f.Write8(0xF800+uint16(n>>4)%6, uint8(n>>2))
	case 14: // palette entry
		f.Write8(0xE800|uint16(n)&0x07FF, uint8(n>>1))
	}
}

func (x *Exerciser) read(f *hw.Fabric, addr uint16) {
	x.sum = bits.RotateLeft32(x.sum, 1) ^ uint32(f.Read8(addr))
}

// Digest folds every byte the exerciser has read into one value, so two
// runs can be compared for divergence.
func (x *Exerciser) Digest() uint32 {
	return x.sum
}
