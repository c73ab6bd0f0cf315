package hw

import (
	"fmt"

	"valkyr/hw/hwio"
)

// Program storage sizes, fixed by the board layout.
const (
	MainROMSize = 0x8000 // 32K, directly addressed
	ExtROMSize  = 0x4000 // 16K, directly addressed
	BankROMSize = 0x8000 // 32K image behind the 2KB banked window

	bankPageSize = 0x800 // window size, one page
	bankNumPages = BankROMSize / bankPageSize
)

// ROM is the program storage of the board: two directly addressed chips
// and a third, oversized one reachable through a 2KB window whose high
// address lines come from the bank latch.
type ROM struct {
	MAIN   hwio.Mem    `hwio:"bank=0,offset=0x0,readonly"`
	EXT    hwio.Mem    `hwio:"bank=1,offset=0x0,readonly"`
	BANKED hwio.Device `hwio:"bank=2,offset=0x0,size=0x800,rcb,pcb=ReadBANKED,readonly"`

	image []byte // banked chip contents, bankNumPages pages
	bank  *BankRegs
}

// NewROM builds the program storage from the three chip images. Sizes are
// fixed: a short or long image is a romset bug surfaced here.
func NewROM(main, ext, banked []byte) (*ROM, error) {
	if len(main) != MainROMSize {
		return nil, fmt.Errorf("main rom: invalid size %#x, want %#x", len(main), MainROMSize)
	}
	if len(ext) != ExtROMSize {
		return nil, fmt.Errorf("ext rom: invalid size %#x, want %#x", len(ext), ExtROMSize)
	}
	if len(banked) != BankROMSize {
		return nil, fmt.Errorf("banked rom: invalid size %#x, want %#x", len(banked), BankROMSize)
	}

	rom := &ROM{image: banked}
	rom.MAIN.Data = main
	rom.EXT.Data = ext
	hwio.MustInitRegs(rom)
	return rom, nil
}

// ReadBANKED resolves a read in the banked window: the 4-bit page from the
// bank latch concatenated with the low 11 bits of the bus address.
func (r *ROM) ReadBANKED(addr uint16) uint8 {
	return r.image[r.physAddr(addr)]
}

func (r *ROM) physAddr(addr uint16) uint16 {
	return uint16(r.bank.Bank())<<11 | addr&(bankPageSize-1)
}
