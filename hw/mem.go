package hw

import "valkyr/hw/hwio"

// Memories groups the board RAM chips, one hwio.Mem per chip, at their
// offsets relative to the base of the RAM region (0xC000). The four layer
// memories and the palette stay mapped even when a layer is disabled in
// the configuration: the chip is still on the bus, it is just never read
// by the video side.
type Memories struct {
	WRAM      hwio.Mem `hwio:"offset=0x0,size=0x1000"`
	CHARRAM   hwio.Mem `hwio:"offset=0x1000,size=0x800"`
	FGRAM     hwio.Mem `hwio:"offset=0x1800,size=0x400"`
	BGRAM     hwio.Mem `hwio:"offset=0x1C00,size=0x400"`
	SPRITERAM hwio.Mem `hwio:"offset=0x2000,size=0x800"`
	PALRAM    hwio.Mem `hwio:"offset=0x2800,size=0x800"`
}
