package hwio

import (
	"fmt"

	"valkyr/emu/log"
)

// Device implements a special area of the address space whose behavior is
// fully delegated to callbacks; it is meant for hardware whose response
// depends on the accessed address (eg. a banked ROM window), as opposed to
// Reg8 which models a single addressable latch.
type Device struct {
	Name  string
	Size  int
	Flags RWFlags

	// ReadCb is called to handle a read from the device. addr is the
	// absolute address being accessed.
	ReadCb func(addr uint16) uint8

	// PeekCb is called to handle a peek (side-effect free read). If nil,
	// peeks return zero.
	PeekCb func(addr uint16) uint8

	// WriteCb is called to handle a write to the device.
	WriteCb func(addr uint16, val uint8)
}

func (dev *Device) Read8(addr uint16) uint8 {
	if dev.Flags&WriteOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid read from writeonly device").
			String("name", dev.Name).
			Hex16("addr", addr).
			End()
		return 0
	}
	if dev.ReadCb == nil {
		return 0
	}
	return dev.ReadCb(addr)
}

func (dev *Device) Peek8(addr uint16) uint8 {
	if dev.PeekCb == nil {
		return 0
	}
	return dev.PeekCb(addr)
}

func (dev *Device) Write8(addr uint16, val uint8) {
	if dev.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid write to readonly device").
			String("name", dev.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	if dev.WriteCb == nil {
		return
	}
	dev.WriteCb(addr, val)
}

func (dev *Device) String() string {
	return fmt.Sprintf("%s{size=%x}", dev.Name, dev.Size)
}
