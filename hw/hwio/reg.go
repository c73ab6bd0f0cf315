package hwio

import (
	"fmt"

	"valkyr/emu/log"
)

// BankIO8 is the interface to access a memory bank that can be read/written
// with 8-bit accesses.
type BankIO8 interface {
	Read8(addr uint16) uint8
	Peek8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// Read16 performs a 16-bit little-endian read through two 8-bit accesses.
func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 performs a 16-bit little-endian write through two 8-bit accesses.
func Write16(b BankIO8, addr uint16, val uint16) {
	b.Write8(addr, uint8(val))
	b.Write8(addr+1, uint8(val>>8))
}

type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

// Reg8 implements a 8-bit hardware register.
type Reg8 struct {
	Name   string
	Value  uint8
	RoMask uint8 // bits that are read-only (transparent to writes)
	Flags  RWFlags

	// ReadCb is an optional callback called after the register is read.
	// It receives the current value and returns the value that will be
	// actually read by the caller.
	ReadCb func(val uint8) uint8

	// PeekCb is an optional callback called when the register is peeked
	// (that is, read without side effects, eg. from a debugging tool).
	PeekCb func(val uint8) uint8

	// WriteCb is an optional callback called after the register is
	// written. It receives the old and the new value.
	WriteCb func(old uint8, val uint8)
}

func (reg *Reg8) write(val uint8) {
	old := reg.Value
	reg.Value = (reg.Value & reg.RoMask) | (val &^ reg.RoMask)
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg8) Write8(addr uint16, val uint8) {
	if reg.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid write to readonly reg").
			String("name", reg.Name).
			Hex8("val", val).
			End()
		return
	}
	reg.write(val)
}

func (reg *Reg8) Read8(addr uint16) uint8 {
	if reg.Flags&WriteOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid read from writeonly reg").
			String("name", reg.Name).
			End()
		return 0
	}
	val := reg.Value
	if reg.ReadCb != nil {
		val = reg.ReadCb(val)
	}
	return val
}

func (reg *Reg8) Peek8(addr uint16) uint8 {
	if reg.PeekCb != nil {
		return reg.PeekCb(reg.Value)
	}
	return reg.Value
}

func (reg *Reg8) String() string {
	return fmt.Sprintf("%s{%02x}", reg.Name, reg.Value)
}
