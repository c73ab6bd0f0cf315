package hwio

import (
	"fmt"

	"valkyr/emu/log"
)

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0

	// MemFlag8ReadOnly marks the memory as read-only for 8-bit accesses.
	// Writes are discarded and logged as errors.
	MemFlag8ReadOnly MemFlags = (1 << iota)

	// MemFlag8ReadOnlyNoLog is like MemFlag8ReadOnly, but writes are
	// silently discarded. Useful for areas where the running program is
	// expected to blindly write (eg. a ROM shadowed by a write-only
	// latch elsewhere).
	MemFlag8ReadOnlyNoLog
)

// Mem implements a linear memory area (RAM or ROM), mapped into the address
// space of a bus. The memory can be mirrored over a virtual size bigger than
// its physical size, in which case accesses wrap around the physical size
// (which must be a power of two).
type Mem struct {
	Name  string
	Data  []byte
	VSize int
	Flags MemFlags

	// WriteCb is an optional callback called *instead* of performing a
	// write. When set, the memory contents are not modified unless the
	// callback does it explicitly.
	WriteCb func(addr uint16, val uint8)
}

// mem is the actual bus handler for a Mem, created by BankIO8().
type mem struct {
	parent *Mem
	data   []byte
	mask   uint16
	roflag MemFlags
	wcb    func(addr uint16, val uint8)
}

// BankIO8 returns the BankIO8 handler that gives access to this memory.
func (m *Mem) BankIO8() BankIO8 {
	psize := len(m.Data)
	if psize == 0 {
		panic(fmt.Errorf("mem %q has no data", m.Name))
	}
	if psize&(psize-1) != 0 {
		panic(fmt.Errorf("mem %q size is not a power of two: %d", m.Name, psize))
	}
	vsize := m.VSize
	if vsize == 0 {
		vsize = psize
	}
	if vsize < psize || vsize&(vsize-1) != 0 {
		panic(fmt.Errorf("mem %q vsize is invalid: %d", m.Name, vsize))
	}
	return &mem{
		parent: m,
		data:   m.Data,
		mask:   uint16(psize - 1),
		roflag: m.Flags & (MemFlag8ReadOnly | MemFlag8ReadOnlyNoLog),
		wcb:    m.WriteCb,
	}
}

func (m *mem) Read8(addr uint16) uint8 {
	return m.data[addr&m.mask]
}

func (m *mem) Peek8(addr uint16) uint8 {
	return m.data[addr&m.mask]
}

func (m *mem) Write8(addr uint16, val uint8) {
	if m.wcb != nil {
		m.wcb(addr, val)
		return
	}
	if m.roflag != 0 {
		if m.roflag&MemFlag8ReadOnly != 0 {
			log.ModHwIo.ErrorZ("invalid write to readonly mem").
				String("name", m.parent.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	m.data[addr&m.mask] = val
}

func (m *Mem) String() string {
	return fmt.Sprintf("%s{size=%x}", m.Name, len(m.Data))
}

// memSlice is the bus handler created by Table.MapMemorySlice: a raw byte
// slice indexed relative to the mapping base, with no mirroring.
type memSlice struct {
	base     uint16
	data     []uint8
	readonly bool
}

func (m *memSlice) Read8(addr uint16) uint8 {
	return m.data[addr-m.base]
}

func (m *memSlice) Peek8(addr uint16) uint8 {
	return m.data[addr-m.base]
}

func (m *memSlice) Write8(addr uint16, val uint8) {
	if m.readonly {
		log.ModHwIo.ErrorZ("invalid write to readonly slice").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	m.data[addr-m.base] = val
}
