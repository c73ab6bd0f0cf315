package hwio

import "fmt"

// Table implements the mapping of a full 16-bit address space to the
// handlers (registers, memories, devices) that respond to each address.
// It is the data path counterpart of an address decoder: every access is
// dispatched to exactly one handler, and mapping two handlers over the same
// address is a panic.
//
// Accesses to addresses with no handler are forwarded to Unmapped when set;
// otherwise reads return 0 and writes are discarded.
type Table struct {
	Name     string
	Unmapped BankIO8

	table8 radixTree
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Reset removes all the mappings.
func (t *Table) Reset() {
	t.table8.Reset()
}

func (t *Table) mapBus8(addr uint16, size int, io BankIO8) {
	if size <= 0 {
		panic(fmt.Errorf("table %s: invalid size %d at %04x", t.Name, size, addr))
	}
	end := uint32(addr) + uint32(size) - 1
	if end > 0xFFFF {
		panic(fmt.Errorf("table %s: mapping overflows address space: %04x+%x", t.Name, addr, size))
	}
	if err := t.table8.InsertRange(addr, uint16(end), io); err != nil {
		panic(fmt.Errorf("table %s: %w", t.Name, err))
	}
}

// MapReg8 maps an 8-bit register at the specified address.
func (t *Table) MapReg8(addr uint16, reg *Reg8) {
	t.mapBus8(addr, 1, reg)
}

// MapMem maps a memory area at the specified address. The area extends over
// the memory virtual size (mirroring the physical contents, if smaller).
func (t *Table) MapMem(addr uint16, mem *Mem) {
	size := mem.VSize
	if size == 0 {
		size = len(mem.Data)
	}
	t.mapBus8(addr, size, mem.BankIO8())
}

// MapDevice maps a device over its declared size.
func (t *Table) MapDevice(addr uint16, dev *Device) {
	if dev.Size <= 0 {
		panic(fmt.Errorf("table %s: device %s has no size", t.Name, dev.Name))
	}
	t.mapBus8(addr, dev.Size, dev)
}

// MapMemorySlice maps a raw byte slice over the inclusive range [begin,end].
// The slice must be at least as long as the range; extra bytes are ignored.
func (t *Table) MapMemorySlice(begin, end uint16, data []uint8, readonly bool) {
	size := int(end) - int(begin) + 1
	if len(data) < size {
		panic(fmt.Errorf("table %s: slice too short: %x < %x", t.Name, len(data), size))
	}
	t.mapBus8(begin, size, &memSlice{base: begin, data: data, readonly: readonly})
}

// MapBank maps all the registers of bankNum within the specified bank
// structure, at their tagged offsets relative to addr. The bank structure
// must have been initialized with InitRegs.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(fmt.Errorf("table %s: %w", t.Name, err))
	}
	for _, ri := range regs {
		switch r := ri.regPtr.(type) {
		case *Reg8:
			t.MapReg8(addr+ri.offset, r)
		case *Mem:
			t.MapMem(addr+ri.offset, r)
		case *Device:
			t.MapDevice(addr+ri.offset, r)
		default:
			panic(fmt.Errorf("table %s: unsupported bank field type %T", t.Name, ri.regPtr))
		}
	}
}

// UnmapBank removes the mappings created by a corresponding MapBank call.
func (t *Table) UnmapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(fmt.Errorf("table %s: %w", t.Name, err))
	}
	for _, ri := range regs {
		switch r := ri.regPtr.(type) {
		case *Reg8:
			t.Unmap(addr+ri.offset, addr+ri.offset)
		case *Mem:
			size := r.VSize
			if size == 0 {
				size = len(r.Data)
			}
			t.Unmap(addr+ri.offset, addr+ri.offset+uint16(size)-1)
		case *Device:
			t.Unmap(addr+ri.offset, addr+ri.offset+uint16(r.Size)-1)
		}
	}
}

// Unmap removes any mapping over the inclusive range [begin,end]. Handlers
// that extend beyond the range keep serving the addresses outside of it.
func (t *Table) Unmap(begin, end uint16) {
	t.table8.RemoveRange(begin, end)
}

func (t *Table) Read8(addr uint16) uint8 {
	if io := t.table8.Search(addr); io != nil {
		return io.Read8(addr)
	}
	if t.Unmapped != nil {
		return t.Unmapped.Read8(addr)
	}
	return 0
}

func (t *Table) Peek8(addr uint16) uint8 {
	if io := t.table8.Search(addr); io != nil {
		return io.Peek8(addr)
	}
	if t.Unmapped != nil {
		return t.Unmapped.Peek8(addr)
	}
	return 0
}

func (t *Table) Write8(addr uint16, val uint8) {
	if io := t.table8.Search(addr); io != nil {
		io.Write8(addr, val)
		return
	}
	if t.Unmapped != nil {
		t.Unmapped.Write8(addr, val)
	}
}
