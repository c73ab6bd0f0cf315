package hw

import (
	"valkyr/emu/log"
	"valkyr/hw/hwio"
)

// Cycle is one processor bus transaction as the fabric sees it: address
// and data lines plus the control strobes that qualify the access.
type Cycle struct {
	Addr uint16
	Data uint8 // byte driven by the processor on writes
	MREQ bool  // memory request: the address lines carry a valid access
	RFSH bool  // refresh cycle: must never trigger a decode
	WR   bool  // write strobe
	M1   bool  // opcode fetch
	IORQ bool  // io request; together with M1, interrupt acknowledge
}

// Ack reports whether the cycle is an interrupt acknowledge.
func (c Cycle) Ack() bool {
	return c.M1 && c.IORQ
}

// TraceEvent is the record of one bus cycle, as handed to the trace sink.
// Data is the byte on the data lines: the merged input bus on reads, the
// processor-driven byte on writes.
type TraceEvent struct {
	Tick int64
	Addr uint16
	Data uint8
	WR   bool
	RFSH bool
	Ack  bool
	Sel  Select
	INT  bool
}

// Fabric is the bus arbiter of the board. Every processor cycle it runs
// the interrupt latch, decodes the address to at most one chip select,
// routes the access to the selected device and merges the response onto
// the processor data-in bus. It owns the control latches (bank, scroll),
// the RAM chips and the device map.
//
// The hardware merges device outputs by OR-ing them, relying on every
// deselected device driving zero. Here the decode dispatches to the single
// mapped device instead, which is observably identical for well-behaved
// devices and cannot corrupt the bus for misbehaving ones.
type Fabric struct {
	Bus *hwio.Table

	ROM    *ROM
	RAM    Memories
	Scroll ScrollRegs
	Bank   BankRegs
	IRQ    IRQLatch

	vblank Signal

	// Trace, when non-nil, receives every stepped cycle.
	Trace func(TraceEvent)

	Cycles  int64 // processor-domain cycles since reset
	intLine bool  // INT level as sampled during the last cycle
}

// NewFabric builds the fabric around the given program storage and timing
// source: the device map is laid out per the board address map, the banked
// ROM is fed from the bank latch, the interrupt latch from vblank.
func NewFabric(rom *ROM, vblank Signal) *Fabric {
	f := &Fabric{
		Bus:    hwio.NewTable("fabric"),
		ROM:    rom,
		vblank: vblank,
	}
	rom.bank = &f.Bank

	hwio.MustInitRegs(&f.RAM)
	hwio.MustInitRegs(&f.Scroll)
	hwio.MustInitRegs(&f.Bank)

	f.Bus.MapBank(mainROMStart, rom, 0)
	f.Bus.MapBank(extROMStart, rom, 1)
	f.Bus.MapBank(bankROMStart, rom, 2)
	f.Bus.MapBank(wramStart, &f.RAM, 0)
	f.Bus.MapBank(scrollStart, &f.Scroll, 0)
	f.Bus.MapBank(bankRegAddr, &f.Bank, 0)

	f.Reset()
	return f
}

// Reset brings the fabric back to power-up state: bank latch zero, scroll
// latches zero, interrupt line deasserted. RAM contents are preserved, as
// a reset pulse does not clear the chips on this board.
func (f *Fabric) Reset() {
	f.IRQ.Reset(f.vblank.Level())
	f.Bank.BANK.Value = 0
	f.Scroll.reset()
	f.Cycles = 0
	f.intLine = false
}

// Step runs one processor-domain cycle: the interrupt latch samples the
// blanking signal and the acknowledge condition, the address is decoded,
// and the access is routed to the selected device. The returned byte is
// the merged data-in bus value: the selected device's output, or zero when
// nothing is selected.
func (f *Fabric) Step(cyc Cycle) uint8 {
	f.intLine = f.IRQ.Step(f.vblank.Level(), cyc.Ack())

	sel := DecodeSelect(cyc.Addr, cyc.MREQ, cyc.RFSH)
	var data uint8
	if sel != SelNone {
		if cyc.WR {
			f.Bus.Write8(cyc.Addr, cyc.Data)
		} else {
			data = f.Bus.Read8(cyc.Addr)
		}
	} else if cyc.MREQ && !cyc.RFSH {
		log.ModBus.DebugZ("unmapped access").
			Hex16("addr", cyc.Addr).
			Bool("wr", cyc.WR).
			End()
	}

	tick := f.Cycles
	f.Cycles++

	if f.Trace != nil {
		bus := data
		if cyc.WR {
			bus = cyc.Data
		}
		f.Trace(TraceEvent{
			Tick: tick,
			Addr: cyc.Addr,
			Data: bus,
			WR:   cyc.WR,
			RFSH: cyc.RFSH,
			Ack:  cyc.Ack(),
			Sel:  sel,
			INT:  f.intLine,
		})
	}
	return data
}

// INT reports the interrupt line level as sampled by the processor during
// the last stepped cycle.
func (f *Fabric) INT() bool {
	return f.intLine
}

// Read8 steps a well-formed read cycle at addr.
func (f *Fabric) Read8(addr uint16) uint8 {
	return f.Step(Cycle{Addr: addr, MREQ: true})
}

// Write8 steps a well-formed write cycle at addr.
func (f *Fabric) Write8(addr uint16, val uint8) {
	f.Step(Cycle{Addr: addr, Data: val, MREQ: true, WR: true})
}

// Refresh steps a refresh cycle: the address is on the bus but no device
// may respond.
func (f *Fabric) Refresh(addr uint16) {
	f.Step(Cycle{Addr: addr, MREQ: true, RFSH: true})
}

// Peek8 reads addr through the device map without stepping a cycle and
// without side effects.
func (f *Fabric) Peek8(addr uint16) uint8 {
	return f.Bus.Peek8(addr)
}
