package hw

// Address map of the board, inclusive bounds. The two gaps in the control
// block (0xF806-0xF807 and 0xF809 up) are unmapped on purpose: the PCB
// routes no device there.
const (
	mainROMStart   = 0x0000
	mainROMEnd     = 0x7FFF
	extROMStart    = 0x8000
	extROMEnd      = 0xBFFF
	wramStart      = 0xC000
	wramEnd        = 0xCFFF
	charRAMStart   = 0xD000
	charRAMEnd     = 0xD7FF
	fgRAMStart     = 0xD800
	fgRAMEnd       = 0xDBFF
	bgRAMStart     = 0xDC00
	bgRAMEnd       = 0xDFFF
	spriteRAMStart = 0xE000
	spriteRAMEnd   = 0xE7FF
	palRAMStart    = 0xE800
	palRAMEnd      = 0xEFFF
	bankROMStart   = 0xF000
	bankROMEnd     = 0xF7FF
	scrollStart    = 0xF800
	scrollEnd      = 0xF805
	bankRegAddr    = 0xF808
)

// Select identifies the device class addressed by a bus cycle. The decoder
// asserts at most one select per cycle; SelNone means no device responds
// and the merged bus byte is zero.
type Select uint8

//go:generate go tool stringer -type=Select
const (
	SelNone Select = iota
	SelMainROM
	SelExtROM
	SelWRAM
	SelCharRAM
	SelFgRAM
	SelBgRAM
	SelSpriteRAM
	SelPalRAM
	SelBankROM
	SelScroll
	SelBank
)

const numSelects = int(SelBank) + 1

// DecodeSelect is the address decoder: it maps a bus address to the select
// of the device owning it. No device is selected unless the cycle is a
// valid memory access (mreq active, refresh inactive).
func DecodeSelect(addr uint16, mreq, rfsh bool) Select {
	if !mreq || rfsh {
		return SelNone
	}
	switch {
	case addr <= mainROMEnd:
		return SelMainROM
	case addr <= extROMEnd:
		return SelExtROM
	case addr <= wramEnd:
		return SelWRAM
	case addr <= charRAMEnd:
		return SelCharRAM
	case addr <= fgRAMEnd:
		return SelFgRAM
	case addr <= bgRAMEnd:
		return SelBgRAM
	case addr <= spriteRAMEnd:
		return SelSpriteRAM
	case addr <= palRAMEnd:
		return SelPalRAM
	case addr <= bankROMEnd:
		return SelBankROM
	case addr >= scrollStart && addr <= scrollEnd:
		return SelScroll
	case addr == bankRegAddr:
		return SelBank
	}
	return SelNone
}

// SelectLines is the chip-select vector as individual lines, for
// collaborators that consume the decode as wires rather than as an enum.
type SelectLines struct {
	MainROM   bool
	ExtROM    bool
	WRAM      bool
	CharRAM   bool
	FgRAM     bool
	BgRAM     bool
	SpriteRAM bool
	PalRAM    bool
	BankROM   bool
	Scroll    bool
	Bank      bool
}

// Lines expands the select into the chip-select vector. By construction at
// most one line is set.
func (s Select) Lines() SelectLines {
	var l SelectLines
	switch s {
	case SelMainROM:
		l.MainROM = true
	case SelExtROM:
		l.ExtROM = true
	case SelWRAM:
		l.WRAM = true
	case SelCharRAM:
		l.CharRAM = true
	case SelFgRAM:
		l.FgRAM = true
	case SelBgRAM:
		l.BgRAM = true
	case SelSpriteRAM:
		l.SpriteRAM = true
	case SelPalRAM:
		l.PalRAM = true
	case SelBankROM:
		l.BankROM = true
	case SelScroll:
		l.Scroll = true
	case SelBank:
		l.Bank = true
	}
	return l
}
