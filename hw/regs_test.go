package hw

import (
	"testing"

	"valkyr/hw/hwio"
)

func TestBankRegCapture(t *testing.T) {
	var b BankRegs
	hwio.MustInitRegs(&b)

	// the page index comes from bits 3-6 of the data byte
	b.BANK.Write8(0xF808, 0b1110_1011)
	if got := b.Bank(); got != 0b1101 {
		t.Errorf("Bank() = %04b, want 1101", got)
	}

	for v := 0; v <= 0xFF; v++ {
		b.BANK.Write8(0xF808, uint8(v))
		want := uint8(v>>3) & 0x0F
		if got := b.Bank(); got != want {
			t.Fatalf("after write %02X: Bank() = %X, want %X", v, got, want)
		}
	}
}

func TestBankRegNoReadPath(t *testing.T) {
	var b BankRegs
	hwio.MustInitRegs(&b)

	b.BANK.Write8(0xF808, 0xFF)
	if got := b.BANK.Read8(0xF808); got != 0 {
		t.Errorf("bank reg read through the bus: %02X", got)
	}
	if got := b.Bank(); got != 0x0F {
		t.Errorf("Bank() = %X, want F", got)
	}
}

func TestScrollRegsFields(t *testing.T) {
	var s ScrollRegs
	hwio.MustInitRegs(&s)

	w := func(addr uint16, val uint8) { s.SCROLL.Write8(addr, val) }

	w(0xF800, 0x34) // fg x bits 0-7
	w(0xF801, 0xFF) // fg x bit 8, only data bit 0 counts
	w(0xF802, 0x56) // fg y
	w(0xF803, 0x9A) // bg x bits 0-7
	w(0xF804, 0x00) // bg x bit 8

	fgx, fgy := s.FgScroll()
	if fgx != 0x134 || fgy != 0x56 {
		t.Errorf("FgScroll() = (%03X, %02X), want (134, 56)", fgx, fgy)
	}
	bgx, bgy := s.BgScroll()
	if bgx != 0x09A || bgy != 0 {
		t.Errorf("BgScroll() = (%03X, %02X), want (09A, 00)", bgx, bgy)
	}

	// updating one bit-field leaves every other alone
	w(0xF800, 0x77)
	fgx, fgy = s.FgScroll()
	if fgx != 0x177 {
		t.Errorf("low byte write clobbered bit 8: %03X", fgx)
	}
	if fgy != 0x56 {
		t.Errorf("low byte write clobbered fg y: %02X", fgy)
	}
	bgx, _ = s.BgScroll()
	if bgx != 0x09A {
		t.Errorf("fg write leaked into bg: %03X", bgx)
	}

	// clearing bit 8 leaves the low byte
	w(0xF801, 0xFE)
	fgx, _ = s.FgScroll()
	if fgx != 0x077 {
		t.Errorf("bit 8 clear clobbered the low byte: %03X", fgx)
	}
}

func TestScrollRegsIndexMux(t *testing.T) {
	var s ScrollRegs
	hwio.MustInitRegs(&s)

	// The full 8-code selector, driven directly: code 6 is the background
	// vertical latch, which sits above the six decoded bus addresses on
	// this board; codes 5 and 7 select nothing.
	s.writeIndex(0, 0x11)
	s.writeIndex(1, 0x01)
	s.writeIndex(2, 0x22)
	s.writeIndex(3, 0x33)
	s.writeIndex(4, 0x00)
	s.writeIndex(5, 0xEE)
	s.writeIndex(6, 0x44)
	s.writeIndex(7, 0xEE)

	fgx, fgy := s.FgScroll()
	if fgx != 0x111 || fgy != 0x22 {
		t.Errorf("FgScroll() = (%03X, %02X), want (111, 22)", fgx, fgy)
	}
	bgx, bgy := s.BgScroll()
	if bgx != 0x033 || bgy != 0x44 {
		t.Errorf("BgScroll() = (%03X, %02X), want (033, 44)", bgx, bgy)
	}
}

func TestScrollRegsNoReadPath(t *testing.T) {
	var s ScrollRegs
	hwio.MustInitRegs(&s)

	s.SCROLL.Write8(0xF802, 0x7F)
	if got := s.SCROLL.Read8(0xF802); got != 0 {
		t.Errorf("scroll reg read through the bus: %02X", got)
	}
	// the debug peek window does see the latches
	if got := s.SCROLL.Peek8(0xF802); got != 0x7F {
		t.Errorf("Peek8(F802) = %02X, want 7F", got)
	}
}

func TestScrollRegsReset(t *testing.T) {
	var s ScrollRegs
	hwio.MustInitRegs(&s)

	s.writeIndex(0, 0xAA)
	s.writeIndex(1, 0x01)
	s.writeIndex(6, 0xBB)
	s.reset()

	fgx, fgy := s.FgScroll()
	bgx, bgy := s.BgScroll()
	if fgx != 0 || fgy != 0 || bgx != 0 || bgy != 0 {
		t.Errorf("latches not cleared: fg=(%X,%X) bg=(%X,%X)", fgx, fgy, bgx, bgy)
	}
}
