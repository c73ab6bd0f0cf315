package hw

import (
	"strings"
	"testing"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"
)

func TestSnapshotCapture(t *testing.T) {
	b := newTestBoard(t)

	b.f.Write8(0xF808, 0x28) // bank 5
	b.f.Write8(0xF800, 0x34)
	b.f.Write8(0xF801, 0x01)
	b.f.Write8(0xF802, 0x56)
	b.f.Write8(0xF803, 0x9A)
	b.f.Write8(0xF804, 0x00)

	s := b.f.TakeSnapshot()
	if s.Cycles != 6 {
		t.Errorf("Cycles = %d, want 6", s.Cycles)
	}
	if s.Bank != 5 {
		t.Errorf("Bank = %d, want 5", s.Bank)
	}
	if s.FgX != 0x134 || s.FgY != 0x56 {
		t.Errorf("fg scroll = (%03X, %02X), want (134, 56)", s.FgX, s.FgY)
	}
	if s.BgX != 0x09A || s.BgY != 0 {
		t.Errorf("bg scroll = (%03X, %02X), want (09A, 00)", s.BgX, s.BgY)
	}
	if s.INT {
		t.Error("INT set with blanking low")
	}
}

func TestSnapshotRAMDigests(t *testing.T) {
	b := newTestBoard(t)
	before := b.f.TakeSnapshot()

	// one byte into the fg layer: exactly one digest moves
	b.f.Write8(0xD800, 0xA7)
	after := b.f.TakeSnapshot()

	if after.FgRAM == before.FgRAM {
		t.Error("fg digest unchanged after write")
	}
	after.FgRAM = before.FgRAM
	after.Cycles = before.Cycles
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("unrelated state moved (-before +after):\n%s", diff)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := Snapshot{
		Cycles: 123456,
		Bank:   5,
		FgX:    0x134,
		FgY:    0x56,
		BgX:    0x09A,
		BgY:    0x42,
		INT:    true,

		WRAM:      0xDEADBEEF,
		CharRAM:   0x01020304,
		FgRAM:     0x05060708,
		BgRAM:     0x090A0B0C,
		SpriteRAM: 0x0D0E0F10,
		PalRAM:    0x11121314,
	}

	var e jx.Encoder
	s.Encode(&e)

	got, err := DecodeSnapshot(jx.DecodeBytes(e.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotDecodeLenient(t *testing.T) {
	// unknown keys are skipped, missing ones default to zero
	in := `{"cycles":42,"future":{"a":[1,2]},"bank":3}`
	got, err := DecodeSnapshot(jx.DecodeBytes([]byte(in)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Snapshot{Cycles: 42, Bank: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeSnapshot(jx.DecodeBytes([]byte(`[1,2]`))); err == nil {
		t.Error("no error decoding a non-object")
	}
}

func TestSnapshotString(t *testing.T) {
	b := newTestBoard(t)
	s := b.f.TakeSnapshot()

	str := s.String()
	if !strings.HasPrefix(str, "{") || !strings.Contains(str, `"cycles"`) {
		t.Errorf("String() = %q", str)
	}
	if _, err := DecodeSnapshot(jx.DecodeBytes([]byte(str))); err != nil {
		t.Errorf("String() output does not decode: %v", err)
	}
}
