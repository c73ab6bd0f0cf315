package hwio

import "testing"

type stubIO uint8

func (s stubIO) Read8(addr uint16) uint8       { return uint8(s) }
func (s stubIO) Peek8(addr uint16) uint8       { return uint8(s) }
func (s stubIO) Write8(addr uint16, val uint8) {}

func wantSearch(t *testing.T, tree *radixTree, addr uint16, want BankIO8) {
	t.Helper()
	if got := tree.Search(addr); got != want {
		t.Errorf("Search(%04X) = %v, want %v", addr, got, want)
	}
}

func TestRadixInsertSearch(t *testing.T) {
	var tree radixTree

	// Whole pages, partial pages, and a single address.
	if err := tree.InsertRange(0x0000, 0x07FF, stubIO(1)); err != nil {
		t.Fatal(err)
	}
	if err := tree.InsertRange(0x0800, 0x0810, stubIO(2)); err != nil {
		t.Fatal(err)
	}
	if err := tree.InsertRange(0x0811, 0x0811, stubIO(3)); err != nil {
		t.Fatal(err)
	}

	wantSearch(t, &tree, 0x0000, stubIO(1))
	wantSearch(t, &tree, 0x07FF, stubIO(1))
	wantSearch(t, &tree, 0x0800, stubIO(2))
	wantSearch(t, &tree, 0x0810, stubIO(2))
	wantSearch(t, &tree, 0x0811, stubIO(3))
	wantSearch(t, &tree, 0x0812, nil)
	wantSearch(t, &tree, 0xFFFF, nil)
}

func TestRadixInsertAtTop(t *testing.T) {
	var tree radixTree

	// The last address must not overflow the range arithmetic.
	if err := tree.InsertRange(0xF800, 0xFFFF, stubIO(9)); err != nil {
		t.Fatal(err)
	}
	wantSearch(t, &tree, 0xFFFF, stubIO(9))
	wantSearch(t, &tree, 0xF7FF, nil)
}

func TestRadixOverlap(t *testing.T) {
	var tree radixTree

	if err := tree.InsertRange(0x1000, 0x1FFF, stubIO(1)); err != nil {
		t.Fatal(err)
	}

	// Overlap with a whole-page mapping.
	if err := tree.InsertRange(0x1800, 0x1800, stubIO(2)); err == nil {
		t.Error("overlap with whole page not detected")
	}
	// Overlap across the boundary.
	if err := tree.InsertRange(0x0FF0, 0x100F, stubIO(2)); err == nil {
		t.Error("overlap across boundary not detected")
	}
	// Overlap with a split page.
	if err := tree.InsertRange(0x2000, 0x2010, stubIO(3)); err != nil {
		t.Fatal(err)
	}
	if err := tree.InsertRange(0x2008, 0x2020, stubIO(4)); err == nil {
		t.Error("overlap with split page not detected")
	}
	// Adjacent ranges do not overlap.
	if err := tree.InsertRange(0x2011, 0x2030, stubIO(5)); err != nil {
		t.Errorf("adjacent range rejected: %v", err)
	}

	if err := tree.InsertRange(0x3000, 0x2000, stubIO(6)); err == nil {
		t.Error("inverted range not rejected")
	}
}

func TestRadixRemove(t *testing.T) {
	var tree radixTree

	if err := tree.InsertRange(0x4000, 0x5FFF, stubIO(1)); err != nil {
		t.Fatal(err)
	}

	// Punch a hole in the middle: the rest keeps responding.
	tree.RemoveRange(0x4800, 0x48FF)
	wantSearch(t, &tree, 0x47FF, stubIO(1))
	wantSearch(t, &tree, 0x4800, nil)
	wantSearch(t, &tree, 0x48FF, nil)
	wantSearch(t, &tree, 0x4900, stubIO(1))

	// Partial page removal splits the page.
	tree.RemoveRange(0x4000, 0x403F)
	wantSearch(t, &tree, 0x4000, nil)
	wantSearch(t, &tree, 0x4040, stubIO(1))

	// Removed ranges can be remapped.
	if err := tree.InsertRange(0x4800, 0x48FF, stubIO(2)); err != nil {
		t.Fatal(err)
	}
	wantSearch(t, &tree, 0x4880, stubIO(2))

	tree.Reset()
	wantSearch(t, &tree, 0x4040, nil)
}
