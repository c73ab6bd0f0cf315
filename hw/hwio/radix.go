package hwio

import "fmt"

// radixTree maps every 16-bit address to at most one BankIO8 handler. It is
// a two-level trie indexed by the address bytes: a 256-byte page fully
// covered by a single handler is stored inline, a page shared between
// handlers spills into a per-address leaf array.
//
// Insertion fails if the new range overlaps an existing one; address decode
// conflicts are design errors, not runtime conditions.
type radixTree struct {
	pages [256]radixPage
}

type radixPage struct {
	io   BankIO8
	leaf *[256]BankIO8
}

// Search returns the handler mapped at addr, or nil.
func (t *radixTree) Search(addr uint16) BankIO8 {
	p := &t.pages[addr>>8]
	if p.leaf != nil {
		return p.leaf[addr&0xFF]
	}
	return p.io
}

// InsertRange maps io over the inclusive address range [begin,end].
func (t *radixTree) InsertRange(begin, end uint16, io BankIO8) error {
	if end < begin {
		return fmt.Errorf("invalid range: %04x-%04x", begin, end)
	}
	if io == nil {
		return fmt.Errorf("nil handler for range %04x-%04x", begin, end)
	}

	// First pass: verify the whole range is free.
	for _, pr := range pageRanges(begin, end) {
		p := &t.pages[pr.page]
		if p.leaf == nil {
			if p.io != nil {
				return fmt.Errorf("overlapping range at %04x", uint16(pr.page)<<8|uint16(pr.lo))
			}
			continue
		}
		for a := int(pr.lo); a <= int(pr.hi); a++ {
			if p.leaf[a] != nil {
				return fmt.Errorf("overlapping range at %04x", uint16(pr.page)<<8|uint16(a))
			}
		}
	}

	// Second pass: fill.
	for _, pr := range pageRanges(begin, end) {
		p := &t.pages[pr.page]
		if pr.lo == 0 && pr.hi == 0xFF && p.leaf == nil {
			p.io = io
			continue
		}
		if p.leaf == nil {
			p.leaf = new([256]BankIO8)
		}
		for a := int(pr.lo); a <= int(pr.hi); a++ {
			p.leaf[a] = io
		}
	}
	return nil
}

// RemoveRange unmaps the inclusive address range [begin,end]. Handlers that
// extend beyond the range keep serving the addresses outside of it.
func (t *radixTree) RemoveRange(begin, end uint16) {
	if end < begin {
		return
	}
	for _, pr := range pageRanges(begin, end) {
		p := &t.pages[pr.page]
		if pr.lo == 0 && pr.hi == 0xFF {
			p.io = nil
			p.leaf = nil
			continue
		}
		if p.leaf == nil {
			if p.io == nil {
				continue
			}
			// Split the whole-page handler so that a part of it
			// can be removed.
			p.leaf = new([256]BankIO8)
			for a := 0; a < 256; a++ {
				p.leaf[a] = p.io
			}
			p.io = nil
		}
		for a := int(pr.lo); a <= int(pr.hi); a++ {
			p.leaf[a] = nil
		}
	}
}

// Reset unmaps everything.
func (t *radixTree) Reset() {
	for i := range t.pages {
		t.pages[i] = radixPage{}
	}
}

type pageRange struct {
	page   int
	lo, hi uint8
}

// pageRanges splits the inclusive range [begin,end] into per-page spans.
func pageRanges(begin, end uint16) []pageRange {
	var prs []pageRange
	for pg := int(begin >> 8); pg <= int(end>>8); pg++ {
		pr := pageRange{page: pg, lo: 0, hi: 0xFF}
		if pg == int(begin>>8) {
			pr.lo = uint8(begin)
		}
		if pg == int(end>>8) {
			pr.hi = uint8(end)
		}
		prs = append(prs, pr)
	}
	return prs
}
