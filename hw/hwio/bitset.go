package hwio

import (
	"fmt"
	"math/bits"
)

const (
	NumBits  = 0x10000            // one bit per address of the 16-bit space
	wordSize = 64                 // using 64-bit words
	numWords = NumBits / wordSize // 1024 words exactly
)

// Bitset is a 64Kbit set, one bit per bus address. Zero value is an empty
// set (all bits cleared).
type Bitset struct {
	words [numWords]uint64
}

// Set sets the bit at index i.
func (b *Bitset) Set(i uint) {
	b.words[i/wordSize] |= 1 << (i % wordSize)
}

// Clear clears the bit at index i.
func (b *Bitset) Clear(i uint) {
	b.words[i/wordSize] &^= 1 << (i % wordSize)
}

// Test returns true if the bit at index i is set.
func (b *Bitset) Test(i uint) bool {
	return (b.words[i/wordSize] & (1 << (i % wordSize))) != 0
}

// SetRange sets all bits in the half-open interval [start, end).
// It panics if start >= end or end > NumBits.
func (b *Bitset) SetRange(start, end uint) {
	b.applyRange(start, end, true)
}

// ClearRange clears all bits in the half-open interval [start, end).
// It panics if start >= end or end > NumBits.
func (b *Bitset) ClearRange(start, end uint) {
	b.applyRange(start, end, false)
}

func (b *Bitset) applyRange(start, end uint, set bool) {
	if start >= end || end > NumBits {
		panic(fmt.Sprintf("invalid range [%d, %d)", start, end))
	}
	startWord := start / wordSize
	endWord := (end - 1) / wordSize
	startBit := start % wordSize
	endBit := (end - 1) % wordSize

	apply := func(w uint, mask uint64) {
		if set {
			b.words[w] |= mask
		} else {
			b.words[w] &^= mask
		}
	}

	if startWord == endWord {
		apply(startWord, ((uint64(1)<<(endBit-startBit+1))-1)<<startBit)
		return
	}

	// First word.
	apply(startWord, ^uint64(0)<<startBit)

	// Middle full words.
	for i := startWord + 1; i < endWord; i++ {
		apply(i, ^uint64(0))
	}

	// Last word.
	apply(endWord, (uint64(1)<<(endBit+1))-1)
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Reset clears all bits in the Bitset.
func (b *Bitset) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}

// SetAll sets all bits in the Bitset.
func (b *Bitset) SetAll() {
	for i := range b.words {
		b.words[i] = ^uint64(0)
	}
}
