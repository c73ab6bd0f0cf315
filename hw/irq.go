package hw

// Signal is a single-bit hardware signal sampled by the fabric, such as the
// vertical blanking output of the video timing chain.
type Signal interface {
	Level() bool
}

// IRQLatch is the interrupt controller: a level line toward the processor,
// armed by the falling edge of a periodic timing signal and cleared by the
// processor acknowledge cycle. It does no counting or vectoring.
type IRQLatch struct {
	line    bool // level presented to the processor
	prevSrc bool // timing signal as sampled last cycle
}

// Reset deasserts the line and primes the edge detector with the current
// signal level, so that stale pre-reset history cannot fake an edge on the
// first cycle out of reset.
func (irq *IRQLatch) Reset(src bool) {
	irq.line = false
	irq.prevSrc = src
}

// Step advances the latch by one processor cycle. src is the timing signal
// level for this cycle, ack reports whether the processor acknowledge
// condition holds (opcode fetch combined with an IO request).
//
// The returned level is what the processor samples during this cycle: an
// edge-armed assertion becomes visible only on the following cycle, while
// an acknowledge clears the line immediately. When both happen in the same
// cycle the acknowledge wins and the edge is consumed, not re-armed.
func (irq *IRQLatch) Step(src, ack bool) bool {
	out := irq.line
	falling := irq.prevSrc && !src
	irq.prevSrc = src

	switch {
	case ack:
		irq.line = false
		out = false
	case falling:
		irq.line = true
	}
	return out
}

// Asserted reports the current level of the interrupt line.
func (irq *IRQLatch) Asserted() bool {
	return irq.line
}
