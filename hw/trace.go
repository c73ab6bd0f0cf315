package hw

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"

	"valkyr/hw/hwio"
)

// Control register addresses worth naming in the trace output.
var addressLabels = map[uint16]string{
	0xF800: "FgXLo_F800",
	0xF801: "FgXHi_F801",
	0xF802: "FgY_F802",
	0xF803: "BgXLo_F803",
	0xF804: "BgXHi_F804",
	0xF808: "Bank_F808",
}

// Tracer serializes bus cycles as JSON lines, one object per cycle. A
// non-nil Filter restricts output to cycles whose address bit is set.
//
// False strobes are omitted from the output, so a plain read cycle is just
// {"tick":..,"addr":..,"data":..,"sel":..}.
type Tracer struct {
	w   io.Writer
	enc jx.Encoder

	Filter *hwio.Bitset

	count int64
	err   error // first write error, sticky
}

// NewTracer returns a tracer writing to w. The caller keeps ownership of
// w: buffering and closing are its business.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// WriteEvent serializes one cycle. Filtered-out events are not counted.
// After a write error the tracer goes inert; see Err.
func (t *Tracer) WriteEvent(ev TraceEvent) {
	if t.err != nil {
		return
	}
	if t.Filter != nil && !t.Filter.Test(uint(ev.Addr)) {
		return
	}

	e := &t.enc
	e.Reset()
	e.ObjStart()
	e.FieldStart("tick")
	e.Int64(ev.Tick)
	e.FieldStart("addr")
	e.Str(fmt.Sprintf("%04X", ev.Addr))
	e.FieldStart("data")
	e.Str(fmt.Sprintf("%02X", ev.Data))
	if ev.WR {
		e.FieldStart("wr")
		e.Bool(true)
	}
	if ev.RFSH {
		e.FieldStart("rfsh")
		e.Bool(true)
	}
	if ev.Ack {
		e.FieldStart("ack")
		e.Bool(true)
	}
	e.FieldStart("sel")
	e.Str(ev.Sel.String())
	if label, ok := addressLabels[ev.Addr]; ok {
		e.FieldStart("reg")
		e.Str(label)
	}
	if ev.INT {
		e.FieldStart("int")
		e.Bool(true)
	}
	e.ObjEnd()

	if _, err := t.w.Write(append(e.Bytes(), '\n')); err != nil {
		t.err = fmt.Errorf("trace write: %w", err)
		return
	}
	t.count++
}

// N returns the number of events written so far.
func (t *Tracer) N() int64 {
	return t.count
}

// Err returns the first write error encountered, if any.
func (t *Tracer) Err() error {
	return t.err
}
