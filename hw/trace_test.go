package hw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"

	"valkyr/hw/hwio"
)

func decodeTraceLine(t *testing.T, line []byte) map[string]any {
	t.Helper()

	got := map[string]any{}
	d := jx.DecodeBytes(line)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "tick":
			got[key], err = d.Int64()
		case "addr", "data", "sel", "reg":
			got[key], err = d.Str()
		case "wr", "rfsh", "ack", "int":
			got[key], err = d.Bool()
		default:
			t.Errorf("unexpected key %q in %s", key, line)
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		t.Fatalf("bad trace line %s: %v", line, err)
	}
	return got
}

func traceLines(t *testing.T, buf *bytes.Buffer) [][]byte {
	t.Helper()

	out := buf.Bytes()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		t.Fatalf("trace output not newline-terminated: %q", out)
	}
	return bytes.Split(bytes.TrimRight(out, "\n"), []byte("\n"))
}

func TestTracerOutput(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)

	tr.WriteEvent(TraceEvent{Tick: 0, Addr: 0x4321, Data: 0x7E, Sel: SelMainROM})
	tr.WriteEvent(TraceEvent{Tick: 1, Addr: 0xF808, Data: 0x28, WR: true, Sel: SelBank})
	tr.WriteEvent(TraceEvent{Tick: 2, Addr: 0x0042, RFSH: true, Sel: SelNone})
	tr.WriteEvent(TraceEvent{Tick: 3, Addr: 0x0038, Data: 0xFF, Ack: true, Sel: SelNone, INT: true})

	if tr.Err() != nil {
		t.Fatalf("tracer error: %v", tr.Err())
	}
	if tr.N() != 4 {
		t.Fatalf("N() = %d, want 4", tr.N())
	}

	lines := traceLines(t, &buf)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	want := []map[string]any{
		{"tick": int64(0), "addr": "4321", "data": "7E", "sel": "SelMainROM"},
		{"tick": int64(1), "addr": "F808", "data": "28", "wr": true, "sel": "SelBank", "reg": "Bank_F808"},
		{"tick": int64(2), "addr": "0042", "data": "00", "rfsh": true, "sel": "SelNone"},
		{"tick": int64(3), "addr": "0038", "data": "FF", "ack": true, "sel": "SelNone", "int": true},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, decodeTraceLine(t, lines[i])); diff != "" {
			t.Errorf("line %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestTracerFilter(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(&buf)

	var flt hwio.Bitset
	flt.SetRange(0xF800, 0xF810)
	tr.Filter = &flt

	tr.WriteEvent(TraceEvent{Tick: 0, Addr: 0xC000, Data: 0x11, Sel: SelWRAM})
	tr.WriteEvent(TraceEvent{Tick: 1, Addr: 0xF808, Data: 0x28, WR: true, Sel: SelBank})
	tr.WriteEvent(TraceEvent{Tick: 2, Addr: 0x1234, Data: 0x22, Sel: SelMainROM})

	if tr.N() != 1 {
		t.Fatalf("N() = %d, want 1: filtered events must not be counted", tr.N())
	}
	lines := traceLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	got := decodeTraceLine(t, lines[0])
	if got["addr"] != "F808" {
		t.Errorf("surviving line has addr %v", got["addr"])
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestTracerWriteError(t *testing.T) {
	tr := NewTracer(failWriter{})

	tr.WriteEvent(TraceEvent{Tick: 0, Addr: 0x0000, Sel: SelMainROM})
	if err := tr.Err(); err == nil {
		t.Fatal("no error after failed write")
	} else if !strings.Contains(err.Error(), "trace write") {
		t.Errorf("error not wrapped: %v", err)
	}
	if tr.N() != 0 {
		t.Errorf("N() = %d after failed write", tr.N())
	}

	// tracer goes inert, error stays the first one
	first := tr.Err()
	tr.WriteEvent(TraceEvent{Tick: 1, Addr: 0x0001, Sel: SelMainROM})
	if tr.Err() != first {
		t.Error("error not sticky")
	}
}
