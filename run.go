package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"valkyr/emu"
	"valkyr/emu/log"
	"valkyr/hw"
	"valkyr/romset"
)

// runMain loads the rom set and runs the machine for the requested number
// of frames, then prints the final state digest.
func runMain(args Run, cfg *emu.Config) {
	set, err := romset.Open(args.SetPath)
	checkf(err, "failed to open rom set")

	if args.Trace != nil {
		cfg.TraceOut = args.Trace
	}

	m, err := emu.PowerUp(set, *cfg)
	checkf(err, "error during power up")

	checkf(runMachine(m, cfg, args.Frames), "run failed")

	snap := m.Fabric.TakeSnapshot()
	fmt.Println(snap.String())
}

// runMachine runs the machine, streaming the bus cycle trace to the
// configured output if there is one. Serialization happens on its own
// goroutine so the scheduling loop never waits on the trace sink.
func runMachine(m *emu.Machine, cfg *emu.Config, frames int) error {
	if cfg.TraceOut == nil {
		m.RunFrames(frames)
		return nil
	}
	defer cfg.TraceOut.Close()

	tracer := hw.NewTracer(cfg.TraceOut)
	filter, err := cfg.Trace.Filter()
	if err != nil {
		return err
	}
	tracer.Filter = filter

	events := make(chan hw.TraceEvent, 4096)
	var g errgroup.Group
	g.Go(func() error {
		for ev := range events {
			tracer.WriteEvent(ev)
		}
		return tracer.Err()
	})

	m.Fabric.Trace = func(ev hw.TraceEvent) { events <- ev }
	m.RunFrames(frames)
	m.Fabric.Trace = nil
	close(events)

	if err := g.Wait(); err != nil {
		return err
	}
	log.ModTrace.InfoZ("trace written").Int64("events", tracer.N()).End()
	return nil
}

func romInfosMain(args RomInfos) {
	rep, err := romset.Probe(args.SetPath)
	checkf(err, "failed to probe rom set")

	fmt.Printf("board: %s\n", rep.Board.Name)
	if rep.Board.Description != "" {
		fmt.Printf("description: %s\n", rep.Board.Description)
	}
	for _, ci := range rep.Chips {
		status := "ok"
		if ci.Err != nil {
			status = ci.Err.Error()
		}
		fmt.Printf("  %-8s %-12s %#6x bytes  crc %08x  [%-4s]  %s\n",
			ci.Name, ci.File, ci.Size, ci.CRC, ci.Region, status)
	}
	if !rep.Ok() {
		os.Exit(1)
	}
}
