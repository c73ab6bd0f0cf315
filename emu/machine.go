// Package emu orchestrates the board model: it owns the base clock, divides
// it into the processor and video domains, and ties the bus fabric to a bus
// master and to the raster.
package emu

import (
	"fmt"

	"valkyr/emu/log"
	"valkyr/hw"
	"valkyr/romset"
)

// Clocking of the board: a single 12MHz crystal, divided down per domain.
const (
	BaseHz   = 12_000_000
	cpuDiv   = 2 // processor domain, 6MHz
	videoDiv = 4 // video domain, 3MHz

	// TicksPerFrame is the length of one video frame in base clock ticks.
	TicksPerFrame = int64(hw.TicksPerLine*hw.NumLines) * videoDiv
)

// A BusMaster drives processor-domain bus cycles, one per clock enable. It
// sits where the Z80 would on the real board.
type BusMaster interface {
	Tick(f *hw.Fabric)
}

// Machine ties fabric, raster and bus master together under the base clock.
type Machine struct {
	Fabric *hw.Fabric
	Raster *hw.Raster
	Master BusMaster

	Layers LayersConfig

	baseTicks int64
}

// PowerUp builds the machine around the given rom set.
func PowerUp(set *romset.Set, cfg Config) (*Machine, error) {
	rom, err := hw.NewROM(
		set.Region(romset.RegionMain),
		set.Region(romset.RegionExt),
		set.Region(romset.RegionBank),
	)
	if err != nil {
		return nil, fmt.Errorf("power up: %w", err)
	}

	m := &Machine{
		Raster: &hw.Raster{},
		Layers: cfg.Machine.Layers,
	}
	m.Fabric = hw.NewFabric(rom, m.Raster)
	m.Master = NewExerciser()

	log.AddContext(m)
	log.ModEmu.InfoZ("power up").
		String("board", set.Manifest.Board.Name).
		Bool("fg", m.Layers.Fg).
		Bool("bg", m.Layers.Bg).
		Bool("sprites", m.Layers.Sprites).
		End()

	m.Reset()
	return m, nil
}

// Reset puts the machine back into power-on state. RAM contents are kept,
// a reset pulse does not clear the chips.
func (m *Machine) Reset() {
	m.Raster.Reset()
	m.Fabric.Reset()
	m.baseTicks = 0
}

// RunTicks advances the base clock by n ticks. When both domain enables
// fall on the same tick the video domain is stepped first, so that a bus
// cycle always samples the freshest blanking level.
func (m *Machine) RunTicks(n int64) {
	for range n {
		m.baseTicks++
		if m.baseTicks%videoDiv == 0 {
			m.Raster.Tick()
		}
		if m.baseTicks%cpuDiv == 0 && m.Master != nil {
			m.Master.Tick(m.Fabric)
		}
	}
}

// RunFrames runs n whole video frames.
func (m *Machine) RunFrames(n int) {
	for range n {
		m.RunTicks(TicksPerFrame)
		log.ModEmu.DebugZ("frame done").Int64("cycles", m.Fabric.Cycles).End()
	}
}

// BaseTicks returns the number of base clock ticks since reset.
func (m *Machine) BaseTicks() int64 {
	return m.baseTicks
}

// AddLogContext implements log.LogContext: every entry logged while the
// machine runs carries the raster position it was emitted at.
func (m *Machine) AddLogContext(e *log.EntryZ) {
	e.Uint32("frame", m.Raster.Frame).Int("line", m.Raster.Line)
}
