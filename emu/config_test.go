package emu

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"valkyr/emu/log"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	want := LayersConfig{Fg: true, Bg: true, Sprites: true}
	if cfg.Machine.Layers != want {
		t.Errorf("default layers = %+v", cfg.Machine.Layers)
	}
	if len(cfg.General.DebugModules) != 0 || len(cfg.Trace.Only) != 0 {
		t.Errorf("default config not empty: %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	const doc = `
[general]
debug_modules = ["bus", "hwio"]

[machine.layers]
fg = true
bg = false
sprites = true

[trace]
only = ["0xF808", "0xF800-0xF805"]
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"bus", "hwio"}, cfg.General.DebugModules); diff != "" {
		t.Errorf("debug modules (-want +got):\n%s", diff)
	}
	want := LayersConfig{Fg: true, Bg: false, Sprites: true}
	if cfg.Machine.Layers != want {
		t.Errorf("layers = %+v, want %+v", cfg.Machine.Layers, want)
	}
	if diff := cmp.Diff([]string{"0xF808", "0xF800-0xF805"}, cfg.Trace.Only); diff != "" {
		t.Errorf("trace filter (-want +got):\n%s", diff)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("no error loading an absent file")
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	// a config file that doesn't mention the layers keeps them enabled
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\ndebug_modules = [\"emu\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := LayersConfig{Fg: true, Bg: true, Sprites: true}
	if cfg.Machine.Layers != want {
		t.Errorf("layers = %+v, want defaults", cfg.Machine.Layers)
	}
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DebugModules = []string{"video"}
	cfg.Machine.Layers.Bg = false
	cfg.Trace.Only = []string{"0xF808"}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := saveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config round trip (-want +got):\n%s", diff)
	}
}

func TestTraceFilter(t *testing.T) {
	tc := TraceConfig{Only: []string{"0xF808", "0xF800-0xF805"}}
	bs, err := tc.Filter()
	if err != nil {
		t.Fatal(err)
	}
	for addr := uint(0xF800); addr <= 0xF805; addr++ {
		if !bs.Test(addr) {
			t.Errorf("addr %04X not in filter", addr)
		}
	}
	if !bs.Test(0xF808) {
		t.Error("addr F808 not in filter")
	}
	if got := bs.Count(); got != 7 {
		t.Errorf("filter holds %d addresses, want 7", got)
	}

	empty := TraceConfig{}
	if bs, err := empty.Filter(); err != nil || bs != nil {
		t.Errorf("empty filter = (%v, %v), want (nil, nil)", bs, err)
	}

	for _, bad := range []string{"xyz", "0xF800-", "0xF805-0xF800", "0x10000"} {
		tc := TraceConfig{Only: []string{bad}}
		if _, err := tc.Filter(); err == nil {
			t.Errorf("no error for filter entry %q", bad)
		}
	}
}

func TestApplyLogConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DebugModules = []string{"bus"}
	if err := cfg.ApplyLogConfig(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.DisableDebugModules(log.ModBus.Mask()) })
	if !log.ModBus.Enabled(log.DebugLevel) {
		t.Error("bus module not enabled for debug")
	}

	cfg.General.DebugModules = []string{"nope"}
	if err := cfg.ApplyLogConfig(); err == nil {
		t.Error("no error for an unknown module")
	} else if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error does not name the module: %v", err)
	}
}
