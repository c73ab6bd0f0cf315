package emu

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"valkyr/emu/log"
	"valkyr/hw/hwio"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Machine MachineConfig `toml:"machine"`
	Trace   TraceConfig   `toml:"trace"`

	TraceOut io.WriteCloser `toml:"-"`
}

type GeneralConfig struct {
	// DebugModules lists the log modules for which debug output is kept.
	DebugModules []string `toml:"debug_modules"`
}

type MachineConfig struct {
	Layers LayersConfig `toml:"layers"`
}

// LayersConfig enables or disables the video layers of the board. Disabled
// layers keep their ram mapped (the chips are still on the bus), the flag
// is only advisory for the video side.
type LayersConfig struct {
	Fg      bool `toml:"fg"`
	Bg      bool `toml:"bg"`
	Sprites bool `toml:"sprites"`
}

// TraceConfig narrows cycle tracing down to interesting addresses.
type TraceConfig struct {
	// Only lists the addresses kept in the trace, as hex strings, single
	// ("0xF808") or inclusive ranges ("0xF800-0xF805"). Empty keeps every
	// address.
	Only []string `toml:"only"`
}

// Filter compiles the address list into a tracer filter. Nil means no
// filtering.
func (tc *TraceConfig) Filter() (*hwio.Bitset, error) {
	if len(tc.Only) == 0 {
		return nil, nil
	}

	bs := new(hwio.Bitset)
	for _, entry := range tc.Only {
		first, last, isRange := strings.Cut(entry, "-")
		lo, err := strconv.ParseUint(strings.TrimSpace(first), 0, 16)
		if err != nil {
			return nil, fmt.Errorf("trace filter %q: %w", entry, err)
		}
		hi := lo
		if isRange {
			if hi, err = strconv.ParseUint(strings.TrimSpace(last), 0, 16); err != nil {
				return nil, fmt.Errorf("trace filter %q: %w", entry, err)
			}
		}
		if hi < lo {
			return nil, fmt.Errorf("trace filter %q: empty range", entry)
		}
		bs.SetRange(uint(lo), uint(hi)+1)
	}
	return bs, nil
}

// ApplyLogConfig enables debug logging for the modules named in the
// configuration.
func (cfg *Config) ApplyLogConfig() error {
	for _, name := range cfg.General.DebugModules {
		mod, ok := log.ModuleByName(name)
		if !ok {
			return fmt.Errorf("unknown log module %q", name)
		}
		log.EnableDebugModules(mod.Mask())
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Machine: MachineConfig{
			Layers: LayersConfig{Fg: true, Bg: true, Sprites: true},
		},
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("valkyr")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the valkyr config
// directory, or provides the default one.
func LoadConfigOrDefault() Config {
	cfg, err := loadConfig(filepath.Join(ConfigDir, cfgFilename))
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func saveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}

// SaveConfig into the valkyr config directory.
func SaveConfig(cfg Config) error {
	return saveConfig(filepath.Join(ConfigDir, cfgFilename), cfg)
}
