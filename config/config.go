// Package config handles bfsim.toml configuration for the command line.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfsim/core"
)

// Execution modes.
const (
	ModeDirect = "direct"
	ModeSim    = "sim"
)

// Environment variables that override the configuration file.
const (
	EnvProgram   = "BFSIM_PROGRAM"
	EnvTraceFile = "BFSIM_TRACE_FILE"
)

// Config represents a bfsim.toml configuration.
type Config struct {
	Program ProgramConfig `toml:"program"`
	Engine  EngineConfig  `toml:"engine"`
	Trace   TraceConfig   `toml:"trace"`
	Verify  VerifyConfig  `toml:"verify"`
}

// ProgramConfig selects the program and its input.
type ProgramConfig struct {
	Source string `toml:"source"`
	Input  string `toml:"input"`
	Image  bool   `toml:"image"`
}

// EngineConfig selects how the program is executed.
type EngineConfig struct {
	Mode    string  `toml:"mode"`
	FreqGHz float64 `toml:"freq_ghz"`
}

// TraceConfig configures the JSON trace log.
type TraceConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// VerifyConfig configures the verification run.
type VerifyConfig struct {
	MaxSteps int `toml:"max_steps"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Mode:    ModeDirect,
			FreqGHz: 1,
		},
		Trace: TraceConfig{
			Level: "info",
		},
		Verify: VerifyConfig{
			MaxSteps: 1_000_000,
		},
	}
}

// Load parses a configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return c, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvProgram); v != "" {
		c.Program.Source = v
	}

	if v := os.Getenv(EnvTraceFile); v != "" {
		c.Trace.File = v
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Engine.Mode != ModeDirect && c.Engine.Mode != ModeSim {
		return fmt.Errorf("engine.mode must be %q or %q, got %q",
			ModeDirect, ModeSim, c.Engine.Mode)
	}

	if c.Engine.FreqGHz <= 0 {
		return fmt.Errorf("engine.freq_ghz must be positive, got %v", c.Engine.FreqGHz)
	}

	if c.Verify.MaxSteps < 0 {
		return fmt.Errorf("verify.max_steps must not be negative, got %d", c.Verify.MaxSteps)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// Freq returns the engine frequency.
func (c *Config) Freq() sim.Freq {
	return sim.Freq(c.Engine.FreqGHz) * sim.GHz
}

// LogLevel parses trace.level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Trace.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "trace":
		return core.LevelTrace, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("trace.level %q is not one of debug, info, trace, warn, error", c.Trace.Level)
	}
}
