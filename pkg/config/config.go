// Package config loads the optional frameui.yaml file that tunes an engine.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/frameui/pkg/layout"
)

// FileName is the config file looked up by LoadOptional.
const FileName = "frameui.yaml"

// TOMLFileName is read instead when FileName is absent.
const TOMLFileName = "frameui.toml"

// SchemaVersion is the config schema understood by this release.
const SchemaVersion = "v1.0.0"

const (
	defaultTraceCapacity  = 240
	defaultTraceThreshold = 16667 * time.Microsecond
)

// Config represents the optional frameui.yaml (or frameui.toml) configuration.
type Config struct {
	Version string        `yaml:"version,omitempty" toml:"version"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Hover   HoverConfig   `yaml:"hover" toml:"hover"`
	Layout  LayoutConfig  `yaml:"layout" toml:"layout"`
	Trace   TraceConfig   `yaml:"trace" toml:"trace"`
}

// LoggingConfig controls engine logging and fault reporting.
type LoggingConfig struct {
	Level         string `yaml:"level,omitempty" toml:"level"`
	VerboseErrors bool   `yaml:"verbose_errors,omitempty" toml:"verbose_errors"`
}

// HoverConfig controls hit testing.
type HoverConfig struct {
	TieBreak string `yaml:"tie_break,omitempty" toml:"tie_break"`
}

// LayoutConfig controls the default constraint list.
type LayoutConfig struct {
	DefaultFlow string  `yaml:"default_flow,omitempty" toml:"default_flow"`
	Gap         float64 `yaml:"gap,omitempty" toml:"gap"`
}

// TraceConfig controls the frame trace buffer.
type TraceConfig struct {
	Capacity  int    `yaml:"capacity,omitempty" toml:"capacity"`
	Threshold string `yaml:"threshold,omitempty" toml:"threshold"`
}

// Resolved contains validated configuration values with defaults applied.
type Resolved struct {
	Root           string
	ModulePath     string
	Version        string
	LogLevel       slog.Level
	VerboseErrors  bool
	TieBreak       string
	DefaultFlow    layout.Flow
	Gap            float64
	TraceCapacity  int
	TraceThreshold time.Duration
}

// LoadOptional reads frameui.yaml from dir, falling back to frameui.toml.
// With neither present it returns an empty Config.
func LoadOptional(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err == nil {
		return Parse(data)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	data, err = os.ReadFile(filepath.Join(dir, TOMLFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", TOMLFileName, err)
	}
	return ParseTOML(data)
}

// Parse decodes a frameui.yaml document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// ParseTOML decodes a frameui.toml document. Keys the schema does not know
// are an error.
func ParseTOML(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TOMLFileName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse %s: unknown key %s", TOMLFileName, undecoded[0])
	}
	return &cfg, nil
}

// Resolve loads the config file (if present) from dir and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	r.Root = dir
	r.ModulePath = modulePath(dir)
	return r, nil
}

// Resolve validates cfg and fills in defaults.
func (cfg *Config) Resolve() (*Resolved, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = SchemaVersion
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("invalid config version %q", cfg.Version)
	}
	if semver.Major(version) != semver.Major(SchemaVersion) {
		return nil, fmt.Errorf("unsupported config version %s (want %s.x)", version, semver.Major(SchemaVersion))
	}

	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	tieBreak := strings.ToLower(strings.TrimSpace(cfg.Hover.TieBreak))
	switch tieBreak {
	case "":
		tieBreak = "last"
	case "last", "first":
	default:
		return nil, fmt.Errorf("invalid hover.tie_break %q (want last or first)", cfg.Hover.TieBreak)
	}

	flow, ok := layout.ParseFlow(strings.ToLower(strings.TrimSpace(cfg.Layout.DefaultFlow)))
	if !ok {
		return nil, fmt.Errorf("invalid layout.default_flow %q (want vertical, horizontal or none)", cfg.Layout.DefaultFlow)
	}
	if cfg.Layout.Gap < 0 {
		return nil, fmt.Errorf("layout.gap must not be negative, got %v", cfg.Layout.Gap)
	}

	capacity := cfg.Trace.Capacity
	if capacity == 0 {
		capacity = defaultTraceCapacity
	}
	if capacity < 0 {
		return nil, fmt.Errorf("trace.capacity must not be negative, got %d", capacity)
	}

	threshold := defaultTraceThreshold
	if s := strings.TrimSpace(cfg.Trace.Threshold); s != "" {
		threshold, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid trace.threshold: %w", err)
		}
		if threshold <= 0 {
			return nil, fmt.Errorf("trace.threshold must be positive, got %s", s)
		}
	}

	return &Resolved{
		Version:        version,
		LogLevel:       level,
		VerboseErrors:  cfg.Logging.VerboseErrors,
		TieBreak:       tieBreak,
		DefaultFlow:    flow,
		Gap:            cfg.Layout.Gap,
		TraceCapacity:  capacity,
		TraceThreshold: threshold,
	}, nil
}

func parseLevel(name string) (slog.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid logging.level %q", name)
	}
	return level, nil
}

// modulePath returns the module declared by dir/go.mod, or "" when there is
// none. It only labels output; a missing go.mod is not an error.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}
