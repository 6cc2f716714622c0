// Package config loads strkit settings from YAML or TOML files with STRKIT_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STRKIT"

// Processor ids the configuration can name.
const (
	ProcessorOffHeap = "offheap"
	ProcessorHeap    = "heap"
	ProcessorArena   = "arena"
)

const (
	defaultChunkSize = 64 << 10
	maxChunkSize     = 1 << 30
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Format is a configuration file format.
type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// Config holds the engine settings.
type Config struct {
	Processors    ProcessorsConfig `toml:"processors" yaml:"processors"`
	AutoRelease   bool             `toml:"auto_release" yaml:"auto_release"`
	DefaultLocale string           `toml:"default_locale" yaml:"default_locale"`
	Log           LogConfig        `toml:"log" yaml:"log"`
}

// ProcessorsConfig selects the processors registered at startup.
type ProcessorsConfig struct {
	Default string      `toml:"default" yaml:"default"`
	Heap    HeapConfig  `toml:"heap" yaml:"heap"`
	Arena   ArenaConfig `toml:"arena" yaml:"arena"`
}

// HeapConfig configures the Go-heap processor.
type HeapConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// ArenaConfig configures the arena processor.
type ArenaConfig struct {
	Enabled   bool `toml:"enabled" yaml:"enabled"`
	ChunkSize int  `toml:"chunk_size" yaml:"chunk_size"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Level   string `toml:"level" yaml:"level"`
	Format  string `toml:"format" yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Processors: ProcessorsConfig{
			Default: ProcessorOffHeap,
			Heap:    HeapConfig{Enabled: true},
			Arena:   ArenaConfig{Enabled: true, ChunkSize: defaultChunkSize},
		},
		AutoRelease:   true,
		DefaultLocale: "und",
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. The format follows the file extension; anything
// other than .yaml or .yml is read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return finish(cfg)
}

// LoadBytes parses content in the given format. FormatAuto is read as TOML.
func LoadBytes(content []byte, format Format) (*Config, error) {
	cfg, err := parse(content, format)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return finish(cfg)
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() (*Config, error) {
	return finish(Default())
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parse(content []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML, FormatAuto:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return cfg, nil
}

// envKey converts a dotted key to its environment variable name:
// processors.arena.chunk_size -> STRKIT_PROCESSORS_ARENA_CHUNK_SIZE.
func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envKey(key)); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(envKey(key))
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, envKey(key), v)
		}
		*dst = b
		return nil
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(envKey(key))
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, envKey(key), v)
		}
		*dst = n
		return nil
	}

	str("processors.default", &c.Processors.Default)
	str("default_locale", &c.DefaultLocale)
	str("log.level", &c.Log.Level)
	str("log.format", &c.Log.Format)
	return errors.Join(
		boolean("auto_release", &c.AutoRelease),
		boolean("processors.heap.enabled", &c.Processors.Heap.Enabled),
		boolean("processors.arena.enabled", &c.Processors.Arena.Enabled),
		integer("processors.arena.chunk_size", &c.Processors.Arena.ChunkSize),
		boolean("log.enabled", &c.Log.Enabled),
	)
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if c.Processors.Arena.Enabled {
		if n := c.Processors.Arena.ChunkSize; n <= 0 || n > maxChunkSize {
			return fmt.Errorf("%w: processors.arena.chunk_size %d", ErrInvalid, n)
		}
	}
	switch c.Processors.Default {
	case ProcessorOffHeap:
	case ProcessorHeap:
		if !c.Processors.Heap.Enabled {
			return fmt.Errorf("%w: default processor %q is disabled", ErrInvalid, ProcessorHeap)
		}
	case ProcessorArena:
		if !c.Processors.Arena.Enabled {
			return fmt.Errorf("%w: default processor %q is disabled", ErrInvalid, ProcessorArena)
		}
	default:
		return fmt.Errorf("%w: unknown default processor %q", ErrInvalid, c.Processors.Default)
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = "und"
	}
	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("%w: default_locale %q: %v", ErrInvalid, c.DefaultLocale, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Locale returns DefaultLocale as a language tag, language.Und when unset.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.DefaultLocale)
	if err != nil {
		return language.Und
	}
	return tag
}
