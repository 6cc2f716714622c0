package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.AutoRelease)
	assert.Equal(t, ProcessorOffHeap, cfg.Processors.Default)
	assert.True(t, cfg.Processors.Arena.Enabled)
	assert.Equal(t, 64<<10, cfg.Processors.Arena.ChunkSize)
	assert.Equal(t, language.Und, cfg.Locale())
	assert.False(t, cfg.Log.Enabled)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "strkit.yaml", `
auto_release: false
default_locale: tr-TR
processors:
  default: arena
  arena:
    chunk_size: 131072
log:
  enabled: true
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.AutoRelease)
	assert.Equal(t, "tr-TR", cfg.Locale().String())
	assert.Equal(t, ProcessorArena, cfg.Processors.Default)
	assert.True(t, cfg.Processors.Arena.Enabled, "unset keys keep their defaults")
	assert.Equal(t, 131072, cfg.Processors.Arena.ChunkSize)
	assert.True(t, cfg.Processors.Heap.Enabled)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "strkit.toml", `
auto_release = true
default_locale = "lt"

[processors]
default = "heap"

[processors.arena]
enabled = false

[log]
level = "warn"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ProcessorHeap, cfg.Processors.Default)
	assert.False(t, cfg.Processors.Arena.Enabled)
	assert.Equal(t, language.Lithuanian, cfg.Locale())
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"bad yaml", "c.yml", "processors: [unclosed"},
		{"bad toml", "c.toml", "processors = {"},
		{"unknown toml key", "c.toml", "no_such_key = 1"},
		{"unknown default", "c.toml", "[processors]\ndefault = \"gpu\""},
		{"disabled default", "c.toml", "[processors]\ndefault = \"arena\"\n[processors.arena]\nenabled = false"},
		{"zero chunk", "c.yaml", "processors:\n  arena:\n    chunk_size: 0"},
		{"bad locale", "c.yaml", "default_locale: \"not a locale!\""},
		{"bad log format", "c.yaml", "log:\n  format: xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STRKIT_AUTO_RELEASE", "false")
	t.Setenv("STRKIT_PROCESSORS_ARENA_CHUNK_SIZE", "8192")
	t.Setenv("STRKIT_DEFAULT_LOCALE", "az")
	t.Setenv("STRKIT_LOG_ENABLED", "1")

	cfg, err := LoadBytes([]byte("auto_release = true\n"), FormatTOML)
	require.NoError(t, err)
	assert.False(t, cfg.AutoRelease, "environment wins over the file")
	assert.Equal(t, 8192, cfg.Processors.Arena.ChunkSize)
	assert.Equal(t, language.Azerbaijani, cfg.Locale())
	assert.True(t, cfg.Log.Enabled)

	t.Setenv("STRKIT_PROCESSORS_HEAP_ENABLED", "maybe")
	_, err = FromEnv()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "STRKIT_PROCESSORS_ARENA_CHUNK_SIZE", envKey("processors.arena.chunk_size"))
	assert.Equal(t, "STRKIT_AUTO_RELEASE", envKey("auto_release"))
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "toml", FormatTOML.String())
	assert.Equal(t, "auto", FormatAuto.String())
	assert.Equal(t, FormatYAML, detectFormat("a/b.YML"))
	assert.Equal(t, FormatTOML, detectFormat("strkit.conf"))
}
