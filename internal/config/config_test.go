package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"peekd/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
view:
  default_line_count: 25
commands:
  - key: "h"
    program: "head"
    line_flag: "--lines"
  - key: "t"
    program: "tail"
    line_flag: "--lines"
    extra_args: ["--quiet"]
  - key: "r"
    program: "shuf"
    line_flag: "--head-count"
    single_file_only: true
columnify:
  program: "column"
  delimiters:
    - pattern: "*.csv"
      separator: ","
    - pattern: "*.log"
      separator: " "
watch_mode:
  enabled: true
  debounce_ms: 500
`
	invalidSyntaxYAML = `
commands:
  - key: "h
    program: head
`
	duplicateKeyYAML = `
commands:
  - key: "h"
    program: "head"
    line_flag: "--lines"
  - key: "h"
    program: "tail"
    line_flag: "--lines"
`
	helpKeyYAML = `
commands:
  - key: "?"
    program: "head"
    line_flag: "--lines"
`
	missingFlagYAML = `
commands:
  - key: "h"
    program: "head"
    line_flag: ""
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 25, cfg.View.DefaultLineCount)
		assert.Len(t, cfg.Commands, 3)
		assert.Equal(t, "h", cfg.Commands[0].Key)
		assert.Equal(t, "head", cfg.Commands[0].Program)
		assert.Equal(t, "--lines", cfg.Commands[0].LineFlag)
		assert.Equal(t, []string{"--quiet"}, cfg.Commands[1].ExtraArgs)
		assert.True(t, cfg.Commands[2].SingleFileOnly)
		assert.Equal(t, "column", cfg.Columnify.Program)
		assert.Len(t, cfg.Columnify.Delimiters, 2)
		assert.True(t, cfg.WatchMode.Enabled)
		assert.Equal(t, 500, cfg.WatchMode.DebounceMs)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), "does_not_exist.yaml")
		cfg, err := config.LoadConfigFile(nonExistentPath)

		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		require.NotNil(t, cfg)

		defaultCfg := config.New()
		assert.Equal(t, defaultCfg.View.DefaultLineCount, cfg.View.DefaultLineCount)
		assert.Equal(t, defaultCfg.Commands, cfg.Commands)
		assert.Equal(t, defaultCfg.Columnify.Program, cfg.Columnify.Program)
	})

	t.Run("load invalid syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		cfg, err := config.LoadConfigFile(configFile)

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("duplicate command key", func(t *testing.T) {
		configFile := createTestYAML(t, duplicateKeyYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate key")
	})

	t.Run("help key is reserved", func(t *testing.T) {
		configFile := createTestYAML(t, helpKeyYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reserved for help")
	})

	t.Run("missing line flag", func(t *testing.T) {
		configFile := createTestYAML(t, missingFlagYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line_flag is required")
	})
}

func TestDefaults(t *testing.T) {
	cfg := config.New()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.View.DefaultLineCount)
	require.Len(t, cfg.Commands, 3)
	assert.Equal(t, "head", cfg.Commands[0].Program)
	assert.Equal(t, "tail", cfg.Commands[1].Program)
	assert.Equal(t, "shuf", cfg.Commands[2].Program)
	assert.True(t, cfg.Commands[2].SingleFileOnly, "shuf reads whole input, one file only")
	assert.Equal(t, "column", cfg.Columnify.Program)
	assert.False(t, cfg.WatchMode.Enabled)
}

func TestSeparatorFor(t *testing.T) {
	cfg := config.New()

	tests := []struct {
		name     string
		filename string
		want     string
		matched  bool
	}{
		{"csv file", "/data/report.csv", ",", true},
		{"tsv file", "notes.tsv", "\t", true},
		{"psv file", "/tmp/export.psv", "|", true},
		{"unmatched extension", "/tmp/a.txt", "", false},
		{"no extension", "Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sep, ok := cfg.SeparatorFor(tt.filename)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, sep)
		})
	}

	t.Run("first matching rule wins", func(t *testing.T) {
		cfg := config.New()
		cfg.Columnify.Delimiters = []config.DelimiterRule{
			{Pattern: "special.csv", Separator: ";"},
			{Pattern: "*.csv", Separator: ","},
		}
		sep, ok := cfg.SeparatorFor("/data/special.csv")
		require.True(t, ok)
		assert.Equal(t, ";", sep)
	})
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := config.New()
	cfg.View.DefaultLineCount = 42

	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.View.DefaultLineCount)
	assert.Equal(t, cfg.Commands, loaded.Commands)
}

func TestThemes(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.NotEmpty(t, cfg.Theme.Primary)

	cfg.ApplyTheme("dark")
	assert.Equal(t, "dark", cfg.Theme.Name)
	assert.Equal(t, config.GetTheme("dark")["primary"], cfg.Theme.Primary)

	// Unknown theme falls back to default colors
	unknown := config.GetTheme("does-not-exist")
	assert.Equal(t, config.GetTheme("default"), unknown)

	assert.Contains(t, config.ListThemes(), "monochrome")
}

func TestValidate(t *testing.T) {
	t.Run("zero line count", func(t *testing.T) {
		cfg := config.New()
		cfg.View.DefaultLineCount = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty registry", func(t *testing.T) {
		cfg := config.New()
		cfg.Commands = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("multi-character key", func(t *testing.T) {
		cfg := config.New()
		cfg.Commands[0].Key = "hh"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad delimiter pattern", func(t *testing.T) {
		cfg := config.New()
		cfg.Columnify.Delimiters = []config.DelimiterRule{{Pattern: "[", Separator: ","}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("watch debounce", func(t *testing.T) {
		cfg := config.New()
		cfg.WatchMode.Enabled = true
		cfg.WatchMode.DebounceMs = 0
		assert.Error(t, cfg.Validate())
	})
}
