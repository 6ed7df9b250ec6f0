package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// HelpKey is reserved for the picker's help listing and may not be bound
// to a command.
const HelpKey = "?"

// CommandEntry describes one registered line-selection command.
type CommandEntry struct {
	Key            string   `yaml:"key"`              // single selector character
	Program        string   `yaml:"program"`          // executable name
	LineFlag       string   `yaml:"line_flag"`        // flag accepting the line count
	ExtraArgs      []string `yaml:"extra_args"`       // fixed additional arguments
	SingleFileOnly bool     `yaml:"single_file_only"` // program takes exactly one file
}

// DelimiterRule maps a filename glob pattern to a column separator.
type DelimiterRule struct {
	Pattern   string `yaml:"pattern"`   // filename glob, e.g. "*.csv"
	Separator string `yaml:"separator"` // separator passed to the formatter
}

// Config represents the application configuration structure.
// It defines the command registry, view defaults, columnify rules,
// and watch mode parameters.
type Config struct {
	View struct {
		DefaultLineCount int `yaml:"default_line_count"` // initial line count for new views
	} `yaml:"view"`
	Commands  []CommandEntry `yaml:"commands"` // command registry
	Columnify struct {
		Program    string          `yaml:"program"`    // formatter executable
		Delimiters []DelimiterRule `yaml:"delimiters"` // pattern -> separator table
	} `yaml:"columnify"`
	WatchMode struct {
		Enabled    bool `yaml:"enabled"`     // refresh views when backing files change
		DebounceMs int  `yaml:"debounce_ms"` // quiet period before a refresh fires
	} `yaml:"watch_mode"`
	Theme struct {
		Name     string `yaml:"name"`     // theme name (default, dark, light, ...)
		Primary  string `yaml:"primary"`  // primary color for branding
		Success  string `yaml:"success"`  // success message color
		Warning  string `yaml:"warning"`  // warning message color
		Error    string `yaml:"error"`    // error message color
		Info     string `yaml:"info"`     // informational message color
		Emphasis string `yaml:"emphasis"` // emphasis color for highlighted text
		Border   string `yaml:"border"`   // border color for frames
	} `yaml:"theme"`
}

// LoadConfig loads configuration from the default location
// (~/.config/peekd/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "peekd", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.View.DefaultLineCount > 0 {
		cfg.View.DefaultLineCount = tempCfg.View.DefaultLineCount
	}
	if len(tempCfg.Commands) > 0 {
		cfg.Commands = tempCfg.Commands
	}
	if tempCfg.Columnify.Program != "" {
		cfg.Columnify.Program = tempCfg.Columnify.Program
	}
	if len(tempCfg.Columnify.Delimiters) > 0 {
		cfg.Columnify.Delimiters = tempCfg.Columnify.Delimiters
	}

	cfg.WatchMode.Enabled = tempCfg.WatchMode.Enabled
	if tempCfg.WatchMode.DebounceMs > 0 {
		cfg.WatchMode.DebounceMs = tempCfg.WatchMode.DebounceMs
	}

	if tempCfg.Theme.Name != "" {
		cfg.ApplyTheme(tempCfg.Theme.Name)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with the built-in
// command registry and columnify table.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.View.DefaultLineCount = 10

	cfg.Commands = []CommandEntry{
		{Key: "h", Program: "head", LineFlag: "--lines"},
		{Key: "t", Program: "tail", LineFlag: "--lines"},
		{Key: "s", Program: "shuf", LineFlag: "--head-count", SingleFileOnly: true},
	}

	cfg.Columnify.Program = "column"
	cfg.Columnify.Delimiters = []DelimiterRule{
		{Pattern: "*.csv", Separator: ","},
		{Pattern: "*.tsv", Separator: "\t"},
		{Pattern: "*.psv", Separator: "|"},
	}

	cfg.WatchMode.Enabled = false
	cfg.WatchMode.DebounceMs = 250

	cfg.ApplyTheme("default")

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if c.View.DefaultLineCount < 1 {
		return fmt.Errorf("default_line_count must be >= 1")
	}

	if len(c.Commands) == 0 {
		return fmt.Errorf("at least one command must be registered")
	}

	seen := make(map[string]bool)
	for i, entry := range c.Commands {
		if utf8.RuneCountInString(entry.Key) != 1 {
			return fmt.Errorf("command %d: key must be a single character, got %q", i, entry.Key)
		}
		if entry.Key == HelpKey {
			return fmt.Errorf("command %d: key %q is reserved for help", i, HelpKey)
		}
		if seen[entry.Key] {
			return fmt.Errorf("command %d: duplicate key %q", i, entry.Key)
		}
		seen[entry.Key] = true
		if entry.Program == "" {
			return fmt.Errorf("command %d: program is required", i)
		}
		if entry.LineFlag == "" {
			return fmt.Errorf("command %d: line_flag is required", i)
		}
	}

	if c.Columnify.Program == "" {
		return fmt.Errorf("columnify program is required")
	}
	for i, rule := range c.Columnify.Delimiters {
		if rule.Pattern == "" {
			return fmt.Errorf("delimiter rule %d: pattern is required", i)
		}
		if _, err := glob.Compile(rule.Pattern); err != nil {
			return fmt.Errorf("delimiter rule %d: invalid pattern %q: %w", i, rule.Pattern, err)
		}
		if rule.Separator == "" {
			return fmt.Errorf("delimiter rule %d: separator is required", i)
		}
	}

	if c.WatchMode.Enabled && c.WatchMode.DebounceMs < 1 {
		return fmt.Errorf("watch debounce must be >= 1 ms")
	}

	return nil
}

// SeparatorFor resolves the column separator for a filename by matching it
// against the delimiter table. The first matching rule wins. The second
// return value is false when no rule matches, in which case the formatter
// runs without an explicit separator.
func (c *Config) SeparatorFor(filename string) (string, bool) {
	base := filepath.Base(filename)
	for _, rule := range c.Columnify.Delimiters {
		g, err := glob.Compile(rule.Pattern)
		if err != nil {
			continue
		}
		if g.Match(base) {
			return rule.Separator, true
		}
	}
	return "", false
}

// WatchDebounce returns the watch quiet period as a duration, falling
// back to the default when the configured value is not positive.
func (c *Config) WatchDebounce() time.Duration {
	if c.WatchMode.DebounceMs <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.WatchMode.DebounceMs) * time.Millisecond
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.View.DefaultLineCount = 5
	cfg.WatchMode.Enabled = false
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105", // Dark Blue
			"success":  "78",  // Dark Green
			"warning":  "214", // Dark Yellow
			"error":    "160", // Dark Red
			"info":     "33",  // Dark Blue
			"emphasis": "147", // Light Blue
			"border":   "105", // Dark Blue
		},
		"light": {
			"primary":  "135", // Light Purple
			"success":  "150", // Light Green
			"warning":  "222", // Light Yellow
			"error":    "210", // Light Red
			"info":     "117", // Light Blue
			"emphasis": "219", // Very Light Pink
			"border":   "135", // Light Purple
		},
		"monochrome": {
			"primary":  "245", // Light Grey
			"success":  "252", // White
			"warning":  "241", // Medium Grey
			"error":    "232", // Black
			"info":     "248", // Grey
			"emphasis": "255", // Bright White
			"border":   "245", // Light Grey
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
