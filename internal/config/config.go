// Package config provides reading and writing of concord configuration.
// Supports both global (~/.concord/config.yaml) and local (.concord/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.concord/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .concord/config.yaml
	ScopeLocal
)

// Author is recorded in the audit log for commands run by this user.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Search holds the default search toggles. Command-line flags override them.
type Search struct {
	CaseSensitive *bool `yaml:"case_sensitive,omitempty"`
	Unique        *bool `yaml:"unique,omitempty"`
	Compress      *bool `yaml:"compress,omitempty"`
	Expand        *bool `yaml:"expand,omitempty"`
	Synonyms      *bool `yaml:"synonyms,omitempty"`
	Affixes       *bool `yaml:"affixes,omitempty"`
}

// Reading configures the reading window.
type Reading struct {
	Window *int `yaml:"window,omitempty"`
}

// Highlight sets the delimiters wrapped around matched text.
type Highlight struct {
	Open  string `yaml:"open,omitempty"`
	Close string `yaml:"close,omitempty"`
}

// Translation is a per-translation preference. A nil field keeps the
// default: enabled, ordered by import.
type Translation struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Order   *int  `yaml:"order,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultWindow = 10
	DefaultOpen   = "["
	DefaultClose  = "]"
)

// Validation bounds for configuration values.
const (
	MinWindow = 1
	MaxWindow = 500
)

// Config contains configuration for concord.
type Config struct {
	Author       Author                 `yaml:"author,omitempty"`
	Search       Search                 `yaml:"search,omitempty"`
	Reading      Reading                `yaml:"reading,omitempty"`
	Highlight    Highlight              `yaml:"highlight,omitempty"`
	Translations map[string]Translation `yaml:"translations,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Reading.Window != nil {
		v := *c.Reading.Window
		if v < MinWindow || v > MaxWindow {
			return fmt.Errorf("%w: reading.window must be between %d and %d, got %d",
				ErrInvalidValue, MinWindow, MaxWindow, v)
		}
	}
	for abbrev, t := range c.Translations {
		if t.Order != nil && *t.Order < 1 {
			return fmt.Errorf("%w: translations.%s.order must be a positive integer, got %d",
				ErrInvalidValue, abbrev, *t.Order)
		}
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// CaseSensitive returns the default case sensitivity (defaults to false).
func (c *Config) CaseSensitive() bool { return boolOr(c.Search.CaseSensitive, false) }

// Unique returns whether duplicate verses across translations collapse (defaults to false).
func (c *Config) Unique() bool { return boolOr(c.Search.Unique, false) }

// Compress returns whether common words are abbreviated (defaults to false).
func (c *Config) Compress() bool { return boolOr(c.Search.Compress, false) }

// Expand returns whether queries are expanded (defaults to false).
func (c *Config) Expand() bool { return boolOr(c.Search.Expand, false) }

// Synonyms returns whether expansion substitutes synonyms (defaults to true).
func (c *Config) Synonyms() bool { return boolOr(c.Search.Synonyms, true) }

// Affixes returns whether expansion adds affix variants (defaults to true).
func (c *Config) Affixes() bool { return boolOr(c.Search.Affixes, true) }

// Window returns the reading window size (defaults to 10).
func (c *Config) Window() int {
	if c.Reading.Window == nil {
		return DefaultWindow
	}
	return *c.Reading.Window
}

// Delimiters returns the highlight open and close markers.
func (c *Config) Delimiters() (string, string) {
	open, close := c.Highlight.Open, c.Highlight.Close
	if open == "" {
		open = DefaultOpen
	}
	if close == "" {
		close = DefaultClose
	}
	return open, close
}

// TranslationPref returns the preference for a translation abbreviation.
// Abbreviations are matched case-insensitively.
func (c *Config) TranslationPref(abbrev string) Translation {
	if t, ok := c.Translations[abbrev]; ok {
		return t
	}
	for k, t := range c.Translations {
		if strings.EqualFold(k, abbrev) {
			return t
		}
	}
	return Translation{}
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".concord", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.concord/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".concord", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadPath(path, scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
