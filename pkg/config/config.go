// Package config loads prism's theme configuration from YAML files and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/ui/design"
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/theme"
)

// Config holds the complete prism configuration.
type Config struct {
	// Theme names the active theme; "auto" follows the terminal background.
	Theme string `yaml:"theme"`
	// CacheSize bounds the style combine cache.
	CacheSize int `yaml:"cache_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Themes are user-defined themes, registered alongside the built-ins.
	Themes []ThemeConfig `yaml:"themes"`
	// ThemeFiles are extra YAML files each holding one ThemeConfig.
	ThemeFiles []string `yaml:"theme_files"`
}

// ThemeConfig describes a theme by its seed colors.
type ThemeConfig struct {
	Name string `yaml:"name"`

	design.Seeds `yaml:",inline"`
}

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() *Config {
	return &Config{
		Theme:     theme.Auto,
		CacheSize: style.DefaultCacheSize,
		LogLevel:  "info",
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, then ~/.prism/config.yaml, then ./.prism/config.yaml, then the
// environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range DefaultPaths() {
		if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "loading config").
				WithContext("path", path)
		}
	}

	return finish(cfg)
}

// DefaultPaths returns the files Load reads, lowest precedence first.
func DefaultPaths() []string {
	var paths []string
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, ".prism", "config.yaml"))
	}
	return append(paths, filepath.Join(".", ".prism", "config.yaml"))
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, expandHomeDir(path)); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "loading config").
			WithContext("path", path)
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.loadThemeFiles(); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies PRISM_* environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("PRISM_THEME")); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("PRISM_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("PRISM_CACHE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid PRISM_CACHE_SIZE").
				WithContext("value", v)
		}
		cfg.CacheSize = n
	}
	return nil
}

// ApplyEnvOverridesForTest exposes env override logic for tests without file I/O.
func ApplyEnvOverridesForTest(cfg *Config) error {
	return applyEnvOverrides(cfg)
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks configuration validity, including every theme's seeds.
func (c *Config) Validate() error {
	if c.CacheSize <= 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid, "cache_size must be positive, got %d", c.CacheSize)
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return errors.Newf(errors.ErrCodeConfigInvalid, "invalid log level: %s", c.LogLevel).
			WithRemediation("use debug, info, warn or error")
	}

	seen := make(map[string]bool, len(c.Themes))
	for i, tc := range c.Themes {
		name := strings.TrimSpace(tc.Name)
		if name == "" {
			return errors.Newf(errors.ErrCodeConfigInvalid, "themes[%d] has no name", i)
		}
		if name == theme.Auto {
			return errors.Newf(errors.ErrCodeConfigInvalid, "themes[%d]: the name %q is reserved", i, theme.Auto)
		}
		if seen[name] {
			return errors.Newf(errors.ErrCodeConfigInvalid, "theme %q defined twice", name)
		}
		seen[name] = true

		if _, err := design.New(tc.Seeds); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid theme seeds").
				WithContext("theme", name)
		}
	}
	return nil
}

// Registry builds a theme registry holding the built-ins plus every
// configured theme.
func (c *Config) Registry(opts ...theme.Option) (*theme.Registry, error) {
	r := theme.NewRegistry(opts...)
	for _, tc := range c.Themes {
		if err := r.RegisterSeeds(tc.Name, tc.Seeds); err != nil {
			return nil, err
		}
	}
	return r, nil
}
