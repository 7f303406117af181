package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/prism/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config. A missing
// file is reported with the raw os error so callers can test os.IsNotExist.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing YAML").
			WithContext("path", path)
	}

	mergeConfigs(cfg, &override, filepath.Dir(path))
	return nil
}

// mergeConfigs merges override into base. Themes replace same-named themes
// from earlier files; theme file paths resolve against dir.
func mergeConfigs(base, override *Config, dir string) {
	if override == nil {
		return
	}

	if override.Theme != "" {
		base.Theme = override.Theme
	}
	if override.CacheSize != 0 {
		base.CacheSize = override.CacheSize
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}

	for _, tc := range override.Themes {
		base.Themes = upsertTheme(base.Themes, tc)
	}
	for _, f := range override.ThemeFiles {
		f = expandHomeDir(f)
		if f != "" && !filepath.IsAbs(f) {
			f = filepath.Join(dir, f)
		}
		if f != "" {
			base.ThemeFiles = append(base.ThemeFiles, f)
		}
	}
}

func upsertTheme(themes []ThemeConfig, tc ThemeConfig) []ThemeConfig {
	for i := range themes {
		if themes[i].Name == tc.Name {
			themes[i] = tc
			return themes
		}
	}
	return append(themes, tc)
}

// loadThemeFiles reads each theme file into Themes.
func (c *Config) loadThemeFiles() error {
	for _, path := range c.ThemeFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigLoad, "reading theme file").
				WithContext("path", path)
		}
		var tc ThemeConfig
		if err := yaml.Unmarshal(data, &tc); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigParse, "parsing theme file").
				WithContext("path", path)
		}
		if strings.TrimSpace(tc.Name) == "" {
			tc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		c.Themes = upsertTheme(c.Themes, tc)
	}
	return nil
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
