package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/prism/pkg/config"
	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/theme"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PRISM_THEME", "")
	t.Setenv("PRISM_CACHE_SIZE", "")
	t.Setenv("PRISM_LOG_LEVEL", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.Theme != theme.Auto {
		t.Errorf("default theme = %q, want auto", cfg.Theme)
	}
	if cfg.CacheSize != style.DefaultCacheSize {
		t.Errorf("default cache size = %d, want %d", cfg.CacheSize, style.DefaultCacheSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadHierarchy(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)

	writeFile(t, filepath.Join(home, ".prism", "config.yaml"), `
theme: nord
cache_size: 64
themes:
  - name: ocean
    primary: "#1b6ca8"
    dark: true
`)
	writeFile(t, filepath.Join(project, ".prism", "config.yaml"), `
theme: ocean
themes:
  - name: ocean
    primary: "#0b4c78"
    accent: "#ffa62b"
    dark: true
  - name: paper
    primary: "#333333"
`)

	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Theme != "ocean" {
		t.Errorf("theme = %q, want project override", cfg.Theme)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("cache size = %d, want user value 64", cfg.CacheSize)
	}
	if len(cfg.Themes) != 2 {
		t.Fatalf("themes = %+v, want ocean and paper", cfg.Themes)
	}
	if cfg.Themes[0].Primary != "#0b4c78" || cfg.Themes[0].Accent != "#ffa62b" {
		t.Errorf("ocean not replaced by project file: %+v", cfg.Themes[0])
	}

	r, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	th, err := r.Select(cfg.Theme)
	if err != nil {
		t.Fatalf("Select(%q) error = %v", cfg.Theme, err)
	}
	if !th.Dark() {
		t.Error("ocean should be dark")
	}
}

func TestLoadWithoutFiles(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	oldWD, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme != theme.Auto {
		t.Errorf("theme = %q, want default", cfg.Theme)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PRISM_THEME", "gruvbox")
	t.Setenv("PRISM_CACHE_SIZE", "32")
	t.Setenv("PRISM_LOG_LEVEL", "debug")

	cfg := config.DefaultConfig()
	if err := config.ApplyEnvOverridesForTest(cfg); err != nil {
		t.Fatalf("ApplyEnvOverridesForTest() error = %v", err)
	}
	if cfg.Theme != "gruvbox" || cfg.CacheSize != 32 || cfg.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}

	t.Setenv("PRISM_CACHE_SIZE", "lots")
	err := config.ApplyEnvOverridesForTest(config.DefaultConfig())
	if !errors.IsCode(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("bad PRISM_CACHE_SIZE error = %v, want CONFIG_INVALID", err)
	}
}

func TestLoadFromPathThemeFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "themes", "dusk.yaml"), `
primary: "#6a4c93"
dark: true
luminosity_spread: 0.2
`)
	writeFile(t, filepath.Join(dir, "prism.yaml"), `
theme: dusk
theme_files:
  - themes/dusk.yaml
`)

	cfg, err := config.LoadFromPath(filepath.Join(dir, "prism.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if len(cfg.Themes) != 1 || cfg.Themes[0].Name != "dusk" {
		t.Fatalf("themes = %+v, want dusk named after its file", cfg.Themes)
	}
	if cfg.Themes[0].LuminositySpread != 0.2 {
		t.Errorf("luminosity spread = %v, want 0.2", cfg.Themes[0].LuminositySpread)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"bad yaml", "theme: [unclosed", errors.ErrCodeConfigParse},
		{"bad seed", "themes:\n  - name: x\n    primary: \"#nothex\"\n", errors.ErrCodeInvalidColor},
		{"unnamed theme", "themes:\n  - primary: \"#123456\"\n", errors.ErrCodeConfigInvalid},
		{"reserved name", "themes:\n  - name: auto\n    primary: \"#123456\"\n", errors.ErrCodeConfigInvalid},
		{"negative cache", "cache_size: -1\n", errors.ErrCodeConfigInvalid},
		{"bad log level", "log_level: loud\n", errors.ErrCodeConfigInvalid},
		{"missing theme file", "theme_files: [nope.yaml]\n", errors.ErrCodeConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			writeFile(t, path, tt.content)
			_, err := config.LoadFromPath(path)
			if !errors.IsCode(err, tt.code) {
				t.Errorf("LoadFromPath() error = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := config.LoadFromPath(filepath.Join(dir, "absent.yaml"))
	if !errors.IsCode(err, errors.ErrCodeConfigLoad) {
		t.Errorf("missing file error = %v, want CONFIG_LOAD", err)
	}
}
