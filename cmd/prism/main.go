// Command prism inspects and previews prism themes.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/odvcencio/prism/pkg/config"
	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/logging"
	"github.com/odvcencio/prism/pkg/ui/design"
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/theme"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg      *config.Config
	registry *theme.Registry
	logger   *logging.Logger
	flags    rootFlags
}

type rootFlags struct {
	configPath string
	theme      string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var flags rootFlags

	root := &cobra.Command{
		Use:   "prism",
		Short: "Theme and visual rendering toolkit for terminal UIs",
		Long: `prism generates color palettes from a handful of seed colors and renders
styled content into fixed-width terminal rows.

Themes come from the built-in set plus any defined in ~/.prism/config.yaml
or ./.prism/config.yaml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default: ~/.prism/config.yaml then ./.prism/config.yaml)")
	pf.StringVarP(&flags.theme, "theme", "t", "", "theme name, or 'auto' to follow the terminal background")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newPaletteCmd(a),
		newDesignCmd(a),
		newThemesCmd(a),
		newPreviewCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, flags rootFlags) error {
	a.flags = flags
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	a.logger = logging.NewLoggerWithWriter(cmd.ErrOrStderr(), "cli", logging.ParseLevel(cfg.LogLevel))
	if err := a.apply(cfg); err != nil {
		return err
	}
	cmd.SetContext(logging.IntoContext(cmd.Context(), a.logger))
	a.logger.Debug("config loaded", "theme", cfg.Theme, "themes", len(a.registry.Names()))
	return nil
}

// loadConfig reads the configuration and applies flag overrides.
func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.flags.configPath != "" {
		cfg, err = config.LoadFromPath(a.flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if a.flags.theme != "" {
		cfg.Theme = a.flags.theme
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// apply makes cfg current, rebuilding the theme registry.
func (a *app) apply(cfg *config.Config) error {
	if err := style.SetDefaultCacheSize(cfg.CacheSize); err != nil {
		return err
	}
	registry, err := cfg.Registry(theme.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.cfg, a.registry = cfg, registry
	return nil
}

// reload re-reads the configuration. On error the previous one stays.
func (a *app) reload() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	return a.apply(cfg)
}

// watchPaths lists the files whose changes trigger a reload.
func (a *app) watchPaths() []string {
	paths := config.DefaultPaths()
	if a.flags.configPath != "" {
		paths = []string{a.flags.configPath}
	}
	return append(paths, a.cfg.ThemeFiles...)
}

// theme returns the theme named by the first argument, or the configured one.
func (a *app) theme(args []string) (*theme.Theme, error) {
	name := a.cfg.Theme
	if len(args) > 0 {
		name = args[0]
	}
	t, err := a.registry.Select(name)
	if err != nil {
		return nil, err
	}
	a.logger.WithTheme(t.Name, t.Dark()).Debug("theme selected")
	return t, nil
}

// seeds returns the seed colors a theme was built from.
func (a *app) seeds(args []string) (string, design.Seeds, error) {
	t, err := a.theme(args)
	if err != nil {
		return "", design.Seeds{}, err
	}
	for _, tc := range a.cfg.Themes {
		if tc.Name == t.Name {
			return t.Name, tc.Seeds, nil
		}
	}
	if seeds, ok := theme.BuiltinSeeds()[t.Name]; ok {
		return t.Name, seeds, nil
	}
	return "", design.Seeds{}, errors.Newf(errors.ErrCodeThemeNotFound, "no seeds recorded for theme %q", t.Name)
}

// terminalWidth returns the width of f if it is a terminal, else fallback.
func terminalWidth(f *os.File, fallback int) int {
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func parseFormat(s string, allowed ...string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range allowed {
		if s == v {
			return s, nil
		}
	}
	return "", errors.Newf(errors.ErrCodeInvalidInput, "unknown value %q", s).
		WithRemediation("use one of: " + strings.Join(allowed, ", "))
}
