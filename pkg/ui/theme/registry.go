package theme

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/odvcencio/prism/pkg/errors"
	"github.com/odvcencio/prism/pkg/logging"
	"github.com/odvcencio/prism/pkg/ui/design"
)

// Names of the built-in themes.
const (
	Auto       = "auto"
	PrismDark  = "prism-dark"
	PrismLight = "prism-light"
	PrismANSI  = "prism-ansi"
	Nord       = "nord"
	Gruvbox    = "gruvbox"
	Monokai    = "monokai"
)

var builtinSeeds = map[string]design.Seeds{
	PrismDark: {
		Primary:    "#0178D4",
		Secondary:  "#004578",
		Accent:     "#ffa62b",
		Warning:    "#ffa62b",
		Error:      "#ba3c5b",
		Success:    "#4EBF71",
		Foreground: "#e0e0e0",
		Dark:       true,
	},
	PrismLight: {
		Primary:   "#004578",
		Secondary: "#0178D4",
		Accent:    "#ffa62b",
		Warning:   "#ffa62b",
		Error:     "#ba3c5b",
		Success:   "#4EBF71",
	},
	PrismANSI: {
		Primary:    "ansi_blue",
		Secondary:  "ansi_cyan",
		Warning:    "ansi_yellow",
		Error:      "ansi_red",
		Success:    "ansi_green",
		Accent:     "ansi_bright_blue",
		Foreground: "ansi_default",
		Background: "ansi_default",
		Surface:    "ansi_default",
		Panel:      "ansi_default",
	},
	Nord: {
		Primary:    "#88C0D0",
		Secondary:  "#81A1C1",
		Accent:     "#B48EAD",
		Foreground: "#D8DEE9",
		Background: "#2E3440",
		Surface:    "#3B4252",
		Panel:      "#434C5E",
		Success:    "#A3BE8C",
		Warning:    "#EBCB8B",
		Error:      "#BF616A",
		Dark:       true,
	},
	Gruvbox: {
		Primary:    "#85A598",
		Secondary:  "#A89A85",
		Warning:    "#fabd2f",
		Error:      "#fb4934",
		Success:    "#b8bb26",
		Accent:     "#fabd2f",
		Foreground: "#fbf1c7",
		Background: "#282828",
		Surface:    "#3c3836",
		Panel:      "#504945",
		Dark:       true,
	},
	Monokai: {
		Primary:    "#AE81FF",
		Secondary:  "#F92672",
		Accent:     "#66D9EF",
		Warning:    "#FD971F",
		Error:      "#F92672",
		Success:    "#A6E22E",
		Foreground: "#d6d6d6",
		Background: "#272822",
		Surface:    "#2e2e2e",
		Panel:      "#3E3D32",
		Dark:       true,
	},
}

// BuiltinSeeds returns the seeds of every built-in theme.
func BuiltinSeeds() map[string]design.Seeds {
	return maps.Clone(builtinSeeds)
}

// Registry holds named themes. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]*Theme

	logger         *logging.Logger
	darkBackground func() bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBackgroundDetector overrides how "auto" decides between dark and light.
func WithBackgroundDetector(fn func() bool) Option {
	return func(r *Registry) {
		if fn != nil {
			r.darkBackground = fn
		}
	}
}

// NewRegistry returns a registry holding the built-in themes.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		themes:         make(map[string]*Theme, len(builtinSeeds)),
		logger:         logging.Nop(),
		darkBackground: termenv.HasDarkBackground,
	}
	for _, opt := range opts {
		opt(r)
	}
	for name, seeds := range builtinSeeds {
		t, err := FromSeeds(name, seeds)
		if err != nil {
			// built-in seeds are fixed; failing here is a programming error
			panic(err)
		}
		r.themes[name] = t
	}
	return r
}

// Register adds or replaces a theme.
func (r *Registry) Register(t *Theme) error {
	if t == nil || strings.TrimSpace(t.Name) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "theme must have a name")
	}
	if t.Name == Auto {
		return errors.New(errors.ErrCodeInvalidInput, "theme name 'auto' is reserved")
	}

	r.mu.Lock()
	_, replaced := r.themes[t.Name]
	r.themes[t.Name] = t
	r.mu.Unlock()

	r.logger.WithTheme(t.Name, t.Dark()).Debug("theme registered", slog.Bool("replaced", replaced))
	return nil
}

// RegisterSeeds builds a theme from seeds and registers it.
func (r *Registry) RegisterSeeds(name string, seeds design.Seeds) error {
	t, err := FromSeeds(name, seeds)
	if err != nil {
		return err
	}
	return r.Register(t)
}

// Get returns a theme by name.
func (r *Registry) Get(name string) (*Theme, error) {
	r.mu.RLock()
	t, ok := r.themes[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Newf(errors.ErrCodeThemeNotFound, "theme %q not found", name).
			WithContext("theme", name).
			WithRemediation("available themes: " + strings.Join(r.Names(), ", "))
	}
	return t, nil
}

// Names returns the registered theme names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.themes))
}

// Select returns the named theme. "auto" (or an empty name) picks
// prism-dark or prism-light from the terminal background.
func (r *Registry) Select(name string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == Auto {
		name = PrismLight
		if r.darkBackground() {
			name = PrismDark
		}
		r.logger.Debug("theme auto-selected", slog.String("theme", name))
	}
	return r.Get(name)
}
