package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/odvcencio/prism/pkg/config"
	"github.com/odvcencio/prism/pkg/logging"
	"github.com/odvcencio/prism/pkg/ui/backend"
	"github.com/odvcencio/prism/pkg/ui/backend/tcell"
	"github.com/odvcencio/prism/pkg/ui/compositor"
	"github.com/odvcencio/prism/pkg/ui/design"
	"github.com/odvcencio/prism/pkg/ui/markdown"
	"github.com/odvcencio/prism/pkg/ui/strip"
	"github.com/odvcencio/prism/pkg/ui/style"
	"github.com/odvcencio/prism/pkg/ui/theme"
	"github.com/odvcencio/prism/pkg/ui/visual"
)

type previewFlags struct {
	language string
	width    int
	justify  string
	noWrap   bool
	screen   bool
	hold     time.Duration
	watch    bool
}

var justifications = map[string]visual.Justify{
	"left":   visual.JustifyLeft,
	"center": visual.JustifyCenter,
	"right":  visual.JustifyRight,
	"full":   visual.JustifyFull,
}

func newPreviewCmd(a *app) *cobra.Command {
	var flags previewFlags

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render text or source code with the active theme",
		Long: `Render a file (or stdin) through the active theme. Source files are
syntax highlighted and Markdown files are rendered; pass --lang to force a
language. With --screen the result is drawn on the terminal's alternate
screen instead of printed, and --watch redraws it as the config changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			justify, err := parseFormat(flags.justify, "left", "center", "right", "full")
			if err != nil {
				return err
			}
			text, name, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			build := func() (visual.Visual, visual.RenderOptions, error) {
				t, err := a.theme(nil)
				if err != nil {
					return nil, visual.RenderOptions{}, err
				}
				return previewVisual(text, name, flags.language, t), visual.RenderOptions{
					BaseStyle: t.Styles.Surface,
					Justify:   justifications[justify],
					NoWrap:    flags.noWrap,
				}, nil
			}

			if flags.screen {
				var watch []string
				if flags.watch {
					watch = a.watchPaths()
				}
				return runScreen(cmd.Context(), build, a.reload, watch, flags.hold)
			}

			v, opts, err := build()
			if err != nil {
				return err
			}
			width := flags.width
			if width <= 0 {
				width = terminalWidth(os.Stdout, 80)
			}
			out := cmd.OutOrStdout()
			return writeStrips(out, lipgloss.NewRenderer(out), v.RenderStrips(width, opts))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.language, "lang", "l", "", "highlight as this language")
	f.IntVarP(&flags.width, "width", "w", 0, "render width (default: terminal width)")
	f.StringVarP(&flags.justify, "justify", "j", "left", "left, center, right or full")
	f.BoolVar(&flags.noWrap, "no-wrap", false, "crop long lines instead of wrapping")
	f.BoolVar(&flags.screen, "screen", false, "draw on the terminal screen")
	f.DurationVar(&flags.hold, "hold", 3*time.Second, "how long --screen keeps the preview up")
	f.BoolVar(&flags.watch, "watch", false, "with --screen, redraw when the config or theme files change")
	return cmd
}

func readInput(stdin io.Reader, args []string) (text, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), "", err
	}
	data, err := os.ReadFile(args[0])
	return string(data), filepath.Base(args[0]), err
}

// previewVisual renders markdown, highlights source code and leaves prose
// as plain content.
func previewVisual(text, name, language string, t *theme.Theme) visual.Visual {
	if isMarkdown(name, language) {
		return markdown.NewRenderer(t).Render(text)
	}
	if language == "" && filepath.Ext(name) != "" && !isProse(name) {
		language = name
	}
	if language == "" {
		return visual.Styled(strings.TrimRight(text, "\n"), t.Styles.Text)
	}
	return visual.NewSyntax(text, language, t.SyntaxTheme())
}

func isMarkdown(name, language string) bool {
	switch strings.ToLower(language) {
	case "md", "markdown":
		return true
	case "":
		ext := strings.ToLower(filepath.Ext(name))
		return ext == ".md" || ext == ".markdown"
	}
	return false
}

func isProse(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text":
		return true
	}
	return false
}

// writeStrips prints strips as styled lines.
func writeStrips(w io.Writer, r *lipgloss.Renderer, strips []strip.Strip) error {
	var b strings.Builder
	for _, s := range strips {
		for _, seg := range s.Segments() {
			b.WriteString(lipglossStyle(r, seg.Style).Render(seg.Text))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func lipglossStyle(r *lipgloss.Renderer, st style.Style) lipgloss.Style {
	fg, bg := st.RenderColors()
	return r.NewStyle().
		Foreground(design.TerminalColor(fg)).
		Background(design.TerminalColor(bg)).
		Bold(st.Bold.Enabled()).
		Faint(st.Dim.Enabled()).
		Italic(st.Italic.Enabled()).
		Underline(st.Underline.Enabled()).
		Strikethrough(st.Strike.Enabled())
}

// runScreen draws the preview full screen through the compositor and holds
// it. With watch paths set, config changes reload and redraw it.
func runScreen(
	ctx context.Context,
	build func() (visual.Visual, visual.RenderOptions, error),
	reload func() error,
	watch []string,
	hold time.Duration,
) error {
	b, err := tcell.New()
	if err != nil {
		return err
	}
	if err := b.Init(); err != nil {
		return err
	}
	defer b.Fini()

	held, cancel := context.WithTimeout(ctx, hold)
	defer cancel()

	changed := make(chan struct{}, 1)
	if len(watch) > 0 {
		go func() {
			err := config.Watch(held, watch, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})
			if err != nil {
				logging.FromContext(ctx).Warn("not watching config", "error", err)
			}
		}()
	}
	return holdScreen(ctx, held, b, build, reload, changed)
}

// holdScreen draws on b, then redraws after each change until held is done.
// Rendering runs under ctx, so the hold expiring mid-redraw is not an error.
func holdScreen(
	ctx, held context.Context,
	b backend.Backend,
	build func() (visual.Visual, visual.RenderOptions, error),
	reload func() error,
	changed <-chan struct{},
) error {
	log := logging.FromContext(ctx)
	w, h := b.Size()
	screen := compositor.NewScreen(w, h)

	draw := func() error {
		v, opts, err := build()
		if err != nil {
			return err
		}
		region := compositor.Region{
			Visual:  v,
			Rect:    compositor.Rect{Width: w, Height: h},
			Options: opts,
		}
		if err := compositor.RenderRegions(ctx, screen, []compositor.Region{region}); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		written := screen.Flush(b)
		b.Show()
		log.Debug("preview drawn", "width", w, "height", h, "cells", written)
		return nil
	}
	if err := draw(); err != nil {
		return err
	}

	for {
		select {
		case <-held.Done():
			return nil
		case <-changed:
			if err := reload(); err != nil {
				log.Warn("config reload failed", "error", err)
				continue
			}
			if err := draw(); err != nil {
				return err
			}
		}
	}
}
