package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/prism/pkg/ui/style"
)

// run executes the CLI with an isolated home directory and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PRISM_THEME", "")
	t.Setenv("PRISM_CACHE_SIZE", "")
	t.Setenv("PRISM_LOG_LEVEL", "")
	t.Cleanup(func() { _ = style.SetDefaultCacheSize(style.DefaultCacheSize) })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestPaletteYAML(t *testing.T) {
	out, err := run(t, "", "palette", "prism-light")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `primary: "#004578"`), "palette should start with primary:\n%s", out)

	var palette map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &palette))
	assert.Len(t, palette, 100)
	assert.Equal(t, "#EFEFEF", palette["background"])
}

func TestPaletteJSON(t *testing.T) {
	out, err := run(t, "", "palette", "nord", "--format", "json")
	require.NoError(t, err)

	var palette map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &palette))
	assert.Len(t, palette, 100)
	assert.Equal(t, "#2E3440", palette["background"])
}

func TestPaletteErrors(t *testing.T) {
	_, err := run(t, "", "palette", "nord", "--format", "toml")
	assert.Error(t, err)

	_, err = run(t, "", "palette", "no-such-theme")
	assert.Error(t, err)
}

func TestThemesMarksActive(t *testing.T) {
	out, err := run(t, "", "themes", "--theme", "gruvbox")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, out, "* gruvbox")
	assert.Contains(t, out, "  prism-light  light")
}

func TestDesign(t *testing.T) {
	out, err := run(t, "", "design", "prism-dark", "--width", "60")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 1+91*3)
	for _, line := range lines {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
	assert.Contains(t, out, "$primary-darken-3")
}

func TestPreviewStdin(t *testing.T) {
	out, err := run(t, "hello world", "preview", "--width", "5", "--theme", "prism-light")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", out)
}

func TestPreviewJustify(t *testing.T) {
	out, err := run(t, "hi", "preview", "--width", "6", "--justify", "right")
	require.NoError(t, err)
	assert.Equal(t, "    hi\n", out)

	_, err = run(t, "hi", "preview", "--justify", "diagonal")
	assert.Error(t, err)
}

func TestPreviewSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o644))

	out, err := run(t, "", "preview", path, "--width", "20")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "package main        ", lines[0])
	for _, line := range lines {
		assert.Equal(t, 20, lipgloss.Width(line))
	}
}

func TestPreviewMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\n- one\n- two\n"), 0o644))

	out, err := run(t, "", "preview", path, "--width", "12")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Title       ", lines[0])
	assert.Equal(t, "• one       ", lines[2])

	// --lang forces markdown on stdin
	out, err = run(t, "> quote\n", "preview", "--lang", "markdown", "--width", "8")
	require.NoError(t, err)
	assert.Equal(t, "│ quote \n", out)
}

func TestConfigFileTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prism.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
theme: ocean
cache_size: 16
themes:
  - name: ocean
    primary: "#1b6ca8"
    dark: true
`), 0o644))

	out, err := run(t, "", "--config", path, "palette")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `primary: "#1B6CA8"`), out)

	_, err = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "themes")
	assert.Error(t, err)

	_, err = run(t, "", "--log-level", "shouty", "themes")
	assert.Error(t, err)
}
