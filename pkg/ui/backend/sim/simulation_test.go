package sim

import (
	"strings"
	"testing"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/prism/pkg/ui/color"
	"github.com/odvcencio/prism/pkg/ui/style"
)

func newSim(t *testing.T, w, h int) *Backend {
	t.Helper()
	sim := New(w, h)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(sim.Fini)
	return sim
}

func TestBackend_BasicRendering(t *testing.T) {
	sim := newSim(t, 20, 5)

	st := style.New().WithForeground(color.White)
	for i, r := range "Hello, World!" {
		sim.SetContent(i, 0, r, nil, st)
	}
	sim.Show()

	_, h := sim.Size()
	lines := strings.Split(sim.Capture(), "\n")
	if len(lines) != h {
		t.Errorf("Expected %d lines, got %d", h, len(lines))
	}
	if !strings.HasPrefix(lines[0], "Hello, World!") {
		t.Errorf("Expected first line to start with 'Hello, World!', got %q", lines[0])
	}
}

func TestBackend_Resize(t *testing.T) {
	sim := newSim(t, 80, 24)
	sim.Resize(40, 12)

	w, h := sim.Size()
	if w != 40 || h != 12 {
		t.Errorf("Expected size 40x12 after resize, got %dx%d", w, h)
	}
}

func TestBackend_ContainsText(t *testing.T) {
	sim := newSim(t, 40, 10)

	for i, r := range "findme" {
		sim.SetContent(5+i, 3, r, nil, style.Style{})
	}
	sim.Show()

	if !sim.ContainsText("findme") {
		t.Error("Expected to find 'findme' on screen")
	}
	if sim.ContainsText("nothere") {
		t.Error("Should not find 'nothere' on screen")
	}
}

func TestBackend_CaptureRegion(t *testing.T) {
	sim := newSim(t, 20, 10)

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			sim.SetContent(x, y, 'X', nil, style.Style{})
		}
	}
	sim.Show()

	region := sim.CaptureRegion(0, 0, 5, 3)
	expected := "XXXXX\nXXXXX\nXXXXX"
	if region != expected {
		t.Errorf("Expected region:\n%s\nGot:\n%s", expected, region)
	}
}

func TestBackend_Styles(t *testing.T) {
	sim := newSim(t, 20, 10)

	st := style.New().
		WithForeground(color.ANSIColor(1)).
		WithBackground(color.RGB(0, 0, 255)).
		WithBold(true)

	sim.SetContent(0, 0, 'S', nil, st)
	sim.Show()

	g, captured := sim.CaptureCell(0, 0)
	if g != "S" {
		t.Errorf("Expected 'S', got %q", g)
	}

	fg, bg, attrs := captured.Decompose()
	if fg != tcellv2.PaletteColor(1) {
		t.Errorf("foreground = %v, want palette 1", fg)
	}
	if bg != tcellv2.NewRGBColor(0, 0, 255) {
		t.Errorf("background = %v, want blue", bg)
	}
	if attrs&tcellv2.AttrBold == 0 {
		t.Error("Expected bold attribute to be set")
	}
}
