package compositor

import (
	"sync"

	"github.com/odvcencio/prism/pkg/ui/strip"
)

// Screen is a double-buffered virtual terminal. current is the frame being
// painted; previous is what the backend last received.
type Screen struct {
	mu       sync.RWMutex
	width    int
	height   int
	current  [][]Cell
	previous [][]Cell

	// next Flush rewrites every cell
	full bool
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	width, height = max(0, width), max(0, height)
	return &Screen{
		width:    width,
		height:   height,
		current:  allocBuffer(width, height),
		previous: allocBuffer(width, height),
		full:     true,
	}
}

func allocBuffer(w, h int) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		buf[y] = make([]Cell, w)
		for x := range buf[y] {
			buf[y][x] = EmptyCell()
		}
	}
	return buf
}

// Resize changes screen dimensions, preserving content where possible.
// The next Flush redraws everything.
func (s *Screen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, height = max(0, width), max(0, height)
	if width == s.width && height == s.height {
		return
	}

	next := allocBuffer(width, height)
	for y := range min(height, s.height) {
		copy(next[y], s.current[y][:min(width, s.width)])
	}

	s.current = next
	s.previous = allocBuffer(width, height)
	s.width = width
	s.height = height
	s.full = true
}

// Clear resets the current buffer to empty cells.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for y := range s.current {
		for x := range s.current[y] {
			s.current[y][x] = EmptyCell()
		}
	}
}

// Invalidate makes the next Flush rewrite every cell.
func (s *Screen) Invalidate() {
	s.mu.Lock()
	s.full = true
	s.mu.Unlock()
}

// PaintStrips paints strips top to bottom starting at (x, y). Cells outside
// the screen are dropped.
func (s *Screen) PaintStrips(x, y int, strips []strip.Strip) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paintUnsafe(x, y, strips, Rect{Width: s.width, Height: s.height})
}

// paintUnsafe paints inside clip (caller must hold lock). A wide character
// that would straddle the clip edge is painted as a space.
func (s *Screen) paintUnsafe(x, y int, strips []strip.Strip, clip Rect) {
	clip = clip.Intersect(Rect{Width: s.width, Height: s.height})
	if clip.IsEmpty() {
		return
	}

	for i, row := range strips {
		py := y + i
		if py < clip.Y || py >= clip.Y+clip.Height {
			continue
		}
		line := s.current[py]
		row.Cells(func(c strip.Cell) bool {
			px := x + c.X
			if px >= clip.X+clip.Width {
				return false
			}
			if c.Width == 0 || px < clip.X {
				return true
			}
			if c.Width > 1 && px+c.Width > clip.X+clip.Width {
				setCell(line, px, Cell{Grapheme: " ", Width: 1, Style: c.Style})
				return true
			}
			setCell(line, px, Cell{Grapheme: c.Grapheme, Width: uint8(c.Width), Style: c.Style})
			for k := 1; k < c.Width; k++ {
				setCell(line, px+k, Cell{Width: 0, Style: c.Style})
			}
			return true
		})
	}
}

// setCell writes c at x, blanking any half of a wide character it breaks.
func setCell(line []Cell, x int, c Cell) {
	old := line[x]
	if old.Continuation() && !c.Continuation() {
		for i := x - 1; i >= 0; i-- {
			if !line[i].Continuation() {
				line[i] = Cell{Grapheme: " ", Width: 1, Style: line[i].Style}
				break
			}
			line[i] = Cell{Grapheme: " ", Width: 1, Style: line[i].Style}
		}
	}
	if old.Width > 1 {
		for i := x + 1; i < len(line) && line[i].Continuation(); i++ {
			line[i] = Cell{Grapheme: " ", Width: 1, Style: line[i].Style}
		}
	}
	line[x] = c
}

// Size returns current dimensions.
func (s *Screen) Size() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.width, s.height
}

// Get returns the cell at the given position.
// Returns EmptyCell if out of bounds.
func (s *Screen) Get(x, y int) Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return EmptyCell()
	}
	return s.current[y][x]
}

// Text returns row y of the current frame as text.
func (s *Screen) Text(y int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if y < 0 || y >= s.height {
		return ""
	}
	var out []byte
	for _, c := range s.current[y] {
		out = append(out, c.Grapheme...)
	}
	return string(out)
}

// Rect is a rectangular area of the screen.
type Rect struct {
	X, Y, Width, Height int
}

// Contains checks if a point is within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the intersection of two rects.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)

	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}

	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// IsEmpty returns true if the rect has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// SubScreen is a view into a rect of a Screen. Painting is translated to
// the parent's coordinates and clipped to the rect.
type SubScreen struct {
	parent *Screen
	rect   Rect
}

// Sub creates a SubScreen for a rect.
func (s *Screen) Sub(r Rect) *SubScreen {
	return &SubScreen{parent: s, rect: r}
}

// PaintStrips paints in the SubScreen's coordinate space.
func (ss *SubScreen) PaintStrips(x, y int, strips []strip.Strip) {
	ss.parent.mu.Lock()
	defer ss.parent.mu.Unlock()

	ss.parent.paintUnsafe(ss.rect.X+x, ss.rect.Y+y, strips, ss.rect)
}

// Size returns the SubScreen dimensions.
func (ss *SubScreen) Size() (width, height int) {
	return ss.rect.Width, ss.rect.Height
}
