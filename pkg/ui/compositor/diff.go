package compositor

import (
	"github.com/odvcencio/prism/pkg/ui/backend"
)

// Flush writes the cells that changed since the previous Flush to target
// and returns how many were written. Continuation cells are never written;
// the backend lays out wide characters itself.
func (s *Screen) Flush(target backend.RenderTarget) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	written := 0
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			curr := s.current[y][x]
			if curr.Continuation() {
				continue
			}
			if !s.full && curr == s.previous[y][x] {
				continue
			}

			mainc, comb := backend.SplitGrapheme(curr.Grapheme)
			target.SetContent(x, y, mainc, comb, curr.Style)
			written++
		}
		copy(s.previous[y], s.current[y])
	}
	s.full = false
	return written
}
