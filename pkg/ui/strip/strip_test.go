package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odvcencio/prism/pkg/ui/color"
	"github.com/odvcencio/prism/pkg/ui/style"
)

var (
	red  = style.New().WithForeground(color.MustParse("#ff0000"))
	blue = style.New().WithForeground(color.MustParse("#0000ff"))
)

func TestNew(t *testing.T) {
	s := New(Segment{Text: "ab", Style: red}, Segment{}, Segment{Text: "世界", Style: blue})
	assert.Equal(t, 6, s.CellLength())
	assert.Equal(t, "ab世界", s.Text())
	assert.Len(t, s.Segments(), 2)
}

func TestBlank(t *testing.T) {
	assert.Equal(t, 0, Blank(0, red).CellLength())
	b := Blank(4, red)
	assert.Equal(t, "    ", b.Text())
	assert.Equal(t, red, b.Segments()[0].Style)
}

func TestCrop(t *testing.T) {
	s := New(Segment{Text: "hello", Style: red}, Segment{Text: "world", Style: blue})

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"whole", 0, 10, "helloworld"},
		{"inside first", 1, 4, "ell"},
		{"across boundary", 3, 7, "lowo"},
		{"past end", 8, 20, "ld"},
		{"negative start", -3, 2, "he"},
		{"empty", 5, 5, ""},
		{"inverted", 6, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Crop(tt.start, tt.end)
			assert.Equal(t, tt.want, got.Text())
			assert.Equal(t, Width(tt.want), got.CellLength())
		})
	}

	across := s.Crop(3, 7).Segments()
	assert.Len(t, across, 2)
	assert.Equal(t, red, across[0].Style)
	assert.Equal(t, blue, across[1].Style)
}

func TestCrop_WideCharacters(t *testing.T) {
	s := New(Segment{Text: "a世界b", Style: red})

	assert.Equal(t, " 界", s.Crop(2, 5).Text(), "left half of 世 cut off")
	assert.Equal(t, "a世 ", s.Crop(0, 4).Text(), "right half of 界 cut off")
	assert.Equal(t, 4, s.Crop(0, 4).CellLength())
}

func TestExtendAndAdjust(t *testing.T) {
	s := New(Segment{Text: "abc", Style: red})

	ext := s.Extend(6, blue)
	assert.Equal(t, "abc   ", ext.Text())
	assert.Equal(t, 6, ext.CellLength())
	assert.Equal(t, blue, ext.Segments()[1].Style)

	assert.Equal(t, s, s.Extend(2, blue))

	for _, width := range []int{0, 1, 3, 5} {
		assert.Equal(t, width, s.AdjustCellLength(width, blue).CellLength())
	}
}

func TestApplyBase(t *testing.T) {
	base := style.New().WithBackground(color.MustParse("#101010")).WithBold(true)
	s := New(Segment{Text: "x", Style: red}, Segment{Text: "y", Style: style.New().WithBold(false)})

	got := s.ApplyBase(base).Segments()
	assert.Equal(t, base.Background, got[0].Style.Background)
	assert.Equal(t, red.Foreground, got[0].Style.Foreground)
	assert.Equal(t, style.On, got[0].Style.Bold)
	assert.Equal(t, style.Off, got[1].Style.Bold)

	assert.Equal(t, s, s.ApplyBase(style.New()))
}

func TestSimplify(t *testing.T) {
	s := New(
		Segment{Text: "a", Style: red},
		Segment{Text: "b", Style: red},
		Segment{Text: "c", Style: blue},
		Segment{Text: "d", Style: red},
	).Simplify()

	segs := s.Segments()
	assert.Len(t, segs, 3)
	assert.Equal(t, "ab", segs[0].Text)
	assert.Equal(t, "abcd", s.Text())
	assert.Equal(t, 4, s.CellLength())
}

func TestCells(t *testing.T) {
	s := New(Segment{Text: "éx", Style: red}, Segment{Text: "世", Style: blue})

	var got []Cell
	s.Cells(func(c Cell) bool {
		got = append(got, c)
		return true
	})

	assert.Len(t, got, 3)
	assert.Equal(t, "é", got[0].Grapheme)
	assert.Equal(t, 1, got[1].X)
	assert.Equal(t, 2, got[2].X)
	assert.Equal(t, 2, got[2].Width)
	assert.Equal(t, blue, got[2].Style)

	count := 0
	s.Cells(func(Cell) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestJoin(t *testing.T) {
	j := Join(New(Segment{Text: "ab", Style: red}), Blank(2, blue))
	assert.Equal(t, "ab  ", j.Text())
	assert.Equal(t, 4, j.CellLength())
}
