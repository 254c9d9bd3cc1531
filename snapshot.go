package vscroll

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type cell struct {
	text  string
	style tcell.Style
	// cont marks the right half of a wide grapheme.
	cont bool
}

// captureScreen records what primitives draw into an in-memory grid. Only
// the drawing subset of tcell.Screen is implemented.
type captureScreen struct {
	tcell.Screen
	width, height int
	cells         []cell
	style         tcell.Style
}

func newCaptureScreen(width, height int) *captureScreen {
	width, height = max(width, 0), max(height, 0)
	s := &captureScreen{width: width, height: height}
	s.cells = make([]cell, width*height)
	s.Clear()
	return s
}

func (s *captureScreen) Size() (int, int) {
	return s.width, s.height
}

func (s *captureScreen) Clear() {
	s.Fill(' ', s.style)
}

func (s *captureScreen) Fill(r rune, style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = cell{text: string(r), style: style}
	}
}

func (s *captureScreen) SetStyle(style tcell.Style) {
	s.style = style
}

func (s *captureScreen) Show() {}
func (s *captureScreen) Sync() {}
func (s *captureScreen) ShowCursor(x, y int) {}
func (s *captureScreen) HideCursor() {}
func (s *captureScreen) SetTitle(title string) {}

func (s *captureScreen) Get(x, y int) (string, tcell.Style, int) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return "", tcell.StyleDefault, 1
	}
	c := s.cells[y*s.width+x]
	return c.text, c.style, max(uniseg.StringWidth(c.text), 1)
}

func (s *captureScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Put(x, y, string(append([]rune{primary}, combining...)), style)
}

func (s *captureScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	cluster, rest, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" || width <= 0 {
		return rest, 0
	}
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return rest, width
	}
	// Wide graphemes at the right edge are replaced, like terminals do.
	if width > 1 && x+width > s.width {
		cluster, width = " ", 1
	}
	s.cells[y*s.width+x] = cell{text: cluster, style: style}
	for i := 1; i < width; i++ {
		s.cells[y*s.width+x+i] = cell{style: style, cont: true}
	}
	return rest, width
}

func (s *captureScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.style)
}

func (s *captureScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.width {
		rest, width := s.Put(x, y, str, style)
		if width <= 0 {
			return
		}
		x += width
		str = rest
	}
}

// row returns the text of row y without trailing spaces.
func (s *captureScreen) row(y int) string {
	var b strings.Builder
	for x := range s.width {
		c := s.cells[y*s.width+x]
		if !c.cont {
			b.WriteString(c.text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Snapshot draws p into a width x height grid and returns its rows as text
// with trailing spaces removed. The primitive is positioned at the origin.
func Snapshot(p Primitive, width, height int) []string {
	screen := newCaptureScreen(width, height)
	p.SetRect(0, 0, width, height)
	p.Draw(screen)
	rows := make([]string, height)
	for y := range rows {
		rows[y] = screen.row(y)
	}
	return rows
}
