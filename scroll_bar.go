package vscroll

import "github.com/gdamore/tcell/v3"

// ScrollLengths bundles content and viewport lengths in rows.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

// subcell is the number of thumb steps per cell.
const subcell = 8

// GlyphSet defines the track and fractional thumb glyphs of a scroll bar.
type GlyphSet struct {
	Track string

	ThumbLower [subcell]string
	ThumbUpper [subcell]string
}

// LegacyComputingGlyphSet returns legacy computing symbols for full 1/8 cell
// thumb precision.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      " ",
		ThumbLower: [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbUpper: [subcell]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
	}
}

// UnicodeGlyphSet returns an approximation built from widely available
// block elements.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		Track:      "│",
		ThumbLower: [subcell]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbUpper: [subcell]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// ScrollBar draws the position of a ScrollState as a one column vertical bar.
// Clicking the track scrolls to the matching position.
type ScrollBar struct {
	*Box

	state *ScrollState

	autoHide   bool
	glyphSet   GlyphSet
	trackStyle tcell.Style
	thumbStyle tcell.Style
}

// NewScrollBar returns a scroll bar following state.
func NewScrollBar(state *ScrollState) *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		state:      state,
		autoHide:   true,
		glyphSet:   LegacyComputingGlyphSet(),
		trackStyle: tcell.StyleDefault.Foreground(Styles.GraphicsColor).Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.GraphicsColor),
	}
}

// SetState replaces the followed scroll state.
func (s *ScrollBar) SetState(state *ScrollState) *ScrollBar {
	if s.state != state {
		s.state = state
		s.MarkDirty()
	}
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	s.MarkDirty()
	return s
}

// SetAutoHide controls whether the bar is hidden when there is nothing to
// scroll.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	if s.autoHide != autoHide {
		s.autoHide = autoHide
		s.MarkDirty()
	}
	return s
}

// SetThumbStyle sets the thumb style.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	if s.thumbStyle != style {
		s.thumbStyle = style
		s.MarkDirty()
	}
	return s
}

// SetTrackStyle sets the track style.
func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	if s.trackStyle != style {
		s.trackStyle = style
		s.MarkDirty()
	}
	return s
}

// thumb is the thumb geometry in subcell units.
type thumb struct {
	trackLen int
	start    int
	length   int
}

func thumbFor(cells int, lengths ScrollLengths, offset int) thumb {
	trackLen := cells * subcell
	if trackLen == 0 {
		return thumb{}
	}
	content := max(lengths.ContentLen, 1)
	viewport := min(max(lengths.ViewportLen, 1), content)
	maxOffset := content - viewport
	if maxOffset == 0 {
		return thumb{trackLen: trackLen, length: trackLen}
	}
	offset = min(max(offset, 0), maxOffset)

	length := min(max(trackLen*viewport/content, subcell), trackLen)
	return thumb{
		trackLen: trackLen,
		start:    (trackLen - length) * offset / maxOffset,
		length:   length,
	}
}

// cover returns the part of cell covered by the thumb, relative to the cell.
func (t thumb) cover(cell int) (start, length int) {
	cellStart := cell * subcell
	from := max(t.start, cellStart)
	to := min(t.start+t.length, cellStart+subcell)
	if to <= from {
		return 0, 0
	}
	return from - cellStart, to - from
}

func (s *ScrollBar) glyph(start, length int) (string, tcell.Style) {
	switch {
	case length <= 0:
		return s.glyphSet.Track, s.trackStyle
	case length >= subcell:
		return s.glyphSet.ThumbLower[subcell-1], s.thumbStyle
	case start == 0:
		return s.glyphSet.ThumbUpper[length-1], s.thumbStyle
	default:
		return s.glyphSet.ThumbLower[length-1], s.thumbStyle
	}
}

// Draw draws the scroll bar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)
	if s.state == nil {
		return
	}

	x, y, width, height := s.GetInnerRect()
	lengths := s.state.Lengths()
	if width <= 0 || height <= 0 || lengths.ContentLen <= 0 {
		return
	}
	if s.autoHide && lengths.ContentLen <= lengths.ViewportLen {
		return
	}

	t := thumbFor(height, lengths, s.state.ScrollTop())
	for cell := range height {
		glyph, style := s.glyph(t.cover(cell))
		screen.Put(x, y+cell, glyph, style)
	}
}

// MouseHandler scrolls to the clicked track position.
func (s *ScrollBar) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if s.state == nil || action != MouseLeftDown || !s.InRect(event.Position()) {
		return nil, nil
	}
	_, y, _, height := s.GetInnerRect()
	_, my := event.Position()
	if height <= 1 {
		return nil, nil
	}
	row := min(max(my-y, 0), height-1)
	s.state.ScrollTo(s.state.MaxScroll()*row/(height-1), ScrollSmooth)
	return nil, ConsumeEventCommand{}
}

var _ Primitive = &ScrollBar{}
