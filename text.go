package vscroll

import (
	"strings"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

// Alignment is the horizontal alignment of printed text.
type Alignment int

const (
	AlignmentLeft Alignment = iota
	AlignmentCenter
	AlignmentRight
)

// Print prints text onto the screen into the given box at (x,y,maxWidth,1),
// not exceeding that box. The screen's background color will not be changed.
//
// Returns the number of bytes of text printed and the width they used.
func Print(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, color tcell.Color) (int, int) {
	start, end, width := printWithStyle(screen, text, x, y, 0, maxWidth, alignment, tcell.StyleDefault.Foreground(color), true)
	return end - start, width
}

// PrintStyled works like [Print] but takes a style. The background already on
// screen is kept.
func PrintStyled(screen tcell.Screen, text string, x, y, maxWidth int, alignment Alignment, style tcell.Style) (int, int) {
	start, end, width := printWithStyle(screen, text, x, y, 0, maxWidth, alignment, style, true)
	return end - start, width
}

// printWithStyle works like [Print] but takes a style instead of a
// foreground color. skipWidth cells are skipped at the beginning of the text.
// It returns the start index, end index (exclusive) and screen width of the
// text actually printed. If maintainBackground is true, the style's background
// is replaced by the one already on screen.
func printWithStyle(screen tcell.Screen, text string, x, y, skipWidth, maxWidth int, alignment Alignment, style tcell.Style, maintainBackground bool) (start, end, printedWidth int) {
	totalWidth, totalHeight := screen.Size()
	if maxWidth <= 0 || len(text) == 0 || y < 0 || y >= totalHeight {
		return 0, 0, 0
	}

	// Skip the requested cells, then measure the remainder.
	var textWidth int
	state := &stepState{unisegState: -1}
	for len(text) > 0 && skipWidth > 0 {
		var rest string
		_, rest, state = step(text, state)
		skipWidth -= state.Width()
		start += state.GrossLength()
		text = rest
	}
	resume := *state
	measure := &stepState{unisegState: resume.unisegState}
	for str := text; len(str) > 0; {
		_, str, measure = step(str, measure)
		textWidth += measure.Width()
	}
	state = &resume

	switch alignment {
	case AlignmentRight:
		for len(text) > 0 && textWidth > maxWidth {
			_, text, state = step(text, state)
			textWidth -= state.Width()
			start += state.GrossLength()
		}
		x, maxWidth = x+maxWidth-textWidth, textWidth
	case AlignmentCenter:
		chop := (textWidth - maxWidth) / 2
		for len(text) > 0 && chop > 0 {
			_, text, state = step(text, state)
			chop -= state.Width()
			textWidth -= state.Width()
			start += state.GrossLength()
		}
		if textWidth < maxWidth {
			x, maxWidth = x+maxWidth/2-textWidth/2, textWidth
		}
	}

	end = start
	right := x + maxWidth
	for len(text) > 0 && x < right && x < totalWidth {
		var cluster string
		cluster, text, state = step(text, state)
		if cluster == "" {
			break
		}
		width := state.Width()
		if x+width > right {
			break
		}

		if width > 0 {
			cellStyle := style
			if maintainBackground {
				_, existing, _ := screen.Get(x, y)
				cellStyle = cellStyle.Background(existing.GetBackground())
			}
			// Padding first, so the cluster owns every cell it covers.
			for pad := width - 1; pad > 0; pad-- {
				screen.Put(x+pad, y, " ", cellStyle)
			}
			screen.Put(x, y, cluster, cellStyle)
		}

		x += width
		end += state.GrossLength()
		printedWidth += width
	}
	return start, end, printedWidth
}

// stepState is the state of the grapheme cluster parser.
type stepState struct {
	unisegState int
	boundaries  int
	grossLength int
}

// LineBreak reports whether the text may, or must, break after the last
// grapheme cluster.
func (s *stepState) LineBreak() (lineBreak, optional bool) {
	switch s.boundaries & uniseg.MaskLine {
	case uniseg.LineCanBreak:
		return true, true
	case uniseg.LineMustBreak:
		return true, false
	}
	return false, false
}

// Width returns the grapheme cluster's width in cells.
func (s *stepState) Width() int {
	return s.boundaries >> uniseg.ShiftWidth
}

// GrossLength returns the grapheme cluster's length in bytes.
func (s *stepState) GrossLength() int {
	return s.grossLength
}

// step consumes one grapheme cluster of str.
func step(str string, state *stepState) (cluster, rest string, newState *stepState) {
	if state == nil {
		state = &stepState{unisegState: -1}
	}
	if len(str) == 0 {
		return "", "", state
	}

	cluster, rest, state.boundaries, state.unisegState = uniseg.StepString(str, state.unisegState)
	state.grossLength = len(cluster)
	if rest == "" && !uniseg.HasTrailingLineBreakInString(cluster) {
		state.boundaries &^= uniseg.MaskLine
	}
	return cluster, rest, state
}

// StringWidth returns the number of cells needed to print text.
func StringWidth(text string) (width int) {
	var state *stepState
	for len(text) > 0 {
		_, text, state = step(text, state)
		width += state.Width()
	}
	return width
}

// WordWrap splits text into lines no wider than width cells. Lines break at
// word boundaries where possible and always at newlines. Text that is empty
// yields a single empty line; a non-positive width yields none.
func WordWrap(text string, width int) (lines []string) {
	if width <= 0 {
		return nil
	}

	var (
		state                                    *stepState
		lineWidth, lineLength, breakAt, breakFit int
	)
	for str := text; len(str) > 0; {
		var cluster string
		cluster, str, state = step(str, state)
		cellWidth := state.Width()

		// A space that overflows ends the line and is dropped.
		if lineWidth+cellWidth > width && cluster == " " {
			lines = append(lines, strings.TrimRight(text[:lineLength], " "))
			text = text[lineLength+len(cluster):]
			lineWidth, lineLength, breakAt, breakFit = 0, 0, 0, 0
			continue
		}

		if lineWidth+cellWidth > width && lineLength > 0 {
			cut := lineLength
			if breakFit > 0 {
				cut = breakAt
			}
			lines = append(lines, strings.TrimRight(text[:cut], " "))
			text = text[cut:]
			if breakFit > 0 {
				lineWidth -= breakFit
				lineLength -= breakAt
			} else {
				lineWidth, lineLength = 0, 0
			}
			breakAt, breakFit = 0, 0
		}

		lineWidth += cellWidth
		lineLength += state.GrossLength()

		if lineBreak, optional := state.LineBreak(); lineBreak {
			if optional {
				breakAt, breakFit = lineLength, lineWidth
			} else {
				lines = append(lines, strings.TrimRight(text[:lineLength], "\n\r"))
				text = text[lineLength:]
				lineWidth, lineLength, breakAt, breakFit = 0, 0, 0, 0
			}
		}
	}
	return append(lines, text)
}
