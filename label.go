package vscroll

import "github.com/gdamore/tcell/v3"

// Label is an Element showing word-wrapped text inside a Box. Its height
// follows the wrapped text, so it suits items of varying height.
type Label struct {
	*Box

	text      string
	style     tcell.Style
	alignment Alignment
}

// NewLabel returns a label showing text.
func NewLabel(text string) *Label {
	return &Label{
		Box:   NewBox(),
		text:  text,
		style: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
	}
}

// SetText sets the label text.
func (l *Label) SetText(text string) *Label {
	if l.text != text {
		l.text = text
		l.MarkDirty()
	}
	return l
}

// GetText returns the label text.
func (l *Label) GetText() string {
	return l.text
}

// SetTextStyle sets the style of the text.
func (l *Label) SetTextStyle(style tcell.Style) *Label {
	if l.style != style {
		l.style = style
		l.MarkDirty()
	}
	return l
}

// SetAlignment sets the horizontal alignment of the text.
func (l *Label) SetAlignment(alignment Alignment) *Label {
	if l.alignment != alignment {
		l.alignment = alignment
		l.MarkDirty()
	}
	return l
}

// Height implements Element.
func (l *Label) Height(width int) int {
	columns, rows := l.chrome()
	return len(WordWrap(l.text, max(width-columns, 1))) + rows
}

// Draw draws this primitive onto the screen.
func (l *Label) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	lines := WordWrap(l.text, width)
	for row := 0; row < len(lines) && row < height; row++ {
		printWithStyle(screen, lines[row], x, y+row, 0, width, l.alignment, l.style, true)
	}
}

var _ Element = (*Label)(nil)
