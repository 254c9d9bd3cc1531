// Package help draws a one line summary of key bindings.
package help

import (
	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/vscroll"
	"github.com/xqrs/vscroll/keybind"
)

// Styles are the styles of a help line.
type Styles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
	Ellipsis  tcell.Style
}

// DefaultStyles returns dim keys and separators with normal descriptions.
func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	return Styles{
		Key:       dim,
		Desc:      tcell.StyleDefault,
		Separator: dim,
		Ellipsis:  dim,
	}
}

// Help is a primitive listing key bindings on one line. Bindings that do not
// fit are replaced by an ellipsis.
type Help struct {
	*vscroll.Box
	Styles Styles

	keybinds  []keybind.Keybind
	separator string
	ellipsis  string
}

// New returns an empty help line.
func New() *Help {
	return &Help{
		Box:       vscroll.NewBox(),
		Styles:    DefaultStyles(),
		separator: " • ",
		ellipsis:  "…",
	}
}

// SetKeybinds sets the listed bindings.
func (h *Help) SetKeybinds(keybinds ...keybind.Keybind) *Help {
	h.keybinds = keybinds
	h.MarkDirty()
	return h
}

// SetSeparator sets the text between two bindings.
func (h *Help) SetSeparator(separator string) *Help {
	h.separator = separator
	h.MarkDirty()
	return h
}

type segment struct {
	text  string
	style tcell.Style
}

// Line returns the help text that fits into width cells.
func (h *Help) Line(width int) string {
	var line string
	for _, s := range h.segments(width) {
		line += s.text
	}
	return line
}

func (h *Help) segments(width int) []segment {
	var out []segment
	used := 0
	for _, k := range h.keybinds {
		item := itemSegments(k, h.Styles)
		if len(item) == 0 {
			continue
		}
		if len(out) > 0 {
			item = append([]segment{{text: h.separator, style: h.Styles.Separator}}, item...)
		}
		itemWidth := segmentsWidth(item)
		if width > 0 && used+itemWidth > width {
			tail := segment{text: " " + h.ellipsis, style: h.Styles.Ellipsis}
			if len(out) > 0 && used+segmentsWidth([]segment{tail}) <= width {
				out = append(out, tail)
			}
			return out
		}
		out = append(out, item...)
		used += itemWidth
	}
	return out
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)

	x, y, width, height := h.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	for _, s := range h.segments(width) {
		_, printed := vscroll.PrintStyled(screen, s.text, x, y, width, vscroll.AlignmentLeft, s.style)
		x += printed
		width -= printed
	}
}

func itemSegments(k keybind.Keybind, styles Styles) []segment {
	if !k.Enabled() {
		return nil
	}
	help := k.Help()
	switch {
	case help.Key == "" && help.Desc == "":
		return nil
	case help.Key == "":
		return []segment{{text: help.Desc, style: styles.Desc}}
	case help.Desc == "":
		return []segment{{text: help.Key, style: styles.Key}}
	default:
		return []segment{{text: help.Key + " ", style: styles.Key}, {text: help.Desc, style: styles.Desc}}
	}
}

func segmentsWidth(segments []segment) int {
	width := 0
	for _, s := range segments {
		width += vscroll.StringWidth(s.text)
	}
	return width
}
