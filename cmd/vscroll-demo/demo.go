package main

import (
	"fmt"

	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	"github.com/xqrs/vscroll"
	"github.com/xqrs/vscroll/help"
	"github.com/xqrs/vscroll/keybind"
)

type action int

const (
	actionQuit action = iota
	actionToggleEmpty
	actionMiddle
	actionRefresh
)

func demoKeys() *keybind.Map[action] {
	keys := &keybind.Map[action]{}
	keys.Bind(actionQuit, keybind.NewKeybind(keybind.WithKeys("q", "esc", "ctrl+c"), keybind.WithHelp("q", "quit")))
	keys.Bind(actionToggleEmpty, keybind.NewKeybind(keybind.WithKeys("e"), keybind.WithHelp("e", "toggle data")))
	keys.Bind(actionMiddle, keybind.NewKeybind(keybind.WithKeys("m"), keybind.WithHelp("m", "middle")))
	keys.Bind(actionRefresh, keybind.NewKeybind(keybind.WithKeys("r"), keybind.WithHelp("r", "refresh")))
	return keys
}

// demo lays out the list above a help line.
type demo struct {
	*vscroll.Box

	poster   vscroll.Poster
	viewport *vscroll.Viewport
	help     *help.Help
	keys     *keybind.Map[action]

	window *vscroll.Window[item]
	data   []item
	empty  bool
	// labels caches note elements by item id, oldest first in labelOrder.
	labels     map[int]*vscroll.Label
	labelOrder []int
}

// maxLabels bounds the note cache. Evicted notes get a new label when they
// scroll back into view.
const maxLabels = 64

func newDemo(host vscroll.ViewportHost, data []item) *demo {
	d := &demo{
		Box:      vscroll.NewBox(),
		poster:   host,
		viewport: vscroll.NewViewport(host),
		help:     help.New(),
		keys:     demoKeys(),
		data:     data,
		labels:   make(map[int]*vscroll.Label),
	}
	d.viewport.
		SetClassStyle("item", tcell.StyleDefault.Foreground(color.White)).
		SetBorders(vscroll.BordersAll).
		SetBorderSet(vscroll.BorderSetRound()).
		SetBorderStyle(tcell.StyleDefault.Foreground(color.Gray)).
		SetTitle(fmt.Sprintf(" %d items ", len(data))).
		SetTitleAlignment(vscroll.AlignmentLeft).
		SetTitleStyle(tcell.StyleDefault.Foreground(color.White).Bold(true)).
		SetFooterStyle(tcell.StyleDefault.Foreground(color.Gray))
	d.help.SetKeybinds(append(d.viewport.Keys().Keybinds(), d.keys.Keybinds()...)...)
	d.Adopt(d.viewport)
	d.Adopt(d.help)
	return d
}

func (d *demo) options(frames vscroll.FrameRequester) vscroll.WindowOptions[item] {
	return vscroll.WindowOptions[item]{
		ItemHeight: *itemHeight,
		Buffer:     *buffer,
		ItemClass:  "item",
		Frames:     frames,
		Data:       d.data,
		RenderItem: d.renderItem,
		EmptyRenderer: func() (string, error) {
			return "No items. Press e to load them again.", nil
		},
	}
}

func (d *demo) renderItem(it item) (vscroll.Content, error) {
	if !it.note {
		return vscroll.Text(it.text), nil
	}
	label, ok := d.labels[it.id]
	if !ok {
		label = vscroll.NewLabel(it.text)
		label.SetBorderPadding(0, 0, 2, 0).
			SetBackgroundColor(color.Navy)
		d.cacheLabel(it.id, label)
	}
	return vscroll.ElementContent(label), nil
}

func (d *demo) cacheLabel(id int, label *vscroll.Label) {
	if len(d.labelOrder) >= maxLabels {
		delete(d.labels, d.labelOrder[0])
		d.labelOrder = d.labelOrder[1:]
	}
	d.labels[id] = label
	d.labelOrder = append(d.labelOrder, id)
}

func (d *demo) SetRect(x, y, width, height int) {
	d.Box.SetRect(x, y, width, height)
	d.viewport.SetRect(x, y, width, max(height-1, 0))
	d.help.SetRect(x, y+height-1, width, 1)
}

// position returns the footer text for the rendered range.
func (d *demo) position() string {
	if d.window == nil || d.window.Len() == 0 {
		return ""
	}
	start, end := d.window.VisibleRange()
	return fmt.Sprintf(" %d-%d ", start+1, end)
}

func (d *demo) Draw(screen tcell.Screen) {
	d.DrawForSubclass(screen, d)
	d.viewport.SetFooter(d.position())
	d.viewport.Draw(screen)
	d.viewport.MarkClean()
	d.help.Draw(screen)
	d.help.MarkClean()
}

func (d *demo) HasFocus() bool {
	return d.Box.HasFocus() || d.viewport.HasFocus()
}

func (d *demo) InputHandler(event *tcell.EventKey) vscroll.Command {
	a, ok := d.keys.Action(event)
	if !ok {
		return d.viewport.InputHandler(event)
	}
	switch a {
	case actionQuit:
		return vscroll.QuitCommand{}
	case actionToggleEmpty:
		d.empty = !d.empty
		data := d.data
		if d.empty {
			data = nil
		}
		d.poster.Post(func() error { return d.window.SetData(data) })
	case actionMiddle:
		d.window.ScrollToIndex(d.window.Len()/2, vscroll.ScrollSmooth)
	case actionRefresh:
		d.poster.Post(d.window.Refresh)
	}
	return vscroll.ConsumeEventCommand{}
}

func (d *demo) MouseHandler(action vscroll.MouseAction, event *tcell.EventMouse) (vscroll.Primitive, vscroll.Command) {
	return d.viewport.MouseHandler(action, event)
}
