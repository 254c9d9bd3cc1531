package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xqrs/vscroll"
)

// maxSettlePasses bounds the draw and deliver rounds of a snapshot.
const maxSettlePasses = 16

// inlineHost queues posted callbacks and frames until drain runs them.
// Animations finish immediately.
type inlineHost struct {
	posted []func() error
	frames []func() error
	ids    []vscroll.FrameID
	next   vscroll.FrameID
}

func (h *inlineHost) Post(fn func() error) {
	h.posted = append(h.posted, fn)
}

func (h *inlineHost) Animate(step func() bool) {
	for step() {
	}
}

func (h *inlineHost) RequestFrame(fn func() error) vscroll.FrameID {
	h.next++
	h.frames = append(h.frames, fn)
	h.ids = append(h.ids, h.next)
	return h.next
}

func (h *inlineHost) CancelFrame(id vscroll.FrameID) {
	if i := slices.Index(h.ids, id); i >= 0 {
		h.frames = slices.Delete(h.frames, i, i+1)
		h.ids = slices.Delete(h.ids, i, i+1)
	}
}

// drain runs everything queued so far and reports whether anything ran.
func (h *inlineHost) drain() (bool, error) {
	posted, frames := h.posted, h.frames
	h.posted, h.frames, h.ids = nil, nil, nil
	for _, fn := range slices.Concat(posted, frames) {
		if err := fn(); err != nil {
			return false, err
		}
	}
	return len(posted)+len(frames) > 0, nil
}

func printSnapshot(w io.Writer, data []item) error {
	host := &inlineHost{}
	ui := newDemo(host, data)
	ui.SetRect(0, 0, *width, *height)

	window, err := vscroll.NewWindow(ui.viewport, ui.options(host))
	if err != nil {
		return err
	}
	defer window.Destroy()
	ui.window = window
	window.ScrollToIndex(*index, vscroll.ScrollAuto)

	// Measured heights move items, which changes what is visible.
	var rows []string
	for range maxSettlePasses {
		rows = vscroll.Snapshot(ui, *width, *height)
		ran, err := host.drain()
		if err != nil {
			return err
		}
		if !ran {
			break
		}
	}

	start, end := window.VisibleRange()
	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("items %d-%d of %d · pool %d · height %d", start+1, end, window.Len(), window.PoolSize(), window.SpacerHeight()))
	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8")).
		Render(strings.Join(rows, "\n"))
	_, err = fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, header, frame))
	return err
}
